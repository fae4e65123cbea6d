package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"appstore_collector/internal/domain"
)

// StoreClient is the app-store collaborator: keyword search plus
// per-app detail and review retrieval.
type StoreClient interface {
	Search(ctx context.Context, country, term string, limit int) ([]domain.CandidateApp, error)
	Lookup(ctx context.Context, country string, id int64) (*domain.AppInfo, error)
	RecentReviews(ctx context.Context, country string, id int64, howMany int) ([]domain.Review, error)
}

// Fetcher produces the full scrape result for a single candidate app.
type Fetcher interface {
	Fetch(ctx context.Context, app domain.CandidateApp, reviewCount int) (*domain.ScrapeResult, error)
}
