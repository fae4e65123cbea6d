package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"appstore_collector/internal/domain"
)

// AppDetailFetcher scrapes the detail metadata and recent reviews for
// one app. Any collaborator failure is wrapped and returned; the caller
// decides to skip.
type AppDetailFetcher struct {
	client StoreClient
	logger *slog.Logger
}

func NewAppDetailFetcher(client StoreClient, logger *slog.Logger) *AppDetailFetcher {
	return &AppDetailFetcher{
		client: client,
		logger: logger,
	}
}

// Fetch resolves the candidate's identifier if needed, looks up its
// metadata and fetches up to reviewCount reviews, tagging each review
// with the app's identity. An app with zero reviews still produces a
// result with an empty review collection.
func (f *AppDetailFetcher) Fetch(ctx context.Context, app domain.CandidateApp, reviewCount int) (*domain.ScrapeResult, error) {
	id := app.ID
	if id == 0 {
		// Name-only identifier: resolve it through a limit-1 search.
		matches, err := f.client.Search(ctx, app.Country, app.Name, 1)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", app.Name, err)
		}
		if len(matches) == 0 || matches[0].ID == 0 {
			return nil, fmt.Errorf("resolve %q: no match in %q store", app.Name, app.Country)
		}
		id = matches[0].ID
	}

	f.logger.Info("scraping app", "app_id", id, "country", app.Country)

	info, err := f.client.Lookup(ctx, app.Country, id)
	if err != nil {
		return nil, fmt.Errorf("lookup app %d: %w", id, err)
	}

	if info.AppName == "" {
		// Metadata lacked a name, fall back to the input identifier.
		if app.Name != "" {
			info.AppName = app.Name
		} else {
			info.AppName = strconv.FormatInt(id, 10)
		}
	}
	info.CountryCode = app.Country
	info.AppID = id

	f.logger.Info("app details fetched", "app", info.AppName)

	reviews, err := f.client.RecentReviews(ctx, app.Country, id, reviewCount)
	if err != nil {
		return nil, fmt.Errorf("reviews for app %d: %w", id, err)
	}
	if len(reviews) == 0 {
		f.logger.Info("no reviews found", "app", info.AppName)
	}

	for i := range reviews {
		reviews[i].AppName = info.AppName
		reviews[i].CountryCode = app.Country
		reviews[i].AppID = id
	}

	f.logger.Info("app scraped", "app", info.AppName, "reviews", len(reviews))

	return &domain.ScrapeResult{Info: *info, Reviews: reviews}, nil
}
