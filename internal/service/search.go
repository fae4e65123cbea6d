package service

import (
	"context"
	"log/slog"

	"appstore_collector/internal/config"
	"appstore_collector/internal/domain"
)

// SearchAggregator discovers candidate apps by running keyword searches
// and deduplicating the results.
type SearchAggregator struct {
	client StoreClient
	logger *slog.Logger
	cfg    config.ScrapeConfig
}

func NewSearchAggregator(client StoreClient, logger *slog.Logger, cfg config.ScrapeConfig) *SearchAggregator {
	return &SearchAggregator{
		client: client,
		logger: logger,
		cfg:    cfg,
	}
}

// Discover searches every configured term in order and returns the
// deduplicated candidate list, first-occurrence-wins, truncated to
// MaxCandidates. A failed term is logged and skipped; the only error
// Discover itself returns is context cancellation during pacing.
func (a *SearchAggregator) Discover(ctx context.Context) ([]domain.CandidateApp, error) {
	seen := make(map[int64]struct{})
	var candidates []domain.CandidateApp

	for i, term := range a.cfg.SearchTerms {
		if i > 0 {
			if err := pace(ctx, a.cfg.InterTermDelay); err != nil {
				return candidates, err
			}
		}

		a.logger.Info("searching term", "term", term, "country", a.cfg.CountryCode)

		results, err := a.client.Search(ctx, a.cfg.CountryCode, term, a.cfg.PerTermLimit)
		if err != nil {
			a.logger.Warn("search failed, skipping term", "term", term, "error", err)
			continue
		}

		for _, r := range results {
			if r.ID == 0 || r.Name == "" {
				continue
			}
			if _, ok := seen[r.ID]; ok {
				continue
			}
			seen[r.ID] = struct{}{}
			candidates = append(candidates, r)
		}

		a.logger.Info("term searched",
			"term", term,
			"results", len(results),
			"unique_total", len(candidates),
		)
	}

	if len(candidates) > a.cfg.MaxCandidates {
		candidates = candidates[:a.cfg.MaxCandidates]
	}

	return candidates, nil
}
