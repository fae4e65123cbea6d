package service

import (
	"context"
	"log/slog"
	"time"

	"appstore_collector/internal/config"
	"appstore_collector/internal/domain"
)

// BatchScraper drives the fetcher over a candidate list sequentially,
// accumulating everything into a Dataset it exclusively owns until the
// handoff to reporting.
type BatchScraper struct {
	fetcher Fetcher
	logger  *slog.Logger
	cfg     config.ScrapeConfig
}

func NewBatchScraper(fetcher Fetcher, logger *slog.Logger, cfg config.ScrapeConfig) *BatchScraper {
	return &BatchScraper{
		fetcher: fetcher,
		logger:  logger,
		cfg:     cfg,
	}
}

// Run fetches every candidate in order. A failed fetch is logged and
// the candidate skipped entirely; there are no retries. Pacing is
// applied uniformly between attempts, whether or not the previous one
// succeeded.
func (b *BatchScraper) Run(ctx context.Context, candidates []domain.CandidateApp) (*domain.Dataset, error) {
	startTime := time.Now()

	ds := &domain.Dataset{}
	ds.Stats.Candidates = len(candidates)

	for i, c := range candidates {
		if i > 0 {
			if err := pace(ctx, b.cfg.InterAppDelay); err != nil {
				return ds, err
			}
		}

		result, err := b.fetcher.Fetch(ctx, c, b.cfg.ReviewCount)
		if err != nil {
			b.logger.Warn("app skipped",
				"app_id", c.ID,
				"name", c.Name,
				"error", err,
			)
			ds.Stats.Skipped++
			continue
		}

		ds.Apps = append(ds.Apps, result.Info)
		ds.Reviews = append(ds.Reviews, result.Reviews...)
		ds.Stats.Scraped++
	}

	ds.Stats.Reviews = len(ds.Reviews)
	ds.Stats.Duration = time.Since(startTime)

	b.logger.Info("batch completed",
		"candidates", ds.Stats.Candidates,
		"scraped", ds.Stats.Scraped,
		"skipped", ds.Stats.Skipped,
		"reviews", ds.Stats.Reviews,
		"duration", ds.Stats.Duration,
	)

	return ds, nil
}
