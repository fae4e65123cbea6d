package domain

import "time"

// ScrapeStats holds statistics about one collection run.
type ScrapeStats struct {
	Candidates int
	Scraped    int
	Skipped    int
	Reviews    int
	Duration   time.Duration
}
