package domain

import "time"

// CandidateApp is an app discovered via keyword search, not yet
// detail-scraped. ID is the store's numeric track identifier; a zero ID
// with a nonempty Name means the app still has to be resolved by name.
type CandidateApp struct {
	Name    string
	ID      int64
	Country string
}

// AppInfo is the metadata snapshot for one app at scrape time. Release
// dates are kept as the raw strings returned by the store; the parsed
// forms and the derived age are attached at the reporting boundary.
type AppInfo struct {
	AppName                   string
	CountryCode               string
	AppID                     int64
	DeveloperName             string
	PrimaryGenre              string
	AverageUserRating         float64
	UserRatingCount           int64
	CurrentVersionReleaseDate string
	OriginalReleaseDate       string
	Price                     float64
	Currency                  string

	// Derived by the report builder. Nil when the raw date did not parse.
	CurrentVersionRelease *time.Time
	OriginalRelease       *time.Time
	AppAgeDays            *int
}

// Review is one user review plus the identity tags linking it back to
// its app. AppName, CountryCode and AppID are injected by the fetcher,
// everything else comes from the store.
type Review struct {
	Date       string
	Rating     int
	Title      string
	Content    string
	Author     string
	AppVersion string

	AppName     string
	CountryCode string
	AppID       int64
}

// ScrapeResult is the outcome of detail-scraping a single app.
type ScrapeResult struct {
	Info    AppInfo
	Reviews []Review
}

// Dataset accumulates everything a batch run collected. The batch
// scraper owns it exclusively until it hands it to the report builder.
type Dataset struct {
	Apps    []AppInfo
	Reviews []Review
	Stats   ScrapeStats
}
