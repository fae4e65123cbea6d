package appstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"appstore_collector/internal/domain"
)

const (
	// The reviews feed serves fixed pages of 50 entries and stops after
	// page 10 regardless of how many reviews an app has.
	reviewPageSize = 50
	maxReviewPages = 10
)

// Config holds App Store client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the public iTunes search, lookup and customer-reviews
// endpoints. Every call is a single attempt; pacing between calls is
// the caller's responsibility.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// New creates a new App Store client.
func New(cfg Config, logger *slog.Logger) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "AppStoreCollector/1.0")

	return &Client{
		http:   http,
		logger: logger.With("source", "appstore"),
	}
}

// Search returns candidate apps matching a keyword term.
func (c *Client) Search(ctx context.Context, country, term string, limit int) ([]domain.CandidateApp, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"media":   "software",
			"country": country,
			"term":    term,
			"limit":   strconv.Itoa(limit),
		}).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search %q: unexpected status %d", term, resp.StatusCode())
	}

	// The search endpoint labels its body text/javascript, so decode by hand.
	var out lookupResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("search %q: decode response: %w", term, err)
	}

	candidates := make([]domain.CandidateApp, 0, len(out.Results))
	for _, r := range out.Results {
		candidates = append(candidates, domain.CandidateApp{
			Name:    r.TrackName,
			ID:      r.TrackID,
			Country: country,
		})
	}

	c.logger.Debug("search completed", "term", term, "results", len(candidates))

	return candidates, nil
}

// Lookup fetches the detail metadata for one app.
func (c *Client) Lookup(ctx context.Context, country string, id int64) (*domain.AppInfo, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"country": country,
			"id":      strconv.FormatInt(id, 10),
		}).
		Get("/lookup")
	if err != nil {
		return nil, fmt.Errorf("lookup %d: %w", id, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("lookup %d: unexpected status %d", id, resp.StatusCode())
	}

	var out lookupResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("lookup %d: decode response: %w", id, err)
	}
	if out.ResultCount == 0 || len(out.Results) == 0 {
		return nil, fmt.Errorf("lookup %d: app not found in %q store", id, country)
	}

	r := out.Results[0]
	return &domain.AppInfo{
		AppName:                   r.TrackName,
		CountryCode:               country,
		AppID:                     r.TrackID,
		DeveloperName:             r.SellerName,
		PrimaryGenre:              r.PrimaryGenreName,
		AverageUserRating:         r.AverageUserRating,
		UserRatingCount:           r.UserRatingCount,
		CurrentVersionReleaseDate: r.CurrentVersionReleaseDate,
		OriginalReleaseDate:       r.ReleaseDate,
		Price:                     r.Price,
		Currency:                  r.Currency,
	}, nil
}

// RecentReviews fetches up to howMany of the most recent reviews for an
// app. An app with no reviews yields an empty slice, not an error.
func (c *Client) RecentReviews(ctx context.Context, country string, id int64, howMany int) ([]domain.Review, error) {
	var reviews []domain.Review

	for page := 1; page <= maxReviewPages && len(reviews) < howMany; page++ {
		entries, err := c.fetchReviewPage(ctx, country, id, page)
		if err != nil {
			return nil, fmt.Errorf("reviews %d page %d: %w", id, page, err)
		}
		if len(entries) == 0 {
			break
		}

		for _, e := range entries {
			if len(reviews) >= howMany {
				break
			}
			rating, err := strconv.Atoi(e.Rating.Label)
			if err != nil {
				// Keep the review; a zero rating surfaces as missing downstream.
				c.logger.Warn("failed to parse rating",
					"app_id", id,
					"rating", e.Rating.Label,
				)
			}
			reviews = append(reviews, domain.Review{
				Date:       e.Updated.Label,
				Rating:     rating,
				Title:      e.Title.Label,
				Content:    e.Content.Label,
				Author:     e.Author.Name.Label,
				AppVersion: e.Version.Label,
			})
		}

		if len(entries) < reviewPageSize {
			break
		}
	}

	c.logger.Debug("reviews fetched", "app_id", id, "count", len(reviews))

	return reviews, nil
}

func (c *Client) fetchReviewPage(ctx context.Context, country string, id int64, page int) ([]feedEntry, error) {
	url := fmt.Sprintf("/%s/rss/customerreviews/page=%d/id=%d/sortby=mostrecent/json", country, page, id)

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode())
	}

	var feed reviewFeed
	if err := json.Unmarshal(resp.Body(), &feed); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	return feed.Feed.Entry, nil
}
