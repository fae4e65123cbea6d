package report

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"appstore_collector/internal/domain"
)

func testBuilder(out io.Writer, now time.Time) *Builder {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := NewBuilder(logger, out)
	b.now = func() time.Time { return now }
	return b
}

func TestBuild_AgeAndRecentFilter(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	b := testBuilder(io.Discard, now)

	ds := &domain.Dataset{
		Apps: []domain.AppInfo{
			{AppName: "young", OriginalReleaseDate: now.AddDate(0, 0, -400).Format(time.RFC3339)},
			{AppName: "old", OriginalReleaseDate: now.AddDate(0, 0, -1000).Format(time.RFC3339)},
			{AppName: "undated", OriginalReleaseDate: "not a date"},
		},
	}

	sum := b.Build(ds)

	require.NotNil(t, ds.Apps[0].AppAgeDays)
	require.Equal(t, 400, *ds.Apps[0].AppAgeDays)
	require.NotNil(t, ds.Apps[1].AppAgeDays)
	require.Equal(t, 1000, *ds.Apps[1].AppAgeDays)
	require.Nil(t, ds.Apps[2].AppAgeDays)

	require.Len(t, sum.RecentApps, 1)
	require.Equal(t, "young", sum.RecentApps[0].AppName)
}

func TestBuild_SortsByUserRatingCountDescending(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	b := testBuilder(io.Discard, now)

	release := now.AddDate(0, 0, -100).Format(time.RFC3339)
	ds := &domain.Dataset{
		Apps: []domain.AppInfo{
			{AppName: "mid", UserRatingCount: 50, OriginalReleaseDate: release},
			{AppName: "top", UserRatingCount: 200, OriginalReleaseDate: release},
			{AppName: "low", UserRatingCount: 10, OriginalReleaseDate: release},
		},
	}

	sum := b.Build(ds)

	require.Len(t, sum.RecentApps, 3)
	require.Equal(t, "top", sum.RecentApps[0].AppName)
	require.Equal(t, "mid", sum.RecentApps[1].AppName)
	require.Equal(t, "low", sum.RecentApps[2].AppName)
}

func TestBuild_StableSortKeepsInputOrderOnTies(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	b := testBuilder(io.Discard, now)

	release := now.AddDate(0, 0, -100).Format(time.RFC3339)
	ds := &domain.Dataset{
		Apps: []domain.AppInfo{
			{AppName: "first", UserRatingCount: 50, OriginalReleaseDate: release},
			{AppName: "second", UserRatingCount: 50, OriginalReleaseDate: release},
		},
	}

	sum := b.Build(ds)

	require.Equal(t, "first", sum.RecentApps[0].AppName)
	require.Equal(t, "second", sum.RecentApps[1].AppName)
}

func TestBuild_RatingCountsSortedDescending(t *testing.T) {
	b := testBuilder(io.Discard, time.Now())

	ds := &domain.Dataset{
		Reviews: []domain.Review{
			{Rating: 5}, {Rating: 5}, {Rating: 1}, {Rating: 3}, {Rating: 5},
		},
	}

	sum := b.Build(ds)

	require.Equal(t, 5, sum.TotalReviews)
	require.Equal(t, []RatingCount{
		{Rating: 5, Count: 3},
		{Rating: 3, Count: 1},
		{Rating: 1, Count: 1},
	}, sum.RatingCounts)
}

func TestBuild_MissingCounts(t *testing.T) {
	b := testBuilder(io.Discard, time.Now())

	ds := &domain.Dataset{
		Reviews: []domain.Review{
			{Date: "2026-01-01", Rating: 5, Title: "t", Content: "c", Author: "a",
				AppVersion: "1.0", AppName: "x", CountryCode: "us", AppID: 1},
			{Rating: 4, AppName: "x", CountryCode: "us", AppID: 1},
		},
	}

	sum := b.Build(ds)

	byColumn := map[string]int{}
	for _, cc := range sum.Missing {
		byColumn[cc.Column] = cc.Missing
	}
	require.Equal(t, 1, byColumn["date"])
	require.Equal(t, 0, byColumn["rating"])
	require.Equal(t, 1, byColumn["title"])
	require.Equal(t, 1, byColumn["content"])
	require.Equal(t, 1, byColumn["author"])
	require.Equal(t, 0, byColumn["app_name"])
	require.Equal(t, 0, byColumn["app_id"])
}

func TestRender_PrintsSummaryTables(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	b := testBuilder(&buf, now)

	ds := &domain.Dataset{
		Apps: []domain.AppInfo{
			{AppName: "Notes Pro", PrimaryGenre: "Productivity", UserRatingCount: 42,
				OriginalReleaseDate: now.AddDate(0, 0, -30).Format(time.RFC3339)},
		},
		Reviews: []domain.Review{
			{Date: "2026-08-01", Rating: 5, Title: "great", Author: "sam", AppName: "Notes Pro"},
		},
	}

	sum := b.Build(ds)
	b.Render(ds, sum)

	out := buf.String()
	require.Contains(t, out, "Apps released in the last 2 years: 1")
	require.Contains(t, out, "Notes Pro")
	require.Contains(t, out, "Total reviews across all scraped apps: 1")
	require.Contains(t, out, "Value counts for rating")
	require.Contains(t, out, "Missing values in reviews")
}

func TestRender_NoReviews(t *testing.T) {
	var buf bytes.Buffer
	b := testBuilder(&buf, time.Now())

	ds := &domain.Dataset{Apps: []domain.AppInfo{{AppName: "x"}}}
	sum := b.Build(ds)
	b.Render(ds, sum)

	require.Contains(t, buf.String(), "No reviews were collected.")
}
