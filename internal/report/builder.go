package report

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"appstore_collector/internal/domain"
)

// Apps released within the last two years count as "recent".
const recentAgeLimitDays = 730

const topAppCount = 10

// Builder computes the derived columns and aggregate views over a
// scraped dataset and renders them as console tables.
type Builder struct {
	logger *slog.Logger
	out    io.Writer
	now    func() time.Time
}

func NewBuilder(logger *slog.Logger, out io.Writer) *Builder {
	return &Builder{
		logger: logger,
		out:    out,
		now:    time.Now,
	}
}

// RatingCount is one bucket of the review-rating histogram.
type RatingCount struct {
	Rating int
	Count  int
}

// ColumnCount is the number of missing values in one review column.
type ColumnCount struct {
	Column  string
	Missing int
}

// Summary is the aggregate view over one dataset.
type Summary struct {
	RecentApps   []domain.AppInfo
	TotalReviews int
	RatingCounts []RatingCount
	Missing      []ColumnCount
}

// Build attaches the derived columns (parsed dates, app_age_days) to
// every app record in place, then computes the recent/trending view and
// the review aggregates. Unparsable dates yield nil, not an error.
func (b *Builder) Build(ds *domain.Dataset) *Summary {
	now := b.now()

	for i := range ds.Apps {
		app := &ds.Apps[i]
		app.OriginalRelease = parseDate(app.OriginalReleaseDate)
		app.CurrentVersionRelease = parseDate(app.CurrentVersionReleaseDate)
		if app.OriginalRelease != nil {
			age := int(now.Sub(*app.OriginalRelease).Hours() / 24)
			app.AppAgeDays = &age
		}
	}

	var recent []domain.AppInfo
	for _, app := range ds.Apps {
		if app.AppAgeDays != nil && *app.AppAgeDays <= recentAgeLimitDays {
			recent = append(recent, app)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].UserRatingCount > recent[j].UserRatingCount
	})

	b.logger.Info("report built",
		"apps", len(ds.Apps),
		"recent", len(recent),
		"reviews", len(ds.Reviews),
	)

	return &Summary{
		RecentApps:   recent,
		TotalReviews: len(ds.Reviews),
		RatingCounts: ratingCounts(ds.Reviews),
		Missing:      missingCounts(ds.Reviews),
	}
}

// Render prints the summary tables to the builder's output stream.
func (b *Builder) Render(ds *domain.Dataset, sum *Summary) {
	fmt.Fprintf(b.out, "\nApps released in the last 2 years: %d\n", len(sum.RecentApps))
	fmt.Fprintf(b.out, "\nTop %d newer apps by user rating count:\n", topAppCount)
	b.renderTopApps(sum.RecentApps)

	if sum.TotalReviews == 0 {
		fmt.Fprintln(b.out, "\nNo reviews were collected.")
		return
	}

	fmt.Fprintf(b.out, "\nTotal reviews across all scraped apps: %d\n", sum.TotalReviews)
	fmt.Fprintln(b.out, "\nFirst rows of combined reviews:")
	b.renderReviewHead(ds.Reviews)

	fmt.Fprintln(b.out, "\nValue counts for rating across all apps:")
	b.renderRatingCounts(sum.RatingCounts)

	fmt.Fprintln(b.out, "\nMissing values in reviews:")
	b.renderMissing(sum.Missing)
}

func (b *Builder) newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(b.out)
	return t
}

func (b *Builder) renderTopApps(recent []domain.AppInfo) {
	t := b.newTable()
	t.AppendHeader(table.Row{
		"app_name", "primary_genre", "original_release_date",
		"app_age_days", "user_rating_count", "average_user_rating",
	})

	n := len(recent)
	if n > topAppCount {
		n = topAppCount
	}
	for _, app := range recent[:n] {
		t.AppendRow(table.Row{
			app.AppName,
			app.PrimaryGenre,
			formatDate(app.OriginalRelease),
			formatAge(app.AppAgeDays),
			app.UserRatingCount,
			fmt.Sprintf("%.2f", app.AverageUserRating),
		})
	}
	t.Render()
}

func (b *Builder) renderReviewHead(reviews []domain.Review) {
	t := b.newTable()
	t.AppendHeader(table.Row{"date", "rating", "title", "author", "app_name"})

	n := len(reviews)
	if n > 5 {
		n = 5
	}
	for _, r := range reviews[:n] {
		t.AppendRow(table.Row{r.Date, r.Rating, r.Title, r.Author, r.AppName})
	}
	t.Render()
}

func (b *Builder) renderRatingCounts(counts []RatingCount) {
	t := b.newTable()
	t.AppendHeader(table.Row{"rating", "count"})
	for _, rc := range counts {
		t.AppendRow(table.Row{rc.Rating, rc.Count})
	}
	t.Render()
}

func (b *Builder) renderMissing(missing []ColumnCount) {
	t := b.newTable()
	t.AppendHeader(table.Row{"column", "missing"})
	for _, cc := range missing {
		t.AppendRow(table.Row{cc.Column, cc.Missing})
	}
	t.Render()
}

// ratingCounts buckets reviews by rating, sorted by rating descending.
func ratingCounts(reviews []domain.Review) []RatingCount {
	byRating := make(map[int]int)
	for _, r := range reviews {
		byRating[r.Rating]++
	}

	counts := make([]RatingCount, 0, len(byRating))
	for rating, count := range byRating {
		counts = append(counts, RatingCount{Rating: rating, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Rating > counts[j].Rating
	})
	return counts
}

// missingCounts counts empty values per review column, in the column
// order of the review artifact.
func missingCounts(reviews []domain.Review) []ColumnCount {
	columns := []struct {
		name    string
		missing func(domain.Review) bool
	}{
		{"date", func(r domain.Review) bool { return r.Date == "" }},
		{"rating", func(r domain.Review) bool { return r.Rating == 0 }},
		{"title", func(r domain.Review) bool { return r.Title == "" }},
		{"content", func(r domain.Review) bool { return r.Content == "" }},
		{"author", func(r domain.Review) bool { return r.Author == "" }},
		{"app_version", func(r domain.Review) bool { return r.AppVersion == "" }},
		{"app_name", func(r domain.Review) bool { return r.AppName == "" }},
		{"country_code", func(r domain.Review) bool { return r.CountryCode == "" }},
		{"app_id", func(r domain.Review) bool { return r.AppID == 0 }},
	}

	counts := make([]ColumnCount, 0, len(columns))
	for _, col := range columns {
		cc := ColumnCount{Column: col.name}
		for _, r := range reviews {
			if col.missing(r) {
				cc.Missing++
			}
		}
		counts = append(counts, cc)
	}
	return counts
}

// parseDate accepts the store's RFC3339 timestamps with a date-only
// fallback. Anything else is treated as missing.
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatAge(age *int) string {
	if age == nil {
		return ""
	}
	return fmt.Sprintf("%d", *age)
}
