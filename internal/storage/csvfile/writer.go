package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"appstore_collector/internal/domain"
)

// Writer persists a scraped dataset as the two CSV artifacts. Files are
// created (or truncated) on each write.
type Writer struct {
	dir         string
	reviewsFile string
	appInfoFile string
}

func NewWriter(dir, reviewsFile, appInfoFile string) *Writer {
	return &Writer{
		dir:         dir,
		reviewsFile: reviewsFile,
		appInfoFile: appInfoFile,
	}
}

// ReviewsPath returns the full path of the review artifact.
func (w *Writer) ReviewsPath() string {
	return filepath.Join(w.dir, w.reviewsFile)
}

// AppInfoPath returns the full path of the app-info artifact.
func (w *Writer) AppInfoPath() string {
	return filepath.Join(w.dir, w.appInfoFile)
}

// WriteReviews writes the review table. The first column is an unnamed
// row index, matching the shape consumers of this artifact expect.
func (w *Writer) WriteReviews(reviews []domain.Review) error {
	header := []string{
		"", "date", "rating", "title", "content", "author",
		"app_version", "app_name", "country_code", "app_id",
	}

	rows := make([][]string, 0, len(reviews))
	for i, r := range reviews {
		rows = append(rows, []string{
			strconv.Itoa(i),
			r.Date,
			strconv.Itoa(r.Rating),
			r.Title,
			r.Content,
			r.Author,
			r.AppVersion,
			r.AppName,
			r.CountryCode,
			strconv.FormatInt(r.AppID, 10),
		})
	}

	return w.writeFile(w.ReviewsPath(), header, rows)
}

// WriteAppInfo writes the app-info table, without an index column. The
// derived columns attached by the report builder come last.
func (w *Writer) WriteAppInfo(apps []domain.AppInfo) error {
	header := []string{
		"app_name", "country_code", "app_id", "developer_name",
		"primary_genre", "average_user_rating", "user_rating_count",
		"current_version_release_date", "original_release_date",
		"price", "currency", "app_age_days",
	}

	rows := make([][]string, 0, len(apps))
	for _, a := range apps {
		age := ""
		if a.AppAgeDays != nil {
			age = strconv.Itoa(*a.AppAgeDays)
		}
		rows = append(rows, []string{
			a.AppName,
			a.CountryCode,
			strconv.FormatInt(a.AppID, 10),
			a.DeveloperName,
			a.PrimaryGenre,
			strconv.FormatFloat(a.AverageUserRating, 'f', -1, 64),
			strconv.FormatInt(a.UserRatingCount, 10),
			a.CurrentVersionReleaseDate,
			a.OriginalReleaseDate,
			strconv.FormatFloat(a.Price, 'f', -1, 64),
			a.Currency,
			age,
		})
	}

	return w.writeFile(w.AppInfoPath(), header, rows)
}

func (w *Writer) writeFile(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("csv: create output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(append([][]string{header}, rows...)); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: write %q: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("csv: close %q: %w", path, err)
	}
	return nil
}
