package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"appstore_collector/internal/config"
	"appstore_collector/internal/report"
	"appstore_collector/internal/service"
	"appstore_collector/internal/source/appstore"
	"appstore_collector/internal/storage/csvfile"
)

func main() {
	configPath := flag.String("config", "", "path to optional config file")
	outputDir := flag.String("output-dir", ".", "directory for the CSV artifacts")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	client := appstore.New(appstore.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, logger)

	aggregator := service.NewSearchAggregator(client, logger, cfg.Scrape)
	fetcher := service.NewAppDetailFetcher(client, logger)
	scraper := service.NewBatchScraper(fetcher, logger, cfg.Scrape)

	ctx := context.Background()

	logger.Info("starting app search by keywords",
		"terms", len(cfg.Scrape.SearchTerms),
		"country", cfg.Scrape.CountryCode,
	)

	candidates, err := aggregator.Discover(ctx)
	if err != nil {
		logger.Error("search aggregation aborted", "error", err)
		os.Exit(1)
	}
	if len(candidates) == 0 {
		logger.Error("no apps found from search, try different search terms or country codes")
		return
	}

	logger.Info("proceeding to detail scrape", "apps", len(candidates))

	dataset, err := scraper.Run(ctx, candidates)
	if err != nil {
		logger.Error("batch scrape aborted", "error", err)
		os.Exit(1)
	}
	if len(dataset.Apps) == 0 {
		logger.Error("no app information was successfully scraped")
		return
	}

	builder := report.NewBuilder(logger, os.Stdout)
	summary := builder.Build(dataset)
	builder.Render(dataset, summary)

	writer := csvfile.NewWriter(*outputDir, cfg.Output.ReviewsFile, cfg.Output.AppInfoFile)

	if err := writer.WriteReviews(dataset.Reviews); err != nil {
		logger.Error("failed to save review data", "error", err)
	} else {
		logger.Info("review data saved", "file", writer.ReviewsPath())
	}

	if err := writer.WriteAppInfo(dataset.Apps); err != nil {
		logger.Error("failed to save app info data", "error", err)
	} else {
		logger.Info("app info saved", "file", writer.AppInfoPath())
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}
