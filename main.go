package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"

	"uk-parliament-scraper/config"
	"uk-parliament-scraper/models"
	"uk-parliament-scraper/scraper"
	"uk-parliament-scraper/source/snapshot"
	"uk-parliament-scraper/storage"
	"uk-parliament-scraper/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(cfg.LogLevel)

	runID := uuid.New().String()
	logger.Info("=== UK Parliament Scraper starting (run %s) ===", runID)
	logger.Info("Config — manifest: %s | output dir: %s | current only: %t | export type: %s",
		cfg.SourceManifest, cfg.OutputDir, cfg.CurrentOnly, cfg.ExportType)

	src, err := snapshot.New(cfg.SourceManifest, logger)
	if err != nil {
		logger.Error("Failed to open snapshot source: %v", err)
		os.Exit(1)
	}

	cache := scraper.NewCache()
	writer := storage.NewCSVWriter(cfg.OutputDir, logger)
	svc := scraper.New(src, writer, cache, logger)

	ctx := context.Background()
	report, err := svc.ScrapeAll(ctx, cfg.CurrentOnly)
	if err != nil {
		logger.Error("Scrape failed: %v", err)
		os.Exit(1)
	}

	printSummary(report)

	files, err := svc.ExportCSV(ctx, cfg.ExportType, scraper.FetchOptions{Current: cfg.CurrentOnly})
	if err != nil {
		logger.Error("CSV export failed: %v", err)
		os.Exit(1)
	}
	for _, f := range files {
		logger.Info("Exported %s", f)
	}

	if last, ok := svc.LastUpdated(); ok {
		logger.Info("Cache %s (%d entries) — last updated %s",
			cache.Status(), cache.Len(), last.Format("2006-01-02 15:04:05"))
	}

	fmt.Printf("  Done. %d CSV files → %s/\n\n", len(files), cfg.OutputDir)
}

func printSummary(report *models.Report) {
	fmt.Println()
	fmt.Printf("\033[1;33m  Scrape Summary\033[0m\n")

	rows := [][]string{
		{"MPs", strconv.Itoa(report.Summary.TotalMPs)},
		{"Lords", strconv.Itoa(report.Summary.TotalLords)},
		{"MP government roles", strconv.Itoa(report.Summary.TotalMPsGovRoles)},
		{"Lord government roles", strconv.Itoa(report.Summary.TotalLordsGovRoles)},
		{"MP committee memberships", strconv.Itoa(report.Summary.TotalMPsCommittees)},
		{"Lord committee memberships", strconv.Itoa(report.Summary.TotalLordsCommittees)},
	}
	fmt.Print(utils.RenderTable([]string{"Table", "Records"}, rows))
	fmt.Println()
}
