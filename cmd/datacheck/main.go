package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"enmon/internal/analytics"
	"enmon/internal/config"
	"enmon/internal/errors"
	"enmon/internal/infrastructure"
	"enmon/internal/ingest"
	"enmon/pkg/contracts/domain"
)

// datacheck validates an input file and prints a parse summary, basic
// statistics and the dataset date range without generating any reports.
func main() {
	file := flag.String("file", "", "CSV or Excel file to check (required)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: datacheck -file data.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = &config.Config{}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogger()

	ctx := context.Background()
	loader := ingest.NewLoader(logger, cfg.Ingest)

	var (
		dataset *domain.Dataset
		summary ingest.Summary
	)
	switch strings.ToLower(filepath.Ext(*file)) {
	case ".xlsx", ".xlsm":
		dataset, summary, err = loader.LoadExcelFile(ctx, *file)
	default:
		dataset, summary, err = loader.LoadCSVFile(ctx, *file)
	}
	if err != nil {
		switch {
		case errors.IsEmptySource(err):
			fmt.Printf("FAIL: %s contains no data rows\n", *file)
		case errors.IsEmptyDataset(err):
			fmt.Printf("FAIL: %s has %d rows but none parsed\n", *file, summary.Rows)
			printDiagnostics(summary)
		default:
			logger.Error("load failed", "file", *file, "error", err)
		}
		os.Exit(1)
	}

	fmt.Printf("File:    %s\n", *file)
	fmt.Printf("Rows:    %d (parsed %d, failed %d)\n", summary.Rows, summary.Parsed, summary.Failed)
	printDiagnostics(summary)

	stats := analytics.BasicStatistics(dataset)
	fmt.Printf("Usage:   mean %.2f, min %.2f, max %.2f kWh over %d measurements\n",
		stats.MeanUsage, stats.MinUsage, stats.MaxUsage, stats.Count)
	fmt.Printf("CO2:     %.4f total\n", stats.TotalCO2)

	if min, ok := dataset.MinTimestamp(); ok {
		max, _ := dataset.MaxTimestamp()
		fmt.Printf("Range:   %s to %s (%d distinct dates)\n",
			min.Format("2006-01-02 15:04"), max.Format("2006-01-02 15:04"),
			len(analytics.AvailableDates(dataset)))
	}
}

func printDiagnostics(summary ingest.Summary) {
	for _, failure := range summary.Diagnostics {
		fmt.Printf("  row %d: %s\n", failure.Row, failure.Reason)
	}
	if extra := summary.Failed - len(summary.Diagnostics); extra > 0 {
		fmt.Printf("  ... and %d more failed rows\n", extra)
	}
}
