package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"enmon/internal/config"
	"enmon/internal/exporter"
	"enmon/internal/infrastructure"
	"enmon/internal/ingest"
	"enmon/internal/reports"
	"enmon/pkg/contracts/domain"
)

func main() {
	file := flag.String("file", "", "CSV or Excel file to load (required)")
	kind := flag.String("report", "all", "report kind: daily | weekly | monthly | efficiency | all")
	dateFlag := flag.String("date", "", "anchor date YYYY-MM-DD (default: latest date in the data)")
	price := flag.Float64("price", 0, "price per kWh (default: configured value)")
	out := flag.String("out", "", "directory to export report files into (default: print to stdout)")
	asJSON := flag.Bool("json", false, "export reports as JSON instead of text (requires -out)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: energy-report -file data.csv [-report daily|weekly|monthly|efficiency|all] [-date YYYY-MM-DD] [-price 0.15] [-out dir] [-json]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = &config.Config{}
	}
	if *price > 0 {
		cfg.Pricing.CostPerKWh = *price
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogger()

	ctx := context.Background()
	ds, summary, err := loadDataset(ctx, logger, cfg, *file)
	if err != nil {
		logger.Error("failed to load measurements", "file", *file, "error", err)
		os.Exit(1)
	}
	logger.Info("dataset loaded",
		slog.String("file", *file),
		slog.Int("rows", summary.Rows),
		slog.Int("parsed", summary.Parsed),
		slog.Int("failed", summary.Failed))

	gen := reports.NewGenerator(logger, cfg.Pricing)
	generated, err := buildReports(gen, ds, *kind, *dateFlag)
	if err != nil {
		logger.Error("failed to generate reports", "error", err)
		os.Exit(1)
	}

	if *out == "" {
		for _, report := range generated {
			fmt.Println(reports.Render(report))
		}
		return
	}

	writer := exporter.NewCSVWriter(*out, logger)
	for _, report := range generated {
		name := reportFileName(report, *asJSON)
		if *asJSON {
			err = writer.WriteReportJSON(report, name)
		} else {
			err = writer.WriteReportText(report, name)
		}
		if err != nil {
			logger.Error("failed to export report", "report", reports.Summary(report), "error", err)
			os.Exit(1)
		}
		if err := writer.AppendReportIndex(report, name, "index.csv"); err != nil {
			logger.Warn("failed to update report index", "error", err)
		}
		fmt.Printf("wrote %s\n", filepath.Join(*out, name))
	}
}

// reportFileName derives the export file name, extension included, from
// the report's kind and period.
func reportFileName(report *domain.Report, asJSON bool) string {
	ext := ".txt"
	if asJSON {
		ext = ".json"
	}
	return fmt.Sprintf("%s_%s%s", report.Kind, sanitizePeriod(report.Period), ext)
}

func loadDataset(ctx context.Context, logger *slog.Logger, cfg *config.Config, path string) (*domain.Dataset, ingest.Summary, error) {
	loader := ingest.NewLoader(logger, cfg.Ingest)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loader.LoadExcelFile(ctx, path)
	default:
		return loader.LoadCSVFile(ctx, path)
	}
}

func buildReports(gen *reports.Generator, ds *domain.Dataset, kind, dateFlag string) ([]*domain.Report, error) {
	anchor, ok := ds.MaxTimestamp()
	if !ok {
		return nil, fmt.Errorf("dataset is empty")
	}
	if dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid -date %q: %w", dateFlag, err)
		}
		anchor = parsed
	}

	switch kind {
	case "daily":
		return []*domain.Report{gen.Daily(ds, anchor)}, nil
	case "weekly":
		return []*domain.Report{gen.Weekly(ds, anchor)}, nil
	case "monthly":
		return []*domain.Report{gen.Monthly(ds, anchor.Year(), anchor.Month())}, nil
	case "efficiency":
		return []*domain.Report{gen.EfficiencyFull(ds)}, nil
	case "all":
		return []*domain.Report{
			gen.Daily(ds, anchor),
			gen.Weekly(ds, anchor),
			gen.Monthly(ds, anchor.Year(), anchor.Month()),
			gen.EfficiencyFull(ds),
		}, nil
	default:
		return nil, fmt.Errorf("unknown report kind %q", kind)
	}
}

func sanitizePeriod(period string) string {
	return strings.NewReplacer(" ", "_", ":", "-").Replace(period)
}
