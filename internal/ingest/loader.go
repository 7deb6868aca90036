package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"

	"enmon/internal/config"
	"enmon/internal/errors"
	"enmon/pkg/contracts/domain"
)

// RowFailure records one source row that could not be turned into a
// measurement. Failures are values, not errors: the batch continues.
type RowFailure struct {
	Row    int    `json:"row"` // 1-based data row number, header excluded
	Reason string `json:"reason"`
}

// Summary describes the outcome of one load.
type Summary struct {
	Source      string       `json:"source"`
	Rows        int          `json:"rows"`
	Parsed      int          `json:"parsed"`
	Failed      int          `json:"failed"`
	Diagnostics []RowFailure `json:"diagnostics,omitempty"` // first few failures only
}

// Loader reads delimited sources into an immutable measurement store.
type Loader struct {
	logger         *slog.Logger
	validate       *validator.Validate
	maxDiagnostics int
}

// NewLoader creates a loader with the given configuration.
func NewLoader(logger *slog.Logger, cfg config.IngestConfig) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	maxDiagnostics := cfg.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 5
	}
	return &Loader{
		logger:         logger,
		validate:       validator.New(),
		maxDiagnostics: maxDiagnostics,
	}
}

// LoadCSV reads comma-separated measurement data from r. The first row
// must be a header. The returned dataset replaces any previously loaded
// one wholesale; partially loaded data is never exposed.
func (l *Loader) LoadCSV(ctx context.Context, r io.Reader, source string) (*domain.Dataset, Summary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, Summary{Source: source}, errors.NewParsingError("failed to read CSV source", err)
	}

	return l.build(ctx, source, records)
}

// LoadCSVFile reads measurement data from a CSV file on disk.
func (l *Loader) LoadCSVFile(ctx context.Context, path string) (*domain.Dataset, Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Summary{Source: path}, errors.NewStorageError("failed to open CSV file", err)
	}
	defer file.Close()

	return l.LoadCSV(ctx, file, path)
}

// build converts raw records (header first) into a dataset, absorbing
// row-level failures and surfacing dataset-level ones.
func (l *Loader) build(ctx context.Context, source string, records [][]string) (*domain.Dataset, Summary, error) {
	summary := Summary{Source: source}

	if len(records) <= 1 {
		// A header with no data rows is still an empty source.
		return nil, summary, errors.NewEmptySourceError(source)
	}

	columns := MapColumns(records[0])
	measurements := make([]domain.Measurement, 0, len(records)-1)

	for i, row := range records[1:] {
		summary.Rows++

		m, err := ParseRow(row, columns)
		if err != nil {
			l.recordFailure(ctx, &summary, i+1, err.Error())
			continue
		}
		if err := l.validate.Struct(m); err != nil {
			l.recordFailure(ctx, &summary, i+1, fmt.Sprintf("validation failed: %v", err))
			continue
		}

		measurements = append(measurements, m)
		summary.Parsed++
	}

	if summary.Parsed == 0 {
		return nil, summary, errors.NewEmptyDatasetError(source, summary.Rows)
	}

	l.logger.InfoContext(ctx, "loaded measurement dataset",
		slog.String("source", source),
		slog.Int("rows", summary.Rows),
		slog.Int("parsed", summary.Parsed),
		slog.Int("failed", summary.Failed))

	return domain.NewDataset(measurements), summary, nil
}

// recordFailure counts a row failure, keeping only the first few as
// diagnostics to avoid flooding logs on badly broken files.
func (l *Loader) recordFailure(ctx context.Context, summary *Summary, row int, reason string) {
	summary.Failed++
	if len(summary.Diagnostics) < l.maxDiagnostics {
		summary.Diagnostics = append(summary.Diagnostics, RowFailure{Row: row, Reason: reason})
		l.logger.WarnContext(ctx, "dropped unparseable row",
			slog.Int("row", row),
			slog.String("reason", reason))
	}
}
