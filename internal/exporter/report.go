package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"enmon/internal/reports"
	"enmon/pkg/contracts/domain"
)

// reportEnvelope wraps a report with export metadata for JSON output.
type reportEnvelope struct {
	ExportedAt time.Time      `json:"exported_at"`
	Report     *domain.Report `json:"report"`
}

// WriteReportText renders a report and writes the text to a file.
func (w *CSVWriter) WriteReportText(report *domain.Report, filePath string) error {
	fullPath := w.resolvePath(filePath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	w.logger.Info("writing report text",
		"path", fullPath,
		"report", reports.Summary(report))

	if err := os.WriteFile(fullPath, []byte(reports.Render(report)), 0644); err != nil {
		return fmt.Errorf("failed to write report text: %w", err)
	}
	return nil
}

var reportIndexHeaders = []string{"generated_at", "kind", "period", "measurements", "file"}

// AppendReportIndex records an exported report in a running index CSV,
// creating the file with headers on first use. The index accumulates
// across runs so callers can see what was exported when.
func (w *CSVWriter) AppendReportIndex(report *domain.Report, fileName, indexPath string) error {
	record := [][]string{{
		report.GeneratedAt.Format("2006-01-02 15:04:05"),
		string(report.Kind),
		report.Period,
		formatInt(report.MeasurementCount),
		fileName,
	}}

	if _, err := os.Stat(w.resolvePath(indexPath)); os.IsNotExist(err) {
		return w.WriteCSV(indexPath, WriteOptions{
			Headers:   reportIndexHeaders,
			Records:   record,
			BOMPrefix: true,
		})
	}
	return w.AppendToCSV(indexPath, record)
}

// WriteReportJSON writes a report as indented JSON wrapped in a metadata
// envelope.
func (w *CSVWriter) WriteReportJSON(report *domain.Report, filePath string) error {
	fullPath := w.resolvePath(filePath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(reportEnvelope{
		ExportedAt: time.Now(),
		Report:     report,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	w.logger.Info("writing report JSON",
		"path", fullPath,
		"report", reports.Summary(report))

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report JSON: %w", err)
	}
	return nil
}
