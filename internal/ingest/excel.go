package ingest

import (
	"context"
	"strings"

	"github.com/xuri/excelize/v2"

	"enmon/internal/errors"
	"enmon/pkg/contracts/domain"
)

// LoadExcelFile reads measurement data from an Excel workbook. The sheet
// containing the data is located by header sniffing: the first sheet whose
// first row carries a known schema column wins, falling back to the first
// sheet in the workbook. Rows then flow through the same parser as CSV.
func (l *Loader) LoadExcelFile(ctx context.Context, path string) (*domain.Dataset, Summary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, Summary{Source: path}, errors.NewStorageError("failed to open Excel file", err)
	}
	defer f.Close()

	rows, err := dataRows(f)
	if err != nil {
		return nil, Summary{Source: path}, err
	}

	return l.build(ctx, path, rows)
}

// dataRows finds the sheet whose header matches a known schema.
func dataRows(f *excelize.File) ([][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError("workbook contains no sheets", nil)
	}

	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		if headerMatchesSchema(rows[0]) {
			return rows, nil
		}
	}

	// No recognizable header; let the row parser fail per-row so the
	// caller still gets a proper empty-dataset error with row counts.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError("failed to read workbook sheet", err)
	}
	return rows, nil
}

// headerMatchesSchema reports whether a header row belongs to either the
// industrial or the simple layout.
func headerMatchesSchema(header []string) bool {
	for _, cell := range header {
		switch strings.TrimSpace(cell) {
		case colUsage, colDevice:
			return true
		}
	}
	return false
}
