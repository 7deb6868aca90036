package ingest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"enmon/internal/errors"
)

func writeWorkbook(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadExcelFile(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Data": {
			{"device", "power", "timestamp"},
			{"boiler", "4.5", "2024-01-15T08:00:00"},
			{"boiler", "5.5", "2024-01-15T09:00:00"},
		},
	})

	ds, summary, err := newTestLoader(t).LoadExcelFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 2, summary.Parsed)
}

func TestLoadExcelFile_SniffsDataSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Notes": {
			{"this sheet has no measurement columns"},
		},
		"Measurements": {
			{"device", "power", "timestamp"},
			{"pump", "2.0", "2024-01-15T08:00:00"},
		},
	})

	ds, _, err := newTestLoader(t).LoadExcelFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	first, _ := ds.First()
	assert.Equal(t, "pump", first.LoadType)
}

func TestLoadExcelFile_Missing(t *testing.T) {
	_, _, err := newTestLoader(t).LoadExcelFile(context.Background(), filepath.Join(t.TempDir(), "missing.xlsx"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeStorage))
}
