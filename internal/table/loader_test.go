package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestCSVLoader(t *testing.T) {
	l := &CSVLoader{}
	assert.Equal(t, "csv", l.Format())

	recs, err := l.Load(strings.NewReader(sample2B))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "10000", recs[0]["2B Amount"])
}

func TestXLSXLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gstr3b.xlsx")
	writeWorkbook(t, path, [][]any{
		{"Invoice ID", "Supplier GSTIN", "3B Amount"},
		{"INV123", "29ABCDE1234F1Z5", 8500},
		{"INV124", "", "₹8,500"},
	})

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	recs, err := (&XLSXLoader{}).Load(f)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "INV123", recs[0]["Invoice ID"])
	assert.Equal(t, "8500", recs[0]["3B Amount"])
	assert.Equal(t, "", recs[1]["Supplier GSTIN"])
	assert.Equal(t, "₹8,500", recs[1]["3B Amount"])
}

func TestXLSXLoader_NotAWorkbook(t *testing.T) {
	_, err := (&XLSXLoader{}).Load(strings.NewReader("not a zip"))
	assert.Error(t, err)
}

func TestLoadFile_Testdata(t *testing.T) {
	recs, err := LoadFile("../../testdata/gstr2b.csv")
	require.NoError(t, err)
	require.NotEmpty(t, recs)
	for i, r := range recs {
		_, ok := r.Get("Invoice ID")
		assert.True(t, ok, "record %d missing Invoice ID field", i)
	}
}

func TestLoadFile_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "returns.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "csv, xlsx")
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_ExtensionCaseInsensitive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "GSTR2B.CSV")
	require.NoError(t, os.WriteFile(path, []byte(sample2B), 0o644))

	recs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("csv"))

	r.Register(&CSVLoader{})
	assert.NotNil(t, r.Get("CSV"))
	assert.NotNil(t, r.Get(".csv"))
	assert.Equal(t, []string{"csv"}, r.Formats())

	assert.Panics(t, func() { r.Register(&CSVLoader{}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"csv", "xlsx"}, r.Formats())
}
