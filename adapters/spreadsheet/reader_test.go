package spreadsheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeExcelFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{" hospital_location ", "Hospital", "embryo_count"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"LocX", "A", 10}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"LocY", "B", 20}))

	path := filepath.Join(t.TempDir(), "records.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadExcelFirstSheet(t *testing.T) {
	path := writeExcelFixture(t)

	tbl, err := NewReader(path, "").Read()
	require.NoError(t, err)

	// Headers are trimmed.
	assert.Equal(t, []string{"hospital_location", "Hospital", "embryo_count"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "LocX", tbl.Rows[0].Cell("hospital_location"))
	assert.Equal(t, "10", tbl.Rows[0].Cell("embryo_count"))
	assert.Equal(t, "B", tbl.Rows[1].Cell("Hospital"))
}

func TestReadExcelNamedSheet(t *testing.T) {
	path := writeExcelFixture(t)

	tbl, err := NewReader(path, "Sheet1").Read()
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	_, err = NewReader(path, "NoSuchSheet").Read()
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	content := "hospital_location,Hospital,embryo_count\n" +
		"LocX,A,10\n" +
		"\"Loc, with comma\",B,20\n"
	path := filepath.Join(t.TempDir(), "records.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tbl, err := NewReader(path, "").Read()
	require.NoError(t, err)

	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "Loc, with comma", tbl.Rows[1].Cell("hospital_location"))
}

func TestReadCSVHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n"), 0o644))

	tbl, err := NewReader(path, "").Read()
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Columns)
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "missing.xlsx"), "").Read()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadShortRowsPadWithAbsentCells(t *testing.T) {
	content := "a,b,c\n1,2\n"
	path := filepath.Join(t.TempDir(), "short.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tbl, err := NewReader(path, "").Read()
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "", tbl.Rows[0].Cell("c"))
}
