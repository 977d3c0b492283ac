package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"pgtadash/domain/table"
	"pgtadash/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVBytesRoundTrip(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"hospital_location", "Hospital", "embryo_count"},
		Rows: []table.Row{
			{"hospital_location": "LocX", "Hospital": "A", "embryo_count": "10"},
			{"hospital_location": "Loc, with comma", "Hospital": "B", "embryo_count": "20"},
		},
	}

	data, err := CSVBytes(tbl)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, tbl.Columns, records[0])
	assert.Equal(t, []string{"LocX", "A", "10"}, records[1])
	assert.Equal(t, []string{"Loc, with comma", "B", "20"}, records[2])
}

func TestCSVBytesEmptyTable(t *testing.T) {
	data, err := CSVBytes(table.New([]string{"a", "b"}))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestDescribeCSVBytes(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"v"},
		Rows: []table.Row{
			{"v": "10"}, {"v": "20"}, {"v": "30"}, {"v": "40"},
		},
	}
	report, err := analysis.Describe(tbl, []string{"v"})
	require.NoError(t, err)

	data, err := DescribeCSVBytes(report)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 9)
	assert.Equal(t, []string{"stat", "v"}, records[0])
	assert.Equal(t, []string{"count", "4"}, records[1])
	assert.Equal(t, []string{"mean", "25"}, records[2])
	assert.Equal(t, []string{"min", "10"}, records[4])
	assert.Equal(t, []string{"25%", "15"}, records[5])
	assert.Equal(t, []string{"50%", "25"}, records[6])
	assert.Equal(t, []string{"75%", "35"}, records[7])
	assert.Equal(t, []string{"max", "40"}, records[8])
}

func TestDescribeCSVBytesUndefinedStats(t *testing.T) {
	report, err := analysis.Describe(table.New([]string{"v"}), []string{"v"})
	require.NoError(t, err)

	data, err := DescribeCSVBytes(report)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"count", "0"}, records[1])
	assert.Equal(t, []string{"mean", "NaN"}, records[2])
	assert.Equal(t, []string{"std", "NaN"}, records[3])
}
