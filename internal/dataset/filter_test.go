package dataset

import (
	"strings"
	"testing"

	"pgtadash/domain/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func screeningTable() *table.Table {
	return &table.Table{
		Columns: []string{ColLocation, ColHospital, ColEmbryoCount, ColPatientCount, ColChRate, ColAfRate, ColIcRate},
		Rows: []table.Row{
			{ColLocation: "LocX", ColHospital: "A", ColEmbryoCount: "10", ColPatientCount: "3", ColChRate: "50", ColAfRate: "20", ColIcRate: "30"},
			{ColLocation: "LocY", ColHospital: "B", ColEmbryoCount: "20", ColPatientCount: "5", ColChRate: "70", ColAfRate: "25", ColIcRate: "35"},
			{ColLocation: "LocX", ColHospital: "A", ColEmbryoCount: "5", ColPatientCount: "2", ColChRate: "60", ColAfRate: "22", ColIcRate: "32"},
		},
	}
}

func TestFilterSelectsMatchingRows(t *testing.T) {
	tbl := screeningTable()

	filtered := Filter(tbl, []string{"LocX"}, []string{"A"})

	require.Equal(t, 2, filtered.Len())
	assert.Equal(t, "10", filtered.Rows[0].Cell(ColEmbryoCount))
	assert.Equal(t, "5", filtered.Rows[1].Cell(ColEmbryoCount))
	for _, row := range filtered.Rows {
		assert.Equal(t, "LocX", row.Cell(ColLocation))
		assert.Equal(t, "A", row.Cell(ColHospital))
	}
}

func TestFilterFullSelectionIsIdentity(t *testing.T) {
	tbl := screeningTable()

	filtered := Filter(tbl, DistinctValues(tbl, ColLocation), DistinctValues(tbl, ColHospital))

	require.Equal(t, tbl.Len(), filtered.Len())
	for i := range tbl.Rows {
		assert.Equal(t, tbl.Rows[i], filtered.Rows[i], "row order must be preserved")
	}
}

func TestFilterEmptySelectionYieldsEmptyTable(t *testing.T) {
	tbl := screeningTable()

	assert.Equal(t, 0, Filter(tbl, nil, []string{"A"}).Len())
	assert.Equal(t, 0, Filter(tbl, []string{"LocX"}, nil).Len())
	assert.Equal(t, 0, Filter(tbl, nil, nil).Len())
}

func TestFilterDoesNotMutateSource(t *testing.T) {
	tbl := screeningTable()
	Filter(tbl, []string{"LocX"}, []string{"A"})
	assert.Equal(t, 3, tbl.Len())
}

func TestSearchEmptyQueryIsIdentity(t *testing.T) {
	tbl := screeningTable()
	assert.Same(t, tbl, Search(tbl, ""))
}

func TestSearchMatchesAnyColumnCaseInsensitive(t *testing.T) {
	tbl := screeningTable()

	result := Search(tbl, "locy")
	require.Equal(t, 1, result.Len())
	assert.Equal(t, "B", result.Rows[0].Cell(ColHospital))

	// Numeric cells are searched through their display string.
	result = Search(tbl, "70")
	require.Equal(t, 1, result.Len())
	assert.Equal(t, "LocY", result.Rows[0].Cell(ColLocation))
}

func TestSearchResultIsSubsetWithQueryPresent(t *testing.T) {
	tbl := screeningTable()

	result := Search(tbl, "A")
	for _, row := range result.Rows {
		found := false
		for _, col := range tbl.Columns {
			if strings.Contains(strings.ToLower(row.Cell(col)), "a") {
				found = true
				break
			}
		}
		assert.True(t, found, "every result row must contain the query")
	}
}

func TestSearchNoMatchYieldsEmptyTable(t *testing.T) {
	tbl := screeningTable()
	assert.Equal(t, 0, Search(tbl, "zzz-no-such-value").Len())
}

func TestSearchPreservesRowOrder(t *testing.T) {
	tbl := screeningTable()

	result := Search(tbl, "LocX")
	require.Equal(t, 2, result.Len())
	assert.Equal(t, "10", result.Rows[0].Cell(ColEmbryoCount))
	assert.Equal(t, "5", result.Rows[1].Cell(ColEmbryoCount))
}

func TestDistinctValuesSorted(t *testing.T) {
	tbl := screeningTable()

	assert.Equal(t, []string{"LocX", "LocY"}, DistinctValues(tbl, ColLocation))
	assert.Equal(t, []string{"A", "B"}, DistinctValues(tbl, ColHospital))
	assert.Empty(t, DistinctValues(tbl.WithRows(nil), ColHospital))
}
