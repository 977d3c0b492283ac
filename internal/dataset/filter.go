package dataset

import (
	"sort"
	"strings"

	"pgtadash/domain/table"
)

// Filter returns the rows whose hospital_location is in locations AND whose
// Hospital is in hospitals. An empty selection on either axis yields an empty
// table; there is no implicit "all" fallback. Row order is preserved.
func Filter(t *table.Table, locations, hospitals []string) *table.Table {
	locSet := toSet(locations)
	hospSet := toSet(hospitals)

	kept := make([]table.Row, 0, len(t.Rows))
	if len(locSet) > 0 && len(hospSet) > 0 {
		for _, row := range t.Rows {
			if _, ok := locSet[row.Cell(ColLocation)]; !ok {
				continue
			}
			if _, ok := hospSet[row.Cell(ColHospital)]; !ok {
				continue
			}
			kept = append(kept, row)
		}
	}
	return t.WithRows(kept)
}

// Search restricts a table to rows where any cell's display string contains
// the query, case-insensitively. The empty query returns the table unchanged.
// Literal substring match, no regex.
func Search(t *table.Table, query string) *table.Table {
	if query == "" {
		return t
	}

	needle := strings.ToLower(query)
	kept := make([]table.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		for _, col := range t.Columns {
			if strings.Contains(strings.ToLower(row.Cell(col)), needle) {
				kept = append(kept, row)
				break
			}
		}
	}
	return t.WithRows(kept)
}

// DistinctValues returns the distinct values of a column, sorted ascending.
// These feed the filter UI defaults, where every value starts selected.
func DistinctValues(t *table.Table, column string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, row := range t.Rows {
		v := row.Cell(column)
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
