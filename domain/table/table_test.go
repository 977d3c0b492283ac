package table

import (
	"testing"

	"pgtadash/internal/errors"
)

func testTable() *Table {
	return &Table{
		Columns: []string{"name", "value"},
		Rows: []Row{
			{"name": "a", "value": "1.5"},
			{"name": "b", "value": ""},
			{"name": "c", "value": "not-a-number"},
			{"name": "d", "value": "3"},
		},
	}
}

func TestFloatColumn(t *testing.T) {
	tbl := testTable()

	values, err := tbl.FloatColumn("value")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Blank and non-numeric cells are dropped, not zeroed.
	if len(values) != 2 {
		t.Fatalf("expected 2 parsed values, got %d", len(values))
	}
	if values[0] != 1.5 || values[1] != 3 {
		t.Errorf("unexpected values: %v", values)
	}
}

func TestFloatColumnMissing(t *testing.T) {
	tbl := testTable()

	_, err := tbl.FloatColumn("absent")
	if err == nil {
		t.Fatal("expected error for missing column")
	}
	if errors.GetCode(err) != errors.CodeMissingColumn {
		t.Errorf("expected MISSING_COLUMN code, got %s", errors.GetCode(err))
	}
}

func TestAlignedFloatColumns(t *testing.T) {
	tbl := &Table{
		Columns: []string{"x", "y"},
		Rows: []Row{
			{"x": "1", "y": "10"},
			{"x": "2", "y": ""}, // dropped from both vectors
			{"x": "3", "y": "30"},
		},
	}

	vectors, err := tbl.AlignedFloatColumns([]string{"x", "y"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	if len(vectors[0]) != 2 || len(vectors[1]) != 2 {
		t.Fatalf("expected aligned length 2, got %d and %d", len(vectors[0]), len(vectors[1]))
	}
	if vectors[0][1] != 3 || vectors[1][1] != 30 {
		t.Errorf("unexpected aligned values: %v", vectors)
	}
}

func TestRowFloat(t *testing.T) {
	row := Row{"value": " 42 "}
	v, ok := row.Float("value")
	if !ok || v != 42 {
		t.Errorf("expected 42, got %v (ok=%v)", v, ok)
	}
	if _, ok := row.Float("missing"); ok {
		t.Error("expected ok=false for missing cell")
	}
}

func TestWithRowsKeepsColumns(t *testing.T) {
	tbl := testTable()
	derived := tbl.WithRows(tbl.Rows[:1])

	if derived.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", derived.Len())
	}
	if len(derived.Columns) != len(tbl.Columns) {
		t.Errorf("derived table lost columns")
	}
	// The original table is untouched.
	if tbl.Len() != 4 {
		t.Errorf("source table mutated: %d rows", tbl.Len())
	}
}
