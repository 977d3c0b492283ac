package export

import (
	"bytes"
	"encoding/csv"
	"math"
	"strconv"

	"pgtadash/domain/table"
	"pgtadash/internal/analysis"
	"pgtadash/internal/errors"
)

// Fixed download filenames.
const (
	FilteredFileName   = "filtered_pgt_data.csv"
	StatisticsFileName = "statistics.csv"
)

// CSVBytes serializes a table as RFC 4180 CSV: header row first, then one row
// per record, columns in table order. encoding/csv quotes cells containing the
// delimiter, so the output reparses to the original values exactly.
func CSVBytes(t *table.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Columns); err != nil {
		return nil, errors.Wrap(err, "failed to write CSV header")
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = row.Cell(col)
		}
		if err := w.Write(record); err != nil {
			return nil, errors.Wrap(err, "failed to write CSV row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to flush CSV output")
	}
	return buf.Bytes(), nil
}

// statRows is the row order of the statistics download, matching the
// descriptive report shown on the dashboard.
var statRows = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// DescribeCSVBytes serializes a descriptive-statistics report: a leading
// "stat" column naming the statistic, then one column per described column.
// Values are unrounded; undefined statistics serialize as NaN.
func DescribeCSVBytes(d *analysis.DescriptiveStats) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, 0, len(d.Columns)+1)
	header = append(header, "stat")
	for _, cs := range d.Columns {
		header = append(header, cs.Column)
	}
	if err := w.Write(header); err != nil {
		return nil, errors.Wrap(err, "failed to write statistics header")
	}

	for _, name := range statRows {
		record := make([]string, 0, len(d.Columns)+1)
		record = append(record, name)
		for _, cs := range d.Columns {
			record = append(record, formatStat(name, cs))
		}
		if err := w.Write(record); err != nil {
			return nil, errors.Wrap(err, "failed to write statistics row")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to flush statistics output")
	}
	return buf.Bytes(), nil
}

func formatStat(name string, cs analysis.ColumnStats) string {
	var v float64
	switch name {
	case "count":
		return strconv.Itoa(cs.Count)
	case "mean":
		v = cs.Mean
	case "std":
		v = cs.Std
	case "min":
		v = cs.Min
	case "25%":
		v = cs.P25
	case "50%":
		v = cs.Median
	case "75%":
		v = cs.P75
	case "max":
		v = cs.Max
	}
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
