package analysis

import (
	"fmt"
	"math"
	"sort"

	"pgtadash/domain/table"
	"pgtadash/internal/dataset"
	"pgtadash/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// ColumnStats holds the descriptive statistics of one numeric column.
// Std is the sample standard deviation (n−1 denominator); quartiles follow
// the montanaflynn/stats Quartile convention (median of the lower and upper
// half, middle element excluded for odd lengths). Fields are NaN when the
// column has too few observations for the statistic.
type ColumnStats struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	P25    float64
	Median float64
	P75    float64
	Max    float64
}

// DescriptiveStats is a describe() style report, one entry per column in
// request order.
type DescriptiveStats struct {
	Columns []ColumnStats
}

// Matrix is a symmetric pairwise statistic over columns, indexed in column
// order. Values[i][j] is NaN where the statistic is undefined.
type Matrix struct {
	Columns []string
	Values  [][]float64
}

// Describe computes count, mean, std, min, quartiles and max per column.
func Describe(t *table.Table, columns []string) (*DescriptiveStats, error) {
	report := &DescriptiveStats{Columns: make([]ColumnStats, 0, len(columns))}

	for _, column := range columns {
		values, err := t.FloatColumn(column)
		if err != nil {
			return nil, err
		}

		cs := ColumnStats{Column: column, Count: len(values)}
		if len(values) == 0 {
			cs.Mean, cs.Std, cs.Min, cs.P25, cs.Median, cs.P75, cs.Max =
				math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()
			report.Columns = append(report.Columns, cs)
			continue
		}

		cs.Mean, _ = stats.Mean(values)
		cs.Std = sampleStd(values)
		cs.Min, _ = stats.Min(values)
		cs.Max, _ = stats.Max(values)
		cs.Median, _ = stats.Median(values)
		cs.P25, cs.P75 = quartiles(values)
		report.Columns = append(report.Columns, cs)
	}
	return report, nil
}

// Correlate computes the pairwise Pearson correlation matrix. The diagonal is
// 1.0 for columns with non-zero variance; entries are NaN when fewer than two
// aligned observations exist or a column is constant. Rows where any requested
// cell fails to parse are dropped from every column first.
func Correlate(t *table.Table, columns []string) (*Matrix, error) {
	vectors, err := t.AlignedFloatColumns(columns)
	if err != nil {
		return nil, err
	}

	n := 0
	if len(vectors) > 0 {
		n = len(vectors[0])
	}

	m := &Matrix{Columns: columns, Values: make([][]float64, len(columns))}
	for i := range m.Values {
		m.Values[i] = make([]float64, len(columns))
	}

	for i := range columns {
		for j := i; j < len(columns); j++ {
			var r float64
			switch {
			case n < 2:
				r = math.NaN()
			case i == j:
				if stat.Variance(vectors[i], nil) > 0 {
					r = 1.0
				} else {
					r = math.NaN()
				}
			default:
				r = stat.Correlation(vectors[i], vectors[j], nil)
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

// Aggregation selects how GroupBy reduces a target column.
type Aggregation string

const (
	AggSum  Aggregation = "sum"
	AggMean Aggregation = "mean"
)

// AggSpec names one aggregate in a GroupBy: reduce Column with Agg into an
// output column called Name.
type AggSpec struct {
	Column string
	Agg    Aggregation
	Name   string
}

// GroupBy groups rows by the distinct values of key and applies each aggregate
// per group. Output rows are sorted by key; values are rounded to 2 decimal
// places for display, with NaN rendered as "N/A". Empty groups sum to 0 and
// average to NaN.
func GroupBy(t *table.Table, key string, specs []AggSpec) (*table.Table, error) {
	if !t.HasColumn(key) {
		return nil, errors.MissingColumn(key)
	}
	for _, spec := range specs {
		if !t.HasColumn(spec.Column) {
			return nil, errors.MissingColumn(spec.Column)
		}
		if spec.Agg != AggSum && spec.Agg != AggMean {
			return nil, errors.InvalidInput(fmt.Sprintf("unsupported aggregation %q", spec.Agg))
		}
	}

	groups := make(map[string][]table.Row)
	keys := make([]string, 0)
	for _, row := range t.Rows {
		k := row.Cell(key)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], row)
	}
	sort.Strings(keys)

	columns := make([]string, 0, len(specs)+1)
	columns = append(columns, key)
	for _, spec := range specs {
		columns = append(columns, spec.Name)
	}

	out := table.New(columns)
	rows := make([]table.Row, 0, len(keys))
	for _, k := range keys {
		row := table.Row{key: k}
		sub := t.WithRows(groups[k])
		for _, spec := range specs {
			values, err := sub.FloatColumn(spec.Column)
			if err != nil {
				return nil, err
			}
			row[spec.Name] = formatAggregate(values, spec.Agg)
		}
		rows = append(rows, row)
	}
	return out.WithRows(rows), nil
}

// LocationSummary is the dashboard's grouped statistics table: per location,
// embryo count sum and mean plus the mean of each rate column.
func LocationSummary(t *table.Table) (*table.Table, error) {
	return GroupBy(t, dataset.ColLocation, []AggSpec{
		{Column: dataset.ColEmbryoCount, Agg: AggSum, Name: "embryo_count_sum"},
		{Column: dataset.ColEmbryoCount, Agg: AggMean, Name: "embryo_count_mean"},
		{Column: dataset.ColChRate, Agg: AggMean, Name: "CH-RATE_mean"},
		{Column: dataset.ColAfRate, Agg: AggMean, Name: "AF-RATE_mean"},
		{Column: dataset.ColIcRate, Agg: AggMean, Name: "IC-RATE_mean"},
	})
}

func formatAggregate(values []float64, agg Aggregation) string {
	var v float64
	switch agg {
	case AggSum:
		v = 0
		if len(values) > 0 {
			v, _ = stats.Sum(values)
		}
	case AggMean:
		v = math.NaN()
		if len(values) > 0 {
			v, _ = stats.Mean(values)
		}
	}
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}

// sampleStd computes the n−1 standard deviation; NaN for fewer than 2 values.
func sampleStd(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	std, err := stats.StandardDeviationSample(values)
	if err != nil {
		return math.NaN()
	}
	return std
}

func quartiles(values []float64) (q1, q3 float64) {
	q, err := stats.Quartile(values)
	if err != nil {
		return math.NaN(), math.NaN()
	}
	return q.Q1, q.Q3
}
