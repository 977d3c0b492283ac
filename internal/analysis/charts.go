package analysis

import (
	"math"
	"sort"

	"pgtadash/domain/table"
	"pgtadash/internal/errors"

	"github.com/montanaflynn/stats"
)

// ChartSpec names the columns a chart pulls from the filtered table.
// Color and Size are optional; an empty name disables that channel.
type ChartSpec struct {
	X     string
	Y     string
	Color string
	Size  string
}

// ScatterPoint is one marker in a scatter series.
type ScatterPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size,omitempty"`
	Label string  `json:"label,omitempty"`
}

// BarSeries is a labelled bar chart, one value per label.
type BarSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// BoxSeries carries the raw observations of one column; the renderer computes
// whiskers itself.
type BoxSeries struct {
	Column string    `json:"column"`
	Values []float64 `json:"values"`
}

// ScatterSeries reshapes the table into scatter points. Rows whose x or y cell
// does not parse as a number are skipped; an empty table yields an empty
// series rather than an error.
func ScatterSeries(t *table.Table, spec ChartSpec) ([]ScatterPoint, error) {
	for _, col := range []string{spec.X, spec.Y} {
		if !t.HasColumn(col) {
			return nil, errors.MissingColumn(col)
		}
	}
	if spec.Color != "" && !t.HasColumn(spec.Color) {
		return nil, errors.MissingColumn(spec.Color)
	}
	if spec.Size != "" && !t.HasColumn(spec.Size) {
		return nil, errors.MissingColumn(spec.Size)
	}

	points := make([]ScatterPoint, 0, t.Len())
	for _, row := range t.Rows {
		x, okX := row.Float(spec.X)
		y, okY := row.Float(spec.Y)
		if !okX || !okY {
			continue
		}

		p := ScatterPoint{X: x, Y: y}
		if spec.Color != "" {
			p.Label = row.Cell(spec.Color)
		}
		if spec.Size != "" {
			if s, ok := row.Float(spec.Size); ok {
				p.Size = s
			}
		}
		points = append(points, p)
	}
	return points, nil
}

// GroupMeanBars computes the mean of value per distinct group value, labels
// sorted ascending. Groups with no numeric observations carry NaN.
func GroupMeanBars(t *table.Table, group, value string) (*BarSeries, error) {
	if !t.HasColumn(group) {
		return nil, errors.MissingColumn(group)
	}
	if !t.HasColumn(value) {
		return nil, errors.MissingColumn(value)
	}

	grouped := make(map[string][]table.Row)
	labels := make([]string, 0)
	for _, row := range t.Rows {
		k := row.Cell(group)
		if _, ok := grouped[k]; !ok {
			labels = append(labels, k)
		}
		grouped[k] = append(grouped[k], row)
	}
	sort.Strings(labels)

	series := &BarSeries{Labels: labels, Values: make([]float64, 0, len(labels))}
	for _, label := range labels {
		values, err := t.WithRows(grouped[label]).FloatColumn(value)
		if err != nil {
			return nil, err
		}
		mean := math.NaN()
		if len(values) > 0 {
			mean, _ = stats.Mean(values)
		}
		series.Values = append(series.Values, mean)
	}
	return series, nil
}

// BoxSeriesOf collects the raw numeric observations per column for box plots.
func BoxSeriesOf(t *table.Table, columns []string) ([]BoxSeries, error) {
	series := make([]BoxSeries, 0, len(columns))
	for _, column := range columns {
		values, err := t.FloatColumn(column)
		if err != nil {
			return nil, err
		}
		series = append(series, BoxSeries{Column: column, Values: values})
	}
	return series, nil
}

// HeatmapData is the correlation matrix shaped for a heatmap renderer.
func HeatmapData(t *table.Table, columns []string) (*Matrix, error) {
	return Correlate(t, columns)
}
