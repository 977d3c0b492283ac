package analysis

import (
	"math"

	"pgtadash/domain/table"
	"pgtadash/internal/dataset"
	"pgtadash/internal/errors"

	"github.com/montanaflynn/stats"
)

// Metrics are the scalar aggregates shown at the top of the dashboard.
// Averages are NaN when the table has no rows; callers render that as "N/A".
type Metrics struct {
	HospitalCount int
	EmbryoTotal   float64
	PatientTotal  float64
	ChRateAvg     float64
	AfRateAvg     float64
	IcRateAvg     float64
}

// Summarize computes the headline metrics over a (filtered) table. An empty
// table yields zero counts and sums and NaN averages, never an error.
func Summarize(t *table.Table) (Metrics, error) {
	if !t.HasColumn(dataset.ColHospital) {
		return Metrics{}, errors.MissingColumn(dataset.ColHospital)
	}

	m := Metrics{
		HospitalCount: distinctCount(t, dataset.ColHospital),
	}

	var err error
	if m.EmbryoTotal, err = sumColumn(t, dataset.ColEmbryoCount); err != nil {
		return Metrics{}, err
	}
	if m.PatientTotal, err = sumColumn(t, dataset.ColPatientCount); err != nil {
		return Metrics{}, err
	}
	if m.ChRateAvg, err = meanColumn(t, dataset.ColChRate); err != nil {
		return Metrics{}, err
	}
	if m.AfRateAvg, err = meanColumn(t, dataset.ColAfRate); err != nil {
		return Metrics{}, err
	}
	if m.IcRateAvg, err = meanColumn(t, dataset.ColIcRate); err != nil {
		return Metrics{}, err
	}
	return m, nil
}

func distinctCount(t *table.Table, column string) int {
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		seen[row.Cell(column)] = true
	}
	return len(seen)
}

func sumColumn(t *table.Table, column string) (float64, error) {
	values, err := t.FloatColumn(column)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, nil
	}
	sum, err := stats.Sum(values)
	if err != nil {
		return 0, errors.Wrapf(err, "sum of %s", column)
	}
	return sum, nil
}

func meanColumn(t *table.Table, column string) (float64, error) {
	values, err := t.FloatColumn(column)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return math.NaN(), nil
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return 0, errors.Wrapf(err, "mean of %s", column)
	}
	return mean, nil
}
