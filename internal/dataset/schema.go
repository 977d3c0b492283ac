package dataset

// Column names of the screening record table.
const (
	ColLocation     = "hospital_location"
	ColHospital     = "Hospital"
	ColEmbryoCount  = "embryo_count"
	ColPatientCount = "patient_count"
	ColChRate       = "CH-RATE"
	ColAfRate       = "AF-RATE"
	ColIcRate       = "IC-RATE"
)

// RateColumns are the selectable percentage metrics, in selector order.
var RateColumns = []string{ColChRate, ColAfRate, ColIcRate}

// StatColumns are the numeric columns covered by descriptive statistics and
// the correlation matrix.
var StatColumns = []string{ColEmbryoCount, ColChRate, ColAfRate, ColIcRate}

// IsRateColumn reports whether name is one of the selectable rate metrics.
func IsRateColumn(name string) bool {
	for _, c := range RateColumns {
		if c == name {
			return true
		}
	}
	return false
}
