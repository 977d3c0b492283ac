package ui

import (
	"fmt"
	"html/template"
	"math"
	"net/http"

	"pgtadash/domain/table"
	"pgtadash/internal/analysis"
	"pgtadash/internal/dataset"

	"github.com/gin-gonic/gin"
)

// dashboardView is everything the server-rendered page needs. All numbers are
// preformatted here so the template stays free of formatting logic.
type dashboardView struct {
	Title string
	About template.HTML

	Locations         []string
	Hospitals         []string
	SelectedLocations map[string]bool
	SelectedHospitals map[string]bool
	Query             string
	Metric            string
	RateColumns       []string
	RawQuery          template.URL

	HospitalCount string
	EmbryoTotal   string
	PatientTotal  string
	ChRateAvg     string
	AfRateAvg     string
	IcRateAvg     string

	Columns     []string
	TableRows   []table.Row
	TotalRows   int
	MatchedRows int

	DescribeHeader []string
	DescribeRows   [][]string

	CorrColumns []string
	CorrRows    [][]string

	LocationColumns []string
	LocationRows    []table.Row
}

// handleDashboard renders the whole dashboard for the current selection. Each
// request recomputes every view from the cached record table, the same pass
// the JSON API exposes piecewise.
func (s *Server) handleDashboard(c *gin.Context) {
	full, err := s.data.Load(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	locations, hospitals := selections(c, full)
	filtered := dataset.Filter(full, locations, hospitals)

	metric, err := metricColumn(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	summary, err := analysis.Summarize(filtered)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	query := c.Query("q")
	searched := dataset.Search(filtered, query)

	describe, err := analysis.Describe(filtered, dataset.StatColumns)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	corr, err := analysis.Correlate(filtered, dataset.StatColumns)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	grouped, err := analysis.LocationSummary(filtered)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	view := dashboardView{
		Title:             "PGT-A Analysis Dashboard",
		About:             s.aboutHTML,
		Locations:         dataset.DistinctValues(full, dataset.ColLocation),
		Hospitals:         dataset.DistinctValues(full, dataset.ColHospital),
		SelectedLocations: toBoolSet(locations),
		SelectedHospitals: toBoolSet(hospitals),
		Query:             query,
		Metric:            metric,
		RateColumns:       dataset.RateColumns,
		RawQuery:          template.URL(c.Request.URL.RawQuery),

		HospitalCount: fmt.Sprintf("%d", summary.HospitalCount),
		EmbryoTotal:   fmt.Sprintf("%.0f", summary.EmbryoTotal),
		PatientTotal:  fmt.Sprintf("%.0f", summary.PatientTotal),
		ChRateAvg:     formatRate(summary.ChRateAvg),
		AfRateAvg:     formatRate(summary.AfRateAvg),
		IcRateAvg:     formatRate(summary.IcRateAvg),

		Columns:     searched.Columns,
		TableRows:   searched.Rows,
		TotalRows:   filtered.Len(),
		MatchedRows: searched.Len(),

		DescribeHeader: []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"},
		DescribeRows:   describeRows(describe),

		CorrColumns: corr.Columns,
		CorrRows:    corrRows(corr),

		LocationColumns: grouped.Columns,
		LocationRows:    grouped.Rows,
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(c.Writer, "dashboard.html", view); err != nil {
		s.log.Error("[server] dashboard render failed: %v", err)
	}
}

func toBoolSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func formatRate(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", v)
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}

func describeRows(report *analysis.DescriptiveStats) [][]string {
	rows := make([][]string, 0, len(report.Columns))
	for _, cs := range report.Columns {
		rows = append(rows, []string{
			cs.Column,
			fmt.Sprintf("%d", cs.Count),
			formatCell(cs.Mean),
			formatCell(cs.Std),
			formatCell(cs.Min),
			formatCell(cs.P25),
			formatCell(cs.Median),
			formatCell(cs.P75),
			formatCell(cs.Max),
		})
	}
	return rows
}

func corrRows(m *analysis.Matrix) [][]string {
	rows := make([][]string, 0, len(m.Columns))
	for i, column := range m.Columns {
		row := make([]string, 0, len(m.Columns)+1)
		row = append(row, column)
		for j := range m.Columns {
			row = append(row, formatCell(m.Values[i][j]))
		}
		rows = append(rows, row)
	}
	return rows
}
