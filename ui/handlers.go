package ui

import (
	"fmt"
	"math"
	"net/http"

	"pgtadash/domain/table"
	"pgtadash/internal/analysis"
	"pgtadash/internal/dataset"
	"pgtadash/internal/errors"
	"pgtadash/internal/export"

	"github.com/gin-gonic/gin"
)

// selections resolves the filter parameters against the full table. An absent
// parameter means "all distinct values" (the dashboard default); a present but
// empty parameter is an empty selection, which filters everything out.
func selections(c *gin.Context, full *table.Table) (locations, hospitals []string) {
	query := c.Request.URL.Query()

	if values, ok := query["location"]; ok {
		locations = dropEmpty(values)
	} else {
		locations = dataset.DistinctValues(full, dataset.ColLocation)
	}

	if values, ok := query["hospital"]; ok {
		hospitals = dropEmpty(values)
	} else {
		hospitals = dataset.DistinctValues(full, dataset.ColHospital)
	}
	return locations, hospitals
}

func dropEmpty(values []string) []string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			kept = append(kept, v)
		}
	}
	return kept
}

// filteredTable loads the record table and applies the request's selections.
func (s *Server) filteredTable(c *gin.Context) (*table.Table, error) {
	full, err := s.data.Load(c.Request.Context())
	if err != nil {
		return nil, err
	}
	locations, hospitals := selections(c, full)
	return dataset.Filter(full, locations, hospitals), nil
}

// metricColumn validates the rate-column selector, defaulting to CH-RATE.
func metricColumn(c *gin.Context) (string, error) {
	metric := c.DefaultQuery("metric", dataset.ColChRate)
	if !dataset.IsRateColumn(metric) {
		return "", errors.InvalidInput(fmt.Sprintf("unknown metric %q", metric))
	}
	return metric, nil
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.data.Status())
}

func (s *Server) handleFilters(c *gin.Context) {
	full, err := s.data.Load(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"locations": dataset.DistinctValues(full, dataset.ColLocation),
		"hospitals": dataset.DistinctValues(full, dataset.ColHospital),
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	filtered, err := s.filteredTable(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	m, err := analysis.Summarize(filtered)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	// NaN averages (empty selection) serialize as null.
	c.JSON(http.StatusOK, gin.H{
		"rows":           filtered.Len(),
		"hospital_count": m.HospitalCount,
		"embryo_total":   m.EmbryoTotal,
		"patient_total":  m.PatientTotal,
		"ch_rate_avg":    jsonFloat(m.ChRateAvg),
		"af_rate_avg":    jsonFloat(m.AfRateAvg),
		"ic_rate_avg":    jsonFloat(m.IcRateAvg),
	})
}

func (s *Server) handleTable(c *gin.Context) {
	filtered, err := s.filteredTable(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	result := dataset.Search(filtered, c.Query("q"))
	rows := result.Rows
	if rows == nil {
		rows = []table.Row{}
	}
	c.JSON(http.StatusOK, gin.H{
		"columns": result.Columns,
		"rows":    rows,
		"total":   filtered.Len(),
		"matched": result.Len(),
	})
}

func (s *Server) handleScatter(c *gin.Context) {
	filtered, err := s.filteredTable(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	metric, err := metricColumn(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	points, err := analysis.ScatterSeries(filtered, analysis.ChartSpec{
		X:     dataset.ColEmbryoCount,
		Y:     metric,
		Color: dataset.ColHospital,
		Size:  dataset.ColEmbryoCount,
	})
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"metric": metric, "points": points})
}

func (s *Server) handleBar(c *gin.Context) {
	filtered, err := s.filteredTable(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	metric, err := metricColumn(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	series, err := analysis.GroupMeanBars(filtered, dataset.ColHospital, metric)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"metric": metric,
		"labels": series.Labels,
		"values": jsonFloats(series.Values),
	})
}

func (s *Server) handleBox(c *gin.Context) {
	filtered, err := s.filteredTable(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	series, err := analysis.BoxSeriesOf(filtered, dataset.RateColumns)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": series})
}

func (s *Server) handleHeatmap(c *gin.Context) {
	s.writeCorrelation(c)
}

func (s *Server) handleDescribe(c *gin.Context) {
	filtered, err := s.filteredTable(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	report, err := analysis.Describe(filtered, dataset.StatColumns)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	columns := make([]gin.H, 0, len(report.Columns))
	for _, cs := range report.Columns {
		columns = append(columns, gin.H{
			"column": cs.Column,
			"count":  cs.Count,
			"mean":   jsonFloat(cs.Mean),
			"std":    jsonFloat(cs.Std),
			"min":    jsonFloat(cs.Min),
			"p25":    jsonFloat(cs.P25),
			"median": jsonFloat(cs.Median),
			"p75":    jsonFloat(cs.P75),
			"max":    jsonFloat(cs.Max),
		})
	}
	c.JSON(http.StatusOK, gin.H{"columns": columns})
}

func (s *Server) handleCorrelation(c *gin.Context) {
	s.writeCorrelation(c)
}

func (s *Server) writeCorrelation(c *gin.Context) {
	filtered, err := s.filteredTable(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	matrix, err := analysis.Correlate(filtered, dataset.StatColumns)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	values := make([][]*float64, len(matrix.Values))
	for i, row := range matrix.Values {
		values[i] = jsonFloats(row)
	}
	c.JSON(http.StatusOK, gin.H{"columns": matrix.Columns, "values": values})
}

func (s *Server) handleByLocation(c *gin.Context) {
	filtered, err := s.filteredTable(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	grouped, err := analysis.LocationSummary(filtered)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	rows := grouped.Rows
	if rows == nil {
		rows = []table.Row{}
	}
	c.JSON(http.StatusOK, gin.H{"columns": grouped.Columns, "rows": rows})
}

func (s *Server) handleDownloadFiltered(c *gin.Context) {
	filtered, err := s.filteredTable(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	body, err := export.CSVBytes(dataset.Search(filtered, c.Query("q")))
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.FilteredFileName))
	c.Data(http.StatusOK, "text/csv", body)
}

func (s *Server) handleDownloadStatistics(c *gin.Context) {
	filtered, err := s.filteredTable(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	report, err := analysis.Describe(filtered, dataset.StatColumns)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	body, err := export.DescribeCSVBytes(report)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.StatisticsFileName))
	c.Data(http.StatusOK, "text/csv", body)
}

// abortWithError maps AppError codes onto HTTP statuses.
func (s *Server) abortWithError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeLoadFailed:
		status = http.StatusServiceUnavailable
	}
	s.log.Error("[server] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

// jsonFloat maps NaN to null so encoding the response cannot fail.
func jsonFloat(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func jsonFloats(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i, v := range values {
		out[i] = jsonFloat(v)
	}
	return out
}
