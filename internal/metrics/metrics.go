package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts HTTP requests by route and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pgtadash_http_requests_total",
		Help: "Number of HTTP requests processed, by route and status code.",
	}, []string{"route", "status"})

	// DatasetLoadSeconds observes spreadsheet load durations.
	DatasetLoadSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pgtadash_dataset_load_seconds",
		Help:    "Time spent reading the source spreadsheet into memory.",
		Buckets: prometheus.DefBuckets,
	})

	// DatasetRows reports the row count of the cached record table.
	DatasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pgtadash_dataset_rows",
		Help: "Rows in the cached record table (0 until loaded).",
	})
)

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
