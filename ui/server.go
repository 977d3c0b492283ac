package ui

import (
	"embed"
	"html/template"
	"strconv"

	"pgtadash/internal/config"
	"pgtadash/internal/dataset"
	"pgtadash/internal/logging"
	"pgtadash/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
)

//go:embed templates/* about.md
var embeddedFiles embed.FS

// Server is the dashboard web server. Every request recomputes its views from
// the cached record table; the only state is the dataset service's cache.
type Server struct {
	router    *gin.Engine
	data      *dataset.Service
	templates *template.Template
	aboutHTML template.HTML
	log       *logging.Logger
}

// NewServer creates the dashboard server and wires all routes.
func NewServer(cfg *config.Config, data *dataset.Service) (*Server, error) {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	about, err := embeddedFiles.ReadFile("about.md")
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.Default(),
		data:      data,
		templates: templates,
		aboutHTML: template.HTML(markdown.ToHTML(about, nil, nil)),
		log:       logging.Default,
	}

	s.router.Use(s.requestMetrics())
	s.setupRoutes(cfg.Metrics.Enabled)
	return s, nil
}

func (s *Server) setupRoutes(metricsEnabled bool) {
	s.router.GET("/", s.handleDashboard)

	api := s.router.Group("/api")
	api.GET("/status", s.handleStatus)
	api.GET("/filters", s.handleFilters)
	api.GET("/summary", s.handleSummary)
	api.GET("/table", s.handleTable)
	api.GET("/charts/scatter", s.handleScatter)
	api.GET("/charts/bar", s.handleBar)
	api.GET("/charts/box", s.handleBox)
	api.GET("/charts/heatmap", s.handleHeatmap)
	api.GET("/stats/describe", s.handleDescribe)
	api.GET("/stats/correlation", s.handleCorrelation)
	api.GET("/stats/by-location", s.handleByLocation)

	s.router.GET("/download/filtered", s.handleDownloadFiltered)
	s.router.GET("/download/statistics", s.handleDownloadStatistics)

	if metricsEnabled {
		s.router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
}

// requestMetrics counts finished requests by route and status.
func (s *Server) requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	s.log.Info("[server] listening on %s", addr)
	return s.router.Run(addr)
}
