// Package ui exposes the insight service over HTTP. It is a thin
// wrapper: parsing parameters, mapping errors to status codes, and
// rendering structured results. All analytics stay in the core.
package ui

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"feedbacklens/app"
	"feedbacklens/domain/core"
	"feedbacklens/internal/config"

	"github.com/gin-gonic/gin"
)

// Server represents the web server for the feedback insights API
type Server struct {
	router  *gin.Engine
	service *app.InsightService
	cfg     config.ServerConfig
	maxBody int64
}

// NewServer creates a new web server instance
func NewServer(service *app.InsightService, cfg *config.Config) *Server {
	gin.SetMode(cfg.Server.GinMode)
	s := &Server{
		router:  gin.Default(),
		service: service,
		cfg:     cfg.Server,
		maxBody: cfg.Data.MaxUploadBytes,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.router.Group("/api")

	api.GET("/samples", s.handleListSamples)
	api.POST("/datasets", s.handleUpload)
	api.POST("/datasets/sample", s.handleLoadSample)

	ds := api.Group("/datasets/:id")
	ds.GET("", s.handleSummary)
	ds.DELETE("", s.handleDrop)
	ds.GET("/kpi", s.handleKPI)
	ds.GET("/trend", s.handleTrend)
	ds.GET("/segments", s.handleSegments)
	ds.GET("/negative", s.handleNegative)
	ds.GET("/negative/export.csv", s.handleNegativeExport)
	ds.GET("/export.csv", s.handleFilteredExport)
	ds.GET("/overview", s.handleOverview)
	ds.GET("/report", s.handleReport)
}

// Run starts the HTTP server (blocking).
func (s *Server) Run() error {
	addr := ":" + s.cfg.Port
	log.Printf("[Server] Listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// respondError maps domain errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case core.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case core.IsLoadError(err), core.IsEmptyDatasetError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("[Server] Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func attachmentHeaders(c *gin.Context, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv")
}
