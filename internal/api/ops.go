// Package api serves the operational endpoints on a separate port from
// the insight API: health and readiness probes plus upload limits for
// load balancers and deploy tooling.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"feedbacklens/internal/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// OpsServer answers health probes and reports runtime settings.
type OpsServer struct {
	router  chi.Router
	cfg     *config.Config
	started time.Time
	version string
}

// NewOpsServer builds the ops router with standard middleware.
func NewOpsServer(cfg *config.Config, version string) *OpsServer {
	s := &OpsServer{
		router:  chi.NewRouter(),
		cfg:     cfg,
		started: time.Now(),
		version: version,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(10 * time.Second))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/readyz", s.handleReady)
	s.router.Get("/info", s.handleInfo)

	return s
}

// Run starts the ops listener (blocking).
func (s *OpsServer) Run() error {
	return http.ListenAndServe(":"+s.cfg.Server.OpsPort, s.router)
}

// Handler exposes the router for tests.
func (s *OpsServer) Handler() http.Handler {
	return s.router
}

func (s *OpsServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady reports readiness. Datasets live in memory so readiness
// follows process liveness; the endpoint exists so deploy tooling has a
// stable probe target if a persistent backend is added later.
func (s *OpsServer) handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ready": true})
}

func (s *OpsServer) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"version":          s.version,
		"query_backend":    s.cfg.Data.QueryBackend,
		"max_upload_bytes": s.cfg.Data.MaxUploadBytes,
		"hotspot_top_n":    s.cfg.Insight.HotspotTopN,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
