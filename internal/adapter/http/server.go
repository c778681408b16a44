package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/road-hazard-api/internal/domain"
	"github.com/couchcryptid/road-hazard-api/internal/observability"
)

// apiVersion is reported by the root health check.
const apiVersion = "1.0.0"

// HazardAPI is the set of operations the router exposes.
type HazardAPI interface {
	ReportHazard(ctx context.Context, req domain.ReportHazardRequest) (domain.Hazard, error)
	NearbyHazards(ctx context.Context, req domain.NearbyHazardsRequest) (domain.NearbyHazards, error)
	DriverHistory(ctx context.Context, driverID string, limit, offset int) domain.DriverHistory
	DriverSettings(ctx context.Context, driverID string) domain.DriverSettings
	UpdateDriverSettings(ctx context.Context, driverID string, patch domain.SettingsPatch) (domain.DriverSettings, error)
}

// Options holds the router settings that come from configuration.
type Options struct {
	Environment string
	CORSOrigins []string
}

// Server exposes the hazard API plus health, readiness and metrics endpoints.
type Server struct {
	httpServer *http.Server
	api        HazardAPI
	opts       Options
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer wires routes and middleware.
func NewServer(addr string, api HazardAPI, ready sharedobs.ReadinessChecker, opts Options, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:              addr,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		api:     api,
		opts:    opts,
		metrics: metrics,
		logger:  logger,
	}

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /api/report-hazard", s.handleReportHazard)
	mux.HandleFunc("POST /api/nearby-hazards", s.handleNearbyHazards)
	mux.HandleFunc("GET /api/driver/{driver_id}/history", s.handleDriverHistory)
	mux.HandleFunc("GET /api/driver/{driver_id}/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/driver/{driver_id}/settings", s.handleUpdateSettings)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	s.httpServer.Handler = s.recoverPanics(s.cors(s.logRequests(mux)))
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorBody{Detail: detail})
}
