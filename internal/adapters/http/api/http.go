// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/pacetrend/internal/domain/types"
)

// Default request limits.
const (
	DefaultMaxLimit = 100
	DefaultMaxBatch = 5_000
	defaultLimit    = 10
	maxBodyBytes    = 32 << 20
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	IngestDependencies
	ReportDependencies
	RunsDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler
	reportHandler     *ReportHandler
	runsHandler       *RunsHandler
}

// NewServer creates a new API server with all handlers.
// maxLimit caps ?limit on run listings; maxBatch caps records per ingest request.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit, maxBatch int) *Server {
	if maxLimit < 1 {
		maxLimit = DefaultMaxLimit
	}
	if maxBatch < 1 {
		maxBatch = DefaultMaxBatch
	}
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		activitiesHandler: NewActivitiesHandler(deps, maxBatch),
		reportHandler:     NewReportHandler(deps),
		runsHandler:       NewRunsHandler(deps, maxLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/activities", MetricsMiddleware(s.activitiesHandler.HandlePostActivities, "activities"))
	mux.HandleFunc("/report", MetricsMiddleware(s.reportHandler.HandleGetReport, "report"))
	mux.HandleFunc("/weekly", MetricsMiddleware(s.reportHandler.HandleGetWeekly, "weekly"))
	mux.HandleFunc("/monthly", MetricsMiddleware(s.reportHandler.HandleGetMonthly, "monthly"))
	mux.HandleFunc("/personal-bests", MetricsMiddleware(s.reportHandler.HandleGetPersonalBests, "personal_bests"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.reportHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("/runs/top", MetricsMiddleware(s.runsHandler.HandleGetTop, "runs_top"))
	mux.HandleFunc("/runs/recent", MetricsMiddleware(s.runsHandler.HandleGetRecent, "runs_recent"))
}

type listResponse[T any] struct {
	Count int `json:"count"`
	Items []T `json:"items"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Count: len(items), Items: items}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service errors into HTTP responses.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, types.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	case errors.Is(err, types.ErrUnknownCategory):
		writeError(w, http.StatusBadRequest, "unknown_category", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
