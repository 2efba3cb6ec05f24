// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/pacetrend/internal/domain/model"
	"github.com/okian/pacetrend/internal/domain/types"
)

// ReportDependencies defines the interface for aggregate summaries.
type ReportDependencies interface {
	Report(ctx context.Context) (types.Report, error)
	Weekly(ctx context.Context) ([]model.WeeklyBucket, error)
	Monthly(ctx context.Context, unfiltered bool) ([]model.MonthlyBucket, error)
	PersonalBests(ctx context.Context, category string) ([]model.PersonalBest, error)
	Overall(ctx context.Context) (model.Overall, error)
}

// ReportHandler handles summary requests.
type ReportHandler struct {
	deps ReportDependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps ReportDependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// HandleGetReport handles GET /report requests.
func (h *ReportHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_report"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rep, err := h.deps.Report(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleGetWeekly handles GET /weekly requests.
func (h *ReportHandler) HandleGetWeekly(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_weekly"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	buckets, err := h.deps.Weekly(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(buckets))
}

// HandleGetMonthly handles GET /monthly[?unfiltered=true] requests.
func (h *ReportHandler) HandleGetMonthly(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_monthly"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	unfiltered := false
	if v := r.URL.Query().Get("unfiltered"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, fmt.Errorf("unfiltered: %w", err)))
			return
		}
		unfiltered = b
	}
	buckets, err := h.deps.Monthly(r.Context(), unfiltered)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(buckets))
}

// HandleGetPersonalBests handles GET /personal-bests[?category=5K] requests.
func (h *ReportHandler) HandleGetPersonalBests(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_personal_bests"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	pbs, err := h.deps.PersonalBests(r.Context(), category)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(pbs))
}

// HandleGetSummary handles GET /summary requests.
func (h *ReportHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	overall, err := h.deps.Overall(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, overall)
}
