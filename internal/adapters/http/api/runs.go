// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/pacetrend/internal/domain/types"
)

// RunsDependencies defines the interface for run listings.
type RunsDependencies interface {
	TopRuns(ctx context.Context, n int) ([]types.RunView, error)
	RecentRuns(ctx context.Context, n int) ([]types.RunView, error)
}

// RunsHandler handles run listing requests.
type RunsHandler struct {
	deps     RunsDependencies
	maxLimit int
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(deps RunsDependencies, maxLimit int) *RunsHandler {
	return &RunsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetTop handles GET /runs/top?limit=N requests.
func (h *RunsHandler) HandleGetTop(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "api.get_runs_top", h.deps.TopRuns)
}

// HandleGetRecent handles GET /runs/recent?limit=N requests.
func (h *RunsHandler) HandleGetRecent(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "api.get_runs_recent", h.deps.RecentRuns)
}

func (h *RunsHandler) list(w http.ResponseWriter, r *http.Request, op string,
	fetch func(context.Context, int) ([]types.RunView, error),
) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := min(defaultLimit, h.maxLimit)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, fmt.Errorf("limit must be a positive integer, got %q", limitStr)))
			return
		}
		n = v
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", WrapKind(op, ErrBadRequest, fmt.Errorf("limit %d exceeds %d", n, h.maxLimit)))
		return
	}
	views, err := fetch(r.Context(), n)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, newList(views))
}
