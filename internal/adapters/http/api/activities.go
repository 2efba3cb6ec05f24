// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/okian/pacetrend/internal/adapters/source"
	"github.com/okian/pacetrend/internal/domain/model"
	"github.com/okian/pacetrend/internal/domain/types"
	"github.com/okian/pacetrend/pkg/logger"
)

// sourceHTTP labels records ingested through the API.
const sourceHTTP = "http"

// IngestDependencies defines the interface for activity ingestion.
type IngestDependencies interface {
	Ingest(ctx context.Context, source string, activities []model.Activity) (types.IngestResult, error)
}

// ActivitiesHandler handles activity ingestion requests.
type ActivitiesHandler struct {
	deps     IngestDependencies
	maxBatch int
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps IngestDependencies, maxBatch int) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps, maxBatch: maxBatch}
}

// HandlePostActivities handles POST /activities requests.
// The body is a JSON array of activity records, or a single record.
func (h *ActivitiesHandler) HandlePostActivities(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_activities"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	reqs, err := decodeActivities(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", WrapKind(op, ErrTooLarge, err))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(reqs) > h.maxBatch {
		err := fmt.Errorf("%d records exceed the batch limit of %d", len(reqs), h.maxBatch)
		writeError(w, http.StatusRequestEntityTooLarge, "too_large", WrapKind(op, ErrTooLarge, err))
		return
	}

	activities := make([]model.Activity, 0, len(reqs))
	for i, req := range reqs {
		activities = append(activities, req.toModel(r.Context(), i))
	}

	res, err := h.deps.Ingest(r.Context(), sourceHTTP, activities)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func decodeActivities(body io.Reader) ([]activityRequest, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var one activityRequest
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, err
		}
		return []activityRequest{one}, nil
	}
	var many []activityRequest
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return nil, err
	}
	return many, nil
}

// activityRequest mirrors the OpenAPI schema for one record of POST /activities.
// The field names follow the Strava activity payload, so raw exports can be posted as is.
// Metric fields decode leniently: an unreadable value is left absent so that
// validation rejects that record alone.
type activityRequest struct {
	ID             flexibleID       `json:"id"`
	Name           string           `json:"name"`
	Type           string           `json:"type"`
	Distance       source.Float     `json:"distance"`
	MovingTime     source.Float     `json:"moving_time"`
	StartDateLocal source.Timestamp `json:"start_date_local"`
}

func (a activityRequest) toModel(ctx context.Context, index int) model.Activity {
	m := model.Activity{
		ID:                string(a.ID),
		Name:              a.Name,
		Type:              a.Type,
		DistanceMeters:    a.Distance.Ptr(),
		MovingTimeSeconds: a.MovingTime.Ptr(),
		StartDateLocal:    a.StartDateLocal.Ptr(),
	}
	for _, f := range []struct{ name, raw string }{
		{"distance", a.Distance.Raw},
		{"moving_time", a.MovingTime.Raw},
		{"start_date_local", a.StartDateLocal.Raw},
	} {
		if f.raw != "" {
			logger.Get().Debug(ctx, "malformed activity field dropped",
				logger.Int("record", index),
				logger.String("id", m.ID),
				logger.String("field", f.name),
				logger.String("value", f.raw),
			)
		}
	}
	return m
}

// flexibleID accepts a JSON string or number.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexibleID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexibleID(n.String())
	return nil
}
