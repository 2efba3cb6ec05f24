// Package derive normalizes raw activity records into derived metrics.
package derive

import (
	"github.com/okian/pacetrend/internal/domain/model"
)

// Unit conversion factors.
const (
	metersPerKm      = 1000
	secondsPerMinute = 60
)

// Metrics converts the raw distance and time fields of a validated record.
// Pace is undefined when the distance is zero.
func Metrics(a model.Activity) model.Metrics {
	var m model.Metrics
	if a.DistanceMeters != nil {
		m.DistanceKm = *a.DistanceMeters / metersPerKm
	}
	if a.MovingTimeSeconds != nil {
		m.MovingTimeMin = *a.MovingTimeSeconds / secondsPerMinute
	}
	if m.DistanceKm > 0 {
		m.Pace = model.PaceOf(m.MovingTimeMin / m.DistanceKm)
	}
	return m
}

// Run validates a record and attaches its derived metrics.
func Run(a model.Activity) (model.Run, error) {
	if err := a.Validate(); err != nil {
		return model.Run{}, err
	}
	return model.Run{
		ID:             a.ID,
		Name:           a.Name,
		StartDateLocal: *a.StartDateLocal,
		Metrics:        Metrics(a),
	}, nil
}

// Rejection records why a qualifying record was excluded.
type Rejection struct {
	ID  string
	Err error
}

// Result is the outcome of normalizing a collection.
type Result struct {
	Runs     []model.Run
	Ignored  int // records that are not runs
	Rejected []Rejection
}

// Runs normalizes every qualifying record of the collection, preserving input order.
// Non-run records are counted as ignored; runs with missing or invalid fields are rejected.
func Runs(activities []model.Activity) Result {
	res := Result{Runs: make([]model.Run, 0, len(activities))}
	for _, a := range activities {
		if !a.IsRun() {
			res.Ignored++
			continue
		}
		r, err := Run(a)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{ID: a.ID, Err: err})
			continue
		}
		res.Runs = append(res.Runs, r)
	}
	return res
}
