// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"math"
	"time"
)

// TypeRun is the only activity type the aggregation engine processes.
const TypeRun = "Run"

// Activity is a raw record as delivered by an activity source.
// Numeric and time fields are pointers so that a source can report them as absent.
type Activity struct {
	ID                string     `json:"id"`
	Type              string     `json:"type"`
	Name              string     `json:"name"`
	DistanceMeters    *float64   `json:"distance"`
	MovingTimeSeconds *float64   `json:"moving_time"`
	StartDateLocal    *time.Time `json:"start_date_local"`
}

// IsRun reports whether the activity is a qualifying record.
func (a Activity) IsRun() bool { return a.Type == TypeRun }

// Validate reports the first missing or invalid required field.
func (a Activity) Validate() error {
	switch {
	case a.DistanceMeters == nil:
		return fmt.Errorf("distance: %w", ErrMissingField)
	case a.MovingTimeSeconds == nil:
		return fmt.Errorf("moving_time: %w", ErrMissingField)
	case a.StartDateLocal == nil || a.StartDateLocal.IsZero():
		return fmt.Errorf("start_date_local: %w", ErrMissingField)
	}
	if !nonNegative(*a.DistanceMeters) {
		return fmt.Errorf("distance %v: %w", *a.DistanceMeters, ErrInvalidField)
	}
	if !nonNegative(*a.MovingTimeSeconds) {
		return fmt.Errorf("moving_time %v: %w", *a.MovingTimeSeconds, ErrInvalidField)
	}
	return nil
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Metrics holds the normalized values derived from one activity.
type Metrics struct {
	DistanceKm    float64 `json:"distance_km"`
	MovingTimeMin float64 `json:"moving_time_min"`
	Pace          Pace    `json:"pace_min_per_km"`
}

// Run is a validated qualifying record with its derived metrics attached.
type Run struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	StartDateLocal time.Time `json:"start_date_local"`
	Metrics
}

// Year returns the calendar year of the run's local start time.
func (r Run) Year() int { return r.StartDateLocal.Year() }
