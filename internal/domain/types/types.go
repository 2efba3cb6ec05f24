// Package types contains common types used across the application
package types

import (
	"time"

	"github.com/okian/pacetrend/internal/domain/model"
)

// RunView is a presentation row for a single run.
type RunView struct {
	ID             string     `json:"id"`
	Date           string     `json:"run_date"` // 2006-01-02
	Name           string     `json:"name"`
	DistanceKm     float64    `json:"distance_km"`
	PaceMinPerKm   model.Pace `json:"pace_min_per_km"`
	Pace           string     `json:"pace_str"`
	MovingTime     string     `json:"moving_time"`
	StartDateLocal time.Time  `json:"start_date_local"`
}

// Report bundles every summary computed from one snapshot of activities.
type Report struct {
	ID                string                `json:"report_id"`
	GeneratedAt       time.Time             `json:"generated_at"`
	PaceWindow        model.PaceWindow      `json:"pace_window"`
	Weekly            []model.WeeklyBucket  `json:"weekly"`
	Monthly           []model.MonthlyBucket `json:"monthly"`
	MonthlyUnfiltered []model.MonthlyBucket `json:"monthly_unfiltered"`
	PersonalBests     []model.PersonalBest  `json:"personal_bests"`
	Overall           model.Overall         `json:"overall"`
	TopRuns           []RunView             `json:"top_runs"`
}

// Rejection describes a record excluded during ingestion.
type Rejection struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// IngestResult summarizes one ingestion batch.
type IngestResult struct {
	Received int         `json:"received"`
	Accepted int         `json:"accepted"` // valid runs in the batch
	Replaced int         `json:"replaced"` // records that overwrote a stored id
	Ignored  int         `json:"ignored"`  // non-run records
	Rejected []Rejection `json:"rejected"`
	Stored   int         `json:"stored"`
}
