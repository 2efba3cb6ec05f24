// Package source defines the contract shared by activity sources.
package source

import (
	"context"

	"github.com/okian/pacetrend/internal/domain/model"
)

// Source delivers a batch of raw activity records.
type Source interface {
	// Name identifies the source in logs and metrics, e.g. "csv" or "strava".
	Name() string

	// Fetch returns every record the source currently holds.
	Fetch(ctx context.Context) ([]model.Activity, error)
}
