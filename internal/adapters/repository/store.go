// Package repository defines the activity store interface and errors.
package repository

import (
	"context"

	"github.com/okian/pacetrend/internal/domain/model"
)

// Store provides read/write access to the ingested activity history.
type Store interface {
	// Upsert stores a by its ID. A record with a known ID replaces the stored one.
	// Returns true if an existing record was replaced.
	Upsert(ctx context.Context, a model.Activity) (bool, error)

	// Snapshot returns a copy of every stored record in first-insertion order.
	Snapshot(ctx context.Context) []model.Activity

	// Count returns the number of stored records.
	Count(ctx context.Context) int
}
