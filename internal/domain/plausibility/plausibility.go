// Package plausibility gates monthly aggregates on a realistic pace window.
package plausibility

import (
	"fmt"

	"github.com/okian/pacetrend/internal/domain/model"
)

// Filter keeps monthly buckets whose average pace lies in a configured window.
type Filter struct {
	window model.PaceWindow
}

// New validates the window and builds a Filter. An inverted window fails fast.
func New(window model.PaceWindow) (*Filter, error) {
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("plausibility: %w", err)
	}
	return &Filter{window: window}, nil
}

// Window returns the configured pace window.
func (f *Filter) Window() model.PaceWindow { return f.window }

// Apply splits buckets into kept and dropped, preserving order. The input is not modified.
// Buckets with an undefined average pace are always dropped.
func (f *Filter) Apply(buckets []model.MonthlyBucket) (kept, dropped []model.MonthlyBucket) {
	kept = make([]model.MonthlyBucket, 0, len(buckets))
	for _, b := range buckets {
		if f.window.Contains(b.AvgPace) {
			kept = append(kept, b)
			continue
		}
		dropped = append(dropped, b)
	}
	return kept, dropped
}
