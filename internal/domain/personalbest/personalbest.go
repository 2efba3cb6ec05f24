// Package personalbest tracks the fastest run per distance category per calendar year.
package personalbest

import (
	"fmt"
	"sort"

	"github.com/okian/pacetrend/internal/domain/derive"
	"github.com/okian/pacetrend/internal/domain/model"
)

// Tracker selects yearly personal bests for a fixed set of categories.
type Tracker struct {
	categories []model.DistanceCategory
}

// New validates the categories and builds a Tracker.
// Inverted windows and duplicate labels fail fast.
func New(categories []model.DistanceCategory) (*Tracker, error) {
	if err := model.ValidateCategories(categories); err != nil {
		return nil, fmt.Errorf("personalbest: %w", err)
	}
	cp := make([]model.DistanceCategory, len(categories))
	copy(cp, categories)
	return &Tracker{categories: cp}, nil
}

// Categories returns a copy of the configured categories in configuration order.
func (t *Tracker) Categories() []model.DistanceCategory {
	cp := make([]model.DistanceCategory, len(t.categories))
	copy(cp, t.categories)
	return cp
}

// Trend returns one PersonalBest per (category, year) that has a qualifying run,
// merged across categories and ordered by start time. Identical start times keep
// category configuration order.
func (t *Tracker) Trend(runs []model.Run) []model.PersonalBest {
	var out []model.PersonalBest
	for _, c := range t.categories {
		out = append(out, bestPerYear(c, runs)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return model.WallBefore(out[i].Run.StartDateLocal, out[j].Run.StartDateLocal)
	})
	return out
}

// bestPerYear picks the lowest pace per year inside the category window.
// Ties go to the earliest run: candidates are visited in date order and only a
// strictly faster pace replaces the current best.
func bestPerYear(c model.DistanceCategory, runs []model.Run) []model.PersonalBest {
	candidates := make([]model.Run, 0, len(runs))
	for _, r := range runs {
		if r.Pace.Defined() && c.Contains(r.DistanceKm) {
			candidates = append(candidates, r)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return model.WallBefore(candidates[i].StartDateLocal, candidates[j].StartDateLocal)
	})

	best := make(map[int]model.Run)
	var years []int
	for _, r := range candidates {
		y := r.Year()
		cur, ok := best[y]
		if !ok {
			years = append(years, y)
			best[y] = r
			continue
		}
		if r.Pace.Faster(cur.Pace) {
			best[y] = r
		}
	}

	out := make([]model.PersonalBest, 0, len(years))
	for _, y := range years {
		r := best[y]
		pace, _ := r.Pace.Value()
		out = append(out, model.PersonalBest{
			Category:      c.Label,
			Year:          y,
			Run:           r,
			PaceMinPerKm:  pace,
			FormattedTime: derive.FormatDuration(r.MovingTimeMin, derive.HourPadded),
			FormattedPace: derive.FormatPace(r.Pace),
		})
	}
	return out
}
