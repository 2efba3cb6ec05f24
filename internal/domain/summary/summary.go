// Package summary computes whole-collection statistics and run listings.
package summary

import (
	"math"
	"sort"

	"github.com/okian/pacetrend/internal/domain/derive"
	"github.com/okian/pacetrend/internal/domain/model"
	"github.com/okian/pacetrend/internal/domain/types"
)

const dateLayout = "2006-01-02"

// Overall computes the scalar statistics of the collection. Accumulation uses
// raw values; rounding is applied once when the result is built.
//
// MeanPace is the simple mean of per-run paces, skipping undefined ones. It is
// undefined when no run has a defined pace.
func Overall(runs []model.Run) model.Overall {
	var (
		distance, moving, paceSum, longest float64
		paced                              int
	)
	for _, r := range runs {
		distance += r.DistanceKm
		moving += r.MovingTimeMin
		if r.DistanceKm > longest {
			longest = r.DistanceKm
		}
		if v, ok := r.Pace.Value(); ok {
			paceSum += v
			paced++
		}
	}

	out := model.Overall{
		TotalRuns:       len(runs),
		TotalDistanceKm: round(distance, 2),
		LongestRunKm:    round(longest, 2),
	}
	if len(runs) > 0 {
		out.MeanMovingTimeMin = round(moving/float64(len(runs)), 1)
	}
	if paced > 0 {
		out.MeanPace = model.PaceOf(round(paceSum/float64(paced), 2))
	}
	return out
}

// Longest returns up to n runs ordered by distance descending; equal distances
// keep the earlier run first. Moving time uses the HH:MM:SS form.
func Longest(runs []model.Run, n int) []types.RunView {
	sorted := sortedCopy(runs, func(a, b model.Run) bool {
		if a.DistanceKm != b.DistanceKm {
			return a.DistanceKm > b.DistanceKm
		}
		return model.WallBefore(a.StartDateLocal, b.StartDateLocal)
	})
	return views(limit(sorted, n), derive.HourPadded)
}

// Recent returns up to n runs ordered by start time, most recent first.
// Moving time uses the H:MM:SS form.
func Recent(runs []model.Run, n int) []types.RunView {
	sorted := sortedCopy(runs, func(a, b model.Run) bool {
		return model.WallBefore(b.StartDateLocal, a.StartDateLocal)
	})
	return views(limit(sorted, n), derive.HourUnpadded)
}

func sortedCopy(runs []model.Run, less func(a, b model.Run) bool) []model.Run {
	cp := make([]model.Run, len(runs))
	copy(cp, runs)
	sort.SliceStable(cp, func(i, j int) bool { return less(cp[i], cp[j]) })
	return cp
}

func limit(runs []model.Run, n int) []model.Run {
	if n >= 0 && n < len(runs) {
		return runs[:n]
	}
	return runs
}

func views(runs []model.Run, style derive.HourStyle) []types.RunView {
	out := make([]types.RunView, len(runs))
	for i, r := range runs {
		out[i] = types.RunView{
			ID:             r.ID,
			Date:           r.StartDateLocal.Format(dateLayout),
			Name:           r.Name,
			DistanceKm:     round(r.DistanceKm, 2),
			PaceMinPerKm:   r.Pace,
			Pace:           derive.FormatPace(r.Pace),
			MovingTime:     derive.FormatDuration(r.MovingTimeMin, style),
			StartDateLocal: r.StartDateLocal,
		}
	}
	return out
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
