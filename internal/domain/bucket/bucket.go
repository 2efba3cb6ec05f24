// Package bucket groups runs into weekly and monthly aggregates.
//
// Grouping is explicit key -> accumulator accumulation followed by an explicit
// sort on the bucket key; input order never leaks into the output.
package bucket

import (
	"sort"
	"time"

	"github.com/okian/pacetrend/internal/domain/model"
)

const yearMonthLayout = "2006-01"

type weekKey struct {
	year, week int
}

// Weekly groups runs by ISO (year, week), sorts ascending and assigns the
// 1-based running week index over occupied weeks.
func Weekly(runs []model.Run) []model.WeeklyBucket {
	acc := make(map[weekKey]*model.WeeklyBucket)
	for _, r := range runs {
		y, w := r.StartDateLocal.ISOWeek()
		k := weekKey{year: y, week: w}
		b, ok := acc[k]
		if !ok {
			b = &model.WeeklyBucket{ISOYear: y, ISOWeek: w}
			acc[k] = b
		}
		b.DistanceKm += r.DistanceKm
		b.NumRuns++
	}

	out := make([]model.WeeklyBucket, 0, len(acc))
	for _, b := range acc {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ISOYear != out[j].ISOYear {
			return out[i].ISOYear < out[j].ISOYear
		}
		return out[i].ISOWeek < out[j].ISOWeek
	})
	for i := range out {
		out[i].RunningWeek = i + 1
	}
	return out
}

type monthKey struct {
	year  int
	month time.Month
}

// Monthly groups runs by civil year-month, sorted ascending. AvgPace is the
// distance-weighted pace MovingTimeMin/DistanceKm, undefined for a month with no distance.
func Monthly(runs []model.Run) []model.MonthlyBucket {
	acc := make(map[monthKey]*model.MonthlyBucket)
	for _, r := range runs {
		k := monthKey{year: r.StartDateLocal.Year(), month: r.StartDateLocal.Month()}
		b, ok := acc[k]
		if !ok {
			b = &model.MonthlyBucket{
				YearMonth: r.StartDateLocal.Format(yearMonthLayout),
				Year:      k.year,
				Month:     k.month,
			}
			acc[k] = b
		}
		b.DistanceKm += r.DistanceKm
		b.MovingTimeMin += r.MovingTimeMin
	}

	out := make([]model.MonthlyBucket, 0, len(acc))
	for _, b := range acc {
		if b.DistanceKm > 0 {
			b.AvgPace = model.PaceOf(b.MovingTimeMin / b.DistanceKm)
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}
