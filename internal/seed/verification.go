package seed

import (
	"errors"
	"fmt"
	"math"

	"github.com/okian/pacetrend/internal/domain/derive"
	"github.com/okian/pacetrend/internal/domain/model"
	"github.com/okian/pacetrend/internal/domain/types"
)

// distanceTolerance absorbs the 2-decimal rounding of the overall distance.
const distanceTolerance = 0.01

// Verify checks a report against the structural guarantees of the aggregation
// and against the dataset that was ingested. All violations are returned joined.
func Verify(rep *types.Report, ds *Dataset) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	// Weekly buckets are strictly ascending with a contiguous 1-based index.
	var weekRuns int
	var weekKm float64
	for i, b := range rep.Weekly {
		if b.RunningWeek != i+1 {
			fail("weekly[%d]: running week %d, want %d", i, b.RunningWeek, i+1)
		}
		if i > 0 {
			prev := rep.Weekly[i-1]
			if prev.ISOYear > b.ISOYear || (prev.ISOYear == b.ISOYear && prev.ISOWeek >= b.ISOWeek) {
				fail("weekly[%d]: %d-W%02d does not follow %d-W%02d", i, b.ISOYear, b.ISOWeek, prev.ISOYear, prev.ISOWeek)
			}
		}
		if b.NumRuns < 1 {
			fail("weekly[%d]: empty bucket", i)
		}
		weekRuns += b.NumRuns
		weekKm += b.DistanceKm
	}
	if weekRuns != rep.Overall.TotalRuns {
		fail("weekly run count %d, overall %d", weekRuns, rep.Overall.TotalRuns)
	}
	if math.Abs(weekKm-rep.Overall.TotalDistanceKm) > distanceTolerance {
		fail("weekly distance %.3f, overall %.3f", weekKm, rep.Overall.TotalDistanceKm)
	}

	// Filtered monthly buckets lie inside the window and are a subset of the unfiltered ones.
	unfiltered := make(map[string]bool, len(rep.MonthlyUnfiltered))
	for _, m := range rep.MonthlyUnfiltered {
		unfiltered[m.YearMonth] = true
	}
	kept := make(map[string]bool, len(rep.Monthly))
	for _, m := range rep.Monthly {
		kept[m.YearMonth] = true
		if !rep.PaceWindow.Contains(m.AvgPace) {
			fail("monthly %s: average pace outside [%g, %g]", m.YearMonth, rep.PaceWindow.Min, rep.PaceWindow.Max)
		}
		if !unfiltered[m.YearMonth] {
			fail("monthly %s: missing from the unfiltered buckets", m.YearMonth)
		}
	}

	// At most one personal best per category and year, in start-time order.
	seen := make(map[string]bool, len(rep.PersonalBests))
	for i, pb := range rep.PersonalBests {
		key := fmt.Sprintf("%s/%d", pb.Category, pb.Year)
		if seen[key] {
			fail("personal best %s appears twice", key)
		}
		seen[key] = true
		if pb.Run.Year() != pb.Year {
			fail("personal best %s: run from %d", key, pb.Run.Year())
		}
		if i > 0 && model.WallBefore(pb.Run.StartDateLocal, rep.PersonalBests[i-1].Run.StartDateLocal) {
			fail("personal best %s is out of order", key)
		}
		if pb.FormattedPace != derive.FormatPace(pb.Run.Pace) {
			fail("personal best %s: pace string %q", key, pb.FormattedPace)
		}
	}

	if ds != nil {
		if rep.Overall.TotalRuns < ds.Runs {
			fail("overall counts %d runs, %d were sent", rep.Overall.TotalRuns, ds.Runs)
		}
		if ds.ImplausibleMonth != "" {
			if !unfiltered[ds.ImplausibleMonth] {
				fail("monthly %s: missing from the unfiltered buckets", ds.ImplausibleMonth)
			}
			if kept[ds.ImplausibleMonth] {
				fail("monthly %s: walking-pace month was not filtered", ds.ImplausibleMonth)
			}
		}
	}

	return errors.Join(errs...)
}

// VerifyIngest checks the ingest totals against the dataset.
func VerifyIngest(res types.IngestResult, ds *Dataset) error {
	var errs []error
	if res.Accepted != ds.Runs {
		errs = append(errs, fmt.Errorf("accepted %d runs, want %d", res.Accepted, ds.Runs))
	}
	if res.Ignored != ds.Rides {
		errs = append(errs, fmt.Errorf("ignored %d records, want %d", res.Ignored, ds.Rides))
	}
	if len(res.Rejected) != ds.Invalid {
		errs = append(errs, fmt.Errorf("rejected %d records, want %d", len(res.Rejected), ds.Invalid))
	}
	return errors.Join(errs...)
}
