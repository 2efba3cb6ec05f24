package plausibility_test

import (
	"errors"
	"testing"

	"github.com/okian/pacetrend/internal/domain/model"
	"github.com/okian/pacetrend/internal/domain/plausibility"
	. "github.com/smartystreets/goconvey/convey"
)

func month(ym string, pace model.Pace) model.MonthlyBucket {
	return model.MonthlyBucket{YearMonth: ym, AvgPace: pace}
}

func TestFilter(t *testing.T) {
	Convey("Given a filter with the [5, 8] window", t, func() {
		f, err := plausibility.New(model.PaceWindow{Min: 5, Max: 8})
		So(err, ShouldBeNil)

		buckets := []model.MonthlyBucket{
			month("2024-01", model.PaceOf(4.2)),
			month("2024-02", model.PaceOf(5.0)),
			month("2024-03", model.PaceOf(6.4)),
			month("2024-04", model.PaceOf(8.0)),
			month("2024-05", model.PaceOf(11.5)),
			month("2024-06", model.UndefinedPace()),
		}
		kept, dropped := f.Apply(buckets)

		Convey("Then only in-window buckets should be kept, bounds inclusive", func() {
			So(len(kept), ShouldEqual, 3)
			So(kept[0].YearMonth, ShouldEqual, "2024-02")
			So(kept[1].YearMonth, ShouldEqual, "2024-03")
			So(kept[2].YearMonth, ShouldEqual, "2024-04")
			for _, b := range kept {
				v, _ := b.AvgPace.Value()
				So(v, ShouldBeBetweenOrEqual, 5.0, 8.0)
			}
		})

		Convey("And out-of-window buckets should be reported as dropped", func() {
			So(len(dropped), ShouldEqual, 3)
			So(dropped[0].YearMonth, ShouldEqual, "2024-01")
			So(dropped[2].YearMonth, ShouldEqual, "2024-06")
		})

		Convey("And the unfiltered input should stay intact", func() {
			So(len(buckets), ShouldEqual, 6)
			So(buckets[0].YearMonth, ShouldEqual, "2024-01")
		})
	})

	Convey("Given a tuned window", t, func() {
		f, err := plausibility.New(model.PaceWindow{Min: 3, Max: 4.5})
		So(err, ShouldBeNil)
		kept, _ := f.Apply([]model.MonthlyBucket{month("2024-01", model.PaceOf(4.2))})
		So(len(kept), ShouldEqual, 1)
		So(f.Window().Max, ShouldEqual, 4.5)
	})

	Convey("Given an inverted window", t, func() {
		f, err := plausibility.New(model.PaceWindow{Min: 8, Max: 5})

		Convey("Then construction should fail fast", func() {
			So(f, ShouldBeNil)
			So(errors.Is(err, model.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
