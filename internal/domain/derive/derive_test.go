package derive_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/pacetrend/internal/domain/derive"
	"github.com/okian/pacetrend/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func ptr[T any](v T) *T { return &v }

func activity(id, typ string, meters, seconds float64) model.Activity {
	start := time.Date(2024, 3, 5, 7, 0, 0, 0, time.UTC)
	return model.Activity{
		ID:                id,
		Type:              typ,
		Name:              "run " + id,
		DistanceMeters:    ptr(meters),
		MovingTimeSeconds: ptr(seconds),
		StartDateLocal:    &start,
	}
}

func TestMetrics(t *testing.T) {
	Convey("Given a 10 km run in 50 minutes", t, func() {
		m := derive.Metrics(activity("1", model.TypeRun, 10_000, 3_000))

		Convey("Then units should be converted", func() {
			So(m.DistanceKm, ShouldEqual, 10.0)
			So(m.MovingTimeMin, ShouldEqual, 50.0)
		})

		Convey("And pace should be minutes per kilometre", func() {
			v, ok := m.Pace.Value()
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 5.0)
		})
	})

	Convey("Given a zero-distance record", t, func() {
		m := derive.Metrics(activity("2", model.TypeRun, 0, 600))

		Convey("Then pace should be undefined, not zero or infinite", func() {
			So(m.Pace.Defined(), ShouldBeFalse)
			So(m.MovingTimeMin, ShouldEqual, 10.0)
		})
	})
}

func TestRuns(t *testing.T) {
	Convey("Given a mixed collection", t, func() {
		missing := activity("3", model.TypeRun, 5000, 1500)
		missing.MovingTimeSeconds = nil
		res := derive.Runs([]model.Activity{
			activity("1", model.TypeRun, 5000, 1500),
			activity("2", "Ride", 20000, 3600),
			missing,
			activity("4", model.TypeRun, 0, 100),
		})

		Convey("Then runs should be normalized in input order", func() {
			So(len(res.Runs), ShouldEqual, 2)
			So(res.Runs[0].ID, ShouldEqual, "1")
			So(res.Runs[1].ID, ShouldEqual, "4")
		})

		Convey("And non-runs should be ignored", func() {
			So(res.Ignored, ShouldEqual, 1)
		})

		Convey("And records with missing fields should be rejected without failing", func() {
			So(len(res.Rejected), ShouldEqual, 1)
			So(res.Rejected[0].ID, ShouldEqual, "3")
			So(errors.Is(res.Rejected[0].Err, model.ErrMissingField), ShouldBeTrue)
		})
	})
}
