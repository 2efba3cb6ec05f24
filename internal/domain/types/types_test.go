package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/pacetrend/internal/domain/model"
	types "github.com/okian/pacetrend/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRunView_JSON(t *testing.T) {
	Convey("Given a run view with an undefined pace", t, func() {
		v := types.RunView{
			ID:             "1",
			Date:           "2024-03-05",
			Name:           "Treadmill",
			StartDateLocal: time.Date(2024, 3, 5, 7, 0, 0, 0, time.UTC),
		}

		Convey("When encoding to JSON", func() {
			data, err := json.Marshal(v)
			So(err, ShouldBeNil)

			var decoded map[string]any
			So(json.Unmarshal(data, &decoded), ShouldBeNil)

			Convey("Then pace should be null rather than zero", func() {
				So(decoded["pace_min_per_km"], ShouldBeNil)
				So(decoded["run_date"], ShouldEqual, "2024-03-05")
			})
		})
	})
}

func TestReport_JSON(t *testing.T) {
	Convey("Given a report", t, func() {
		r := types.Report{
			ID:      "r-1",
			Overall: model.Overall{TotalRuns: 2, MeanPace: model.PaceOf(5.5)},
		}

		Convey("Then it should round-trip the overall block", func() {
			data, err := json.Marshal(r)
			So(err, ShouldBeNil)

			var back types.Report
			So(json.Unmarshal(data, &back), ShouldBeNil)
			So(back.ID, ShouldEqual, "r-1")
			So(back.Overall.TotalRuns, ShouldEqual, 2)
			v, ok := back.Overall.MeanPace.Value()
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 5.5)
		})
	})
}
