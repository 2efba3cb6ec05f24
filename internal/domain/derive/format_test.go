package derive_test

import (
	"math"
	"testing"

	"github.com/okian/pacetrend/internal/domain/derive"
	"github.com/okian/pacetrend/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFormatDuration(t *testing.T) {
	Convey("Given durations in minutes", t, func() {
		Convey("When formatting without hour padding", func() {
			So(derive.FormatDuration(25.5, derive.HourUnpadded), ShouldEqual, "0:25:30")
			So(derive.FormatDuration(125.25, derive.HourUnpadded), ShouldEqual, "2:05:15")
		})

		Convey("When formatting with hour padding", func() {
			So(derive.FormatDuration(25.5, derive.HourPadded), ShouldEqual, "00:25:30")
			So(derive.FormatDuration(125.25, derive.HourPadded), ShouldEqual, "02:05:15")
		})

		Convey("When seconds round up to a full minute", func() {
			So(derive.FormatDuration(59.999, derive.HourUnpadded), ShouldEqual, "1:00:00")
		})

		Convey("When the input is zero or undefined", func() {
			So(derive.FormatDuration(0, derive.HourUnpadded), ShouldEqual, "")
			So(derive.FormatDuration(math.NaN(), derive.HourPadded), ShouldEqual, "")
			So(derive.FormatDuration(math.Inf(1), derive.HourPadded), ShouldEqual, "")
			So(derive.FormatDuration(-3, derive.HourPadded), ShouldEqual, "")
		})
	})
}

func TestFormatPace(t *testing.T) {
	Convey("Given paces", t, func() {
		So(derive.FormatPace(model.PaceOf(5.0)), ShouldEqual, "5:00/km")
		So(derive.FormatPace(model.PaceOf(4.8)), ShouldEqual, "4:48/km")
		So(derive.FormatPace(model.PaceOf(5.999)), ShouldEqual, "6:00/km")

		Convey("When undefined or zero", func() {
			So(derive.FormatPace(model.UndefinedPace()), ShouldEqual, "")
			So(derive.FormatPace(model.PaceOf(0)), ShouldEqual, "")
		})
	})
}
