package model_test

import (
	"errors"
	"math"
	"testing"

	model "github.com/okian/pacetrend/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPaceWindow(t *testing.T) {
	Convey("Given a pace window", t, func() {
		w := model.PaceWindow{Min: 5, Max: 8}

		Convey("Then the bounds should be inclusive", func() {
			So(w.Validate(), ShouldBeNil)
			So(w.Contains(model.PaceOf(5)), ShouldBeTrue)
			So(w.Contains(model.PaceOf(8)), ShouldBeTrue)
			So(w.Contains(model.PaceOf(4.99)), ShouldBeFalse)
			So(w.Contains(model.PaceOf(8.01)), ShouldBeFalse)
		})

		Convey("And an undefined pace should never be contained", func() {
			So(w.Contains(model.UndefinedPace()), ShouldBeFalse)
		})

		Convey("When min exceeds max", func() {
			err := model.PaceWindow{Min: 8, Max: 5}.Validate()
			So(errors.Is(err, model.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When a bound is not finite", func() {
			err := model.PaceWindow{Min: 5, Max: math.Inf(1)}.Validate()
			So(errors.Is(err, model.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestDistanceCategories(t *testing.T) {
	Convey("Given distance categories", t, func() {
		categories := []model.DistanceCategory{
			{Label: "5K", MinKm: 4.5, MaxKm: 5.5},
			{Label: "10K", MinKm: 9.5, MaxKm: 10.5},
		}

		Convey("Then valid categories should pass", func() {
			So(model.ValidateCategories(categories), ShouldBeNil)
			So(categories[0].Contains(4.5), ShouldBeTrue)
			So(categories[0].Contains(5.5), ShouldBeTrue)
			So(categories[0].Contains(5.51), ShouldBeFalse)
		})

		Convey("When a window is inverted", func() {
			bad := append(categories, model.DistanceCategory{Label: "21K", MinKm: 21.5, MaxKm: 20.5})
			So(errors.Is(model.ValidateCategories(bad), model.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When labels repeat", func() {
			bad := append(categories, model.DistanceCategory{Label: "5K", MinKm: 4, MaxKm: 6})
			So(errors.Is(model.ValidateCategories(bad), model.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the label is blank", func() {
			err := model.DistanceCategory{Label: " ", MinKm: 1, MaxKm: 2}.Validate()
			So(errors.Is(err, model.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
