package config_test

import (
	"errors"
	"testing"

	"github.com/okian/pacetrend/internal/config"
	"github.com/okian/pacetrend/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.PaceWindow, convey.ShouldResemble, model.PaceWindow{Min: 5, Max: 8})
			convey.So(len(cfg.Categories), convey.ShouldEqual, 3)
			convey.So(cfg.Categories[1], convey.ShouldResemble, model.DistanceCategory{Label: "10K", MinKm: 9.5, MaxKm: 10.5})
			convey.So(cfg.Strava.PerPage, convey.ShouldEqual, 200)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.Convey("When the pace window is inverted", func() {
			cfg.PaceWindow = model.PaceWindow{Min: 8, Max: 5}
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(errors.Is(err, model.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When a category is inverted", func() {
			cfg.Categories = append(cfg.Categories, model.DistanceCategory{Label: "42K", MinKm: 43, MaxKm: 41})
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When strava is enabled without a token file", func() {
			cfg.Strava.Enabled = true
			cfg.Strava.TokenFile = ""
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When batch limits are not positive", func() {
			cfg.MaxIngestBatch = 0
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
