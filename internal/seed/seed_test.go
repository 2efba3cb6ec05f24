package seed_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/pacetrend/internal/adapters/http/api"
	service "github.com/okian/pacetrend/internal/app"
	"github.com/okian/pacetrend/internal/domain/model"
	"github.com/okian/pacetrend/internal/seed"
	"github.com/okian/pacetrend/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		panic(err)
	}
}

func smallConfig() *seed.Config {
	return &seed.Config{Seed: 7, StartYear: 2022, Years: 2, RunsPerWeek: 3, BatchSize: 100, Workers: 4}
}

func newService() *service.Service {
	svc := service.New()
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestGenerate(t *testing.T) {
	Convey("Given a seeding configuration", t, func() {
		ctx := context.Background()
		cfg := smallConfig()

		Convey("When generating twice with the same seed", func() {
			a := seed.Generate(ctx, cfg)
			b := seed.Generate(ctx, cfg)

			Convey("Then both histories should be identical", func() {
				So(len(a.Activities), ShouldEqual, len(b.Activities))
				So(a.Activities, ShouldResemble, b.Activities)
			})
		})

		Convey("When generating with another seed", func() {
			a := seed.Generate(ctx, cfg)
			other := *cfg
			other.Seed = 8
			b := seed.Generate(ctx, &other)

			Convey("Then the histories should differ", func() {
				So(a.Activities[0].ID, ShouldNotEqual, b.Activities[0].ID)
			})
		})

		Convey("When inspecting the generated records", func() {
			ds := seed.Generate(ctx, cfg)

			Convey("Then every record should be classified exactly once", func() {
				So(ds.Runs+ds.Rides+ds.Invalid, ShouldEqual, len(ds.Activities))
				So(ds.Rides, ShouldBeGreaterThan, 0)
				So(ds.Invalid, ShouldBeGreaterThan, 0)
			})

			Convey("Then ids should be unique and all records inside the configured years", func() {
				seen := make(map[string]bool, len(ds.Activities))
				for _, a := range ds.Activities {
					So(seen[a.ID], ShouldBeFalse)
					seen[a.ID] = true
					So(a.StartDateLocal, ShouldNotBeNil)
					So(a.StartDateLocal.Year(), ShouldBeBetweenOrEqual, 2022, 2023)
				}
			})

			Convey("Then the walking-pace month should be July of the first year", func() {
				So(ds.ImplausibleMonth, ShouldEqual, "2022-07")
			})

			Convey("Then some runs should lack moving time and some distance", func() {
				var noTime, noDistance int
				for _, a := range ds.Activities {
					if a.Type != model.TypeRun {
						continue
					}
					if a.MovingTimeSeconds == nil {
						noTime++
					}
					if a.DistanceMeters != nil && *a.DistanceMeters == 0 {
						noDistance++
					}
				}
				So(noTime, ShouldEqual, ds.Invalid)
				So(noDistance, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When generating with a nil configuration", func() {
			ds := seed.Generate(ctx, nil)

			Convey("Then the defaults should apply", func() {
				So(ds.ImplausibleMonth, ShouldEqual, "2021-07")
				So(len(ds.Activities), ShouldBeGreaterThan, 3*52*seed.DefaultRunsPerWeek-seed.DefaultRunsPerWeek*2)
			})
		})
	})
}

func TestVerify(t *testing.T) {
	Convey("Given a service that ingested a generated history", t, func() {
		ctx := context.Background()
		ds := seed.Generate(ctx, smallConfig())
		svc := newService()
		defer svc.Stop()

		res, err := svc.Ingest(ctx, "seed", ds.Activities)
		So(err, ShouldBeNil)

		Convey("Then the ingest totals should match the dataset", func() {
			So(seed.VerifyIngest(res, ds), ShouldBeNil)
		})

		Convey("Then its report should verify", func() {
			rep, err := svc.Report(ctx)
			So(err, ShouldBeNil)
			So(seed.Verify(&rep, ds), ShouldBeNil)
			So(len(rep.MonthlyUnfiltered)-len(rep.Monthly), ShouldEqual, 1)
		})

		Convey("When the weekly index is corrupted", func() {
			rep, err := svc.Report(ctx)
			So(err, ShouldBeNil)
			rep.Weekly[1].RunningWeek = 7

			Convey("Then verification should fail", func() {
				So(seed.Verify(&rep, ds), ShouldNotBeNil)
			})
		})

		Convey("When the walking-pace month is reported as plausible", func() {
			rep, err := svc.Report(ctx)
			So(err, ShouldBeNil)
			for _, m := range rep.MonthlyUnfiltered {
				if m.YearMonth == ds.ImplausibleMonth {
					rep.Monthly = append(rep.Monthly, m)
				}
			}

			Convey("Then verification should fail", func() {
				So(seed.Verify(&rep, ds), ShouldNotBeNil)
			})
		})

		Convey("When the ingest totals are off", func() {
			res.Ignored++

			Convey("Then ingest verification should fail", func() {
				So(seed.VerifyIngest(res, ds), ShouldNotBeNil)
			})
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running service behind an HTTP server", t, func() {
		ctx := context.Background()
		svc := newService()
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, svc, 0, 0).Register(ctx, mux)
		ts := httptest.NewServer(mux)
		defer ts.Close()

		cfg := smallConfig()
		cfg.BaseURL = ts.URL
		cfg.OutputFile = filepath.Join(t.TempDir(), "out", "activities.json")

		Convey("When seeding it", func() {
			err := seed.Run(ctx, cfg)

			Convey("Then the run should succeed and store every valid record", func() {
				So(err, ShouldBeNil)
				ds := seed.Generate(ctx, cfg)
				So(svc.GetStats()["storedActivities"], ShouldEqual, ds.Runs+ds.Rides)
			})

			Convey("Then the generated records should be saved", func() {
				b, rerr := os.ReadFile(cfg.OutputFile)
				So(rerr, ShouldBeNil)
				var saved []model.Activity
				So(json.Unmarshal(b, &saved), ShouldBeNil)
				So(len(saved), ShouldEqual, len(seed.Generate(ctx, cfg).Activities))
			})
		})
	})

	Convey("Given a service that is not healthy", t, func() {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		cfg := smallConfig()
		cfg.BaseURL = ts.URL

		Convey("Then seeding should fail the health check", func() {
			err := seed.Run(context.Background(), cfg)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "health check")
		})
	})

	Convey("Given a service whose ingestion endpoint fails", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
		mux.HandleFunc("/activities", func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":"internal_error"}`, http.StatusInternalServerError)
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()

		cfg := smallConfig()
		cfg.BaseURL = ts.URL

		Convey("Then seeding should report the submission failure", func() {
			err := seed.Run(context.Background(), cfg)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "status 500")
		})
	})
}
