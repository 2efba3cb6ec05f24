package seed

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/okian/pacetrend/internal/domain/model"
	"github.com/okian/pacetrend/pkg/logger"
)

// seedStream separates this generator's PCG stream from other users of the same seed.
const seedStream = 0x9e3779b97f4a7c15

// Generate builds a deterministic multi-year history. Besides regular runs it
// contains rides, treadmill runs without distance, runs lacking moving_time and
// one month run at walking pace. The records are shuffled.
func Generate(ctx context.Context, cfg *Config) *Dataset {
	cfg = withDefaults(cfg)
	r := rand.New(rand.NewPCG(cfg.Seed, seedStream))
	ds := &Dataset{
		ImplausibleMonth: time.Date(cfg.StartYear, implausibleMonth, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
	}

	end := time.Date(cfg.StartYear+cfg.Years, time.January, 1, 0, 0, 0, 0, time.UTC)
	week := firstMonday(cfg.StartYear)
	runIdx := 0
	for w := 0; week.Before(end); w, week = w+1, week.AddDate(0, 0, 7) {
		for k := 0; k < cfg.RunsPerWeek; k++ {
			day := week.AddDate(0, 0, k*7/cfg.RunsPerWeek)
			if !day.Before(end) {
				break
			}
			start := day.Add(time.Duration(6+r.IntN(3))*time.Hour + time.Duration(r.IntN(60))*time.Minute)
			ds.Activities = append(ds.Activities, nextRun(r, cfg, ds, runIdx, start))
			runIdx++
		}
		if w%rideEveryWeeks == rideEveryWeeks-1 {
			ride := week.AddDate(0, 0, 5).Add(9 * time.Hour)
			if ride.Before(end) {
				ds.Activities = append(ds.Activities, activity(cfg, len(ds.Activities), "Ride", "Saturday Ride",
					20_000+r.Float64()*40_000, 3_600+r.Float64()*5_400, ride))
				ds.Rides++
			}
		}
	}

	r.Shuffle(len(ds.Activities), func(i, j int) {
		ds.Activities[i], ds.Activities[j] = ds.Activities[j], ds.Activities[i]
	})
	logger.Get().Info(ctx, "generated activity history",
		logger.Int("records", len(ds.Activities)),
		logger.Int("runs", ds.Runs),
		logger.Int("rides", ds.Rides),
		logger.Int("invalid", ds.Invalid),
		logger.String("implausibleMonth", ds.ImplausibleMonth),
	)
	return ds
}

func nextRun(r *rand.Rand, cfg *Config, ds *Dataset, runIdx int, start time.Time) model.Activity {
	n := len(ds.Activities)
	switch {
	case runIdx%invalidEveryRun == invalidEveryRun-1:
		a := activity(cfg, n, model.TypeRun, "Lost Watch Run", 5_000, 0, start)
		a.MovingTimeSeconds = nil
		ds.Invalid++
		return a
	case runIdx%treadmillEveryRun == treadmillEveryRun-1:
		ds.Runs++
		return activity(cfg, n, model.TypeRun, "Treadmill", 0, 1_800, start)
	}

	km := distanceKm(r)
	pace := paceFor(r, cfg, start)
	name := "Morning Run"
	if km >= 18 {
		name = "Long Run"
	}
	ds.Runs++
	return activity(cfg, n, model.TypeRun, name, km*1000, pace*km*60, start)
}

// distanceKm mixes race distances with easy runs.
func distanceKm(r *rand.Rand) float64 {
	switch v := r.IntN(10); {
	case v < 3:
		return 4.9 + r.Float64()*0.2
	case v < 5:
		return 9.8 + r.Float64()*0.4
	case v < 6:
		return 21.0 + r.Float64()*0.3
	default:
		return 3 + r.Float64()*12
	}
}

// paceFor improves year on year; the implausible month is run at walking pace.
func paceFor(r *rand.Rand, cfg *Config, start time.Time) float64 {
	if start.Year() == cfg.StartYear && start.Month() == implausibleMonth {
		return walkingPaceMin + r.Float64()*walkingPaceRange
	}
	base := math.Max(fastestBasePace, basePace-yearlyImprovement*float64(start.Year()-cfg.StartYear))
	return base + (r.Float64()*2-1)*paceJitter
}

func activity(cfg *Config, n int, typ, name string, meters, seconds float64, start time.Time) model.Activity {
	meters = math.Round(meters*10) / 10
	seconds = math.Round(seconds)
	return model.Activity{
		ID:                recordID(cfg.Seed, n),
		Type:              typ,
		Name:              name,
		DistanceMeters:    &meters,
		MovingTimeSeconds: &seconds,
		StartDateLocal:    &start,
	}
}

// recordID derives a stable UUID from the seed and the record position.
func recordID(seed uint64, n int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "pacetrend-seed/%d/%d", seed, n)).String()
}

func firstMonday(year int) time.Time {
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func withDefaults(cfg *Config) *Config {
	out := Config{}
	if cfg != nil {
		out = *cfg
	}
	if out.StartYear == 0 {
		out.StartYear = DefaultStartYear
	}
	if out.Years < 1 {
		out.Years = DefaultYears
	}
	if out.RunsPerWeek < 1 || out.RunsPerWeek > 7 {
		out.RunsPerWeek = DefaultRunsPerWeek
	}
	if out.BatchSize < 1 {
		out.BatchSize = DefaultBatchSize
	}
	if out.Workers < 1 {
		out.Workers = 1
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}
	return &out
}
