package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/okian/pacetrend/internal/adapters/source"
	"github.com/okian/pacetrend/internal/adapters/source/csvfile"
	"github.com/okian/pacetrend/internal/adapters/source/strava"
	app "github.com/okian/pacetrend/internal/app"
	"github.com/okian/pacetrend/internal/config"
	"github.com/okian/pacetrend/internal/domain/types"
	"github.com/okian/pacetrend/pkg/logger"
)

const defaultTopRuns = 5

var errNoSource = errors.New("one of -csv or -strava is required")

func main() {
	var (
		csvPath   = flag.String("csv", "", "Strava CSV export to summarize")
		useStrava = flag.Bool("strava", false, "Fetch activities from the Strava API (uses the strava config block)")
		top       = flag.Int("top", defaultTopRuns, "Number of longest runs to print")
	)
	flag.Parse()

	// Logs go to stderr so that stdout carries only the summary.
	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	_ = logger.SetLevelString("warn")

	src, err := pickSource(cfg, *csvPath, *useStrava)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(ctx, os.Stdout, cfg, src, *top); err != nil {
		_, _ = os.Stderr.WriteString("report failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func pickSource(cfg *config.Config, csvPath string, useStrava bool) (source.Source, error) {
	switch {
	case csvPath != "" && useStrava:
		return nil, errors.New("-csv and -strava are mutually exclusive")
	case csvPath != "":
		return csvfile.New(csvPath), nil
	case useStrava:
		return strava.New(cfg.Strava.ClientID, cfg.Strava.ClientSecret, cfg.Strava.TokenFile,
			strava.WithBaseURL(cfg.Strava.BaseURL),
			strava.WithTokenURL(cfg.Strava.TokenURL),
			strava.WithPerPage(cfg.Strava.PerPage),
		), nil
	}
	return nil, errNoSource
}

// run imports src into a fresh service and prints its report.
func run(ctx context.Context, w io.Writer, cfg *config.Config, src source.Source, top int) error {
	svc := app.New(
		app.WithPaceWindow(cfg.PaceWindow),
		app.WithCategories(cfg.Categories),
		app.WithMaxTopRuns(max(top, 1)),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	if _, err := svc.Import(ctx, src); err != nil {
		return err
	}
	rep, err := svc.Report(ctx)
	if err != nil {
		return err
	}
	runs, err := svc.TopRuns(ctx, top)
	if err != nil {
		return err
	}
	rep.TopRuns = runs
	return printReport(w, rep)
}

// printReport writes the summary lines followed by the weekly and longest-run tables.
func printReport(w io.Writer, rep types.Report) error {
	o := rep.Overall
	pace := "n/a"
	if v, ok := o.MeanPace.Value(); ok {
		pace = fmt.Sprintf("%.2f", v)
	}
	if _, err := fmt.Fprintf(w, "Running Summary\nTotal Runs: %d\nTotal Distance: %.2f km\nAverage Pace: %s min/km\nAverage Moving Time: %.1f min\nLongest Run: %.2f km\n",
		o.TotalRuns, o.TotalDistanceKm, pace, o.MeanMovingTimeMin, o.LongestRunKm); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "\nWeekly Summary")
	_, _ = fmt.Fprintln(tw, "week\tiso_week\tdistance_km\tnum_runs")
	for _, b := range rep.Weekly {
		_, _ = fmt.Fprintf(tw, "%d\t%d-W%02d\t%.2f\t%d\n", b.RunningWeek, b.ISOYear, b.ISOWeek, b.DistanceKm, b.NumRuns)
	}
	_, _ = fmt.Fprintln(tw, "\nPersonal Bests")
	_, _ = fmt.Fprintln(tw, "category\tyear\tdate\ttime\tpace")
	for _, pb := range rep.PersonalBests {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", pb.Category, pb.Year, pb.Run.StartDateLocal.Format("2006-01-02"), pb.FormattedTime, pb.FormattedPace)
	}
	_, _ = fmt.Fprintln(tw, "\nLongest Runs")
	_, _ = fmt.Fprintln(tw, "date\tname\tdistance_km\tmoving_time\tpace")
	for _, r := range rep.TopRuns {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\n", r.Date, r.Name, r.DistanceKm, r.MovingTime, r.Pace)
	}
	return tw.Flush()
}
