package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/pacetrend/internal/seed"
)

const defaultRunTimeout = 10 * time.Minute

func main() {
	var (
		baseURL     = flag.String("url", seed.DefaultBaseURL, "Base URL of the service")
		seedValue   = flag.Uint64("seed", seed.DefaultSeed, "PRNG seed; equal seeds generate equal histories")
		startYear   = flag.Int("start-year", seed.DefaultStartYear, "First calendar year of the history")
		years       = flag.Int("years", seed.DefaultYears, "Number of years to generate")
		runsPerWeek = flag.Int("runs-per-week", seed.DefaultRunsPerWeek, "Runs per week, 1..7")
		batchSize   = flag.Int("batch", seed.DefaultBatchSize, "Records per POST /activities")
		workers     = flag.Int("workers", runtime.NumCPU(), "Number of concurrent submitters")
		timeout     = flag.Duration("timeout", seed.DefaultTimeout, "HTTP request timeout")
		outputFile  = flag.String("output", "", "Write the generated records to this JSON file")
		logFile     = flag.String("log", "", "Log file for seeding output (default: seed_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seed.ShowHelp()
		return
	}

	if err := seed.SetupLogging(*logFile, *verbose); err != nil {
		_, _ = os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &seed.Config{
		BaseURL:     *baseURL,
		Seed:        *seedValue,
		StartYear:   *startYear,
		Years:       *years,
		RunsPerWeek: *runsPerWeek,
		BatchSize:   *batchSize,
		Workers:     *workers,
		Timeout:     *timeout,
		OutputFile:  *outputFile,
		Verbose:     *verbose,
	}

	if err := seed.Run(ctx, cfg); err != nil {
		_, _ = os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
