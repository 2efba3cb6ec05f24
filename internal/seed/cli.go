package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/pacetrend/pkg/logger"
)

const logFilePermission = 0o600

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string, verbose bool) error {
	if logFile == "" {
		logFile = "seed_log_" + time.Now().Format("20060102_150405") + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	if err := logger.Init(logger.WithOutput(io.MultiWriter(os.Stdout, file))); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the seeding tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Pace Trend Seeding Tool
=======================

Generates a deterministic multi-year running history, submits it to a running
service and verifies the weekly, monthly and personal-best summaries it reports.

Usage:
  go run ./cmd/seed [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -seed uint
        PRNG seed; equal seeds generate equal histories (default 42)
  -start-year int
        First calendar year of the history (default 2021)
  -years int
        Number of years to generate (default 3)
  -runs-per-week int
        Runs per week, 1..7 (default 3)
  -batch int
        Records per POST /activities (default 500)
  -workers int
        Number of concurrent submitters (default CPU cores)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Write the generated records to this JSON file
  -log string
        Log file for seeding output (default: seed_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed a local service with default settings
  go run ./cmd/seed

  # Ten years of daily runs against another host
  go run ./cmd/seed -years 10 -runs-per-week 7 -url http://localhost:8080
`)
}
