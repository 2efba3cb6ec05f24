package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/pacetrend/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Run generates a history, submits it to the service and verifies the report.
func Run(ctx context.Context, cfg *Config) error {
	cfg = withDefaults(cfg)
	return RunWith(ctx, NewClient(cfg.BaseURL, cfg.Timeout), cfg)
}

// RunWith is Run with a caller-supplied client.
func RunWith(ctx context.Context, c *Client, cfg *Config) error {
	cfg = withDefaults(cfg)
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting pace trend seeding",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("seed", int(cfg.Seed)),
		logger.Int("startYear", cfg.StartYear),
		logger.Int("years", cfg.Years),
		logger.Int("runsPerWeek", cfg.RunsPerWeek),
		logger.Int("workers", cfg.Workers),
		logger.Bool("saveRecords", cfg.OutputFile != ""),
	)

	// Step 1: Check service health
	if err := c.Health(ctx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate history
	ds := Generate(ctx, cfg)
	stats.RecordsGenerated = len(ds.Activities)

	// Step 3: Submit batches concurrently
	if err := submit(ctx, c, cfg, ds.Activities, stats); err != nil {
		return fmt.Errorf("activity submission failed: %w", err)
	}
	if err := VerifyIngest(stats.Ingest, ds); err != nil {
		return fmt.Errorf("ingest verification failed: %w", err)
	}

	// Step 4: Fetch and verify the report
	rep, err := c.Report(ctx)
	if err != nil {
		return fmt.Errorf("report retrieval failed: %w", err)
	}
	if err := Verify(rep, ds); err != nil {
		return fmt.Errorf("report verification failed: %w", err)
	}

	// Step 5: Save records to file
	if cfg.OutputFile != "" {
		if err := save(ctx, cfg.OutputFile, ds); err != nil {
			logger.Get().Warn(ctx, "failed to save activities to file", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	logger.Get().Info(ctx, "seeding completed",
		logger.Int("recordsGenerated", stats.RecordsGenerated),
		logger.Int("batchesSubmitted", stats.BatchesSubmitted),
		logger.Int("accepted", stats.Ingest.Accepted),
		logger.Int("ignored", stats.Ingest.Ignored),
		logger.Int("rejected", len(stats.Ingest.Rejected)),
		logger.Int("weeks", len(rep.Weekly)),
		logger.Int("months", len(rep.Monthly)),
		logger.Int("monthsDropped", len(rep.MonthlyUnfiltered)-len(rep.Monthly)),
		logger.Int("personalBests", len(rep.PersonalBests)),
		logger.Duration("duration", stats.Duration),
	)
	return nil
}

// save writes the generated records as a JSON array.
func save(ctx context.Context, filename string, ds *Dataset) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	b, err := json.MarshalIndent(ds.Activities, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal activities: %w", err)
	}
	if err := os.WriteFile(filename, b, filePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	logger.Get().Info(ctx, "activities saved to file", logger.String("filename", filename))
	return nil
}
