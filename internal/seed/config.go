package seed

import (
	"time"

	"github.com/okian/pacetrend/internal/domain/model"
	"github.com/okian/pacetrend/internal/domain/types"
)

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Seed        uint64        // PRNG seed; equal seeds give equal histories
	StartYear   int           // First calendar year of the history
	Years       int           // Number of years to generate
	RunsPerWeek int           // Runs per week, 1..7
	BatchSize   int           // Records per POST /activities
	Workers     int           // Number of concurrent submitters
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Optional JSON dump of generated records
	Verbose     bool          // Enable verbose logging
}

// Dataset is a generated history together with what the service should make of it.
type Dataset struct {
	Activities []model.Activity

	Runs    int // valid runs, zero-distance ones included
	Rides   int // non-run records
	Invalid int // runs lacking a required field

	// ImplausibleMonth is a "2006-01" month whose pace lies outside the default window.
	ImplausibleMonth string
}

// Stats holds seeding statistics.
type Stats struct {
	RecordsGenerated int
	BatchesSubmitted int
	BatchesFailed    int
	Ingest           types.IngestResult
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
