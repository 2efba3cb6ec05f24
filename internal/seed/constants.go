package seed

import "time"

// Defaults for a seeding run.
const (
	DefaultBaseURL     = "http://localhost:9080"
	DefaultSeed        = 42
	DefaultStartYear   = 2021
	DefaultYears       = 3
	DefaultRunsPerWeek = 3
	DefaultBatchSize   = 500
	DefaultTimeout     = 30 * time.Second
)

// Generation shape.
const (
	rideEveryWeeks     = 4  // one ride every n weeks
	treadmillEveryRun  = 37 // every n-th run has no distance recorded
	invalidEveryRun    = 53 // every n-th run lacks moving_time
	implausibleMonth   = time.July
	basePace           = 6.2 // min/km in the first year
	yearlyImprovement  = 0.25
	fastestBasePace    = 5.6
	paceJitter         = 0.5
	walkingPaceMin     = 11.0
	walkingPaceRange   = 2.0
	workerChannelDepth = 2
)
