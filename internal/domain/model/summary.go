package model

import "time"

// WeeklyBucket aggregates runs of one ISO week.
type WeeklyBucket struct {
	ISOYear     int     `json:"iso_year"`
	ISOWeek     int     `json:"iso_week"`
	DistanceKm  float64 `json:"distance_km"`
	NumRuns     int     `json:"num_runs"`
	RunningWeek int     `json:"running_week"` // 1-based index over occupied weeks
}

// MonthlyBucket aggregates runs of one calendar month.
type MonthlyBucket struct {
	YearMonth     string     `json:"year_month"` // "2006-01"
	Year          int        `json:"year"`
	Month         time.Month `json:"month"`
	DistanceKm    float64    `json:"distance_km"`
	MovingTimeMin float64    `json:"moving_time_min"`
	AvgPace       Pace       `json:"avg_pace"` // MovingTimeMin / DistanceKm
}

// PersonalBest is the fastest run of a category within one calendar year.
type PersonalBest struct {
	Category      string  `json:"category"`
	Year          int     `json:"year"`
	Run           Run     `json:"run"`
	PaceMinPerKm  float64 `json:"pace_min_per_km"`
	FormattedTime string  `json:"time_hms"`
	FormattedPace string  `json:"pace_str"`
}

// Overall holds whole-collection statistics, rounded for presentation.
type Overall struct {
	TotalRuns         int     `json:"total_runs"`
	TotalDistanceKm   float64 `json:"total_distance_km"`
	MeanPace          Pace    `json:"average_pace"`
	MeanMovingTimeMin float64 `json:"average_moving_time_min"`
	LongestRunKm      float64 `json:"longest_run_km"`
}
