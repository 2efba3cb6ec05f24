// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	repository "github.com/okian/pacetrend/internal/adapters/repository"
	"github.com/okian/pacetrend/internal/adapters/source"
	"github.com/okian/pacetrend/internal/config"
	"github.com/okian/pacetrend/internal/domain/bucket"
	"github.com/okian/pacetrend/internal/domain/derive"
	"github.com/okian/pacetrend/internal/domain/model"
	"github.com/okian/pacetrend/internal/domain/personalbest"
	"github.com/okian/pacetrend/internal/domain/plausibility"
	"github.com/okian/pacetrend/internal/domain/summary"
	"github.com/okian/pacetrend/internal/domain/types"
	"github.com/okian/pacetrend/pkg/logger"
	"github.com/okian/pacetrend/pkg/metrics"
)

// Rejection reason labels used in metrics.
const (
	reasonMissingField = "missing_field"
	reasonInvalidField = "invalid_field"
	reasonStoreFull    = "store_full"
	reasonOther        = "other"
)

// Service ingests activity records and derives running summaries from them.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	filter  *plausibility.Filter
	tracker *personalbest.Tracker

	// Configuration
	window        model.PaceWindow
	categories    []model.DistanceCategory
	maxTopRuns    int
	maxActivities int

	// State
	started bool

	// Logging
	logger logger.Logger

	now func() time.Time
}

// New constructs a new Service. Tunables left unset take the values of config.New.
func New(opts ...Option) *Service {
	def := config.New()
	s := &Service{
		window:        def.PaceWindow,
		categories:    def.Categories,
		maxTopRuns:    def.MaxTopRuns,
		maxActivities: def.MaxActivities,
		now:           time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start validates the configuration and initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	filter, err := plausibility.New(s.window)
	if err != nil {
		return err
	}
	tracker, err := personalbest.New(s.categories)
	if err != nil {
		return err
	}
	s.filter = filter
	s.tracker = tracker

	if s.store == nil {
		s.store = repository.NewMemoryStore(repository.WithMaxActivities(s.maxActivities))
	}

	s.started = true
	s.logger.Info(ctx, "pace trend service started",
		logger.Float64("paceMin", s.window.Min),
		logger.Float64("paceMax", s.window.Max),
		logger.Int("categories", len(s.categories)),
	)
	return nil
}

// Stop marks the service as stopped. Stored activities are kept.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "pace trend service stopped")
}

func (s *Service) running() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// Ingest stores a batch of records from the named source.
// Records without an id get a generated one; a known id replaces the stored record.
// Non-run records are stored and counted as ignored. Runs with missing or invalid
// fields are rejected and not stored.
func (s *Service) Ingest(ctx context.Context, src string, activities []model.Activity) (types.IngestResult, error) {
	if err := s.running(); err != nil {
		return types.IngestResult{}, err
	}

	res := types.IngestResult{Received: len(activities), Rejected: []types.Rejection{}}
	for _, a := range activities {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.IsRun() {
			if err := a.Validate(); err != nil {
				s.reject(ctx, &res, a.ID, err)
				continue
			}
			res.Accepted++
		} else {
			res.Ignored++
		}

		replaced, err := s.store.Upsert(ctx, a)
		if errors.Is(err, repository.ErrStoreFull) {
			if a.IsRun() {
				res.Accepted--
			} else {
				res.Ignored--
			}
			s.reject(ctx, &res, a.ID, err)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("ingest %s: %w", a.ID, err)
		}
		if replaced {
			res.Replaced++
		}
	}
	res.Stored = s.store.Count(ctx)

	metrics.RecordActivitiesIngested(src, res.Accepted)
	metrics.RecordActivitiesIgnored(res.Ignored)
	s.logger.Info(ctx, "activities ingested",
		logger.String("source", src),
		logger.Int("received", res.Received),
		logger.Int("accepted", res.Accepted),
		logger.Int("replaced", res.Replaced),
		logger.Int("ignored", res.Ignored),
		logger.Int("rejected", len(res.Rejected)),
	)
	return res, nil
}

func (s *Service) reject(ctx context.Context, res *types.IngestResult, id string, err error) {
	res.Rejected = append(res.Rejected, types.Rejection{ID: id, Reason: err.Error()})
	metrics.RecordActivityRejected(reasonLabel(err))
	s.logger.Debug(ctx, "activity rejected", logger.String("id", id), logger.Error(err))
}

func reasonLabel(err error) string {
	switch {
	case errors.Is(err, model.ErrMissingField):
		return reasonMissingField
	case errors.Is(err, model.ErrInvalidField):
		return reasonInvalidField
	case errors.Is(err, repository.ErrStoreFull):
		return reasonStoreFull
	default:
		return reasonOther
	}
}

// Import fetches every record from src and ingests it.
func (s *Service) Import(ctx context.Context, src source.Source) (types.IngestResult, error) {
	activities, err := src.Fetch(ctx)
	if err != nil {
		return types.IngestResult{}, fmt.Errorf("import from %s: %w", src.Name(), err)
	}
	return s.Ingest(ctx, src.Name(), activities)
}

// runs normalizes the current store snapshot.
func (s *Service) runs(ctx context.Context) ([]model.Run, error) {
	if err := s.running(); err != nil {
		return nil, err
	}
	res := derive.Runs(s.store.Snapshot(ctx))
	for _, r := range res.Rejected {
		s.logger.Debug(ctx, "stored activity excluded", logger.String("id", r.ID), logger.Error(r.Err))
	}
	return res.Runs, nil
}

// Report computes every summary from one snapshot of the store.
func (s *Service) Report(ctx context.Context) (types.Report, error) {
	start := time.Now()
	runs, err := s.runs(ctx)
	if err != nil {
		return types.Report{}, err
	}

	rep := types.Report{
		ID:          uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		PaceWindow:  s.filter.Window(),
	}
	var dropped []model.MonthlyBucket

	// The summaries only read runs, so they can be computed side by side.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rep.Weekly = bucket.Weekly(runs)
		return gctx.Err()
	})
	g.Go(func() error {
		rep.MonthlyUnfiltered = bucket.Monthly(runs)
		rep.Monthly, dropped = s.filter.Apply(rep.MonthlyUnfiltered)
		return gctx.Err()
	})
	g.Go(func() error {
		rep.PersonalBests = s.tracker.Trend(runs)
		return gctx.Err()
	})
	g.Go(func() error {
		rep.Overall = summary.Overall(runs)
		return gctx.Err()
	})
	g.Go(func() error {
		rep.TopRuns = summary.Longest(runs, s.maxTopRuns)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return types.Report{}, err
	}

	s.logDropped(ctx, dropped)
	metrics.UpdateWeeklyBuckets(len(rep.Weekly))
	s.recordPersonalBests(rep.PersonalBests)
	metrics.RecordReportLatency(float64(time.Since(start).Microseconds()) / 1000)
	return rep, nil
}

func (s *Service) logDropped(ctx context.Context, dropped []model.MonthlyBucket) {
	metrics.RecordMonthlyBucketsDropped(len(dropped))
	for _, b := range dropped {
		pace, _ := b.AvgPace.Value()
		s.logger.Debug(ctx, "monthly bucket outside pace window",
			logger.String("month", b.YearMonth),
			logger.Float64("avgPace", pace),
			logger.Float64("distanceKm", b.DistanceKm),
		)
	}
}

func (s *Service) recordPersonalBests(pbs []model.PersonalBest) {
	counts := make(map[string]int, len(s.categories))
	for _, pb := range pbs {
		counts[pb.Category]++
	}
	for _, c := range s.tracker.Categories() {
		metrics.UpdatePersonalBests(c.Label, counts[c.Label])
	}
}

// Weekly returns the weekly buckets with their running-week index.
func (s *Service) Weekly(ctx context.Context) ([]model.WeeklyBucket, error) {
	runs, err := s.runs(ctx)
	if err != nil {
		return nil, err
	}
	return bucket.Weekly(runs), nil
}

// Monthly returns the monthly buckets, restricted to the pace window unless unfiltered is set.
func (s *Service) Monthly(ctx context.Context, unfiltered bool) ([]model.MonthlyBucket, error) {
	runs, err := s.runs(ctx)
	if err != nil {
		return nil, err
	}
	all := bucket.Monthly(runs)
	if unfiltered {
		return all, nil
	}
	kept, dropped := s.filter.Apply(all)
	s.logDropped(ctx, dropped)
	return kept, nil
}

// PersonalBests returns the personal-best trend, optionally for one category label.
func (s *Service) PersonalBests(ctx context.Context, category string) ([]model.PersonalBest, error) {
	runs, err := s.runs(ctx)
	if err != nil {
		return nil, err
	}
	pbs := s.tracker.Trend(runs)
	if category == "" {
		return pbs, nil
	}
	if !s.hasCategory(category) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	out := make([]model.PersonalBest, 0, len(pbs))
	for _, pb := range pbs {
		if pb.Category == category {
			out = append(out, pb)
		}
	}
	return out, nil
}

func (s *Service) hasCategory(label string) bool {
	for _, c := range s.tracker.Categories() {
		if c.Label == label {
			return true
		}
	}
	return false
}

// Overall returns the headline statistics.
func (s *Service) Overall(ctx context.Context) (model.Overall, error) {
	runs, err := s.runs(ctx)
	if err != nil {
		return model.Overall{}, err
	}
	return summary.Overall(runs), nil
}

// TopRuns returns up to n runs by distance, longest first.
func (s *Service) TopRuns(ctx context.Context, n int) ([]types.RunView, error) {
	runs, err := s.runs(ctx)
	if err != nil {
		return nil, err
	}
	return summary.Longest(runs, s.clamp(n)), nil
}

// RecentRuns returns up to n runs, most recent first.
func (s *Service) RecentRuns(ctx context.Context, n int) ([]types.RunView, error) {
	runs, err := s.runs(ctx)
	if err != nil {
		return nil, err
	}
	return summary.Recent(runs, s.clamp(n)), nil
}

func (s *Service) clamp(n int) int {
	if n <= 0 || n > s.maxTopRuns {
		return s.maxTopRuns
	}
	return n
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"paceWindow": s.window,
		"categories": len(s.categories),
		"maxTopRuns": s.maxTopRuns,
		"goroutines": runtime.NumGoroutine(),
	}

	if s.started {
		stored := s.store.Count(context.Background())
		stats["storedActivities"] = stored
		metrics.UpdateStoredActivities(stored)
		metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	}

	return stats
}
