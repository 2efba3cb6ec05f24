package service

import (
	repository "github.com/okian/pacetrend/internal/adapters/repository"
	"github.com/okian/pacetrend/internal/domain/model"
	"github.com/okian/pacetrend/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the default in-memory activity store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithPaceWindow sets the monthly plausibility window. It is validated by Start.
func WithPaceWindow(w model.PaceWindow) Option {
	return func(s *Service) {
		s.window = w
	}
}

// WithCategories sets the personal-best distance categories. They are validated by Start.
func WithCategories(c []model.DistanceCategory) Option {
	return func(s *Service) {
		s.categories = append([]model.DistanceCategory(nil), c...)
	}
}

// WithMaxTopRuns caps the number of rows returned by TopRuns and RecentRuns.
func WithMaxTopRuns(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTopRuns = n
		}
	}
}

// WithMaxActivities bounds the default store. Ignored when WithStore is used.
func WithMaxActivities(n int) Option {
	return func(s *Service) {
		s.maxActivities = n
	}
}
