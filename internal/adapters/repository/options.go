// Package repository defines the activity store interface and errors.
package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxActivities bounds the number of stored records. Values <= 0 mean unbounded.
func WithMaxActivities(n int) Option {
	return func(s *MemoryStore) {
		s.maxSize = n
	}
}
