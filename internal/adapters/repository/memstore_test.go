package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/pacetrend/internal/domain/model"
)

func activity(id string, meters float64) model.Activity {
	start := time.Date(2024, 3, 5, 7, 0, 0, 0, time.UTC)
	secs := meters * 0.3
	return model.Activity{
		ID:                id,
		Type:              model.TypeRun,
		Name:              "run " + id,
		DistanceMeters:    &meters,
		MovingTimeSeconds: &secs,
		StartDateLocal:    &start,
	}
}

func TestMemoryStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	replaced, err := store.Upsert(ctx, activity("a", 5000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if replaced {
		t.Error("expected first insert not to replace")
	}
	if _, err := store.Upsert(ctx, activity("b", 10000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count := store.Count(ctx); count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}

	replaced, err = store.Upsert(ctx, activity("a", 6000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !replaced {
		t.Error("expected second insert of the same id to replace")
	}

	snap := store.Snapshot(ctx)
	if len(snap) != 2 {
		t.Fatalf("expected 2 records, got %d", len(snap))
	}
	if snap[0].ID != "a" || *snap[0].DistanceMeters != 6000 {
		t.Errorf("expected replaced record to keep its position, got %s %f", snap[0].ID, *snap[0].DistanceMeters)
	}
}

func TestMemoryStore_Errors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(WithMaxActivities(1))

	if _, err := store.Upsert(ctx, activity("", 1000)); !errors.Is(err, ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
	if _, err := store.Upsert(ctx, activity("a", 1000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Upsert(ctx, activity("b", 1000)); !errors.Is(err, ErrStoreFull) {
		t.Errorf("expected ErrStoreFull, got %v", err)
	}
	// replacing an existing id is allowed at capacity
	if _, err := store.Upsert(ctx, activity("a", 2000)); err != nil {
		t.Errorf("unexpected error replacing at capacity: %v", err)
	}
}

func TestMemoryStore_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	a := activity("a", 5000)
	if _, err := store.Upsert(ctx, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	*a.DistanceMeters = 1
	snap := store.Snapshot(ctx)
	*snap[0].DistanceMeters = 2

	got := store.Snapshot(ctx)[0]
	if *got.DistanceMeters != 5000 {
		t.Errorf("store shares state with callers: distance %f", *got.DistanceMeters)
	}
}

func TestMemoryStore_ConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if _, err := store.Upsert(ctx, activity(fmt.Sprintf("%d-%d", w, i%50), 1000)); err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		}(w)
	}
	wg.Wait()

	if count := store.Count(ctx); count != 400 {
		t.Errorf("expected 400 distinct records, got %d", count)
	}
}
