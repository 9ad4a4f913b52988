// Package localstore is the device-local collection of trips. The whole
// collection is kept as one JSON array under a fixed key and rewritten on
// every change.
package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"tripdiary/internal/client/storage"
	"tripdiary/internal/domain"
	"tripdiary/internal/domain/models"
)

// Key is the storage key of the serialized collection.
const Key = "tripdiary_trips_v1"

// Store reads and writes the trip collection through a KV. List order is
// most recent first.
type Store struct {
	kv  storage.KV
	now func() time.Time
	mu  sync.Mutex
}

func New(kv storage.KV) *Store {
	return &Store{kv: kv, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the time source used by MarkSynced.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) List(ctx context.Context) ([]models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) Get(ctx context.Context, id string) (models.Trip, error) {
	trips, err := s.List(ctx)
	if err != nil {
		return models.Trip{}, err
	}
	for _, t := range trips {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Trip{}, domain.NotFoundError{Resource: "trip"}
}

// Unsynced returns the trips with no syncedAt, in list order.
func (s *Store) Unsynced(ctx context.Context) ([]models.Trip, error) {
	trips, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if !t.Synced() {
			out = append(out, t)
		}
	}
	return out, nil
}

// Save inserts a new trip at the front or replaces an existing one in place.
// A replacement without syncedAt keeps the stored syncedAt.
func (s *Store) Save(ctx context.Context, trip models.Trip) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range trips {
		if trips[i].ID != trip.ID {
			continue
		}
		if trip.SyncedAt == nil {
			trip.SyncedAt = trips[i].SyncedAt
		}
		trips[i] = trip
		return s.store(ctx, trips)
	}

	trips = append([]models.Trip{trip}, trips...)
	return s.store(ctx, trips)
}

// MarkSynced stamps syncedAt on the trip with id. It reports false, and
// writes nothing, when no such trip exists.
func (s *Store) MarkSynced(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	for i := range trips {
		if trips[i].ID == id {
			at := s.now()
			trips[i].SyncedAt = &at
			return true, s.store(ctx, trips)
		}
	}
	return false, nil
}

// Remove drops the trip with id. Removing an unknown id is not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trips, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := trips[:0]
	for _, t := range trips {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return s.store(ctx, kept)
}

// Clear writes an empty collection.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store(ctx, []models.Trip{})
}

// NextNumber is one more than the largest trip number, or 1 when empty.
func (s *Store) NextNumber(ctx context.Context) (int, error) {
	trips, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	maxNumber := 0
	for _, t := range trips {
		maxNumber = max(maxNumber, t.TripNumber)
	}
	return maxNumber + 1, nil
}

func (s *Store) load(ctx context.Context) ([]models.Trip, error) {
	raw, found, err := s.kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("read trips: %w", err)
	}
	if !found || len(raw) == 0 {
		return []models.Trip{}, nil
	}
	var trips []models.Trip
	if err := json.Unmarshal(raw, &trips); err != nil {
		log.Printf("[localstore] discarding unreadable %s: %v", Key, err)
		return []models.Trip{}, nil
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	return trips, nil
}

func (s *Store) store(ctx context.Context, trips []models.Trip) error {
	for i := range trips {
		if trips[i].Companions == nil {
			trips[i].Companions = []models.Companion{}
		}
	}
	raw, err := json.Marshal(trips)
	if err != nil {
		return fmt.Errorf("encode trips: %w", err)
	}
	if err := s.kv.Put(ctx, Key, raw); err != nil {
		return fmt.Errorf("write trips: %w", err)
	}
	return nil
}
