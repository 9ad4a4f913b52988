package repositories

import (
	"context"
	"sync"

	"tripdiary/internal/domain"
	"tripdiary/internal/domain/models"
)

// MemoryTripRepository keeps trips in a map for the lifetime of the process.
type MemoryTripRepository struct {
	mu    sync.RWMutex
	trips map[string]models.Trip
}

func NewMemoryTripRepository() *MemoryTripRepository {
	return &MemoryTripRepository{trips: map[string]models.Trip{}}
}

func (r *MemoryTripRepository) Upsert(_ context.Context, trip models.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trips[trip.ID] = cloneTrip(trip)
	return nil
}

func (r *MemoryTripRepository) List(_ context.Context) ([]models.Trip, error) {
	r.mu.RLock()
	out := make([]models.Trip, 0, len(r.trips))
	for _, t := range r.trips {
		out = append(out, cloneTrip(t))
	}
	r.mu.RUnlock()

	sortByCreatedDesc(out)
	return out, nil
}

func (r *MemoryTripRepository) Get(_ context.Context, id string) (models.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trips[id]
	if !ok {
		return models.Trip{}, domain.NotFoundError{Resource: tripResource}
	}
	return cloneTrip(t), nil
}

func (r *MemoryTripRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trips[id]; !ok {
		return domain.NotFoundError{Resource: tripResource}
	}
	delete(r.trips, id)
	return nil
}

func (r *MemoryTripRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trips), nil
}

// cloneTrip copies the companions slice so callers cannot mutate stored state.
func cloneTrip(t models.Trip) models.Trip {
	if t.Companions != nil {
		cs := make([]models.Companion, len(t.Companions))
		copy(cs, t.Companions)
		t.Companions = cs
	}
	return t
}
