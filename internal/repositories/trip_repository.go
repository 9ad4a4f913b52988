package repositories

import (
	"context"
	"sort"

	"tripdiary/internal/domain/models"
)

const tripResource = "trip"

// TripRepository is the server-side trip store. Implementations replace a
// trip wholesale on Upsert and report unknown ids with domain.NotFoundError.
type TripRepository interface {
	Upsert(ctx context.Context, trip models.Trip) error
	List(ctx context.Context) ([]models.Trip, error)
	Get(ctx context.Context, id string) (models.Trip, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// sortByCreatedDesc orders trips newest first; equal timestamps fall back to
// id so listings are stable.
func sortByCreatedDesc(trips []models.Trip) {
	sort.SliceStable(trips, func(i, j int) bool {
		if trips[i].CreatedAt.Equal(trips[j].CreatedAt) {
			return trips[i].ID < trips[j].ID
		}
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})
}
