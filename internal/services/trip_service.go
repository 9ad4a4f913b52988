package services

import (
	"context"
	"fmt"
	"time"

	"tripdiary/internal/domain"
	"tripdiary/internal/domain/models"
	"tripdiary/internal/repositories"
	"tripdiary/internal/utils"
)

// TripService validates incoming trips and mirrors them into the server store.
type TripService struct {
	Repo      repositories.TripRepository
	Now       func() time.Time
	RequestID string
}

func NewTripService(repo repositories.TripRepository) TripService {
	return TripService{Repo: repo, Now: utils.NowUTC}
}

// WithRequestID returns a copy that tags its log lines with requestID.
func (s TripService) WithRequestID(requestID string) TripService {
	s.RequestID = requestID
	return s
}

func (s TripService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return utils.NowUTC()
}

// Upsert validates the payload and inserts or replaces the trip by id. The
// stored syncedAt is always the server's clock, whatever the client sent.
func (s TripService) Upsert(ctx context.Context, p domain.TripPayload) (models.Trip, error) {
	if err := domain.ValidateTrip(p); err != nil {
		return models.Trip{}, err
	}
	trip := s.stamp(p.Trip())
	if err := s.Repo.Upsert(ctx, trip); err != nil {
		return models.Trip{}, domain.InternalError{Msg: "failed to store trip", Err: err}
	}
	utils.LogEvent(s.RequestID, "trips", "upsert", fmt.Sprintf("id=%s trip_number=%d", trip.ID, trip.TripNumber))
	return trip, nil
}

// BulkUpsert validates every trip before storing any of them and returns the
// accepted ids in request order.
func (s TripService) BulkUpsert(ctx context.Context, p domain.BulkPayload) ([]string, error) {
	if err := domain.ValidateBulk(p); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(p.Trips))
	for _, tp := range p.Trips {
		trip := s.stamp(tp.Trip())
		if err := s.Repo.Upsert(ctx, trip); err != nil {
			return ids, domain.InternalError{Msg: "failed to store trip", Err: err}
		}
		ids = append(ids, trip.ID)
	}
	utils.LogEvent(s.RequestID, "trips", "bulk_upsert", fmt.Sprintf("count=%d", len(ids)))
	return ids, nil
}

func (s TripService) List(ctx context.Context) ([]models.Trip, error) {
	trips, err := s.Repo.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list trips", Err: err}
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	return trips, nil
}

func (s TripService) Get(ctx context.Context, id string) (models.Trip, error) {
	trip, err := s.Repo.Get(ctx, id)
	if err != nil && !domain.IsNotFound(err) {
		return models.Trip{}, domain.InternalError{Msg: "failed to load trip", Err: err}
	}
	return trip, err
}

func (s TripService) Delete(ctx context.Context, id string) error {
	err := s.Repo.Delete(ctx, id)
	switch {
	case err == nil:
		utils.LogEvent(s.RequestID, "trips", "delete", "id="+id)
		return nil
	case domain.IsNotFound(err):
		return err
	default:
		return domain.InternalError{Msg: "failed to delete trip", Err: err}
	}
}

func (s TripService) Count(ctx context.Context) (int, error) {
	return s.Repo.Count(ctx)
}

func (s TripService) stamp(t models.Trip) models.Trip {
	now := s.now()
	t.SyncedAt = &now
	return t
}
