package services

import (
	"context"
	"errors"
	"log"

	"tripdiary/internal/client/api"
	"tripdiary/internal/domain/models"
)

const (
	msgTripSynced      = "Trip synced"
	msgKeptUnavailable = "Server unavailable, kept locally"
	msgKeptOffline     = "Offline or server error, kept locally"
	msgAllSynced       = "All trips are already synced"
	msgSyncedPending   = "Synced pending trips"
)

// Pusher is the part of the server API the sync flows use.
type Pusher interface {
	PushTrip(ctx context.Context, trip models.Trip) error
	PushTrips(ctx context.Context, trips []models.Trip) ([]string, error)
}

// TripStore is the local collection the services read and update.
type TripStore interface {
	List(ctx context.Context) ([]models.Trip, error)
	Get(ctx context.Context, id string) (models.Trip, error)
	Unsynced(ctx context.Context) ([]models.Trip, error)
	Save(ctx context.Context, trip models.Trip) error
	MarkSynced(ctx context.Context, id string) (bool, error)
	NextNumber(ctx context.Context) (int, error)
}

// SyncService pushes locally held trips to the server on request. There is
// no retry: a failed push waits for the next manual sync.
type SyncService struct {
	store    TripStore
	server   Pusher
	notifier Notifier
}

func NewSyncService(store TripStore, server Pusher, notifier Notifier) *SyncService {
	if notifier == nil {
		notifier = discard{}
	}
	return &SyncService{store: store, server: server, notifier: notifier}
}

// SyncTrip pushes one trip. A server or network failure is reported as a
// notice and (false, nil); only local store errors are returned.
func (s *SyncService) SyncTrip(ctx context.Context, id string) (bool, error) {
	trip, err := s.store.Get(ctx, id)
	if err != nil {
		return false, err
	}

	if err := s.server.PushTrip(ctx, trip); err != nil {
		notifyPushFailure(s.notifier, err, msgKeptUnavailable, msgKeptOffline)
		return false, nil
	}

	if _, err := s.store.MarkSynced(ctx, id); err != nil {
		return false, err
	}
	s.notifier.Notify(Notice{Level: LevelSuccess, Message: msgTripSynced})
	return true, nil
}

// SyncAll sends every unsynced trip in one bulk request and marks exactly
// the ids the server accepted. It returns the ids marked.
func (s *SyncService) SyncAll(ctx context.Context) ([]string, error) {
	pending, err := s.store.Unsynced(ctx)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		s.notifier.Notify(Notice{Level: LevelPlain, Message: msgAllSynced})
		return []string{}, nil
	}

	accepted, err := s.server.PushTrips(ctx, pending)
	if err != nil {
		notifyPushFailure(s.notifier, err, msgKeptUnavailable, msgKeptOffline)
		return []string{}, nil
	}

	marked := make([]string, 0, len(accepted))
	for _, id := range accepted {
		ok, err := s.store.MarkSynced(ctx, id)
		if err != nil {
			return marked, err
		}
		if ok {
			marked = append(marked, id)
		}
	}
	s.notifier.Notify(Notice{Level: LevelSuccess, Message: msgSyncedPending})
	return marked, nil
}

// notifyPushFailure sends unavailable for a non-2xx reply and offline for
// anything else (network, timeout, unreadable reply).
func notifyPushFailure(n Notifier, err error, unavailable, offline string) {
	var se *api.StatusError
	if errors.As(err, &se) {
		log.Printf("[sync] server replied %d: %v", se.StatusCode, err)
		n.Notify(Notice{Level: LevelInfo, Message: unavailable})
		return
	}
	log.Printf("[sync] push failed: %v", err)
	n.Notify(Notice{Level: LevelInfo, Message: offline})
}
