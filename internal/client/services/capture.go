package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tripdiary/internal/domain/models"
	"tripdiary/internal/utils"

	"github.com/google/uuid"
)

const (
	msgSavedLocally     = "Saved locally"
	msgSyncedServer     = "Synced with server"
	msgLaterUnavailable = "Server unavailable, will sync later"
	msgLaterOffline     = "Offline or server error, will sync later"
)

var (
	ErrConsentRequired     = errors.New("consent is required")
	ErrOriginRequired      = errors.New("origin is required")
	ErrDestinationRequired = errors.New("destination is required")
	ErrDepartureRequired   = errors.New("departure time is required")
	ErrUnknownMode         = errors.New("unknown mode")
)

// CaptureInput is what the person fills in for a new trip. A zero
// TripNumber means "use the next number"; an empty Mode means walk.
type CaptureInput struct {
	TripNumber     int
	Origin         string
	OriginLat      *float64
	OriginLng      *float64
	Destination    string
	DestinationLat *float64
	DestinationLng *float64
	Mode           models.Mode
	DepartureTime  time.Time
	Companions     []models.Companion
	ConsentGiven   bool
	Notes          string
}

// Check reports every reason the input cannot be submitted yet.
func (in CaptureInput) Check() error {
	var errs []error
	if !in.ConsentGiven {
		errs = append(errs, ErrConsentRequired)
	}
	if strings.TrimSpace(in.Origin) == "" {
		errs = append(errs, ErrOriginRequired)
	}
	if strings.TrimSpace(in.Destination) == "" {
		errs = append(errs, ErrDestinationRequired)
	}
	if in.DepartureTime.IsZero() {
		errs = append(errs, ErrDepartureRequired)
	}
	if in.Mode != "" && !in.Mode.Valid() {
		errs = append(errs, fmt.Errorf("%w %q", ErrUnknownMode, in.Mode))
	}
	return errors.Join(errs...)
}

// CaptureService records a new trip locally and then tries one push.
type CaptureService struct {
	store    TripStore
	server   Pusher
	notifier Notifier
	now      func() time.Time
	newID    func() string
}

func NewCaptureService(store TripStore, server Pusher, notifier Notifier) *CaptureService {
	if notifier == nil {
		notifier = discard{}
	}
	return &CaptureService{
		store:    store,
		server:   server,
		notifier: notifier,
		now:      utils.NowUTC,
		newID:    uuid.NewString,
	}
}

// Submit saves the trip locally, then attempts a single push. The local
// save is what matters: a failed push only produces a notice, and the
// returned trip is still the stored one.
func (s *CaptureService) Submit(ctx context.Context, in CaptureInput) (models.Trip, bool, error) {
	if err := in.Check(); err != nil {
		return models.Trip{}, false, err
	}

	number := in.TripNumber
	if number <= 0 {
		n, err := s.store.NextNumber(ctx)
		if err != nil {
			return models.Trip{}, false, err
		}
		number = n
	}

	mode := in.Mode
	if mode == "" {
		mode = models.ModeWalk
	}

	trip := models.Trip{
		ID:             s.newID(),
		TripNumber:     number,
		Origin:         utils.NormalizeSpace(in.Origin),
		OriginLat:      in.OriginLat,
		OriginLng:      in.OriginLng,
		Destination:    utils.NormalizeSpace(in.Destination),
		DestinationLat: in.DestinationLat,
		DestinationLng: in.DestinationLng,
		Mode:           mode,
		DepartureTime:  in.DepartureTime.UTC(),
		Companions:     s.normalizeCompanions(in.Companions),
		ConsentGiven:   in.ConsentGiven,
		Notes:          utils.OptionalString(in.Notes),
		CreatedAt:      s.now(),
	}

	if err := s.store.Save(ctx, trip); err != nil {
		return models.Trip{}, false, err
	}
	s.notifier.Notify(Notice{Level: LevelSuccess, Message: msgSavedLocally})

	if err := s.server.PushTrip(ctx, trip); err != nil {
		notifyPushFailure(s.notifier, err, msgLaterUnavailable, msgLaterOffline)
		return trip, false, nil
	}

	if _, err := s.store.MarkSynced(ctx, trip.ID); err != nil {
		return trip, false, err
	}
	s.notifier.Notify(Notice{Level: LevelSuccess, Message: msgSyncedServer})

	saved, err := s.store.Get(ctx, trip.ID)
	if err != nil {
		return trip, true, err
	}
	return saved, true, nil
}

func (s *CaptureService) normalizeCompanions(in []models.Companion) []models.Companion {
	out := make([]models.Companion, 0, len(in))
	for _, c := range in {
		if strings.TrimSpace(c.ID) == "" {
			c.ID = s.newID()
		}
		if c.Name != nil {
			c.Name = utils.OptionalString(*c.Name)
		}
		if c.Relationship != nil {
			c.Relationship = utils.OptionalString(*c.Relationship)
		}
		if c.Age != nil && *c.Age <= 0 {
			c.Age = nil
		}
		out = append(out, c)
	}
	return out
}
