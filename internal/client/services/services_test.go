package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"tripdiary/internal/client/api"
	"tripdiary/internal/client/localstore"
	"tripdiary/internal/client/storage"
	"tripdiary/internal/domain"
	"tripdiary/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	pushErr  error
	bulkErr  error
	accept   func(trips []models.Trip) []string
	pushed   []models.Trip
	bulkSent [][]models.Trip
}

func (f *fakeServer) PushTrip(_ context.Context, trip models.Trip) error {
	f.pushed = append(f.pushed, trip)
	return f.pushErr
}

func (f *fakeServer) PushTrips(_ context.Context, trips []models.Trip) ([]string, error) {
	f.bulkSent = append(f.bulkSent, trips)
	if f.bulkErr != nil {
		return nil, f.bulkErr
	}
	if f.accept != nil {
		return f.accept(trips), nil
	}
	ids := make([]string, 0, len(trips))
	for _, t := range trips {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

var (
	errUnavailable = &api.StatusError{StatusCode: http.StatusServiceUnavailable}
	errRejected    = &api.StatusError{StatusCode: http.StatusBadRequest}
	errOffline     = fmt.Errorf("%w: connection refused", api.ErrOffline)
)

func newLocal() *localstore.Store {
	return localstore.New(storage.NewMemoryKV())
}

func seed(t *testing.T, s *localstore.Store, ids ...string) {
	t.Helper()
	at := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for i, id := range ids {
		require.NoError(t, s.Save(context.Background(), models.Trip{
			ID: id, TripNumber: i + 1, Origin: "A", Destination: "B",
			Mode: models.ModeCar, DepartureTime: at, CreatedAt: at, ConsentGiven: true,
		}))
	}
}

func syncedIDs(t *testing.T, s *localstore.Store) map[string]bool {
	t.Helper()
	trips, err := s.List(context.Background())
	require.NoError(t, err)
	out := map[string]bool{}
	for _, tr := range trips {
		out[tr.ID] = tr.Synced()
	}
	return out
}

func TestSyncTrip_Success(t *testing.T) {
	store := newLocal()
	seed(t, store, "a")
	rec := &Recorder{}
	svc := NewSyncService(store, &fakeServer{}, rec)

	ok, err := svc.SyncTrip(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, syncedIDs(t, store)["a"])
	assert.Equal(t, []string{"Trip synced"}, rec.Messages())
}

func TestSyncTrip_SoftFailures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"unavailable", errUnavailable, "Server unavailable, kept locally"},
		{"rejected", errRejected, "Server unavailable, kept locally"},
		{"offline", errOffline, "Offline or server error, kept locally"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newLocal()
			seed(t, store, "a")
			rec := &Recorder{}
			svc := NewSyncService(store, &fakeServer{pushErr: tc.err}, rec)

			ok, err := svc.SyncTrip(context.Background(), "a")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.False(t, syncedIDs(t, store)["a"])
			assert.Equal(t, []string{tc.want}, rec.Messages())
		})
	}
}

func TestSyncTrip_UnknownID(t *testing.T) {
	svc := NewSyncService(newLocal(), &fakeServer{}, nil)
	_, err := svc.SyncTrip(context.Background(), "nope")
	assert.True(t, domain.IsNotFound(err))
}

func TestSyncAll_MarksOnlyAcceptedIDs(t *testing.T) {
	store := newLocal()
	seed(t, store, "a", "b", "c")
	server := &fakeServer{accept: func([]models.Trip) []string { return []string{"a", "c"} }}
	rec := &Recorder{}
	svc := NewSyncService(store, server, rec)

	marked, err := svc.SyncAll(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "c"}, marked)
	require.Len(t, server.bulkSent, 1)
	assert.Len(t, server.bulkSent[0], 3)

	state := syncedIDs(t, store)
	assert.True(t, state["a"])
	assert.False(t, state["b"])
	assert.True(t, state["c"])
	assert.Equal(t, []string{"Synced pending trips"}, rec.Messages())
}

func TestSyncAll_SendsOnlyUnsynced(t *testing.T) {
	store := newLocal()
	seed(t, store, "a", "b")
	_, err := store.MarkSynced(context.Background(), "a")
	require.NoError(t, err)
	server := &fakeServer{}

	_, err = NewSyncService(store, server, nil).SyncAll(context.Background())
	require.NoError(t, err)
	require.Len(t, server.bulkSent, 1)
	require.Len(t, server.bulkSent[0], 1)
	assert.Equal(t, "b", server.bulkSent[0][0].ID)
}

func TestSyncAll_NothingPending(t *testing.T) {
	store := newLocal()
	server := &fakeServer{}
	rec := &Recorder{}

	marked, err := NewSyncService(store, server, rec).SyncAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, marked)
	assert.Empty(t, server.bulkSent)
	assert.Equal(t, []string{"All trips are already synced"}, rec.Messages())
}

func TestSyncAll_IgnoresUnknownAcceptedIDs(t *testing.T) {
	store := newLocal()
	seed(t, store, "a")
	server := &fakeServer{accept: func([]models.Trip) []string { return []string{"a", "ghost"} }}

	marked, err := NewSyncService(store, server, nil).SyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, marked)
}

func TestSyncAll_Failure(t *testing.T) {
	store := newLocal()
	seed(t, store, "a", "b")
	rec := &Recorder{}

	marked, err := NewSyncService(store, &fakeServer{bulkErr: errOffline}, rec).SyncAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, marked)
	assert.Equal(t, []string{"Offline or server error, kept locally"}, rec.Messages())
	for id, synced := range syncedIDs(t, store) {
		assert.False(t, synced, id)
	}
}

func validInput() CaptureInput {
	return CaptureInput{
		Origin:        " Home ",
		Destination:   "Office",
		Mode:          models.ModeBus,
		DepartureTime: time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC),
		ConsentGiven:  true,
	}
}

func TestCaptureInput_Check(t *testing.T) {
	require.NoError(t, validInput().Check())

	err := CaptureInput{Mode: "spaceship"}.Check()
	require.Error(t, err)
	for _, want := range []error{ErrConsentRequired, ErrOriginRequired, ErrDestinationRequired, ErrDepartureRequired, ErrUnknownMode} {
		assert.True(t, errors.Is(err, want), "missing %v", want)
	}
}

func TestCapture_SavesAndSyncs(t *testing.T) {
	store := newLocal()
	seed(t, store, "old")
	server := &fakeServer{}
	rec := &Recorder{}
	svc := NewCaptureService(store, server, rec)

	in := validInput()
	blank := "  "
	zero := 0
	in.Companions = []models.Companion{{Name: &blank, Age: &zero}}
	in.Notes = "  "

	trip, synced, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, synced)
	assert.NotEmpty(t, trip.ID)
	assert.Equal(t, 2, trip.TripNumber)
	assert.Equal(t, "Home", trip.Origin)
	assert.Nil(t, trip.Notes)
	require.Len(t, trip.Companions, 1)
	assert.NotEmpty(t, trip.Companions[0].ID)
	assert.Nil(t, trip.Companions[0].Name)
	assert.Nil(t, trip.Companions[0].Age)
	assert.NotNil(t, trip.SyncedAt)

	assert.Equal(t, []string{"Saved locally", "Synced with server"}, rec.Messages())
	require.Len(t, server.pushed, 1)
	assert.Nil(t, server.pushed[0].SyncedAt)

	trips, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, trip.ID, trips[0].ID)
}

func TestCapture_KeepsTripWhenPushFails(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{errUnavailable, "Server unavailable, will sync later"},
		{errOffline, "Offline or server error, will sync later"},
	}
	for _, tc := range cases {
		store := newLocal()
		rec := &Recorder{}
		svc := NewCaptureService(store, &fakeServer{pushErr: tc.err}, rec)

		in := validInput()
		in.TripNumber = 7
		trip, synced, err := svc.Submit(context.Background(), in)
		require.NoError(t, err)
		assert.False(t, synced)
		assert.Equal(t, 7, trip.TripNumber)
		assert.Equal(t, []string{"Saved locally", tc.want}, rec.Messages())

		pending, err := store.Unsynced(context.Background())
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, trip.ID, pending[0].ID)
	}
}

func TestCapture_BlockedWithoutConsent(t *testing.T) {
	store := newLocal()
	server := &fakeServer{}
	in := validInput()
	in.ConsentGiven = false

	_, _, err := NewCaptureService(store, server, nil).Submit(context.Background(), in)
	assert.ErrorIs(t, err, ErrConsentRequired)
	assert.Empty(t, server.pushed)

	trips, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestCapture_DefaultsToWalk(t *testing.T) {
	in := validInput()
	in.Mode = ""
	trip, _, err := NewCaptureService(newLocal(), &fakeServer{}, nil).Submit(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.ModeWalk, trip.Mode)
}
