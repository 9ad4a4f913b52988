package localstore

import (
	"context"
	"testing"
	"time"

	"tripdiary/internal/client/storage"
	"tripdiary/internal/domain"
	"tripdiary/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newStore() (*Store, *storage.MemoryKV) {
	kv := storage.NewMemoryKV()
	return New(kv).WithClock(func() time.Time { return clock }), kv
}

func trip(id string, number int) models.Trip {
	return models.Trip{
		ID:            id,
		TripNumber:    number,
		Origin:        "Home",
		Destination:   "Market",
		Mode:          models.ModeWalk,
		DepartureTime: clock.Add(-time.Hour),
		ConsentGiven:  true,
		CreatedAt:     clock.Add(-time.Hour),
	}
}

func ids(trips []models.Trip) []string {
	out := make([]string, 0, len(trips))
	for _, t := range trips {
		out = append(out, t.ID)
	}
	return out
}

func TestList_Empty(t *testing.T) {
	s, _ := newStore()
	trips, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, trips)
	assert.Empty(t, trips)
}

func TestSave_NewTripGoesFirst(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, trip("a", 1)))
	require.NoError(t, s.Save(ctx, trip("b", 2)))

	trips, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(trips))
}

func TestSave_ReplacesInPlace(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, trip("a", 1)))
	require.NoError(t, s.Save(ctx, trip("b", 2)))
	require.NoError(t, s.Save(ctx, trip("c", 3)))

	changed := trip("b", 2)
	changed.Destination = "School"
	require.NoError(t, s.Save(ctx, changed))

	trips, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids(trips))
	assert.Equal(t, "School", trips[1].Destination)
}

func TestSave_ReplacementKeepsSyncedAt(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, trip("a", 1)))
	ok, err := s.MarkSynced(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, s.Save(ctx, trip("a", 1)))

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got.SyncedAt)
	assert.True(t, got.SyncedAt.Equal(clock))
}

func TestNextNumber(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()

	n, err := s.NextNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	for i, num := range []int{2, 5, 1} {
		require.NoError(t, s.Save(ctx, trip(string(rune('a'+i)), num)))
	}
	n, err = s.NextNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestMarkSynced_Absent(t *testing.T) {
	s, kv := newStore()
	ctx := context.Background()

	ok, err := s.MarkSynced(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, found, err := kv.Get(ctx, Key)
	require.NoError(t, err)
	assert.False(t, found, "no write expected for an absent id")
}

func TestMarkSynced_Present(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, trip("a", 1)))
	ok, err := s.MarkSynced(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	trips, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	require.NotNil(t, trips[0].SyncedAt)
	assert.True(t, trips[0].SyncedAt.Equal(clock))
}

func TestUnsynced(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, trip("a", 1)))
	require.NoError(t, s.Save(ctx, trip("b", 2)))
	require.NoError(t, s.Save(ctx, trip("c", 3)))
	_, err := s.MarkSynced(ctx, "b")
	require.NoError(t, err)

	pending, err := s.Unsynced(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, ids(pending))
}

func TestRemoveAndClear(t *testing.T) {
	s, _ := newStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, trip("a", 1)))
	require.NoError(t, s.Save(ctx, trip("b", 2)))

	require.NoError(t, s.Remove(ctx, "a"))
	require.NoError(t, s.Remove(ctx, "unknown"))
	trips, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(trips))

	require.NoError(t, s.Clear(ctx))
	trips, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestGet_NotFound(t *testing.T) {
	s, _ := newStore()
	_, err := s.Get(context.Background(), "nope")
	assert.True(t, domain.IsNotFound(err))
}

func TestCorruptBlobReadsAsEmpty(t *testing.T) {
	s, kv := newStore()
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, Key, []byte("{not json")))

	trips, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, trips)

	require.NoError(t, s.Save(ctx, trip("a", 1)))
	trips, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(trips))
}

func TestBlobIsJSONArray(t *testing.T) {
	s, kv := newStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, trip("a", 1)))

	raw, found, err := kv.Get(ctx, Key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, byte('['), raw[0])
	assert.Contains(t, string(raw), `"companions":[]`)
}
