package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"tripdiary/internal/domain"
	"tripdiary/internal/domain/models"

	"github.com/redis/go-redis/v9"
)

// Runs only when TRIPDIARY_TEST_REDIS_URL points at a disposable Redis.
func newTestRedisRepo(t *testing.T) *RedisTripRepository {
	t.Helper()
	url := os.Getenv("TRIPDIARY_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TRIPDIARY_TEST_REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}
	client := redis.NewClient(opt)
	t.Cleanup(func() { client.Close() })

	key := "tripdiary:test:" + t.Name()
	repo := NewRedisTripRepository(client, key)
	t.Cleanup(func() { client.Del(context.Background(), key) })
	return repo
}

func TestNewRedisTripRepositoryDefaultKey(t *testing.T) {
	repo := NewRedisTripRepository(nil, "")
	if repo.Key != DefaultRedisTripsKey {
		t.Fatalf("key = %q", repo.Key)
	}
}

func TestRedisRepositoryLifecycle(t *testing.T) {
	repo := newTestRedisRepo(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b"} {
		trip := models.Trip{ID: id, Origin: "x", Destination: "y", Mode: models.ModeCar, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := repo.Upsert(ctx, trip); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	trips, err := repo.List(ctx)
	if err != nil || len(trips) != 2 || trips[0].ID != "b" {
		t.Fatalf("list = %+v, %v", trips, err)
	}
	if err := repo.Delete(ctx, "missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if n, _ := repo.Count(ctx); n != 2 {
		t.Fatalf("count after failed delete = %d", n)
	}
	if _, err := repo.Get(ctx, "missing"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
