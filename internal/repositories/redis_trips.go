package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tripdiary/internal/domain"
	"tripdiary/internal/domain/models"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisTripsKey is the hash holding every trip, field = trip id.
const DefaultRedisTripsKey = "tripdiary:trips"

// RedisTripRepository keeps trips as JSON values in a single Redis hash.
type RedisTripRepository struct {
	Client *redis.Client
	Key    string
}

func NewRedisTripRepository(client *redis.Client, key string) *RedisTripRepository {
	if key == "" {
		key = DefaultRedisTripsKey
	}
	return &RedisTripRepository{Client: client, Key: key}
}

func (r *RedisTripRepository) Upsert(ctx context.Context, t models.Trip) error {
	if t.Companions == nil {
		t.Companions = []models.Companion{}
	}
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode trip %s: %w", t.ID, err)
	}
	if err := r.Client.HSet(ctx, r.Key, t.ID, data).Err(); err != nil {
		return fmt.Errorf("upsert trip %s: %w", t.ID, err)
	}
	return nil
}

func (r *RedisTripRepository) List(ctx context.Context) ([]models.Trip, error) {
	vals, err := r.Client.HVals(ctx, r.Key).Result()
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	out := make([]models.Trip, 0, len(vals))
	for _, v := range vals {
		var t models.Trip
		if err := json.Unmarshal([]byte(v), &t); err != nil {
			return nil, fmt.Errorf("decode trip: %w", err)
		}
		out = append(out, t)
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (r *RedisTripRepository) Get(ctx context.Context, id string) (models.Trip, error) {
	v, err := r.Client.HGet(ctx, r.Key, id).Result()
	if errors.Is(err, redis.Nil) {
		return models.Trip{}, domain.NotFoundError{Resource: tripResource, Err: err}
	}
	if err != nil {
		return models.Trip{}, fmt.Errorf("get trip %s: %w", id, err)
	}
	var t models.Trip
	if err := json.Unmarshal([]byte(v), &t); err != nil {
		return models.Trip{}, fmt.Errorf("decode trip %s: %w", id, err)
	}
	return t, nil
}

func (r *RedisTripRepository) Delete(ctx context.Context, id string) error {
	n, err := r.Client.HDel(ctx, r.Key, id).Result()
	if err != nil {
		return fmt.Errorf("delete trip %s: %w", id, err)
	}
	if n == 0 {
		return domain.NotFoundError{Resource: tripResource}
	}
	return nil
}

func (r *RedisTripRepository) Count(ctx context.Context) (int, error) {
	n, err := r.Client.HLen(ctx, r.Key).Result()
	if err != nil {
		return 0, fmt.Errorf("count trips: %w", err)
	}
	return int(n), nil
}
