package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	intdb "tripdiary/internal/db"
	"tripdiary/internal/domain"
	"tripdiary/internal/domain/models"
)

const tripColumns = `id, trip_number, origin, origin_lat, origin_lng,
		destination, destination_lat, destination_lng, mode, departure_time,
		companions, consent_given, notes, created_at, synced_at`

// MySQLTripRepository stores trips in the `trips` table. Companions are kept
// as a JSON column since they have no lifecycle of their own.
type MySQLTripRepository struct {
	DB *sql.DB
}

func NewMySQLTripRepository(db *sql.DB) *MySQLTripRepository {
	return &MySQLTripRepository{DB: db}
}

func (r *MySQLTripRepository) Upsert(ctx context.Context, t models.Trip) error {
	companions := t.Companions
	if companions == nil {
		companions = []models.Companion{}
	}
	rawCompanions, err := json.Marshal(companions)
	if err != nil {
		return fmt.Errorf("encode companions: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO trips (`+tripColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		  trip_number=VALUES(trip_number), origin=VALUES(origin),
		  origin_lat=VALUES(origin_lat), origin_lng=VALUES(origin_lng),
		  destination=VALUES(destination), destination_lat=VALUES(destination_lat),
		  destination_lng=VALUES(destination_lng), mode=VALUES(mode),
		  departure_time=VALUES(departure_time), companions=VALUES(companions),
		  consent_given=VALUES(consent_given), notes=VALUES(notes),
		  created_at=VALUES(created_at), synced_at=VALUES(synced_at)
	`,
		t.ID, t.TripNumber, t.Origin, intdb.NullFloatPtr(t.OriginLat), intdb.NullFloatPtr(t.OriginLng),
		t.Destination, intdb.NullFloatPtr(t.DestinationLat), intdb.NullFloatPtr(t.DestinationLng), string(t.Mode), t.DepartureTime.UTC(),
		string(rawCompanions), t.ConsentGiven, intdb.NullStringPtr(t.Notes), t.CreatedAt.UTC(), intdb.NullTimePtr(t.SyncedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert trip %s: %w", t.ID, err)
	}
	return nil
}

func (r *MySQLTripRepository) List(ctx context.Context) ([]models.Trip, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+tripColumns+` FROM trips ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return out, nil
}

func (r *MySQLTripRepository) Get(ctx context.Context, id string) (models.Trip, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+tripColumns+` FROM trips WHERE id=? LIMIT 1`, id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.NotFoundError{Resource: tripResource, Err: err}
	}
	return t, err
}

func (r *MySQLTripRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM trips WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete trip %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete trip %s: %w", id, err)
	}
	if n == 0 {
		return domain.NotFoundError{Resource: tripResource}
	}
	return nil
}

func (r *MySQLTripRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM trips`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count trips: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(s rowScanner) (models.Trip, error) {
	var (
		t                    models.Trip
		mode                 string
		originLat, originLng sql.NullFloat64
		destLat, destLng     sql.NullFloat64
		rawCompanions        []byte
		notes                sql.NullString
		syncedAt             sql.NullTime
	)
	if err := s.Scan(
		&t.ID, &t.TripNumber, &t.Origin, &originLat, &originLng,
		&t.Destination, &destLat, &destLng, &mode, &t.DepartureTime,
		&rawCompanions, &t.ConsentGiven, &notes, &t.CreatedAt, &syncedAt,
	); err != nil {
		return models.Trip{}, err
	}

	t.Mode = models.Mode(mode)
	t.OriginLat = intdb.FloatPtr(originLat)
	t.OriginLng = intdb.FloatPtr(originLng)
	t.DestinationLat = intdb.FloatPtr(destLat)
	t.DestinationLng = intdb.FloatPtr(destLng)
	t.Notes = intdb.StringPtr(notes)
	t.SyncedAt = intdb.TimePtr(syncedAt)
	t.DepartureTime = t.DepartureTime.UTC()
	t.CreatedAt = t.CreatedAt.UTC()

	t.Companions = []models.Companion{}
	if len(rawCompanions) > 0 {
		if err := json.Unmarshal(rawCompanions, &t.Companions); err != nil {
			return models.Trip{}, fmt.Errorf("decode companions of trip %s: %w", t.ID, err)
		}
	}
	return t, nil
}
