// Package postgres implements the vehicle store backed by PostgreSQL. It is
// selected when DATABASE_URL is configured; the in-memory store remains the
// default.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/garagesvc/vehicle-manager/internal/storage"
	"github.com/garagesvc/vehicle-manager/internal/vehicle"
)

// Store implements storage.VehicleStore on top of a PostgreSQL database.
type Store struct {
	db *sql.DB
}

var _ storage.VehicleStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to the database at url and verifies the connection.
func Open(ctx context.Context, url string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return New(db), nil
}

// EnsureSchema creates the vehicles table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS vehicles (
			id           TEXT PRIMARY KEY,
			manufacturer TEXT NOT NULL,
			model        TEXT NOT NULL,
			year         TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure vehicles schema: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateVehicle assigns a UUIDv7 id and inserts the vehicle.
func (s *Store) CreateVehicle(ctx context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return vehicle.Vehicle{}, fmt.Errorf("generate vehicle id: %w", err)
	}
	v.ID = id.String()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO vehicles (id, manufacturer, model, year, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, v.ID, v.Manufacturer, v.Model, v.Year, time.Now().UTC())
	if err != nil {
		return vehicle.Vehicle{}, err
	}
	return v, nil
}

// GetVehicle returns the vehicle with the given id, or storage.ErrNotFound.
func (s *Store) GetVehicle(ctx context.Context, id string) (vehicle.Vehicle, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, manufacturer, model, year
		FROM vehicles
		WHERE id = $1
	`, id)

	var v vehicle.Vehicle
	if err := row.Scan(&v.ID, &v.Manufacturer, &v.Model, &v.Year); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vehicle.Vehicle{}, storage.ErrNotFound
		}
		return vehicle.Vehicle{}, err
	}
	return v, nil
}

// ListVehicles returns all vehicles in creation order.
func (s *Store) ListVehicles(ctx context.Context) ([]vehicle.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, manufacturer, model, year
		FROM vehicles
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]vehicle.Vehicle, 0)
	for rows.Next() {
		var v vehicle.Vehicle
		if err := rows.Scan(&v.ID, &v.Manufacturer, &v.Model, &v.Year); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}
