// Package storage defines the repository contract for vehicle persistence.
// Handlers and services depend on these interfaces only; the backing
// implementation (in-memory or postgres) is chosen at wiring time.
package storage

import (
	"context"
	"errors"

	"github.com/garagesvc/vehicle-manager/internal/vehicle"
)

// ErrNotFound signals an absent id on point lookups. It is an expected
// negative result, not a fault; callers distinguish it with errors.Is.
var ErrNotFound = errors.New("vehicle not found")

// VehicleStore persists vehicle records. Implementations must be safe for
// concurrent use by any number of request handlers; all locking is internal.
type VehicleStore interface {
	// CreateVehicle assigns a new unique id, inserts the vehicle and returns
	// the stored record.
	CreateVehicle(ctx context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error)
	// GetVehicle returns the vehicle with the given id, or ErrNotFound.
	GetVehicle(ctx context.Context, id string) (vehicle.Vehicle, error)
	// ListVehicles returns a consistent snapshot of all stored vehicles.
	ListVehicles(ctx context.Context) ([]vehicle.Vehicle, error)
}
