// Package vehicles implements the vehicle business service: validation ahead
// of any store write, and business-context logging at key operations.
package vehicles

import (
	"context"
	"errors"
	"fmt"

	"github.com/garagesvc/vehicle-manager/internal/storage"
	"github.com/garagesvc/vehicle-manager/internal/vehicle"
	"github.com/garagesvc/vehicle-manager/pkg/logger"
)

// Service manages vehicle records behind the store contract.
type Service struct {
	store storage.VehicleStore
	log   *logger.Logger
}

// New constructs a vehicle service.
func New(store storage.VehicleStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("vehicles")
	}
	return &Service{store: store, log: log}
}

// Create validates the candidate and inserts it. Validation failures return
// vehicle.ValidationErrors carrying every violated rule; the store is not
// touched in that case.
func (s *Service) Create(ctx context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error) {
	if err := v.Validate(); err != nil {
		return vehicle.Vehicle{}, err
	}

	s.log.WithContext(ctx).
		WithField("manufacturer", v.Manufacturer).
		WithField("model", v.Model).
		Info("creating vehicle")

	created, err := s.store.CreateVehicle(ctx, v)
	if err != nil {
		return vehicle.Vehicle{}, fmt.Errorf("create vehicle: %w", err)
	}

	s.log.WithContext(ctx).
		WithField("vehicle_id", created.ID).
		Info("vehicle created")
	return created, nil
}

// Get returns the vehicle with the given id. Absent ids surface as
// storage.ErrNotFound, logged at warn, never as an unexpected error.
func (s *Service) Get(ctx context.Context, id string) (vehicle.Vehicle, error) {
	v, err := s.store.GetVehicle(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.WithContext(ctx).WithField("vehicle_id", id).Warn("vehicle not found")
			return vehicle.Vehicle{}, err
		}
		return vehicle.Vehicle{}, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

// List returns a snapshot of all vehicles.
func (s *Service) List(ctx context.Context) ([]vehicle.Vehicle, error) {
	result, err := s.store.ListVehicles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return result, nil
}
