// Package memory implements the vehicle store as a process-wide in-memory
// map. It is the production default: entries live for the process lifetime,
// are never mutated in place and never removed.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/garagesvc/vehicle-manager/internal/storage"
	"github.com/garagesvc/vehicle-manager/internal/vehicle"
)

// Store is a thread-safe in-memory vehicle store. Reads proceed concurrently
// under the read lock; writes are serialized by the write lock so no partial
// entry is ever visible.
type Store struct {
	mu       sync.RWMutex
	vehicles map[string]vehicle.Vehicle
	order    []string
}

var _ storage.VehicleStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{vehicles: make(map[string]vehicle.Vehicle)}
}

// CreateVehicle assigns a UUIDv7 id and inserts the vehicle. UUIDv7 ids are
// time-ordered and collision-free without coordination, so id generation
// happens outside the lock.
func (s *Store) CreateVehicle(_ context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return vehicle.Vehicle{}, fmt.Errorf("generate vehicle id: %w", err)
	}
	v.ID = id.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.vehicles[v.ID] = v
	s.order = append(s.order, v.ID)
	return v, nil
}

// GetVehicle returns the vehicle with the given id, or storage.ErrNotFound.
func (s *Store) GetVehicle(_ context.Context, id string) (vehicle.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vehicles[id]
	if !ok {
		return vehicle.Vehicle{}, storage.ErrNotFound
	}
	return v, nil
}

// ListVehicles returns a snapshot of all vehicles in insertion order.
func (s *Store) ListVehicles(_ context.Context) ([]vehicle.Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]vehicle.Vehicle, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.vehicles[id])
	}
	return result, nil
}
