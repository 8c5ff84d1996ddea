// Package app wires stores and services into one application value that the
// HTTP layer is handed at startup.
package app

import (
	"github.com/garagesvc/vehicle-manager/internal/services/vehicles"
	"github.com/garagesvc/vehicle-manager/internal/storage"
	"github.com/garagesvc/vehicle-manager/internal/storage/memory"
	"github.com/garagesvc/vehicle-manager/pkg/logger"
)

// Stores encapsulates persistence dependencies. A nil store defaults to the
// in-memory implementation.
type Stores struct {
	Vehicles storage.VehicleStore
}

// Application ties the domain services together. It is constructed once at
// startup and shared by reference across all request handlers; the stores it
// holds do their own locking.
type Application struct {
	log *logger.Logger

	Vehicles *vehicles.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log *logger.Logger) *Application {
	if log == nil {
		log = logger.NewDefault("app")
	}
	if stores.Vehicles == nil {
		stores.Vehicles = memory.New()
	}

	return &Application{
		log:      log,
		Vehicles: vehicles.New(stores.Vehicles, log),
	}
}
