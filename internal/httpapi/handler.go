// Package httpapi exposes the vehicle REST API and health endpoints.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garagesvc/vehicle-manager/internal/app"
	"github.com/garagesvc/vehicle-manager/internal/metrics"
	"github.com/garagesvc/vehicle-manager/internal/middleware"
	"github.com/garagesvc/vehicle-manager/internal/services/vehicles"
	"github.com/garagesvc/vehicle-manager/internal/storage"
	"github.com/garagesvc/vehicle-manager/internal/vehicle"
	"github.com/garagesvc/vehicle-manager/pkg/logger"
)

// handler bundles HTTP endpoints for the application services.
type handler struct {
	vehicles *vehicles.Service
	log      *logger.Logger
	service  string
}

// NewHandler returns the service router with the tracing and metrics
// middleware attached. Every route, including the not-found fallback, runs
// inside the request observability scope.
func NewHandler(application *app.Application, log *logger.Logger, service string) http.Handler {
	if log == nil {
		log = logger.NewDefault(service)
	}
	h := &handler{vehicles: application.Vehicles, log: log, service: service}

	r := mux.NewRouter()
	r.Use(middleware.Tracing(log), metrics.Middleware())

	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	health := r.PathPrefix("/health").Subrouter()
	health.HandleFunc("", h.health).Methods(http.MethodGet)
	health.HandleFunc("/live", h.liveness).Methods(http.MethodGet)
	health.HandleFunc("/ready", h.readiness).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/vehicles", h.postVehicle).Methods(http.MethodPost)
	api.HandleFunc("/vehicles", h.listVehicles).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}", h.getVehicle).Methods(http.MethodGet)

	// Router middleware only runs on matched routes; wrap the fallbacks by
	// hand so unmatched requests still get a completion record.
	r.NotFoundHandler = middleware.Tracing(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("not found"))
	}))
	r.MethodNotAllowedHandler = middleware.Tracing(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	}))

	return r
}

func (h *handler) postVehicle(w http.ResponseWriter, r *http.Request) {
	var payload vehicle.Vehicle
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	created, err := h.vehicles.Create(r.Context(), payload)
	if err != nil {
		var verrs vehicle.ValidationErrors
		if errors.As(err, &verrs) {
			writeValidationError(w, verrs)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusCreated, vehicle.ID{ID: created.ID})
}

func (h *handler) getVehicle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	v, err := h.vehicles.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, v)
}

func (h *handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	result, err := h.vehicles.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func decodeJSON(body io.ReadCloser, dst interface{}) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeValidationError(w http.ResponseWriter, verrs vehicle.ValidationErrors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(struct {
		Error      string              `json:"error"`
		Violations []vehicle.Violation `json:"violations"`
	}{
		Error:      "validation failed",
		Violations: verrs,
	})
}
