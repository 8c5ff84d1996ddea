package httpapi

import (
	"net/http"
	"time"
)

// version is overridable at build time with -ldflags.
var version = "0.1.0"

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   h.service,
		"version":   version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handler) liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "alive",
		"service":   h.service,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// readiness verifies the store is reachable with a snapshot read.
func (h *handler) readiness(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	overall := "ready"
	store := "ok"
	if _, err := h.vehicles.List(r.Context()); err != nil {
		status = http.StatusServiceUnavailable
		overall = "unavailable"
		store = "unavailable"
	}

	writeJSON(w, status, map[string]any{
		"status":    overall,
		"service":   h.service,
		"checks":    map[string]string{"store": store},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
