package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/garagesvc/vehicle-manager/pkg/logger"
)

// completionRecords parses captured JSON log output and returns the request
// completion records.
func completionRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var record map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("unmarshal log line %q: %v", scanner.Text(), err)
		}
		if record["msg"] == "http request completed" {
			records = append(records, record)
		}
	}
	return records
}

func capturingLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	log := logger.New("test", "info", "json")
	log.SetOutput(&buf)
	return log, &buf
}

func TestTracingRecordsCompletion(t *testing.T) {
	log, buf := capturingLogger()

	handler := Tracing(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil))

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if resp.Header().Get(RequestIDHeader) == "" {
		t.Fatal("expected request id response header")
	}

	records := completionRecords(t, buf)
	if len(records) != 1 {
		t.Fatalf("expected exactly one completion record, got %d", len(records))
	}
	record := records[0]
	if record["request_id"] == "" || record["request_id"] == nil {
		t.Fatalf("expected non-empty request_id, got %v", record["request_id"])
	}
	if record["status"].(float64) != http.StatusNoContent {
		t.Fatalf("expected status 204 in record, got %v", record["status"])
	}
	if record["duration_ms"].(float64) < 0 {
		t.Fatalf("expected non-negative duration, got %v", record["duration_ms"])
	}
	if record["method"] != http.MethodGet || record["path"] != "/api/v1/vehicles" {
		t.Fatalf("unexpected method/path in record: %v", record)
	}
}

func TestTracingPropagatesProvidedID(t *testing.T) {
	log, buf := capturingLogger()

	var seen string
	handler := Tracing(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if seen != "req-42" {
		t.Fatalf("expected handler to see req-42, got %q", seen)
	}
	if got := resp.Header().Get(RequestIDHeader); got != "req-42" {
		t.Fatalf("expected req-42 echoed on response, got %q", got)
	}

	records := completionRecords(t, buf)
	if len(records) != 1 || records[0]["request_id"] != "req-42" {
		t.Fatalf("expected one completion record for req-42, got %v", records)
	}
}

func TestTracingRecoversPanic(t *testing.T) {
	log, buf := capturingLogger()

	handler := Tracing(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("store invariant violated")
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/vehicles", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", resp.Code)
	}
	if resp.Header().Get(RequestIDHeader) == "" {
		t.Fatal("expected request id header even on panic")
	}

	records := completionRecords(t, buf)
	if len(records) != 1 {
		t.Fatalf("expected exactly one completion record after panic, got %d", len(records))
	}
	if records[0]["status"].(float64) != http.StatusInternalServerError {
		t.Fatalf("expected status 500 recorded, got %v", records[0]["status"])
	}
}
