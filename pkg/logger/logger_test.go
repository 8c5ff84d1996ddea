package logger

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

func captureRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var record map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			t.Fatalf("unmarshal log line %q: %v", scanner.Text(), err)
		}
		records = append(records, record)
	}
	return records
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	if RequestIDFromContext(context.Background()) != "" {
		t.Fatal("expected empty id on bare context")
	}

	id := NewRequestID()
	if id == "" {
		t.Fatal("expected non-empty generated id")
	}

	ctx := WithRequestID(context.Background(), id)
	if got := RequestIDFromContext(ctx); got != id {
		t.Fatalf("expected %q, got %q", id, got)
	}
}

func TestWithContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := New("test", "info", "json")
	log.SetOutput(&buf)

	ctx := WithRequestID(context.Background(), "req-7")
	log.WithContext(ctx).Info("something happened")

	records := captureRecords(t, &buf)
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if records[0]["request_id"] != "req-7" {
		t.Fatalf("expected request_id req-7, got %v", records[0]["request_id"])
	}
	if records[0]["service"] != "test" {
		t.Fatalf("expected service field, got %v", records[0]["service"])
	}
}

func TestLogRequestLevels(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "info"},
		{http.StatusBadRequest, "warning"},
		{http.StatusInternalServerError, "error"},
	}

	for _, tc := range cases {
		var buf bytes.Buffer
		log := New("test", "debug", "json")
		log.SetOutput(&buf)

		log.LogRequest(context.Background(), http.MethodGet, "/api/v1/vehicles", tc.status, 12*time.Millisecond)

		records := captureRecords(t, &buf)
		if len(records) != 1 {
			t.Fatalf("status %d: expected one record, got %d", tc.status, len(records))
		}
		record := records[0]
		if record["level"] != tc.level {
			t.Fatalf("status %d: expected level %s, got %v", tc.status, tc.level, record["level"])
		}
		if record["msg"] != "http request completed" {
			t.Fatalf("unexpected message %v", record["msg"])
		}
		if record["status"].(float64) != float64(tc.status) {
			t.Fatalf("expected status %d, got %v", tc.status, record["status"])
		}
		if record["duration_ms"].(float64) != 12 {
			t.Fatalf("expected duration 12ms, got %v", record["duration_ms"])
		}
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("test", "chatty", "json")
	log.SetOutput(&buf)

	log.Debug("hidden")
	log.Info("visible")

	records := captureRecords(t, &buf)
	if len(records) != 1 || records[0]["msg"] != "visible" {
		t.Fatalf("expected only the info record, got %v", records)
	}
}
