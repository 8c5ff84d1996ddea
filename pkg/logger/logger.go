// Package logger provides structured logging for the vehicle manager,
// wrapping logrus behind a small facade so callers never depend on the
// logging backend directly. It also owns the per-request correlation id
// helpers used by the HTTP middleware.
package logger

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is a structured logger bound to a set of fields.
type Logger struct {
	entry *logrus.Entry
}

// New creates a logger for the named service with the given level and
// format. Unknown levels fall back to info; format "json" selects the JSON
// formatter, anything else the text formatter.
func New(service, level, format string) *Logger {
	l := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	if format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		l.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339, FullTimestamp: true})
	}

	return &Logger{entry: l.WithField("service", service)}
}

// NewDefault creates an info-level JSON logger for the named service.
func NewDefault(service string) *Logger {
	return New(service, "info", "json")
}

// NewNop returns a logger that discards everything. Intended for tests.
func NewNop() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{entry: logrus.NewEntry(l)}
}

// SetOutput redirects log output, primarily so tests can capture records.
func (l *Logger) SetOutput(w io.Writer) {
	l.entry.Logger.SetOutput(w)
}

// WithField returns a logger with an additional field.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// WithFields returns a logger with additional fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// WithError returns a logger carrying the error as a field.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{entry: l.entry.WithError(err)}
}

// WithContext returns a logger tagged with the request id carried by ctx,
// if any.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return l.WithField("request_id", id)
	}
	return l
}

func (l *Logger) Debug(args ...any) { l.entry.Debug(args...) }
func (l *Logger) Info(args ...any)  { l.entry.Info(args...) }
func (l *Logger) Warn(args ...any)  { l.entry.Warn(args...) }
func (l *Logger) Error(args ...any) { l.entry.Error(args...) }

func (l *Logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

// LogRequest writes the single completion record for an HTTP request. The
// level follows the status code: 5xx logs at error, 4xx at warn, everything
// else at info.
func (l *Logger) LogRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	entry := l.WithContext(ctx).WithFields(map[string]any{
		"method":      method,
		"path":        path,
		"status":      status,
		"duration_ms": duration.Milliseconds(),
	})

	switch {
	case status >= 500:
		entry.Error("http request completed")
	case status >= 400:
		entry.Warn("http request completed")
	default:
		entry.Info("http request completed")
	}
}
