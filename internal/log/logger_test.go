package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func newCapturedLogger(component string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:     slog.LevelDebug,
		Component: component,
		Handler:   slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
	return logger, &buf
}

func TestLoggerStampsComponent(t *testing.T) {
	logger, buf := newCapturedLogger(ComponentHTTP)

	logger.Info("request started", FieldPath, "/api/purchases")

	out := buf.String()
	if !strings.Contains(out, "component=http") {
		t.Errorf("missing component attribute: %s", out)
	}
	if !strings.Contains(out, "path=/api/purchases") {
		t.Errorf("missing caller attribute: %s", out)
	}
}

func TestWithComponent(t *testing.T) {
	logger, buf := newCapturedLogger(ComponentApp)

	scoped := logger.WithComponent(ComponentWorker)
	if scoped.Component() != ComponentWorker {
		t.Fatalf("Component() = %q", scoped.Component())
	}

	scoped.Warn("refresh failed")
	if out := buf.String(); !strings.Contains(out, "component=worker") {
		t.Errorf("scoped component not stamped: %s", out)
	}

	// The parent keeps its own scope.
	if logger.Component() != ComponentApp {
		t.Errorf("parent component changed to %q", logger.Component())
	}
}

func TestWithKeepsComponent(t *testing.T) {
	logger, buf := newCapturedLogger(ComponentSheets)

	logger.With(FieldRequestID, "req_abc").Error("fetch failed", FieldError, "boom")

	out := buf.String()
	for _, want := range []string{"component=sheets", "request_id=req_abc", "error=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output: %s", want, out)
		}
	}
}
