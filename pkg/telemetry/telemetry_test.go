package telemetry

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/parallax/pkg/config"
)

func TestNew(t *testing.T) {
	cfg := config.NewDefaultConfig().Telemetry
	buf := &bytes.Buffer{}

	tel, err := New(&cfg, buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tel.Logger().Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("logger did not write to the given writer: %q", buf.String())
	}
	if tel.Metrics() == nil || tel.Tracer() == nil {
		t.Fatal("expected metrics and tracer")
	}
	if tel.Tracer().Enabled() {
		t.Error("tracing should be disabled by default")
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNew_InvalidLogging(t *testing.T) {
	cfg := config.NewDefaultConfig().Telemetry
	cfg.Logging.Level = "loud"

	if _, err := New(&cfg, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestShutdown_WritesTextfile(t *testing.T) {
	cfg := config.NewDefaultConfig().Telemetry
	cfg.Metrics.TextfilePath = filepath.Join(t.TempDir(), "parallax.prom")

	tel, err := New(&cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	tel.Metrics().RecordPerception("A", true)

	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	data, err := os.ReadFile(cfg.Metrics.TextfilePath)
	if err != nil {
		t.Fatalf("textfile not written: %v", err)
	}
	if !strings.Contains(string(data), "parallax_interpret_perceptions_total") {
		t.Errorf("textfile missing perceptions metric:\n%s", data)
	}
}
