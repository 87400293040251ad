package telemetry

import (
	"context"
	"fmt"
	"io"

	"mercator-hq/parallax/pkg/config"
	"mercator-hq/parallax/pkg/telemetry/logging"
	"mercator-hq/parallax/pkg/telemetry/metrics"
	"mercator-hq/parallax/pkg/telemetry/tracing"
)

// Telemetry holds the logger, metrics collector and tracer built from one
// TelemetryConfig.
type Telemetry struct {
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	cfg     *config.TelemetryConfig
}

// New builds every telemetry component. Logs are written to w (os.Stderr when nil).
func New(cfg *config.TelemetryConfig, w io.Writer) (*Telemetry, error) {
	logger, err := logging.New(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
		Writer:    w,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	tracer, err := tracing.New(&cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	return &Telemetry{
		logger:  logger,
		metrics: metrics.NewCollector(&cfg.Metrics, nil),
		tracer:  tracer,
		cfg:     cfg,
	}, nil
}

// Logger returns the structured logger.
func (t *Telemetry) Logger() *logging.Logger { return t.logger }

// Metrics returns the metrics collector.
func (t *Telemetry) Metrics() *metrics.Collector { return t.metrics }

// Tracer returns the tracer.
func (t *Telemetry) Tracer() *tracing.Tracer { return t.tracer }

// Flush writes metrics to the configured textfile, if any.
func (t *Telemetry) Flush() error {
	if t.cfg.Metrics.TextfilePath == "" || !t.metrics.Enabled() {
		return nil
	}
	return t.metrics.WriteToTextfile(t.cfg.Metrics.TextfilePath)
}

// Shutdown flushes metrics and stops the tracer.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	flushErr := t.Flush()
	if err := t.tracer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down tracer: %w", err)
	}
	return flushErr
}
