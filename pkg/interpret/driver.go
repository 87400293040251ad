package interpret

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"mercator-hq/parallax/pkg/ontology"
	"mercator-hq/parallax/pkg/telemetry/metrics"
	"mercator-hq/parallax/pkg/telemetry/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Run outcomes recorded in metrics.
const (
	outcomeSuccess = "success"
	outcomeEmpty   = "empty"
	outcomeError   = "error"
)

// Driver evaluates observer registries against entity registries.
//
// A Driver holds no per-run state and is safe for concurrent use.
type Driver struct {
	config  *Config
	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  trace.Tracer
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger used for run-level log lines.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithMetrics records runs and perceptions on collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(d *Driver) {
		d.metrics = collector
	}
}

// WithTracerProvider opens one span per run on provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(d *Driver) {
		if provider != nil {
			d.tracer = provider.Tracer(tracing.InstrumentationName)
		}
	}
}

// NewDriver creates a driver. A nil config selects DefaultConfig.
func NewDriver(config *Config, opts ...Option) (*Driver, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Copy so later With* calls on the caller's config do not leak in.
	cfg := *config
	d := &Driver{
		config: &cfg,
		logger: slog.New(slog.DiscardHandler),
		tracer: noop.NewTracerProvider().Tracer(tracing.InstrumentationName),
	}
	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// Run is a shortcut for NewDriver(&cfg).Run without telemetry.
func Run(entities *ontology.EntityRegistry, observers *ontology.ObserverRegistry, cfg Config) ([]Result, error) {
	d, err := NewDriver(&cfg)
	if err != nil {
		return nil, err
	}
	return d.Run(context.Background(), entities, observers)
}

// Run produces one Result per (observer, entity) pair, observer-major in
// insertion order. Nil registries count as empty.
//
// ctx carries the trace span only. Run is not cancellable: it is bounded by
// the registry sizes and does not block.
func (d *Driver) Run(ctx context.Context, entities *ontology.EntityRegistry, observers *ontology.ObserverRegistry) ([]Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	nObservers, nEntities := observers.Len(), entities.Len()

	_, span := d.tracer.Start(ctx, "interpret.Run",
		trace.WithAttributes(tracing.RunAttributes(runID, nObservers, nEntities, d.config.Parallelism, d.config.AllowEmpty)...),
	)
	defer span.End()

	logger := d.logger.With("run_id", runID)

	if nEntities == 0 || nObservers == 0 {
		registry := EntityRegistry
		if nEntities > 0 {
			registry = ObserverRegistry
		}

		if d.config.AllowEmpty {
			logger.DebugContext(ctx, "empty registry, returning no results", "registry", registry)
			d.metrics.RecordRun(outcomeEmpty, nObservers, nEntities, time.Since(start))
			tracing.SetResultAttributes(span, 0, 0)
			return []Result{}, nil
		}

		err := &EmptyRegistryError{Registry: registry}
		logger.WarnContext(ctx, "interpretation rejected", "error", err)
		d.metrics.RecordRun(outcomeError, nObservers, nEntities, time.Since(start))
		tracing.SetErrorAttributes(span, err, "empty_registry")
		return nil, err
	}

	// Snapshot both registries so every observer sees the same entities.
	obs := slices.Collect(observers.All())
	ents := slices.Collect(entities.All())

	var results []Result
	if d.config.parallel() && len(obs) > 1 {
		results = evaluateParallel(obs, ents, d.config.Parallelism)
	} else {
		results = evaluateSequential(obs, ents)
	}

	perceived := 0
	for _, r := range results {
		if r.Perceived {
			perceived++
		}
		d.metrics.RecordPerception(r.ObserverName, r.Perceived)
	}

	duration := time.Since(start)
	d.metrics.RecordRun(outcomeSuccess, nObservers, nEntities, duration)
	tracing.SetResultAttributes(span, len(results), perceived)
	logger.DebugContext(ctx, "interpretation finished",
		"observers", nObservers,
		"entities", nEntities,
		"results", len(results),
		"perceived", perceived,
		"duration", duration,
	)

	return results, nil
}

func evaluateSequential(observers []ontology.Observer, entities []ontology.Entity) []Result {
	results := make([]Result, len(observers)*len(entities))
	for i, o := range observers {
		evaluateObserver(o, entities, results[i*len(entities):(i+1)*len(entities)])
	}
	return results
}

// evaluateObserver fills out, which has len(entities) slots.
func evaluateObserver(o ontology.Observer, entities []ontology.Entity, out []Result) {
	for j, e := range entities {
		label, ok := o.Perceive(e)
		out[j] = Result{
			ObserverName: o.Name,
			EntityID:     e.ID,
			Label:        label,
			Perceived:    ok,
		}
	}
}

func (d *Driver) String() string {
	return fmt.Sprintf("interpret.Driver{allowEmpty=%t parallelism=%d}", d.config.AllowEmpty, d.config.Parallelism)
}
