package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"mercator-hq/parallax/pkg/telemetry/metrics"
	"mercator-hq/parallax/pkg/telemetry/tracing"
)

// Defaults.
const (
	DefaultSessionDelay = 500 * time.Millisecond
	DefaultInitTimeout  = 5 * time.Second
)

// Session outcomes recorded in metrics.
const (
	outcomeCompleted = "completed"
	outcomeCancelled = "cancelled"
	outcomeNotReady  = "not_ready"
)

// Config configures an Orchestrator.
type Config struct {
	// Modules is the module list in start-up order. Empty selects
	// DefaultModules.
	Modules []string

	// SessionDelay is how long RunSession takes. Zero selects
	// DefaultSessionDelay.
	SessionDelay time.Duration

	// InitTimeout bounds each module init function. Zero selects
	// DefaultInitTimeout.
	InitTimeout time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the orchestrator logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records module readiness and sessions on collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(o *Orchestrator) {
		o.metrics = collector
	}
}

// WithTracerProvider opens one span per session on provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(o *Orchestrator) {
		if provider != nil {
			o.tracer = provider.Tracer(tracing.InstrumentationName)
		}
	}
}

// Orchestrator tracks module readiness and runs coordination sessions.
type Orchestrator struct {
	mu          sync.RWMutex
	modules     []ModuleStatus
	inits       map[string]InitFunc
	initialized bool

	sessionDelay time.Duration
	initTimeout  time.Duration

	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  trace.Tracer
}

// NewOrchestrator creates an orchestrator with every module not ready.
func NewOrchestrator(cfg Config, opts ...Option) (*Orchestrator, error) {
	names := cfg.Modules
	if len(names) == 0 {
		names = DefaultModules()
	}
	if cfg.SessionDelay < 0 {
		return nil, fmt.Errorf("session delay must be non-negative, got %v", cfg.SessionDelay)
	}
	if cfg.SessionDelay == 0 {
		cfg.SessionDelay = DefaultSessionDelay
	}
	if cfg.InitTimeout <= 0 {
		cfg.InitTimeout = DefaultInitTimeout
	}

	o := &Orchestrator{
		modules:      make([]ModuleStatus, 0, len(names)),
		inits:        make(map[string]InitFunc),
		sessionDelay: cfg.SessionDelay,
		initTimeout:  cfg.InitTimeout,
		logger:       slog.New(slog.DiscardHandler),
		tracer:       noop.NewTracerProvider().Tracer(tracing.InstrumentationName),
	}
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("module name must not be empty")
		}
		if slices.ContainsFunc(o.modules, func(m ModuleStatus) bool { return m.Name == name }) {
			return nil, fmt.Errorf("duplicate module %q", name)
		}
		o.modules = append(o.modules, ModuleStatus{Name: name})
	}
	for _, opt := range opts {
		opt(o)
	}

	for _, m := range o.modules {
		o.metrics.SetModuleReady(m.Name, false)
	}
	return o, nil
}

// RegisterInit sets the init function of a module. Modules without one
// become ready as soon as InitializeModules reaches them.
func (o *Orchestrator) RegisterInit(module string, init InitFunc) error {
	if init == nil {
		return fmt.Errorf("%w for module %q", ErrNilInit, module)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.index(module) < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownModule, module)
	}
	o.inits[module] = init
	return nil
}

// InitializeModules initializes every module in order and returns the
// resulting statuses. A failing module is left not ready; the others are
// still initialized.
func (o *Orchestrator) InitializeModules(ctx context.Context) []ModuleStatus {
	o.mu.RLock()
	names := make([]string, len(o.modules))
	for i, m := range o.modules {
		names[i] = m.Name
	}
	inits := make(map[string]InitFunc, len(o.inits))
	for name, fn := range o.inits {
		inits[name] = fn
	}
	o.mu.RUnlock()

	o.logger.Info("initializing modules", "count", len(names))

	statuses := make([]ModuleStatus, len(names))
	for i, name := range names {
		statuses[i] = o.initModule(ctx, name, inits[name])
		o.metrics.SetModuleReady(name, statuses[i].Ready)

		if statuses[i].Ready {
			o.logger.Info("module initialized", "module", name, "duration", statuses[i].Duration)
		} else {
			o.logger.Warn("module initialization failed", "module", name, "error", statuses[i].Message)
		}
	}

	o.mu.Lock()
	o.modules = slices.Clone(statuses)
	o.initialized = true
	o.mu.Unlock()

	return statuses
}

// initModule runs init with the configured timeout.
func (o *Orchestrator) initModule(ctx context.Context, name string, init InitFunc) ModuleStatus {
	start := time.Now()
	if init == nil {
		return ModuleStatus{
			Name:     name,
			Ready:    true,
			Message:  name + " initialized.",
			Duration: time.Since(start),
		}
	}

	initCtx, cancel := context.WithTimeout(ctx, o.initTimeout)
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- init(initCtx)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return ModuleStatus{
				Name:     name,
				Message:  fmt.Sprintf("%s failed: %v", name, err),
				Duration: time.Since(start),
			}
		}
		return ModuleStatus{
			Name:     name,
			Ready:    true,
			Message:  name + " initialized.",
			Duration: time.Since(start),
		}

	case <-initCtx.Done():
		return ModuleStatus{
			Name:     name,
			Message:  fmt.Sprintf("%s failed: %v", name, ErrInitTimeout),
			Duration: time.Since(start),
		}
	}
}

// Status returns the readiness of every module.
func (o *Orchestrator) Status() Status {
	o.mu.RLock()
	defer o.mu.RUnlock()

	state := StatePending
	if o.initialized {
		state = StateReady
		for _, m := range o.modules {
			if !m.Ready {
				state = StateDegraded
				break
			}
		}
	}

	return Status{
		State:     state,
		Modules:   slices.Clone(o.modules),
		Timestamp: time.Now(),
	}
}

// RunSession runs one coordination session. It fails with *NotReadyError
// when a module is not ready and with ctx.Err() when ctx ends before the
// session delay elapses.
func (o *Orchestrator) RunSession(ctx context.Context) (Session, error) {
	session := Session{
		ID:      uuid.New().String(),
		Started: time.Now(),
	}

	ctx, span := o.tracer.Start(ctx, "lifecycle.RunSession")
	defer span.End()
	tracing.SetSessionAttribute(span, session.ID)

	logger := o.logger.With("session", session.ID)

	if notReady := o.notReady(); len(notReady) > 0 {
		err := &NotReadyError{Modules: notReady}
		tracing.SetErrorAttributes(span, err, "not_ready")
		o.metrics.RecordSession(outcomeNotReady, 0)
		logger.Warn("session refused", "error", err)
		return session, err
	}

	logger.Info("starting session", "delay", o.sessionDelay)

	timer := time.NewTimer(o.sessionDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		session.Duration = time.Since(session.Started)
		tracing.SetErrorAttributes(span, ctx.Err(), "cancelled")
		o.metrics.RecordSession(outcomeCancelled, session.Duration)
		logger.Warn("session cancelled", "error", ctx.Err())
		return session, ctx.Err()
	}

	session.Duration = time.Since(session.Started)
	span.SetAttributes(attribute.Int64("parallax.session.duration_ms", session.Duration.Milliseconds()))
	o.metrics.RecordSession(outcomeCompleted, session.Duration)
	logger.Info("session running, all modules coordinated", "duration", session.Duration)
	return session, nil
}

func (o *Orchestrator) notReady() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	var names []string
	for _, m := range o.modules {
		if !m.Ready {
			names = append(names, m.Name)
		}
	}
	return names
}

// index returns the position of module, or -1. The caller holds o.mu.
func (o *Orchestrator) index(module string) int {
	return slices.IndexFunc(o.modules, func(m ModuleStatus) bool { return m.Name == module })
}
