package metrics

import (
	"sync"
	"time"

	"mercator-hq/parallax/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// OtherObserver replaces observer label values once the cardinality limit is
// reached.
const OtherObserver = "other"

// Collector owns every Prometheus metric recorded by Parallax.
//
// A disabled collector accepts all calls and records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	interpretationMetrics *InterpretationMetrics
	lifecycleMetrics      *LifecycleMetrics

	// Observer names come from user scenarios; cap how many label values
	// they can create.
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "parallax",
//		Subsystem: "interpret",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.RunDurationBuckets) == 0 {
		cfg.RunDurationBuckets = append([]float64(nil), config.DefaultRunDurationBuckets...)
	}

	return &Collector{
		config:                cfg,
		registry:              registry,
		interpretationMetrics: NewInterpretationMetrics(cfg, registry),
		lifecycleMetrics:      NewLifecycleMetrics(cfg, registry),
		cardinalityLimiter:    NewCardinalityLimiter(1000),
	}
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordRun records one driver invocation.
//
// Parameters:
//   - outcome: "success", "empty" or "error"
//   - observers, entities: registry sizes seen by the run
//   - duration: wall time of the run
func (c *Collector) RecordRun(outcome string, observers, entities int, duration time.Duration) {
	if !c.Enabled() {
		return
	}

	c.interpretationMetrics.RecordRun(outcome, duration)
	c.interpretationMetrics.SetRegistrySizes(observers, entities)
}

// RecordPerception records a single (observer, entity) evaluation.
func (c *Collector) RecordPerception(observer string, perceived bool) {
	if !c.Enabled() {
		return
	}

	if !c.cardinalityLimiter.Allow(observer) {
		observer = OtherObserver
	}
	c.interpretationMetrics.RecordPerception(observer, perceived)
}

// SetModuleReady updates the readiness gauge of a lifecycle module.
func (c *Collector) SetModuleReady(module string, ready bool) {
	if !c.Enabled() {
		return
	}

	c.lifecycleMetrics.SetReady(module, ready)
}

// RecordSession records the outcome of an orchestrated session.
//
// Parameters:
//   - outcome: "completed", "cancelled" or "not_ready"
//   - duration: how long the session ran
func (c *Collector) RecordSession(outcome string, duration time.Duration) {
	if !c.Enabled() {
		return
	}

	c.lifecycleMetrics.RecordSession(outcome, duration)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label value is allowed. Returns true if the value
// already exists or if the limit has not been reached yet.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
