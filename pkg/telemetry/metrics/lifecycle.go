package metrics

import (
	"time"

	"mercator-hq/parallax/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// LifecycleMetrics tracks module readiness and orchestrated sessions.
//
// Metrics:
//   - parallax_interpret_module_ready: 1 when a module is ready, 0 otherwise
//   - parallax_interpret_sessions_total: Sessions by outcome
//   - parallax_interpret_session_duration_seconds: Session duration
type LifecycleMetrics struct {
	moduleReady *prometheus.GaugeVec

	sessionsTotal   *prometheus.CounterVec
	sessionDuration prometheus.Histogram
}

// NewLifecycleMetrics creates and registers lifecycle metrics with the
// provided registry.
func NewLifecycleMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LifecycleMetrics {
	lm := &LifecycleMetrics{
		moduleReady: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "module_ready",
				Help:      "Module readiness (1=ready, 0=not ready)",
			},
			[]string{"module"},
		),

		sessionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "sessions_total",
				Help:      "Total number of orchestrated sessions",
			},
			[]string{"outcome"},
		),

		sessionDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "session_duration_seconds",
				Help:      "Duration of orchestrated sessions in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
	}

	registry.MustRegister(
		lm.moduleReady,
		lm.sessionsTotal,
		lm.sessionDuration,
	)

	return lm
}

// SetReady updates a module's readiness gauge.
func (lm *LifecycleMetrics) SetReady(module string, ready bool) {
	value := 0.0
	if ready {
		value = 1.0
	}
	lm.moduleReady.WithLabelValues(module).Set(value)
}

// RecordSession records a session outcome and duration.
func (lm *LifecycleMetrics) RecordSession(outcome string, duration time.Duration) {
	lm.sessionsTotal.WithLabelValues(outcome).Inc()
	lm.sessionDuration.Observe(duration.Seconds())
}
