package metrics

import (
	"strconv"
	"time"

	"mercator-hq/parallax/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// InterpretationMetrics tracks metrics related to driver runs.
//
// Metrics:
//   - parallax_interpret_runs_total: Driver runs by outcome
//   - parallax_interpret_run_duration_seconds: Driver run duration
//   - parallax_interpret_perceptions_total: Evaluations by observer and perceived flag
//   - parallax_interpret_observers: Observer registry size of the last run
//   - parallax_interpret_entities: Entity registry size of the last run
type InterpretationMetrics struct {
	runsTotal   *prometheus.CounterVec
	runDuration prometheus.Histogram

	perceptionsTotal *prometheus.CounterVec

	observers prometheus.Gauge
	entities  prometheus.Gauge
}

// NewInterpretationMetrics creates and registers interpretation metrics with
// the provided registry.
func NewInterpretationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *InterpretationMetrics {
	im := &InterpretationMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "runs_total",
				Help:      "Total number of interpretation runs",
			},
			[]string{"outcome"},
		),

		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "run_duration_seconds",
				Help:      "Duration of interpretation runs in seconds",
				Buckets:   cfg.RunDurationBuckets,
			},
		),

		perceptionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "perceptions_total",
				Help:      "Total number of observer/entity evaluations",
			},
			[]string{"observer", "perceived"},
		),

		observers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "observers",
				Help:      "Number of observers in the last run",
			},
		),

		entities: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "entities",
				Help:      "Number of entities in the last run",
			},
		),
	}

	registry.MustRegister(
		im.runsTotal,
		im.runDuration,
		im.perceptionsTotal,
		im.observers,
		im.entities,
	)

	return im
}

// RecordRun records a run outcome and its duration.
func (im *InterpretationMetrics) RecordRun(outcome string, duration time.Duration) {
	im.runsTotal.WithLabelValues(outcome).Inc()
	im.runDuration.Observe(duration.Seconds())
}

// RecordPerception records a single evaluation.
func (im *InterpretationMetrics) RecordPerception(observer string, perceived bool) {
	im.perceptionsTotal.WithLabelValues(observer, strconv.FormatBool(perceived)).Inc()
}

// SetRegistrySizes updates the registry size gauges.
func (im *InterpretationMetrics) SetRegistrySizes(observers, entities int) {
	im.observers.Set(float64(observers))
	im.entities.Set(float64(entities))
}
