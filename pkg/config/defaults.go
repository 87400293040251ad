package config

import "time"

// Default values for configuration fields.
const (
	// Scenario defaults
	DefaultScenarioDebounce = 100 * time.Millisecond

	// Interpretation defaults
	DefaultParallelism = 1

	// Report defaults
	DefaultReportFormat = "text"

	// Orchestrator defaults
	DefaultSessionDelay = 500 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "text"
	DefaultMetricsEnabled     = true
	DefaultMetricsNamespace   = "parallax"
	DefaultMetricsSubsystem   = "interpret"
	DefaultTracingEnabled     = false
	DefaultTracingSampler     = "always"
	DefaultTracingTimeout     = 10 * time.Second
	DefaultTracingServiceName = "parallax"
)

// DefaultRunDurationBuckets covers runs from 10µs to roughly 1s.
var DefaultRunDurationBuckets = []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1}

// NewDefaultConfig returns a configuration with every field at its default,
// including the boolean defaults ApplyDefaults cannot infer from zero values.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	cfg.Telemetry.Tracing.Enabled = DefaultTracingEnabled
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to any unset configuration fields.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Scenario defaults
	if cfg.Scenario.DebounceDelay == 0 {
		cfg.Scenario.DebounceDelay = DefaultScenarioDebounce
	}

	// Interpretation defaults
	if cfg.Interpretation.Parallelism == 0 {
		cfg.Interpretation.Parallelism = DefaultParallelism
	}

	// Report defaults
	if cfg.Report.Format == "" {
		cfg.Report.Format = DefaultReportFormat
	}

	// Orchestrator defaults
	if cfg.Orchestrator.SessionDelay == 0 {
		cfg.Orchestrator.SessionDelay = DefaultSessionDelay
	}

	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Metrics.RunDurationBuckets) == 0 {
		cfg.Metrics.RunDurationBuckets = append([]float64(nil), DefaultRunDurationBuckets...)
	}

	if cfg.Tracing.Sampler == "" {
		cfg.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Tracing.Timeout == 0 {
		cfg.Tracing.Timeout = DefaultTracingTimeout
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingServiceName
	}
}
