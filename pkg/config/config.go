package config

import "time"

// Config is the root configuration structure for Parallax.
type Config struct {
	// Scenario selects the scenario file and how it is watched.
	Scenario ScenarioConfig `yaml:"scenario" envPrefix:"SCENARIO_"`

	// Interpretation configures the interpretation driver.
	Interpretation InterpretationConfig `yaml:"interpretation" envPrefix:"INTERPRETATION_"`

	// Report configures result rendering.
	Report ReportConfig `yaml:"report" envPrefix:"REPORT_"`

	// Orchestrator configures the module lifecycle simulator.
	Orchestrator OrchestratorConfig `yaml:"orchestrator" envPrefix:"ORCHESTRATOR_"`

	// Telemetry contains logging, metrics, and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry" envPrefix:"TELEMETRY_"`
}

// ScenarioConfig contains scenario source configuration.
type ScenarioConfig struct {
	// Path is the scenario YAML file. Empty selects the built-in scenario.
	Path string `yaml:"path" env:"PATH"`

	// Watch re-runs interpretation whenever the scenario file changes.
	// Default: false
	Watch bool `yaml:"watch" env:"WATCH"`

	// DebounceDelay collapses bursts of file events into one reload.
	// Default: 100ms
	DebounceDelay time.Duration `yaml:"debounce_delay" env:"DEBOUNCE_DELAY"`
}

// InterpretationConfig contains interpretation driver configuration.
type InterpretationConfig struct {
	// AllowEmpty returns an empty result instead of an error when either
	// registry is empty.
	// Default: false
	AllowEmpty bool `yaml:"allow_empty" env:"ALLOW_EMPTY"`

	// Parallelism is the maximum number of observers evaluated concurrently.
	// Values <= 1 evaluate sequentially.
	// Default: 1
	Parallelism int `yaml:"parallelism" env:"PARALLELISM"`
}

// ReportConfig contains report rendering configuration.
type ReportConfig struct {
	// Format is the output format.
	// Options: "text", "json", "styled"
	// Default: "text"
	Format string `yaml:"format" env:"FORMAT"`
}

// OrchestratorConfig contains module lifecycle simulator configuration.
type OrchestratorConfig struct {
	// SessionDelay is how long a session runs before completing.
	// Default: 500ms
	SessionDelay time.Duration `yaml:"session_delay" env:"SESSION_DELAY"`

	// Schedule is an optional cron expression repeating sessions.
	Schedule string `yaml:"schedule" env:"SCHEDULE"`

	// Modules overrides the default module list.
	Modules []string `yaml:"modules" env:"MODULES" envSeparator:","`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging" envPrefix:"LOGGING_"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics" envPrefix:"METRICS_"`

	// Tracing contains tracing configuration.
	Tracing TracingConfig `yaml:"tracing" envPrefix:"TRACING_"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level" env:"LEVEL"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format" env:"FORMAT"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source" env:"ADD_SOURCE"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled" env:"ENABLED"`

	// Namespace is the metric name prefix.
	// Default: "parallax"
	Namespace string `yaml:"namespace" env:"NAMESPACE"`

	// Subsystem is the metric subsystem name.
	// Default: "interpret"
	Subsystem string `yaml:"subsystem" env:"SUBSYSTEM"`

	// TextfilePath, when set, receives the registry in the Prometheus text
	// format after each run (node_exporter textfile collector layout).
	TextfilePath string `yaml:"textfile_path" env:"TEXTFILE_PATH"`

	// RunDurationBuckets defines histogram buckets for run duration (seconds).
	RunDurationBuckets []float64 `yaml:"run_duration_buckets" env:"RUN_DURATION_BUCKETS" envSeparator:","`
}

// TracingConfig contains OpenTelemetry tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are exported.
	// Default: false
	Enabled bool `yaml:"enabled" env:"ENABLED"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler" env:"SAMPLER"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Only used when Sampler is "ratio".
	SampleRatio float64 `yaml:"sample_ratio" env:"SAMPLE_RATIO"`

	// Endpoint is the OTLP gRPC collector endpoint, e.g. "localhost:4317".
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`

	// Insecure disables TLS for the collector connection.
	Insecure bool `yaml:"insecure" env:"INSECURE"`

	// Timeout bounds each export call.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`

	// ServiceName is the service name in traces.
	// Default: "parallax"
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}
