package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:      "negative parallelism",
			modify:    func(c *Config) { c.Interpretation.Parallelism = -1 },
			wantField: "interpretation.parallelism",
		},
		{
			name:      "unknown report format",
			modify:    func(c *Config) { c.Report.Format = "yaml" },
			wantField: "report.format",
		},
		{
			name:      "watch without path",
			modify:    func(c *Config) { c.Scenario.Watch = true },
			wantField: "scenario.watch",
		},
		{
			name:      "negative session delay",
			modify:    func(c *Config) { c.Orchestrator.SessionDelay = -1 },
			wantField: "orchestrator.session_delay",
		},
		{
			name:      "bad cron schedule",
			modify:    func(c *Config) { c.Orchestrator.Schedule = "every now and then" },
			wantField: "orchestrator.schedule",
		},
		{
			name:   "descriptor schedule",
			modify: func(c *Config) { c.Orchestrator.Schedule = "@every 5s" },
		},
		{
			name:      "blank module name",
			modify:    func(c *Config) { c.Orchestrator.Modules = []string{"ontology", " "} },
			wantField: "orchestrator.modules[1]",
		},
		{
			name:      "invalid log level",
			modify:    func(c *Config) { c.Telemetry.Logging.Level = "trace" },
			wantField: "telemetry.logging.level",
		},
		{
			name:      "invalid log format",
			modify:    func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			wantField: "telemetry.logging.format",
		},
		{
			name:      "unsorted buckets",
			modify:    func(c *Config) { c.Telemetry.Metrics.RunDurationBuckets = []float64{1, 0.5} },
			wantField: "telemetry.metrics.run_duration_buckets",
		},
		{
			name:      "tracing without endpoint",
			modify:    func(c *Config) { c.Telemetry.Tracing.Enabled = true },
			wantField: "telemetry.tracing.endpoint",
		},
		{
			name:      "sample ratio out of range",
			modify:    func(c *Config) { c.Telemetry.Tracing.SampleRatio = 1.5 },
			wantField: "telemetry.tracing.sample_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var vErr ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			found := false
			for _, fe := range vErr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %q, got %v", tt.wantField, vErr.Errors)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "report.format", Message: "bad"}}}
	if got := single.Error(); got != "configuration validation failed: report.format: bad" {
		t.Errorf("unexpected message %q", got)
	}

	multi := ValidationError{Errors: []FieldError{
		{Field: "a", Message: "x"},
		{Field: "b", Message: "y"},
	}}
	if !strings.Contains(multi.Error(), "with 2 errors") {
		t.Errorf("unexpected message %q", multi.Error())
	}

	if (ValidationError{}).Error() != "configuration validation failed" {
		t.Error("empty ValidationError message changed")
	}
}
