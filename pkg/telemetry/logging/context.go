package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for interpretation run IDs.
	RunIDKey contextKey = "run_id"

	// ScenarioKey is the context key for scenario names.
	ScenarioKey contextKey = "scenario"

	// SessionKey is the context key for orchestration session IDs.
	SessionKey contextKey = "session"
)

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithScenario adds a scenario name to the context.
func WithScenario(ctx context.Context, scenario string) context.Context {
	return context.WithValue(ctx, ScenarioKey, scenario)
}

// GetScenario retrieves the scenario name from the context.
func GetScenario(ctx context.Context) string {
	if scenario, ok := ctx.Value(ScenarioKey).(string); ok {
		return scenario
	}
	return ""
}

// WithSession adds a session identifier to the context.
func WithSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// GetSession retrieves the session identifier from the context.
func GetSession(ctx context.Context) string {
	if session, ok := ctx.Value(SessionKey).(string); ok {
		return session
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, "run_id", runID)
	}
	if scenario := GetScenario(ctx); scenario != "" {
		fields = append(fields, "scenario", scenario)
	}
	if session := GetSession(ctx); session != "" {
		fields = append(fields, "session", session)
	}

	return fields
}
