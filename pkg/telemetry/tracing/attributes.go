package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys use the "parallax.*" namespace.
const (
	AttrRunID       = "parallax.run_id"
	AttrScenario    = "parallax.scenario"
	AttrObservers   = "parallax.observers"
	AttrEntities    = "parallax.entities"
	AttrResults     = "parallax.results"
	AttrPerceived   = "parallax.perceived"
	AttrParallelism = "parallax.parallelism"
	AttrAllowEmpty  = "parallax.allow_empty"

	AttrSession = "parallax.session"
	AttrModule  = "parallax.module"

	AttrErrorType    = "parallax.error.type"
	AttrErrorMessage = "error.message"
)

// RunAttributes returns the start attributes of an interpretation run span.
func RunAttributes(runID string, observers, entities, parallelism int, allowEmpty bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrRunID, runID),
		attribute.Int(AttrObservers, observers),
		attribute.Int(AttrEntities, entities),
		attribute.Int(AttrParallelism, parallelism),
		attribute.Bool(AttrAllowEmpty, allowEmpty),
	}
}

// SetResultAttributes records the outcome counts of a run.
//
// Example:
//
//	SetResultAttributes(span, len(results), perceived)
func SetResultAttributes(span trace.Span, results, perceived int) {
	span.SetAttributes(
		attribute.Int(AttrResults, results),
		attribute.Int(AttrPerceived, perceived),
	)
}

// SetScenarioAttribute sets the scenario attribute on a span.
func SetScenarioAttribute(span trace.Span, scenario string) {
	if scenario != "" {
		span.SetAttributes(attribute.String(AttrScenario, scenario))
	}
}

// SetSessionAttribute sets the session attribute on a span.
func SetSessionAttribute(span trace.Span, session string) {
	if session != "" {
		span.SetAttributes(attribute.String(AttrSession, session))
	}
}

// SetErrorAttributes sets error-related attributes and marks the span failed.
//
// Example:
//
//	if err != nil {
//		SetErrorAttributes(span, err, "empty_registry")
//	}
func SetErrorAttributes(span trace.Span, err error, errorType string) {
	if err == nil {
		return
	}

	span.SetAttributes(
		attribute.Bool("error", true),
		attribute.String(AttrErrorType, errorType),
		attribute.String(AttrErrorMessage, err.Error()),
	)

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
