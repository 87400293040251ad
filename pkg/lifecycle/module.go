package lifecycle

import (
	"context"
	"encoding/json"
	"time"
)

// Default module names, one per component of the interpretation pipeline.
const (
	ModuleOntology    = "ontology registry"
	ModulePerspective = "perspective evaluator"
	ModuleScenario    = "scenario loader"
	ModuleInterpret   = "interpretation driver"
	ModuleReport      = "reporter"
)

// DefaultModules returns the default module list in start-up order.
func DefaultModules() []string {
	return []string{
		ModuleOntology,
		ModulePerspective,
		ModuleScenario,
		ModuleInterpret,
		ModuleReport,
	}
}

// InitFunc prepares a module. It returns nil when the module is ready.
type InitFunc func(ctx context.Context) error

// ModuleStatus is the readiness of one module.
type ModuleStatus struct {
	// Name identifies the module.
	Name string `json:"name"`

	// Ready is true once the module initialized successfully.
	Ready bool `json:"ready"`

	// Message describes the last initialization attempt.
	Message string `json:"message,omitempty"`

	// Duration is how long initialization took. JSON carries it as
	// duration_ms.
	Duration time.Duration `json:"-"`
}

// MarshalJSON writes Duration as whole milliseconds.
func (m ModuleStatus) MarshalJSON() ([]byte, error) {
	type plain ModuleStatus
	return json.Marshal(struct {
		plain
		DurationMS int64 `json:"duration_ms,omitempty"`
	}{plain(m), m.Duration.Milliseconds()})
}

// Overall readiness states.
const (
	StatePending  = "pending"
	StateReady    = "ready"
	StateDegraded = "degraded"
)

// Status is the readiness of every module.
type Status struct {
	// State is pending before initialization, ready when every module is
	// ready and degraded otherwise.
	State string `json:"state"`

	// Modules lists module readiness in start-up order.
	Modules []ModuleStatus `json:"modules"`

	// Timestamp is when the status was taken.
	Timestamp time.Time `json:"timestamp"`
}

// Ready reports whether every module is ready.
func (s Status) Ready() bool {
	return s.State == StateReady
}

// Session describes one coordination session.
type Session struct {
	ID       string        `json:"id"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"-"`
}

// MarshalJSON writes Duration as whole milliseconds under duration_ms.
func (s Session) MarshalJSON() ([]byte, error) {
	type plain Session
	return json.Marshal(struct {
		plain
		DurationMS int64 `json:"duration_ms"`
	}{plain(s), s.Duration.Milliseconds()})
}
