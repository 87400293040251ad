// Package lifecycle simulates the start-up and coordination of the
// repository's components.
//
// An Orchestrator holds a static, ordered list of modules. InitializeModules
// runs each module's optional init function and flips it to ready; Status
// reports readiness; RunSession represents a coordination session as a
// cancellable delay. A Scheduler repeats sessions on a cron schedule.
//
// Nothing in the interpretation core depends on this package.
package lifecycle
