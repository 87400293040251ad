// Package metrics provides Prometheus metrics collection for Parallax.
//
// # Metrics Categories
//
//   - Interpretation Metrics: runs, perceptions per observer, run duration,
//     and registry sizes
//   - Lifecycle Metrics: module readiness and orchestrated sessions
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	collector.RecordRun("success", 4, 4, 120*time.Microsecond)
//	collector.RecordPerception("A", true)
//
//	// Export for the node_exporter textfile collector
//	if err := collector.WriteToTextfile("/var/lib/node_exporter/parallax.prom"); err != nil {
//		return err
//	}
//
// Every collector owns a private prometheus.Registry unless one is passed in,
// so tests and concurrent drivers never collide on the default registry.
package metrics
