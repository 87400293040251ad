// Package interpret evaluates every observer against every entity.
//
// A Driver walks the observer registry in insertion order and, for each
// observer, the entity registry in insertion order, asking the observer's
// perspective what it perceives. The resulting sequence always has
// |observers| × |entities| elements in that observer-major order, whether the
// evaluation ran sequentially or across a bounded pool of goroutines.
//
// The driver never interprets labels itself. A non-empty label is reported
// verbatim, and an empty or absent label is reported as "not perceived".
//
// # Usage
//
//	results, err := interpret.Run(entities, observers, *interpret.DefaultConfig())
//
//	// With telemetry
//	driver, err := interpret.NewDriver(
//		interpret.DefaultConfig().WithParallelism(4),
//		interpret.WithLogger(logger),
//		interpret.WithMetrics(collector),
//	)
//	results, err := driver.Run(ctx, entities, observers)
//
// # Errors
//
// Run fails with *EmptyRegistryError when either registry is empty, unless
// Config.AllowEmpty is set. A panicking perspective is not recovered: the
// panic reaches the caller of Run unchanged, including in parallel mode.
package interpret
