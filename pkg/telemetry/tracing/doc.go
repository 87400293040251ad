// Package tracing provides OpenTelemetry tracing for Parallax.
//
// Each interpretation run and each orchestrated session opens one span.
// When tracing is disabled the package hands out a noop provider, so callers
// never need to branch on configuration.
//
// # Sampling Strategies
//
//   - always: Sample all traces
//   - never: Sample no traces
//   - ratio: Sample a fraction of traces
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	driver, err := interpret.NewDriver(icfg, interpret.WithTracerProvider(tracer.Provider()))
package tracing
