// Package telemetry bundles the observability components of Parallax.
//
// # Components
//
//   - logging: Structured logging on log/slog
//   - metrics: Prometheus metrics with textfile export
//   - tracing: OpenTelemetry spans, noop unless enabled
//
// # Usage
//
//	tel, err := telemetry.New(&cfg.Telemetry, os.Stderr)
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(context.Background())
//
//	tel.Logger().Info("starting")
//	driver, err := interpret.NewDriver(icfg,
//	    interpret.WithLogger(tel.Logger().Slog()),
//	    interpret.WithMetrics(tel.Metrics()),
//	    interpret.WithTracerProvider(tel.Tracer().Provider()),
//	)
package telemetry
