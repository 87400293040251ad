package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/parallax/pkg/cli"
	"mercator-hq/parallax/pkg/config"
	"mercator-hq/parallax/pkg/interpret"
	"mercator-hq/parallax/pkg/report"
	"mercator-hq/parallax/pkg/scenario"
	"mercator-hq/parallax/pkg/telemetry/logging"
)

var interpretFlags struct {
	scenario    string
	format      string
	allowEmpty  bool
	parallelism int
	watch       bool
	metricsOut  string
}

var interpretCmd = &cobra.Command{
	Use:   "interpret",
	Short: "Evaluate what every observer perceives",
	Long: `Evaluate every observer of a scenario against every entity and report
what each observer perceives.

Without --scenario the built-in split-man scenario is used: one man, his voice
and two split aspects, seen by four observers.

Examples:
  # Built-in scenario, canonical text report
  parallax interpret

  # Scenario file as JSON
  parallax interpret --scenario scenario.yaml --format json

  # Evaluate observers on 4 workers; output order is unchanged
  parallax interpret --scenario scenario.yaml --parallelism 4

  # Re-run whenever the file changes
  parallax interpret --scenario scenario.yaml --watch

  # Write Prometheus metrics in textfile format after the run
  parallax interpret --metrics-out parallax.prom`,
	RunE: runInterpret,
}

func init() {
	rootCmd.AddCommand(interpretCmd)

	interpretCmd.Flags().StringVarP(&interpretFlags.scenario, "scenario", "s", "", "scenario file (default: built-in split-man scenario)")
	interpretCmd.Flags().StringVarP(&interpretFlags.format, "format", "f", "", "output format: text, json, styled")
	interpretCmd.Flags().BoolVar(&interpretFlags.allowEmpty, "allow-empty", false, "report nothing instead of failing on an empty registry")
	interpretCmd.Flags().IntVarP(&interpretFlags.parallelism, "parallelism", "p", 0, "observers evaluated concurrently (<= 1 is sequential)")
	interpretCmd.Flags().BoolVarP(&interpretFlags.watch, "watch", "w", false, "re-run when the scenario file changes")
	interpretCmd.Flags().StringVar(&interpretFlags.metricsOut, "metrics-out", "", "write Prometheus metrics to this file")
}

// applyInterpretFlags overrides configuration with the flags that were set.
func applyInterpretFlags(cfg *config.Config) {
	if interpretFlags.scenario != "" {
		cfg.Scenario.Path = interpretFlags.scenario
	}
	if interpretFlags.format != "" {
		cfg.Report.Format = interpretFlags.format
	}
	if interpretFlags.allowEmpty {
		cfg.Interpretation.AllowEmpty = true
	}
	if interpretFlags.parallelism != 0 {
		cfg.Interpretation.Parallelism = interpretFlags.parallelism
	}
	if interpretFlags.watch {
		cfg.Scenario.Watch = true
	}
	if interpretFlags.metricsOut != "" {
		cfg.Telemetry.Metrics.Enabled = true
		cfg.Telemetry.Metrics.TextfilePath = interpretFlags.metricsOut
	}
}

func runInterpret(cmd *cobra.Command, args []string) (err error) {
	a, err := setupApp(cmd, applyInterpretFlags)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() {
		if closeErr := a.close(ctx); err == nil && closeErr != nil {
			err = cli.NewCommandError("interpret", closeErr)
		}
	}()

	format, err := report.ParseFormat(a.cfg.Report.Format)
	if err != nil {
		return cli.WrapConfigError("format", err)
	}

	driver, err := interpret.NewDriver(
		interpret.DefaultConfig().
			WithAllowEmpty(a.cfg.Interpretation.AllowEmpty).
			WithParallelism(a.cfg.Interpretation.Parallelism),
		interpret.WithLogger(a.telemetry.Logger().Slog()),
		interpret.WithMetrics(a.telemetry.Metrics()),
		interpret.WithTracerProvider(a.telemetry.Tracer().Provider()),
	)
	if err != nil {
		return cli.WrapConfigError("interpretation", err)
	}

	r := &interpretRunner{
		app:      a,
		driver:   driver,
		reporter: report.New(format),
	}

	sc, err := loadScenario(a.cfg.Scenario.Path)
	if err != nil {
		return cli.NewCommandError("interpret", err)
	}
	if err := r.run(ctx, sc); err != nil {
		return cli.NewCommandError("interpret", err)
	}

	if !a.cfg.Scenario.Watch {
		return nil
	}
	return r.watch(ctx)
}

// loadScenario loads path, or the built-in scenario when path is empty.
func loadScenario(path string) (*scenario.Scenario, error) {
	if path == "" {
		return scenario.Default(), nil
	}
	return scenario.Load(path)
}

type interpretRunner struct {
	app      *app
	driver   *interpret.Driver
	reporter report.Reporter
}

// run interprets one scenario and writes the report.
func (r *interpretRunner) run(ctx context.Context, sc *scenario.Scenario) error {
	ctx = logging.WithScenario(ctx, sc.Name)
	logger := r.app.telemetry.Logger().WithContext(ctx)

	entities, observers, err := sc.Registries()
	if err != nil {
		return fmt.Errorf("scenario %q: %w", sc.Source, err)
	}

	logger.Debug("interpreting scenario",
		"source", sc.Source,
		"entities", entities.Len(),
		"observers", observers.Len(),
	)

	results, err := r.driver.Run(ctx, entities, observers)
	if err != nil {
		var emptyErr *interpret.EmptyRegistryError
		if errors.As(err, &emptyErr) {
			return fmt.Errorf("scenario %q: %w (use --allow-empty to report nothing)", sc.Source, err)
		}
		return err
	}

	if err := r.reporter.Report(r.app.out, results); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := r.app.telemetry.Flush(); err != nil {
		logger.Warn("failed to write metrics textfile", "error", err)
	}
	return nil
}

// watch re-runs interpretation on every scenario change until ctx ends.
// Load and run errors are logged and watching continues.
func (r *interpretRunner) watch(ctx context.Context) error {
	cfg := r.app.cfg.Scenario
	logger := r.app.telemetry.Logger()

	w, err := scenario.NewWatcher(scenario.WatcherConfig{
		Path:     cfg.Path,
		Debounce: cfg.DebounceDelay,
	}, logger.Slog())
	if err != nil {
		return cli.NewCommandError("interpret", err)
	}

	defer func() {
		if stopErr := w.Stop(); stopErr != nil {
			logger.Warn("failed to stop scenario watcher", "error", stopErr)
		}
	}()

	err = w.Watch(ctx, func(sc *scenario.Scenario, loadErr error) {
		// The watcher already logged the load error.
		if loadErr != nil {
			return
		}
		if runErr := r.run(ctx, sc); runErr != nil {
			logger.Error("interpretation failed", "scenario", sc.Name, "error", runErr)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return cli.NewCommandError("interpret", err)
	}
	return nil
}
