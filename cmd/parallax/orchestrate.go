package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/parallax/pkg/cli"
	"mercator-hq/parallax/pkg/config"
	"mercator-hq/parallax/pkg/interpret"
	"mercator-hq/parallax/pkg/lifecycle"
	"mercator-hq/parallax/pkg/report"
	"mercator-hq/parallax/pkg/scenario"
)

var orchestrateFlags struct {
	delay    time.Duration
	schedule string
	format   string
}

var orchestrateCmd = &cobra.Command{
	Use:   "orchestrate",
	Short: "Initialize modules and run a coordination session",
	Long: `Initialize every module, print their readiness and run a coordination
session.

Each module is checked against the current configuration: the scenario must
load, its registries must accept every entity and observer, every perspective
must evaluate, and the driver and report settings must be valid.

With --schedule the session repeats on a cron schedule until interrupted.

Examples:
  # One session with the default 500ms delay
  parallax orchestrate

  # Shorter session
  parallax orchestrate --delay 100ms

  # A session every 5 seconds
  parallax orchestrate --schedule "@every 5s"`,
	RunE: runOrchestrate,
}

func init() {
	rootCmd.AddCommand(orchestrateCmd)

	orchestrateCmd.Flags().DurationVar(&orchestrateFlags.delay, "delay", 0, "session delay (default from config, 500ms)")
	orchestrateCmd.Flags().StringVar(&orchestrateFlags.schedule, "schedule", "", `cron schedule repeating sessions, e.g. "@every 5s"`)
	orchestrateCmd.Flags().StringVarP(&orchestrateFlags.format, "format", "f", "text", "output format: text, json")
}

func applyOrchestrateFlags(cfg *config.Config) {
	if orchestrateFlags.delay != 0 {
		cfg.Orchestrator.SessionDelay = orchestrateFlags.delay
	}
	if orchestrateFlags.schedule != "" {
		cfg.Orchestrator.Schedule = orchestrateFlags.schedule
	}
}

// orchestrateResult is the JSON form of one orchestrate run.
type orchestrateResult struct {
	Status  lifecycle.Status   `json:"status"`
	Session *lifecycle.Session `json:"session,omitempty"`
	Error   string             `json:"error,omitempty"`
}

func runOrchestrate(cmd *cobra.Command, args []string) (err error) {
	format, err := cli.ParseOutputFormat(orchestrateFlags.format)
	if err != nil {
		return err
	}

	a, err := setupApp(cmd, applyOrchestrateFlags)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() {
		if closeErr := a.close(ctx); err == nil && closeErr != nil {
			err = cli.NewCommandError("orchestrate", closeErr)
		}
	}()

	orch, err := lifecycle.NewOrchestrator(lifecycle.Config{
		Modules:      a.cfg.Orchestrator.Modules,
		SessionDelay: a.cfg.Orchestrator.SessionDelay,
	},
		lifecycle.WithLogger(a.telemetry.Logger().Slog()),
		lifecycle.WithMetrics(a.telemetry.Metrics()),
		lifecycle.WithTracerProvider(a.telemetry.Tracer().Provider()),
	)
	if err != nil {
		return cli.WrapConfigError("orchestrator", err)
	}
	if err := registerChecks(orch, moduleChecks(a.cfg)); err != nil {
		return cli.NewCommandError("orchestrate", err)
	}

	text := format == cli.FormatText
	out := a.out

	if text {
		fmt.Fprintln(out, "Orchestrator: initializing modules...")
	}
	for _, m := range orch.InitializeModules(ctx) {
		if text {
			fmt.Fprintln(out, m.Message)
		}
	}
	status := orch.Status()
	if text {
		writeStatus(out, status)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Starting session...")
	}

	session, sessionErr := orch.RunSession(ctx)
	if err := writeSession(out, format, status, session, sessionErr); err != nil {
		return err
	}
	if sessionErr != nil {
		if errors.Is(sessionErr, context.Canceled) {
			return nil
		}
		return cli.NewCommandError("orchestrate", sessionErr)
	}

	if a.cfg.Orchestrator.Schedule == "" {
		if text {
			fmt.Fprintln(out, "Orchestration complete.")
		}
		return nil
	}

	scheduler := lifecycle.NewScheduler(orch, a.cfg.Orchestrator.Schedule, func(s lifecycle.Session, err error) {
		if writeErr := writeSession(out, format, orch.Status(), s, err); writeErr != nil {
			a.telemetry.Logger().Warn("failed to write session", "error", writeErr)
		}
	}, a.telemetry.Logger().Slog())

	if err := scheduler.Start(ctx); err != nil {
		return cli.WrapConfigError("orchestrator.schedule", err)
	}
	if next := scheduler.NextRun(); next != nil && text {
		fmt.Fprintf(out, "Next session at %s\n", next.Format(time.RFC3339))
	}

	<-ctx.Done()
	scheduler.Stop()
	if text {
		fmt.Fprintln(out, "Orchestration complete.")
	}
	return nil
}

func writeStatus(w io.Writer, status lifecycle.Status) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Module Status:")
	for _, m := range status.Modules {
		state := "Not Ready"
		if m.Ready {
			state = "Ready"
		}
		fmt.Fprintf(w, "- %s: %s\n", m.Name, state)
	}
}

func writeSession(w io.Writer, format cli.OutputFormat, status lifecycle.Status, session lifecycle.Session, err error) error {
	if format == cli.FormatJSON {
		result := orchestrateResult{Status: status, Session: &session}
		if err != nil {
			result.Error = err.Error()
		}
		return cli.NewFormatter(format).FormatTo(w, result)
	}

	switch {
	case err == nil:
		_, werr := fmt.Fprintf(w, "Session %s running. All modules coordinated.\n", session.ID)
		return werr
	case errors.Is(err, context.Canceled):
		_, werr := fmt.Fprintf(w, "Session %s cancelled.\n", session.ID)
		return werr
	default:
		_, werr := fmt.Fprintf(w, "Session %s failed: %v\n", session.ID, err)
		return werr
	}
}

// moduleChecks returns a readiness check for each default module.
func moduleChecks(cfg *config.Config) map[string]lifecycle.InitFunc {
	return map[string]lifecycle.InitFunc{
		lifecycle.ModuleScenario: func(context.Context) error {
			_, err := loadScenario(cfg.Scenario.Path)
			return err
		},
		lifecycle.ModuleOntology: func(context.Context) error {
			sc, err := loadScenario(cfg.Scenario.Path)
			if err != nil {
				return err
			}
			_, _, err = sc.Registries()
			return err
		},
		lifecycle.ModulePerspective: func(context.Context) error {
			sc, err := loadScenario(cfg.Scenario.Path)
			if err != nil {
				return err
			}
			return checkPerspectives(sc)
		},
		lifecycle.ModuleInterpret: func(context.Context) error {
			_, err := interpret.NewDriver(interpret.DefaultConfig().
				WithAllowEmpty(cfg.Interpretation.AllowEmpty).
				WithParallelism(cfg.Interpretation.Parallelism))
			return err
		},
		lifecycle.ModuleReport: func(context.Context) error {
			_, err := report.ParseFormat(cfg.Report.Format)
			return err
		},
	}
}

// registerChecks attaches checks to the modules present in the
// orchestrator's list. Custom module names have no check and become ready
// immediately.
func registerChecks(orch *lifecycle.Orchestrator, checks map[string]lifecycle.InitFunc) error {
	for name, check := range checks {
		err := orch.RegisterInit(name, check)
		// ErrUnknownModule only means a custom list left this module out.
		if err != nil && !errors.Is(err, lifecycle.ErrUnknownModule) {
			return fmt.Errorf("module %q: %w", name, err)
		}
	}
	return nil
}

// checkPerspectives evaluates every observer against every entity and turns
// a panicking perspective into an error.
func checkPerspectives(sc *scenario.Scenario) (err error) {
	entities, observers, err := sc.Registries()
	if err != nil {
		return err
	}

	var current string
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("perspective of observer %q panicked: %v", current, r)
		}
	}()

	for o := range observers.All() {
		current = o.Name
		for e := range entities.All() {
			o.Perceive(e)
		}
	}
	return nil
}
