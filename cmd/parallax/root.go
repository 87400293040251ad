package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/parallax/pkg/cli"
	"mercator-hq/parallax/pkg/config"
	"mercator-hq/parallax/pkg/telemetry"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "parallax",
	Short: "Parallax - observer-relative interpretation runtime",
	Long: `Parallax evaluates what each observer perceives of each entity.

A scenario holds a fixed set of entities and a fixed set of observers. Every
observer classifies every entity through its perspective; the result is either
a label or "not perceived". Results are reported observer by observer, in the
order the scenario declares them.

Configuration is read from --config (missing files fall back to defaults) and
PARALLAX_* environment variables.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := cli.SetupSignalHandler(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "parallax.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// app is the per-command runtime: the effective configuration and the
// telemetry built from it.
type app struct {
	cfg       *config.Config
	telemetry *telemetry.Telemetry
	out       io.Writer
}

// setupApp loads configuration, applies flag overrides and builds telemetry.
// Overrides run before validation so flags are checked like config values.
func setupApp(cmd *cobra.Command, override func(cfg *config.Config)) (*app, error) {
	if err := config.ReloadConfig(cfgFile); err != nil {
		return nil, cli.WrapConfigError("", err)
	}
	loaded := config.GetConfig()

	// Work on a copy so overrides never leak into the global config.
	cfg := *loaded
	if override != nil {
		override(&cfg)
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if err := config.Validate(&cfg); err != nil {
		return nil, cli.WrapConfigError("", err)
	}

	tel, err := telemetry.New(&cfg.Telemetry, cmd.ErrOrStderr())
	if err != nil {
		return nil, cli.WrapConfigError("telemetry", err)
	}

	return &app{
		cfg:       &cfg,
		telemetry: tel,
		out:       cmd.OutOrStdout(),
	}, nil
}

// close flushes metrics and stops the tracer.
func (a *app) close(ctx context.Context) error {
	// Use a fresh context: ctx may already be cancelled by a signal.
	if err := a.telemetry.Shutdown(context.WithoutCancel(ctx)); err != nil {
		a.telemetry.Logger().Warn("telemetry shutdown failed", "error", err)
		return err
	}
	return nil
}
