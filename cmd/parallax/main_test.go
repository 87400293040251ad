package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

// executeCommand runs the root command with args and returns what it wrote
// to stdout and stderr. The config file defaults to a missing path so tests
// start from built-in defaults.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags()

	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

// resetFlags restores every command flag to its default; cobra keeps values
// between executions in one process.
func resetFlags() {
	verbose = false
	interpretFlags = struct {
		scenario    string
		format      string
		allowEmpty  bool
		parallelism int
		watch       bool
		metricsOut  string
	}{}
	lintFlags.scenario = ""
	lintFlags.strict = false
	lintFlags.format = "text"
	orchestrateFlags.delay = 0
	orchestrateFlags.schedule = ""
	orchestrateFlags.format = "text"
}
