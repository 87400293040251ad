package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mercator-hq/parallax/pkg/lifecycle"
)

func TestOrchestrate(t *testing.T) {
	stdout, _, err := executeCommand(t, "orchestrate", "--delay", "5ms")
	if err != nil {
		t.Fatalf("orchestrate returned error: %v", err)
	}

	want := []string{
		"Orchestrator: initializing modules...",
		"Module Status:",
		"Starting session...",
		"All modules coordinated.",
		"Orchestration complete.",
	}
	for _, name := range lifecycle.DefaultModules() {
		want = append(want, name+" initialized.", fmt.Sprintf("- %s: Ready", name))
	}
	for _, line := range want {
		if !strings.Contains(stdout, line) {
			t.Errorf("orchestrate output missing %q:\n%s", line, stdout)
		}
	}
}

func TestOrchestrateJSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "orchestrate", "--delay", "5ms", "--format", "json")
	if err != nil {
		t.Fatalf("orchestrate returned error: %v", err)
	}

	var result orchestrateResult
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout)
	}
	if !result.Status.Ready() {
		t.Errorf("status = %q, want ready", result.Status.State)
	}
	if result.Session == nil || result.Session.ID == "" {
		t.Errorf("session = %+v, want an ID", result.Session)
	}
}

func TestOrchestrateJSONDurationMilliseconds(t *testing.T) {
	stdout, _, err := executeCommand(t, "orchestrate", "--delay", "30ms", "--format", "json")
	if err != nil {
		t.Fatalf("orchestrate returned error: %v", err)
	}

	var result struct {
		Status struct {
			Modules []struct {
				Name       string `json:"name"`
				DurationMS *int64 `json:"duration_ms"`
			} `json:"modules"`
		} `json:"status"`
		Session struct {
			DurationMS int64 `json:"duration_ms"`
		} `json:"session"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout)
	}

	if got := result.Session.DurationMS; got < 30 || got > 5000 {
		t.Errorf("session duration_ms = %d, want about the 30ms delay", got)
	}
	for _, m := range result.Status.Modules {
		if m.DurationMS != nil && *m.DurationMS > 5000 {
			t.Errorf("module %q duration_ms = %d, not milliseconds", m.Name, *m.DurationMS)
		}
	}
}

func TestOrchestrateBrokenScenario(t *testing.T) {
	scenarioPath, err := filepath.Abs("testdata/invalid.yaml")
	if err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(t.TempDir(), "parallax.yaml")
	cfg := fmt.Sprintf("scenario:\n  path: %q\n", scenarioPath)
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeCommand(t, "--config", cfgPath, "orchestrate", "--delay", "5ms")
	if err == nil {
		t.Fatal("orchestrate with broken scenario should return error")
	}

	for _, line := range []string{
		fmt.Sprintf("- %s: Not Ready", lifecycle.ModuleScenario),
		fmt.Sprintf("- %s: Ready", lifecycle.ModuleReport),
		"failed",
	} {
		if !strings.Contains(stdout, line) {
			t.Errorf("orchestrate output missing %q:\n%s", line, stdout)
		}
	}
}

func TestOrchestrateCustomModules(t *testing.T) {
	t.Setenv("PARALLAX_ORCHESTRATOR_MODULES", "alpha,beta")

	stdout, _, err := executeCommand(t, "orchestrate", "--delay", "5ms")
	if err != nil {
		t.Fatalf("orchestrate returned error: %v", err)
	}
	for _, line := range []string{"- alpha: Ready", "- beta: Ready"} {
		if !strings.Contains(stdout, line) {
			t.Errorf("orchestrate output missing %q:\n%s", line, stdout)
		}
	}
	if strings.Contains(stdout, lifecycle.ModuleReport) {
		t.Errorf("default modules should be replaced:\n%s", stdout)
	}
}

func TestOrchestrateInvalidSchedule(t *testing.T) {
	_, _, err := executeCommand(t, "orchestrate", "--delay", "5ms", "--schedule", "every now and then")
	if err == nil {
		t.Fatal("orchestrate with invalid schedule should return error")
	}
}

func TestRegisterChecks(t *testing.T) {
	orch, err := lifecycle.NewOrchestrator(lifecycle.Config{Modules: []string{lifecycle.ModuleReport}})
	if err != nil {
		t.Fatal(err)
	}
	ok := func(context.Context) error { return nil }

	// Checks for modules outside the list are skipped.
	if err := registerChecks(orch, map[string]lifecycle.InitFunc{
		lifecycle.ModuleReport:   ok,
		lifecycle.ModuleScenario: ok,
	}); err != nil {
		t.Fatalf("registerChecks() error = %v", err)
	}

	err = registerChecks(orch, map[string]lifecycle.InitFunc{lifecycle.ModuleReport: nil})
	if !errors.Is(err, lifecycle.ErrNilInit) {
		t.Errorf("registerChecks() error = %v, want ErrNilInit", err)
	}
}
