package interpret

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"mercator-hq/parallax/pkg/config"
	"mercator-hq/parallax/pkg/ontology"
	"mercator-hq/parallax/pkg/perspective"
	"mercator-hq/parallax/pkg/telemetry/metrics"
	"mercator-hq/parallax/pkg/telemetry/tracing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func splitManEntities(t *testing.T) *ontology.EntityRegistry {
	t.Helper()
	reg, err := ontology.NewEntityRegistry(
		ontology.Entity{ID: 1, Name: "the man", State: ontology.StateDefined, Layer: 0},
		ontology.Entity{ID: 2, Name: "the voice", State: ontology.StateDefined, Layer: 1},
		ontology.Entity{ID: 3, Name: "the man (aspect A)", State: ontology.StateSplit, Layer: 2},
		ontology.Entity{ID: 4, Name: "the man (aspect B)", State: ontology.StateSplit, Layer: 2},
	)
	if err != nil {
		t.Fatalf("NewEntityRegistry() error = %v", err)
	}
	return reg
}

func splitManObservers(t *testing.T) *ontology.ObserverRegistry {
	t.Helper()
	reg, err := ontology.NewObserverRegistry(
		ontology.Observer{Name: "A", Perspective: perspective.Named("the man", "the man")},
		ontology.Observer{Name: "B", Perspective: perspective.Named("the voice", "the voice")},
		ontology.Observer{Name: "C", Perspective: perspective.InState(ontology.StateSplit, "fragmented entity")},
		ontology.Observer{Name: "D", Perspective: perspective.Blind()},
	)
	if err != nil {
		t.Fatalf("NewObserverRegistry() error = %v", err)
	}
	return reg
}

func resultsFor(results []Result, observer string) []Result {
	var out []Result
	for _, r := range results {
		if r.ObserverName == observer {
			out = append(out, r)
		}
	}
	return out
}

func TestRun_SplitMan(t *testing.T) {
	results, err := Run(splitManEntities(t), splitManObservers(t), *DefaultConfig())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	tests := []struct {
		observer string
		want     []Result
	}{
		{
			observer: "A",
			want: []Result{
				{ObserverName: "A", EntityID: 1, Label: "the man", Perceived: true},
				{ObserverName: "A", EntityID: 2},
				{ObserverName: "A", EntityID: 3},
				{ObserverName: "A", EntityID: 4},
			},
		},
		{
			observer: "B",
			want: []Result{
				{ObserverName: "B", EntityID: 1},
				{ObserverName: "B", EntityID: 2, Label: "the voice", Perceived: true},
				{ObserverName: "B", EntityID: 3},
				{ObserverName: "B", EntityID: 4},
			},
		},
		{
			observer: "C",
			want: []Result{
				{ObserverName: "C", EntityID: 1},
				{ObserverName: "C", EntityID: 2},
				{ObserverName: "C", EntityID: 3, Label: "fragmented entity", Perceived: true},
				{ObserverName: "C", EntityID: 4, Label: "fragmented entity", Perceived: true},
			},
		},
		{
			observer: "D",
			want: []Result{
				{ObserverName: "D", EntityID: 1},
				{ObserverName: "D", EntityID: 2},
				{ObserverName: "D", EntityID: 3},
				{ObserverName: "D", EntityID: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.observer, func(t *testing.T) {
			got := resultsFor(results, tt.observer)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("results for %s:\n got %+v\nwant %+v", tt.observer, got, tt.want)
			}
		})
	}
}

func TestRun_CountAndOrder(t *testing.T) {
	entities := splitManEntities(t)
	observers := splitManObservers(t)

	results, err := Run(entities, observers, *DefaultConfig())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if want := observers.Len() * entities.Len(); len(results) != want {
		t.Fatalf("len(results) = %d, want %d", len(results), want)
	}

	i := 0
	for o := range observers.All() {
		for e := range entities.All() {
			r := results[i]
			if r.ObserverName != o.Name || r.EntityID != e.ID {
				t.Errorf("results[%d] = (%s, %d), want (%s, %d)", i, r.ObserverName, r.EntityID, o.Name, e.ID)
			}
			i++
		}
	}
}

func TestRun_LabelVerbatim(t *testing.T) {
	entities := splitManEntities(t)

	// A label equal to the entity's own name is still an ordinary label.
	observers, err := ontology.NewObserverRegistry(
		ontology.Observer{Name: "self", Perspective: perspective.Self("the man")},
		ontology.Observer{Name: "echo", Perspective: ontology.PerspectiveFunc(func(e ontology.Entity) (string, bool) {
			return "  " + e.Name + "  ", true
		})},
	)
	if err != nil {
		t.Fatal(err)
	}

	results, err := Run(entities, observers, *DefaultConfig())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := results[0]; got.Label != "the man" || !got.Perceived {
		t.Errorf("self result = %+v, want verbatim entity name", got)
	}
	for _, r := range resultsFor(results, "echo") {
		e, _ := entities.Get(r.EntityID)
		if r.Label != "  "+e.Name+"  " {
			t.Errorf("echo label = %q, want whitespace preserved", r.Label)
		}
	}
}

func TestRun_NoPerceptionNormalization(t *testing.T) {
	entities := splitManEntities(t)
	observers, err := ontology.NewObserverRegistry(
		ontology.Observer{Name: "empty-ok", Perspective: ontology.PerspectiveFunc(func(ontology.Entity) (string, bool) {
			return "", true
		})},
		ontology.Observer{Name: "label-not-ok", Perspective: ontology.PerspectiveFunc(func(ontology.Entity) (string, bool) {
			return "ignored", false
		})},
	)
	if err != nil {
		t.Fatal(err)
	}

	results, err := Run(entities, observers, *DefaultConfig())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, r := range results {
		if r.Perceived || r.Label != "" {
			t.Errorf("result %+v should be not perceived with empty label", r)
		}
	}
}

func TestRun_EmptyRegistry(t *testing.T) {
	emptyEntities, _ := ontology.NewEntityRegistry()
	emptyObservers, _ := ontology.NewObserverRegistry()

	tests := []struct {
		name         string
		entities     *ontology.EntityRegistry
		observers    *ontology.ObserverRegistry
		wantRegistry string
	}{
		{"empty entities", emptyEntities, splitManObservers(t), EntityRegistry},
		{"empty observers", splitManEntities(t), emptyObservers, ObserverRegistry},
		{"both empty", emptyEntities, emptyObservers, EntityRegistry},
		{"nil entities", nil, splitManObservers(t), EntityRegistry},
		{"nil observers", splitManEntities(t), nil, ObserverRegistry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Run(tt.entities, tt.observers, Config{})
			if !errors.Is(err, ErrEmptyRegistry) {
				t.Fatalf("Run() error = %v, want ErrEmptyRegistry", err)
			}
			var emptyErr *EmptyRegistryError
			if !errors.As(err, &emptyErr) {
				t.Fatalf("error %T is not *EmptyRegistryError", err)
			}
			if emptyErr.Registry != tt.wantRegistry {
				t.Errorf("Registry = %q, want %q", emptyErr.Registry, tt.wantRegistry)
			}
			if results != nil {
				t.Errorf("results = %v, want nil on error", results)
			}

			results, err = Run(tt.entities, tt.observers, Config{AllowEmpty: true})
			if err != nil {
				t.Fatalf("Run(AllowEmpty) error = %v", err)
			}
			if results == nil || len(results) != 0 {
				t.Errorf("Run(AllowEmpty) = %#v, want empty non-nil slice", results)
			}
		})
	}
}

func TestRun_ParallelMatchesSequential(t *testing.T) {
	entities, err := ontology.NewEntityRegistry()
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 25; i++ {
		state := ontology.StateDefined
		if i%3 == 0 {
			state = ontology.StateSplit
		}
		if err := entities.Add(ontology.Entity{ID: i * 7, Name: fmt.Sprintf("e%d", i), State: state, Layer: uint(i % 4)}); err != nil {
			t.Fatal(err)
		}
	}

	observers, err := ontology.NewObserverRegistry()
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 17; i++ {
		var p ontology.Perspective
		switch i % 3 {
		case 0:
			p = perspective.InState(ontology.StateSplit, fmt.Sprintf("split-%d", i))
		case 1:
			p = perspective.Named(fmt.Sprintf("e%d", i), "named")
		default:
			p = perspective.Blind()
		}
		if err := observers.Add(ontology.Observer{Name: fmt.Sprintf("o%02d", i), Perspective: p}); err != nil {
			t.Fatal(err)
		}
	}

	sequential, err := Run(entities, observers, *DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	for _, parallelism := range []int{2, 3, 8, 64} {
		t.Run(fmt.Sprintf("parallelism=%d", parallelism), func(t *testing.T) {
			parallel, err := Run(entities, observers, Config{Parallelism: parallelism})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !reflect.DeepEqual(parallel, sequential) {
				t.Error("parallel results differ from sequential results")
			}
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	entities := splitManEntities(t)
	observers := splitManObservers(t)

	driver, err := NewDriver(DefaultConfig().WithParallelism(4))
	if err != nil {
		t.Fatal(err)
	}

	first, err := driver.Run(context.Background(), entities, observers)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := driver.Run(context.Background(), entities, observers)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs from the first run", i)
		}
	}
}

type perspectivePanic struct{ observer string }

func TestRun_PanicPropagates(t *testing.T) {
	entities := splitManEntities(t)

	for _, parallelism := range []int{1, 4} {
		t.Run(fmt.Sprintf("parallelism=%d", parallelism), func(t *testing.T) {
			observers, err := ontology.NewObserverRegistry(
				ontology.Observer{Name: "A", Perspective: perspective.Named("the man", "the man")},
				ontology.Observer{Name: "bad", Perspective: ontology.PerspectiveFunc(func(e ontology.Entity) (string, bool) {
					if e.ID == 3 {
						panic(perspectivePanic{observer: "bad"})
					}
					return "", false
				})},
			)
			if err != nil {
				t.Fatal(err)
			}

			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic to reach the caller")
				}
				if got, ok := r.(perspectivePanic); !ok || got.observer != "bad" {
					t.Errorf("recovered %#v, want the original panic value", r)
				}
			}()

			_, _ = Run(entities, observers, Config{Parallelism: parallelism})
		})
	}
}

func TestNewDriver(t *testing.T) {
	if _, err := NewDriver(nil); err != nil {
		t.Errorf("NewDriver(nil) error = %v", err)
	}

	_, err := NewDriver(&Config{Parallelism: -1})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewDriver(negative parallelism) error = %v, want ErrInvalidConfig", err)
	}

	cfg := DefaultConfig()
	d, err := NewDriver(cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.WithAllowEmpty(true)
	if _, err := d.Run(context.Background(), nil, nil); !errors.Is(err, ErrEmptyRegistry) {
		t.Error("driver picked up a config change made after construction")
	}
}

func TestDriver_Telemetry(t *testing.T) {
	collector := metrics.NewCollector(&config.MetricsConfig{Enabled: true}, nil)
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	logs := &bytes.Buffer{}

	driver, err := NewDriver(DefaultConfig(),
		WithMetrics(collector),
		WithTracerProvider(provider),
		WithLogger(slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := driver.Run(context.Background(), splitManEntities(t), splitManObservers(t)); err != nil {
		t.Fatal(err)
	}
	if _, err := driver.Run(context.Background(), nil, splitManObservers(t)); err == nil {
		t.Fatal("expected empty registry error")
	}

	expected := `
# HELP parallax_interpret_runs_total Total number of interpretation runs
# TYPE parallax_interpret_runs_total counter
parallax_interpret_runs_total{outcome="error"} 1
parallax_interpret_runs_total{outcome="success"} 1
`
	if err := testutil.GatherAndCompare(collector.Registry(), strings.NewReader(expected), "parallax_interpret_runs_total"); err != nil {
		t.Errorf("runs_total mismatch: %v", err)
	}
	// D never perceives anything, so it has no perceived="true" series.
	got, err := testutil.GatherAndCount(collector.Registry(), "parallax_interpret_perceptions_total")
	if err != nil {
		t.Fatal(err)
	}
	if got != 7 {
		t.Errorf("perception series = %d, want 7", got)
	}

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("recorded %d spans, want 2", len(spans))
	}
	attrs := map[string]any{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	if attrs[tracing.AttrResults] != int64(16) {
		t.Errorf("results attribute = %v, want 16", attrs[tracing.AttrResults])
	}
	if attrs[tracing.AttrPerceived] != int64(4) {
		t.Errorf("perceived attribute = %v, want 4", attrs[tracing.AttrPerceived])
	}

	if !strings.Contains(logs.String(), "interpretation finished") {
		t.Errorf("missing completion log line: %s", logs.String())
	}
	if !strings.Contains(logs.String(), "run_id=") {
		t.Errorf("log lines should carry run_id: %s", logs.String())
	}
}

func TestResult_String(t *testing.T) {
	if got := (Result{ObserverName: "A", EntityID: 1, Label: "the man", Perceived: true}).String(); got != "observer A sees entity 1 as: the man" {
		t.Errorf("String() = %q", got)
	}
	if got := (Result{ObserverName: "D", EntityID: 2}).String(); got != "observer D does not perceive entity 2" {
		t.Errorf("String() = %q", got)
	}
}
