package perspective

import (
	"errors"
	"testing"

	"mercator-hq/parallax/pkg/ontology"
)

func TestCondition_Match(t *testing.T) {
	tests := []struct {
		name   string
		cond   *Condition
		entity ontology.Entity
		want   bool
	}{
		{"nil matches", nil, theMan, true},
		{"name equal", Compare(FieldName, OpEqual, "the man"), theMan, true},
		{"name not equal", Compare(FieldName, OpNotEqual, "the man"), theMan, false},
		{"state equal", Compare(FieldState, OpEqual, "Split"), aspectA, true},
		{"id equal int", Compare(FieldID, OpEqual, 3), aspectA, true},
		{"id not equal string", Compare(FieldID, OpEqual, "3"), aspectA, false},
		{"layer equal int vs uint", Compare(FieldLayer, OpEqual, 2), aspectB, true},
		{"layer greater", Compare(FieldLayer, OpGreaterThan, 1), aspectB, true},
		{"layer less equal", Compare(FieldLayer, OpLessEqual, 1), theVoic, true},
		{"layer less", Compare(FieldLayer, OpLessThan, 1), theVoic, false},
		{"id greater equal float", Compare(FieldID, OpGreaterEqual, 2.0), theVoic, true},
		{"contains", Compare(FieldName, OpContains, "aspect"), aspectA, true},
		{"starts with", Compare(FieldName, OpStartsWith, "the man"), aspectB, true},
		{"ends with", Compare(FieldName, OpEndsWith, "B)"), aspectA, false},
		{"matches", Compare(FieldName, OpMatches, `aspect [AB]\)$`), aspectB, true},
		{"in", Compare(FieldState, OpIn, []interface{}{"Merged", "Split"}), aspectA, true},
		{"in ids", Compare(FieldID, OpIn, []interface{}{1, 2}), theVoic, true},
		{"not in", Compare(FieldState, OpNotIn, []interface{}{"Split"}), theMan, true},
		{
			"all",
			All(Compare(FieldLayer, OpGreaterEqual, 2), Compare(FieldName, OpContains, "aspect A")),
			aspectA,
			true,
		},
		{
			"all short-circuit",
			All(Compare(FieldLayer, OpGreaterEqual, 2), Compare(FieldName, OpContains, "aspect A")),
			aspectB,
			false,
		},
		{
			"any",
			Any(Compare(FieldName, OpEqual, "the voice"), Compare(FieldState, OpEqual, "Split")),
			theVoic,
			true,
		},
		{"not", Not(Compare(FieldState, OpEqual, "Split")), theMan, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.cond != nil {
				if err := tt.cond.Compile("when"); err != nil {
					t.Fatalf("Compile() error = %v", err)
				}
			}
			if got := tt.cond.Match(tt.entity); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCondition_CompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		cond    *Condition
		target  interface{}
		wantErr error
	}{
		{"empty", &Condition{}, nil, ErrInvalidCondition},
		{"ambiguous", &Condition{Field: FieldName, Op: OpEqual, Value: "x", Not: Compare(FieldID, OpEqual, 1)}, nil, ErrInvalidCondition},
		{"unknown field", Compare("color", OpEqual, "red"), new(*FieldNotFoundError), nil},
		{"unknown operator", Compare(FieldName, Operator("~="), "x"), new(*UnknownOperatorError), nil},
		{"missing value", Compare(FieldName, OpEqual, nil), nil, ErrInvalidCondition},
		{"ordering on string field", Compare(FieldName, OpLessThan, 3), new(*TypeMismatchError), nil},
		{"ordering with string value", Compare(FieldLayer, OpLessThan, "deep"), new(*TypeMismatchError), nil},
		{"in without list", Compare(FieldState, OpIn, "Split"), new(*TypeMismatchError), nil},
		{"bad regex", Compare(FieldName, OpMatches, "("), nil, nil},
		{"nil child", All(Compare(FieldID, OpEqual, 1), nil), nil, ErrInvalidCondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cond.Compile("when")
			if err == nil {
				t.Fatal("Compile() error = nil, want error")
			}
			var condErr *ConditionError
			if !errors.As(err, &condErr) {
				t.Fatalf("error %v is not a *ConditionError", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.wantErr)
			}
			if tt.target != nil && !errors.As(err, tt.target) {
				t.Errorf("errors.As(%v, %T) = false", err, tt.target)
			}
		})
	}
}

func TestCondition_CompileErrorPath(t *testing.T) {
	cond := All(Compare(FieldID, OpEqual, 1), Any(Compare("mood", OpEqual, "calm")))
	err := cond.Compile("rules[2].when")
	var condErr *ConditionError
	if !errors.As(err, &condErr) {
		t.Fatalf("Compile() error = %v, want *ConditionError", err)
	}
	if want := "rules[2].when.all[1].any[0]"; condErr.Path != want {
		t.Errorf("Path = %q, want %q", condErr.Path, want)
	}
}

func TestRuleSet_FirstMatchWins(t *testing.T) {
	rules, err := NewRules(
		Rule{Label: "origin", When: Compare(FieldLayer, OpEqual, 0)},
		Rule{Label: "deep aspect", When: All(
			Compare(FieldLayer, OpGreaterEqual, 2),
			Compare(FieldName, OpContains, "aspect"),
		)},
		Rule{Label: "fragmented entity", When: Compare(FieldState, OpEqual, "Split")},
	)
	if err != nil {
		t.Fatalf("NewRules() error = %v", err)
	}

	tests := []struct {
		entity    ontology.Entity
		wantLabel string
		wantOK    bool
	}{
		{theMan, "origin", true},
		{theVoic, "", false},
		{aspectA, "deep aspect", true},
		{aspectB, "deep aspect", true},
	}
	for _, tt := range tests {
		label, ok := rules.Interpret(tt.entity)
		if label != tt.wantLabel || ok != tt.wantOK {
			t.Errorf("Interpret(%d) = (%q, %v), want (%q, %v)", tt.entity.ID, label, ok, tt.wantLabel, tt.wantOK)
		}
	}
	if len(rules.Rules()) != 3 {
		t.Errorf("Rules() len = %d, want 3", len(rules.Rules()))
	}
}

func TestRuleSet_CatchAll(t *testing.T) {
	rules, err := NewRules(Rule{Label: "something"})
	if err != nil {
		t.Fatalf("NewRules() error = %v", err)
	}
	if label, ok := rules.Interpret(theVoic); !ok || label != "something" {
		t.Errorf("Interpret() = (%q, %v), want (something, true)", label, ok)
	}
}

func TestNewRules_Errors(t *testing.T) {
	if _, err := NewRules(); !errors.Is(err, ErrNoRules) {
		t.Errorf("NewRules() error = %v, want ErrNoRules", err)
	}
	if _, err := NewRules(Rule{When: Compare(FieldID, OpEqual, 1)}); !errors.Is(err, ErrInvalidCondition) {
		t.Errorf("NewRules() without label error = %v, want ErrInvalidCondition", err)
	}
	if _, err := NewRules(Rule{Label: "x", When: Compare("colour", OpEqual, 1)}); err == nil {
		t.Error("NewRules() with unknown field should fail")
	}
}
