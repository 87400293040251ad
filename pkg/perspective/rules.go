package perspective

import (
	"fmt"

	"mercator-hq/parallax/pkg/ontology"
)

// Rule labels every entity matching When. A nil When matches everything.
type Rule struct {
	Label string     `yaml:"label" json:"label"`
	When  *Condition `yaml:"when,omitempty" json:"when,omitempty"`
}

// RuleSet is a perspective evaluating rules in order; the first matching rule
// supplies the label. When no rule matches the entity is not perceived.
type RuleSet struct {
	rules []Rule
}

// NewRules compiles rules into a RuleSet. Every condition is validated here so
// that Interpret never fails.
func NewRules(rules ...Rule) (*RuleSet, error) {
	if len(rules) == 0 {
		return nil, ErrNoRules
	}

	compiled := make([]Rule, len(rules))
	for i, rule := range rules {
		path := fmt.Sprintf("rules[%d]", i)
		if rule.Label == "" {
			return nil, &ConditionError{
				Path:  path,
				Cause: fmt.Errorf("%w: rule label is required", ErrInvalidCondition),
			}
		}
		if rule.When != nil {
			if err := rule.When.Compile(path + ".when"); err != nil {
				return nil, err
			}
		}
		compiled[i] = rule
	}

	return &RuleSet{rules: compiled}, nil
}

// Interpret implements ontology.Perspective.
func (s *RuleSet) Interpret(e ontology.Entity) (string, bool) {
	for _, rule := range s.rules {
		if rule.When.Match(e) {
			return rule.Label, true
		}
	}
	return "", false
}

// Rules returns the compiled rules in evaluation order.
func (s *RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}
