package scenario

import (
	"errors"
	"fmt"

	"mercator-hq/parallax/pkg/ontology"
	"mercator-hq/parallax/pkg/perspective"
)

// compile validates every entity and observer and builds the perspectives.
// All problems are collected into one *ValidationError.
func (s *Scenario) compile() error {
	var errs []FieldError

	for i, e := range s.Entities {
		errs = append(errs, validateEntity(fmt.Sprintf("entities[%d]", i), e)...)
	}

	s.perspectives = make([]ontology.Perspective, len(s.Observers))
	for i, o := range s.Observers {
		path := fmt.Sprintf("observers[%d]", i)
		if o.Name == "" {
			errs = append(errs, FieldError{Field: path + ".name", Message: "observer name is required"})
		}

		p, perrs := buildPerspective(path+".perspective", o.Perspective)
		errs = append(errs, perrs...)
		s.perspectives[i] = p
	}

	if len(errs) > 0 {
		return &ValidationError{Source: s.Source, Errors: errs}
	}
	return nil
}

func validateEntity(path string, e EntitySpec) []FieldError {
	var errs []FieldError

	if e.Name == "" {
		errs = append(errs, FieldError{Field: path + ".name", Message: "entity name is required"})
	}
	if e.Layer < 0 {
		errs = append(errs, FieldError{
			Field:   path + ".layer",
			Message: fmt.Sprintf("layer cannot be negative, got %d", e.Layer),
		})
	}

	return errs
}

// buildPerspective returns the perspective described by spec, or the field
// errors preventing it.
func buildPerspective(path string, spec PerspectiveSpec) (ontology.Perspective, []FieldError) {
	var errs []FieldError
	require := func(field, value string) {
		if value == "" {
			errs = append(errs, FieldError{
				Field:   path + "." + field,
				Message: fmt.Sprintf("%s is required for kind %q", field, spec.Kind),
			})
		}
	}
	forbid := func(field string, set bool) {
		if set {
			errs = append(errs, FieldError{
				Field:   path + "." + field,
				Message: fmt.Sprintf("%s is not used by kind %q", field, spec.Kind),
			})
		}
	}

	switch spec.Kind {
	case perspective.KindNamed:
		require("match", spec.Match)
		require("label", spec.Label)
		forbid("state", spec.State != "")
		forbid("rules", len(spec.Rules) > 0)
		if len(errs) > 0 {
			return nil, errs
		}
		return perspective.Named(spec.Match, spec.Label), nil

	case perspective.KindState:
		require("state", spec.State)
		require("label", spec.Label)
		forbid("match", spec.Match != "")
		forbid("rules", len(spec.Rules) > 0)
		if len(errs) > 0 {
			return nil, errs
		}
		return perspective.InState(ontology.State(spec.State), spec.Label), nil

	case perspective.KindSelf:
		require("match", spec.Match)
		forbid("state", spec.State != "")
		forbid("label", spec.Label != "")
		forbid("rules", len(spec.Rules) > 0)
		if len(errs) > 0 {
			return nil, errs
		}
		return perspective.Self(spec.Match), nil

	case perspective.KindBlind:
		forbid("match", spec.Match != "")
		forbid("state", spec.State != "")
		forbid("label", spec.Label != "")
		forbid("rules", len(spec.Rules) > 0)
		if len(errs) > 0 {
			return nil, errs
		}
		return perspective.Blind(), nil

	case perspective.KindRules:
		forbid("match", spec.Match != "")
		forbid("state", spec.State != "")
		forbid("label", spec.Label != "")
		if len(errs) > 0 {
			return nil, errs
		}
		rules, err := perspective.NewRules(spec.Rules...)
		if err != nil {
			return nil, []FieldError{ruleFieldError(path, err)}
		}
		return rules, nil

	case "":
		return nil, []FieldError{{Field: path + ".kind", Message: "perspective kind is required"}}

	default:
		return nil, []FieldError{{
			Field:   path + ".kind",
			Message: fmt.Sprintf("unknown perspective kind %q (valid: %v)", spec.Kind, perspective.Kinds),
		}}
	}
}

// ruleFieldError maps a rule compilation error onto the scenario path.
func ruleFieldError(path string, err error) FieldError {
	if errors.Is(err, perspective.ErrNoRules) {
		return FieldError{Field: path + ".rules", Message: "rules kind needs at least one rule"}
	}

	var condErr *perspective.ConditionError
	if errors.As(err, &condErr) {
		return FieldError{Field: path + "." + condErr.Path, Message: condErr.Cause.Error()}
	}
	return FieldError{Field: path + ".rules", Message: err.Error()}
}
