package scenario

import (
	"mercator-hq/parallax/pkg/ontology"
	"mercator-hq/parallax/pkg/perspective"
)

// BuiltinSource is the Source of the scenario returned by Default.
const BuiltinSource = "builtin"

// Default returns the split-man scenario: one man, his voice and two split
// aspects, seen by four observers.
//
//	A sees "the man" as "the man"
//	B sees "the voice" as "the voice"
//	C sees every Split entity as "fragmented entity"
//	D perceives nothing
func Default() *Scenario {
	s := &Scenario{
		Name:        "split-man",
		Description: "Four observers interpret a man whose identity has split.",
		Source:      BuiltinSource,
		Entities: []EntitySpec{
			{ID: 1, Name: "the man", State: string(ontology.StateDefined), Layer: 0},
			{ID: 2, Name: "the voice", State: string(ontology.StateDefined), Layer: 1},
			{ID: 3, Name: "the man (aspect A)", State: string(ontology.StateSplit), Layer: 2},
			{ID: 4, Name: "the man (aspect B)", State: string(ontology.StateSplit), Layer: 2},
		},
		Observers: []ObserverSpec{
			{Name: "A", Perspective: PerspectiveSpec{Kind: perspective.KindNamed, Match: "the man", Label: "the man"}},
			{Name: "B", Perspective: PerspectiveSpec{Kind: perspective.KindNamed, Match: "the voice", Label: "the voice"}},
			{Name: "C", Perspective: PerspectiveSpec{Kind: perspective.KindState, State: string(ontology.StateSplit), Label: "fragmented entity"}},
			{Name: "D", Perspective: PerspectiveSpec{Kind: perspective.KindBlind}},
		},
	}

	if err := s.compile(); err != nil {
		panic("scenario: builtin scenario is invalid: " + err.Error())
	}
	return s
}
