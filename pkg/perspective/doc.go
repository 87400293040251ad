// Package perspective provides concrete observer perspectives.
//
// Every perspective implements ontology.Perspective. The simple variants cover
// the common lenses:
//
//   - Named perceives entities with a given name
//   - InState perceives entities in a given structural state
//   - Blind never perceives anything
//   - Self perceives a single entity as itself
//
// For anything richer, Rules evaluates an ordered list of labelled
// conditions over entity fields. Conditions use the same operator set as the
// policy language (==, !=, <, >, <=, >=, contains, matches, starts_with,
// ends_with, in, not_in) combined with all/any/not:
//
//	rules, err := perspective.NewRules(
//	    perspective.Rule{
//	        Label: "deep aspect",
//	        When: perspective.All(
//	            perspective.Compare("layer", perspective.OpGreaterEqual, 2),
//	            perspective.Compare("name", perspective.OpContains, "aspect"),
//	        ),
//	    },
//	)
//
// Conditions are compiled once, up front. A compiled rule set never fails at
// interpretation time, so it stays total over every entity.
package perspective
