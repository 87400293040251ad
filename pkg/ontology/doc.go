// Package ontology defines the entities and observers of an interpretation run
// and the registries that hold them.
//
// Entities and observers are registered once, before any interpretation
// happens, and are treated as immutable afterwards. Both registries preserve
// insertion order; the interpretation driver relies on that order to produce
// deterministic reports.
//
// # Basic Usage
//
//	entities := ontology.NewEntityRegistry()
//	if err := entities.Add(ontology.Entity{ID: 1, Name: "the man", State: ontology.StateDefined}); err != nil {
//	    return err
//	}
//
//	observers := ontology.NewObserverRegistry()
//	err := observers.Add(ontology.Observer{
//	    Name: "A",
//	    Perspective: ontology.PerspectiveFunc(func(e ontology.Entity) (string, bool) {
//	        return e.Name, e.Name == "the man"
//	    }),
//	})
//
//	for e := range entities.All() {
//	    fmt.Println(e.ID, e.Name)
//	}
package ontology
