// Package scenario loads entity and observer definitions from YAML.
//
// A scenario file lists entities and observers; each observer names a
// perspective kind and its parameters:
//
//	name: split-man
//	entities:
//	  - {id: 1, name: "the man", state: Defined, layer: 0}
//	  - {id: 3, name: "the man (aspect A)", state: Split, layer: 2}
//	observers:
//	  - name: A
//	    perspective: {kind: named, match: "the man", label: "the man"}
//	  - name: C
//	    perspective: {kind: state, state: Split, label: "fragmented entity"}
//	  - name: D
//	    perspective: {kind: blind}
//	  - name: E
//	    perspective:
//	      kind: rules
//	      rules:
//	        - label: "deep aspect"
//	          when:
//	            all:
//	              - {field: layer, op: ">=", value: 2}
//	              - {field: name, op: contains, value: aspect}
//
// Load and Parse validate the document and compile every perspective, so a
// scenario that loads successfully can always be interpreted. Duplicate IDs
// and observer names are reported by Registries, which builds the ontology
// registries in file order.
//
// Watcher re-reads a scenario file whenever it changes on disk.
package scenario
