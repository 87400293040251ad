// Parallax runs observer-relative interpretation scenarios.
//
// A scenario declares entities and observers; every observer classifies every
// entity through its perspective, and the results are reported per observer.
//
// Usage:
//
//	# Interpret the built-in split-man scenario
//	parallax interpret
//
//	# Interpret a scenario file as JSON, re-running on every change
//	parallax interpret --scenario scenario.yaml --format json --watch
//
//	# Check a scenario file for errors and suspicious constructs
//	parallax lint --scenario scenario.yaml
//
//	# Initialize modules and run a coordination session every 5 seconds
//	parallax orchestrate --schedule "@every 5s"
//
//	# Show version information
//	parallax version
package main

func main() {
	Execute()
}
