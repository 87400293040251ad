// Package report renders interpretation results.
//
// Three formats are available:
//
//   - text: the canonical line format, one group per observer
//   - json: an array of observer groups
//   - styled: the text lines coloured for a terminal
//
// Results are grouped in the order they arrive, which for a driver run is
// observer-major, entity-minor.
package report
