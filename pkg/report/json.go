package report

import (
	"encoding/json"
	"io"

	"mercator-hq/parallax/pkg/interpret"
)

// JSONReporter writes results as an array of observer groups.
type JSONReporter struct {
	Indent bool
}

type jsonGroup struct {
	Observer    string           `json:"observer"`
	Perceptions []jsonPerception `json:"perceptions"`
}

type jsonPerception struct {
	EntityID  int    `json:"entity_id"`
	Label     string `json:"label,omitempty"`
	Perceived bool   `json:"perceived"`
}

// Report writes results to w.
func (r *JSONReporter) Report(w io.Writer, results []interpret.Result) error {
	groups := GroupResults(results)
	out := make([]jsonGroup, 0, len(groups))
	for _, g := range groups {
		jg := jsonGroup{
			Observer:    g.Observer,
			Perceptions: make([]jsonPerception, 0, len(g.Results)),
		}
		for _, res := range g.Results {
			jg.Perceptions = append(jg.Perceptions, jsonPerception{
				EntityID:  res.EntityID,
				Label:     res.Label,
				Perceived: res.Perceived,
			})
		}
		out = append(out, jg)
	}

	encoder := json.NewEncoder(w)
	if r.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(out)
}
