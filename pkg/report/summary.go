package report

import (
	"fmt"

	"mercator-hq/parallax/pkg/interpret"
)

// Summary counts what one observer perceived.
type Summary struct {
	Observer  string `json:"observer"`
	Perceived int    `json:"perceived"`
	Total     int    `json:"total"`
}

func (s Summary) String() string {
	return fmt.Sprintf("%s perceives %d of %d", s.Observer, s.Perceived, s.Total)
}

// Summarize returns one summary per observer group, in result order.
func Summarize(results []interpret.Result) []Summary {
	groups := GroupResults(results)
	out := make([]Summary, 0, len(groups))
	for _, g := range groups {
		s := Summary{Observer: g.Observer, Total: len(g.Results)}
		for _, r := range g.Results {
			if r.Perceived {
				s.Perceived++
			}
		}
		out = append(out, s)
	}
	return out
}
