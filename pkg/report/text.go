package report

import (
	"bufio"
	"fmt"
	"io"

	"mercator-hq/parallax/pkg/interpret"
)

// TextReporter writes the canonical line format:
//
//	Observer A:
//	  sees entity 1 as: the man
//	  does not perceive entity 2
type TextReporter struct{}

// Report writes results to w.
func (r *TextReporter) Report(w io.Writer, results []interpret.Result) error {
	bw := bufio.NewWriter(w)
	for _, g := range GroupResults(results) {
		fmt.Fprintln(bw, observerLine(g.Observer))
		for _, res := range g.Results {
			fmt.Fprintln(bw, perceptionLine(res))
		}
	}
	return bw.Flush()
}

func observerLine(name string) string {
	return fmt.Sprintf("Observer %s:", name)
}

func perceptionLine(res interpret.Result) string {
	if res.Perceived {
		return fmt.Sprintf("  sees entity %d as: %s", res.EntityID, res.Label)
	}
	return fmt.Sprintf("  does not perceive entity %d", res.EntityID)
}
