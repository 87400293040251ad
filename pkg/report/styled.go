package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"mercator-hq/parallax/pkg/interpret"
)

// Palette.
const (
	colorMauve    = lipgloss.Color("#cba6f7")
	colorGreen    = lipgloss.Color("#a6e3a1")
	colorOverlay1 = lipgloss.Color("#7f849c")
	colorLavender = lipgloss.Color("#b4befe")
)

// StyledReporter writes the text format with terminal colours. Colour is
// dropped automatically when the writer is not a terminal.
type StyledReporter struct{}

// NewStyledReporter creates a styled reporter.
func NewStyledReporter() *StyledReporter {
	return &StyledReporter{}
}

// Report writes results to w.
func (r *StyledReporter) Report(w io.Writer, results []interpret.Result) error {
	renderer := lipgloss.NewRenderer(w)
	header := renderer.NewStyle().Bold(true).Foreground(colorMauve)
	seen := renderer.NewStyle().Foreground(colorGreen)
	label := renderer.NewStyle().Foreground(colorLavender).Italic(true)
	unseen := renderer.NewStyle().Foreground(colorOverlay1)

	bw := bufio.NewWriter(w)
	for _, g := range GroupResults(results) {
		fmt.Fprintln(bw, header.Render(observerLine(g.Observer)))
		for _, res := range g.Results {
			if res.Perceived {
				fmt.Fprintf(bw, "%s%s\n",
					seen.Render(fmt.Sprintf("  sees entity %d as: ", res.EntityID)),
					label.Render(res.Label))
				continue
			}
			fmt.Fprintln(bw, unseen.Render(perceptionLine(res)))
		}
	}

	summary := Summarize(results)
	if len(summary) > 0 {
		fmt.Fprintln(bw)
		for _, s := range summary {
			fmt.Fprintln(bw, unseen.Render(s.String()))
		}
	}
	return bw.Flush()
}
