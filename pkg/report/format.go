package report

import (
	"fmt"
	"io"
	"strings"

	"mercator-hq/parallax/pkg/interpret"
)

// Format selects how results are rendered.
type Format string

const (
	// FormatText is the canonical plain text output (default).
	FormatText Format = "text"
	// FormatJSON is an indented JSON array of observer groups.
	FormatJSON Format = "json"
	// FormatStyled is the text output coloured with lipgloss.
	FormatStyled Format = "styled"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatStyled}

// ParseFormat converts a string to a Format. The empty string selects
// FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatStyled:
		return FormatStyled, nil
	default:
		return "", fmt.Errorf("unknown report format %q (valid: text, json, styled)", s)
	}
}

// Reporter renders a result sequence to a writer.
type Reporter interface {
	Report(w io.Writer, results []interpret.Result) error
}

// New returns the reporter for format. Unknown formats fall back to text.
func New(format Format) Reporter {
	switch format {
	case FormatJSON:
		return &JSONReporter{Indent: true}
	case FormatStyled:
		return NewStyledReporter()
	default:
		return &TextReporter{}
	}
}
