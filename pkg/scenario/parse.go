package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads, parses and validates the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %q: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a YAML scenario document. source names the document in error
// messages. Unknown fields are rejected.
func Parse(data []byte, source string) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{
				Source: source,
				Errors: []FieldError{{Field: "(document)", Message: "scenario is empty"}},
			}
		}
		return nil, fmt.Errorf("failed to parse scenario %q: %w", source, err)
	}
	s.Source = source

	if err := s.compile(); err != nil {
		return nil, err
	}
	return &s, nil
}
