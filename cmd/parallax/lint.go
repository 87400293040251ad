package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/parallax/pkg/cli"
	"mercator-hq/parallax/pkg/scenario"
)

var lintFlags struct {
	scenario string
	strict   bool
	format   string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate a scenario file",
	Long: `Validate a scenario file for errors and suspicious constructs.

Errors make the scenario unusable:
  - YAML syntax and unknown fields
  - Missing names, unknown perspective kinds, invalid rule conditions
  - Duplicate entity IDs or observer names

Warnings flag constructs that are valid but probably unintended:
  - States outside the known ontology vocabulary
  - State perspectives that no entity can satisfy
  - Empty entity or observer lists

Examples:
  # Lint a scenario
  parallax lint --scenario scenario.yaml

  # Strict mode (warnings as errors)
  parallax lint --scenario scenario.yaml --strict

  # JSON output for CI/CD
  parallax lint --scenario scenario.yaml --format json`,
	RunE: lintScenario,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.scenario, "scenario", "s", "", "scenario file to validate")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVarP(&lintFlags.format, "format", "f", "text", "output format: text, json")
}

func lintScenario(cmd *cobra.Command, args []string) error {
	if lintFlags.scenario == "" {
		return cli.NewConfigError("scenario", "--scenario must be specified")
	}

	format, err := cli.ParseOutputFormat(lintFlags.format)
	if err != nil {
		return err
	}

	result := validateScenarioFile(lintFlags.scenario)
	result.Strict = lintFlags.strict

	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), result); err != nil {
		return err
	}

	if result.failed() {
		return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
	}
	return nil
}

// LintResult is the validation result for a single scenario file.
type LintResult struct {
	File     string        `json:"file"`
	Valid    bool          `json:"valid"`
	Strict   bool          `json:"strict,omitempty"`
	Errors   []LintFinding `json:"errors,omitempty"`
	Warnings []LintFinding `json:"warnings,omitempty"`
}

// LintFinding is a single error or warning.
type LintFinding struct {
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func (r LintResult) failed() bool {
	return !r.Valid || (r.Strict && len(r.Warnings) > 0)
}

// WriteText renders the result for a terminal.
func (r LintResult) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "Validating %s...\n", r.File)

	if len(r.Errors) == 0 {
		fmt.Fprintln(w, "✓ Syntax valid")
		fmt.Fprintln(w, "✓ All perspectives compile")
		fmt.Fprintln(w, "✓ Registries accept every entity and observer")
	}

	for _, e := range r.Errors {
		fmt.Fprintf(w, "✗ Error: %s\n", e.text())
	}
	for _, warn := range r.Warnings {
		fmt.Fprintf(w, "⚠  Warning: %s\n", warn.text())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  %d error(s), %d warning(s)\n", len(r.Errors), len(r.Warnings))
	if r.Strict && len(r.Warnings) > 0 {
		fmt.Fprintln(w, "  Strict mode enabled: treating warnings as errors")
	}
	return nil
}

func (f LintFinding) text() string {
	if f.Field == "" {
		return f.Message
	}
	return fmt.Sprintf("%s (%s)", f.Message, f.Field)
}

func validateScenarioFile(path string) LintResult {
	result := LintResult{
		File:  path,
		Valid: true,
	}

	s, err := scenario.Load(path)
	if err != nil {
		result.Valid = false

		var validationErr *scenario.ValidationError
		if errors.As(err, &validationErr) {
			for _, fe := range validationErr.Errors {
				result.Errors = append(result.Errors, LintFinding{
					Field:    fe.Field,
					Message:  fe.Message,
					Severity: "error",
				})
			}
		} else {
			result.Errors = append(result.Errors, LintFinding{
				Message:  err.Error(),
				Severity: "error",
			})
		}
		return result
	}

	// Duplicates load fine but the registries reject them.
	for _, fe := range s.Lint() {
		if strings.HasPrefix(fe.Message, "duplicate") {
			result.Valid = false
			result.Errors = append(result.Errors, LintFinding{
				Field:    fe.Field,
				Message:  fe.Message,
				Severity: "error",
			})
			continue
		}
		result.Warnings = append(result.Warnings, LintFinding{
			Field:    fe.Field,
			Message:  fe.Message,
			Severity: "warning",
		})
	}

	return result
}
