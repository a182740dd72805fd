package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/eykd/articlelint/internal/domain"
)

// FindingType represents the kind of check finding.
type FindingType string

const (
	// FindingHeadingPunctuation indicates a heading line lacks terminal punctuation.
	FindingHeadingPunctuation FindingType = "heading_punctuation"
	// FindingListPunctuation indicates a list-item line lacks terminal punctuation.
	FindingListPunctuation FindingType = "list_punctuation"
	// FindingImageFilenameSpace indicates the featured image filename contains a space.
	FindingImageFilenameSpace FindingType = "image_filename_space"
	// FindingMissingImage indicates the front matter declares no featured image.
	FindingMissingImage FindingType = "missing_image"
	// FindingMalformedFrontmatter indicates front matter cannot be parsed.
	FindingMalformedFrontmatter FindingType = "malformed_frontmatter"
)

// Severity represents the severity level of a check finding.
type Severity string

const (
	// SeverityError represents an error-level finding.
	SeverityError Severity = "error"
	// SeverityWarning represents a warning-level finding.
	SeverityWarning Severity = "warning"
)

// CheckFinding represents a single finding from a check command.
type CheckFinding struct {
	Type       FindingType `json:"type"`
	Severity   Severity    `json:"severity"`
	Article    string      `json:"article"`
	Path       string      `json:"path"`
	Line       int         `json:"line,omitempty"`
	Text       string      `json:"text,omitempty"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// CheckRequest selects one check pass.
type CheckRequest struct {
	Check domain.CheckKind
	// FailFast overrides the configured fail-fast setting when non-nil.
	FailFast *bool
}

// CheckResult holds the outcome of one check pass.
type CheckResult struct {
	Check    domain.CheckKind
	Articles int
	Aborted  bool
	Findings []CheckFinding
}

// CheckRunner defines the interface for running one check pass.
type CheckRunner interface {
	Check(ctx context.Context, req CheckRequest) (*CheckResult, error)
}

// ReportWriter persists a JSON report file.
type ReportWriter interface {
	WriteReport(ctx context.Context, path string, data []byte) error
}

// FindingsDetectedError is returned when a check detects findings.
type FindingsDetectedError struct {
	Errors   int
	Warnings int
}

// Error implements the error interface.
func (e *FindingsDetectedError) Error() string {
	return fmt.Sprintf("check found %d errors, %d warnings", e.Errors, e.Warnings)
}

// ExitCode returns the exit code for findings (always 2).
func (e *FindingsDetectedError) ExitCode() int {
	return 2
}

// ExitCoder is implemented by errors that carry a specific process exit code.
type ExitCoder interface {
	ExitCode() int
}

// ExitCodeFromError returns the appropriate exit code for an error.
// nil returns 0, ExitCoder errors return their code, all others return 1.
func ExitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// checkSummaryJSON describes one check pass in JSON output.
type checkSummaryJSON struct {
	Check    domain.CheckKind `json:"check"`
	Articles int              `json:"articles"`
	Findings int              `json:"findings"`
	Aborted  bool             `json:"aborted,omitempty"`
}

// checkJSONResponse is the JSON output structure for the check commands.
type checkJSONResponse struct {
	Checks   []checkSummaryJSON `json:"checks"`
	Findings []CheckFinding     `json:"findings"`
	Summary  struct {
		Errors   int `json:"errors"`
		Warnings int `json:"warnings"`
	} `json:"summary"`
}

// countBySeverity counts errors and warnings in a slice of findings.
func countBySeverity(findings []CheckFinding) (errCount, warnCount int) {
	for _, f := range findings {
		if f.Severity == SeverityError {
			errCount++
		} else {
			warnCount++
		}
	}
	return
}

// buildCheckJSON assembles the JSON response for a set of check results.
func buildCheckJSON(results []*CheckResult) checkJSONResponse {
	out := checkJSONResponse{
		Checks:   []checkSummaryJSON{},
		Findings: []CheckFinding{},
	}
	for _, r := range results {
		out.Checks = append(out.Checks, checkSummaryJSON{
			Check:    r.Check,
			Articles: r.Articles,
			Findings: len(r.Findings),
			Aborted:  r.Aborted,
		})
		out.Findings = append(out.Findings, r.Findings...)
	}
	out.Summary.Errors, out.Summary.Warnings = countBySeverity(out.Findings)
	return out
}

// formatFindingHuman writes one finding as a single human-readable line.
func formatFindingHuman(w io.Writer, f CheckFinding) {
	loc := f.Path
	if f.Line > 0 {
		loc += ":" + strconv.Itoa(f.Line)
	}
	fmt.Fprintf(w, "%s [%s] %s: %s", loc, f.Severity, f.Type, f.Message)
	if f.Suggestion != "" {
		fmt.Fprintf(w, " (suggest %q)", f.Suggestion)
	}
	fmt.Fprintln(w)
}

// formatSummaryHuman writes the closing summary line when there are findings.
func formatSummaryHuman(w io.Writer, errCount, warnCount int) {
	if errCount > 0 || warnCount > 0 {
		fmt.Fprintf(w, "\n%d error(s), %d warning(s)\n", errCount, warnCount)
	}
}

// runChecksAndReport runs each check in order, printing progress and findings
// as text or collecting them as JSON. It returns a FindingsDetectedError if
// any findings are present.
func runChecksAndReport(cmd *cobra.Command, runner CheckRunner, kinds []domain.CheckKind, failFast *bool, asJSON bool) ([]*CheckResult, error) {
	out := cmd.OutOrStdout()
	var results []*CheckResult

	for _, kind := range kinds {
		if !asJSON {
			fmt.Fprintf(out, "Checking %s...\n", kind.Description())
		}
		result, err := runner.Check(cmd.Context(), CheckRequest{Check: kind, FailFast: failFast})
		if err != nil {
			return nil, err
		}
		if !asJSON {
			for _, f := range result.Findings {
				formatFindingHuman(out, f)
			}
		}
		results = append(results, result)
	}

	resp := buildCheckJSON(results)
	if asJSON {
		writeJSON(out, resp)
	} else {
		formatSummaryHuman(out, resp.Summary.Errors, resp.Summary.Warnings)
	}

	if len(resp.Findings) > 0 {
		return results, &FindingsDetectedError{Errors: resp.Summary.Errors, Warnings: resp.Summary.Warnings}
	}
	return results, nil
}

// failFastFlag returns a pointer to the --fail-fast value when it was set
// explicitly, and nil so the configured default applies otherwise.
func failFastFlag(cmd *cobra.Command, value bool) *bool {
	if !cmd.Flags().Changed("fail-fast") {
		return nil
	}
	return &value
}

// parseCheckKinds converts --only values into check kinds, defaulting to all.
func parseCheckKinds(names []string) ([]domain.CheckKind, error) {
	if len(names) == 0 {
		return domain.AllChecks(), nil
	}
	kinds := make([]domain.CheckKind, 0, len(names))
	seen := make(map[domain.CheckKind]bool, len(names))
	for _, name := range names {
		kind, err := domain.ParseCheckKind(name)
		if err != nil {
			return nil, err
		}
		if !seen[kind] {
			seen[kind] = true
			kinds = append(kinds, kind)
		}
	}
	return kinds, nil
}

// NewCheckCmd creates the check command, which runs every check in sequence.
func NewCheckCmd(runner CheckRunner, reports ReportWriter) *cobra.Command {
	var (
		jsonFlag   bool
		failFast   bool
		only       []string
		reportPath string
	)

	cmd := &cobra.Command{
		Use:          "check",
		Short:        "Run all article formatting checks",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds, err := parseCheckKinds(only)
			if err != nil {
				return err
			}

			results, runErr := runChecksAndReport(cmd, runner, kinds, failFastFlag(cmd, failFast), jsonFlag || GetJSON())
			if results == nil {
				return runErr
			}

			if reportPath != "" {
				data, err := json.Marshal(buildCheckJSON(results))
				if err != nil {
					return &ContextError{Op: "encode report", Err: err}
				}
				if err := reports.WriteReport(cmd.Context(), reportPath, append(data, '\n')); err != nil {
					return &ContextError{Op: "write report", Path: reportPath, Err: err}
				}
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop each check at its first violation")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Run only these checks (headings, lists, images)")
	cmd.Flags().StringVar(&reportPath, "report", "", "Also write the JSON report to this file")

	return cmd
}

// NewSingleCheckCmd creates a command that runs exactly one check.
func NewSingleCheckCmd(kind domain.CheckKind, runner CheckRunner) *cobra.Command {
	var (
		jsonFlag bool
		failFast bool
	)

	cmd := &cobra.Command{
		Use:          string(kind),
		Short:        singleCheckShort[kind],
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runChecksAndReport(cmd, runner, []domain.CheckKind{kind}, failFastFlag(cmd, failFast), jsonFlag || GetJSON())
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first violation")

	return cmd
}

var singleCheckShort = map[domain.CheckKind]string{
	domain.CheckHeadings: "Check that headings end in terminal punctuation",
	domain.CheckLists:    "Check that list items end in terminal punctuation",
	domain.CheckImages:   "Check that featured image filenames contain no spaces",
}
