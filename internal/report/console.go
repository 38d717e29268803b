package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/ariel-frischer/contentlint/internal/validation"
)

// DefaultWarningPreview is the number of warnings printed on the console.
const DefaultWarningPreview = 20

// Print writes the console summary: counts, every error, and the first
// warningPreview warnings followed by the number left out.
func Print(out io.Writer, r *Report, warningPreview int) {
	if warningPreview <= 0 {
		warningPreview = DefaultWarningPreview
	}

	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(out, "Files validated: %d", r.Summary.FilesValidated)
	if r.Summary.FilesMissing > 0 {
		fmt.Fprintf(out, " %s", dim(fmt.Sprintf("(%d missing)", r.Summary.FilesMissing)))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Errors:   %d\n", r.Summary.Errors)
	fmt.Fprintf(out, "Warnings: %d\n", r.Summary.Warnings)

	if len(r.Errors) > 0 {
		fmt.Fprintf(out, "\n%s\n", red("Errors:"))
		for _, i := range r.Errors {
			printIssue(out, red("✗"), i)
		}
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(out, "\n%s\n", yellow("Warnings:"))
		shown := r.Warnings
		if len(shown) > warningPreview {
			shown = shown[:warningPreview]
		}
		for _, i := range shown {
			printIssue(out, yellow("⚠"), i)
		}
		if rest := len(r.Warnings) - len(shown); rest > 0 {
			fmt.Fprintf(out, "  %s\n", dim(fmt.Sprintf("... and %d more warning(s); see the full report", rest)))
		}
	}

	fmt.Fprintln(out)
	if r.Passed {
		fmt.Fprintf(out, "%s Validation passed\n", green("✓"))
	} else {
		fmt.Fprintf(out, "%s Validation failed with %d error(s)\n", red("✗"), r.Summary.Errors)
	}
}

// PrintByCode writes the per-code issue counts in code order.
func PrintByCode(out io.Writer, r *Report) {
	codes := make([]string, 0, len(r.Summary.ByCode))
	for code := range r.Summary.ByCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(out, "  %-18s %d\n", code, r.Summary.ByCode[code])
	}
}

func printIssue(out io.Writer, mark string, i validation.Issue) {
	fmt.Fprintf(out, "  %s %s\n", mark, i.String())
	if i.Expected != "" || i.Actual != "" {
		fmt.Fprintf(out, "      expected: %s, actual: %s\n", orDash(i.Expected), orDash(i.Actual))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
