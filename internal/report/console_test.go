// Package report_test tests console rendering of validation reports.
// Related: internal/report/console.go
// Tags: report, console, output, truncation
package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrint(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		errors, warnings int
		preview          int
		wantContains     []string
		wantMissing      []string
	}{
		"passing run": {
			errors: 0, warnings: 2, preview: 20,
			wantContains: []string{"Files validated: 2 (1 missing)", "Warnings: 2", "warning 1", "Validation passed"},
			wantMissing:  []string{"more warning(s)", "Validation failed"},
		},
		"failing run lists every error": {
			errors: 25, warnings: 0, preview: 20,
			wantContains: []string{"Errors:   25", "error 0", "error 24", "Validation failed with 25 error(s)"},
		},
		"warnings truncated": {
			errors: 0, warnings: 25, preview: 20,
			wantContains: []string{"warning 19", "... and 5 more warning(s)"},
			wantMissing:  []string{"warning 20"},
		},
		"custom preview": {
			errors: 0, warnings: 4, preview: 1,
			wantContains: []string{"warning 0", "... and 3 more warning(s)"},
			wantMissing:  []string{"warning 1"},
		},
		"zero preview uses default": {
			errors: 0, warnings: 21, preview: 0,
			wantContains: []string{"warning 19", "... and 1 more warning(s)"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			Print(&buf, New(testResult(tc.errors, tc.warnings)), tc.preview)
			out := buf.String()

			for _, want := range tc.wantContains {
				assert.Contains(t, out, want)
			}
			for _, missing := range tc.wantMissing {
				assert.NotContains(t, out, missing)
			}
		})
	}
}

func TestPrint_ExpectedAndActual(t *testing.T) {
	t.Parallel()

	res := testResult(0, 0)
	res.Issues = append(res.Issues, issue("error", "structural", "habits/en.json", 0, "wrong type for field 'title'"))
	res.Issues[0].Expected = "string"
	res.Issues[0].Actual = "number"

	var buf bytes.Buffer
	Print(&buf, New(res), DefaultWarningPreview)

	assert.Contains(t, buf.String(), "habits/en.json[0]: wrong type for field 'title'")
	assert.Contains(t, buf.String(), "expected: string, actual: number")
}

func TestPrintByCode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	PrintByCode(&buf, New(testResult(1, 2)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "quality")
	assert.Contains(t, lines[1], "structural")
}
