package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Configuration {
	return &Configuration{
		ContentDir:      "src/content",
		ReportPath:      "validation-report.json",
		WarningPreview:  20,
		MissingPreview:  5,
		MaxParallel:     4,
		WatchDebounceMs: 300,
		Layout: LayoutConfig{
			Habit:    "habits/{lang}.json",
			Research: "research/{lang}.json",
			Goal:     "goals/{lang}.json",
			Locale:   "locales/{lang}.json",
		},
	}
}

func TestValidateJSONSyntax(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		body     *string
		wantErr  string
		wantLine int
	}{
		"missing file": {},
		"valid object": {
			body: ptr(`{"content_dir": "content"}`),
		},
		"whitespace only": {
			body: ptr("  \n\t"),
		},
		"trailing comma": {
			body:     ptr("{\n  \"content_dir\": \"content\",\n}"),
			wantErr:  "invalid character '}'",
			wantLine: 3,
		},
		"array at top level": {
			body:    ptr(`["content"]`),
			wantErr: "top-level value must be an object",
		},
		"truncated": {
			body:     ptr(`{"content_dir": "con`),
			wantErr:  "unexpected end of JSON input",
			wantLine: 1,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config.json")
			if tc.body != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tc.body), 0o644))
			}

			err := ValidateJSONSyntax(path)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, path, verr.FilePath)
			assert.Equal(t, tc.wantLine, verr.Line)
		})
	}
}

func ptr(s string) *string { return &s }

func TestLineColumn(t *testing.T) {
	t.Parallel()

	data := []byte("ab\ncde\nf")
	tests := map[string]struct {
		offset   int64
		wantLine int
		wantCol  int
	}{
		"start":               {offset: 0, wantLine: 1, wantCol: 1},
		"second line":         {offset: 4, wantLine: 2, wantCol: 2},
		"past end is clamped": {offset: 100, wantLine: 3, wantCol: 2},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			line, col := lineColumn(data, tc.offset)
			assert.Equal(t, tc.wantLine, line)
			assert.Equal(t, tc.wantCol, col)
		})
	}
}

func TestValidateConfigValues_Valid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateConfigValues(validConfig(), "config.json"))
}

func TestValidateConfigValues_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate    func(*Configuration)
		wantField string
		wantMsg   string
	}{
		"missing report path": {
			mutate:    func(c *Configuration) { c.ReportPath = "" },
			wantField: "report_path",
			wantMsg:   "is required",
		},
		"missing preview above range": {
			mutate:    func(c *Configuration) { c.MissingPreview = 51 },
			wantField: "missing_preview",
			wantMsg:   "must be at most 50",
		},
		"negative parallelism": {
			mutate:    func(c *Configuration) { c.MaxParallel = -1 },
			wantField: "max_parallel",
			wantMsg:   "must be at least 1",
		},
		"empty locale pattern": {
			mutate:    func(c *Configuration) { c.Layout.Locale = "" },
			wantField: "layout.locale",
			wantMsg:   "is required",
		},
		"absolute habit pattern": {
			mutate:    func(c *Configuration) { c.Layout.Habit = "/habits/{lang}.json" },
			wantField: "layout",
			wantMsg:   "relative to the content root",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tc.mutate(cfg)

			err := ValidateConfigValues(cfg, "config.json")
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.wantField, verr.Field)
			assert.Contains(t, verr.Message, tc.wantMsg)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  ValidationError
		want string
	}{
		"with line": {
			err:  ValidationError{FilePath: "c.json", Line: 3, Column: 5, Message: "bad"},
			want: "c.json:3:5: bad",
		},
		"with field": {
			err:  ValidationError{FilePath: "c.json", Field: "max_parallel", Message: "must be at most 64"},
			want: "c.json: field 'max_parallel': must be at most 64",
		},
		"message only": {
			err:  ValidationError{FilePath: "c.json", Message: "permission denied"},
			want: "c.json: permission denied",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}
