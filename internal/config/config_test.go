// Package config_test tests configuration loading, merging hierarchy, and environment variable overrides.
// Related: internal/config/config.go
// Tags: config, loading, merging, env-vars, json, precedence
package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/contentlint/internal/content"
)

// isolateHome points HOME at an empty directory so the global config on the
// machine running the tests is never read. Callers cannot use t.Parallel().
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, path, body string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolateHome(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)

	assert.Equal(t, "src/content", cfg.ContentDir)
	assert.Equal(t, "validation-report.json", cfg.ReportPath)
	assert.Empty(t, cfg.MetricsFile)
	assert.Equal(t, 20, cfg.WarningPreview)
	assert.Equal(t, 5, cfg.MissingPreview)
	assert.Equal(t, 4, cfg.MaxParallel)
	assert.Equal(t, 300*time.Millisecond, cfg.WatchDebounce())
	assert.Equal(t, content.DefaultLayout(), cfg.ContentLayout())
}

func TestLoad_LocalOverride(t *testing.T) {
	isolateHome(t)

	path := writeConfig(t, filepath.Join(t.TempDir(), "config.json"), `{
		"content_dir": "content",
		"warning_preview": 50,
		"layout": {"habit": "habits/{lang}/*.json"}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, 50, cfg.WarningPreview)
	assert.Equal(t, "habits/{lang}/*.json", cfg.Layout.Habit)
	// Untouched nested keys keep their defaults.
	assert.Equal(t, "goals/{lang}.json", cfg.Layout.Goal)
}

func TestLoad_EnvOverride(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, filepath.Join(t.TempDir(), "config.json"), `{"warning_preview": 50}`)

	t.Setenv("CONTENTLINT_WARNING_PREVIEW", "7")
	t.Setenv("CONTENTLINT_LAYOUT__LOCALE", "i18n/{lang}.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.WarningPreview)
	assert.Equal(t, "i18n/{lang}.json", cfg.Layout.Locale)
}

func TestLoad_GlobalThenLocalPrecedence(t *testing.T) {
	home := isolateHome(t)
	writeConfig(t, filepath.Join(home, ".contentlint", "config.json"), `{"max_parallel": 2, "missing_preview": 9}`)
	local := writeConfig(t, filepath.Join(t.TempDir(), "config.json"), `{"max_parallel": 8}`)

	cfg, err := Load(local)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.MaxParallel)
	assert.Equal(t, 9, cfg.MissingPreview)
}

func TestLoad_OverridesBeatEnvironment(t *testing.T) {
	isolateHome(t)
	t.Setenv("CONTENTLINT_CONTENT_DIR", "from-env")

	cfg, err := LoadWithOptions(LoadOptions{
		LocalPath: filepath.Join(t.TempDir(), "absent.json"),
		Overrides: map[string]any{"content_dir": "from-flag"},
	})
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.ContentDir)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := map[string]struct {
		body      string
		wantField string
		wantMsg   string
	}{
		"warning preview too large": {
			body:      `{"warning_preview": 5000}`,
			wantField: "warning_preview",
			wantMsg:   "must be at most 1000",
		},
		"max parallel zero": {
			body:      `{"max_parallel": 0}`,
			wantField: "max_parallel",
			wantMsg:   "must be at least 1",
		},
		"debounce too short": {
			body:      `{"watch_debounce_ms": 10}`,
			wantField: "watch_debounce_ms",
			wantMsg:   "must be at least 50",
		},
		"empty content dir": {
			body:      `{"content_dir": ""}`,
			wantField: "content_dir",
			wantMsg:   "is required",
		},
		"layout without language": {
			body:      `{"layout": {"research": "research.json"}}`,
			wantField: "layout.research",
			wantMsg:   "must contain {lang}",
		},
		"layout escaping root": {
			body:      `{"layout": {"goal": "../goals/{lang}.json"}}`,
			wantField: "layout",
			wantMsg:   "relative to the content root",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			isolateHome(t)
			path := writeConfig(t, filepath.Join(t.TempDir(), "config.json"), tc.body)

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.wantField, verr.Field)
			assert.Contains(t, verr.Message, tc.wantMsg)
			assert.Equal(t, path, verr.FilePath)
		})
	}
}

func TestLoad_EnvOutOfRangeFails(t *testing.T) {
	isolateHome(t)
	t.Setenv("CONTENTLINT_WARNING_PREVIEW", "0")

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'warning_preview': must be at least 1")
}

func TestLoad_InvalidJSONSyntax(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, filepath.Join(t.TempDir(), "config.json"), "{\n  \"max_parallel\": 2,\n  oops\n}")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load local config")

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 3, verr.Line)
	assert.Positive(t, verr.Column)
}

func TestLoad_InvalidGlobalJSON(t *testing.T) {
	home := isolateHome(t)
	writeConfig(t, filepath.Join(home, ".contentlint", "config.json"), `[1, 2]`)

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load global config")
	assert.Contains(t, err.Error(), "top-level value must be an object")
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	isolateHome(t)
	path := writeConfig(t, filepath.Join(t.TempDir(), "config.json"), "  \n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.WarningPreview)
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := isolateHome(t)
	path := writeConfig(t, filepath.Join(t.TempDir(), "config.json"), `{"report_path": "~/reports/out.yaml"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "reports", "out.yaml"), cfg.ReportPath)
}

func TestExpandHomePath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input    string
		contains string
	}{
		"tilde prefix": {
			input:    "~/.contentlint/report.json",
			contains: ".contentlint/report.json",
		},
		"absolute path": {
			input:    "/absolute/path",
			contains: "/absolute/path",
		},
		"relative path": {
			input:    "./relative/path",
			contains: "./relative/path",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			result := expandHomePath(tc.input)
			assert.Contains(t, result, tc.contains)
		})
	}
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"simple key":  {input: "CONTENTLINT_CONTENT_DIR", want: "content_dir"},
		"nested key":  {input: "CONTENTLINT_LAYOUT__HABIT", want: "layout.habit"},
		"single word": {input: "CONTENTLINT_ASCII", want: "ascii"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, envTransform(tc.input))
		})
	}
}

func TestUserConfigPath(t *testing.T) {
	home := isolateHome(t)

	path, err := UserConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".contentlint", "config.json"), path)
}
