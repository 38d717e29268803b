// Package util tests the stats, schema and version commands.
// Related: internal/cli/util/stats.go, internal/cli/util/schema.go, internal/cli/util/version.go
// Tags: cli, stats, schema, json-schema, version
package util

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/contentlint/internal/cli/shared"
	"github.com/ariel-frischer/contentlint/internal/content"
	"github.com/ariel-frischer/contentlint/internal/testutil"
	"github.com/ariel-frischer/contentlint/internal/validation"
)

func newTestRoot() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	root := &cobra.Command{Use: "contentlint", SilenceErrors: true}
	root.PersistentFlags().StringP("config", "c", "", "")
	root.PersistentFlags().String("content-dir", "", "")
	root.AddGroup(&cobra.Group{ID: shared.GroupInspection, Title: "Inspection:"})
	Register(root)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	return root, &out, &errOut
}

func TestStatsCmd(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tree := testutil.NewContentTree(t)
	for _, lang := range content.Languages {
		tree.CompleteLanguage(lang, time.Now().Year())
	}
	outDir := t.TempDir()
	output := filepath.Join(outDir, "stats.json")

	root, out, _ := newTestRoot()
	root.SetArgs([]string{"stats",
		"--config", filepath.Join(outDir, "absent.json"),
		"--content-dir", tree.Root,
		"--output", output,
	})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "Content by language")
	assert.Contains(t, out.String(), "Research-backed habits: 100.0%")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Len(t, doc["languages"], len(content.Languages))

	root, _, errOut := newTestRoot()
	root.SetArgs([]string{"stats",
		"--config", filepath.Join(outDir, "absent.json"),
		"--content-dir", filepath.Join(outDir, "missing"),
		"--output", output,
	})
	err = root.Execute()
	assert.Equal(t, shared.ExitMissingContent, shared.ExitCode(err))
	assert.Contains(t, errOut.String(), "content root not found")
}

func TestParseTypes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args    []string
		want    []content.Type
		wantErr bool
	}{
		"none selects all": {want: content.Types},
		"subset":           {args: []string{"goal", "HABIT"}, want: []content.Type{content.TypeGoal, content.TypeHabit}},
		"unknown":          {args: []string{"recipe"}, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := parseTypes(tc.args)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPrintSchema(t *testing.T) {
	t.Parallel()

	registry := validation.NewRegistry(time.Now())

	habit, err := registry.Schema(content.TypeHabit)
	require.NoError(t, err)
	var buf bytes.Buffer
	printSchema(&buf, habit)
	out := buf.String()
	assert.Contains(t, out, "id*")
	assert.Contains(t, out, "pattern ^[a-z0-9-]+$")
	assert.Contains(t, out, "timeMinutes*")
	assert.Contains(t, out, "range 1..180")
	assert.Contains(t, out, "array of string; items <= 10")

	goal, err := registry.Schema(content.TypeGoal)
	require.NoError(t, err)
	buf.Reset()
	printSchema(&buf, goal)
	assert.Contains(t, buf.String(), "    priority*")

	locale, err := registry.Schema(content.TypeLocale)
	require.NoError(t, err)
	buf.Reset()
	printSchema(&buf, locale)
	assert.Contains(t, buf.String(), "keys")
	assert.Contains(t, buf.String(), "string; length 1..200")
}

func TestExportSchemas(t *testing.T) {
	t.Parallel()

	registry := validation.NewRegistry(time.Now())
	var schemas []*validation.Schema
	for _, typ := range content.Types {
		s, err := registry.Schema(typ)
		require.NoError(t, err)
		schemas = append(schemas, s)
	}

	dir := filepath.Join(t.TempDir(), "schemas")
	paths, err := exportSchemas(dir, schemas)
	require.NoError(t, err)
	require.Len(t, paths, len(content.Types))

	for i, typ := range content.Types {
		assert.Equal(t, filepath.Join(dir, string(typ)+".schema.json"), paths[i])
		data, err := os.ReadFile(paths[i])
		require.NoError(t, err)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, validation.JSONSchemaID(typ), doc["$id"])
	}
}

func TestSchemaCmd_UnknownType(t *testing.T) {
	root, _, errOut := newTestRoot()
	root.SetArgs([]string{"schema", "recipe"})

	err := root.Execute()
	assert.Equal(t, shared.ExitInvalidArguments, shared.ExitCode(err))
	assert.Contains(t, errOut.String(), `invalid content type "recipe"`)
}

func TestPrintPlainVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printPlainVersion(&buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "contentlint dev", lines[0])
	assert.True(t, strings.HasPrefix(lines[3], "go: go"))
}

func TestPrintPrettyVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]int{"wide terminal": 120, "narrow terminal": 40}
	for name, width := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			printPrettyVersion(&buf, width)
			assert.Contains(t, buf.String(), "Version")
			assert.Contains(t, buf.String(), shared.BoxTopLeft)
			assert.Contains(t, buf.String(), "development build")
		})
	}
}

func TestTruncateCommit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", truncateCommit("abc"))
	assert.Equal(t, "01234567", truncateCommit("0123456789abcdef"))
}
