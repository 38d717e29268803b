// Package content_test tests content discovery, parsing, and fail-soft loading.
// Related: internal/content/loader.go
// Tags: content, loader, discovery, glob, json, parse
package content

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/contentlint/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingRoot(t *testing.T) {
	t.Parallel()

	loader := NewLoader(filepath.Join(t.TempDir(), "nope"), DefaultLayout())
	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContentRootMissing))
}

func TestLoad_RootIsFile(t *testing.T) {
	t.Parallel()

	tree := testutil.NewContentTree(t)
	path := tree.WriteRaw("file.json", "{}")

	_, err := NewLoader(path, DefaultLayout()).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContentRootMissing))
}

func TestLoad_MissingFilesAreEmpty(t *testing.T) {
	t.Parallel()

	tree := testutil.NewContentTree(t)
	snap, err := NewLoader(tree.Root, DefaultLayout()).Load(context.Background())
	require.NoError(t, err)

	// One placeholder per (type, language) pair.
	require.Len(t, snap.Files, len(Types)*len(Languages))
	for _, f := range snap.Files {
		assert.False(t, f.Exists, f.Path)
		assert.NoError(t, f.ParseErr)
		if f.Type == TypeLocale {
			assert.Equal(t, map[string]any{}, f.Data)
		} else {
			assert.Equal(t, []any{}, f.Data)
		}
	}
}

func TestLoad_ParsesFiles(t *testing.T) {
	t.Parallel()

	tree := testutil.NewContentTree(t)
	tree.Habits("en", testutil.ValidHabit("walk", "en"))
	tree.Locale("en", map[string]string{"app.title": "Habits"})

	snap, err := NewLoader(tree.Root, DefaultLayout(), WithMaxParallel(2)).Load(context.Background())
	require.NoError(t, err)

	habits := snap.FilesFor(TypeHabit, "en")
	require.Len(t, habits, 1)
	assert.True(t, habits[0].Exists)
	assert.Equal(t, "habits/en.json", habits[0].Path)

	list, ok := habits[0].Data.([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	rec := list[0].(map[string]any)
	assert.Equal(t, json.Number("5"), rec["timeMinutes"])

	locales := snap.FilesFor(TypeLocale, "en")
	require.Len(t, locales, 1)
	assert.Equal(t, map[string]any{"app.title": "Habits"}, locales[0].Data)
}

func TestLoad_MalformedJSON(t *testing.T) {
	t.Parallel()

	tree := testutil.NewContentTree(t)
	tree.WriteRaw("habits/en.json", `[{"id": "walk",}]`)

	snap, err := NewLoader(tree.Root, DefaultLayout()).Load(context.Background())
	require.NoError(t, err)

	f := snap.FilesFor(TypeHabit, "en")[0]
	assert.True(t, f.Exists)
	require.Error(t, f.ParseErr)
	assert.Contains(t, f.ParseErr.Error(), "line 1")
	assert.Equal(t, []any{}, f.Data)
}

func TestLoad_GlobLayout(t *testing.T) {
	t.Parallel()

	tree := testutil.NewContentTree(t)
	tree.WriteJSON("habits/en/sleep.json", []any{testutil.ValidHabit("a", "en")})
	tree.WriteJSON("habits/en/focus.json", []any{testutil.ValidHabit("b", "en")})

	layout := DefaultLayout()
	layout[TypeHabit] = "habits/{lang}/*.json"

	snap, err := NewLoader(tree.Root, layout).Load(context.Background())
	require.NoError(t, err)

	files := snap.FilesFor(TypeHabit, "en")
	require.Len(t, files, 2)
	assert.Equal(t, "habits/en/focus.json", files[0].Path)
	assert.Equal(t, "habits/en/sleep.json", files[1].Path)

	// No match for other languages: one absent placeholder each.
	es := snap.FilesFor(TypeHabit, "es")
	require.Len(t, es, 1)
	assert.False(t, es[0].Exists)
	assert.Equal(t, "habits/es/*.json", es[0].Path)
}

func TestLoad_CancelledContext(t *testing.T) {
	t.Parallel()

	tree := testutil.NewContentTree(t)
	tree.Habits("en", testutil.ValidHabit("walk", "en"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(tree.Root, DefaultLayout()).Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		wantErr string
		want    any
	}{
		"object": {
			input: `{"a": "b"}`,
			want:  map[string]any{"a": "b"},
		},
		"byte order mark": {
			input: "\xEF\xBB\xBF[]",
			want:  []any{},
		},
		"empty": {
			input:   "  \n",
			wantErr: "file is empty",
		},
		"trailing data": {
			input:   `[] []`,
			wantErr: "unexpected data",
		},
		"truncated": {
			input:   `[{"a": 1}`,
			wantErr: "unexpected end",
		},
		"syntax error on second line": {
			input:   "[\n  1,,\n]",
			wantErr: "line 2",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode([]byte(tc.input))
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLayout_Validate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate  func(Layout)
		wantErr string
	}{
		"default is valid": {
			mutate: func(Layout) {},
		},
		"missing placeholder": {
			mutate:  func(l Layout) { l[TypeHabit] = "habits.json" },
			wantErr: "must contain {lang}",
		},
		"missing type": {
			mutate:  func(l Layout) { delete(l, TypeLocale) },
			wantErr: "missing pattern for locale",
		},
		"escapes root": {
			mutate:  func(l Layout) { l[TypeGoal] = "../goals/{lang}.json" },
			wantErr: "relative to the content root",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			layout := DefaultLayout()
			tc.mutate(layout)
			err := layout.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParseType(t *testing.T) {
	t.Parallel()

	got, err := ParseType("Research")
	require.NoError(t, err)
	assert.Equal(t, TypeResearch, got)

	_, err = ParseType("video")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "habit, research, goal, locale")
}
