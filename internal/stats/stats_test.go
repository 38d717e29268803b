// Package stats_test tests statistics computed over content snapshots.
// Related: internal/stats/stats.go
// Tags: stats, counts, categories, evidence
package stats

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/contentlint/internal/content"
	"github.com/ariel-frischer/contentlint/internal/testutil"
)

func loadTree(t *testing.T, tree *testutil.ContentTree) *content.Snapshot {
	t.Helper()
	snap, err := content.NewLoader(tree.Root, content.DefaultLayout()).Load(context.Background())
	require.NoError(t, err)
	return snap
}

func TestCompute(t *testing.T) {
	t.Parallel()

	tree := testutil.NewContentTree(t)
	tree.Habits("en",
		testutil.ValidHabit("a", "en", testutil.With("researchBacked", true)),
		testutil.ValidHabit("b", "en", testutil.With("category", "exercise")),
		testutil.ValidHabit("c", "en"),
		testutil.ValidHabit("d", "en", testutil.With("category", "exercise")),
	)
	tree.Habits("es", testutil.ValidHabit("a", "es", testutil.With("category", "health")))
	tree.Research("en",
		testutil.ValidResearch("r1", "en", 2024),
		testutil.ValidResearch("r2", "en", 2024, testutil.With("evidenceLevel", "rct"), testutil.With("qualityScore", 75)),
		testutil.ValidResearch("r3", "en", 2024, testutil.With("evidenceLevel", "rct"), testutil.With("qualityScore", 70)),
	)
	tree.Goals("en", testutil.ValidGoal("g", "en", []string{"a"}))
	tree.Locale("en", map[string]string{"$schema": "x", "a": "A", "b": "B"})
	tree.Locale("fr", map[string]string{"a": "A"})

	s := Compute(loadTree(t, tree))

	require.Len(t, s.Languages, len(content.Languages))
	assert.Equal(t, LanguageStats{Language: "en", Habits: 4, Research: 3, Goals: 1, LocaleKeys: 2}, s.Languages[0])
	assert.Equal(t, LanguageStats{Language: "es", Habits: 1}, s.Languages[1])
	assert.Equal(t, LanguageStats{Language: "fr", LocaleKeys: 1}, s.Languages[2])
	assert.Equal(t, LanguageStats{Language: "de"}, s.Languages[3])

	assert.Equal(t, map[string]int{"sleep": 2, "exercise": 2}, s.Categories)
	assert.Equal(t, map[string]int{"systematic_review": 1, "rct": 2}, s.EvidenceLevels)
	assert.Equal(t, 78.3, s.AverageQuality)
	assert.Equal(t, 25.0, s.ResearchBackedShare)
}

func TestCompute_EmptyTree(t *testing.T) {
	t.Parallel()

	s := Compute(loadTree(t, testutil.NewContentTree(t)))

	assert.Len(t, s.Languages, len(content.Languages))
	assert.Empty(t, s.Categories)
	assert.Zero(t, s.AverageQuality)
	assert.Zero(t, s.ResearchBackedShare)
}

func TestCompute_SkipsMalformedFiles(t *testing.T) {
	t.Parallel()

	tree := testutil.NewContentTree(t)
	tree.WriteRaw("habits/en.json", "{")
	tree.WriteJSON("research/en.json", map[string]any{"id": "not-a-list"})

	s := Compute(loadTree(t, tree))
	assert.Zero(t, s.Languages[0].Habits)
	assert.Zero(t, s.Languages[0].Research)
}

func TestPrint(t *testing.T) {
	t.Parallel()

	tree := testutil.NewContentTree(t)
	tree.CompleteLanguage("en", 2026)

	var buf bytes.Buffer
	Print(&buf, Compute(loadTree(t, tree)))
	out := buf.String()

	assert.Contains(t, out, "Content by language")
	assert.Contains(t, out, "systematic review")
	assert.Contains(t, out, "Average quality score: 90.0")
	assert.Contains(t, out, "Research-backed habits: 100.0%")
}
