// Package testutil provides test utilities and helpers for contentlint tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Record is a JSON object used to build habit, research and goal fixtures.
type Record = map[string]any

// RecordOption mutates a fixture record.
type RecordOption func(Record)

// With sets a field on the record.
func With(field string, value any) RecordOption {
	return func(r Record) {
		r[field] = value
	}
}

// Without deletes a field from the record.
func Without(field string) RecordOption {
	return func(r Record) {
		delete(r, field)
	}
}

// ValidHabit returns a habit record that passes every structural and business check.
func ValidHabit(id, lang string, opts ...RecordOption) Record {
	r := Record{
		"id":             id,
		"title":          "Consistent wake-up time",
		"description":    "Wake up at the same time every day, including weekends, to anchor your circadian rhythm.",
		"category":       "sleep",
		"difficulty":     "beginner",
		"timeMinutes":    5,
		"language":       lang,
		"researchBacked": false,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ValidResearch returns a research record that passes every structural and business check
// for the given current year.
func ValidResearch(id, lang string, year int, opts ...RecordOption) Record {
	r := Record{
		"id":            id,
		"title":         "Sleep regularity and health outcomes",
		"summary":       "A systematic review of sleep regularity studies showing consistent sleep timing improves mood and metabolic markers.",
		"authors":       "Smith, J. and Doe, A.",
		"year":          year,
		"journal":       "Sleep Medicine Reviews",
		"doi":           "10.1016/j.smrv.2020.101344",
		"category":      "sleep",
		"evidenceLevel": "systematic_review",
		"qualityScore":  90,
		"language":      lang,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommendation returns a goal recommendation entry.
func Recommendation(habitID string, priority int, primary bool) Record {
	r := Record{
		"habitId":  habitID,
		"priority": priority,
	}
	if primary {
		r["isPrimary"] = true
	}
	return r
}

// ValidGoal returns a goal record recommending the given habits, with the first one primary
// and priorities 1..n.
func ValidGoal(id, lang string, habitIDs []string, opts ...RecordOption) Record {
	recs := make([]any, 0, len(habitIDs))
	for i, h := range habitIDs {
		recs = append(recs, Recommendation(h, i+1, i == 0))
	}
	r := Record{
		"id":              id,
		"title":           "Sleep better",
		"category":        "sleep",
		"language":        lang,
		"recommendations": recs,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ContentTree is a temporary content root populated by tests.
type ContentTree struct {
	t    *testing.T
	Root string
}

// NewContentTree creates an empty content root in a temp directory.
func NewContentTree(t *testing.T) *ContentTree {
	t.Helper()
	return &ContentTree{t: t, Root: t.TempDir()}
}

// WriteJSON marshals v and writes it at the slash-separated path relative to the root.
func (c *ContentTree) WriteJSON(relPath string, v any) string {
	c.t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		c.t.Fatalf("failed to marshal %s: %v", relPath, err)
	}
	return c.WriteRaw(relPath, string(data))
}

// WriteRaw writes raw content at the slash-separated path relative to the root.
func (c *ContentTree) WriteRaw(relPath, content string) string {
	c.t.Helper()

	path := filepath.Join(c.Root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		c.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		c.t.Fatalf("failed to write %s: %v", relPath, err)
	}
	return path
}

// Habits writes the habit list for a language in the default layout.
func (c *ContentTree) Habits(lang string, records ...Record) string {
	c.t.Helper()
	return c.WriteJSON("habits/"+lang+".json", nonNil(records))
}

// Research writes the research list for a language in the default layout.
func (c *ContentTree) Research(lang string, records ...Record) string {
	c.t.Helper()
	return c.WriteJSON("research/"+lang+".json", nonNil(records))
}

// Goals writes the goal list for a language in the default layout.
func (c *ContentTree) Goals(lang string, records ...Record) string {
	c.t.Helper()
	return c.WriteJSON("goals/"+lang+".json", nonNil(records))
}

// Locale writes the locale map for a language in the default layout.
func (c *ContentTree) Locale(lang string, entries map[string]string) string {
	c.t.Helper()
	return c.WriteJSON("locales/"+lang+".json", entries)
}

// CompleteLanguage writes one valid habit, research record, goal and locale map for lang.
func (c *ContentTree) CompleteLanguage(lang string, year int) {
	c.t.Helper()
	c.Habits(lang, ValidHabit("wake-up-same-time", lang, With("researchBacked", true), With("sources", []string{"sleep-regularity-2020"})))
	c.Research(lang, ValidResearch("sleep-regularity-2020", lang, year-2))
	c.Goals(lang, ValidGoal("better-sleep", lang, []string{"wake-up-same-time"}))
	c.Locale(lang, map[string]string{"app.title": "Habits", "nav.home": "Home"})
}

func nonNil(records []Record) []Record {
	if records == nil {
		return []Record{}
	}
	return records
}
