// Package stats computes the informational statistics report over a content
// snapshot. It never judges content; validation does that.
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/ariel-frischer/contentlint/internal/content"
	"github.com/ariel-frischer/contentlint/internal/validation"
)

// Stats is the statistics report.
type Stats struct {
	Languages []LanguageStats `json:"languages" yaml:"languages"`
	// Categories counts baseline-language habits per category.
	Categories map[string]int `json:"categories" yaml:"categories"`
	// EvidenceLevels counts baseline-language research per evidence level.
	EvidenceLevels map[string]int `json:"evidenceLevels" yaml:"evidenceLevels"`
	// AverageQuality is the mean baseline qualityScore, rounded to one decimal.
	AverageQuality float64 `json:"averageQuality" yaml:"averageQuality"`
	// ResearchBackedShare is the percentage of baseline habits flagged researchBacked.
	ResearchBackedShare float64 `json:"researchBackedShare" yaml:"researchBackedShare"`
}

// LanguageStats holds the record counts of one language.
type LanguageStats struct {
	Language   string `json:"language" yaml:"language"`
	Habits     int    `json:"habits" yaml:"habits"`
	Research   int    `json:"research" yaml:"research"`
	Goals      int    `json:"goals" yaml:"goals"`
	LocaleKeys int    `json:"localeKeys" yaml:"localeKeys"`
}

// Compute derives statistics from a loaded snapshot. Category, evidence and
// quality figures use the baseline language so translations are not counted twice.
func Compute(snap *content.Snapshot) *Stats {
	s := &Stats{
		Categories:     make(map[string]int),
		EvidenceLevels: make(map[string]int),
	}

	for _, lang := range content.Languages {
		s.Languages = append(s.Languages, LanguageStats{
			Language:   lang,
			Habits:     countRecords(snap.FilesFor(content.TypeHabit, lang)),
			Research:   countRecords(snap.FilesFor(content.TypeResearch, lang)),
			Goals:      countRecords(snap.FilesFor(content.TypeGoal, lang)),
			LocaleKeys: countKeys(snap.FilesFor(content.TypeLocale, lang)),
		})
	}

	baseline := content.BaselineLanguage()

	habits, backed := 0, 0
	for _, obj := range objects(snap.FilesFor(content.TypeHabit, baseline)) {
		habits++
		if c, ok := obj["category"].(string); ok {
			s.Categories[c]++
		}
		if b, ok := obj["researchBacked"].(bool); ok && b {
			backed++
		}
	}
	if habits > 0 {
		s.ResearchBackedShare = round1(float64(backed) * 100 / float64(habits))
	}

	scored, total := 0, 0.0
	for _, obj := range objects(snap.FilesFor(content.TypeResearch, baseline)) {
		if level, ok := obj["evidenceLevel"].(string); ok {
			s.EvidenceLevels[level]++
		}
		if n, ok := obj["qualityScore"].(json.Number); ok {
			if f, err := n.Float64(); err == nil {
				scored++
				total += f
			}
		}
	}
	if scored > 0 {
		s.AverageQuality = round1(total / float64(scored))
	}

	return s
}

// Print writes the statistics as console tables.
func Print(out io.Writer, s *Stats) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	fmt.Fprintln(out, cyan("Content by language"))
	fmt.Fprintf(out, "  %-8s %7s %9s %6s %12s\n", "language", "habits", "research", "goals", "locale keys")
	for _, l := range s.Languages {
		fmt.Fprintf(out, "  %-8s %7d %9d %6d %12d\n", l.Language, l.Habits, l.Research, l.Goals, l.LocaleKeys)
	}

	fmt.Fprintf(out, "\n%s\n", cyan("Habits by category"))
	for _, c := range content.Categories {
		fmt.Fprintf(out, "  %-14s %d\n", c, s.Categories[c])
	}

	fmt.Fprintf(out, "\n%s\n", cyan("Research by evidence level"))
	for _, level := range validation.EvidenceLevels {
		fmt.Fprintf(out, "  %-18s %d\n", strings.ReplaceAll(level, "_", " "), s.EvidenceLevels[level])
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Average quality score: %.1f\n", s.AverageQuality)
	fmt.Fprintf(out, "Research-backed habits: %.1f%%\n", s.ResearchBackedShare)
}

func countRecords(files []*content.File) int {
	return len(objects(files))
}

func countKeys(files []*content.File) int {
	n := 0
	for _, f := range files {
		m, ok := f.Data.(map[string]any)
		if !ok {
			continue
		}
		for k := range m {
			if !strings.HasPrefix(k, "$") {
				n++
			}
		}
	}
	return n
}

// objects returns the object records of record-list files.
func objects(files []*content.File) []map[string]any {
	var out []map[string]any
	for _, f := range files {
		list, ok := f.Data.([]any)
		if !ok {
			continue
		}
		for _, elem := range list {
			if obj, ok := elem.(map[string]any); ok {
				out = append(out, obj)
			}
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
