// Package content describes the on-disk content dataset (habits, research citations,
// goals and locale maps) and loads it into an in-memory snapshot.
package content

import (
	"fmt"
	"strings"
)

// Type identifies a content type in the dataset.
type Type string

const (
	// TypeHabit is the habit recommendation record list.
	TypeHabit Type = "habit"
	// TypeResearch is the research citation record list.
	TypeResearch Type = "research"
	// TypeGoal is the goal record list with prioritized habit recommendations.
	TypeGoal Type = "goal"
	// TypeLocale is the flat key -> translated string map.
	TypeLocale Type = "locale"
)

// Types lists every content type in processing order.
var Types = []Type{TypeHabit, TypeResearch, TypeGoal, TypeLocale}

// Languages lists the supported language codes. The first entry is the baseline
// language that translation completeness is measured against.
var Languages = []string{"en", "es", "fr", "de"}

// Categories lists the valid habit, research and goal categories.
var Categories = []string{"sleep", "productivity", "health", "mindfulness", "nutrition", "exercise"}

// BaselineLanguage returns the language other translations are compared to.
func BaselineLanguage() string {
	return Languages[0]
}

// IsSupportedLanguage reports whether lang is one of Languages.
func IsSupportedLanguage(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// IsRecordList reports whether files of this type hold an array of records.
func (t Type) IsRecordList() bool {
	return t != TypeLocale
}

// ParseType converts a string to a Type.
func ParseType(s string) (Type, error) {
	for _, t := range Types {
		if string(t) == strings.ToLower(s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid content type %q: valid types are %s", s, strings.Join(TypeNames(), ", "))
}

// TypeNames returns the content type names as strings.
func TypeNames() []string {
	names := make([]string, len(Types))
	for i, t := range Types {
		names[i] = string(t)
	}
	return names
}

// EmptyValue returns the value used in place of a file that is absent or unreadable:
// an empty array for record lists and an empty object for locale maps.
func EmptyValue(t Type) any {
	if t.IsRecordList() {
		return []any{}
	}
	return map[string]any{}
}
