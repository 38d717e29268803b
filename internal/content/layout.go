package content

import (
	"fmt"
	"strings"
)

// LangPlaceholder is replaced by a language code in layout patterns.
const LangPlaceholder = "{lang}"

// Layout maps each content type to a slash-separated path pattern relative to the
// content root. Patterns contain LangPlaceholder and may use doublestar globs, e.g.
// "habits/{lang}/*.json" for per-goal split files.
type Layout map[Type]string

// DefaultLayout returns the standard one-file-per-type-and-language layout.
func DefaultLayout() Layout {
	return Layout{
		TypeHabit:    "habits/{lang}.json",
		TypeResearch: "research/{lang}.json",
		TypeGoal:     "goals/{lang}.json",
		TypeLocale:   "locales/{lang}.json",
	}
}

// Pattern returns the pattern for a type with the language substituted.
func (l Layout) Pattern(t Type, lang string) string {
	return strings.ReplaceAll(l[t], LangPlaceholder, lang)
}

// Validate checks that every content type has a pattern containing LangPlaceholder.
func (l Layout) Validate() error {
	for _, t := range Types {
		pattern, ok := l[t]
		if !ok || pattern == "" {
			return fmt.Errorf("layout: missing pattern for %s", t)
		}
		if !strings.Contains(pattern, LangPlaceholder) {
			return fmt.Errorf("layout: pattern for %s must contain %s: %q", t, LangPlaceholder, pattern)
		}
		if strings.HasPrefix(pattern, "/") || strings.Contains(pattern, "..") {
			return fmt.Errorf("layout: pattern for %s must be relative to the content root: %q", t, pattern)
		}
	}
	return nil
}

// hasGlobMeta reports whether a pattern needs glob expansion.
func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
