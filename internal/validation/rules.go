package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ariel-frischer/contentlint/internal/content"
)

// Minimum qualityScore expected for each evidence level.
var minQualityByEvidence = map[string]int64{
	"systematic_review": 80,
	"rct":               70,
	"observational":     60,
	"case_study":        40,
}

var strictDOI = regexp.MustCompile(`^10\.\d{4,}/[-._;()/:A-Za-z0-9]+$`)

// Placeholder markers. Tokens match as uppercase substrings, phrases match in any case.
var (
	placeholderTokens  = []string{"TODO", "FIXME", "TBD"}
	placeholderPhrases = []string{"placeholder", "lorem ipsum"}
)

const (
	maxResearchAgeYears   = 10
	shortTitleThreshold   = 10
	longBeginnerMinutes   = 60
	minStructuralTitleLen = 5
)

// RuleValidator applies domain rules beyond the structural shape of records.
type RuleValidator struct {
	now time.Time
}

// NewRuleValidator creates a rule validator for a run started at now.
func NewRuleValidator(now time.Time) *RuleValidator {
	return &RuleValidator{now: now}
}

// record is an object element of a record-list file with its position.
type record struct {
	index  int
	fields map[string]any
}

// records returns the object elements of a record-list file. Non-object elements
// are reported by the structural validator and skipped here.
func records(f *content.File) []record {
	list, ok := f.Data.([]any)
	if !ok {
		return nil
	}
	out := make([]record, 0, len(list))
	for i, elem := range list {
		if obj, ok := elem.(map[string]any); ok {
			out = append(out, record{index: i, fields: obj})
		}
	}
	return out
}

// ValidateFile applies per-record rules to one file.
func (v *RuleValidator) ValidateFile(f *content.File) []Issue {
	if !f.Exists || f.ParseErr != nil || !f.Type.IsRecordList() {
		return nil
	}

	var issues []Issue
	for _, rec := range records(f) {
		issues = append(issues, v.checkLanguage(f, rec)...)
		switch f.Type {
		case content.TypeHabit:
			issues = append(issues, v.checkHabit(f, rec)...)
		case content.TypeResearch:
			issues = append(issues, v.checkResearch(f, rec)...)
		case content.TypeGoal:
			issues = append(issues, checkGoal(f, rec)...)
		}
	}
	return issues
}

// checkLanguage warns when a record's language differs from its file's language.
func (v *RuleValidator) checkLanguage(f *content.File, rec record) []Issue {
	lang, ok := stringField(rec.fields, "language")
	if !ok || lang == f.Language {
		return nil
	}
	return []Issue{{
		Severity: SeverityWarning,
		Code:     CodeLanguageMismatch,
		Location: recordLocation(f.Path, rec.index, "language"),
		Message:  fmt.Sprintf("record language '%s' does not match file language '%s'", lang, f.Language),
		Expected: f.Language,
		Actual:   lang,
	}}
}

func (v *RuleValidator) checkHabit(f *content.File, rec record) []Issue {
	var issues []Issue

	if backed, ok := boolField(rec.fields, "researchBacked"); ok && backed {
		sources, _ := listField(rec.fields, "sources")
		if len(sources) == 0 {
			issues = append(issues, newWarning(CodeQuality, recordLocation(f.Path, rec.index, "sources"),
				"habit is marked researchBacked but lists no sources"))
		}
	}

	minutes, okMinutes := intField(rec.fields, "timeMinutes")
	difficulty, okDifficulty := stringField(rec.fields, "difficulty")
	if okMinutes && okDifficulty && minutes > longBeginnerMinutes && difficulty == "beginner" {
		issues = append(issues, newWarning(CodeQuality, recordLocation(f.Path, rec.index, "timeMinutes"),
			"beginner habit takes %d minutes; consider intermediate difficulty or a shorter duration", minutes))
	}

	if title, ok := stringField(rec.fields, "title"); ok {
		n := utf8.RuneCountInString(title)
		if n >= minStructuralTitleLen && n < shortTitleThreshold {
			issues = append(issues, newWarning(CodeQuality, recordLocation(f.Path, rec.index, "title"),
				"title is short (%d characters); aim for at least %d", n, shortTitleThreshold))
		}
	}

	issues = append(issues, checkPlaceholder(f, rec, "description")...)
	return issues
}

func (v *RuleValidator) checkResearch(f *content.File, rec record) []Issue {
	var issues []Issue

	if doi, ok := stringField(rec.fields, "doi"); ok && strings.HasPrefix(doi, "10.") && !strictDOI.MatchString(doi) {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Code:     CodeQuality,
			Location: recordLocation(f.Path, rec.index, "doi"),
			Message:  "doi does not look like a registered DOI",
			Expected: strictDOI.String(),
			Actual:   fmt.Sprintf("'%s'", doi),
		})
	}

	level, okLevel := stringField(rec.fields, "evidenceLevel")
	score, okScore := intField(rec.fields, "qualityScore")
	if okLevel && okScore {
		if minScore, known := minQualityByEvidence[level]; known && score < minScore {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Code:     CodeQuality,
				Location: recordLocation(f.Path, rec.index, "qualityScore"),
				Message:  fmt.Sprintf("qualityScore %d is below the expected minimum %d for evidence level %s", score, minScore, level),
				Expected: fmt.Sprintf(">= %d", minScore),
				Actual:   fmt.Sprintf("%d", score),
			})
		}
	}

	if year, ok := intField(rec.fields, "year"); ok {
		if age := int64(v.now.Year()) - year; age > maxResearchAgeYears {
			issues = append(issues, newWarning(CodeQuality, recordLocation(f.Path, rec.index, "year"),
				"research is %d years old; consider citing more recent work", age))
		}
	}

	issues = append(issues, checkPlaceholder(f, rec, "summary")...)
	return issues
}

// checkPlaceholder reports placeholder text in a user-facing field as an error.
func checkPlaceholder(f *content.File, rec record, field string) []Issue {
	text, ok := stringField(rec.fields, field)
	if !ok {
		return nil
	}
	marker, found := findPlaceholder(text)
	if !found {
		return nil
	}
	return []Issue{newError(CodePlaceholder, recordLocation(f.Path, rec.index, field),
		"%s contains placeholder text %q", field, marker)}
}

// findPlaceholder returns the first placeholder marker found in text.
func findPlaceholder(text string) (string, bool) {
	for _, token := range placeholderTokens {
		if strings.Contains(text, token) {
			return token, true
		}
	}
	lower := strings.ToLower(text)
	for _, phrase := range placeholderPhrases {
		if strings.Contains(lower, phrase) {
			return phrase, true
		}
	}
	return "", false
}

// ValidateDuplicates reports each ID that appears more than once across the given
// files, which must share one type and language. The error is reported once per
// duplicated ID, at its second occurrence.
func ValidateDuplicates(files []*content.File) []Issue {
	type firstSeen struct {
		file  string
		index int
	}
	seen := make(map[string]firstSeen)
	reported := make(map[string]bool)

	var issues []Issue
	for _, f := range files {
		if !f.Exists || f.ParseErr != nil || !f.Type.IsRecordList() {
			continue
		}
		for _, rec := range records(f) {
			id, ok := stringField(rec.fields, "id")
			if !ok || id == "" {
				continue
			}
			first, dup := seen[id]
			if !dup {
				seen[id] = firstSeen{file: f.Path, index: rec.index}
				continue
			}
			if reported[id] {
				continue
			}
			reported[id] = true
			issues = append(issues, newError(CodeDuplicateID, recordLocation(f.Path, rec.index, "id"),
				"duplicate %s id '%s' (first defined at %s[%d])", f.Type, id, first.file, first.index))
		}
	}
	return issues
}

func stringField(fields map[string]any, name string) (string, bool) {
	s, ok := fields[name].(string)
	return s, ok
}

func intField(fields map[string]any, name string) (int64, bool) {
	num, ok := fields[name].(json.Number)
	if !ok {
		return 0, false
	}
	n, err := num.Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

func boolField(fields map[string]any, name string) (bool, bool) {
	b, ok := fields[name].(bool)
	return b, ok
}

func listField(fields map[string]any, name string) ([]any, bool) {
	l, ok := fields[name].([]any)
	return l, ok
}
