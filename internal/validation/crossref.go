package validation

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/contentlint/internal/content"
)

// DefaultMissingPreview is the number of missing IDs named in a completeness warning.
const DefaultMissingPreview = 5

// CrossReferenceValidator checks references between records and translation
// completeness against the baseline language.
type CrossReferenceValidator struct {
	missingPreview int
}

// NewCrossReferenceValidator creates a validator that names at most missingPreview
// IDs per completeness warning.
func NewCrossReferenceValidator(missingPreview int) *CrossReferenceValidator {
	if missingPreview <= 0 {
		missingPreview = DefaultMissingPreview
	}
	return &CrossReferenceValidator{missingPreview: missingPreview}
}

// Validate runs every cross-file check over the snapshot.
func (v *CrossReferenceValidator) Validate(snap *content.Snapshot) []Issue {
	var issues []Issue
	issues = append(issues, v.checkHabitSources(snap)...)
	issues = append(issues, v.checkGoalReferences(snap)...)
	issues = append(issues, v.checkCompleteness(snap)...)
	return issues
}

// checkHabitSources warns about habit sources that match no research ID in any
// language. References across languages are accepted since translations may lag.
func (v *CrossReferenceValidator) checkHabitSources(snap *content.Snapshot) []Issue {
	known := make(map[string]bool)
	for _, f := range snap.FilesOfType(content.TypeResearch) {
		for _, rec := range records(f) {
			if id, ok := stringField(rec.fields, "id"); ok {
				known[id] = true
			}
		}
	}

	var issues []Issue
	for _, f := range snap.FilesOfType(content.TypeHabit) {
		for _, rec := range records(f) {
			sources, _ := listField(rec.fields, "sources")
			for j, s := range sources {
				ref, ok := s.(string)
				if !ok || known[ref] {
					continue
				}
				issues = append(issues, newWarning(CodeCrossReference,
					recordLocation(f.Path, rec.index, fmt.Sprintf("sources[%d]", j)),
					"source '%s' does not match any research id", ref))
			}
		}
	}
	return issues
}

// checkGoalReferences warns about goal recommendations whose habit is missing from
// the goal's language, or whose habit belongs to a different category.
func (v *CrossReferenceValidator) checkGoalReferences(snap *content.Snapshot) []Issue {
	var issues []Issue

	for _, lang := range content.Languages {
		habitCategory := make(map[string]string)
		for _, f := range snap.FilesFor(content.TypeHabit, lang) {
			for _, rec := range records(f) {
				id, ok := stringField(rec.fields, "id")
				if !ok {
					continue
				}
				category, _ := stringField(rec.fields, "category")
				habitCategory[id] = category
			}
		}

		for _, f := range snap.FilesFor(content.TypeGoal, lang) {
			for _, rec := range records(f) {
				goalCategory, _ := stringField(rec.fields, "category")
				recs, _ := listField(rec.fields, "recommendations")
				for j, item := range recs {
					obj, ok := item.(map[string]any)
					if !ok {
						continue
					}
					habitID, ok := stringField(obj, "habitId")
					if !ok {
						continue
					}
					loc := recordLocation(f.Path, rec.index, fmt.Sprintf("recommendations[%d].habitId", j))

					category, exists := habitCategory[habitID]
					if !exists {
						issues = append(issues, newWarning(CodeCrossReference, loc,
							"recommended habit '%s' does not exist in language '%s'", habitID, lang))
						continue
					}
					if goalCategory != "" && category != "" && category != goalCategory {
						issues = append(issues, Issue{
							Severity: SeverityWarning,
							Code:     CodeCategoryMismatch,
							Location: loc,
							Message:  fmt.Sprintf("recommended habit '%s' has category '%s' but the goal is '%s'", habitID, category, goalCategory),
							Expected: goalCategory,
							Actual:   category,
						})
					}
				}
			}
		}
	}
	return issues
}

// checkCompleteness compares every non-baseline language against the baseline:
// record IDs for record types, keys for locale maps.
func (v *CrossReferenceValidator) checkCompleteness(snap *content.Snapshot) []Issue {
	baseline := content.BaselineLanguage()
	var issues []Issue

	for _, t := range content.Types {
		baseIDs := collectIDs(snap.FilesFor(t, baseline))
		if len(baseIDs) == 0 {
			continue
		}

		for _, lang := range content.Languages[1:] {
			files := snap.FilesFor(t, lang)
			if len(files) == 0 {
				// Not part of this snapshot; the loader adds a placeholder for absent files.
				continue
			}
			present := make(map[string]bool)
			for _, id := range collectIDs(files) {
				present[id] = true
			}

			var missing []string
			for _, id := range baseIDs {
				if !present[id] {
					missing = append(missing, id)
				}
			}
			if len(missing) == 0 {
				continue
			}

			noun := "id(s)"
			if t == content.TypeLocale {
				noun = "key(s)"
			}
			issues = append(issues, newWarning(CodeTranslation, fileLocation(firstPath(files)),
				"%d %s %s present in '%s' are missing from '%s': %s",
				len(missing), t, noun, baseline, lang, v.preview(missing)))
		}
	}
	return issues
}

// preview lists the first missing IDs and counts the remainder.
func (v *CrossReferenceValidator) preview(ids []string) string {
	if len(ids) <= v.missingPreview {
		return strings.Join(ids, ", ")
	}
	return fmt.Sprintf("%s (and %d more)", strings.Join(ids[:v.missingPreview], ", "), len(ids)-v.missingPreview)
}

// collectIDs returns unique record IDs (or locale keys) in file order. Locale keys
// are sorted since JSON object order is not preserved.
func collectIDs(files []*content.File) []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, f := range files {
		if f.Type.IsRecordList() {
			for _, rec := range records(f) {
				if id, ok := stringField(rec.fields, "id"); ok {
					add(id)
				}
			}
			continue
		}
		m, ok := f.Data.(map[string]any)
		if !ok {
			continue
		}
		for _, key := range sortedKeys(m) {
			if !strings.HasPrefix(key, "$") {
				add(key)
			}
		}
	}
	return ids
}

func firstPath(files []*content.File) string {
	if len(files) == 0 {
		return ""
	}
	return files[0].Path
}
