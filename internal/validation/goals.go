package validation

import (
	"fmt"
	"sort"

	"github.com/ariel-frischer/contentlint/internal/content"
)

// checkGoal applies the recommendation rules of one goal: unique priorities forming
// the sequence 1..n, exactly one primary recommendation, no habit listed twice.
func checkGoal(f *content.File, rec record) []Issue {
	recs, ok := listField(rec.fields, "recommendations")
	if !ok || len(recs) == 0 {
		return nil
	}
	goalID, _ := stringField(rec.fields, "id")

	var issues []Issue
	priorityCount := make(map[int64]int)
	habitCount := make(map[string]int)
	primaries := 0
	entries := 0

	for j, item := range recs {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entries++

		if p, ok := intField(obj, "priority"); ok {
			priorityCount[p]++
			if priorityCount[p] == 2 {
				issues = append(issues, newError(CodePriority,
					recordLocation(f.Path, rec.index, fmt.Sprintf("recommendations[%d].priority", j)),
					"duplicate priority %d in goal '%s'", p, goalID))
			}
		}

		if h, ok := stringField(obj, "habitId"); ok {
			habitCount[h]++
			if habitCount[h] == 2 {
				issues = append(issues, newWarning(CodePriority,
					recordLocation(f.Path, rec.index, fmt.Sprintf("recommendations[%d].habitId", j)),
					"habit '%s' is recommended more than once in goal '%s'", h, goalID))
			}
		}

		if primary, ok := boolField(obj, "isPrimary"); ok && primary {
			primaries++
		}
	}

	if entries == 0 {
		return issues
	}

	loc := recordLocation(f.Path, rec.index, "recommendations")
	switch {
	case primaries == 0:
		issues = append(issues, newWarning(CodePrimary, loc, "goal '%s' has no primary recommendation", goalID))
	case primaries > 1:
		issues = append(issues, newError(CodePrimary, loc,
			"goal '%s' has %d primary recommendations; exactly one is allowed", goalID, primaries))
	}

	if !hasDuplicates(priorityCount) && len(priorityCount) > 0 && !isSequence(priorityCount) {
		issues = append(issues, newWarning(CodePriority, loc,
			"priorities in goal '%s' should form the sequence 1..%d", goalID, len(priorityCount)))
	}

	return issues
}

func hasDuplicates(counts map[int64]int) bool {
	for _, c := range counts {
		if c > 1 {
			return true
		}
	}
	return false
}

// isSequence reports whether the keys are exactly 1..len(counts).
func isSequence(counts map[int64]int) bool {
	keys := make([]int64, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for i, k := range keys {
		if k != int64(i+1) {
			return false
		}
	}
	return true
}
