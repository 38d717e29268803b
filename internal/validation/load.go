package validation

import (
	"github.com/ariel-frischer/contentlint/internal/content"
)

// LoadIssues reports the outcome of loading each file: a warning for every absent
// file and an error for every file that could not be read or parsed.
func LoadIssues(snap *content.Snapshot) []Issue {
	var issues []Issue
	for _, f := range snap.Files {
		switch {
		case !f.Exists:
			issues = append(issues, newWarning(CodeMissingFile, fileLocation(f.Path),
				"no %s file for language '%s'; treating as empty", f.Type, f.Language))
		case f.ParseErr != nil:
			issues = append(issues, newError(CodeParse, fileLocation(f.Path),
				"failed to parse JSON: %v", f.ParseErr))
		}
	}
	return issues
}
