package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Severity classifies an issue. Errors block a passing run; warnings never do.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code is a stable machine-readable issue category.
type Code string

const (
	CodeStructural       Code = "structural"
	CodeParse            Code = "parse"
	CodeMissingFile      Code = "missing_file"
	CodeDuplicateID      Code = "duplicate_id"
	CodePlaceholder      Code = "placeholder"
	CodeLanguageMismatch Code = "language_mismatch"
	CodeQuality          Code = "quality"
	CodeCrossReference   Code = "cross_reference"
	CodeTranslation      Code = "translation"
	CodePriority         Code = "priority"
	CodePrimary          Code = "primary"
	CodeCategoryMismatch Code = "category_mismatch"
)

// NoIndex marks a location that refers to a whole file rather than one record.
const NoIndex = -1

// Location identifies where an issue was found.
type Location struct {
	File  string `json:"file,omitempty" yaml:"file,omitempty"`   // Slash-separated path relative to the content root
	Index int    `json:"index" yaml:"index"`                     // Record index in the file, or NoIndex
	Field string `json:"field,omitempty" yaml:"field,omitempty"` // Field path (e.g., "sources[2]") or locale key
}

// String renders the location as file[index].field.
func (l Location) String() string {
	var sb strings.Builder
	sb.WriteString(l.File)
	if l.Index >= 0 {
		sb.WriteString(fmt.Sprintf("[%d]", l.Index))
	}
	if l.Field != "" {
		if sb.Len() > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(l.Field)
	}
	return sb.String()
}

// Issue is a single validation finding.
type Issue struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Code     Code     `json:"code" yaml:"code"`
	Message  string   `json:"message" yaml:"message"`
	Location Location `json:"location" yaml:"location"`
	Expected string   `json:"expected,omitempty" yaml:"expected,omitempty"` // What was expected (type, range, format)
	Actual   string   `json:"actual,omitempty" yaml:"actual,omitempty"`     // What was found
}

// String returns "location: message".
func (i Issue) String() string {
	loc := i.Location.String()
	if loc == "" {
		return i.Message
	}
	return loc + ": " + i.Message
}

// IsError reports whether the issue blocks a passing run.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError
}

func newError(code Code, loc Location, format string, args ...any) Issue {
	return Issue{Severity: SeverityError, Code: code, Location: loc, Message: fmt.Sprintf(format, args...)}
}

func newWarning(code Code, loc Location, format string, args ...any) Issue {
	return Issue{Severity: SeverityWarning, Code: code, Location: loc, Message: fmt.Sprintf(format, args...)}
}

func fileLocation(path string) Location {
	return Location{File: path, Index: NoIndex}
}

func recordLocation(path string, index int, field string) Location {
	return Location{File: path, Index: index, Field: field}
}

// SortIssues orders issues by file path, then record index. The sort is stable so
// issues at the same location keep the order they were produced in.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i].Location, issues[j].Location
		if a.File != b.File {
			return a.File < b.File
		}
		return a.Index < b.Index
	})
}

// CountBySeverity returns the number of errors and warnings.
func CountBySeverity(issues []Issue) (errs, warnings int) {
	for _, i := range issues {
		if i.IsError() {
			errs++
		} else {
			warnings++
		}
	}
	return errs, warnings
}
