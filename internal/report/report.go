// Package report turns a validation result into the persisted validation report,
// the console summary and optional textfile metrics.
package report

import (
	"time"

	"github.com/ariel-frischer/contentlint/internal/validation"
)

// Report is the immutable outcome of one validation run.
type Report struct {
	Timestamp  string             `json:"timestamp" yaml:"timestamp"`
	DurationMs int64              `json:"durationMs" yaml:"durationMs"`
	Passed     bool               `json:"passed" yaml:"passed"`
	Summary    Summary            `json:"summary" yaml:"summary"`
	Errors     []validation.Issue `json:"errors" yaml:"errors"`
	Warnings   []validation.Issue `json:"warnings" yaml:"warnings"`
}

// Summary holds the counts of a run.
type Summary struct {
	FilesValidated int            `json:"filesValidated" yaml:"filesValidated"`
	FilesMissing   int            `json:"filesMissing" yaml:"filesMissing"`
	Errors         int            `json:"errors" yaml:"errors"`
	Warnings       int            `json:"warnings" yaml:"warnings"`
	ByCode         map[string]int `json:"byCode" yaml:"byCode"`
}

// New builds the report for a validation result. Issue order is preserved, so the
// result's sorted order carries over into the report.
func New(res *validation.Result) *Report {
	r := &Report{
		Timestamp:  res.StartedAt.UTC().Format(time.RFC3339),
		DurationMs: res.Duration.Milliseconds(),
		Passed:     res.Passed(),
		Errors:     []validation.Issue{},
		Warnings:   []validation.Issue{},
		Summary:    Summary{ByCode: make(map[string]int)},
	}

	if res.Snapshot != nil {
		for _, f := range res.Snapshot.Files {
			if f.Exists {
				r.Summary.FilesValidated++
			} else {
				r.Summary.FilesMissing++
			}
		}
	}

	for _, i := range res.Issues {
		if i.IsError() {
			r.Errors = append(r.Errors, i)
		} else {
			r.Warnings = append(r.Warnings, i)
		}
		r.Summary.ByCode[string(i.Code)]++
	}
	r.Summary.Errors = len(r.Errors)
	r.Summary.Warnings = len(r.Warnings)

	return r
}
