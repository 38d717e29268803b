package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocation_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		loc  Location
		want string
	}{
		"file only":    {loc: Location{File: "habits/en.json", Index: NoIndex}, want: "habits/en.json"},
		"record":       {loc: Location{File: "habits/en.json", Index: 3}, want: "habits/en.json[3]"},
		"record field": {loc: Location{File: "habits/en.json", Index: 0, Field: "sources[2]"}, want: "habits/en.json[0].sources[2]"},
		"locale key":   {loc: Location{File: "locales/de.json", Index: NoIndex, Field: "app.title"}, want: "locales/de.json.app.title"},
		"empty":        {loc: Location{Index: NoIndex}, want: ""},
		"no file":      {loc: Location{Index: NoIndex, Field: "id"}, want: "id"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.loc.String())
		})
	}
}

func TestIssue_String(t *testing.T) {
	t.Parallel()

	i := newError(CodeStructural, recordLocation("habits/en.json", 1, "title"), "missing required field: %s", "title")
	assert.Equal(t, "habits/en.json[1].title: missing required field: title", i.String())
	assert.True(t, i.IsError())

	w := newWarning(CodeQuality, Location{Index: NoIndex}, "bare")
	assert.Equal(t, "bare", w.String())
	assert.False(t, w.IsError())
}

func TestSortIssues(t *testing.T) {
	t.Parallel()

	issues := []Issue{
		{Message: "b1", Location: Location{File: "b.json", Index: 1}},
		{Message: "a2", Location: Location{File: "a.json", Index: 2}},
		{Message: "a-file", Location: Location{File: "a.json", Index: NoIndex}},
		{Message: "a2-second", Location: Location{File: "a.json", Index: 2}},
		{Message: "a0", Location: Location{File: "a.json", Index: 0}},
	}
	SortIssues(issues)

	var got []string
	for _, i := range issues {
		got = append(got, i.Message)
	}
	assert.Equal(t, []string{"a-file", "a0", "a2", "a2-second", "b1"}, got)
}

func TestCountBySeverity(t *testing.T) {
	t.Parallel()

	errs, warnings := CountBySeverity([]Issue{
		{Severity: SeverityError},
		{Severity: SeverityWarning},
		{Severity: SeverityWarning},
	})
	assert.Equal(t, 1, errs)
	assert.Equal(t, 2, warnings)

	errs, warnings = CountBySeverity(nil)
	assert.Zero(t, errs)
	assert.Zero(t, warnings)
}
