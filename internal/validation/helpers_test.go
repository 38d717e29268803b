package validation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ariel-frischer/contentlint/internal/content"
	"github.com/stretchr/testify/require"
)

// testNow is the fixed clock used by validation tests.
var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

// decodedFile builds an existing content file whose data is v round-tripped through
// the loader's JSON decoding, so numbers are json.Number as in a real run.
func decodedFile(t *testing.T, typ content.Type, lang, path string, v any) *content.File {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	data, err := content.Decode(raw)
	require.NoError(t, err)

	return &content.File{Type: typ, Language: lang, Path: path, Exists: true, Data: data}
}

// withCode filters issues by code.
func withCode(issues []Issue, code Code) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Code == code {
			out = append(out, i)
		}
	}
	return out
}

// errorsOf filters issues to errors.
func errorsOf(issues []Issue) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.IsError() {
			out = append(out, i)
		}
	}
	return out
}
