package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ariel-frischer/contentlint/internal/content"
)

// StructuralValidator applies the schema registry to loaded content.
type StructuralValidator struct {
	registry *Registry
}

// NewStructuralValidator creates a structural validator backed by registry.
func NewStructuralValidator(registry *Registry) *StructuralValidator {
	return &StructuralValidator{registry: registry}
}

// ValidateFile checks one content file against its schema. Absent and unparseable
// files are skipped: there is no content to check.
func (v *StructuralValidator) ValidateFile(f *content.File) []Issue {
	if !f.Exists || f.ParseErr != nil {
		return nil
	}

	schema, err := v.registry.Schema(f.Type)
	if err != nil {
		return []Issue{newError(CodeStructural, fileLocation(f.Path), "%v", err)}
	}

	if f.Type.IsRecordList() {
		return v.validateRecordList(schema, f)
	}
	return v.validateLocaleMap(schema, f)
}

func (v *StructuralValidator) validateRecordList(schema *Schema, f *content.File) []Issue {
	list, ok := f.Data.([]any)
	if !ok {
		return []Issue{{
			Severity: SeverityError,
			Code:     CodeStructural,
			Location: fileLocation(f.Path),
			Message:  fmt.Sprintf("%s file must be an array", f.Type),
			Expected: "array",
			Actual:   jsonTypeName(f.Data),
		}}
	}

	var issues []Issue
	for i, elem := range list {
		obj, ok := elem.(map[string]any)
		if !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     CodeStructural,
				Location: recordLocation(f.Path, i, ""),
				Message:  fmt.Sprintf("%s record must be an object", f.Type),
				Expected: "object",
				Actual:   jsonTypeName(elem),
			})
			continue
		}
		issues = append(issues, v.validateObject(schema.Fields, obj, "", f.Path, i)...)
	}
	return issues
}

// validateObject checks declared fields in schema order, then rejects undeclared
// fields in sorted order so output is stable.
func (v *StructuralValidator) validateObject(fields []SchemaField, obj map[string]any, prefix, file string, index int) []Issue {
	var issues []Issue
	declared := make(map[string]bool, len(fields))

	for _, field := range fields {
		declared[field.Name] = true
		path := joinPath(prefix, field.Name)

		value, present := obj[field.Name]
		if !present {
			if field.Required {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Code:     CodeStructural,
					Location: recordLocation(file, index, path),
					Message:  fmt.Sprintf("missing required field: %s", path),
					Expected: string(field.Type),
				})
			}
			continue
		}
		issues = append(issues, v.validateValue(field, value, path, file, index)...)
	}

	var undeclared []string
	for name := range obj {
		if !declared[name] {
			undeclared = append(undeclared, name)
		}
	}
	sort.Strings(undeclared)
	for _, name := range undeclared {
		path := joinPath(prefix, name)
		issues = append(issues, newError(CodeStructural, recordLocation(file, index, path), "undeclared field: %s", path))
	}

	return issues
}

// validateValue checks a present value against its field. A type mismatch is
// reported once and suppresses the remaining constraint checks for that value.
func (v *StructuralValidator) validateValue(field SchemaField, value any, path, file string, index int) []Issue {
	loc := recordLocation(file, index, path)

	typeErr := func() []Issue {
		return []Issue{{
			Severity: SeverityError,
			Code:     CodeStructural,
			Location: loc,
			Message:  fmt.Sprintf("wrong type for field '%s'", path),
			Expected: string(field.Type),
			Actual:   jsonTypeName(value),
		}}
	}

	switch field.Type {
	case FieldTypeString:
		s, ok := value.(string)
		if !ok {
			return typeErr()
		}
		return v.checkString(field, s, loc)

	case FieldTypeInt:
		num, ok := value.(json.Number)
		if !ok {
			return typeErr()
		}
		n, err := num.Int64()
		if err != nil {
			return []Issue{{
				Severity: SeverityError,
				Code:     CodeStructural,
				Location: loc,
				Message:  fmt.Sprintf("field '%s' must be an integer", path),
				Expected: "integer",
				Actual:   num.String(),
			}}
		}
		return checkRange(field, n, loc)

	case FieldTypeBool:
		if _, ok := value.(bool); !ok {
			return typeErr()
		}
		return nil

	case FieldTypeArray:
		items, ok := value.([]any)
		if !ok {
			return typeErr()
		}
		return v.checkArray(field, items, path, file, index)

	case FieldTypeObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return typeErr()
		}
		return v.validateObject(field.Children, obj, path, file, index)
	}

	return nil
}

func (v *StructuralValidator) checkString(field SchemaField, s string, loc Location) []Issue {
	var issues []Issue
	n := utf8.RuneCountInString(s)

	if field.MinLength > 0 && n < field.MinLength {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     CodeStructural,
			Location: loc,
			Message:  fmt.Sprintf("'%s' is too short: length %d is below minimum %d", loc.Field, n, field.MinLength),
			Expected: fmt.Sprintf("length >= %d", field.MinLength),
			Actual:   fmt.Sprintf("%d", n),
		})
	}
	if field.MaxLength > 0 && n > field.MaxLength {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     CodeStructural,
			Location: loc,
			Message:  fmt.Sprintf("'%s' is too long: length %d exceeds maximum %d", loc.Field, n, field.MaxLength),
			Expected: fmt.Sprintf("length <= %d", field.MaxLength),
			Actual:   fmt.Sprintf("%d", n),
		})
	}
	if field.Pattern != "" && !v.registry.matches(field.Pattern, s) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     CodeStructural,
			Location: loc,
			Message:  fmt.Sprintf("'%s' does not match pattern %s", loc.Field, field.Pattern),
			Expected: field.Pattern,
			Actual:   fmt.Sprintf("'%s'", s),
		})
	}
	if len(field.Enum) > 0 && !contains(field.Enum, s) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     CodeStructural,
			Location: loc,
			Message:  fmt.Sprintf("invalid value for field '%s'", loc.Field),
			Expected: fmt.Sprintf("one of: %s", strings.Join(field.Enum, ", ")),
			Actual:   fmt.Sprintf("'%s'", s),
		})
	}
	return issues
}

func checkRange(field SchemaField, n int64, loc Location) []Issue {
	if field.Minimum != nil && n < int64(*field.Minimum) {
		return []Issue{{
			Severity: SeverityError,
			Code:     CodeStructural,
			Location: loc,
			Message:  fmt.Sprintf("'%s' is below minimum %d", loc.Field, *field.Minimum),
			Expected: fmt.Sprintf(">= %d", *field.Minimum),
			Actual:   fmt.Sprintf("%d", n),
		}}
	}
	if field.Maximum != nil && n > int64(*field.Maximum) {
		return []Issue{{
			Severity: SeverityError,
			Code:     CodeStructural,
			Location: loc,
			Message:  fmt.Sprintf("'%s' exceeds maximum %d", loc.Field, *field.Maximum),
			Expected: fmt.Sprintf("<= %d", *field.Maximum),
			Actual:   fmt.Sprintf("%d", n),
		}}
	}
	return nil
}

func (v *StructuralValidator) checkArray(field SchemaField, items []any, path, file string, index int) []Issue {
	var issues []Issue
	loc := recordLocation(file, index, path)

	if field.MinItems > 0 && len(items) < field.MinItems {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     CodeStructural,
			Location: loc,
			Message:  fmt.Sprintf("'%s' has %d item(s), minimum is %d", path, len(items), field.MinItems),
			Expected: fmt.Sprintf(">= %d items", field.MinItems),
			Actual:   fmt.Sprintf("%d", len(items)),
		})
	}
	if field.MaxItems > 0 && len(items) > field.MaxItems {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     CodeStructural,
			Location: loc,
			Message:  fmt.Sprintf("'%s' has %d item(s), maximum is %d", path, len(items), field.MaxItems),
			Expected: fmt.Sprintf("<= %d items", field.MaxItems),
			Actual:   fmt.Sprintf("%d", len(items)),
		})
	}

	if field.Items == nil {
		return issues
	}
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		issues = append(issues, v.validateValue(*field.Items, item, itemPath, file, index)...)
	}
	return issues
}

// validateLocaleMap checks every key and value of a locale file. Keys beginning
// with '$' carry metadata such as $schema and are ignored.
func (v *StructuralValidator) validateLocaleMap(schema *Schema, f *content.File) []Issue {
	m, ok := f.Data.(map[string]any)
	if !ok {
		return []Issue{{
			Severity: SeverityError,
			Code:     CodeStructural,
			Location: fileLocation(f.Path),
			Message:  "locale file must be an object",
			Expected: "object",
			Actual:   jsonTypeName(f.Data),
		}}
	}

	var issues []Issue
	for _, key := range sortedKeys(m) {
		if strings.HasPrefix(key, "$") {
			continue
		}
		loc := Location{File: f.Path, Index: NoIndex, Field: key}
		if !v.registry.matches(schema.KeyPattern, key) {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Code:     CodeStructural,
				Location: loc,
				Message:  fmt.Sprintf("locale key '%s' does not match pattern %s", key, schema.KeyPattern),
				Expected: schema.KeyPattern,
				Actual:   fmt.Sprintf("'%s'", key),
			})
		}
		if schema.Value != nil {
			issues = append(issues, v.validateValue(*schema.Value, m[key], key, f.Path, NoIndex)...)
		}
	}
	return issues
}

// jsonTypeName names the JSON type of a decoded value.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
