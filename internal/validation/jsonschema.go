package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ariel-frischer/contentlint/internal/content"
)

const schemaBaseURL = "https://contentlint.dev/schemas/"

// JSONSchemaID returns the $id of the exported JSON Schema for a content type.
func JSONSchemaID(t content.Type) string {
	return schemaBaseURL + string(t) + ".schema.json"
}

// ExportJSONSchema renders a schema as a JSON Schema (draft 2020-12) document for a
// whole content file, and compiles it to make sure the document is well-formed.
func ExportJSONSchema(s *Schema) ([]byte, *jsonschema.Schema, error) {
	doc := map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"$id":         JSONSchemaID(s.Type),
		"title":       fmt.Sprintf("%s content file", s.Type),
		"description": s.Description,
	}

	if s.Type.IsRecordList() {
		doc["type"] = "array"
		doc["items"] = objectJSONSchema(s.Fields)
	} else {
		doc["type"] = "object"
		doc["propertyNames"] = map[string]any{"pattern": withMetadataKeys(s.KeyPattern)}
		if s.Value != nil {
			doc["additionalProperties"] = fieldJSONSchema(*s.Value)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling %s schema: %w", s.Type, err)
	}

	compiled, err := CompileJSONSchema(JSONSchemaID(s.Type), data)
	if err != nil {
		return nil, nil, err
	}
	return append(data, '\n'), compiled, nil
}

// CompileJSONSchema compiles a JSON Schema document registered under url.
func CompileJSONSchema(url string, data []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return compiled, nil
}

func objectJSONSchema(fields []SchemaField) map[string]any {
	props := make(map[string]any, len(fields))
	var required []string
	for _, f := range fields {
		props[f.Name] = fieldJSONSchema(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}

	obj := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		obj["required"] = required
	}
	return obj
}

func fieldJSONSchema(f SchemaField) map[string]any {
	if f.Type == FieldTypeObject {
		obj := objectJSONSchema(f.Children)
		if f.Description != "" {
			obj["description"] = f.Description
		}
		return obj
	}

	m := map[string]any{"type": string(f.Type)}
	if f.Description != "" {
		m["description"] = f.Description
	}
	if f.MinLength > 0 {
		m["minLength"] = f.MinLength
	}
	if f.MaxLength > 0 {
		m["maxLength"] = f.MaxLength
	}
	if f.Pattern != "" {
		m["pattern"] = f.Pattern
	}
	if len(f.Enum) > 0 {
		m["enum"] = f.Enum
	}
	if f.Minimum != nil {
		m["minimum"] = *f.Minimum
	}
	if f.Maximum != nil {
		m["maximum"] = *f.Maximum
	}
	if f.Items != nil {
		m["items"] = fieldJSONSchema(*f.Items)
	}
	if f.MinItems > 0 {
		m["minItems"] = f.MinItems
	}
	if f.MaxItems > 0 {
		m["maxItems"] = f.MaxItems
	}
	return m
}

// withMetadataKeys widens a key pattern so '$'-prefixed metadata keys are accepted.
func withMetadataKeys(pattern string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(pattern, "^"), "$")
	return `^(\$.*|` + inner + `)$`
}
