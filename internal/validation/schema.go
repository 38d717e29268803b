package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/ariel-frischer/contentlint/internal/content"
)

// FieldType represents the expected JSON type of a schema field.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeInt    FieldType = "integer"
	FieldTypeBool   FieldType = "boolean"
	FieldTypeArray  FieldType = "array"
	FieldTypeObject FieldType = "object"
)

// SchemaField defines one field of a record shape. Zero values mean "no constraint".
type SchemaField struct {
	Name        string        // Field name in JSON
	Type        FieldType     // Expected type
	Required    bool          // Whether field must be present
	MinLength   int           // Minimum string length in code points
	MaxLength   int           // Maximum string length in code points
	Pattern     string        // Regex pattern for string validation
	Enum        []string      // Valid values for enum fields
	Minimum     *int          // Inclusive lower bound for integers
	Maximum     *int          // Inclusive upper bound for integers
	Items       *SchemaField  // Element shape for arrays
	MinItems    int           // Minimum array length
	MaxItems    int           // Maximum array length
	Children    []SchemaField // Fields of object values
	Description string        // Human-readable description
}

// Schema is the record-shape descriptor for one content type. Record lists use
// Fields; locale maps use KeyPattern and Value. Undeclared fields are always rejected.
type Schema struct {
	Type        content.Type
	Description string
	Fields      []SchemaField
	KeyPattern  string
	Value       *SchemaField
}

// Evidence levels for research records, strongest first.
var EvidenceLevels = []string{"systematic_review", "rct", "observational", "case_study"}

// Difficulties for habit records.
var Difficulties = []string{"beginner", "intermediate", "advanced"}

const (
	slugPattern      = `^[a-z0-9-]+$`
	looseDOIPattern  = `^10\.`
	localeKeyPattern = `^[a-zA-Z0-9._-]+$`
	minResearchYear  = 1990
)

// Registry holds the schema for every content type. The research year bound depends
// on the clock, so a registry is built per run.
type Registry struct {
	schemas  map[content.Type]*Schema
	patterns map[string]*regexp.Regexp
}

// NewRegistry builds the registry for a run started at now.
func NewRegistry(now time.Time) *Registry {
	r := &Registry{
		schemas: map[content.Type]*Schema{
			content.TypeHabit:    habitSchema(),
			content.TypeResearch: researchSchema(now.Year() + 1),
			content.TypeGoal:     goalSchema(),
			content.TypeLocale:   localeSchema(),
		},
		patterns: make(map[string]*regexp.Regexp),
	}

	for _, s := range r.schemas {
		if s.KeyPattern != "" {
			r.compile(s.KeyPattern)
		}
		if s.Value != nil {
			r.compileField(*s.Value)
		}
		for _, f := range s.Fields {
			r.compileField(f)
		}
	}
	return r
}

// Schema returns the schema for a content type.
func (r *Registry) Schema(t content.Type) (*Schema, error) {
	s, ok := r.schemas[t]
	if !ok {
		return nil, fmt.Errorf("no schema registered for content type %q", t)
	}
	return s, nil
}

// matches reports whether s matches a pattern registered in the schemas.
func (r *Registry) matches(pattern, s string) bool {
	re, ok := r.patterns[pattern]
	if !ok {
		re = regexp.MustCompile(pattern)
	}
	return re.MatchString(s)
}

func (r *Registry) compileField(f SchemaField) {
	if f.Pattern != "" {
		r.compile(f.Pattern)
	}
	if f.Items != nil {
		r.compileField(*f.Items)
	}
	for _, c := range f.Children {
		r.compileField(c)
	}
}

func (r *Registry) compile(pattern string) {
	if _, ok := r.patterns[pattern]; !ok {
		r.patterns[pattern] = regexp.MustCompile(pattern)
	}
}

func intPtr(v int) *int {
	return &v
}

func languageField() SchemaField {
	return SchemaField{Name: "language", Type: FieldTypeString, Required: true, Enum: content.Languages, Description: "Language code of the record"}
}

func categoryField() SchemaField {
	return SchemaField{Name: "category", Type: FieldTypeString, Required: true, Enum: content.Categories, Description: "Content category"}
}

func habitSchema() *Schema {
	return &Schema{
		Type:        content.TypeHabit,
		Description: "Habit recommendation shown to users, optionally backed by research citations",
		Fields: []SchemaField{
			{Name: "id", Type: FieldTypeString, Required: true, Pattern: slugPattern, Description: "Stable habit identifier (lowercase slug)"},
			{Name: "title", Type: FieldTypeString, Required: true, MinLength: 5, MaxLength: 100, Description: "Short habit title"},
			{Name: "description", Type: FieldTypeString, Required: true, MinLength: 20, MaxLength: 500, Description: "What the habit is and how to do it"},
			categoryField(),
			{Name: "difficulty", Type: FieldTypeString, Required: true, Enum: Difficulties, Description: "Expected effort level"},
			{Name: "timeMinutes", Type: FieldTypeInt, Required: true, Minimum: intPtr(1), Maximum: intPtr(180), Description: "Daily time commitment in minutes"},
			languageField(),
			{Name: "researchBacked", Type: FieldTypeBool, Description: "Whether research sources support the habit"},
			{
				Name:        "sources",
				Type:        FieldTypeArray,
				MaxItems:    10,
				Items:       &SchemaField{Type: FieldTypeString},
				Description: "Research record IDs supporting the habit",
			},
		},
	}
}

func researchSchema(maxYear int) *Schema {
	return &Schema{
		Type:        content.TypeResearch,
		Description: "Research citation referenced by habits",
		Fields: []SchemaField{
			{Name: "id", Type: FieldTypeString, Required: true, MinLength: 1, Description: "Stable research identifier"},
			{Name: "title", Type: FieldTypeString, Required: true, MinLength: 10, MaxLength: 200, Description: "Publication title"},
			{Name: "summary", Type: FieldTypeString, Required: true, MinLength: 50, MaxLength: 1000, Description: "Plain-language summary of findings"},
			{Name: "authors", Type: FieldTypeString, Required: true, MinLength: 5, MaxLength: 200, Description: "Author list"},
			{Name: "year", Type: FieldTypeInt, Required: true, Minimum: intPtr(minResearchYear), Maximum: intPtr(maxYear), Description: "Publication year"},
			{Name: "journal", Type: FieldTypeString, Required: true, MinLength: 5, MaxLength: 100, Description: "Journal or venue"},
			{Name: "doi", Type: FieldTypeString, Pattern: looseDOIPattern, Description: "Digital Object Identifier"},
			categoryField(),
			{Name: "evidenceLevel", Type: FieldTypeString, Required: true, Enum: EvidenceLevels, Description: "Study design / strength of evidence"},
			{Name: "qualityScore", Type: FieldTypeInt, Required: true, Minimum: intPtr(0), Maximum: intPtr(100), Description: "Editorial quality score"},
			languageField(),
		},
	}
}

func goalSchema() *Schema {
	return &Schema{
		Type:        content.TypeGoal,
		Description: "User goal with a prioritized list of recommended habits",
		Fields: []SchemaField{
			{Name: "id", Type: FieldTypeString, Required: true, Pattern: slugPattern, Description: "Stable goal identifier (lowercase slug)"},
			{Name: "title", Type: FieldTypeString, Required: true, MinLength: 5, MaxLength: 100, Description: "Goal title"},
			categoryField(),
			languageField(),
			{
				Name:     "recommendations",
				Type:     FieldTypeArray,
				Required: true,
				MinItems: 1,
				MaxItems: 20,
				Items: &SchemaField{
					Type: FieldTypeObject,
					Children: []SchemaField{
						{Name: "habitId", Type: FieldTypeString, Required: true, Pattern: slugPattern, Description: "Recommended habit ID"},
						{Name: "priority", Type: FieldTypeInt, Required: true, Minimum: intPtr(1), Maximum: intPtr(20), Description: "Display order, 1 first"},
						{Name: "isPrimary", Type: FieldTypeBool, Description: "Marks the primary recommendation"},
					},
				},
				Description: "Recommended habits in priority order",
			},
		},
	}
}

func localeSchema() *Schema {
	return &Schema{
		Type:        content.TypeLocale,
		Description: "Flat map of dotted UI string keys to translated text",
		KeyPattern:  localeKeyPattern,
		Value:       &SchemaField{Type: FieldTypeString, MinLength: 1, MaxLength: 200, Description: "Translated text"},
	}
}
