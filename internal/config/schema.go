package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ariel-frischer/contentlint/internal/content"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeInt ConfigValueType = iota
	TypeString
	TypePattern
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypePattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path        string          // Dotted key path (e.g., "layout.habit")
	Type        ConfigValueType // Expected value type for validation
	Min, Max    int             // Inclusive bounds for TypeInt
	Description string          // Human-readable description for help text
	Default     interface{}     // Default value
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"content_dir": {
		Path:        "content_dir",
		Type:        TypeString,
		Description: "Root directory of the content tree",
		Default:     "src/content",
	},
	"report_path": {
		Path:        "report_path",
		Type:        TypeString,
		Description: "Where the validation report is written (.json, .yaml or .yml)",
		Default:     "validation-report.json",
	},
	"metrics_file": {
		Path:        "metrics_file",
		Type:        TypeString,
		Description: "Prometheus textfile written after each run (empty disables)",
		Default:     "",
	},
	"warning_preview": {
		Path:        "warning_preview",
		Type:        TypeInt,
		Min:         1,
		Max:         1000,
		Description: "Warnings listed on the console before truncating",
		Default:     20,
	},
	"missing_preview": {
		Path:        "missing_preview",
		Type:        TypeInt,
		Min:         1,
		Max:         50,
		Description: "Missing IDs named in a translation completeness warning",
		Default:     5,
	},
	"max_parallel": {
		Path:        "max_parallel",
		Type:        TypeInt,
		Min:         1,
		Max:         64,
		Description: "Content files read concurrently",
		Default:     4,
	},
	"watch_debounce_ms": {
		Path:        "watch_debounce_ms",
		Type:        TypeInt,
		Min:         50,
		Max:         10000,
		Description: "Quiet period in watch mode before re-validating",
		Default:     300,
	},
	"layout.habit": {
		Path:        "layout.habit",
		Type:        TypePattern,
		Description: "Path pattern of habit files",
		Default:     "habits/{lang}.json",
	},
	"layout.research": {
		Path:        "layout.research",
		Type:        TypePattern,
		Description: "Path pattern of research files",
		Default:     "research/{lang}.json",
	},
	"layout.goal": {
		Path:        "layout.goal",
		Type:        TypePattern,
		Description: "Path pattern of goal files",
		Default:     "goals/{lang}.json",
	},
	"layout.locale": {
		Path:        "layout.locale",
		Type:        TypePattern,
		Description: "Path pattern of locale files",
		Default:     "locales/{lang}.json",
	},
}

// SortedKeys returns the known key paths in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParsedValue represents a configuration value after type conversion and validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	return validateAgainstSchema(schema, value)
}

// validateAgainstSchema validates a value against a specific schema.
func validateAgainstSchema(schema ConfigKeySchema, value string) (ParsedValue, error) {
	switch schema.Type {
	case TypeInt:
		return parseIntValue(schema, value)
	case TypePattern:
		return parsePatternValue(value)
	case TypeString:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
}

// parseIntValue parses an integer and checks it against the key's bounds.
func parseIntValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
	}
	if n < schema.Min || n > schema.Max {
		return ParsedValue{}, fmt.Errorf("%s must be between %d and %d, got %d", schema.Path, schema.Min, schema.Max, n)
	}
	return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
}

// parsePatternValue checks a layout pattern names the language placeholder.
func parsePatternValue(value string) (ParsedValue, error) {
	if !strings.Contains(value, content.LangPlaceholder) {
		return ParsedValue{}, fmt.Errorf("invalid pattern: %q (must contain %s)", value, content.LangPlaceholder)
	}
	if strings.HasPrefix(value, "/") || strings.Contains(value, "..") {
		return ParsedValue{}, fmt.Errorf("invalid pattern: %q (must be relative to content_dir)", value)
	}
	return ParsedValue{Raw: value, Parsed: value, Type: TypePattern}, nil
}
