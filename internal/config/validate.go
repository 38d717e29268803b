package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateJSONSyntax checks that a config file holds a single JSON object.
// Returns nil if valid, or a ValidationError with line/column information if invalid.
func ValidateJSONSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Missing file is not an error - will use defaults
		}
		if os.IsPermission(err) {
			return &ValidationError{
				FilePath: filePath,
				Message:  "permission denied",
			}
		}
		return &ValidationError{
			FilePath: filePath,
			Message:  err.Error(),
		}
	}

	// Empty file is valid - will use defaults
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	return ValidateJSONSyntaxFromBytes(data, filePath)
}

// ValidateJSONSyntaxFromBytes is ValidateJSONSyntax for content already in memory.
func ValidateJSONSyntaxFromBytes(data []byte, filePath string) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			line, col := lineColumn(data, syntaxErr.Offset)
			return &ValidationError{
				FilePath: filePath,
				Line:     line,
				Column:   col,
				Message:  strings.TrimPrefix(syntaxErr.Error(), "json: "),
			}
		}
		return &ValidationError{
			FilePath: filePath,
			Message:  err.Error(),
		}
	}

	if _, ok := doc.(map[string]any); !ok {
		return &ValidationError{
			FilePath: filePath,
			Message:  "top-level value must be an object",
		}
	}
	return nil
}

// lineColumn converts a byte offset into a 1-based line and column.
func lineColumn(data []byte, offset int64) (line, column int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line = bytes.Count(before, []byte("\n")) + 1
	column = int(offset) - bytes.LastIndexByte(before, '\n')
	return line, column
}

var structValidator = newStructValidator()

// newStructValidator reports field names by their config key instead of the Go name.
func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidateConfigValues validates configuration values against their constraints.
// Returns nil if valid, or a ValidationError naming the first offending key.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	if err := structValidator.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fieldError(fieldErrs[0], filePath)
		}
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}

	if err := cfg.ContentLayout().Validate(); err != nil {
		return &ValidationError{
			FilePath: filePath,
			Field:    "layout",
			Message:  err.Error(),
		}
	}
	return nil
}

// fieldError converts a validator failure into a ValidationError keyed by config path.
func fieldError(fe validator.FieldError, filePath string) *ValidationError {
	// Namespace is "Configuration.layout.habit"; drop the struct name.
	_, key, _ := strings.Cut(fe.Namespace(), ".")

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "min":
		msg = "must be at least " + fe.Param()
	case "max":
		msg = "must be at most " + fe.Param()
	case "contains":
		msg = "must contain " + fe.Param()
	default:
		msg = fmt.Sprintf("failed '%s' constraint", fe.Tag())
	}

	return &ValidationError{
		FilePath: filePath,
		Field:    key,
		Message:  msg,
	}
}
