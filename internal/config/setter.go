package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyKeyPath is returned when an empty key path is provided.
var ErrEmptyKeyPath = errors.New("empty key path")

// ParseKeyPath splits a dotted key path into its component parts.
// For example, "layout.habit" becomes ["layout", "habit"].
func ParseKeyPath(path string) ([]string, error) {
	if path == "" {
		return nil, ErrEmptyKeyPath
	}
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("invalid key path %q", path)
		}
	}
	return parts, nil
}

// SetNestedValue sets a value in a decoded JSON object at the specified key path.
// Creates parent objects if they don't exist.
func SetNestedValue(root map[string]any, keyPath []string, value any) error {
	if len(keyPath) == 0 {
		return ErrEmptyKeyPath
	}
	node := root
	for i, key := range keyPath[:len(keyPath)-1] {
		child, exists := node[key]
		if !exists {
			next := make(map[string]any)
			node[key] = next
			node = next
			continue
		}
		next, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("key %q is not an object", strings.Join(keyPath[:i+1], "."))
		}
		node = next
	}
	node[keyPath[len(keyPath)-1]] = value
	return nil
}

// GetNestedValue returns the value at the key path, or false when absent.
func GetNestedValue(root map[string]any, keyPath []string) (any, bool) {
	var cur any = root
	for _, key := range keyPath {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// writeAtomically writes content to a file atomically using a temporary file and rename.
// Creates parent directories if they don't exist.
func writeAtomically(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmpFile, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		// Clean up temp file on error
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()
	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	tmpPath = "" // Prevent cleanup since rename succeeded
	return nil
}

// SetConfigValue sets a configuration value in a JSON config file.
// Validates the key and value against the schema before writing.
// Creates the file if it doesn't exist; other keys are preserved.
func SetConfigValue(filePath, key, value string) error {
	parsed, err := ValidateValue(key, value)
	if err != nil {
		return fmt.Errorf("validating value: %w", err)
	}
	root, err := loadOrCreateJSON(filePath)
	if err != nil {
		return err
	}
	keyPath, err := ParseKeyPath(key)
	if err != nil {
		return fmt.Errorf("parsing key path: %w", err)
	}
	if err := SetNestedValue(root, keyPath, parsed.Parsed); err != nil {
		return fmt.Errorf("setting nested value: %w", err)
	}
	content, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if err := writeAtomically(filePath, append(content, '\n')); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// loadOrCreateJSON loads a JSON config object, or an empty one when the file is absent.
// Numbers are kept as json.Number so untouched values are written back unchanged.
func loadOrCreateJSON(filePath string) (map[string]any, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]any), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return make(map[string]any), nil
	}
	if err := ValidateJSONSyntaxFromBytes(data, filePath); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root := make(map[string]any)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return root, nil
}
