package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// UserConfigPath returns the global config file, ~/.contentlint/config.json.
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".contentlint", "config.json"), nil
}
