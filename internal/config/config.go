package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/contentlint/internal/content"
)

const (
	// LocalConfigFile is the project config file read when --config is not given.
	LocalConfigFile = ".contentlint.json"
	// EnvPrefix marks environment variables that override config keys.
	EnvPrefix = "CONTENTLINT_"
)

// Configuration represents the contentlint configuration
type Configuration struct {
	ContentDir      string       `koanf:"content_dir" json:"content_dir" yaml:"content_dir" validate:"required"`
	ReportPath      string       `koanf:"report_path" json:"report_path" yaml:"report_path" validate:"required"`
	MetricsFile     string       `koanf:"metrics_file" json:"metrics_file" yaml:"metrics_file"`
	WarningPreview  int          `koanf:"warning_preview" json:"warning_preview" yaml:"warning_preview" validate:"min=1,max=1000"`
	MissingPreview  int          `koanf:"missing_preview" json:"missing_preview" yaml:"missing_preview" validate:"min=1,max=50"`
	MaxParallel     int          `koanf:"max_parallel" json:"max_parallel" yaml:"max_parallel" validate:"min=1,max=64"`
	WatchDebounceMs int          `koanf:"watch_debounce_ms" json:"watch_debounce_ms" yaml:"watch_debounce_ms" validate:"min=50,max=10000"`
	Layout          LayoutConfig `koanf:"layout" json:"layout" yaml:"layout"`
}

// LayoutConfig holds the path pattern of each content type relative to content_dir.
type LayoutConfig struct {
	Habit    string `koanf:"habit" json:"habit" yaml:"habit" validate:"required,contains={lang}"`
	Research string `koanf:"research" json:"research" yaml:"research" validate:"required,contains={lang}"`
	Goal     string `koanf:"goal" json:"goal" yaml:"goal" validate:"required,contains={lang}"`
	Locale   string `koanf:"locale" json:"locale" yaml:"locale" validate:"required,contains={lang}"`
}

// ContentLayout converts the layout section into the loader's layout.
func (c *Configuration) ContentLayout() content.Layout {
	return content.Layout{
		content.TypeHabit:    c.Layout.Habit,
		content.TypeResearch: c.Layout.Research,
		content.TypeGoal:     c.Layout.Goal,
		content.TypeLocale:   c.Layout.Locale,
	}
}

// WatchDebounce returns watch_debounce_ms as a duration.
func (c *Configuration) WatchDebounce() time.Duration {
	return time.Duration(c.WatchDebounceMs) * time.Millisecond
}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// LocalPath is the project config file. Empty means LocalConfigFile.
	LocalPath string
	// Overrides are applied last, e.g. values of explicitly set CLI flags.
	Overrides map[string]any
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{LocalPath: localConfigPath})
}

// LoadWithOptions is Load with flag overrides applied above the environment.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying default %s: %w", key, err)
		}
	}

	source := "configuration"

	if globalPath, err := UserConfigPath(); err == nil {
		loaded, err := loadFile(k, globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load global config: %w", err)
		}
		if loaded {
			source = globalPath
		}
	}

	localPath := opts.LocalPath
	if localPath == "" {
		localPath = LocalConfigFile
	}
	loaded, err := loadFile(k, localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load local config: %w", err)
	}
	if loaded {
		source = localPath
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	for key, value := range opts.Overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying flag %s: %w", key, err)
		}
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, source); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.ContentDir = expandHomePath(cfg.ContentDir)
	cfg.ReportPath = expandHomePath(cfg.ReportPath)
	cfg.MetricsFile = expandHomePath(cfg.MetricsFile)

	return &cfg, nil
}

// loadFile merges a JSON config file into k. Missing and empty files are skipped.
func loadFile(k *koanf.Koanf, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &ValidationError{FilePath: path, Message: err.Error()}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return false, nil
	}
	if err := ValidateJSONSyntaxFromBytes(data, path); err != nil {
		return false, err
	}
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return false, err
	}
	return true, nil
}

// envTransform converts environment variable names to config keys.
// A double underscore separates nested keys:
// CONTENTLINT_WARNING_PREVIEW -> warning_preview, CONTENTLINT_LAYOUT__HABIT -> layout.habit
func envTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
