package config

// GetDefaults returns the default configuration values keyed by dotted path.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"content_dir":       "src/content",
		"report_path":       "validation-report.json",
		"metrics_file":      "",
		"warning_preview":   20,
		"missing_preview":   5,
		"max_parallel":      4,
		"watch_debounce_ms": 300,
		"layout.habit":      "habits/{lang}.json",
		"layout.research":   "research/{lang}.json",
		"layout.goal":       "goals/{lang}.json",
		"layout.locale":     "locales/{lang}.json",
	}
}
