package shared

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/contentlint/internal/config"
)

// FlagKeys maps command flags to the config keys they override when set.
type FlagKeys map[string]string

// GlobalFlagKeys are the persistent flags that override config keys.
var GlobalFlagKeys = FlagKeys{"content-dir": "content_dir"}

// LoadConfig loads configuration for cmd. The --config flag selects the local file;
// flags listed in keys override config values when explicitly set. A failure is
// printed to stderr and returned as ExitInvalidArguments.
func LoadConfig(cmd *cobra.Command, keys ...FlagKeys) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")

	overrides := make(map[string]any)
	for _, set := range append([]FlagKeys{GlobalFlagKeys}, keys...) {
		for flagName, key := range set {
			flag := cmd.Flags().Lookup(flagName)
			if flag == nil || !flag.Changed {
				continue
			}
			overrides[key] = flag.Value.String()
		}
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		LocalPath: configPath,
		Overrides: overrides,
	})
	if err != nil {
		cmd.SilenceUsage = true
		PrintError(cmd.ErrOrStderr(), err)
		return nil, NewExitError(ExitInvalidArguments)
	}
	return cfg, nil
}

// PrintError writes an error line in red.
func PrintError(out io.Writer, err error) {
	fmt.Fprintf(out, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
}

// SetupOutput configures colors and the default logger for a command run.
// NO_COLOR disables colors regardless of the terminal.
func SetupOutput(debug bool, errOut io.Writer) *slog.Logger {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
