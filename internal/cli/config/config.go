package config

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/contentlint/internal/cli/shared"
	cfgpkg "github.com/ariel-frischer/contentlint/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage contentlint configuration",
	Long: `Manage contentlint configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (CONTENTLINT_*, nested keys joined by __)
  3. Local config (--config, default .contentlint.json)
  4. Global config (~/.contentlint/config.json)
  5. Built-in defaults`,
	Example: `  # Show current configuration
  contentlint config show

  # List every key
  contentlint config keys

  # Change the content root for this project
  contentlint config set content_dir ./content`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current effective configuration",
	Long: `Display the current effective configuration values.

Shows the merged result of defaults, global config, local config, and
environment variables. Use --yaml for YAML output.`,
	Example: `  # Show configuration in JSON format (default)
  contentlint config show

  # Show configuration in YAML format
  contentlint config show --yaml`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runConfigShow,
}

func init() {
	configCmd.GroupID = shared.GroupConfiguration

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)

	configShowCmd.Flags().Bool("yaml", false, "Output in YAML format")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	useYAML, _ := cmd.Flags().GetBool("yaml")

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	userPath, _ := cfgpkg.UserConfigPath()
	fmt.Fprintf(out, "# Configuration Sources\n")
	fmt.Fprintf(out, "# Global config: %s\n", userPath)
	fmt.Fprintf(out, "# Local config:  %s\n", localConfigPath(cmd))
	fmt.Fprintf(out, "\n")

	if useYAML {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to serialize config: %w", err)
		}
		fmt.Fprint(out, string(data))
		return nil
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// localConfigPath returns the --config value, or the default local file.
func localConfigPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return cfgpkg.LocalConfigFile
}
