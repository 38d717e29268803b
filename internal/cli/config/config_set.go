package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/contentlint/internal/cli/shared"
	cfgpkg "github.com/ariel-frischer/contentlint/internal/config"
)

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the local or global config file.

By default, sets the value in the local config (--config, default .contentlint.json).
Use --global to set it in ~/.contentlint/config.json.

The value is validated against the key's type and range before writing.`,
	Example: `  # Point at the content tree
  contentlint config set content_dir ./content

  # Show more warnings on the console, for every project
  contentlint config set warning_preview 100 --global

  # Split habits into one file per goal
  contentlint config set layout.habit "habits/{lang}/*.json"`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runConfigSet,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get the value of a configuration key.

Shows the value from the local config, then the global config, then the default.
Environment variables are not consulted; use 'config show' for the effective result.`,
	Example: `  # Get the content root
  contentlint config get content_dir`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runConfigGet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List all available configuration keys",
	Long:  `Display all valid configuration keys with their types, defaults and descriptions.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

func init() {
	configSetCmd.Flags().Bool("global", false, "Set in the global config (~/.contentlint/config.json)")
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	out := cmd.OutOrStdout()

	filePath, scope, err := resolveConfigPath(cmd)
	if err != nil {
		return err
	}

	if _, err := cfgpkg.GetKeySchema(key); err != nil {
		shared.PrintError(cmd.ErrOrStderr(), formatUnknownKeyError(key))
		return shared.NewExitError(shared.ExitInvalidArguments)
	}

	if err := cfgpkg.SetConfigValue(filePath, key, value); err != nil {
		shared.PrintError(cmd.ErrOrStderr(), fmt.Errorf("setting config value: %w", err))
		return shared.NewExitError(shared.ExitInvalidArguments)
	}

	fmt.Fprintf(out, "Set %s = %s in %s config (%s)\n", key, value, scope, filePath)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	out := cmd.OutOrStdout()

	schema, err := cfgpkg.GetKeySchema(key)
	if err != nil {
		shared.PrintError(cmd.ErrOrStderr(), formatUnknownKeyError(key))
		return shared.NewExitError(shared.ExitInvalidArguments)
	}
	keyPath, err := cfgpkg.ParseKeyPath(key)
	if err != nil {
		return fmt.Errorf("parsing key path: %w", err)
	}

	localPath := localConfigPath(cmd)
	if value, found := getValueFromFile(localPath, keyPath); found {
		fmt.Fprintf(out, "%s: %s (from local config)\n", key, value)
		return nil
	}

	userPath, err := cfgpkg.UserConfigPath()
	if err != nil {
		return fmt.Errorf("getting global config path: %w", err)
	}
	if value, found := getValueFromFile(userPath, keyPath); found {
		fmt.Fprintf(out, "%s: %s (from global config)\n", key, value)
		return nil
	}

	fmt.Fprintf(out, "%s: %v (default)\n", key, schema.Default)
	return nil
}

// getValueFromFile reads one key from a JSON config file. Unreadable or
// malformed files count as not set.
func getValueFromFile(filePath string, keyPath []string) (string, bool) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", false
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return "", false
	}

	value, found := cfgpkg.GetNestedValue(root, keyPath)
	if !found {
		return "", false
	}
	return fmt.Sprint(value), true
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Available configuration keys:")
	fmt.Fprintln(out)

	for _, key := range cfgpkg.SortedKeys() {
		schema := cfgpkg.KnownKeys[key]
		typeInfo := schema.Type.String()
		if schema.Type == cfgpkg.TypeInt {
			typeInfo = fmt.Sprintf("int (%d-%d)", schema.Min, schema.Max)
		}
		fmt.Fprintf(out, "  %-24s %-16s default: %v\n", key, typeInfo, formatDefault(schema.Default))
		fmt.Fprintf(out, "    %s\n", schema.Description)
		fmt.Fprintln(out)
	}

	return nil
}

func formatDefault(v any) string {
	if s, ok := v.(string); ok && s == "" {
		return `""`
	}
	return fmt.Sprint(v)
}

func resolveConfigPath(cmd *cobra.Command) (filePath, scope string, err error) {
	global, _ := cmd.Flags().GetBool("global")
	if !global {
		return localConfigPath(cmd), "local", nil
	}

	userPath, err := cfgpkg.UserConfigPath()
	if err != nil {
		return "", "", fmt.Errorf("getting global config path: %w", err)
	}
	return userPath, "global", nil
}

func formatUnknownKeyError(key string) error {
	return fmt.Errorf("unknown configuration key: %q\n\nValid keys:\n  %s",
		key, strings.Join(cfgpkg.SortedKeys(), "\n  "))
}
