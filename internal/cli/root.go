// contentlint - Content validation for habit tracker content
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/contentlint

// Package cli provides Cobra-based CLI commands for the contentlint content validator.
// It defines the validation commands (validate, watch), inspection commands
// (stats, schema, version) and configuration management (config).
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/contentlint/internal/cli/check"
	"github.com/ariel-frischer/contentlint/internal/cli/config"
	"github.com/ariel-frischer/contentlint/internal/cli/shared"
	"github.com/ariel-frischer/contentlint/internal/cli/util"
	cfgpkg "github.com/ariel-frischer/contentlint/internal/config"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupValidation    = shared.GroupValidation
	GroupInspection    = shared.GroupInspection
	GroupConfiguration = shared.GroupConfiguration
)

var rootCmd = &cobra.Command{
	Use:   "contentlint",
	Short: "contentlint content validation",
	Long: `contentlint content validation

Validates the multilingual habit, research, goal and locale JSON files of a
habit tracker: record schemas, business rules, cross references and
translation completeness. Writes a JSON or YAML report and exits non-zero
when errors are found.

Source: https://github.com/ariel-frischer/contentlint`,
	Example: `  # Validate the content tree
  contentlint validate

  # Validate a different tree and write a YAML report
  contentlint validate --content-dir ./content --report report.yaml

  # Re-validate on every change
  contentlint watch

  # Content statistics
  contentlint stats

  # Export JSON Schema files for editors
  contentlint schema --json-schema ./schemas`,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		shared.SetupOutput(debug, cmd.ErrOrStderr())
	},
}

// Execute runs the root command. Interrupts cancel the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !shared.IsExitError(err) {
		shared.PrintError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	// Define command groups in display order
	rootCmd.AddGroup(&cobra.Group{ID: GroupValidation, Title: "Validation:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupInspection, Title: "Inspection:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})

	// Assign built-in help and completion to configuration group
	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", cfgpkg.LocalConfigFile, "Path to local config file")
	rootCmd.PersistentFlags().String("content-dir", "", "Content root directory (overrides content_dir)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	// Register commands from subpackages
	check.Register(rootCmd)
	util.Register(rootCmd)
	config.Register(rootCmd)
}
