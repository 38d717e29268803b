package util

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/contentlint/internal/cli/shared"
	"github.com/ariel-frischer/contentlint/internal/content"
	"github.com/ariel-frischer/contentlint/internal/report"
	"github.com/ariel-frischer/contentlint/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show content statistics per language",
	Long: `Load the content tree without validating it and print record counts per
language, habit categories, research evidence levels and quality figures.`,
	Example: `  # Print statistics
  contentlint stats

  # Also write them as YAML
  contentlint stats --output stats.yaml`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}

		loader := content.NewLoader(cfg.ContentDir, cfg.ContentLayout(),
			content.WithMaxParallel(cfg.MaxParallel),
			content.WithLogger(slog.Default()),
		)
		snap, err := loader.Load(cmd.Context())
		if err != nil {
			shared.PrintError(cmd.ErrOrStderr(), err)
			if errors.Is(err, content.ErrContentRootMissing) {
				return shared.NewExitError(shared.ExitMissingContent)
			}
			return shared.NewExitError(shared.ExitValidationFailed)
		}

		s := stats.Compute(snap)
		stats.Print(cmd.OutOrStdout(), s)

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			return nil
		}
		if err := report.WriteFile(output, s); err != nil {
			shared.PrintError(cmd.ErrOrStderr(), err)
			return shared.NewExitError(shared.ExitInvalidArguments)
		}
		return nil
	},
}

func init() {
	statsCmd.GroupID = shared.GroupInspection
	statsCmd.Flags().StringP("output", "o", "", "Also write statistics to this file (.json, .yaml or .yml)")
}
