package check

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/contentlint/internal/cli/shared"
)

// reportFlagKeys are the validate and watch flags that override config keys.
var reportFlagKeys = shared.FlagKeys{
	"report":          "report_path",
	"metrics-file":    "metrics_file",
	"warning-preview": "warning_preview",
	"missing-preview": "missing_preview",
	"max-parallel":    "max_parallel",
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the content tree and write a report",
	Long: `Validate every habit, research, goal and locale file under the content root.

Each file is checked against its record schema, business rules, cross references
and translation completeness. Errors fail the run; warnings are reported only.

The full report is written to report_path (JSON or YAML by extension).`,
	Example: `  # Validate with the configured content root
  contentlint validate

  # Validate another tree and write a YAML report
  contentlint validate --content-dir ./content --report out/report.yaml

  # Also write Prometheus textfile metrics
  contentlint validate --metrics-file /var/lib/node_exporter/contentlint.prom`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd, reportFlagKeys)
		if err != nil {
			return err
		}

		r := newRunner(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), slog.Default())
		r.byCode, _ = cmd.Flags().GetBool("by-code")

		if code := r.run(cmd.Context()); code != shared.ExitSuccess {
			return shared.NewExitError(code)
		}
		return nil
	},
}

func init() {
	validateCmd.GroupID = shared.GroupValidation
	addReportFlags(validateCmd)
	validateCmd.Flags().Bool("by-code", false, "Print issue counts per code after the summary")
}

// addReportFlags registers the flags shared by validate and watch.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("report", "o", "", "Report path (.json, .yaml or .yml)")
	cmd.Flags().String("metrics-file", "", "Write Prometheus textfile metrics to this path")
	cmd.Flags().Int("warning-preview", 0, "Warnings listed on the console")
	cmd.Flags().Int("missing-preview", 0, "Missing IDs named per completeness warning")
	cmd.Flags().Int("max-parallel", 0, "Content files read concurrently")
}
