package check

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/contentlint/internal/cli/shared"
	"github.com/ariel-frischer/contentlint/internal/watch"
)

var watchFlagKeys = shared.FlagKeys{"debounce": "watch_debounce_ms"}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate whenever content files change",
	Long: `Validate once, then watch the content root and validate again after every
batch of .json changes. Runs until interrupted; validation failures are reported
but never stop the watch.`,
	Example: `  # Watch the configured content root
  contentlint watch

  # Wait one second of quiet before re-validating
  contentlint watch --debounce 1000`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd, reportFlagKeys, watchFlagKeys)
		if err != nil {
			return err
		}

		logger := slog.Default()
		r := newRunner(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)

		w, err := watch.New(cfg.ContentDir, cfg.WatchDebounce(), logger)
		if err != nil {
			shared.PrintError(cmd.ErrOrStderr(), err)
			if errors.Is(err, fs.ErrNotExist) {
				return shared.NewExitError(shared.ExitMissingContent)
			}
			return shared.NewExitError(shared.ExitInvalidArguments)
		}
		w.Ignore(cfg.ReportPath, cfg.MetricsFile)

		return watchLoop(cmd.Context(), r, w)
	},
}

func init() {
	watchCmd.GroupID = shared.GroupValidation
	addReportFlags(watchCmd)
	watchCmd.Flags().Int("debounce", 0, "Quiet period in milliseconds before re-validating")
}

// changeWatcher is the part of watch.Watcher the loop depends on.
type changeWatcher interface {
	Run(ctx context.Context, onChange watch.ChangeFunc) error
}

// watchLoop validates once, then once per change batch until ctx is cancelled.
func watchLoop(ctx context.Context, r *runner, w changeWatcher) error {
	dim := shared.NewColors().Dim

	r.run(ctx)
	fmt.Fprintln(r.out, dim(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", r.cfg.ContentDir)))

	err := w.Run(ctx, func(ctx context.Context, changed []string) {
		fmt.Fprintf(r.out, "\nChanged: %s\n", strings.Join(changed, ", "))
		r.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w", r.cfg.ContentDir, err)
	}
	return nil
}
