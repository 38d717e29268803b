package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ariel-frischer/contentlint/internal/cli/shared"
	"github.com/ariel-frischer/contentlint/internal/config"
	"github.com/ariel-frischer/contentlint/internal/content"
	"github.com/ariel-frischer/contentlint/internal/progress"
	"github.com/ariel-frischer/contentlint/internal/report"
	"github.com/ariel-frischer/contentlint/internal/validation"
)

// runner performs validation passes for the validate and watch commands.
type runner struct {
	cfg     *config.Configuration
	out     io.Writer
	errOut  io.Writer
	logger  *slog.Logger
	display *progress.Display
	metrics *report.Metrics
	engine  *validation.Engine
	byCode  bool
}

func newRunner(cfg *config.Configuration, out, errOut io.Writer, logger *slog.Logger) *runner {
	loader := content.NewLoader(cfg.ContentDir, cfg.ContentLayout(),
		content.WithMaxParallel(cfg.MaxParallel),
		content.WithLogger(logger),
	)

	return &runner{
		cfg:     cfg,
		out:     out,
		errOut:  errOut,
		logger:  logger,
		display: progress.NewDisplay(progress.DetectTerminalCapabilities(errOut), errOut),
		metrics: report.NewMetrics(),
		engine: validation.NewEngine(loader, validation.Options{
			MissingPreview: cfg.MissingPreview,
			Logger:         logger,
		}),
	}
}

// run executes one validation pass, writes the report and prints the summary.
// It returns the process exit code for the pass.
func (r *runner) run(ctx context.Context) int {
	validateStep := progress.Step{Name: "validating content", Number: 1, Total: 2, Status: progress.StepInProgress}
	if err := r.display.Start(validateStep); err != nil {
		r.logger.Debug("progress display unavailable", slog.Any("error", err))
	}

	res, err := r.engine.Run(ctx)
	if err != nil {
		r.display.Fail(validateStep, err)
		shared.PrintError(r.errOut, err)
		if errors.Is(err, content.ErrContentRootMissing) {
			return shared.ExitMissingContent
		}
		return shared.ExitValidationFailed
	}

	rep := report.New(res)
	r.display.Complete(validateStep, fmt.Sprintf("%d files", rep.Summary.FilesValidated))

	writeStep := progress.Step{Name: "writing report", Number: 2, Total: 2, Status: progress.StepInProgress}
	if err := r.display.Start(writeStep); err != nil {
		r.logger.Debug("progress display unavailable", slog.Any("error", err))
	}
	if err := r.persist(rep); err != nil {
		r.display.Fail(writeStep, err)
		shared.PrintError(r.errOut, err)
		return shared.ExitValidationFailed
	}
	r.display.Complete(writeStep, r.cfg.ReportPath)

	report.Print(r.out, rep, r.cfg.WarningPreview)
	if r.byCode {
		report.PrintByCode(r.out, rep)
	}

	r.logger.Debug("validation pass finished",
		slog.Bool("passed", rep.Passed),
		slog.Int("errors", rep.Summary.Errors),
		slog.Int("warnings", rep.Summary.Warnings),
		slog.Int64("duration_ms", rep.DurationMs))

	if !rep.Passed {
		return shared.ExitValidationFailed
	}
	return shared.ExitSuccess
}

// persist saves the report and, when configured, the metrics textfile.
func (r *runner) persist(rep *report.Report) error {
	if err := rep.Save(r.cfg.ReportPath); err != nil {
		return err
	}
	if r.cfg.MetricsFile == "" {
		return nil
	}
	r.metrics.Observe(rep)
	return r.metrics.WriteTextfile(r.cfg.MetricsFile)
}
