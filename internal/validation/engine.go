package validation

import (
	"context"
	"log/slog"
	"time"

	"github.com/ariel-frischer/contentlint/internal/content"
)

// SnapshotLoader loads the content snapshot for a run.
type SnapshotLoader interface {
	Load(ctx context.Context) (*content.Snapshot, error)
}

// Options configures an Engine.
type Options struct {
	// MissingPreview bounds the IDs named in each completeness warning.
	MissingPreview int
	// Now returns the current time; defaults to time.Now.
	Now func() time.Time
	// Logger receives stage diagnostics; defaults to slog.Default().
	Logger *slog.Logger
}

// Result is the outcome of one validation run. Issues are sorted by file, then index.
type Result struct {
	Snapshot  *content.Snapshot
	Issues    []Issue
	StartedAt time.Time
	Duration  time.Duration
}

// Passed reports whether the run produced no errors.
func (r *Result) Passed() bool {
	for _, i := range r.Issues {
		if i.IsError() {
			return false
		}
	}
	return true
}

// Engine runs the validation pipeline: load, structural checks, business rules,
// cross-references and completeness.
type Engine struct {
	loader SnapshotLoader
	opts   Options
}

// NewEngine creates an engine that validates what loader returns.
func NewEngine(loader SnapshotLoader, opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MissingPreview <= 0 {
		opts.MissingPreview = DefaultMissingPreview
	}
	return &Engine{loader: loader, opts: opts}
}

// Run executes one validation run. Content defects are returned as issues; an error
// is returned only when no content could be checked at all.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := e.opts.Now()

	snap, err := e.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	issues := e.Validate(snap, start)

	return &Result{
		Snapshot:  snap,
		Issues:    issues,
		StartedAt: start,
		Duration:  e.opts.Now().Sub(start),
	}, nil
}

// Validate runs every validator over an already loaded snapshot and returns the
// sorted issue list.
func (e *Engine) Validate(snap *content.Snapshot, now time.Time) []Issue {
	log := e.opts.Logger
	registry := NewRegistry(now)
	structural := NewStructuralValidator(registry)
	rules := NewRuleValidator(now)
	crossref := NewCrossReferenceValidator(e.opts.MissingPreview)

	issues := LoadIssues(snap)

	for _, f := range snap.Files {
		issues = append(issues, structural.ValidateFile(f)...)
	}
	log.Debug("structural checks complete", slog.Int("issues", len(issues)))

	for _, f := range snap.Files {
		issues = append(issues, rules.ValidateFile(f)...)
	}
	for _, t := range content.Types {
		if !t.IsRecordList() {
			continue
		}
		for _, lang := range content.Languages {
			issues = append(issues, ValidateDuplicates(snap.FilesFor(t, lang))...)
		}
	}
	log.Debug("business rules complete", slog.Int("issues", len(issues)))

	issues = append(issues, crossref.Validate(snap)...)
	log.Debug("cross-reference checks complete", slog.Int("issues", len(issues)))

	SortIssues(issues)
	return issues
}
