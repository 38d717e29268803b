// Package watch re-runs validation when content files change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for more changes before a run.
const DefaultDebounce = 300 * time.Millisecond

// ChangeFunc is called once per debounced batch with the changed paths, relative to
// the watched root and sorted.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher watches a content root recursively for JSON file changes.
type Watcher struct {
	root     string
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
	ignored  map[string]bool
}

// New creates a watcher for root. A non-positive debounce selects DefaultDebounce.
func New(root string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{root: root, debounce: debounce, logger: logger, fsw: fsw, ignored: make(map[string]bool)}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Ignore excludes files from change detection, e.g. the report the run itself
// writes. Empty paths are skipped. Call before Run.
func (w *Watcher) Ignore(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		w.ignored[absPath(p)] = true
	}
}

// Run delivers debounced change batches to onChange until ctx is cancelled, then
// closes the watcher.
func (w *Watcher) Run(ctx context.Context, onChange ChangeFunc) error {
	defer w.fsw.Close()

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.handle(event) {
				continue
			}
			pending[w.rel(event.Name)] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", slog.Any("error", err))

		case <-fire:
			fire = nil
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)

			w.logger.Debug("content changed", slog.Int("files", len(changed)))
			onChange(ctx, changed)
		}
	}
}

// handle reports whether event concerns a content file. Newly created directories
// are added to the watch set.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", slog.String("path", event.Name), slog.Any("error", err))
			}
			return false
		}
	}
	if w.ignored[absPath(event.Name)] {
		return false
	}
	return isContentEvent(event)
}

// isContentEvent reports whether event changes a .json file.
func isContentEvent(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if base := d.Name(); path != dir && strings.HasPrefix(base, ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		w.logger.Debug("watching directory", slog.String("path", path))
		return nil
	})
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
