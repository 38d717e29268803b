package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// ErrContentRootMissing is returned when the content root directory does not exist.
// No content checks are possible, so callers abort the run.
var ErrContentRootMissing = errors.New("content root not found")

// File is one content file of a snapshot.
type File struct {
	Type     Type
	Language string
	// Path is slash-separated and relative to the content root.
	Path string
	// Exists is false when no file was found for the pattern.
	Exists bool
	// Data is the decoded JSON document, or EmptyValue(Type) when the file is
	// absent or could not be parsed.
	Data any
	// ParseErr is set when the file exists but could not be read or parsed.
	ParseErr error
}

// Snapshot holds every content file of one run in deterministic order:
// type order, then language order, then path.
type Snapshot struct {
	Root  string
	Files []*File
}

// FilesFor returns the files of one type and language.
func (s *Snapshot) FilesFor(t Type, lang string) []*File {
	var files []*File
	for _, f := range s.Files {
		if f.Type == t && f.Language == lang {
			files = append(files, f)
		}
	}
	return files
}

// FilesOfType returns all files of one type across languages.
func (s *Snapshot) FilesOfType(t Type) []*File {
	var files []*File
	for _, f := range s.Files {
		if f.Type == t {
			files = append(files, f)
		}
	}
	return files
}

// Loader discovers and parses the content files under a root directory.
type Loader struct {
	root        string
	layout      Layout
	maxParallel int
	logger      *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithMaxParallel bounds the number of concurrent file reads.
func WithMaxParallel(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.maxParallel = n
		}
	}
}

// WithLogger sets the logger used for discovery diagnostics.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader for the given root and layout.
func NewLoader(root string, layout Layout, opts ...LoaderOption) *Loader {
	l := &Loader{
		root:        root,
		layout:      layout,
		maxParallel: 4,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Root returns the content root directory.
func (l *Loader) Root() string {
	return l.root
}

// Load discovers every (type, language) file and parses it. Missing or malformed
// files do not fail the load; they are recorded on the File. Load only fails when
// the content root is missing, a layout pattern is invalid, or ctx is cancelled.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	info, err := os.Stat(l.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrContentRootMissing, l.root)
		}
		return nil, fmt.Errorf("checking content root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrContentRootMissing, l.root)
	}

	files, err := l.discover()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.maxParallel)
	for _, f := range files {
		if !f.Exists {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			l.read(f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.Debug("loaded content snapshot",
		slog.String("root", l.root),
		slog.Int("files", len(files)),
		slog.Duration("elapsed", time.Since(start)))

	return &Snapshot{Root: l.root, Files: files}, nil
}

// discover expands the layout into one File per matched path, plus a placeholder
// File for each (type, language) pair that matched nothing.
func (l *Loader) discover() ([]*File, error) {
	fsys := os.DirFS(l.root)
	var files []*File

	for _, t := range Types {
		for _, lang := range Languages {
			pattern := l.layout.Pattern(t, lang)

			var matches []string
			if hasGlobMeta(pattern) {
				if !doublestar.ValidatePattern(pattern) {
					return nil, fmt.Errorf("invalid layout pattern for %s: %q", t, pattern)
				}
				found, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
				if err != nil {
					return nil, fmt.Errorf("expanding layout pattern %q: %w", pattern, err)
				}
				sort.Strings(found)
				matches = found
			} else if fileExists(fsys, pattern) {
				matches = []string{pattern}
			}

			if len(matches) == 0 {
				l.logger.Debug("no content file found",
					slog.String("type", string(t)),
					slog.String("language", lang),
					slog.String("pattern", pattern))
				files = append(files, &File{
					Type:     t,
					Language: lang,
					Path:     pattern,
					Data:     EmptyValue(t),
				})
				continue
			}

			for _, m := range matches {
				files = append(files, &File{
					Type:     t,
					Language: lang,
					Path:     m,
					Exists:   true,
				})
			}
		}
	}

	return files, nil
}

// read fills in Data or ParseErr for an existing file.
func (l *Loader) read(f *File) {
	raw, err := os.ReadFile(filepath.Join(l.root, filepath.FromSlash(f.Path)))
	if err != nil {
		f.ParseErr = fmt.Errorf("reading file: %w", err)
		f.Data = EmptyValue(f.Type)
		return
	}

	data, err := Decode(raw)
	if err != nil {
		f.ParseErr = err
		f.Data = EmptyValue(f.Type)
		return
	}
	f.Data = data
}

// Decode parses a JSON document. Numbers are kept as json.Number so integer
// constraints can be checked exactly. A leading UTF-8 byte order mark is ignored.
func Decode(raw []byte) (any, error) {
	raw = stripBOM(raw)
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("file is empty")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, describeJSONError(raw, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	}
	return v, nil
}

// describeJSONError adds a line/column to syntax errors.
func describeJSONError(raw []byte, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := lineColumn(raw, syntaxErr.Offset)
		return fmt.Errorf("line %d, column %d: %s", line, col, syntaxErr.Error())
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.New("unexpected end of JSON input")
	}
	return err
}

// lineColumn converts a byte offset to a 1-based line and column.
func lineColumn(raw []byte, offset int64) (line, column int) {
	if offset > int64(len(raw)) {
		offset = int64(len(raw))
	}
	line, column = 1, 1
	for _, b := range raw[:offset] {
		if b == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}

func stripBOM(b []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(b) >= 3 && bytes.Equal(b[:3], bom) {
		return b[3:]
	}
	return b
}

func fileExists(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}
