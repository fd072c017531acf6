package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"tolkfmt/internal/config"
	"tolkfmt/internal/diag"
	"tolkfmt/internal/format"
	"tolkfmt/internal/parser"
	"tolkfmt/internal/source"
	"tolkfmt/internal/trace"
)

// ErrNoFiles is returned when the inputs contain no .tolk files.
var ErrNoFiles = errors.New("No .tolk files found")

// Options configures a formatting run.
type Options struct {
	Format format.Options
	// Write rewrites changed files in place.
	Write bool
	// Verify re-parses every reformatted file and checks it round-trips before it is written.
	Verify bool
	// Jobs bounds the number of files formatted at once; 0 means GOMAXPROCS.
	Jobs     int
	Cache    *DiskCache
	Config   *config.Config
	Progress ProgressSink
}

// Result captures the result of formatting a single file.
type Result struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
	Original  []byte
	Duration  time.Duration
	Cached    bool
	// Syntax is the first syntax error of a file that did not parse and was left as is.
	Syntax *diag.Diagnostic
}

// FileError reports a file that could not be read, formatted or written.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("Cannot %s file %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// FormatPaths formats provided files or directories (recursively collecting .tolk files).
// Results follow the sorted file order; missing paths come first as failed results.
// Per-file failures are reported in Result.Err and never stop the other files.
func FormatPaths(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, missing, err := CollectFiles(ctx, paths, opts.Config)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(missing)+len(files))
	for _, p := range missing {
		results = append(results, Result{Path: p, Err: &PathError{Path: p}})
	}
	if len(files) == 0 {
		return results, ErrNoFiles
	}

	if opts.Format.Tracer == nil {
		opts.Format.Tracer = trace.FromContext(ctx)
	}
	for _, f := range files {
		report(opts.Progress, Event{File: f, Stage: StageRead, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	fileResults := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fileResults[i] = formatFile(path, &opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return append(results, fileResults...), err
	}
	return append(results, fileResults...), nil
}

// formatFile runs read, format and write for one file and reports progress.
func formatFile(path string, opts *Options) Result {
	start := time.Now()
	res := Result{Path: path}
	span := trace.Begin(opts.Format.Tracer, trace.ScopeFile, path, opts.Format.Parent)

	finish := func() Result {
		res.Duration = time.Since(start)
		status := StatusDone
		switch {
		case res.Err != nil:
			status = StatusError
		case res.Changed:
			status = StatusChanged
		}
		report(opts.Progress, Event{File: path, Stage: StageFormat, Status: status, Err: res.Err, Elapsed: res.Duration})
		span.WithExtra("changed", strconv.FormatBool(res.Changed)).WithExtra("cached", strconv.FormatBool(res.Cached))
		span.End(string(status))
		return res
	}

	report(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	// #nosec G304 -- path comes from the caller's inputs
	raw, err := os.ReadFile(path)
	if err != nil {
		res.Err = &FileError{Op: "read", Path: relPath(path), Err: err}
		return finish()
	}
	res.Original = raw
	content, _, err := source.Normalize(raw)
	if err != nil {
		res.Err = &FileError{Op: "read", Path: relPath(path), Err: err}
		return finish()
	}

	report(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusWorking})
	fopts := opts.Format
	fopts.Parent = span.ID()
	formatted, syntax, cached, err := formatContent(path, content, fopts, opts.Cache)
	if err != nil {
		res.Err = &FileError{Op: "format", Path: relPath(path), Err: err}
		return finish()
	}
	res.Formatted = formatted
	res.Syntax = syntax
	res.Cached = cached
	if syntax != nil {
		// файл с ошибкой разбора остаётся байт в байт, включая CRLF и BOM
		res.Formatted = raw
	}
	res.Changed = !bytes.Equal(raw, res.Formatted)

	if opts.Verify && res.Changed && syntax == nil {
		if ok, msg := format.CheckRoundTrip(string(content), fopts); !ok {
			res.Err = &FileError{Op: "verify", Path: relPath(path), Err: errors.New(msg)}
			return finish()
		}
	}
	if opts.Write && res.Changed {
		report(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		if err := writePreservingMode(path, res.Formatted); err != nil {
			res.Err = &FileError{Op: "write", Path: relPath(path), Err: err}
		}
	}
	return finish()
}

// formatContent consults the cache, then formats. A panic inside the
// formatter becomes an error for this file only.
func formatContent(path string, content []byte, fopts format.Options, cache *DiskCache) (out []byte, syntax *diag.Diagnostic, cached bool, err error) {
	key := CacheKey(content, fopts)
	var entry CacheEntry
	if hit, getErr := cache.Get(key, &entry); getErr == nil && hit {
		if !entry.Parsed {
			syntax = firstSyntaxError(path, content)
		}
		return []byte(entry.Formatted), syntax, true, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	formatted, err := format.Format(string(content), fopts)
	if err != nil {
		return nil, nil, false, err
	}
	parsed := true
	if formatted == string(content) {
		// Format возвращает исходник как есть и при синтаксической ошибке.
		syntax = firstSyntaxError(path, content)
		parsed = syntax == nil
	}
	// Ошибка записи кэша не мешает результату.
	_ = cache.Put(key, &CacheEntry{Formatted: formatted, Parsed: parsed})
	return []byte(formatted), syntax, false, nil
}

func firstSyntaxError(path string, content []byte) *diag.Diagnostic {
	tree, bag := parser.ParseFile(source.NewFile(path, content))
	if tree != nil && !bag.HasErrors() {
		return nil
	}
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			return &d
		}
	}
	return &diag.Diagnostic{Severity: diag.SevError, Code: diag.SynUnexpectedToken, Message: "syntax error"}
}

func writePreservingMode(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, data, mode.Perm())
}

// relPath returns path relative to the working directory when possible.
func relPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil {
		return path
	}
	return rel
}
