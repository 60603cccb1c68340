// Package batch parses many files concurrently. Parsers hold mutable
// config, so every worker builds its own registry; results come back in
// input order.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lensforge/syntaxlens/internal/ast"
	"github.com/lensforge/syntaxlens/internal/parser"
)

// FileResult is the outcome for one file. Read and dispatch failures
// land in Err; syntax failures live inside Result per the parser
// contract.
type FileResult struct {
	Path   string
	Result *parser.Result
	Err    error
}

// Runner fans file parses out over a bounded worker pool.
type Runner struct {
	newRegistry func() *parser.Registry
	workers     int
	exclude     func(string) bool
	logger      *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers bounds the worker pool. Values below 1 keep the default.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithExclude skips paths the predicate matches, directories included.
func WithExclude(fn func(string) bool) Option {
	return func(r *Runner) { r.exclude = fn }
}

// WithLogger routes per-file diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// NewRunner builds a Runner. newRegistry is called once per worker so
// parser instances are never shared across goroutines.
func NewRunner(newRegistry func() *parser.Registry, opts ...Option) *Runner {
	r := &Runner{
		newRegistry: newRegistry,
		workers:     runtime.GOMAXPROCS(0),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers < 1 {
		r.workers = 1
	}
	return r
}

// Collect walks root and returns every file some registered parser can
// handle, honoring the exclude predicate for files and whole directories.
func (r *Runner) Collect(root string) ([]string, error) {
	reg := r.newRegistry()
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && r.excluded(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if r.excluded(path) {
			return nil
		}
		if _, ok := reg.GetByFilename(path); !ok {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}

// Run parses every path concurrently and returns one result per path,
// in input order. Per-file failures are recorded, not fatal; the
// returned error is non-nil only when the context is canceled.
func (r *Runner) Run(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	indexes := make(chan int)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(indexes)
		for i := range paths {
			select {
			case indexes <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	workers := min(r.workers, len(paths))
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			reg := r.newRegistry()
			for i := range indexes {
				results[i] = r.parseOne(reg, paths[i])
			}
			return nil
		})
	}

	err := g.Wait()
	return results, err
}

func (r *Runner) parseOne(reg *parser.Registry, path string) FileResult {
	p, ok := reg.GetByFilename(path)
	if !ok {
		return FileResult{Path: path, Err: fmt.Errorf("no registered parser accepts %q", filepath.Base(path))}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Warn("read failed", "path", path, "err", err)
		return FileResult{Path: path, Err: err}
	}

	res := p.Parse(string(data), path)
	r.logger.Debug("parsed",
		"path", path,
		"language", p.LanguageID(),
		"nodes", res.Metadata.NodeCount,
		"errors", len(res.Errors))
	return FileResult{Path: path, Result: res}
}

func (r *Runner) excluded(path string) bool {
	return r.exclude != nil && r.exclude(path)
}

// Summary aggregates a batch run.
type Summary struct {
	Files   int         `json:"files"`
	Parsed  int         `json:"parsed"`
	Failed  int         `json:"failed"`
	Metrics ast.Metrics `json:"metrics"`
}

// Summarize folds per-file metrics into one table. Counts and
// complexity sum across files; depth is the maximum seen.
func Summarize(results []FileResult) Summary {
	s := Summary{Files: len(results)}
	for _, fr := range results {
		if fr.Err != nil || fr.Result == nil || fr.Result.HasErrors() {
			s.Failed++
			continue
		}
		s.Parsed++
		m := ast.ExtractMetrics(fr.Result.AST)
		s.Metrics.Functions += m.Functions
		s.Metrics.Classes += m.Classes
		s.Metrics.Variables += m.Variables
		s.Metrics.Conditionals += m.Conditionals
		s.Metrics.Loops += m.Loops
		s.Metrics.Complexity += m.Complexity
		s.Metrics.NodeCount += m.NodeCount
		s.Metrics.Depth = max(s.Metrics.Depth, m.Depth)
	}
	return s
}
