// Package pipeline wires the walker, the language registry and the
// stripper into the directory-level distillation operation: walk,
// dispatch to a worker pool, collect, sort by discovery order.
package pipeline

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/distil/internal/distilerr"
	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/langs"
	"github.com/standardbeagle/distil/internal/options"
	"github.com/standardbeagle/distil/internal/stripper"
	"github.com/standardbeagle/distil/internal/walker"
	"github.com/standardbeagle/distil/pkg/pathutil"
)

// Processor drives directory-rooted distillation against a language
// registry. The zero value is not usable; build one with New.
type Processor struct {
	registry *langs.Registry
}

// New builds a Processor against the given registry.
func New(registry *langs.Registry) *Processor {
	return &Processor{registry: registry}
}

// fileResult holds one processed file, or the error processing it
// failed with; each result is stored at its file's discovery index.
type fileResult struct {
	file *ir.File
	err  error
}

// ProcessDirectory walks root, processes every discovered file in
// parallel, and returns a Directory whose children are the resulting
// Files sorted by discovery index, stripped per opts. When
// opts.ContinueOnError is false, the first error aborts the run and is
// returned; otherwise failed files are silently omitted.
func (p *Processor) ProcessDirectory(ctx context.Context, root string, opts options.ProcessOptions) (*ir.Directory, error) {
	discovered, err := walker.Walk(root, opts)
	if err != nil {
		return nil, err
	}

	results := make([]fileResult, len(discovered))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.WorkerCount())

	for i, d := range discovered {
		i, d := i, d
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			file, perr := p.processFile(d.Path, root, opts)
			if perr != nil {
				if !opts.ContinueOnError {
					return perr
				}
				results[i] = fileResult{err: perr}
				return nil
			}
			results[i] = fileResult{file: file}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dir := &ir.Directory{Path: root, Children: []ir.Node{}}
	for _, r := range results {
		if r.file == nil {
			continue
		}
		dir.Children = append(dir.Children, r.file)
	}
	return dir, nil
}

// ProcessFile processes a single file outside of a directory walk,
// applying the same extractor-lookup, read and strip steps.
func (p *Processor) ProcessFile(path string, opts options.ProcessOptions) (*ir.File, error) {
	return p.processFile(path, "", opts)
}

func (p *Processor) processFile(path, root string, opts options.ProcessOptions) (*ir.File, error) {
	extractor := p.registry.FindProcessor(path)
	if extractor == nil {
		return nil, distilerr.NewUnsupportedLanguageError(path, extOf(path))
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, distilerr.NewIOError("read", path, err)
	}

	outPath := path
	if root != "" {
		switch opts.FilePathType {
		case options.PathAbsolute:
			outPath = pathutil.ToAbsolute(path, root)
		default:
			outPath = pathutil.ToRelative(path, root)
		}
	}

	file, err := extractor.Process(string(source), outPath, opts)
	if err != nil {
		return nil, err
	}
	stripper.New(opts).VisitNode(file)
	return file, nil
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}
