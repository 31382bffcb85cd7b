// Package options defines ProcessOptions, the single configuration
// object threaded through the stripper, the pipeline and every
// extractor.
package options

import "runtime"

// PathType selects how File.Path is rendered by the pipeline.
type PathType string

const (
	PathRelative PathType = "relative"
	PathAbsolute PathType = "absolute"
)

// ProcessOptions controls what content is included in the distilled
// output and how processing is performed. The field set is closed —
// extractors, the stripper and every collaborator assume exactly this
// shape.
type ProcessOptions struct {
	// Visibility filtering.
	IncludePublic    bool
	IncludeProtected bool
	IncludeInternal  bool
	IncludePrivate   bool

	// Content filtering.
	IncludeComments       bool
	IncludeDocstrings     bool
	IncludeImplementation bool
	IncludeImports        bool
	IncludeAnnotations    bool
	IncludeFields         bool
	IncludeMethods        bool

	// Processing configuration.
	RawMode   bool
	Workers   int
	Recursive bool

	// Path configuration.
	FilePathType       PathType
	RelativePathPrefix string
	BasePath           string

	// Pattern filtering.
	IncludePatterns []string
	ExcludePatterns []string

	// Error handling.
	ContinueOnError bool
}

// Default returns the default ProcessOptions: public APIs only,
// signatures with docstrings, parallel recursive processing, relative
// paths, fail-fast.
func Default() ProcessOptions {
	return ProcessOptions{
		IncludePublic:    true,
		IncludeProtected: false,
		IncludeInternal:  false,
		IncludePrivate:   false,

		IncludeComments:       false,
		IncludeDocstrings:     true,
		IncludeImplementation: false,
		IncludeImports:        true,
		IncludeAnnotations:    true,
		IncludeFields:         true,
		IncludeMethods:        true,

		RawMode:   false,
		Workers:   0,
		Recursive: true,

		FilePathType: PathRelative,

		ContinueOnError: false,
	}
}

// WorkerCount returns the number of worker goroutines to use: the
// explicit Workers setting, or 80% of available hardware parallelism
// (floored to 1) when Workers is 0.
func (o ProcessOptions) WorkerCount() int {
	if o.Workers != 0 {
		return o.Workers
	}
	cpus := runtime.NumCPU()
	n := cpus * 4 / 5
	if n < 1 {
		n = 1
	}
	return n
}

// HasVisibilityFilters reports whether any non-public visibility is
// enabled, or public is disabled — i.e. whether the visibility filter
// isn't the trivial "public only, always true" case.
func (o ProcessOptions) HasVisibilityFilters() bool {
	return !o.IncludePublic || o.IncludeProtected || o.IncludeInternal || o.IncludePrivate
}

// ShouldStripContent reports whether the stripper would change the
// tree: raw mode is off and some content filter or visibility filter is
// active.
func (o ProcessOptions) ShouldStripContent() bool {
	return !o.RawMode &&
		(!o.IncludeComments || !o.IncludeDocstrings || !o.IncludeImplementation ||
			!o.IncludeImports || !o.IncludeAnnotations || !o.IncludeFields ||
			!o.IncludeMethods || o.HasVisibilityFilters())
}

// IsVisibilityEnabled reports whether a given visibility level should be
// kept in output.
func (o ProcessOptions) IsVisibilityEnabled(v string) bool {
	switch v {
	case "public":
		return o.IncludePublic
	case "protected":
		return o.IncludeProtected
	case "internal":
		return o.IncludeInternal
	case "private":
		return o.IncludePrivate
	default:
		return false
	}
}

// Builder provides a fluent construction API for ProcessOptions.
type Builder struct {
	opts ProcessOptions
}

// NewBuilder starts a Builder from the default options.
func NewBuilder() *Builder {
	return &Builder{opts: Default()}
}

func (b *Builder) IncludePublic(v bool) *Builder    { b.opts.IncludePublic = v; return b }
func (b *Builder) IncludeProtected(v bool) *Builder { b.opts.IncludeProtected = v; return b }
func (b *Builder) IncludeInternal(v bool) *Builder  { b.opts.IncludeInternal = v; return b }
func (b *Builder) IncludePrivate(v bool) *Builder   { b.opts.IncludePrivate = v; return b }

func (b *Builder) IncludeComments(v bool) *Builder    { b.opts.IncludeComments = v; return b }
func (b *Builder) IncludeDocstrings(v bool) *Builder  { b.opts.IncludeDocstrings = v; return b }
func (b *Builder) IncludeImplementation(v bool) *Builder {
	b.opts.IncludeImplementation = v
	return b
}
func (b *Builder) IncludeImports(v bool) *Builder     { b.opts.IncludeImports = v; return b }
func (b *Builder) IncludeAnnotations(v bool) *Builder { b.opts.IncludeAnnotations = v; return b }
func (b *Builder) IncludeFields(v bool) *Builder      { b.opts.IncludeFields = v; return b }
func (b *Builder) IncludeMethods(v bool) *Builder     { b.opts.IncludeMethods = v; return b }

func (b *Builder) RawMode(v bool) *Builder   { b.opts.RawMode = v; return b }
func (b *Builder) Workers(n int) *Builder    { b.opts.Workers = n; return b }
func (b *Builder) Recursive(v bool) *Builder { b.opts.Recursive = v; return b }

func (b *Builder) FilePathType(t PathType) *Builder       { b.opts.FilePathType = t; return b }
func (b *Builder) RelativePathPrefix(p string) *Builder   { b.opts.RelativePathPrefix = p; return b }
func (b *Builder) BasePath(p string) *Builder             { b.opts.BasePath = p; return b }
func (b *Builder) IncludePatterns(p []string) *Builder    { b.opts.IncludePatterns = p; return b }
func (b *Builder) ExcludePatterns(p []string) *Builder    { b.opts.ExcludePatterns = p; return b }
func (b *Builder) ContinueOnError(v bool) *Builder        { b.opts.ContinueOnError = v; return b }

// Build returns the constructed ProcessOptions.
func (b *Builder) Build() ProcessOptions { return b.opts }
