// Package langs defines the common Extractor contract, one implementation
// per supported language (each in its own file of this package), plus the
// ordered Registry used by the pipeline to pick an extractor for a file.
package langs

import (
	"path/filepath"
	"strings"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

// Extractor turns source text into IR. Implementations are pure:
// process(source, path, options) -> File and never touch the filesystem
// or keep ambient state beyond a leased parser.
type Extractor interface {
	// LanguageTag is the stable identifier used as the parser-pool key
	// and for diagnostics (e.g. "python", "go", "c-sharp").
	LanguageTag() string

	// Extensions lists recognized file extensions (including the dot,
	// e.g. ".py") and any filename allow-list entries (e.g. "Rakefile").
	Extensions() []string

	// CanProcess reports whether path matches this extractor by
	// extension or filename allow-list.
	CanProcess(path string) bool

	// Process parses source into a File node. Malformed input must
	// never panic; a partial tree (whatever the underlying parser
	// recovers) is returned instead of failing outright, except where
	// the grammar truly cannot be loaded or invoked, in which case an
	// error is returned.
	Process(source, path string, opts options.ProcessOptions) (*ir.File, error)
}

// DefaultCanProcess implements the common extension/filename matching
// rule shared by every extractor: a case-sensitive filename match, or a
// case-insensitive extension match.
func DefaultCanProcess(path string, extensions, filenames []string) bool {
	base := filepath.Base(path)
	for _, fn := range filenames {
		if base == fn {
			return true
		}
	}
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// Registry is an ordered list of extractors. FindProcessor returns the
// first extractor whose CanProcess matches, per registration order —
// first match wins.
type Registry struct {
	extractors []Extractor
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends an extractor to the registry.
func (r *Registry) Register(e Extractor) {
	r.extractors = append(r.extractors, e)
}

// FindProcessor returns the first registered extractor that can process
// path, or nil if none match.
func (r *Registry) FindProcessor(path string) Extractor {
	for _, e := range r.extractors {
		if e.CanProcess(path) {
			return e
		}
	}
	return nil
}

// All returns every registered extractor, in registration order.
func (r *Registry) All() []Extractor {
	return r.extractors
}

// NewDefaultRegistry builds a Registry with all thirteen shipped
// extractors registered. The pipeline and the CLI/RPC collaborators use
// this as their language registry unless a caller needs a subset.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewPythonExtractor())
	r.Register(NewGoExtractor())
	r.Register(NewJavaScriptExtractor())
	r.Register(NewTypeScriptExtractor())
	r.Register(NewJavaExtractor())
	r.Register(NewKotlinExtractor())
	r.Register(NewCSharpExtractor())
	r.Register(NewRustExtractor())
	r.Register(NewSwiftExtractor())
	r.Register(NewRubyExtractor())
	r.Register(NewPHPExtractor())
	r.Register(NewCExtractor())
	r.Register(NewCppExtractor())
	return r
}
