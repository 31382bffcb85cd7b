// Package parserpool implements a thread-safe, per-language cache of
// reusable tree-sitter parser instances. Parser construction loads a
// grammar table and is expensive; pooling amortizes that cost across
// files of the same language.
package parserpool

import (
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/distil/internal/distilerr"
)

// DefaultCap is the default maximum number of cached parsers per
// language.
const DefaultCap = 32

// Loader constructs a *tree_sitter.Language for a language tag. It is
// only invoked when the pool has no cached parser for that language.
type Loader func() (*tree_sitter.Language, error)

// Pool is a bounded, per-language stack of tree-sitter parsers.
type Pool struct {
	mu      sync.Mutex
	stacks  map[string][]*tree_sitter.Parser
	maxPerL int
}

// New creates a Pool with the given per-language cap. A cap below 1 is
// raised to 1.
func New(maxPerLanguage int) *Pool {
	if maxPerLanguage < 1 {
		maxPerLanguage = 1
	}
	return &Pool{
		stacks:  make(map[string][]*tree_sitter.Parser),
		maxPerL: maxPerLanguage,
	}
}

// Default builds a Pool with DefaultCap parsers cached per language.
func Default() *Pool { return New(DefaultCap) }

// Lease grants exclusive access to one parser instance. Release must be
// called exactly once, typically via defer, to return the parser to the
// pool or discard it if the pool is at capacity.
type Lease struct {
	parser   *tree_sitter.Parser
	language string
	pool     *Pool
	released bool
}

// Parser returns the leased parser.
func (l *Lease) Parser() *tree_sitter.Parser { return l.parser }

// Release returns the parser to its pool. Safe to call multiple times;
// only the first call has effect.
func (l *Lease) Release() {
	if l.released {
		return
	}
	l.released = true
	l.pool.release(l.language, l.parser)
}

// Acquire returns a leased parser for language. If a previously
// constructed parser is cached, its state is reset and it is returned
// immediately; otherwise loader is invoked (outside any lock) to build
// the grammar, and a fresh parser is constructed.
func (p *Pool) Acquire(language string, loader Loader) (*Lease, error) {
	p.mu.Lock()
	stack := p.stacks[language]
	if n := len(stack); n > 0 {
		parser := stack[n-1]
		p.stacks[language] = stack[:n-1]
		p.mu.Unlock()
		parser.Reset()
		return &Lease{parser: parser, language: language, pool: p}, nil
	}
	p.mu.Unlock()

	lang, err := loader()
	if err != nil {
		return nil, distilerr.NewParseError(language, "", "failed to load grammar", err)
	}

	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, distilerr.NewParseError(language, "", "failed to set language", err)
	}

	return &Lease{parser: parser, language: language, pool: p}, nil
}

func (p *Pool) release(language string, parser *tree_sitter.Parser) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.stacks[language]) < p.maxPerL {
		p.stacks[language] = append(p.stacks[language], parser)
	}
	// Otherwise the parser is dropped and left for the garbage collector.
}

// LanguageStats reports how many parsers are currently cached for one
// language.
type LanguageStats struct {
	Language  string
	Available int
}

// Stats reports current pool occupancy across all languages, useful for
// diagnostics and tests.
func (p *Pool) Stats() []LanguageStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	stats := make([]LanguageStats, 0, len(p.stacks))
	for lang, stack := range p.stacks {
		stats = append(stats, LanguageStats{Language: lang, Available: len(stack)})
	}
	return stats
}
