package langs

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/distil/internal/distilerr"
	"github.com/standardbeagle/distil/internal/parserpool"
)

// pool is the process-wide parser cache shared by every extractor.
var pool = parserpool.Default()

// parseTree leases a parser for tag, parses source and returns the
// resulting tree. The lease is released before returning: tree-sitter
// trees stay valid after the parser that produced them is reused, so
// the caller has nothing to release.
func parseTree(tag string, loader parserpool.Loader, source []byte) (*tree_sitter.Tree, error) {
	lease, err := pool.Acquire(tag, loader)
	if err != nil {
		return nil, err
	}
	defer lease.Release()

	tree := lease.Parser().Parse(source, nil)
	if tree == nil || tree.RootNode() == nil {
		return nil, distilerr.NewParseError(tag, "", "parser returned no tree", nil)
	}
	return tree, nil
}
