package langs

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// nodeText returns the verbatim source slice covered by n.
func nodeText(n *tree_sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	start, end := n.StartByte(), n.EndByte()
	if start > end || int(end) > len(source) {
		return ""
	}
	return string(source[start:end])
}

// lineRange returns the 1-based, closed [start, end] line interval n
// spans.
func lineRange(n *tree_sitter.Node) (int, int) {
	return int(n.StartPosition().Row) + 1, int(n.EndPosition().Row) + 1
}

// children returns every direct child of n as a slice, named and
// anonymous alike, in source order.
func children(n *tree_sitter.Node) []*tree_sitter.Node {
	count := int(n.ChildCount())
	out := make([]*tree_sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		c := n.Child(uint(i))
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// namedChildren returns every named direct child of n, in source order.
func namedChildren(n *tree_sitter.Node) []*tree_sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*tree_sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		c := n.NamedChild(uint(i))
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// field is a short alias for ChildByFieldName with a nil-safe receiver.
func field(n *tree_sitter.Node, name string) *tree_sitter.Node {
	if n == nil {
		return nil
	}
	return n.ChildByFieldName(name)
}

// trimQuotes strips a single layer of matching quote characters
// ("...", '...' or `...`) from a raw string-literal token.
func trimQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
