// Package stripper implements the single-pass IR-to-IR transform that
// enforces visibility, content and member-category filters uniformly
// across every language.
package stripper

import (
	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

// Stripper applies a fixed ProcessOptions to a tree in place.
type Stripper struct {
	opts options.ProcessOptions
}

// New builds a Stripper for the given options.
func New(opts options.ProcessOptions) *Stripper {
	return &Stripper{opts: opts}
}

// VisitNode applies the stripper to n and its descendants in place. If
// RawMode is set the tree is left untouched (raw-mode is an identity
// transform).
func (s *Stripper) VisitNode(n ir.Node) {
	if s.opts.RawMode {
		return
	}
	s.visit(n)
}

func (s *Stripper) visit(n ir.Node) {
	switch v := n.(type) {
	case *ir.Directory:
		v.Children = s.filterChildren(v.Children, false)
		for _, c := range v.Children {
			s.visit(c)
		}
	case *ir.File:
		v.Children = s.filterChildren(v.Children, false)
		for _, c := range v.Children {
			s.visit(c)
		}
	case *ir.Package:
		v.Children = s.filterChildren(v.Children, false)
		for _, c := range v.Children {
			s.visit(c)
		}
		if !s.opts.IncludeAnnotations {
			// Package carries no decorators of its own.
		}
	case *ir.Class:
		if !s.opts.IncludeAnnotations {
			v.Decorators = nil
		}
		v.Children = s.filterChildren(v.Children, true)
		for _, c := range v.Children {
			s.visit(c)
		}
	case *ir.Interface:
		v.Children = s.filterChildren(v.Children, true)
		for _, c := range v.Children {
			s.visit(c)
		}
	case *ir.Struct:
		v.Children = s.filterChildren(v.Children, true)
		for _, c := range v.Children {
			s.visit(c)
		}
	case *ir.Enum:
		v.Children = s.filterChildren(v.Children, true)
		for _, c := range v.Children {
			s.visit(c)
		}
	case *ir.Function:
		if !s.opts.IncludeAnnotations {
			v.Decorators = nil
		}
		if !s.opts.IncludeImplementation {
			v.Implementation = nil
		}
	case *ir.Field:
		// Field has no decorators field in the IR; nothing else to do
		// beyond the container-level inclusion filter applied by the
		// parent's filterChildren.
	case *ir.Comment, *ir.RawContent, *ir.Import, *ir.TypeAlias:
		// Leaves; handled entirely by the parent's filterChildren.
	}
}

// filterChildren applies the content and visibility filters to one
// container's children list. insideContainer distinguishes top-level
// File/Directory/Package children (where IncludeMethods never applies)
// from Class/Interface/Struct/Enum children.
func (s *Stripper) filterChildren(children []ir.Node, insideContainer bool) []ir.Node {
	out := children[:0:0]
	for _, c := range children {
		if s.keep(c, insideContainer) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Stripper) keep(n ir.Node, insideContainer bool) bool {
	switch v := n.(type) {
	case *ir.Import:
		return s.opts.IncludeImports
	case *ir.Comment:
		if !s.opts.IncludeComments {
			return false
		}
		if v.Format == ir.CommentDoc && !s.opts.IncludeDocstrings {
			return false
		}
		return true
	case *ir.Field:
		if !s.opts.IncludeFields {
			return false
		}
		return s.opts.IsVisibilityEnabled(string(v.Visibility))
	case *ir.Function:
		if insideContainer && !s.opts.IncludeMethods {
			return false
		}
		return s.opts.IsVisibilityEnabled(string(v.Visibility))
	default:
		// Classes, interfaces, structs, enums, type aliases, packages,
		// raw content: always kept at this level; their own children
		// are filtered recursively by visit().
		return true
	}
}
