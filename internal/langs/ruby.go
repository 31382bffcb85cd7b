package langs

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

type rubyExtractor struct{}

// NewRubyExtractor builds the Ruby extractor.
func NewRubyExtractor() Extractor { return &rubyExtractor{} }

func (rubyExtractor) LanguageTag() string  { return "ruby" }
func (rubyExtractor) Extensions() []string { return []string{".rb"} }
func (e rubyExtractor) CanProcess(path string) bool {
	return DefaultCanProcess(path, []string{".rb"}, []string{"Rakefile", "Gemfile"})
}

// visibilityRegion tracks the effect of a bare `private`/`protected`/
// `public` call inside a class/module body: every method defined after
// it, until the next region marker or the end of the body, inherits
// that visibility.
type visibilityRegion struct {
	current ir.Visibility
}

func (e rubyExtractor) Process(source, path string, opts options.ProcessOptions) (*ir.File, error) {
	src := []byte(source)
	tree, err := parseTree(e.LanguageTag(), loadRuby, src)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()

	file := &ir.File{Path: path, Children: []ir.Node{}}
	region := &visibilityRegion{current: ir.Public}
	for _, child := range namedChildren(root) {
		if n := e.convertMember(child, src, region); n != nil {
			file.Children = append(file.Children, n)
		}
	}
	return file, nil
}

func (e rubyExtractor) convertMember(n *tree_sitter.Node, src []byte, region *visibilityRegion) ir.Node {
	switch n.Kind() {
	case "call", "identifier":
		e.applyVisibilityCall(n, src, region)
		return nil
	case "class":
		return e.convertClass(n, src, "class")
	case "module":
		return e.convertClass(n, src, "module")
	case "method":
		return e.convertMethod(n, src, region.current)
	case "singleton_method":
		fn := e.convertMethod(n, src, ir.Public)
		fn.Modifiers = append(fn.Modifiers, ir.ModStatic)
		return fn
	case "comment":
		return e.convertComment(n, src)
	default:
		return nil
	}
}

// applyVisibilityCall recognizes bare `private`, `protected`, `public`
// statements (a bare identifier, or a method call with no receiver and
// no arguments) and updates the enclosing region.
func (e rubyExtractor) applyVisibilityCall(n *tree_sitter.Node, src []byte, region *visibilityRegion) {
	method := n
	if n.Kind() == "call" {
		method = field(n, "method")
		if method == nil || field(n, "receiver") != nil || field(n, "arguments") != nil {
			return
		}
	}
	switch nodeText(method, src) {
	case "private":
		region.current = ir.Private
	case "protected":
		region.current = ir.Protected
	case "public":
		region.current = ir.Public
	}
}

func (e rubyExtractor) convertClass(n *tree_sitter.Node, src []byte, decorator string) *ir.Class {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	class := &ir.Class{
		Name:       nodeText(nameNode, src),
		Visibility: ir.Public,
		Modifiers:  []ir.Modifier{},
		Decorators: []string{decorator},
		TypeParams: []ir.TypeParam{},
		Extends:    []ir.TypeRef{},
		Implements: []ir.TypeRef{},
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	if sup := field(n, "superclass"); sup != nil {
		class.Extends = append(class.Extends, ir.NewTypeRef(nodeText(sup, src)))
	}

	body := field(n, "body")
	if body == nil {
		return class
	}
	region := &visibilityRegion{current: ir.Public}
	for _, member := range namedChildren(body) {
		if member.Kind() == "singleton_class" {
			// `class << self` opens a body whose methods are class-level.
			if sbody := field(member, "body"); sbody != nil {
				for _, m := range namedChildren(sbody) {
					if m.Kind() == "method" {
						fn := e.convertMethod(m, src, region.current)
						fn.Modifiers = append(fn.Modifiers, ir.ModStatic)
						class.Children = append(class.Children, fn)
					}
				}
			}
			continue
		}
		if node := e.convertMember(member, src, region); node != nil {
			class.Children = append(class.Children, node)
		}
	}
	return class
}

func (e rubyExtractor) convertMethod(n *tree_sitter.Node, src []byte, visibility ir.Visibility) *ir.Function {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	impl := nodeText(n, src)
	return &ir.Function{
		Name:           nodeText(nameNode, src),
		Visibility:     visibility,
		Modifiers:      []ir.Modifier{},
		Decorators:     []string{},
		TypeParams:     []ir.TypeParam{},
		Parameters:     e.convertParams(field(n, "parameters"), src),
		Implementation: &impl,
		LineStart:      start,
		LineEnd:        end,
	}
}

func (e rubyExtractor) convertParams(params *tree_sitter.Node, src []byte) []ir.Parameter {
	out := []ir.Parameter{}
	if params == nil {
		return out
	}
	for _, p := range namedChildren(params) {
		switch p.Kind() {
		case "identifier":
			out = append(out, ir.Parameter{Name: nodeText(p, src), ParamType: ir.NewTypeRef(""), Decorators: []string{}})
		case "optional_parameter":
			nameNode := field(p, "name")
			val := field(p, "value")
			v := nodeText(val, src)
			out = append(out, ir.Parameter{Name: nodeText(nameNode, src), ParamType: ir.NewTypeRef(""), DefaultValue: &v, IsOptional: true, Decorators: []string{}})
		case "splat_parameter":
			name := ""
			if id := p.NamedChild(0); id != nil {
				name = "*" + nodeText(id, src)
			}
			out = append(out, ir.Parameter{Name: name, ParamType: ir.NewTypeRef(""), IsVariadic: true, Decorators: []string{}})
		case "hash_splat_parameter":
			name := ""
			if id := p.NamedChild(0); id != nil {
				name = "**" + nodeText(id, src)
			}
			out = append(out, ir.Parameter{Name: name, ParamType: ir.NewTypeRef(""), IsVariadic: true, Decorators: []string{}})
		case "keyword_parameter":
			nameNode := field(p, "name")
			param := ir.Parameter{Name: nodeText(nameNode, src), ParamType: ir.NewTypeRef(""), Decorators: []string{}}
			if v := field(p, "value"); v != nil {
				s := nodeText(v, src)
				param.DefaultValue = &s
				param.IsOptional = true
			}
			out = append(out, param)
		case "block_parameter":
			name := ""
			if id := p.NamedChild(0); id != nil {
				name = "&" + nodeText(id, src)
			}
			out = append(out, ir.Parameter{Name: name, ParamType: ir.NewTypeRef(""), Decorators: []string{}})
		default:
			out = append(out, ir.Parameter{Name: nodeText(p, src), ParamType: ir.NewTypeRef(""), Decorators: []string{}})
		}
	}
	return out
}

func (e rubyExtractor) convertComment(n *tree_sitter.Node, src []byte) *ir.Comment {
	start, _ := lineRange(n)
	text := strings.TrimPrefix(nodeText(n, src), "#")
	return &ir.Comment{Text: strings.TrimSpace(text), Format: ir.CommentPlain, Line: start}
}
