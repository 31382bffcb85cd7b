package langs

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

type cExtractor struct{}

// NewCExtractor builds the C extractor.
func NewCExtractor() Extractor { return &cExtractor{} }

func (cExtractor) LanguageTag() string  { return "c" }
func (cExtractor) Extensions() []string { return []string{".c", ".h"} }
func (e cExtractor) CanProcess(path string) bool {
	return DefaultCanProcess(path, e.Extensions(), nil)
}

func (e cExtractor) Process(source, path string, opts options.ProcessOptions) (*ir.File, error) {
	src := []byte(source)
	tree, err := parseTree(e.LanguageTag(), loadC, src)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()

	file := &ir.File{Path: path, Children: []ir.Node{}}
	for _, child := range namedChildren(root) {
		if n := e.convertTopLevel(child, src); n != nil {
			file.Children = append(file.Children, n)
		}
	}
	return file, nil
}

func (e cExtractor) convertTopLevel(n *tree_sitter.Node, src []byte) ir.Node {
	switch n.Kind() {
	case "preproc_include":
		return e.convertInclude(n, src)
	case "function_definition":
		return e.convertFunction(n, src)
	case "type_definition":
		return e.convertTypedef(n, src)
	case "struct_specifier":
		return e.convertRecord(n, src, "struct")
	case "enum_specifier":
		return e.convertEnum(n, src)
	case "union_specifier":
		return e.convertRecord(n, src, "union")
	case "comment":
		return e.convertComment(n, src)
	default:
		return nil
	}
}

// convertInclude models #include as an Import. System headers (<...>)
// and quoted headers ("...") both keep their delimiters stripped.
func (e cExtractor) convertInclude(n *tree_sitter.Node, src []byte) *ir.Import {
	line := int(n.StartPosition().Row) + 1
	module := ""
	for _, c := range namedChildren(n) {
		switch c.Kind() {
		case "string_literal":
			module = trimQuotes(nodeText(c, src))
		case "system_lib_string":
			module = strings.Trim(nodeText(c, src), "<>")
		}
	}
	return &ir.Import{ImportKind: "include", Module: module, Symbols: []ir.ImportedSymbol{}, Line: &line}
}

func (e cExtractor) convertFunction(n *tree_sitter.Node, src []byte) *ir.Function {
	declarator := field(n, "declarator")
	name := ""
	var params *tree_sitter.Node
	if declarator != nil && declarator.Kind() == "function_declarator" {
		if id := field(declarator, "declarator"); id != nil {
			name = nodeText(id, src)
		}
		params = field(declarator, "parameters")
	}
	start, end := lineRange(n)
	impl := nodeText(n, src)
	fn := &ir.Function{
		Name:           name,
		Visibility:     ir.Public,
		Modifiers:      []ir.Modifier{},
		Decorators:     []string{},
		TypeParams:     []ir.TypeParam{},
		Parameters:     e.convertParams(params, src),
		Implementation: &impl,
		LineStart:      start,
		LineEnd:        end,
	}
	if rt := field(n, "type"); rt != nil {
		ref := ir.NewTypeRef(nodeText(rt, src))
		fn.ReturnType = &ref
	}
	return fn
}

func (e cExtractor) convertParams(params *tree_sitter.Node, src []byte) []ir.Parameter {
	out := []ir.Parameter{}
	if params == nil {
		return out
	}
	idx := 0
	for _, p := range namedChildren(params) {
		switch p.Kind() {
		case "parameter_declaration":
			typeNode := field(p, "type")
			declarator := field(p, "declarator")
			name := ""
			if declarator != nil {
				name = identifierName(declarator, src)
			}
			if name == "" {
				name = fmt.Sprintf("param_%d", idx)
			}
			idx++
			out = append(out, ir.Parameter{Name: name, ParamType: ir.NewTypeRef(nodeText(typeNode, src)), Decorators: []string{}})
		case "variadic_parameter":
			out = append(out, ir.Parameter{Name: "...", ParamType: ir.NewTypeRef(""), IsVariadic: true, Decorators: []string{}})
		}
	}
	return out
}

// identifierName walks a (possibly pointer/array-wrapped) declarator
// down to its innermost identifier.
func identifierName(n *tree_sitter.Node, src []byte) string {
	for n != nil {
		switch n.Kind() {
		case "identifier", "field_identifier", "type_identifier":
			return nodeText(n, src)
		default:
			if d := field(n, "declarator"); d != nil {
				n = d
				continue
			}
			return ""
		}
	}
	return ""
}

func (e cExtractor) convertTypedef(n *tree_sitter.Node, src []byte) ir.Node {
	typeNode := field(n, "type")
	declarator := field(n, "declarator")
	name := identifierName(declarator, src)
	start, end := lineRange(n)

	if typeNode != nil && (typeNode.Kind() == "struct_specifier" || typeNode.Kind() == "union_specifier" || typeNode.Kind() == "enum_specifier") {
		kind := "struct"
		if typeNode.Kind() == "union_specifier" {
			kind = "union"
		}
		if typeNode.Kind() == "enum_specifier" {
			en := e.convertEnum(typeNode, src)
			en.Name = name
			en.LineStart, en.LineEnd = start, end
			return en
		}
		class := e.convertRecord(typeNode, src, kind)
		class.Name = name
		class.Decorators = append(class.Decorators, "typedef")
		class.LineStart, class.LineEnd = start, end
		return class
	}

	return &ir.Class{
		Name:       name,
		Visibility: ir.Public,
		Modifiers:  []ir.Modifier{},
		Decorators: []string{"typedef"},
		TypeParams: []ir.TypeParam{},
		Extends:    []ir.TypeRef{ir.NewTypeRef(nodeText(typeNode, src))},
		Implements: []ir.TypeRef{},
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
}

func (e cExtractor) convertRecord(n *tree_sitter.Node, src []byte, decorator string) *ir.Class {
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
	body := field(n, "body")
	if body == nil {
		return class
	}
	for _, f := range namedChildren(body) {
		if f.Kind() != "field_declaration" {
			continue
		}
		typeNode := field(f, "type")
		ref := ir.NewTypeRef(nodeText(typeNode, src))
		fstart, _ := lineRange(f)
		for _, d := range namedChildren(f) {
			if d == typeNode {
				continue
			}
			name := identifierName(d, src)
			if name == "" {
				continue
			}
			class.Children = append(class.Children, &ir.Field{Name: name, Visibility: ir.Public, Modifiers: []ir.Modifier{}, FieldType: &ref, Line: fstart})
		}
	}
	return class
}

func (e cExtractor) convertEnum(n *tree_sitter.Node, src []byte) *ir.Class {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	en := &ir.Class{
		Name:       nodeText(nameNode, src),
		Visibility: ir.Public,
		Modifiers:  []ir.Modifier{},
		Decorators: []string{"enum"},
		TypeParams: []ir.TypeParam{},
		Extends:    []ir.TypeRef{},
		Implements: []ir.TypeRef{},
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	body := field(n, "body")
	if body == nil {
		return en
	}
	for _, v := range namedChildren(body) {
		if v.Kind() != "enumerator" {
			continue
		}
		nameNode := field(v, "name")
		vstart, _ := lineRange(v)
		en.Children = append(en.Children, &ir.Field{Name: nodeText(nameNode, src), Visibility: ir.Public, Modifiers: []ir.Modifier{}, Line: vstart})
	}
	return en
}

func (e cExtractor) convertComment(n *tree_sitter.Node, src []byte) *ir.Comment {
	start, _ := lineRange(n)
	text := nodeText(n, src)
	format := ir.CommentPlain
	if strings.HasPrefix(text, "/**") {
		format = ir.CommentDoc
	}
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	return &ir.Comment{Text: strings.TrimSpace(text), Format: format, Line: start}
}
