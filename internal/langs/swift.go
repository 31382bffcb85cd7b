package langs

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

type swiftExtractor struct{}

// NewSwiftExtractor builds the Swift extractor.
func NewSwiftExtractor() Extractor { return &swiftExtractor{} }

func (swiftExtractor) LanguageTag() string  { return "swift" }
func (swiftExtractor) Extensions() []string { return []string{".swift"} }
func (e swiftExtractor) CanProcess(path string) bool {
	return DefaultCanProcess(path, e.Extensions(), nil)
}

// swiftModifiers reads leading modifier keywords. Swift's real default
// visibility is "internal", which happens to match the convention used
// for "no explicit access keyword" elsewhere in this package.
func swiftModifiers(n *tree_sitter.Node, stop *tree_sitter.Node, src []byte) (ir.Visibility, []ir.Modifier) {
	visibility := ir.Internal
	var mods []ir.Modifier
	for _, c := range children(n) {
		if c == stop {
			break
		}
		switch nodeText(c, src) {
		case "public", "open":
			visibility = ir.Public
		case "private", "fileprivate":
			visibility = ir.Private
		case "internal":
			visibility = ir.Internal
		case "static":
			mods = append(mods, ir.ModStatic)
		case "final":
			mods = append(mods, ir.ModFinal)
		case "override":
			mods = append(mods, ir.ModOverride)
		case "mutating":
			mods = append(mods, ir.ModMutable)
		}
	}
	return visibility, mods
}

// inheritedTypes scans a class/struct/enum/protocol declaration for its
// type_inheritance_clause and returns the named types it lists, in
// source order.
func inheritedTypes(n *tree_sitter.Node, src []byte) []ir.TypeRef {
	var out []ir.TypeRef
	for _, c := range children(n) {
		if strings.Contains(c.Kind(), "inheritance") {
			for _, t := range namedChildren(c) {
				out = append(out, ir.NewTypeRef(nodeText(t, src)))
			}
		}
	}
	return out
}

func (e swiftExtractor) Process(source, path string, opts options.ProcessOptions) (*ir.File, error) {
	src := []byte(source)
	tree, err := parseTree(e.LanguageTag(), loadSwift, src)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()

	file := &ir.File{Path: path, Children: []ir.Node{}}
	for _, child := range namedChildren(root) {
		if n := e.convertMember(child, src); n != nil {
			file.Children = append(file.Children, n)
		}
	}
	return file, nil
}

func (e swiftExtractor) convertMember(n *tree_sitter.Node, src []byte) ir.Node {
	switch n.Kind() {
	case "import_declaration":
		return e.convertImport(n, src)
	case "class_declaration":
		return e.convertTypeDecl(n, src)
	case "protocol_declaration":
		return e.convertProtocol(n, src)
	case "function_declaration":
		return e.convertFunction(n, src)
	case "property_declaration":
		return e.convertProperty(n, src)
	case "comment", "multiline_comment":
		return e.convertComment(n, src)
	default:
		return nil
	}
}

// convertTypeDecl handles class/struct/enum alike: tree-sitter-swift
// models all three under class_declaration, distinguished by a leading
// "class"/"struct"/"enum" keyword child.
func (e swiftExtractor) convertTypeDecl(n *tree_sitter.Node, src []byte) *ir.Class {
	nameNode := field(n, "name")
	visibility, mods := swiftModifiers(n, nameNode, src)
	decorator := "class"
	for _, c := range children(n) {
		switch nodeText(c, src) {
		case "struct":
			decorator = "struct"
		case "enum":
			decorator = "enum"
		case "actor":
			decorator = "actor"
		}
		if c == nameNode {
			break
		}
	}
	start, end := lineRange(n)
	class := &ir.Class{
		Name:       nodeText(nameNode, src),
		Visibility: visibility,
		Modifiers:  mods,
		Decorators: []string{decorator},
		TypeParams: []ir.TypeParam{},
		Extends:    []ir.TypeRef{},
		Implements: []ir.TypeRef{},
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	inherited := inheritedTypes(n, src)
	if len(inherited) > 0 {
		class.Extends = append(class.Extends, inherited[0])
		class.Implements = append(class.Implements, inherited[1:]...)
	}
	body := field(n, "body")
	if body == nil {
		return class
	}
	for _, member := range namedChildren(body) {
		if node := e.convertMember(member, src); node != nil {
			class.Children = append(class.Children, node)
		}
	}
	return class
}

func (e swiftExtractor) convertProtocol(n *tree_sitter.Node, src []byte) *ir.Class {
	nameNode := field(n, "name")
	visibility, mods := swiftModifiers(n, nameNode, src)
	start, end := lineRange(n)
	class := &ir.Class{
		Name:       nodeText(nameNode, src),
		Visibility: visibility,
		Modifiers:  mods,
		Decorators: []string{"protocol"},
		TypeParams: []ir.TypeParam{},
		Extends:    []ir.TypeRef{},
		Implements: inheritedTypes(n, src),
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	body := field(n, "body")
	if body == nil {
		return class
	}
	for _, member := range namedChildren(body) {
		if node := e.convertMember(member, src); node != nil {
			class.Children = append(class.Children, node)
		}
	}
	return class
}

func (e swiftExtractor) convertFunction(n *tree_sitter.Node, src []byte) *ir.Function {
	nameNode := field(n, "name")
	visibility, mods := swiftModifiers(n, nameNode, src)
	start, end := lineRange(n)
	fn := &ir.Function{
		Name:       nodeText(nameNode, src),
		Visibility: visibility,
		Modifiers:  mods,
		Decorators: []string{},
		TypeParams: []ir.TypeParam{},
		Parameters: e.convertParams(field(n, "parameters"), src),
		LineStart:  start,
		LineEnd:    end,
	}
	if rt := field(n, "return_type"); rt != nil {
		ref := ir.NewTypeRef(nodeText(rt, src))
		fn.ReturnType = &ref
	}
	impl := nodeText(n, src)
	fn.Implementation = &impl
	return fn
}

func (e swiftExtractor) convertProperty(n *tree_sitter.Node, src []byte) *ir.Field {
	visibility, mods := swiftModifiers(n, nil, src)
	start, _ := lineRange(n)
	isLet := false
	for _, c := range children(n) {
		if nodeText(c, src) == "let" {
			isLet = true
		}
	}
	if isLet {
		mods = append(mods, ir.ModReadonly)
	}
	f := &ir.Field{Visibility: visibility, Modifiers: mods, Line: start}
	kids := namedChildren(n)
	if len(kids) > 0 {
		decl := kids[len(kids)-1]
		if nameNode := field(decl, "name"); nameNode != nil {
			f.Name = nodeText(nameNode, src)
		} else {
			f.Name = nodeText(decl, src)
		}
		if t := field(decl, "type"); t != nil {
			ref := ir.NewTypeRef(nodeText(t, src))
			f.FieldType = &ref
		}
	}
	return f
}


func (e swiftExtractor) convertParams(params *tree_sitter.Node, src []byte) []ir.Parameter {
	out := []ir.Parameter{}
	if params == nil {
		return out
	}
	for _, p := range namedChildren(params) {
		if p.Kind() != "parameter" {
			continue
		}
		nameNode := field(p, "name")
		if nameNode == nil {
			nameNode = p.NamedChild(0)
		}
		typeNode := field(p, "type")
		param := ir.Parameter{Name: nodeText(nameNode, src), ParamType: ir.NewTypeRef(nodeText(typeNode, src)), Decorators: []string{}}
		if v := field(p, "default_value"); v != nil {
			s := nodeText(v, src)
			param.DefaultValue = &s
			param.IsOptional = true
		}
		out = append(out, param)
	}
	return out
}

func (e swiftExtractor) convertImport(n *tree_sitter.Node, src []byte) *ir.Import {
	line := int(n.StartPosition().Row) + 1
	module := ""
	if kids := namedChildren(n); len(kids) > 0 {
		module = nodeText(kids[len(kids)-1], src)
	}
	return &ir.Import{ImportKind: "import", Module: module, Symbols: []ir.ImportedSymbol{}, Line: &line}
}

func (e swiftExtractor) convertComment(n *tree_sitter.Node, src []byte) *ir.Comment {
	start, _ := lineRange(n)
	text := nodeText(n, src)
	format := ir.CommentPlain
	if strings.HasPrefix(text, "///") {
		format = ir.CommentDoc
	}
	text = strings.TrimPrefix(text, "///")
	text = strings.TrimPrefix(text, "//")
	return &ir.Comment{Text: strings.TrimSpace(text), Format: format, Line: start}
}
