package langs

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

type javaExtractor struct{}

// NewJavaExtractor builds the Java extractor.
func NewJavaExtractor() Extractor { return &javaExtractor{} }

func (javaExtractor) LanguageTag() string  { return "java" }
func (javaExtractor) Extensions() []string { return []string{".java"} }
func (e javaExtractor) CanProcess(path string) bool {
	return DefaultCanProcess(path, e.Extensions(), nil)
}

// javaModifiers reads a member's "modifiers" child, returning visibility
// (package-private maps to Internal, Java having no distinct keyword for
// it), the keyword modifier set and any annotations as decorators.
func javaModifiers(n *tree_sitter.Node, src []byte) (ir.Visibility, []ir.Modifier, []string) {
	visibility := ir.Internal
	var mods []ir.Modifier
	var decorators []string
	mnode := field(n, "modifiers")
	if mnode == nil {
		return visibility, mods, decorators
	}
	for _, c := range children(mnode) {
		switch c.Kind() {
		case "marker_annotation", "annotation":
			decorators = append(decorators, strings.TrimPrefix(nodeText(c, src), "@"))
		default:
			switch nodeText(c, src) {
			case "public":
				visibility = ir.Public
			case "private":
				visibility = ir.Private
			case "protected":
				visibility = ir.Protected
			case "static":
				mods = append(mods, ir.ModStatic)
			case "final":
				mods = append(mods, ir.ModFinal)
			case "abstract":
				mods = append(mods, ir.ModAbstract)
			}
		}
	}
	return visibility, mods, decorators
}

func (e javaExtractor) Process(source, path string, opts options.ProcessOptions) (*ir.File, error) {
	src := []byte(source)
	tree, err := parseTree(e.LanguageTag(), loadJava, src)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()

	file := &ir.File{Path: path, Children: []ir.Node{}}
	for _, child := range namedChildren(root) {
		file.Children = append(file.Children, e.convertMember(child, src)...)
	}
	return file, nil
}

func (e javaExtractor) convertMember(n *tree_sitter.Node, src []byte) []ir.Node {
	switch n.Kind() {
	case "import_declaration":
		return []ir.Node{e.convertImport(n, src)}
	case "class_declaration":
		return []ir.Node{e.convertClass(n, src, "class")}
	case "record_declaration":
		return []ir.Node{e.convertClass(n, src, "record")}
	case "interface_declaration":
		return []ir.Node{e.convertInterface(n, src)}
	case "enum_declaration":
		return []ir.Node{e.convertEnum(n, src)}
	case "method_declaration", "constructor_declaration":
		return []ir.Node{e.convertMethod(n, src)}
	case "field_declaration":
		return e.convertField(n, src)
	case "line_comment", "block_comment", "comment":
		return []ir.Node{e.convertComment(n, src)}
	default:
		return nil
	}
}

func (e javaExtractor) convertImport(n *tree_sitter.Node, src []byte) *ir.Import {
	line := int(n.StartPosition().Row) + 1
	module := ""
	for _, c := range namedChildren(n) {
		if c.Kind() == "scoped_identifier" || c.Kind() == "identifier" {
			module = nodeText(c, src)
		}
	}
	return &ir.Import{ImportKind: "import", Module: module, Symbols: []ir.ImportedSymbol{}, Line: &line}
}

func (e javaExtractor) convertClass(n *tree_sitter.Node, src []byte, decorator string) *ir.Class {
	nameNode := field(n, "name")
	visibility, mods, decorators := javaModifiers(n, src)
	decorators = append(decorators, decorator)
	start, end := lineRange(n)
	class := &ir.Class{
		Name:       nodeText(nameNode, src),
		Visibility: visibility,
		Modifiers:  mods,
		Decorators: decorators,
		TypeParams: e.typeParams(field(n, "type_parameters"), src),
		Extends:    []ir.TypeRef{},
		Implements: []ir.TypeRef{},
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	if sup := field(n, "superclass"); sup != nil {
		if t := sup.NamedChild(0); t != nil {
			class.Extends = append(class.Extends, ir.NewTypeRef(nodeText(t, src)))
		}
	}
	if ifaces := field(n, "interfaces"); ifaces != nil {
		if list := ifaces.NamedChild(0); list != nil {
			for _, t := range namedChildren(list) {
				class.Implements = append(class.Implements, ir.NewTypeRef(nodeText(t, src)))
			}
		}
	}
	body := field(n, "body")
	if body == nil {
		return class
	}
	for _, member := range namedChildren(body) {
		class.Children = append(class.Children, e.convertMember(member, src)...)
	}
	return class
}

func (e javaExtractor) convertInterface(n *tree_sitter.Node, src []byte) *ir.Interface {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	iface := &ir.Interface{
		Name:       nodeText(nameNode, src),
		Visibility: ir.Public,
		TypeParams: e.typeParams(field(n, "type_parameters"), src),
		Extends:    []ir.TypeRef{},
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	if visibility, _, _ := javaModifiers(n, src); visibility != ir.Public {
		iface.Visibility = visibility
	}
	if ext := field(n, "extends"); ext != nil {
		for _, t := range namedChildren(ext) {
			iface.Extends = append(iface.Extends, ir.NewTypeRef(nodeText(t, src)))
		}
	}
	body := field(n, "body")
	if body == nil {
		return iface
	}
	for _, member := range namedChildren(body) {
		iface.Children = append(iface.Children, e.convertMember(member, src)...)
	}
	return iface
}

func (e javaExtractor) convertEnum(n *tree_sitter.Node, src []byte) *ir.Enum {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	visibility, _, _ := javaModifiers(n, src)
	en := &ir.Enum{Name: nodeText(nameNode, src), Visibility: visibility, Children: []ir.Node{}, LineStart: start, LineEnd: end}
	body := field(n, "body")
	if body == nil {
		return en
	}
	for _, member := range namedChildren(body) {
		switch member.Kind() {
		case "enum_constant":
			start, _ := lineRange(member)
			en.Children = append(en.Children, &ir.Field{Name: nodeText(field(member, "name"), src), Visibility: ir.Public, Modifiers: []ir.Modifier{}, Line: start})
		default:
			en.Children = append(en.Children, e.convertMember(member, src)...)
		}
	}
	return en
}

func (e javaExtractor) convertMethod(n *tree_sitter.Node, src []byte) *ir.Function {
	nameNode := field(n, "name")
	name := "<init>"
	if nameNode != nil {
		name = nodeText(nameNode, src)
	}
	visibility, mods, decorators := javaModifiers(n, src)
	start, end := lineRange(n)
	fn := &ir.Function{
		Name:       name,
		Visibility: visibility,
		Modifiers:  mods,
		Decorators: decorators,
		TypeParams: e.typeParams(field(n, "type_parameters"), src),
		Parameters: e.convertParams(field(n, "parameters"), src),
		LineStart:  start,
		LineEnd:    end,
	}
	if rt := field(n, "type"); rt != nil {
		ref := ir.NewTypeRef(nodeText(rt, src))
		fn.ReturnType = &ref
	}
	impl := nodeText(n, src)
	fn.Implementation = &impl
	return fn
}

// convertField emits one Field per variable_declarator, so a grouped
// declaration like "private int x, y;" yields both x and y instead of
// only the first.
func (e javaExtractor) convertField(n *tree_sitter.Node, src []byte) []ir.Node {
	visibility, mods, _ := javaModifiers(n, src)
	typeNode := field(n, "type")
	ref := ir.NewTypeRef(nodeText(typeNode, src))
	start, _ := lineRange(n)
	var out []ir.Node
	for _, c := range namedChildren(n) {
		if c.Kind() != "variable_declarator" {
			continue
		}
		nameNode := field(c, "name")
		f := &ir.Field{Name: nodeText(nameNode, src), Visibility: visibility, Modifiers: mods, FieldType: &ref, Line: start}
		if v := field(c, "value"); v != nil {
			s := nodeText(v, src)
			f.DefaultValue = &s
		}
		out = append(out, f)
	}
	return out
}

func (e javaExtractor) convertParams(params *tree_sitter.Node, src []byte) []ir.Parameter {
	out := []ir.Parameter{}
	if params == nil {
		return out
	}
	for _, p := range namedChildren(params) {
		switch p.Kind() {
		case "formal_parameter":
			nameNode := field(p, "name")
			typeNode := field(p, "type")
			out = append(out, ir.Parameter{Name: nodeText(nameNode, src), ParamType: ir.NewTypeRef(nodeText(typeNode, src)), Decorators: []string{}})
		case "spread_parameter":
			nameNode := field(p, "name")
			typeNode := field(p, "type")
			out = append(out, ir.Parameter{Name: nodeText(nameNode, src), ParamType: ir.NewTypeRef(nodeText(typeNode, src)), IsVariadic: true, Decorators: []string{}})
		}
	}
	return out
}

func (e javaExtractor) typeParams(n *tree_sitter.Node, src []byte) []ir.TypeParam {
	out := []ir.TypeParam{}
	if n == nil {
		return out
	}
	for _, p := range namedChildren(n) {
		if p.Kind() != "type_parameter" {
			continue
		}
		tp := ir.TypeParam{Name: nodeText(field(p, "name"), src), Constraints: []ir.TypeRef{}}
		if b := field(p, "bound"); b != nil {
			for _, t := range namedChildren(b) {
				tp.Constraints = append(tp.Constraints, ir.NewTypeRef(nodeText(t, src)))
			}
		}
		out = append(out, tp)
	}
	return out
}

func (e javaExtractor) convertComment(n *tree_sitter.Node, src []byte) *ir.Comment {
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
