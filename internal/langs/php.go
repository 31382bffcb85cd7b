package langs

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

type phpExtractor struct{}

// NewPHPExtractor builds the PHP extractor.
func NewPHPExtractor() Extractor { return &phpExtractor{} }

func (phpExtractor) LanguageTag() string  { return "php" }
func (phpExtractor) Extensions() []string { return []string{".php"} }
func (e phpExtractor) CanProcess(path string) bool {
	return DefaultCanProcess(path, e.Extensions(), nil)
}

func phpModifiers(n *tree_sitter.Node, src []byte) (ir.Visibility, []ir.Modifier) {
	visibility := ir.Public
	var mods []ir.Modifier
	for _, c := range children(n) {
		switch c.Kind() {
		case "visibility_modifier":
			switch nodeText(c, src) {
			case "public":
				visibility = ir.Public
			case "private":
				visibility = ir.Private
			case "protected":
				visibility = ir.Protected
			}
		default:
			switch nodeText(c, src) {
			case "static":
				mods = append(mods, ir.ModStatic)
			case "abstract":
				mods = append(mods, ir.ModAbstract)
			case "final":
				mods = append(mods, ir.ModFinal)
			case "readonly":
				mods = append(mods, ir.ModReadonly)
			}
		}
	}
	return visibility, mods
}

func (e phpExtractor) Process(source, path string, opts options.ProcessOptions) (*ir.File, error) {
	src := []byte(source)
	tree, err := parseTree(e.LanguageTag(), loadPHP, src)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()

	file := &ir.File{Path: path, Children: []ir.Node{}}
	e.walkProgram(root, src, file)
	return file, nil
}

// walkProgram recurses into php_tag-delimited text and namespace bodies,
// since both wrap declarations without contributing IR nodes themselves.
func (e phpExtractor) walkProgram(n *tree_sitter.Node, src []byte, file *ir.File) {
	for _, child := range namedChildren(n) {
		switch child.Kind() {
		case "namespace_definition":
			if body := field(child, "body"); body != nil {
				e.walkProgram(body, src, file)
			}
		default:
			if node := e.convertMember(child, src); node != nil {
				file.Children = append(file.Children, node)
			}
		}
	}
}

func (e phpExtractor) convertMember(n *tree_sitter.Node, src []byte) ir.Node {
	switch n.Kind() {
	case "namespace_use_declaration":
		return e.convertUse(n, src)
	case "class_declaration", "final_declaration":
		return e.convertClass(n, src, "class")
	case "trait_declaration":
		return e.convertClass(n, src, "trait")
	case "interface_declaration":
		return e.convertInterface(n, src)
	case "enum_declaration":
		return e.convertEnum(n, src)
	case "function_definition":
		return e.convertFunction(n, src)
	case "comment":
		return e.convertComment(n, src)
	default:
		return nil
	}
}

func (e phpExtractor) convertUse(n *tree_sitter.Node, src []byte) *ir.Import {
	line := int(n.StartPosition().Row) + 1
	imp := &ir.Import{ImportKind: "use", Symbols: []ir.ImportedSymbol{}, Line: &line}
	for _, c := range namedChildren(n) {
		switch c.Kind() {
		case "namespace_use_clause":
			nameNode := c.NamedChild(0)
			imp.Module = nodeText(nameNode, src)
			if alias := field(c, "alias"); alias != nil {
				a := nodeText(alias, src)
				imp.Symbols = append(imp.Symbols, ir.ImportedSymbol{Name: imp.Module, Alias: &a})
			}
		}
	}
	return imp
}

func (e phpExtractor) convertClass(n *tree_sitter.Node, src []byte, decorator string) *ir.Class {
	nameNode := field(n, "name")
	mods := []ir.Modifier{}
	for _, c := range children(n) {
		if nodeText(c, src) == "abstract" {
			mods = append(mods, ir.ModAbstract)
		}
		if nodeText(c, src) == "final" {
			mods = append(mods, ir.ModFinal)
		}
		if c == nameNode {
			break
		}
	}
	start, end := lineRange(n)
	class := &ir.Class{
		Name:       nodeText(nameNode, src),
		Visibility: ir.Public,
		Modifiers:  mods,
		Decorators: []string{decorator},
		TypeParams: []ir.TypeParam{},
		Extends:    []ir.TypeRef{},
		Implements: []ir.TypeRef{},
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	if base := field(n, "base_clause"); base != nil {
		for _, t := range namedChildren(base) {
			class.Extends = append(class.Extends, ir.NewTypeRef(nodeText(t, src)))
		}
	}
	if iface := field(n, "interfaces"); iface != nil {
		for _, t := range namedChildren(iface) {
			class.Implements = append(class.Implements, ir.NewTypeRef(nodeText(t, src)))
		}
	}
	body := field(n, "body")
	if body == nil {
		return class
	}
	for _, member := range namedChildren(body) {
		class.Children = append(class.Children, e.convertClassMember(member, src)...)
	}
	return class
}

func (e phpExtractor) convertClassMember(n *tree_sitter.Node, src []byte) []ir.Node {
	switch n.Kind() {
	case "method_declaration":
		return []ir.Node{e.convertMethod(n, src)}
	case "property_declaration":
		return e.convertProperty(n, src)
	case "use_declaration":
		return nil // trait `use` inside a class body; no IR counterpart
	case "comment":
		return []ir.Node{e.convertComment(n, src)}
	default:
		return nil
	}
}

func (e phpExtractor) convertInterface(n *tree_sitter.Node, src []byte) *ir.Interface {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	iface := &ir.Interface{
		Name:       nodeText(nameNode, src),
		Visibility: ir.Public,
		TypeParams: []ir.TypeParam{},
		Extends:    []ir.TypeRef{},
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	if base := field(n, "base_clause"); base != nil {
		for _, t := range namedChildren(base) {
			iface.Extends = append(iface.Extends, ir.NewTypeRef(nodeText(t, src)))
		}
	}
	body := field(n, "body")
	if body == nil {
		return iface
	}
	for _, member := range namedChildren(body) {
		if member.Kind() == "method_declaration" {
			iface.Children = append(iface.Children, e.convertMethod(member, src))
		}
	}
	return iface
}

func (e phpExtractor) convertEnum(n *tree_sitter.Node, src []byte) *ir.Enum {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	en := &ir.Enum{Name: nodeText(nameNode, src), Visibility: ir.Public, Children: []ir.Node{}, LineStart: start, LineEnd: end}
	body := field(n, "body")
	if body == nil {
		return en
	}
	for _, member := range namedChildren(body) {
		if member.Kind() != "enum_case" {
			continue
		}
		nm := field(member, "name")
		start, _ := lineRange(member)
		en.Children = append(en.Children, &ir.Field{Name: nodeText(nm, src), Visibility: ir.Public, Modifiers: []ir.Modifier{}, Line: start})
	}
	return en
}

func (e phpExtractor) convertMethod(n *tree_sitter.Node, src []byte) *ir.Function {
	nameNode := field(n, "name")
	visibility, mods := phpModifiers(n, src)
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

func (e phpExtractor) convertFunction(n *tree_sitter.Node, src []byte) *ir.Function {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	impl := nodeText(n, src)
	fn := &ir.Function{
		Name:           nodeText(nameNode, src),
		Visibility:     ir.Public,
		Modifiers:      []ir.Modifier{},
		Decorators:     []string{},
		TypeParams:     []ir.TypeParam{},
		Parameters:     e.convertParams(field(n, "parameters"), src),
		Implementation: &impl,
		LineStart:      start,
		LineEnd:        end,
	}
	if rt := field(n, "return_type"); rt != nil {
		ref := ir.NewTypeRef(nodeText(rt, src))
		fn.ReturnType = &ref
	}
	return fn
}

func (e phpExtractor) convertProperty(n *tree_sitter.Node, src []byte) []ir.Node {
	visibility, mods := phpModifiers(n, src)
	start, _ := lineRange(n)
	var typeRef *ir.TypeRef
	if t := field(n, "type"); t != nil {
		ref := ir.NewTypeRef(nodeText(t, src))
		typeRef = &ref
	}
	var out []ir.Node
	for _, c := range namedChildren(n) {
		if c.Kind() != "property_element" {
			continue
		}
		nameNode := c.NamedChild(0)
		f := &ir.Field{Name: strings.TrimPrefix(nodeText(nameNode, src), "$"), Visibility: visibility, Modifiers: mods, FieldType: typeRef, Line: start}
		if v := field(c, "default_value"); v != nil {
			s := nodeText(v, src)
			f.DefaultValue = &s
		}
		out = append(out, f)
	}
	return out
}

func (e phpExtractor) convertParams(params *tree_sitter.Node, src []byte) []ir.Parameter {
	out := []ir.Parameter{}
	if params == nil {
		return out
	}
	for _, p := range namedChildren(params) {
		switch p.Kind() {
		case "simple_parameter":
			nameNode := field(p, "name")
			param := ir.Parameter{Name: nodeText(nameNode, src), ParamType: ir.NewTypeRef(""), Decorators: []string{}}
			if t := field(p, "type"); t != nil {
				param.ParamType = ir.NewTypeRef(nodeText(t, src))
			}
			if v := field(p, "default_value"); v != nil {
				s := nodeText(v, src)
				param.DefaultValue = &s
				param.IsOptional = true
			}
			out = append(out, param)
		case "variadic_parameter":
			nameNode := field(p, "name")
			param := ir.Parameter{Name: nodeText(nameNode, src), ParamType: ir.NewTypeRef(""), IsVariadic: true, Decorators: []string{}}
			if t := field(p, "type"); t != nil {
				param.ParamType = ir.NewTypeRef(nodeText(t, src))
			}
			out = append(out, param)
		}
	}
	return out
}

func (e phpExtractor) convertComment(n *tree_sitter.Node, src []byte) *ir.Comment {
	start, _ := lineRange(n)
	text := nodeText(n, src)
	format := ir.CommentPlain
	if strings.HasPrefix(text, "/**") {
		format = ir.CommentDoc
	}
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimPrefix(text, "#")
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	return &ir.Comment{Text: strings.TrimSpace(text), Format: format, Line: start}
}
