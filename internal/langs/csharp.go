package langs

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

type csharpExtractor struct{}

// NewCSharpExtractor builds the C# extractor.
func NewCSharpExtractor() Extractor { return &csharpExtractor{} }

func (csharpExtractor) LanguageTag() string  { return "c-sharp" }
func (csharpExtractor) Extensions() []string { return []string{".cs"} }
func (e csharpExtractor) CanProcess(path string) bool {
	return DefaultCanProcess(path, e.Extensions(), nil)
}

func csharpModifiers(n *tree_sitter.Node, src []byte) (ir.Visibility, []ir.Modifier) {
	visibility := ir.Internal
	var mods []ir.Modifier
	mnode := field(n, "modifiers")
	if mnode == nil {
		return visibility, mods
	}
	for _, c := range children(mnode) {
		switch nodeText(c, src) {
		case "public":
			visibility = ir.Public
		case "private":
			visibility = ir.Private
		case "protected":
			visibility = ir.Protected
		case "internal":
			visibility = ir.Internal
		case "static":
			mods = append(mods, ir.ModStatic)
		case "abstract":
			mods = append(mods, ir.ModAbstract)
		case "sealed":
			mods = append(mods, ir.ModSealed)
		case "readonly":
			mods = append(mods, ir.ModReadonly)
		case "const":
			mods = append(mods, ir.ModConst)
		case "virtual":
			mods = append(mods, ir.ModVirtual)
		case "override":
			mods = append(mods, ir.ModOverride)
		case "async":
			mods = append(mods, ir.ModAsync)
		case "event":
			mods = append(mods, ir.ModEvent)
		}
	}
	return visibility, mods
}

func (e csharpExtractor) Process(source, path string, opts options.ProcessOptions) (*ir.File, error) {
	src := []byte(source)
	tree, err := parseTree(e.LanguageTag(), loadCSharp, src)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()

	file := &ir.File{Path: path, Children: []ir.Node{}}
	for _, child := range namedChildren(root) {
		file.Children = append(file.Children, e.convertTopLevel(child, src)...)
	}
	return file, nil
}

func (e csharpExtractor) convertTopLevel(n *tree_sitter.Node, src []byte) []ir.Node {
	switch n.Kind() {
	case "namespace_declaration", "file_scoped_namespace_declaration":
		var out []ir.Node
		if body := field(n, "body"); body != nil {
			for _, c := range namedChildren(body) {
				out = append(out, e.convertTopLevel(c, src)...)
			}
		} else {
			for _, c := range namedChildren(n) {
				if c.Kind() == "declaration_list" {
					for _, d := range namedChildren(c) {
						out = append(out, e.convertTopLevel(d, src)...)
					}
				}
			}
		}
		return out
	case "using_directive":
		return []ir.Node{e.convertImport(n, src)}
	default:
		return e.convertMember(n, src)
	}
}

func (e csharpExtractor) convertMember(n *tree_sitter.Node, src []byte) []ir.Node {
	switch n.Kind() {
	case "class_declaration":
		return []ir.Node{e.convertClass(n, src, "class")}
	case "struct_declaration":
		return []ir.Node{e.convertClass(n, src, "struct")}
	case "record_declaration", "record_struct_declaration":
		return []ir.Node{e.convertClass(n, src, "record")}
	case "interface_declaration":
		return []ir.Node{e.convertInterface(n, src)}
	case "enum_declaration":
		return []ir.Node{e.convertEnum(n, src)}
	case "method_declaration", "constructor_declaration":
		return []ir.Node{e.convertMethod(n, src)}
	case "operator_declaration":
		return []ir.Node{e.convertOperator(n, src)}
	case "property_declaration":
		return []ir.Node{e.convertProperty(n, src)}
	case "field_declaration":
		return e.convertField(n, src)
	case "comment":
		return []ir.Node{e.convertComment(n, src)}
	default:
		return nil
	}
}

func (e csharpExtractor) convertImport(n *tree_sitter.Node, src []byte) *ir.Import {
	line := int(n.StartPosition().Row) + 1
	module := ""
	if ns := field(n, "name"); ns != nil {
		module = nodeText(ns, src)
	}
	return &ir.Import{ImportKind: "use", Module: module, Symbols: []ir.ImportedSymbol{}, Line: &line}
}

func (e csharpExtractor) convertClass(n *tree_sitter.Node, src []byte, decorator string) *ir.Class {
	nameNode := field(n, "name")
	visibility, mods := csharpModifiers(n, src)
	start, end := lineRange(n)
	class := &ir.Class{
		Name:       nodeText(nameNode, src),
		Visibility: visibility,
		Modifiers:  mods,
		Decorators: []string{decorator},
		TypeParams: e.typeParams(field(n, "type_parameters"), src),
		Extends:    []ir.TypeRef{},
		Implements: []ir.TypeRef{},
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	if bases := field(n, "bases"); bases != nil {
		for i, t := range namedChildren(bases) {
			ref := ir.NewTypeRef(nodeText(t, src))
			if i == 0 {
				class.Extends = append(class.Extends, ref)
			} else {
				class.Implements = append(class.Implements, ref)
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

func (e csharpExtractor) convertInterface(n *tree_sitter.Node, src []byte) *ir.Class {
	nameNode := field(n, "name")
	visibility, mods := csharpModifiers(n, src)
	start, end := lineRange(n)
	iface := &ir.Class{
		Name:       nodeText(nameNode, src),
		Visibility: visibility,
		Modifiers:  mods,
		Decorators: []string{"interface"},
		TypeParams: e.typeParams(field(n, "type_parameters"), src),
		Extends:    []ir.TypeRef{},
		Implements: []ir.TypeRef{},
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	if bases := field(n, "bases"); bases != nil {
		for _, t := range namedChildren(bases) {
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

func (e csharpExtractor) convertEnum(n *tree_sitter.Node, src []byte) *ir.Enum {
	nameNode := field(n, "name")
	visibility, _ := csharpModifiers(n, src)
	start, end := lineRange(n)
	en := &ir.Enum{Name: nodeText(nameNode, src), Visibility: visibility, Children: []ir.Node{}, LineStart: start, LineEnd: end}
	body := field(n, "body")
	if body == nil {
		return en
	}
	for _, member := range namedChildren(body) {
		if member.Kind() != "enum_member_declaration" {
			continue
		}
		nm := field(member, "name")
		start, _ := lineRange(member)
		en.Children = append(en.Children, &ir.Field{Name: nodeText(nm, src), Visibility: ir.Public, Modifiers: []ir.Modifier{}, Line: start})
	}
	return en
}

func (e csharpExtractor) convertMethod(n *tree_sitter.Node, src []byte) *ir.Function {
	nameNode := field(n, "name")
	name := "<ctor>"
	if nameNode != nil {
		name = nodeText(nameNode, src)
	}
	visibility, mods := csharpModifiers(n, src)
	start, end := lineRange(n)
	fn := &ir.Function{
		Name:       name,
		Visibility: visibility,
		Modifiers:  mods,
		Decorators: []string{},
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

// convertOperator extracts an operator overload as a Function carrying
// the "operator" decorator and a Static modifier, matching how Java and
// Kotlin operator overloads are recorded.
func (e csharpExtractor) convertOperator(n *tree_sitter.Node, src []byte) *ir.Function {
	visibility, mods := csharpModifiers(n, src)
	mods = append(mods, ir.ModStatic)
	start, end := lineRange(n)
	name := ""
	var returnType *ir.TypeRef
	for _, c := range children(n) {
		switch c.Kind() {
		case "operator_token":
			name = "operator" + nodeText(c, src)
		case "implicit_keyword":
			name = "implicit"
		case "explicit_keyword":
			name = "explicit"
		case "type_identifier", "predefined_type", "generic_name":
			if returnType == nil {
				ref := ir.NewTypeRef(nodeText(c, src))
				returnType = &ref
			}
		}
	}
	if name == "" {
		name = "operator"
	}
	fn := &ir.Function{
		Name:       name,
		Visibility: visibility,
		Modifiers:  mods,
		Decorators: []string{"operator"},
		TypeParams: []ir.TypeParam{},
		Parameters: e.convertParams(field(n, "parameters"), src),
		ReturnType: returnType,
		LineStart:  start,
		LineEnd:    end,
	}
	impl := nodeText(n, src)
	fn.Implementation = &impl
	return fn
}

func (e csharpExtractor) convertProperty(n *tree_sitter.Node, src []byte) *ir.Field {
	nameNode := field(n, "name")
	visibility, mods := csharpModifiers(n, src)
	start, _ := lineRange(n)
	f := &ir.Field{Name: nodeText(nameNode, src), Visibility: visibility, Modifiers: mods, Line: start}
	if t := field(n, "type"); t != nil {
		ref := ir.NewTypeRef(nodeText(t, src))
		f.FieldType = &ref
	}
	return f
}

// convertField emits one Field per variable_declarator, so a grouped
// declaration like "private int x, y;" yields both x and y instead of
// only the first.
func (e csharpExtractor) convertField(n *tree_sitter.Node, src []byte) []ir.Node {
	visibility, mods := csharpModifiers(n, src)
	start, _ := lineRange(n)
	decl := field(n, "declaration")
	if decl == nil {
		return nil
	}
	typeNode := field(decl, "type")
	ref := ir.NewTypeRef(nodeText(typeNode, src))
	var out []ir.Node
	for _, v := range namedChildren(decl) {
		if v.Kind() != "variable_declarator" {
			continue
		}
		nameNode := v.NamedChild(0)
		f := &ir.Field{Name: nodeText(nameNode, src), Visibility: visibility, Modifiers: mods, FieldType: &ref, Line: start}
		if val := field(v, "value"); val != nil {
			s := nodeText(val, src)
			f.DefaultValue = &s
		}
		out = append(out, f)
	}
	return out
}

func (e csharpExtractor) convertParams(params *tree_sitter.Node, src []byte) []ir.Parameter {
	out := []ir.Parameter{}
	if params == nil {
		return out
	}
	for _, p := range namedChildren(params) {
		if p.Kind() != "parameter" {
			continue
		}
		nameNode := field(p, "name")
		typeNode := field(p, "type")
		param := ir.Parameter{Name: nodeText(nameNode, src), ParamType: ir.NewTypeRef(nodeText(typeNode, src)), Decorators: []string{}}
		if v := field(p, "default_value"); v != nil {
			s := nodeText(v, src)
			param.DefaultValue = &s
			param.IsOptional = true
		}
		for _, c := range children(p) {
			if nodeText(c, src) == "params" {
				param.IsVariadic = true
			}
		}
		out = append(out, param)
	}
	return out
}

func (e csharpExtractor) typeParams(n *tree_sitter.Node, src []byte) []ir.TypeParam {
	out := []ir.TypeParam{}
	if n == nil {
		return out
	}
	for _, p := range namedChildren(n) {
		if p.Kind() != "type_parameter" {
			continue
		}
		out = append(out, ir.TypeParam{Name: nodeText(p, src), Constraints: []ir.TypeRef{}})
	}
	return out
}

func (e csharpExtractor) convertComment(n *tree_sitter.Node, src []byte) *ir.Comment {
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
