package langs

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

type typescriptExtractor struct {
	js javascriptExtractor
}

// NewTypeScriptExtractor builds the TypeScript/TSX extractor.
func NewTypeScriptExtractor() Extractor { return &typescriptExtractor{} }

func (typescriptExtractor) LanguageTag() string  { return "typescript" }
func (typescriptExtractor) Extensions() []string { return []string{".ts", ".tsx"} }
func (e typescriptExtractor) CanProcess(path string) bool {
	return DefaultCanProcess(path, e.Extensions(), nil)
}

func (e typescriptExtractor) Process(source, path string, opts options.ProcessOptions) (*ir.File, error) {
	src := []byte(source)
	loader := loadTypeScript
	if len(path) >= 4 && path[len(path)-4:] == ".tsx" {
		loader = loadTSX
	}
	tree, err := parseTree(e.LanguageTag(), loader, src)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()

	file := &ir.File{Path: path, Children: []ir.Node{}}
	for _, child := range namedChildren(root) {
		if n := e.convertTopLevel(child, src); n != nil {
			file.Children = append(file.Children, n...)
		}
	}
	return file, nil
}

func (e typescriptExtractor) convertTopLevel(n *tree_sitter.Node, src []byte) []ir.Node {
	switch n.Kind() {
	case "export_statement":
		if decl := field(n, "declaration"); decl != nil {
			return e.convertTopLevel(decl, src)
		}
		return nil
	case "class_declaration":
		return []ir.Node{e.convertClass(n, src)}
	case "interface_declaration":
		return []ir.Node{e.convertInterface(n, src)}
	case "type_alias_declaration":
		return []ir.Node{e.convertTypeAlias(n, src)}
	case "enum_declaration":
		return []ir.Node{e.convertEnum(n, src)}
	case "function_declaration", "generator_function_declaration":
		fn := e.js.convertFunction(n, src, false)
		fn.Parameters = e.convertParams(field(n, "parameters"), src)
		fn.ReturnType = e.returnType(n, src)
		return []ir.Node{fn}
	case "lexical_declaration", "variable_declaration":
		return e.js.convertVarDeclaration(n, src)
	case "import_statement":
		return []ir.Node{e.js.convertImport(n, src)}
	case "comment":
		return []ir.Node{e.js.convertComment(n, src)}
	default:
		return nil
	}
}

// tsModifiers reads the accessibility_modifier/"readonly"/"static"/"abstract"
// keyword children that precede a class member's name.
func tsModifiers(n *tree_sitter.Node, stop *tree_sitter.Node, src []byte) (ir.Visibility, []ir.Modifier) {
	visibility := ir.Public
	var mods []ir.Modifier
	for _, c := range children(n) {
		if c == stop {
			break
		}
		switch c.Kind() {
		case "accessibility_modifier":
			switch nodeText(c, src) {
			case "private":
				visibility = ir.Private
			case "protected":
				visibility = ir.Protected
			case "public":
				visibility = ir.Public
			}
		default:
			switch nodeText(c, src) {
			case "static":
				mods = append(mods, ir.ModStatic)
			case "readonly":
				mods = append(mods, ir.ModConst)
			case "abstract":
				mods = append(mods, ir.ModAbstract)
			case "async":
				mods = append(mods, ir.ModAsync)
			case "override":
				mods = append(mods, ir.ModOverride)
			}
		}
	}
	return visibility, mods
}

func (e typescriptExtractor) convertClass(n *tree_sitter.Node, src []byte) *ir.Class {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	class := &ir.Class{
		Name:       nodeText(nameNode, src),
		Visibility: ir.Public,
		Modifiers:  []ir.Modifier{},
		Decorators: []string{},
		TypeParams: e.typeParams(field(n, "type_parameters"), src),
		Extends:    []ir.TypeRef{},
		Implements: []ir.TypeRef{},
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	if _, mods := tsModifiers(n, nameNode, src); len(mods) > 0 {
		class.Modifiers = mods
	}
	if heritage := field(n, "class_heritage"); heritage != nil {
		for _, c := range namedChildren(heritage) {
			switch c.Kind() {
			case "extends_clause":
				if t := c.NamedChild(0); t != nil {
					class.Extends = append(class.Extends, ir.NewTypeRef(nodeText(t, src)))
				}
			case "implements_clause":
				for _, t := range namedChildren(c) {
					class.Implements = append(class.Implements, ir.NewTypeRef(nodeText(t, src)))
				}
			}
		}
	}

	body := field(n, "body")
	if body == nil {
		return class
	}
	for _, member := range namedChildren(body) {
		switch member.Kind() {
		case "method_definition":
			class.Children = append(class.Children, e.convertMethod(member, src))
		case "public_field_definition", "field_definition":
			class.Children = append(class.Children, e.convertField(member, src))
		case "comment":
			class.Children = append(class.Children, e.js.convertComment(member, src))
		}
	}
	return class
}

func (e typescriptExtractor) convertMethod(n *tree_sitter.Node, src []byte) *ir.Function {
	nameNode := field(n, "name")
	visibility, mods := tsModifiers(n, nameNode, src)
	start, end := lineRange(n)
	impl := nodeText(n, src)
	return &ir.Function{
		Name:           nodeText(nameNode, src),
		Visibility:     visibility,
		Modifiers:      mods,
		Decorators:     []string{},
		TypeParams:     e.typeParams(field(n, "type_parameters"), src),
		Parameters:     e.convertParams(field(n, "parameters"), src),
		ReturnType:     e.returnType(n, src),
		Implementation: &impl,
		LineStart:      start,
		LineEnd:        end,
	}
}

func (e typescriptExtractor) convertField(n *tree_sitter.Node, src []byte) *ir.Field {
	nameNode := field(n, "property")
	if nameNode == nil {
		nameNode = field(n, "name")
	}
	visibility, mods := tsModifiers(n, nameNode, src)
	start, _ := lineRange(n)
	f := &ir.Field{
		Name:       nodeText(nameNode, src),
		Visibility: visibility,
		Modifiers:  mods,
		Line:       start,
	}
	if t := field(n, "type"); t != nil {
		ref := ir.NewTypeRef(nodeText(t, src))
		f.FieldType = &ref
	}
	if v := field(n, "value"); v != nil {
		s := nodeText(v, src)
		f.DefaultValue = &s
	}
	return f
}

func (e typescriptExtractor) convertInterface(n *tree_sitter.Node, src []byte) *ir.Interface {
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
	if heritage := field(n, "extends_clause"); heritage != nil {
		for _, t := range namedChildren(heritage) {
			iface.Extends = append(iface.Extends, ir.NewTypeRef(nodeText(t, src)))
		}
	}
	body := field(n, "body")
	if body == nil {
		return iface
	}
	for _, member := range namedChildren(body) {
		switch member.Kind() {
		case "method_signature":
			nm := field(member, "name")
			start, end := lineRange(member)
			iface.Children = append(iface.Children, &ir.Function{
				Name:       nodeText(nm, src),
				Visibility: ir.Public,
				Modifiers:  []ir.Modifier{},
				Decorators: []string{},
				TypeParams: e.typeParams(field(member, "type_parameters"), src),
				Parameters: e.convertParams(field(member, "parameters"), src),
				ReturnType: e.returnType(member, src),
				LineStart:  start,
				LineEnd:    end,
			})
		case "property_signature":
			nm := field(member, "name")
			start, _ := lineRange(member)
			f := &ir.Field{Name: nodeText(nm, src), Visibility: ir.Public, Modifiers: []ir.Modifier{}, Line: start}
			if t := field(member, "type"); t != nil {
				ref := ir.NewTypeRef(nodeText(t, src))
				f.FieldType = &ref
			}
			iface.Children = append(iface.Children, f)
		case "comment":
			iface.Children = append(iface.Children, e.js.convertComment(member, src))
		}
	}
	return iface
}

func (e typescriptExtractor) convertTypeAlias(n *tree_sitter.Node, src []byte) *ir.TypeAlias {
	nameNode := field(n, "name")
	start, _ := lineRange(n)
	return &ir.TypeAlias{
		Name:       nodeText(nameNode, src),
		Visibility: ir.Public,
		TypeParams: e.typeParams(field(n, "type_parameters"), src),
		AliasType:  ir.NewTypeRef(nodeText(field(n, "value"), src)),
		Line:       start,
	}
}

func (e typescriptExtractor) convertEnum(n *tree_sitter.Node, src []byte) *ir.Enum {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	en := &ir.Enum{
		Name:       nodeText(nameNode, src),
		Visibility: ir.Public,
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	body := field(n, "body")
	if body == nil {
		return en
	}
	for _, member := range namedChildren(body) {
		if member.Kind() != "enum_assignment" && member.Kind() != "property_identifier" {
			continue
		}
		nm := member
		if member.Kind() == "enum_assignment" {
			nm = field(member, "name")
		}
		start, _ := lineRange(member)
		en.Children = append(en.Children, &ir.Field{Name: nodeText(nm, src), Visibility: ir.Public, Modifiers: []ir.Modifier{}, Line: start})
	}
	return en
}

func (e typescriptExtractor) typeParams(n *tree_sitter.Node, src []byte) []ir.TypeParam {
	out := []ir.TypeParam{}
	if n == nil {
		return out
	}
	for _, p := range namedChildren(n) {
		if p.Kind() != "type_parameter" {
			continue
		}
		tp := ir.TypeParam{Name: nodeText(field(p, "name"), src), Constraints: []ir.TypeRef{}}
		if c := field(p, "constraint"); c != nil {
			tp.Constraints = append(tp.Constraints, ir.NewTypeRef(nodeText(c, src)))
		}
		if d := field(p, "default_type"); d != nil {
			ref := ir.NewTypeRef(nodeText(d, src))
			tp.Default = &ref
		}
		out = append(out, tp)
	}
	return out
}

func (e typescriptExtractor) returnType(n *tree_sitter.Node, src []byte) *ir.TypeRef {
	rt := field(n, "return_type")
	if rt == nil {
		return nil
	}
	ref := ir.NewTypeRef(nodeText(rt, src))
	return &ref
}

func (e typescriptExtractor) convertParams(params *tree_sitter.Node, src []byte) []ir.Parameter {
	out := []ir.Parameter{}
	if params == nil {
		return out
	}
	for _, p := range namedChildren(params) {
		switch p.Kind() {
		case "required_parameter", "optional_parameter":
			pat := field(p, "pattern")
			name := nodeText(pat, src)
			param := ir.Parameter{Name: name, ParamType: ir.NewTypeRef(""), Decorators: []string{}}
			if t := field(p, "type"); t != nil {
				param.ParamType = ir.NewTypeRef(nodeText(t, src))
			}
			if v := field(p, "value"); v != nil {
				s := nodeText(v, src)
				param.DefaultValue = &s
			}
			param.IsOptional = p.Kind() == "optional_parameter" || param.DefaultValue != nil
			out = append(out, param)
		case "rest_pattern":
			name := ""
			var typ ir.TypeRef
			if id := p.NamedChild(0); id != nil {
				name = nodeText(id, src)
			}
			out = append(out, ir.Parameter{Name: name, ParamType: typ, IsVariadic: true, Decorators: []string{}})
		default:
			out = append(out, ir.Parameter{Name: nodeText(p, src), ParamType: ir.NewTypeRef(""), Decorators: []string{}})
		}
	}
	return out
}
