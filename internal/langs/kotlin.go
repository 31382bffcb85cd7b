package langs

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

type kotlinExtractor struct{}

// NewKotlinExtractor builds the Kotlin extractor.
func NewKotlinExtractor() Extractor { return &kotlinExtractor{} }

func (kotlinExtractor) LanguageTag() string  { return "kotlin" }
func (kotlinExtractor) Extensions() []string { return []string{".kt", ".kts"} }
func (e kotlinExtractor) CanProcess(path string) bool {
	return DefaultCanProcess(path, e.Extensions(), nil)
}

// kotlinModifiers reads a "modifiers" child. The absence of a visibility
// keyword maps to Public, the language's own default.
func kotlinModifiers(n *tree_sitter.Node, src []byte) (ir.Visibility, []ir.Modifier, []string) {
	visibility := ir.Public
	var mods []ir.Modifier
	var decorators []string
	mnode := field(n, "modifiers")
	if mnode == nil {
		return visibility, mods, decorators
	}
	for _, c := range children(mnode) {
		switch c.Kind() {
		case "annotation":
			decorators = append(decorators, strings.TrimPrefix(nodeText(c, src), "@"))
		case "visibility_modifier":
			switch nodeText(c, src) {
			case "public":
				visibility = ir.Public
			case "private":
				visibility = ir.Private
			case "protected":
				visibility = ir.Protected
			case "internal":
				visibility = ir.Internal
			}
		case "class_modifier", "member_modifier", "function_modifier", "inheritance_modifier":
			switch nodeText(c, src) {
			case "abstract":
				mods = append(mods, ir.ModAbstract)
			case "final":
				mods = append(mods, ir.ModFinal)
			case "sealed":
				mods = append(mods, ir.ModSealed)
			case "data":
				mods = append(mods, ir.ModData)
			case "open":
				mods = append(mods, ir.ModVirtual)
			case "override":
				mods = append(mods, ir.ModOverride)
			case "inline":
				mods = append(mods, ir.ModInline)
			case "suspend":
				mods = append(mods, ir.ModAsync)
			case "operator":
				mods = append(mods, ir.ModStatic)
				decorators = append(decorators, "operator")
			}
		}
	}
	return visibility, mods, decorators
}

func (e kotlinExtractor) Process(source, path string, opts options.ProcessOptions) (*ir.File, error) {
	src := []byte(source)
	tree, err := parseTree(e.LanguageTag(), loadKotlin, src)
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

func (e kotlinExtractor) convertMember(n *tree_sitter.Node, src []byte) ir.Node {
	switch n.Kind() {
	case "import":
		return e.convertImport(n, src)
	case "class_declaration":
		return e.convertClass(n, src)
	case "object_declaration":
		return e.convertClass(n, src)
	case "companion_object":
		return e.convertCompanionObject(n, src)
	case "function_declaration":
		return e.convertFunction(n, src)
	case "property_declaration":
		return e.convertProperty(n, src)
	case "comment", "line_comment", "multiline_comment":
		return e.convertComment(n, src)
	default:
		return nil
	}
}

func (e kotlinExtractor) convertImport(n *tree_sitter.Node, src []byte) *ir.Import {
	line := int(n.StartPosition().Row) + 1
	module := ""
	if id := field(n, "identifier"); id != nil {
		module = nodeText(id, src)
	} else if id := n.NamedChild(0); id != nil {
		module = nodeText(id, src)
	}
	return &ir.Import{ImportKind: "import", Module: module, Symbols: []ir.ImportedSymbol{}, Line: &line}
}

func (e kotlinExtractor) convertClass(n *tree_sitter.Node, src []byte) *ir.Class {
	nameNode := field(n, "name")
	visibility, mods, decorators := kotlinModifiers(n, src)
	if n.Kind() == "object_declaration" {
		decorators = append(decorators, "object")
	} else {
		for _, c := range children(n) {
			switch nodeText(c, src) {
			case "interface":
				decorators = append(decorators, "interface")
			case "enum":
				decorators = append(decorators, "enum")
			}
		}
	}
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
	if delegations := field(n, "delegation_specifiers"); delegations != nil {
		for i, spec := range namedChildren(delegations) {
			ref := ir.NewTypeRef(nodeText(spec, src))
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
		if node := e.convertMember(member, src); node != nil {
			class.Children = append(class.Children, node)
		}
	}
	return class
}

// convertCompanionObject nests a `companion object { ... }` block as a
// Class tagged with the "companion" decorator, defaulting its name to
// "Companion" the way the language does for an unnamed companion.
func (e kotlinExtractor) convertCompanionObject(n *tree_sitter.Node, src []byte) *ir.Class {
	visibility, mods, decorators := kotlinModifiers(n, src)
	decorators = append(decorators, "companion")
	name := "Companion"
	if nameNode := field(n, "name"); nameNode != nil {
		name = nodeText(nameNode, src)
	}
	start, end := lineRange(n)
	class := &ir.Class{
		Name:       name,
		Visibility: visibility,
		Modifiers:  mods,
		Decorators: decorators,
		TypeParams: []ir.TypeParam{},
		Extends:    []ir.TypeRef{},
		Implements: []ir.TypeRef{},
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	if delegations := field(n, "delegation_specifiers"); delegations != nil {
		for i, spec := range namedChildren(delegations) {
			ref := ir.NewTypeRef(nodeText(spec, src))
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
		if node := e.convertMember(member, src); node != nil {
			class.Children = append(class.Children, node)
		}
	}
	return class
}

func (e kotlinExtractor) convertFunction(n *tree_sitter.Node, src []byte) *ir.Function {
	nameNode := field(n, "name")
	visibility, mods, decorators := kotlinModifiers(n, src)
	start, end := lineRange(n)
	fn := &ir.Function{
		Name:       nodeText(nameNode, src),
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

// convertProperty models a Kotlin `val`/`var` as a typed Field without
// separately modeling any custom getter/setter it declares.
func (e kotlinExtractor) convertProperty(n *tree_sitter.Node, src []byte) *ir.Field {
	visibility, mods, _ := kotlinModifiers(n, src)
	isVar := false
	for _, c := range children(n) {
		if nodeText(c, src) == "var" {
			isVar = true
		}
	}
	if !isVar {
		mods = append(mods, ir.ModReadonly)
	}
	start, _ := lineRange(n)
	f := &ir.Field{Visibility: visibility, Modifiers: mods, Line: start}
	if decl := field(n, "variable"); decl != nil {
		nameNode := field(decl, "name")
		f.Name = nodeText(nameNode, src)
		if t := field(decl, "type"); t != nil {
			ref := ir.NewTypeRef(nodeText(t, src))
			f.FieldType = &ref
		}
	} else if nameNode := n.NamedChild(0); nameNode != nil {
		f.Name = nodeText(nameNode, src)
	}
	return f
}

func (e kotlinExtractor) convertParams(params *tree_sitter.Node, src []byte) []ir.Parameter {
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
		if v := field(p, "default"); v != nil {
			s := nodeText(v, src)
			param.DefaultValue = &s
			param.IsOptional = true
		}
		out = append(out, param)
	}
	return out
}

func (e kotlinExtractor) typeParams(n *tree_sitter.Node, src []byte) []ir.TypeParam {
	out := []ir.TypeParam{}
	if n == nil {
		return out
	}
	for _, p := range namedChildren(n) {
		out = append(out, ir.TypeParam{Name: nodeText(p, src), Constraints: []ir.TypeRef{}})
	}
	return out
}

func (e kotlinExtractor) convertComment(n *tree_sitter.Node, src []byte) *ir.Comment {
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
