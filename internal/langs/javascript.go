package langs

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

type javascriptExtractor struct{}

// NewJavaScriptExtractor builds the JavaScript extractor.
func NewJavaScriptExtractor() Extractor { return &javascriptExtractor{} }

func (javascriptExtractor) LanguageTag() string  { return "javascript" }
func (javascriptExtractor) Extensions() []string { return []string{".js", ".jsx", ".mjs", ".cjs"} }
func (e javascriptExtractor) CanProcess(path string) bool {
	return DefaultCanProcess(path, e.Extensions(), nil)
}

func (e javascriptExtractor) Process(source, path string, opts options.ProcessOptions) (*ir.File, error) {
	src := []byte(source)
	tree, err := parseTree(e.LanguageTag(), loadJavaScript, src)
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

func (e javascriptExtractor) convertTopLevel(n *tree_sitter.Node, src []byte) []ir.Node {
	switch n.Kind() {
	case "export_statement":
		if decl := field(n, "declaration"); decl != nil {
			return e.convertTopLevel(decl, src)
		}
		return nil
	case "class_declaration":
		return []ir.Node{e.convertClass(n, src)}
	case "function_declaration", "generator_function_declaration":
		return []ir.Node{e.convertFunction(n, src, false)}
	case "lexical_declaration", "variable_declaration":
		return e.convertVarDeclaration(n, src)
	case "import_statement":
		return []ir.Node{e.convertImport(n, src)}
	case "comment":
		return []ir.Node{e.convertComment(n, src)}
	default:
		return nil
	}
}

// propVisibility implements JS/TS's "#"-prefixed private-field rule;
// everything else is Public since plain JS has no accessibility
// keywords.
func propVisibility(nameNode *tree_sitter.Node) ir.Visibility {
	if nameNode != nil && nameNode.Kind() == "private_property_identifier" {
		return ir.Private
	}
	return ir.Public
}

func (e javascriptExtractor) convertClass(n *tree_sitter.Node, src []byte) *ir.Class {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	class := &ir.Class{
		Name:       nodeText(nameNode, src),
		Visibility: ir.Public,
		Modifiers:  []ir.Modifier{},
		Decorators: []string{},
		TypeParams: []ir.TypeParam{},
		Extends:    []ir.TypeRef{},
		Implements: []ir.TypeRef{},
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	if heritage := field(n, "superclass"); heritage != nil {
		class.Extends = append(class.Extends, ir.NewTypeRef(nodeText(heritage, src)))
	}

	body := field(n, "body")
	if body == nil {
		return class
	}
	for _, member := range namedChildren(body) {
		switch member.Kind() {
		case "method_definition":
			class.Children = append(class.Children, e.convertMethod(member, src))
		case "field_definition", "public_field_definition":
			class.Children = append(class.Children, e.convertField(member, src))
		case "comment":
			class.Children = append(class.Children, e.convertComment(member, src))
		}
	}
	return class
}

func (e javascriptExtractor) convertMethod(n *tree_sitter.Node, src []byte) *ir.Function {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	fn := &ir.Function{
		Name:       nodeText(nameNode, src),
		Visibility: propVisibility(nameNode),
		Modifiers:  []ir.Modifier{},
		Decorators: []string{},
		TypeParams: []ir.TypeParam{},
		Parameters: e.convertParams(field(n, "parameters"), src),
		LineStart:  start,
		LineEnd:    end,
	}
	for _, c := range children(n) {
		switch nodeText(c, src) {
		case "static":
			fn.Modifiers = append(fn.Modifiers, ir.ModStatic)
		case "async":
			fn.Modifiers = append(fn.Modifiers, ir.ModAsync)
		}
		if c == nameNode {
			break
		}
	}
	impl := nodeText(n, src)
	fn.Implementation = &impl
	return fn
}

func (e javascriptExtractor) convertField(n *tree_sitter.Node, src []byte) *ir.Field {
	nameNode := field(n, "property")
	start, _ := lineRange(n)
	f := &ir.Field{
		Name:       nodeText(nameNode, src),
		Visibility: propVisibility(nameNode),
		Modifiers:  []ir.Modifier{},
		Line:       start,
	}
	for _, c := range children(n) {
		if nodeText(c, src) == "static" {
			f.Modifiers = append(f.Modifiers, ir.ModStatic)
		}
		if c == nameNode {
			break
		}
	}
	if v := field(n, "value"); v != nil {
		s := nodeText(v, src)
		f.DefaultValue = &s
	}
	return f
}

func (e javascriptExtractor) convertFunction(n *tree_sitter.Node, src []byte, _ bool) *ir.Function {
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
	if first := n.Child(0); first != nil && nodeText(first, src) == "async" {
		fn.Modifiers = append(fn.Modifiers, ir.ModAsync)
	}
	return fn
}

// convertVarDeclaration looks for `const name = (arrow function / function
// expression)` bindings and promotes them to top-level Functions; plain
// value bindings are dropped (JS has no top-level Field equivalent).
func (e javascriptExtractor) convertVarDeclaration(n *tree_sitter.Node, src []byte) []ir.Node {
	var out []ir.Node
	for _, decl := range namedChildren(n) {
		if decl.Kind() != "variable_declarator" {
			continue
		}
		nameNode := field(decl, "name")
		value := field(decl, "value")
		if nameNode == nil || value == nil {
			continue
		}
		if value.Kind() != "arrow_function" && value.Kind() != "function_expression" && value.Kind() != "generator_function" {
			continue
		}
		start, end := lineRange(decl)
		impl := nodeText(decl, src)
		fn := &ir.Function{
			Name:           nodeText(nameNode, src),
			Visibility:     ir.Public,
			Modifiers:      []ir.Modifier{},
			Decorators:     []string{},
			TypeParams:     []ir.TypeParam{},
			Parameters:     e.convertParams(field(value, "parameters"), src),
			Implementation: &impl,
			LineStart:      start,
			LineEnd:        end,
		}
		if first := value.Child(0); first != nil && nodeText(first, src) == "async" {
			fn.Modifiers = append(fn.Modifiers, ir.ModAsync)
		}
		out = append(out, fn)
	}
	return out
}

func (e javascriptExtractor) convertParams(params *tree_sitter.Node, src []byte) []ir.Parameter {
	out := []ir.Parameter{}
	if params == nil {
		return out
	}
	for _, p := range namedChildren(params) {
		switch p.Kind() {
		case "identifier":
			out = append(out, ir.Parameter{Name: nodeText(p, src), ParamType: ir.NewTypeRef(""), Decorators: []string{}})
		case "assignment_pattern":
			left := field(p, "left")
			right := field(p, "right")
			val := nodeText(right, src)
			out = append(out, ir.Parameter{
				Name:         nodeText(left, src),
				ParamType:    ir.NewTypeRef(""),
				DefaultValue: &val,
				IsOptional:   true,
				Decorators:   []string{},
			})
		case "rest_pattern":
			name := ""
			if id := p.NamedChild(0); id != nil {
				name = nodeText(id, src)
			}
			out = append(out, ir.Parameter{Name: name, ParamType: ir.NewTypeRef(""), IsVariadic: true, Decorators: []string{}})
		default:
			out = append(out, ir.Parameter{Name: nodeText(p, src), ParamType: ir.NewTypeRef(""), Decorators: []string{}})
		}
	}
	return out
}

func (e javascriptExtractor) convertImport(n *tree_sitter.Node, src []byte) *ir.Import {
	line := int(n.StartPosition().Row) + 1
	imp := &ir.Import{ImportKind: "import", Symbols: []ir.ImportedSymbol{}, Line: &line}
	for _, c := range namedChildren(n) {
		if c.Kind() == "string" {
			imp.Module = trimQuotes(nodeText(c, src))
		}
		if c.Kind() == "import_clause" {
			e.collectImportClause(c, src, imp)
		}
	}
	return imp
}

func (e javascriptExtractor) collectImportClause(n *tree_sitter.Node, src []byte, imp *ir.Import) {
	for _, c := range namedChildren(n) {
		switch c.Kind() {
		case "identifier":
			imp.Symbols = append(imp.Symbols, ir.ImportedSymbol{Name: nodeText(c, src)})
		case "namespace_import":
			if id := c.NamedChild(0); id != nil {
				imp.Symbols = append(imp.Symbols, ir.ImportedSymbol{Name: "* as " + nodeText(id, src)})
			}
		case "named_imports":
			for _, spec := range namedChildren(c) {
				if spec.Kind() != "import_specifier" {
					continue
				}
				name := field(spec, "name")
				alias := field(spec, "alias")
				sym := ir.ImportedSymbol{Name: nodeText(name, src)}
				if alias != nil {
					a := nodeText(alias, src)
					sym.Alias = &a
				}
				imp.Symbols = append(imp.Symbols, sym)
			}
		}
	}
}

func (e javascriptExtractor) convertComment(n *tree_sitter.Node, src []byte) *ir.Comment {
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
