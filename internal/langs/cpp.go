package langs

import (
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

type cppExtractor struct{}

// NewCppExtractor builds the C++ extractor.
func NewCppExtractor() Extractor { return &cppExtractor{} }

func (cppExtractor) LanguageTag() string  { return "cpp" }
func (cppExtractor) Extensions() []string { return []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"} }
func (e cppExtractor) CanProcess(path string) bool {
	return DefaultCanProcess(path, e.Extensions(), nil)
}

func (e cppExtractor) Process(source, path string, opts options.ProcessOptions) (*ir.File, error) {
	src := []byte(source)
	tree, err := parseTree(e.LanguageTag(), loadCpp, src)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()

	file := &ir.File{Path: path, Children: []ir.Node{}}
	e.walkTopLevel(root, src, file, nil)
	return file, nil
}

// walkTopLevel flattens namespace_definition bodies and propagates a
// preceding template_declaration's type parameters onto the single
// class/function it wraps.
func (e cppExtractor) walkTopLevel(n *tree_sitter.Node, src []byte, file *ir.File, pendingTemplate []ir.TypeParam) {
	for _, child := range namedChildren(n) {
		switch child.Kind() {
		case "namespace_definition":
			if body := field(child, "body"); body != nil {
				e.walkTopLevel(body, src, file, nil)
			}
		case "template_declaration":
			tp := e.templateParams(field(child, "parameters"), src)
			if inner := lastNamedChild(child); inner != nil {
				if node := e.convertTemplated(inner, src, tp); node != nil {
					file.Children = append(file.Children, node)
				}
			}
		case "preproc_include":
			file.Children = append(file.Children, e.convertInclude(child, src))
		case "function_definition":
			fn := e.convertFunction(child, src)
			if pendingTemplate != nil {
				fn.TypeParams = pendingTemplate
			}
			file.Children = append(file.Children, fn)
		case "class_specifier":
			class := e.convertRecord(child, src, "class", ir.Private)
			if pendingTemplate != nil {
				class.TypeParams = pendingTemplate
			}
			file.Children = append(file.Children, class)
		case "struct_specifier":
			class := e.convertRecord(child, src, "struct", ir.Public)
			if pendingTemplate != nil {
				class.TypeParams = pendingTemplate
			}
			file.Children = append(file.Children, class)
		case "enum_specifier":
			file.Children = append(file.Children, e.convertEnum(child, src))
		case "comment":
			file.Children = append(file.Children, e.convertComment(child, src))
		}
	}
}

// convertTemplated converts the single declaration a template_declaration
// wraps, attaching tp as its type parameters.
func (e cppExtractor) convertTemplated(n *tree_sitter.Node, src []byte, tp []ir.TypeParam) ir.Node {
	switch n.Kind() {
	case "function_definition":
		fn := e.convertFunction(n, src)
		fn.TypeParams = tp
		return fn
	case "class_specifier":
		class := e.convertRecord(n, src, "class", ir.Private)
		class.TypeParams = tp
		return class
	case "struct_specifier":
		class := e.convertRecord(n, src, "struct", ir.Public)
		class.TypeParams = tp
		return class
	default:
		return nil
	}
}

func lastNamedChild(n *tree_sitter.Node) *tree_sitter.Node {
	kids := namedChildren(n)
	if len(kids) == 0 {
		return nil
	}
	return kids[len(kids)-1]
}

func (e cppExtractor) templateParams(n *tree_sitter.Node, src []byte) []ir.TypeParam {
	out := []ir.TypeParam{}
	if n == nil {
		return out
	}
	for _, p := range namedChildren(n) {
		switch p.Kind() {
		case "type_parameter_declaration", "optional_type_parameter_declaration":
			if nm := field(p, "name"); nm != nil {
				out = append(out, ir.TypeParam{Name: nodeText(nm, src), Constraints: []ir.TypeRef{}})
			}
		case "parameter_declaration":
			out = append(out, ir.TypeParam{Name: nodeText(p, src), Constraints: []ir.TypeRef{}})
		}
	}
	return out
}

func (e cppExtractor) convertInclude(n *tree_sitter.Node, src []byte) *ir.Import {
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

func (e cppExtractor) convertFunction(n *tree_sitter.Node, src []byte) *ir.Function {
	declarator := field(n, "declarator")
	name := ""
	var params *tree_sitter.Node
	for declarator != nil && declarator.Kind() != "function_declarator" {
		declarator = field(declarator, "declarator")
	}
	if declarator != nil {
		if id := field(declarator, "declarator"); id != nil {
			name = identifierName(id, src)
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

func (e cppExtractor) convertParams(params *tree_sitter.Node, src []byte) []ir.Parameter {
	out := []ir.Parameter{}
	if params == nil {
		return out
	}
	idx := 0
	for _, p := range namedChildren(params) {
		switch p.Kind() {
		case "parameter_declaration", "optional_parameter_declaration":
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
			param := ir.Parameter{Name: name, ParamType: ir.NewTypeRef(nodeText(typeNode, src)), Decorators: []string{}}
			if v := field(p, "default_value"); v != nil {
				s := nodeText(v, src)
				param.DefaultValue = &s
				param.IsOptional = true
			}
			out = append(out, param)
		case "variadic_parameter_declaration":
			out = append(out, ir.Parameter{Name: "...", ParamType: ir.NewTypeRef(""), IsVariadic: true, Decorators: []string{}})
		}
	}
	return out
}

// convertRecord converts a class_specifier/struct_specifier, tracking
// the access-specifier region to assign Visibility to each member.
// defaultVis is Private for `class`, Public for `struct`, matching
// C++'s own default.
func (e cppExtractor) convertRecord(n *tree_sitter.Node, src []byte, decorator string, defaultVis ir.Visibility) *ir.Class {
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
	if base := field(n, "base_class_clause"); base != nil {
		for _, t := range namedChildren(base) {
			class.Extends = append(class.Extends, ir.NewTypeRef(nodeText(t, src)))
		}
	}
	body := field(n, "body")
	if body == nil {
		return class
	}
	region := defaultVis
	for _, member := range namedChildren(body) {
		switch member.Kind() {
		case "access_specifier":
			switch nodeText(member, src) {
			case "public":
				region = ir.Public
			case "private":
				region = ir.Private
			case "protected":
				region = ir.Protected
			}
		case "function_definition":
			fn := e.convertFunction(member, src)
			fn.Visibility = region
			class.Children = append(class.Children, fn)
		case "field_declaration":
			class.Children = append(class.Children, e.convertFieldDeclaration(member, src, region)...)
		case "comment":
			class.Children = append(class.Children, e.convertComment(member, src))
		}
	}
	return class
}

// convertFieldDeclaration distinguishes a plain data member from an
// in-class method prototype (a field_declaration whose declarator is a
// function_declarator): the latter becomes a Function with no captured
// implementation body.
func (e cppExtractor) convertFieldDeclaration(n *tree_sitter.Node, src []byte, visibility ir.Visibility) []ir.Node {
	typeNode := field(n, "type")
	start, _ := lineRange(n)
	var out []ir.Node
	for _, d := range namedChildren(n) {
		if d == typeNode {
			continue
		}
		fd := d
		for fd != nil && fd.Kind() != "function_declarator" && fd.Kind() != "identifier" && fd.Kind() != "field_identifier" {
			next := field(fd, "declarator")
			if next == nil {
				break
			}
			fd = next
		}
		if fd != nil && fd.Kind() == "function_declarator" {
			nameNode := field(fd, "declarator")
			sEnd, eEnd := lineRange(n)
			out = append(out, &ir.Function{
				Name:       identifierName(nameNode, src),
				Visibility: visibility,
				Modifiers:  []ir.Modifier{},
				Decorators: []string{},
				TypeParams: []ir.TypeParam{},
				Parameters: e.convertParams(field(fd, "parameters"), src),
				ReturnType: typeRefOrNil(typeNode, src),
				LineStart:  sEnd,
				LineEnd:    eEnd,
			})
			continue
		}
		name := identifierName(d, src)
		if name == "" {
			continue
		}
		ref := ir.NewTypeRef(nodeText(typeNode, src))
		out = append(out, &ir.Field{Name: name, Visibility: visibility, Modifiers: []ir.Modifier{}, FieldType: &ref, Line: start})
	}
	return out
}

func typeRefOrNil(n *tree_sitter.Node, src []byte) *ir.TypeRef {
	if n == nil {
		return nil
	}
	ref := ir.NewTypeRef(nodeText(n, src))
	return &ref
}

func (e cppExtractor) convertEnum(n *tree_sitter.Node, src []byte) *ir.Enum {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	en := &ir.Enum{Name: nodeText(nameNode, src), Visibility: ir.Public, Children: []ir.Node{}, LineStart: start, LineEnd: end}
	body := field(n, "body")
	if body == nil {
		return en
	}
	for _, v := range namedChildren(body) {
		if v.Kind() != "enumerator" {
			continue
		}
		nm := field(v, "name")
		vstart, _ := lineRange(v)
		en.Children = append(en.Children, &ir.Field{Name: nodeText(nm, src), Visibility: ir.Public, Modifiers: []ir.Modifier{}, Line: vstart})
	}
	return en
}

func (e cppExtractor) convertComment(n *tree_sitter.Node, src []byte) *ir.Comment {
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
