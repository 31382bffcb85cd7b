package langs

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

type rustExtractor struct{}

// NewRustExtractor builds the Rust extractor.
func NewRustExtractor() Extractor { return &rustExtractor{} }

func (rustExtractor) LanguageTag() string  { return "rust" }
func (rustExtractor) Extensions() []string { return []string{".rs"} }
func (e rustExtractor) CanProcess(path string) bool {
	return DefaultCanProcess(path, e.Extensions(), nil)
}

// rustVisibility reads an item's optional "visibility_modifier" child:
// no modifier is crate-private (Private), bare "pub" is Public,
// pub(crate) is Internal, and pub(super)/pub(in ...) are Protected.
func rustVisibility(n *tree_sitter.Node, src []byte) ir.Visibility {
	vis := field(n, "visibility_modifier")
	if vis == nil {
		return ir.Private
	}
	text := nodeText(vis, src)
	switch {
	case text == "pub":
		return ir.Public
	case strings.Contains(text, "pub(crate)"):
		return ir.Internal
	case strings.Contains(text, "pub(super)") || strings.Contains(text, "pub(in "):
		return ir.Protected
	default:
		return ir.Internal
	}
}

// Process parses source in two passes: the first converts every
// top-level item except impl_item, recording struct/enum containers by
// name; the second walks impl_item blocks in source order and appends
// their associated functions to the matching container's children,
// preserving impl-block order the way multiple `impl` blocks for one
// type accumulate in the original source.
func (e rustExtractor) Process(source, path string, opts options.ProcessOptions) (*ir.File, error) {
	src := []byte(source)
	tree, err := parseTree(e.LanguageTag(), loadRust, src)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()

	file := &ir.File{Path: path, Children: []ir.Node{}}
	containers := map[string]ir.Node{}
	var impls []*tree_sitter.Node

	for _, child := range namedChildren(root) {
		if child.Kind() == "impl_item" {
			impls = append(impls, child)
			continue
		}
		node := e.convertItem(child, src)
		if node == nil {
			continue
		}
		file.Children = append(file.Children, node)
		switch v := node.(type) {
		case *ir.Class:
			containers[v.Name] = v
		case *ir.Enum:
			containers[v.Name] = v
		case *ir.Interface:
			containers[v.Name] = v
		}
	}

	for _, impl := range impls {
		typeNode := field(impl, "type")
		typeName := nodeText(typeNode, src)
		body := field(impl, "body")
		if body == nil {
			continue
		}
		var fns []ir.Node
		for _, member := range namedChildren(body) {
			if member.Kind() == "function_item" {
				fns = append(fns, e.convertFunction(member, src, true))
			} else if member.Kind() == "function_signature_item" {
				fns = append(fns, e.convertFunctionSignature(member, src))
			}
		}
		switch v := containers[typeName].(type) {
		case *ir.Class:
			v.Children = append(v.Children, fns...)
		case *ir.Enum:
			v.Children = append(v.Children, fns...)
		default:
			// No matching container in this file (external/foreign
			// type, or a trait impl for a type defined elsewhere):
			// surface the methods as top-level functions instead of
			// dropping them.
			for _, fn := range fns {
				if f, ok := fn.(*ir.Function); ok {
					f.Decorators = append(f.Decorators, "impl:"+typeName)
				}
			}
			file.Children = append(file.Children, fns...)
		}
	}

	return file, nil
}

func (e rustExtractor) convertItem(n *tree_sitter.Node, src []byte) ir.Node {
	switch n.Kind() {
	case "use_declaration":
		return e.convertUse(n, src)
	case "struct_item":
		return e.convertStruct(n, src)
	case "enum_item":
		return e.convertEnum(n, src)
	case "trait_item":
		return e.convertTrait(n, src)
	case "function_item":
		return e.convertFunction(n, src, false)
	case "type_item":
		return e.convertTypeAlias(n, src)
	case "line_comment", "block_comment":
		return e.convertComment(n, src)
	default:
		return nil
	}
}

func (e rustExtractor) convertUse(n *tree_sitter.Node, src []byte) *ir.Import {
	line := int(n.StartPosition().Row) + 1
	argNode := n.NamedChild(0)
	if vis := field(n, "visibility_modifier"); vis != nil {
		for _, c := range namedChildren(n) {
			if c != vis {
				argNode = c
				break
			}
		}
	}
	module := ""
	if argNode != nil {
		module = nodeText(argNode, src)
	}
	return &ir.Import{ImportKind: "use", Module: module, Symbols: []ir.ImportedSymbol{}, Line: &line}
}

func (e rustExtractor) convertStruct(n *tree_sitter.Node, src []byte) *ir.Class {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	class := &ir.Class{
		Name:       nodeText(nameNode, src),
		Visibility: rustVisibility(n, src),
		Modifiers:  []ir.Modifier{},
		Decorators: []string{"struct"},
		TypeParams: e.typeParams(field(n, "type_parameters"), src),
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
		nameNode := field(f, "name")
		typeNode := field(f, "type")
		ref := ir.NewTypeRef(nodeText(typeNode, src))
		fstart, _ := lineRange(f)
		class.Children = append(class.Children, &ir.Field{
			Name:       nodeText(nameNode, src),
			Visibility: rustVisibility(f, src),
			Modifiers:  []ir.Modifier{},
			FieldType:  &ref,
			Line:       fstart,
		})
	}
	return class
}

func (e rustExtractor) convertEnum(n *tree_sitter.Node, src []byte) *ir.Enum {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	en := &ir.Enum{Name: nodeText(nameNode, src), Visibility: rustVisibility(n, src), Children: []ir.Node{}, LineStart: start, LineEnd: end}
	body := field(n, "body")
	if body == nil {
		return en
	}
	for _, v := range namedChildren(body) {
		if v.Kind() != "enum_variant" {
			continue
		}
		nameNode := field(v, "name")
		vstart, _ := lineRange(v)
		en.Children = append(en.Children, &ir.Field{Name: nodeText(nameNode, src), Visibility: ir.Public, Modifiers: []ir.Modifier{}, Line: vstart})
	}
	return en
}

func (e rustExtractor) convertTrait(n *tree_sitter.Node, src []byte) *ir.Interface {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	iface := &ir.Interface{
		Name:       nodeText(nameNode, src),
		Visibility: rustVisibility(n, src),
		TypeParams: e.typeParams(field(n, "type_parameters"), src),
		Extends:    []ir.TypeRef{},
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	if bounds := field(n, "bounds"); bounds != nil {
		for _, t := range namedChildren(bounds) {
			iface.Extends = append(iface.Extends, ir.NewTypeRef(nodeText(t, src)))
		}
	}
	body := field(n, "body")
	if body == nil {
		return iface
	}
	for _, member := range namedChildren(body) {
		switch member.Kind() {
		case "function_item":
			iface.Children = append(iface.Children, e.convertFunction(member, src, true))
		case "function_signature_item":
			iface.Children = append(iface.Children, e.convertFunctionSignature(member, src))
		}
	}
	return iface
}

func (e rustExtractor) convertTypeAlias(n *tree_sitter.Node, src []byte) *ir.TypeAlias {
	nameNode := field(n, "name")
	start, _ := lineRange(n)
	ta := &ir.TypeAlias{
		Name:       nodeText(nameNode, src),
		Visibility: rustVisibility(n, src),
		TypeParams: e.typeParams(field(n, "type_parameters"), src),
		Line:       start,
	}
	if t := field(n, "type"); t != nil {
		ta.AliasType = ir.NewTypeRef(nodeText(t, src))
	} else {
		ta.AliasType = ir.NewTypeRef("")
	}
	return ta
}

func (e rustExtractor) convertFunction(n *tree_sitter.Node, src []byte, isMethod bool) *ir.Function {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	fn := &ir.Function{
		Name:       nodeText(nameNode, src),
		Visibility: rustVisibility(n, src),
		Modifiers:  []ir.Modifier{},
		Decorators: []string{},
		TypeParams: e.typeParams(field(n, "type_parameters"), src),
		Parameters: e.convertParams(field(n, "parameters"), src, isMethod),
		LineStart:  start,
		LineEnd:    end,
	}
	for _, c := range children(n) {
		if nodeText(c, src) == "async" {
			fn.Modifiers = append(fn.Modifiers, ir.ModAsync)
		}
		if c == nameNode {
			break
		}
	}
	if rt := field(n, "return_type"); rt != nil {
		ref := ir.NewTypeRef(nodeText(rt, src))
		fn.ReturnType = &ref
	}
	impl := nodeText(n, src)
	fn.Implementation = &impl
	return fn
}

func (e rustExtractor) convertFunctionSignature(n *tree_sitter.Node, src []byte) *ir.Function {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	fn := &ir.Function{
		Name:       nodeText(nameNode, src),
		Visibility: ir.Public,
		Modifiers:  []ir.Modifier{},
		Decorators: []string{},
		TypeParams: e.typeParams(field(n, "type_parameters"), src),
		Parameters: e.convertParams(field(n, "parameters"), src, true),
		LineStart:  start,
		LineEnd:    end,
	}
	if rt := field(n, "return_type"); rt != nil {
		ref := ir.NewTypeRef(nodeText(rt, src))
		fn.ReturnType = &ref
	}
	return fn
}

func (e rustExtractor) convertParams(params *tree_sitter.Node, src []byte, isMethod bool) []ir.Parameter {
	out := []ir.Parameter{}
	if params == nil {
		return out
	}
	for _, p := range namedChildren(params) {
		switch p.Kind() {
		case "self_parameter":
			// The receiver carries no IR counterpart; it is implied by
			// the function living inside the struct's children.
			continue
		case "parameter":
			nameNode := field(p, "pattern")
			typeNode := field(p, "type")
			out = append(out, ir.Parameter{Name: nodeText(nameNode, src), ParamType: ir.NewTypeRef(nodeText(typeNode, src)), Decorators: []string{}})
		case "variadic_parameter":
			out = append(out, ir.Parameter{Name: "...", ParamType: ir.NewTypeRef(""), IsVariadic: true, Decorators: []string{}})
		}
	}
	return out
}

func (e rustExtractor) typeParams(n *tree_sitter.Node, src []byte) []ir.TypeParam {
	out := []ir.TypeParam{}
	if n == nil {
		return out
	}
	for _, p := range namedChildren(n) {
		switch p.Kind() {
		case "type_identifier":
			out = append(out, ir.TypeParam{Name: nodeText(p, src), Constraints: []ir.TypeRef{}})
		case "constrained_type_parameter":
			tp := ir.TypeParam{Name: nodeText(field(p, "left"), src), Constraints: []ir.TypeRef{}}
			if b := field(p, "bounds"); b != nil {
				for _, t := range namedChildren(b) {
					tp.Constraints = append(tp.Constraints, ir.NewTypeRef(nodeText(t, src)))
				}
			}
			out = append(out, tp)
		}
	}
	return out
}

func (e rustExtractor) convertComment(n *tree_sitter.Node, src []byte) *ir.Comment {
	start, _ := lineRange(n)
	text := nodeText(n, src)
	format := ir.CommentPlain
	if strings.HasPrefix(text, "///") || strings.HasPrefix(text, "//!") {
		format = ir.CommentDoc
	}
	text = strings.TrimPrefix(text, "///")
	text = strings.TrimPrefix(text, "//!")
	text = strings.TrimPrefix(text, "//")
	return &ir.Comment{Text: strings.TrimSpace(text), Format: format, Line: start}
}
