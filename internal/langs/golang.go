package langs

import (
	"strings"
	"unicode"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

type goExtractor struct{}

// NewGoExtractor builds the Go extractor.
func NewGoExtractor() Extractor { return &goExtractor{} }

func (goExtractor) LanguageTag() string  { return "go" }
func (goExtractor) Extensions() []string { return []string{".go"} }
func (e goExtractor) CanProcess(path string) bool {
	return DefaultCanProcess(path, e.Extensions(), nil)
}

// goVisibility implements Go's exported-identifier rule: an uppercase
// first letter is Public, everything else is package-scoped, modeled as
// Internal since Go has no protected/private distinction.
func goVisibility(name string) ir.Visibility {
	for _, r := range name {
		if unicode.IsUpper(r) {
			return ir.Public
		}
		break
	}
	return ir.Internal
}

func (e goExtractor) Process(source, path string, opts options.ProcessOptions) (*ir.File, error) {
	src := []byte(source)
	tree, err := parseTree(e.LanguageTag(), loadGo, src)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()

	file := &ir.File{Path: path, Children: []ir.Node{}}
	for _, child := range namedChildren(root) {
		switch child.Kind() {
		case "package_clause":
			// Go's package clause carries no structural children worth
			// nesting the file under; the name is cosmetic here.
		case "import_declaration":
			file.Children = append(file.Children, e.convertImports(child, src)...)
		case "function_declaration":
			file.Children = append(file.Children, e.convertFunction(child, src))
		case "method_declaration":
			file.Children = append(file.Children, e.convertMethod(child, src))
		case "type_declaration":
			file.Children = append(file.Children, e.convertTypeDecl(child, src)...)
		case "comment":
			file.Children = append(file.Children, e.convertComment(child, src))
		}
	}
	return file, nil
}

func (e goExtractor) convertImports(n *tree_sitter.Node, src []byte) []ir.Node {
	line := int(n.StartPosition().Row) + 1
	var specs []*tree_sitter.Node
	if spec := field(n, "import_spec_list"); spec != nil {
		specs = namedChildren(spec)
	} else if spec := field(n, "import_spec"); spec != nil {
		specs = []*tree_sitter.Node{spec}
	} else {
		for _, c := range namedChildren(n) {
			if c.Kind() == "import_spec" {
				specs = append(specs, c)
			}
		}
	}

	var out []ir.Node
	for _, spec := range specs {
		path := field(spec, "path")
		if path == nil {
			continue
		}
		module := trimQuotes(nodeText(path, src))
		l := line
		imp := &ir.Import{ImportKind: "import", Module: module, Symbols: []ir.ImportedSymbol{}, Line: &l}
		if nameNode := field(spec, "name"); nameNode != nil {
			alias := nodeText(nameNode, src)
			imp.Symbols = append(imp.Symbols, ir.ImportedSymbol{Name: module, Alias: &alias})
		}
		out = append(out, imp)
	}
	return out
}

func (e goExtractor) convertTypeDecl(n *tree_sitter.Node, src []byte) []ir.Node {
	var out []ir.Node
	for _, spec := range namedChildren(n) {
		if spec.Kind() != "type_spec" && spec.Kind() != "type_alias" {
			continue
		}
		nameNode := field(spec, "name")
		name := nodeText(nameNode, src)
		typeNode := field(spec, "type")
		if typeNode == nil {
			continue
		}
		start, end := lineRange(spec)

		var typeParams []ir.TypeParam
		if tp := field(spec, "type_parameters"); tp != nil {
			for _, p := range namedChildren(tp) {
				typeParams = append(typeParams, ir.TypeParam{Name: nodeText(field(p, "name"), src), Constraints: []ir.TypeRef{}})
			}
		}
		if typeParams == nil {
			typeParams = []ir.TypeParam{}
		}

		switch typeNode.Kind() {
		case "struct_type":
			class := &ir.Class{
				Name:       name,
				Visibility: goVisibility(name),
				Modifiers:  []ir.Modifier{},
				Decorators: []string{"struct"},
				TypeParams: typeParams,
				Extends:    []ir.TypeRef{},
				Implements: []ir.TypeRef{},
				Children:   e.convertStructFields(typeNode, src),
				LineStart:  start,
				LineEnd:    end,
			}
			out = append(out, class)
		case "interface_type":
			iface := &ir.Interface{
				Name:       name,
				Visibility: goVisibility(name),
				TypeParams: typeParams,
				Extends:    []ir.TypeRef{},
				Children:   e.convertInterfaceMembers(typeNode, src),
				LineStart:  start,
				LineEnd:    end,
			}
			out = append(out, iface)
		default:
			alias := &ir.TypeAlias{
				Name:       name,
				Visibility: goVisibility(name),
				TypeParams: typeParams,
				AliasType:  ir.NewTypeRef(nodeText(typeNode, src)),
				Line:       start,
			}
			out = append(out, alias)
		}
	}
	return out
}

func (e goExtractor) convertStructFields(n *tree_sitter.Node, src []byte) []ir.Node {
	out := []ir.Node{}
	fieldList := n
	if fl := field(n, "body"); fl != nil {
		fieldList = fl
	}
	for _, decl := range namedChildren(fieldList) {
		switch decl.Kind() {
		case "field_declaration":
			typeNode := field(decl, "type")
			ft := ir.NewTypeRef(nodeText(typeNode, src))
			start, _ := lineRange(decl)
			var names []*tree_sitter.Node
			for _, c := range namedChildren(decl) {
				if c.Kind() == "field_identifier" {
					names = append(names, c)
				}
			}
			if len(names) == 0 {
				// Embedded field: the type name doubles as the field name.
				embeddedName := nodeText(typeNode, src)
				out = append(out, &ir.Field{
					Name:       embeddedName,
					Visibility: goVisibility(embeddedName),
					Modifiers:  []ir.Modifier{},
					FieldType:  &ft,
					Line:       start,
				})
				continue
			}
			for _, nameNode := range names {
				name := nodeText(nameNode, src)
				out = append(out, &ir.Field{
					Name:       name,
					Visibility: goVisibility(name),
					Modifiers:  []ir.Modifier{},
					FieldType:  &ft,
					Line:       start,
				})
			}
		case "comment":
			out = append(out, e.convertComment(decl, src))
		}
	}
	return out
}

func (e goExtractor) convertInterfaceMembers(n *tree_sitter.Node, src []byte) []ir.Node {
	out := []ir.Node{}
	for _, m := range namedChildren(n) {
		switch m.Kind() {
		case "method_elem":
			nameNode := field(m, "name")
			name := nodeText(nameNode, src)
			start, end := lineRange(m)
			fn := &ir.Function{
				Name:       name,
				Visibility: goVisibility(name),
				Modifiers:  []ir.Modifier{},
				Decorators: []string{},
				TypeParams: []ir.TypeParam{},
				Parameters: e.convertParams(field(m, "parameters"), src),
				ReturnType: e.convertResult(field(m, "result"), src),
				LineStart:  start,
				LineEnd:    end,
			}
			out = append(out, fn)
		case "comment":
			out = append(out, e.convertComment(m, src))
		}
	}
	return out
}

func (e goExtractor) convertFunction(n *tree_sitter.Node, src []byte) *ir.Function {
	nameNode := field(n, "name")
	name := nodeText(nameNode, src)
	start, end := lineRange(n)

	impl := nodeText(n, src)
	fn := &ir.Function{
		Name:           name,
		Visibility:     goVisibility(name),
		Modifiers:      []ir.Modifier{},
		Decorators:     []string{},
		TypeParams:     []ir.TypeParam{},
		Parameters:     e.convertParams(field(n, "parameters"), src),
		ReturnType:     e.convertResult(field(n, "result"), src),
		Implementation: &impl,
		LineStart:      start,
		LineEnd:        end,
	}
	return fn
}

// convertMethod flattens a Go method to a file-level Function: the
// receiver carries no counterpart in the IR's container model, so it is
// dropped and the method is marked Static to distinguish it from a free
// function at the same scope.
func (e goExtractor) convertMethod(n *tree_sitter.Node, src []byte) *ir.Function {
	fn := e.convertFunction(n, src)
	fn.Modifiers = append(fn.Modifiers, ir.ModStatic)
	return fn
}

func (e goExtractor) convertParams(params *tree_sitter.Node, src []byte) []ir.Parameter {
	out := []ir.Parameter{}
	if params == nil {
		return out
	}
	for _, p := range namedChildren(params) {
		if p.Kind() != "parameter_declaration" && p.Kind() != "variadic_parameter_declaration" {
			continue
		}
		typeNode := field(p, "type")
		typeText := nodeText(typeNode, src)
		variadic := p.Kind() == "variadic_parameter_declaration" || strings.HasPrefix(typeText, "...")
		typeText = strings.TrimPrefix(typeText, "...")

		var names []*tree_sitter.Node
		for _, c := range namedChildren(p) {
			if c.Kind() == "identifier" {
				names = append(names, c)
			}
		}
		if len(names) == 0 {
			out = append(out, ir.Parameter{
				Name:       "",
				ParamType:  ir.NewTypeRef(typeText),
				IsVariadic: variadic,
				Decorators: []string{},
			})
			continue
		}
		for _, nameNode := range names {
			out = append(out, ir.Parameter{
				Name:       nodeText(nameNode, src),
				ParamType:  ir.NewTypeRef(typeText),
				IsVariadic: variadic,
				Decorators: []string{},
			})
		}
	}
	return out
}

func (e goExtractor) convertResult(result *tree_sitter.Node, src []byte) *ir.TypeRef {
	if result == nil {
		return nil
	}
	if result.Kind() == "parameter_list" {
		text := nodeText(result, src)
		ref := ir.NewTypeRef(strings.Trim(text, "()"))
		return &ref
	}
	ref := ir.NewTypeRef(nodeText(result, src))
	return &ref
}

func (e goExtractor) convertComment(n *tree_sitter.Node, src []byte) *ir.Comment {
	start, _ := lineRange(n)
	text := strings.TrimPrefix(nodeText(n, src), "//")
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	return &ir.Comment{Text: strings.TrimSpace(text), Format: ir.CommentPlain, Line: start}
}
