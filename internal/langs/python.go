package langs

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

type pythonExtractor struct{}

// NewPythonExtractor builds the Python extractor.
func NewPythonExtractor() Extractor { return &pythonExtractor{} }

func (pythonExtractor) LanguageTag() string   { return "python" }
func (pythonExtractor) Extensions() []string  { return []string{".py", ".pyi"} }
func (e pythonExtractor) CanProcess(path string) bool {
	return DefaultCanProcess(path, e.Extensions(), nil)
}

// pythonVisibility implements the dunder/leading-underscore convention:
// names wrapped in double underscores on both ends are Public (dunders
// like __init__), a double-underscore prefix with no matching suffix is
// Private (name-mangled attributes), a single leading underscore is
// Protected, anything else is Public.
func pythonVisibility(name string) ir.Visibility {
	switch {
	case strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") && len(name) > 4:
		return ir.Public
	case strings.HasPrefix(name, "__"):
		return ir.Private
	case strings.HasPrefix(name, "_"):
		return ir.Protected
	default:
		return ir.Public
	}
}

func (e pythonExtractor) Process(source, path string, opts options.ProcessOptions) (*ir.File, error) {
	src := []byte(source)
	tree, err := parseTree(e.LanguageTag(), loadPython, src)
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

// convertTopLevel dispatches one module-level statement, unwrapping
// decorated_definition so decorators attach to the inner class/function.
func (e pythonExtractor) convertTopLevel(n *tree_sitter.Node, src []byte) []ir.Node {
	switch n.Kind() {
	case "decorated_definition":
		decorators := e.collectDecorators(n, src)
		def := field(n, "definition")
		if def == nil {
			return nil
		}
		nodes := e.convertTopLevel(def, src)
		for _, node := range nodes {
			switch v := node.(type) {
			case *ir.Class:
				v.Decorators = decorators
			case *ir.Function:
				v.Decorators = decorators
			}
		}
		return nodes
	case "class_definition":
		return []ir.Node{e.convertClass(n, src)}
	case "function_definition":
		return []ir.Node{e.convertFunction(n, src, false)}
	case "import_statement":
		return []ir.Node{e.convertImport(n, src)}
	case "import_from_statement":
		return []ir.Node{e.convertFromImport(n, src)}
	case "comment":
		return []ir.Node{e.convertComment(n, src)}
	case "expression_statement":
		return nil
	default:
		return nil
	}
}

func (e pythonExtractor) collectDecorators(n *tree_sitter.Node, src []byte) []string {
	var out []string
	for _, c := range children(n) {
		if c.Kind() == "decorator" {
			text := strings.TrimPrefix(strings.TrimSpace(nodeText(c, src)), "@")
			out = append(out, strings.TrimSpace(text))
		}
	}
	return out
}

func (e pythonExtractor) convertClass(n *tree_sitter.Node, src []byte) *ir.Class {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	class := &ir.Class{
		Name:       nodeText(nameNode, src),
		Visibility: pythonVisibility(nodeText(nameNode, src)),
		Modifiers:  []ir.Modifier{},
		Decorators: []string{},
		TypeParams: []ir.TypeParam{},
		Extends:    []ir.TypeRef{},
		Implements: []ir.TypeRef{},
		Children:   []ir.Node{},
		LineStart:  start,
		LineEnd:    end,
	}
	if bases := field(n, "superclasses"); bases != nil {
		for _, arg := range namedChildren(bases) {
			if arg.Kind() == "keyword_argument" {
				continue
			}
			class.Extends = append(class.Extends, ir.NewTypeRef(nodeText(arg, src)))
		}
	}

	body := field(n, "body")
	if body == nil {
		return class
	}
	for _, stmt := range namedChildren(body) {
		switch stmt.Kind() {
		case "function_definition":
			class.Children = append(class.Children, e.convertFunction(stmt, src, true))
		case "decorated_definition":
			decorators := e.collectDecorators(stmt, src)
			def := field(stmt, "definition")
			if def != nil && def.Kind() == "function_definition" {
				fn := e.convertFunction(def, src, true)
				fn.Decorators = decorators
				class.Children = append(class.Children, fn)
			} else if def != nil && def.Kind() == "class_definition" {
				inner := e.convertClass(def, src)
				inner.Decorators = decorators
				class.Children = append(class.Children, inner)
			}
		case "class_definition":
			class.Children = append(class.Children, e.convertClass(stmt, src))
		case "comment":
			class.Children = append(class.Children, e.convertComment(stmt, src))
		case "expression_statement":
			if s := stmt.NamedChild(0); s != nil && s.Kind() == "string" {
				// A bare string expression as the first class-body
				// statement is the class docstring.
				continue
			}
		}
	}

	// self.<name> = ... assignments at the top level of __init__ (and any
	// other method) become Fields, matched by a second, shallow pass over
	// each method body so assignment order across methods is preserved.
	for _, stmt := range namedChildren(body) {
		target := stmt
		if target.Kind() == "decorated_definition" {
			if d := field(target, "definition"); d != nil {
				target = d
			}
		}
		if target.Kind() != "function_definition" {
			continue
		}
		fnBody := field(target, "body")
		if fnBody == nil {
			continue
		}
		for _, fs := range namedChildren(fnBody) {
			if fs.Kind() != "expression_statement" {
				continue
			}
			assign := fs.NamedChild(0)
			if assign == nil || assign.Kind() != "assignment" {
				continue
			}
			left := field(assign, "left")
			if left == nil || left.Kind() != "attribute" {
				continue
			}
			obj := field(left, "object")
			attr := field(left, "attribute")
			if obj == nil || attr == nil || nodeText(obj, src) != "self" {
				continue
			}
			attrName := nodeText(attr, src)
			fstart, _ := lineRange(fs)
			class.Children = append(class.Children, &ir.Field{
				Name:       attrName,
				Visibility: pythonVisibility(attrName),
				Modifiers:  []ir.Modifier{},
				Line:       fstart,
			})
		}
	}

	return class
}

func (e pythonExtractor) convertFunction(n *tree_sitter.Node, src []byte, isMethod bool) *ir.Function {
	nameNode := field(n, "name")
	start, end := lineRange(n)
	name := nodeText(nameNode, src)

	fn := &ir.Function{
		Name:       name,
		Visibility: pythonVisibility(name),
		Modifiers:  []ir.Modifier{},
		Decorators: []string{},
		TypeParams: []ir.TypeParam{},
		Parameters: []ir.Parameter{},
		LineStart:  start,
		LineEnd:    end,
	}

	if first := n.Child(0); first != nil && nodeText(first, src) == "async" {
		fn.Modifiers = append(fn.Modifiers, ir.ModAsync)
	}

	if params := field(n, "parameters"); params != nil {
		for _, p := range namedChildren(params) {
			fn.Parameters = append(fn.Parameters, e.convertParameter(p, src))
		}
	}
	if isMethod {
		// self/cls is the implicit receiver; drop it from the IR
		// parameter list like every other language drops its receiver.
		if len(fn.Parameters) > 0 {
			first := fn.Parameters[0].Name
			if first == "self" || first == "cls" {
				fn.Parameters = fn.Parameters[1:]
			}
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

func (e pythonExtractor) convertParameter(n *tree_sitter.Node, src []byte) ir.Parameter {
	p := ir.Parameter{Decorators: []string{}}
	switch n.Kind() {
	case "identifier":
		p.Name = nodeText(n, src)
		p.ParamType = ir.NewTypeRef("")
	case "typed_parameter":
		if id := n.NamedChild(0); id != nil {
			p.Name = nodeText(id, src)
		}
		if t := field(n, "type"); t != nil {
			p.ParamType = ir.NewTypeRef(nodeText(t, src))
		} else {
			p.ParamType = ir.NewTypeRef("")
		}
	case "default_parameter", "typed_default_parameter":
		if left := field(n, "name"); left != nil {
			p.Name = nodeText(left, src)
		}
		if t := field(n, "type"); t != nil {
			p.ParamType = ir.NewTypeRef(nodeText(t, src))
		} else {
			p.ParamType = ir.NewTypeRef("")
		}
		if v := field(n, "value"); v != nil {
			s := nodeText(v, src)
			p.DefaultValue = &s
		}
		p.IsOptional = true
	case "list_splat_pattern":
		p.IsVariadic = true
		if id := n.NamedChild(0); id != nil {
			p.Name = "*" + nodeText(id, src)
		}
		p.ParamType = ir.NewTypeRef("")
	case "dictionary_splat_pattern":
		p.IsVariadic = true
		if id := n.NamedChild(0); id != nil {
			p.Name = "**" + nodeText(id, src)
		}
		p.ParamType = ir.NewTypeRef("")
	default:
		p.Name = nodeText(n, src)
		p.ParamType = ir.NewTypeRef("")
	}
	return p
}

func (e pythonExtractor) convertImport(n *tree_sitter.Node, src []byte) *ir.Import {
	line := n.StartPosition().Row + 1
	l := int(line)
	imp := &ir.Import{ImportKind: "import", Symbols: []ir.ImportedSymbol{}, Line: &l}
	for _, c := range namedChildren(n) {
		switch c.Kind() {
		case "dotted_name":
			imp.Module = nodeText(c, src)
		case "aliased_import":
			name := field(c, "name")
			alias := field(c, "alias")
			imp.Module = nodeText(name, src)
			a := nodeText(alias, src)
			imp.Symbols = append(imp.Symbols, ir.ImportedSymbol{Name: imp.Module, Alias: &a})
		}
	}
	return imp
}

func (e pythonExtractor) convertFromImport(n *tree_sitter.Node, src []byte) *ir.Import {
	line := n.StartPosition().Row + 1
	l := int(line)
	imp := &ir.Import{ImportKind: "from", Symbols: []ir.ImportedSymbol{}, Line: &l}
	moduleSeen := false
	for _, c := range namedChildren(n) {
		switch c.Kind() {
		case "dotted_name", "relative_import":
			if !moduleSeen {
				imp.Module = nodeText(c, src)
				moduleSeen = true
			} else {
				imp.Symbols = append(imp.Symbols, ir.ImportedSymbol{Name: nodeText(c, src)})
			}
		case "aliased_import":
			name := field(c, "name")
			alias := field(c, "alias")
			a := nodeText(alias, src)
			imp.Symbols = append(imp.Symbols, ir.ImportedSymbol{Name: nodeText(name, src), Alias: &a})
		case "wildcard_import":
			imp.Symbols = append(imp.Symbols, ir.ImportedSymbol{Name: "*"})
		}
	}
	return imp
}

func (e pythonExtractor) convertComment(n *tree_sitter.Node, src []byte) *ir.Comment {
	start, _ := lineRange(n)
	text := strings.TrimPrefix(nodeText(n, src), "#")
	return &ir.Comment{Text: strings.TrimSpace(text), Format: ir.CommentPlain, Line: start}
}
