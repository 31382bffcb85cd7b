// Package format implements five pure IR-to-string renderers: compact
// text, Markdown, JSON, JSON-Lines and XML. Every formatter is a pure
// function of a []*ir.File; none mutate the tree or touch the
// filesystem.
package format

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/distil/internal/ir"
)

// TextFormatter renders the ultra-compact plaintext format: minimal
// syntax overhead, one declaration per line, 4-space indentation per
// nesting level.
type TextFormatter struct{}

// NewTextFormatter builds a TextFormatter.
func NewTextFormatter() *TextFormatter { return &TextFormatter{} }

// FormatFile renders one file, delimited by <file path="...">/</file>
// lines so the Markdown formatter can reuse this body verbatim inside a
// fenced code block.
func (f *TextFormatter) FormatFile(file *ir.File) (string, error) {
	var out strings.Builder
	fmt.Fprintf(&out, "<file path=%q>\n", file.Path)
	for _, child := range file.Children {
		f.formatNode(&out, child, 0)
	}
	out.WriteString("</file>\n")
	return out.String(), nil
}

// FormatFiles renders every file, each separated by a blank line.
func (f *TextFormatter) FormatFiles(files []*ir.File) (string, error) {
	var out strings.Builder
	for _, file := range files {
		body, err := f.FormatFile(file)
		if err != nil {
			return "", err
		}
		out.WriteString(body)
		out.WriteByte('\n')
	}
	return out.String(), nil
}

func (f *TextFormatter) formatNode(out *strings.Builder, n ir.Node, indent int) {
	switch v := n.(type) {
	case *ir.Import:
		f.formatImport(out, v, indent)
	case *ir.Class:
		f.formatClass(out, v, indent)
	case *ir.Interface:
		f.formatInterface(out, v, indent)
	case *ir.Struct:
		f.formatStruct(out, v, indent)
	case *ir.Enum:
		f.formatEnum(out, v, indent)
	case *ir.TypeAlias:
		f.formatTypeAlias(out, v, indent)
	case *ir.Function:
		f.formatFunction(out, v, indent)
	case *ir.Field:
		f.formatField(out, v, indent)
	case *ir.Comment:
		f.formatComment(out, v, indent)
	case *ir.Package:
		f.formatPackage(out, v, indent)
	case *ir.RawContent:
		fmt.Fprintf(out, "%s\n", v.Content)
	case *ir.File, *ir.Directory:
		// handled by the caller, never nested
	}
}

func (f *TextFormatter) formatImport(out *strings.Builder, imp *ir.Import, indent int) {
	ind := indentStr(indent)
	if imp.ImportKind == "from" {
		fmt.Fprintf(out, "%sfrom %s import %s\n", ind, imp.Module, joinSymbols(imp.Symbols))
		return
	}
	if len(imp.Symbols) == 0 {
		fmt.Fprintf(out, "%simport %s\n", ind, imp.Module)
		return
	}
	fmt.Fprintf(out, "%simport %s (%s)\n", ind, imp.Module, joinSymbols(imp.Symbols))
}

func joinSymbols(symbols []ir.ImportedSymbol) string {
	parts := make([]string, len(symbols))
	for i, s := range symbols {
		if s.Alias != nil {
			parts[i] = fmt.Sprintf("%s as %s", s.Name, *s.Alias)
		} else {
			parts[i] = s.Name
		}
	}
	return strings.Join(parts, ", ")
}

func (f *TextFormatter) formatClass(out *strings.Builder, class *ir.Class, indent int) {
	ind := indentStr(indent)
	for _, d := range class.Decorators {
		fmt.Fprintf(out, "%s@%s\n", ind, d)
	}
	fmt.Fprintf(out, "%s%sclass %s", ind, visibilitySymbol(class.Visibility), class.Name)
	if len(class.TypeParams) > 0 {
		fmt.Fprintf(out, "<%s>", formatTypeParams(class.TypeParams))
	}
	inheritance := make([]string, 0, len(class.Extends)+len(class.Implements))
	for _, t := range class.Extends {
		inheritance = append(inheritance, formatTypeRef(t))
	}
	for _, t := range class.Implements {
		inheritance = append(inheritance, formatTypeRef(t))
	}
	if len(inheritance) > 0 {
		fmt.Fprintf(out, "(%s)", strings.Join(inheritance, ", "))
	}
	out.WriteString(":\n")
	for _, c := range class.Children {
		f.formatNode(out, c, indent+1)
	}
}

func (f *TextFormatter) formatInterface(out *strings.Builder, iface *ir.Interface, indent int) {
	ind := indentStr(indent)
	fmt.Fprintf(out, "%s%sinterface %s", ind, visibilitySymbol(iface.Visibility), iface.Name)
	if len(iface.TypeParams) > 0 {
		fmt.Fprintf(out, "<%s>", formatTypeParams(iface.TypeParams))
	}
	if len(iface.Extends) > 0 {
		parts := make([]string, len(iface.Extends))
		for i, t := range iface.Extends {
			parts[i] = formatTypeRef(t)
		}
		fmt.Fprintf(out, "(%s)", strings.Join(parts, ", "))
	}
	out.WriteString(":\n")
	for _, c := range iface.Children {
		f.formatNode(out, c, indent+1)
	}
}

func (f *TextFormatter) formatStruct(out *strings.Builder, s *ir.Struct, indent int) {
	ind := indentStr(indent)
	fmt.Fprintf(out, "%s%sstruct %s", ind, visibilitySymbol(s.Visibility), s.Name)
	if len(s.TypeParams) > 0 {
		fmt.Fprintf(out, "<%s>", formatTypeParams(s.TypeParams))
	}
	out.WriteString(":\n")
	for _, c := range s.Children {
		f.formatNode(out, c, indent+1)
	}
}

func (f *TextFormatter) formatEnum(out *strings.Builder, e *ir.Enum, indent int) {
	ind := indentStr(indent)
	fmt.Fprintf(out, "%s%senum %s", ind, visibilitySymbol(e.Visibility), e.Name)
	if e.EnumType != nil {
		fmt.Fprintf(out, ": %s", formatTypeRef(*e.EnumType))
	}
	out.WriteString(":\n")
	for _, c := range e.Children {
		f.formatNode(out, c, indent+1)
	}
}

func (f *TextFormatter) formatTypeAlias(out *strings.Builder, a *ir.TypeAlias, indent int) {
	ind := indentStr(indent)
	fmt.Fprintf(out, "%s%stype %s", ind, visibilitySymbol(a.Visibility), a.Name)
	if len(a.TypeParams) > 0 {
		fmt.Fprintf(out, "<%s>", formatTypeParams(a.TypeParams))
	}
	fmt.Fprintf(out, " = %s\n", formatTypeRef(a.AliasType))
}

func (f *TextFormatter) formatFunction(out *strings.Builder, fn *ir.Function, indent int) {
	ind := indentStr(indent)
	for _, d := range fn.Decorators {
		fmt.Fprintf(out, "%s@%s\n", ind, d)
	}
	modifiers := formatModifierPrefix(fn.Modifiers)
	fmt.Fprintf(out, "%s%s%sdef %s", ind, visibilitySymbol(fn.Visibility), modifiers, fn.Name)
	if len(fn.TypeParams) > 0 {
		fmt.Fprintf(out, "<%s>", formatTypeParams(fn.TypeParams))
	}
	params := make([]string, len(fn.Parameters))
	for i, p := range fn.Parameters {
		params[i] = formatParameter(p)
	}
	fmt.Fprintf(out, "(%s)", strings.Join(params, ", "))
	if fn.ReturnType != nil {
		fmt.Fprintf(out, " -> %s", formatTypeRef(*fn.ReturnType))
	}
	if fn.Implementation != nil {
		out.WriteString(":\n")
		for _, line := range strings.Split(*fn.Implementation, "\n") {
			fmt.Fprintf(out, "%s    %s\n", ind, line)
		}
		return
	}
	out.WriteByte('\n')
}

func (f *TextFormatter) formatField(out *strings.Builder, field *ir.Field, indent int) {
	ind := indentStr(indent)
	modifiers := formatModifierPrefix(field.Modifiers)
	fmt.Fprintf(out, "%s%s%s%s", ind, visibilitySymbol(field.Visibility), modifiers, field.Name)
	if field.FieldType != nil {
		fmt.Fprintf(out, ": %s", formatTypeRef(*field.FieldType))
	}
	if field.DefaultValue != nil {
		fmt.Fprintf(out, " = %s", *field.DefaultValue)
	}
	out.WriteByte('\n')
}

func (f *TextFormatter) formatComment(out *strings.Builder, c *ir.Comment, indent int) {
	ind := indentStr(indent)
	for _, line := range strings.Split(c.Text, "\n") {
		fmt.Fprintf(out, "%s# %s\n", ind, line)
	}
}

func (f *TextFormatter) formatPackage(out *strings.Builder, p *ir.Package, indent int) {
	ind := indentStr(indent)
	fmt.Fprintf(out, "%spackage %s\n", ind, p.Name)
	for _, c := range p.Children {
		f.formatNode(out, c, indent)
	}
}

func formatModifierPrefix(mods []ir.Modifier) string {
	if len(mods) == 0 {
		return ""
	}
	parts := make([]string, len(mods))
	for i, m := range mods {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ") + " "
}

func formatTypeRef(t ir.TypeRef) string {
	var result strings.Builder
	result.WriteString(t.Name)
	if len(t.TypeArgs) > 0 {
		args := make([]string, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = formatTypeRef(a)
		}
		fmt.Fprintf(&result, "<%s>", strings.Join(args, ", "))
	}
	if t.IsArray {
		result.WriteString("[]")
	}
	if t.IsNullable {
		result.WriteString("?")
	}
	return result.String()
}

func formatTypeParams(params []ir.TypeParam) string {
	parts := make([]string, len(params))
	for i, tp := range params {
		s := tp.Name
		if len(tp.Constraints) > 0 {
			constraints := make([]string, len(tp.Constraints))
			for j, c := range tp.Constraints {
				constraints[j] = formatTypeRef(c)
			}
			s += ": " + strings.Join(constraints, " + ")
		}
		parts[i] = s
	}
	return strings.Join(parts, ", ")
}

func formatParameter(p ir.Parameter) string {
	result := p.Name + ": " + formatTypeRef(p.ParamType)
	if p.DefaultValue != nil {
		result += " = " + *p.DefaultValue
	}
	if p.IsOptional {
		result += "?"
	}
	if p.IsVariadic {
		result = "..." + result
	}
	return result
}

func visibilitySymbol(v ir.Visibility) string {
	switch v {
	case ir.Public:
		return ""
	case ir.Private:
		return "-"
	case ir.Protected:
		return "*"
	case ir.Internal:
		return "~"
	default:
		return ""
	}
}

func indentStr(level int) string {
	return strings.Repeat("    ", level)
}
