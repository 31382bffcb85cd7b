package format

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/distil/internal/ir"
)

// XMLFormatter renders a structured XML document, 2-space indented,
// eliding children-carrying containers to self-closing tags when they
// carry no type params, extends/implements, enum type or children.
type XMLFormatter struct{}

// NewXMLFormatter builds an XMLFormatter.
func NewXMLFormatter() *XMLFormatter { return &XMLFormatter{} }

// FormatFile renders one file as a standalone XML document.
func (f *XMLFormatter) FormatFile(file *ir.File) (string, error) {
	var out strings.Builder
	out.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	f.formatFileElement(&out, file, 0)
	return out.String(), nil
}

// FormatFiles renders every file wrapped in a <files> root element.
func (f *XMLFormatter) FormatFiles(files []*ir.File) (string, error) {
	var out strings.Builder
	out.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	out.WriteString("<files>\n")
	for _, file := range files {
		f.formatFileElement(&out, file, 1)
	}
	out.WriteString("</files>\n")
	return out.String(), nil
}

func (f *XMLFormatter) formatFileElement(out *strings.Builder, file *ir.File, indent int) {
	ind := xmlIndent(indent)
	fmt.Fprintf(out, "%s<file path=%q>\n", ind, escapeXML(file.Path))
	for _, child := range file.Children {
		f.formatNode(out, child, indent+1)
	}
	fmt.Fprintf(out, "%s</file>\n", ind)
}

func (f *XMLFormatter) formatNode(out *strings.Builder, n ir.Node, indent int) {
	switch v := n.(type) {
	case *ir.File:
		f.formatFileElement(out, v, indent)
	case *ir.Directory:
		f.formatDirectory(out, v, indent)
	case *ir.Package:
		f.formatPackage(out, v, indent)
	case *ir.Import:
		f.formatImport(out, v, indent)
	case *ir.Class:
		f.formatContainer(out, "class", v.Name, v.Visibility, v.LineStart, v.LineEnd, v.Modifiers, v.Decorators, v.TypeParams, v.Extends, v.Implements, v.Children, nil, indent)
	case *ir.Interface:
		f.formatContainer(out, "interface", v.Name, v.Visibility, v.LineStart, v.LineEnd, nil, nil, v.TypeParams, v.Extends, nil, v.Children, nil, indent)
	case *ir.Struct:
		f.formatContainer(out, "struct", v.Name, v.Visibility, v.LineStart, v.LineEnd, nil, nil, v.TypeParams, nil, nil, v.Children, nil, indent)
	case *ir.Enum:
		f.formatContainer(out, "enum", v.Name, v.Visibility, v.LineStart, v.LineEnd, nil, nil, nil, nil, nil, v.Children, v.EnumType, indent)
	case *ir.TypeAlias:
		f.formatTypeAlias(out, v, indent)
	case *ir.Function:
		f.formatFunction(out, v, indent)
	case *ir.Field:
		f.formatField(out, v, indent)
	case *ir.Comment:
		f.formatComment(out, v, indent)
	case *ir.RawContent:
		f.formatRawContent(out, v, indent)
	}
}

func (f *XMLFormatter) formatDirectory(out *strings.Builder, dir *ir.Directory, indent int) {
	ind := xmlIndent(indent)
	fmt.Fprintf(out, "%s<directory path=%q>\n", ind, escapeXML(dir.Path))
	for _, child := range dir.Children {
		f.formatNode(out, child, indent+1)
	}
	fmt.Fprintf(out, "%s</directory>\n", ind)
}

func (f *XMLFormatter) formatPackage(out *strings.Builder, pkg *ir.Package, indent int) {
	ind := xmlIndent(indent)
	fmt.Fprintf(out, "%s<package name=%q>\n", ind, escapeXML(pkg.Name))
	for _, child := range pkg.Children {
		f.formatNode(out, child, indent+1)
	}
	fmt.Fprintf(out, "%s</package>\n", ind)
}

func (f *XMLFormatter) formatImport(out *strings.Builder, imp *ir.Import, indent int) {
	ind := xmlIndent(indent)
	fmt.Fprintf(out, "%s<import type=%q module=%q", ind, imp.ImportKind, escapeXML(imp.Module))
	if imp.Line != nil {
		fmt.Fprintf(out, " line=\"%d\"", *imp.Line)
	}
	if len(imp.Symbols) == 0 {
		out.WriteString(" />\n")
		return
	}
	out.WriteString(">\n")
	symbolInd := xmlIndent(indent + 1)
	for _, s := range imp.Symbols {
		fmt.Fprintf(out, "%s<symbol name=%q", symbolInd, escapeXML(s.Name))
		if s.Alias != nil {
			fmt.Fprintf(out, " alias=%q", escapeXML(*s.Alias))
		}
		out.WriteString(" />\n")
	}
	fmt.Fprintf(out, "%s</import>\n", ind)
}

// formatContainer renders class/interface/struct/enum uniformly, eliding
// to a self-closing tag when there is nothing to nest.
func (f *XMLFormatter) formatContainer(
	out *strings.Builder,
	tag, name string,
	visibility ir.Visibility,
	lineStart, lineEnd int,
	modifiers []ir.Modifier,
	decorators []string,
	typeParams []ir.TypeParam,
	extends, implements []ir.TypeRef,
	children []ir.Node,
	enumType *ir.TypeRef,
	indent int,
) {
	ind := xmlIndent(indent)
	for _, d := range decorators {
		fmt.Fprintf(out, "%s<decorator value=%q />\n", ind, escapeXML(d))
	}

	fmt.Fprintf(out, "%s<%s name=%q visibility=%q line-start=\"%d\" line-end=\"%d\"",
		ind, tag, escapeXML(name), visibilityStr(visibility), lineStart, lineEnd)
	if len(modifiers) > 0 {
		fmt.Fprintf(out, " modifiers=%q", escapeXML(modifiersToString(modifiers)))
	}

	if len(typeParams) == 0 && len(extends) == 0 && len(implements) == 0 && len(children) == 0 && enumType == nil {
		out.WriteString(" />\n")
		return
	}
	out.WriteString(">\n")

	if len(typeParams) > 0 {
		tpInd := xmlIndent(indent + 1)
		fmt.Fprintf(out, "%s<type-params>\n", tpInd)
		for _, p := range typeParams {
			f.formatTypeParam(out, p, indent+2)
		}
		fmt.Fprintf(out, "%s</type-params>\n", tpInd)
	}
	if enumType != nil {
		typeInd := xmlIndent(indent + 1)
		fmt.Fprintf(out, "%s<type>\n", typeInd)
		f.formatTypeRef(out, *enumType, indent+2)
		fmt.Fprintf(out, "%s</type>\n", typeInd)
	}
	if len(extends) > 0 {
		extInd := xmlIndent(indent + 1)
		fmt.Fprintf(out, "%s<extends>\n", extInd)
		for _, t := range extends {
			f.formatTypeRef(out, t, indent+2)
		}
		fmt.Fprintf(out, "%s</extends>\n", extInd)
	}
	if len(implements) > 0 {
		implInd := xmlIndent(indent + 1)
		fmt.Fprintf(out, "%s<implements>\n", implInd)
		for _, t := range implements {
			f.formatTypeRef(out, t, indent+2)
		}
		fmt.Fprintf(out, "%s</implements>\n", implInd)
	}
	for _, c := range children {
		f.formatNode(out, c, indent+1)
	}
	fmt.Fprintf(out, "%s</%s>\n", ind, tag)
}

func (f *XMLFormatter) formatTypeAlias(out *strings.Builder, a *ir.TypeAlias, indent int) {
	ind := xmlIndent(indent)
	fmt.Fprintf(out, "%s<type-alias name=%q visibility=%q line=\"%d\">\n", ind, escapeXML(a.Name), visibilityStr(a.Visibility), a.Line)
	if len(a.TypeParams) > 0 {
		tpInd := xmlIndent(indent + 1)
		fmt.Fprintf(out, "%s<type-params>\n", tpInd)
		for _, p := range a.TypeParams {
			f.formatTypeParam(out, p, indent+2)
		}
		fmt.Fprintf(out, "%s</type-params>\n", tpInd)
	}
	aliasInd := xmlIndent(indent + 1)
	fmt.Fprintf(out, "%s<alias-type>\n", aliasInd)
	f.formatTypeRef(out, a.AliasType, indent+2)
	fmt.Fprintf(out, "%s</alias-type>\n", aliasInd)
	fmt.Fprintf(out, "%s</type-alias>\n", ind)
}

func (f *XMLFormatter) formatFunction(out *strings.Builder, fn *ir.Function, indent int) {
	ind := xmlIndent(indent)
	for _, d := range fn.Decorators {
		fmt.Fprintf(out, "%s<decorator value=%q />\n", ind, escapeXML(d))
	}
	fmt.Fprintf(out, "%s<function name=%q visibility=%q line-start=\"%d\" line-end=\"%d\"",
		ind, escapeXML(fn.Name), visibilityStr(fn.Visibility), fn.LineStart, fn.LineEnd)
	if len(fn.Modifiers) > 0 {
		fmt.Fprintf(out, " modifiers=%q", escapeXML(modifiersToString(fn.Modifiers)))
	}
	out.WriteString(">\n")

	if len(fn.TypeParams) > 0 {
		tpInd := xmlIndent(indent + 1)
		fmt.Fprintf(out, "%s<type-params>\n", tpInd)
		for _, p := range fn.TypeParams {
			f.formatTypeParam(out, p, indent+2)
		}
		fmt.Fprintf(out, "%s</type-params>\n", tpInd)
	}
	if len(fn.Parameters) > 0 {
		paramsInd := xmlIndent(indent + 1)
		fmt.Fprintf(out, "%s<parameters>\n", paramsInd)
		for _, p := range fn.Parameters {
			f.formatParameter(out, p, indent+2)
		}
		fmt.Fprintf(out, "%s</parameters>\n", paramsInd)
	}
	if fn.ReturnType != nil {
		retInd := xmlIndent(indent + 1)
		fmt.Fprintf(out, "%s<return-type>\n", retInd)
		f.formatTypeRef(out, *fn.ReturnType, indent+2)
		fmt.Fprintf(out, "%s</return-type>\n", retInd)
	}
	if fn.Implementation != nil {
		implInd := xmlIndent(indent + 1)
		fmt.Fprintf(out, "%s<implementation>\n", implInd)
		fmt.Fprintf(out, "%s\n", escapeXML(*fn.Implementation))
		fmt.Fprintf(out, "%s</implementation>\n", implInd)
	}
	fmt.Fprintf(out, "%s</function>\n", ind)
}

func (f *XMLFormatter) formatField(out *strings.Builder, field *ir.Field, indent int) {
	ind := xmlIndent(indent)
	fmt.Fprintf(out, "%s<field name=%q visibility=%q line=\"%d\"", ind, escapeXML(field.Name), visibilityStr(field.Visibility), field.Line)
	if len(field.Modifiers) > 0 {
		fmt.Fprintf(out, " modifiers=%q", escapeXML(modifiersToString(field.Modifiers)))
	}

	if field.FieldType != nil {
		out.WriteString(">\n")
		typeInd := xmlIndent(indent + 1)
		fmt.Fprintf(out, "%s<type>\n", typeInd)
		f.formatTypeRef(out, *field.FieldType, indent+2)
		fmt.Fprintf(out, "%s</type>\n", typeInd)
		if field.DefaultValue != nil {
			fmt.Fprintf(out, "%s<default-value>%s</default-value>\n", typeInd, escapeXML(*field.DefaultValue))
		}
		fmt.Fprintf(out, "%s</field>\n", ind)
		return
	}

	if field.DefaultValue != nil {
		fmt.Fprintf(out, " default=%q", escapeXML(*field.DefaultValue))
	}
	out.WriteString(" />\n")
}

func (f *XMLFormatter) formatComment(out *strings.Builder, c *ir.Comment, indent int) {
	ind := xmlIndent(indent)
	fmt.Fprintf(out, "%s<comment format=%q line=\"%d\">\n", ind, string(c.Format), c.Line)
	fmt.Fprintf(out, "%s\n", escapeXML(c.Text))
	fmt.Fprintf(out, "%s</comment>\n", ind)
}

func (f *XMLFormatter) formatRawContent(out *strings.Builder, raw *ir.RawContent, indent int) {
	ind := xmlIndent(indent)
	fmt.Fprintf(out, "%s<raw-content>\n", ind)
	fmt.Fprintf(out, "%s\n", escapeXML(raw.Content))
	fmt.Fprintf(out, "%s</raw-content>\n", ind)
}

func (f *XMLFormatter) formatTypeParam(out *strings.Builder, param ir.TypeParam, indent int) {
	ind := xmlIndent(indent)
	fmt.Fprintf(out, "%s<type-param name=%q", ind, escapeXML(param.Name))
	if len(param.Constraints) == 0 && param.Default == nil {
		out.WriteString(" />\n")
		return
	}
	out.WriteString(">\n")
	if len(param.Constraints) > 0 {
		cInd := xmlIndent(indent + 1)
		fmt.Fprintf(out, "%s<constraints>\n", cInd)
		for _, c := range param.Constraints {
			f.formatTypeRef(out, c, indent+2)
		}
		fmt.Fprintf(out, "%s</constraints>\n", cInd)
	}
	if param.Default != nil {
		dInd := xmlIndent(indent + 1)
		fmt.Fprintf(out, "%s<default>\n", dInd)
		f.formatTypeRef(out, *param.Default, indent+2)
		fmt.Fprintf(out, "%s</default>\n", dInd)
	}
	fmt.Fprintf(out, "%s</type-param>\n", ind)
}

func (f *XMLFormatter) formatTypeRef(out *strings.Builder, t ir.TypeRef, indent int) {
	ind := xmlIndent(indent)
	fmt.Fprintf(out, "%s<type name=%q", ind, escapeXML(t.Name))
	if len(t.TypeArgs) == 0 {
		out.WriteString(" />\n")
		return
	}
	out.WriteString(">\n")
	argsInd := xmlIndent(indent + 1)
	fmt.Fprintf(out, "%s<type-args>\n", argsInd)
	for _, a := range t.TypeArgs {
		f.formatTypeRef(out, a, indent+2)
	}
	fmt.Fprintf(out, "%s</type-args>\n", argsInd)
	fmt.Fprintf(out, "%s</type>\n", ind)
}

func (f *XMLFormatter) formatParameter(out *strings.Builder, p ir.Parameter, indent int) {
	ind := xmlIndent(indent)
	fmt.Fprintf(out, "%s<parameter name=%q", ind, escapeXML(p.Name))
	if p.IsVariadic {
		out.WriteString(" variadic=\"true\"")
	}
	if p.IsOptional {
		out.WriteString(" optional=\"true\"")
	}
	out.WriteString(">\n")

	typeInd := xmlIndent(indent + 1)
	fmt.Fprintf(out, "%s<type>\n", typeInd)
	f.formatTypeRef(out, p.ParamType, indent+2)
	fmt.Fprintf(out, "%s</type>\n", typeInd)

	if p.DefaultValue != nil {
		fmt.Fprintf(out, "%s<default-value>%s</default-value>\n", typeInd, escapeXML(*p.DefaultValue))
	}
	fmt.Fprintf(out, "%s</parameter>\n", ind)
}

func xmlIndent(level int) string {
	return strings.Repeat("  ", level)
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

func visibilityStr(v ir.Visibility) string {
	return string(v)
}

func modifiersToString(mods []ir.Modifier) string {
	parts := make([]string, len(mods))
	for i, m := range mods {
		parts[i] = m.String()
	}
	return strings.Join(parts, ",")
}
