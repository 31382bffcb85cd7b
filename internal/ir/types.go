package ir

import "encoding/json"

// Directory is a filesystem directory node. It is a tree root alongside
// File; its children are Directory and File nodes in discovery order.
type Directory struct {
	Path     string `json:"path"`
	Children []Node `json:"children"`
}

func (d *Directory) Kind() NodeKind { return KindDirectory }

func (d *Directory) MarshalJSON() ([]byte, error) {
	type alias Directory
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{KindDirectory, (*alias)(d)})
}

// File is one source file: the path is the path handed to the extractor
// verbatim, never resolved to an absolute path unless the caller did so.
type File struct {
	Path     string `json:"path"`
	Children []Node `json:"children"`
}

func (f *File) Kind() NodeKind { return KindFile }

func (f *File) MarshalJSON() ([]byte, error) {
	type alias File
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{KindFile, (*alias)(f)})
}

// Package is a logical grouping inside a file (Go package clause, Kotlin
// package, PHP namespace, ...).
type Package struct {
	Name     string `json:"name"`
	Children []Node `json:"children"`
}

func (p *Package) Kind() NodeKind { return KindPackage }

func (p *Package) MarshalJSON() ([]byte, error) {
	type alias Package
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{KindPackage, (*alias)(p)})
}

// ImportedSymbol is one named (and optionally aliased) member of an
// import/from/use statement's symbol list.
type ImportedSymbol struct {
	Name  string  `json:"name"`
	Alias *string `json:"alias,omitempty"`
}

// Import represents an import/use/include/require declaration.
//
// ImportKind is one of "import", "from", "use", "include" and drives how
// formatters render the statement (e.g. text's "from X import Y" vs
// plain "import X").
type Import struct {
	ImportKind string           `json:"import_type"`
	Module     string           `json:"module"`
	Symbols    []ImportedSymbol `json:"symbols"`
	IsType     bool             `json:"is_type"`
	Line       *int             `json:"line,omitempty"`
}

func (i *Import) Kind() NodeKind { return KindImport }

func (i *Import) MarshalJSON() ([]byte, error) {
	type alias Import
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{KindImport, (*alias)(i)})
}

// TypeRef is a reference to a type. Name carries the raw textual form
// (including any array/nullable/reference sigils the language uses);
// composite types populate TypeArgs. A TypeRef with no TypeArgs is a
// leaf.
type TypeRef struct {
	Name       string    `json:"name"`
	Package    string    `json:"package,omitempty"`
	TypeArgs   []TypeRef `json:"type_args"`
	IsNullable bool      `json:"is_nullable"`
	IsArray    bool      `json:"is_array"`
}

// NewTypeRef builds a leaf TypeRef with just a name, the common case.
func NewTypeRef(name string) TypeRef {
	return TypeRef{Name: name, TypeArgs: []TypeRef{}}
}

// TypeParam is one generic/type parameter of a Class, Interface,
// Function or TypeAlias.
type TypeParam struct {
	Name        string    `json:"name"`
	Constraints []TypeRef `json:"constraints"`
	Default     *TypeRef  `json:"default,omitempty"`
}

// Parameter is one formal parameter. It is never a free Node; it only
// ever appears inside Function.Parameters.
type Parameter struct {
	Name         string   `json:"name"`
	ParamType    TypeRef  `json:"param_type"`
	DefaultValue *string  `json:"default_value,omitempty"`
	IsVariadic   bool     `json:"is_variadic"`
	IsOptional   bool     `json:"is_optional"`
	Decorators   []string `json:"decorators"`
}

// Class is a class-like container. Languages whose concept has no
// dedicated IR variant (Swift protocol/struct/enum, Ruby module, Kotlin
// object/companion, PHP trait, C# record/struct/interface, C
// enum/union/typedef, C++ struct, ...) are represented as Class with a
// decorator tag naming the concept.
type Class struct {
	Name       string      `json:"name"`
	Visibility Visibility  `json:"visibility"`
	Modifiers  []Modifier  `json:"modifiers"`
	Decorators []string    `json:"decorators"`
	TypeParams []TypeParam `json:"type_params"`
	Extends    []TypeRef   `json:"extends"`
	Implements []TypeRef   `json:"implements"`
	Children   []Node      `json:"children"`
	LineStart  int         `json:"line_start"`
	LineEnd    int         `json:"line_end"`
}

func (c *Class) Kind() NodeKind { return KindClass }

func (c *Class) MarshalJSON() ([]byte, error) {
	type alias Class
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{KindClass, (*alias)(c)})
}

// Interface is a pure-contract container.
type Interface struct {
	Name       string      `json:"name"`
	Visibility Visibility  `json:"visibility"`
	TypeParams []TypeParam `json:"type_params"`
	Extends    []TypeRef   `json:"extends"`
	Children   []Node      `json:"children"`
	LineStart  int         `json:"line_start"`
	LineEnd    int         `json:"line_end"`
}

func (i *Interface) Kind() NodeKind { return KindInterface }

func (i *Interface) MarshalJSON() ([]byte, error) {
	type alias Interface
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{KindInterface, (*alias)(i)})
}

// Struct is a specialized container for languages with a value-type
// struct concept distinct from Class (Go, Rust, Swift route through
// Class+decorator instead; Struct exists for languages/extractors that
// want a dedicated node — currently unused by the shipped extractors but
// part of the closed IR node set.
type Struct struct {
	Name       string      `json:"name"`
	Visibility Visibility  `json:"visibility"`
	TypeParams []TypeParam `json:"type_params"`
	Children   []Node      `json:"children"`
	LineStart  int         `json:"line_start"`
	LineEnd    int         `json:"line_end"`
}

func (s *Struct) Kind() NodeKind { return KindStruct }

func (s *Struct) MarshalJSON() ([]byte, error) {
	type alias Struct
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{KindStruct, (*alias)(s)})
}

// Enum is a specialized container carrying an optional backing type.
type Enum struct {
	Name       string     `json:"name"`
	Visibility Visibility `json:"visibility"`
	EnumType   *TypeRef   `json:"enum_type,omitempty"`
	Children   []Node     `json:"children"`
	LineStart  int        `json:"line_start"`
	LineEnd    int        `json:"line_end"`
}

func (e *Enum) Kind() NodeKind { return KindEnum }

func (e *Enum) MarshalJSON() ([]byte, error) {
	type alias Enum
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{KindEnum, (*alias)(e)})
}

// TypeAlias binds a name (optionally generic) to another type.
type TypeAlias struct {
	Name       string      `json:"name"`
	Visibility Visibility  `json:"visibility"`
	TypeParams []TypeParam `json:"type_params"`
	AliasType  TypeRef     `json:"alias_type"`
	Line       int         `json:"line"`
}

func (t *TypeAlias) Kind() NodeKind { return KindTypeAlias }

func (t *TypeAlias) MarshalJSON() ([]byte, error) {
	type alias TypeAlias
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{KindTypeAlias, (*alias)(t)})
}

// Function is any callable: free function, method, operator, lambda
// bound to a name, etc.
type Function struct {
	Name           string      `json:"name"`
	Visibility     Visibility  `json:"visibility"`
	Modifiers      []Modifier  `json:"modifiers"`
	Decorators     []string    `json:"decorators"`
	TypeParams     []TypeParam `json:"type_params"`
	Parameters     []Parameter `json:"parameters"`
	ReturnType     *TypeRef    `json:"return_type,omitempty"`
	Implementation *string     `json:"implementation,omitempty"`
	LineStart      int         `json:"line_start"`
	LineEnd        int         `json:"line_end"`
}

func (f *Function) Kind() NodeKind { return KindFunction }

func (f *Function) MarshalJSON() ([]byte, error) {
	type alias Function
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{KindFunction, (*alias)(f)})
}

// Field is a named member of a container (property, attribute, struct
// field, constant, ...).
type Field struct {
	Name         string     `json:"name"`
	Visibility   Visibility `json:"visibility"`
	Modifiers    []Modifier `json:"modifiers"`
	FieldType    *TypeRef   `json:"field_type,omitempty"`
	DefaultValue *string    `json:"default_value,omitempty"`
	Line         int        `json:"line"`
}

func (f *Field) Kind() NodeKind { return KindField }

func (f *Field) MarshalJSON() ([]byte, error) {
	type alias Field
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{KindField, (*alias)(f)})
}

// CommentFormat distinguishes plain comments from documentation comments
// (docstrings, javadoc, XML doc comments, ...).
type CommentFormat string

const (
	CommentPlain CommentFormat = "plain"
	CommentDoc   CommentFormat = "doc"
)

// Comment is a preserved textual comment fragment.
type Comment struct {
	Text   string        `json:"text"`
	Format CommentFormat `json:"format"`
	Line   int           `json:"line"`
}

func (c *Comment) Kind() NodeKind { return KindComment }

func (c *Comment) MarshalJSON() ([]byte, error) {
	type alias Comment
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{KindComment, (*alias)(c)})
}

// RawContent preserves a fragment of source text an extractor chose not
// to model structurally.
type RawContent struct {
	Content string `json:"content"`
	Format  string `json:"format,omitempty"`
	Line    *int   `json:"line,omitempty"`
}

func (r *RawContent) Kind() NodeKind { return KindRawContent }

func (r *RawContent) MarshalJSON() ([]byte, error) {
	type alias RawContent
	return json.Marshal(struct {
		Kind NodeKind `json:"kind"`
		*alias
	}{KindRawContent, (*alias)(r)})
}

// ExtractFiles collects every leaf File node from a Directory/File tree
// in pre-order.
func ExtractFiles(root Node) []*File {
	var out []*File
	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case *File:
			out = append(out, v)
		case *Directory:
			for _, c := range v.Children {
				walk(c)
			}
		}
	}
	walk(root)
	return out
}
