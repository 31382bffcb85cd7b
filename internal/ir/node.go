// Package ir defines the language-agnostic intermediate representation
// that every extractor normalizes source code into, and that every
// formatter projects back out as text.
package ir

// NodeKind discriminates the concrete type behind a Node.
type NodeKind string

const (
	KindDirectory  NodeKind = "directory"
	KindFile       NodeKind = "file"
	KindPackage    NodeKind = "package"
	KindImport     NodeKind = "import"
	KindClass      NodeKind = "class"
	KindInterface  NodeKind = "interface"
	KindStruct     NodeKind = "struct"
	KindEnum       NodeKind = "enum"
	KindTypeAlias  NodeKind = "type_alias"
	KindFunction   NodeKind = "function"
	KindField      NodeKind = "field"
	KindComment    NodeKind = "comment"
	KindRawContent NodeKind = "raw_content"
)

// Node is implemented by every tree member except Parameter, TypeRef and
// TypeParam, which are never free children of a container.
type Node interface {
	Kind() NodeKind
}

// Visibility is the closed set of access levels every Function and Field
// must carry. Containers keep their own visibility but it never gates
// whether the container itself is kept during stripping.
type Visibility string

const (
	Public    Visibility = "public"
	Protected Visibility = "protected"
	Internal  Visibility = "internal"
	Private   Visibility = "private"
)

func (v Visibility) String() string { return string(v) }

// Modifier is the closed set of language-keyword modifiers extractors
// may attach to a Function or Field.
type Modifier string

const (
	ModStatic   Modifier = "static"
	ModAbstract Modifier = "abstract"
	ModFinal    Modifier = "final"
	ModAsync    Modifier = "async"
	ModVirtual  Modifier = "virtual"
	ModOverride Modifier = "override"
	ModConst    Modifier = "const"
	ModReadonly Modifier = "readonly"
	ModMutable  Modifier = "mutable"
	ModEvent    Modifier = "event"
	ModData     Modifier = "data"
	ModSealed   Modifier = "sealed"
	ModInline   Modifier = "inline"
)

func (m Modifier) String() string { return string(m) }

// HasModifier reports whether mods contains m.
func HasModifier(mods []Modifier, m Modifier) bool {
	for _, x := range mods {
		if x == m {
			return true
		}
	}
	return false
}
