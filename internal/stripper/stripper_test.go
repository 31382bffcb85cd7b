package stripper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

func sampleFile() *ir.File {
	impl := "return 1"
	doc := "Public docstring."
	return &ir.File{
		Path: "sample.py",
		Children: []ir.Node{
			&ir.Import{ImportKind: "import", Module: "os", Symbols: []ir.ImportedSymbol{}},
			&ir.Comment{Text: doc, Format: ir.CommentDoc, Line: 1},
			&ir.Class{
				Name:       "C",
				Visibility: ir.Public,
				Decorators: []string{"dataclass"},
				Children: []ir.Node{
					&ir.Function{Name: "pub", Visibility: ir.Public, Decorators: []string{"classmethod"}, Implementation: &impl},
					&ir.Function{Name: "_prot", Visibility: ir.Protected, Implementation: &impl},
					&ir.Function{Name: "__priv", Visibility: ir.Private, Implementation: &impl},
					&ir.Field{Name: "x", Visibility: ir.Public},
				},
			},
		},
	}
}

func findClass(children []ir.Node) *ir.Class {
	for _, c := range children {
		if class, ok := c.(*ir.Class); ok {
			return class
		}
	}
	return nil
}

func TestStripper_DefaultOptions_VisibilityAndContent(t *testing.T) {
	f := sampleFile()
	New(options.Default()).VisitNode(f)

	require.Len(t, f.Children, 2, "import kept, doc comment dropped (IncludeComments defaults false), class kept")
	class := findClass(f.Children)
	require.NotNil(t, class)
	assert.Equal(t, []string{"dataclass"}, class.Decorators, "annotations on by default")

	var names []string
	for _, c := range class.Children {
		if fn, ok := c.(*ir.Function); ok {
			names = append(names, fn.Name)
		}
	}
	assert.Equal(t, []string{"pub"}, names, "only Public survives default visibility filter")
}

func TestStripper_IncludeImplementationFalse_ClearsBody(t *testing.T) {
	f := sampleFile()
	opts := options.NewBuilder().IncludePublic(true).IncludeImplementation(false).Build()
	New(opts).VisitNode(f)

	class := findClass(f.Children)
	require.NotNil(t, class)
	for _, c := range class.Children {
		if fn, ok := c.(*ir.Function); ok {
			assert.Nil(t, fn.Implementation)
		}
	}
}

func TestStripper_IncludeAnnotationsFalse_ClearsDecorators(t *testing.T) {
	f := sampleFile()
	opts := options.NewBuilder().IncludeAnnotations(false).Build()
	New(opts).VisitNode(f)

	class := findClass(f.Children)
	require.NotNil(t, class)
	assert.Nil(t, class.Decorators)
	for _, c := range class.Children {
		if fn, ok := c.(*ir.Function); ok {
			assert.Nil(t, fn.Decorators)
		}
	}
}

func TestStripper_IncludeImportsFalse_DropsImport(t *testing.T) {
	f := sampleFile()
	opts := options.NewBuilder().IncludeImports(false).Build()
	New(opts).VisitNode(f)

	for _, c := range f.Children {
		_, isImport := c.(*ir.Import)
		assert.False(t, isImport, "import should have been dropped")
	}
}

func TestStripper_IncludeMethodsFalse_OnlyAffectsContainerFunctions(t *testing.T) {
	f := sampleFile()
	f.Children = append(f.Children, &ir.Function{Name: "toplevel", Visibility: ir.Public})
	opts := options.NewBuilder().IncludeMethods(false).Build()
	New(opts).VisitNode(f)

	var topLevelPresent bool
	for _, c := range f.Children {
		if fn, ok := c.(*ir.Function); ok && fn.Name == "toplevel" {
			topLevelPresent = true
		}
	}
	assert.True(t, topLevelPresent, "top-level functions are never dropped by IncludeMethods")

	class := findClass(f.Children)
	require.NotNil(t, class)
	for _, c := range class.Children {
		_, isFn := c.(*ir.Function)
		assert.False(t, isFn, "container-scoped functions must be dropped")
	}
}

func TestStripper_IncludeFieldsFalse_DropsFields(t *testing.T) {
	f := sampleFile()
	opts := options.NewBuilder().IncludeFields(false).Build()
	New(opts).VisitNode(f)

	class := findClass(f.Children)
	require.NotNil(t, class)
	for _, c := range class.Children {
		_, isField := c.(*ir.Field)
		assert.False(t, isField)
	}
}

func TestStripper_IncludeDocstringsFalse_DropsDocCommentsOnly(t *testing.T) {
	f := &ir.File{
		Path: "x.py",
		Children: []ir.Node{
			&ir.Comment{Text: "doc", Format: ir.CommentDoc, Line: 1},
			&ir.Comment{Text: "plain", Format: ir.CommentPlain, Line: 2},
		},
	}
	opts := options.NewBuilder().IncludeComments(true).IncludeDocstrings(false).Build()
	New(opts).VisitNode(f)

	require.Len(t, f.Children, 1)
	c := f.Children[0].(*ir.Comment)
	assert.Equal(t, "plain", c.Text)
}

func TestStripper_RawMode_IsNoOp(t *testing.T) {
	f := sampleFile()
	before := len(findClass(f.Children).Children)

	opts := options.NewBuilder().RawMode(true).IncludePublic(true).IncludeFields(false).Build()
	New(opts).VisitNode(f)

	after := len(findClass(f.Children).Children)
	assert.Equal(t, before, after, "raw mode must leave the tree untouched")
	assert.Len(t, f.Children, 3, "import and comment both still present under raw mode")
}

func TestStripper_Idempotent(t *testing.T) {
	opts := options.Default()

	f1 := sampleFile()
	New(opts).VisitNode(f1)
	snapshot := len(findClass(f1.Children).Children)

	New(opts).VisitNode(f1)
	assert.Equal(t, snapshot, len(findClass(f1.Children).Children), "second pass must not change an already-stripped tree")
}
