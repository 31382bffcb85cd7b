package format

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/distil/internal/ir"
)

func sampleFile() *ir.File {
	impl := "return a + b"
	def := "0"
	line := 3
	return &ir.File{
		Path: "pkg/math.go",
		Children: []ir.Node{
			&ir.Import{ImportKind: "import", Module: "fmt", Line: &line},
			&ir.Class{
				Name:       "Adder",
				Visibility: ir.Public,
				TypeParams: []ir.TypeParam{{Name: "T", Constraints: []ir.TypeRef{ir.NewTypeRef("Number")}}},
				Extends:    []ir.TypeRef{ir.NewTypeRef("Base")},
				LineStart:  1,
				LineEnd:    10,
				Children: []ir.Node{
					&ir.Field{
						Name:         "total",
						Visibility:   ir.Private,
						FieldType:    &ir.TypeRef{Name: "int", TypeArgs: []ir.TypeRef{}},
						DefaultValue: &def,
						Line:         2,
					},
					&ir.Function{
						Name:       "Add",
						Visibility: ir.Public,
						Parameters: []ir.Parameter{
							{Name: "a", ParamType: ir.NewTypeRef("int")},
							{Name: "b", ParamType: ir.NewTypeRef("int")},
						},
						ReturnType:     &ir.TypeRef{Name: "int", TypeArgs: []ir.TypeRef{}},
						Implementation: &impl,
						LineStart:      4,
						LineEnd:        6,
					},
				},
			},
			&ir.Comment{Text: "trailing note", Format: ir.CommentPlain, Line: 12},
		},
	}
}

func TestTextFormatter_FormatFile(t *testing.T) {
	out, err := NewTextFormatter().FormatFile(sampleFile())
	require.NoError(t, err)
	assert.Contains(t, out, `<file path="pkg/math.go">`)
	assert.Contains(t, out, "</file>")
	assert.Contains(t, out, "class Adder<T: Number>(Base):")
	assert.Contains(t, out, "-total: int = 0")
	assert.Contains(t, out, "def Add(a: int, b: int) -> int:")
	assert.Contains(t, out, "return a + b")
	assert.Contains(t, out, "# trailing note")
}

func TestTextFormatter_FormatFiles_SeparatesWithBlankLine(t *testing.T) {
	f := sampleFile()
	out, err := NewTextFormatter().FormatFiles([]*ir.File{f, f})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, `<file path="pkg/math.go">`))
}

func TestMarkdownFormatter_FenceIntegrity(t *testing.T) {
	out, err := NewMarkdownFormatter().FormatFile(sampleFile())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "### pkg/math.go\n\n"))
	assert.Contains(t, out, "```go\n")
	assert.True(t, strings.HasSuffix(out, "```\n"))
	assert.NotContains(t, out, "<file path=")
}

func TestMarkdownFormatter_LanguageFromPath(t *testing.T) {
	assert.Equal(t, "python", languageFromPath("a/b.py"))
	assert.Equal(t, "typescript", languageFromPath("a/b.tsx"))
	assert.Equal(t, "rust", languageFromPath("a/b.rs"))
	assert.Equal(t, "", languageFromPath("noextension"))
	assert.Equal(t, "zig", languageFromPath("weird.zig"))
}

func TestJSONFormatter_ValidAndStableFieldNames(t *testing.T) {
	out, err := NewJSONFormatter().FormatFile(sampleFile())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "file", decoded["kind"])
	assert.Equal(t, "pkg/math.go", decoded["path"])

	children, ok := decoded["children"].([]any)
	require.True(t, ok)
	require.Len(t, children, 3)

	imp := children[0].(map[string]any)
	assert.Equal(t, "import", imp["import_type"])
}

func TestJSONLFormatter_RoundTripPerLine(t *testing.T) {
	f1 := sampleFile()
	f2 := sampleFile()
	f2.Path = "pkg/other.go"

	out, err := NewJSONLFormatter().FormatFiles([]*ir.File{f1, f2})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	for i, line := range lines {
		var decoded ir.File
		require.NoErrorf(t, json.Unmarshal([]byte(line), &decoded), "line %d must round-trip", i)
	}
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestXMLFormatter_EscapingAndSelfClosing(t *testing.T) {
	f := &ir.File{
		Path: "pkg/<weird>.go",
		Children: []ir.Node{
			&ir.Interface{Name: "Empty", Visibility: ir.Public, LineStart: 1, LineEnd: 1},
		},
	}
	out, err := NewXMLFormatter().FormatFile(f)
	require.NoError(t, err)
	assert.Contains(t, out, `path="pkg/&lt;weird&gt;.go"`)
	assert.Contains(t, out, `<interface name="Empty" visibility="public" line-start="1" line-end="1" />`)
}

func TestXMLFormatter_ContainerExpandsWhenNonEmpty(t *testing.T) {
	out, err := NewXMLFormatter().FormatFile(sampleFile())
	require.NoError(t, err)
	assert.Contains(t, out, `<class name="Adder" visibility="public" line-start="1" line-end="10">`)
	assert.Contains(t, out, "<type-params>")
	assert.Contains(t, out, "<extends>")
	assert.Contains(t, out, "</class>")
	assert.Contains(t, out, `<function name="Add" visibility="public" line-start="4" line-end="6">`)
	assert.Contains(t, out, "<implementation>")
	assert.Contains(t, out, "</function>")
}

func TestXMLFormatter_FormatFilesWrapsInFilesElement(t *testing.T) {
	f := sampleFile()
	out, err := NewXMLFormatter().FormatFiles([]*ir.File{f})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<files>\n"))
	assert.True(t, strings.HasSuffix(out, "</files>\n"))
}
