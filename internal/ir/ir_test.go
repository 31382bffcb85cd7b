package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindMethodsAreStable(t *testing.T) {
	cases := []struct {
		node Node
		want NodeKind
	}{
		{&Directory{Path: "src"}, KindDirectory},
		{&File{Path: "main.go"}, KindFile},
		{&Package{Name: "main"}, KindPackage},
		{&Import{Module: "fmt"}, KindImport},
		{&Class{Name: "Widget"}, KindClass},
		{&Interface{Name: "Shape"}, KindInterface},
		{&Struct{Name: "Point"}, KindStruct},
		{&Enum{Name: "Color"}, KindEnum},
		{&TypeAlias{Name: "ID"}, KindTypeAlias},
		{&Function{Name: "Do"}, KindFunction},
		{&Field{Name: "x"}, KindField},
		{&Comment{Text: "hi"}, KindComment},
		{&RawContent{Content: "..."}, KindRawContent},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.node.Kind())
	}
}

func TestMarshalJSON_EmbedsKind(t *testing.T) {
	f := &Function{Name: "Greet", Visibility: Public}
	encoded, err := json.Marshal(f)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, string(KindFunction), decoded["kind"])
	assert.Equal(t, "Greet", decoded["name"])
}

func TestNewTypeRef_LeafHasEmptyTypeArgs(t *testing.T) {
	ref := NewTypeRef("string")
	assert.Equal(t, "string", ref.Name)
	assert.NotNil(t, ref.TypeArgs)
	assert.Empty(t, ref.TypeArgs)
}

func TestHasModifier(t *testing.T) {
	mods := []Modifier{ModStatic, ModFinal}
	assert.True(t, HasModifier(mods, ModStatic))
	assert.False(t, HasModifier(mods, ModAsync))
	assert.False(t, HasModifier(nil, ModStatic))
}

func TestExtractFiles_WalksNestedDirectories(t *testing.T) {
	root := &Directory{
		Path: "root",
		Children: []Node{
			&File{Path: "root/a.go"},
			&Directory{
				Path: "root/nested",
				Children: []Node{
					&File{Path: "root/nested/b.go"},
					&Directory{Path: "root/nested/empty"},
				},
			},
		},
	}

	files := ExtractFiles(root)
	require.Len(t, files, 2)
	assert.Equal(t, "root/a.go", files[0].Path)
	assert.Equal(t, "root/nested/b.go", files[1].Path)
}

func TestExtractFiles_SingleFileRoot(t *testing.T) {
	f := &File{Path: "solo.go"}
	files := ExtractFiles(f)
	require.Len(t, files, 1)
	assert.Same(t, f, files[0])
}

func TestExtractFiles_EmptyDirectoryYieldsNoFiles(t *testing.T) {
	files := ExtractFiles(&Directory{Path: "empty"})
	assert.Empty(t, files)
}
