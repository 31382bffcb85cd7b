package langs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

const typescriptSample = `
export class Widget {
    private readonly id: string;
    protected count: number;
    static instances: number = 0;

    async load(): Promise<void> {}
}
`

func TestTypeScriptExtractor_CanProcess(t *testing.T) {
	e := NewTypeScriptExtractor()
	assert.True(t, e.CanProcess("widget.ts"))
	assert.True(t, e.CanProcess("widget.tsx"))
	assert.False(t, e.CanProcess("widget.js"))
}

func TestTypeScriptExtractor_ReadonlyField_MapsToConstModifier(t *testing.T) {
	e := NewTypeScriptExtractor()
	file, err := e.Process(typescriptSample, "widget.ts", options.Default())
	require.NoError(t, err)
	require.Len(t, file.Children, 1)
	class := file.Children[0].(*ir.Class)

	var id *ir.Field
	for _, c := range class.Children {
		if f, ok := c.(*ir.Field); ok && f.Name == "id" {
			id = f
		}
	}
	require.NotNil(t, id)
	assert.True(t, ir.HasModifier(id.Modifiers, ir.ModConst))
	assert.False(t, ir.HasModifier(id.Modifiers, ir.ModReadonly), "readonly must not map to ModReadonly")
}

func TestTypeScriptExtractor_AccessibilityModifiers(t *testing.T) {
	e := NewTypeScriptExtractor()
	file, err := e.Process(typescriptSample, "widget.ts", options.Default())
	require.NoError(t, err)
	class := file.Children[0].(*ir.Class)

	visibilityByName := map[string]ir.Visibility{}
	for _, c := range class.Children {
		if f, ok := c.(*ir.Field); ok {
			visibilityByName[f.Name] = f.Visibility
		}
	}
	assert.Equal(t, ir.Private, visibilityByName["id"])
	assert.Equal(t, ir.Protected, visibilityByName["count"])
}

func TestTypeScriptExtractor_StaticAndAsyncModifiers(t *testing.T) {
	e := NewTypeScriptExtractor()
	file, err := e.Process(typescriptSample, "widget.ts", options.Default())
	require.NoError(t, err)
	class := file.Children[0].(*ir.Class)

	var instances *ir.Field
	var load *ir.Function
	for _, c := range class.Children {
		switch v := c.(type) {
		case *ir.Field:
			if v.Name == "instances" {
				instances = v
			}
		case *ir.Function:
			if v.Name == "load" {
				load = v
			}
		}
	}
	require.NotNil(t, instances)
	require.NotNil(t, load)
	assert.True(t, ir.HasModifier(instances.Modifiers, ir.ModStatic))
	assert.True(t, ir.HasModifier(load.Modifiers, ir.ModAsync))
}
