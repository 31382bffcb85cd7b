package langs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

func TestSwiftExtractor_CanProcess(t *testing.T) {
	e := NewSwiftExtractor()
	assert.True(t, e.CanProcess("Model.swift"))
	assert.False(t, e.CanProcess("Model.kt"))
}

func TestSwiftExtractor_DefaultsToInternalVisibility(t *testing.T) {
	e := NewSwiftExtractor()
	file, err := e.Process("class A { func m() {} }", "sample.swift", options.Default())
	require.NoError(t, err)

	require.Len(t, file.Children, 1)
	class, ok := file.Children[0].(*ir.Class)
	require.True(t, ok)
	assert.Equal(t, "A", class.Name)
	assert.Equal(t, ir.Internal, class.Visibility)
	assert.Contains(t, class.Decorators, "class")

	require.Len(t, class.Children, 1)
	method, ok := class.Children[0].(*ir.Function)
	require.True(t, ok)
	assert.Equal(t, "m", method.Name)
	assert.Equal(t, ir.Internal, method.Visibility, "methods also default to internal, not public")
}

func TestSwiftExtractor_StructAndEnumDecorators(t *testing.T) {
	e := NewSwiftExtractor()
	src := `
struct Point { let x: Int }
enum Direction { case north }
`
	file, err := e.Process(src, "sample.swift", options.Default())
	require.NoError(t, err)

	var point, direction *ir.Class
	for _, c := range file.Children {
		if class, ok := c.(*ir.Class); ok {
			switch class.Name {
			case "Point":
				point = class
			case "Direction":
				direction = class
			}
		}
	}
	require.NotNil(t, point)
	assert.Contains(t, point.Decorators, "struct")
	require.NotNil(t, direction)
	assert.Contains(t, direction.Decorators, "enum")
}

func TestSwiftExtractor_FirstInheritedIsSuperclassRestAreProtocols(t *testing.T) {
	e := NewSwiftExtractor()
	src := `public class Dog: Animal, Named, Sleepable { }`
	file, err := e.Process(src, "sample.swift", options.Default())
	require.NoError(t, err)

	require.Len(t, file.Children, 1)
	class := file.Children[0].(*ir.Class)
	assert.Equal(t, ir.Public, class.Visibility)
	require.Len(t, class.Extends, 1)
	assert.Equal(t, "Animal", class.Extends[0].Name)
	require.Len(t, class.Implements, 2)
	assert.Equal(t, "Named", class.Implements[0].Name)
	assert.Equal(t, "Sleepable", class.Implements[1].Name)
}

func TestSwiftExtractor_ProtocolDecoratorAndVisibility(t *testing.T) {
	e := NewSwiftExtractor()
	src := `private protocol Flyable { func fly() }`
	file, err := e.Process(src, "sample.swift", options.Default())
	require.NoError(t, err)

	require.Len(t, file.Children, 1)
	class := file.Children[0].(*ir.Class)
	assert.Contains(t, class.Decorators, "protocol")
	assert.Equal(t, ir.Private, class.Visibility)
}
