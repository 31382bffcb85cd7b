package langs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

const kotlinSample = `
class Vector(val x: Int, val y: Int) {
    companion object {
        val ORIGIN = Vector(0, 0)
    }

    operator fun plus(other: Vector): Vector {
        return Vector(x + other.x, y + other.y)
    }
}
`

func TestKotlinExtractor_CanProcess(t *testing.T) {
	e := NewKotlinExtractor()
	assert.True(t, e.CanProcess("Vector.kt"))
	assert.False(t, e.CanProcess("Vector.java"))
}

func TestKotlinExtractor_OperatorFunction_HasDecoratorAndStatic(t *testing.T) {
	e := NewKotlinExtractor()
	file, err := e.Process(kotlinSample, "Vector.kt", options.Default())
	require.NoError(t, err)

	var class *ir.Class
	for _, c := range file.Children {
		if cl, ok := c.(*ir.Class); ok && cl.Name == "Vector" {
			class = cl
		}
	}
	require.NotNil(t, class)

	var plus *ir.Function
	for _, c := range class.Children {
		if fn, ok := c.(*ir.Function); ok && fn.Name == "plus" {
			plus = fn
		}
	}
	require.NotNil(t, plus)
	assert.Contains(t, plus.Decorators, "operator")
	assert.True(t, ir.HasModifier(plus.Modifiers, ir.ModStatic))
}

func TestKotlinExtractor_CompanionObject_NestsAsDecoratedClass(t *testing.T) {
	e := NewKotlinExtractor()
	file, err := e.Process(kotlinSample, "Vector.kt", options.Default())
	require.NoError(t, err)

	var class *ir.Class
	for _, c := range file.Children {
		if cl, ok := c.(*ir.Class); ok && cl.Name == "Vector" {
			class = cl
		}
	}
	require.NotNil(t, class)

	var companion *ir.Class
	for _, c := range class.Children {
		if cl, ok := c.(*ir.Class); ok {
			companion = cl
		}
	}
	require.NotNil(t, companion, "expected companion object nested as a class")
	assert.Equal(t, "Companion", companion.Name)
	assert.Contains(t, companion.Decorators, "companion")
}

func TestKotlinExtractor_NamedCompanionObject_KeepsItsName(t *testing.T) {
	const src = `
class Thing {
    companion object Factory {
        fun create(): Thing = Thing()
    }
}
`
	e := NewKotlinExtractor()
	file, err := e.Process(src, "Thing.kt", options.Default())
	require.NoError(t, err)
	require.Len(t, file.Children, 1)
	class := file.Children[0].(*ir.Class)

	var companion *ir.Class
	for _, c := range class.Children {
		if cl, ok := c.(*ir.Class); ok {
			companion = cl
		}
	}
	require.NotNil(t, companion)
	assert.Equal(t, "Factory", companion.Name)
}

func TestKotlinModifiers_VisibilityMapping(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want ir.Visibility
	}{
		{"public", "public class Thing", ir.Public},
		{"private", "private class Thing", ir.Private},
		{"protected", "protected class Thing", ir.Protected},
		{"internal", "internal class Thing", ir.Internal},
		{"default", "class Thing", ir.Public},
	}
	e := NewKotlinExtractor()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			file, err := e.Process(c.src, "Thing.kt", options.Default())
			require.NoError(t, err)
			require.Len(t, file.Children, 1)
			class, ok := file.Children[0].(*ir.Class)
			require.True(t, ok)
			assert.Equal(t, c.want, class.Visibility)
		})
	}
}
