package langs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

const csharpSample = `
public class Vector {
    private int x, y;

    public static Vector operator +(Vector a, Vector b) {
        return new Vector();
    }

    protected void Move() {}
}
`

func TestCSharpExtractor_CanProcess(t *testing.T) {
	e := NewCSharpExtractor()
	assert.True(t, e.CanProcess("Widget.cs"))
	assert.False(t, e.CanProcess("widget.java"))
}

func TestCSharpExtractor_FieldDeclaration_EmitsAllDeclarators(t *testing.T) {
	e := NewCSharpExtractor()
	file, err := e.Process(csharpSample, "Vector.cs", options.Default())
	require.NoError(t, err)

	var class *ir.Class
	for _, c := range file.Children {
		if cl, ok := c.(*ir.Class); ok && cl.Name == "Vector" {
			class = cl
		}
	}
	require.NotNil(t, class)

	var fieldNames []string
	for _, c := range class.Children {
		if f, ok := c.(*ir.Field); ok {
			fieldNames = append(fieldNames, f.Name)
		}
	}
	assert.ElementsMatch(t, []string{"x", "y"}, fieldNames)
}

func TestCSharpExtractor_OperatorOverload_IsFunctionWithOperatorDecorator(t *testing.T) {
	e := NewCSharpExtractor()
	file, err := e.Process(csharpSample, "Vector.cs", options.Default())
	require.NoError(t, err)

	var class *ir.Class
	for _, c := range file.Children {
		if cl, ok := c.(*ir.Class); ok && cl.Name == "Vector" {
			class = cl
		}
	}
	require.NotNil(t, class)

	var operator *ir.Function
	for _, c := range class.Children {
		if fn, ok := c.(*ir.Function); ok {
			for _, d := range fn.Decorators {
				if d == "operator" {
					operator = fn
				}
			}
		}
	}
	require.NotNil(t, operator, "expected an operator-decorated function")
	assert.True(t, ir.HasModifier(operator.Modifiers, ir.ModStatic))
}

func TestCSharpModifiers_VisibilityMapping(t *testing.T) {
	cases := []struct {
		name string
		want ir.Visibility
	}{
		{"public", ir.Public},
		{"private", ir.Private},
		{"protected", ir.Protected},
		{"internal", ir.Internal},
	}
	e := NewCSharpExtractor()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := c.name + " class Thing {}"
			file, err := e.Process(src, "Thing.cs", options.Default())
			require.NoError(t, err)
			require.Len(t, file.Children, 1)
			class, ok := file.Children[0].(*ir.Class)
			require.True(t, ok)
			assert.Equal(t, c.want, class.Visibility)
		})
	}
}
