package langs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

const cSample = `
#include <stdio.h>
#include "local.h"

struct Point {
    int x;
    int y;
};

typedef struct Point PointT;

enum Color { RED, GREEN, BLUE };

int add(int a, int b) {
    return a + b;
}
`

func TestCExtractor_CanProcess(t *testing.T) {
	e := NewCExtractor()
	assert.True(t, e.CanProcess("main.c"))
	assert.True(t, e.CanProcess("header.h"))
	assert.False(t, e.CanProcess("main.cpp"))
}

func TestCExtractor_Includes(t *testing.T) {
	e := NewCExtractor()
	file, err := e.Process(cSample, "sample.c", options.Default())
	require.NoError(t, err)

	var modules []string
	for _, c := range file.Children {
		if imp, ok := c.(*ir.Import); ok {
			modules = append(modules, imp.Module)
			assert.Equal(t, "include", imp.ImportKind)
		}
	}
	assert.Equal(t, []string{"stdio.h", "local.h"}, modules)
}

func TestCExtractor_StructFields(t *testing.T) {
	e := NewCExtractor()
	file, err := e.Process(cSample, "sample.c", options.Default())
	require.NoError(t, err)

	var point *ir.Class
	for _, c := range file.Children {
		if class, ok := c.(*ir.Class); ok && class.Name == "Point" {
			point = class
		}
	}
	require.NotNil(t, point)
	assert.Contains(t, point.Decorators, "struct")

	var fieldNames []string
	for _, c := range point.Children {
		if f, ok := c.(*ir.Field); ok {
			fieldNames = append(fieldNames, f.Name)
		}
	}
	assert.Equal(t, []string{"x", "y"}, fieldNames)
}

func TestCExtractor_TypedefEncodedAsClass(t *testing.T) {
	e := NewCExtractor()
	file, err := e.Process(cSample, "sample.c", options.Default())
	require.NoError(t, err)

	var typedef *ir.Class
	for _, c := range file.Children {
		if class, ok := c.(*ir.Class); ok && class.Name == "PointT" {
			typedef = class
		}
	}
	require.NotNil(t, typedef)
	assert.Contains(t, typedef.Decorators, "typedef")
}

func TestCExtractor_Function(t *testing.T) {
	e := NewCExtractor()
	file, err := e.Process(cSample, "sample.c", options.Default())
	require.NoError(t, err)

	var add *ir.Function
	for _, c := range file.Children {
		if fn, ok := c.(*ir.Function); ok && fn.Name == "add" {
			add = fn
		}
	}
	require.NotNil(t, add)
	require.Len(t, add.Parameters, 2)
	assert.Equal(t, "a", add.Parameters[0].Name)
	assert.Equal(t, "b", add.Parameters[1].Name)
	require.NotNil(t, add.ReturnType)
	assert.Equal(t, "int", add.ReturnType.Name)
}

func TestCExtractor_UnnamedParametersSynthesized(t *testing.T) {
	e := NewCExtractor()
	src := "int f(int, char) {\n    return 0;\n}\n"
	file, err := e.Process(src, "sample.c", options.Default())
	require.NoError(t, err)

	require.Len(t, file.Children, 1)
	fn, ok := file.Children[0].(*ir.Function)
	require.True(t, ok)
	require.Len(t, fn.Parameters, 2)
	assert.Equal(t, "param_0", fn.Parameters[0].Name)
	assert.Equal(t, "param_1", fn.Parameters[1].Name)
}
