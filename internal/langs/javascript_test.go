package langs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

const jsSample = `
import { readFile } from "fs";

class Animal {
    #name;
    static count = 0;

    speak() {
        return this.#name;
    }

    static async create() {
        return new Animal();
    }
}

const helper = (x) => x + 1;

function greet(name) {
    return "hi " + name;
}
`

func TestJavaScriptExtractor_CanProcess(t *testing.T) {
	e := NewJavaScriptExtractor()
	assert.True(t, e.CanProcess("app.js"))
	assert.True(t, e.CanProcess("app.jsx"))
	assert.False(t, e.CanProcess("app.ts"))
}

func TestJavaScriptExtractor_Import(t *testing.T) {
	e := NewJavaScriptExtractor()
	file, err := e.Process(jsSample, "sample.js", options.Default())
	require.NoError(t, err)

	var imp *ir.Import
	for _, c := range file.Children {
		if i, ok := c.(*ir.Import); ok {
			imp = i
		}
	}
	require.NotNil(t, imp)
	assert.Equal(t, "fs", imp.Module)
	require.Len(t, imp.Symbols, 1)
	assert.Equal(t, "readFile", imp.Symbols[0].Name)
}

func TestJavaScriptExtractor_ClassMembers(t *testing.T) {
	e := NewJavaScriptExtractor()
	file, err := e.Process(jsSample, "sample.js", options.Default())
	require.NoError(t, err)

	var animal *ir.Class
	for _, c := range file.Children {
		if class, ok := c.(*ir.Class); ok && class.Name == "Animal" {
			animal = class
		}
	}
	require.NotNil(t, animal)

	var privateField *ir.Field
	var speak, create *ir.Function
	for _, c := range animal.Children {
		switch v := c.(type) {
		case *ir.Field:
			if v.Name == "#name" {
				privateField = v
			}
		case *ir.Function:
			if v.Name == "speak" {
				speak = v
			}
			if v.Name == "create" {
				create = v
			}
		}
	}
	require.NotNil(t, privateField)
	assert.Equal(t, ir.Private, privateField.Visibility, "#-prefixed fields are private")

	require.NotNil(t, speak)
	assert.Equal(t, ir.Public, speak.Visibility)

	require.NotNil(t, create)
	assert.Contains(t, create.Modifiers, ir.ModStatic)
	assert.Contains(t, create.Modifiers, ir.ModAsync)
}

func TestJavaScriptExtractor_ArrowFunctionBecomesTopLevelFunction(t *testing.T) {
	e := NewJavaScriptExtractor()
	file, err := e.Process(jsSample, "sample.js", options.Default())
	require.NoError(t, err)

	var helper, greet *ir.Function
	for _, c := range file.Children {
		if fn, ok := c.(*ir.Function); ok {
			if fn.Name == "helper" {
				helper = fn
			}
			if fn.Name == "greet" {
				greet = fn
			}
		}
	}
	require.NotNil(t, helper, "const-assigned arrow function promoted to top-level Function")
	require.NotNil(t, greet)
	require.Len(t, greet.Parameters, 1)
	assert.Equal(t, "name", greet.Parameters[0].Name)
}
