package langs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

const goSample = `package sample

import "fmt"

// Widget is a thing with a name.
type Widget struct {
	Name string
	age  int
}

// Greet prints a greeting for w.
func (w Widget) Greet() {
	fmt.Println("hello", w.Name)
}

func unexported() {}
`

func TestGoExtractor_CanProcess(t *testing.T) {
	e := NewGoExtractor()
	assert.True(t, e.CanProcess("main.go"))
	assert.False(t, e.CanProcess("main.py"))
}

func TestGoExtractor_Process_ExtractsStructAndMethod(t *testing.T) {
	e := NewGoExtractor()
	file, err := e.Process(goSample, "sample.go", options.Default())
	require.NoError(t, err)
	require.NotNil(t, file)

	var foundStruct, foundMethod, foundFreeFunc bool
	for _, c := range file.Children {
		switch v := c.(type) {
		case *ir.Class:
			if v.Name == "Widget" {
				foundStruct = true
			}
		case *ir.Function:
			if v.Name == "Greet" {
				foundMethod = true
			}
			if v.Name == "unexported" {
				foundFreeFunc = true
			}
		}
	}
	assert.True(t, foundStruct, "expected Widget struct in IR")
	assert.True(t, foundMethod, "expected Greet method in IR")
	assert.True(t, foundFreeFunc, "expected unexported free function in IR")
}

func TestGoExtractor_Process_MalformedSourceDoesNotPanic(t *testing.T) {
	e := NewGoExtractor()
	assert.NotPanics(t, func() {
		_, _ = e.Process("package sample\nfunc broken( {", "broken.go", options.Default())
	})
}
