package langs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/options"
)

const rubySample = `
class Greeter
  def hello
    "hi"
  end

  private

  def secret
    "shh"
  end

  def self.build
    new
  end
end

module Helpers
end
`

func TestRubyExtractor_CanProcess(t *testing.T) {
	e := NewRubyExtractor()
	assert.True(t, e.CanProcess("app.rb"))
	assert.True(t, e.CanProcess("Rakefile"))
	assert.True(t, e.CanProcess("Gemfile"))
	assert.False(t, e.CanProcess("app.py"))
}

func TestRubyExtractor_ModuleDecorator(t *testing.T) {
	e := NewRubyExtractor()
	file, err := e.Process(rubySample, "sample.rb", options.Default())
	require.NoError(t, err)

	var helpers *ir.Class
	for _, c := range file.Children {
		if class, ok := c.(*ir.Class); ok && class.Name == "Helpers" {
			helpers = class
		}
	}
	require.NotNil(t, helpers)
	assert.Contains(t, helpers.Decorators, "module")
}

func TestRubyExtractor_VisibilityRegionAppliesToSubsequentMethods(t *testing.T) {
	e := NewRubyExtractor()
	file, err := e.Process(rubySample, "sample.rb", options.Default())
	require.NoError(t, err)

	var greeter *ir.Class
	for _, c := range file.Children {
		if class, ok := c.(*ir.Class); ok && class.Name == "Greeter" {
			greeter = class
		}
	}
	require.NotNil(t, greeter)

	var hello, secret, build *ir.Function
	for _, c := range greeter.Children {
		if fn, ok := c.(*ir.Function); ok {
			switch fn.Name {
			case "hello":
				hello = fn
			case "secret":
				secret = fn
			case "build":
				build = fn
			}
		}
	}
	require.NotNil(t, hello)
	assert.Equal(t, ir.Public, hello.Visibility, "before any region marker, methods default to public")

	require.NotNil(t, secret)
	assert.Equal(t, ir.Private, secret.Visibility, "after `private`, subsequent methods are private")

	require.NotNil(t, build)
	assert.Contains(t, build.Modifiers, ir.ModStatic, "def self.x is captured as a class-level function")
}
