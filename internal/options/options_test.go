package options

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	o := Default()
	assert.True(t, o.IncludePublic)
	assert.False(t, o.IncludeProtected)
	assert.False(t, o.IncludeInternal)
	assert.False(t, o.IncludePrivate)

	assert.False(t, o.IncludeComments)
	assert.True(t, o.IncludeDocstrings)
	assert.False(t, o.IncludeImplementation)
	assert.True(t, o.IncludeImports)
	assert.True(t, o.IncludeAnnotations)
	assert.True(t, o.IncludeFields)
	assert.True(t, o.IncludeMethods)

	assert.False(t, o.RawMode)
	assert.Equal(t, 0, o.Workers)
	assert.True(t, o.Recursive)
	assert.Equal(t, PathRelative, o.FilePathType)
	assert.False(t, o.ContinueOnError)
}

func TestWorkerCount_ExplicitOverridesAuto(t *testing.T) {
	o := Default()
	o.Workers = 3
	assert.Equal(t, 3, o.WorkerCount())
}

func TestWorkerCount_ZeroDerivesFromCPUs(t *testing.T) {
	o := Default()
	o.Workers = 0
	want := runtime.NumCPU() * 4 / 5
	if want < 1 {
		want = 1
	}
	assert.Equal(t, want, o.WorkerCount())
}

func TestHasVisibilityFilters(t *testing.T) {
	cases := []struct {
		name string
		opts ProcessOptions
		want bool
	}{
		{"default public-only is trivial", Default(), false},
		{"public disabled is non-trivial", ProcessOptions{IncludePublic: false}, true},
		{"protected enabled is non-trivial", ProcessOptions{IncludePublic: true, IncludeProtected: true}, true},
		{"internal enabled is non-trivial", ProcessOptions{IncludePublic: true, IncludeInternal: true}, true},
		{"private enabled is non-trivial", ProcessOptions{IncludePublic: true, IncludePrivate: true}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.opts.HasVisibilityFilters())
		})
	}
}

func TestShouldStripContent(t *testing.T) {
	t.Run("raw mode never strips", func(t *testing.T) {
		o := ProcessOptions{RawMode: true, IncludePublic: false}
		assert.False(t, o.ShouldStripContent())
	})
	t.Run("default strips because implementation is excluded", func(t *testing.T) {
		assert.True(t, Default().ShouldStripContent())
	})
	t.Run("comments excluded by default also strips", func(t *testing.T) {
		o := Default()
		o.IncludeImplementation = true
		assert.True(t, o.ShouldStripContent())
	})
	t.Run("nothing to strip when everything included and public-only", func(t *testing.T) {
		o := Default()
		o.IncludeComments = true
		o.IncludeImplementation = true
		assert.False(t, o.ShouldStripContent())
	})
}

func TestIsVisibilityEnabled(t *testing.T) {
	o := ProcessOptions{IncludePublic: true, IncludeProtected: true}
	assert.True(t, o.IsVisibilityEnabled("public"))
	assert.True(t, o.IsVisibilityEnabled("protected"))
	assert.False(t, o.IsVisibilityEnabled("internal"))
	assert.False(t, o.IsVisibilityEnabled("private"))
	assert.False(t, o.IsVisibilityEnabled("bogus"))
}

func TestBuilder_ChainsAndBuilds(t *testing.T) {
	o := NewBuilder().
		IncludePrivate(true).
		IncludeImplementation(true).
		Workers(4).
		FilePathType(PathAbsolute).
		BasePath("/srv/repo").
		IncludePatterns([]string{"*.go"}).
		ExcludePatterns([]string{"*_test.go"}).
		ContinueOnError(true).
		Build()

	assert.True(t, o.IncludePrivate)
	assert.True(t, o.IncludeImplementation)
	assert.Equal(t, 4, o.Workers)
	assert.Equal(t, PathAbsolute, o.FilePathType)
	assert.Equal(t, "/srv/repo", o.BasePath)
	assert.Equal(t, []string{"*.go"}, o.IncludePatterns)
	assert.Equal(t, []string{"*_test.go"}, o.ExcludePatterns)
	assert.True(t, o.ContinueOnError)

	// Fields untouched by the chain still carry Default()'s values.
	assert.True(t, o.IncludePublic)
	assert.True(t, o.IncludeDocstrings)
}
