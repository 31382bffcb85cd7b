package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/langs"
	"github.com/standardbeagle/distil/internal/options"
)

// TestMain verifies the errgroup-based worker pool leaves no goroutines
// running once ProcessDirectory returns, across every test in this
// package.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func fileNames(dir *ir.Directory) []string {
	out := make([]string, 0, len(dir.Children))
	for _, c := range dir.Children {
		if f, ok := c.(*ir.File); ok {
			out = append(out, f.Path)
		}
	}
	return out
}

func TestProcessDirectory_RejectsNonDirectoryRoot(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	p := New(langs.NewDefaultRegistry())
	_, err := p.ProcessDirectory(context.Background(), file, options.Default())
	require.Error(t, err)
}

func TestProcessDirectory_CollectsAndSortsByDiscoveryIndex(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.go":     "package a\n\nfunc A() {}\n",
		"b.go":     "package a\n\nfunc B() {}\n",
		"sub/c.go": "package a\n\nfunc C() {}\n",
	})

	p := New(langs.NewDefaultRegistry())
	opts := options.Default()
	opts.IncludeImplementation = true

	dir, err := p.ProcessDirectory(context.Background(), root, opts)
	require.NoError(t, err)
	assert.Len(t, dir.Children, 3)
}

func TestProcessDirectory_ParallelEquivalence(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{}
	for i := 0; i < 12; i++ {
		name := filepath.Join("pkg", string(rune('a'+i))+".go")
		files[name] = "package pkg\n\nfunc F() {}\n"
	}
	writeFiles(t, root, files)

	opts := options.Default()

	var first []string
	for w := 1; w <= 4; w++ {
		opts.Workers = w
		p := New(langs.NewDefaultRegistry())
		dir, err := p.ProcessDirectory(context.Background(), root, opts)
		require.NoError(t, err)
		names := fileNames(dir)
		if first == nil {
			first = names
		} else {
			assert.Equal(t, first, names, "pipeline output order must not depend on worker count")
		}
	}
}

func TestProcessDirectory_ContinueOnErrorSkipsUnsupported(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a.go":        "package a\n\nfunc A() {}\n",
		"data.binary": "\x00\x01\x02",
	})

	opts := options.Default()
	opts.ContinueOnError = true

	p := New(langs.NewDefaultRegistry())
	dir, err := p.ProcessDirectory(context.Background(), root, opts)
	require.NoError(t, err)
	names := fileNames(dir)
	assert.Len(t, names, 1)
}

func TestProcessFile_AppliesStripper(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.go")
	require.NoError(t, os.WriteFile(path, []byte("package a\n\nfunc A() { return }\n"), 0o644))

	p := New(langs.NewDefaultRegistry())
	opts := options.Default()
	opts.IncludeImplementation = false

	file, err := p.ProcessFile(path, opts)
	require.NoError(t, err)
	require.NotNil(t, file)
	for _, c := range file.Children {
		if fn, ok := c.(*ir.Function); ok {
			assert.Nil(t, fn.Implementation)
		}
	}
}
