package parserpool

import (
	"errors"
	"sync"
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadGo() (*tree_sitter.Language, error) {
	return tree_sitter.NewLanguage(tree_sitter_go.Language()), nil
}

func TestPool_AcquireRelease_ReusesInstance(t *testing.T) {
	p := New(2)

	lease1, err := p.Acquire("go", loadGo)
	require.NoError(t, err)
	parser1 := lease1.Parser()
	lease1.Release()

	assert.Equal(t, []LanguageStats{{Language: "go", Available: 1}}, p.Stats())

	lease2, err := p.Acquire("go", loadGo)
	require.NoError(t, err)
	assert.Same(t, parser1, lease2.Parser(), "a released parser should be handed back out on the next acquire")
	lease2.Release()
}

func TestPool_CapEnforced(t *testing.T) {
	p := New(1)

	l1, err := p.Acquire("go", loadGo)
	require.NoError(t, err)
	l2, err := p.Acquire("go", loadGo)
	require.NoError(t, err)

	l1.Release()
	l2.Release()

	stats := p.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Available, "cap of 1 must not grow past one cached parser")
}

func TestPool_New_CapBelowOneRaisedToOne(t *testing.T) {
	p := New(0)
	assert.Equal(t, 1, p.maxPerL)
}

func TestPool_ReleaseIdempotent(t *testing.T) {
	p := New(4)
	lease, err := p.Acquire("go", loadGo)
	require.NoError(t, err)

	lease.Release()
	lease.Release()

	assert.Equal(t, []LanguageStats{{Language: "go", Available: 1}}, p.Stats())
}

func TestPool_LoaderError_PropagatesAsParseError(t *testing.T) {
	p := New(4)
	boom := errors.New("grammar table missing")
	_, err := p.Acquire("cobol", func() (*tree_sitter.Language, error) {
		return nil, boom
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cobol")
}

func TestPool_ConcurrentAcquireRelease(t *testing.T) {
	p := Default()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lease, err := p.Acquire("go", loadGo)
			require.NoError(t, err)
			defer lease.Release()
			lease.Parser().Reset()
		}()
	}
	wg.Wait()

	stats := p.Stats()
	require.Len(t, stats, 1)
	assert.LessOrEqual(t, stats[0].Available, DefaultCap)
}
