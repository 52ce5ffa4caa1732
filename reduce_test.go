package mosaic

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceUnchanged(t *testing.T) {
	p, err := NewPalette([]Entry{{"black", black}, {"white", white}})
	require.NoError(t, err)

	assert.Same(t, p, p.Reduce(0))
	assert.Same(t, p, p.Reduce(-1))
	assert.Same(t, p, p.Reduce(2))
	assert.Same(t, p, p.Reduce(10))
}

func TestReduce(t *testing.T) {
	var entries []Entry
	for i := 0; i < 4; i++ {
		v := float32(i) / 100
		entries = append(entries, Entry{fmt.Sprintf("red%d", i), Color{1 - v, v, v, 1}})
		entries = append(entries, Entry{fmt.Sprintf("blue%d", i), Color{v, v, 1 - v, 1}})
	}

	p, err := NewPalette(entries)
	require.NoError(t, err)

	r := p.Reduce(2)
	require.NotNil(t, r)
	assert.GreaterOrEqual(t, r.Len(), 1)
	assert.LessOrEqual(t, r.Len(), 2)

	// Reduced entries are a subsequence of the original
	j := 0
	for _, e := range r.Entries() {
		for j < len(entries) && entries[j] != e {
			j++
		}
		require.Less(t, j, len(entries), "entry %q out of order", e.Ref)
		j++
	}
}
