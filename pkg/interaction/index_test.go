package interaction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stim(src, tgt string) Record {
	return Record{Source: src, Target: tgt, Directed: true, Stimulation: true}
}

func TestIndexNeighbours(t *testing.T) {
	res := NewResource([]Record{
		stim("A", "C"),
		stim("A", "B"),
		stim("D", "A"),
		stim("A", "B"), // second evidence row for the same pair
	})
	idx := NewIndex(res)

	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, []string{"B", "C"}, idx.Neighbours("A", Out))
	assert.Equal(t, []string{"D"}, idx.Neighbours("A", In))
	assert.Equal(t, []string{"B", "C", "D"}, idx.Neighbours("A", Both))
	assert.Empty(t, idx.Neighbours("missing", Both))
	assert.True(t, idx.Contains("D"))
	assert.False(t, idx.Contains("Z"))
}

func TestIndexSignCache(t *testing.T) {
	res := NewResource([]Record{
		{Source: "A", Target: "B", Inhibition: true},
		{Source: "B", Target: "C"},
		{Source: "C", Target: "D", Stimulation: true, HasConsensus: true},
	})
	idx := NewIndex(res)

	assert.True(t, idx.IsSigned("A", "B", false))
	assert.True(t, idx.IsSigned("A", "B", true), "consensus defaults to plain flags")
	assert.False(t, idx.IsSigned("B", "C", false))
	assert.False(t, idx.IsSigned("A", "Z", false), "absent pair is unsigned")
	assert.False(t, idx.IsSigned("C", "D", true), "explicit consensus columns are honoured")
	assert.Equal(t, EffectInhibition, idx.Effect("A", "B", false))
	assert.Equal(t, EffectUndefined, idx.Effect("B", "A", false))
}

func TestIndexSelfLoop(t *testing.T) {
	idx := NewIndex(NewResource([]Record{stim("A", "A")}))
	assert.Equal(t, []string{"A"}, idx.Neighbours("A", Both))
	assert.True(t, idx.Has("A", "A"))
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"out": Out, "IN": In, "all": Both, "Both": Both} {
		got, err := ParseDirection(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseDirection("sideways")
	assert.True(t, errors.Is(err, ErrUnknownDirection))
	assert.Equal(t, In, Out.Reverse())
	assert.Equal(t, Both, Both.Reverse())
}
