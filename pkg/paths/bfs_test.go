package paths

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
)

func TestBFSChainBound(t *testing.T) {
	idx := chain("A", "B", "C", "D", "E")

	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, BFS(idx, "A", "E", WithMaxLen(4)))
	assert.Empty(t, BFS(idx, "A", "E", WithMaxLen(3)))
}

func TestBFSTrivialAndMissing(t *testing.T) {
	idx := chain("A", "B")

	assert.Equal(t, []string{"A"}, BFS(idx, "A", "A"))
	assert.Empty(t, BFS(idx, "B", "A"), "edges are directed")
	assert.Empty(t, BFS(idx, "X", "B"))
}

func TestBFSImplicitCap(t *testing.T) {
	ids := make([]string, 13)
	for i := range ids {
		ids[i] = fmt.Sprintf("N%02d", i)
	}
	idx := chain(ids...)

	assert.Empty(t, BFS(idx, ids[0], ids[12]), "default cap of 10 edges applies")
	assert.Len(t, BFS(idx, ids[0], ids[10]), 11)
	assert.Len(t, BFS(idx, ids[0], ids[12], Unbounded()), 13)
}

func TestBFSShortest(t *testing.T) {
	idx := edges(
		[2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "D"},
		[2]string{"A", "X"}, [2]string{"X", "D"},
	)
	assert.Equal(t, []string{"A", "X", "D"}, BFS(idx, "A", "D"))
}

func TestBFSOnlySigned(t *testing.T) {
	res := interaction.NewResource([]interaction.Record{
		{Source: "A", Target: "D"},
		{Source: "A", Target: "B", Inhibition: true},
		{Source: "B", Target: "D", Stimulation: true, Inhibition: true},
	})
	idx := interaction.NewIndex(res)

	assert.Equal(t, []string{"A", "D"}, BFS(idx, "A", "D"))
	assert.Equal(t, []string{"A", "B", "D"}, BFS(idx, "A", "D", WithOnlySigned(true)),
		"undefined edge is skipped, bimodal is kept")
}
