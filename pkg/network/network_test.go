package network

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
)

func testResource() *interaction.Resource {
	return interaction.NewResource([]interaction.Record{
		{Source: "P1", Target: "P2", Directed: true, Stimulation: true, References: []string{"PMID:1"}},
		{Source: "P1", Target: "P2", Directed: true, Stimulation: true, References: []string{"PMID:9"}},
		{Source: "P2", Target: "P3", Directed: true, Inhibition: true, References: []string{"PMID:2"}},
		{Source: "P3", Target: "P4", Directed: true},
		{Source: "P4", Target: "P1", Directed: true, Stimulation: true, Inhibition: true},
	})
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestNewDropsUnknownSeeds(t *testing.T) {
	n := New(testResource(), WithSeeds("P1", "P3", "GHOST", "P1"), WithLogger(quietLogger()))

	assert.Equal(t, []string{"P1", "P3"}, n.Seeds())
	assert.Equal(t, []string{"P1", "P3"}, n.NodeIDs())
	assert.True(t, n.IsSeed("P3"))
	assert.False(t, n.HasNode("GHOST"))
}

func TestAddEdgeIdempotent(t *testing.T) {
	n := New(testResource(), WithLogger(quietLogger()))

	rec := interaction.Record{Source: "A", Target: "B", Stimulation: true, References: []string{"PMID:1"}}
	_, ok := n.AddEdge(rec)
	require.True(t, ok)
	rec.References = []string{"PMID:2", "PMID:1"}
	k, ok := n.AddEdge(rec)
	require.True(t, ok)

	require.Equal(t, 1, n.EdgeCount())
	e, _ := n.Edge(k)
	assert.Equal(t, []string{"PMID:1", "PMID:2"}, e.References)
	assert.ElementsMatch(t, []string{"A", "B"}, n.NodeIDs(), "endpoints are created lazily")
}

func TestAddEdgeDistinctEffects(t *testing.T) {
	n := New(testResource(), WithLogger(quietLogger()))

	n.AddEdge(interaction.Record{Source: "A", Target: "B", Stimulation: true})
	n.AddEdge(interaction.Record{Source: "A", Target: "B", Inhibition: true})
	assert.Equal(t, 2, n.EdgeCount())
	assert.Equal(t, 2, n.OutDegree("A"))

	assert.True(t, n.RemoveEdge("A", "B"))
	assert.Zero(t, n.EdgeCount())
	assert.False(t, n.RemoveEdge("A", "B"))
}

func TestRemoveNodeCascades(t *testing.T) {
	n := New(testResource(), WithLogger(quietLogger()))
	n.AddInteraction("P1", "P2", false)
	n.AddInteraction("P2", "P3", false)

	require.True(t, n.RemoveNode("P2"))
	assert.Zero(t, n.EdgeCount())
	assert.Zero(t, n.OutDegree("P1"))
	assert.ElementsMatch(t, []string{"P1", "P3"}, n.NodeIDs())
	assert.False(t, n.RemoveNode("P2"))
}

func TestAddInteraction(t *testing.T) {
	n := New(testResource(), WithLogger(quietLogger()))

	require.True(t, n.AddInteraction("P1", "P2", false, "connect_nodes"))
	e, ok := n.Edge(EdgeKey{Source: "P1", Target: "P2", Effect: interaction.EffectStimulation})
	require.True(t, ok)
	assert.Equal(t, []string{"PMID:1", "PMID:9"}, e.References, "references merge across rows")
	assert.Equal(t, []string{"connect_nodes"}, n.EdgeProvenance("P1", "P2"))

	assert.False(t, n.AddInteraction("P3", "P1", false))
	assert.Equal(t, 1, n.EdgeCount())
}

func TestAddPathSkipsExisting(t *testing.T) {
	n := New(testResource(), WithLogger(quietLogger()))
	n.AddInteraction("P1", "P2", false)

	added := n.AddPath([]string{"P1", "P2", "P3", "P4"}, false, "test")
	assert.Equal(t, 2, added)
	assert.Equal(t, 3, n.EdgeCount())
	assert.Len(t, n.FilterByProvenance("test"), 2)

	assert.Equal(t, 2, n.RemovePath([]string{"P2", "P3", "P4"}))
	assert.Equal(t, 1, n.EdgeCount())
}

func TestRemoveByEffect(t *testing.T) {
	n := New(testResource(), WithLogger(quietLogger()))
	n.AddInteraction("P3", "P4", false)
	n.AddInteraction("P4", "P1", false)
	n.AddInteraction("P1", "P2", false)

	assert.Equal(t, 1, n.RemoveUndefined())
	assert.Equal(t, 1, n.RemoveBimodal())
	assert.Equal(t, 1, n.EdgeCount())

	removed := n.RemoveDisconnected()
	assert.ElementsMatch(t, []string{"P3", "P4"}, removed)
}

func TestCheckNodeExistence(t *testing.T) {
	n := New(testResource(), WithLogger(quietLogger()))

	assert.True(t, n.CheckNodeExistence("P4"))
	assert.False(t, n.CheckNodeExistence("P9"))
	assert.False(t, n.HasNode("P4"), "existence is checked against the resource only")
	assert.Equal(t, []string{"P1", "P3"}, n.CheckNodes([]string{"P1", "X", "P3"}))
	assert.False(t, n.AddNode("X"))
}

func TestIsConnected(t *testing.T) {
	n := New(testResource(), WithSeeds("P1", "P3"), WithLogger(quietLogger()))
	assert.False(t, n.IsConnected())

	n.AddPath([]string{"P1", "P2", "P3"}, false)
	assert.True(t, n.IsConnected())
}

func TestRenameNode(t *testing.T) {
	n := New(testResource(), WithSeeds("P1"), WithLogger(quietLogger()))
	n.AddInteraction("P1", "P2", false)

	require.NoError(t, n.RenameNode("P1", "TP53"))
	assert.True(t, n.HasEdge("TP53", "P2"))
	assert.False(t, n.HasNode("P1"))
	assert.Equal(t, []string{"TP53"}, n.Seeds())

	assert.ErrorIs(t, n.RenameNode("missing", "x"), ErrNodeNotFound)
	assert.ErrorIs(t, n.RenameNode("TP53", "P2"), ErrNodeExists)
}

func TestSnapshotRestore(t *testing.T) {
	n := New(testResource(), WithLogger(quietLogger()))
	n.AddInteraction("P1", "P2", false)
	snap := n.Snapshot()

	n.AddInteraction("P2", "P3", false)
	n.RemoveNode("P1")
	n.Restore(snap)

	assert.Equal(t, []string{"P1", "P2"}, n.NodeIDs())
	assert.Equal(t, 1, n.EdgeCount())
	assert.True(t, n.HasEdge("P1", "P2"))

	// The snapshot must not alias live state.
	n.AddInteraction("P2", "P3", false)
	assert.Len(t, snap.Edges, 1)
}

func TestLiveIndex(t *testing.T) {
	n := New(testResource(), WithLogger(quietLogger()))
	n.AddPath([]string{"P1", "P2", "P3"}, false)

	idx := n.LiveIndex()
	assert.Equal(t, []string{"P2"}, idx.Neighbours("P1", interaction.Out))
	assert.Equal(t, interaction.EffectInhibition, idx.Effect("P2", "P3", false))
	assert.False(t, idx.Has("P3", "P4"))
}

func TestCompaction(t *testing.T) {
	n := New(testResource(), WithLogger(quietLogger()))
	for i := 0; i < 5; i++ {
		n.AddInteraction("P1", "P2", false)
		n.AddInteraction("P2", "P3", false)
		n.RemoveEdge("P1", "P2")
		n.RemoveEdge("P2", "P3")
	}
	n.AddInteraction("P2", "P3", false)

	assert.Equal(t, 1, n.EdgeCount())
	assert.Len(t, n.Edges(), 1)
	assert.LessOrEqual(t, len(n.edges), 3)
}

func TestTranslatorPolicies(t *testing.T) {
	tr := TranslatorFunc(func(id string) Translation {
		switch id {
		case "TP53":
			return Translation{Canonical: "P04637", Label: "TP53"}
		case "COMPLEX:P1_P2":
			return Translation{Complex: "P1_P2", Canonical: "COMPLEX:P1_P2"}
		}
		return Translation{}
	})
	res := interaction.NewResource([]interaction.Record{
		{Source: "P04637", Target: "COMPLEX:P1_P2", Stimulation: true},
	})

	keep := New(res, WithTranslator(tr), WithSeeds("TP53"), WithLogger(quietLogger()))
	assert.Equal(t, []string{"P04637"}, keep.Seeds())
	node, _ := keep.Node("P04637")
	assert.Equal(t, "TP53", node.Label)

	keep.AddInteraction("P04637", "COMPLEX:P1_P2", false)
	cx, _ := keep.Node("COMPLEX:P1_P2")
	assert.Equal(t, "complex", cx.Kind)

	_, ok := keep.Insert(Edge{Source: "raw", Target: "P04637", Effect: interaction.EffectStimulation})
	assert.True(t, ok, "unresolvable ids are kept verbatim by default")

	strict := New(res, WithTranslator(tr), WithUnresolved(Reject), WithLogger(quietLogger()))
	_, ok = strict.Insert(Edge{Source: "raw", Target: "P04637"})
	assert.False(t, ok)
	assert.Zero(t, strict.NodeCount())
}

func TestFromSIF(t *testing.T) {
	const sif = `# Reference PMID: PMID:1
P1	->	P2
P2	-|	P3
P3	phosphorylate	P4
LONELY
`
	var logs bytes.Buffer
	n, err := FromSIF(strings.NewReader(sif), testResource(), WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	require.NoError(t, err)

	assert.Equal(t, []string{"P1", "P2", "P3", "P4", "LONELY"}, n.Seeds())
	assert.True(t, n.HasEdgeKey(EdgeKey{Source: "P2", Target: "P3", Effect: interaction.EffectInhibition}))
	assert.True(t, n.HasEdgeKey(EdgeKey{Source: "P3", Target: "P4", Effect: interaction.EffectUndefined}))
	assert.Contains(t, logs.String(), "unknown SIF interaction")

	e, _ := n.Edge(EdgeKey{Source: "P1", Target: "P2", Effect: interaction.EffectStimulation})
	assert.Equal(t, []string{"PMID:1", "PMID:9"}, e.References)
}

func TestCompare(t *testing.T) {
	load := func(sif string) *Network {
		n, err := FromSIF(strings.NewReader(sif), testResource(), WithLogger(quietLogger()))
		require.NoError(t, err)
		return n
	}
	first := load("P1\t->\tP2\nP2\t-|\tP3\nP3\t->\tP4\n")
	second := load("P1\t->\tP2\nP2\t->\tP3\nP4\t->\tP1\nLONELY\n")

	c := Compare(first, second)
	assert.Equal(t, []PairComparison{
		{Source: "P1", Target: "P2", Category: Common, First: []interaction.Effect{interaction.EffectStimulation}, Second: []interaction.Effect{interaction.EffectStimulation}},
		{Source: "P2", Target: "P3", Category: Conflicting, First: []interaction.Effect{interaction.EffectInhibition}, Second: []interaction.Effect{interaction.EffectStimulation}},
		{Source: "P3", Target: "P4", Category: UniqueToFirst, First: []interaction.Effect{interaction.EffectStimulation}},
		{Source: "P4", Target: "P1", Category: UniqueToSecond, Second: []interaction.Effect{interaction.EffectStimulation}},
	}, c.Interactions)
	assert.Equal(t, 1, c.Count(Conflicting))

	assert.Equal(t, []NodeComparison{
		{ID: "LONELY", Category: UniqueToSecond},
		{ID: "P1", Category: Common},
		{ID: "P2", Category: Common},
		{ID: "P3", Category: Common},
		{ID: "P4", Category: Common},
	}, c.Nodes)

	same := Compare(first, first)
	assert.Equal(t, len(same.Interactions), same.Count(Common))
}

func TestCompareEffectSets(t *testing.T) {
	a := Snapshot{
		Nodes: []Node{{ID: "A"}, {ID: "B"}},
		Edges: []Edge{
			{Source: "A", Target: "B", Effect: interaction.EffectStimulation},
			{Source: "A", Target: "B", Effect: interaction.EffectInhibition},
		},
	}
	b := Snapshot{
		Nodes: []Node{{ID: "B"}, {ID: "A"}, {ID: "C"}},
		Edges: []Edge{{Source: "A", Target: "B", Effect: interaction.EffectStimulation}},
	}

	c := CompareSnapshots(a, b)
	require.Len(t, c.Interactions, 1)
	assert.Equal(t, Conflicting, c.Interactions[0].Category)
	assert.Equal(t, []interaction.Effect{interaction.EffectInhibition, interaction.EffectStimulation}, c.Interactions[0].First)
	assert.Equal(t, "conflicting", c.Interactions[0].Category.String())

	c = CompareSnapshots(b, a)
	assert.Equal(t, []NodeComparison{{ID: "A", Category: Common}, {ID: "B", Category: Common}, {ID: "C", Category: UniqueToFirst}}, c.Nodes)
}
