package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
	"github.com/sysbio-curie/Neko-sub000/pkg/network"
	"github.com/sysbio-curie/Neko-sub000/pkg/storage"
)

func testNetwork() *network.Network {
	res := interaction.NewResource([]interaction.Record{
		{Source: "A", Target: "B", Directed: true, Stimulation: true},
		{Source: "B", Target: "C", Directed: true, Inhibition: true},
		{Source: "X", Target: "A", Directed: true, Stimulation: true},
	})
	return network.New(res, network.WithSeeds("A", "B"))
}

func fixedClock() func() time.Time {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestUndoRoundTrip(t *testing.T) {
	net := testNetwork()
	tree := NewTree(WithClock(fixedClock()))

	tree.Save(net.Snapshot(), Metadata{Method: "init"})
	before := net.NodeIDs()
	require.True(t, net.AddNode("X"))
	tree.Save(net.Snapshot(), Metadata{Method: "add_node", Args: map[string]any{"id": "X"}})

	prev, ok := tree.Undo()
	require.True(t, ok)
	net.Restore(prev.Snapshot)
	assert.Equal(t, before, net.NodeIDs())

	_, ok = tree.Undo()
	assert.False(t, ok, "root has no parent")
}

func TestRedoFollowsMostRecentChild(t *testing.T) {
	net := testNetwork()
	tree := NewTree()

	root := tree.Save(net.Snapshot(), Metadata{Method: "init"})
	net.AddInteraction("A", "B", false)
	tree.Save(net.Snapshot(), Metadata{Method: "first"})

	_, err := tree.Checkout(root.ID)
	require.NoError(t, err)
	net.Restore(root.Snapshot)
	net.AddNode("C")
	second := tree.Save(net.Snapshot(), Metadata{Method: "second"})

	children, err := tree.Children(root.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, "first", children[0].Metadata.Method)

	tree.Undo()
	redo, ok := tree.Redo()
	require.True(t, ok)
	assert.Equal(t, second.ID, redo.ID)

	_, ok = tree.Redo()
	assert.False(t, ok)
}

func TestCompare(t *testing.T) {
	net := testNetwork()
	tree := NewTree()

	a := tree.Save(net.Snapshot(), Metadata{})
	net.AddInteraction("A", "B", false, "connect_nodes")
	net.AddInteraction("B", "C", false)
	b := tree.Save(net.Snapshot(), Metadata{})

	d, err := tree.Compare(a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, d.AddedNodes)
	assert.Empty(t, d.RemovedNodes)
	assert.Equal(t, []network.EdgeKey{
		{Source: "A", Target: "B", Effect: interaction.EffectStimulation},
		{Source: "B", Target: "C", Effect: interaction.EffectInhibition},
	}, d.AddedEdges)

	back, err := tree.Compare(b.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, back.RemovedNodes)
	assert.Len(t, back.RemovedEdges, 2)

	net.AddInteraction("A", "B", false, "complete_connection")
	c := tree.Save(net.Snapshot(), Metadata{})
	d, err = tree.Compare(b.ID, c.ID)
	require.NoError(t, err)
	assert.Len(t, d.ProvenanceChanged, 1)

	same, err := tree.Compare(a.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, same.Empty())

	_, err = tree.Compare(a.ID, "missing")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestStatesAreImmutable(t *testing.T) {
	net := testNetwork()
	tree := NewTree()
	args := map[string]any{"maxlen": 2}

	s := tree.Save(net.Snapshot(), Metadata{Method: "grow", Args: args})
	args["maxlen"] = 9
	s.Snapshot.Nodes[0].ID = "mutated"

	got, err := tree.State(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Snapshot.Nodes[0].ID)
	assert.Equal(t, 2, got.Metadata.Args["maxlen"])
}

func TestPruneKeepsRootAndCurrent(t *testing.T) {
	net := testNetwork()
	tree := NewTree(WithMaxStates(3))

	root := tree.Save(net.Snapshot(), Metadata{Method: "init"})
	var last State
	for i := 0; i < 3; i++ {
		_, err := tree.Checkout(root.ID)
		require.NoError(t, err)
		last = tree.Save(net.Snapshot(), Metadata{Method: fmt.Sprintf("branch%d", i)})
	}

	assert.Equal(t, 3, tree.Len())
	r, _ := tree.Root()
	cur, _ := tree.Current()
	assert.Equal(t, root.ID, r.ID)
	assert.Equal(t, last.ID, cur.ID)

	var methods []string
	for _, s := range tree.List() {
		methods = append(methods, s.Metadata.Method)
	}
	assert.Equal(t, []string{"init", "branch1", "branch2"}, methods)
}

func TestPruneBoundsLinearHistory(t *testing.T) {
	net := testNetwork()
	tree := NewTree(WithMaxStates(3))

	root := tree.Save(net.Snapshot(), Metadata{Method: "init"})
	var created []State
	for _, id := range []string{"X", "C"} {
		net.AddNode(id)
		created = append(created, tree.Save(net.Snapshot(), Metadata{Method: "add_node", Args: map[string]any{"id": id}}))
	}
	net.AddInteraction("A", "B", false)
	created = append(created, tree.Save(net.Snapshot(), Metadata{Method: "connect_nodes"}))
	net.AddInteraction("X", "A", false)
	last := tree.Save(net.Snapshot(), Metadata{Method: "connect_nodes"})

	assert.LessOrEqual(t, tree.Len(), 3)
	list := tree.List()
	assert.Equal(t, root.ID, list[0].ID)
	cur, ok := tree.Current()
	require.True(t, ok)
	assert.Equal(t, last.ID, cur.ID)

	retained := make(map[string]bool)
	for _, s := range list {
		retained[s.ID] = true
	}
	assert.False(t, retained[created[0].ID], "oldest interior state is pruned")

	steps := 0
	for {
		s, ok := tree.Undo()
		if !ok {
			break
		}
		require.True(t, retained[s.ID])
		steps++
	}
	r, _ := tree.Current()
	assert.Equal(t, root.ID, r.ID)
	assert.Equal(t, tree.Len()-1, steps)

	children, err := tree.Children(root.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, root.ID, children[0].ParentID)
}

func TestSetMaxStatesPrunesInterior(t *testing.T) {
	net := testNetwork()
	tree := NewTree()
	for i := 0; i < 5; i++ {
		tree.Save(net.Snapshot(), Metadata{Method: fmt.Sprintf("step%d", i)})
	}
	tree.SetMaxStates(2)

	var methods []string
	for _, s := range tree.List() {
		methods = append(methods, s.Metadata.Method)
	}
	assert.Equal(t, []string{"step0", "step4"}, methods)
	prev, ok := tree.Undo()
	require.True(t, ok)
	assert.Equal(t, "step0", prev.Metadata.Method)
}

func TestRelabel(t *testing.T) {
	tree := NewTree()
	s := tree.Save(testNetwork().Snapshot(), Metadata{Method: "add_node"})

	got, err := tree.Relabel(s.ID, "checkpoint")
	require.NoError(t, err)
	assert.Equal(t, "checkpoint", got.Metadata.Label)
	assert.Equal(t, "add_node", got.Metadata.Method)

	_, err = tree.Relabel("missing", "x")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestSameTables(t *testing.T) {
	net := testNetwork()
	a := net.Snapshot()
	assert.True(t, SameTables(a, net.Snapshot()))

	net.AddNode("X")
	assert.False(t, SameTables(a, net.Snapshot()))
}

func TestCheckoutUnknown(t *testing.T) {
	tree := NewTree()
	_, err := tree.Checkout("nope")
	assert.ErrorIs(t, err, ErrStateNotFound)
	_, ok := tree.Current()
	assert.False(t, ok)
}

func TestDOT(t *testing.T) {
	net := testNetwork()
	tree := NewTree()
	root := tree.Save(net.Snapshot(), Metadata{Label: "seeds"})
	child := tree.Save(net.Snapshot(), Metadata{Method: "complete_connection", Args: map[string]any{"maxlen": 2, "only_signed": true}})

	dot := tree.DOT()
	assert.Contains(t, dot, fmt.Sprintf("%q -> %q;", root.ID, child.ID))
	assert.Contains(t, dot, `complete_connection(maxlen=2, only_signed=true)`)
	assert.Contains(t, dot, "style=bold")
	assert.Contains(t, dot, `State 1\nseeds`)
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewLocalStore(t.TempDir()))
	net := testNetwork()

	tree := NewTree(WithMaxStates(10))
	root := tree.Save(net.Snapshot(), Metadata{Method: "init"})
	net.AddInteraction("A", "B", false)
	tree.Save(net.Snapshot(), Metadata{Method: "connect_nodes"})
	tree.Undo()

	require.NoError(t, store.Save(ctx, "runs/demo.json", tree))
	loaded, err := store.Load(ctx, "runs/demo.json")
	require.NoError(t, err)

	assert.Equal(t, tree.Len(), loaded.Len())
	cur, ok := loaded.Current()
	require.True(t, ok)
	assert.Equal(t, root.ID, cur.ID)
	redo, ok := loaded.Redo()
	require.True(t, ok)
	assert.Len(t, redo.Snapshot.Edges, 1)

	next := loaded.Save(net.Snapshot(), Metadata{})
	assert.Equal(t, 3, next.Seq)

	_, err = store.Load(ctx, "runs/absent.json")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStoreRejectsCorrupt(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewLocalStore(t.TempDir())
	store := NewStore(blobs)

	require.NoError(t, blobs.Put(ctx, "bad.json", []byte(`{"version":1,"root":"r","current":"r","states":[{"id":"r","parent_id":"ghost"}]}`)))
	_, err := store.Load(ctx, "bad.json")
	assert.ErrorIs(t, err, ErrCorrupt)

	require.NoError(t, blobs.Put(ctx, "old.json", []byte(`{"version":0}`)))
	_, err = store.Load(ctx, "old.json")
	assert.ErrorIs(t, err, ErrCorrupt)
}
