// Package history keeps immutable snapshots of a network in a branching
// version tree. Several strategies can be explored from one checkpoint and
// later compared or discarded independently.
package history

import (
	"sort"
	"time"

	"github.com/sysbio-curie/Neko-sub000/pkg/network"
)

// Metadata records what produced a state.
type Metadata struct {
	Method    string         `json:"method,omitempty"`
	Args      map[string]any `json:"args,omitempty"`
	Label     string         `json:"label,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// State is one checkpoint. Values handed out by a Tree are copies; mutating
// them does not affect the tree.
type State struct {
	ID       string           `json:"id"`
	Seq      int              `json:"seq"`
	Snapshot network.Snapshot `json:"snapshot"`
	Metadata Metadata         `json:"metadata"`
	ParentID string           `json:"parent_id,omitempty"`
	ChildIDs []string         `json:"child_ids,omitempty"`
}

func (s *State) clone() State {
	c := *s
	c.Snapshot = cloneSnapshot(s.Snapshot)
	c.ChildIDs = append([]string(nil), s.ChildIDs...)
	c.Metadata.Args = copyArgs(s.Metadata.Args)
	return c
}

func copyArgs(args map[string]any) map[string]any {
	if args == nil {
		return nil
	}
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	return out
}

func cloneSnapshot(s network.Snapshot) network.Snapshot {
	c := network.Snapshot{
		Nodes: append([]network.Node(nil), s.Nodes...),
		Edges: make([]network.Edge, len(s.Edges)),
	}
	for i, e := range s.Edges {
		e.References = append([]string(nil), e.References...)
		e.Provenance = append([]string(nil), e.Provenance...)
		c.Edges[i] = e
	}
	return c
}

// Diff holds the set differences between two states, from a to b.
type Diff struct {
	AddedNodes   []string          `json:"added_nodes"`
	RemovedNodes []string          `json:"removed_nodes"`
	AddedEdges   []network.EdgeKey `json:"added_edges"`
	RemovedEdges []network.EdgeKey `json:"removed_edges"`
	// ProvenanceChanged lists edges present in both states whose provenance
	// differs.
	ProvenanceChanged []network.EdgeKey `json:"provenance_changed,omitempty"`
}

// Empty reports whether the two states hold the same tables.
func (d Diff) Empty() bool {
	return len(d.AddedNodes) == 0 && len(d.RemovedNodes) == 0 &&
		len(d.AddedEdges) == 0 && len(d.RemovedEdges) == 0 &&
		len(d.ProvenanceChanged) == 0
}

// SameTables reports whether two snapshots hold the same nodes and edges,
// ignoring order.
func SameTables(a, b network.Snapshot) bool {
	return diff(a, b).Empty()
}

func diff(a, b network.Snapshot) Diff {
	var d Diff

	nodesA := make(map[string]bool, len(a.Nodes))
	for _, n := range a.Nodes {
		nodesA[n.ID] = true
	}
	nodesB := make(map[string]bool, len(b.Nodes))
	for _, n := range b.Nodes {
		nodesB[n.ID] = true
		if !nodesA[n.ID] {
			d.AddedNodes = append(d.AddedNodes, n.ID)
		}
	}
	for _, n := range a.Nodes {
		if !nodesB[n.ID] {
			d.RemovedNodes = append(d.RemovedNodes, n.ID)
		}
	}

	edgesA := make(map[network.EdgeKey]network.Edge, len(a.Edges))
	for _, e := range a.Edges {
		edgesA[e.Key()] = e
	}
	edgesB := make(map[network.EdgeKey]bool, len(b.Edges))
	for _, e := range b.Edges {
		k := e.Key()
		edgesB[k] = true
		old, ok := edgesA[k]
		switch {
		case !ok:
			d.AddedEdges = append(d.AddedEdges, k)
		case !sameSet(old.Provenance, e.Provenance):
			d.ProvenanceChanged = append(d.ProvenanceChanged, k)
		}
	}
	for _, e := range a.Edges {
		if !edgesB[e.Key()] {
			d.RemovedEdges = append(d.RemovedEdges, e.Key())
		}
	}

	sort.Strings(d.AddedNodes)
	sort.Strings(d.RemovedNodes)
	sortKeys(d.AddedEdges)
	sortKeys(d.RemovedEdges)
	sortKeys(d.ProvenanceChanged)
	return d
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if !seen[s] {
			return false
		}
	}
	return true
}

func sortKeys(keys []network.EdgeKey) {
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		return a.Effect < b.Effect
	})
}
