package network

import (
	"sort"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
)

// Category classifies a node or an interaction across two networks.
type Category int

const (
	UniqueToFirst Category = iota
	UniqueToSecond
	Common
	// Conflicting marks a pair present in both networks with different
	// effects. Nodes are never conflicting.
	Conflicting
)

func (c Category) String() string {
	switch c {
	case UniqueToFirst:
		return "unique to network 1"
	case UniqueToSecond:
		return "unique to network 2"
	case Common:
		return "common"
	case Conflicting:
		return "conflicting"
	default:
		return "unknown"
	}
}

// PairComparison is the verdict for one (source, target) pair. First and
// Second hold the sorted effects each network carries for the pair.
type PairComparison struct {
	Source   string               `json:"source"`
	Target   string               `json:"target"`
	Category Category             `json:"category"`
	First    []interaction.Effect `json:"first,omitempty"`
	Second   []interaction.Effect `json:"second,omitempty"`
}

// NodeComparison is the verdict for one node.
type NodeComparison struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
}

// Comparison lists every pair and node of two networks, sorted by id.
type Comparison struct {
	Interactions []PairComparison `json:"interactions"`
	Nodes        []NodeComparison `json:"nodes"`
}

// Count returns how many interactions fall into c.
func (c Comparison) Count(cat Category) int {
	n := 0
	for _, p := range c.Interactions {
		if p.Category == cat {
			n++
		}
	}
	return n
}

// Compare classifies the interactions of a and b by (source, target) pair
// and their nodes by id.
func Compare(a, b *Network) Comparison {
	return CompareSnapshots(a.Snapshot(), b.Snapshot())
}

type pair struct{ src, tgt string }

// CompareSnapshots is Compare over captured tables. A pair is common when
// both sides carry the same effect set and conflicting otherwise.
func CompareSnapshots(a, b Snapshot) Comparison {
	first := pairEffects(a)
	second := pairEffects(b)

	var out Comparison
	for p, fx := range first {
		pc := PairComparison{Source: p.src, Target: p.tgt, First: fx, Category: UniqueToFirst}
		if other, ok := second[p]; ok {
			pc.Second = other
			pc.Category = Common
			if !sameEffects(fx, other) {
				pc.Category = Conflicting
			}
		}
		out.Interactions = append(out.Interactions, pc)
	}
	for p, fx := range second {
		if _, ok := first[p]; !ok {
			out.Interactions = append(out.Interactions, PairComparison{Source: p.src, Target: p.tgt, Second: fx, Category: UniqueToSecond})
		}
	}
	sort.Slice(out.Interactions, func(i, j int) bool {
		x, y := out.Interactions[i], out.Interactions[j]
		if x.Source != y.Source {
			return x.Source < y.Source
		}
		return x.Target < y.Target
	})

	inFirst := make(map[string]bool, len(a.Nodes))
	for _, n := range a.Nodes {
		inFirst[n.ID] = true
	}
	inSecond := make(map[string]bool, len(b.Nodes))
	for _, n := range b.Nodes {
		inSecond[n.ID] = true
		cat := UniqueToSecond
		if inFirst[n.ID] {
			cat = Common
		}
		out.Nodes = append(out.Nodes, NodeComparison{ID: n.ID, Category: cat})
	}
	for _, n := range a.Nodes {
		if !inSecond[n.ID] {
			out.Nodes = append(out.Nodes, NodeComparison{ID: n.ID, Category: UniqueToFirst})
		}
	}
	sort.Slice(out.Nodes, func(i, j int) bool {
		return out.Nodes[i].ID < out.Nodes[j].ID
	})
	return out
}

func pairEffects(s Snapshot) map[pair][]interaction.Effect {
	m := make(map[pair][]interaction.Effect, len(s.Edges))
	for _, e := range s.Edges {
		p := pair{e.Source, e.Target}
		m[p] = append(m[p], e.Effect)
	}
	for _, fx := range m {
		sort.Slice(fx, func(i, j int) bool { return fx[i] < fx[j] })
	}
	return m
}

func sameEffects(a, b []interaction.Effect) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
