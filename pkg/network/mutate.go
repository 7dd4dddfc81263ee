package network

import (
	"fmt"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
)

// resolve translates id into a node. ok is false when the policy rejects an
// unresolvable identifier.
func (n *Network) resolve(id string) (Node, bool) {
	t := n.translator.Translate(id)
	if t.Unresolved() {
		if n.policy == Reject {
			n.logger.Warn("identifier could not be translated, node rejected", "id", id)
			return Node{}, false
		}
		n.logger.Warn("identifier could not be translated, kept verbatim", "id", id)
		return Node{ID: id, Label: id}, true
	}

	node := Node{ID: t.Canonical, Label: t.Label, Kind: t.Kind}
	if node.ID == "" {
		node.ID = id
	}
	if t.Complex != "" {
		node.Label = t.Complex
		if node.Kind == "" {
			node.Kind = "complex"
		}
	}
	if node.Label == "" {
		node.Label = node.ID
	}
	return node, true
}

// AddNode adds id after checking that the Resource knows it. It reports
// whether the node is present afterwards.
func (n *Network) AddNode(id string) bool {
	node, ok := n.resolve(id)
	if !ok {
		return false
	}
	if n.HasNode(node.ID) {
		return true
	}
	if !n.res.Contains(node.ID) && !n.res.Contains(id) {
		n.logger.Warn("node is not present in the resource", "id", id)
		return false
	}
	n.insertNode(node)
	return true
}

// addNodeVerbatim adds a node without consulting the Resource.
func (n *Network) addNodeVerbatim(id string) (string, bool) {
	node, ok := n.resolve(id)
	if !ok {
		return "", false
	}
	if !n.HasNode(node.ID) {
		n.insertNode(node)
	}
	return node.ID, true
}

func (n *Network) insertNode(node Node) {
	n.nodeSlot[node.ID] = len(n.nodes)
	n.nodes = append(n.nodes, &node)
}

// RemoveNode removes id and every incident edge. Seeds may be removed by an
// explicit call; only strategy pruning respects seed protection.
func (n *Network) RemoveNode(id string) bool {
	slot, ok := n.nodeSlot[id]
	if !ok {
		n.logger.Debug("remove of absent node", "id", id)
		return false
	}
	for _, k := range n.edgeKeys(id, n.out) {
		n.deleteEdge(k)
	}
	for _, k := range n.edgeKeys(id, n.in) {
		n.deleteEdge(k)
	}
	n.nodes[slot] = nil
	delete(n.nodeSlot, id)
	delete(n.out, id)
	delete(n.in, id)
	n.deadNodes++
	n.compact()
	return true
}

// AddEdge inserts rec classified in plain mode. See Insert.
func (n *Network) AddEdge(rec interaction.Record, provenance ...string) (EdgeKey, bool) {
	return n.Insert(Edge{
		Source:     rec.Source,
		Target:     rec.Target,
		Effect:     interaction.Classify(rec, false),
		Type:       rec.Type,
		References: rec.References,
		Provenance: provenance,
	})
}

// Insert adds e, creating missing endpoints. When an edge with the same
// (source, target, effect) exists, references and provenance are merged as a
// set union instead. ok is false only when an endpoint is rejected.
func (n *Network) Insert(e Edge) (EdgeKey, bool) {
	if e.Effect == "" {
		e.Effect = interaction.EffectUndefined
	}
	src, ok := n.addNodeVerbatim(e.Source)
	if !ok {
		return EdgeKey{}, false
	}
	tgt, ok := n.addNodeVerbatim(e.Target)
	if !ok {
		return EdgeKey{}, false
	}
	e.Source, e.Target = src, tgt
	k := e.Key()

	if slot, exists := n.edgeSlot[k]; exists {
		cur := n.edges[slot]
		cur.References = union(cur.References, e.References)
		cur.Provenance = union(cur.Provenance, e.Provenance)
		return k, true
	}

	stored := e
	stored.References = union(nil, e.References)
	stored.Provenance = union(nil, e.Provenance)
	n.edgeSlot[k] = len(n.edges)
	n.edges = append(n.edges, &stored)
	link(n.out, k.Source, k)
	link(n.in, k.Target, k)
	return k, true
}

// AddInteraction splices the Resource pair (src, tgt) into the network,
// classified from its representative record with references merged across
// every row. Absent pairs are reported and skipped.
func (n *Network) AddInteraction(src, tgt string, consensus bool, provenance ...string) bool {
	rec, ok := n.res.First(src, tgt)
	if !ok {
		n.logger.Debug("empty interaction", "source", src, "target", tgt)
		return false
	}
	_, ok = n.Insert(Edge{
		Source:     src,
		Target:     tgt,
		Effect:     interaction.Classify(rec, consensus),
		Type:       rec.Type,
		References: n.res.References(src, tgt),
		Provenance: provenance,
	})
	return ok
}

// AddPath splices every consecutive pair of path that is not already linked.
// It returns the number of pairs added.
func (n *Network) AddPath(path []string, consensus bool, provenance ...string) int {
	added := 0
	for i := 0; i+1 < len(path); i++ {
		if n.HasEdge(path[i], path[i+1]) {
			continue
		}
		if n.AddInteraction(path[i], path[i+1], consensus, provenance...) {
			added++
		}
	}
	return added
}

// RemoveEdge removes every edge from src to tgt regardless of effect.
func (n *Network) RemoveEdge(src, tgt string) bool {
	var keys []EdgeKey
	for _, k := range n.edgeKeys(src, n.out) {
		if k.Target == tgt {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		n.logger.Warn("edge does not exist in the network", "source", src, "target", tgt)
		return false
	}
	for _, k := range keys {
		n.deleteEdge(k)
	}
	n.compact()
	return true
}

// RemovePath removes the edges between consecutive nodes of path.
func (n *Network) RemovePath(path []string) int {
	removed := 0
	for i := 0; i+1 < len(path); i++ {
		if n.RemoveEdge(path[i], path[i+1]) {
			removed++
		}
	}
	return removed
}

// RemoveDisconnected drops nodes with no incident edge and returns their ids.
func (n *Network) RemoveDisconnected() []string {
	var removed []string
	for _, id := range n.NodeIDs() {
		if n.InDegree(id) == 0 && n.OutDegree(id) == 0 {
			n.RemoveNode(id)
			removed = append(removed, id)
		}
	}
	return removed
}

// RemoveUndefined drops every edge classified undefined.
func (n *Network) RemoveUndefined() int {
	return n.removeEffect(interaction.EffectUndefined)
}

// RemoveBimodal drops every edge classified bimodal.
func (n *Network) RemoveBimodal() int {
	return n.removeEffect(interaction.EffectBimodal)
}

func (n *Network) removeEffect(effect interaction.Effect) int {
	removed := 0
	for _, e := range n.Edges() {
		if e.Effect == effect {
			n.deleteEdge(e.Key())
			removed++
		}
	}
	n.compact()
	return removed
}

// RenameNode moves oldID and its edges to newID.
func (n *Network) RenameNode(oldID, newID string) error {
	slot, ok := n.nodeSlot[oldID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, oldID)
	}
	if n.HasNode(newID) {
		return fmt.Errorf("%w: %s", ErrNodeExists, newID)
	}

	incident := append(n.edgeKeys(oldID, n.out), n.edgeKeys(oldID, n.in)...)
	var moved []Edge
	for _, k := range incident {
		if e, ok := n.Edge(k); ok {
			moved = append(moved, e)
			n.deleteEdge(k)
		}
	}

	node := n.nodes[slot]
	delete(n.nodeSlot, oldID)
	node.ID = newID
	if node.Label == oldID {
		node.Label = newID
	}
	n.nodeSlot[newID] = slot
	if n.seeds[oldID] {
		delete(n.seeds, oldID)
		n.seeds[newID] = true
		for i, s := range n.seedOrder {
			if s == oldID {
				n.seedOrder[i] = newID
			}
		}
	}

	for _, e := range moved {
		if e.Source == oldID {
			e.Source = newID
		}
		if e.Target == oldID {
			e.Target = newID
		}
		n.Insert(e)
	}
	n.compact()
	return nil
}

func (n *Network) deleteEdge(k EdgeKey) {
	slot, ok := n.edgeSlot[k]
	if !ok {
		return
	}
	n.edges[slot] = nil
	delete(n.edgeSlot, k)
	delete(n.out[k.Source], k)
	delete(n.in[k.Target], k)
	n.deadEdges++
}

// compact rebuilds the arenas once tombstones outnumber live entries.
func (n *Network) compact() {
	if n.deadNodes > len(n.nodeSlot) {
		live := make([]*Node, 0, len(n.nodeSlot))
		for _, node := range n.nodes {
			if node != nil {
				n.nodeSlot[node.ID] = len(live)
				live = append(live, node)
			}
		}
		n.nodes = live
		n.deadNodes = 0
	}
	if n.deadEdges > len(n.edgeSlot) {
		live := make([]*Edge, 0, len(n.edgeSlot))
		for _, e := range n.edges {
			if e != nil {
				n.edgeSlot[e.Key()] = len(live)
				live = append(live, e)
			}
		}
		n.edges = live
		n.deadEdges = 0
	}
}

func link(m map[string]map[EdgeKey]struct{}, id string, k EdgeKey) {
	set, ok := m[id]
	if !ok {
		set = make(map[EdgeKey]struct{})
		m[id] = set
	}
	set[k] = struct{}{}
}

func union(dst, src []string) []string {
	if len(src) == 0 {
		return dst
	}
	seen := make(map[string]struct{}, len(dst)+len(src))
	for _, s := range dst {
		seen[s] = struct{}{}
	}
	for _, s := range src {
		if _, dup := seen[s]; dup || s == "" {
			continue
		}
		seen[s] = struct{}{}
		dst = append(dst, s)
	}
	return dst
}
