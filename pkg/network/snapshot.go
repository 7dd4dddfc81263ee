package network

// Snapshot is a deep copy of the node and edge tables.
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Snapshot deep-copies the live tables.
func (n *Network) Snapshot() Snapshot {
	return Snapshot{Nodes: n.Nodes(), Edges: n.Edges()}
}

// Restore replaces the live tables with copies from s. Seeds are unchanged.
func (n *Network) Restore(s Snapshot) {
	n.nodes = make([]*Node, 0, len(s.Nodes))
	n.nodeSlot = make(map[string]int, len(s.Nodes))
	n.edges = make([]*Edge, 0, len(s.Edges))
	n.edgeSlot = make(map[EdgeKey]int, len(s.Edges))
	n.out = make(map[string]map[EdgeKey]struct{})
	n.in = make(map[string]map[EdgeKey]struct{})
	n.deadNodes, n.deadEdges = 0, 0

	for _, node := range s.Nodes {
		if !n.HasNode(node.ID) {
			n.insertNode(node)
		}
	}
	for _, e := range s.Edges {
		k := e.Key()
		if _, dup := n.edgeSlot[k]; dup {
			continue
		}
		for _, id := range []string{e.Source, e.Target} {
			if !n.HasNode(id) {
				n.insertNode(Node{ID: id, Label: id})
			}
		}
		c := copyEdge(&e)
		n.edgeSlot[k] = len(n.edges)
		n.edges = append(n.edges, &c)
		link(n.out, k.Source, k)
		link(n.in, k.Target, k)
	}
}
