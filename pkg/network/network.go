// Package network owns the mutable node and edge tables of a growing
// interaction network and the primitive mutators strategies build on.
//
// # Ownership Model
//
// A Network holds an explicit reference to its Resource; there is no
// process-wide default. Nodes and edges live in insertion-ordered arenas with
// map-based membership. Removal leaves a tombstone that is compacted lazily,
// so every mutator is O(1) amortized apart from node removal, which also
// visits the node's incident edges.
//
// A Network is not safe for concurrent use.
package network

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
)

var (
	// ErrNodeNotFound is returned when an operation names a node that is not
	// in the network.
	ErrNodeNotFound = errors.New("network: node not found")

	// ErrNodeExists is returned when a rename targets an existing node.
	ErrNodeExists = errors.New("network: node already exists")
)

// Node is a network member. Uniqueness is by ID.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  string `json:"kind,omitempty"`
}

// Edge is a signed, directed relation. No two edges share an EdgeKey.
type Edge struct {
	Source     string             `json:"source"`
	Target     string             `json:"target"`
	Effect     interaction.Effect `json:"effect"`
	Type       string             `json:"type,omitempty"`
	References []string           `json:"references,omitempty"`
	Provenance []string           `json:"provenance,omitempty"`
}

// Key returns the dedup key of e.
func (e Edge) Key() EdgeKey {
	return EdgeKey{Source: e.Source, Target: e.Target, Effect: e.Effect}
}

// EdgeKey identifies an edge row.
type EdgeKey struct {
	Source string             `json:"source"`
	Target string             `json:"target"`
	Effect interaction.Effect `json:"effect"`
}

// Network is a mutable signed directed graph seeded from a set of protected
// nodes and grown against a Resource.
type Network struct {
	res        *interaction.Resource
	translator Translator
	policy     UnresolvedPolicy
	logger     *slog.Logger

	seeds     map[string]bool
	seedOrder []string

	nodes    []*Node
	nodeSlot map[string]int
	edges    []*Edge
	edgeSlot map[EdgeKey]int
	out      map[string]map[EdgeKey]struct{}
	in       map[string]map[EdgeKey]struct{}

	deadNodes int
	deadEdges int
}

// Option configures a Network.
type Option func(*Network)

// WithSeeds sets the initial protected nodes. Seeds absent from the Resource
// are dropped with a warning.
func WithSeeds(ids ...string) Option {
	return func(n *Network) {
		n.seedOrder = append(n.seedOrder, ids...)
	}
}

// WithTranslator sets the identifier translator. The default is identity.
func WithTranslator(t Translator) Option {
	return func(n *Network) {
		if t != nil {
			n.translator = t
		}
	}
}

// WithUnresolved sets the policy for identifiers the translator cannot resolve.
func WithUnresolved(p UnresolvedPolicy) Option {
	return func(n *Network) {
		n.policy = p
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Network) {
		if l != nil {
			n.logger = l
		}
	}
}

// New creates a network over res and adds the configured seeds.
func New(res *interaction.Resource, opts ...Option) *Network {
	n := &Network{
		res:        res,
		translator: identity,
		logger:     slog.Default(),
		seeds:      make(map[string]bool),
		nodeSlot:   make(map[string]int),
		edgeSlot:   make(map[EdgeKey]int),
		out:        make(map[string]map[EdgeKey]struct{}),
		in:         make(map[string]map[EdgeKey]struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}

	requested := n.seedOrder
	n.seedOrder = nil
	for _, id := range requested {
		if !n.AddNode(id) {
			continue
		}
		canon := n.Canonical(id)
		if !n.seeds[canon] {
			n.seeds[canon] = true
			n.seedOrder = append(n.seedOrder, canon)
		}
	}
	return n
}

// Resource returns the background database the network grows against.
func (n *Network) Resource() *interaction.Resource {
	return n.res
}

// Logger returns the network's diagnostics logger.
func (n *Network) Logger() *slog.Logger {
	return n.logger
}

// Seeds returns the protected node ids in insertion order.
func (n *Network) Seeds() []string {
	return append([]string(nil), n.seedOrder...)
}

// IsSeed reports whether id is protected from pruning.
func (n *Network) IsSeed(id string) bool {
	return n.seeds[id]
}

// Canonical maps id to its canonical form, or returns it unchanged when the
// translator has no canonical mapping.
func (n *Network) Canonical(id string) string {
	if c := n.translator.Translate(id).Canonical; c != "" {
		return c
	}
	return id
}

// HasNode reports whether id is a live node.
func (n *Network) HasNode(id string) bool {
	_, ok := n.nodeSlot[id]
	return ok
}

// Node returns the node with the given id.
func (n *Network) Node(id string) (Node, bool) {
	slot, ok := n.nodeSlot[id]
	if !ok {
		return Node{}, false
	}
	return *n.nodes[slot], true
}

// Nodes returns copies of the live nodes in insertion order.
func (n *Network) Nodes() []Node {
	out := make([]Node, 0, len(n.nodeSlot))
	for _, node := range n.nodes {
		if node != nil {
			out = append(out, *node)
		}
	}
	return out
}

// NodeIDs returns the live node ids in insertion order.
func (n *Network) NodeIDs() []string {
	out := make([]string, 0, len(n.nodeSlot))
	for _, node := range n.nodes {
		if node != nil {
			out = append(out, node.ID)
		}
	}
	return out
}

// NodeCount returns the number of live nodes.
func (n *Network) NodeCount() int {
	return len(n.nodeSlot)
}

// HasEdge reports whether any edge links src to tgt.
func (n *Network) HasEdge(src, tgt string) bool {
	for k := range n.out[src] {
		if k.Target == tgt {
			return true
		}
	}
	return false
}

// HasEdgeKey reports whether the exact (src, tgt, effect) row exists.
func (n *Network) HasEdgeKey(k EdgeKey) bool {
	_, ok := n.edgeSlot[k]
	return ok
}

// Edge returns the edge stored under k.
func (n *Network) Edge(k EdgeKey) (Edge, bool) {
	slot, ok := n.edgeSlot[k]
	if !ok {
		return Edge{}, false
	}
	return copyEdge(n.edges[slot]), true
}

// Edges returns copies of the live edges in insertion order.
func (n *Network) Edges() []Edge {
	out := make([]Edge, 0, len(n.edgeSlot))
	for _, e := range n.edges {
		if e != nil {
			out = append(out, copyEdge(e))
		}
	}
	return out
}

// EdgeCount returns the number of live edges.
func (n *Network) EdgeCount() int {
	return len(n.edgeSlot)
}

// OutDegree counts edges leaving id.
func (n *Network) OutDegree(id string) int {
	return len(n.out[id])
}

// InDegree counts edges entering id.
func (n *Network) InDegree(id string) int {
	return len(n.in[id])
}

// CheckNodeExistence reports whether id is known to the Resource. It does not
// consult the live network.
func (n *Network) CheckNodeExistence(id string) bool {
	return n.res.Contains(id) || n.res.Contains(n.Canonical(id))
}

// CheckNodes returns the ids known to the Resource, preserving order.
func (n *Network) CheckNodes(ids []string) []string {
	var out []string
	for _, id := range ids {
		if n.CheckNodeExistence(id) {
			out = append(out, id)
		}
	}
	return out
}

// EdgeProvenance returns the provenance of the first edge from src to tgt.
func (n *Network) EdgeProvenance(src, tgt string) []string {
	for _, e := range n.edges {
		if e != nil && e.Source == src && e.Target == tgt {
			return append([]string(nil), e.Provenance...)
		}
	}
	return nil
}

// FilterByProvenance returns edges carrying the given provenance entry.
func (n *Network) FilterByProvenance(entry string) []Edge {
	var out []Edge
	for _, e := range n.edges {
		if e == nil {
			continue
		}
		for _, p := range e.Provenance {
			if p == entry {
				out = append(out, copyEdge(e))
				break
			}
		}
	}
	return out
}

// IsConnected reports whether the network is weakly connected. An empty
// network is not connected.
func (n *Network) IsConnected() bool {
	if len(n.nodeSlot) == 0 {
		return false
	}
	dense := make(map[string]int, len(n.nodeSlot))
	for _, id := range n.NodeIDs() {
		dense[id] = len(dense)
	}
	uf := newUnionFind(len(dense))
	for _, e := range n.edges {
		if e != nil {
			uf.union(dense[e.Source], dense[e.Target])
		}
	}
	return uf.components() == 1
}

// LiveResource re-expresses the edge table as a Resource so strategies can
// test connectivity within what has been built so far.
func (n *Network) LiveResource() *interaction.Resource {
	recs := make([]interaction.Record, 0, len(n.edgeSlot))
	for _, e := range n.edges {
		if e == nil {
			continue
		}
		rec := interaction.RecordFor(e.Source, e.Target, e.Effect, e.References)
		rec.Type = e.Type
		recs = append(recs, rec)
	}
	return interaction.NewResource(recs)
}

// LiveIndex builds an interaction index over the current edges.
func (n *Network) LiveIndex() *interaction.Index {
	return interaction.NewIndex(n.LiveResource())
}

func (n *Network) edgeKeys(id string, m map[string]map[EdgeKey]struct{}) []EdgeKey {
	keys := make([]EdgeKey, 0, len(m[id]))
	for k := range m[id] {
		keys = append(keys, k)
	}
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
	return keys
}

func copyEdge(e *Edge) Edge {
	c := *e
	c.References = append([]string(nil), e.References...)
	c.Provenance = append([]string(nil), e.Provenance...)
	return c
}
