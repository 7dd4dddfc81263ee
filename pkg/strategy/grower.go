// Package strategy composes path search and the network model into growth
// procedures. Every strategy follows the same per-pair sequence: look for an
// existing path among live edges, otherwise deepen the search over the full
// Resource up to a ceiling and splice the first result, otherwise report the
// pair as unconnected.
package strategy

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
	"github.com/sysbio-curie/Neko-sub000/pkg/network"
	"github.com/sysbio-curie/Neko-sub000/pkg/paths"
)

var (
	// ErrUnknownAlgorithm is returned by ParseAlgorithm.
	ErrUnknownAlgorithm = errors.New("strategy: unknown algorithm")
	// ErrUnknownBaseline is returned by ParseBaseline.
	ErrUnknownBaseline = errors.New("strategy: unknown baseline")
)

// MaxAtopoDepth bounds the cascade depth of ConnectAsAtopo.
const MaxAtopoDepth = 4

// Algorithm selects how the full Resource is searched for a missing path.
type Algorithm int

const (
	// DFS splices every path found at the smallest bound that yields any.
	DFS Algorithm = iota
	// BFS splices one shortest path.
	BFS
)

func (a Algorithm) String() string {
	if a == BFS {
		return "bfs"
	}
	return "dfs"
}

// ParseAlgorithm accepts "bfs" or "dfs".
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dfs", "":
		return DFS, nil
	case "bfs":
		return BFS, nil
	}
	return DFS, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Baseline selects the strategy ConnectAsAtopo runs before forcing outputs.
type Baseline int

const (
	NoBaseline Baseline = iota
	Radial
	Complete
)

func (b Baseline) String() string {
	switch b {
	case Radial:
		return "radial"
	case Complete:
		return "complete"
	}
	return "none"
}

// ParseBaseline accepts "radial", "complete" or "none".
func ParseBaseline(s string) (Baseline, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "radial":
		return Radial, nil
	case "complete":
		return Complete, nil
	case "none", "":
		return NoBaseline, nil
	}
	return NoBaseline, fmt.Errorf("%w: %q", ErrUnknownBaseline, s)
}

// Options are shared by every strategy.
type Options struct {
	// MaxLen is the search ceiling in edges. Zero means paths.DefaultMaxLen.
	MaxLen     int
	OnlySigned bool
	Consensus  bool
	Loops      bool
	// Minimal rebuilds the live-edge index before every pair.
	Minimal   bool
	Algorithm Algorithm
	// ConnectWithBias skips the final direct-edge pass of CompleteConnection.
	ConnectWithBias bool
}

func (o Options) ceiling() int {
	if o.MaxLen > 0 {
		return o.MaxLen
	}
	return paths.DefaultMaxLen
}

func (o Options) search(extra ...paths.Option) []paths.Option {
	return append([]paths.Option{
		paths.WithOnlySigned(o.OnlySigned),
		paths.WithConsensus(o.Consensus),
	}, extra...)
}

// Report summarises one strategy run.
type Report struct {
	Strategy     string             `json:"strategy"`
	EdgesAdded   int                `json:"edges_added"`
	NodesRemoved []string           `json:"nodes_removed,omitempty"`
	Connected    []interaction.Pair `json:"connected,omitempty"`
	Unconnected  []interaction.Pair `json:"unconnected,omitempty"`
	// Incomplete flags early termination or partial connectivity.
	Incomplete bool `json:"incomplete"`
}

func (r *Report) merge(o Report) {
	r.EdgesAdded += o.EdgesAdded
	r.NodesRemoved = append(r.NodesRemoved, o.NodesRemoved...)
	r.Connected = append(r.Connected, o.Connected...)
	r.Unconnected = append(r.Unconnected, o.Unconnected...)
	r.Incomplete = r.Incomplete || o.Incomplete
}

// Grower runs strategies against one network. The full-Resource index is
// built once and reused.
type Grower struct {
	net    *network.Network
	full   *interaction.Index
	logger *slog.Logger
}

// NewGrower indexes the network's Resource.
func NewGrower(net *network.Network) *Grower {
	return &Grower{
		net:    net,
		full:   interaction.NewIndex(net.Resource()),
		logger: net.Logger(),
	}
}

// Network returns the network being grown.
func (g *Grower) Network() *network.Network {
	return g.net
}

// FullIndex returns the index over the whole Resource.
func (g *Grower) FullIndex() *interaction.Index {
	return g.full
}

type outcome int

const (
	alreadyConnected outcome = iota
	spliced
	unconnected
)

// connectPair runs the per-pair sequence for src -> tgt and records the
// outcome in rep.
func (g *Grower) connectPair(live *interaction.Index, src, tgt string, o Options, provenance string, rep *Report) outcome {
	pair := interaction.Pair{Source: src, Target: tgt}
	ceiling := o.ceiling()

	if p := paths.BFS(live, src, tgt, o.search(paths.WithMaxLen(ceiling))...); len(p) > 0 {
		rep.Connected = append(rep.Connected, pair)
		return alreadyConnected
	}

	for bound := 1; bound <= ceiling; bound++ {
		found := g.find(src, tgt, bound, o)
		if len(found) == 0 {
			continue
		}
		for _, p := range found {
			rep.EdgesAdded += g.net.AddPath(p, o.Consensus, provenance)
		}
		rep.Connected = append(rep.Connected, pair)
		return spliced
	}

	g.logger.Debug("pair left unconnected", "source", src, "target", tgt, "max_len", ceiling)
	rep.Unconnected = append(rep.Unconnected, pair)
	return unconnected
}

func (g *Grower) find(src, tgt string, bound int, o Options) [][]string {
	if o.Algorithm == BFS {
		if p := paths.BFS(g.full, src, tgt, o.search(paths.WithMaxLen(bound))...); len(p) > 0 {
			return [][]string{p}
		}
		return nil
	}
	return paths.FindPaths(g.full, []string{src}, []string{tgt}, o.search(paths.WithMaxLen(bound))...)
}

// connectBoth applies the pair sequence in the requested direction(s).
func (g *Grower) connectBoth(live *interaction.Index, a, b string, dir interaction.Direction, o Options, provenance string, rep *Report) *interaction.Index {
	if dir == interaction.Out || dir == interaction.Both {
		if g.connectPair(live, a, b, o, provenance, rep) == spliced && o.Minimal {
			live = g.net.LiveIndex()
		}
	}
	if dir == interaction.In || dir == interaction.Both {
		if g.connectPair(live, b, a, o, provenance, rep) == spliced && o.Minimal {
			live = g.net.LiveIndex()
		}
	}
	return live
}

// pruneWhile repeatedly removes non-seed nodes matching dead until none do.
func (g *Grower) pruneWhile(dead func(id string) bool) []string {
	var removed []string
	for {
		var batch []string
		for _, id := range g.net.NodeIDs() {
			if !g.net.IsSeed(id) && dead(id) {
				batch = append(batch, id)
			}
		}
		if len(batch) == 0 {
			return removed
		}
		for _, id := range batch {
			g.net.RemoveNode(id)
		}
		removed = append(removed, batch...)
	}
}

func (g *Grower) canonical(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		c := g.net.Canonical(id)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
