package strategy

import (
	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
	"github.com/sysbio-curie/Neko-sub000/pkg/paths"
)

// ConnectUpstream splices the regulator cascades of targets, depth rounds
// deep, selecting rank cardinalities per round. An empty targets list means
// every current node.
func (g *Grower) ConnectUpstream(targets []string, depth, rank int, o Options) Report {
	rep := Report{Strategy: "connect_to_upstream_nodes"}
	if len(targets) == 0 {
		targets = g.net.NodeIDs()
	}

	res := paths.UpstreamCascades(g.full, g.canonical(targets), depth, rank, paths.WithLogger(g.logger))
	for _, p := range res.Edges {
		if o.OnlySigned && !g.full.IsSigned(p.Source, p.Target, o.Consensus) {
			continue
		}
		if g.net.HasEdge(p.Source, p.Target) {
			continue
		}
		if g.net.AddInteraction(p.Source, p.Target, o.Consensus, rep.Strategy) {
			rep.EdgesAdded++
			rep.Connected = append(rep.Connected, p)
		}
	}
	rep.Incomplete = !res.Complete
	return rep
}

// ConnectAsAtopo establishes a baseline, then forces connectivity towards
// outputs with upstream cascades of increasing depth. New nodes that are
// never a target, or that carry a self-loop when loops are disallowed, are
// dropped after every round. The loop stops once the network is weakly
// connected or at MaxAtopoDepth, in which case the report is Incomplete.
// Finally, non-seed nodes without an inbound edge are pruned.
func (g *Grower) ConnectAsAtopo(baseline Baseline, maxLen int, outputs []string, o Options) Report {
	rep := Report{Strategy: "connect_as_atopo"}

	switch baseline {
	case Radial:
		rep.merge(g.ConnectRadially(maxLen, interaction.Both, o))
	case Complete:
		co := o
		co.MaxLen = maxLen
		co.Minimal = true
		co.ConnectWithBias = false
		rep.merge(g.CompleteConnection(co))
	}
	if len(outputs) == 0 {
		return rep
	}

	starting := make(map[string]bool)
	for _, id := range g.net.NodeIDs() {
		starting[id] = true
	}
	outs := g.canonical(outputs)
	isOutput := make(map[string]bool, len(outs))
	for _, id := range outs {
		g.net.AddNode(id)
		isOutput[id] = true
	}

	for depth := 1; !g.net.IsConnected(); depth++ {
		up := g.ConnectUpstream(outs, depth, len(outs), o)
		rep.EdgesAdded += up.EdgesAdded

		for _, id := range g.net.NodeIDs() {
			if starting[id] || isOutput[id] || g.net.IsSeed(id) {
				continue
			}
			if g.net.InDegree(id) == 0 || (!o.Loops && g.net.HasEdge(id, id)) {
				g.net.RemoveNode(id)
				rep.NodesRemoved = append(rep.NodesRemoved, id)
			}
		}
		if depth >= MaxAtopoDepth {
			g.logger.Warn("topological closure reached its depth ceiling", "depth", depth)
			break
		}
	}
	rep.Incomplete = rep.Incomplete || !g.net.IsConnected()

	rep.NodesRemoved = append(rep.NodesRemoved, g.pruneWhile(func(id string) bool {
		return g.net.InDegree(id) == 0
	})...)
	return rep
}
