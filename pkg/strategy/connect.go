package strategy

import "github.com/sysbio-curie/Neko-sub000/pkg/interaction"

// ConnectNodes adds every direct Resource interaction between current nodes,
// in both orientations of each pair.
func (g *Grower) ConnectNodes(o Options) Report {
	rep := Report{Strategy: "connect_nodes"}
	ids := g.net.NodeIDs()
	if len(ids) < 2 {
		g.logger.Warn("not enough nodes to create connections", "nodes", len(ids))
		return rep
	}

	direct := func(src, tgt string) {
		if !g.full.Has(src, tgt) {
			return
		}
		if o.OnlySigned && !g.full.IsSigned(src, tgt, o.Consensus) {
			return
		}
		if g.net.HasEdge(src, tgt) {
			return
		}
		if g.net.AddInteraction(src, tgt, o.Consensus, rep.Strategy) {
			rep.EdgesAdded++
		}
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			direct(ids[i], ids[j])
			direct(ids[j], ids[i])
		}
	}
	return rep
}

// ConnectSubgroup connects every pair within group in both directions.
func (g *Grower) ConnectSubgroup(group []string, o Options) Report {
	rep := Report{Strategy: "connect_subgroup"}
	g.connectSubgroup(g.canonical(group), o, &rep)
	return rep
}

func (g *Grower) connectSubgroup(ids []string, o Options, rep *Report) {
	if len(ids) < 2 {
		g.logger.Warn("not enough nodes to create connections", "nodes", len(ids))
		return
	}
	live := g.net.LiveIndex()
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if o.Minimal {
				live = g.net.LiveIndex()
			}
			live = g.connectBoth(live, ids[i], ids[j], interaction.Both, o, rep.Strategy, rep)
		}
	}
}

// ConnectComponent connects every cross pair of a and b in the given
// direction. Network nodes outside both sets are then connected among
// themselves as a subgroup.
func (g *Grower) ConnectComponent(a, b []string, dir interaction.Direction, o Options) Report {
	rep := Report{Strategy: "connect_component"}
	setA, setB := g.canonical(a), g.canonical(b)

	live := g.net.LiveIndex()
	for _, x := range setA {
		for _, y := range setB {
			if x == y {
				continue
			}
			if o.Minimal {
				live = g.net.LiveIndex()
			}
			live = g.connectBoth(live, x, y, dir, o, rep.Strategy, &rep)
		}
	}

	inAB := make(map[string]bool, len(setA)+len(setB))
	for _, id := range append(append([]string(nil), setA...), setB...) {
		inAB[id] = true
	}
	var rest []string
	for _, id := range g.net.NodeIDs() {
		if !inAB[id] {
			rest = append(rest, id)
		}
	}
	if len(rest) > 1 {
		g.connectSubgroup(rest, o, &rep)
	}
	return rep
}

// CompleteConnection applies the pair sequence to every pair of current
// nodes in both directions. Pairs with an endpoint unknown to the Resource
// are skipped. Unless ConnectWithBias is set, direct interactions between all
// nodes are added afterwards.
func (g *Grower) CompleteConnection(o Options) Report {
	rep := Report{Strategy: "complete_connection"}
	ids := g.net.NodeIDs()

	live := g.net.LiveIndex()
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			if !g.net.CheckNodeExistence(a) || !g.net.CheckNodeExistence(b) {
				continue
			}
			if o.Minimal {
				live = g.net.LiveIndex()
			}
			live = g.connectBoth(live, a, b, interaction.Both, o, rep.Strategy, &rep)
		}
	}

	if !o.ConnectWithBias {
		direct := g.ConnectNodes(o)
		rep.EdgesAdded += direct.EdgesAdded
	}
	return rep
}
