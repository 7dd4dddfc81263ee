package strategy

import "github.com/sysbio-curie/Neko-sub000/pkg/interaction"

// ConnectRadially grows the network outward from the seeds, hop by hop, up
// to maxLen hops in dir. Every admissible neighbour edge of the current
// frontier is added; seeds never re-enter the frontier. Afterwards non-seed
// nodes lacking an inbound or an outbound edge are pruned until none remain.
func (g *Grower) ConnectRadially(maxLen int, dir interaction.Direction, o Options) Report {
	rep := Report{Strategy: "connect_network_radially"}
	seeds := g.net.Seeds()
	isSeed := make(map[string]bool, len(seeds))
	for _, s := range seeds {
		isSeed[s] = true
	}

	sources, targets := seeds, seeds
	for hop := 0; hop < maxLen; hop++ {
		if dir == interaction.Out || dir == interaction.Both {
			sources = g.expand(sources, interaction.Out, isSeed, o, &rep)
		}
		if dir == interaction.In || dir == interaction.Both {
			targets = g.expand(targets, interaction.In, isSeed, o, &rep)
		}
	}

	rep.NodesRemoved = g.pruneWhile(func(id string) bool {
		return g.net.InDegree(id) == 0 || g.net.OutDegree(id) == 0
	})
	return rep
}

// expand adds the admissible edges around frontier and returns the next
// frontier.
func (g *Grower) expand(frontier []string, dir interaction.Direction, isSeed map[string]bool, o Options, rep *Report) []string {
	var next []string
	queued := make(map[string]bool)
	for _, node := range frontier {
		for _, nb := range g.full.Neighbours(node, dir) {
			if nb == node && !o.Loops {
				continue
			}
			src, tgt := node, nb
			if dir == interaction.In {
				src, tgt = nb, node
			}
			if o.OnlySigned && !g.full.IsSigned(src, tgt, o.Consensus) {
				continue
			}
			rep.EdgesAdded += g.net.AddPath([]string{src, tgt}, o.Consensus, rep.Strategy)
			if !isSeed[nb] && !queued[nb] {
				queued[nb] = true
				next = append(next, nb)
			}
		}
	}
	return next
}
