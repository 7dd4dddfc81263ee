package paths

import "github.com/sysbio-curie/Neko-sub000/pkg/interaction"

// CascadeResult holds the regulator -> target edges found by UpstreamCascades.
type CascadeResult struct {
	Edges []interaction.Pair
	// Skipped lists regulator/target combinations with no direct edge.
	Skipped []interaction.Pair
	Rounds  int
	// Complete is false when any round failed to cover its targets.
	Complete bool
}

type cascadeRound struct {
	targets []string
	depth   int
}

// UpstreamCascades applies MinimalCoveringRegulators for depth rounds. Round
// one covers targets; each later round covers the regulators selected by the
// round before. Rounds are processed from an explicit queue.
func UpstreamCascades(g Graph, targets []string, depth, rank int, opts ...Option) CascadeResult {
	o := buildOptions(opts)
	res := CascadeResult{Complete: true}
	if depth < 1 {
		return res
	}

	seen := make(map[interaction.Pair]bool)
	queue := []cascadeRound{{targets: dedup(targets), depth: 1}}
	for len(queue) > 0 {
		round := queue[0]
		queue = queue[1:]
		res.Rounds++

		cover := MinimalCoveringRegulators(RegulatorMap(g, round.targets), round.targets, rank)
		if !cover.Complete {
			res.Complete = false
			o.Logger.Debug("cascade round left targets uncovered",
				"depth", round.depth, "uncovered", cover.Uncovered)
		}

		for _, reg := range cover.Regulators {
			for _, t := range round.targets {
				p := interaction.Pair{Source: reg, Target: t}
				if seen[p] {
					continue
				}
				if !g.Has(reg, t) {
					res.Skipped = append(res.Skipped, p)
					o.Logger.Debug("no direct interaction for cascade pair", "source", reg, "target", t)
					continue
				}
				seen[p] = true
				res.Edges = append(res.Edges, p)
			}
		}

		if round.depth < depth && len(cover.Regulators) > 0 {
			queue = append(queue, cascadeRound{targets: cover.Regulators, depth: round.depth + 1})
		}
	}
	return res
}
