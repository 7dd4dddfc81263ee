package paths

import (
	"sort"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
)

// CoverResult is the outcome of a greedy regulator selection.
type CoverResult struct {
	Regulators []string
	// Uncovered lists targets no selected regulator reaches, either because
	// no regulator reaches them at all or because selection stalled.
	Uncovered []string
	Rounds    int
	// Complete is false when selection stopped without covering every target.
	Complete bool
}

// RegulatorMap maps every direct upstream node of the targets to the subset
// of targets it regulates.
func RegulatorMap(g Graph, targets []string) map[string][]string {
	out := make(map[string][]string)
	for _, t := range dedup(targets) {
		for _, src := range g.Neighbours(t, interaction.In) {
			out[src] = append(out[src], t)
		}
	}
	return out
}

// MinimalCoveringRegulators greedily selects regulators until every target
// is covered. Each round selects every regulator whose target count is among
// the top rank distinct counts, then drops every candidate overlapping the
// newly selected ones. A round that covers nothing new stops the loop.
func MinimalCoveringRegulators(regulators map[string][]string, targets []string, rank int) CoverResult {
	if rank < 1 {
		rank = 1
	}

	wanted := make(map[string]bool)
	for _, t := range targets {
		wanted[t] = true
	}

	candidates := make(map[string]map[string]bool, len(regulators))
	reachable := make(map[string]bool)
	for reg, ts := range regulators {
		set := make(map[string]bool)
		for _, t := range ts {
			if wanted[t] {
				set[t] = true
				reachable[t] = true
			}
		}
		if len(set) > 0 {
			candidates[reg] = set
		}
	}

	var res CoverResult
	covered := make(map[string]bool)
	for len(covered) < len(reachable) {
		res.Rounds++
		before := len(covered)

		selected := topRanked(candidates, rank)
		for _, reg := range selected {
			res.Regulators = append(res.Regulators, reg)
			for t := range candidates[reg] {
				covered[t] = true
			}
		}
		if len(covered) == before {
			break
		}
		removeOverlapping(candidates, selected)
	}

	for _, t := range dedup(targets) {
		if !covered[t] {
			res.Uncovered = append(res.Uncovered, t)
		}
	}
	sort.Strings(res.Regulators)
	res.Complete = len(res.Uncovered) == 0
	return res
}

func topRanked(candidates map[string]map[string]bool, rank int) []string {
	sizes := make(map[int]bool)
	for _, set := range candidates {
		sizes[len(set)] = true
	}
	distinct := make([]int, 0, len(sizes))
	for n := range sizes {
		distinct = append(distinct, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(distinct)))
	if len(distinct) > rank {
		distinct = distinct[:rank]
	}
	keep := make(map[int]bool, len(distinct))
	for _, n := range distinct {
		keep[n] = true
	}

	var out []string
	for reg, set := range candidates {
		if keep[len(set)] {
			out = append(out, reg)
		}
	}
	sort.Strings(out)
	return out
}

// removeOverlapping drops the selected regulators and every candidate whose
// target set intersects theirs.
func removeOverlapping(candidates map[string]map[string]bool, selected []string) {
	taken := make(map[string]bool)
	for _, reg := range selected {
		for t := range candidates[reg] {
			taken[t] = true
		}
	}
	for _, reg := range selected {
		delete(candidates, reg)
	}
	for reg, set := range candidates {
		for t := range set {
			if taken[t] {
				delete(candidates, reg)
				break
			}
		}
	}
}

func dedup(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
