package paths

import "github.com/sysbio-curie/Neko-sub000/pkg/interaction"

// FindPaths enumerates paths from every start to every end using an explicit
// stack. With no ends, paths of exactly MaxLen edges qualify; with loops,
// walks that return to their origin qualify and revisits are allowed only to
// close back to the origin. A qualifying path is not extended further.
// Results are ordered by start, then end, then sorted neighbour order.
func FindPaths(g Graph, starts, ends []string, opts ...Option) [][]string {
	o := buildOptions(opts)
	maxLen := o.MaxLen
	if maxLen == 0 {
		maxLen = DefaultEnumerateMaxLen
	}

	targets := ends
	if len(targets) == 0 {
		targets = []string{""}
	}

	var out [][]string
	for _, s := range starts {
		for _, e := range targets {
			out = append(out, enumerate(g, s, e, maxLen, o)...)
		}
	}
	return out
}

func enumerate(g Graph, start, end string, maxLen int, o Options) [][]string {
	var out [][]string
	stack := [][]string{{start}}

	for len(stack) > 0 {
		path := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		edges := len(path) - 1
		last := path[edges]
		if edges >= o.MinLen && qualifies(path, end, maxLen, o.Loops) {
			out = append(out, path)
			continue
		}
		if edges >= maxLen || (edges > 0 && last == path[0]) {
			continue
		}

		next := g.Neighbours(last, interaction.Out)
		// Push in reverse so the smallest neighbour is explored first.
		for i := len(next) - 1; i >= 0; i-- {
			n := next[i]
			if !o.traversable(g, last, n) {
				continue
			}
			if onPath(path, n) && !(o.Loops && n == path[0]) {
				continue
			}
			ext := make([]string, len(path)+1)
			copy(ext, path)
			ext[len(path)] = n
			stack = append(stack, ext)
		}
	}
	return out
}

func qualifies(path []string, end string, maxLen int, loops bool) bool {
	last := path[len(path)-1]
	switch {
	case end != "" && last == end:
		return true
	case end == "" && !loops && len(path)-1 == maxLen:
		return true
	case loops && path[0] == last:
		return true
	}
	return false
}

func onPath(path []string, id string) bool {
	for _, p := range path {
		if p == id {
			return true
		}
	}
	return false
}
