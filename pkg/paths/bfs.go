package paths

import "github.com/sysbio-curie/Neko-sub000/pkg/interaction"

type queueItem struct {
	id    string
	depth int
	prev  int
}

// BFS returns one shortest path (by edge count) from start to end, following
// outgoing edges. start == end yields the single-node path. Nodes are marked
// visited when dequeued. Without WithMaxLen the search is capped at
// DefaultMaxLen unless Unbounded is given. No path within the bound yields nil.
func BFS(g Graph, start, end string, opts ...Option) []string {
	o := buildOptions(opts)
	if start == end {
		return []string{start}
	}

	limit := o.MaxLen
	if limit == 0 && !o.Unbounded {
		limit = DefaultMaxLen
	}

	// Items are never removed so parents stay addressable for reconstruction.
	items := []queueItem{{id: start, prev: -1}}
	visited := make(map[string]bool)

	for head := 0; head < len(items); head++ {
		cur := items[head]
		if visited[cur.id] {
			continue
		}
		visited[cur.id] = true

		if cur.id == end {
			return reconstruct(items, head)
		}
		if limit > 0 && cur.depth >= limit {
			continue
		}

		for _, next := range g.Neighbours(cur.id, interaction.Out) {
			if visited[next] || !o.traversable(g, cur.id, next) {
				continue
			}
			items = append(items, queueItem{id: next, depth: cur.depth + 1, prev: head})
		}
	}
	return nil
}

func reconstruct(items []queueItem, at int) []string {
	var rev []string
	for i := at; i >= 0; i = items[i].prev {
		rev = append(rev, items[i].id)
	}
	path := make([]string, len(rev))
	for i, id := range rev {
		path[len(rev)-1-i] = id
	}
	return path
}
