package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindPathsTriangleLoops(t *testing.T) {
	idx := edges([2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "A"})

	got := FindPaths(idx, []string{"A"}, nil, WithMaxLen(3), WithLoops(true))
	assert.Contains(t, got, []string{"A", "B", "C", "A"})
	for _, p := range got {
		assert.LessOrEqual(t, len(p)-1, 3)
		assert.Equal(t, p[0], p[len(p)-1], "loop walks close at the origin")
	}
}

func TestFindPathsToEnd(t *testing.T) {
	idx := edges(
		[2]string{"A", "B"}, [2]string{"B", "D"},
		[2]string{"A", "C"}, [2]string{"C", "D"},
		[2]string{"A", "D"},
	)

	got := FindPaths(idx, []string{"A"}, []string{"D"}, WithMaxLen(2))
	assert.Equal(t, [][]string{{"A", "B", "D"}, {"A", "C", "D"}, {"A", "D"}}, got)

	got = FindPaths(idx, []string{"A"}, []string{"D"}, WithMaxLen(2), WithMinLen(2))
	assert.Equal(t, [][]string{{"A", "B", "D"}, {"A", "C", "D"}}, got)
}

func TestFindPathsFixedLength(t *testing.T) {
	idx := chain("A", "B", "C", "D")

	got := FindPaths(idx, []string{"A"}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"A", "B", "C"}, got[0], "default bound is two edges")
}

func TestFindPathsNoRevisit(t *testing.T) {
	idx := edges([2]string{"A", "B"}, [2]string{"B", "A"}, [2]string{"B", "C"})

	got := FindPaths(idx, []string{"A"}, []string{"C"}, WithMaxLen(4))
	assert.Equal(t, [][]string{{"A", "B", "C"}}, got)
}

func FuzzFindPathsBounds(f *testing.F) {
	f.Add([]byte{0, 1, 1, 2, 2, 0, 2, 3}, uint8(3), true)
	f.Add([]byte{0, 1, 1, 0}, uint8(2), false)

	f.Fuzz(func(t *testing.T, raw []byte, maxLen uint8, loops bool) {
		names := []string{"A", "B", "C", "D", "E"}
		var pairs [][2]string
		for i := 0; i+1 < len(raw) && i < 40; i += 2 {
			pairs = append(pairs, [2]string{names[int(raw[i])%len(names)], names[int(raw[i+1])%len(names)]})
		}
		idx := edges(pairs...)
		limit := int(maxLen%5) + 1

		for _, p := range FindPaths(idx, []string{"A"}, nil, WithMaxLen(limit), WithLoops(loops)) {
			if len(p)-1 > limit {
				t.Fatalf("path %v exceeds bound %d", p, limit)
			}
			seen := make(map[string]bool)
			for i, id := range p {
				if seen[id] && !(loops && i == len(p)-1 && id == p[0]) {
					t.Fatalf("path %v revisits %s", p, id)
				}
				seen[id] = true
			}
		}
	})
}
