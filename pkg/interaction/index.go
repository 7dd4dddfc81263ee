package interaction

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sysbio-curie/Neko-sub000/pkg/sys/intern"
)

// ErrUnknownDirection is returned when a direction string cannot be parsed.
var ErrUnknownDirection = errors.New("interaction: unknown direction")

// Direction selects which adjacency a traversal follows.
type Direction int

const (
	// Out follows source -> target.
	Out Direction = iota
	// In follows target -> source.
	In
	// Both follows either orientation.
	Both
)

func (d Direction) String() string {
	switch d {
	case Out:
		return "OUT"
	case In:
		return "IN"
	case Both:
		return "ALL"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Reverse swaps Out and In.
func (d Direction) Reverse() Direction {
	switch d {
	case Out:
		return In
	case In:
		return Out
	}
	return d
}

// ParseDirection accepts OUT, IN, ALL and BOTH in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OUT":
		return Out, nil
	case "IN":
		return In, nil
	case "ALL", "BOTH":
		return Both, nil
	}
	return Out, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

type pairSign struct {
	plain     Effect
	consensus Effect
}

// Index is an arena-indexed adjacency view of a Resource with a sign cache
// for both plain and consensus modes. Ids are interned to dense slots;
// slot 0 is unused.
type Index struct {
	pool     *intern.Pool
	forward  [][]string
	backward [][]string
	signs    map[uint64]pairSign
	edges    int
}

func pairKey(src, tgt uint32) uint64 {
	return uint64(src)<<32 | uint64(tgt)
}

// NewIndex builds adjacency and sign cache from res. Each pair is classified
// from its representative (first) record.
func NewIndex(res *Resource) *Index {
	pairs := res.Pairs()
	idx := &Index{
		pool:  intern.New(2 * len(pairs)),
		signs: make(map[uint64]pairSign, len(pairs)),
	}
	idx.forward = append(idx.forward, nil)
	idx.backward = append(idx.backward, nil)

	for _, p := range pairs {
		s := idx.slot(p.Source)
		t := idx.slot(p.Target)
		rec, _ := res.First(p.Source, p.Target)
		idx.forward[s] = append(idx.forward[s], p.Target)
		idx.backward[t] = append(idx.backward[t], p.Source)
		idx.signs[pairKey(s, t)] = pairSign{
			plain:     Classify(rec, false),
			consensus: Classify(rec, true),
		}
		idx.edges++
	}

	// Pairs are distinct so lists carry no duplicates; sort for stable traversal.
	for i := range idx.forward {
		sort.Strings(idx.forward[i])
		sort.Strings(idx.backward[i])
	}
	return idx
}

func (x *Index) slot(id string) uint32 {
	s := x.pool.Get(id)
	for int(s) >= len(x.forward) {
		x.forward = append(x.forward, nil)
		x.backward = append(x.backward, nil)
	}
	return s
}

// Len returns the number of distinct pairs indexed.
func (x *Index) Len() int {
	return x.edges
}

// Contains reports whether id is an endpoint of any indexed pair.
func (x *Index) Contains(id string) bool {
	_, ok := x.pool.Lookup(id)
	return ok
}

// Nodes returns every indexed id in interning order.
func (x *Index) Nodes() []string {
	out := make([]string, 0, x.pool.Len())
	for i := 1; i <= x.pool.Len(); i++ {
		out = append(out, x.pool.Str(uint32(i)))
	}
	return out
}

// Neighbours returns the sorted neighbour ids of id. Unknown ids yield an
// empty result. Out and In results alias the index and must not be modified.
func (x *Index) Neighbours(id string, dir Direction) []string {
	s, ok := x.pool.Lookup(id)
	if !ok {
		return nil
	}
	switch dir {
	case Out:
		return x.forward[s]
	case In:
		return x.backward[s]
	case Both:
		return mergeSorted(x.forward[s], x.backward[s])
	}
	return nil
}

// Has reports whether the directed pair (src, tgt) is indexed.
func (x *Index) Has(src, tgt string) bool {
	_, ok := x.sign(src, tgt)
	return ok
}

// Effect returns the cached classification of (src, tgt), or undefined when
// the pair is absent.
func (x *Index) Effect(src, tgt string, consensus bool) Effect {
	ps, ok := x.sign(src, tgt)
	if !ok {
		return EffectUndefined
	}
	if consensus {
		return ps.consensus
	}
	return ps.plain
}

// IsSigned reports whether (src, tgt) exists and is not undefined.
func (x *Index) IsSigned(src, tgt string, consensus bool) bool {
	ps, ok := x.sign(src, tgt)
	if !ok {
		return false
	}
	if consensus {
		return ps.consensus.Signed()
	}
	return ps.plain.Signed()
}

func (x *Index) sign(src, tgt string) (pairSign, bool) {
	s, ok := x.pool.Lookup(src)
	if !ok {
		return pairSign{}, false
	}
	t, ok := x.pool.Lookup(tgt)
	if !ok {
		return pairSign{}, false
	}
	ps, ok := x.signs[pairKey(s, t)]
	return ps, ok
}

func mergeSorted(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var next string
		switch {
		case j >= len(b) || (i < len(a) && a[i] < b[j]):
			next = a[i]
			i++
		case i >= len(a) || b[j] < a[i]:
			next = b[j]
			j++
		default:
			next = a[i]
			i++
			j++
		}
		out = append(out, next)
	}
	return out
}
