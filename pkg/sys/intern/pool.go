// Package intern maps identifier strings to dense uint32 slots.
package intern

const InvalidID uint32 = 0

// Pool interns strings into 1-based ids. 0 is reserved for the empty string.
// A Pool is owned by a single index and is not safe for concurrent writers.
type Pool struct {
	store   map[string]uint32
	reverse []string
}

// New returns an empty pool sized for roughly n identifiers.
func New(n int) *Pool {
	return &Pool{
		store:   make(map[string]uint32, n),
		reverse: make([]string, 0, n),
	}
}

// Get returns the unique ID for s, allocating a new one if necessary.
func (p *Pool) Get(s string) uint32 {
	if s == "" {
		return InvalidID
	}
	if id, ok := p.store[s]; ok {
		return id
	}
	// reverse[id-1] -> string.
	p.reverse = append(p.reverse, s)
	id := uint32(len(p.reverse))
	p.store[s] = id
	return id
}

// Lookup returns the ID for s without allocating.
func (p *Pool) Lookup(s string) (uint32, bool) {
	id, ok := p.store[s]
	return id, ok
}

// Str returns the string for the given ID.
func (p *Pool) Str(id uint32) string {
	idx := int(id) - 1
	if idx < 0 || idx >= len(p.reverse) {
		return ""
	}
	return p.reverse[idx]
}

// Len reports the number of interned strings.
func (p *Pool) Len() int {
	return len(p.reverse)
}
