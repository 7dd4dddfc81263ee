package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sysbio-curie/Neko-sub000/pkg/network"
)

var (
	// ErrStateNotFound is returned for an unknown state id.
	ErrStateNotFound = errors.New("history: state not found")

	// ErrEmptyHistory is returned when an operation needs at least one state.
	ErrEmptyHistory = errors.New("history: no saved states")
)

// Tree is a branching history of network snapshots. The current pointer
// marks the state the live network was last saved as or restored from.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	states  map[string]*State
	order   []string
	root    string
	current string
	seq     int

	maxStates int
	now       func() time.Time
	newID     func() string
}

// Option configures a Tree.
type Option func(*Tree)

// WithMaxStates bounds the number of retained states. Zero keeps all.
func WithMaxStates(n int) Option {
	return func(t *Tree) {
		t.maxStates = n
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(t *Tree) {
		if now != nil {
			t.now = now
		}
	}
}

// NewTree returns an empty history.
func NewTree(opts ...Option) *Tree {
	t := &Tree{
		states: make(map[string]*State),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Len returns the number of retained states.
func (t *Tree) Len() int {
	return len(t.states)
}

// Save deep-copies snap into a new state attached as a child of the current
// state and advances the pointer to it. The first saved state is the root.
func (t *Tree) Save(snap network.Snapshot, meta Metadata) State {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = t.now().UTC()
	}
	t.seq++
	s := &State{
		ID:       t.newID(),
		Seq:      t.seq,
		Snapshot: cloneSnapshot(snap),
		Metadata: meta,
		ParentID: t.current,
	}
	s.Metadata.Args = copyArgs(meta.Args)

	if parent, ok := t.states[t.current]; ok {
		parent.ChildIDs = append(parent.ChildIDs, s.ID)
	} else {
		t.root = s.ID
	}
	t.states[s.ID] = s
	t.order = append(t.order, s.ID)
	t.current = s.ID

	t.prune()
	return s.clone()
}

// Current returns the state under the pointer.
func (t *Tree) Current() (State, bool) {
	s, ok := t.states[t.current]
	if !ok {
		return State{}, false
	}
	return s.clone(), true
}

// Root returns the first saved state.
func (t *Tree) Root() (State, bool) {
	s, ok := t.states[t.root]
	if !ok {
		return State{}, false
	}
	return s.clone(), true
}

// State returns the state with the given id.
func (t *Tree) State(id string) (State, error) {
	s, ok := t.states[id]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrStateNotFound, id)
	}
	return s.clone(), nil
}

// Children returns the children of id, oldest first.
func (t *Tree) Children(id string) ([]State, error) {
	s, ok := t.states[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStateNotFound, id)
	}
	out := make([]State, 0, len(s.ChildIDs))
	for _, c := range s.ChildIDs {
		out = append(out, t.states[c].clone())
	}
	return out, nil
}

// Undo moves the pointer to the parent of the current state and returns it.
// ok is false at the root or on an empty tree.
func (t *Tree) Undo() (State, bool) {
	cur, ok := t.states[t.current]
	if !ok {
		return State{}, false
	}
	parent, ok := t.states[cur.ParentID]
	if !ok {
		return State{}, false
	}
	t.current = parent.ID
	return parent.clone(), true
}

// Redo moves the pointer to the most recent child of the current state.
// ok is false when the current state is a leaf.
func (t *Tree) Redo() (State, bool) {
	cur, ok := t.states[t.current]
	if !ok || len(cur.ChildIDs) == 0 {
		return State{}, false
	}
	child := t.states[cur.ChildIDs[len(cur.ChildIDs)-1]]
	t.current = child.ID
	return child.clone(), true
}

// Relabel sets the label of state id and returns the updated state.
func (t *Tree) Relabel(id, label string) (State, error) {
	s, ok := t.states[id]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrStateNotFound, id)
	}
	s.Metadata.Label = label
	return s.clone(), nil
}

// Checkout moves the pointer to id. Saving afterwards starts a new branch.
func (t *Tree) Checkout(id string) (State, error) {
	s, ok := t.states[id]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrStateNotFound, id)
	}
	t.current = id
	return s.clone(), nil
}

// Compare returns what changed from state a to state b.
func (t *Tree) Compare(a, b string) (Diff, error) {
	sa, ok := t.states[a]
	if !ok {
		return Diff{}, fmt.Errorf("%w: %s", ErrStateNotFound, a)
	}
	sb, ok := t.states[b]
	if !ok {
		return Diff{}, fmt.Errorf("%w: %s", ErrStateNotFound, b)
	}
	return diff(sa.Snapshot, sb.Snapshot), nil
}

// List returns every retained state in creation order.
func (t *Tree) List() []State {
	out := make([]State, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.states[id].clone())
	}
	return out
}

// Reset discards the whole history.
func (t *Tree) Reset() {
	t.states = make(map[string]*State)
	t.order = nil
	t.root, t.current = "", ""
	t.seq = 0
}

// SetMaxStates changes the retention bound and prunes immediately.
func (t *Tree) SetMaxStates(n int) {
	t.maxStates = n
	t.prune()
}

// prune drops the oldest states that are neither the root nor the current
// state until the bound holds. Children of a dropped state are re-parented
// to its parent, so a linear history stays bounded and undo still walks back
// to the root.
func (t *Tree) prune() {
	if t.maxStates <= 0 {
		return
	}
	for len(t.states) > t.maxStates {
		victim := ""
		for _, id := range t.order {
			if id != t.root && id != t.current {
				victim = id
				break
			}
		}
		if victim == "" {
			return
		}
		t.drop(victim)
	}
}

func (t *Tree) drop(id string) {
	s := t.states[id]
	for _, c := range s.ChildIDs {
		if child, ok := t.states[c]; ok {
			child.ParentID = s.ParentID
		}
	}
	if parent, ok := t.states[s.ParentID]; ok {
		kept := make([]string, 0, len(parent.ChildIDs)+len(s.ChildIDs))
		for _, c := range parent.ChildIDs {
			if c == id {
				kept = append(kept, s.ChildIDs...)
				continue
			}
			kept = append(kept, c)
		}
		parent.ChildIDs = kept
	}
	delete(t.states, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}
