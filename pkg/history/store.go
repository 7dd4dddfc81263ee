package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sysbio-curie/Neko-sub000/pkg/storage"
)

// ErrCorrupt is returned when a persisted history is inconsistent.
var ErrCorrupt = errors.New("history: corrupt document")

const documentVersion = 1

type document struct {
	Version   int     `json:"version"`
	Root      string  `json:"root"`
	Current   string  `json:"current"`
	Seq       int     `json:"seq"`
	MaxStates int     `json:"max_states,omitempty"`
	States    []State `json:"states"`
}

// Store persists whole trees as JSON documents in a BlobStore.
type Store struct {
	blobs storage.BlobStore
}

// NewStore wraps a blob store.
func NewStore(blobs storage.BlobStore) *Store {
	return &Store{blobs: blobs}
}

// Save writes t under key.
func (s *Store) Save(ctx context.Context, key string, t *Tree) error {
	doc := document{
		Version:   documentVersion,
		Root:      t.root,
		Current:   t.current,
		Seq:       t.seq,
		MaxStates: t.maxStates,
		States:    t.List(),
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.blobs.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save history %s: %w", key, err)
	}
	return nil
}

// Load reads the tree stored under key. A missing key yields
// storage.ErrNotFound.
func (s *Store) Load(ctx context.Context, key string, opts ...Option) (*Tree, error) {
	data, err := s.blobs.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load history %s: %w", key, err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, doc.Version)
	}

	t := NewTree(append([]Option{WithMaxStates(doc.MaxStates)}, opts...)...)
	for i := range doc.States {
		st := doc.States[i]
		if _, dup := t.states[st.ID]; dup || st.ID == "" {
			return nil, fmt.Errorf("%w: duplicate or empty state id %q", ErrCorrupt, st.ID)
		}
		t.states[st.ID] = &st
		t.order = append(t.order, st.ID)
	}
	for _, st := range t.states {
		if st.ParentID != "" {
			if _, ok := t.states[st.ParentID]; !ok {
				return nil, fmt.Errorf("%w: state %s has unknown parent %s", ErrCorrupt, st.ID, st.ParentID)
			}
		}
		for _, c := range st.ChildIDs {
			if _, ok := t.states[c]; !ok {
				return nil, fmt.Errorf("%w: state %s has unknown child %s", ErrCorrupt, st.ID, c)
			}
		}
	}
	if len(t.states) > 0 {
		if _, ok := t.states[doc.Root]; !ok {
			return nil, fmt.Errorf("%w: unknown root %s", ErrCorrupt, doc.Root)
		}
		if _, ok := t.states[doc.Current]; !ok {
			return nil, fmt.Errorf("%w: unknown current state %s", ErrCorrupt, doc.Current)
		}
	}
	t.root, t.current, t.seq = doc.Root, doc.Current, doc.Seq
	return t, nil
}

// Keys lists the stored histories under prefix.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	return s.blobs.List(ctx, prefix)
}
