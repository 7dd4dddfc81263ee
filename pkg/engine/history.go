package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sysbio-curie/Neko-sub000/pkg/history"
	"github.com/sysbio-curie/Neko-sub000/pkg/storage"
)

// ErrNoStore is returned by persistence calls on an engine without a store.
var ErrNoStore = errors.New("engine: no store configured")

// checkpoint saves the network when tracking is on and not suspended.
func (e *Engine) checkpoint(method string, args map[string]any) {
	if !e.tracking || e.suspended > 0 {
		return
	}
	e.History.Save(e.Network.Snapshot(), history.Metadata{Method: method, Args: args})
}

// SaveState records an explicit checkpoint regardless of tracking. When the
// network still matches the current state, that state is relabelled instead
// so undo keeps stepping back over real changes.
func (e *Engine) SaveState(label string) history.State {
	snap := e.Network.Snapshot()
	if cur, ok := e.History.Current(); ok && history.SameTables(cur.Snapshot, snap) {
		if label == "" {
			return cur
		}
		s, err := e.History.Relabel(cur.ID, label)
		if err == nil {
			return s
		}
	}
	return e.History.Save(snap, history.Metadata{Method: "save_state", Label: label})
}

// SetTracking turns automatic checkpoints on or off.
func (e *Engine) SetTracking(on bool) {
	e.tracking = on
}

// Tracking reports whether automatic checkpoints are on.
func (e *Engine) Tracking() bool {
	return e.tracking
}

// Suspend runs fn without intermediate checkpoints and records a single
// checkpoint named method afterwards, even when fn fails.
func (e *Engine) Suspend(method string, fn func() error) error {
	e.suspended++
	err := fn()
	e.suspended--
	e.checkpoint(method, nil)
	return err
}

// Undo restores the parent of the current state. ok is false at the root.
func (e *Engine) Undo() (history.State, bool) {
	s, ok := e.History.Undo()
	if ok {
		e.Network.Restore(s.Snapshot)
	}
	return s, ok
}

// Redo restores the most recent child of the current state.
func (e *Engine) Redo() (history.State, bool) {
	s, ok := e.History.Redo()
	if ok {
		e.Network.Restore(s.Snapshot)
	}
	return s, ok
}

// Checkout restores state id. Later checkpoints branch from it.
func (e *Engine) Checkout(id string) (history.State, error) {
	s, err := e.History.Checkout(id)
	if err != nil {
		return history.State{}, err
	}
	e.Network.Restore(s.Snapshot)
	return s, nil
}

// Compare diffs two states.
func (e *Engine) Compare(a, b string) (history.Diff, error) {
	return e.History.Compare(a, b)
}

// Persist writes the history tree to the configured store.
func (e *Engine) Persist(ctx context.Context) error {
	if e.blobs == nil {
		return ErrNoStore
	}
	_, span := e.Tracer.Start(ctx, "Engine.Persist")
	defer span.End()

	key := e.config.History.Key
	if err := history.NewStore(e.blobs).Save(ctx, key, e.History); err != nil {
		span.RecordError(err)
		return err
	}
	e.Logger.Info("history saved", "key", key, "states", e.History.Len())
	return nil
}

// Resume replaces the history with the stored tree and restores its current
// state. A missing document leaves the engine untouched and reports false.
func (e *Engine) Resume(ctx context.Context) (bool, error) {
	if e.blobs == nil {
		return false, ErrNoStore
	}
	key := e.config.History.Key
	tree, err := history.NewStore(e.blobs).Load(ctx, key, history.WithMaxStates(e.config.History.MaxStates))
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	cur, ok := tree.Current()
	if !ok {
		return false, fmt.Errorf("resume %s: %w", key, history.ErrEmptyHistory)
	}
	e.History = tree
	e.Network.Restore(cur.Snapshot)
	e.Logger.Info("history resumed", "key", key, "state", cur.ID, "states", tree.Len())
	return true, nil
}
