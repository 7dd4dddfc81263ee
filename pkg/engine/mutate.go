package engine

import "github.com/sysbio-curie/Neko-sub000/pkg/interaction"

// The methods below forward to the network and checkpoint afterwards.

func (e *Engine) AddNode(id string) bool {
	ok := e.Network.AddNode(id)
	e.checkpoint("add_node", map[string]any{"id": id})
	return ok
}

func (e *Engine) RemoveNode(id string) bool {
	ok := e.Network.RemoveNode(id)
	e.checkpoint("remove_node", map[string]any{"id": id})
	return ok
}

func (e *Engine) AddEdge(rec interaction.Record) bool {
	_, ok := e.Network.AddEdge(rec, "add_edge")
	e.checkpoint("add_edge", map[string]any{"source": rec.Source, "target": rec.Target})
	return ok
}

func (e *Engine) RemoveEdge(src, tgt string) bool {
	ok := e.Network.RemoveEdge(src, tgt)
	e.checkpoint("remove_edge", map[string]any{"source": src, "target": tgt})
	return ok
}

func (e *Engine) AddPath(path []string) int {
	n := e.Network.AddPath(path, e.config.Growth.Consensus, "add_path")
	e.checkpoint("add_path", map[string]any{"path": path})
	return n
}

func (e *Engine) RemovePath(path []string) int {
	n := e.Network.RemovePath(path)
	e.checkpoint("remove_path", map[string]any{"path": path})
	return n
}

func (e *Engine) RemoveDisconnected() []string {
	removed := e.Network.RemoveDisconnected()
	e.checkpoint("remove_disconnected_nodes", nil)
	return removed
}

func (e *Engine) RemoveUndefined() int {
	n := e.Network.RemoveUndefined()
	e.checkpoint("remove_undefined_interactions", nil)
	return n
}

func (e *Engine) RemoveBimodal() int {
	n := e.Network.RemoveBimodal()
	e.checkpoint("remove_bimodal_interactions", nil)
	return n
}

func (e *Engine) RenameNode(oldID, newID string) error {
	if err := e.Network.RenameNode(oldID, newID); err != nil {
		return err
	}
	e.checkpoint("rename_node", map[string]any{"old": oldID, "new": newID})
	return nil
}
