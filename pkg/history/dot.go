package history

import (
	"fmt"
	"sort"
	"strings"
)

// DOT renders the tree as a Graphviz digraph. The current state is drawn
// bold.
func (t *Tree) DOT() string {
	var b strings.Builder
	b.WriteString("digraph history {\n")
	b.WriteString("  node [shape=box];\n")
	for _, id := range t.order {
		s := t.states[id]
		attrs := fmt.Sprintf("label=%q", Describe(*s))
		if id == t.current {
			attrs += ", style=bold"
		}
		fmt.Fprintf(&b, "  %q [%s];\n", id, attrs)
	}
	for _, id := range t.order {
		for _, c := range t.states[id].ChildIDs {
			fmt.Fprintf(&b, "  %q -> %q;\n", id, c)
		}
	}
	b.WriteString("}\n")
	return b.String()
}

// Describe renders a one-state summary: sequence number, label and the
// producing call.
func Describe(s State) string {
	lines := []string{fmt.Sprintf("State %d", s.Seq)}
	if s.Metadata.Label != "" {
		lines = append(lines, s.Metadata.Label)
	}
	if s.Metadata.Method != "" {
		lines = append(lines, fmt.Sprintf("%s(%s)", s.Metadata.Method, formatArgs(s.Metadata.Args)))
	}
	return strings.Join(lines, "\n")
}

func formatArgs(args map[string]any) string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, args[k]))
	}
	return strings.Join(parts, ", ")
}
