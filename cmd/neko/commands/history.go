package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sysbio-curie/Neko-sub000/pkg/history"
)

var historyFlags struct {
	dot     bool
	compare []string
	keys    bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the stored state history",
	Example: `  neko history --store ./runs
  neko history --store ./runs --dot | dot -Tpng > history.png
  neko history --store s3://lab-bucket/neko --compare <id>,<id>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		blobs, err := openStore(ctx)
		if err != nil {
			return err
		}
		if blobs == nil {
			return errNoStore
		}
		store := history.NewStore(blobs)
		w := cmd.OutOrStdout()

		if historyFlags.keys {
			keys, err := store.Keys(ctx, "")
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(w, k)
			}
			return nil
		}

		tree, err := store.Load(ctx, cfg.History.Key)
		if err != nil {
			return err
		}
		switch {
		case historyFlags.dot:
			fmt.Fprint(w, tree.DOT())
		case len(historyFlags.compare) == 2:
			d, err := tree.Compare(historyFlags.compare[0], historyFlags.compare[1])
			if err != nil {
				return err
			}
			renderDiff(w, d)
		case len(historyFlags.compare) != 0:
			return fmt.Errorf("--compare takes two state ids, got %d", len(historyFlags.compare))
		default:
			renderStates(w, tree)
		}
		return nil
	},
}

func init() {
	f := historyCmd.Flags()
	f.BoolVar(&historyFlags.dot, "dot", false, "Print the tree in Graphviz DOT")
	f.StringSliceVar(&historyFlags.compare, "compare", nil, "Diff two states: FROM,TO")
	f.BoolVar(&historyFlags.keys, "keys", false, "List the documents in the store")
	f.String("key", cfg.History.Key, "History document key")
	bind(f, map[string]string{"history.key": "key"})
}

func renderStates(w io.Writer, tree *history.Tree) {
	title := titleStyle()
	current := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF99"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))

	cur, _ := tree.Current()
	fmt.Fprintln(w, title.Render(fmt.Sprintf("HISTORY (%d states)", tree.Len())))
	for _, s := range tree.List() {
		label := s.Metadata.Method
		if s.Metadata.Label != "" {
			label += " " + s.Metadata.Label
		}
		line := fmt.Sprintf("  %3d  %-28s nodes %-4d edges %-4d %s",
			s.Seq, label, len(s.Snapshot.Nodes), len(s.Snapshot.Edges), s.Metadata.Timestamp.Format("15:04:05"))
		if s.ID == cur.ID {
			fmt.Fprintln(w, current.Render("* "+strings.TrimPrefix(line, "  ")))
		} else {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w, dim.Render("       "+s.ID))
	}
}

func renderDiff(w io.Writer, d history.Diff) {
	if d.Empty() {
		fmt.Fprintln(w, "no differences")
		return
	}
	add := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF99"))
	del := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	for _, n := range d.AddedNodes {
		fmt.Fprintln(w, add.Render("+ node "+n))
	}
	for _, n := range d.RemovedNodes {
		fmt.Fprintln(w, del.Render("- node "+n))
	}
	for _, k := range d.AddedEdges {
		fmt.Fprintln(w, add.Render(fmt.Sprintf("+ edge %s %s %s", k.Source, arrow(k.Effect), k.Target)))
	}
	for _, k := range d.RemovedEdges {
		fmt.Fprintln(w, del.Render(fmt.Sprintf("- edge %s %s %s", k.Source, arrow(k.Effect), k.Target)))
	}
	for _, k := range d.ProvenanceChanged {
		fmt.Fprintf(w, "~ provenance %s %s %s\n", k.Source, arrow(k.Effect), k.Target)
	}
}
