package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
	"github.com/sysbio-curie/Neko-sub000/pkg/paths"
)

var pathsFlags struct {
	maxLen     int
	all        bool
	onlySigned bool
	consensus  bool
	loops      bool
}

var pathsCmd = &cobra.Command{
	Use:   "paths SOURCE [TARGET]",
	Short: "Search paths in the resource",
	Long: `Prints the shortest path from SOURCE to TARGET, or every path up to
--max-len with --all. Without TARGET, --all lists every path of exactly
--max-len edges, or every loop through SOURCE with --loops.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadResource()
		if err != nil {
			return err
		}
		idx := interaction.NewIndex(res)
		opts := []paths.Option{
			paths.WithMaxLen(pathsFlags.maxLen),
			paths.WithOnlySigned(pathsFlags.onlySigned),
			paths.WithConsensus(pathsFlags.consensus),
			paths.WithLoops(pathsFlags.loops),
			paths.WithLogger(logger),
		}

		var ends []string
		if len(args) == 2 {
			ends = args[1:]
		}
		w := cmd.OutOrStdout()
		if !pathsFlags.all {
			if len(ends) == 0 {
				return errors.New("shortest path needs a TARGET")
			}
			p := paths.BFS(idx, args[0], ends[0], opts...)
			if len(p) == 0 {
				fmt.Fprintf(w, "no path from %s to %s\n", args[0], ends[0])
				return nil
			}
			printPath(w, idx, p, pathsFlags.consensus)
			return nil
		}

		found := paths.FindPaths(idx, args[:1], ends, opts...)
		for _, p := range found {
			printPath(w, idx, p, pathsFlags.consensus)
		}
		fmt.Fprintf(w, "%d paths\n", len(found))
		return nil
	},
}

func init() {
	f := pathsCmd.Flags()
	f.IntVar(&pathsFlags.maxLen, "max-len", 0, "Path length ceiling in edges; 0 uses the search default")
	f.BoolVar(&pathsFlags.all, "all", false, "Enumerate every path instead of the shortest")
	f.BoolVar(&pathsFlags.onlySigned, "only-signed", false, "Skip unsigned interactions")
	f.BoolVar(&pathsFlags.consensus, "consensus", false, "Classify by consensus columns")
	f.BoolVar(&pathsFlags.loops, "loops", false, "Report loops back to SOURCE")
}

func printPath(w io.Writer, idx *interaction.Index, p []string, consensus bool) {
	var b strings.Builder
	b.WriteString(p[0])
	for i := 1; i < len(p); i++ {
		fmt.Fprintf(&b, " %s %s", arrow(idx.Effect(p[i-1], p[i], consensus)), p[i])
	}
	fmt.Fprintln(w, b.String())
}
