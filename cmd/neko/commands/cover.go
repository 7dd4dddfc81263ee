package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
	"github.com/sysbio-curie/Neko-sub000/pkg/paths"
)

var coverFlags struct {
	depth int
	rank  int
}

var coverCmd = &cobra.Command{
	Use:   "cover TARGET...",
	Short: "Find a small set of regulators covering the targets",
	Long: `Greedily selects direct upstream regulators of the targets. With --depth
above one the selection is repeated on the chosen regulators, and the
regulator -> target edges of every round are printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadResource()
		if err != nil {
			return err
		}
		idx := interaction.NewIndex(res)
		w := cmd.OutOrStdout()

		if coverFlags.depth <= 1 {
			cover := paths.MinimalCoveringRegulators(paths.RegulatorMap(idx, args), args, coverFlags.rank)
			fmt.Fprintf(w, "regulators: %s\n", strings.Join(cover.Regulators, ", "))
			if !cover.Complete {
				fmt.Fprintf(w, "uncovered: %s\n", strings.Join(cover.Uncovered, ", "))
			}
			fmt.Fprintf(w, "rounds: %d\n", cover.Rounds)
			return nil
		}

		cascade := paths.UpstreamCascades(idx, args, coverFlags.depth, coverFlags.rank, paths.WithLogger(logger))
		for _, e := range cascade.Edges {
			fmt.Fprintf(w, "%s %s %s\n", e.Source, arrow(idx.Effect(e.Source, e.Target, false)), e.Target)
		}
		fmt.Fprintf(w, "rounds: %d complete: %t\n", cascade.Rounds, cascade.Complete)
		return nil
	},
}

func init() {
	coverCmd.Flags().IntVar(&coverFlags.depth, "depth", 1, "Cascade depth")
	coverCmd.Flags().IntVar(&coverFlags.rank, "rank", 1, "Distinct target counts selected per round")
}
