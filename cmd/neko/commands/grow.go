package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sysbio-curie/Neko-sub000/pkg/engine"
	"github.com/sysbio-curie/Neko-sub000/pkg/export"
	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
	"github.com/sysbio-curie/Neko-sub000/pkg/network"
	"github.com/sysbio-curie/Neko-sub000/pkg/strategy"
)

var errUnknownStrategy = errors.New("unknown strategy")

var growFlags struct {
	seeds     []string
	strategy  string
	group     []string
	targets   []string
	mode      string
	baseline  string
	phenotype string
	accession string
	compress  bool
	resume    bool
	format    string
	out       string
}

var growCmd = &cobra.Command{
	Use:   "grow",
	Short: "Grow a network from seed genes",
	Long: `Seeds a network and applies one growth strategy against the resource.

Strategies: complete, nodes, subgroup, component, radial, upstream, atopo, phenotype.`,
	Example: `  neko grow -r db.tsv --seeds SRC,AKT1,MAPK1
  neko grow -r db.tsv --seeds TP53 --strategy radial --mode ALL --max-len 1
  neko grow --store ./runs --resume --strategy upstream --targets MYC --depth 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEngine(ctx, growFlags.seeds, growFlags.resume)
		if err != nil {
			return err
		}

		rep, err := runStrategy(cmd, e)
		if err != nil {
			return err
		}
		renderReport(cmd.OutOrStdout(), rep, e.Network)

		if growFlags.out != "" {
			if err := writeModel(cmd, e, growFlags.format, growFlags.out); err != nil {
				return err
			}
		}
		if cfg.History.Store != "" {
			return e.Persist(ctx)
		}
		return nil
	},
}

func init() {
	f := growCmd.Flags()
	f.StringSliceVarP(&growFlags.seeds, "seeds", "s", nil, "Seed genes")
	f.StringVar(&growFlags.strategy, "strategy", "complete", "Growth strategy")
	f.StringSliceVar(&growFlags.group, "group", nil, "Subgroup, first component or phenotype genes")
	f.StringSliceVar(&growFlags.targets, "targets", nil, "Second component, upstream targets or atopo outputs")
	f.StringVar(&growFlags.mode, "mode", "OUT", "Direction for component and radial growth (OUT, IN, ALL)")
	f.StringVar(&growFlags.baseline, "baseline", "radial", "Baseline strategy for atopo (radial, complete, none)")
	f.StringVar(&growFlags.phenotype, "phenotype", "", "Phenotype name")
	f.StringVar(&growFlags.accession, "accession", "", "Phenotype accession, e.g. GO:0006915")
	f.BoolVar(&growFlags.compress, "compress", false, "Collapse phenotype markers into one node")
	f.BoolVar(&growFlags.resume, "resume", false, "Continue from the stored history")
	f.StringVar(&growFlags.format, "format", "sif", "Model format (sif, bnet)")
	f.StringVarP(&growFlags.out, "out", "o", "", "Write the model to this file or store key")

	f.Int("max-len", cfg.Growth.MaxLen, "Path search ceiling in edges")
	f.Bool("only-signed", cfg.Growth.OnlySigned, "Skip unsigned interactions")
	f.Bool("consensus", cfg.Growth.Consensus, "Classify by consensus columns")
	f.Bool("loops", cfg.Growth.Loops, "Allow loops in enumerated paths")
	f.Bool("minimal", cfg.Growth.Minimal, "Rebuild the live index after every splice")
	f.String("algorithm", cfg.Growth.Algorithm, "Search algorithm (dfs, bfs)")
	f.Bool("connect-with-bias", cfg.Growth.ConnectWithBias, "Skip the direct-edge pass of complete")
	f.Int("depth", cfg.Growth.Depth, "Upstream cascade depth")
	f.Int("rank", cfg.Growth.Rank, "Regulators selected per cascade round")

	bind(f, map[string]string{
		"growth.max_len":           "max-len",
		"growth.only_signed":       "only-signed",
		"growth.consensus":         "consensus",
		"growth.loops":             "loops",
		"growth.minimal":           "minimal",
		"growth.algorithm":         "algorithm",
		"growth.connect_with_bias": "connect-with-bias",
		"growth.depth":             "depth",
		"growth.rank":              "rank",
	})
}

func runStrategy(cmd *cobra.Command, e *engine.Engine) (strategy.Report, error) {
	ctx := cmd.Context()
	o := e.Options()
	g := cfg.Growth

	switch strings.ToLower(growFlags.strategy) {
	case "complete":
		return e.CompleteConnection(ctx, o), nil
	case "nodes":
		return e.ConnectNodes(ctx, o), nil
	case "subgroup":
		return e.ConnectSubgroup(ctx, growFlags.group, o), nil
	case "component":
		return e.ConnectComponent(ctx, growFlags.group, growFlags.targets, growFlags.mode, o)
	case "radial":
		return e.ConnectRadially(ctx, o.MaxLen, growFlags.mode, o)
	case "upstream":
		targets := growFlags.targets
		if len(targets) == 0 {
			targets = e.Network.Seeds()
		}
		return e.ConnectUpstream(ctx, targets, g.Depth, g.Rank, o), nil
	case "atopo":
		return e.ConnectAsAtopo(ctx, growFlags.baseline, o.MaxLen, growFlags.targets, o)
	case "phenotype":
		return e.ConnectToPhenotype(ctx, strategy.PhenotypeRequest{
			Name:      growFlags.phenotype,
			Accession: growFlags.accession,
			Genes:     growFlags.group,
			Compress:  growFlags.compress,
		}, o)
	}
	return strategy.Report{}, fmt.Errorf("%w: %q", errUnknownStrategy, growFlags.strategy)
}

// writeModel uploads to the store when one is configured and writes a local
// file otherwise.
func writeModel(cmd *cobra.Command, e *engine.Engine, format, out string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	if cfg.History.Store != "" {
		return e.Export(cmd.Context(), f, out)
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer file.Close()
	if err := export.Write(file, f, e.Network, export.WithLogger(logger)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "model written to %s\n", out)
	return nil
}

func renderReport(w io.Writer, rep strategy.Report, net *network.Network) {
	title := titleStyle()
	warn := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))

	fmt.Fprintln(w, title.Render(strings.ToUpper(rep.Strategy)))
	fmt.Fprintf(w, "  nodes %d  edges %d  added %d\n", net.NodeCount(), net.EdgeCount(), rep.EdgesAdded)
	if len(rep.NodesRemoved) > 0 {
		fmt.Fprintf(w, "  removed %s\n", strings.Join(rep.NodesRemoved, ", "))
	}
	if len(rep.Unconnected) > 0 {
		fmt.Fprintln(w, warn.Render(fmt.Sprintf("  %d pairs left unconnected", len(rep.Unconnected))))
		for _, p := range rep.Unconnected {
			fmt.Fprintln(w, dim.Render(fmt.Sprintf("    %s -> %s", p.Source, p.Target)))
		}
	}
	if rep.Incomplete {
		fmt.Fprintln(w, warn.Render("  incomplete"))
	}
	fmt.Fprintln(w)
	for _, edge := range net.Edges() {
		fmt.Fprintf(w, "  %s %s %s\n", edge.Source, arrow(edge.Effect), edge.Target)
	}
}

func arrow(e interaction.Effect) string {
	switch e {
	case interaction.EffectStimulation:
		return "->"
	case interaction.EffectInhibition:
		return "-|"
	case interaction.EffectBimodal:
		return "-+|"
	case interaction.EffectFormComplex:
		return "-&"
	}
	return "--"
}
