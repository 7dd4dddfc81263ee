package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sysbio-curie/Neko-sub000/pkg/interaction"
	"github.com/sysbio-curie/Neko-sub000/pkg/network"
)

var compareCmd = &cobra.Command{
	Use:   "compare FIRST.sif SECOND.sif",
	Short: "Classify the interactions and nodes of two SIF networks",
	Long: `Reads two SIF networks and labels every source -> target pair as unique
to one network, common, or conflicting when both carry the pair with
different effects. Nodes are listed as unique or common.

The resource is optional and only contributes references.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res := interaction.NewResource(nil)
		if cfg.Resource.Path != "" {
			loaded, err := loadResource()
			if err != nil {
				return err
			}
			res = loaded
		}

		nets := make([]*network.Network, 0, len(args))
		for _, path := range args {
			n, err := readSIF(path, res)
			if err != nil {
				return err
			}
			nets = append(nets, n)
		}

		c := network.Compare(nets[0], nets[1])
		w := cmd.OutOrStdout()
		for _, p := range c.Interactions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Source, p.Target, p.Category, effects(p.First), effects(p.Second))
		}
		for _, n := range c.Nodes {
			fmt.Fprintf(w, "%s\t%s\n", n.ID, n.Category)
		}
		fmt.Fprintf(w, "common: %d conflicting: %d unique: %d/%d\n",
			c.Count(network.Common), c.Count(network.Conflicting),
			c.Count(network.UniqueToFirst), c.Count(network.UniqueToSecond))
		return nil
	},
}

func readSIF(path string, res *interaction.Resource) (*network.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open network: %w", err)
	}
	defer f.Close()
	n, err := network.FromSIF(f, res, network.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return n, nil
}

func effects(fx []interaction.Effect) string {
	if len(fx) == 0 {
		return "-"
	}
	s := make([]string, len(fx))
	for i, e := range fx {
		s[i] = string(e)
	}
	return strings.Join(s, ",")
}
