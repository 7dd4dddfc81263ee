package commands

import (
	"github.com/spf13/cobra"
)

var exportFlags struct {
	format string
	out    string
	state  string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored network as SIF or BoolNet",
	Long: `Restores the current (or --state) network from the stored history and
writes it as a SIF edge list or BoolNet rules.

With a store configured the model is uploaded under --out; otherwise --out
is a local file.`,
	Example: `  neko export -r db.tsv --store ./runs --format bnet --out model.bnet`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEngine(cmd.Context(), nil, true)
		if err != nil {
			return err
		}
		if exportFlags.state != "" {
			if _, err := e.Checkout(exportFlags.state); err != nil {
				return err
			}
		}
		return writeModel(cmd, e, exportFlags.format, exportFlags.out)
	},
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.format, "format", "sif", "Model format (sif, bnet)")
	f.StringVarP(&exportFlags.out, "out", "o", "network.sif", "Destination file or store key")
	f.StringVar(&exportFlags.state, "state", "", "History state id to export")
}
