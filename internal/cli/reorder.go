package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thoree/pedtools/pkg/marker"
	"github.com/thoree/pedtools/pkg/pedio"
)

// reorderCommand creates the reorder command.
func (c *CLI) reorderCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "reorder [file]",
		Short: "Rewrite a pedigree so parents precede their children",
		Long: `Reorder reads a pedigree definition and permutes its members so that every
parent appears before each of their children, keeping the original order as
far as possible. Markers are carried over unchanged. The result is written
to stdout or to --output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ped, set, err := pedio.ReadFile(args[0])
			if err != nil {
				return err
			}

			if ped.HasParentsBeforeChildren() {
				c.Logger.Debug("already in parents-first order", "file", args[0])
			}

			reordered, err := ped.ParentsBeforeChildren()
			if err != nil {
				return err
			}

			// Genotypes follow members by label, not by position.
			moved, err := marker.Transfer(set, ped, reordered)
			if err != nil {
				return err
			}

			if output == "" {
				return pedio.Write(os.Stdout, reordered, moved)
			}
			if err := pedio.WriteFile(output, reordered, moved); err != nil {
				return err
			}
			printSuccess("Reordered %d members", reordered.Size())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
