package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thoree/pedtools/pkg/pedio"
)

// tableCommand creates the table export command.
func (c *CLI) tableCommand() *cobra.Command {
	var output, chrom string

	cmd := &cobra.Command{
		Use:   "table [file]",
		Short: "Export a pedigree and its markers as a tab-separated table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ped, set, err := pedio.ReadFile(args[0])
			if err != nil {
				return err
			}

			if chrom != "" {
				set = set.OnChromosome(chrom)
			}

			if output == "" {
				return pedio.WriteTable(os.Stdout, ped, set)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := pedio.WriteTable(f, ped, set); err != nil {
				return err
			}
			printSuccess("Wrote table for %d members, %d markers", ped.Size(), set.Len())
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&chrom, "chrom", "", "only include markers on this chromosome")
	return cmd
}
