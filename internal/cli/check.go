package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoree/pedtools/pkg/pedio"
)

// checkCommand creates the check command for validating pedigree files.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a pedigree definition file",
		Long: `Check reads a pedigree definition, validates its structure (unique labels,
both-or-neither parents, acyclic parentage) and its markers (allele
frequencies, genotype codes), and reports summary statistics.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ped, set, err := pedio.ReadFile(args[0])
			if err != nil {
				printError("Validation failed")
				return err
			}

			printSuccess("%s is a valid pedigree", args[0])
			printStats(ped.Size(), set.Len(), false)
			printDetail("founders: %d, nonfounders: %d",
				len(ped.Founders()), len(ped.Nonfounders()))

			if !ped.IsConnected() {
				printWarning("pedigree is not connected")
			}
			if !ped.HasParentsBeforeChildren() {
				printInfo("members are not in parents-first order")
				printNextStep("Reorder with", fmt.Sprintf("pedtools reorder %s", args[0]))
			}
			return nil
		},
	}
}
