package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsmesh/fabinv/phys"
	"github.com/opsmesh/fabinv/report"
)

// powersuppliesCmd represents the powersupplies command
var powersuppliesCmd = &cobra.Command{
	Use:   "powersupplies",
	Short: "Show the power supply inventory",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, logger := connect(ctx)

		supplies, err := phys.GetPowersupplies(ctx, s, nil)
		if err != nil {
			logger.Fatal(err)
		}
		report.Render(os.Stdout, phys.PowersupplyTable(supplies, ""))
	},
}

func init() {
	rootCmd.AddCommand(powersuppliesCmd)
}
