package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsmesh/fabinv/phys"
	"github.com/opsmesh/fabinv/report"
)

// switchesCmd represents the switches command
var switchesCmd = &cobra.Command{
	Use:   "switches",
	Short: "Show unmanaged switches attached to the fabric",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, logger := connect(ctx)

		switches, err := phys.GetExternalSwitches(ctx, s)
		if err != nil {
			logger.Fatal(err)
		}
		report.Render(os.Stdout, phys.ExternalSwitchTable(switches, ""))
	},
}

func init() {
	rootCmd.AddCommand(switchesCmd)
}
