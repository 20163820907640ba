package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsmesh/fabinv/phys"
	"github.com/opsmesh/fabinv/report"
)

// fantraysCmd represents the fantrays command
var fantraysCmd = &cobra.Command{
	Use:   "fantrays",
	Short: "Show fan trays and their fans",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, logger := connect(ctx)

		fantrays, err := phys.GetFantrays(ctx, s, nil)
		if err != nil {
			logger.Fatal(err)
		}
		report.Render(os.Stdout, phys.FantrayTable(fantrays, ""))
	},
}

func init() {
	rootCmd.AddCommand(fantraysCmd)
}
