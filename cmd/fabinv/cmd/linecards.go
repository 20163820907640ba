package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsmesh/fabinv/phys"
	"github.com/opsmesh/fabinv/report"
)

// linecardsCmd represents the linecards command
var linecardsCmd = &cobra.Command{
	Use:   "linecards",
	Short: "Show the linecard inventory",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, logger := connect(ctx)

		linecards, err := phys.GetLinecards(ctx, s, nil)
		if err != nil {
			logger.Fatal(err)
		}
		report.Render(os.Stdout, phys.LinecardTable(linecards, ""))
	},
}

func init() {
	rootCmd.AddCommand(linecardsCmd)
}
