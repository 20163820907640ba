package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsmesh/fabinv/phys"
	"github.com/opsmesh/fabinv/report"
)

// linksCmd represents the links command
var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Show inter-switch fabric links",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, logger := connect(ctx)

		links, err := phys.GetLinks(ctx, s)
		if err != nil {
			logger.Fatal(err)
		}
		report.Render(os.Stdout, phys.LinkTable(links, ""))
	},
}

func init() {
	rootCmd.AddCommand(linksCmd)
}
