package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsmesh/fabinv/phys"
	"github.com/opsmesh/fabinv/report"
)

// nodesCmd represents the nodes command
var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Show basic information for every fabric node",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, logger := connect(ctx)

		nodes, err := phys.GetNodes(ctx, s)
		if err != nil {
			logger.Fatal(err)
		}
		for _, node := range nodes {
			w, err := node.WorkingData(ctx, s)
			if err != nil {
				logger.Fatal(err)
			}
			node.Enrich(w)
			if err := node.GetHealth(ctx, s); err != nil {
				logger.Fatal(err)
			}
		}

		report.Render(os.Stdout, phys.NodeTable(nodes, ""))
	},
}

func init() {
	rootCmd.AddCommand(nodesCmd)
}
