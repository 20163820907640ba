package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsmesh/fabinv/phys"
	"github.com/opsmesh/fabinv/report"
)

// processesCmd represents the processes command
var processesCmd = &cobra.Command{
	Use:   "processes",
	Short: "Show switch processes with cpu and memory stats",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, logger := connect(ctx)

		processes, err := phys.GetProcesses(ctx, s)
		if err != nil {
			logger.Fatal(err)
		}
		report.Render(os.Stdout, phys.ProcessTable(processes, ""))
	},
}

func init() {
	rootCmd.AddCommand(processesCmd)
}
