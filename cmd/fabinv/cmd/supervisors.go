package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsmesh/fabinv/phys"
	"github.com/opsmesh/fabinv/report"
)

// supervisorsCmd represents the supervisors command
var supervisorsCmd = &cobra.Command{
	Use:   "supervisors",
	Short: "Show the supervisor card inventory",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, logger := connect(ctx)

		supervisors, err := phys.GetSupervisors(ctx, s, nil)
		if err != nil {
			logger.Fatal(err)
		}
		report.Render(os.Stdout, phys.SupervisorTable(supervisors, ""))
	},
}

func init() {
	rootCmd.AddCommand(supervisorsCmd)
}
