package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsmesh/fabinv/phys"
	"github.com/opsmesh/fabinv/report"
)

// interfacesCmd represents the interfaces command
var interfacesCmd = &cobra.Command{
	Use:     "interfaces [port]",
	Short:   "Show physical interfaces, optionally one port",
	Example: "fabinv interfaces eth1/33",
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, logger := connect(ctx)

		ifName := ""
		if len(args) == 1 {
			ifName = args[0]
		}
		interfaces, err := phys.GetInterfaces(ctx, s, ifName)
		if err != nil {
			logger.Fatal(err)
		}
		report.Render(os.Stdout, phys.InterfaceTable(interfaces, ""))
	},
}

func init() {
	rootCmd.AddCommand(interfacesCmd)
}
