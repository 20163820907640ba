package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/opsmesh/fabinv/mo"
	"github.com/opsmesh/fabinv/phys"
	"github.com/opsmesh/fabinv/report"
)

// vnidsCmd represents the vnids command
var vnidsCmd = &cobra.Command{
	Use:   "vnids",
	Short: "Show the vnid to segment dictionary",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		s, logger := connect(ctx)

		w := mo.New(mo.Logger(logger))
		err := w.Query(ctx, s, "/api/mo/sys.json", mo.ClassL3Inst, mo.ClassL3Ctx, mo.ClassL2BD)
		if err != nil {
			logger.Fatal(err)
		}
		report.Render(os.Stdout, phys.VnidTable(w, ""))
	},
}

func init() {
	rootCmd.AddCommand(vnidsCmd)
}
