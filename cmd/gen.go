// cmd/gen.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageflight/pageflight/internal/fixture"
	"github.com/pageflight/pageflight/internal/graphio"
)

var (
	genShape          string
	genCount          int
	genTransferSize   int64
	genSSL            bool
	genSameConnection bool
)

var genCmd = &cobra.Command{
	Use:   "gen <out.json>",
	Short: "Generate a synthetic dependency graph fixture (chain, fanout, or diamond)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shape := fixture.Shape(genShape)
		switch shape {
		case fixture.ShapeChain, fixture.ShapeFanOut, fixture.ShapeDiamond:
		default:
			return fmt.Errorf("unknown shape %q; valid options: chain, fanout, diamond", genShape)
		}

		g := fixture.Build(fixture.Options{
			Shape:          shape,
			Count:          genCount,
			TransferSize:   genTransferSize,
			SSL:            genSSL,
			SameConnection: genSameConnection,
		})

		if err := graphio.Save(args[0], g); err != nil {
			return fmt.Errorf("saving fixture: %w", err)
		}
		fmt.Printf("wrote %s fixture to %s\n", shape, args[0])
		return nil
	},
}

func init() {
	genCmd.Flags().StringVar(&genShape, "shape", "chain", "Graph shape: chain, fanout, or diamond")
	genCmd.Flags().IntVar(&genCount, "count", 5, "Number of leaf/chain nodes (ignored for diamond)")
	genCmd.Flags().Int64Var(&genTransferSize, "size", 50000, "Bytes transferred per network node")
	genCmd.Flags().BoolVar(&genSSL, "ssl", false, "Mark generated network nodes as TLS connections")
	genCmd.Flags().BoolVar(&genSameConnection, "same-connection", false, "Reuse a single connection ID across chain/fanout nodes")
}
