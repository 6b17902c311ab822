package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corridormap/ecm"
	"github.com/corridormap/ecm/funnel"
	"github.com/corridormap/ecm/geom2"
	"github.com/corridormap/ecm/walkable"
)

var queryClearance, queryStartX, queryStartY, queryEndX, queryEndY float32

// queryCmd loads a built corridor map and solves a clearance-aware
// shortest path between two points on it (spec.md §8's "query" entry
// point). No teacher analogue exists for this subcommand — go-detour's
// CLI only ever builds and inspects navmeshes — so its shape mirrors
// buildCmd/infoCmd's cobra.Command conventions rather than a ported one.
var queryCmd = &cobra.Command{
	Use:   "query MAP",
	Short: "find a path between two points on a built corridor map",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Println("error opening corridor map:", err)
			os.Exit(-1)
		}
		defer f.Close()

		space, err := walkable.Load(f)
		if err != nil {
			fmt.Println("error reading corridor map:", err)
			os.Exit(-1)
		}

		ctx := ecm.NewBuildContext(true)
		start := geom2.New(queryStartX, queryStartY)
		end := geom2.New(queryEndX, queryEndY)

		path, status := ecm.Query(ctx, space, start, end, queryClearance)
		if !ecm.StatusSucceeded(status) {
			ctx.DumpLog("query failed")
			fmt.Println("query failed:", status)
			os.Exit(-1)
		}

		for _, el := range path {
			switch el.Type {
			case funnel.ElementLine:
				fmt.Printf("LINE %.4f %.4f %.4f %.4f\n", el.P0.X, el.P0.Y, el.P1.X, el.P1.Y)
			default:
				winding := "cw"
				if el.Winding {
					winding = "ccw"
				}
				fmt.Printf("ARC %.4f %.4f %.4f %.4f %.4f %.4f %s\n",
					el.Origin.X, el.Origin.Y, el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, winding)
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(queryCmd)

	queryCmd.Flags().Float32Var(&queryStartX, "start-x", 0, "start point X")
	queryCmd.Flags().Float32Var(&queryStartY, "start-y", 0, "start point Y")
	queryCmd.Flags().Float32Var(&queryEndX, "end-x", 0, "end point X")
	queryCmd.Flags().Float32Var(&queryEndY, "end-y", 0, "end point Y")
	queryCmd.Flags().Float32Var(&queryClearance, "clearance", 0.5, "agent disk radius")
}
