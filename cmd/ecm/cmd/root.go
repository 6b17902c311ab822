// Package cmd implements the ecm command-line tool's subcommands
// (spec.md §8: "a CLI wraps the library for batch builds and ad-hoc
// queries"). Grounded on the teacher's cmd/recast/cmd package: same
// cobra.Command/RootCmd/Execute shape, generalised from a single-purpose
// navmesh builder to ecm's build/query/config/info subcommands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the base command when ecm is called without a subcommand.
var RootCmd = &cobra.Command{
	Use:   "ecm",
	Short: "build and query explicit corridor maps",
	Long: `ecm turns a footprint of convex obstacle polygons into an
Explicit Corridor Map, and answers clearance-aware shortest-path queries
against it:
	- build        build a corridor map from an input footprint
	- query        find a path between two points on a built map
	- config       write a build-settings file prefilled with defaults
	- info         print summary information about a built map`,
}

// Execute runs RootCmd. Called once from main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
