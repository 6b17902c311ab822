package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corridormap/ecm/walkable"
)

// infoCmd prints summary counts about a built corridor map. Grounded on
// cmd/recast/cmd/infos.go's shape (a cobra.Command that reads a binary
// file and reports on it), fixing the teacher's latent bug where
// infosCmd's init() registers an undefined infoCmd variable — that file
// would not have compiled as written.
var infoCmd = &cobra.Command{
	Use:   "info MAP",
	Short: "show information about a built corridor map",
	Long: `Read a corridor map from binary file, check it for basic
consistency, then print counts on standard output.`,
	Args: cobra.ExactArgs(1),
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

		fmt.Println("vertices  :", space.Verts.Len())
		fmt.Println("half-edges:", space.HalfEdges.Len())
		fmt.Println("events    :", space.Events.Len())
	},
}

func init() {
	RootCmd.AddCommand(infoCmd)
}
