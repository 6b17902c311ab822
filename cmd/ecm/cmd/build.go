package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"

	"github.com/corridormap/ecm"
	"github.com/corridormap/ecm/distmesh"
	"github.com/corridormap/ecm/raster"
)

var buildCfgPath, buildInputPath string

// buildCmd runs the full pipeline (ecm.Build) against an input footprint
// and writes the resulting WalkableSpace to OUTFILE (spec.md §8: "build
// (footprint -> serialized WalkableSpace + stats)"). Grounded on
// cmd/recast/cmd/build.go's flag shape, generalised from a stub Run to
// one that actually drives the pipeline.
var buildCmd = &cobra.Command{
	Use:   "build OUTFILE",
	Short: "build a corridor map from an input footprint",
	Long: `Build an Explicit Corridor Map from a footprint (an OBJ file
with one convex polygon per obstacle). The build is controlled by a
settings file (see the 'config' subcommand). The resulting WalkableSpace
is written to OUTFILE.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outPath := args[0]

		if buildInputPath == "" {
			fmt.Println("error: --input is required")
			os.Exit(-1)
		}

		settings := ecm.NewSettings()
		if _, err := os.Stat(buildCfgPath); err == nil {
			buf, err := os.ReadFile(buildCfgPath)
			if err != nil {
				fmt.Println("error reading config:", err)
				os.Exit(-1)
			}
			if err := yaml.Unmarshal(buf, &settings); err != nil {
				fmt.Println("error parsing config:", err)
				os.Exit(-1)
			}
		}

		foot, err := distmesh.LoadFootprint(buildInputPath)
		if err != nil {
			fmt.Println("error loading footprint:", err)
			os.Exit(-1)
		}

		ok, err := confirmIfExists(outPath, fmt.Sprintf("file %q already exists, overwrite? [y/N]", outPath))
		if !ok {
			if err != nil {
				fmt.Println("aborted,", err)
			} else {
				fmt.Println("aborted by user")
			}
			return
		}

		ctx := ecm.NewBuildContext(true)
		space, status := ecm.Build(ctx, settings, foot, raster.NewCPURenderer())
		if !ecm.StatusSucceeded(status) {
			ctx.DumpLog("build failed")
			fmt.Println("build failed:", status)
			os.Exit(-1)
		}

		out, err := os.Create(outPath)
		if err != nil {
			fmt.Println("error creating output file:", err)
			os.Exit(-1)
		}
		defer out.Close()
		if err := space.Save(out); err != nil {
			fmt.Println("error saving corridor map:", err)
			os.Exit(-1)
		}

		fmt.Printf("corridor map written to %q (%d vertices, %d half-edges, %d events)\n",
			outPath, space.Verts.Len(), space.HalfEdges.Len(), space.Events.Len())
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildCfgPath, "config", "ecm.yml", "build settings file")
	buildCmd.Flags().StringVar(&buildInputPath, "input", "", "input footprint OBJ file (required)")
}
