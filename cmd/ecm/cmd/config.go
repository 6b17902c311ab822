package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"

	"github.com/corridormap/ecm"
)

// configCmd writes a Settings file prefilled with NewSettings' defaults
// (spec.md §8). Grounded on cmd/recast/cmd/config.go's confirm-then-write
// shape; unlike the teacher's stub (which never actually marshals
// anything), this one really does.
var configCmd = &cobra.Command{
	Use:   "config FILE",
	Short: "write a build settings file",
	Long: `Write a build-settings file in YAML format, prefilled with
default values. If FILE is not given, 'ecm.yml' is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "ecm.yml"
		if len(args) >= 1 {
			path = args[0]
		}

		ok, err := confirmIfExists(path, fmt.Sprintf("file %q already exists, overwrite? [y/N]", path))
		if !ok {
			if err != nil {
				fmt.Println("aborted,", err)
			} else {
				fmt.Println("aborted by user")
			}
			return
		}

		buf, err := yaml.Marshal(ecm.NewSettings())
		if err != nil {
			fmt.Println("error marshalling settings:", err)
			os.Exit(-1)
		}
		if err := os.WriteFile(path, buf, 0o644); err != nil {
			fmt.Println("error writing file:", err)
			os.Exit(-1)
		}
		fmt.Printf("build settings written to %q\n", path)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}
