package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is stamped via -ldflags on release builds; other builds fall
// back to the module version recorded in build info.
var version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the primagen version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("primagen", resolveVersion())
	},
}

func resolveVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}
