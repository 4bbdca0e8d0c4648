package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/spigell/skillscreen/internal/dictionary"
)

// version is set with -ldflags "-X github.com/spigell/skillscreen/cmd.version=...".
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the binary and bundled dictionary versions",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", app, binaryVersion())

		if short, _ := cmd.Flags().GetBool("short"); short {
			return
		}

		d, err := dictionary.Default()
		if err != nil {
			fmt.Fprintf(out, "dictionary: %v\n", err)
			return
		}
		fmt.Fprintf(out, "dictionary: %s (%d skills, %d roles)\n", d.Version(), len(d.Skills()), len(d.Roles()))
	},
}

// binaryVersion falls back to the module version when built with go install.
func binaryVersion() string {
	if version != "unknown" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("short", false, "print only the binary version")
}
