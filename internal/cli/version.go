package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/releasekit/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print releasekit version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "releasekit %s\n", version.Version)
		fmt.Fprintf(out, "  commit: %s\n", version.Commit)
		fmt.Fprintf(out, "  built:  %s\n", version.BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
