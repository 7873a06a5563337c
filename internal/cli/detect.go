package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/releasekit/internal/ci"
	"github.com/ariel-frischer/releasekit/internal/detect"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Classify changed files for CI gating",
	Long: `Detect what types of files changed between two commits and emit
the results as pipeline outputs for workflow conditions.

For pull_request events (GITHUB_BASE_SHA/GITHUB_HEAD_SHA set) the PR head is
compared against its base; otherwise HEAD is compared against HEAD^, falling
back to a full file listing on the first commit.

Markdown files and the changelog.d/, docs/, experiments/, and examples/
folders never count toward any-code-changed.`,
	SilenceUsage: true,
	RunE:         runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Detecting file changes for CI...")
	fmt.Fprintln(out)

	paths, mode, err := detect.ChangedFiles(cmd.Context(), "")
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Comparing %s\n", mode)
	printPaths(out, "Changed files:", paths)

	classification := detect.Classify(paths)
	printPaths(out, "Files considered as code changes:", detect.CodePaths(paths))

	writer := ci.NewWriter()
	writer.Echo = out
	for _, o := range classification.Outputs() {
		if err := writer.SetBool(o.Name, o.Value); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "\nChange detection completed.")
	return nil
}

func printPaths(out io.Writer, header string, paths []string) {
	fmt.Fprintln(out, header)
	if len(paths) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, p := range paths {
		fmt.Fprintf(out, "  %s\n", p)
	}
	fmt.Fprintln(out)
}
