package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ariel-frischer/releasekit/internal/release"
	"github.com/ariel-frischer/releasekit/internal/runner"
)

var publishDryRun bool

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Build, validate, and upload the package to the package index",
	Long: `Build and publish the package: clean previous build output, build
the distribution artifacts, validate them, and upload to the package index.

In CI the upload relies on OIDC trusted publishing; locally it uses
TWINE_USERNAME/TWINE_PASSWORD (loadable from a .env file).

Examples:
  releasekit publish
  releasekit publish --dry-run   # build and validate, skip the upload`,
	SilenceUsage: true,
	RunE:         runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().BoolVar(&publishDryRun, "dry-run", false, "Build and validate but don't publish")
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	publisher := &release.Publisher{
		Cfg:         cfg,
		Runner:      runner.New(),
		Root:        ".",
		Out:         cmd.OutOrStdout(),
		ShowSpinner: term.IsTerminal(int(os.Stdout.Fd())),
	}
	return publisher.Run(cmd.Context(), publishDryRun)
}
