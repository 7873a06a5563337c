// Package cli wires the releasekit commands together. Each subcommand maps
// onto one step of the release pipeline and can be invoked independently
// from CI or a developer shell.
package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/releasekit/internal/config"
	"github.com/ariel-frischer/releasekit/internal/errors"
	"github.com/ariel-frischer/releasekit/internal/output"
)

var rootCmd = &cobra.Command{
	Use:   "releasekit",
	Short: "Release automation for package-template repositories",
	Long: `releasekit automates the release lifecycle of a package-template
repository: version bumping, changelog fragment management, commit and push
with idempotent re-run protection, package building and publishing, GitHub
release creation and formatting, and CI change detection.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (RELEASEKIT_*)
  2. Project config (.releasekit.yml)
  3. Built-in defaults`,
	Example: `  # Bump the patch version and update the changelog locally
  releasekit bump patch -d "Fix crash on empty input"

  # Full CI release: bump, changelog, commit, push (idempotent on re-run)
  releasekit release --bump-type minor

  # Validate changelog fragments in a PR check
  releasekit changeset validate

  # Build and upload the package
  releasekit publish --dry-run`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: .releasekit.yml)")
	rootCmd.PersistentFlags().Bool("debug", false, "Print resolved configuration and debug output")
}

// loadConfig loads configuration honoring the --config flag. With --debug
// the resolved values are echoed to stderr.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintf(errOut, "debug: manifest=%s changelog=%s fragment_dir=%s dist_dir=%s python=%s\n",
			cfg.Manifest, cfg.Changelog, cfg.FragmentDir, cfg.DistDir, cfg.Python)
		fmt.Fprintf(errOut, "debug: git remote=%s branch=%s bot=%s <%s>\n",
			cfg.Git.Remote, cfg.Git.DefaultBranch, cfg.Git.BotName, cfg.Git.BotEmail)
		fmt.Fprintf(errOut, "debug: github repository=%s package_name=%s\n",
			cfg.GitHub.Repository, cfg.GitHub.PackageName)
	}
	return cfg, nil
}

// Execute runs the CLI and returns the process exit code. Structured errors
// are printed with their category and remediation steps; external tool
// failures propagate the subprocess exit code.
func Execute() int {
	// Local .env files carry GH_TOKEN / TWINE_* credentials outside CI.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		output.PrintError(os.Stderr, cliErr.Category.String(), cliErr.Message)
		output.PrintRemediation(os.Stderr, cliErr.Remediation)
		if cliErr.ExitCode != 0 {
			return cliErr.ExitCode
		}
		return ExitFailure
	}

	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return ExitFailure
}
