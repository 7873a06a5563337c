package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ariel-frischer/releasekit/internal/github"
	"github.com/ariel-frischer/releasekit/internal/manifest"
	"github.com/ariel-frischer/releasekit/internal/output"
	"github.com/ariel-frischer/releasekit/internal/release"
	"github.com/ariel-frischer/releasekit/internal/runner"
)

var (
	githubFormatReleaseID   string
	githubFormatVersion     string
	githubFormatRepository  string
	githubFormatCommitSHA   string
	githubFormatPackageName string
	githubFormatDryRun      bool
)

var githubFormatCmd = &cobra.Command{
	Use:   "format",
	Short: "Format GitHub release notes with badge and PR link",
	Long: `Enhance an existing GitHub release body with a package-index
version badge and a backlink to the pull request containing the release
commit, and clean up escaped characters, duplicate version headings, and
excess blank lines.

Idempotent: a body that already carries the badge is left unchanged.

Examples:
  releasekit github format --release-id 12345 --version 1.0.0 --repository owner/repo
  releasekit github format --release-id 12345 --version 1.0.0 --repository owner/repo --commit-sha abc123`,
	SilenceUsage: true,
	RunE:         runGitHubFormat,
}

func init() {
	githubCmd.AddCommand(githubFormatCmd)

	githubFormatCmd.Flags().StringVar(&githubFormatReleaseID, "release-id", "", "GitHub release ID")
	githubFormatCmd.Flags().StringVar(&githubFormatVersion, "version", "", "Release version (e.g., 1.0.0)")
	githubFormatCmd.Flags().StringVar(&githubFormatRepository, "repository", "", "Repository in owner/repo format")
	githubFormatCmd.Flags().StringVar(&githubFormatCommitSHA, "commit-sha", "", "Commit SHA to find the associated PR")
	githubFormatCmd.Flags().StringVar(&githubFormatPackageName, "package-name", "", "Package name for the badge (default: manifest name field)")
	githubFormatCmd.Flags().BoolVar(&githubFormatDryRun, "dry-run", false, "Print formatted notes without updating the release")
	_ = githubFormatCmd.MarkFlagRequired("release-id")
	_ = githubFormatCmd.MarkFlagRequired("version")
}

func runGitHubFormat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	repository := githubFormatRepository
	if repository == "" {
		repository = cfg.GitHub.Repository
	}
	if repository == "" {
		return fmt.Errorf("repository required (--repository, config github.repository, or $GITHUB_REPOSITORY)")
	}

	packageName := githubFormatPackageName
	if packageName == "" {
		packageName = cfg.GitHub.PackageName
	}
	if packageName == "" {
		name, err := manifest.NewStore(cfg.Manifest).Name()
		if err == nil {
			packageName = name
		} else {
			packageName = "my-package"
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Package name: %s\n", packageName)

	client := github.NewClient(runner.New(), repository)
	if err := client.EnsureCLI(); err != nil {
		return err
	}

	// The body fetch and the PR lookup are independent gh api calls.
	var body, prNumber string
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		fmt.Fprintf(out, "Fetching release %s...\n", githubFormatReleaseID)
		var err error
		body, err = client.ReleaseBody(ctx, githubFormatReleaseID)
		return err
	})
	g.Go(func() error {
		if githubFormatCommitSHA == "" {
			return nil
		}
		var err error
		prNumber, err = client.PRForCommit(ctx, githubFormatCommitSHA)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if prNumber != "" {
		fmt.Fprintf(out, "Found PR: #%s\n", prNumber)
	} else if githubFormatCommitSHA != "" {
		fmt.Fprintln(out, "No associated PR found")
	}

	formatted := release.FormatNotes(body, githubFormatVersion, repository, prNumber, packageName)

	if githubFormatDryRun {
		fmt.Fprintln(out, "\n--- Formatted Release Notes ---")
		fmt.Fprintln(out, formatted)
		fmt.Fprintln(out, "--- End ---")
		return nil
	}

	if formatted == body {
		fmt.Fprintln(out, "No changes needed")
		return nil
	}

	fmt.Fprintln(out, "Updating release notes...")
	if err := client.UpdateReleaseBody(cmd.Context(), githubFormatReleaseID, formatted); err != nil {
		return err
	}
	output.PrintSuccess(out, "Release notes updated successfully!")
	return nil
}
