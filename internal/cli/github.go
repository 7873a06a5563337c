package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/releasekit/internal/changelog"
	"github.com/ariel-frischer/releasekit/internal/github"
	"github.com/ariel-frischer/releasekit/internal/output"
	"github.com/ariel-frischer/releasekit/internal/runner"
)

var githubCmd = &cobra.Command{
	Use:   "github",
	Short: "Create and format GitHub releases",
}

var (
	githubCreateVersion    string
	githubCreateRepository string
	githubCreatePrerelease bool
)

var githubCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a GitHub release from the changelog",
	Long: `Create a GitHub release tagged v<version>, titled with the tag,
with the changelog section for that version as the release notes. Requires
GH_TOKEN or GITHUB_TOKEN and the gh CLI.

Examples:
  releasekit github create --version 1.2.3 --repository owner/repo
  releasekit github create --version 1.2.3-rc.1 --repository owner/repo --prerelease`,
	SilenceUsage: true,
	RunE:         runGitHubCreate,
}

func init() {
	rootCmd.AddCommand(githubCmd)
	githubCmd.AddCommand(githubCreateCmd)

	githubCreateCmd.Flags().StringVarP(&githubCreateVersion, "version", "v", "", "Version to release (e.g., 1.2.3)")
	githubCreateCmd.Flags().StringVarP(&githubCreateRepository, "repository", "r", "", "GitHub repository (owner/repo)")
	githubCreateCmd.Flags().BoolVar(&githubCreatePrerelease, "prerelease", false, "Mark as prerelease")
	_ = githubCreateCmd.MarkFlagRequired("version")
}

func runGitHubCreate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	repository := githubCreateRepository
	if repository == "" {
		repository = cfg.GitHub.Repository
	}
	if repository == "" {
		return fmt.Errorf("repository required (--repository, config github.repository, or $GITHUB_REPOSITORY)")
	}

	client := github.NewClient(runner.New(), repository)
	if err := client.EnsureAuth(); err != nil {
		return err
	}
	if err := client.EnsureCLI(); err != nil {
		return err
	}

	notes := changelog.Extract(cfg.Changelog, githubCreateVersion)

	out := cmd.OutOrStdout()
	tag := "v" + githubCreateVersion
	fmt.Fprintf(out, "Creating GitHub release for %s...\n", tag)
	fmt.Fprintf(out, "Repository: %s\n", repository)
	fmt.Fprintf(out, "Prerelease: %v\n", githubCreatePrerelease)
	fmt.Fprintf(out, "\nRelease notes:\n%s\n\n", notes)

	if err := client.CreateRelease(cmd.Context(), tag, notes, githubCreatePrerelease); err != nil {
		return err
	}

	output.PrintSuccess(out, fmt.Sprintf("GitHub release %s created successfully!", tag))
	return nil
}
