package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/releasekit/internal/fragment"
	"github.com/ariel-frischer/releasekit/internal/gitx"
	"github.com/ariel-frischer/releasekit/internal/runner"
	"github.com/ariel-frischer/releasekit/internal/semver"
)

var changesetCmd = &cobra.Command{
	Use:   "changeset",
	Short: "Manage changelog fragments",
	Long: `Create and validate changelog fragments in the fragment directory.
Each fragment documents one unreleased change and is folded into the
aggregate changelog at release time.`,
}

var changesetCreateDescription string

var changesetCreateCmd = &cobra.Command{
	Use:   "create <major|minor|patch>",
	Short: "Create a changelog fragment",
	Long: `Create a changelog fragment documenting a change. The bump type
selects the default category: major changes are breaking (Changed), minor
changes add features (Added), patch changes fix bugs (Fixed).

Without a description the fragment contains a commented template listing all
categories for manual editing.

Examples:
  releasekit changeset create patch
  releasekit changeset create minor --description "Add new feature"`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runChangesetCreate,
}

func init() {
	rootCmd.AddCommand(changesetCmd)
	changesetCmd.AddCommand(changesetCreateCmd)
	changesetCreateCmd.Flags().StringVarP(&changesetCreateDescription, "description", "d", "", "Description of changes (optional, can edit file later)")
}

func runChangesetCreate(cmd *cobra.Command, args []string) error {
	kind, err := semver.ParseKind(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Username and branch only decorate the filename; a repo without git
	// metadata falls back to the defaults.
	git := gitx.NewClient("", runner.New())
	username, _ := git.UserName()
	branch, _ := git.CurrentBranch()

	store := fragment.NewStore(cfg.FragmentDir)
	f, err := store.Create(kind, changesetCreateDescription, fragment.CreateOptions{
		Username: username,
		Branch:   branch,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created changelog fragment: %s\n", f.Path)
	if changesetCreateDescription == "" {
		fmt.Fprintln(out, "\nPlease edit the fragment file to document your changes.")
		fmt.Fprintf(out, "  File: %s\n", f.Path)
	}
	return nil
}
