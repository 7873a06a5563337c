package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/releasekit/internal/fragment"
	"github.com/ariel-frischer/releasekit/internal/manifest"
	"github.com/ariel-frischer/releasekit/internal/output"
	"github.com/ariel-frischer/releasekit/internal/release"
	"github.com/ariel-frischer/releasekit/internal/semver"
)

var bumpDescription string

var bumpCmd = &cobra.Command{
	Use:   "bump <major|minor|patch>",
	Short: "Bump the manifest version and update the changelog",
	Long: `Bump the version in the project manifest and insert a new entry at
the top of the changelog. This is the local, manual path: nothing is
committed or pushed, and pending changelog fragments are left in place.

Examples:
  releasekit bump patch
  releasekit bump minor --description "Add new feature"
  releasekit bump major --description "Breaking changes"`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runBump,
}

func init() {
	rootCmd.AddCommand(bumpCmd)
	bumpCmd.Flags().StringVarP(&bumpDescription, "description", "d", "", "Description of changes for the changelog")
}

func runBump(cmd *cobra.Command, args []string) error {
	kind, err := semver.ParseKind(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	bumper := &release.Bumper{
		Manifest:      manifest.NewStore(cfg.Manifest),
		ChangelogPath: cfg.Changelog,
		Fragments:     fragment.NewStore(cfg.FragmentDir),
		Out:           out,
	}

	description := bumpDescription
	if description == "" {
		description = fmt.Sprintf("Manual %s release", kind)
	}

	oldVersion, newVersion, err := bumper.Run(kind, description)
	if err != nil {
		return err
	}

	output.PrintSuccess(out, fmt.Sprintf("Version bump complete: %s → %s", oldVersion, newVersion))
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Review changes: git diff")
	fmt.Fprintf(out, "  2. Commit: git add . && git commit -m 'chore: bump version to %s'\n", newVersion)
	fmt.Fprintf(out, "  3. Tag: git tag v%s\n", newVersion)
	fmt.Fprintln(out, "  4. Push: git push && git push --tags")
	return nil
}
