package cli

import (
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/releasekit/internal/ci"
	"github.com/ariel-frischer/releasekit/internal/fragment"
	"github.com/ariel-frischer/releasekit/internal/gitx"
	"github.com/ariel-frischer/releasekit/internal/manifest"
	"github.com/ariel-frischer/releasekit/internal/release"
	"github.com/ariel-frischer/releasekit/internal/runner"
	"github.com/ariel-frischer/releasekit/internal/semver"
)

var (
	releaseBumpType    string
	releaseDescription string
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Bump, update the changelog, commit, and push (CI entry point)",
	Long: `Run the full release sequence for CI: configure the bot committer
identity, check the remote default branch for a previously completed run,
bump the manifest version, fold pending changelog fragments (or the given
description) into the changelog, commit with the new version as the message,
and push.

Re-runs are safe: when the remote head has advanced and its manifest version
matches the local one, the run short-circuits as already released and
nothing is committed or pushed.

Outputs new_version, version_committed, and already_released to the CI
pipeline ($GITHUB_OUTPUT) and standard output.

Examples:
  releasekit release --bump-type patch
  releasekit release --bump-type minor --description "New feature"`,
	SilenceUsage: true,
	RunE:         runRelease,
}

func init() {
	rootCmd.AddCommand(releaseCmd)
	releaseCmd.Flags().StringVar(&releaseBumpType, "bump-type", "", "Type of version bump: major, minor, or patch")
	releaseCmd.Flags().StringVar(&releaseDescription, "description", "", "Description for the changelog")
	_ = releaseCmd.MarkFlagRequired("bump-type")
}

func runRelease(cmd *cobra.Command, args []string) error {
	kind, err := semver.ParseKind(releaseBumpType)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	run := runner.New()
	store := manifest.NewStore(cfg.Manifest)

	orchestrator := &release.Orchestrator{
		Cfg:      cfg,
		Git:      gitx.NewClient("", run),
		Manifest: store,
		Bumper: &release.Bumper{
			Manifest:         store,
			ChangelogPath:    cfg.Changelog,
			Fragments:        fragment.NewStore(cfg.FragmentDir),
			ConsumeFragments: true,
			Out:              out,
		},
		Outputs: ci.NewWriter(),
		Out:     out,
	}

	_, err = orchestrator.Run(cmd.Context(), kind, releaseDescription)
	return err
}
