// Package release sequences the release pipeline: version bump, changelog
// aggregation, commit and push, artifact build and upload, and release-notes
// formatting. External state (git, build tools, the hosting CLI) is reached
// only through injected collaborators.
package release

import (
	"context"
	"fmt"
	"io"

	"github.com/ariel-frischer/releasekit/internal/ci"
	"github.com/ariel-frischer/releasekit/internal/config"
	"github.com/ariel-frischer/releasekit/internal/manifest"
	"github.com/ariel-frischer/releasekit/internal/semver"
)

// Git is the subset of git operations the orchestrator needs. The real
// implementation is gitx.Client; tests substitute a fake.
type Git interface {
	SetIdentity(ctx context.Context, name, email string) error
	Fetch(ctx context.Context, remote, branch string) error
	LocalHead() (string, error)
	RemoteHead(remote, branch string) (string, error)
	FileAtRemoteHead(remote, branch, path string) (string, error)
	Rebase(ctx context.Context, remote, branch string) error
	IsClean(ctx context.Context) (bool, error)
	AddAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context, remote, branch string) error
}

// Result reports what a release run did, mirrored into the CI outputs.
type Result struct {
	OldVersion      string
	NewVersion      string
	Committed       bool
	AlreadyReleased bool
}

// Orchestrator drives the bump → changelog → commit → push sequence with an
// idempotency check against the remote head, so a CI re-run after a
// successful release never double-releases.
type Orchestrator struct {
	Cfg      *config.Config
	Git      Git
	Manifest *manifest.Store
	Bumper   *Bumper
	Outputs  *ci.Writer
	Out      io.Writer
}

// Run executes the full release sequence. Any collaborator failure aborts
// the run and no partial state is rolled back; re-running from the start is
// the recovery path, relying on the already-released check.
func (o *Orchestrator) Run(ctx context.Context, kind semver.Kind, description string) (Result, error) {
	gitCfg := o.Cfg.Git

	fmt.Fprintln(o.Out, "Configuring git...")
	if err := o.Git.SetIdentity(ctx, gitCfg.BotName, gitCfg.BotEmail); err != nil {
		return Result{}, err
	}

	released, remoteVersion, err := o.checkRemote(ctx)
	if err != nil {
		return Result{}, err
	}
	if released {
		fmt.Fprintln(o.Out, "Version bump already completed in previous run")
		result := Result{NewVersion: remoteVersion, AlreadyReleased: true}
		return result, o.emitOutputs(result)
	}

	oldVersion, newVersion, err := o.Bumper.Run(kind, description)
	if err != nil {
		return Result{}, err
	}
	result := Result{OldVersion: oldVersion, NewVersion: newVersion}

	clean, err := o.Git.IsClean(ctx)
	if err != nil {
		return Result{}, err
	}
	if clean {
		fmt.Fprintln(o.Out, "No changes to commit")
		return result, o.emitOutputs(result)
	}

	fmt.Fprintln(o.Out, "Changes detected, committing...")
	if err := o.Git.AddAll(ctx); err != nil {
		return Result{}, err
	}
	if err := o.Git.Commit(ctx, newVersion); err != nil {
		return Result{}, err
	}
	if err := o.Git.Push(ctx, gitCfg.Remote, gitCfg.DefaultBranch); err != nil {
		return Result{}, err
	}

	fmt.Fprintf(o.Out, "Version bump committed and pushed: %s → %s\n", oldVersion, newVersion)
	result.Committed = true
	return result, o.emitOutputs(result)
}

// checkRemote compares the local head against the remote default branch to
// detect a prior completed run. Diverged heads with equal manifest versions
// mean the bump+push already happened; diverged heads with differing
// versions mean the remote advanced for unrelated reasons, so the local
// branch is rebased onto it and the release proceeds.
func (o *Orchestrator) checkRemote(ctx context.Context) (alreadyReleased bool, remoteVersion string, err error) {
	gitCfg := o.Cfg.Git

	fmt.Fprintln(o.Out, "Checking for remote changes...")
	if err := o.Git.Fetch(ctx, gitCfg.Remote, gitCfg.DefaultBranch); err != nil {
		return false, "", err
	}

	localHead, err := o.Git.LocalHead()
	if err != nil {
		return false, "", err
	}
	remoteHead, err := o.Git.RemoteHead(gitCfg.Remote, gitCfg.DefaultBranch)
	if err != nil {
		return false, "", err
	}
	if localHead == remoteHead {
		return false, "", nil
	}

	fmt.Fprintf(o.Out, "Remote %s has advanced (local: %s, remote: %s)\n",
		gitCfg.DefaultBranch, localHead, remoteHead)
	fmt.Fprintln(o.Out, "This may indicate a previous attempt partially succeeded.")

	remoteContent, err := o.Git.FileAtRemoteHead(gitCfg.Remote, gitCfg.DefaultBranch, o.Cfg.Manifest)
	if err != nil {
		return false, "", err
	}
	remoteVersion, err = manifest.VersionFromContent(remoteContent)
	if err != nil {
		// Remote manifest has no version line; nothing to compare
		// against, treat local as the base.
		return false, "", nil
	}
	fmt.Fprintf(o.Out, "Remote version: %s\n", remoteVersion)

	localVersion, err := o.Manifest.Version()
	if err != nil {
		return false, "", err
	}

	if localVersion != remoteVersion {
		fmt.Fprintln(o.Out, "Local and remote versions differ, rebasing...")
		if err := o.Git.Rebase(ctx, gitCfg.Remote, gitCfg.DefaultBranch); err != nil {
			return false, "", err
		}
		return false, remoteVersion, nil
	}

	fmt.Fprintln(o.Out, "Versions match, assuming previous run completed successfully")
	return true, remoteVersion, nil
}

// emitOutputs mirrors the result into the pipeline output sink.
func (o *Orchestrator) emitOutputs(r Result) error {
	if o.Outputs == nil {
		return nil
	}
	if err := o.Outputs.Set("new_version", r.NewVersion); err != nil {
		return err
	}
	if err := o.Outputs.SetBool("version_committed", r.Committed); err != nil {
		return err
	}
	return o.Outputs.SetBool("already_released", r.AlreadyReleased)
}
