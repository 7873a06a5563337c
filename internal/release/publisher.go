package release

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"

	"github.com/ariel-frischer/releasekit/internal/config"
	"github.com/ariel-frischer/releasekit/internal/errors"
	"github.com/ariel-frischer/releasekit/internal/output"
	"github.com/ariel-frischer/releasekit/internal/runner"
)

// Publisher builds the distribution artifacts, validates them, and uploads
// them to the package index. Every step is fatal on failure; there are no
// retries.
type Publisher struct {
	Cfg    *config.Config
	Runner runner.Runner
	// Root is the project root the build tool runs against.
	Root string
	Out  io.Writer
	// ShowSpinner animates the long-running build and upload steps.
	// Disabled in tests and non-interactive runs.
	ShowSpinner bool
}

// Run executes clean → build → validate → upload. With dryRun the upload is
// skipped and the artifact list is printed instead.
func (p *Publisher) Run(ctx context.Context, dryRun bool) error {
	if err := p.ensureTools(ctx); err != nil {
		return err
	}

	if err := p.clean(); err != nil {
		return err
	}

	output.PrintStep(p.Out, "Building package...")
	if err := p.withSpinner("building", func() error {
		return p.Runner.Run(ctx, p.Root, p.Cfg.Python, "-m", "build", p.Root)
	}); err != nil {
		return err
	}

	artifacts, err := p.artifacts()
	if err != nil {
		return err
	}

	output.PrintStep(p.Out, "Validating package...")
	fmt.Fprintf(p.Out, "Found %d distribution file(s):\n", len(artifacts))
	for _, a := range artifacts {
		fmt.Fprintf(p.Out, "  - %s\n", filepath.Base(a))
	}

	checkArgs := append([]string{"-m", "twine", "check"}, artifacts...)
	if err := p.Runner.Run(ctx, p.Root, p.Cfg.Python, checkArgs...); err != nil {
		return err
	}

	if dryRun {
		fmt.Fprintln(p.Out, "[DRY RUN] Would publish the following files:")
		for _, a := range artifacts {
			fmt.Fprintf(p.Out, "  - %s\n", filepath.Base(a))
		}
		fmt.Fprintln(p.Out, "Skipping actual upload (dry run mode)")
		return nil
	}

	output.PrintStep(p.Out, "Publishing to package index...")
	uploadArgs := append([]string{"-m", "twine", "upload"}, artifacts...)
	if err := p.withSpinner("uploading", func() error {
		return p.Runner.Run(ctx, p.Root, p.Cfg.Python, uploadArgs...)
	}); err != nil {
		return err
	}

	output.PrintSuccess(p.Out, "Package published successfully!")
	return nil
}

// ensureTools verifies the build and twine modules are importable before
// doing any destructive cleanup.
func (p *Publisher) ensureTools(ctx context.Context) error {
	for _, tool := range []string{"build", "twine"} {
		if _, err := p.Runner.Output(ctx, p.Root, p.Cfg.Python, "-m", tool, "--version"); err != nil {
			return errors.NewExternalToolError(
				fmt.Sprintf("%s is not installed", tool), 1,
				fmt.Sprintf("install with: pip install %s", tool))
		}
	}
	return nil
}

// clean removes previous build output directories.
func (p *Publisher) clean() error {
	fmt.Fprintln(p.Out, "Cleaning build artifacts...")

	targets := []string{
		filepath.Join(p.Root, p.Cfg.DistDir),
		filepath.Join(p.Root, "build"),
	}
	eggInfo, err := filepath.Glob(filepath.Join(p.Root, "*.egg-info"))
	if err != nil {
		return fmt.Errorf("globbing egg-info: %w", err)
	}
	targets = append(targets, eggInfo...)

	for _, target := range targets {
		info, err := os.Stat(target)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			continue
		}
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("removing %s: %w", target, err)
		}
		fmt.Fprintf(p.Out, "  Removed: %s\n", target)
	}
	return nil
}

// artifacts lists the built distribution files, failing when none exist.
func (p *Publisher) artifacts() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(p.Root, p.Cfg.DistDir, "*"))
	if err != nil {
		return nil, fmt.Errorf("globbing artifacts: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.NewNotFoundError(
			fmt.Sprintf("no distribution files found in %s/", p.Cfg.DistDir),
			"check that the build step produced artifacts")
	}
	return files, nil
}

// withSpinner runs fn behind a spinner when animation is enabled.
func (p *Publisher) withSpinner(label string, fn func() error) error {
	if !p.ShowSpinner {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + label + "..."
	s.Start()
	defer s.Stop()
	return fn()
}
