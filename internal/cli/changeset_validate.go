package cli

import (
	"fmt"
	"io"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/releasekit/internal/errors"
	"github.com/ariel-frischer/releasekit/internal/fragment"
	"github.com/ariel-frischer/releasekit/internal/output"
)

var changesetValidateWatch bool

var changesetValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate changelog fragments",
	Long: `Validate that changelog fragments document changes properly: each
fragment must contain a recognized category heading and a description.

A missing fragment is currently a warning, not a failure.

Examples:
  releasekit changeset validate
  releasekit changeset validate --watch   # re-validate on fragment edits`,
	SilenceUsage: true,
	RunE:         runChangesetValidate,
}

func init() {
	changesetCmd.AddCommand(changesetValidateCmd)
	changesetValidateCmd.Flags().BoolVar(&changesetValidateWatch, "watch", false, "Watch the fragment directory and re-validate on changes")
}

func runChangesetValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store := fragment.NewStore(cfg.FragmentDir)
	out := cmd.OutOrStdout()

	if !changesetValidateWatch {
		return validateFragments(store, out)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cfg.FragmentDir); err != nil {
		return fmt.Errorf("watching %s: %w", cfg.FragmentDir, err)
	}

	if err := validateFragments(store, out); err != nil {
		output.PrintError(out, "Validation", err.Error())
	}
	fmt.Fprintf(out, "\nWatching %s for changes (Ctrl-C to stop)...\n", cfg.FragmentDir)

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			fmt.Fprintln(out)
			if err := validateFragments(store, out); err != nil {
				output.PrintError(out, "Validation", err.Error())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			output.PrintWarning(out, fmt.Sprintf("watch error: %v", err))
		}
	}
}

// validateFragments checks every fragment and reports per-file results.
// Zero fragments is a warning unless fragment.RequireFragment is set; any
// invalid fragment fails the whole validation.
func validateFragments(store *fragment.Store, out io.Writer) error {
	fmt.Fprintln(out, "Validating changelog fragments...")

	fragments, err := store.List()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d changelog fragment(s)\n", len(fragments))

	if len(fragments) == 0 {
		output.PrintWarning(out, "No changelog fragment found!")
		fmt.Fprintln(out, "\nTo document your changes, create a changelog fragment:")
		fmt.Fprintln(out, "  releasekit changeset create patch --description 'Your changes'")
		if fragment.RequireFragment {
			return errors.NewValidationError("changelog fragment required",
				"create one with: releasekit changeset create")
		}
		return nil
	}

	if len(fragments) > 1 {
		output.PrintWarning(out, fmt.Sprintf("Found %d fragments. Usually PRs should have only one.", len(fragments)))
		for _, f := range fragments {
			fmt.Fprintf(out, "  - %s\n", f.Name)
		}
	}

	allValid := true
	for _, f := range fragments {
		if err := f.Validate(); err != nil {
			fmt.Fprintf(out, "  [FAIL] %s\n", err.Error())
			allValid = false
			continue
		}
		fmt.Fprintf(out, "  [OK] %s\n", f.Name)
	}

	if !allValid {
		return errors.NewValidationError("changelog validation failed",
			"expected fragment format: ### Added / ### Changed / ### Fixed with bullet descriptions")
	}

	output.PrintSuccess(out, "Changelog validation passed!")
	return nil
}
