package detect

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ChangedFiles returns the list of file paths changed in the current CI
// context. In pull_request events (GITHUB_BASE_SHA/GITHUB_HEAD_SHA set) it
// diffs the two commits; otherwise it diffs HEAD against its first parent.
// When HEAD has no parent, every file in HEAD's tree is returned. The mode
// string describes which comparison was used, for logging.
func ChangedFiles(ctx context.Context, dir string) (paths []string, mode string, err error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, "", fmt.Errorf("opening repository: %w", err)
	}

	if os.Getenv("GITHUB_EVENT_NAME") == "pull_request" {
		base := os.Getenv("GITHUB_BASE_SHA")
		head := os.Getenv("GITHUB_HEAD_SHA")
		if base != "" && head != "" {
			paths, err := diffCommits(ctx, repo, base, head)
			if err == nil {
				return paths, fmt.Sprintf("pr %s...%s", base, head), nil
			}
			// Base may be missing from a shallow clone; fall through
			// to the HEAD^ comparison like the push path.
		}
	}

	head, err := repo.Head()
	if err != nil {
		return nil, "", fmt.Errorf("getting HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, "", fmt.Errorf("reading HEAD commit: %w", err)
	}

	if commit.NumParents() == 0 {
		paths, err := listTree(commit)
		if err != nil {
			return nil, "", err
		}
		return paths, "initial commit (full listing)", nil
	}

	parent, err := commit.Parent(0)
	if err != nil {
		return nil, "", fmt.Errorf("reading HEAD^: %w", err)
	}

	paths, err = diffCommitObjects(ctx, parent, commit)
	if err != nil {
		return nil, "", err
	}
	return paths, "HEAD^..HEAD", nil
}

// diffCommits diffs two commits identified by SHA.
func diffCommits(ctx context.Context, repo *git.Repository, baseSHA, headSHA string) ([]string, error) {
	base, err := repo.CommitObject(plumbing.NewHash(baseSHA))
	if err != nil {
		return nil, fmt.Errorf("reading base commit %s: %w", baseSHA, err)
	}
	head, err := repo.CommitObject(plumbing.NewHash(headSHA))
	if err != nil {
		return nil, fmt.Errorf("reading head commit %s: %w", headSHA, err)
	}
	return diffCommitObjects(ctx, base, head)
}

// diffCommitObjects returns the deduplicated paths touched between two
// commits' trees.
func diffCommitObjects(ctx context.Context, from, to *object.Commit) ([]string, error) {
	fromTree, err := from.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading tree for %s: %w", from.Hash, err)
	}
	toTree, err := to.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading tree for %s: %w", to.Hash, err)
	}

	changes, err := object.DiffTreeWithOptions(ctx, fromTree, toTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}

	seen := make(map[string]bool)
	var paths []string
	for _, change := range changes {
		name := change.To.Name
		if name == "" {
			name = change.From.Name
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		paths = append(paths, name)
	}
	sort.Strings(paths)
	return paths, nil
}

// listTree returns every file path in a commit's tree.
func listTree(commit *object.Commit) ([]string, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("reading tree: %w", err)
	}

	var paths []string
	err = tree.Files().ForEach(func(f *object.File) error {
		paths = append(paths, f.Name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing tree files: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}
