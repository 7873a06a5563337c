// Package gitx provides the git collaborator for releasekit. It uses the
// go-git library for read operations (branch detection, head resolution,
// reading manifest blobs at the remote head, fetch) and falls back to the
// git CLI via the command runner for operations go-git does not cover
// (identity config, rebase, staging, commit, push) so that CI-visible
// mutations behave exactly like the surrounding pipeline's git.
package gitx

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/ariel-frischer/releasekit/internal/runner"
)

// Client wraps a repository working directory.
type Client struct {
	Dir    string
	Runner runner.Runner
}

// NewClient returns a Client for the repository containing dir.
func NewClient(dir string, r runner.Runner) *Client {
	return &Client{Dir: dir, Runner: r}
}

// openRepo opens the repository, traversing up to find the .git directory.
func (c *Client) openRepo() (*git.Repository, error) {
	dir := c.Dir
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	return repo, nil
}

// CurrentBranch returns the name of the current branch, or empty string in
// detached HEAD state.
func (c *Client) CurrentBranch() (string, error) {
	repo, err := c.openRepo()
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}

// UserName returns the configured git user.name, or empty string when unset.
func (c *Client) UserName() (string, error) {
	repo, err := c.openRepo()
	if err != nil {
		return "", err
	}

	cfg, err := repo.ConfigScoped(gitconfig.GlobalScope)
	if err != nil {
		return "", fmt.Errorf("reading git config: %w", err)
	}
	return cfg.User.Name, nil
}

// LocalHead returns the commit SHA of HEAD.
func (c *Client) LocalHead() (string, error) {
	repo, err := c.openRepo()
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	return head.Hash().String(), nil
}

// RemoteHead returns the commit SHA of the remote-tracking ref for
// remote/branch.
func (c *Client) RemoteHead(remote, branch string) (string, error) {
	repo, err := c.openRepo()
	if err != nil {
		return "", err
	}

	ref, err := repo.Reference(plumbing.NewRemoteReferenceName(remote, branch), true)
	if err != nil {
		return "", fmt.Errorf("resolving %s/%s: %w", remote, branch, err)
	}
	return ref.Hash().String(), nil
}

// FileAtRemoteHead returns the content of path at the remote-tracking head
// of remote/branch. This is how the orchestrator reads the manifest the
// remote already has, without touching the working tree.
func (c *Client) FileAtRemoteHead(remote, branch, path string) (string, error) {
	repo, err := c.openRepo()
	if err != nil {
		return "", err
	}

	ref, err := repo.Reference(plumbing.NewRemoteReferenceName(remote, branch), true)
	if err != nil {
		return "", fmt.Errorf("resolving %s/%s: %w", remote, branch, err)
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return "", fmt.Errorf("reading commit %s: %w", ref.Hash(), err)
	}

	f, err := commit.File(path)
	if err != nil {
		return "", fmt.Errorf("reading %s at %s/%s: %w", path, remote, branch, err)
	}
	return f.Contents()
}

// Fetch updates the remote-tracking ref for remote/branch.
func (c *Client) Fetch(ctx context.Context, remote, branch string) error {
	repo, err := c.openRepo()
	if err != nil {
		return err
	}

	rem, err := repo.Remote(remote)
	if err != nil {
		return fmt.Errorf("resolving remote %s: %w", remote, err)
	}

	var auth transport.AuthMethod
	if urls := rem.Config().URLs; len(urls) > 0 {
		auth = authForURL(urls[0])
	}

	refspec := gitconfig.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", branch, remote, branch))
	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remote,
		RefSpecs:   []gitconfig.RefSpec{refspec},
		Auth:       auth,
	})
	if err == git.NoErrAlreadyUpToDate {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetching %s %s: %w", remote, branch, err)
	}
	return nil
}

// authForURL returns the authentication method for a remote URL. SSH URLs
// use SSH agent auth, HTTPS URLs use environment credentials.
func authForURL(url string) transport.AuthMethod {
	if isSSHURL(url) {
		auth, err := ssh.NewSSHAgentAuth("git")
		if err != nil {
			return nil
		}
		return auth
	}

	username := os.Getenv("GIT_USERNAME")
	password := os.Getenv("GIT_PASSWORD")
	if username == "" {
		// A GitHub token works as the username with an empty password.
		username = os.Getenv("GITHUB_TOKEN")
		password = ""
	}
	if username != "" {
		return &http.BasicAuth{Username: username, Password: password}
	}
	return nil
}

// isSSHURL detects git@ (SCP-style), ssh://, and git+ssh:// schemes.
func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "git@") ||
		strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://")
}

// SetIdentity configures the committer identity for automated commits.
func (c *Client) SetIdentity(ctx context.Context, name, email string) error {
	if err := c.Runner.Run(ctx, c.Dir, "git", "config", "user.name", name); err != nil {
		return err
	}
	return c.Runner.Run(ctx, c.Dir, "git", "config", "user.email", email)
}

// Rebase rebases the current branch onto remote/branch.
func (c *Client) Rebase(ctx context.Context, remote, branch string) error {
	return c.Runner.Run(ctx, c.Dir, "git", "rebase", remote+"/"+branch)
}

// IsClean reports whether the working tree has no staged, unstaged, or
// untracked changes.
func (c *Client) IsClean(ctx context.Context) (bool, error) {
	out, err := c.Runner.Output(ctx, c.Dir, "git", "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return out == "", nil
}

// AddAll stages all working-tree changes.
func (c *Client) AddAll(ctx context.Context) error {
	return c.Runner.Run(ctx, c.Dir, "git", "add", "-A")
}

// Commit records the staged changes with the given message.
func (c *Client) Commit(ctx context.Context, message string) error {
	return c.Runner.Run(ctx, c.Dir, "git", "commit", "-m", message)
}

// Push pushes the branch to the remote.
func (c *Client) Push(ctx context.Context, remote, branch string) error {
	return c.Runner.Run(ctx, c.Dir, "git", "push", remote, branch)
}
