// Package github wraps the GitHub hosting CLI (gh) for release creation and
// API-level release reads and patches. All invocations go through the
// injected command runner.
package github

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ariel-frischer/releasekit/internal/errors"
	"github.com/ariel-frischer/releasekit/internal/runner"
)

// Client invokes gh against a single repository.
type Client struct {
	Runner     runner.Runner
	Repository string // owner/repo
}

// NewClient returns a Client for the given repository.
func NewClient(r runner.Runner, repository string) *Client {
	return &Client{Runner: r, Repository: repository}
}

// EnsureAuth verifies a GitHub token is present before invoking gh.
func (c *Client) EnsureAuth() error {
	if os.Getenv("GH_TOKEN") == "" && os.Getenv("GITHUB_TOKEN") == "" {
		return errors.NewAuthError(
			"GH_TOKEN or GITHUB_TOKEN environment variable required",
			"export a token with repo scope, or run inside GitHub Actions")
	}
	return nil
}

// EnsureCLI verifies the gh binary is available.
func (c *Client) EnsureCLI() error {
	if !c.Runner.LookPath("gh") {
		return errors.NewExternalToolError(
			"gh CLI not found", 1,
			"install from https://cli.github.com/")
	}
	return nil
}

// CreateRelease creates a release object tagged v<version> with title equal
// to the tag and the given notes body.
func (c *Client) CreateRelease(ctx context.Context, tag, notes string, prerelease bool) error {
	args := []string{
		"release", "create", tag,
		"--repo", c.Repository,
		"--title", tag,
		"--notes", notes,
	}
	if prerelease {
		args = append(args, "--prerelease")
	}
	return c.Runner.Run(ctx, "", "gh", args...)
}

// ReleaseBody fetches the body text of a release by ID.
func (c *Client) ReleaseBody(ctx context.Context, releaseID string) (string, error) {
	out, err := c.Runner.Output(ctx, "", "gh",
		"api", fmt.Sprintf("repos/%s/releases/%s", c.Repository, releaseID),
		"--jq", ".body")
	if err != nil {
		return "", fmt.Errorf("fetching release %s: %w", releaseID, err)
	}
	return out, nil
}

// UpdateReleaseBody patches the body text of a release by ID.
func (c *Client) UpdateReleaseBody(ctx context.Context, releaseID, body string) error {
	err := c.Runner.Run(ctx, "", "gh",
		"api", "-X", "PATCH",
		fmt.Sprintf("repos/%s/releases/%s", c.Repository, releaseID),
		"-f", "body="+body)
	if err != nil {
		return fmt.Errorf("updating release %s: %w", releaseID, err)
	}
	return nil
}

// PRForCommit returns the number of the first pull request containing the
// commit, or empty string when none is associated.
func (c *Client) PRForCommit(ctx context.Context, commitSHA string) (string, error) {
	if commitSHA == "" {
		return "", nil
	}

	out, err := c.Runner.Output(ctx, "", "gh",
		"api", fmt.Sprintf("repos/%s/commits/%s/pulls", c.Repository, commitSHA),
		"--jq", ".[0].number")
	if err != nil {
		// PR lookup is best-effort: a release is still formattable
		// without its backlink.
		return "", nil
	}

	out = strings.TrimSpace(out)
	if out == "" || out == "null" {
		return "", nil
	}
	if _, err := strconv.Atoi(out); err != nil {
		return "", nil
	}
	return out, nil
}
