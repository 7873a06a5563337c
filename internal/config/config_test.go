package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir is a stand-in for testing.T.Chdir (Go 1.24+) so the tests run on
// older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GITHUB_REPOSITORY", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "pyproject.toml", cfg.Manifest)
	assert.Equal(t, "CHANGELOG.md", cfg.Changelog)
	assert.Equal(t, "changelog.d", cfg.FragmentDir)
	assert.Equal(t, "dist", cfg.DistDir)
	assert.Equal(t, "python3", cfg.Python)
	assert.Equal(t, "origin", cfg.Git.Remote)
	assert.Equal(t, "main", cfg.Git.DefaultBranch)
	assert.Equal(t, "github-actions[bot]", cfg.Git.BotName)
	assert.Equal(t, "github-actions[bot]@users.noreply.github.com", cfg.Git.BotEmail)
	assert.Empty(t, cfg.GitHub.Repository)
}

func TestLoad_ProjectFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".releasekit.yml")
	content := `manifest: custom.toml
git:
  default_branch: trunk
github:
  repository: owner/repo
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "custom.toml", cfg.Manifest)
	assert.Equal(t, "trunk", cfg.Git.DefaultBranch)
	assert.Equal(t, "owner/repo", cfg.GitHub.Repository)
	// Untouched keys keep their defaults.
	assert.Equal(t, "CHANGELOG.md", cfg.Changelog)
	assert.Equal(t, "origin", cfg.Git.Remote)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".releasekit.yml")
	require.NoError(t, os.WriteFile(path, []byte("manifest: from-file.toml\n"), 0o644))

	t.Setenv("RELEASEKIT_MANIFEST", "from-env.toml")
	t.Setenv("RELEASEKIT_GIT_DEFAULT_BRANCH", "develop")
	t.Setenv("RELEASEKIT_GITHUB_PACKAGE_NAME", "my-package")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env.toml", cfg.Manifest)
	assert.Equal(t, "develop", cfg.Git.DefaultBranch)
	assert.Equal(t, "my-package", cfg.GitHub.PackageName)
}

func TestLoad_RepositoryFallsBackToActionsEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GITHUB_REPOSITORY", "actions-owner/actions-repo")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "actions-owner/actions-repo", cfg.GitHub.Repository)
}

func TestLoad_ExplicitMissingFileIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.ErrorContains(t, err, "config file not found")
}

func TestLoad_MissingDefaultFileIsNotAnError(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("")
	assert.NoError(t, err)
}

func TestEnvTransform(t *testing.T) {
	tests := map[string]string{
		"RELEASEKIT_MANIFEST":            "manifest",
		"RELEASEKIT_FRAGMENT_DIR":        "fragment_dir",
		"RELEASEKIT_GIT_REMOTE":          "git.remote",
		"RELEASEKIT_GIT_DEFAULT_BRANCH":  "git.default_branch",
		"RELEASEKIT_GITHUB_REPOSITORY":   "github.repository",
		"RELEASEKIT_GITHUB_PACKAGE_NAME": "github.package_name",
	}

	for input, expected := range tests {
		assert.Equal(t, expected, envTransform(input))
	}
}
