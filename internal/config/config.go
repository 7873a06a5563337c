// Package config provides configuration management for releasekit using
// koanf. Configuration is loaded with priority: environment variables
// (RELEASEKIT_*) > project config (.releasekit.yml) > defaults. The loaded
// Config is passed explicitly to each component at construction; nothing in
// releasekit reads configuration from process globals after startup.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ProjectConfigName is the project-level config file looked up in the
// working directory.
const ProjectConfigName = ".releasekit.yml"

// EnvPrefix namespaces releasekit environment overrides.
const EnvPrefix = "RELEASEKIT_"

// Config is the full releasekit configuration.
type Config struct {
	// Manifest is the project manifest file containing the version line.
	Manifest string `koanf:"manifest"`
	// Changelog is the aggregate changelog document.
	Changelog string `koanf:"changelog"`
	// FragmentDir holds unreleased changelog fragments.
	FragmentDir string `koanf:"fragment_dir"`
	// DistDir receives built distribution artifacts.
	DistDir string `koanf:"dist_dir"`
	// Python is the interpreter used to invoke build and twine.
	Python string `koanf:"python"`

	Git    GitConfig    `koanf:"git"`
	GitHub GitHubConfig `koanf:"github"`
}

// GitConfig configures the git collaborator.
type GitConfig struct {
	// Remote is the remote name releases are pushed to.
	Remote string `koanf:"remote"`
	// DefaultBranch is the branch releases land on.
	DefaultBranch string `koanf:"default_branch"`
	// BotName and BotEmail form the committer identity for automated
	// release commits.
	BotName  string `koanf:"bot_name"`
	BotEmail string `koanf:"bot_email"`
}

// GitHubConfig configures the hosting-platform collaborator.
type GitHubConfig struct {
	// Repository in owner/repo form. Empty falls back to
	// $GITHUB_REPOSITORY, which Actions always sets.
	Repository string `koanf:"repository"`
	// PackageName for the package-index badge. Empty is resolved from
	// the manifest name field at use time.
	PackageName string `koanf:"package_name"`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"manifest":     "pyproject.toml",
		"changelog":    "CHANGELOG.md",
		"fragment_dir": "changelog.d",
		"dist_dir":     "dist",
		"python":       "python3",
		"git": map[string]interface{}{
			"remote":         "origin",
			"default_branch": "main",
			"bot_name":       "github-actions[bot]",
			"bot_email":      "github-actions[bot]@users.noreply.github.com",
		},
		"github": map[string]interface{}{
			"repository":   "",
			"package_name": "",
		},
	}
}

// Load loads configuration from defaults, the project config file, and
// environment variables. An empty projectConfigPath uses ProjectConfigName
// in the working directory; a missing file is not an error.
func Load(projectConfigPath string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	path := projectConfigPath
	if path == "" {
		path = ProjectConfigName
	}
	if fileExists(path) {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	} else if projectConfigPath != "" {
		return nil, fmt.Errorf("config file not found: %s", projectConfigPath)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.GitHub.Repository == "" {
		cfg.GitHub.Repository = os.Getenv("GITHUB_REPOSITORY")
	}

	return &cfg, nil
}

// envTransform maps RELEASEKIT_GIT_DEFAULT_BRANCH to git.default_branch and
// RELEASEKIT_MANIFEST to manifest. Only known groups nest; everything else
// stays a flat key.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, group := range []string{"github_", "git_"} {
		if strings.HasPrefix(s, group) {
			return strings.TrimSuffix(group, "_") + "." + strings.TrimPrefix(s, group)
		}
	}
	return s
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
