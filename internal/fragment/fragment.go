// Package fragment manages changelog fragments: small Markdown files under
// changelog.d/ that each document one unreleased change. Fragments are
// created per change and folded into CHANGELOG.md at release time.
package fragment

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/ariel-frischer/releasekit/internal/errors"
	"github.com/ariel-frischer/releasekit/internal/semver"
)

// ReservedName is excluded from fragment listings.
const ReservedName = "README.md"

// TemplateExt marks template files excluded from fragment listings.
const TemplateExt = ".j2"

// RequireFragment controls whether a missing fragment fails validation.
// Currently a warning only; flip to true to make fragments mandatory.
const RequireFragment = false

// Categories are the recognized change category headings, in their
// Keep a Changelog order.
var Categories = []string{"Added", "Changed", "Deprecated", "Removed", "Fixed", "Security"}

var sanitizePattern = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// Fragment is a single changelog fragment file.
type Fragment struct {
	Path    string
	Name    string
	ModTime time.Time
}

// Store manages the fragment directory.
type Store struct {
	Dir string
}

// NewStore returns a Store for the fragment directory at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// List returns all fragments in the directory, newest first by modification
// time. The reserved README and template files are excluded. A missing
// directory yields an empty list.
func (s *Store) List() ([]Fragment, error) {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading fragment directory: %w", err)
	}

	var fragments []Fragment
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		if name == ReservedName || strings.HasSuffix(name, TemplateExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat fragment %s: %w", name, err)
		}
		fragments = append(fragments, Fragment{
			Path:    filepath.Join(s.Dir, name),
			Name:    name,
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(fragments, func(i, j int) bool {
		return fragments[i].ModTime.After(fragments[j].ModTime)
	})
	return fragments, nil
}

// CategoryForKind maps a bump kind to the default change category:
// major bumps document breaking changes, minor bumps new features,
// patch bumps fixes.
func CategoryForKind(kind semver.Kind) string {
	switch kind {
	case semver.Major:
		return "Changed"
	case semver.Minor:
		return "Added"
	default:
		return "Fixed"
	}
}

// CreateOptions supplies the identity parts embedded in fragment filenames.
type CreateOptions struct {
	// Username for the filename; sanitized and lowercased. Empty falls
	// back to $USER, $USERNAME, then "user".
	Username string
	// Branch for the filename; sanitized. Empty falls back to "manual".
	Branch string
	// Now overrides the timestamp (tests). Zero means time.Now().
	Now time.Time
}

// Create writes a new fragment for the given bump kind. With a description
// the fragment contains a single category heading and bullet; without one it
// contains a commented template listing all categories for manual editing.
func (s *Store) Create(kind semver.Kind, description string, opts CreateOptions) (Fragment, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return Fragment{}, fmt.Errorf("creating fragment directory: %w", err)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	username := opts.Username
	if username == "" {
		username = os.Getenv("USER")
	}
	if username == "" {
		username = os.Getenv("USERNAME")
	}
	if username == "" {
		username = "user"
	}
	branch := opts.Branch
	if branch == "" {
		branch = "manual"
	}

	name := fmt.Sprintf("%s_%s_%s.md",
		now.Format("20060102_150405"),
		strings.ToLower(sanitize(username)),
		sanitize(branch))
	path := filepath.Join(s.Dir, name)

	var content string
	if description != "" {
		content = fmt.Sprintf("### %s\n\n- %s\n", CategoryForKind(kind), description)
	} else {
		content = templateContent
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return Fragment{}, fmt.Errorf("writing fragment: %w", err)
	}
	return Fragment{Path: path, Name: name, ModTime: now}, nil
}

// sanitize replaces filename-hostile characters with underscores.
func sanitize(s string) string {
	return sanitizePattern.ReplaceAllString(s, "_")
}

// Read returns the fragment's content.
func (f Fragment) Read() (string, error) {
	content, err := os.ReadFile(f.Path)
	if err != nil {
		return "", errors.WrapWithMessage(err, errors.NotFound,
			fmt.Sprintf("reading fragment %s", f.Name))
	}
	return string(content), nil
}

// Remove deletes the fragment file, typically after it has been folded into
// the aggregate changelog.
func (f Fragment) Remove() error {
	if err := os.Remove(f.Path); err != nil {
		return fmt.Errorf("removing fragment %s: %w", f.Name, err)
	}
	return nil
}

const templateContent = `<!--
Uncomment the relevant sections below and describe your changes.
Delete any sections you don't need.
-->

### Added

- New feature description

### Changed

- Change to existing functionality

### Fixed

- Bug fix description

<!--
### Removed

- Removed feature

### Deprecated

- Deprecated feature

### Security

- Security fix
-->
`
