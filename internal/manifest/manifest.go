// Package manifest reads and writes the version string embedded in a
// project manifest file (pyproject.toml by default). Edits are targeted
// pattern substitutions so that every untouched line survives byte-for-byte;
// the file is never reparsed and reserialized.
package manifest

import (
	"fmt"
	"os"
	"regexp"

	"github.com/ariel-frischer/releasekit/internal/errors"
)

var (
	versionPattern = regexp.MustCompile(`(?m)^version\s*=\s*["']([^"']+)["']`)
	namePattern    = regexp.MustCompile(`(?m)^name\s*=\s*["']([^"']+)["']`)
)

// Store provides access to the version and name fields of a manifest file.
type Store struct {
	Path string
}

// NewStore returns a Store for the manifest at path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Version extracts the current version string from the manifest.
func (s *Store) Version() (string, error) {
	content, err := os.ReadFile(s.Path)
	if err != nil {
		return "", errors.WrapWithMessage(err, errors.NotFound,
			fmt.Sprintf("reading manifest %s", s.Path))
	}
	return VersionFromContent(string(content))
}

// VersionFromContent extracts the version string from manifest content.
// This is used both for the working-tree manifest and for manifest blobs
// read from a remote git head.
func VersionFromContent(content string) (string, error) {
	m := versionPattern.FindStringSubmatch(content)
	if m == nil {
		return "", errors.NewNotFoundError(
			"could not find version in manifest",
			`expected a line matching: version = "X.Y.Z"`)
	}
	return m[1], nil
}

// Name extracts the package name from the manifest.
func (s *Store) Name() (string, error) {
	content, err := os.ReadFile(s.Path)
	if err != nil {
		return "", errors.WrapWithMessage(err, errors.NotFound,
			fmt.Sprintf("reading manifest %s", s.Path))
	}
	m := namePattern.FindStringSubmatch(string(content))
	if m == nil {
		return "", errors.NewNotFoundError(
			"could not find package name in manifest",
			`expected a line matching: name = "my-package"`)
	}
	return m[1], nil
}

// WriteVersion replaces the version line matching oldVersion with
// newVersion. The substitution is anchored to the exact old version; if it
// produces no change the write is rejected rather than silently succeeding.
func (s *Store) WriteVersion(oldVersion, newVersion string) error {
	content, err := os.ReadFile(s.Path)
	if err != nil {
		return errors.WrapWithMessage(err, errors.NotFound,
			fmt.Sprintf("reading manifest %s", s.Path))
	}

	pattern, err := regexp.Compile(`(?m)^(version\s*=\s*["'])` + regexp.QuoteMeta(oldVersion) + `(["'])`)
	if err != nil {
		return fmt.Errorf("compiling version pattern: %w", err)
	}

	updated := pattern.ReplaceAllString(string(content), "${1}"+newVersion+"${2}")
	if updated == string(content) {
		return errors.NewWriteError(
			fmt.Sprintf("failed to update version from %s to %s", oldVersion, newVersion),
			"check that the manifest version line matches the expected format")
	}

	info, err := os.Stat(s.Path)
	if err != nil {
		return fmt.Errorf("stat manifest: %w", err)
	}
	if err := os.WriteFile(s.Path, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
