// Package detect classifies a git diff's file list into named change
// categories for CI gating. The file list comes from a tree diff between
// two commits, falling back to a full listing of HEAD when no prior commit
// exists.
package detect

import (
	"regexp"
	"strings"
)

// ExcludedFolders do not count toward code changes: changelog metadata,
// documentation, and scratch areas never require a release.
var ExcludedFolders = []string{"changelog.d/", "docs/", "experiments/", "examples/"}

// ManifestFile is the literal path whose change flips PackageChanged.
const ManifestFile = "pyproject.toml"

var codePattern = regexp.MustCompile(`\.(py|toml|yml|yaml)$|\.github/workflows/`)

// Classification holds one boolean per change category.
type Classification struct {
	PyChanged       bool
	TestsChanged    bool
	PackageChanged  bool
	DocsChanged     bool
	WorkflowChanged bool
	AnyCodeChanged  bool
}

// Output is a single name=value pair for the CI pipeline.
type Output struct {
	Name  string
	Value bool
}

// Outputs returns the classification as ordered pipeline outputs.
func (c Classification) Outputs() []Output {
	return []Output{
		{"py-changed", c.PyChanged},
		{"tests-changed", c.TestsChanged},
		{"package-changed", c.PackageChanged},
		{"docs-changed", c.DocsChanged},
		{"workflow-changed", c.WorkflowChanged},
		{"any-code-changed", c.AnyCodeChanged},
	}
}

// Classify derives the change categories from a list of changed file paths.
func Classify(paths []string) Classification {
	var c Classification

	var codePaths []string
	for _, p := range paths {
		if strings.HasSuffix(p, ".py") {
			c.PyChanged = true
		}
		if strings.HasPrefix(p, "tests/") {
			c.TestsChanged = true
		}
		if p == ManifestFile {
			c.PackageChanged = true
		}
		if strings.HasSuffix(p, ".md") {
			c.DocsChanged = true
		}
		if strings.HasPrefix(p, ".github/workflows/") {
			c.WorkflowChanged = true
		}
		if !excludedFromCodeChanges(p) {
			codePaths = append(codePaths, p)
		}
	}

	for _, p := range codePaths {
		if codePattern.MatchString(p) {
			c.AnyCodeChanged = true
			break
		}
	}
	return c
}

// CodePaths returns the paths that count toward code changes, for logging.
func CodePaths(paths []string) []string {
	var out []string
	for _, p := range paths {
		if !excludedFromCodeChanges(p) {
			out = append(out, p)
		}
	}
	return out
}

// excludedFromCodeChanges reports whether a path never requires a changelog
// fragment: markdown anywhere, or anything under an excluded folder.
func excludedFromCodeChanges(path string) bool {
	if strings.HasSuffix(path, ".md") {
		return true
	}
	for _, folder := range ExcludedFolders {
		if strings.HasPrefix(path, folder) {
			return true
		}
	}
	return false
}
