package release

import (
	"fmt"
	"regexp"
	"strings"
)

// badgeMarkers identify a body that has already been formatted. Their
// presence makes FormatNotes a no-op, so re-running the formatter on the
// same release is safe.
var badgeMarkers = []string{"pypi.org/project", "img.shields.io"}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// AlreadyFormatted reports whether a release body carries a badge marker.
func AlreadyFormatted(body string) bool {
	lower := strings.ToLower(body)
	for _, marker := range badgeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// FormatNotes enhances a release body with a package-index version badge
// and an optional pull-request backlink, then cleans the original text:
// escaped newline/quote sequences are unescaped, duplicate version headings
// removed, and runs of three or more blank lines collapsed. Idempotent:
// an already-formatted body is returned unchanged.
func FormatNotes(body, version, repository, prNumber, packageName string) string {
	if AlreadyFormatted(body) {
		return body
	}

	var parts []string

	badge := fmt.Sprintf(
		"[![PyPI version](https://img.shields.io/pypi/v/%s.svg)](https://pypi.org/project/%s/)",
		packageName, packageName)
	parts = append(parts, badge, "")

	if prNumber != "" {
		link := fmt.Sprintf("**Pull Request:** [#%s](https://github.com/%s/pull/%s)",
			prNumber, repository, prNumber)
		parts = append(parts, link, "")
	}

	cleaned := strings.TrimSpace(body)
	cleaned = strings.ReplaceAll(cleaned, `\n`, "\n")
	cleaned = strings.ReplaceAll(cleaned, `\r`, "")
	cleaned = strings.ReplaceAll(cleaned, `\"`, `"`)

	versionHeading := regexp.MustCompile(`(?m)^#+\s*v?` + regexp.QuoteMeta(version) + `\s*$`)
	cleaned = versionHeading.ReplaceAllString(cleaned, "")

	cleaned = blankRuns.ReplaceAllString(cleaned, "\n\n")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned != "" {
		parts = append(parts, cleaned)
	}

	return strings.Join(parts, "\n")
}
