package release

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNotes_AddsBadge(t *testing.T) {
	formatted := FormatNotes("### Added\n\n- Feature", "1.2.3", "owner/repo", "", "my-package")

	assert.True(t, strings.HasPrefix(formatted,
		"[![PyPI version](https://img.shields.io/pypi/v/my-package.svg)](https://pypi.org/project/my-package/)"))
	assert.Contains(t, formatted, "- Feature")
	assert.NotContains(t, formatted, "Pull Request")
}

func TestFormatNotes_AddsPRLink(t *testing.T) {
	formatted := FormatNotes("body", "1.2.3", "owner/repo", "42", "my-package")

	assert.Contains(t, formatted, "**Pull Request:** [#42](https://github.com/owner/repo/pull/42)")
}

func TestFormatNotes_Idempotent(t *testing.T) {
	first := FormatNotes("### Added\n\n- Feature", "1.2.3", "owner/repo", "42", "my-package")
	second := FormatNotes(first, "1.2.3", "owner/repo", "42", "my-package")

	assert.Equal(t, first, second)
}

func TestFormatNotes_UnescapesSequences(t *testing.T) {
	body := `### Added\n\n- Supports \"quoted\" values\r`

	formatted := FormatNotes(body, "1.2.3", "owner/repo", "", "my-package")

	assert.Contains(t, formatted, "### Added\n\n- Supports \"quoted\" values")
	assert.NotContains(t, formatted, `\n`)
	assert.NotContains(t, formatted, `\"`)
}

func TestFormatNotes_RemovesDuplicateVersionHeadings(t *testing.T) {
	tests := map[string]string{
		"bare version":   "## 1.2.3\n\n- Change",
		"v-prefixed":     "## v1.2.3\n\n- Change",
		"deeper heading": "### v1.2.3\n\n- Change",
		"spaced heading": "##  v1.2.3 \n\n- Change",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			formatted := FormatNotes(body, "1.2.3", "owner/repo", "", "my-package")
			assert.NotContains(t, formatted, "1.2.3\n", "version heading should be removed")
			assert.Contains(t, formatted, "- Change")
		})
	}
}

func TestFormatNotes_CollapsesBlankRuns(t *testing.T) {
	body := "line one\n\n\n\n\nline two"

	formatted := FormatNotes(body, "1.2.3", "owner/repo", "", "my-package")

	assert.Contains(t, formatted, "line one\n\nline two")
	assert.NotContains(t, formatted, "\n\n\n")
}

func TestFormatNotes_EmptyBody(t *testing.T) {
	formatted := FormatNotes("", "1.2.3", "owner/repo", "", "my-package")

	assert.Contains(t, formatted, "img.shields.io")
	assert.False(t, strings.HasSuffix(formatted, "\n\n"))
}

func TestAlreadyFormatted(t *testing.T) {
	tests := map[string]struct {
		body     string
		expected bool
	}{
		"plain body":        {"### Added\n- x", false},
		"pypi project link": {"see https://PyPI.org/project/my-package/", true},
		"shields badge":     {"![badge](https://img.shields.io/pypi/v/x.svg)", true},
		"empty":             {"", false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AlreadyFormatted(tc.body))
		})
	}
}
