package fragment

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/releasekit/internal/errors"
	"github.com/ariel-frischer/releasekit/internal/semver"
)

func TestValidateContent_Valid(t *testing.T) {
	tests := map[string]string{
		"single category":          "### Added\n\n- New feature\n",
		"multiple categories":      "### Added\n\n- Feature\n\n### Fixed\n\n- Bug\n",
		"lowercase heading":        "### added\n\n- feature\n",
		"heading with extra text":  "### Fixed (hotfix)\n\n- Urgent bug\n",
		"comment above category":   "<!-- pick one -->\n\n### Changed\n\n- Behavior change\n",
		"prose instead of bullets": "### Security\n\nPatched the token leak.\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, ValidateContent("test.md", content))
		})
	}
}

func TestValidateContent_Invalid(t *testing.T) {
	tests := map[string]struct {
		content string
		message string
	}{
		"empty file": {
			content: "",
			message: "is empty",
		},
		"whitespace only": {
			content: "  \n\t\n",
			message: "is empty",
		},
		"comment only": {
			content: "<!--\n### Added\n\n- hidden in a comment\n-->\n",
			message: "missing category heading",
		},
		"no category heading": {
			content: "just some notes\n\n- a bullet\n",
			message: "missing category heading",
		},
		"wrong heading level": {
			content: "## Added\n\n- feature\n",
			message: "missing category heading",
		},
		"unknown category": {
			content: "### Improved\n\n- something\n",
			message: "missing category heading",
		},
		"heading without content": {
			content: "### Added\n",
			message: "has no content",
		},
		"headings and comments only": {
			content: "### Added\n\n<!-- describe the change -->\n",
			message: "has no content",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := ValidateContent("test.md", tc.content)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)

			cliErr := errors.AsCLIError(err)
			require.NotNil(t, cliErr)
			assert.Equal(t, errors.Validation, cliErr.Category)
		})
	}
}

func TestValidate_ReadsFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "changelog.d"))

	frag, err := store.Create(semver.Minor, "Add a feature", CreateOptions{Username: "dev", Branch: "main"})
	require.NoError(t, err)

	assert.NoError(t, frag.Validate())
}

func TestValidate_MissingFile(t *testing.T) {
	frag := Fragment{Path: filepath.Join(t.TempDir(), "gone.md"), Name: "gone.md"}
	assert.Error(t, frag.Validate())
}
