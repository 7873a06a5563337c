package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := map[string]struct {
		paths    []string
		expected Classification
	}{
		"no changes": {
			paths:    nil,
			expected: Classification{},
		},
		"python source": {
			paths: []string{"src/pkg/core.py"},
			expected: Classification{
				PyChanged:      true,
				AnyCodeChanged: true,
			},
		},
		"tests only": {
			paths: []string{"tests/test_core.py"},
			expected: Classification{
				PyChanged:      true,
				TestsChanged:   true,
				AnyCodeChanged: true,
			},
		},
		"manifest": {
			paths: []string{"pyproject.toml"},
			expected: Classification{
				PackageChanged: true,
				AnyCodeChanged: true,
			},
		},
		"workflow": {
			paths: []string{".github/workflows/ci.yml"},
			expected: Classification{
				WorkflowChanged: true,
				AnyCodeChanged:  true,
			},
		},
		"markdown never counts as code": {
			paths: []string{"README.md", "docs/guide.md"},
			expected: Classification{
				DocsChanged: true,
			},
		},
		"changelog fragments are not code": {
			paths: []string{"changelog.d/20240101_120000_dev_fix.md"},
			expected: Classification{
				DocsChanged: true,
			},
		},
		"mixed docs and code": {
			paths: []string{"a.py", "docs/x.md", "changelog.d/y.md"},
			expected: Classification{
				PyChanged:      true,
				DocsChanged:    true,
				AnyCodeChanged: true,
			},
		},
		"excluded folder with code extension": {
			paths: []string{"experiments/try.py", "examples/demo.py"},
			expected: Classification{
				PyChanged: true,
			},
		},
		"non-code extension": {
			paths: []string{"assets/logo.png", "LICENSE"},
			expected: Classification{},
		},
		"yaml outside workflows still code": {
			paths: []string{"mkdocs.yml"},
			expected: Classification{
				AnyCodeChanged: true,
			},
		},
		"manifest path must be exact": {
			paths: []string{"sub/pyproject.toml"},
			expected: Classification{
				AnyCodeChanged: true,
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.paths))
		})
	}
}

func TestOutputs_OrderAndNames(t *testing.T) {
	c := Classification{PyChanged: true, AnyCodeChanged: true}

	outputs := c.Outputs()
	names := make([]string, len(outputs))
	for i, o := range outputs {
		names[i] = o.Name
	}

	assert.Equal(t, []string{
		"py-changed",
		"tests-changed",
		"package-changed",
		"docs-changed",
		"workflow-changed",
		"any-code-changed",
	}, names)
	assert.True(t, outputs[0].Value)
	assert.False(t, outputs[1].Value)
	assert.True(t, outputs[5].Value)
}

func TestCodePaths(t *testing.T) {
	paths := []string{
		"src/core.py",
		"README.md",
		"changelog.d/frag.md",
		"docs/conf.py",
		"pyproject.toml",
	}

	assert.Equal(t, []string{"src/core.py", "pyproject.toml"}, CodePaths(paths))
}
