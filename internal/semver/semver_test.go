package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected Version
	}{
		"zeros":          {"0.0.0", Version{0, 0, 0}},
		"typical":        {"1.2.3", Version{1, 2, 3}},
		"multi digit":    {"10.20.30", Version{10, 20, 30}},
		"initial public": {"0.1.0", Version{0, 1, 0}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v)
			assert.Equal(t, tc.input, v.String())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":               "",
		"two components":      "1.2",
		"four components":     "1.2.3.4",
		"prerelease suffix":   "1.2.3-beta.1",
		"build metadata":      "1.2.3+build",
		"non-numeric":         "a.b.c",
		"negative":            "1.-2.3",
		"leading zero":        "01.2.3",
		"v prefix":            "v1.2.3",
		"trailing whitespace": "1.2.3 ",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(input)
			assert.Error(t, err)
		})
	}
}

func TestBump(t *testing.T) {
	tests := map[string]struct {
		current  string
		kind     Kind
		expected string
	}{
		"patch increments patch only":     {"1.2.3", Patch, "1.2.4"},
		"minor zeroes patch":              {"1.2.3", Minor, "1.3.0"},
		"major zeroes minor and patch":    {"1.2.3", Major, "2.0.0"},
		"patch from zero":                 {"0.0.0", Patch, "0.0.1"},
		"minor from initial":              {"0.1.0", Minor, "0.2.0"},
		"major crosses one-dot-oh":        {"0.9.9", Major, "1.0.0"},
		"patch preserves high components": {"10.20.30", Patch, "10.20.31"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			current, err := Parse(tc.current)
			require.NoError(t, err)

			bumped := current.Bump(tc.kind)
			assert.Equal(t, tc.expected, bumped.String())
			// A bump is always strictly greater under semver precedence.
			assert.Equal(t, 1, bumped.Compare(current))
		})
	}
}

func TestBump_ZeroesLowerOrderComponents(t *testing.T) {
	v := Version{3, 7, 9}

	assert.Equal(t, Version{4, 0, 0}, v.Bump(Major))
	assert.Equal(t, Version{3, 8, 0}, v.Bump(Minor))
	assert.Equal(t, Version{3, 7, 10}, v.Bump(Patch))
}

func TestParseKind(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected Kind
		wantErr  bool
	}{
		"major":      {input: "major", expected: Major},
		"minor":      {input: "minor", expected: Minor},
		"patch":      {input: "patch", expected: Patch},
		"uppercase":  {input: "MAJOR", expected: Major},
		"padded":     {input: " patch ", expected: Patch},
		"invalid":    {input: "huge", wantErr: true},
		"empty kind": {input: "", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			kind, err := ParseKind(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, kind)
		})
	}
}

func TestCompare(t *testing.T) {
	tests := map[string]struct {
		a, b     string
		expected int
	}{
		"equal":         {"1.2.3", "1.2.3", 0},
		"major wins":    {"2.0.0", "1.9.9", 1},
		"minor wins":    {"1.3.0", "1.2.9", 1},
		"patch wins":    {"1.2.4", "1.2.3", 1},
		"less than":     {"1.2.3", "1.2.4", -1},
		"major beats b": {"0.9.9", "1.0.0", -1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			a, err := Parse(tc.a)
			require.NoError(t, err)
			b, err := Parse(tc.b)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, a.Compare(b))
		})
	}
}

func TestTag(t *testing.T) {
	assert.Equal(t, "v1.2.3", Version{1, 2, 3}.Tag())
}
