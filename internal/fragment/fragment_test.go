package fragment

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/releasekit/internal/semver"
)

func TestList(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	files := map[string]time.Time{
		"20240101_120000_alice_feature.md": time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		"20240102_120000_bob_fix.md":       time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
		"20240103_120000_carol_docs.md":    time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC),
	}
	for name, mtime := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("### Added\n\n- x\n"), 0o644))
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}

	// Excluded from listings.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "template.md.j2"), []byte("tmpl"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not md"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.md"), 0o755))

	fragments, err := store.List()
	require.NoError(t, err)
	require.Len(t, fragments, 3)

	// Newest first.
	assert.Equal(t, "20240103_120000_carol_docs.md", fragments[0].Name)
	assert.Equal(t, "20240102_120000_bob_fix.md", fragments[1].Name)
	assert.Equal(t, "20240101_120000_alice_feature.md", fragments[2].Name)
}

func TestList_MissingDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "changelog.d"))

	fragments, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, fragments)
}

func TestCategoryForKind(t *testing.T) {
	assert.Equal(t, "Changed", CategoryForKind(semver.Major))
	assert.Equal(t, "Added", CategoryForKind(semver.Minor))
	assert.Equal(t, "Fixed", CategoryForKind(semver.Patch))
}

func TestCreate_WithDescription(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "changelog.d"))
	now := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)

	frag, err := store.Create(semver.Minor, "Add retry support", CreateOptions{
		Username: "Alice",
		Branch:   "feature/retry",
		Now:      now,
	})
	require.NoError(t, err)

	assert.Equal(t, "20240315_093045_alice_feature_retry.md", frag.Name)

	content, err := frag.Read()
	require.NoError(t, err)
	assert.Equal(t, "### Added\n\n- Add retry support\n", content)
}

func TestCreate_SanitizesFilenameParts(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "changelog.d"))
	now := time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC)

	frag, err := store.Create(semver.Patch, "fix", CreateOptions{
		Username: "Us er@Host",
		Branch:   "fix/issue #42",
		Now:      now,
	})
	require.NoError(t, err)

	assert.Equal(t, "20240315_093045_us_er_host_fix_issue__42.md", frag.Name)
}

func TestCreate_WithoutDescriptionWritesTemplate(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "changelog.d"))

	frag, err := store.Create(semver.Patch, "", CreateOptions{
		Username: "dev",
		Branch:   "main",
		Now:      time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC),
	})
	require.NoError(t, err)

	content, err := frag.Read()
	require.NoError(t, err)
	assert.Contains(t, content, "Uncomment the relevant sections")
	assert.Contains(t, content, "### Added")
	assert.Contains(t, content, "### Security")

	// The template ships valid so a forgotten edit does not break release.
	assert.NoError(t, ValidateContent(frag.Name, content))
}

func TestCreate_DefaultIdentity(t *testing.T) {
	t.Setenv("USER", "")
	t.Setenv("USERNAME", "")
	store := NewStore(filepath.Join(t.TempDir(), "changelog.d"))

	frag, err := store.Create(semver.Patch, "fix", CreateOptions{
		Now: time.Date(2024, 3, 15, 9, 30, 45, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "20240315_093045_user_manual.md", frag.Name)
}

func TestRemove(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "changelog.d"))

	frag, err := store.Create(semver.Patch, "fix", CreateOptions{Username: "dev", Branch: "main"})
	require.NoError(t, err)
	require.NoError(t, frag.Remove())

	fragments, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, fragments)
}
