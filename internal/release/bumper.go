package release

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/ariel-frischer/releasekit/internal/changelog"
	"github.com/ariel-frischer/releasekit/internal/fragment"
	"github.com/ariel-frischer/releasekit/internal/manifest"
	"github.com/ariel-frischer/releasekit/internal/output"
	"github.com/ariel-frischer/releasekit/internal/semver"
)

var htmlComment = regexp.MustCompile(`(?s)<!--.*?-->`)

// Bumper performs the version bump and folds the change description into
// the aggregate changelog.
type Bumper struct {
	Manifest      *manifest.Store
	ChangelogPath string
	Fragments     *fragment.Store
	// ConsumeFragments deletes fragments whose bullets were folded into
	// the changelog. The CI release path sets this; the local bump
	// command leaves fragments in place.
	ConsumeFragments bool
	Out              io.Writer
	// Now overrides the entry date (tests). Nil means time.Now.
	Now func() time.Time
}

// Run bumps the manifest version by kind and inserts a changelog entry.
// The entry's bullets come from the description when given, otherwise from
// pending fragments, otherwise a generic placeholder.
func (b *Bumper) Run(kind semver.Kind, description string) (oldVersion, newVersion string, err error) {
	oldVersion, err = b.Manifest.Version()
	if err != nil {
		return "", "", err
	}
	fmt.Fprintf(b.Out, "Current version: %s\n", oldVersion)

	current, err := semver.Parse(oldVersion)
	if err != nil {
		return "", "", err
	}
	newVersion = current.Bump(kind).String()
	fmt.Fprintf(b.Out, "New version: %s\n", newVersion)

	if err := b.Manifest.WriteVersion(oldVersion, newVersion); err != nil {
		return "", "", err
	}
	output.PrintSuccess(b.Out, fmt.Sprintf("Updated %s: %s → %s", b.Manifest.Path, oldVersion, newVersion))

	bullets, consumed, err := b.collectBullets(kind, description)
	if err != nil {
		return "", "", err
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	entry := changelog.Entry{
		Version: newVersion,
		Date:    now().Format("2006-01-02"),
		Title:   titleForKind(kind),
		Bullets: bullets,
	}

	skipped, err := changelog.Update(b.ChangelogPath, entry)
	if err != nil {
		return "", "", err
	}
	if skipped {
		output.PrintWarning(b.Out, fmt.Sprintf("%s not found, skipping changelog update", b.ChangelogPath))
		return oldVersion, newVersion, nil
	}
	output.PrintSuccess(b.Out, fmt.Sprintf("Updated %s", b.ChangelogPath))

	if b.ConsumeFragments {
		for _, f := range consumed {
			if err := f.Remove(); err != nil {
				return "", "", err
			}
			fmt.Fprintf(b.Out, "Merged fragment: %s\n", f.Name)
		}
	}
	return oldVersion, newVersion, nil
}

// collectBullets resolves the changelog bullets for this bump. An explicit
// description wins; otherwise bullets are gathered from pending fragments
// (newest first), which are reported back for consumption.
func (b *Bumper) collectBullets(kind semver.Kind, description string) ([]string, []fragment.Fragment, error) {
	if description != "" {
		return []string{description}, nil, nil
	}

	if b.Fragments != nil {
		fragments, err := b.Fragments.List()
		if err != nil {
			return nil, nil, err
		}

		var bullets []string
		var consumed []fragment.Fragment
		for _, f := range fragments {
			content, err := f.Read()
			if err != nil {
				return nil, nil, err
			}
			fb := fragmentBullets(content)
			if len(fb) == 0 {
				continue
			}
			bullets = append(bullets, fb...)
			consumed = append(consumed, f)
		}
		if len(bullets) > 0 {
			return bullets, consumed, nil
		}
	}

	return []string{fmt.Sprintf("Manual %s release", kind)}, nil, nil
}

// fragmentBullets extracts the bullet lines from fragment content,
// ignoring anything inside HTML comments.
func fragmentBullets(content string) []string {
	content = htmlComment.ReplaceAllString(content, "")

	var bullets []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") {
			bullets = append(bullets, strings.TrimPrefix(line, "- "))
		}
	}
	return bullets
}

// titleForKind names the changelog section for a bump kind, e.g.
// "Patch Changes".
func titleForKind(kind semver.Kind) string {
	k := kind.String()
	return strings.ToUpper(k[:1]) + k[1:] + " Changes"
}
