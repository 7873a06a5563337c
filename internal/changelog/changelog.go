// Package changelog manipulates the aggregate CHANGELOG.md document.
// Version sections use "## <version> - <date>" headings, newest first.
// Operations splice text rather than reparse the document so existing
// sections are never reformatted.
package changelog

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	sectionPattern     = regexp.MustCompile(`(?m)^## `)
	mainHeadingPattern = regexp.MustCompile(`(?m)^# .+$`)
	versionHeading     = regexp.MustCompile(`(?m)^## \d+\.\d+\.\d+`)
)

// Entry describes a new version section to insert.
type Entry struct {
	Version string
	Date    string // YYYY-MM-DD
	Title   string // category title, e.g. "Patch Changes" or "Added"
	Bullets []string
}

// Render produces the Markdown text for the entry, including a trailing
// blank line so it joins cleanly with the following section.
func (e Entry) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s - %s\n\n", e.Version, e.Date)
	fmt.Fprintf(&b, "### %s\n\n", e.Title)
	for _, bullet := range e.Bullets {
		fmt.Fprintf(&b, "- %s\n", bullet)
	}
	b.WriteString("\n")
	return b.String()
}

// InsertEntry returns doc with the entry inserted at the canonical position:
// immediately before the first existing version section, after the document's
// first top-level heading if no version sections exist, or prepended when the
// document has no headings at all.
func InsertEntry(doc string, e Entry) string {
	text := e.Render()

	if loc := sectionPattern.FindStringIndex(doc); loc != nil {
		return doc[:loc[0]] + text + doc[loc[0]:]
	}

	if loc := mainHeadingPattern.FindStringIndex(doc); loc != nil {
		return doc[:loc[1]] + "\n\n" + text + doc[loc[1]:]
	}

	return text + "\n" + doc
}

// ExtractEntry returns the body of the section for version: all text after
// its heading up to the next semantic-version section heading or end of
// document. When the section is missing or empty it falls back to a
// placeholder ("Release <version>").
func ExtractEntry(doc, version string) string {
	fallback := fmt.Sprintf("Release %s", version)

	heading := regexp.MustCompile(`(?m)^## ` + regexp.QuoteMeta(version) + `(\s|$)`)
	loc := heading.FindStringIndex(doc)
	if loc == nil {
		return fallback
	}

	rest := doc[loc[1]:]
	var body string
	if next := versionHeading.FindStringIndex(rest); next != nil {
		body = strings.TrimSpace(rest[:next[0]])
	} else {
		body = strings.TrimSpace(rest)
	}

	if body == "" {
		return fallback
	}
	return body
}

// Update inserts the entry into the changelog file at path. A missing
// changelog is not an error: the update is skipped and skipped=true is
// returned so the caller can warn.
func Update(path string, e Entry) (skipped bool, err error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading changelog: %w", err)
	}

	updated := InsertEntry(string(content), e)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return false, fmt.Errorf("writing changelog: %w", err)
	}
	return false, nil
}

// Extract reads the changelog at path and extracts the section for version.
// A missing file yields the fallback placeholder, matching ExtractEntry.
func Extract(path, version string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("Release %s", version)
	}
	return ExtractEntry(string(content), version)
}
