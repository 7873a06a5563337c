package fragment

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/ariel-frischer/releasekit/internal/errors"
)

// Validate checks that a fragment documents at least one change: the file
// must be non-empty, contain a recognized category heading, and have some
// content beyond headings and HTML comments.
func (f Fragment) Validate() error {
	content, err := f.Read()
	if err != nil {
		return err
	}
	return ValidateContent(f.Name, content)
}

// ValidateContent validates raw fragment Markdown. The checks walk the
// parsed document rather than pattern-match the source so that comments and
// headings are recognized wherever the Markdown grammar allows them.
func ValidateContent(name, content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.NewValidationError(
			fmt.Sprintf("fragment %s is empty", name),
			"add a category heading and a description of your changes")
	}

	src := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	hasCategory := false
	hasContent := false

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			if n.Level == 3 && matchesCategory(nodeText(n, src)) {
				hasCategory = true
			}
		case *ast.HTMLBlock:
			if strings.HasPrefix(strings.TrimSpace(rawLines(n, src)), "<!--") {
				continue
			}
			if strings.TrimSpace(rawLines(n, src)) != "" {
				hasContent = true
			}
		default:
			if strings.TrimSpace(nodeText(node, src)) != "" {
				hasContent = true
			}
		}
	}

	if !hasCategory {
		return errors.NewValidationError(
			fmt.Sprintf("fragment %s missing category heading", name),
			"expected one of: ### Added, ### Changed, ### Deprecated, ### Fixed, ### Removed, ### Security")
	}

	if !hasContent {
		return errors.NewValidationError(
			fmt.Sprintf("fragment %s has no content", name),
			"add a description of your changes under the appropriate category")
	}

	return nil
}

// matchesCategory reports whether heading text begins with a recognized
// category name, case-insensitively.
func matchesCategory(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, category := range Categories {
		if strings.HasPrefix(text, strings.ToLower(category)) {
			return true
		}
	}
	return false
}

// nodeText collects the plain text of a node's subtree. Inline HTML (such
// as comments) contributes nothing.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// rawLines returns the raw source lines backing a block node.
func rawLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}
