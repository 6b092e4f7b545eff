package transform

import (
	"regexp"
	"strings"

	"github.com/jsxcompile/jsxc/ast"
)

// normalizeWhitespace merges the spec's two whitespace passes (newline
// removal and run collapsing) into one traversal: both need identical
// <pre>-ancestor tracking and act on the same Text nodes, so splitting
// them into separate passes would just mean walking the tree twice for no
// behavioral difference.
//
// The two dialects diverge here: native removes only whitespace-only text
// that contains a newline, and collapses any run of two or more whitespace
// characters elsewhere to a single space; JSX removes any whitespace-only
// text (newline or not) but never collapses a run inside surviving text.
// Both exempt a Text node that is a direct child of a <pre> element;
// whitespace inside an element nested two or more levels under a <pre>
// (through some other element) is still normalized. This is a deliberate,
// narrower reading of "inside <pre>" (see DESIGN.md).
func normalizeWhitespace(top *ast.CodeTopLevel, jsx bool) {
	for _, seg := range top.Segments {
		if el, ok := seg.(*ast.Element); ok {
			normalizeWhitespaceElement(el, jsx)
		}
	}
}

var (
	whitespaceOnly = regexp.MustCompile(`^\s*$`)
	whitespaceRun  = regexp.MustCompile(`\s\s+`)
)

func normalizeWhitespaceElement(el *ast.Element, jsx bool) {
	pre := strings.EqualFold(el.Tag, "pre")

	for _, p := range el.Properties {
		switch v := p.(type) {
		case *ast.DynamicProperty:
			normalizeWhitespaceEmbedded(v.Code, jsx)
		case *ast.StyleProperty:
			normalizeWhitespaceEmbedded(v.Code, jsx)
		case *ast.SpreadProperty:
			normalizeWhitespaceEmbedded(v.Code, jsx)
		}
	}

	var kept []ast.Child
	for _, c := range el.Content {
		switch v := c.(type) {
		case *ast.Text:
			if pre {
				kept = append(kept, v)
				continue
			}
			if whitespaceOnly.MatchString(v.Text) && (jsx || strings.Contains(v.Text, "\n")) {
				continue
			}
			if !jsx {
				v.Text = whitespaceRun.ReplaceAllString(v.Text, " ")
			}
			kept = append(kept, v)
		case *ast.Element:
			normalizeWhitespaceElement(v, jsx)
			kept = append(kept, v)
		case *ast.Insert:
			normalizeWhitespaceEmbedded(v.Code, jsx)
			kept = append(kept, v)
		default:
			kept = append(kept, c)
		}
	}
	el.Content = kept
}

func normalizeWhitespaceEmbedded(code *ast.EmbeddedCode, jsx bool) {
	if code == nil {
		return
	}
	for _, seg := range code.Segments {
		if el, ok := seg.(*ast.Element); ok {
			normalizeWhitespaceElement(el, jsx)
		}
	}
}
