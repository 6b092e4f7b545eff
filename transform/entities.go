package transform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jsxcompile/jsxc/ast"
)

// htmlEntities is the fixed set of named character references the native
// dialect translates in text content, beyond the numeric and hex forms
// handled by decimalEntity/hexEntity. The JSX dialect leaves entities
// untouched (authors write literal unicode or \u escapes in expressions
// instead), matching how JSX source is conventionally handled.
var htmlEntities = map[string]string{
	"&amp;":  "&",
	"&lt;":   "<",
	"&gt;":   ">",
	"&quot;": "\"",
	"&apos;": "'",
	"&nbsp;": " ",
}

var (
	hexEntity     = regexp.MustCompile(`&#x([0-9a-fA-F]+);`)
	decimalEntity = regexp.MustCompile(`&#(\d+);`)
)

// translateEntities rewrites named, decimal and hex HTML entities in Text
// nodes to their literal characters. Only Text child content is in scope:
// StaticProperty values are author-controlled attribute strings, not
// rendered markup text, so they pass through unchanged.
func translateEntities(top *ast.CodeTopLevel) {
	walkSegments(top.Segments, func(el *ast.Element) {
		for _, c := range el.Content {
			if t, ok := c.(*ast.Text); ok {
				t.Text = replaceEntities(t.Text)
			}
		}
	})
}

func replaceEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	s = hexEntity.ReplaceAllStringFunc(s, func(m string) string {
		sub := hexEntity.FindStringSubmatch(m)
		n, err := strconv.ParseInt(sub[1], 16, 32)
		if err != nil {
			return m
		}
		return string(rune(n))
	})
	s = decimalEntity.ReplaceAllStringFunc(s, func(m string) string {
		sub := decimalEntity.FindStringSubmatch(m)
		n, err := strconv.Atoi(sub[1])
		if err != nil {
			return m
		}
		return string(rune(n))
	})
	for ent, lit := range htmlEntities {
		s = strings.ReplaceAll(s, ent, lit)
	}
	return s
}
