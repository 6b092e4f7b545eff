// Package transform implements the AST-to-AST normalization passes of
// §4.3: whitespace handling, native-dialect entity translation, JSX/Html
// event-property-name lowercasing, text-content promotion and duplicate
// property removal.
//
// Each pass is a complete, self-contained tree visitor that rewrites the
// nodes it cares about in place and leaves every other node as it is. The
// pipeline runs the passes
// sequentially over the whole tree rather than fusing them into one
// single-dispatch visitor; no two passes in this five-stage pipeline need
// to see the same node within one traversal, so the simpler sequential
// composition is observably equivalent to the overlay-and-compose shape
// described for the reference implementation, without its dispatch
// ambiguity when two passes want to override the same node kind.
package transform

import "github.com/jsxcompile/jsxc/ast"

// Normalize runs the full pipeline over top in place and returns it. jsx
// selects dialect-specific passes: entity translation only runs for the
// native dialect, event-name lowercasing only for JSX/Html.
func Normalize(top *ast.CodeTopLevel, jsx bool) *ast.CodeTopLevel {
	normalizeWhitespace(top, jsx)
	if !jsx {
		translateEntities(top)
	}
	if jsx {
		lowerEventNames(top)
	}
	promoteTextContent(top)
	dedupeProperties(top)
	return top
}

// walkSegments applies fn to every Element reachable from segs, including
// elements nested inside EmbeddedCode carried by properties and children.
func walkSegments(segs []ast.Segment, fn func(*ast.Element)) {
	for _, s := range segs {
		if el, ok := s.(*ast.Element); ok {
			walkElement(el, fn)
		}
	}
}

func walkElement(el *ast.Element, fn func(*ast.Element)) {
	for _, p := range el.Properties {
		walkPropertyCode(p, fn)
	}
	for _, c := range el.Content {
		switch v := c.(type) {
		case *ast.Element:
			walkElement(v, fn)
		case *ast.Insert:
			if v.Code != nil {
				walkSegments(v.Code.Segments, fn)
			}
		}
	}
	fn(el)
}

func walkPropertyCode(p ast.Property, fn func(*ast.Element)) {
	switch v := p.(type) {
	case *ast.DynamicProperty:
		if v.Code != nil {
			walkSegments(v.Code.Segments, fn)
		}
	case *ast.StyleProperty:
		if v.Code != nil {
			walkSegments(v.Code.Segments, fn)
		}
	case *ast.SpreadProperty:
		if v.Code != nil {
			walkSegments(v.Code.Segments, fn)
		}
	}
}
