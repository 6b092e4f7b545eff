// Package jsxc compiles a scripting language with inline markup
// expressions into plain base-language source plus calls against a small
// runtime API. Preprocess is the single entry point; everything else in
// this module (lexer, parser, transform, generator, sourcemap) is an
// implementation detail reachable through it.
package jsxc

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jsxcompile/jsxc/generator"
	"github.com/jsxcompile/jsxc/parser"
	"github.com/jsxcompile/jsxc/sourcemap"
	"github.com/jsxcompile/jsxc/transform"
)

// Result is returned by Preprocess when a source map was requested via
// SourcemapExtract. Src is the generated code with no trace of location
// marks; Map is the V3 source-map JSON document.
type Result struct {
	Src string
	Map string
}

// Preprocess compiles source according to opts (nil selects
// DefaultOptions()). It runs the full pipeline - parse, normalize,
// generate, and, unless opts.Sourcemap is SourcemapNone, extract a source
// map - re-entrantly: Preprocess holds no state between calls and may be
// called concurrently from multiple goroutines on independent inputs.
//
// When opts.Sourcemap is SourcemapNone or SourcemapAppend, the return
// value is a plain string (the generated code, with an appended data-URL
// comment in the Append case). When it is SourcemapExtract, the return
// value is a *Result.
func Preprocess(source string, opts *Options) (interface{}, error) {
	o := opts.withDefaults()

	top, err := parser.Parse(source, o.Sourcefile, o.Jsx)
	if err != nil {
		return nil, err
	}

	transform.Normalize(top, o.Jsx)
	generated := generator.Generate(top)

	switch o.Sourcemap {
	case SourcemapNone:
		clean, _, err := sourcemap.Extract(generated, o.Sourcefile, o.Targetfile, source)
		if err != nil {
			return nil, err
		}
		return clean, nil
	case SourcemapExtract:
		clean, mapJSON, err := sourcemap.Extract(generated, o.Sourcefile, o.Targetfile, source)
		if err != nil {
			return nil, err
		}
		return &Result{Src: clean, Map: mapJSON}, nil
	case SourcemapAppend:
		clean, mapJSON, err := sourcemap.Extract(generated, o.Sourcefile, o.Targetfile, source)
		if err != nil {
			return nil, err
		}
		return fmt.Sprintf("%s\n//# sourceMappingURL=data:application/json,%s\n", clean, encodeURIComponent(mapJSON)), nil
	default:
		return nil, fmt.Errorf("jsxc: unknown sourcemap mode %v", o.Sourcemap)
	}
}

// encodeURIComponent approximates JavaScript's encodeURIComponent with
// url.QueryEscape, which represents a space as '+' rather than '%20'; that
// substitution is patched back afterward. QueryEscape also percent-encodes
// ! ' ( ) *, which JavaScript leaves as they are; the decoded text is the
// same either way.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
