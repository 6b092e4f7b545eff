package jsxc

// SourcemapMode selects how Preprocess reports source-map information, if
// at all.
type SourcemapMode int

const (
	// SourcemapNone returns only the generated code; no source map is
	// returned or appended.
	SourcemapNone SourcemapMode = iota
	// SourcemapExtract returns the map as a separate JSON document
	// alongside the generated code.
	SourcemapExtract
	// SourcemapAppend inlines the map as a trailing URL-encoded data-URL
	// comment in the generated code.
	SourcemapAppend
)

// Options configures a single Preprocess call. The zero value is not valid
// on its own; use DefaultOptions to get the documented defaults.
type Options struct {
	Sourcemap  SourcemapMode
	Sourcefile string
	Targetfile string
	// Jsx selects the embedded-markup dialect: true for the brace-delimited
	// JSX-like dialect (the default), false for the '@'-prefixed native
	// dialect.
	Jsx bool
}

// DefaultOptions returns the documented defaults: no source map,
// sourcefile "in.js", targetfile "out.js", jsx enabled.
func DefaultOptions() *Options {
	return &Options{
		Sourcemap:  SourcemapNone,
		Sourcefile: "in.js",
		Targetfile: "out.js",
		Jsx:        true,
	}
}

func (o *Options) withDefaults() *Options {
	if o == nil {
		return DefaultOptions()
	}
	out := *o
	if out.Sourcefile == "" {
		out.Sourcefile = "in.js"
	}
	if out.Targetfile == "" {
		out.Targetfile = "out.js"
	}
	return &out
}
