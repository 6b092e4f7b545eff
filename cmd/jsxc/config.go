package main

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jsxcompile/jsxc"
)

// fileConfig mirrors jsxc.Options for the on-disk project config file,
// loaded before CLI flags are applied so flags always win.
type fileConfig struct {
	Sourcemap  string `toml:"sourcemap"`
	Sourcefile string `toml:"sourcefile"`
	Targetfile string `toml:"targetfile"`
	Jsx        *bool  `toml:"jsx"`
}

// loadConfig reads jsxc.toml from path if it exists, applying its values
// on top of jsxc.DefaultOptions(). A missing file is not an error; the
// caller gets plain defaults back.
func loadConfig(path string) (*jsxc.Options, error) {
	opts := jsxc.DefaultOptions()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return opts, nil
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, err
	}

	if fc.Sourcefile != "" {
		opts.Sourcefile = fc.Sourcefile
	}
	if fc.Targetfile != "" {
		opts.Targetfile = fc.Targetfile
	}
	if fc.Jsx != nil {
		opts.Jsx = *fc.Jsx
	}
	if mode, ok := parseSourcemapMode(fc.Sourcemap); ok {
		opts.Sourcemap = mode
	}
	return opts, nil
}

func parseSourcemapMode(s string) (jsxc.SourcemapMode, bool) {
	switch s {
	case "extract":
		return jsxc.SourcemapExtract, true
	case "append":
		return jsxc.SourcemapAppend, true
	case "none", "":
		return jsxc.SourcemapNone, s != ""
	default:
		return jsxc.SourcemapNone, false
	}
}
