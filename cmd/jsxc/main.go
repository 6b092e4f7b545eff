// Command jsxc is a thin CLI driver over the jsxc library: it parses
// flags and an optional project config, and calls jsxc.Preprocess. All
// pipeline logic lives in the library; this package owns no compiler
// state of its own.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsxcompile/jsxc"
)

// version is set at build time via -ldflags; it defaults to "dev" for
// local builds run straight out of the module.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "jsxc",
		Short: "Compile JSX-flavored scripting source into plain JS plus runtime calls",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "jsxc.toml", "project config file")

	root.AddCommand(newBuildCmd(&configPath))
	root.AddCommand(newGenerateCmd(&configPath))
	root.AddCommand(newVersionCmd())
	return root
}

func newBuildCmd(configPath *string) *cobra.Command {
	var sourcemapFlag string
	var jsxFlag bool
	var jsxSet bool

	cmd := &cobra.Command{
		Use:   "build <file> [out]",
		Short: "Compile a single file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("sourcemap") {
				mode, ok := parseSourcemapMode(sourcemapFlag)
				if !ok {
					return fmt.Errorf("unknown --sourcemap mode %q", sourcemapFlag)
				}
				opts.Sourcemap = mode
			}
			if jsxSet {
				opts.Jsx = jsxFlag
			}

			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			opts.Sourcefile = args[0]
			if len(args) == 2 {
				opts.Targetfile = args[1]
			}

			out, err := jsxc.Preprocess(string(src), opts)
			if err != nil {
				return err
			}

			code, mapJSON := splitResult(out)
			if len(args) == 2 {
				if err := os.WriteFile(args[1], []byte(code), 0o644); err != nil {
					return err
				}
				if mapJSON != "" {
					return os.WriteFile(args[1]+".map", []byte(mapJSON), 0o644)
				}
				return nil
			}
			fmt.Fprint(os.Stdout, code)
			return nil
		},
	}
	cmd.Flags().StringVar(&sourcemapFlag, "sourcemap", "none", "none|extract|append")
	cmd.Flags().BoolVar(&jsxFlag, "jsx", true, "enable the JSX-like dialect (false selects the native @-dialect)")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		jsxSet = cmd.Flags().Changed("jsx")
	}
	return cmd
}

func newGenerateCmd(configPath *string) *cobra.Command {
	var ext string
	var workers int

	cmd := &cobra.Command{
		Use:   "generate <dir>",
		Short: "Compile every matching file under a directory tree in parallel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			errs := generateBatch(args[0], ext, opts, workers)
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, e)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d file(s) failed", len(errs))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&ext, "ext", ".jsx.js", "source file extension to match")
	cmd.Flags().IntVar(&workers, "workers", 4, "parallel worker count")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the jsxc version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(os.Stdout, version)
			return nil
		},
	}
}

func splitResult(out interface{}) (code, mapJSON string) {
	switch v := out.(type) {
	case string:
		return v, ""
	case *jsxc.Result:
		return v.Src, v.Map
	default:
		return "", ""
	}
}
