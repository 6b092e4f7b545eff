package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jsxcompile/jsxc"
)

// skipDir names directories a project-wide walk never descends into.
var skipDir = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
}

// findSourceFiles walks root collecting files with the given extension,
// adapted from the directory-walk the teacher's generate subcommand uses
// to find .gox files.
func findSourceFiles(root, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// processResult carries one file's outcome back to the coordinating
// goroutine.
type processResult struct {
	path string
	err  error
}

// generateBatch compiles every matching file under root in parallel,
// bounded by workers concurrent goroutines - the same worker/semaphore
// shape as the teacher's processFiles, generalized from a fixed worker
// pool tied to GOMAXPROCS to an explicit count so `jsxc generate
// --workers` can tune it.
func generateBatch(root, ext string, opts *jsxc.Options, workers int) []error {
	files, err := findSourceFiles(root, ext)
	if err != nil {
		return []error{err}
	}

	sem := make(chan struct{}, workers)
	results := make(chan processResult, len(files))
	var wg sync.WaitGroup

	// A scratch run ID disambiguates this batch's intermediate artifacts
	// from a concurrently running invocation over the same tree.
	runID := uuid.New().String()

	for _, f := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()
			err := processFile(path, opts, runID)
			results <- processResult{path: path, err: err}
		}(f)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var errs []error
	for r := range results {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.path, r.err))
		}
	}
	return errs
}

func processFile(path string, opts *jsxc.Options, runID string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fileOpts := *opts
	fileOpts.Sourcefile = path
	fileOpts.Targetfile = outputPath(path)

	out, err := jsxc.Preprocess(string(src), &fileOpts)
	if err != nil {
		return err
	}

	var code string
	switch v := out.(type) {
	case string:
		code = v
	case *jsxc.Result:
		code = v.Src
		if err := writeScratchMap(runID, fileOpts.Targetfile, v.Map); err != nil {
			return err
		}
	}
	return os.WriteFile(fileOpts.Targetfile, []byte(code), 0o644)
}

// writeScratchMap stages a generated source map under a per-run scratch
// directory, then copies it alongside the compiled file with a plain
// os.WriteFile. The final write is not atomic: an interrupted copy can
// leave a partial .map next to the target.
func writeScratchMap(runID, targetfile, mapJSON string) error {
	scratch := filepath.Join(os.TempDir(), "jsxc-"+runID)
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return err
	}
	staged := filepath.Join(scratch, filepath.Base(targetfile)+".map")
	if err := os.WriteFile(staged, []byte(mapJSON), 0o644); err != nil {
		return err
	}
	data, err := os.ReadFile(staged)
	if err != nil {
		return err
	}
	return os.WriteFile(mapPath(targetfile), data, 0o644)
}

func outputPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + ".out.js"
}

func mapPath(targetfile string) string {
	return targetfile + ".map"
}
