package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	assetbridge "github.com/halver/assetbridge"
	"github.com/halver/assetbridge/internal/config"
	"github.com/halver/assetbridge/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadSource         = errors.New("failed to read source file")
	ErrWriteOutput        = errors.New("failed to write output file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrCheckDrift         = errors.New("sources would be rewritten")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// sourceFile represents a single file to rewrite.
type sourceFile struct {
	InputPath  string
	OutputPath string
	Dialect    assetbridge.Dialect
}

// rewriteResult holds the outcome of a single rewrite.
type rewriteResult struct {
	InputPath  string
	OutputPath string
	Changed    bool
	Err        error
	Duration   time.Duration
}

// runRewrite orchestrates the rewrite process.
func runRewrite(ctx context.Context, positionalArgs []string, flags *rewriteFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, _, err := loadMergedConfig(&flags.common, &flags.server, env)
	if err != nil {
		return err
	}
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg.Input.DefaultDir)
	if err != nil {
		return err
	}

	files, err := discoverSources(inputPath, cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("discovering sources: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no rewritable sources found in %s", inputPath)
	}

	rewriter := buildRewriter(cfg)
	workers := resolveWorkers(flags.workers, cfg.Workers)

	start := env.Now()
	results := rewriteBatch(ctx, rewriter, files, workers, flags.check)

	changed, failed := printRewriteResults(results, flags, env, env.Now().Sub(start))
	if failed > 0 {
		return fmt.Errorf("%d rewrite(s) failed", failed)
	}
	if flags.check && changed > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrCheckDrift, changed)
	}
	return nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, defaultDir string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if defaultDir != "" {
		return defaultDir, nil
	}
	return "", ErrNoInput
}

// discoverSources finds all rewritable files under the input path.
// A single-file input must belong to a dialect; directory walks just
// skip files that do not.
func discoverSources(inputPath, outputDir string) ([]sourceFile, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		dialect, ok := assetbridge.DialectForFile(inputPath)
		if !ok {
			return nil, fmt.Errorf("%w: %s", assetbridge.ErrUnknownDialect, inputPath)
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []sourceFile{{InputPath: inputPath, OutputPath: outPath, Dialect: dialect}}, nil
	}

	var files []sourceFile
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != inputPath && skipSourceDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		dialect, ok := assetbridge.DialectForFile(path)
		if !ok {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, sourceFile{InputPath: path, OutputPath: outPath, Dialect: dialect})
		return nil
	})

	return files, err
}

// skipSourceDir reports whether a directory should be excluded from
// discovery. Dependency trees and VCS metadata are never sources.
func skipSourceDir(name string) bool {
	if name == "node_modules" {
		return true
	}
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// resolveOutputPath determines the output path for a source file.
// Empty outputDir means rewrite in place. Directory inputs preserve
// their relative layout under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	if outputDir == "" {
		return inputPath
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, relPath)
		}
	}

	return filepath.Join(outputDir, filepath.Base(inputPath))
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// rewriteBatch processes files concurrently with a bounded worker pool.
func rewriteBatch(ctx context.Context, rewriter *assetbridge.Rewriter, files []sourceFile, workers int, check bool) []rewriteResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency > len(files) {
		concurrency = len(files)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]rewriteResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = rewriteResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = rewriteFile(rewriter, files[idx], check)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// rewriteFile processes a single file and returns the result.
// In-place targets are only written when the content changed, so an
// unchanged tree stays byte-identical and re-runs terminate watchers.
func rewriteFile(rewriter *assetbridge.Rewriter, f sourceFile, check bool) rewriteResult {
	start := time.Now()
	result := rewriteResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadSource, err)
		result.Duration = time.Since(start)
		return result
	}

	res := rewriter.Rewrite(string(content), f.Dialect)
	result.Changed = res.Changed

	if check {
		result.Duration = time.Since(start)
		return result
	}

	inPlace := f.OutputPath == f.InputPath
	if inPlace && !res.Changed {
		result.Duration = time.Since(start)
		return result
	}

	if err := fileutil.EnsureDir(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		result.Duration = time.Since(start)
		return result
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, []byte(res.Code), filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// printRewriteResults outputs rewrite results and returns the changed
// and failed counts.
func printRewriteResults(results []rewriteResult, flags *rewriteFlags, env *Environment, elapsed time.Duration) (changed, failed int) {
	quiet := flags.common.quiet
	verbose := flags.common.verbose

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if r.Changed {
			changed++
		}

		if quiet {
			continue
		}

		switch {
		case flags.check && r.Changed:
			fmt.Fprintf(env.Stdout, "Would rewrite %s\n", r.InputPath)
		case flags.check:
			// Unchanged files are only worth naming in verbose mode.
			if verbose {
				fmt.Fprintf(env.Stdout, "Unchanged %s\n", r.InputPath)
			}
		case r.Changed && verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		case r.Changed && r.InputPath == r.OutputPath:
			fmt.Fprintf(env.Stdout, "Rewrote %s\n", r.InputPath)
		case r.Changed:
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		case verbose:
			fmt.Fprintf(env.Stdout, "Unchanged %s\n", r.InputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d changed, %d unchanged, %d failed (%v)\n",
			changed, len(results)-changed-failed, failed, elapsed.Round(time.Millisecond))
	}

	return changed, failed
}
