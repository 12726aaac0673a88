package braces

import (
	"context"
	"os"
	"runtime"
	"sort"

	"github.com/arjunmahishi/addbraces/internal/logging"
)

// Run rewrites every C and C++ file named by opts.Paths, walking
// directories. Files are never written; callers decide what to do with
// each FileResult. A failure in one file is recorded on its result and
// does not stop the others.
func Run(ctx context.Context, opts RunOptions) ([]FileResult, error) {
	if len(opts.Paths) == 0 {
		opts.Paths = []string{"."}
	}
	if opts.Jobs == 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.MaxBytes == 0 {
		opts.MaxBytes = defaultMaxBytes
	}
	style, err := ParseStyle(string(opts.Style))
	if err != nil {
		return nil, err
	}

	var forced Language
	if opts.Language != "" {
		forced = Get(opts.Language)
		if forced == nil {
			return nil, unknownLanguage(opts.Language)
		}
	}

	files, err := collectFiles(opts, forced)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoInput
	}

	logger := logging.FromContext(ctx)
	logger.Debug("rewriting",
		logging.FieldFiles, len(files),
		logging.FieldJobs, opts.Jobs,
		logging.FieldStyle, string(style),
	)

	rewriteOpts := RewriteOptions{Style: style, Defines: opts.Defines}
	results := runWorkers(ctx, files, opts.Jobs, func(w *worker, job FileJob) FileResult {
		return processFile(ctx, w, job, rewriteOpts)
	})

	sort.Slice(results, func(i, j int) bool {
		return results[i].File < results[j].File
	})

	var changed, failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
		if r.Changed {
			changed++
		}
	}
	logger.Info("done",
		logging.FieldFiles, len(results),
		logging.FieldFilesChanged, changed,
		logging.FieldFilesFailed, failed,
	)

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func processFile(ctx context.Context, w *worker, job FileJob, opts RewriteOptions) FileResult {
	logger := logging.FromContext(ctx)
	result := FileResult{
		File:     job.DisplayPath,
		AbsPath:  job.AbsPath,
		Language: job.Language.Name(),
	}

	fail := func(err error) FileResult {
		result.Err = err
		result.Error = err.Error()
		logger.Warn("skipping file", logging.FieldPath, job.DisplayPath, logging.FieldError, err)
		return result
	}

	source, err := os.ReadFile(job.AbsPath)
	if err != nil {
		return fail(err)
	}
	result.Source = source

	res, err := w.parserFor(job.Language).rewrite(ctx, source, opts)
	if err != nil {
		return fail(err)
	}

	result.Output = res.Output
	result.Changed = res.Changed
	result.Wrapped = res.Wrapped
	result.Skipped = res.Skipped

	logger.Debug("rewrote",
		logging.FieldPath, job.DisplayPath,
		logging.FieldLanguage, result.Language,
		logging.FieldWrapped, res.Wrapped,
		logging.FieldSkipped, res.Skipped,
	)
	return result
}

// collectFiles expands opts.Paths into jobs, dropping duplicates.
func collectFiles(opts RunOptions, forced Language) ([]FileJob, error) {
	var ignore map[string]struct{}
	if opts.IgnoreDirs != nil {
		ignore = toSet(opts.IgnoreDirs)
	}

	seen := make(map[string]struct{})
	var files []FileJob
	add := func(job FileJob) {
		if _, dup := seen[job.AbsPath]; dup {
			return
		}
		seen[job.AbsPath] = struct{}{}
		files = append(files, job)
	}

	for _, path := range opts.Paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		sc := newScanner(scannerConfig{
			root:       path,
			language:   forced,
			ignoreDirs: ignore,
			maxBytes:   opts.MaxBytes,
		})

		if !info.IsDir() {
			job, err := sc.collectSingle(path)
			if err != nil {
				return nil, err
			}
			add(job)
			continue
		}

		jobs, err := sc.collect()
		if err != nil {
			return nil, err
		}
		for _, job := range jobs {
			add(job)
		}
	}

	return files, nil
}
