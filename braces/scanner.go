package braces

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// DefaultIgnoreDirs returns the directory names skipped while walking.
func DefaultIgnoreDirs() []string {
	return []string{
		".git",
		".hg",
		".svn",
		".jj",
		".cache",
		".ccls-cache",
		".clangd",
		"node_modules",
		"vendor",
		"third_party",
		"build",
		"cmake-build-debug",
		"cmake-build-release",
		"out",
		"dist",
		"target",
		"CMakeFiles",
	}
}

// scannerConfig holds scanner configuration.
type scannerConfig struct {
	root       string
	language   Language
	ignoreDirs map[string]struct{}
	maxBytes   int64
}

// scanner discovers files for processing.
type scanner struct {
	cfg scannerConfig
}

// newScanner creates a new scanner with the given configuration.
func newScanner(cfg scannerConfig) *scanner {
	if cfg.ignoreDirs == nil {
		cfg.ignoreDirs = toSet(DefaultIgnoreDirs())
	}
	return &scanner{cfg: cfg}
}

// collect finds all matching files under the root and returns them as
// FileJobs. Display paths keep the root as it was given.
func (s *scanner) collect() ([]FileJob, error) {
	absRoot, err := filepath.Abs(s.cfg.root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	var jobs []FileJob
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if s.shouldIgnoreDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		language := s.languageFor(d.Name())
		if language == nil {
			return nil
		}

		if s.cfg.maxBytes > 0 {
			info, err := d.Info()
			if err != nil {
				// Skip files we can't stat
				return nil
			}
			if info.Size() > s.cfg.maxBytes {
				return nil
			}
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}

		jobs = append(jobs, FileJob{
			AbsPath:     path,
			DisplayPath: filepath.ToSlash(filepath.Join(s.cfg.root, rel)),
			Language:    language,
		})
		return nil
	})

	if err != nil {
		return nil, err
	}

	return jobs, nil
}

// collectSingle returns a single named file as a FileJob. A file named
// explicitly must still map to a registered language.
func (s *scanner) collectSingle(filePath string) (FileJob, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return FileJob{}, fmt.Errorf("resolve path: %w", err)
	}

	language := s.cfg.language
	if language == nil {
		language, err = ForPath(filePath, "")
		if err != nil {
			return FileJob{}, fmt.Errorf("%s: %w", filePath, err)
		}
	}

	return FileJob{
		AbsPath:     absPath,
		DisplayPath: filepath.ToSlash(filepath.Clean(filePath)),
		Language:    language,
	}, nil
}

func (s *scanner) shouldIgnoreDir(name string) bool {
	_, ok := s.cfg.ignoreDirs[name]
	return ok
}

// languageFor returns the grammar for a file name, or nil when the file
// is not C or C++. A forced language applies to every C or C++ file.
func (s *scanner) languageFor(name string) Language {
	ext := filepath.Ext(name)
	if ext == "" {
		return nil
	}
	if s.cfg.language != nil {
		if ByExtension(ext) == nil {
			return nil
		}
		return s.cfg.language
	}
	return ByExtension(ext)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
