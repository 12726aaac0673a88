package braces

// RewriteOptions configures Rewrite and RewriteFile.
type RewriteOptions struct {
	// Language forces a grammar ("c" or "cpp").
	// Rewrite defaults to "cpp"; RewriteFile picks by file extension.
	Language string

	// Style selects brace placement.
	// Defaults to StyleAttach.
	Style Style

	// Defines lists extra macro names, in the form accepted by -D
	// (NAME, NAME=VALUE or NAME(args)=VALUE).
	Defines []string
}

// RunOptions configures the Run function.
type RunOptions struct {
	// Paths lists files and directories to process.
	// If empty, the current directory is used.
	Paths []string

	// Language forces a grammar for every file.
	// If empty, each file's extension decides.
	Language string

	// Style selects brace placement.
	// Defaults to StyleAttach.
	Style Style

	// Defines lists extra macro names, as for RewriteOptions.
	Defines []string

	// IgnoreDirs replaces the default set of directory names skipped
	// while walking.
	IgnoreDirs []string

	// Jobs is the number of parallel workers.
	// If 0, defaults to number of CPUs.
	Jobs int

	// MaxBytes skips files larger than this size while walking
	// directories. Files named explicitly are always processed.
	// If 0, defaults to 2 MiB; negative disables the limit.
	MaxBytes int64
}

const defaultMaxBytes = 2 * 1024 * 1024

// rewriteDefaults fills the zero-value defaults and rejects an unknown style.
func (o RewriteOptions) rewriteDefaults() (RewriteOptions, error) {
	style, err := ParseStyle(string(o.Style))
	if err != nil {
		return o, err
	}
	o.Style = style
	return o, nil
}
