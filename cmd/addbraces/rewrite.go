package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/addbraces/braces"
	"github.com/arjunmahishi/addbraces/internal/config"
	"github.com/arjunmahishi/addbraces/internal/fsutil"
	"github.com/arjunmahishi/addbraces/internal/logging"
)

// errChangesNeeded makes --check exit 1 without printing an error object.
var errChangesNeeded = errors.New("files need braces")

func rewriteCommand(compilerArgs []string) *cli.Command {
	return &cli.Command{
		Name:      "rewrite",
		Usage:     "brace single-statement bodies (default command)",
		ArgsUsage: "[files or dirs...] [-- compiler flags]",
		Flags:     rewriteFlags(),
		Action:    rewriteAction(compilerArgs),
	}
}

func rewriteFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "write",
			Aliases: []string{"w"},
			Usage:   "write changes back to the files",
		},
		&cli.BoolFlag{
			Name:    "diff",
			Aliases: []string{"d"},
			Usage:   "print unified diffs instead of rewritten files",
		},
		&cli.BoolFlag{
			Name:  "check",
			Usage: "list files that would change and exit 1 if there are any",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print a JSON summary per file",
		},
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "minimize JSON output",
		},
		&cli.BoolFlag{
			Name:  "legacy-banner",
			Usage: `prefix output with "// Modified file:" or print "// No changes made"`,
		},
		&cli.StringFlag{
			Name:  "style",
			Value: string(braces.StyleAttach),
			Usage: "brace placement: attach or wrap",
		},
		&cli.StringSliceFlag{
			Name:    "define",
			Aliases: []string{"D"},
			Usage:   "treat NAME as a macro (NAME, NAME=VALUE or NAME(args)=VALUE)",
		},
		&cli.StringFlag{
			Name:  "lang",
			Usage: "force a grammar for every file: c or cpp",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   runtime.NumCPU(),
			Usage:   "number of parallel workers",
		},
		&cli.Int64Flag{
			Name:  "max-bytes",
			Value: 2 * 1024 * 1024,
			Usage: "skip files larger than this while walking directories (negative disables)",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "config file (default: .addbraces.yml found upward from the working directory)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: "warn",
			Usage: "debug, info, warn or error",
		},
	}
}

// settings is the merged view of flags, config file and compiler flags.
type settings struct {
	run          braces.RunOptions
	logLevel     string
	write        bool
	diff         bool
	check        bool
	json         bool
	compact      bool
	legacyBanner bool
}

func rewriteAction(compilerArgs []string) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := config.Resolve(ctx, cmd.String("config"), "")
		if err != nil {
			return err
		}

		s, err := resolveSettings(cmd, cfg, compilerArgs)
		if err != nil {
			return err
		}

		logging.SetLevel(s.logLevel)
		logger := logging.Default()
		ctx = logging.WithLogger(ctx, logger)
		if cfg.Path != "" {
			logger.Debug("loaded config", logging.FieldConfig, cfg.Path)
		}

		if len(s.run.Paths) == 1 && s.run.Paths[0] == "-" {
			return rewriteStdin(ctx, os.Stdin, os.Stdout, s)
		}

		results, err := braces.Run(ctx, s.run)
		if err != nil {
			return err
		}
		return report(ctx, os.Stdout, results, s)
	}
}

// resolveSettings merges the config file under the flags. A flag wins
// only when it was given explicitly.
func resolveSettings(cmd *cli.Command, cfg *config.Config, compilerArgs []string) (settings, error) {
	s := settings{
		write:        cmd.Bool("write"),
		diff:         cmd.Bool("diff"),
		check:        cmd.Bool("check"),
		json:         cmd.Bool("json"),
		compact:      cmd.Bool("compact"),
		legacyBanner: cmd.Bool("legacy-banner"),
	}
	if s.json && s.diff {
		return s, errors.New("use --json or --diff, not both")
	}

	style := cmd.String("style")
	if !cmd.IsSet("style") && cfg.Style != "" {
		style = cfg.Style
	}
	parsed, err := braces.ParseStyle(style)
	if err != nil {
		return s, err
	}

	jobs := cmd.Int("jobs")
	if !cmd.IsSet("jobs") && cfg.Jobs > 0 {
		jobs = cfg.Jobs
	}
	maxBytes := cmd.Int64("max-bytes")
	if !cmd.IsSet("max-bytes") && cfg.MaxBytes != 0 {
		maxBytes = cfg.MaxBytes
	}
	s.logLevel = cmd.String("log-level")
	if !cmd.IsSet("log-level") && cfg.LogLevel != "" {
		s.logLevel = cfg.LogLevel
	}

	var defines []string
	defines = append(defines, cfg.Defines...)
	defines = append(defines, cmd.StringSlice("define")...)
	defines = append(defines, compilerDefines(compilerArgs)...)

	var ignore []string
	if len(cfg.IgnoreDirs) > 0 {
		ignore = append(braces.DefaultIgnoreDirs(), cfg.IgnoreDirs...)
	}

	s.run = braces.RunOptions{
		Paths:      cmd.Args().Slice(),
		Language:   cmd.String("lang"),
		Style:      parsed,
		Defines:    defines,
		IgnoreDirs: ignore,
		Jobs:       jobs,
		MaxBytes:   maxBytes,
	}
	return s, nil
}

// rewriteStdin handles "-" as the only path: one unit read from r.
func rewriteStdin(ctx context.Context, r io.Reader, w io.Writer, s settings) error {
	if s.write {
		return errors.New("--write needs file arguments")
	}
	source, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	res, err := braces.Rewrite(ctx, source, braces.RewriteOptions{
		Language: s.run.Language,
		Style:    s.run.Style,
		Defines:  s.run.Defines,
	})
	if err != nil {
		return err
	}

	language := s.run.Language
	if language == "" {
		language = "cpp"
	}
	result := braces.FileResult{
		File:     "<stdin>",
		Language: language,
		Changed:  res.Changed,
		Wrapped:  res.Wrapped,
		Skipped:  res.Skipped,
		Source:   source,
		Output:   res.Output,
	}
	return report(ctx, w, []braces.FileResult{result}, s)
}

// report renders results in the selected mode, writes files for --write
// and turns failures into the exit status.
func report(ctx context.Context, w io.Writer, results []braces.FileResult, s settings) error {
	logger := logging.FromContext(ctx)

	var failed, changed int
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			failed++
			continue
		}
		if !r.Changed {
			continue
		}
		changed++
		if s.write && !s.check {
			if err := fsutil.WriteAtomic(ctx, r.AbsPath, r.Output, 0); err != nil {
				r.Err = err
				r.Error = err.Error()
				failed++
				logger.Warn("write failed", logging.FieldPath, r.File, logging.FieldError, err)
				continue
			}
			logger.Info("wrote", logging.FieldPath, r.File, logging.FieldWrapped, r.Wrapped)
		}
	}

	var err error
	switch {
	case s.json:
		err = writeJSON(w, newSummary(results), s.compact)
	case s.diff:
		err = writeDiffs(w, results)
	case s.check:
		err = writeChecked(w, results)
	case s.write:
	default:
		err = writeOutputs(w, results, s.legacyBanner)
	}
	if err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	if s.check && changed > 0 {
		return errChangesNeeded
	}
	return nil
}
