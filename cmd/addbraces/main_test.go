package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/addbraces/braces"
	"github.com/arjunmahishi/addbraces/internal/config"
	"github.com/arjunmahishi/addbraces/internal/logging"
)

func TestSplitCompilerArgs(t *testing.T) {
	args, compiler := splitCompilerArgs([]string{"addbraces", "-w", "a.c", "--", "-DX", "-I", "inc"})
	require.Equal(t, []string{"addbraces", "-w", "a.c"}, args)
	require.Equal(t, []string{"-DX", "-I", "inc"}, compiler)

	args, compiler = splitCompilerArgs([]string{"addbraces", "a.c"})
	require.Equal(t, []string{"addbraces", "a.c"}, args)
	require.Nil(t, compiler)
}

func TestCompilerDefines(t *testing.T) {
	got := compilerDefines([]string{"-DTRACE", "-I", "include", "-D", "CHECK(x)=x", "-std=c11", "-DLEVEL=2", "-D"})
	require.Equal(t, []string{"TRACE", "CHECK(x)=x", "LEVEL=2"}, got)
}

// runSettings parses args with the rewrite flags and returns the merged
// settings.
func runSettings(t *testing.T, cfg *config.Config, args ...string) (settings, error) {
	t.Helper()
	var s settings
	var resolveErr error
	cmd := &cli.Command{
		Name:  "addbraces",
		Flags: rewriteFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			s, resolveErr = resolveSettings(cmd, cfg, []string{"-DFROM_CC"})
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"addbraces"}, args...)))
	return s, resolveErr
}

func TestResolveSettings(t *testing.T) {
	cfg := &config.Config{
		Style:      "wrap",
		Defines:    []string{"FROM_CFG"},
		Jobs:       3,
		MaxBytes:   100,
		IgnoreDirs: []string{"gen"},
		LogLevel:   "debug",
	}

	s, err := runSettings(t, cfg, "--define", "FROM_FLAG", "src")
	require.NoError(t, err)
	require.Equal(t, braces.StyleWrap, s.run.Style)
	require.Equal(t, []string{"FROM_CFG", "FROM_FLAG", "FROM_CC"}, s.run.Defines)
	require.Equal(t, 3, s.run.Jobs)
	require.Equal(t, int64(100), s.run.MaxBytes)
	require.Contains(t, s.run.IgnoreDirs, "gen")
	require.Contains(t, s.run.IgnoreDirs, ".git")
	require.Equal(t, "debug", s.logLevel)
	require.Equal(t, []string{"src"}, s.run.Paths)

	s, err = runSettings(t, cfg, "--style", "attach", "-j", "1", "--max-bytes=-1", "--log-level", "error")
	require.NoError(t, err)
	require.Equal(t, braces.StyleAttach, s.run.Style)
	require.Equal(t, 1, s.run.Jobs)
	require.Equal(t, int64(-1), s.run.MaxBytes)
	require.Equal(t, "error", s.logLevel)
	require.Empty(t, s.run.Paths)

	s, err = runSettings(t, &config.Config{})
	require.NoError(t, err)
	require.Equal(t, braces.StyleAttach, s.run.Style)
	require.Nil(t, s.run.IgnoreDirs)
	require.Equal(t, "warn", s.logLevel)

	_, err = runSettings(t, &config.Config{}, "--style", "gnu")
	require.Error(t, err)

	_, err = runSettings(t, &config.Config{}, "--json", "--diff")
	require.Error(t, err)
}

func results() []braces.FileResult {
	return []braces.FileResult{
		{
			File:    "src/a.c",
			Changed: true,
			Wrapped: 1,
			Source:  []byte("int f() {\n    if (a)\n        b();\n}\n"),
			Output:  []byte("int f() {\n    if (a) {\n        b();\n    }\n}\n"),
		},
		{
			File:   "src/b.c",
			Source: []byte("int g;\n"),
			Output: []byte("int g;\n"),
		},
		{
			File:  "src/c.c",
			Err:   errors.New("boom"),
			Error: "boom",
		},
	}
}

func TestWriteOutputs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOutputs(&buf, results(), false))
	require.Equal(t,
		"==> src/a.c <==\nint f() {\n    if (a) {\n        b();\n    }\n}\n"+
			"\n==> src/b.c <==\nint g;\n",
		buf.String())

	buf.Reset()
	require.NoError(t, writeOutputs(&buf, results()[1:2], true))
	require.Equal(t, "// No changes made\n", buf.String())

	buf.Reset()
	require.NoError(t, writeOutputs(&buf, results()[:1], true))
	require.True(t, strings.HasPrefix(buf.String(), "// Modified file:\nint f() {\n"))
}

func TestWriteDiffs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeDiffs(&buf, results()))
	require.Equal(t, `--- a/src/a.c
+++ b/src/a.c
@@ -1,4 +1,5 @@
 int f() {
-    if (a)
+    if (a) {
         b();
+    }
 }
`, buf.String())
}

func TestNewSummary(t *testing.T) {
	s := newSummary(results())
	require.Equal(t, 1, s.Changed)
	require.Equal(t, 1, s.Failed)
	require.Equal(t, 1, s.Wrapped)
	require.Len(t, s.Files, 3)

	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, newSummary(nil), true))
	require.Equal(t, `{"files":[],"changed":0,"failed":0,"wrapped":0,"skipped":0}`+"\n", buf.String())
}

func TestReportWriteAndCheck(t *testing.T) {
	ctx := logging.WithLogger(context.Background(), logging.Discard())
	dir := t.TempDir()
	path := filepath.Join(dir, "a.c")
	source := "void f(int x) {\n    while (x)\n        x--;\n}\n"
	require.NoError(t, os.WriteFile(path, []byte(source), 0644))

	run := braces.RunOptions{Paths: []string{dir}, Jobs: 1}

	res, err := braces.Run(ctx, run)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = report(ctx, &buf, res, settings{run: run, check: true})
	require.ErrorIs(t, err, errChangesNeeded)
	require.Contains(t, buf.String(), "a.c: 1 clause(s) need braces")

	// --check never writes.
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, source, string(onDisk))

	buf.Reset()
	require.NoError(t, report(ctx, &buf, res, settings{run: run, write: true}))
	require.Empty(t, buf.String())

	onDisk, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "void f(int x) {\n    while (x) {\n        x--;\n    }\n}\n", string(onDisk))

	// A second pass finds nothing left to do.
	res, err = braces.Run(ctx, run)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, report(ctx, &buf, res, settings{run: run, check: true}))
}

func TestReportFailures(t *testing.T) {
	ctx := logging.WithLogger(context.Background(), logging.Discard())
	var buf bytes.Buffer
	err := report(ctx, &buf, results(), settings{})
	require.EqualError(t, err, "1 of 3 files failed")
}

func TestRewriteStdin(t *testing.T) {
	ctx := logging.WithLogger(context.Background(), logging.Discard())
	in := strings.NewReader("void f(int x) { if (x) g(); }\n")

	var out bytes.Buffer
	s := settings{run: braces.RunOptions{Language: "c", Style: braces.StyleAttach}, legacyBanner: true}
	require.NoError(t, rewriteStdin(ctx, in, &out, s))
	require.Equal(t, "// Modified file:\nvoid f(int x) { if (x) {\n    g();\n} }\n", out.String())

	s.write = true
	require.Error(t, rewriteStdin(ctx, strings.NewReader(""), &out, s))
}
