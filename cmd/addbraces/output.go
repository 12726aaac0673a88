package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/arjunmahishi/addbraces/braces"
)

// summary is the --json document.
type summary struct {
	Files   []braces.FileResult `json:"files"`
	Changed int                 `json:"changed"`
	Failed  int                 `json:"failed"`
	Wrapped int                 `json:"wrapped"`
	Skipped int                 `json:"skipped"`
}

func newSummary(results []braces.FileResult) summary {
	s := summary{Files: results}
	if s.Files == nil {
		s.Files = []braces.FileResult{}
	}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			continue
		}
		if r.Changed {
			s.Changed++
		}
		s.Wrapped += r.Wrapped
		s.Skipped += r.Skipped
	}
	return s
}

func writeJSON(w io.Writer, v any, compact bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// writeOutputs prints every processed file. With more than one file each
// gets a "==> name <==" header.
func writeOutputs(w io.Writer, results []braces.FileResult, legacy bool) error {
	var ok []braces.FileResult
	for _, r := range results {
		if r.Err == nil {
			ok = append(ok, r)
		}
	}

	for i, r := range ok {
		if len(ok) > 1 {
			sep := ""
			if i > 0 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(w, "%s==> %s <==\n", sep, r.File); err != nil {
				return err
			}
		}
		if err := writeOutput(w, r, legacy); err != nil {
			return err
		}
	}
	return nil
}

func writeOutput(w io.Writer, r braces.FileResult, legacy bool) error {
	if legacy {
		if !r.Changed {
			_, err := io.WriteString(w, "// No changes made\n")
			return err
		}
		if _, err := io.WriteString(w, "// Modified file:\n"); err != nil {
			return err
		}
	}
	_, err := w.Write(r.Output)
	return err
}

// writeDiffs prints a unified diff for each changed file.
func writeDiffs(w io.Writer, results []braces.FileResult) error {
	for _, r := range results {
		if r.Err != nil || !r.Changed {
			continue
		}
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(r.Source)),
			B:        difflib.SplitLines(string(r.Output)),
			FromFile: "a/" + r.File,
			ToFile:   "b/" + r.File,
			Context:  3,
		}
		if err := difflib.WriteUnifiedDiff(w, diff); err != nil {
			return fmt.Errorf("diff %s: %w", r.File, err)
		}
	}
	return nil
}

// writeChecked lists the files that would change.
func writeChecked(w io.Writer, results []braces.FileResult) error {
	for _, r := range results {
		if r.Err != nil || !r.Changed {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %d clause(s) need braces\n", r.File, r.Wrapped); err != nil {
			return err
		}
	}
	return nil
}
