package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/arjunmahishi/addbraces/braces"
)

func main() {
	// Import side effect: register the C and C++ grammars
	_ = braces.C{}
	_ = braces.Cpp{}

	args, compilerArgs := splitCompilerArgs(os.Args)
	app := newApp(compilerArgs)

	if err := app.Run(context.Background(), args); err != nil {
		if !errors.Is(err, errChangesNeeded) {
			writeError(err)
		}
		os.Exit(1)
	}
}

func newApp(compilerArgs []string) *cli.Command {
	return &cli.Command{
		Name:      "addbraces",
		Usage:     "add braces around single-statement if/while/for/do bodies in C and C++",
		ArgsUsage: "[files or dirs...] [-- compiler flags]",
		Flags:     rewriteFlags(),
		Action:    rewriteAction(compilerArgs),
		Commands: []*cli.Command{
			rewriteCommand(compilerArgs),
			languagesCommand(),
			examplesCommand(),
		},
	}
}

// splitCompilerArgs cuts argv at the first "--". Everything after it is
// treated as compiler flags, of which only -D is understood.
func splitCompilerArgs(argv []string) ([]string, []string) {
	for i, arg := range argv {
		if arg == "--" {
			return argv[:i], argv[i+1:]
		}
	}
	return argv, nil
}

// compilerDefines extracts the -D definitions from compiler flags,
// accepting both "-DNAME" and "-D NAME".
func compilerDefines(args []string) []string {
	var defines []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-D":
			if i+1 < len(args) {
				defines = append(defines, args[i+1])
				i++
			}
		case len(arg) > 2 && arg[:2] == "-D":
			defines = append(defines, arg[2:])
		}
	}
	return defines
}

func languagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "list supported grammars and their file extensions",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print as JSON",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			type entry struct {
				Name       string   `json:"name"`
				Extensions []string `json:"extensions"`
			}
			var entries []entry
			for _, name := range braces.List() {
				entries = append(entries, entry{Name: name, Extensions: braces.Get(name).Extensions()})
			}
			if cmd.Bool("json") {
				return writeJSON(os.Stdout, entries, false)
			}
			for _, e := range entries {
				fmt.Printf("%-4s %v\n", e.Name, e.Extensions)
			}
			return nil
		},
	}
}

func writeError(err error) {
	enc := json.NewEncoder(os.Stderr)
	_ = enc.Encode(map[string]string{
		"error": err.Error(),
	})
}
