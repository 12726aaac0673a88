package main

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/urfave/cli/v3"
)

//go:embed examples.txt
var examplesText string

func examplesCommand() *cli.Command {
	return &cli.Command{
		Name:  "examples",
		Usage: "show before/after rewrites for each brace style",
		Description: "Print sample inputs and what addbraces makes of them.\n" +
			"Output is designed to be grep-friendly.\n\n" +
			"Examples:\n" +
			"  addbraces examples                 # show all examples\n" +
			"  addbraces examples | grep -A8 wrap # only the wrap style",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Print(examplesText)
			return nil
		},
	}
}
