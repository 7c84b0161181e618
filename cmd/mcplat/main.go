// Package main is the entry point for the mcplat CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/thoreinstein/mcplat/cmd/mcplat/commands"
	"github.com/thoreinstein/mcplat/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
	if s := errors.Suggest(err); s != "" {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.YellowString("Hint:"), s)
	}
	os.Exit(errors.ExitCode(err))
}
