// Command extract-gates prints the verification gates declared in a story file.
package main

import (
	"os"

	"github.com/NielsdaWheelz/extract-gates/internal/cli/cobra"
	"github.com/NielsdaWheelz/extract-gates/internal/errors"
)

func main() {
	err := cobra.Execute(os.Stdout, os.Stderr)
	if err != nil {
		opts := errors.PrintOptions{
			Verbose: cobra.GetGlobalOpts().Verbose,
		}
		errors.PrintWithOptions(os.Stderr, err, opts)
		os.Exit(errors.ExitCode(err))
	}
}
