// Package cobra provides the Cobra-based CLI command for extract-gates.
package cobra

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/extract-gates/internal/commands"
	"github.com/NielsdaWheelz/extract-gates/internal/config"
	"github.com/NielsdaWheelz/extract-gates/internal/errors"
	"github.com/NielsdaWheelz/extract-gates/internal/logging"
	"github.com/NielsdaWheelz/extract-gates/internal/version"
)

// GlobalOpts holds global options parsed before the command runs.
type GlobalOpts struct {
	Verbose bool
}

// globalOpts stores the parsed global options for access by main.
var globalOpts GlobalOpts

// GetGlobalOpts returns the parsed global options.
func GetGlobalOpts() GlobalOpts {
	return globalOpts
}

// NewRootCmd creates the root cobra command for extract-gates.
func NewRootCmd() *cobra.Command {
	var format string

	rootCmd := &cobra.Command{
		Use:   version.Name + " <story-file>",
		Short: "Extract verification gates from a story file",
		Long: `extract-gates - extract verification gates from a story file

Reads the YAML story at <story-file> and prints each entry of
verification.gates as one line:

  name|type|command|expected_exit

Missing fields default to Unknown, command, an empty command, and 0.
A field that is present but null or empty prints as an empty field.
Other values print in their YAML form: booleans as true/false, integers
in base 10, and nested lists or maps in flow style such as [a, b].

A missing or unreadable story is reported on stderr and produces no
output; the exit status is still 0. An unsupported setting is reported
on stderr and replaced by its default. Only a missing <story-file>
argument exits non-zero. Use -- before a path that begins with '-':

  extract-gates -- -story.yaml

Environment:
  EXTRACT_GATES_FORMAT      default output format (pipe or json)
  EXTRACT_GATES_LOG_LEVEL   debug log level written to stderr (default warn)`,
		Version:       version.FullVersion(),
		Args:          requireStoryPath,
		SilenceErrors: true, // We handle error printing in main.go
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			printOpts := errors.PrintOptions{Verbose: globalOpts.Verbose}

			// LoadFromEnv always returns usable settings.
			cfg, err := config.LoadFromEnv()
			if err != nil {
				errors.PrintWithOptions(cmd.ErrOrStderr(), err, printOpts)
			}
			if cmd.Flags().Changed("format") {
				if err := config.ValidateFormat(format); err != nil {
					errors.PrintWithOptions(cmd.ErrOrStderr(), err, printOpts)
				} else {
					cfg.Format = format
				}
			}

			level := cfg.LogLevel
			if globalOpts.Verbose {
				level = "debug"
			}
			logger, err := logging.NewFromLevel(cmd.ErrOrStderr(), level)
			if err != nil {
				errors.PrintWithOptions(cmd.ErrOrStderr(), errors.Wrap(errors.EInvalidConfig, err.Error(), err), printOpts)
				logger, _ = logging.NewFromLevel(cmd.ErrOrStderr(), config.Default().LogLevel)
			}
			defer func() { _ = logger.Sync() }()

			opts := commands.ExtractOpts{
				StoryPath: args[0],
				Format:    cfg.Format,
				Verbose:   globalOpts.Verbose,
				Logger:    logger,
			}
			return commands.Extract(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().BoolVar(&globalOpts.Verbose, "verbose", false, "log debug events and show error codes")
	rootCmd.Flags().StringVar(&format, "format", config.FormatPipe, "output format: pipe or json")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	return rootCmd
}

// requireStoryPath rejects a call with no positional argument.
// An empty argument counts as a path. Extra arguments are ignored.
func requireStoryPath(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New(errors.EUsage, commands.UsageLine)
	}
	return nil
}

// Execute runs the root command with the given output writers.
// This is the main entry point from main.go.
func Execute(stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}
