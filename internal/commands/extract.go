// Package commands implements extract-gates CLI commands.
package commands

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/NielsdaWheelz/extract-gates/internal/config"
	"github.com/NielsdaWheelz/extract-gates/internal/errors"
	"github.com/NielsdaWheelz/extract-gates/internal/gates"
	"github.com/NielsdaWheelz/extract-gates/internal/version"
)

// UsageLine is printed when the story path is missing.
const UsageLine = "Usage: " + version.Name + " <story-file>"

// ExtractOpts holds options for the extract command.
type ExtractOpts struct {
	// StoryPath is the story file to read.
	StoryPath string

	// Format is the output format: "pipe" (default) or "json".
	Format string

	// Verbose adds the error code and context to diagnostics.
	Verbose bool

	// Logger receives debug events; nil disables logging.
	Logger *zap.Logger
}

// Extract prints the gates of a story file, one per line.
//
// Output contract:
//   - stdout: one "name|type|command|expected_exit" line per gate, in source order
//   - stderr: "Error: <message>" when the story is missing, malformed, or has an unexpected shape
//
// Extraction failures are reported and swallowed: the returned error is
// non-nil only for an unrecoverable failure. An unsupported format is
// reported and replaced by pipe. An empty StoryPath is looked up like any
// other path and reported as not found.
func Extract(opts ExtractOpts, stdout, stderr io.Writer) error {
	format := opts.Format
	if format == "" {
		format = config.FormatPipe
	}
	if err := config.ValidateFormat(format); err != nil {
		errors.PrintWithOptions(stderr, err, errors.PrintOptions{Verbose: opts.Verbose})
		format = config.Default().Format
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	list, err := gates.NewExtractor(logger).Extract(opts.StoryPath)
	if err != nil {
		if !errors.IsRecoverable(err) {
			return err
		}
		errors.PrintWithOptions(stderr, err, errors.PrintOptions{Verbose: opts.Verbose})
		return nil
	}

	// Render everything before writing so a failure leaves stdout empty.
	lines := make([]string, 0, len(list))
	for i, g := range list {
		if g.Ambiguous() && format == config.FormatPipe {
			logger.Debug("gate field contains separator",
				zap.Int("index", i),
				zap.String("name", g.Name))
		}
		line, err := render(g, format)
		if err != nil {
			errors.PrintWithOptions(stderr, errors.Wrap(errors.EInternal, err.Error(), err),
				errors.PrintOptions{Verbose: opts.Verbose})
			return nil
		}
		lines = append(lines, line)
	}

	for _, line := range lines {
		_, _ = fmt.Fprintln(stdout, line)
	}
	return nil
}

func render(g gates.Gate, format string) (string, error) {
	if format == config.FormatJSON {
		return gates.FormatJSON(g)
	}
	return gates.Format(g), nil
}
