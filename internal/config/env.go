// Package config loads extract-gates settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"

	"github.com/NielsdaWheelz/extract-gates/internal/errors"
)

// Output formats.
const (
	FormatPipe = "pipe"
	FormatJSON = "json"
)

// Config holds settings read from EXTRACT_GATES_* variables.
// Command-line flags override these values.
type Config struct {
	Format   string `env:"EXTRACT_GATES_FORMAT"    envDefault:"pipe"`
	LogLevel string `env:"EXTRACT_GATES_LOG_LEVEL" envDefault:"warn"`
}

// Default returns the built-in settings used when no variables are set.
func Default() Config {
	return Config{Format: FormatPipe, LogLevel: "warn"}
}

// LoadFromEnv parses and validates the environment configuration.
// An unsupported value is replaced by its default and reported as
// E_INVALID_CONFIG; the returned Config is always usable.
func LoadFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Default(), errors.Wrap(errors.EInvalidConfig, fmt.Sprintf("parse env: %v", err), err)
	}

	def := Default()
	var problems []string
	if err := ValidateFormat(cfg.Format); err != nil {
		problems = append(problems, "EXTRACT_GATES_FORMAT: "+messageOf(err))
		cfg.Format = def.Format
	}
	if _, err := cfg.Level(); err != nil {
		problems = append(problems, "EXTRACT_GATES_LOG_LEVEL: "+messageOf(err))
		cfg.LogLevel = def.LogLevel
	}
	if len(problems) > 0 {
		return cfg, errors.New(errors.EInvalidConfig, strings.Join(problems, "; "))
	}
	return cfg, nil
}

func messageOf(err error) string {
	if e, ok := errors.AsError(err); ok {
		return e.Msg
	}
	return err.Error()
}

// Level returns the parsed log level.
func (c Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, errors.New(errors.EInvalidConfig, fmt.Sprintf("invalid log level: %q", c.LogLevel))
	}
	return lvl, nil
}

// ValidateFormat returns E_INVALID_CONFIG unless format is "pipe" or "json".
func ValidateFormat(format string) error {
	switch format {
	case FormatPipe, FormatJSON:
		return nil
	}
	return errors.New(errors.EInvalidConfig, fmt.Sprintf("invalid format: %q (want %q or %q)", format, FormatPipe, FormatJSON))
}
