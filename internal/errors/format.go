// Package errors provides error formatting for extract-gates CLI output.
package errors

import (
	"io"
	"sort"
	"strings"
)

// PrintOptions controls error output formatting.
type PrintOptions struct {
	// Verbose prefixes the error code and appends context keys.
	Verbose bool
}

// Context keys printed in verbose mode, in order.
var verboseContextKeys = []string{
	"path",
	"index",
	"line",
}

const maxValueLen = 256

// Format formats an error for display without I/O.
// Default mode produces exactly one line.
func Format(err error, opts PrintOptions) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	e, ok := AsError(err)
	if !ok {
		sb.WriteString("Error: ")
		sb.WriteString(oneLine(err.Error()))
		sb.WriteString("\n")
		return sb.String()
	}

	if opts.Verbose {
		sb.WriteString("error_code: ")
		sb.WriteString(string(e.Code))
		sb.WriteString("\n")
	}

	if e.Code == EUsage {
		sb.WriteString(e.Msg)
	} else {
		sb.WriteString("Error: ")
		sb.WriteString(oneLine(e.Msg))
	}
	sb.WriteString("\n")

	if !opts.Verbose || e.Details == nil {
		return sb.String()
	}

	printed := make(map[string]bool)
	for _, key := range verboseContextKeys {
		val, ok := e.Details[key]
		if !ok || val == "" {
			continue
		}
		printed[key] = true
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(sanitizeValue(val, maxValueLen))
		sb.WriteString("\n")
	}

	var extra []string
	for key := range e.Details {
		if !printed[key] && e.Details[key] != "" {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(sanitizeValue(e.Details[key], maxValueLen))
		sb.WriteString("\n")
	}

	return sb.String()
}

// PrintWithOptions writes a formatted error to w with the given options.
func PrintWithOptions(w io.Writer, err error, opts PrintOptions) {
	if err == nil {
		return
	}
	_, _ = io.WriteString(w, Format(err, opts))
}

// oneLine escapes embedded newlines in a message. Trailing spaces are kept:
// "File not found: " for an empty path stays as written.
func oneLine(msg string) string {
	msg = strings.TrimRight(msg, "\r\n")
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	return strings.ReplaceAll(msg, "\n", "\\n")
}

// sanitizeValue keeps a value on one line:
// - trims trailing whitespace
// - replaces newlines with literal \n
// - truncates to maxLen chars (maxLen <= 0 disables truncation)
func sanitizeValue(val string, maxLen int) string {
	val = strings.TrimRight(val, " \t\r\n")
	val = strings.ReplaceAll(val, "\r\n", "\n")
	val = strings.ReplaceAll(val, "\n", "\\n")
	if maxLen > 0 && len(val) > maxLen {
		return val[:maxLen] + "…"
	}
	return val
}
