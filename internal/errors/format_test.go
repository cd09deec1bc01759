package errors

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestFormat_DefaultIsSingleLine(t *testing.T) {
	err := NewWithDetails(EMalformedInput, "Invalid YAML: yaml: line 2: did not find expected key\nmore", map[string]string{"path": "s.yaml"})

	got := Format(err, PrintOptions{})

	want := "Error: Invalid YAML: yaml: line 2: did not find expected key\\nmore\n"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
	if strings.Count(got, "\n") != 1 {
		t.Errorf("default format must be one line, got %q", got)
	}
}

func TestFormat_Verbose(t *testing.T) {
	err := NewWithDetails(EInternal, "gates[1] must be a mapping", map[string]string{
		"path":  "story.yaml",
		"index": "1",
		"kind":  "scalar",
	})

	got := Format(err, PrintOptions{Verbose: true})

	want := "error_code: E_INTERNAL\n" +
		"Error: gates[1] must be a mapping\n" +
		"path: story.yaml\n" +
		"index: 1\n" +
		"kind: scalar\n"
	if got != want {
		t.Errorf("Format() =\n%s\nwant:\n%s", got, want)
	}
}

func TestFormat_VerboseLine(t *testing.T) {
	err := NewWithDetails(EMalformedInput, "Invalid YAML: yaml: line 2: found character that cannot start any token",
		map[string]string{"line": "2", "path": "s.yaml"})

	got := Format(err, PrintOptions{Verbose: true})

	want := "error_code: E_MALFORMED_INPUT\n" +
		"Error: Invalid YAML: yaml: line 2: found character that cannot start any token\n" +
		"path: s.yaml\n" +
		"line: 2\n"
	if got != want {
		t.Errorf("Format() =\n%s\nwant:\n%s", got, want)
	}
}

func TestFormat_VerboseUsage(t *testing.T) {
	got := Format(New(EUsage, "Usage: extract-gates <story-file>"), PrintOptions{Verbose: true})

	want := "error_code: E_USAGE\nUsage: extract-gates <story-file>\n"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormat_Nil(t *testing.T) {
	if got := Format(nil, PrintOptions{Verbose: true}); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
}

func TestPrintWithOptions(t *testing.T) {
	var buf bytes.Buffer
	PrintWithOptions(&buf, errors.New("disk on fire"), PrintOptions{Verbose: true})

	if buf.String() != "Error: disk on fire\n" {
		t.Errorf("PrintWithOptions() = %q", buf.String())
	}
}

func TestOneLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"File not found: ", "File not found: "},
		{"a\nb\n", "a\\nb"},
		{"a\r\nb", "a\\nb"},
	}

	for _, tt := range tests {
		if got := oneLine(tt.in); got != tt.want {
			t.Errorf("oneLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeValue(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"plain", "hello", 10, "hello"},
		{"trailing whitespace", "hello \n\t", 10, "hello"},
		{"crlf", "a\r\nb", 10, "a\\nb"},
		{"truncate", "abcdefghij", 4, "abcd…"},
		{"no limit", "abcdefghij", 0, "abcdefghij"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeValue(tt.in, tt.maxLen); got != tt.want {
				t.Errorf("sanitizeValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
