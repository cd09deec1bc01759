// Package gates extracts verification gates from story documents.
package gates

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Field defaults applied when a gate entry omits a key.
const (
	DefaultName         = "Unknown"
	DefaultType         = "command"
	DefaultCommand      = ""
	DefaultExpectedExit = "0"
)

// Separator joins the fields of a formatted gate line.
// Field values are not escaped: a value containing "|" makes the line ambiguous.
const Separator = "|"

// Gate is one verification check declared under verification.gates.
// Fields hold the string form of the source values.
type Gate struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Command      string `json:"command"`
	ExpectedExit string `json:"expected_exit"`
}

// Format renders g as "name|type|command|expected_exit" with no trailing
// separator and no newline.
func Format(g Gate) string {
	return strings.Join([]string{g.Name, g.Type, g.Command, g.ExpectedExit}, Separator)
}

// FormatJSON renders g as a single-line JSON object. Shell metacharacters
// such as "&" and "<" are left unescaped.
func FormatJSON(g Gate) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(g); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Ambiguous reports whether any field of g contains the separator,
// in which case Format output cannot be split back into fields.
func (g Gate) Ambiguous() bool {
	for _, f := range []string{g.Name, g.Type, g.Command, g.ExpectedExit} {
		if strings.Contains(f, Separator) {
			return true
		}
	}
	return false
}
