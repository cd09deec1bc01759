// Package story loads story documents and provides shape-checked lookups over them.
package story

import (
	"bytes"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/NielsdaWheelz/extract-gates/internal/errors"
)

// Document is a parsed story file. The zero value is an empty document.
type Document struct {
	root *yaml.Node
}

// Empty reports whether the document has no content or a null root.
func (d Document) Empty() bool {
	k := d.Root().Kind()
	return k == KindMissing || k == KindNull
}

// Root returns the top-level value of the document.
func (d Document) Root() Value {
	return Value{node: d.root}
}

// Load reads and parses the story file at path.
// Returns E_FILE_NOT_FOUND if the path does not exist.
// Returns E_MALFORMED_INPUT if the content is not a single valid YAML document.
// Returns E_INTERNAL for any other read failure.
// An empty file is not an error; it yields an empty Document.
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.NewWithDetails(errors.EFileNotFound,
				"File not found: "+path, map[string]string{"path": path})
		}
		return Document{}, errors.WrapWithDetails(errors.EInternal, err.Error(), err,
			map[string]string{"path": path})
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return Document{}, errors.WrapWithDetails(errors.EInternal, err.Error(), err,
			map[string]string{"path": path})
	}

	doc, err := Parse(data)
	if err != nil {
		if e, ok := errors.AsError(err); ok {
			if e.Details == nil {
				e.Details = make(map[string]string, 1)
			}
			e.Details["path"] = path
		}
		return Document{}, err
	}
	return doc, nil
}

// Parse parses story content held in memory.
// The content must hold at most one YAML document.
func Parse(data []byte) (Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return Document{}, nil
		}
		return Document{}, malformed(err)
	}

	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == io.EOF:
	case err != nil:
		return Document{}, malformed(err)
	default:
		return Document{}, errors.New(errors.EMalformedInput,
			"Invalid YAML: expected a single document in the stream")
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Document{}, nil
	}
	return Document{root: doc.Content[0]}, nil
}

var yamlErrLine = regexp.MustCompile(`^yaml: line (\d+):`)

// malformed wraps a decoder error, keeping the reported line as a detail.
func malformed(err error) error {
	msg := err.Error()
	var details map[string]string
	if m := yamlErrLine.FindStringSubmatch(msg); m != nil {
		details = map[string]string{"line": m[1]}
	}
	return errors.WrapWithDetails(errors.EMalformedInput, "Invalid YAML: "+msg, err, details)
}
