package story

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NielsdaWheelz/extract-gates/internal/errors"
)

func writeStory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "story.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	doc, err := Load(path)

	require.Error(t, err)
	assert.Equal(t, errors.EFileNotFound, errors.GetCode(err))
	assert.True(t, doc.Empty())

	e, ok := errors.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "File not found: "+path, e.Msg)
	assert.Equal(t, path, e.Details["path"])
}

func TestLoad_Directory(t *testing.T) {
	_, err := Load(t.TempDir())

	require.Error(t, err)
	assert.Equal(t, errors.EInternal, errors.GetCode(err))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeStory(t, "verification:\n  gates: [unclosed\n")

	doc, err := Load(path)

	require.Error(t, err)
	assert.Equal(t, errors.EMalformedInput, errors.GetCode(err))
	assert.True(t, doc.Empty())

	e, _ := errors.AsError(err)
	assert.True(t, strings.HasPrefix(e.Msg, "Invalid YAML: "), "got %q", e.Msg)
	assert.Equal(t, path, e.Details["path"])
}

func TestLoad_InvalidYAMLKeepsLine(t *testing.T) {
	path := writeStory(t, "verification:\n\tgates: []\n")

	_, err := Load(path)

	e, ok := errors.AsError(err)
	require.True(t, ok)
	assert.Equal(t, path, e.Details["path"])
	assert.Equal(t, "2", e.Details["line"])
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")

	require.Error(t, err)
	assert.Equal(t, errors.EFileNotFound, errors.GetCode(err))
	e, _ := errors.AsError(err)
	assert.Equal(t, "File not found: ", e.Msg)
}

func TestLoad_Valid(t *testing.T) {
	path := writeStory(t, "title: Story\nverification:\n  gates: []\n")

	doc, err := Load(path)

	require.NoError(t, err)
	assert.False(t, doc.Empty())
	assert.Equal(t, KindMapping, doc.Root().Kind())
	assert.Equal(t, "Story", doc.Root().StringOr("title", ""))
}

func TestParse_EmptyInputs(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"whitespace", "   \n\n"},
		{"comment only", "# nothing here\n"},
		{"explicit null", "~\n"},
		{"null word", "null\n"},
		{"bare document marker", "---\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.content))
			require.NoError(t, err)
			assert.True(t, doc.Empty())
		})
	}
}

func TestParse_MultipleDocuments(t *testing.T) {
	_, err := Parse([]byte("a: 1\n---\nb: 2\n"))

	require.Error(t, err)
	assert.Equal(t, errors.EMalformedInput, errors.GetCode(err))
}

func TestParse_SyntaxErrorInSecondDocument(t *testing.T) {
	_, err := Parse([]byte("a: 1\n---\nb: [\n"))

	require.Error(t, err)
	assert.Equal(t, errors.EMalformedInput, errors.GetCode(err))
}

func TestParse_TabIndentation(t *testing.T) {
	_, err := Parse([]byte("verification:\n\tgates: []\n"))

	require.Error(t, err)
	assert.Equal(t, errors.EMalformedInput, errors.GetCode(err))
	e, ok := errors.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "2", e.Details["line"])
}

func TestZeroDocument(t *testing.T) {
	var doc Document

	assert.True(t, doc.Empty())
	assert.Equal(t, KindMissing, doc.Root().Kind())
	assert.Nil(t, doc.Root().Mapping("verification").Sequence("gates"))
}
