// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package annotate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T) time.Time {
	t.Helper()
	old := Clock
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
	Clock = func() time.Time { return fixed }
	t.Cleanup(func() { Clock = old })
	return fixed
}

func writeMarkdown(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Quarterly Report.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnnotate(t *testing.T) {
	fixedClock(t)
	body := "# Quarterly Report\n\nNumbers went up.\n"
	path := writeMarkdown(t, body)

	err := Annotate(path, "Quarterly Report", "abc123",
		"https://docs.google.com/document/d/abc123/edit", "")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "---\n"), "frontmatter must open the file")
	assert.Contains(t, content, `title: "Quarterly Report"`)
	assert.Contains(t, content, `source_doc_id: "abc123"`)
	assert.Contains(t, content, `source_url: "https://docs.google.com/document/d/abc123/edit"`)
	assert.Contains(t, content, `converted_on: "2026-03-14 09:26:53"`)
	assert.NotContains(t, content, "docx_path", "no intermediate was retained")

	// Blank separator line, then the original content verbatim.
	assert.Contains(t, content, "---\n\n"+body)
}

func TestAnnotateWithRetainedIntermediate(t *testing.T) {
	fixedClock(t)
	path := writeMarkdown(t, "body\n")

	err := Annotate(path, "Doc", "id9", "https://example.com/d/id9",
		filepath.Join("intermediates", "Doc.docx"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `docx_path: "`+filepath.Join("intermediates", "Doc.docx")+`"`)
}

func TestAnnotateMissingFile(t *testing.T) {
	err := Annotate(filepath.Join(t.TempDir(), "absent.md"), "x", "y", "z", "")
	assert.True(t, errors.Is(err, ErrAnnotationFailed), "error = %v, want ErrAnnotationFailed", err)
}

func TestAnnotateLeavesNoTempFiles(t *testing.T) {
	fixedClock(t)
	path := writeMarkdown(t, "body\n")
	require.NoError(t, Annotate(path, "Doc", "id", "url", ""))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the annotated file should remain")
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

func TestAnnotateTitleQuoting(t *testing.T) {
	fixedClock(t)
	path := writeMarkdown(t, "body\n")

	require.NoError(t, Annotate(path, `He said "go"`, "id", "url", ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `title: "He said \"go\""`)
}
