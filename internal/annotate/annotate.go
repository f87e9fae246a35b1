// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package annotate prepends provenance frontmatter to converted Markdown.
// Annotation is best-effort enrichment: a converted file without metadata is
// still a valid conversion, so callers log failures instead of propagating
// them.
package annotate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrAnnotationFailed wraps I/O failures while adding frontmatter. The
// conversion already on disk is untouched by such a failure.
var ErrAnnotationFailed = errors.New("annotation failed")

// Clock returns the timestamp recorded as converted_on. Tests override it.
var Clock = time.Now

// timeLayout is the local-time format written to frontmatter.
const timeLayout = "2006-01-02 15:04:05"

// Annotate rewrites the Markdown file at mdPath with a YAML frontmatter block
// (title, source_doc_id, source_url, converted_on, and docx_path when an
// intermediate was retained), a blank separator line, then the original
// content verbatim. The rewrite goes through a temp file and a rename, so a
// reader never observes partial frontmatter.
func Annotate(mdPath, title, docID, sourceURL, docxRelPath string) error {
	content, err := os.ReadFile(mdPath)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrAnnotationFailed, mdPath, err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", title)
	fmt.Fprintf(&b, "source_doc_id: %q\n", docID)
	fmt.Fprintf(&b, "source_url: %q\n", sourceURL)
	fmt.Fprintf(&b, "converted_on: %q\n", Clock().Format(timeLayout))
	if docxRelPath != "" {
		fmt.Fprintf(&b, "docx_path: %q\n", docxRelPath)
	}
	b.WriteString("---\n\n")
	b.Write(content)

	if err := replaceFile(mdPath, []byte(b.String())); err != nil {
		return fmt.Errorf("%w: rewriting %s: %v", ErrAnnotationFailed, mdPath, err)
	}
	return nil
}

// replaceFile writes data to a temp file beside path and renames it over the
// original.
func replaceFile(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".annotate-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
