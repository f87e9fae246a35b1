// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for drive-migrate: resource
// kinds, pointer records, conversion jobs, run reports, and configuration.
package types

import "fmt"

// ResourceKind identifies what a Drive pointer file refers to.
type ResourceKind string

const (
	// KindDocument is a Google Doc, exported as DOCX and converted to Markdown.
	KindDocument ResourceKind = "document"

	// KindSpreadsheet is a Google Sheet, exported directly as CSV.
	KindSpreadsheet ResourceKind = "spreadsheet"
)

// Pointer file extensions as written by Drive sync clients.
const (
	ExtGdoc   = ".gdoc"
	ExtGsheet = ".gsheet"
)

// Export MIME types requested from the Drive export endpoint.
const (
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeCSV  = "text/csv"
)

// KindForExt maps a pointer-file extension to its resource kind. The kind is
// always derived from the extension, never from file content.
func KindForExt(ext string) (ResourceKind, bool) {
	switch ext {
	case ExtGdoc:
		return KindDocument, true
	case ExtGsheet:
		return KindSpreadsheet, true
	default:
		return "", false
	}
}

func (k ResourceKind) String() string { return string(k) }

// OutputExt returns the extension of the final local file for this kind.
func (k ResourceKind) OutputExt() string {
	if k == KindSpreadsheet {
		return ".csv"
	}
	return ".md"
}

// ExportMIME returns the MIME type requested from the export endpoint.
// Documents go through a DOCX intermediate; spreadsheets export as CSV,
// which is already the final format.
func (k ResourceKind) ExportMIME() string {
	if k == KindSpreadsheet {
		return mimeCSV
	}
	return mimeDocx
}

// PointerRecord is the canonical result of resolving a pointer file. It is
// immutable and lives for a single pipeline invocation.
type PointerRecord struct {
	// ID is the remote Drive resource identifier. Non-empty whenever
	// resolution succeeds.
	ID string

	// URL is the resource URL carried by the pointer file, if any.
	URL string

	// Name is the pointer filename without its extension.
	Name string

	// Kind is derived from the pointer file's extension.
	Kind ResourceKind
}

// SourceURL returns the URL recorded in the pointer file, or the canonical
// docs.google.com URL derived from the resource ID when the pointer carried
// none.
func (r PointerRecord) SourceURL() string {
	if r.URL != "" {
		return r.URL
	}
	if r.Kind == KindSpreadsheet {
		return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", r.ID)
	}
	return fmt.Sprintf("https://docs.google.com/document/d/%s/edit", r.ID)
}

// KindFilter restricts discovery to one or both resource kinds. The flags are
// restrictive, not exclusive: setting both passes both kinds, setting neither
// passes everything.
type KindFilter struct {
	DocsOnly   bool
	SheetsOnly bool
}

// Match reports whether a resource of kind k passes the filter.
func (f KindFilter) Match(k ResourceKind) bool {
	if !f.DocsOnly && !f.SheetsOnly {
		return true
	}
	return (f.DocsOnly && k == KindDocument) || (f.SheetsOnly && k == KindSpreadsheet)
}
