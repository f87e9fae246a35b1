// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionJob describes one pointer file to migrate. A job is owned by a
// single pipeline invocation; nothing shares it.
type ConversionJob struct {
	// PointerPath is the path of the .gdoc or .gsheet file on disk.
	PointerPath string

	// Kind is the expected resource kind, derived from the extension.
	Kind ResourceKind

	// OutputPath is the would-be output location, as recomputed by the batch
	// runner for skip checks. The pipeline re-derives and validates its own
	// output path before writing.
	OutputPath string

	// KeepIntermediates retains the exported DOCX in an intermediates/
	// subdirectory beside the pointer file instead of a scratch directory.
	KeepIntermediates bool

	// DryRun reports intent without writing anything.
	DryRun bool
}
