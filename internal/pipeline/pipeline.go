// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline migrates Drive pointer files end to end: resolve the
// pointer, derive and confine the output path, export the remote content,
// convert it to the local format, and annotate the result with provenance
// metadata. The batch runner drives the pipeline over a discovered file list
// and aggregates outcomes into a report.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/drive-migrate/internal/annotate"
	"github.com/pdiddy/drive-migrate/internal/convert"
	"github.com/pdiddy/drive-migrate/internal/export"
	"github.com/pdiddy/drive-migrate/internal/pointer"
	"github.com/pdiddy/drive-migrate/internal/safepath"
	"github.com/pdiddy/drive-migrate/pkg/types"
)

// intermediatesDir is the subdirectory, beside the pointer file, that holds
// retained DOCX exports.
const intermediatesDir = "intermediates"

// annotateFile is the annotation step. Declared as a var so tests can
// substitute a failing annotator.
var annotateFile = annotate.Annotate

// Pipeline processes one pointer file at a time. It holds the collaborators
// injected at construction; there is no hidden process-wide state.
type Pipeline struct {
	exporter  export.Exporter
	converter convert.Converter
	out       io.Writer
}

// New builds a pipeline. exporter may be nil for dry runs; converter may be
// nil when only spreadsheets are processed.
func New(exporter export.Exporter, converter convert.Converter, out io.Writer) *Pipeline {
	return &Pipeline{exporter: exporter, converter: converter, out: out}
}

// OutputPath returns the output location Process would write for the pointer
// file: the sanitized display name plus the kind's extension, confined to the
// pointer's directory.
func OutputPath(pointerPath string) (string, error) {
	rec, err := pointer.FromFile(pointerPath)
	if err != nil {
		return "", err
	}
	srcDir, err := filepath.Abs(filepath.Dir(pointerPath))
	if err != nil {
		return "", fmt.Errorf("resolving directory of %s: %w", pointerPath, err)
	}
	return safepath.Confine(srcDir, safepath.Sanitize(rec.Name)+rec.Kind.OutputExt())
}

// Process migrates a single pointer file. Side effects are strictly ordered:
// nothing is written before the export succeeds, the final file appears only
// after conversion, and the DOCX intermediate is removed on every exit path
// unless retention was requested. Annotation failures are logged, not
// returned: the converted file is still valid without metadata.
func (p *Pipeline) Process(ctx context.Context, job types.ConversionJob) error {
	rec, err := pointer.FromFile(job.PointerPath)
	if err != nil {
		return err
	}
	if rec.Kind != job.Kind {
		return fmt.Errorf("%w: %s resolved to a %s, not a %s", pointer.ErrMalformed, job.PointerPath, rec.Kind, job.Kind)
	}

	srcDir, err := filepath.Abs(filepath.Dir(job.PointerPath))
	if err != nil {
		return fmt.Errorf("resolving directory of %s: %w", job.PointerPath, err)
	}
	stem := safepath.Sanitize(rec.Name)
	outPath, err := safepath.Confine(srcDir, stem+rec.Kind.OutputExt())
	if err != nil {
		return err
	}

	fmt.Fprintf(p.out, "processing %s: %s (ID: %s)\n", rec.Kind, rec.Name, rec.ID)

	if job.DryRun {
		fmt.Fprintf(p.out, "would convert: %s -> %s\n", job.PointerPath, outPath)
		return nil
	}

	if rec.Kind == types.KindSpreadsheet {
		if err := p.export(ctx, rec, outPath); err != nil {
			return err
		}
		fmt.Fprintf(p.out, "exported: %s\n", outPath)
		return nil
	}
	return p.convertDocument(ctx, rec, srcDir, stem, outPath, job.KeepIntermediates)
}

// convertDocument runs the document path: export DOCX, convert to Markdown,
// annotate. The intermediate lives in intermediates/ when retained, otherwise
// in a scratch directory removed on return.
func (p *Pipeline) convertDocument(ctx context.Context, rec types.PointerRecord, srcDir, stem, outPath string, keep bool) error {
	if p.converter == nil {
		return fmt.Errorf("%w: no converter configured for documents", convert.ErrConverterUnavailable)
	}

	var docxPath, docxRel string
	if keep {
		interDir, err := safepath.Confine(srcDir, intermediatesDir)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(interDir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", interDir, err)
		}
		docxPath, err = safepath.Confine(interDir, stem+".docx")
		if err != nil {
			return err
		}
		docxRel = filepath.Join(intermediatesDir, stem+".docx")
	} else {
		scratch, err := os.MkdirTemp("", "drive-migrate-*")
		if err != nil {
			return fmt.Errorf("creating scratch directory: %w", err)
		}
		defer os.RemoveAll(scratch)
		docxPath = filepath.Join(scratch, stem+".docx")
	}

	if err := p.export(ctx, rec, docxPath); err != nil {
		return err
	}
	if err := p.converter.Convert(docxPath, outPath); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "converted: %s\n", outPath)

	if err := annotateFile(outPath, rec.Name, rec.ID, rec.SourceURL(), docxRel); err != nil {
		fmt.Fprintf(p.out, "warning: %v\n", err)
	}
	if keep {
		fmt.Fprintf(p.out, "kept DOCX intermediate: %s\n", docxPath)
	}
	return nil
}

func (p *Pipeline) export(ctx context.Context, rec types.PointerRecord, destPath string) error {
	if p.exporter == nil {
		return fmt.Errorf("%w: no exporter configured", export.ErrExportFailed)
	}

	lastPct := -1
	progress := func(f float64) {
		if pct := int(f * 100); pct != lastPct {
			fmt.Fprintf(p.out, "download %d%%\n", pct)
			lastPct = pct
		}
	}
	return p.exporter.Export(ctx, rec.ID, rec.Kind.ExportMIME(), destPath, progress)
}
