// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/drive-migrate/internal/scan"
	"github.com/pdiddy/drive-migrate/pkg/types"
)

// Runner drives the pipeline over every pointer file discovered under the
// configured source directory. Per-file failures are counted, never fatal:
// one broken pointer must not abort the batch.
type Runner struct {
	pipeline *Pipeline
	cfg      types.MigrationConfig
	out      io.Writer
}

// NewRunner builds a batch runner around an assembled pipeline.
func NewRunner(p *Pipeline, cfg types.MigrationConfig, out io.Writer) *Runner {
	return &Runner{pipeline: p, cfg: cfg, out: out}
}

// Run discovers pointer files, processes each one, and returns the aggregated
// report. The returned error covers discovery only; per-file outcomes live in
// the report counters.
func (r *Runner) Run(ctx context.Context) (types.Report, error) {
	found, err := scan.Find(r.cfg.SourceDir, r.cfg.Filter)
	if err != nil {
		return types.Report{}, err
	}
	if len(found) == 0 {
		fmt.Fprintln(r.out, "no Drive pointer files found")
		return types.Report{DryRun: r.cfg.DryRun}, nil
	}

	paths := scan.Cap(found, r.cfg.Limit)
	if len(paths) < len(found) {
		fmt.Fprintf(r.out, "limiting to %d files (of %d found)\n", len(paths), len(found))
	} else {
		fmt.Fprintf(r.out, "found %d Drive pointer files\n", len(found))
	}

	report := types.Report{Found: len(paths), DryRun: r.cfg.DryRun}
	for i, path := range paths {
		kind, _ := types.KindForExt(filepath.Ext(path))
		fmt.Fprintf(r.out, "\nfile %d of %d: %s (%s)\n", i+1, len(paths), filepath.Base(path), kind)

		outPath, pathErr := OutputPath(path)
		if r.cfg.SkipExisting && pathErr == nil {
			if _, statErr := os.Stat(outPath); statErr == nil {
				fmt.Fprintf(r.out, "skipped: output already exists: %s\n", outPath)
				report.Skipped++
				continue
			}
		}

		if err := r.processOne(ctx, path, kind, outPath); err != nil {
			fmt.Fprintf(r.out, "failed: %s: %v\n", filepath.Base(path), err)
			report.Failed++
			continue
		}
		report.Converted++
		switch kind {
		case types.KindDocument:
			report.Docs++
		case types.KindSpreadsheet:
			report.Sheets++
		}
	}

	r.printSummary(report)
	return report, nil
}

// processOne runs the pipeline for a single file, converting a panic into an
// ordinary counted error.
func (r *Runner) processOne(ctx context.Context, path string, kind types.ResourceKind, outPath string) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("panic while processing %s: %v", path, v)
		}
	}()

	job := types.ConversionJob{
		PointerPath:       path,
		Kind:              kind,
		OutputPath:        outPath,
		KeepIntermediates: r.cfg.KeepIntermediates,
		DryRun:            r.cfg.DryRun,
	}
	return r.pipeline.Process(ctx, job)
}

func (r *Runner) printSummary(report types.Report) {
	fmt.Fprintln(r.out, "\nconversion summary:")
	fmt.Fprintf(r.out, "  total files found: %d\n", report.Found)
	if report.DryRun {
		fmt.Fprintf(r.out, "  would convert: %d (dry run, nothing written)\n", report.Converted)
	} else {
		fmt.Fprintf(r.out, "  converted: %d\n", report.Converted)
		fmt.Fprintf(r.out, "    documents:    %d\n", report.Docs)
		fmt.Fprintf(r.out, "    spreadsheets: %d\n", report.Sheets)
	}
	if report.Skipped > 0 {
		fmt.Fprintf(r.out, "  skipped (already exist): %d\n", report.Skipped)
	}
	fmt.Fprintf(r.out, "  failed: %d\n", report.Failed)
}

// WriteReport persists the run report as YAML.
func WriteReport(report types.Report, path string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
