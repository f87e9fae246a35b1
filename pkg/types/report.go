// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Report is the running aggregate of a batch run. Only the batch runner
// mutates it, one update per processed file; it is read once at the end of
// the run for the summary.
type Report struct {
	// Found is the number of pointer files selected for processing, after
	// the optional limit cap.
	Found int `json:"found" yaml:"found"`

	// Converted counts files that completed the pipeline.
	Converted int `json:"converted" yaml:"converted"`

	// Skipped counts files whose output already existed.
	Skipped int `json:"skipped" yaml:"skipped"`

	// Failed counts files that errored at any pipeline stage.
	Failed int `json:"failed" yaml:"failed"`

	// Docs and Sheets break Converted down by resource kind.
	Docs   int `json:"documents" yaml:"documents"`
	Sheets int `json:"spreadsheets" yaml:"spreadsheets"`

	// DryRun records whether the run wrote anything.
	DryRun bool `json:"dry_run" yaml:"dry_run"`
}

// Total returns the number of files that reached an outcome.
func (r Report) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed.
func (r Report) HasFailures() bool {
	return r.Failed > 0
}
