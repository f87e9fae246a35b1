// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns exported DOCX content into Markdown by shelling out
// to pandoc.
package convert

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	// ErrConverterUnavailable means the pandoc binary is missing or broken.
	// Fatal to the whole run; probed once up front, not per file.
	ErrConverterUnavailable = errors.New("pandoc is not installed or not in PATH")

	// ErrConversionFailed wraps a pandoc failure for a single input file,
	// carrying the tool's diagnostic output.
	ErrConversionFailed = errors.New("conversion failed")
)

const binPandoc = "pandoc"

// Converter transforms a binary document into the target text format.
type Converter interface {
	// Convert reads the file at inPath and writes the converted text to outPath.
	Convert(inPath, outPath string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunCaptureStderr(name string, args ...string) (stderr string, err error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunCaptureStderr(name string, args ...string) (string, error) {
	var stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

var defaultExec executor = &osExecutor{}

// PandocConverter converts DOCX to Markdown with the pandoc binary.
type PandocConverter struct {
	bin  string
	exec executor
}

// NewPandocConverter probes the pandoc installation and returns a converter.
// The probe runs once here so per-file conversions never repeat it.
func NewPandocConverter() (*PandocConverter, error) {
	return newPandocConverter(defaultExec)
}

func newPandocConverter(exec executor) (*PandocConverter, error) {
	c := &PandocConverter{bin: binPandoc, exec: exec}
	if err := c.probe(); err != nil {
		return nil, err
	}
	return c, nil
}

// probe verifies the binary exists on PATH and answers a version query.
func (c *PandocConverter) probe() error {
	if _, err := c.exec.LookPath(c.bin); err != nil {
		return fmt.Errorf("%w: %v", ErrConverterUnavailable, err)
	}
	if err := c.exec.RunSilent(c.bin, "--version"); err != nil {
		return fmt.Errorf("%w: version probe: %v", ErrConverterUnavailable, err)
	}
	return nil
}

// Convert runs pandoc on the DOCX at inPath, writing Markdown to outPath. On
// failure the error carries pandoc's stderr.
func (c *PandocConverter) Convert(inPath, outPath string) error {
	stderr, err := c.exec.RunCaptureStderr(c.bin, inPath, "-f", "docx", "-t", "markdown", "-o", outPath)
	if err != nil {
		if diag := strings.TrimSpace(stderr); diag != "" {
			return fmt.Errorf("%w: converting %s: %v: %s", ErrConversionFailed, inPath, err, diag)
		}
		return fmt.Errorf("%w: converting %s: %v", ErrConversionFailed, inPath, err)
	}
	return nil
}
