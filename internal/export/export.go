// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export fetches exported Drive content to local files.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// ErrExportFailed wraps any transport or write failure during export. A
// failed export may leave a partial file behind; callers must not use it.
var ErrExportFailed = errors.New("export failed")

// chunkSize is the copy granularity; progress is reported after each chunk.
const chunkSize = 32 * 1024

// Exporter obtains exported bytes for a remote resource in a given MIME type
// and writes them to destPath, reporting fractional progress along the way.
type Exporter interface {
	Export(ctx context.Context, fileID, mimeType, destPath string, progress func(float64)) error
}

// DriveExporter exports through the Drive files.export endpoint.
type DriveExporter struct {
	svc *drive.Service
}

// NewDriveExporter builds an exporter over the Drive API using the given
// token source. Extra options let tests point the service at a local server.
func NewDriveExporter(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*DriveExporter, error) {
	opts = append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating Drive service: %w", err)
	}
	return &DriveExporter{svc: svc}, nil
}

// Export downloads the exported resource to destPath through a temp file in
// the destination directory, renamed into place on success. Progress is a
// fraction of the response length when the server sends one, with a final
// 1.0 tick either way.
func (e *DriveExporter) Export(ctx context.Context, fileID, mimeType, destPath string, progress func(float64)) error {
	resp, err := e.svc.Files.Export(fileID, mimeType).Context(ctx).Download()
	if err != nil {
		return fmt.Errorf("%w: exporting %s as %s: %v", ErrExportFailed, fileID, mimeType, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: exporting %s: HTTP %d", ErrExportFailed, fileID, resp.StatusCode)
	}

	if err := writeChunked(resp.Body, resp.ContentLength, destPath, progress); err != nil {
		return fmt.Errorf("%w: writing export of %s: %v", ErrExportFailed, fileID, err)
	}
	return nil
}

// writeChunked copies src to destPath via a temp file, reporting fractional
// progress per chunk when total is known. The temp file is removed on any
// failure; destPath only appears once the copy completed.
func writeChunked(src io.Reader, total int64, destPath string, progress func(float64)) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	var written int64
	buf := make([]byte, chunkSize)
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, writeErr := tmpFile.Write(buf[:n]); writeErr != nil {
				tmpFile.Close()
				os.Remove(tmpPath)
				return fmt.Errorf("writing chunk: %w", writeErr)
			}
			written += int64(n)
			if progress != nil && total > 0 {
				progress(float64(written) / float64(total))
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("reading export stream: %w", readErr)
		}
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	if progress != nil {
		progress(1.0)
	}
	return nil
}
