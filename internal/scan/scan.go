// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan discovers Drive pointer files under a directory tree.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/pdiddy/drive-migrate/pkg/types"
)

// Find walks root recursively and returns the pointer files whose kind passes
// the filter. Each call performs a fresh walk; ordering is the walk order of
// the filesystem and is not otherwise normalized.
func Find(root string, filter types.KindFilter) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		kind, ok := types.KindForExt(filepath.Ext(path))
		if !ok || !filter.Match(kind) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return paths, nil
}

// Cap truncates paths to the first limit entries. A non-positive limit means
// no cap. Truncation, not sampling: the batch processes a prefix of the
// discovery order.
func Cap(paths []string, limit int) []string {
	if limit > 0 && limit < len(paths) {
		return paths[:limit]
	}
	return paths
}
