// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package safepath confines derived output paths to a base directory and
// sanitizes untrusted display names into portable filenames. Every output
// path is confined before anything is written to it.
package safepath

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrTraversal indicates a derived path resolved outside its base directory.
var ErrTraversal = errors.New("path escapes base directory")

// maxNameBytes is the portable filename length limit, extension included.
const maxNameBytes = 255

// Confine joins segments onto baseDir and returns the resolved absolute path.
// It fails with ErrTraversal unless the result equals the resolved base or
// lies strictly inside it.
func Confine(baseDir string, segments ...string) (string, error) {
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("resolving base %s: %w", baseDir, err)
	}

	target := filepath.Join(append([]string{base}, segments...)...)

	if target != base && !strings.HasPrefix(target, base+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside %s", ErrTraversal, target, base)
	}
	return target, nil
}

// Sanitize strips directory components from name, replaces characters that
// are illegal in portable filenames with an underscore, drops non-printable
// runes, and truncates to 255 bytes while preserving the extension. The same
// input always yields the same output.
func Sanitize(name string) string {
	name = filepath.Base(name)

	name = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		}
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, name)

	if len(name) <= maxNameBytes {
		return name
	}

	ext := filepath.Ext(name)
	if len(ext) >= maxNameBytes {
		ext = ""
	}
	stem := strings.TrimSuffix(name, ext)

	keep := maxNameBytes - len(ext)
	if keep > len(stem) {
		keep = len(stem)
	}
	// Back off to a rune boundary so truncation never splits a character.
	for keep > 0 && keep < len(stem) && !utf8.RuneStart(stem[keep]) {
		keep--
	}
	return stem[:keep] + ext
}
