// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads OAuth client credentials from a directory of
// plain-text files. Each file holds one secret: the filename is the key and
// the trimmed contents are the value.
//
// Supported key files: google-client-id, google-client-secret.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Keys recognized by the migrate command.
const (
	KeyClientID     = "google-client-id"
	KeyClientSecret = "google-client-secret"
)

// Load reads every regular file in dir into a map of filename to trimmed
// contents. A missing directory yields an empty map, not an error; dotfiles,
// subdirectories, and empty values are skipped; an unreadable file produces a
// stderr warning and is skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	loaded := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			loaded[name] = value
		}
	}

	return loaded, nil
}
