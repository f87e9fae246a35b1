// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package auth

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/oauth2"
)

// tokenFileMode keeps the persisted token readable by the owner only.
const tokenFileMode = 0o600

// TokenStore persists OAuth tokens as JSON with owner-only permissions.
type TokenStore struct {
	path string
	warn io.Writer
}

// NewTokenStore returns a store writing to path. Permission warnings go to
// warn (typically stderr).
func NewTokenStore(path string, warn io.Writer) *TokenStore {
	return &TokenStore{path: path, warn: warn}
}

// Load reads the persisted token. A missing or unparseable file returns
// (nil, nil) so the caller re-authenticates. A token file readable by group
// or world is warned about and tightened back to owner-only before reading.
func (s *TokenStore) Load() (*oauth2.Token, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("checking token file %s: %w", s.path, err)
	}

	if info.Mode().Perm()&0o077 != 0 {
		fmt.Fprintf(s.warn, "warning: %s has overly permissive permissions, fixing\n", s.path)
		if err := os.Chmod(s.path, tokenFileMode); err != nil {
			return nil, fmt.Errorf("fixing permissions on %s: %w", s.path, err)
		}
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading token file %s: %w", s.path, err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		fmt.Fprintf(s.warn, "warning: discarding unparseable token file %s: %v\n", s.path, err)
		return nil, nil
	}
	return &tok, nil
}

// Save writes the token with owner-only permissions, tightening the mode on
// an existing file before overwriting it.
func (s *TokenStore) Save(tok *oauth2.Token) error {
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling token: %w", err)
	}

	if _, statErr := os.Stat(s.path); statErr == nil {
		if err := os.Chmod(s.path, tokenFileMode); err != nil {
			return fmt.Errorf("fixing permissions on %s: %w", s.path, err)
		}
	}
	if err := os.WriteFile(s.path, data, tokenFileMode); err != nil {
		return fmt.Errorf("writing token file %s: %w", s.path, err)
	}
	return nil
}
