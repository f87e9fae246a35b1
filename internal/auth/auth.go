// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package auth obtains and persists Drive credentials. The flow prefers the
// stored token, refreshes it in place when expired but refreshable, and falls
// back to the interactive installed-app consent flow. Nothing here is a
// process-wide singleton; callers inject a Provider where they need one.
package auth

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/pdiddy/drive-migrate/pkg/types"
)

// scopeDriveReadonly is the only scope the migration needs.
const scopeDriveReadonly = "https://www.googleapis.com/auth/drive.readonly"

// Provider supplies a valid access credential on demand.
type Provider interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// Flow implements Provider over an OAuth installed-app configuration and a
// persisted token store.
type Flow struct {
	cfg   *oauth2.Config
	store *TokenStore
	in    io.Reader
	out   io.Writer
}

// NewFlow builds a Flow from configuration. Explicit client ID and secret
// take precedence; otherwise the client credentials JSON file is read.
func NewFlow(cfg types.AuthConfig) (*Flow, error) {
	oc, err := clientConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Flow{
		cfg:   oc,
		store: NewTokenStore(cfg.TokenPath, os.Stderr),
		in:    os.Stdin,
		out:   os.Stderr,
	}, nil
}

func clientConfig(cfg types.AuthConfig) (*oauth2.Config, error) {
	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		return &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
			Scopes:       []string{scopeDriveReadonly},
		}, nil
	}

	data, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading client credentials %s (download OAuth client credentials from the Cloud Console, or pass --client-id/--client-secret): %w", cfg.CredentialsPath, err)
	}
	oc, err := google.ConfigFromJSON(data, scopeDriveReadonly)
	if err != nil {
		return nil, fmt.Errorf("parsing client credentials %s: %w", cfg.CredentialsPath, err)
	}
	return oc, nil
}

// Token returns a valid token: the stored one if still valid, a refreshed one
// persisted in place when possible, or the result of the interactive consent
// flow.
func (f *Flow) Token(ctx context.Context) (*oauth2.Token, error) {
	tok, err := f.store.Load()
	if err != nil {
		return nil, err
	}

	if tok != nil {
		if tok.Valid() {
			return tok, nil
		}
		if tok.RefreshToken != "" {
			fresh, refreshErr := f.cfg.TokenSource(ctx, tok).Token()
			if refreshErr == nil {
				if saveErr := f.store.Save(fresh); saveErr != nil {
					fmt.Fprintf(f.out, "warning: could not persist refreshed token: %v\n", saveErr)
				}
				return fresh, nil
			}
			fmt.Fprintf(f.out, "warning: token refresh failed, re-authenticating: %v\n", refreshErr)
		}
	}

	return f.authorize(ctx)
}

// TokenSource authenticates once and returns a self-refreshing source for
// long batch runs.
func (f *Flow) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	tok, err := f.Token(ctx)
	if err != nil {
		return nil, err
	}
	return f.cfg.TokenSource(ctx, tok), nil
}

// authorize runs the installed-app consent flow: print the consent URL, read
// the pasted authorization code, exchange it, persist the result.
func (f *Flow) authorize(ctx context.Context) (*oauth2.Token, error) {
	url := f.cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(f.out, "Open the following URL in a browser, authorize the application, then paste the code here:\n%s\n> ", url)

	code, err := bufio.NewReader(f.in).ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading authorization code: %w", err)
	}

	tok, err := f.cfg.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	if err := f.store.Save(tok); err != nil {
		return nil, err
	}
	return tok, nil
}
