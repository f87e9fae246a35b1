// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pointer resolves Drive pointer files (.gdoc, .gsheet) into
// canonical records. Pointer files are usually small JSON documents, but
// years of sync clients have produced files with trailing comments, legacy
// key names, and outright non-JSON encodings, so resolution runs an ordered
// chain of parsers and stops at the first one that recovers an identifier.
package pointer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/drive-migrate/pkg/types"
)

// ErrMalformed indicates no resource identifier could be recovered.
var ErrMalformed = errors.New("no Drive resource identifier found")

// payload mirrors the JSON body of a pointer file. "doc_id" is the primary
// key; "resourceid" is the legacy spelling written by older sync clients.
type payload struct {
	DocID      string `json:"doc_id"`
	ResourceID string `json:"resourceid"`
	URL        string `json:"url"`
}

// keyValuePattern finds a doc_id/resourceid key/value pair in raw text when
// the file is not parseable JSON.
var keyValuePattern = regexp.MustCompile(`(?:doc_id|resourceid)["']?\s*[:=]\s*["']?([A-Za-z0-9_-]+)`)

// queryIDPattern is the loosest fallback: an id= query-parameter token.
var queryIDPattern = regexp.MustCompile(`\bid=([A-Za-z0-9_-]+)`)

// urlPattern recovers a resource URL from non-JSON pointer text.
var urlPattern = regexp.MustCompile(`https?://[^\s"'<>]+`)

// strategies is the resolution chain, ordered from structured correctness to
// textual heuristics. The order is load-bearing: some pointer files are not
// valid JSON and only the later stages can read them.
var strategies = []func(data []byte) (id, url string, ok bool){
	parseJSON,
	parseCommentedJSON,
	matchKeyValue,
	matchQueryID,
}

// Resolve parses pointer file content into a PointerRecord. The kind and
// display name always come from the caller (extension and filename); content
// never overrides them, even when it claims a different kind.
func Resolve(data []byte, kind types.ResourceKind, name string) (types.PointerRecord, error) {
	for _, parse := range strategies {
		if id, url, ok := parse(data); ok {
			return types.PointerRecord{ID: id, URL: url, Name: name, Kind: kind}, nil
		}
	}
	return types.PointerRecord{}, fmt.Errorf("%w in %q pointer content", ErrMalformed, name)
}

// FromFile reads and resolves a pointer file, deriving the kind from the
// extension and the display name from the filename.
func FromFile(path string) (types.PointerRecord, error) {
	kind, ok := types.KindForExt(filepath.Ext(path))
	if !ok {
		return types.PointerRecord{}, fmt.Errorf("%w: %s has no recognized pointer extension", ErrMalformed, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.PointerRecord{}, fmt.Errorf("reading pointer file %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Resolve(data, kind, name)
}

func parseJSON(data []byte) (string, string, bool) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return "", "", false
	}
	id := p.DocID
	if id == "" {
		id = p.ResourceID
	}
	return id, p.URL, id != ""
}

// parseCommentedJSON retries JSON parsing after removing trailing //-comments
// from each line. Lines containing a URL substring are left alone so the
// scheme separator is never mistaken for a comment.
func parseCommentedJSON(data []byte) (string, string, bool) {
	return parseJSON([]byte(stripLineComments(string(data))))
}

func stripLineComments(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.Contains(line, "://") {
			continue
		}
		if idx := strings.Index(line, "//"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

func matchKeyValue(data []byte) (string, string, bool) {
	m := keyValuePattern.FindSubmatch(data)
	if m == nil {
		return "", "", false
	}
	return string(m[1]), matchURL(data), true
}

func matchQueryID(data []byte) (string, string, bool) {
	m := queryIDPattern.FindSubmatch(data)
	if m == nil {
		return "", "", false
	}
	return string(m[1]), matchURL(data), true
}

func matchURL(data []byte) string {
	return string(urlPattern.Find(data))
}
