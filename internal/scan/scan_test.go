// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/drive-migrate/pkg/types"
)

// writeTree creates a directory tree with pointer and non-pointer files.
func writeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := []string{
		"a.gdoc",
		"b.gsheet",
		"notes.txt",
		"sub/c.gdoc",
		"sub/deep/d.gsheet",
		"sub/readme.md",
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestFind(t *testing.T) {
	root := writeTree(t)

	tests := []struct {
		name   string
		filter types.KindFilter
		want   []string
	}{
		{
			name: "no filter finds both kinds recursively",
			want: []string{"a.gdoc", "b.gsheet", "sub/c.gdoc", "sub/deep/d.gsheet"},
		},
		{
			name:   "docs only",
			filter: types.KindFilter{DocsOnly: true},
			want:   []string{"a.gdoc", "sub/c.gdoc"},
		},
		{
			name:   "sheets only",
			filter: types.KindFilter{SheetsOnly: true},
			want:   []string{"b.gsheet", "sub/deep/d.gsheet"},
		},
		{
			name:   "both flags find both kinds",
			filter: types.KindFilter{DocsOnly: true, SheetsOnly: true},
			want:   []string{"a.gdoc", "b.gsheet", "sub/c.gdoc", "sub/deep/d.gsheet"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(root, tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("found %d files %v, want %d", len(got), got, len(tt.want))
			}
			for i, rel := range tt.want {
				want := filepath.Join(root, filepath.FromSlash(rel))
				if got[i] != want {
					t.Errorf("paths[%d] = %q, want %q", i, got[i], want)
				}
			}
		})
	}
}

func TestFindIsRestartable(t *testing.T) {
	root := writeTree(t)

	first, err := Find(root, types.KindFilter{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Find(root, types.KindFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("walks differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("walk order differs at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestFindMissingRoot(t *testing.T) {
	if _, err := Find(filepath.Join(t.TempDir(), "absent"), types.KindFilter{}); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestCap(t *testing.T) {
	paths := []string{"a", "b", "c"}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero means no cap", 0, 3},
		{"negative means no cap", -1, 3},
		{"cap below length truncates", 2, 2},
		{"cap equal to length keeps all", 3, 3},
		{"cap above length keeps all", 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cap(paths, tt.limit)
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			// Truncation keeps the prefix in discovery order.
			for i := range got {
				if got[i] != paths[i] {
					t.Errorf("Cap changed ordering at %d", i)
				}
			}
		})
	}
}
