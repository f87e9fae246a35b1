// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package safepath

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"unicode"
)

func TestConfine(t *testing.T) {
	base := t.TempDir()

	tests := []struct {
		name     string
		segments []string
		want     string
		wantErr  bool
	}{
		{
			name:     "simple child",
			segments: []string{"notes.md"},
			want:     filepath.Join(base, "notes.md"),
		},
		{
			name:     "nested child",
			segments: []string{"intermediates", "notes.docx"},
			want:     filepath.Join(base, "intermediates", "notes.docx"),
		},
		{
			name:     "no segments resolves to base",
			segments: nil,
			want:     base,
		},
		{
			name:     "dot-dot escape rejected",
			segments: []string{"..", "evil.md"},
			wantErr:  true,
		},
		{
			name:     "deep escape rejected",
			segments: []string{"sub", "..", "..", "..", "etc", "passwd"},
			wantErr:  true,
		},
		{
			name:     "dot-dot that stays inside is allowed",
			segments: []string{"sub", "..", "notes.md"},
			want:     filepath.Join(base, "notes.md"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Confine(base, tt.segments...)
			if tt.wantErr {
				if !errors.Is(err, ErrTraversal) {
					t.Fatalf("error = %v, want ErrTraversal", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Confine() = %q, want %q", got, tt.want)
			}
			if !filepath.IsAbs(got) {
				t.Errorf("Confine() = %q, want absolute path", got)
			}
		})
	}
}

func TestConfineRelativeBase(t *testing.T) {
	got, err := Confine(".", "out.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("Confine with relative base = %q, want absolute", got)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name untouched", "Quarterly Report.md", "Quarterly Report.md"},
		{"reserved characters replaced", `a<b>c:d"e|f?g*h`, "a_b_c_d_e_f_g_h"},
		{"slashes stripped as directories", "../../etc/passwd", "passwd"},
		{"backslash replaced", `notes\evil`, "notes_evil"},
		{"non-printables removed", "no\x00tes\x1b.md", "notes.md"},
		{"empty stays empty", "", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeDeterministic(t *testing.T) {
	in := `report<2024>:draft?.md`
	if Sanitize(in) != Sanitize(in) {
		t.Error("Sanitize is not deterministic")
	}
}

func TestSanitizeTruncatesPreservingExtension(t *testing.T) {
	long := strings.Repeat("a", 300) + ".md"
	got := Sanitize(long)

	if len(got) > maxNameBytes {
		t.Errorf("len = %d, want <= %d", len(got), maxNameBytes)
	}
	if !strings.HasSuffix(got, ".md") {
		t.Errorf("extension not preserved: %q", got)
	}
}

func TestSanitizeTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("ü", 200) + ".md" // 400 bytes of stem
	got := Sanitize(long)

	if len(got) > maxNameBytes {
		t.Errorf("len = %d, want <= %d", len(got), maxNameBytes)
	}
	for _, r := range got {
		if r == unicode.ReplacementChar {
			t.Fatalf("truncation split a rune: %q", got)
		}
	}
}

func TestSanitizeOutputIsClean(t *testing.T) {
	inputs := []string{
		`x<>:"/\|?*y`,
		"tab\tname",
		strings.Repeat("long", 100) + ".gsheet",
		"normal-name.csv",
	}
	for _, in := range inputs {
		got := Sanitize(in)
		if strings.ContainsAny(got, `<>:"/\|?*`) {
			t.Errorf("Sanitize(%q) = %q still contains reserved characters", in, got)
		}
		for _, r := range got {
			if !unicode.IsPrint(r) {
				t.Errorf("Sanitize(%q) = %q contains non-printable rune %U", in, got, r)
			}
		}
		if len(got) > maxNameBytes {
			t.Errorf("Sanitize(%q) exceeds %d bytes", in, maxNameBytes)
		}
	}
}
