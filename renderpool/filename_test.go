package renderpool

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"longsd/prompts"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"A castle", "A_castle"},
		{"A  castle\t\non a hill", "A_castle_on_a_hill"},
		{"up/down\\left", "up-down-left"},
		{"bell\x07ring", "bell-ring"},
		{strings.Repeat("a", 150), strings.Repeat("a", SlugMaxRunes)},
		{"Café au lait", "Café_au_lait"},
	}

	for _, tt := range tests {
		if got := Slug(tt.prompt); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.prompt, got, tt.want)
		}
	}
}

func TestImageFileName_Bounded(t *testing.T) {
	inputs := []string{
		"short",
		strings.Repeat("word ", 200),
		strings.Repeat("漢", 300),
	}
	for _, p := range inputs {
		name := ImageFileName(prompts.SectionMiddle, p, 1700000000)
		if len(name) > 255 {
			t.Errorf("file name is %d bytes, exceeds 255", len(name))
		}
		if !utf8.ValidString(name) {
			t.Errorf("file name %q is not valid UTF-8", name)
		}
		if !strings.HasPrefix(name, "middle-") || !strings.HasSuffix(name, "-1700000000.png") {
			t.Errorf("file name %q has wrong shape", name)
		}
		if strings.ContainsAny(name, "/\\") {
			t.Errorf("file name %q contains a path separator", name)
		}
		if ok, _ := filepath.Match("middle-*.png", name); !ok {
			t.Errorf("file name %q does not match the section glob", name)
		}
	}
}

func TestWriteImage_Collision(t *testing.T) {
	dir := t.TempDir()
	name := "start-A_castle-1700000000.png"

	first, err := writeImage(dir, name, []byte("one"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := writeImage(dir, name, []byte("two"))
	if err != nil {
		t.Fatal(err)
	}

	if first != filepath.Join(dir, name) {
		t.Errorf("first path = %q", first)
	}
	if second != filepath.Join(dir, "start-A_castle-1700000000-1.png") {
		t.Errorf("second path = %q", second)
	}

	data, _ := os.ReadFile(first)
	if string(data) != "one" {
		t.Error("first image was overwritten")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("directory holds %d entries, want 2 (no temp files)", len(entries))
	}
}

func TestWriteImage_MissingDir(t *testing.T) {
	_, err := writeImage(filepath.Join(t.TempDir(), "absent"), "start-x-1.png", []byte("x"))
	if !errors.Is(err, ErrWriteImage) {
		t.Errorf("writeImage() error = %v, want ErrWriteImage", err)
	}
}
