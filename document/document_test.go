package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"longsd/core"
)

func TestResolve(t *testing.T) {
	layout := Layout{Root: "/work"}

	tests := []struct {
		name string
		want Document
	}{
		{
			name: "a",
			want: Document{
				Name:      "a",
				Stem:      "a",
				TextPath:  "/work/texts/a.txt",
				SaveDir:   "/work/images/a",
				CachePath: "/work/image_prompts/a.json",
				LogPath:   "/work/image_prompts/a-all.txt",
				OutputDir: "/work/documents",
			},
		},
		{
			name: "my story.txt",
			want: Document{
				Name:      "my story.txt",
				Stem:      "my story",
				TextPath:  "/work/texts/my story.txt",
				SaveDir:   "/work/images/my-story",
				CachePath: "/work/image_prompts/my story.json",
				LogPath:   "/work/image_prompts/my story-all.txt",
				OutputDir: "/work/documents",
			},
		},
		{
			name: "book.v2.pdf",
			want: Document{
				Name:      "book.v2.pdf",
				Stem:      "book",
				TextPath:  "/work/texts/book.v2.pdf",
				SaveDir:   "/work/images/book",
				CachePath: "/work/image_prompts/book.json",
				LogPath:   "/work/image_prompts/book-all.txt",
				OutputDir: "/work/documents",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(layout, tt.name); got != tt.want {
				t.Errorf("Resolve(%q) =\n%+v\nwant\n%+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestResolve_DefaultRoot(t *testing.T) {
	got := Resolve(Layout{}, "a")
	if got.TextPath != filepath.Join("texts", "a.txt") {
		t.Errorf("TextPath = %q, want texts/a.txt", got.TextPath)
	}
}

func TestPrepare(t *testing.T) {
	doc := Resolve(Layout{Root: t.TempDir()}, "two words")
	if err := doc.Prepare(); err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	if info, err := os.Stat(doc.SaveDir); err != nil || !info.IsDir() {
		t.Errorf("SaveDir %s not created: %v", doc.SaveDir, err)
	}
	// idempotent
	if err := doc.Prepare(); err != nil {
		t.Errorf("second Prepare() error: %v", err)
	}
}

func TestLoadText(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, TextsDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, TextsDir, "tale.txt"), []byte("Once upon a time."), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, TextsDir, "blank.txt"), []byte(" \n"), 0644); err != nil {
		t.Fatal(err)
	}

	layout := Layout{Root: root}

	text, err := Resolve(layout, "tale").LoadText()
	if err != nil {
		t.Fatalf("LoadText() error: %v", err)
	}
	if text != "Once upon a time." {
		t.Errorf("LoadText() = %q", text)
	}

	_, err = Resolve(layout, "missing").LoadText()
	if core.GetErrorCode(err) != core.ErrCodeTextNotFound {
		t.Errorf("missing text error code = %q, want %q", core.GetErrorCode(err), core.ErrCodeTextNotFound)
	}

	_, err = Resolve(layout, "blank").LoadText()
	if !errors.Is(err, ErrEmptyText) {
		t.Errorf("blank text error = %v, want ErrEmptyText", err)
	}
}

func TestLoadText_BadPDF(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, TextsDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, TextsDir, "scan.pdf"), []byte("not a pdf"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Resolve(Layout{Root: root}, "scan.pdf").LoadText(); err == nil {
		t.Error("LoadText() on a corrupt PDF returned nil error")
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens("Hello, world!"); got != 3 {
		t.Errorf("EstimateTokens() = %d, want 3", got)
	}
}
