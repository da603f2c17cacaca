package assembler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"longsd/document"
	"longsd/renderpool"
)

func TestAssemble(t *testing.T) {
	root := t.TempDir()
	doc := document.Resolve(document.Layout{Root: root}, "my story")
	results := []renderpool.Result{
		{Prompt: "A castle on a hill", ImagePath: filepath.Join(doc.SaveDir, "start-A_castle_on_a_hill-1.png")},
		{Prompt: "A *bold* dragon", ImagePath: filepath.Join(doc.SaveDir, "end-A_bold_dragon-2.png")},
	}

	out, err := New(nil).Assemble(doc, results)
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}

	if out.Markdown != filepath.Join(root, "documents", "my story.md") {
		t.Errorf("Markdown path = %q", out.Markdown)
	}
	if out.Figures != 2 {
		t.Errorf("Figures = %d, want 2", out.Figures)
	}

	md, err := os.ReadFile(out.Markdown)
	if err != nil {
		t.Fatal(err)
	}
	mdText := string(md)
	for _, want := range []string{
		"# my story\n",
		"![A castle on a hill](<../images/my-story/start-A_castle_on_a_hill-1.png>)",
		`*A \*bold\* dragon*`,
	} {
		if !strings.Contains(mdText, want) {
			t.Errorf("markdown missing %q:\n%s", want, mdText)
		}
	}
	if strings.Index(mdText, "castle") > strings.Index(mdText, "dragon") {
		t.Error("figures out of order")
	}

	page, err := os.ReadFile(out.HTML)
	if err != nil {
		t.Fatal(err)
	}
	htmlText := string(page)
	for _, want := range []string{
		"<title>my story</title>",
		`<img src="../images/my-story/start-A_castle_on_a_hill-1.png" alt="A castle on a hill">`,
		"<em>A *bold* dragon</em>",
	} {
		if !strings.Contains(htmlText, want) {
			t.Errorf("html missing %q:\n%s", want, htmlText)
		}
	}
}

func TestAssemble_NoResults(t *testing.T) {
	doc := document.Resolve(document.Layout{Root: t.TempDir()}, "empty")

	if _, err := New(nil).Assemble(doc, nil); !errors.Is(err, ErrNoResults) {
		t.Errorf("Assemble() error = %v, want ErrNoResults", err)
	}
	if _, err := os.Stat(doc.OutputDir); !os.IsNotExist(err) {
		t.Error("output directory created for an empty document")
	}
}

func TestImageLink(t *testing.T) {
	tests := []struct {
		dir, path, want string
	}{
		{"out", "out/a.png", "a.png"},
		{"out", "images/x y/a.png", "../images/x y/a.png"},
		{"out", "images/a<b>.png", "../images/a%3Cb%3E.png"},
	}
	for _, tt := range tests {
		if got := imageLink(tt.dir, tt.path); got != tt.want {
			t.Errorf("imageLink(%q, %q) = %q, want %q", tt.dir, tt.path, got, tt.want)
		}
	}
}
