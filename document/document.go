// Package document resolves a document name given on the command line to
// its files under the working layout and loads its source text.
//
// Layout, relative to Layout.Root:
//
//	texts/<name>.txt | texts/<name>     source text (.txt or .pdf)
//	image_prompts/<stem>.json           prompt cache
//	image_prompts/<stem>-all.txt        append-only prompt history
//	images/<stem with hyphens>/         rendered images
//	documents/<stem>.md, <stem>.html    assembled output
package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Directory names under the layout root
const (
	TextsDir     = "texts"
	PromptsDir   = "image_prompts"
	ImagesDir    = "images"
	DocumentsDir = "documents"
)

// Layout anchors every path of a run at Root.
type Layout struct {
	Root string
}

// Document is one input text and the paths derived from its name.
// It does not change during a run.
type Document struct {
	Name      string // as given by the user
	Stem      string // name up to the first dot
	TextPath  string
	SaveDir   string // image output directory
	CachePath string // image_prompts/<stem>.json
	LogPath   string // image_prompts/<stem>-all.txt
	OutputDir string // documents/
}

// Resolve derives a Document from name. A name containing a dot is used as
// the file name verbatim; otherwise ".txt" is appended.
func Resolve(layout Layout, name string) Document {
	root := layout.Root
	if root == "" {
		root = "."
	}

	stem := Stem(name)
	textFile := name
	if !strings.Contains(name, ".") {
		textFile = name + ".txt"
	}

	return Document{
		Name:      name,
		Stem:      stem,
		TextPath:  filepath.Join(root, TextsDir, textFile),
		SaveDir:   filepath.Join(root, ImagesDir, strings.ReplaceAll(stem, " ", "-")),
		CachePath: filepath.Join(root, PromptsDir, stem+".json"),
		LogPath:   filepath.Join(root, PromptsDir, stem+"-all.txt"),
		OutputDir: filepath.Join(root, DocumentsDir),
	}
}

// Stem returns name up to its first dot.
func Stem(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// Prepare creates the image output directory.
func (d Document) Prepare() error {
	if err := os.MkdirAll(d.SaveDir, 0755); err != nil {
		return fmt.Errorf("document: create %s: %w", d.SaveDir, err)
	}
	return nil
}
