// Package assembler turns rendered images and their prompts into a captioned
// document, written as Markdown and as HTML rendered with goldmark.
package assembler

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"go.uber.org/zap"

	"longsd/document"
	"longsd/logging"
	"longsd/renderpool"
)

// ErrNoResults is returned when there is nothing to put in a document.
var ErrNoResults = errors.New("assembler: no rendered images")

// Output names the files written for one document.
type Output struct {
	Markdown string
	HTML     string
	Figures  int
}

// Assembler writes documents/<stem>.md and documents/<stem>.html.
type Assembler struct {
	md     goldmark.Markdown
	logger *logging.Logger
}

// New returns an Assembler. A nil logger discards output.
func New(logger *logging.Logger) *Assembler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Assembler{
		md:     goldmark.New(),
		logger: logger.Named("assembler"),
	}
}

// Assemble writes one figure per result, in the order given, each captioned
// with its prompt. Image links are relative to the output directory.
func (a *Assembler) Assemble(doc document.Document, results []renderpool.Result) (Output, error) {
	if len(results) == 0 {
		return Output{}, ErrNoResults
	}

	if err := os.MkdirAll(doc.OutputDir, 0755); err != nil {
		return Output{}, fmt.Errorf("create output dir: %w", err)
	}

	markdown := a.Markdown(doc, results)

	var body bytes.Buffer
	if err := a.md.Convert([]byte(markdown), &body); err != nil {
		return Output{}, fmt.Errorf("render html: %w", err)
	}

	out := Output{
		Markdown: filepath.Join(doc.OutputDir, doc.Stem+".md"),
		HTML:     filepath.Join(doc.OutputDir, doc.Stem+".html"),
		Figures:  len(results),
	}
	if err := os.WriteFile(out.Markdown, []byte(markdown), 0644); err != nil {
		return Output{}, fmt.Errorf("write markdown: %w", err)
	}
	if err := os.WriteFile(out.HTML, htmlPage(doc.Stem, body.Bytes()), 0644); err != nil {
		return Output{}, fmt.Errorf("write html: %w", err)
	}

	a.logger.Info("Assembled document",
		logging.Document(doc.Name),
		zap.String("markdown", out.Markdown),
		zap.String("html", out.HTML),
		zap.Int("figures", out.Figures))
	return out, nil
}

// Markdown returns the document source without writing anything.
func (a *Assembler) Markdown(doc document.Document, results []renderpool.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(doc.Stem))
	for _, r := range results {
		caption := escapeMarkdown(collapseSpace(r.Prompt))
		fmt.Fprintf(&b, "![%s](<%s>)\n\n", caption, imageLink(doc.OutputDir, r.ImagePath))
		fmt.Fprintf(&b, "*%s*\n\n", caption)
	}
	return b.String()
}

// imageLink makes path relative to dir where possible and always uses
// forward slashes.
func imageLink(dir, path string) string {
	link := path
	if absDir, err := filepath.Abs(dir); err == nil {
		if absPath, err := filepath.Abs(path); err == nil {
			if rel, err := filepath.Rel(absDir, absPath); err == nil {
				link = rel
			}
		}
	}
	link = filepath.ToSlash(link)
	return strings.NewReplacer("<", "%3C", ">", "%3E", "\n", "").Replace(link)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`,
	"#", `\#`, "!", `\!`, "|", `\|`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func htmlPage(title string, body []byte) []byte {
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("<style>img{max-width:100%;display:block;margin:1em auto}p em{display:block;text-align:center}</style>\n")
	b.WriteString("</head>\n<body>\n")
	b.Write(body)
	b.WriteString("</body>\n</html>\n")
	return b.Bytes()
}
