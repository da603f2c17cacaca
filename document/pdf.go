package document

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pageSeparator joins the text of consecutive pages.
const pageSeparator = "\n\n"

// ExtractPDFText returns the plain text of every page, skipping pages with
// no content. A page that fails to decode aborts the extraction.
func ExtractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if b.Len() > 0 {
			b.WriteString(pageSeparator)
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
