package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"longsd/core"
)

// ErrEmptyText is returned when a source file holds no text.
var ErrEmptyText = errors.New("document: source text is empty")

// LoadText reads the document's source. PDF files are converted to plain
// text; any other extension is read as UTF-8 text. A missing file is a
// TEXT_NOT_FOUND ConfigError.
func (d Document) LoadText() (string, error) {
	info, err := os.Stat(d.TextPath)
	if err != nil {
		return "", core.ErrTextNotFound(d.TextPath, err)
	}
	if info.IsDir() {
		return "", core.ErrTextNotFound(d.TextPath, fmt.Errorf("%s is a directory", d.TextPath))
	}

	var text string
	switch strings.ToLower(filepath.Ext(d.TextPath)) {
	case ".pdf":
		text, err = ExtractPDFText(d.TextPath)
	default:
		var data []byte
		data, err = os.ReadFile(d.TextPath)
		text = string(data)
	}
	if err != nil {
		return "", fmt.Errorf("document: read %s: %w", d.TextPath, err)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyText, d.TextPath)
	}
	return text, nil
}

// EstimateTokens gives a rough token count at four bytes per token.
func EstimateTokens(text string) int {
	return len(text) / 4
}
