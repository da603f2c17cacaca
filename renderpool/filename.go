package renderpool

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"longsd/prompts"
)

const (
	// SlugMaxRunes is how much of a prompt goes into an image file name.
	SlugMaxRunes = 100
	// slugMaxBytes keeps names under common 255-byte file name limits even
	// for multi-byte prompts.
	slugMaxBytes = 200
	// maxCollisions bounds the "-N" suffixes tried for a taken name.
	maxCollisions = 1000
)

// Slug turns a prompt into a file-name fragment: the first SlugMaxRunes
// characters, whitespace runs collapsed to "_", path separators and control
// characters replaced by "-".
func Slug(prompt string) string {
	var b strings.Builder
	runes := 0
	inSpace := false
	for _, r := range prompt {
		if runes == SlugMaxRunes {
			break
		}
		runes++

		switch {
		case unicode.IsSpace(r):
			if !inSpace {
				b.WriteByte('_')
			}
			inSpace = true
			continue
		case r == '/' || r == '\\' || r == 0 || unicode.IsControl(r):
			r = '-'
		}
		inSpace = false

		if b.Len()+utf8.RuneLen(r) > slugMaxBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ImageFileName returns "<section>-<slug>-<unix>.png".
func ImageFileName(section prompts.Section, prompt string, unix int64) string {
	return fmt.Sprintf("%s-%s-%d.png", section, Slug(prompt), unix)
}

// writeImage stores data as dir/name without ever exposing a partial file
// under a name that matches "<section>-*.png". Data goes to a dot-prefixed
// temporary file first and is then linked into place; a taken name gets a
// "-N" suffix instead of being overwritten.
func writeImage(dir, name string, data []byte) (string, error) {
	stem := strings.TrimSuffix(name, ".png")

	tmp, err := os.CreateTemp(dir, "."+stem+".*.png.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteImage, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %v", ErrWriteImage, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %v", ErrWriteImage, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteImage, err)
	}

	for i := 0; i < maxCollisions; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s-%d.png", stem, i)
		}
		final := filepath.Join(dir, candidate)

		err := os.Link(tmpPath, final)
		if err == nil {
			return final, nil
		}
		if os.IsExist(err) {
			continue
		}

		// Filesystems without hard links: fall back to a checked rename.
		if _, statErr := os.Lstat(final); statErr == nil {
			continue
		}
		if err := os.Rename(tmpPath, final); err != nil {
			return "", fmt.Errorf("%w: %v", ErrWriteImage, err)
		}
		return final, nil
	}
	return "", fmt.Errorf("%w: %d names taken for %s", ErrWriteImage, maxCollisions, name)
}
