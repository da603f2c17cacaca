package prompts

import (
	"fmt"
	"strings"
)

// suffixTemplate is appended to the source text; the trailing "1)" primes
// the model to continue an enumerated list.
const suffixTemplate = "\n\nRecommend five different detailed, logo-free, sign-free images to accompany the previous text that illustrate the %s of this text: 1)"

// BuildPayload returns the completion prompt for one section.
func BuildPayload(text string, section Section) string {
	return text + fmt.Sprintf(suffixTemplate, section)
}

// ParseCompletion splits an enumerated completion like
// "A castle 2) A dragon 3) Done." into clean prompts.
//
// Every item except the last ends with the next item's number and a space;
// those two bytes are dropped. ASCII punctuation is then stripped and empty
// items discarded.
func ParseCompletion(raw string) []string {
	items := strings.Split(strings.TrimSpace(raw), ")")

	prompts := []string{}
	for i, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if i < len(items)-1 {
			item = dropLastBytes(item, 2)
		}
		item = strings.TrimSpace(stripPunctuation(item))
		if item == "" {
			continue
		}
		prompts = append(prompts, item)
	}
	return prompts
}

func dropLastBytes(s string, n int) string {
	if len(s) <= n {
		return ""
	}
	// A multi-byte rune cut in half is dropped entirely.
	return strings.ToValidUTF8(s[:len(s)-n], "")
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if isASCIIPunct(r) {
			return -1
		}
		return r
	}, s)
}

func isASCIIPunct(r rune) bool {
	return (r >= '!' && r <= '/') ||
		(r >= ':' && r <= '@') ||
		(r >= '[' && r <= '`') ||
		(r >= '{' && r <= '~')
}
