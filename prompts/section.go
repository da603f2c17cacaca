package prompts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Section is one narrative third of a document.
type Section string

const (
	SectionStart  Section = "start"
	SectionMiddle Section = "middle"
	SectionEnd    Section = "end"
)

// Sections lists every section in document order.
var Sections = []Section{SectionStart, SectionMiddle, SectionEnd}

// Valid reports whether s is one of Sections.
func (s Section) Valid() bool {
	for _, known := range Sections {
		if s == known {
			return true
		}
	}
	return false
}

// SectionPrompts maps each section to its image prompts. Values built with
// NewSectionPrompts or decoded from JSON always carry exactly the three
// section keys.
type SectionPrompts map[Section][]string

// NewSectionPrompts returns a set with an empty list for every section.
func NewSectionPrompts() SectionPrompts {
	sp := make(SectionPrompts, len(Sections))
	for _, s := range Sections {
		sp[s] = []string{}
	}
	return sp
}

// Count returns the total number of prompts across sections.
func (sp SectionPrompts) Count() int {
	n := 0
	for _, s := range Sections {
		n += len(sp[s])
	}
	return n
}

// MarshalJSON writes the sections in document order. Missing sections are
// written as empty lists, so the key set is stable on disk.
func (sp SectionPrompts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range Sections {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(string(s))
		buf.Write(key)
		buf.WriteByte(':')

		list := sp[s]
		if list == nil {
			list = []string{}
		}
		val, err := json.Marshal(list)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON rejects unknown section keys and blank prompts, and fills
// absent sections with empty lists.
func (sp *SectionPrompts) UnmarshalJSON(data []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := NewSectionPrompts()
	for key, list := range raw {
		s := Section(key)
		if !s.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownSection, key)
		}
		for i, prompt := range list {
			if strings.TrimSpace(prompt) == "" {
				return fmt.Errorf("%w: %s[%d]", ErrEmptyPrompt, key, i)
			}
		}
		if list != nil {
			out[s] = list
		}
	}
	*sp = out
	return nil
}

// Encode returns the on-disk form: a 4-space indented JSON object.
func (sp SectionPrompts) Encode() ([]byte, error) {
	return json.MarshalIndent(sp, "", "    ")
}
