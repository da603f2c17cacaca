package renderpool

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"longsd/planner"
	"longsd/prompts"
)

var (
	// suffixPattern matches what ImageFileName and writeImage put after the
	// slug: "-<unix>" and an optional "-N" collision counter.
	suffixPattern = regexp.MustCompile(`^-\d+(-\d+)?\.png$`)
	// captionPattern splits a name whose prompt is not cached any more.
	captionPattern = regexp.MustCompile(`^(.*)-\d{10,}(?:-\d+)?\.png$`)
)

// Collect returns every finished image in dir as a Result, section by
// section. Within a section, images follow the order of their prompts in sp;
// images whose prompt is no longer cached come last, captioned from their
// file name. Images of earlier runs are included, so the list describes the
// whole document rather than the latest render.
func Collect(lister planner.Lister, dir string, sp prompts.SectionPrompts) ([]Result, error) {
	var results []Result

	for _, section := range prompts.Sections {
		matches, err := lister.Glob(planner.SectionPattern(dir, section))
		if err != nil {
			return nil, fmt.Errorf("renderpool: list %s images: %w", section, err)
		}
		slices.Sort(matches)

		used := make([]bool, len(matches))
		for _, prompt := range sp[section] {
			for i, path := range matches {
				if !used[i] && matchesPrompt(filepath.Base(path), section, prompt) {
					used[i] = true
					results = append(results, Result{Prompt: prompt, ImagePath: path})
				}
			}
		}
		for i, path := range matches {
			if !used[i] {
				results = append(results, Result{
					Prompt:    captionFromName(filepath.Base(path), section),
					ImagePath: path,
				})
			}
		}
	}
	return results, nil
}

func matchesPrompt(name string, section prompts.Section, prompt string) bool {
	prefix := string(section) + "-" + Slug(prompt)
	rest, ok := strings.CutPrefix(name, prefix)
	return ok && suffixPattern.MatchString(rest)
}

func captionFromName(name string, section prompts.Section) string {
	name = strings.TrimPrefix(name, string(section)+"-")
	if m := captionPattern.FindStringSubmatch(name); m != nil {
		name = m[1]
	} else {
		name = strings.TrimSuffix(name, ".png")
	}
	return strings.ReplaceAll(name, "_", " ")
}
