// Package planner computes the residual render work for a document from
// what is already on disk.
package planner

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"longsd/logging"
	"longsd/prompts"
)

// CompleteThreshold is the number of images that marks a section as done.
const CompleteThreshold = 5

// WorkUnit is one prompt to render into OutputDir.
type WorkUnit struct {
	Prompt    string
	Section   prompts.Section
	OutputDir string
}

// Lister matches file names against a glob pattern.
type Lister interface {
	Glob(pattern string) ([]string, error)
}

// OSLister lists the real filesystem.
type OSLister struct{}

// Glob implements Lister with filepath.Glob.
func (OSLister) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// SectionPattern is the glob of finished images for section in dir.
// Temporary files start with a dot and never match.
func SectionPattern(dir string, section prompts.Section) string {
	return filepath.Join(escapeGlob(dir), string(section)+"-*.png")
}

// IsSectionComplete reports whether dir already holds at least
// CompleteThreshold images for section.
func IsSectionComplete(lister Lister, dir string, section prompts.Section) (bool, error) {
	matches, err := lister.Glob(SectionPattern(dir, section))
	if err != nil {
		return false, fmt.Errorf("planner: list %s images: %w", section, err)
	}
	return len(matches) >= CompleteThreshold, nil
}

// PlanResult is the work left for one document.
type PlanResult struct {
	Units     []WorkUnit
	Completed []prompts.Section // sections skipped because they are done
}

// Planner turns cached prompts into work units.
type Planner struct {
	lister Lister
	logger *logging.Logger
}

// New returns a Planner over lister. Nil arguments select OSLister and a no-op logger.
func New(lister Lister, logger *logging.Logger) *Planner {
	if lister == nil {
		lister = OSLister{}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Planner{lister: lister, logger: logger.Named("planner")}
}

// Plan returns one unit per prompt of every incomplete section, ordered by
// section then prompt. Completed sections contribute nothing.
func (p *Planner) Plan(sp prompts.SectionPrompts, dir string) (PlanResult, error) {
	var result PlanResult

	for _, section := range prompts.Sections {
		done, err := IsSectionComplete(p.lister, dir, section)
		if err != nil {
			return PlanResult{}, err
		}
		if done {
			p.logger.Debug("Section already rendered", logging.Section(string(section)))
			result.Completed = append(result.Completed, section)
			continue
		}

		for _, prompt := range sp[section] {
			result.Units = append(result.Units, WorkUnit{
				Prompt:    prompt,
				Section:   section,
				OutputDir: dir,
			})
		}
	}

	p.logger.Debug("Planned work units",
		zap.Int("units", len(result.Units)),
		zap.Int("completed_sections", len(result.Completed)))
	return result, nil
}

// escapeGlob quotes glob metacharacters so a directory name like
// "images/[draft]" is matched literally. Windows patterns have no escape
// character and are returned unchanged.
func escapeGlob(s string) string {
	if filepath.Separator == '\\' {
		return s
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
