package renderpool

import (
	"errors"
	"fmt"
	"time"

	"longsd/planner"
)

// Result is a rendered image and the prompt it illustrates.
type Result struct {
	Prompt    string
	ImagePath string
}

// Outcome is the fate of one work unit. Exactly one of Result.ImagePath and
// Err is set.
type Outcome struct {
	Unit     planner.WorkUnit
	Result   Result
	Err      error
	Duration time.Duration
	Worker   int // 1-based; 0 if the unit was never dispatched
}

// OK reports whether the unit produced an image.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Outcomes is index-aligned with the units passed to RenderAll.
type Outcomes []Outcome

// Results returns the successful results in unit order.
func (oc Outcomes) Results() []Result {
	results := make([]Result, 0, len(oc))
	for _, o := range oc {
		if o.OK() {
			results = append(results, o.Result)
		}
	}
	return results
}

// Failed counts units that did not produce an image.
func (oc Outcomes) Failed() int {
	n := 0
	for _, o := range oc {
		if !o.OK() {
			n++
		}
	}
	return n
}

// Err joins the per-unit errors, or returns nil if every unit succeeded.
func (oc Outcomes) Err() error {
	var errs []error
	for _, o := range oc {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s %q: %w", o.Unit.Section, o.Unit.Prompt, o.Err))
		}
	}
	return errors.Join(errs...)
}
