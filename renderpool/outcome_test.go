package renderpool

import (
	"errors"
	"testing"

	"longsd/planner"
	"longsd/prompts"
)

func TestOutcomes(t *testing.T) {
	errBoom := errors.New("boom")
	oc := Outcomes{
		{Unit: planner.WorkUnit{Prompt: "a", Section: prompts.SectionStart}, Result: Result{Prompt: "a", ImagePath: "a.png"}},
		{Unit: planner.WorkUnit{Prompt: "b", Section: prompts.SectionStart}, Err: errBoom},
		{Unit: planner.WorkUnit{Prompt: "c", Section: prompts.SectionEnd}, Result: Result{Prompt: "c", ImagePath: "c.png"}},
	}

	results := oc.Results()
	if len(results) != 2 || results[0].Prompt != "a" || results[1].Prompt != "c" {
		t.Errorf("Results() = %+v", results)
	}
	if oc.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", oc.Failed())
	}
	if err := oc.Err(); !errors.Is(err, errBoom) {
		t.Errorf("Err() = %v, want boom", err)
	}

	if err := oc[:1].Err(); err != nil {
		t.Errorf("Err() on all-successful outcomes = %v", err)
	}
	if got := Outcomes(nil).Results(); got == nil || len(got) != 0 {
		t.Errorf("Results() on nil = %#v, want empty slice", got)
	}
}
