package validation

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestStepStatus_String(t *testing.T) {
	tests := []struct {
		status   StepStatus
		expected string
	}{
		{StepPending, "pending"},
		{StepRunning, "running"},
		{StepPassed, "passed"},
		{StepFailed, "failed"},
		{StepWarning, "warning"},
		{StepSkipped, "skipped"},
		{StepStatus(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.status.String(); got != tt.expected {
				t.Errorf("StepStatus(%d).String() = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestValidationSuite_Validate(t *testing.T) {
	errBad := errors.New("bad")

	tests := []struct {
		name        string
		checks      []Check
		failFast    bool
		wantSuccess bool
		wantSteps   int
		wantWarn    int
	}{
		{
			name:        "all passed",
			checks:      []Check{func() CheckResult { return Passed("ok") }, func() CheckResult { return Skipped("n/a") }},
			wantSuccess: true,
			wantSteps:   2,
		},
		{
			name:        "warnings do not fail",
			checks:      []Check{func() CheckResult { return Warning("meh", errBad) }},
			wantSuccess: true,
			wantSteps:   1,
			wantWarn:    1,
		},
		{
			name:        "failure runs remaining checks",
			checks:      []Check{func() CheckResult { return Failed("no", errBad) }, func() CheckResult { return Passed("ok") }},
			wantSuccess: false,
			wantSteps:   2,
		},
		{
			name:        "fail fast stops",
			checks:      []Check{func() CheckResult { return Failed("no", errBad) }, func() CheckResult { return Passed("ok") }},
			failFast:    true,
			wantSuccess: false,
			wantSteps:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			suite := NewValidationSuite("Test").WithOutput(&buf).WithFailFast(tt.failFast)
			for i, c := range tt.checks {
				suite.Add("check "+string(rune('A'+i)), c)
			}

			result := suite.Validate()
			if result.Success != tt.wantSuccess {
				t.Errorf("Success = %v, want %v", result.Success, tt.wantSuccess)
			}
			if result.TotalSteps != tt.wantSteps {
				t.Errorf("TotalSteps = %d, want %d", result.TotalSteps, tt.wantSteps)
			}
			if result.Warnings != tt.wantWarn {
				t.Errorf("Warnings = %d, want %d", result.Warnings, tt.wantWarn)
			}
			if !strings.Contains(buf.String(), "━━━ Test ━━━") {
				t.Errorf("header missing from output:\n%s", buf.String())
			}
		})
	}
}

func TestValidationSuite_Quiet(t *testing.T) {
	var buf bytes.Buffer
	NewValidationSuite("Quiet").
		WithOutput(&buf).
		WithShowProgress(false).
		Add("one", func() CheckResult { return Passed("ok") }).
		Validate()

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSuiteResult_Errors(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")
	result := SuiteResult{
		Steps: []ValidationStep{
			{Name: "Step1", Status: StepPassed},
			{Name: "Step2", Status: StepWarning, Error: errors.New("only a warning")},
			{Name: "Step3", Status: StepFailed, Error: errA},
			{Name: "Step4", Status: StepFailed, Error: errB},
		},
	}

	if errs := result.GetErrors(); len(errs) != 2 {
		t.Errorf("GetErrors() returned %d errors, expected 2", len(errs))
	}
	if err := result.GetFirstError(); err != errA {
		t.Errorf("GetFirstError() = %v, want %v", err, errA)
	}
	if err := (SuiteResult{}).GetFirstError(); err != nil {
		t.Errorf("GetFirstError() on empty result = %v", err)
	}
}

func TestSuiteResult_Summary(t *testing.T) {
	result := SuiteResult{
		Success:     false,
		TotalSteps:  5,
		PassedSteps: 3,
		FailedSteps: 1,
		Warnings:    1,
		Duration:    2000 * time.Millisecond,
	}

	summary := result.Summary()
	for _, want := range []string{"Failed", "3/5", "1 failed", "1 warning"} {
		if !strings.Contains(summary, want) {
			t.Errorf("Summary() = %q, missing %q", summary, want)
		}
	}
}
