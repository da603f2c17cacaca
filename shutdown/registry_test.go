package shutdown

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestRegistry_RunOrder(t *testing.T) {
	r := NewRegistry()
	var order []string
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			order = append(order, name)
			return nil
		}
	}

	r.Register("logger", 90, record("logger"))
	r.Register("temp-a", 10, record("temp-a"))
	r.Register("temp-b", 10, record("temp-b"))

	wantOrder := []string{"temp-a", "temp-b", "logger"}
	if got := r.Names(); !reflect.DeepEqual(got, wantOrder) {
		t.Errorf("Names() = %v, want %v", got, wantOrder)
	}

	if errs := r.Run(context.Background()); len(errs) != 0 {
		t.Fatalf("Run() errors: %v", errs)
	}
	if !reflect.DeepEqual(order, wantOrder) {
		t.Errorf("run order = %v, want %v", order, wantOrder)
	}
}

func TestRegistry_CollectsErrorsAndRunsOnce(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	calls := 0

	r.Register("fails", 1, func(context.Context) error { calls++; return boom })
	r.Register("ok", 2, func(context.Context) error { calls++; return nil })

	errs := r.Run(context.Background())
	if len(errs) != 1 || !errors.Is(errs[0], boom) {
		t.Errorf("Run() errors = %v, want [boom]", errs)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (failure must not stop later handlers)", calls)
	}

	r.Register("late", 0, func(context.Context) error { calls++; return nil })
	if errs := r.Run(context.Background()); errs != nil {
		t.Errorf("second Run() = %v, want nil", errs)
	}
	if calls != 2 {
		t.Errorf("handlers ran again after Run: calls = %d", calls)
	}
}
