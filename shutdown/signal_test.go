package shutdown

import (
	"os"
	"sync"
	"syscall"
	"testing"

	"longsd/core"
)

func TestSignalCounter_ForceCallback(t *testing.T) {
	var calls int
	counter := NewSignalCounter(2, func() { calls++ })

	if got := counter.Increment(); got != 1 {
		t.Errorf("first Increment() = %d, want 1", got)
	}
	if calls != 0 {
		t.Error("callback called on first signal")
	}

	counter.Increment()
	counter.Increment()
	if calls != 2 {
		t.Errorf("callback called %d times, want 2 (at and past threshold)", calls)
	}
	if counter.Count() != 3 {
		t.Errorf("Count() = %d, want 3", counter.Count())
	}
}

func TestSignalCounter_NilCallback(t *testing.T) {
	counter := NewSignalCounter(1, nil)
	counter.Increment()
	counter.Increment()
}

func TestSignalCounter_Concurrent(t *testing.T) {
	counter := NewSignalCounter(1000, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counter.Increment()
		}()
	}
	wg.Wait()

	if counter.Count() != 50 {
		t.Errorf("Count() = %d, want 50", counter.Count())
	}
}

func TestExitCodeForSignal(t *testing.T) {
	tests := []struct {
		sig  os.Signal
		want int
	}{
		{os.Interrupt, core.ExitCodeSIGINT},
		{syscall.SIGTERM, core.ExitCodeSIGTERM},
		{syscall.SIGHUP, core.ExitCodeError},
	}
	for _, tt := range tests {
		if got := ExitCodeForSignal(tt.sig); got != tt.want {
			t.Errorf("ExitCodeForSignal(%v) = %d, want %d", tt.sig, got, tt.want)
		}
	}
}
