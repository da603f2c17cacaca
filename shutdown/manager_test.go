package shutdown

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"longsd/core"
	"longsd/logging"
)

func testLogger(t *testing.T) *logging.Logger {
	return logging.NewLoggerFromCore(zaptest.NewLogger(t).Core())
}

func TestManager_FirstSignalCancels(t *testing.T) {
	exitCode := -1
	m := NewManager(testLogger(t), WithExitFunc(func(code int) { exitCode = code }))

	if m.ExitCode() != core.ExitCodeSuccess {
		t.Errorf("ExitCode() before signal = %d", m.ExitCode())
	}

	m.handleSignal(syscall.SIGTERM)

	select {
	case <-m.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("context not cancelled by first signal")
	}
	if exitCode != -1 {
		t.Error("first signal forced exit")
	}
	if sig, ok := m.Signalled(); !ok || sig != syscall.SIGTERM {
		t.Errorf("Signalled() = %v, %v", sig, ok)
	}
	if m.ExitCode() != core.ExitCodeSIGTERM {
		t.Errorf("ExitCode() = %d, want %d", m.ExitCode(), core.ExitCodeSIGTERM)
	}
}

func TestManager_SecondSignalForcesExit(t *testing.T) {
	exitCode := -1
	m := NewManager(testLogger(t), WithExitFunc(func(code int) { exitCode = code }))

	m.handleSignal(os.Interrupt)
	m.handleSignal(syscall.SIGTERM)

	// the first signal decides the exit code
	if exitCode != core.ExitCodeSIGINT {
		t.Errorf("forced exit code = %d, want %d", exitCode, core.ExitCodeSIGINT)
	}
}

func TestManager_ShutdownRunsCleanupOnce(t *testing.T) {
	m := NewManager(testLogger(t), WithTimeout(time.Second))

	calls := 0
	m.Register("count", 1, func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("cleanup context has no deadline")
		}
		calls++
		return nil
	})

	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
	if err := m.Shutdown(); err != nil {
		t.Fatalf("second Shutdown() error: %v", err)
	}
	if calls != 1 {
		t.Errorf("cleanup ran %d times, want 1", calls)
	}
	if m.Context().Err() == nil {
		t.Error("context still live after Shutdown")
	}
}

func TestManager_ShutdownReportsErrors(t *testing.T) {
	m := NewManager(testLogger(t))
	m.Register("fails", 1, func(context.Context) error { return errors.New("disk full") })

	if err := m.Shutdown(); err == nil {
		t.Error("Shutdown() = nil, want error")
	}
}

func TestManager_StartAndShutdown(t *testing.T) {
	m := NewManager(testLogger(t))
	m.Start()
	m.Start()
	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
}
