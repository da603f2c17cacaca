package shutdown

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"longsd/core"
	"longsd/logging"
)

// Manager owns the run context and the cleanup registry.
//
// Usage:
//
//	m := shutdown.NewManager(logger)
//	m.Register("temp-images", 10, shutdown.CleanupTempImages(logger, "images"))
//	m.Start()
//	err := runner.Run(m.Context(), names)
//	m.Shutdown()
type Manager struct {
	logger  *logging.Logger
	timeout time.Duration

	mu       sync.Mutex
	started  bool
	done     bool
	received os.Signal

	ctx    context.Context
	cancel context.CancelFunc

	registry *Registry
	signals  *SignalCounter
	sigChan  chan os.Signal
	exit     func(code int)
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTimeout bounds the time given to cleanup functions. Default 30s.
func WithTimeout(timeout time.Duration) ManagerOption {
	return func(m *Manager) {
		m.timeout = timeout
	}
}

// WithExitFunc replaces os.Exit for the forced-exit path.
func WithExitFunc(exit func(code int)) ManagerOption {
	return func(m *Manager) {
		m.exit = exit
	}
}

// NewManager returns a Manager whose context is live until the first signal.
func NewManager(logger *logging.Logger, opts ...ManagerOption) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	m := &Manager{
		logger:   logger.Named("shutdown"),
		timeout:  30 * time.Second,
		ctx:      ctx,
		cancel:   cancel,
		registry: NewRegistry(),
		sigChan:  make(chan os.Signal, 2),
		exit:     os.Exit,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.signals = NewSignalCounter(2, func() {
		m.logger.Warn("Received second signal, exiting immediately")
		m.logger.Sync()
		m.exit(m.ExitCode())
	})
	return m
}

// Context is cancelled by the first SIGINT or SIGTERM.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Register adds a cleanup function; see Registry.Register.
func (m *Manager) Register(name string, priority int, fn core.ShutdownFunc) {
	m.registry.Register(name, priority, fn)
}

// Start listens for SIGINT and SIGTERM. Calling it again is a no-op.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return
	}
	m.started = true

	signal.Notify(m.sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		for sig := range m.sigChan {
			m.handleSignal(sig)
		}
	}()
}

func (m *Manager) handleSignal(sig os.Signal) {
	m.mu.Lock()
	if m.received == nil {
		m.received = sig
	}
	m.mu.Unlock()

	if m.signals.Increment() == 1 {
		m.logger.Info("Received shutdown signal, finishing in-flight renders",
			zap.String("signal", sig.String()))
		m.cancel()
	}
}

// Signalled reports the first signal received, if any.
func (m *Manager) Signalled() (os.Signal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.received, m.received != nil
}

// ExitCode is 130 or 143 after a signal, otherwise ExitCodeSuccess.
func (m *Manager) ExitCode() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exitCodeLocked()
}

func (m *Manager) exitCodeLocked() int {
	if m.received == nil {
		return core.ExitCodeSuccess
	}
	return ExitCodeForSignal(m.received)
}

// Shutdown stops signal delivery and runs the cleanup registry within the
// configured timeout. Only the first call does anything.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	if m.done {
		m.mu.Unlock()
		return nil
	}
	m.done = true
	started := m.started
	m.mu.Unlock()

	if started {
		signal.Stop(m.sigChan)
		close(m.sigChan)
	}
	m.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	m.logger.Debug("Running cleanup", zap.Strings("handlers", m.registry.Names()))
	errs := m.registry.Run(ctx)
	for _, err := range errs {
		m.logger.Error("Cleanup function failed", zap.Error(err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("shutdown had %d errors", len(errs))
	}
	return nil
}
