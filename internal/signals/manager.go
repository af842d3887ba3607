// Package signals cancels in-flight dracal-usb-get runs on SIGINT or SIGTERM.
package signals

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Manager owns the root context of the CLI. The context is canceled on the first
// SIGINT/SIGTERM or on an explicit Shutdown, which kills any running utility.
type Manager struct {
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once

	mu         sync.RWMutex
	isShutdown bool
	exitCode   int

	sigChan chan os.Signal
}

var (
	globalManager *Manager
	initOnce      sync.Once
)

// New creates a manager and starts listening for signals.
func New() *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		ctx:     ctx,
		cancel:  cancel,
		sigChan: make(chan os.Signal, 1),
	}
	signal.Notify(m.sigChan, os.Interrupt, syscall.SIGTERM)
	go m.wait()
	return m
}

// GetGlobalManager returns the process-wide manager, creating it on first use.
func GetGlobalManager() *Manager {
	initOnce.Do(func() {
		globalManager = New()
	})
	return globalManager
}

// Context is canceled when shutdown starts.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// IsShutdown reports whether shutdown has started.
func (m *Manager) IsShutdown() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isShutdown
}

// ExitCode is 130 after SIGINT, 143 after SIGTERM, or the code given to Shutdown.
func (m *Manager) ExitCode() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.exitCode
}

// Shutdown cancels the context. Only the first call has an effect.
func (m *Manager) Shutdown(exitCode int) {
	m.once.Do(func() {
		m.mu.Lock()
		m.isShutdown = true
		m.exitCode = exitCode
		m.mu.Unlock()
		m.cancel()
	})
}

// ExitCodeFor maps a signal to the conventional 128+n exit code.
func ExitCodeFor(sig os.Signal) int {
	switch sig {
	case os.Interrupt:
		return 130
	case syscall.SIGTERM:
		return 143
	}
	return 1
}

func (m *Manager) wait() {
	select {
	case sig := <-m.sigChan:
		signal.Stop(m.sigChan)
		m.Shutdown(ExitCodeFor(sig))
	case <-m.ctx.Done():
		signal.Stop(m.sigChan)
	}
}
