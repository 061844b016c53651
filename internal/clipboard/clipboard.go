// Package clipboard keeps an internal copy register and, when enabled,
// mirrors it to the system clipboard.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/rsql-tui/rsql/internal/event"
	"github.com/rsql-tui/rsql/internal/logger"
)

// WriteFunc writes text to the system clipboard.
type WriteFunc func(text string) error

// Option configures a Manager.
type Option func(*Manager)

// WithWriter replaces the system clipboard writer.
func WithWriter(w WriteFunc) Option {
	return func(m *Manager) {
		if w != nil {
			m.write = w
		}
	}
}

// Manager holds the last copied text.
type Manager struct {
	system   bool
	write    WriteFunc
	register string
}

// NewManager creates a clipboard manager. When system is false only the
// internal register is used.
func NewManager(system bool, opts ...Option) *Manager {
	m := &Manager{system: system, write: clipboard.WriteAll}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Copy stores text in the register and, if enabled, the system clipboard.
func (m *Manager) Copy(text string) error {
	m.register = text
	if !m.system {
		return nil
	}
	if err := m.write(text); err != nil {
		return fmt.Errorf("system clipboard write: %w", err)
	}
	logger.DebugTagf("clipboard", "Copied %d bytes to system clipboard", len(text))
	return nil
}

// Contents returns the last copied text.
func (m *Manager) Contents() string {
	return m.register
}

// Subscribe copies the buffer on AppQuit.
func (m *Manager) Subscribe(em *event.Manager) {
	em.Subscribe(event.TypeAppQuit, m.handleQuit)
}

func (m *Manager) handleQuit(e event.Event) bool {
	data, ok := e.Data.(event.AppQuitData)
	if !ok || data.Text == "" {
		return false
	}
	if err := m.Copy(data.Text); err != nil {
		logger.Warnf("Clipboard: %v", err)
	}
	return false
}
