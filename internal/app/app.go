// internal/app/app.go
package app

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rsql-tui/rsql/internal/clipboard"
	"github.com/rsql-tui/rsql/internal/config"
	"github.com/rsql-tui/rsql/internal/core"
	"github.com/rsql-tui/rsql/internal/core/history"
	"github.com/rsql-tui/rsql/internal/core/viewport"
	"github.com/rsql-tui/rsql/internal/event"
	"github.com/rsql-tui/rsql/internal/input"
	"github.com/rsql-tui/rsql/internal/logger"
	"github.com/rsql-tui/rsql/internal/session"
	"github.com/rsql-tui/rsql/internal/statusbar"
	"github.com/rsql-tui/rsql/internal/tui"
)

// App wires the terminal, the editor and the collaborators around them.
type App struct {
	tuiManager   *tui.TUI
	editor       *core.Editor
	eventManager *event.Manager
	clipboard    *clipboard.Manager
	statusBar    *statusbar.StatusBar
	session      *session.Session

	historyOpts   []history.Option
	highlightLine bool
}

// Option configures an App.
type Option func(*App)

// WithSession attaches the connected data-source session. It is closed when Run returns.
func WithSession(s *session.Session) Option {
	return func(a *App) {
		a.session = s
	}
}

// WithClipboard replaces the clipboard built from config.
func WithClipboard(c *clipboard.Manager) Option {
	return func(a *App) {
		if c != nil {
			a.clipboard = c
		}
	}
}

// WithHistoryOptions appends options to the history manager built from config.
func WithHistoryOptions(opts ...history.Option) Option {
	return func(a *App) {
		a.historyOpts = append(a.historyOpts, opts...)
	}
}

// New builds the application around an initialized TUI.
func New(cfg *config.Config, t *tui.TUI, opts ...Option) *App {
	a := &App{
		tuiManager:   t,
		eventManager: event.NewManager(),
		clipboard:    clipboard.NewManager(cfg.Editor.SystemClipboard),
		statusBar:    statusbar.New(statusbar.DefaultConfig()),

		highlightLine: cfg.Editor.HighlightLine,
	}
	for _, opt := range opts {
		opt(a)
	}

	hist := history.NewManager(append([]history.Option{
		history.WithWindow(cfg.Editor.CoalesceWindow()),
		history.WithLimit(cfg.Editor.HistoryLimit),
	}, a.historyOpts...)...)

	a.editor = core.NewEditor(
		core.WithHistory(hist),
		core.WithEventManager(a.eventManager),
		core.WithScrollOff(cfg.Editor.ScrollOff),
	)

	a.eventManager.Subscribe(event.TypeAppReady, a.handleAppReady)
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModified)
	a.eventManager.Subscribe(event.TypeCursorMoved, a.handleCursorMoved)
	a.clipboard.Subscribe(a.eventManager)

	return a
}

// Editor exposes the engine, mainly for tests.
func (a *App) Editor() *core.Editor {
	return a.editor
}

// Run reads one event at a time, applies it and redraws, until Quit or
// until the screen is finalized.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.closeSession()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.draw()

	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.Sync()
			a.draw()
		case *tcell.EventKey:
			if a.handleKey(ev) {
				a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{Text: a.editor.Text()})
				logger.Infof("Exiting application.")
				return nil
			}
			a.draw()
		}
	}
}

// handleKey maps and applies one key press. It reports whether the session should end.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	cmd, ok := input.MapEvent(ev)
	if !ok {
		logger.DebugTagf("input", "Unbound key %v", ev.Name())
		return false
	}

	switch cmd.Kind {
	case input.CommandQuit:
		return true
	case input.CommandSearchMode:
		logger.InfoTagf("input", "Search mode requested; not available")
		a.statusBar.SetTemporaryMessage("Search is not available")
		return false
	}

	a.editor.Apply(cmd)
	return false
}

func (a *App) draw() {
	w, h := tui.InnerSize(a.tuiManager.Size())
	a.editor.SetViewSize(w, h)
	a.tuiManager.DrawFrame(viewport.Project(a.editor, h), a.editor.Modified())

	// The status line sits on the bottom border, between the corners.
	sw, sh := a.tuiManager.Size()
	a.statusBar.Draw(a.tuiManager.GetScreen(), 1, sw-1, sh-1)
	a.tuiManager.Show()
}

func (a *App) closeSession() {
	if a.session == nil {
		return
	}
	if err := a.session.Close(); err != nil {
		logger.Warnf("App: closing session: %v", err)
	}
}

func (a *App) handleAppReady(e event.Event) bool {
	if a.highlightLine {
		a.editor.SetSelectedLine(a.editor.Cursor().Line)
	}
	if a.session != nil {
		a.statusBar.SetTemporaryMessage("Connected to %s", a.session.Config())
	} else {
		a.statusBar.SetTemporaryMessage("Ctrl+Q to quit")
	}
	return false
}

func (a *App) handleBufferModified(e event.Event) bool {
	if data, ok := e.Data.(event.BufferModifiedData); ok {
		logger.DebugTagf("edit", "%v %q at %d", data.Edit.Kind, data.Edit.Text, data.Edit.Index)
	}
	return false
}

func (a *App) handleCursorMoved(e event.Event) bool {
	if data, ok := e.Data.(event.CursorMovedData); ok {
		logger.DebugTagf("cursor", "Cursor at %v", data.NewPosition)
		a.statusBar.SetCursorInfo(data.NewPosition)
		if a.highlightLine {
			a.editor.SetSelectedLine(data.NewPosition.Line)
		}
	}
	return false
}
