// internal/event/event.go
package event

import (
	"github.com/rsql-tui/rsql/internal/core/history"
	"github.com/rsql-tui/rsql/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Core Editor Events
	TypeBufferModified // Fired when buffer content changes, including undo and redo replays
	TypeCursorMoved    // Fired when the cursor position changes

	// Application Lifecycle Events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins
)

var typeNames = map[Type]string{
	TypeUnknown:        "Unknown",
	TypeBufferModified: "BufferModified",
	TypeCursorMoved:    "CursorMoved",
	TypeAppReady:       "AppReady",
	TypeAppQuit:        "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data any
}

// BufferModifiedData describes one change applied to the text store.
// Before and After are zero for changes replayed by undo or redo.
type BufferModifiedData struct {
	Edit history.Edit
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	NewPosition types.Cursor
}

// AppQuitData carries the final buffer contents.
type AppQuitData struct {
	Text string
}

type AppReadyData struct{}
