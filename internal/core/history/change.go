// Package history groups edits into time-coalesced batches and replays them
// for undo/redo.
package history

import (
	"time"
	"unicode/utf8"

	"github.com/rsql-tui/rsql/internal/types"
)

// EditKind indicates whether text was inserted or deleted.
type EditKind int

const (
	InsertEdit EditKind = iota
	DeleteEdit
)

func (k EditKind) String() string {
	if k == DeleteEdit {
		return "Delete"
	}
	return "Insert"
}

// Edit is a single reversible text operation.
type Edit struct {
	Kind   EditKind
	Index  int          // rune index where the text was inserted or removed
	Text   string       // inserted or removed text
	Before types.Cursor // cursor before the edit was applied
	After  types.Cursor // cursor after the edit was applied
}

// end returns the rune index just past the affected text.
func (e Edit) end() int {
	return e.Index + utf8.RuneCountInString(e.Text)
}

// Batch is one undo/redo unit.
type Batch struct {
	Edits   []Edit
	Touched time.Time // last time an edit was appended
}

func (b Batch) empty() bool {
	return len(b.Edits) == 0
}
