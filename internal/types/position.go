// internal/types/position.go
package types

import "fmt"

// Cursor is a zero-based position in the text store.
// Col is a rune index within the line and may equal the line length,
// meaning "after the last character".
type Cursor struct {
	Col  int
	Line int
}

func (c Cursor) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Line)
}

// ScrollOffset is the viewport origin. Only Y is consumed when projecting
// lines; X is carried but never applied.
type ScrollOffset struct {
	X int
	Y int
}
