// Package textstore holds the editable text as a mutable rope.
//
// The rope is a height-balanced binary tree of rune leaves. Every node caches
// the rune and newline counts of its subtree, so character and line lookups
// cost O(log n) plus a scan of one bounded leaf. All indices are rune
// (Unicode scalar) indices, never byte offsets.
//
//	s := textstore.FromString("select 1;\n")
//	s.Insert(7, "2 + ")    // "select 2 + 1;\n"
//	start, _ := s.LineToChar(1)
package textstore

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned for line lookups past the last line.
var ErrOutOfRange = errors.New("line index out of range")

// Store is a line-addressable, mutable sequence of runes.
// The zero value is an empty store.
type Store struct {
	root *node
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// FromString returns a store holding s.
func FromString(s string) *Store {
	return &Store{root: build([]rune(s))}
}

// Len returns the number of runes in the store.
func (s *Store) Len() int {
	if s.root == nil {
		return 0
	}
	return s.root.chars
}

// LineCount returns the number of lines, which is the newline count plus one.
// An empty store has one (empty) line.
func (s *Store) LineCount() int {
	if s.root == nil {
		return 1
	}
	return s.root.lines + 1
}

// LineToChar returns the rune index at which line starts.
func (s *Store) LineToChar(line int) (int, error) {
	if line < 0 || line >= s.LineCount() {
		return 0, fmt.Errorf("%w: line %d, have %d", ErrOutOfRange, line, s.LineCount())
	}
	if line == 0 {
		return 0, nil
	}
	return newlineAt(s.root, line) + 1, nil
}

// lineBounds returns the [start, end) rune range of line, excluding its
// newline. The caller validates line.
func (s *Store) lineBounds(line int) (int, int) {
	start, _ := s.LineToChar(line)
	end := s.Len()
	if line+1 < s.LineCount() {
		end = newlineAt(s.root, line+1)
	}
	return start, end
}

// Line returns the contents of line without its trailing newline.
// It reports false when line is past the end of the store.
func (s *Store) Line(line int) (string, bool) {
	if line < 0 || line >= s.LineCount() {
		return "", false
	}
	start, end := s.lineBounds(line)
	return s.Slice(start, end), true
}

// LineLength returns the rune length of line, not counting the newline.
// Lines past the end have length zero.
func (s *Store) LineLength(line int) int {
	if line < 0 || line >= s.LineCount() {
		return 0
	}
	start, end := s.lineBounds(line)
	return end - start
}

// Char returns the rune at index.
func (s *Store) Char(index int) (rune, bool) {
	if index < 0 || index >= s.Len() {
		return 0, false
	}
	n := s.root
	for !n.isLeaf() {
		if index < n.left.chars {
			n = n.left
			continue
		}
		index -= n.left.chars
		n = n.right
	}
	return n.runes[index], true
}

// Slice returns the text in the rune range [start, end), clamped to the store.
func (s *Store) Slice(start, end int) string {
	start, end = max(start, 0), min(end, s.Len())
	if start >= end {
		return ""
	}
	return string(appendRange(make([]rune, 0, end-start), s.root, start, end))
}

// String returns the whole text.
func (s *Store) String() string {
	return s.Slice(0, s.Len())
}

// InsertChar inserts a single rune at index.
func (s *Store) InsertChar(index int, r rune) {
	s.insertRunes(index, []rune{r})
}

// Insert inserts text at index. Indices past the end append.
func (s *Store) Insert(index int, text string) {
	s.insertRunes(index, []rune(text))
}

func (s *Store) insertRunes(index int, rs []rune) {
	if len(rs) == 0 {
		return
	}
	index = min(max(index, 0), s.Len())

	switch {
	case s.root == nil:
		s.root = build(rs)
	case len(rs) <= maxLeaf:
		s.root = insertSmall(s.root, index, rs)
	default:
		l, r := split(s.root, index)
		s.root = concat(concat(l, build(rs)), r)
	}
}

// Remove deletes the runes in [start, end), clamped to the store.
func (s *Store) Remove(start, end int) {
	start, end = max(start, 0), min(end, s.Len())
	if start >= end {
		return
	}
	if removeWithin(s.root, start, end) {
		return
	}
	l, rest := split(s.root, start)
	_, r := split(rest, end-start)
	s.root = concat(l, r)
}
