package textstore

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"testing/quick"
)

// checkTree verifies cached metrics and the AVL property for every node.
func checkTree(t *testing.T, n *node) {
	t.Helper()
	if n == nil {
		return
	}
	if n.isLeaf() {
		if len(n.runes) == 0 {
			t.Fatalf("empty leaf")
		}
		if n.chars != len(n.runes) || n.lines != countNewlines(n.runes) || n.height != 0 {
			t.Fatalf("leaf metrics wrong: chars=%d lines=%d height=%d for %q", n.chars, n.lines, n.height, string(n.runes))
		}
		return
	}
	checkTree(t, n.left)
	checkTree(t, n.right)
	if n.chars != n.left.chars+n.right.chars || n.lines != n.left.lines+n.right.lines {
		t.Fatalf("internal metrics wrong")
	}
	if n.height != max(n.left.height, n.right.height)+1 {
		t.Fatalf("height wrong: %d", n.height)
	}
	if d := n.left.height - n.right.height; d > 1 || d < -1 {
		t.Fatalf("unbalanced node: left=%d right=%d", n.left.height, n.right.height)
	}
}

func TestNew(t *testing.T) {
	s := New()
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if s.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", s.LineCount())
	}
	line, ok := s.Line(0)
	if !ok || line != "" {
		t.Errorf("Line(0) = %q, %v; want \"\", true", line, ok)
	}
	if _, ok := s.Line(1); ok {
		t.Error("Line(1) should be absent on an empty store")
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		lines int
	}{
		{"empty", "", 1},
		{"single char", "a", 1},
		{"trailing newline", "select 1;\n", 2},
		{"multiple lines", "a\nb\nc", 3},
		{"unicode", "héllo 世界 🌍", 1},
		{"long", strings.Repeat("abcdefghij\n", 500), 501},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromString(tt.input)
			checkTree(t, s.root)
			if got := s.String(); got != tt.input {
				t.Errorf("String() = %q, want %q", got, tt.input)
			}
			if got := s.Len(); got != len([]rune(tt.input)) {
				t.Errorf("Len() = %d, want %d", got, len([]rune(tt.input)))
			}
			if got := s.LineCount(); got != tt.lines {
				t.Errorf("LineCount() = %d, want %d", got, tt.lines)
			}
		})
	}
}

func TestLineToChar(t *testing.T) {
	s := FromString("ab\n\ncde\nf")
	tests := []struct {
		line int
		want int
	}{
		{0, 0},
		{1, 3},
		{2, 4},
		{3, 8},
	}
	for _, tt := range tests {
		got, err := s.LineToChar(tt.line)
		if err != nil {
			t.Fatalf("LineToChar(%d) error: %v", tt.line, err)
		}
		if got != tt.want {
			t.Errorf("LineToChar(%d) = %d, want %d", tt.line, got, tt.want)
		}
	}

	for _, line := range []int{-1, 4, 100} {
		if _, err := s.LineToChar(line); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("LineToChar(%d) error = %v, want ErrOutOfRange", line, err)
		}
	}
}

func TestLineAndLength(t *testing.T) {
	s := FromString("select *\nfrom t\n\nwhere 世界")
	want := []string{"select *", "from t", "", "where 世界"}
	for i, w := range want {
		got, ok := s.Line(i)
		if !ok || got != w {
			t.Errorf("Line(%d) = %q, %v; want %q", i, got, ok, w)
		}
		if l := s.LineLength(i); l != len([]rune(w)) {
			t.Errorf("LineLength(%d) = %d, want %d", i, l, len([]rune(w)))
		}
	}
	if _, ok := s.Line(len(want)); ok {
		t.Error("Line past end should be absent")
	}
	if l := s.LineLength(len(want)); l != 0 {
		t.Errorf("LineLength past end = %d, want 0", l)
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		initial  string
		index    int
		text     string
		expected string
	}{
		{"into empty", "", 0, "abc", "abc"},
		{"at start", "world", 0, "hello ", "hello world"},
		{"in middle", "helo", 3, "l", "hello"},
		{"at end", "a", 1, "\nb", "a\nb"},
		{"past end appends", "a", 10, "b", "ab"},
		{"unicode index", "世界", 1, "-", "世-界"},
		{"large text", "ab", 1, strings.Repeat("x", 3000), "a" + strings.Repeat("x", 3000) + "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromString(tt.initial)
			s.Insert(tt.index, tt.text)
			checkTree(t, s.root)
			if got := s.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInsertCharGrowsTree(t *testing.T) {
	s := New()
	var sb strings.Builder
	for i := 0; i < 5000; i++ {
		r := rune('a' + i%26)
		if i%40 == 39 {
			r = '\n'
		}
		s.InsertChar(s.Len(), r)
		sb.WriteRune(r)
	}
	checkTree(t, s.root)
	if s.String() != sb.String() {
		t.Fatal("content mismatch after sequential typing")
	}
	if s.root.height > 12 {
		t.Errorf("tree too tall: %d", s.root.height)
	}
	if got, want := s.LineCount(), strings.Count(sb.String(), "\n")+1; got != want {
		t.Errorf("LineCount() = %d, want %d", got, want)
	}
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		start, end int
		expected   string
	}{
		{"single char", "abc", 1, 2, "ac"},
		{"everything", "abc", 0, 3, ""},
		{"newline joins lines", "ab\ncd", 2, 3, "abcd"},
		{"clamped", "abc", 2, 50, "ab"},
		{"empty range", "abc", 2, 2, "abc"},
		{"across leaves", strings.Repeat("0123456789", 200), 5, 1995, "01234" + "56789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromString(tt.initial)
			s.Remove(tt.start, tt.end)
			checkTree(t, s.root)
			if got := s.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestChar(t *testing.T) {
	s := FromString("a世\n")
	for i, want := range []rune{'a', '世', '\n'} {
		got, ok := s.Char(i)
		if !ok || got != want {
			t.Errorf("Char(%d) = %q, %v; want %q", i, got, ok, want)
		}
	}
	if _, ok := s.Char(3); ok {
		t.Error("Char past end should be absent")
	}
}

// TestRandomEditsMatchModel replays random edits against a plain rune slice.
func TestRandomEditsMatchModel(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("ab\nc世 ")
	s := New()
	var model []rune

	for i := 0; i < 4000; i++ {
		if len(model) > 0 && rng.Intn(3) == 0 {
			start := rng.Intn(len(model))
			end := start + rng.Intn(min(len(model)-start, 700)+1)
			s.Remove(start, end)
			model = append(model[:start:start], model[end:]...)
			continue
		}
		n := 1 + rng.Intn(8)
		if rng.Intn(50) == 0 {
			n = 600 + rng.Intn(600)
		}
		text := make([]rune, n)
		for j := range text {
			text[j] = alphabet[rng.Intn(len(alphabet))]
		}
		at := rng.Intn(len(model) + 1)
		s.Insert(at, string(text))
		model = append(model[:at:at], append(text, model[at:]...)...)
	}

	checkTree(t, s.root)
	if s.String() != string(model) {
		t.Fatal("rope diverged from model")
	}
	lines := strings.Split(string(model), "\n")
	if s.LineCount() != len(lines) {
		t.Fatalf("LineCount() = %d, want %d", s.LineCount(), len(lines))
	}
	for i, want := range lines {
		if got, _ := s.Line(i); got != want {
			t.Fatalf("Line(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestInsertRemoveInverse(t *testing.T) {
	f := func(base, text string, at uint16) bool {
		s := FromString(base)
		idx := int(at) % (s.Len() + 1)
		s.Insert(idx, text)
		s.Remove(idx, idx+len([]rune(text)))
		return s.String() == base
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
