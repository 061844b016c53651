package event

import (
	"testing"

	"github.com/rsql-tui/rsql/internal/types"
)

func TestDispatchInOrder(t *testing.T) {
	m := NewManager()
	var got []int
	m.Subscribe(TypeCursorMoved, func(e Event) bool { got = append(got, 1); return false })
	m.Subscribe(TypeCursorMoved, func(e Event) bool { got = append(got, 2); return false })
	m.Subscribe(TypeAppQuit, func(e Event) bool { got = append(got, 99); return false })

	m.Dispatch(TypeCursorMoved, CursorMovedData{NewPosition: types.Cursor{Col: 1}})

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("handlers ran as %v, want [1 2]", got)
	}
}

func TestConsumedStopsPropagation(t *testing.T) {
	m := NewManager()
	calls := 0
	m.Subscribe(TypeAppQuit, func(e Event) bool { calls++; return true })
	m.Subscribe(TypeAppQuit, func(e Event) bool { calls++; return false })

	m.Dispatch(TypeAppQuit, AppQuitData{Text: "x"})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDispatchCarriesData(t *testing.T) {
	m := NewManager()
	var seen Event
	m.Subscribe(TypeAppQuit, func(e Event) bool { seen = e; return false })
	m.Dispatch(TypeAppQuit, AppQuitData{Text: "select 1"})

	data, ok := seen.Data.(AppQuitData)
	if seen.Type != TypeAppQuit || !ok || data.Text != "select 1" {
		t.Errorf("event = %+v", seen)
	}
}

func TestDispatchWithoutHandlers(t *testing.T) {
	NewManager().Dispatch(TypeAppReady, AppReadyData{})
}

func TestSubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	late := 0
	m.Subscribe(TypeAppReady, func(e Event) bool {
		m.Subscribe(TypeAppReady, func(e Event) bool { late++; return false })
		return false
	})
	m.Dispatch(TypeAppReady, nil)
	if late != 0 {
		t.Errorf("handler added during dispatch ran in the same dispatch")
	}
	m.Dispatch(TypeAppReady, nil)
	if late != 1 {
		t.Errorf("late = %d, want 1", late)
	}
}

func TestTypeString(t *testing.T) {
	if TypeBufferModified.String() != "BufferModified" || Type(42).String() != "Unknown" {
		t.Error("unexpected Type names")
	}
}
