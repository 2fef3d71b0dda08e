package menus

import (
	"testing"
	"time"

	"github.com/Danondso/gamepadoverlay/internal/command"
	"github.com/Danondso/gamepadoverlay/internal/inputmap"
)

func gridMenu(cols int, n int) *inputmap.Menu {
	items := make([]inputmap.MenuItem, n)
	return &inputmap.Menu{ID: 1, Style: inputmap.StyleGrid, Columns: cols, Items: items}
}

func TestGridWrapsAroundRowEdge(t *testing.T) {
	// 3x3 grid, scenario 1: moving right off the end of a row wraps to its
	// own start (gonum-free, pure arithmetic per §4.F).
	m := gridMenu(3, 9)
	sel, _ := Move(m, 2, command.DirRight, true, false)
	if sel != 0 {
		t.Fatalf("expected wrap to column 0 of the same row, got %d", sel)
	}
}

func TestGridNoWrapClampsToLastItem(t *testing.T) {
	m := gridMenu(3, 9)
	sel, _ := Move(m, 8, command.DirRight, false, false)
	if sel != 8 {
		t.Fatalf("expected push-past-edge clamp to stay on last item, got %d", sel)
	}
}

func TestListForwardBackwardNoWrapAtEnds(t *testing.T) {
	m := &inputmap.Menu{ID: 2, Style: inputmap.StyleList, Items: make([]inputmap.MenuItem, 4)}
	sel, _ := Move(m, 3, command.DirDown, false, false)
	if sel != 3 {
		t.Fatalf("expected no movement past the last item without wrap, got %d", sel)
	}
	sel, _ = Move(m, 0, command.DirUp, true, false)
	if sel != 3 {
		t.Fatalf("expected wrap to the last item, got %d", sel)
	}
}

func TestBarUsesHorizontalAxis(t *testing.T) {
	m := &inputmap.Menu{ID: 3, Style: inputmap.StyleBar, Items: make([]inputmap.MenuItem, 3)}
	sel, _ := Move(m, 1, command.DirRight, false, false)
	if sel != 2 {
		t.Fatalf("expected Bar to move forward on Right, got %d", sel)
	}
	if sel2, _ := Move(m, 1, command.DirDown, false, false); sel2 != 1 {
		t.Fatalf("expected Bar to ignore the cross axis, got %d", sel2)
	}
}

func TestSlotsVerticalWrapsAlways(t *testing.T) {
	m := &inputmap.Menu{ID: 4, Style: inputmap.StyleSlots, Items: make([]inputmap.MenuItem, 3)}
	sel, _ := Move(m, 2, command.DirDown, false, false)
	if sel != 0 {
		t.Fatalf("expected Slots Down to wrap to 0, got %d", sel)
	}
}

func Test4DirSelectsPushedDirectionSlot(t *testing.T) {
	m := &inputmap.Menu{ID: 5, Style: inputmap.Style4Dir, Items: make([]inputmap.MenuItem, 4)}
	sel, _ := Move(m, 0, command.DirUp, false, false)
	if sel != int(command.DirUp)-1 {
		t.Fatalf("expected 4Dir selection to equal the pushed direction's slot, got %d", sel)
	}
}

func TestStatePushPopAndReset(t *testing.T) {
	s := NewState(0)
	s.Push(1, 2)
	if s.ActiveMenuID() != 1 {
		t.Fatalf("expected menu 1 active after push, got %d", s.ActiveMenuID())
	}
	s.Pop()
	if s.ActiveMenuID() != 0 {
		t.Fatalf("expected root active after pop, got %d", s.ActiveMenuID())
	}
	s.Push(1, 2)
	s.Reset(0, true)
	if s.ActiveMenuID() != 0 || len(s.Stack) != 1 {
		t.Fatalf("expected reset to collapse the stack to the root, got %+v", s.Stack)
	}
}

func TestStateSelectedClampsToItemCount(t *testing.T) {
	s := NewState(0)
	menu := &inputmap.Menu{ID: 0, Items: make([]inputmap.MenuItem, 2)}
	s.selection[0] = 5
	if got := s.Selected(menu); got != 1 {
		t.Fatalf("expected clamp to last item, got %d", got)
	}
}

func TestStateFlashWindowExpires(t *testing.T) {
	s := NewState(0)
	now := time.Unix(1000, 0)
	s.startFlash(0, 2, now)
	if !s.IsFlashing(0, 2, now.Add(10*time.Millisecond)) {
		t.Fatalf("expected item to still be flashing shortly after confirm")
	}
	if s.IsFlashing(0, 2, now.Add(FlashTime+time.Millisecond)) {
		t.Fatalf("expected flash window to have expired")
	}
}
