package dispatcher

import (
	"testing"
	"time"

	"github.com/Danondso/gamepadoverlay/internal/keycode"
)

type event struct {
	kind string
	a, b int
	text string
}

type fakeSink struct {
	events []event
}

func (f *fakeSink) KeyDown(code keycode.VK) error {
	f.events = append(f.events, event{kind: "down", a: int(code)})
	return nil
}
func (f *fakeSink) KeyUp(code keycode.VK) error {
	f.events = append(f.events, event{kind: "up", a: int(code)})
	return nil
}
func (f *fakeSink) MoveMouseRel(dx, dy int) error {
	f.events = append(f.events, event{kind: "moverel", a: dx, b: dy})
	return nil
}
func (f *fakeSink) MoveMouseTo(x, y int) error {
	f.events = append(f.events, event{kind: "moveto", a: x, b: y})
	return nil
}
func (f *fakeSink) ScrollWheel(delta int) error {
	f.events = append(f.events, event{kind: "wheel", a: delta})
	return nil
}
func (f *fakeSink) PasteText(text string, delayMs int) error {
	f.events = append(f.events, event{kind: "paste", text: text, a: delayMs})
	return nil
}
func (f *fakeSink) Flush() error {
	f.events = append(f.events, event{kind: "flush"})
	return nil
}

func TestTickEmitsKeyPressAndReleaseForPlainKey(t *testing.T) {
	sink := &fakeSink{}
	d := New(sink, nil, nil)
	seq, _ := keycode.EncodeKey(nil, 30) // KEY_A
	d.Enqueue(seq)

	if err := d.Tick(0); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	var kinds []string
	for _, e := range sink.events {
		kinds = append(kinds, e.kind)
	}
	if len(kinds) < 2 || kinds[0] != "down" || kinds[1] != "up" {
		t.Fatalf("expected down,up on the first tick, got %v", kinds)
	}
}

func TestTickHonorsPause(t *testing.T) {
	sink := &fakeSink{}
	d := New(sink, nil, nil)
	seq, _ := keycode.EncodePause(nil, 100)
	seq, _ = keycode.EncodeKey(seq, 30)
	d.Enqueue(seq)

	if err := d.Tick(0); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if d.pauseMS != 100 {
		t.Fatalf("expected pauseMS=100 after decoding the pause, got %d", d.pauseMS)
	}
	for _, e := range sink.events {
		if e.kind == "down" || e.kind == "up" {
			t.Fatalf("expected no key events to fire while paused, got %v", sink.events)
		}
	}

	if err := d.Tick(100 * time.Millisecond); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if d.pauseMS != 0 {
		t.Fatalf("expected pause to drain to 0, got %d", d.pauseMS)
	}
}

func TestTickTriggersKeyBindReference(t *testing.T) {
	sink := &fakeSink{}
	lookups := map[int][]byte{}
	seqB, _ := keycode.EncodeKey(nil, 48) // KEY_B
	lookups[2] = seqB
	d := New(sink, func(idx int) ([]byte, bool) {
		s, ok := lookups[idx]
		return s, ok
	}, nil)

	seq, _ := keycode.EncodeTriggerKeyBind(nil, 2)
	d.Enqueue(seq)
	if err := d.Tick(0); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if d.QueueLen() != 1 {
		t.Fatalf("expected the referenced key-bind's sequence to be re-enqueued, queue len=%d", d.QueueLen())
	}
}

func TestTickMouseJumpMovesBeforeNextEvent(t *testing.T) {
	sink := &fakeSink{}
	d := New(sink, nil, func(idx int) (int, int, bool) {
		if idx == 5 {
			return 100, 200, true
		}
		return 0, 0, false
	})
	seq, _ := keycode.EncodeMouseJump(nil, 5)
	d.Enqueue(seq)
	if err := d.Tick(0); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	found := false
	for _, e := range sink.events {
		if e.kind == "moveto" && e.a == 100 && e.b == 200 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a moveto(100,200) event, got %v", sink.events)
	}
}

func TestEnqueueChatPastesWholeMacro(t *testing.T) {
	sink := &fakeSink{}
	d := New(sink, nil, nil)
	d.EnqueueChat("/gg well played")
	if err := d.Tick(0); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	found := false
	for _, e := range sink.events {
		if e.kind == "paste" && e.text == "/gg well played" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a paste event for the chat macro, got %v", sink.events)
	}
}

func TestAgedTaskIsDroppedAtHead(t *testing.T) {
	sink := &fakeSink{}
	d := New(sink, nil, nil)
	d.Enqueue([]byte{30})
	// Back-date the task past MaxTaskQueuedTime.
	d.queue[0].enqueuedAt = time.Now().Add(-2 * MaxTaskQueuedTime)
	d.Enqueue([]byte{48})

	if err := d.Tick(0); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	for _, e := range sink.events {
		if e.kind == "down" && e.a == 30 {
			t.Fatalf("expected the aged task to be dropped, but its key fired")
		}
	}
}

func TestResetReleasesHeldModifiers(t *testing.T) {
	sink := &fakeSink{}
	d := New(sink, nil, nil)
	d.heldMods = keycode.ModShift | keycode.ModCtrl
	if err := d.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if d.heldMods != 0 {
		t.Fatalf("expected all modifiers released, got %v", d.heldMods)
	}
	ups := 0
	for _, e := range sink.events {
		if e.kind == "up" {
			ups++
		}
	}
	if ups != 2 {
		t.Fatalf("expected 2 key-up events for the 2 held modifiers, got %d", ups)
	}
}

func TestLockModifierReleaseDefersRelease(t *testing.T) {
	sink := &fakeSink{}
	d := New(sink, nil, nil)
	d.heldMods = keycode.ModShift
	d.LockModifierRelease(time.Hour)
	if err := d.applyModifiers(0); err != nil {
		t.Fatalf("applyModifiers: %v", err)
	}
	if d.heldMods&keycode.ModShift == 0 {
		t.Fatalf("expected Shift to remain held under the release lock")
	}
}
