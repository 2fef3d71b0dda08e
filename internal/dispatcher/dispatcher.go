// Package dispatcher is the input dispatcher §4.B describes: a growable
// ring buffer of tasks (virtual-key sequences and chat-box macros) drained
// one bounded step per update tick, emitting key/mouse events to a Sink.
// Grounded on the teacher's hotkey listener for how the event stream talks
// to the OS (internal/hotkey/hotkey_linux.go's evdev device), generalized
// from "read one global hotkey" to "read and synthesize an arbitrary
// stream," plus the teacher's internal/clipboard for the chat-box paste
// path.
package dispatcher

import (
	"time"

	"github.com/Danondso/gamepadoverlay/internal/keycode"
	"github.com/pkg/errors"
)

// MaxTaskQueuedTime is how long a task may sit at the head of the queue
// before being dropped unexecuted (§4.B).
const MaxTaskQueuedTime = 5 * time.Second

// Sink is the platform output surface a Dispatcher drives: hold/release a
// key or mouse button, move the mouse, and (for chat-box macros) paste
// text into the focused window. internal/dispatcher/sink_linux.go and
// sink_darwin.go provide the real implementations; tests use a fake.
type Sink interface {
	KeyDown(code keycode.VK) error
	KeyUp(code keycode.VK) error
	MoveMouseRel(dx, dy int) error
	MoveMouseTo(x, y int) error
	ScrollWheel(delta int) error
	PasteText(text string, delayMs int) error
	Flush() error
}

// Task is one queued unit of work.
type Task struct {
	enqueuedAt time.Time

	// Exactly one of these is set.
	Sequence []byte // VK-sequence wire format (§6)
	ChatText string // macro text, leading '/' or '>' marker already stripped (already expanded)
}

// KeyBindLookup resolves a key-bind index (as embedded in a VK sequence's
// trigger tag) back to the sequence it should re-enqueue.
type KeyBindLookup func(idx int) ([]byte, bool)

// HotspotLookup resolves a hotspot index (as embedded in a VK sequence's
// mouse-jump tag) to its current screen position.
type HotspotLookup func(idx int) (x, y int, ok bool)

// Dispatcher drains queued tasks one bounded step per Tick, per §4.B's
// four-step contract.
type Dispatcher struct {
	sink      Sink
	keyBinds  KeyBindLookup
	hotspots  HotspotLookup
	queue     []Task
	pauseMS   int
	heldMods  keycode.Modifier
	lockUntil time.Time

	// decoding state for the task currently at the head of the queue.
	curSeq    []byte
	curOffset int
	curChat   string
}

// New creates a Dispatcher writing to sink.
func New(sink Sink, keyBinds KeyBindLookup, hotspots HotspotLookup) *Dispatcher {
	return &Dispatcher{sink: sink, keyBinds: keyBinds, hotspots: hotspots}
}

// Enqueue appends a VK-sequence task to the tail of the ring buffer.
func (d *Dispatcher) Enqueue(seq []byte) {
	d.queue = append(d.queue, Task{enqueuedAt: now(), Sequence: seq})
}

// EnqueueChat appends a chat-box macro task; text must already have had its
// leading '/'/'>' marker and any $Var$ expansion resolved by the caller.
func (d *Dispatcher) EnqueueChat(text string) {
	d.queue = append(d.queue, Task{enqueuedAt: now(), ChatText: text})
}

// QueueLen reports how many tasks (including the in-progress head task) are
// outstanding, for tests and diagnostics.
func (d *Dispatcher) QueueLen() int {
	n := len(d.queue)
	if d.curSeq != nil || d.curChat != "" {
		n++
	}
	return n
}

// now is a package variable so tests can substitute the clock; it defaults
// to time.Now.
var now = time.Now

// Tick runs exactly one bounded step of the dispatcher per §4.B's
// contract: decrement timers, pop/advance the head task by one key (or a
// whole chat macro), emit modifier transitions, flush.
func (d *Dispatcher) Tick(dt time.Duration) error {
	d.decrementTimers(dt)

	if d.curSeq == nil && d.curChat == "" {
		if !d.popHeadTask() {
			return d.sink.Flush()
		}
	}

	if d.pauseMS > 0 {
		return d.sink.Flush()
	}

	if err := d.advanceOne(); err != nil {
		return err
	}
	return d.sink.Flush()
}

func (d *Dispatcher) decrementTimers(dt time.Duration) {
	ms := int(dt / time.Millisecond)
	if d.pauseMS > 0 {
		d.pauseMS -= ms
		if d.pauseMS < 0 {
			d.pauseMS = 0
		}
	}
}

// popHeadTask drops any tasks that aged past MaxTaskQueuedTime, then loads
// the next live task as the current decode target.
func (d *Dispatcher) popHeadTask() bool {
	for len(d.queue) > 0 {
		t := d.queue[0]
		d.queue = d.queue[1:]
		if now().Sub(t.enqueuedAt) > MaxTaskQueuedTime {
			continue
		}
		if t.ChatText != "" {
			d.curChat = t.ChatText
		} else {
			d.curSeq = t.Sequence
			d.curOffset = 0
		}
		return true
	}
	return false
}

// advanceOne performs the single highest-priority pending action: decode
// and apply the next item from the current sequence/chat task.
func (d *Dispatcher) advanceOne() error {
	if d.curChat != "" {
		return d.advanceChat()
	}
	if d.curSeq != nil {
		return d.advanceSequence()
	}
	return nil
}

// MoveMouseRel moves the mouse immediately by (dx, dy), bypassing the task
// queue: analog stick-driven movement (MoveMouse) is continuous per-tick
// input, not a discrete macro, so it writes straight to the sink rather than
// enqueuing a VK-sequence task.
func (d *Dispatcher) MoveMouseRel(dx, dy int) error { return d.sink.MoveMouseRel(dx, dy) }

// MoveMouseTo jumps the mouse immediately to (x, y), for HotspotSelect/
// MoveMouseToHotspot's direct cursor placement.
func (d *Dispatcher) MoveMouseTo(x, y int) error { return d.sink.MoveMouseTo(x, y) }

// ScrollWheel scrolls immediately by delta, for the same reason as
// MoveMouseRel: a gamepad-driven wheel nudge is per-tick analog input.
func (d *Dispatcher) ScrollWheel(delta int) error { return d.sink.ScrollWheel(delta) }

// HoldModifier presses a modifier and keeps it tracked as held, for
// commands (e.g. a held controls layer) that need a modifier down across
// several subsequent taps rather than embedded in one VK sequence.
func (d *Dispatcher) HoldModifier(m keycode.Modifier) error {
	return d.applyModifiers(d.heldMods | m)
}

// ReleaseModifier releases a previously-held modifier, honoring any active
// release lock (§4.B step 3).
func (d *Dispatcher) ReleaseModifier(m keycode.Modifier) error {
	return d.applyModifiers(d.heldMods &^ m)
}

// applyModifiers emits transitions so the held set equals want, honoring a
// release lock: a modifier the lock protects stays held even if want no
// longer needs it, deferring release until the lock clears (§4.B step 3).
func (d *Dispatcher) applyModifiers(want keycode.Modifier) error {
	locked := now().Before(d.lockUntil)
	for _, m := range []keycode.Modifier{keycode.ModShift, keycode.ModCtrl, keycode.ModAlt, keycode.ModWin} {
		have := d.heldMods&m != 0
		need := want&m != 0
		if need && !have {
			code, ok := keycode.KeyCodeForModifier(m)
			if !ok {
				continue
			}
			if err := d.sink.KeyDown(code); err != nil {
				return err
			}
			d.heldMods |= m
		} else if !need && have {
			if locked {
				continue
			}
			code, ok := keycode.KeyCodeForModifier(m)
			if !ok {
				continue
			}
			if err := d.sink.KeyUp(code); err != nil {
				return err
			}
			d.heldMods &^= m
		}
	}
	return nil
}

// advanceChat hands the whole current chat-box macro to the platform paste
// path in one sink call (PasteText with a 50ms pacing delay) and then
// clears curChat. The text is not typed character by character: no
// per-character key events are synthesized for a chat macro.
func (d *Dispatcher) advanceChat() error {
	text := d.curChat
	d.curChat = ""
	return d.sink.PasteText(text, 50)
}

// advanceSequence decodes exactly one SeqItem from the current VK sequence
// and applies its effect, per §4.B step 2.
func (d *Dispatcher) advanceSequence() error {
	if d.curOffset >= len(d.curSeq) {
		d.curSeq = nil
		d.curOffset = 0
		return nil
	}
	rest := d.curSeq[d.curOffset:]
	consumed := 0
	var stepErr error
	err := keycode.Decode(rest, func(item keycode.SeqItem) error {
		consumed++
		switch item.Kind {
		case keycode.SeqKindKey:
			if err := d.sink.KeyDown(item.Key); err != nil {
				stepErr = err
				break
			}
			stepErr = d.sink.KeyUp(item.Key)
		case keycode.SeqKindPause:
			d.pauseMS = item.Ms
		case keycode.SeqKindKeyBind:
			if d.keyBinds != nil {
				if seq, ok := d.keyBinds(item.Idx); ok {
					d.Enqueue(seq)
				}
			}
		case keycode.SeqKindMouseJump:
			if d.hotspots != nil {
				if x, y, ok := d.hotspots(item.Idx); ok {
					stepErr = d.sink.MoveMouseTo(x, y)
				}
			}
		}
		return errStopAfterOne
	})
	if err != nil && err != errStopAfterOne {
		d.curSeq = nil
		d.curOffset = 0
		return errors.Wrap(err, "dispatcher: decoding VK sequence, discarding remainder")
	}
	d.curOffset += consumedBytes(rest, consumed)
	if d.curOffset >= len(d.curSeq) {
		d.curSeq = nil
		d.curOffset = 0
	}
	return stepErr
}

// errStopAfterOne is a sentinel keycode.Decode's visit callback returns to
// halt decoding after exactly one item, since Decode itself always walks
// the whole buffer.
var errStopAfterOne = errors.New("dispatcher: stop after one sequence item")

// consumedBytes re-measures how many bytes of rest the single decoded item
// occupied, since Decode's visit callback doesn't report it directly.
func consumedBytes(rest []byte, items int) int {
	if items == 0 || len(rest) == 0 {
		return len(rest)
	}
	b := rest[0]
	switch b {
	case 0xF0, 0xF1, 0xF2:
		return 3
	default:
		return 1
	}
}

// Reset releases all held modifiers and clears the queue, per §4.B's
// cleanup contract (used on profile switch and on shutdown).
func (d *Dispatcher) Reset() error {
	d.queue = nil
	d.curSeq = nil
	d.curChat = ""
	d.pauseMS = 0
	for _, m := range []keycode.Modifier{keycode.ModShift, keycode.ModCtrl, keycode.ModAlt, keycode.ModWin} {
		if d.heldMods&m != 0 {
			if code, ok := keycode.KeyCodeForModifier(m); ok {
				if err := d.sink.KeyUp(code); err != nil {
					return err
				}
			}
			d.heldMods &^= m
		}
	}
	return d.sink.Flush()
}

// LockModifierRelease defers releasing currently-held modifiers until dur
// elapses, per §4.B step 3's "modifier-release lock."
func (d *Dispatcher) LockModifierRelease(dur time.Duration) {
	d.lockUntil = now().Add(dur)
}
