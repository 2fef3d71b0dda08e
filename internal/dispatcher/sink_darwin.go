//go:build darwin

package dispatcher

/*
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices

#include <ApplicationServices/ApplicationServices.h>

static void postKeyEvent(CGKeyCode code, int down) {
	CGEventRef ev = CGEventCreateKeyboardEvent(NULL, code, down != 0);
	if (ev) {
		CGEventPost(kCGHIDEventTap, ev);
		CFRelease(ev);
	}
}

static void postMouseMoveEvent(double x, double y) {
	CGEventRef ev = CGEventCreateMouseEvent(NULL, kCGEventMouseMoved, CGPointMake(x, y), kCGMouseButtonLeft);
	if (ev) {
		CGEventPost(kCGHIDEventTap, ev);
		CFRelease(ev);
	}
}

static void postScrollEvent(int32_t dy) {
	CGEventRef ev = CGEventCreateScrollWheelEvent(NULL, kCGScrollEventUnitLine, 1, dy);
	if (ev) {
		CGEventPost(kCGHIDEventTap, ev);
		CFRelease(ev);
	}
}
*/
import "C"

import (
	"github.com/Danondso/gamepadoverlay/internal/keycode"
)

// CGEventSink is the real macOS Sink: CGEventPost synthesizes key and mouse
// events system-wide, the write-side counterpart to the teacher's
// CGEventTap-based hotkey listener (internal/hotkey/hotkey_darwin.go), which
// only reads events.
type CGEventSink struct {
	curX, curY float64
}

// NewCGEventSink creates a CGEventSink, seeded at the given starting
// cursor position (macOS mouse-move events carry an absolute position, so
// the sink must track it to implement MoveMouseRel as a delta).
func NewCGEventSink(startX, startY int) *CGEventSink {
	return &CGEventSink{curX: float64(startX), curY: float64(startY)}
}

// KeyDown presses a key. Every code, including the BTN_* mouse-button
// codes, is posted as a keyboard event with that CGKeyCode; no mouse click
// event is generated.
func (s *CGEventSink) KeyDown(code keycode.VK) error {
	C.postKeyEvent(C.CGKeyCode(code), 1)
	return nil
}

// KeyUp releases a key.
func (s *CGEventSink) KeyUp(code keycode.VK) error {
	C.postKeyEvent(C.CGKeyCode(code), 0)
	return nil
}

// MoveMouseRel posts an absolute mouse-moved event offset from the sink's
// tracked position.
func (s *CGEventSink) MoveMouseRel(dx, dy int) error {
	s.curX += float64(dx)
	s.curY += float64(dy)
	C.postMouseMoveEvent(C.double(s.curX), C.double(s.curY))
	return nil
}

// MoveMouseTo posts an absolute mouse-moved event to (x, y).
func (s *CGEventSink) MoveMouseTo(x, y int) error {
	s.curX, s.curY = float64(x), float64(y)
	C.postMouseMoveEvent(C.double(s.curX), C.double(s.curY))
	return nil
}

// ScrollWheel posts a scroll-wheel event of delta lines.
func (s *CGEventSink) ScrollWheel(delta int) error {
	C.postScrollEvent(C.int32_t(delta))
	return nil
}

// PasteText delegates to the shared clipboard paste path.
func (s *CGEventSink) PasteText(text string, delayMs int) error {
	return pasteText(text, delayMs)
}

// Flush is a no-op: CGEventPost delivers synchronously, unlike uinput's
// batched write/SYN_REPORT model.
func (s *CGEventSink) Flush() error {
	return nil
}
