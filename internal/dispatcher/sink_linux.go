//go:build linux

package dispatcher

import (
	"fmt"

	"github.com/Danondso/gamepadoverlay/internal/keycode"
	evdev "github.com/holoplot/go-evdev"
	"github.com/pkg/errors"
)

// UinputSink is the real Linux Sink: a virtual keyboard+mouse created via
// /dev/uinput, the same evdev package the teacher's hotkey listener uses to
// *read* a real keyboard (internal/hotkey/hotkey_linux.go), now opened in
// the other direction to *write* synthetic events (§4.B).
type UinputSink struct {
	dev *evdev.InputDevice
}

// NewUinputSink creates a uinput device capable of emitting every key code
// the keycode package knows plus the three mouse buttons and relative axes.
func NewUinputSink(name string) (*UinputSink, error) {
	keys := make([]evdev.EvCode, 0, 256)
	for code := evdev.EvCode(1); code < 0x300; code++ {
		keys = append(keys, code)
	}
	caps := map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: keys,
		evdev.EV_REL: {evdev.REL_X, evdev.REL_Y, evdev.REL_WHEEL},
	}
	dev, err := evdev.CreateDevice(name, evdev.InputID{BusType: evdev.BUS_USB, Vendor: 0x1209, Product: 0x0001, Version: 1}, caps)
	if err != nil {
		return nil, errors.Wrap(err, "dispatcher: creating uinput device")
	}
	return &UinputSink{dev: dev}, nil
}

func (s *UinputSink) writeKey(code keycode.VK, value int32) error {
	return s.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_KEY, Code: evdev.EvCode(code), Value: value})
}

// KeyDown emits a key/button press.
func (s *UinputSink) KeyDown(code keycode.VK) error {
	return s.writeKey(code, 1)
}

// KeyUp emits a key/button release.
func (s *UinputSink) KeyUp(code keycode.VK) error {
	return s.writeKey(code, 0)
}

// MoveMouseRel emits a relative cursor move.
func (s *UinputSink) MoveMouseRel(dx, dy int) error {
	if err := s.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_REL, Code: evdev.REL_X, Value: int32(dx)}); err != nil {
		return err
	}
	return s.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_REL, Code: evdev.REL_Y, Value: int32(dy)})
}

// MoveMouseTo is not supported by this sink: the uinput device is
// relative-only, so it emits nothing and always returns an error. Absolute
// cursor placement through UinputSink does not move the cursor.
func (s *UinputSink) MoveMouseTo(x, y int) error {
	return fmt.Errorf("dispatcher: MoveMouseTo requires an absolute-position device; not supported by UinputSink")
}

// ScrollWheel emits a relative scroll-wheel event.
func (s *UinputSink) ScrollWheel(delta int) error {
	return s.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_REL, Code: evdev.REL_WHEEL, Value: int32(delta)})
}

// PasteText delegates to the shared clipboard paste path.
func (s *UinputSink) PasteText(text string, delayMs int) error {
	return pasteText(text, delayMs)
}

// Flush emits the EV_SYN report that commits the batch of events written
// since the last Flush, per §4.B step 4.
func (s *UinputSink) Flush() error {
	return s.dev.WriteOne(&evdev.InputEvent{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT, Value: 0})
}

// Close releases the uinput device.
func (s *UinputSink) Close() error {
	return s.dev.Close()
}
