//go:build linux

// Package gamepad is the Linux evdev joystick source §4.B's dispatcher
// sits downstream of: it opens a /dev/input/event* joystick device and
// turns its EV_KEY button events and EV_ABS d-pad/trigger/stick axis
// events into the engine's signal-ID space (inputmap.ButtonCount signals,
// the original's fixed XInput-era enumeration). Grounded on the teacher's
// internal/hotkey/hotkey_linux.go, which opens and scans the same
// /dev/input/event* device family to find a keyboard; this package scans
// for a joystick instead and, rather than watching one fixed key, decodes
// the full evdev button/axis event stream every tick.
package gamepad

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	evdev "github.com/holoplot/go-evdev"

	"github.com/Danondso/gamepadoverlay/internal/inputmap"
)

// Signal IDs for the sixteen physical buttons the original's fixed
// Gamepad::eBTN_COUNT enumerates: four d-pad directions, four face buttons,
// four shoulder/trigger buttons, two thumbstick clicks, and start/back —
// matching inputmap.ButtonCount.
const (
	SignalDPadUp = iota
	SignalDPadDown
	SignalDPadLeft
	SignalDPadRight
	SignalA
	SignalB
	SignalX
	SignalY
	SignalLeftShoulder
	SignalRightShoulder
	SignalLeftTrigger
	SignalRightTrigger
	SignalLeftThumb
	SignalRightThumb
	SignalBack
	SignalStart
)

// stickSignalBase starts the virtual signal IDs synthesized for the
// analog sticks' four cardinal deflections per stick, once a stick crosses
// deadzone. These sit well above inputmap.ButtonCount and above any
// realistic KeyBindCycle signal (inputmap.ButtonCount + key-bind index),
// which only grows with profile size; a profile with more than about one
// million key-binds (1<<20 minus inputmap.ButtonCount) would collide with
// this range (documented as an Open Question,
// not resolved by the original, which has no stick-as-pseudo-button
// precedent to follow).
const stickSignalBase = 1 << 20

const (
	SignalLeftStickUp = stickSignalBase + iota
	SignalLeftStickDown
	SignalLeftStickLeft
	SignalLeftStickRight
	SignalRightStickUp
	SignalRightStickDown
	SignalRightStickLeft
	SignalRightStickRight
)

var _ = inputmap.ButtonCount // referenced only in documentation above

// evdev joystick event codes this package understands. Linux's generic
// joystick driver reports face/shoulder/thumb/start/back buttons as
// BTN_SOUTH.. and the d-pad as a hat switch; these codes are the common
// "Xbox-layout" mapping most /dev/input/event* gamepad drivers report.
const (
	btnSouth  = evdev.EvCode(0x130) // A
	btnEast   = evdev.EvCode(0x131) // B
	btnNorth  = evdev.EvCode(0x133) // Y
	btnWest   = evdev.EvCode(0x134) // X
	btnTL     = evdev.EvCode(0x136) // left shoulder
	btnTR     = evdev.EvCode(0x137) // right shoulder
	btnSelect = evdev.EvCode(0x13a) // back
	btnStart  = evdev.EvCode(0x13b) // start
	btnThumbL = evdev.EvCode(0x13d)
	btnThumbR = evdev.EvCode(0x13e)

	absHat0X = evdev.EvCode(0x10) // d-pad left/right
	absHat0Y = evdev.EvCode(0x11) // d-pad up/down
	absX     = evdev.EvCode(0x00) // left stick horizontal
	absY     = evdev.EvCode(0x01) // left stick vertical
	absZ     = evdev.EvCode(0x02) // left trigger
	absRX    = evdev.EvCode(0x03) // right stick horizontal
	absRY    = evdev.EvCode(0x04) // right stick vertical
	absRZ    = evdev.EvCode(0x05) // right trigger
)

var buttonSignal = map[evdev.EvCode]int{
	btnSouth:  SignalA,
	btnEast:   SignalB,
	btnNorth:  SignalY,
	btnWest:   SignalX,
	btnTL:     SignalLeftShoulder,
	btnTR:     SignalRightShoulder,
	btnSelect: SignalBack,
	btnStart:  SignalStart,
	btnThumbL: SignalLeftThumb,
	btnThumbR: SignalRightThumb,
}

// triggerPressThreshold is the analog trigger value (of a typical 0..255
// range) past which a trigger axis counts as a held digital signal.
const triggerPressThreshold = 128

// stickDeadzone is the fraction of full deflection (of a typical
// -32768..32767 range) below which stick movement is ignored.
const stickDeadzone = 0.25

// FindGamepad opens a specific device path, or scans /dev/input/event* for
// the first device exposing a joystick-style button (BTN_SOUTH) alongside
// an absolute axis, distinguishing it from a keyboard or mouse the same
// way the teacher's FindKeyboard rules those out for a hotkey listener.
func FindGamepad(devicePath string) (*evdev.InputDevice, error) {
	if devicePath != "" {
		dev, err := evdev.Open(devicePath)
		if err != nil {
			return nil, fmt.Errorf("gamepad: open device %s: %w", devicePath, err)
		}
		return dev, nil
	}

	matches, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, fmt.Errorf("gamepad: glob /dev/input/event*: %w", err)
	}
	sort.Slice(matches, func(i, j int) bool {
		ni, _ := strconv.Atoi(strings.TrimPrefix(matches[i], "/dev/input/event"))
		nj, _ := strconv.Atoi(strings.TrimPrefix(matches[j], "/dev/input/event"))
		return ni < nj
	})

	for _, path := range matches {
		dev, err := evdev.Open(path)
		if err != nil {
			continue
		}
		if isGamepad(dev) {
			return dev, nil
		}
		_ = dev.Close()
	}
	return nil, fmt.Errorf("gamepad: no joystick device found in /dev/input/event*")
}

func isGamepad(dev *evdev.InputDevice) bool {
	hasFaceButton := false
	for _, code := range dev.CapableEvents(evdev.EV_KEY) {
		if code == btnSouth {
			hasFaceButton = true
			break
		}
	}
	if !hasFaceButton {
		return false
	}
	for _, evType := range dev.CapableTypes() {
		if evType == evdev.EV_ABS {
			return true
		}
	}
	return false
}

// Source reads one gamepad device and reports signal ID press/release
// transitions to a caller-supplied sink, the same shape as the engine's
// ButtonEvent (SignalID, Pressed), so cmd/overlayd can feed it straight
// into Engine.Tick's per-frame event slice.
type Source struct {
	dev *evdev.InputDevice

	mu      sync.Mutex
	closed  bool
	pressed map[int]bool // signal ID -> currently held, for edge-detecting release
}

// NewSource wraps an already-opened evdev device.
func NewSource(dev *evdev.InputDevice) *Source {
	return &Source{dev: dev, pressed: map[int]bool{}}
}

// OnSignal is called once per signal ID edge (press or release).
type OnSignal func(signalID int, pressed bool)

// Start blocks, reading evdev events and reporting signal transitions via
// onSignal, until ctx is cancelled or the device is closed — mirroring the
// teacher's hotkey.Listener.Start loop shape, generalized from one watched
// key code to the whole button/axis event stream.
func (s *Source) Start(ctx context.Context, onSignal OnSignal) error {
	errCh := make(chan error, 1)

	go func() {
		for {
			ev, err := s.dev.ReadOne()
			if err != nil {
				s.mu.Lock()
				closed := s.closed
				s.mu.Unlock()
				if closed {
					errCh <- nil
					return
				}
				errCh <- fmt.Errorf("gamepad: read event: %w", err)
				return
			}
			s.handleEvent(ev, onSignal)
		}
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		<-errCh
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (s *Source) handleEvent(ev *evdev.InputEvent, onSignal OnSignal) {
	switch ev.Type {
	case evdev.EV_KEY:
		if sig, ok := buttonSignal[ev.Code]; ok {
			s.setSignal(sig, ev.Value != 0, onSignal)
		}
	case evdev.EV_ABS:
		s.handleAbs(ev, onSignal)
	}
}

func (s *Source) handleAbs(ev *evdev.InputEvent, onSignal OnSignal) {
	switch ev.Code {
	case absHat0X:
		s.setSignal(SignalDPadLeft, ev.Value < 0, onSignal)
		s.setSignal(SignalDPadRight, ev.Value > 0, onSignal)
	case absHat0Y:
		s.setSignal(SignalDPadUp, ev.Value < 0, onSignal)
		s.setSignal(SignalDPadDown, ev.Value > 0, onSignal)
	case absZ:
		s.setSignal(SignalLeftTrigger, ev.Value >= triggerPressThreshold, onSignal)
	case absRZ:
		s.setSignal(SignalRightTrigger, ev.Value >= triggerPressThreshold, onSignal)
	case absX:
		s.setAxisSignals(SignalLeftStickLeft, SignalLeftStickRight, ev.Value, onSignal)
	case absY:
		s.setAxisSignals(SignalLeftStickUp, SignalLeftStickDown, ev.Value, onSignal)
	case absRX:
		s.setAxisSignals(SignalRightStickLeft, SignalRightStickRight, ev.Value, onSignal)
	case absRY:
		s.setAxisSignals(SignalRightStickUp, SignalRightStickDown, ev.Value, onSignal)
	}
}

// setAxisSignals converts one stick axis's raw value into a pair of
// cardinal pseudo-signals, deadzoned against a typical int16 axis range.
func (s *Source) setAxisSignals(negSignal, posSignal int, value int32, onSignal OnSignal) {
	const axisMax = 32767
	threshold := int32(float64(axisMax) * stickDeadzone)
	s.setSignal(negSignal, value <= -threshold, onSignal)
	s.setSignal(posSignal, value >= threshold, onSignal)
}

// setSignal reports a transition only when pressed differs from the last
// reported state for signalID, so a held stick/trigger/button doesn't
// re-fire every poll.
func (s *Source) setSignal(signalID int, pressed bool, onSignal OnSignal) {
	s.mu.Lock()
	was := s.pressed[signalID]
	if was == pressed {
		s.mu.Unlock()
		return
	}
	s.pressed[signalID] = pressed
	s.mu.Unlock()
	if onSignal != nil {
		onSignal(signalID, pressed)
	}
}

// Stop closes the underlying device.
func (s *Source) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		_ = s.dev.Close()
	}
}
