// Package globalhotkey registers one OS-global keyboard combo that feeds
// the same command resolution path a gamepad button would: Start's onDown/
// onUp callbacks are wired to the same ButtonEvent the gamepad source
// produces, so admin-only commands (ChangeProfile, EditLayout) stay
// reachable without a gamepad attached. Grounded on the teacher's
// internal/hotkey Listener interface and ParseHotkeyCombo combo-string
// grammar, backed here by golang.design/x/hotkey instead of a per-platform
// cgo/evdev backend, since that library already abstracts Linux/macOS/
// Windows behind one registration call.
package globalhotkey

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.design/x/hotkey"
	"golang.design/x/mainthread"
)

// Listener listens for one global hotkey's press/release events. Mirrors
// the teacher's internal/hotkey.Listener shape exactly, so cmd/overlayd
// wires it the same way cmd/palaver/main.go wires its own hotkey listener.
type Listener interface {
	Start(ctx context.Context, onDown func(), onUp func()) error
	Stop()
	KeyName() string
}

var modifierMap = map[string]hotkey.Modifier{
	"CTRL":   hotkey.ModCtrl,
	"SHIFT":  hotkey.ModShift,
	"ALT":    hotkey.ModOption,
	"OPTION": hotkey.ModOption,
	"CMD":    hotkey.ModCmd,
	"WIN":    hotkey.ModCmd,
	"SUPER":  hotkey.ModCmd,
}

var keyMap = map[string]hotkey.Key{
	"A": hotkey.KeyA, "B": hotkey.KeyB, "C": hotkey.KeyC, "D": hotkey.KeyD,
	"E": hotkey.KeyE, "F": hotkey.KeyF, "G": hotkey.KeyG, "H": hotkey.KeyH,
	"I": hotkey.KeyI, "J": hotkey.KeyJ, "K": hotkey.KeyK, "L": hotkey.KeyL,
	"M": hotkey.KeyM, "N": hotkey.KeyN, "O": hotkey.KeyO, "P": hotkey.KeyP,
	"Q": hotkey.KeyQ, "R": hotkey.KeyR, "S": hotkey.KeyS, "T": hotkey.KeyT,
	"U": hotkey.KeyU, "V": hotkey.KeyV, "W": hotkey.KeyW, "X": hotkey.KeyX,
	"Y": hotkey.KeyY, "Z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"F1": hotkey.KeyF1, "F2": hotkey.KeyF2, "F3": hotkey.KeyF3, "F4": hotkey.KeyF4,
	"F5": hotkey.KeyF5, "F6": hotkey.KeyF6, "F7": hotkey.KeyF7, "F8": hotkey.KeyF8,
	"F9": hotkey.KeyF9, "F10": hotkey.KeyF10, "F11": hotkey.KeyF11, "F12": hotkey.KeyF12,
	"SPACE": hotkey.KeySpace, "RETURN": hotkey.KeyReturn, "ENTER": hotkey.KeyReturn,
	"ESCAPE": hotkey.KeyEscape, "ESC": hotkey.KeyEscape,
	"TAB": hotkey.KeyTab, "DELETE": hotkey.KeyDelete, "BACKSPACE": hotkey.KeyDelete,
	"UP": hotkey.KeyUp, "DOWN": hotkey.KeyDown, "LEFT": hotkey.KeyLeft, "RIGHT": hotkey.KeyRight,
}

// ParseHotkeyCombo parses a "Mod+Mod+Key" combo string, e.g.
// "Ctrl+Shift+F12" or "Alt+Space", into golang.design/x/hotkey's modifier
// and key values. The grammar matches the teacher's ParseHotkeyCombo: every
// segment but the last is a modifier, the last segment is the key.
func ParseHotkeyCombo(combo string) ([]hotkey.Modifier, hotkey.Key, error) {
	combo = strings.TrimSpace(combo)
	if combo == "" {
		return nil, 0, fmt.Errorf("globalhotkey: empty hotkey combo")
	}

	parts := strings.Split(combo, "+")
	if len(parts) < 2 {
		return nil, 0, fmt.Errorf("globalhotkey: hotkey must be modifier+key (e.g. Ctrl+F12), got: %s", combo)
	}

	var mods []hotkey.Modifier
	for _, part := range parts[:len(parts)-1] {
		part = strings.ToUpper(strings.TrimSpace(part))
		mod, ok := modifierMap[part]
		if !ok {
			return nil, 0, fmt.Errorf("globalhotkey: unknown modifier %q (valid: Ctrl, Shift, Alt, Win)", part)
		}
		mods = append(mods, mod)
	}

	last := strings.ToUpper(strings.TrimSpace(parts[len(parts)-1]))
	key, ok := keyMap[last]
	if !ok {
		return nil, 0, fmt.Errorf("globalhotkey: unknown key %q", last)
	}
	return mods, key, nil
}

// listener is the Listener implementation backed by golang.design/x/hotkey.
// Registration and unregistration run bound to the OS main thread via
// golang.design/x/mainthread (event channels are read on Start's own
// goroutine), which the library requires on platforms whose
// hotkey APIs are thread-affine (Windows message pumps, Cocoa run loops).
type listener struct {
	hk      *hotkey.Hotkey
	keyName string

	mu      sync.Mutex
	stopped bool
}

// NewListener builds a Listener for the given combo string, without
// registering it yet; Start performs registration.
func NewListener(combo string) (Listener, error) {
	mods, key, err := ParseHotkeyCombo(combo)
	if err != nil {
		return nil, err
	}
	return &listener{hk: hotkey.New(mods, key), keyName: combo}, nil
}

// Start registers the hotkey and blocks, dispatching onDown on every key
// down event and onUp on every key up event, until ctx is cancelled; Stop
// unregisters the hotkey but does not make Start return. Registration and
// unregistration run on the main thread per
// golang.design/x/mainthread's contract; callers must have already called
// mainthread.Init(fn) and be running inside that fn (cmd/overlayd does this
// in its entrypoint, mirroring the teacher's main.go structure).
func (l *listener) Start(ctx context.Context, onDown func(), onUp func()) error {
	var regErr error
	mainthread.Call(func() {
		regErr = l.hk.Register()
	})
	if regErr != nil {
		return fmt.Errorf("globalhotkey: registering %s: %w", l.keyName, regErr)
	}
	defer l.Stop()

	down := l.hk.Keydown()
	up := l.hk.Keyup()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-down:
			if onDown != nil {
				onDown()
			}
		case <-up:
			if onUp != nil {
				onUp()
			}
		}
	}
}

// Stop unregisters the hotkey; safe to call more than once.
func (l *listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	mainthread.Call(func() {
		_ = l.hk.Unregister()
	})
}

// KeyName returns the combo string the listener was built from.
func (l *listener) KeyName() string { return l.keyName }
