// Package keycode maps the profile's human-readable key names (and the
// command grammar's modifier keywords) to evdev virtual-key codes, the same
// key-name vocabulary the teacher's hotkey listener uses to recognize a
// configured global hotkey, now reused to both recognize and synthesize key
// presses. Codes are the raw Linux input-event-codes.h numbers, written out
// the same way the teacher's keyNameMap does, rather than named constants
// from the evdev package.
package keycode

import (
	"fmt"
	"strings"

	evdev "github.com/holoplot/go-evdev"
)

// VK is a virtual-key code in evdev's EV_KEY numbering. Using evdev's own
// code space (rather than inventing a parallel one) means the dispatcher's
// uinput sink never needs to translate.
type VK = evdev.EvCode

// VK-space names for the three control items of the VK-sequence wire
// format (§6). They sit above any real evdev key code (all of which are
// < 0x300) so they can never collide with a legitimate key. The encoded
// byte string does not carry these values: sequence.go writes the one-byte
// tags pauseTagByte/triggerTagByte/jumpTagByte instead.
const (
	// SeqPause marks a millisecond delay, encoded as the pause tag byte, hi,
	// lo (each with the high bit set, encoding 7 bits), big-endian, 1-16383ms.
	SeqPause VK = 0x400
	// SeqTriggerKeyBind marks an embedded key-bind reference by index.
	SeqTriggerKeyBind VK = 0x401
	// SeqMouseJump marks a cursor jump to a hotspot by index.
	SeqMouseJump VK = 0x402
)

// Modifier is one of the four modifier keys the command grammar recognizes.
type Modifier int

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModCtrl  Modifier = 1 << 1
	ModAlt   Modifier = 1 << 2
	ModWin   Modifier = 1 << 3
)

var modifierKeywords = map[string]Modifier{
	"SHIFT":   ModShift,
	"CTRL":    ModCtrl,
	"CONTROL": ModCtrl,
	"ALT":     ModAlt,
	"WIN":     ModWin,
	"WINDOWS": ModWin,
	"SUPER":   ModWin,
	"CMD":     ModWin,
}

// modifierKeyCodes gives the left-hand evdev key code emitted for each
// modifier bit when the dispatcher needs to hold/release it.
var modifierKeyCodes = map[Modifier]VK{
	ModShift: 42,  // KEY_LEFTSHIFT
	ModCtrl:  29,  // KEY_LEFTCTRL
	ModAlt:   56,  // KEY_LEFTALT
	ModWin:   125, // KEY_LEFTMETA
}

// KeyCodeForModifier returns the evdev code used to hold/release a modifier.
func KeyCodeForModifier(m Modifier) (VK, bool) {
	code, ok := modifierKeyCodes[m]
	return code, ok
}

// Mouse buttons, in evdev's BTN_* range (disjoint from KEY_* in the kernel's
// uapi, so no remapping against the reserved sequence codes is needed).
const (
	MouseLeft   VK = 0x110 // BTN_LEFT
	MouseRight  VK = 0x111 // BTN_RIGHT
	MouseMiddle VK = 0x112 // BTN_MIDDLE
)

// nameMap maps upper-cased key name strings to evdev codes. It is seeded
// from the exact table the teacher's hotkey listener recognized, extended
// with the named punctuation keys a game-binding profile is likely to
// reference.
var nameMap = map[string]VK{
	"ESC": 1, "ESCAPE": 1,
	"1": 2, "2": 3, "3": 4, "4": 5, "5": 6, "6": 7, "7": 8, "8": 9, "9": 10, "0": 11,
	"MINUS": 12, "EQUAL": 13, "BACKSPACE": 14, "TAB": 15,
	"Q": 16, "W": 17, "E": 18, "R": 19, "T": 20, "Y": 21, "U": 22, "I": 23, "O": 24, "P": 25,
	"LEFTBRACE": 26, "RIGHTBRACE": 27, "ENTER": 28, "LEFTCTRL": 29,
	"A": 30, "S": 31, "D": 32, "F": 33, "G": 34, "H": 35, "J": 36, "K": 37, "L": 38,
	"SEMICOLON": 39, "APOSTROPHE": 40, "GRAVE": 41, "LEFTSHIFT": 42, "BACKSLASH": 43,
	"Z": 44, "X": 45, "C": 46, "V": 47, "B": 48, "N": 49, "M": 50,
	"COMMA": 51, "DOT": 52, "PERIOD": 52, "SLASH": 53, "RIGHTSHIFT": 54, "KPASTERISK": 55,
	"LEFTALT": 56, "SPACE": 57, "CAPSLOCK": 58,
	"F1": 59, "F2": 60, "F3": 61, "F4": 62, "F5": 63, "F6": 64, "F7": 65, "F8": 66,
	"F9": 67, "F10": 68, "NUMLOCK": 69, "SCROLLLOCK": 70,
	"F11": 87, "F12": 88, "RIGHTCTRL": 97, "RIGHTALT": 100,
	"HOME": 102, "UP": 103, "PAGEUP": 104, "LEFT": 105, "RIGHT": 106, "END": 107, "DOWN": 108,
	"PAGEDOWN": 109, "INSERT": 110, "DELETE": 111, "PAUSEKEY": 119,
	"LEFTMETA": 125, "RIGHTMETA": 126,
	"F13": 183, "F14": 184, "F15": 185, "F16": 186, "F17": 187, "F18": 188,
	"F19": 189, "F20": 190, "F21": 191, "F22": 192, "F23": 193, "F24": 194,
}

// ByName looks up a single (non-modifier) key name, case-insensitively.
// Names may optionally carry the evdev "KEY_" prefix for parity with how
// the teacher's config accepted both bare names and evdev names.
func ByName(name string) (VK, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "KEY_")
	code, ok := nameMap[n]
	return code, ok
}

// ModifierByName recognizes a modifier keyword ("Shift", "Ctrl", "Alt",
// "Win") case-insensitively, or false if name isn't one.
func ModifierByName(name string) (Modifier, bool) {
	m, ok := modifierKeywords[strings.ToUpper(strings.TrimSpace(name))]
	return m, ok
}

// JoinedModifierKey recognizes one-word joined forms like "Shift2", where
// the trailing digit is a disambiguator the original grammar uses for
// left/right-hand variants (1 == left, 2 == right). The digit is accepted
// and discarded: both forms return the same Modifier, and
// KeyCodeForModifier always yields the left-hand key code.
func JoinedModifierKey(word string) (Modifier, bool) {
	upper := strings.ToUpper(word)
	for name, mod := range modifierKeywords {
		if upper == name+"1" || upper == name+"2" {
			return mod, true
		}
	}
	return ModNone, false
}

// Name returns the canonical name for a VK code, or "" if unknown. It is the
// left inverse of ByName for every code ByName can produce.
func Name(code VK) string {
	for name, c := range nameMap {
		if c == code {
			return name
		}
	}
	return ""
}

// String implements fmt.Stringer for error messages and debug views.
func String(code VK) string {
	if n := Name(code); n != "" {
		return n
	}
	return fmt.Sprintf("0x%x", uint16(code))
}
