package globalhotkey

import (
	"testing"

	"golang.design/x/hotkey"
)

func TestParseHotkeyComboModifierAndKey(t *testing.T) {
	mods, key, err := ParseHotkeyCombo("Ctrl+Shift+F12")
	if err != nil {
		t.Fatalf("ParseHotkeyCombo: %v", err)
	}
	if len(mods) != 2 || mods[0] != hotkey.ModCtrl || mods[1] != hotkey.ModShift {
		t.Errorf("unexpected modifiers: %v", mods)
	}
	if key != hotkey.KeyF12 {
		t.Errorf("expected KeyF12, got %v", key)
	}
}

func TestParseHotkeyComboSingleModifier(t *testing.T) {
	mods, key, err := ParseHotkeyCombo("Alt+Space")
	if err != nil {
		t.Fatalf("ParseHotkeyCombo: %v", err)
	}
	if len(mods) != 1 || mods[0] != hotkey.ModOption {
		t.Errorf("unexpected modifiers: %v", mods)
	}
	if key != hotkey.KeySpace {
		t.Errorf("expected KeySpace, got %v", key)
	}
}

func TestParseHotkeyComboRejectsEmpty(t *testing.T) {
	if _, _, err := ParseHotkeyCombo(""); err == nil {
		t.Error("expected error for empty combo")
	}
}

func TestParseHotkeyComboRejectsBareKey(t *testing.T) {
	if _, _, err := ParseHotkeyCombo("F12"); err == nil {
		t.Error("expected error for a combo with no modifier")
	}
}

func TestParseHotkeyComboRejectsUnknownModifier(t *testing.T) {
	if _, _, err := ParseHotkeyCombo("Frobnicate+F12"); err == nil {
		t.Error("expected error for unknown modifier")
	}
}

func TestParseHotkeyComboRejectsUnknownKey(t *testing.T) {
	if _, _, err := ParseHotkeyCombo("Ctrl+Nonexistent"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestNewListenerKeyName(t *testing.T) {
	l, err := NewListener("Ctrl+F9")
	if err != nil {
		t.Fatalf("NewListener: %v", err)
	}
	if l.KeyName() != "Ctrl+F9" {
		t.Errorf("expected KeyName to echo the combo, got %s", l.KeyName())
	}
}

func TestNewListenerRejectsInvalidCombo(t *testing.T) {
	if _, err := NewListener("garbage"); err == nil {
		t.Error("expected error constructing a listener from an invalid combo")
	}
}
