// Package appconfig holds the ambient settings that sit outside the
// profile grammar spec.md §4.A describes: where the profile lives, how
// big the overlay should render, which window to target, and the optional
// fallback hotkey for driving the command resolver without a gamepad
// attached. Grounded on the teacher's internal/config split between typed
// struct config (TOML, this package) and free-form domain text (the
// profile store), down to the atomic save/default-on-missing-file Load
// contract.
package appconfig

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// HotkeyConfig configures internal/globalhotkey's fallback trigger: an
// OS-global keyboard combo that feeds the same command.Command resolution
// path a gamepad button would, for headless/dev use (see SPEC_FULL.md's
// Domain Stack entry for golang.design/x/hotkey).
type HotkeyConfig struct {
	// Combo is a "Mod+Mod+Key" string, e.g. "Ctrl+Shift+F12"; empty disables
	// the fallback hotkey entirely.
	Combo string `toml:"combo"`
	// SignalID is the gamepad signal ID the combo should synthesize a press
	// for, e.g. the signal bound to ChangeProfile/EditLayout in the profile.
	SignalID int `toml:"signal_id"`
}

// TargetConfig identifies the window the overlay tracks and paints over.
// Real window tracking is out of scope (spec.md's Non-goals); cmd/overlayd
// does not read these fields and uses a fixed 1920x1080 target rect.
type TargetConfig struct {
	TitlePattern   string `toml:"title_pattern"`
	ProcessPattern string `toml:"process_pattern"`
}

// Config is the top-level ambient configuration.
type Config struct {
	ProfilePath string       `toml:"profile_path"`
	UIScale     float64      `toml:"ui_scale"`
	Target      TargetConfig `toml:"target"`
	Hotkey      HotkeyConfig `toml:"hotkey"`
	LogLevel    string       `toml:"log_level"` // "debug", "info", or "" (discard)
}

// Default returns a Config populated with all default values.
func Default() *Config {
	return &Config{
		ProfilePath: DefaultProfilePath(),
		UIScale:     1.0,
		Target: TargetConfig{
			TitlePattern:   "",
			ProcessPattern: "",
		},
		Hotkey: HotkeyConfig{
			Combo:    "",
			SignalID: 0,
		},
		LogLevel: "",
	}
}

// DefaultPath returns the default config file path
// (~/.config/gamepadoverlay/config.toml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gamepadoverlay", "config.toml")
}

// DefaultProfilePath returns the default profile file path
// (~/.config/gamepadoverlay/profile.txt).
func DefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gamepadoverlay", "profile.txt")
}

// Save writes cfg as TOML to path, creating parent directories if needed.
// The write is atomic: data lands in a temp file first and is renamed into
// place, so a crash mid-write cannot corrupt the existing config.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".gamepadoverlay-config-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// Load reads the TOML config from path. If the file does not exist, it
// returns the default config without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
