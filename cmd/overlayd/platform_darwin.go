//go:build darwin

package main

import (
	"context"
	"log"

	"github.com/Danondso/gamepadoverlay/internal/dispatcher"
	"github.com/Danondso/gamepadoverlay/internal/engine"
)

func newSink() (dispatcher.Sink, error) {
	return dispatcher.NewCGEventSink(0, 0), nil
}

// runGamepadSource is a no-op on macOS: reading a joystick device there
// needs IOKit's HID manager, which no example in this codebase's pack
// demonstrates, so the only way to drive admin commands on this platform is
// internal/globalhotkey's fallback trigger.
func runGamepadSource(ctx context.Context, devicePath string, events chan<- engine.ButtonEvent, logger *log.Logger) {
	logger.Printf("gamepad: no joystick source implemented for darwin, use the fallback hotkey")
	<-ctx.Done()
}
