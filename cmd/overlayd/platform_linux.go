//go:build linux

package main

import (
	"context"
	"log"

	"github.com/Danondso/gamepadoverlay/internal/dispatcher"
	"github.com/Danondso/gamepadoverlay/internal/engine"
	"github.com/Danondso/gamepadoverlay/internal/gamepad"
)

func newSink() (dispatcher.Sink, error) {
	return dispatcher.NewUinputSink("gamepadoverlay")
}

// runGamepadSource opens the first evdev joystick device found and feeds
// its signal transitions into events until ctx is cancelled, logging and
// returning cleanly if no gamepad is attached so cmd/overlayd can still run
// headless behind internal/globalhotkey alone.
func runGamepadSource(ctx context.Context, devicePath string, events chan<- engine.ButtonEvent, logger *log.Logger) {
	dev, err := gamepad.FindGamepad(devicePath)
	if err != nil {
		logger.Printf("gamepad: %v (continuing without a physical gamepad)", err)
		return
	}
	src := gamepad.NewSource(dev)
	err = src.Start(ctx, func(signalID int, pressed bool) {
		select {
		case events <- engine.ButtonEvent{SignalID: signalID, Pressed: pressed}:
		case <-ctx.Done():
		}
	})
	if err != nil && ctx.Err() == nil {
		logger.Printf("gamepad: listener stopped: %v", err)
	}
}
