//go:build linux

package gamepad

import (
	"testing"

	evdev "github.com/holoplot/go-evdev"
)

func newTestSource() *Source {
	return &Source{pressed: map[int]bool{}}
}

func TestSetSignalOnlyFiresOnEdge(t *testing.T) {
	s := newTestSource()
	var events []struct {
		id      int
		pressed bool
	}
	record := func(id int, pressed bool) {
		events = append(events, struct {
			id      int
			pressed bool
		}{id, pressed})
	}

	s.setSignal(SignalA, true, record)
	s.setSignal(SignalA, true, record) // repeat, no new edge
	s.setSignal(SignalA, false, record)

	if len(events) != 2 {
		t.Fatalf("expected 2 edges, got %d: %v", len(events), events)
	}
	if !events[0].pressed || events[1].pressed {
		t.Errorf("unexpected edge sequence: %v", events)
	}
}

func TestSetAxisSignalsDeadzone(t *testing.T) {
	s := newTestSource()
	var got []struct {
		id      int
		pressed bool
	}
	record := func(id int, pressed bool) {
		got = append(got, struct {
			id      int
			pressed bool
		}{id, pressed})
	}

	s.setAxisSignals(SignalLeftStickLeft, SignalLeftStickRight, 100, record)
	if len(got) != 0 {
		t.Fatalf("expected no edges inside deadzone, got %v", got)
	}

	s.setAxisSignals(SignalLeftStickLeft, SignalLeftStickRight, 30000, record)
	found := false
	for _, e := range got {
		if e.id == SignalLeftStickRight && e.pressed {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a right-deflection press past deadzone, got %v", got)
	}

	got = nil
	s.setAxisSignals(SignalLeftStickLeft, SignalLeftStickRight, -30000, record)
	foundRelease, foundLeftPress := false, false
	for _, e := range got {
		if e.id == SignalLeftStickRight && !e.pressed {
			foundRelease = true
		}
		if e.id == SignalLeftStickLeft && e.pressed {
			foundLeftPress = true
		}
	}
	if !foundRelease || !foundLeftPress {
		t.Errorf("expected right release and left press on reversal, got %v", got)
	}
}

func TestButtonSignalMapCoversFaceButtons(t *testing.T) {
	for _, code := range []struct {
		code evdev.EvCode
		want int
	}{
		{btnSouth, SignalA},
		{btnEast, SignalB},
		{btnNorth, SignalY},
		{btnWest, SignalX},
	} {
		if got := buttonSignal[code.code]; got != code.want {
			t.Errorf("buttonSignal[%v] = %d, want %d", code.code, got, code.want)
		}
	}
}
