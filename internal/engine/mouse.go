package engine

import (
	"github.com/Danondso/gamepadoverlay/internal/command"
	"github.com/Danondso/gamepadoverlay/internal/errs"
	"github.com/Danondso/gamepadoverlay/internal/inputmap"
)

// mouseStepPixels is the fixed pixel delta each MoveMouse command applies.
// Neither the command (a cardinal direction only) nor ButtonEvent carries a
// deflection magnitude, so partial stick deflection moves the same amount.
const mouseStepPixels = 8

// wheelStepDelta is one stepped MouseWheel tick's scroll amount.
const wheelStepDelta = 1

func (e *Engine) moveMouse(dir command.Direction) {
	dx, dy := 0, 0
	switch dir {
	case command.DirLeft:
		dx = -mouseStepPixels
	case command.DirRight:
		dx = mouseStepPixels
	case command.DirUp:
		dy = -mouseStepPixels
	case command.DirDown:
		dy = mouseStepPixels
	}
	if dx == 0 && dy == 0 {
		return
	}
	if err := e.Dispatch.MoveMouseRel(dx, dy); err != nil {
		e.Errors.Record(errs.Wrap(errs.Resource, "", "", err, "engine: moving mouse"))
	}
}

func (e *Engine) jumpMouseToHotspot(hotspotID int) {
	idx := hotspotID - inputmap.HotspotIDFirstOrdinary
	if idx < 0 || idx >= len(e.IM.Hotspots) {
		return
	}
	h := &e.IM.Hotspots[idx]
	if h.Invalidated {
		return
	}
	x, y := e.hotspotPixel(h)
	if err := e.Dispatch.MoveMouseTo(x, y); err != nil {
		e.Errors.Record(errs.Wrap(errs.Resource, "", "", err, "engine: jumping mouse to hotspot"))
	}
}

func (e *Engine) scrollWheel(c command.MouseWheel) {
	delta := wheelStepDelta
	if c.Mode == command.WheelJump {
		delta = c.Steps
	}
	if c.Dir == command.DirUp {
		delta = -delta
	}
	if err := e.Dispatch.ScrollWheel(delta); err != nil {
		e.Errors.Record(errs.Wrap(errs.Resource, "", "", err, "engine: scrolling wheel"))
	}
}

// selectHotspot moves the free-floating hotspot cursor (distinct from any
// menu's selection) using the hotspot_map directional search rather than a
// menu's link map, per §4.E's HotspotSelect semantics, and jumps the mouse
// to the winning hotspot's resolved position.
func (e *Engine) selectHotspot(dir command.Direction) {
	res := e.GetNextHotspotInDir(dir)
	if !res.Found {
		return
	}
	e.cursor = e.Grid.Point(res.Index)
	e.jumpMouseToHotspot(res.Index)
}

func (e *Engine) cycleNext(cycleID int, wrap bool, repeat, signalID, depth int) {
	if cycleID < 0 || cycleID >= len(e.IM.KeyBindCycles) {
		return
	}
	n := repeat
	if n < 1 {
		n = 1
	}
	cyc := &e.IM.KeyBindCycles[cycleID]
	for i := 0; i < n; i++ {
		if !wrap && cyc.Pos == len(cyc.Entries)-1 {
			break
		}
		entry := cyc.Advance()
		e.runKeyBind(entry.KeyBindID, signalID, depth+1)
	}
}

func (e *Engine) cyclePrev(cycleID int, wrap bool, repeat, signalID, depth int) {
	if cycleID < 0 || cycleID >= len(e.IM.KeyBindCycles) {
		return
	}
	n := repeat
	if n < 1 {
		n = 1
	}
	cyc := &e.IM.KeyBindCycles[cycleID]
	for i := 0; i < n; i++ {
		if !wrap && cyc.Pos == 0 {
			break
		}
		entry := cyc.Retreat()
		e.runKeyBind(entry.KeyBindID, signalID, depth+1)
	}
}

func (e *Engine) cycleCurrent(cycleID, signalID, depth int) {
	if cycleID < 0 || cycleID >= len(e.IM.KeyBindCycles) {
		return
	}
	entry := e.IM.KeyBindCycles[cycleID].Current()
	e.runKeyBind(entry.KeyBindID, signalID, depth+1)
}

// deferToLowerLayer re-issues the current signal to the next-lower-priority
// layer binding it (SPEC_FULL.md's DeferredCommand supplement): a Defer
// command means "I decline this event, let whoever is beneath me on the
// layer stack handle it instead," resolved entirely within the same tick.
// It resumes the search strictly below the stack position that resolved
// signalID in the first place (e.curLayerIdx), so it never just re-finds
// the same binding that issued the Defer.
func (e *Engine) deferToLowerLayer(signalID, depth int) {
	if signalID != e.curSignalID {
		return
	}
	kbID, layerIdx, ok, err := e.Layers.ResolveFrom(e.curLayerIdx-1, signalID, e.IM.Layers, e.layersByName)
	if err != nil || !ok {
		return
	}
	prevIdx := e.curLayerIdx
	e.curLayerIdx = layerIdx
	e.runKeyBind(kbID, signalID, depth+1)
	e.curLayerIdx = prevIdx
}
