package engine

import (
	"github.com/Danondso/gamepadoverlay/internal/command"
	"github.com/Danondso/gamepadoverlay/internal/hotspotmap"
	"github.com/Danondso/gamepadoverlay/internal/inputmap"
	"github.com/Danondso/gamepadoverlay/internal/painter"
)

// searchNeighborhood is how many grid cells out from the cursor's own cell
// candidatesNear searches; hotspots outside that square of cells are never
// candidates. The grid's cell size already bounds the jump distances §4.E's
// scoring constants expect, so a handful of rings around the cursor covers
// the candidates without scanning the whole active set every tick.
const searchNeighborhood = 3

// wireScheduler registers the hotspot-map pipeline's per-task work, in the
// precedence order §4.E defines: size -> normalize -> active arrays -> grid
// -> (begin search ->) one cached result per cardinal direction.
func (e *Engine) wireScheduler() {
	e.Sched.SetStep(hotspotmap.TaskTargetSize, func() {})
	e.Sched.SetStep(hotspotmap.TaskNormalize, e.stepNormalize)
	e.Sched.SetStep(hotspotmap.TaskActiveArrays, e.stepActiveArrays)
	e.Sched.SetStep(hotspotmap.TaskAddToGrid, e.stepAddToGrid)
	e.Sched.SetStep(hotspotmap.TaskBeginSearch, func() {})
	e.Sched.SetStep(hotspotmap.TaskFetchFromGrid, func() {})
	e.Sched.SetStep(hotspotmap.TaskNextInDirLeft, e.stepSearch(command.DirLeft))
	e.Sched.SetStep(hotspotmap.TaskNextInDirRight, e.stepSearch(command.DirRight))
	e.Sched.SetStep(hotspotmap.TaskNextInDirUp, e.stepSearch(command.DirUp))
	e.Sched.SetStep(hotspotmap.TaskNextInDirDown, e.stepSearch(command.DirDown))
	// The diagonal task slots exist in the scheduler's precedence ordering
	// for the original's eight-way stick search; command.Direction only
	// carries the four cardinal values at this layer (see DESIGN.md), so
	// nothing ever requests them and they stay no-ops.
	e.Sched.SetStep(hotspotmap.TaskNextInDirUpLeft, func() {})
	e.Sched.SetStep(hotspotmap.TaskNextInDirUpRight, func() {})
	e.Sched.SetStep(hotspotmap.TaskNextInDirDownLeft, func() {})
	e.Sched.SetStep(hotspotmap.TaskNextInDirDownRight, func() {})
}

func (e *Engine) stepNormalize() {
	scaleFactor := e.target.Rect.W
	if e.target.Rect.H > scaleFactor {
		scaleFactor = e.target.Rect.H
	}
	for i := range e.IM.Hotspots {
		h := &e.IM.Hotspots[i]
		if h.Invalidated {
			continue
		}
		px, py := e.hotspotPixel(h)
		e.normPoints[h.ID] = hotspotmap.Point{
			X: hotspotmap.Normalize(px-e.target.Rect.X, scaleFactor),
			Y: hotspotmap.Normalize(py-e.target.Rect.Y, scaleFactor),
		}
	}
	e.Sched.Request(hotspotmap.TaskActiveArrays)
}

func (e *Engine) stepActiveArrays() {
	e.candidateIDs = e.candidateIDs[:0]
	for i := range e.IM.Hotspots {
		h := &e.IM.Hotspots[i]
		if !h.Invalidated {
			e.candidateIDs = append(e.candidateIDs, h.ID)
		}
	}
	e.Sched.Request(hotspotmap.TaskAddToGrid)
}

func (e *Engine) stepAddToGrid() {
	e.Grid.Reset()
	for _, id := range e.candidateIDs {
		e.Grid.Add(id, e.normPoints[id])
	}
	e.Sched.MarkDependents(hotspotmap.TaskBeginSearch)
}

// stepSearch returns the per-direction task work: gather nearby candidates
// from the grid and run the directional scoring search, caching the result
// for GetNextHotspotInDir.
func (e *Engine) stepSearch(dir command.Direction) hotspotmap.StepFunc {
	return func() {
		e.dirResults[dir] = hotspotmap.NextInDir(e.cursor, dir, e.candidatesNear(e.cursor), hotspotmap.DefaultMinJumpDist)
	}
}

func (e *Engine) candidatesNear(cursor hotspotmap.Point) []hotspotmap.Candidate {
	gx, gy := hotspotmap.GridCell(cursor.X, cursor.Y)
	ids := e.Grid.CellsInRect(gx-searchNeighborhood, gy-searchNeighborhood, gx+searchNeighborhood, gy+searchNeighborhood)
	out := make([]hotspotmap.Candidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, hotspotmap.Candidate{Index: id, Pos: e.Grid.Point(id)})
	}
	return out
}

// GetNextHotspotInDir is the synchronous forcing operation §5 names: it
// drives the scheduler through every prerequisite task before returning,
// rather than waiting for ProcessOne to reach it over several ticks.
func (e *Engine) GetNextHotspotInDir(dir command.Direction) hotspotmap.SearchResult {
	e.Sched.Force(taskForCardinal(dir))
	return e.dirResults[dir]
}

func taskForCardinal(dir command.Direction) hotspotmap.Task {
	switch dir {
	case command.DirLeft:
		return hotspotmap.TaskNextInDirLeft
	case command.DirRight:
		return hotspotmap.TaskNextInDirRight
	case command.DirUp:
		return hotspotmap.TaskNextInDirUp
	default:
		return hotspotmap.TaskNextInDirDown
	}
}

// hotspotPixel resolves a hotspot's current screen position: its anchor
// fraction of the target window's size, plus its authored offset scaled by
// the current UI scale, per spec.md §3/§6's coordinate definition.
func (e *Engine) hotspotPixel(h *inputmap.Hotspot) (int, int) {
	tw := e.target.Rect
	x := tw.X + int(int64(h.X.Anchor)*int64(tw.W)/65535) + int(float64(h.X.Offset)*e.target.UIScale)
	y := tw.Y + int(int64(h.Y.Anchor)*int64(tw.H)/65535) + int(float64(h.Y.Offset)*e.target.UIScale)
	return x, y
}

// hotspotRect resolves a hotspot's full rectangle (position plus its scaled
// width/height), for the painter's Hotspots/Highlight layout styles.
func (e *Engine) hotspotRect(h *inputmap.Hotspot) painter.Rect {
	x, y := e.hotspotPixel(h)
	return painter.Rect{
		X: x, Y: y,
		W: int(float32(h.W) * h.Scale * float32(e.target.UIScale)),
		H: int(float32(h.H) * h.Scale * float32(e.target.UIScale)),
	}
}

// lookupHotspotPixel implements dispatcher.HotspotLookup for the VK-sequence
// mouse-jump tag. The tag carries the hotspot ID the parser's "Jump:" token
// resolved through HotspotIDByRef; the hotspot sits at index
// ID-inputmap.HotspotIDFirstOrdinary of the hotspot table.
func (e *Engine) lookupHotspotPixel(idx int) (x, y int, ok bool) {
	id := idx
	if id < inputmap.HotspotIDFirstOrdinary || id-inputmap.HotspotIDFirstOrdinary >= len(e.IM.Hotspots) {
		return 0, 0, false
	}
	h := &e.IM.Hotspots[id-inputmap.HotspotIDFirstOrdinary]
	if h.Invalidated {
		return 0, 0, false
	}
	px, py := e.hotspotPixel(h)
	return px, py, true
}

// lookupKeyBindSeq implements dispatcher.KeyBindLookup for the VK-sequence
// trigger-keybind tag: it returns the raw byte sequence of the key-bind's
// first TapKey/VKeySequence command. A key-bind whose commands are
// something other than raw key emission (e.g. it opens a menu) has no byte
// sequence to hand back — the dispatcher's byte-level re-enqueue path only
// ever applies to keybinds authored as plain key macros; anything richer is
// reached through TriggerKeyBind at the command layer instead (see
// runKeyBind), not through this lookup.
func (e *Engine) lookupKeyBindSeq(idx int) ([]byte, bool) {
	if idx < 0 || idx >= len(e.IM.KeyBinds) {
		return nil, false
	}
	for _, cmdIdx := range e.IM.KeyBinds[idx].Commands {
		if cmdIdx < 0 || cmdIdx >= len(e.IM.Commands) {
			continue
		}
		switch c := e.IM.Commands[cmdIdx].(type) {
		case command.TapKey:
			return c.VKeySeq, true
		case command.VKeySequence:
			return c.VKeySeq, true
		}
	}
	return nil, false
}
