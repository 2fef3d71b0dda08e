// Package engine sequences every other component within one tick, per §5's
// ordering guarantee: profile changes, then input_map reload, then the
// dependent hotspot_map/menus/window_painter caches, then gamepad-driven
// commands, then the dispatcher flush. It is the one place that holds a
// reference to every other package, mirroring how the teacher's cmd/palaver
// wires its TUI model, mic checker, and config together in main.go, except
// here the wiring runs every frame instead of once at startup.
package engine

import (
	"log"
	"time"

	"github.com/Danondso/gamepadoverlay/internal/command"
	"github.com/Danondso/gamepadoverlay/internal/dispatcher"
	"github.com/Danondso/gamepadoverlay/internal/errs"
	"github.com/Danondso/gamepadoverlay/internal/hotspotmap"
	"github.com/Danondso/gamepadoverlay/internal/inputmap"
	"github.com/Danondso/gamepadoverlay/internal/menus"
	"github.com/Danondso/gamepadoverlay/internal/overlay"
	"github.com/Danondso/gamepadoverlay/internal/painter"
	"github.com/Danondso/gamepadoverlay/internal/profile"
)

// ButtonEvent is one gamepad signal transition this tick: a physical button
// (signal ID 0..ButtonCount-1) or a key-bind cycle's current signal ID
// (ButtonCount + key-bind index, per KeyBindCycle.SignalID).
type ButtonEvent struct {
	SignalID int
	Pressed  bool
}

// TargetWindow is the current target window's screen rect and UI scale, as
// last reported by the platform window tracker — real window tracking is
// out of scope (spec.md's Non-goals), so main.go supplies this from
// whatever it can observe.
type TargetWindow struct {
	Rect    painter.Rect
	UIScale float64
}

// Engine is the per-process tick sequencer.
type Engine struct {
	Store *profile.Store
	IM    *inputmap.InputMap

	Cache    *painter.Cache
	Grid     *hotspotmap.Grid
	Sched    *hotspotmap.Scheduler
	Layers   *inputmap.LayerStack
	Dispatch *dispatcher.Dispatcher
	Errors   *errs.Log
	Logger   *log.Logger

	layersByName map[string]int // layer name -> index into IM.Layers (§9: indices, not pointers)

	menuStates map[int]*menus.State   // root menu ID -> runtime state
	overlays   map[int]*overlay.State // root menu ID -> overlay alpha state
	activeRoot int                    // root menu ID currently on top, -1 if none

	target TargetWindow

	normPoints   map[int]hotspotmap.Point // hotspot ID -> normalized position
	candidateIDs []int                    // active (non-invalidated) ordinary hotspot IDs
	cursor       hotspotmap.Point
	dirResults   map[command.Direction]hotspotmap.SearchResult

	heldLayers map[int]int // signal ID -> layer ID pushed by HoldControlsLayer

	curSignalID int // signal ID of the key-bind currently executing, for Defer
	curLayerIdx int // stack position that resolved curSignalID, for Defer

	profileDirty bool
}

// defaultAlpha backs a menu with no explicit WindowAlphaInfo cache entry yet
// (the first frame a menu is opened, before any profile Appearance section
// populates one).
var defaultAlpha = painter.WindowAlphaInfo{
	FadeInDelayMS: 0, FadeInRateMS: 120,
	FadeOutDelayMS: 0, FadeOutRateMS: 150,
	MaxAlpha: 1.0, InactiveAlpha: 0.4, InactiveTimeoutMS: 4000,
}

// New builds an Engine from an already-loaded profile store and input map,
// writing synthetic input through sink.
func New(store *profile.Store, im *inputmap.InputMap, sink dispatcher.Sink, logger *log.Logger) *Engine {
	e := &Engine{
		Store:      store,
		IM:         im,
		Cache:      painter.NewCache(),
		Grid:       hotspotmap.NewGrid(hotspotmap.GridSize),
		Sched:      hotspotmap.NewScheduler(),
		Layers:     &inputmap.LayerStack{},
		Errors:     errs.NewLog(256),
		Logger:     logger,
		menuStates: map[int]*menus.State{},
		overlays:   map[int]*overlay.State{},
		activeRoot: -1,
		normPoints: map[int]hotspotmap.Point{},
		dirResults: map[command.Direction]hotspotmap.SearchResult{},
		heldLayers: map[int]int{},
	}
	e.indexLayers()
	e.Dispatch = dispatcher.New(sink, e.lookupKeyBindSeq, e.lookupHotspotPixel)
	e.wireScheduler()
	e.Sched.MarkDependents(hotspotmap.TaskTargetSize)
	return e
}

func (e *Engine) indexLayers() {
	e.layersByName = map[string]int{}
	for i := range e.IM.Layers {
		e.layersByName[e.IM.Layers[i].Name] = i
	}
}

// SetTarget updates the target window rect/scale, invalidating the
// hotspot-map pipeline (a resize changes every normalized coordinate).
func (e *Engine) SetTarget(t TargetWindow) {
	e.target = t
	e.Sched.MarkDependents(hotspotmap.TaskTargetSize)
}

// MarkProfileChanged flags that the profile store was edited (an external
// reload, or a live SetVariable/command edit) and should be reloaded into a
// fresh InputMap on the next Tick, per §5's first step.
func (e *Engine) MarkProfileChanged() { e.profileDirty = true }

// Tick runs one logical frame, in §5's mandated order: profile reload, then
// the hotspot-map pipeline's one bounded task step, then gamepad-driven
// commands, then overlay alpha advance, then the dispatcher flush.
func (e *Engine) Tick(dt time.Duration, events []ButtonEvent) error {
	if e.profileDirty {
		if err := e.reloadInputMap(); err != nil {
			e.Errors.Record(errs.Wrap(errs.Structural, "", "", err, "engine: reloading input map"))
		}
		e.profileDirty = false
	}

	e.Sched.ProcessOne()

	for _, ev := range events {
		e.handleEvent(ev)
	}

	for id, st := range e.overlays {
		visible := e.activeRoot == id
		st.Advance(dt, visible, visible)
	}

	return e.Dispatch.Tick(dt)
}

// reloadInputMap re-parses the backing store into a fresh InputMap, per §5:
// "input_map.loadProfileChanges, then dependent caches." A profile edit
// invalidates every menu/hotspot/layer ID space, so open sub-menus and
// caches are dropped rather than migrated — the next OpenSubMenu command
// from the (re-parsed) profile re-populates them.
func (e *Engine) reloadInputMap() error {
	fresh, err := inputmap.Load(e.Store)
	if err != nil {
		return err
	}
	e.IM = fresh
	e.indexLayers()
	e.menuStates = map[int]*menus.State{}
	e.overlays = map[int]*overlay.State{}
	e.activeRoot = -1
	e.Cache = painter.NewCache()
	e.normPoints = map[int]hotspotmap.Point{}
	e.candidateIDs = nil
	e.dirResults = map[command.Direction]hotspotmap.SearchResult{}
	e.heldLayers = map[int]int{}
	e.Sched.MarkDependents(hotspotmap.TaskTargetSize)
	return nil
}

// handleEvent resolves a signal through the active layer stack to a
// key-bind and runs its commands on press; on release it only pops any
// layer a HoldControlsLayer command pushed for that signal, since a
// momentary layer's effect depends on release, not press.
func (e *Engine) handleEvent(ev ButtonEvent) {
	if !ev.Pressed {
		if layerID, ok := e.heldLayers[ev.SignalID]; ok {
			e.Layers.Remove(layerID)
			delete(e.heldLayers, ev.SignalID)
		}
		return
	}

	top := len(e.Layers.IDs()) - 1
	kbID, layerIdx, ok, err := e.Layers.ResolveFrom(top, ev.SignalID, e.IM.Layers, e.layersByName)
	if err != nil {
		e.Errors.Record(errs.Wrap(errs.Structural, "", "", err, "engine: resolving layer stack"))
		return
	}
	if !ok || kbID < 0 || kbID >= len(e.IM.KeyBinds) {
		return
	}
	e.curSignalID = ev.SignalID
	e.curLayerIdx = layerIdx
	e.runKeyBind(kbID, ev.SignalID, 0)
}

// runKeyBind executes every command a key-bind carries, in order. depth
// guards the (already load-time-rejected) possibility of a TriggerKeyBind
// cycle slipping past Validate, so a bug there degrades to a bounded no-op
// instead of a stack overflow.
func (e *Engine) runKeyBind(kbID, signalID, depth int) {
	if depth > 8 || kbID < 0 || kbID >= len(e.IM.KeyBinds) {
		return
	}
	kb := &e.IM.KeyBinds[kbID]
	for _, cmdIdx := range kb.Commands {
		if cmdIdx < 0 || cmdIdx >= len(e.IM.Commands) {
			continue
		}
		e.execCommand(e.IM.Commands[cmdIdx], signalID, depth)
	}
}
