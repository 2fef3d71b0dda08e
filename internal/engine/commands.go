package engine

import (
	"time"

	"github.com/Danondso/gamepadoverlay/internal/command"
	"github.com/Danondso/gamepadoverlay/internal/errs"
	"github.com/Danondso/gamepadoverlay/internal/hotspotmap"
	"github.com/Danondso/gamepadoverlay/internal/inputmap"
	"github.com/Danondso/gamepadoverlay/internal/menus"
	"github.com/Danondso/gamepadoverlay/internal/overlay"
	"github.com/Danondso/gamepadoverlay/internal/painter"
)

// timingFromAlpha converts a cached WindowAlphaInfo (millisecond/float
// fields, suited to profile serialization) into overlay.Timing's
// time.Duration form.
func timingFromAlpha(a painter.WindowAlphaInfo) overlay.Timing {
	return overlay.Timing{
		FadeInDelay:     time.Duration(a.FadeInDelayMS) * time.Millisecond,
		FadeInRate:      time.Duration(a.FadeInRateMS) * time.Millisecond,
		FadeOutDelay:    time.Duration(a.FadeOutDelayMS) * time.Millisecond,
		FadeOutRate:     time.Duration(a.FadeOutRateMS) * time.Millisecond,
		MaxAlpha:        a.MaxAlpha,
		InactiveAlpha:   a.InactiveAlpha,
		InactiveTimeout: time.Duration(a.InactiveTimeoutMS) * time.Millisecond,
	}
}

// execCommand runs cmd's effect, recursing for commands that in turn run
// other commands (TriggerKeyBind, MenuConfirm). depth guards against the
// (load-time-rejected) possibility of a cycle slipping through Validate.
func (e *Engine) execCommand(cmd command.Command, signalID, depth int) {
	if depth > 8 {
		return
	}
	switch c := cmd.(type) {
	case command.TapKey:
		n := c.Repeat
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			e.Dispatch.Enqueue(c.VKeySeq)
		}
	case command.VKeySequence:
		e.Dispatch.Enqueue(c.VKeySeq)
	case command.TriggerKeyBind:
		e.runKeyBind(c.KeyBindID, signalID, depth+1)
	case command.ChatBoxString:
		e.Dispatch.EnqueueChat(e.IM.Parser.Strings.String(c.StringID))

	case command.SetVariable:
		name := e.IM.Parser.Vars.String(c.VariableID)
		e.Store.SetVariable(name, c.Value, c.Temporary)

	case command.AddControlsLayer:
		e.Layers.Push(c.LayerID)
	case command.RemoveControlsLayer:
		if c.LayerID == 0 {
			if top, ok := e.Layers.Top(); ok {
				e.Layers.Remove(top)
			}
			return
		}
		e.Layers.Remove(c.LayerID)
	case command.ReplaceControlsLayer:
		e.Layers.Replace(c.FromLayerID, c.ToLayerID)
	case command.HoldControlsLayer:
		e.Layers.Push(c.LayerID)
		e.heldLayers[signalID] = c.LayerID
	case command.ToggleControlsLayer:
		e.Layers.Toggle(c.LayerID)

	case command.OpenSubMenu:
		e.openMenu(c.MenuID, c.MenuItemID, command.DirNone)
	case command.OpenSideMenu:
		e.openSideMenu(c)
	case command.MenuBack:
		if root, ok := e.rootOf(c.MenuID); ok {
			e.menuState(root).Pop()
		}
	case command.MenuClose:
		e.closeMenu(c.MenuID)
	case command.MenuReset:
		if root, ok := e.rootOf(c.MenuID); ok {
			e.menuState(root).Reset(root, c.ToDefault)
		}
	case command.MenuConfirm:
		e.confirmMenu(c, signalID, depth)
	case command.MenuSelect:
		e.selectMenu(c, signalID, depth)
	case command.MenuEdit:
		// Editing a menu item's own binding is an interactive profile-edit
		// flow (renaming/rebinding via the overlay) that has no synthetic
		// input to emit; out of scope here the same way spec.md's
		// Non-goals exclude config-edit dialogs.

	case command.MoveTurn, command.MoveStrafe, command.MoveLook:
		// Movement commands are themselves authored as key-binds in a real
		// profile (WASD, mouse-look deltas); by the time a ControlsLayer
		// binds a signal to one of these, the profile's own TapKey/
		// VKeySequence commands already carry the actual keys, so these
		// variants are markers consumed by the layer/keybind resolution
		// above rather than independently executable here.
	case command.StartAutoRun:
	case command.MoveMouse:
		e.moveMouse(c.Dir)
	case command.MoveMouseToHotspot:
		e.jumpMouseToHotspot(c.HotspotID)
	case command.MouseWheel:
		e.scrollWheel(c)
	case command.HotspotSelect:
		e.selectHotspot(c.Dir)

	case command.KeyBindCycleNext:
		e.cycleNext(c.CycleID, c.Wrap, c.Repeat, signalID, depth)
	case command.KeyBindCyclePrev:
		e.cyclePrev(c.CycleID, c.Wrap, c.Repeat, signalID, depth)
	case command.KeyBindCycleLast:
		e.cycleCurrent(c.CycleID, signalID, depth)
	case command.KeyBindCycleReset:
		if c.CycleID >= 0 && c.CycleID < len(e.IM.KeyBindCycles) {
			e.IM.KeyBindCycles[c.CycleID].Reset()
		}
	case command.KeyBindCycleSetDefault:
		if c.CycleID >= 0 && c.CycleID < len(e.IM.KeyBindCycles) {
			e.IM.KeyBindCycles[c.CycleID].SetDefault()
		}

	case command.ChangeProfile, command.EditLayout, command.ChangeTargetConfigSyncFile, command.QuitApp:
		// App-lifecycle commands are not handled here: the engine records an
		// errs.Fatal entry, and cmd/overlayd only logs recorded entries, so
		// none of these commands changes the profile or stops the process.
		e.Errors.Record(errs.New(errs.Fatal, "", "", "engine: app-lifecycle command %T requires main.go handling", c))

	case command.Defer:
		e.deferToLowerLayer(signalID, depth)

	case command.Empty, command.DoNothing, command.Unassigned:
		// nothing to do
	case command.Invalid:
		e.Errors.Record(errs.New(errs.Parse, "", "", "engine: invalid command reached execution: %q", c.Raw))
	}
}

// rootOf walks a menu's ParentID chain to its root, the key menuStates/
// overlays are indexed by.
func (e *Engine) rootOf(menuID int) (int, bool) {
	if menuID < 0 || menuID >= len(e.IM.Menus) {
		return 0, false
	}
	id := menuID
	for e.IM.Menus[id].ParentID >= 0 {
		id = e.IM.Menus[id].ParentID
	}
	return id, true
}

func (e *Engine) menuState(rootID int) *menus.State {
	st, ok := e.menuStates[rootID]
	if !ok {
		st = menus.NewState(rootID)
		e.menuStates[rootID] = st
	}
	return st
}

func (e *Engine) overlayState(rootID int) *overlay.State {
	st, ok := e.overlays[rootID]
	if !ok {
		st = overlay.NewState(timingFromAlpha(defaultAlpha))
		e.overlays[rootID] = st
	}
	return st
}

// openMenu pushes menuID onto its root's menu stack as the active overlay,
// seeding its selection at itemID-1 (OpenSubMenu's 1-based convention, 0
// meaning "default"), and building its navigation link map if its style
// needs one.
func (e *Engine) openMenu(menuID, itemID int, enteredFrom command.Direction) {
	if menuID < 0 || menuID >= len(e.IM.Menus) {
		return
	}
	root, _ := e.rootOf(menuID)
	st := e.menuState(root)
	menu := &e.IM.Menus[menuID]
	e.ensureLinkMap(st, menu)

	initial := 0
	if itemID > 0 {
		initial = itemID - 1
	} else if enteredFrom != command.DirNone {
		initial = st.EdgeItem(menuID, enteredFrom.Opposite(), 0)
	}
	st.Push(menuID, initial)
	e.activeRoot = root
	e.overlayState(root)
}

// openSideMenu implements OpenSideMenu: the menu is opened with its
// selection seeded, through EdgeItem, at the item on its entry edge closest
// to its own item 0; the previous menu's selection is not consulted.
func (e *Engine) openSideMenu(c command.OpenSideMenu) {
	e.openMenu(c.MenuID, 0, c.Dir)
}

func (e *Engine) closeMenu(menuID int) {
	root, ok := e.rootOf(menuID)
	if !ok {
		return
	}
	if st, ok := e.menuStates[root]; ok {
		st.Reset(root, false)
	}
	if e.activeRoot == root {
		e.activeRoot = -1
	}
}

// ensureLinkMap lazily builds and installs a Hotspots/Highlight-style menu's
// link map/edge set from its items' resolved hotspot positions, the one
// time it's first needed (menus.Move itself never handles these two
// styles — they navigate via the link map instead, per §4.E/§4.F).
func (e *Engine) ensureLinkMap(st *menus.State, menu *inputmap.Menu) {
	if menu.Style != inputmap.StyleHotspots && menu.Style != inputmap.StyleHighlight {
		return
	}
	positions := make([]hotspotmap.Point, len(menu.Items))
	for i, item := range menu.Items {
		if item.HotspotID != inputmap.HotspotIDNone {
			positions[i] = e.normPoints[item.HotspotID]
		}
	}
	nodes, err := hotspotmap.BuildLinkMap(positions)
	if err != nil {
		e.Errors.Record(errs.Wrap(errs.Structural, "Menu."+menu.Name, "", err, "engine: building menu link map"))
		return
	}
	st.SetLinkMap(menu.ID, nodes, positions)
}

// confirmMenu runs the active selection's command, per §4.F's flash rule:
// an item flashes only when its confirmed command neither changes the
// active sub-menu nor is itself a pure navigation command.
func (e *Engine) confirmMenu(c command.MenuConfirm, signalID, depth int) {
	root, ok := e.rootOf(c.MenuID)
	if !ok {
		return
	}
	st := e.menuState(root)
	activeID := st.ActiveMenuID()
	if activeID < 0 || activeID >= len(e.IM.Menus) {
		return
	}
	menu := &e.IM.Menus[activeID]
	sel := st.Selected(menu)
	if sel < 0 || sel >= len(menu.Items) {
		return
	}
	item := menu.Items[sel]
	if item.CommandID >= 0 && item.CommandID < len(e.IM.Commands) {
		cmd := e.IM.Commands[item.CommandID]
		if !command.ChangesActiveSubMenu(cmd) && !command.IsNavigational(cmd) {
			st.Flash(activeID, sel, time.Now())
		}
		e.execCommand(cmd, signalID, depth+1)
	}
	if c.AndClose {
		e.closeMenu(activeID)
	}
}

// selectMenu moves the active menu's selection per its style. For
// Hotspots/Highlight it consults the link map directly (menus.Move doesn't
// handle those): a push at a link-map edge leaves the selection unchanged
// and runs no command, whether or not Wrap is set. For every other style,
// when menus.Move leaves the selection unchanged, the menu's directional
// command for the pushed direction (Menu.DirCommand), if any, runs.
func (e *Engine) selectMenu(c command.MenuSelect, signalID, depth int) {
	root, ok := e.rootOf(c.MenuID)
	if !ok {
		return
	}
	st := e.menuState(root)
	activeID := st.ActiveMenuID()
	if activeID < 0 || activeID >= len(e.IM.Menus) {
		return
	}
	menu := &e.IM.Menus[activeID]
	sel := st.Selected(menu)

	if menu.Style == inputmap.StyleHotspots || menu.Style == inputmap.StyleHighlight {
		next, edge := st.LinkNext(activeID, sel, c.Dir)
		if edge {
			return // the edge-push side menu is wired by the profile as a sibling key-bind, not derived here
		}
		e.setSelection(st, activeID, next)
		if c.AndClose {
			e.confirmMenu(command.MenuConfirm{MenuID: activeID, AndClose: true}, signalID, depth+1)
		}
		return
	}

	newSel, dirCmdIdx := menus.Move(menu, sel, c.Dir, c.Wrap, false)
	e.setSelection(st, activeID, newSel)
	if dirCmdIdx >= 0 && dirCmdIdx < len(e.IM.Commands) {
		e.execCommand(e.IM.Commands[dirCmdIdx], signalID, depth+1)
	}
	if c.AndClose {
		e.confirmMenu(command.MenuConfirm{MenuID: activeID, AndClose: true}, signalID, depth+1)
	}
}

func (e *Engine) setSelection(st *menus.State, menuID, sel int) {
	st.SetSelection(menuID, sel)
}
