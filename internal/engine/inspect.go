package engine

import (
	"sort"

	"github.com/Danondso/gamepadoverlay/internal/inputmap"
	"github.com/Danondso/gamepadoverlay/internal/menus"
	"github.com/Danondso/gamepadoverlay/internal/overlay"
)

// ActiveRootID returns the root menu ID currently on top of every open
// menu's stack, or -1 if none is open — cmd/overlaypreview uses this to
// decide which open root is "active" for overlay fade purposes.
func (e *Engine) ActiveRootID() int { return e.activeRoot }

// OpenRoots returns the root menu IDs with live runtime state, sorted for
// stable preview rendering.
func (e *Engine) OpenRoots() []int {
	roots := make([]int, 0, len(e.menuStates))
	for id := range e.menuStates {
		roots = append(roots, id)
	}
	sort.Ints(roots)
	return roots
}

// MenuStateFor returns the runtime menus.State for an open root menu, for
// read-only inspection (selection, flash timers, link maps).
func (e *Engine) MenuStateFor(rootID int) (*menus.State, bool) {
	st, ok := e.menuStates[rootID]
	return st, ok
}

// OverlayStateFor returns the fade/alpha overlay.State for an open root
// menu, for read-only inspection.
func (e *Engine) OverlayStateFor(rootID int) (*overlay.State, bool) {
	st, ok := e.overlays[rootID]
	return st, ok
}

// Menu looks up a menu definition by ID, for rendering its items/style.
func (e *Engine) Menu(menuID int) (*inputmap.Menu, bool) {
	if menuID < 0 || menuID >= len(e.IM.Menus) {
		return nil, false
	}
	return &e.IM.Menus[menuID], true
}
