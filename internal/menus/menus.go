// Package menus implements the per-overlay/per-menu runtime state §4.F
// describes: the active sub-menu stack, each menu's clamped selection, the
// style-dependent direction-to-selection mapping, and flash-confirmation
// timers. It reads inputmap.Menu/MenuItem entities by ID and consults
// hotspotmap's link map/edge set for the two styles that need full
// directional navigation.
package menus

import (
	"time"

	"github.com/Danondso/gamepadoverlay/internal/command"
	"github.com/Danondso/gamepadoverlay/internal/hotspotmap"
	"github.com/Danondso/gamepadoverlay/internal/inputmap"
)

// FlashTime is the default duration a menu item flashes after its command
// runs without changing the active sub-menu, per §4.F. Styles may override
// it; this is the fallback the original uses absent a per-style setting.
const FlashTime = 150 * time.Millisecond

// State is one overlay's menu runtime state: the stack of active sub-menu
// IDs (index 0 is the root) and, per menu ID, the current selection.
type State struct {
	Stack     []int
	selection map[int]int // menu ID -> selected item index
	flashUnt  map[int]time.Time
	linkMaps  map[int][]hotspotmap.LinkNode
	edgeSets  map[int]*hotspotmap.EdgeSet
}

// NewState creates menu runtime state rooted at rootMenuID.
func NewState(rootMenuID int) *State {
	return &State{
		Stack:     []int{rootMenuID},
		selection: map[int]int{},
		flashUnt:  map[int]time.Time{},
		linkMaps:  map[int][]hotspotmap.LinkNode{},
		edgeSets:  map[int]*hotspotmap.EdgeSet{},
	}
}

// ActiveMenuID returns the topmost (currently displayed) menu.
func (s *State) ActiveMenuID() int {
	if len(s.Stack) == 0 {
		return -1
	}
	return s.Stack[len(s.Stack)-1]
}

// Selected returns a menu's clamped current selection, defaulting to 0.
func (s *State) Selected(menu *inputmap.Menu) int {
	sel := s.selection[menu.ID]
	if len(menu.Items) == 0 {
		return 0
	}
	if sel < 0 {
		sel = 0
	}
	if sel >= len(menu.Items) {
		sel = len(menu.Items) - 1
	}
	return sel
}

// SetLinkMap installs the precomputed link map/edge set a Hotspots/Highlight
// style menu uses for directional navigation, built by the caller from the
// menu's items' resolved hotspot positions.
func (s *State) SetLinkMap(menuID int, nodes []hotspotmap.LinkNode, positions []hotspotmap.Point) {
	s.linkMaps[menuID] = nodes
	s.edgeSets[menuID] = hotspotmap.NewEdgeSet(positions)
}

// LinkNext returns the item a Hotspots/Highlight-style menu moves to when
// dir is pressed from itemIdx, using the link map SetLinkMap installed, and
// whether that move would leave the menu via its edge; on an edge it
// returns (itemIdx, true) without moving. Returns (itemIdx, false) if no
// link map is installed.
func (s *State) LinkNext(menuID, itemIdx int, dir command.Direction) (next int, edge bool) {
	nodes, ok := s.linkMaps[menuID]
	if !ok || itemIdx < 0 || itemIdx >= len(nodes) {
		return itemIdx, false
	}
	idx := linkDirIndex(dir)
	node := nodes[itemIdx]
	if node.Edge[idx] {
		return itemIdx, true
	}
	if node.Next[idx] < 0 {
		return itemIdx, false
	}
	return node.Next[idx], false
}

// EdgeItem returns the item a menu should land its selection on when a jump
// enters it from dir, per hotspotmap.EdgeSet's "closest on the entry edge to
// defaultItem" rule. Returns defaultItem if no edge set is installed.
func (s *State) EdgeItem(menuID int, dir command.Direction, defaultItem int) int {
	es, ok := s.edgeSets[menuID]
	if !ok {
		return defaultItem
	}
	return es.GetEdgeMenuItem(dir, defaultItem)
}

func linkDirIndex(d command.Direction) int {
	switch d {
	case command.DirLeft:
		return 0
	case command.DirRight:
		return 1
	case command.DirUp:
		return 2
	default:
		return 3
	}
}

// IsFlashing reports whether an item is still within its post-confirm
// flash window at t.
func (s *State) IsFlashing(menuID, itemIdx int, t time.Time) bool {
	until, ok := s.flashUnt[flashKey(menuID, itemIdx)]
	return ok && t.Before(until)
}

func flashKey(menuID, itemIdx int) int { return menuID*100000 + itemIdx }

func (s *State) startFlash(menuID, itemIdx int, now time.Time) {
	s.flashUnt[flashKey(menuID, itemIdx)] = now.Add(FlashTime)
}

// Flash starts an item's post-confirm flash window, per §4.F's rule that a
// confirmed item flashes only when its command doesn't change the active
// sub-menu (the engine checks command.ChangesActiveSubMenu/IsNavigational
// before calling this).
func (s *State) Flash(menuID, itemIdx int, now time.Time) {
	s.startFlash(menuID, itemIdx, now)
}

// SetSelection overwrites a menu's current selection directly, the
// mechanism MenuSelect's navigation commands use (as opposed to Push, which
// additionally changes which menu is active).
func (s *State) SetSelection(menuID, sel int) {
	s.selection[menuID] = sel
}

// Push opens a sub-menu, seeding its selection (OpenSubMenu/openSideMenu).
func (s *State) Push(menuID, initialSelection int) {
	s.Stack = append(s.Stack, menuID)
	s.selection[menuID] = initialSelection
}

// Pop closes the active sub-menu, returning to its parent (MenuBack); it is
// a no-op at the root.
func (s *State) Pop() {
	if len(s.Stack) > 1 {
		s.Stack = s.Stack[:len(s.Stack)-1]
	}
}

// Reset pops every sub-menu back to the root and, if toDefault, clears
// every menu's selection back to 0 (MenuReset).
func (s *State) Reset(rootMenuID int, toDefault bool) {
	s.Stack = []int{rootMenuID}
	if toDefault {
		s.selection = map[int]int{}
	}
}

// Move applies a directional input to the active menu per its style's
// direction-to-selection mapping (§4.F), returning the new selection and
// the index of the menu's directional command to run (-1 if none).
func Move(menu *inputmap.Menu, sel int, dir command.Direction, wrap bool, repeat bool) (newSel int, dirCommandIdx int) {
	n := len(menu.Items)
	if n == 0 {
		return 0, -1
	}
	switch menu.Style {
	case inputmap.StyleList:
		newSel, _ = moveList(sel, n, dir, wrap, false)
	case inputmap.StyleBar:
		newSel, _ = moveList(sel, n, dir, wrap, true)
	case inputmap.StyleGrid:
		newSel, _ = moveGrid(sel, n, menu.Columns, dir, wrap, false)
	case inputmap.StyleColumns:
		newSel, _ = moveGrid(sel, n, menu.Rows, dir, wrap, true)
	case inputmap.StyleSlots:
		if repeat && (dir == command.DirLeft || dir == command.DirRight) {
			return sel, -1
		}
		newSel, _ = moveSlots(sel, n, dir, repeat)
	case inputmap.Style4Dir:
		// 4Dir selects the pushed direction's item (index int(dir)-1) if it
		// exists; it neither flashes that item nor returns a command.
		idx := int(dir) - 1
		if idx >= 0 && idx < n {
			return idx, -1
		}
		return sel, -1
	default:
		return sel, -1
	}
	// A cross-axis push or an edge push that wrap didn't carry past leaves
	// the selection unchanged; that's when the menu's configured
	// directional command (if any) fires instead (§4.F, §8 scenario 1's
	// "D=" clause).
	if newSel == sel {
		return newSel, menu.DirCommand(dir)
	}
	return newSel, -1
}

// moveList implements List (Y axis) / Bar (X axis, via swapAxis) per §4.F:
// the navigation axis wraps (if enabled and count>2); the cross axis always
// falls through to the menu's own directional command.
func moveList(sel, n int, dir command.Direction, wrap bool, swapAxis bool) (int, int) {
	forward, backward := command.DirDown, command.DirUp
	if swapAxis {
		forward, backward = command.DirRight, command.DirLeft
	}
	switch dir {
	case forward:
		if sel+1 < n {
			return sel + 1, -1
		}
		if wrap && n > 2 {
			return 0, -1
		}
		return sel, -1
	case backward:
		if sel-1 >= 0 {
			return sel - 1, -1
		}
		if wrap && n > 2 {
			return n - 1, -1
		}
		return sel, -1
	default:
		return sel, -1
	}
}

// moveGrid implements Grid (row-major, stride == column count) / Columns
// (column-major, via swapped axis, stride == row count) per §4.F: moving
// along the primary axis wraps within the current secondary-axis line (not
// into the next line); moving along the secondary axis wraps to the first
// or last line, clamping into whatever primary-axis extent that line has
// (the last line may be short of a full stride).
func moveGrid(sel, n, stride int, dir command.Direction, wrap bool, columnMajor bool) (int, int) {
	if stride <= 0 {
		stride = n
	}
	primaryFwd, primaryBack := command.DirRight, command.DirLeft
	secondaryFwd, secondaryBack := command.DirDown, command.DirUp
	if columnMajor {
		primaryFwd, primaryBack, secondaryFwd, secondaryBack = secondaryFwd, secondaryBack, primaryFwd, primaryBack
	}

	line, pos := sel/stride, sel%stride
	lastLine := (n - 1) / stride
	lineExtent := func(l int) int {
		if l < lastLine {
			return stride
		}
		return n - lastLine*stride
	}

	switch dir {
	case primaryFwd:
		pos++
		if ext := lineExtent(line); pos >= ext {
			if wrap {
				pos = 0
			} else {
				pos = ext - 1
			}
		}
	case primaryBack:
		pos--
		if pos < 0 {
			ext := lineExtent(line)
			if wrap {
				pos = ext - 1
			} else {
				pos = 0
			}
		}
	case secondaryFwd:
		line++
		if line > lastLine {
			if wrap {
				line = 0
			} else {
				line = lastLine
			}
		}
		if ext := lineExtent(line); pos >= ext {
			pos = ext - 1
		}
	case secondaryBack:
		line--
		if line < 0 {
			if wrap {
				line = lastLine
			} else {
				line = 0
			}
		}
		if ext := lineExtent(line); pos >= ext {
			pos = ext - 1
		}
	}
	return line*stride + pos, -1
}

// moveSlots implements Slots: U/D cycle with persistent wrap; L/R push
// past edge unless the input is an auto-repeat, in which case it's a no-op.
func moveSlots(sel, n int, dir command.Direction, repeat bool) (int, int) {
	switch dir {
	case command.DirDown:
		return (sel + 1) % n, -1
	case command.DirUp:
		return (sel - 1 + n) % n, -1
	case command.DirLeft, command.DirRight:
		if repeat {
			return sel, -1
		}
		return sel, -1 // edge push: caller resolves the menu's directional command
	default:
		return sel, -1
	}
}
