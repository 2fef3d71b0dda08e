package inputmap

import "github.com/Danondso/gamepadoverlay/internal/command"

// Style is a menu's layout/navigation behavior, selected by its profile
// section's Style= property (spec.md §4.F).
type Style int

const (
	StyleList Style = iota
	StyleBar
	StyleGrid
	StyleColumns
	StyleSlots
	StyleHotspots
	StyleHighlight
	Style4Dir
	StyleHUD
)

var styleNames = map[string]Style{
	"List":      StyleList,
	"Bar":       StyleBar,
	"Grid":      StyleGrid,
	"Columns":   StyleColumns,
	"Slots":     StyleSlots,
	"Hotspots":  StyleHotspots,
	"Highlight": StyleHighlight,
	"4Dir":      Style4Dir,
	"HUD":       StyleHUD,
}

// StyleByName resolves a profile Style= value, defaulting to StyleList for
// an unrecognized name (the original tolerates unknown keywords by falling
// back rather than erroring).
func StyleByName(name string) Style {
	if s, ok := styleNames[name]; ok {
		return s
	}
	return StyleList
}

// MenuItem is one selectable entry within a Menu: a label plus the command
// to run on confirm, and (for StyleGrid/StyleHotspots) the hotspot it's
// anchored to.
type MenuItem struct {
	Label     string
	CommandID int // index into InputMap.commands, or -1 if none
	HotspotID int // HotspotIDNone if not hotspot-anchored
	Columns   int // column span, for StyleColumns
}

// Menu is a named, styled collection of items plus the sub-menus it can
// open, per spec.md §4.F. Menus referenced by name before their own
// [Menu.X] section is parsed are pre-created empty (§4.D load order) so
// forward references resolve.
type Menu struct {
	ID       int
	Name     string
	Style    Style
	Items    []MenuItem
	ParentID int // -1 for a top-level/root menu
	Rows     int // StyleGrid/StyleColumns row count, 0 = auto
	Columns  int // StyleGrid/StyleColumns column count, 0 = auto

	// DirCommands holds the menu's 4 directional commands (§3's "4
	// directional items"), indexed by command.Direction (DirNone's slot is
	// unused). A cross-axis push or an edge push with no further item to
	// select yields the direction's entry instead of moving the selection —
	// -1 means the menu declares none for that direction.
	DirCommands [5]int
}

// DirCommand returns the menu's configured command index for dir, or -1 if
// it declares none.
func (m *Menu) DirCommand(dir command.Direction) int {
	if int(dir) < 0 || int(dir) >= len(m.DirCommands) {
		return -1
	}
	return m.DirCommands[dir]
}
