// Package painter implements the layout half of the window painter §4.G
// describes: per-style component rectangles, the base/scaling menu
// position split, and a content-hashed appearance cache. Drawing itself is
// platform glue and stays out of scope here, same as the teacher's own
// internal/tui separates model state from terminal rendering.
package painter

import "github.com/Danondso/gamepadoverlay/internal/inputmap"

// Rect is an integer screen-space rectangle, left/top inclusive,
// right/bottom exclusive.
type Rect struct {
	X, Y, W, H int
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	if r.W == 0 && r.H == 0 {
		return other
	}
	if other.W == 0 && other.H == 0 {
		return r
	}
	minX, minY := min(r.X, other.X), min(r.Y, other.Y)
	maxX, maxY := max(r.X+r.W, other.X+other.W), max(r.Y+r.H, other.Y+other.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Clip intersects r with bounds, per §4.G "results are clipped to the
// target window rect."
func (r Rect) Clip(bounds Rect) Rect {
	x0, y0 := max(r.X, bounds.X), max(r.Y, bounds.Y)
	x1, y1 := min(r.X+r.W, bounds.X+bounds.W), min(r.Y+r.H, bounds.Y+bounds.H)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ItemGeometry is one resolved component rectangle: index 0 is always the
// whole-window rect for grid-shaped styles.
type ItemGeometry struct {
	Rect Rect
}

// GridLayoutParams configures the row/column-major item layout shared by
// List/Bar/Grid/Columns/Slots.
type GridLayoutParams struct {
	Origin       Rect // the whole window's rect
	Stride       int  // columns (row-major) or rows (column-major)
	ColumnMajor  bool
	ItemW, ItemH int
	GapX, GapY   int // may be negative, causing intentional overlap
	TitleHeight  int // 0 == no title strip
}

// LayoutGrid computes item 0 (whole window) plus one rectangle per item,
// per §4.G's row-major/column-major grid description. Overlap from a
// negative gap is left for the painter to resolve by z-order (selection
// drawn last), not by adjusting geometry.
func LayoutGrid(p GridLayoutParams, itemCount int) []ItemGeometry {
	out := make([]ItemGeometry, 0, itemCount+1)
	out = append(out, ItemGeometry{Rect: p.Origin})
	stride := p.Stride
	if stride <= 0 {
		stride = itemCount
		if stride == 0 {
			stride = 1
		}
	}
	top := p.Origin.Y + p.TitleHeight
	for i := 0; i < itemCount; i++ {
		line, pos := i/stride, i%stride
		row, col := line, pos
		if p.ColumnMajor {
			row, col = pos, line
		}
		x := p.Origin.X + col*(p.ItemW+p.GapX)
		y := top + row*(p.ItemH+p.GapY)
		out = append(out, ItemGeometry{Rect: Rect{X: x, Y: y, W: p.ItemW, H: p.ItemH}})
	}
	return out
}

// LayoutSlotsAltLabel appends the alt-label rectangle Slots places adjacent
// to the top slot, on the side opposite the configured alignment.
func LayoutSlotsAltLabel(geoms []ItemGeometry, altW, altH int, alignRight bool) []ItemGeometry {
	if len(geoms) < 2 {
		return geoms
	}
	top := geoms[1].Rect
	x := top.X - altW
	if alignRight {
		x = top.X + top.W
	}
	return append(geoms, ItemGeometry{Rect: Rect{X: x, Y: top.Y, W: altW, H: altH}})
}

// LayoutHotspots uses each given item rectangle unchanged (item i at index
// i+1), with the window bound (index 0) the union of all item rectangles,
// per §4.G.
func LayoutHotspots(positions []Rect) []ItemGeometry {
	out := make([]ItemGeometry, len(positions)+1)
	var bounds Rect
	for i, r := range positions {
		out[i+1] = ItemGeometry{Rect: r}
		bounds = bounds.Union(r)
	}
	out[0] = ItemGeometry{Rect: bounds}
	return out
}

// LayoutHighlight sizes a single rectangle to the selected item's hotspot
// and scale, per §4.G's Highlight style.
func LayoutHighlight(selected Rect) []ItemGeometry {
	return []ItemGeometry{{Rect: selected}, {Rect: selected}}
}

// LayoutSingle places one rectangle at a fixed position — used by
// KBCycleLast/Default, HUD, HotspotGuide, and System per §4.G.
func LayoutSingle(r Rect) []ItemGeometry {
	return []ItemGeometry{{Rect: r}}
}

// Layout computes a menu's component rectangles by style, dispatching to
// the per-style layout function; hotspotRects supplies resolved positions
// for the Hotspots/Highlight styles (nil for every other style).
func Layout(menu *inputmap.Menu, p GridLayoutParams, hotspotRects []Rect, selected int) []ItemGeometry {
	switch menu.Style {
	case inputmap.StyleHotspots:
		return LayoutHotspots(hotspotRects)
	case inputmap.StyleHighlight:
		if selected >= 0 && selected < len(hotspotRects) {
			return LayoutHighlight(hotspotRects[selected])
		}
		return LayoutHighlight(Rect{})
	case inputmap.StyleHUD:
		return LayoutSingle(p.Origin)
	default:
		return LayoutGrid(p, len(menu.Items))
	}
}
