package hotspotmap

import (
	"sort"

	"github.com/Danondso/gamepadoverlay/internal/command"
)

// EdgeSet caches, per cardinal direction, the menu items lying on that
// direction's edge (§4.E "per-menu edge set"), invalidated by Invalidate
// whenever the menu's item count or hotspot positions change.
type EdgeSet struct {
	positions []Point
	cache     map[command.Direction][]int
}

// NewEdgeSet creates an EdgeSet over a menu's item positions.
func NewEdgeSet(positions []Point) *EdgeSet {
	return &EdgeSet{positions: positions, cache: map[command.Direction][]int{}}
}

// Invalidate drops every cached direction's edge list and installs new
// positions, forcing the next GetEdgeMenuItem call to recompute.
func (es *EdgeSet) Invalidate(positions []Point) {
	es.positions = positions
	es.cache = map[command.Direction][]int{}
}

func axisValue(p Point, dir command.Direction) int {
	switch dir {
	case command.DirLeft:
		return -int(p.X)
	case command.DirRight:
		return int(p.X)
	case command.DirUp:
		return -int(p.Y)
	default:
		return int(p.Y)
	}
}

func perpValue(p Point, dir command.Direction) int {
	switch dir {
	case command.DirLeft, command.DirRight:
		return int(p.Y)
	default:
		return int(p.X)
	}
}

// edgeItems computes (and caches) the items whose axisValue along dir is
// within MaxPerpDistForStraightLine of the maximum observed, sorted by
// their perpendicular coordinate — the candidate set GetEdgeMenuItem
// binary-searches.
func (es *EdgeSet) edgeItems(dir command.Direction) []int {
	if cached, ok := es.cache[dir]; ok {
		return cached
	}
	if len(es.positions) == 0 {
		es.cache[dir] = nil
		return nil
	}
	maxVal := axisValue(es.positions[0], dir)
	for _, p := range es.positions[1:] {
		if v := axisValue(p, dir); v > maxVal {
			maxVal = v
		}
	}
	var items []int
	for i, p := range es.positions {
		if maxVal-axisValue(p, dir) <= MaxPerpDistForStraightLine {
			items = append(items, i)
		}
	}
	sort.Slice(items, func(a, b int) bool {
		return perpValue(es.positions[items[a]], dir) < perpValue(es.positions[items[b]], dir)
	})
	es.cache[dir] = items
	return items
}

// GetEdgeMenuItem returns the item on dir's edge closest, along the
// perpendicular axis, to defaultItem — the item a menu lands on when a
// jump crosses into this menu from that direction (§4.E, last paragraph).
func (es *EdgeSet) GetEdgeMenuItem(dir command.Direction, defaultItem int) int {
	items := es.edgeItems(dir)
	if len(items) == 0 {
		return defaultItem
	}
	if defaultItem < 0 || defaultItem >= len(es.positions) {
		return items[0]
	}
	target := perpValue(es.positions[defaultItem], dir)
	i := sort.Search(len(items), func(i int) bool {
		return perpValue(es.positions[items[i]], dir) >= target
	})
	switch {
	case i == 0:
		return items[0]
	case i == len(items):
		return items[len(items)-1]
	default:
		before := items[i-1]
		after := items[i]
		if target-perpValue(es.positions[before], dir) <= perpValue(es.positions[after], dir)-target {
			return before
		}
		return after
	}
}
