// Package inputmap owns every persistent, index-identified entity spec.md
// §3/§4.D describes — hotspots, hotspot arrays, key-binds, key-bind cycles,
// controls layers, and menus — and loads/validates them from a profile.Store
// in the load order §4.D mandates. Other components (command, hotspotmap,
// menus, painter) hold integer indices into this package's tables, never
// pointers, per design note #2: growth of the backing slices must not
// invalidate a previously handed-out ID.
package inputmap

// Coord is one axis of a Hotspot position: an anchor expressed as a
// fraction of the target window's width/height (0..65535 == 0%..100%) plus
// a signed logical-pixel offset, per spec.md §3/§6.
type Coord struct {
	Anchor uint16 // 0..65535, fraction of target width or height
	Offset int16  // signed pixel offset
}

// Special hotspot IDs reserved by spec.md §3. Ordinary hotspots are
// allocated IDs starting at HotspotIDFirstOrdinary.
const (
	HotspotIDNone = iota
	HotspotIDLastCursorPos
	HotspotIDMouseLookStart
	HotspotIDMouseHidden
	HotspotIDFirstOrdinary
)

// Hotspot is a named point/region in the target window's coordinate system.
// Its ID is its index in InputMap.Hotspots plus HotspotIDFirstOrdinary
// (stable for the process lifetime); Invalidated hotspots are queried as zero-valued and can be
// restored by rewriting the owning profile property (invariant 3).
type Hotspot struct {
	ID          int
	X, Y        Coord
	W, H        int16
	Scale       float32
	Invalidated bool
}

// RangeFlags are the per-range behavior bits spec.md §3 describes.
type RangeFlags struct {
	OwnXAnchor     bool
	OwnYAnchor     bool
	OffsetFromPrev bool
	Removed        bool
}

// HotspotRange describes one contiguous sub-range of a HotspotArray sharing
// the same derivation rule: a range with neither own anchor derives its
// absolute position from the array anchor (or the previous element, if
// OffsetFromPrev) plus XOffset/YOffset scaled by the array's OffsetScale.
type HotspotRange struct {
	First, Last int // 1-based indices within the array
	Flags       RangeFlags
	XOffset     int
	YOffset     int
}

// HotspotArray is an ordered, contiguous, name-indexed group of hotspots
// sharing an anchor and offset scale (spec.md §3).
type HotspotArray struct {
	Name        string
	AnchorID    int // hotspot ID of the array's anchor element, or HotspotIDNone
	FirstID     int // hotspot ID of index 1 in this array
	Size        int // recomputed to the last non-invalidated index
	MaxSize     int
	OffsetScale float32
	Ranges      []HotspotRange // sorted, non-overlapping, covering 1..=MaxSize
}

// HotspotID returns the hotspot ID for the 1-based index within the array,
// or HotspotIDNone if idx is out of [1, MaxSize].
func (a *HotspotArray) HotspotID(idx int) int {
	if idx < 1 || idx > a.MaxSize {
		return HotspotIDNone
	}
	return a.FirstID + idx - 1
}

// rangeFor returns the range covering idx, or nil.
func (a *HotspotArray) rangeFor(idx int) *HotspotRange {
	for i := range a.Ranges {
		r := &a.Ranges[i]
		if idx >= r.First && idx <= r.Last {
			return r
		}
	}
	return nil
}

// recomputeSize sets Size to the last index in [1, MaxSize] that is not
// covered by a Removed range, scanning from MaxSize down to 0. An array with
// every slot removed has Size 0.
func (a *HotspotArray) recomputeSize() {
	for idx := a.MaxSize; idx >= 1; idx-- {
		if r := a.rangeFor(idx); r == nil || !r.Flags.Removed {
			a.Size = idx
			return
		}
	}
	a.Size = 0
}
