// Package hotspotmap implements the spatial index over normalized hotspot
// coordinates: normalization into a fixed square, a grid index for
// directional candidate lookup, directional distance scoring, and the
// per-menu link-map/edge-set builders §4.E describes. It holds no entity
// data of its own — callers pass inputmap.Hotspot positions in and get back
// indices into the caller's own hotspot slice.
package hotspotmap

// NormalizedSize is the fixed coordinate-square edge length every hotspot
// position is mapped into, chosen (per spec.md §4.E) so the largest
// possible squared distance still fits a uint32: NormalizedSize² × 2 <
// 2^32.
const NormalizedSize = 0x7FFF

// gridShift is the right-shift from a normalized coordinate to its grid
// cell index: NormalizedSize >> gridShift + 1 == GridSize.
const gridShift = 12

// GridSize is the grid index's edge length in cells.
const GridSize = (NormalizedSize >> gridShift) + 1

// GridCellSize is the normalized-coordinate width/height of one grid cell.
const GridCellSize = (NormalizedSize + 1) / GridSize

// Normalize maps an overlay-pixel coordinate into [0, NormalizedSize] given
// the target window's current largest dimension, per the formula
// (pixel+1)*NormalizedSize/scaleFactor, clamped to NormalizedSize.
func Normalize(pixel int, scaleFactor int) uint16 {
	if scaleFactor <= 0 {
		return 0
	}
	v := (pixel + 1) * NormalizedSize / scaleFactor
	if v < 0 {
		return 0
	}
	if v > NormalizedSize {
		return NormalizedSize
	}
	return uint16(v)
}

// GridCell returns the grid cell coordinates a normalized point falls in.
func GridCell(x, y uint16) (int, int) {
	return int(x) >> gridShift, int(y) >> gridShift
}

// Point is a normalized 2D position.
type Point struct {
	X, Y uint16
}
