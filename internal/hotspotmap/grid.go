package hotspotmap

// Grid is the fixed GridSize×GridSize spatial index over the
// currently-enabled hotspots' normalized positions, rebuilt whenever the
// active hotspot-array set or any enabled hotspot's position changes.
type Grid struct {
	cells  [GridSize][GridSize][]int // hotspot index per cell
	points []Point                   // normalized position per hotspot index, parallel to caller's slice
}

// NewGrid creates an empty grid sized for n hotspots.
func NewGrid(n int) *Grid {
	return &Grid{points: make([]Point, n)}
}

// Reset clears every cell without reallocating the backing slices, so a
// rebuild reuses capacity across ticks.
func (g *Grid) Reset() {
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			g.cells[x][y] = g.cells[x][y][:0]
		}
	}
}

// Add places hotspot idx, already normalized to pos, into its grid cell.
func (g *Grid) Add(idx int, pos Point) {
	if idx >= len(g.points) {
		grown := make([]Point, idx+1)
		copy(grown, g.points)
		g.points = grown
	}
	g.points[idx] = pos
	gx, gy := GridCell(pos.X, pos.Y)
	g.cells[gx][gy] = append(g.cells[gx][gy], idx)
}

// Point returns the normalized position last Add'd for idx.
func (g *Grid) Point(idx int) Point {
	if idx < 0 || idx >= len(g.points) {
		return Point{}
	}
	return g.points[idx]
}

// Cell returns the hotspot indices in the cell at grid coordinates (gx, gy).
func (g *Grid) Cell(gx, gy int) []int {
	if gx < 0 || gx >= GridSize || gy < 0 || gy >= GridSize {
		return nil
	}
	return g.cells[gx][gy]
}

// CellsInRect returns every hotspot index whose cell overlaps the grid-cell
// rectangle [minGX,maxGX] x [minGY,maxGY] (inclusive), clamped to the grid.
func (g *Grid) CellsInRect(minGX, minGY, maxGX, maxGY int) []int {
	if minGX < 0 {
		minGX = 0
	}
	if minGY < 0 {
		minGY = 0
	}
	if maxGX >= GridSize {
		maxGX = GridSize - 1
	}
	if maxGY >= GridSize {
		maxGY = GridSize - 1
	}
	var out []int
	for x := minGX; x <= maxGX; x++ {
		for y := minGY; y <= maxGY; y++ {
			out = append(out, g.cells[x][y]...)
		}
	}
	return out
}
