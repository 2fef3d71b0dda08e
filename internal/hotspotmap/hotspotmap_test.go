package hotspotmap

import (
	"testing"

	"github.com/Danondso/gamepadoverlay/internal/command"
)

func TestNormalizeClampsToNormalizedSize(t *testing.T) {
	if got := Normalize(10000, 1920); got > NormalizedSize {
		t.Fatalf("expected clamp to NormalizedSize, got %d", got)
	}
	if got := Normalize(0, 1920); got == 0 {
		t.Fatalf("expected Normalize(0, w) > 0 per the (pixel+1) formula, got 0")
	}
}

func TestNormalizeMonotonic(t *testing.T) {
	a := Normalize(100, 1920)
	b := Normalize(200, 1920)
	if b <= a {
		t.Fatalf("expected normalization to preserve ordering: a=%d b=%d", a, b)
	}
}

func TestGridCellWithinBounds(t *testing.T) {
	x, y := GridCell(NormalizedSize, NormalizedSize)
	if x != GridSize-1 || y != GridSize-1 {
		t.Fatalf("expected max coordinate to land in the last cell, got (%d,%d)", x, y)
	}
}

func TestGridAddAndCellsInRect(t *testing.T) {
	g := NewGrid(4)
	g.Add(0, Point{X: 10, Y: 10})
	g.Add(1, Point{X: NormalizedSize, Y: NormalizedSize})
	gx, gy := GridCell(10, 10)
	cell := g.Cell(gx, gy)
	if len(cell) != 1 || cell[0] != 0 {
		t.Fatalf("expected hotspot 0 in its cell, got %v", cell)
	}
	all := g.CellsInRect(0, 0, GridSize-1, GridSize-1)
	if len(all) != 2 {
		t.Fatalf("expected 2 hotspots across the whole grid, got %d", len(all))
	}
}

func TestNextInDirPrefersStrictLineOverWide(t *testing.T) {
	cursor := Point{X: 1000, Y: 1000}
	candidates := []Candidate{
		{Index: 0, Pos: Point{X: 2000, Y: 1010}}, // straight line to the right, small perp
		{Index: 1, Pos: Point{X: 1600, Y: 1500}}, // wide bucket, closer in raw distance
	}
	res := NextInDir(cursor, command.DirRight, candidates, 400)
	if !res.Found || res.Index != 0 {
		t.Fatalf("expected strict-line candidate 0 to win, got %+v", res)
	}
}

func TestNextInDirRejectsWrongHalfPlane(t *testing.T) {
	cursor := Point{X: 1000, Y: 1000}
	candidates := []Candidate{
		{Index: 0, Pos: Point{X: 500, Y: 1000}}, // to the left, requesting right
	}
	res := NextInDir(cursor, command.DirRight, candidates, 400)
	if res.Found {
		t.Fatalf("expected no candidate in the wrong half-plane, got %+v", res)
	}
}

func TestNextInDirRejectsTooCloseCandidate(t *testing.T) {
	cursor := Point{X: 1000, Y: 1000}
	candidates := []Candidate{
		{Index: 0, Pos: Point{X: 1050, Y: 1000}}, // within DefaultMinJumpDist
	}
	res := NextInDir(cursor, command.DirRight, candidates, 400)
	if res.Found {
		t.Fatalf("expected too-close candidate to be rejected, got %+v", res)
	}
}

func TestSchedulerProcessesInPrecedenceOrder(t *testing.T) {
	s := NewScheduler()
	var order []Task
	for t := Task(0); t < taskCount; t++ {
		tt := t
		s.SetStep(tt, func() { order = append(order, tt) })
	}
	s.MarkDependents(TaskTargetSize)
	for s.ProcessOne() {
	}
	if len(order) != int(taskCount) {
		t.Fatalf("expected all %d tasks to run, got %d", taskCount, len(order))
	}
	for i := range order {
		if order[i] != Task(i) {
			t.Fatalf("expected precedence order, got %v", order)
		}
	}
}

func TestSchedulerForceRunsOnlyPrerequisites(t *testing.T) {
	s := NewScheduler()
	ran := map[Task]bool{}
	for t := Task(0); t < taskCount; t++ {
		tt := t
		s.SetStep(tt, func() { ran[tt] = true })
	}
	s.MarkDependents(TaskTargetSize)
	s.Force(TaskBeginSearch)
	if !ran[TaskTargetSize] || !ran[TaskBeginSearch] {
		t.Fatalf("expected prerequisites through BeginSearch to run")
	}
	if ran[TaskNextInDirLeft] {
		t.Fatalf("expected NextInDir tasks not to run yet")
	}
}

func TestBuildLinkMapConnectedAndWraps(t *testing.T) {
	// A 2x2 grid of items.
	positions := []Point{
		{X: 100, Y: 100}, {X: 300, Y: 100},
		{X: 100, Y: 300}, {X: 300, Y: 300},
	}
	nodes, err := BuildLinkMap(positions)
	if err != nil {
		t.Fatalf("BuildLinkMap: %v", err)
	}
	right := dirIndex(command.DirRight)
	// item 1 is the rightmost in its row; Right should wrap to item 0.
	if nodes[1].Next[right] != 0 || !nodes[1].Edge[right] {
		t.Fatalf("expected item 1 to wrap right to item 0, got %+v", nodes[1])
	}
}

func TestBuildLinkMapEmpty(t *testing.T) {
	nodes, err := BuildLinkMap(nil)
	if err != nil {
		t.Fatalf("unexpected error on empty link map: %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("expected no nodes, got %d", len(nodes))
	}
}

func TestEdgeSetPicksClosestPerpendicularNeighbor(t *testing.T) {
	// Items 0-2 sit on the top edge (small Y); item 3 is the menu's
	// currently-selected ("default") item far below, used only as the
	// perpendicular (X) reference for picking which top-edge item a jump
	// from above should land on.
	positions := []Point{
		{X: 0, Y: 100}, {X: 500, Y: 100}, {X: 1000, Y: 100},
		{X: 700, Y: 2000},
	}
	es := NewEdgeSet(positions)
	got := es.GetEdgeMenuItem(command.DirUp, 3)
	if got != 1 {
		t.Fatalf("expected item 1 (closest in X to the default item), got %d", got)
	}
}
