package painter

import (
	"testing"

	"github.com/Danondso/gamepadoverlay/internal/inputmap"
)

func TestLayoutGridProducesWindowPlusItemRects(t *testing.T) {
	p := GridLayoutParams{Origin: Rect{X: 0, Y: 0, W: 300, H: 300}, Stride: 3, ItemW: 100, ItemH: 100}
	geoms := LayoutGrid(p, 9)
	if len(geoms) != 10 {
		t.Fatalf("expected 1 window rect + 9 item rects, got %d", len(geoms))
	}
	if geoms[0].Rect != p.Origin {
		t.Fatalf("expected index 0 to be the whole window, got %+v", geoms[0].Rect)
	}
	// Item index 4 (0-based) sits at row1,col1 of a 3-wide grid -> (100,100).
	if geoms[5].Rect.X != 100 || geoms[5].Rect.Y != 100 {
		t.Fatalf("expected item 4 (row1,col1) at (100,100), got %+v", geoms[5].Rect)
	}
}

func TestLayoutHotspotsUnionsBounds(t *testing.T) {
	positions := []Rect{{X: 0, Y: 0, W: 10, H: 10}, {X: 90, Y: 90, W: 10, H: 10}}
	geoms := LayoutHotspots(positions)
	if geoms[0].Rect != (Rect{X: 0, Y: 0, W: 100, H: 100}) {
		t.Fatalf("expected union bound, got %+v", geoms[0].Rect)
	}
}

func TestLayoutDispatchesByStyle(t *testing.T) {
	menu := &inputmap.Menu{Style: inputmap.StyleHUD}
	p := GridLayoutParams{Origin: Rect{X: 5, Y: 5, W: 50, H: 50}}
	geoms := Layout(menu, p, nil, -1)
	if len(geoms) != 1 || geoms[0].Rect != p.Origin {
		t.Fatalf("expected HUD to lay out a single rect at origin, got %+v", geoms)
	}
}

func TestRectClipBoundsToTarget(t *testing.T) {
	r := Rect{X: -10, Y: -10, W: 50, H: 50}
	target := Rect{X: 0, Y: 0, W: 30, H: 30}
	got := r.Clip(target)
	if got.X != 0 || got.Y != 0 || got.W != 30 || got.H != 30 {
		t.Fatalf("expected clip to target bounds, got %+v", got)
	}
}

func TestMenuPositionResolveAppliesAlignmentAndScale(t *testing.T) {
	p := MenuPosition{BaseX: 10, ScaleX: 100, AlignX: AlignCenter, W: 40, H: 20}
	r := p.Resolve(0.5, Rect{X: 0, Y: 0, W: 1000, H: 1000})
	// x = 10 + 100*0.5 - 40/2 = 10+50-20 = 40
	if r.X != 40 {
		t.Fatalf("expected resolved X=40, got %d", r.X)
	}
}

func TestCacheInternDeduplicatesIdenticalValues(t *testing.T) {
	c := NewCache()
	a := MenuAppearance{BackgroundColor: 0xFF0000, Opacity: 0.8}
	k1 := c.InternAppearance(a)
	k2 := c.InternAppearance(a)
	if k1 != k2 {
		t.Fatalf("expected identical appearances to hash to the same key")
	}
	if len(c.appearances) != 1 {
		t.Fatalf("expected exactly one stored appearance, got %d", len(c.appearances))
	}
}

func TestCacheInvalidateDropsMenuEntry(t *testing.T) {
	c := NewCache()
	k := c.InternLayout(MenuLayout{Stride: 3})
	c.SetMenuEntry(1, k, k, k, k)
	if _, _, _, _, ok := c.MenuEntry(1); !ok {
		t.Fatalf("expected menu entry to exist before invalidation")
	}
	c.Invalidate(1)
	if _, _, _, _, ok := c.MenuEntry(1); ok {
		t.Fatalf("expected menu entry to be gone after invalidation")
	}
}

func TestCacheInvalidateDescendantsClearsEachID(t *testing.T) {
	c := NewCache()
	k := c.InternPosition(MenuPosition{BaseX: 1})
	c.SetMenuEntry(2, k, k, k, k)
	c.SetMenuEntry(3, k, k, k, k)
	c.InvalidateDescendants([]int{2, 3})
	if _, _, _, _, ok := c.MenuEntry(2); ok {
		t.Fatalf("expected menu 2 invalidated")
	}
	if _, _, _, _, ok := c.MenuEntry(3); ok {
		t.Fatalf("expected menu 3 invalidated")
	}
}
