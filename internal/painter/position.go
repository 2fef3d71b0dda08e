package painter

// Alignment selects how far a window shifts along one axis relative to its
// own size, per §4.G ("0, size/2, or size").
type Alignment int

const (
	AlignStart  Alignment = iota // shift 0
	AlignCenter                  // shift size/2
	AlignEnd                     // shift size
)

func (a Alignment) shift(size int) int {
	switch a {
	case AlignCenter:
		return size / 2
	case AlignEnd:
		return size
	default:
		return 0
	}
}

// MenuPosition is §3's position type: a base (logical, unscaled) offset
// plus a scaling (UI-scale-multiplied) offset, so a profile author can pin
// part of a window's placement to the raw pixel grid (e.g. "10px from the
// left") while another part tracks the configured UI scale.
type MenuPosition struct {
	BaseX, BaseY   int
	ScaleX, ScaleY int
	AlignX, AlignY Alignment
	W, H           int
}

// Resolve computes the window rect this position implies at uiScale,
// shifted by alignment and clipped to target.
func (p MenuPosition) Resolve(uiScale float64, target Rect) Rect {
	x := p.BaseX + int(float64(p.ScaleX)*uiScale)
	y := p.BaseY + int(float64(p.ScaleY)*uiScale)
	x -= p.AlignX.shift(p.W)
	y -= p.AlignY.shift(p.H)
	return Rect{X: x, Y: y, W: p.W, H: p.H}.Clip(target)
}
