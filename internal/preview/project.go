package preview

import "github.com/Faultbox/seraph/pkg/math"

type rect struct {
	min, max math.Vec2
	empty    bool
}

func (r *rect) add(p math.Vec2) {
	if r.empty {
		r.min, r.max, r.empty = p, p, false
		return
	}
	r.min = r.min.Min(p)
	r.max = r.max.Max(p)
}

// projection maps world XZ to screen cells. World -Z points up the screen.
type projection struct {
	origin        math.Vec2
	scale         float32
	width, height int
}

// fit scales b uniformly into a width x height grid of cells.
func fit(b rect, width, height int) projection {
	p := projection{width: width, height: height, scale: 1}
	if b.empty {
		return p
	}
	size := b.max.Sub(b.min)
	sx := float32(width-1) / max(size.X, 1e-6)
	sy := float32(height-1) * cellAspect / max(size.Y, 1e-6)
	p.scale = min(sx, sy)
	p.origin = math.Vec2{X: b.min.X, Y: b.max.Y}
	return p
}

// cell returns the screen cell of a world point, clamped to the grid.
func (p projection) cell(pt math.Vec3) (int, int) {
	x := (pt.X - p.origin.X) * p.scale
	y := (p.origin.Y - pt.Z) * p.scale / cellAspect
	return clampCell(x, p.width), clampCell(y, p.height)
}

func clampCell(f float32, n int) int {
	i := int(f + 0.5)
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
