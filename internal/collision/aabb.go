package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned box on the XZ ground plane, stored as center + half extents.
// Half extents must be non-negative; degenerate boxes give undefined positioning.
type AABB struct {
	Center mgl64.Vec2
	Half   mgl64.Vec2
}

// NewAABB returns a box centered at c with the given half extents.
func NewAABB(c, half mgl64.Vec2) AABB {
	return AABB{Center: c, Half: half}
}

// Tile returns the unit box for the grid cell (x, y).
func Tile(x, y int) AABB {
	return AABB{Center: mgl64.Vec2{float64(x), float64(y)}, Half: mgl64.Vec2{0.5, 0.5}}
}

// Min returns the lower corner.
func (a AABB) Min() mgl64.Vec2 {
	return a.Center.Sub(a.Half)
}

// Max returns the upper corner.
func (a AABB) Max() mgl64.Vec2 {
	return a.Center.Add(a.Half)
}

// Translate returns a copy of a moved by d.
func (a AABB) Translate(d mgl64.Vec2) AABB {
	a.Center = a.Center.Add(d)
	return a
}

// Inflate returns a grown by the half extents of other (Minkowski sum of the two footprints).
func (a AABB) Inflate(other AABB) AABB {
	a.Half = a.Half.Add(other.Half)
	return a
}

// Overlaps reports whether a and b intersect. Touching boxes count as overlapping.
func (a AABB) Overlaps(b AABB) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	return !(aMax.X() < bMin.X() || aMin.X() > bMax.X() || aMax.Y() < bMin.Y() || aMin.Y() > bMax.Y())
}

// Penetration returns how deep a and b overlap on each axis. Both components are zero
// when the boxes are separated or only touching.
func (a AABB) Penetration(b AABB) mgl64.Vec2 {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := b.Min(), b.Max()
	ox := math.Min(aMax.X()-bMin.X(), bMax.X()-aMin.X())
	oy := math.Min(aMax.Y()-bMin.Y(), bMax.Y()-aMin.Y())
	if ox <= 0 || oy <= 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{ox, oy}
}

// ContainsPoint reports whether p lies inside a, edges included.
func (a AABB) ContainsPoint(p mgl64.Vec2) bool {
	aMin, aMax := a.Min(), a.Max()
	return p.X() >= aMin.X() && p.X() <= aMax.X() && p.Y() >= aMin.Y() && p.Y() <= aMax.Y()
}
