package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// SlideIterations caps the sweep/advance/slide passes of MoveAndCollide.
	SlideIterations = 4
	// MinRemaining is the |x|+|y| displacement below which a move counts as finished.
	MinRemaining = 1e-6
	// HitThreshold: a sweep counts as a contact only when its TOI is below 1-HitThreshold.
	HitThreshold = 1e-5
	// SkinWidth is how far a body is nudged off a surface after touching it.
	SkinWidth = 1e-4
)

// MoveResult reports what MoveAndCollide did.
type MoveResult struct {
	// Moved is the displacement actually applied to the body.
	Moved mgl64.Vec2
	// Normal is the normal of the last surface touched, zero if nothing was touched.
	Normal mgl64.Vec2
	// Hit is set when any surface was touched during the move.
	Hit bool
}

// MoveAndCollide moves body by delta against static obstacles. On each contact the body stops
// at the surface, loses the part of the leftover motion that drives into it and keeps sliding
// along it. A zero delta never moves the body.
func MoveAndCollide(body *AABB, delta mgl64.Vec2, obstacles []AABB) MoveResult {
	start := body.Center
	var res MoveResult
	remain := delta

	for iter := 0; iter < SlideIterations && math.Abs(remain.X())+math.Abs(remain.Y()) > MinRemaining; iter++ {
		best := noImpact
		for _, o := range obstacles {
			if h := Sweep(*body, remain, o); h.TimeOfImpact < best.TimeOfImpact {
				best = h
			}
		}

		body.Center = body.Center.Add(remain.Mul(best.TimeOfImpact))

		if best.TimeOfImpact >= 1-HitThreshold {
			break
		}

		leftover := remain.Mul(1 - best.TimeOfImpact)
		if leftover.Dot(best.Normal) < 0 {
			// Heading into the face: drop the normal part, keep the tangential part.
			leftover = leftover.Sub(best.Normal.Mul(leftover.Dot(best.Normal)))
		}
		remain = leftover

		res.Normal = best.Normal
		res.Hit = true
		body.Center = body.Center.Add(best.Normal.Mul(SkinWidth))
	}

	res.Moved = body.Center.Sub(start)
	return res
}
