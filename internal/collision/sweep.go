package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ParallelEpsilon is the per-axis displacement below which the slab test falls back to a
// plain overlap check instead of dividing by the displacement.
const ParallelEpsilon = 1e-8

// SweepResult is the outcome of a single swept query.
// TimeOfImpact is in [0,1]; 1 means no contact within the displacement and Normal is zero.
type SweepResult struct {
	TimeOfImpact float64
	Normal       mgl64.Vec2
}

// Hit reports whether the sweep found a contact before the end of the displacement.
func (r SweepResult) Hit() bool {
	return r.TimeOfImpact < 1
}

var noImpact = SweepResult{TimeOfImpact: 1}

// raySlab clips [t0, t1] against one axis of the slab [slabMin, slabMax] for a ray starting
// at origin travelling dir. Returns false when the ray misses the slab.
func raySlab(origin, dir, slabMin, slabMax float64, t0, t1 *float64) bool {
	if math.Abs(dir) < ParallelEpsilon {
		return origin >= slabMin && origin <= slabMax
	}
	inv := 1 / dir
	tNear := (slabMin - origin) * inv
	tFar := (slabMax - origin) * inv
	if tNear > tFar {
		tNear, tFar = tFar, tNear
	}
	*t0 = math.Max(*t0, tNear)
	*t1 = math.Min(*t1, tFar)
	return *t0 <= *t1
}

// Sweep finds the earliest fraction of delta at which moving first touches target.
// The target is inflated by the mover's half extents so the mover reduces to a ray from its
// center. A mover already overlapping the target reports a hit at time zero.
//
// The normal is taken from whichever inflated face lies closest to the contact point,
// checked in the order -x, +x, -y, +y. Exactly at a corner this can pick the face the mover
// slid along rather than the one it hit.
func Sweep(moving AABB, delta mgl64.Vec2, target AABB) SweepResult {
	inflated := target.Inflate(moving)
	tMin, tMax := inflated.Min(), inflated.Max()
	origin := moving.Center

	t0, t1 := 0.0, 1.0
	okX := raySlab(origin.X(), delta.X(), tMin.X(), tMax.X(), &t0, &t1)
	okY := raySlab(origin.Y(), delta.Y(), tMin.Y(), tMax.Y(), &t0, &t1)
	if !okX || !okY || t0 < 0 || t0 > 1 {
		return noImpact
	}

	contact := origin.Add(delta.Mul(t0))
	return SweepResult{TimeOfImpact: t0, Normal: nearestFaceNormal(contact, tMin, tMax)}
}

// nearestFaceNormal returns the outward normal of the box face nearest to p.
// First minimum wins: -x, +x, -y, +y.
func nearestFaceNormal(p, boxMin, boxMax mgl64.Vec2) mgl64.Vec2 {
	faces := [4]struct {
		dist   float64
		normal mgl64.Vec2
	}{
		{math.Abs(p.X() - boxMin.X()), mgl64.Vec2{-1, 0}},
		{math.Abs(p.X() - boxMax.X()), mgl64.Vec2{1, 0}},
		{math.Abs(p.Y() - boxMin.Y()), mgl64.Vec2{0, -1}},
		{math.Abs(p.Y() - boxMax.Y()), mgl64.Vec2{0, 1}},
	}
	best := 0
	for i := 1; i < len(faces); i++ {
		if faces[i].dist < faces[best].dist {
			best = i
		}
	}
	return faces[best].normal
}
