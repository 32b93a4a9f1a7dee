package collision

import "github.com/go-gl/mathgl/mgl64"

// DepenetrationIterations is the default number of passes Depenetrate makes over the obstacles.
const DepenetrationIterations = 3

// Overshoot scales every depenetration push so the corrected box does not end exactly
// on the obstacle's face and get detected again next pass.
const Overshoot = 1.001

// PushOut moves body out of other along the axis of least penetration, away from other's
// center. Returns false and leaves body untouched if the two only touch or are apart.
func PushOut(body *AABB, other AABB) bool {
	pen := body.Penetration(other)
	if pen.X() == 0 || pen.Y() == 0 {
		return false
	}
	axis := 0
	if pen.Y() <= pen.X() {
		axis = 1
	}
	pushAlong(body, other, pen, axis)
	return true
}

// PushOutAlong is PushOut along a chosen axis, 0 for x and 1 for y, even when the other axis
// is shallower.
func PushOutAlong(body *AABB, other AABB, axis int) bool {
	pen := body.Penetration(other)
	if pen.X() == 0 || pen.Y() == 0 {
		return false
	}
	pushAlong(body, other, pen, axis)
	return true
}

func pushAlong(body *AABB, other AABB, pen mgl64.Vec2, axis int) {
	depth := pen[axis]
	if body.Center[axis] < other.Center[axis] {
		depth = -depth
	}
	body.Center[axis] += depth * Overshoot
}

// Depenetrate pushes body out of every obstacle it overlaps, making at most iterations passes
// and stopping after the first pass that finds nothing to fix. A body wedged between several
// obstacles may keep some overlap; the return value reports whether it ended fully clear.
func Depenetrate(body *AABB, obstacles []AABB, iterations int) bool {
	for range iterations {
		moved := false
		for _, o := range obstacles {
			if PushOut(body, o) {
				moved = true
			}
		}
		if !moved {
			return true
		}
	}
	return !Penetrating(*body, obstacles)
}

// Penetrating reports whether body overlaps any obstacle by more than a touch.
func Penetrating(body AABB, obstacles []AABB) bool {
	for _, o := range obstacles {
		pen := body.Penetration(o)
		if pen.X() > 0 && pen.Y() > 0 {
			return true
		}
	}
	return false
}
