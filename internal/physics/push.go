package physics

import (
	"math"

	"sokoban/internal/collision"

	"github.com/go-gl/mathgl/mgl64"
)

// PushOutcome describes the box the player ran into during a step, if any.
type PushOutcome struct {
	// Box is the index of the probed box, -1 when nothing was ahead.
	Box int
	// Pushed is set when the box moved and the player followed it.
	Pushed bool
	// BoxMoved is the displacement the box achieved, zero when it was blocked.
	BoxMoved mgl64.Vec2
}

// StepResult reports how one step of player movement resolved.
type StepResult struct {
	Moved  mgl64.Vec2
	Normal mgl64.Vec2
	Push   PushOutcome
}

// PushAxis returns the cardinal unit direction of the dominant component of delta.
// Equal components pick the horizontal axis; a zero delta has no axis.
func PushAxis(delta mgl64.Vec2) mgl64.Vec2 {
	ax, ay := math.Abs(delta.X()), math.Abs(delta.Y())
	switch {
	case ax == 0 && ay == 0:
		return mgl64.Vec2{}
	case ax >= ay:
		return mgl64.Vec2{math.Copysign(1, delta.X()), 0}
	default:
		return mgl64.Vec2{0, math.Copysign(1, delta.Y())}
	}
}

// ProbeBox returns the first box overlapping the player's collider shifted ProbeDistance
// along axis, or -1.
func (w *World) ProbeBox(axis mgl64.Vec2) int {
	probe := w.Player.Box.Translate(axis.Mul(w.Options.ProbeDistance))
	for i := range w.Boxes {
		if probe.Overlaps(w.Boxes[i].Box) {
			return i
		}
	}
	return -1
}

// TryMoveBox moves box i by delta against the walls. If the box then overlaps any other box
// it is put back where it was and the move reports (0, false). Otherwise it returns the
// displacement actually achieved, which sliding may have shortened.
func (w *World) TryMoveBox(i int, delta mgl64.Vec2) (mgl64.Vec2, bool) {
	box := &w.Boxes[i]
	prev := box.Box.Center

	collision.MoveAndCollide(&box.Box, delta, w.Walls)

	for j := range w.Boxes {
		if j == i {
			continue
		}
		if box.Box.Overlaps(w.Boxes[j].Box) {
			w.debugf("box %d blocked by box %d, reverting to %v", i, j, prev)
			box.Box.Center = prev
			return mgl64.Vec2{}, false
		}
	}
	return box.Box.Center.Sub(prev), true
}

// Step resolves one attempted player displacement against walls and boxes.
//
// Pushing happens along a single cardinal axis. A box found ahead of the player is moved
// first, by the push axis times the length of delta, and the player then follows by exactly
// what the box achieved. When the box cannot move the player keeps only the part of delta
// that does not drive into it. Without a box ahead the player just slides along the walls.
// A final pass pushes the player out of any box it ended up overlapping, then out of the walls.
func (w *World) Step(delta mgl64.Vec2) StepResult {
	res := StepResult{Push: PushOutcome{Box: -1}}
	axis := PushAxis(delta)
	if axis == (mgl64.Vec2{}) {
		return res
	}
	start := w.Player.Box.Center

	var mv collision.MoveResult
	if i := w.ProbeBox(axis); i >= 0 {
		res.Push.Box = i
		moved, ok := w.TryMoveBox(i, axis.Mul(delta.Len()))
		res.Push.BoxMoved = moved
		if ok && moved != (mgl64.Vec2{}) {
			res.Push.Pushed = true
			mv = collision.MoveAndCollide(&w.Player.Box, moved, w.Walls)
		} else {
			slide := delta
			if vn := delta.Dot(axis); vn > 0 {
				slide = delta.Sub(axis.Mul(vn))
			}
			mv = collision.MoveAndCollide(&w.Player.Box, slide, w.Walls)
		}
	} else {
		mv = collision.MoveAndCollide(&w.Player.Box, delta, w.Walls)
	}
	res.Normal = mv.Normal

	w.separateFromBoxes()
	if !collision.Depenetrate(&w.Player.Box, w.Walls, collision.DepenetrationIterations) {
		w.debugf("player still inside a wall at %v", w.Player.Box.Center)
	}
	res.Moved = w.Player.Box.Center.Sub(start)
	return res
}

// separateFromBoxes runs one correction of the player against every box. The shallow axis is
// preferred, but when that would put the player into a wall the other axis is used instead.
func (w *World) separateFromBoxes() {
	for i := range w.Boxes {
		box := w.Boxes[i].Box
		pen := w.Player.Box.Penetration(box)
		if pen.X() == 0 || pen.Y() == 0 {
			continue
		}
		shallow := 0
		if pen.Y() <= pen.X() {
			shallow = 1
		}
		moved := w.Player.Box
		collision.PushOutAlong(&moved, box, shallow)
		if collision.Penetrating(moved, w.Walls) {
			other := w.Player.Box
			collision.PushOutAlong(&other, box, 1-shallow)
			if !collision.Penetrating(other, w.Walls) {
				moved = other
			}
		}
		w.Player.Box = moved
		w.debugf("player pushed out of box %d to %v", i, w.Player.Box.Center)
	}
}
