package physics

import (
	"sokoban/internal/collision"

	"github.com/go-gl/mathgl/mgl64"
)

// BoxOnGoal reports whether box i is within GoalTolerance of goal on both axes.
func (w *World) BoxOnGoal(i int, goal mgl64.Vec2) bool {
	tol := w.Options.GoalTolerance
	area := collision.NewAABB(goal, mgl64.Vec2{tol, tol})
	return area.ContainsPoint(w.Boxes[i].Box.Center)
}

// GoalCovered reports whether any box covers goal g.
func (w *World) GoalCovered(g int) bool {
	for i := range w.Boxes {
		if w.BoxOnGoal(i, w.Goals[g]) {
			return true
		}
	}
	return false
}

// CoveredGoals counts the goals that have a box on them.
func (w *World) CoveredGoals() int {
	n := 0
	for g := range w.Goals {
		if w.GoalCovered(g) {
			n++
		}
	}
	return n
}

// Won reports whether every goal is covered. A level without goals is won from the start.
func (w *World) Won() bool {
	for g := range w.Goals {
		if !w.GoalCovered(g) {
			return false
		}
	}
	return true
}
