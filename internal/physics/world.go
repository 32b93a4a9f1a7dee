package physics

import (
	"fmt"

	"sokoban/internal/collision"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"
)

// Options are the tunables of a world. Zero values are not valid; start from DefaultOptions.
type Options struct {
	// PlayerHalf and BoxHalf are the collider half extents. Both sit a little inside the
	// unit cell so bodies can turn corners without snagging.
	PlayerHalf float64
	BoxHalf    float64
	// ProbeDistance is how far ahead of the player a box is looked for before pushing.
	ProbeDistance float64
	// GoalTolerance is how close a box center must be to a goal to cover it.
	GoalTolerance float64
	// LoadDepenetrationIterations bounds the overlap fix-up run when the world is built.
	LoadDepenetrationIterations int

	// Debugf receives resolver trace output, nil to discard it.
	Debugf func(format string, args ...any)
}

// DefaultOptions returns the collider sizes and thresholds the levels are designed around.
func DefaultOptions() Options {
	return Options{
		PlayerHalf:                  0.38,
		BoxHalf:                     0.40,
		ProbeDistance:               0.6,
		GoalTolerance:               0.3,
		LoadDepenetrationIterations: 4,
	}
}

// World is the whole simulation state of one level: static walls, the player, the boxes and
// the goal cells. It is owned by the caller and mutated only through Step.
type World struct {
	Walls   []collision.AABB
	Player  Body
	Boxes   []Body
	Goals   []mgl64.Vec2
	Options Options
}

// NewWorld builds a world from wall boxes and start positions, then pushes the player and
// every box out of any wall they were placed overlapping.
func NewWorld(walls []collision.AABB, player mgl64.Vec2, boxes, goals []mgl64.Vec2, opts Options) *World {
	w := &World{
		Walls:   walls,
		Player:  NewBody(KindPlayer, -1, player, opts.PlayerHalf),
		Boxes:   make([]Body, 0, len(boxes)),
		Goals:   goals,
		Options: opts,
	}
	for i, c := range boxes {
		w.Boxes = append(w.Boxes, NewBody(KindBox, i, c, opts.BoxHalf))
	}

	w.settle(&w.Player)
	for i := range w.Boxes {
		w.settle(&w.Boxes[i])
	}
	return w
}

func (w *World) settle(b *Body) {
	start := b.Box.Center
	if !collision.Depenetrate(&b.Box, w.Walls, w.Options.LoadDepenetrationIterations) {
		w.debugf("%s %d still overlaps a wall after depenetration at %v", b.Kind, b.Index, b.Box.Center)
		return
	}
	if b.Box.Center != start {
		w.debugf("%s %d moved out of wall: %v -> %v", b.Kind, b.Index, start, b.Box.Center)
	}
}

func (w *World) debugf(format string, args ...any) {
	if w.Options.Debugf != nil {
		w.Options.Debugf(format, args...)
	}
}

// BoxCenters returns the current box positions in box order.
func (w *World) BoxCenters() []mgl64.Vec2 {
	out := make([]mgl64.Vec2, len(w.Boxes))
	for i := range w.Boxes {
		out[i] = w.Boxes[i].Box.Center
	}
	return out
}

// Snapshot returns a deep copy of the world that shares no slices with w.
func (w *World) Snapshot() (*World, error) {
	clone := &World{}
	if err := copier.CopyWithOption(clone, w, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("snapshot world: %w", err)
	}
	clone.Options.Debugf = w.Options.Debugf
	return clone, nil
}
