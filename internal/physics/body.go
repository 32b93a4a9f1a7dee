package physics

import (
	"sokoban/internal/collision"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Kind tells the player apart from pushable boxes.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBox:
		return "box"
	default:
		return "unknown"
	}
}

// Body is a movable collider on the ground plane. Index is the box's position in
// World.Boxes and -1 for the player.
type Body struct {
	Kind  Kind
	Index int
	Box   collision.AABB
}

// NewBody returns a body centered at center with equal half extents on both axes.
func NewBody(kind Kind, index int, center mgl64.Vec2, half float64) Body {
	return Body{
		Kind:  kind,
		Index: index,
		Box:   collision.NewAABB(center, mgl64.Vec2{half, half}),
	}
}

// Center returns the body's position on the ground plane.
func (b *Body) Center() mgl64.Vec2 {
	return b.Box.Center
}

// RenderPosition maps the ground-plane center (x, y) to render space. The vertical render
// axis is fixed at height and +y points away from the default camera (render -Z).
func (b *Body) RenderPosition(height float32) mgl32.Vec3 {
	return GroundToRender(b.Box.Center, height)
}

// GroundToRender maps a ground-plane point (x, y) to the render-space point (x, height, -y).
func GroundToRender(p mgl64.Vec2, height float32) mgl32.Vec3 {
	return mgl32.Vec3{float32(p.X()), height, -float32(p.Y())}
}
