package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Shape selects the mesh a Def is drawn with.
type Shape uint8

const (
	ShapeCube Shape = iota
	// ShapePlane is a flat quad in the XZ plane.
	ShapePlane
)

// Def is how one kind of scene object looks: mesh, size in render units and tint.
type Def struct {
	Shape Shape
	Size  mgl32.Vec3
	Color rl.Color
}
