package debug

import (
	"fmt"
	"runtime"

	"sokoban/internal/collision"
	"sokoban/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
	// colliderHeight is the height of the outline boxes drawn around colliders.
	colliderHeight = 0.9
)

var (
	wallOutline   = rl.NewColor(200, 60, 60, 255)
	boxOutline    = rl.NewColor(240, 160, 40, 255)
	playerOutline = rl.NewColor(60, 220, 90, 255)
)

// Debug holds runtime debugging features. All overlays are off by default.
type Debug struct {
	ShowFPS       bool
	ShowMemAlloc  bool
	ShowColliders bool
	frameCount    uint32
	lastFpsText   string
	lastMemText   string
	lastMemStats  runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// DrawColliders outlines every wall, box and the player collider. Call between
// BeginMode3D and EndMode3D.
func (d *Debug) DrawColliders(w *physics.World) {
	if !d.ShowColliders || w == nil {
		return
	}
	for _, a := range w.Walls {
		outline(a, wallOutline)
	}
	for i := range w.Boxes {
		outline(w.Boxes[i].Box, boxOutline)
	}
	outline(w.Player.Box, playerOutline)
}

func outline(a collision.AABB, c rl.Color) {
	p := physics.GroundToRender(a.Center, colliderHeight/2)
	rl.DrawCubeWires(rl.NewVector3(p[0], p[1], p[2]), float32(a.Half.X()*2), colliderHeight, float32(a.Half.Y()*2), c)
}

// Draw renders the 2D overlays. Call after scene and terminal in the draw loop.
// FPS is drawn at the top-right in green when ShowFPS is true, memory under it.
// Text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	y := int32(fpsPadding) + 36
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, y)
		y += fpsLineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		drawRight(d.lastMemText, y)
	}
}

func drawRight(text string, y int32) {
	if text == "" {
		return
	}
	x := int32(rl.GetScreenWidth()) - rl.MeasureText(text, fpsFontSize) - fpsPadding
	rl.DrawText(text, x, y, fpsFontSize, rl.Green)
}
