package scene

import (
	"fmt"

	"sokoban/internal/game"
	"sokoban/internal/level"
	"sokoban/internal/physics"
	"sokoban/internal/primitives"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	gridMinorAlpha = 50
	// followRate is how quickly the camera catches up with the player, per second.
	followRate = 8
	// Heights of object centers above the floor plane.
	floorHeight = 0
	wallHeight  = 0.5
	goalHeight  = 0.01
	bodyHeight  = 0.4
)

var (
	followOffset  = mgl32.Vec3{0, 7, 5}
	topDownOffset = mgl32.Vec3{0, 10, 0.001}
	lightDir      = mgl32.Vec3{0.4, 1, 0.6}
)

var (
	floorDef    = primitives.Def{Shape: primitives.ShapePlane, Size: mgl32.Vec3{1, 1, 1}, Color: rl.NewColor(70, 74, 82, 255)}
	wallDef     = primitives.Def{Shape: primitives.ShapeCube, Size: mgl32.Vec3{1, 1, 1}, Color: rl.NewColor(120, 110, 100, 255)}
	goalDef     = primitives.Def{Shape: primitives.ShapeCube, Size: mgl32.Vec3{0.6, 0.02, 0.6}, Color: rl.NewColor(220, 190, 60, 255)}
	boxDef      = primitives.Def{Shape: primitives.ShapeCube, Color: rl.NewColor(170, 110, 50, 255)}
	boxDoneDef  = primitives.Def{Shape: primitives.ShapeCube, Color: rl.NewColor(90, 170, 80, 255)}
	playerDef   = primitives.Def{Shape: primitives.ShapeCube, Color: rl.NewColor(70, 130, 220, 255)}
	noseDef     = primitives.Def{Shape: primitives.ShapeCube, Size: mgl32.Vec3{0.2, 0.2, 0.2}, Color: rl.NewColor(240, 240, 240, 255)}
	bannerColor = rl.NewColor(0, 0, 0, 160)
)

// Scene holds a 3D camera that follows the player and draws the current level.
type Scene struct {
	Camera rl.Camera3D
	prims  *primitives.Registry
	placed bool
}

// New returns a scene with a perspective camera. The camera snaps to the player on the
// first Update.
func New() *Scene {
	s := &Scene{prims: primitives.NewRegistry()}
	s.Camera.Position = rl.NewVector3(followOffset[0], followOffset[1], followOffset[2])
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// Close frees GPU resources. Call before the window closes.
func (s *Scene) Close() {
	s.prims.Unload()
}

// Update moves the camera toward its place above the player.
func (s *Scene) Update(sess *game.Session, dt float32) {
	w := sess.World()
	if w == nil {
		return
	}
	target := w.Player.RenderPosition(0)
	offset := followOffset
	if sess.Config().TopDown {
		offset = topDownOffset
	}
	want := target.Add(offset)

	if !s.placed {
		s.setCamera(want, target)
		s.placed = true
		return
	}
	k := 1 - math32.Exp(-followRate*dt)
	pos := vec(s.Camera.Position)
	tgt := vec(s.Camera.Target)
	s.setCamera(pos.Add(want.Sub(pos).Mul(k)), tgt.Add(target.Sub(tgt).Mul(k)))
}

func (s *Scene) setCamera(pos, target mgl32.Vec3) {
	s.Camera.Position = rl.NewVector3(pos[0], pos[1], pos[2])
	s.Camera.Target = rl.NewVector3(target[0], target[1], target[2])
}

// Draw renders the level. Call after ClearBackground and before 2D overlays. extra runs
// inside 3D mode after the level, e.g. for debug outlines.
func (s *Scene) Draw(sess *game.Session, extra func()) {
	w, g := sess.World(), sess.Grid()
	if w == nil || g == nil {
		return
	}
	s.prims.SetView(vec(s.Camera.Position), lightDir)

	rl.BeginMode3D(s.Camera)
	s.drawFloor(g)
	if sess.Config().GridVisible {
		drawGrid(g)
	}
	for _, c := range g.WallTiles() {
		s.prims.Draw(wallDef, cellPosition(c, wallHeight), 0)
	}
	for _, p := range w.Goals {
		s.prims.Draw(goalDef, physics.GroundToRender(p, goalHeight), 0)
	}
	for i := range w.Boxes {
		s.drawBox(w, i)
	}
	s.drawPlayer(w, sess.FacingAngle())
	if extra != nil {
		extra()
	}
	rl.EndMode3D()

	drawBanner(sess)
}

func (s *Scene) drawFloor(g *level.Grid) {
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := level.Cell{X: x, Y: y}
			if g.IsWall(c) {
				continue
			}
			s.prims.Draw(floorDef, cellPosition(c, floorHeight), 0)
		}
	}
}

func (s *Scene) drawBox(w *physics.World, i int) {
	b := &w.Boxes[i]
	def := boxDef
	for _, goal := range w.Goals {
		if w.BoxOnGoal(i, goal) {
			def = boxDoneDef
			break
		}
	}
	def.Size = bodySize(b.Box.Half)
	s.prims.Draw(def, b.RenderPosition(bodyHeight), 0)
}

func (s *Scene) drawPlayer(w *physics.World, yaw float32) {
	p := &w.Player
	def := playerDef
	def.Size = bodySize(p.Box.Half)
	center := p.RenderPosition(bodyHeight)
	s.prims.Draw(def, center, yaw)

	// The nose marks the facing direction.
	r := yaw * math32.Pi / 180
	reach := def.Size[0] / 2
	nose := center.Add(mgl32.Vec3{math32.Cos(r) * reach, 0.1, -math32.Sin(r) * reach})
	s.prims.Draw(noseDef, nose, yaw)
}

// drawGrid draws cell borders over the level bounds, just above the floor.
func drawGrid(g *level.Grid) {
	c := rl.NewColor(200, 200, 200, gridMinorAlpha)
	var start, end rl.Vector3
	for x := 0; x <= g.W; x++ {
		start.X, start.Y, start.Z = float32(x)-0.5, 0.005, 0.5
		end.X, end.Y, end.Z = float32(x)-0.5, 0.005, -float32(g.H)+0.5
		rl.DrawLine3D(start, end, c)
	}
	for y := 0; y <= g.H; y++ {
		start.X, start.Y, start.Z = -0.5, 0.005, -float32(y)+0.5
		end.X, end.Y, end.Z = float32(g.W)-0.5, 0.005, -float32(y)+0.5
		rl.DrawLine3D(start, end, c)
	}
}

// drawBanner shows the level number and, once solved, a status line.
func drawBanner(sess *game.Session) {
	text := levelText(sess)
	rl.DrawRectangle(0, 0, int32(rl.GetScreenWidth()), 36, bannerColor)
	rl.DrawText(text, 12, 8, 20, rl.RayWhite)
}

func levelText(sess *game.Session) string {
	switch {
	case sess.AllCleared():
		return "All levels cleared! Press Enter to play again."
	case sess.Won():
		return "Level solved!"
	default:
		return fmt.Sprintf("Level %d / %d   [%s]   R restart, Esc console", sess.Index()+1, sess.LevelCount(), sess.Mode())
	}
}

func cellPosition(c level.Cell, height float32) mgl32.Vec3 {
	return physics.GroundToRender(mgl64.Vec2{float64(c.X), float64(c.Y)}, height)
}

// bodySize turns collider half extents into a render size with a fixed body height.
func bodySize(half mgl64.Vec2) mgl32.Vec3 {
	return mgl32.Vec3{float32(half.X() * 2), bodyHeight * 2, float32(half.Y() * 2)}
}

func vec(v rl.Vector3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}
