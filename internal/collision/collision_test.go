package collision

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitBox(x, y float64) AABB {
	return NewAABB(mgl64.Vec2{x, y}, mgl64.Vec2{0.5, 0.5})
}

// room returns the wall tiles bounding an interior of w*h cells whose lower-left cell is (1,1).
func room(w, h int) []AABB {
	var walls []AABB
	for x := 0; x <= w+1; x++ {
		walls = append(walls, Tile(x, 0), Tile(x, h+1))
	}
	for y := 1; y <= h; y++ {
		walls = append(walls, Tile(0, y), Tile(w+1, y))
	}
	return walls
}

func TestSweepHitsFaceAndReportsNormal(t *testing.T) {
	tests := []struct {
		name   string
		delta  mgl64.Vec2
		target AABB
		toi    float64
		normal mgl64.Vec2
	}{
		{"from left", mgl64.Vec2{4, 0}, unitBox(3, 0), 0.5, mgl64.Vec2{-1, 0}},
		{"from right", mgl64.Vec2{-4, 0}, unitBox(-3, 0), 0.5, mgl64.Vec2{1, 0}},
		{"from below", mgl64.Vec2{0, 4}, unitBox(0, 3), 0.5, mgl64.Vec2{0, -1}},
		{"from above", mgl64.Vec2{0, -8}, unitBox(0, -3), 0.25, mgl64.Vec2{0, 1}},
	}
	mover := unitBox(0, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Sweep(mover, tt.delta, tt.target)
			require.True(t, h.Hit())
			assert.InDelta(t, tt.toi, h.TimeOfImpact, 1e-12)
			assert.Equal(t, tt.normal, h.Normal)
		})
	}
}

func TestSweepMisses(t *testing.T) {
	mover := unitBox(0, 0)
	target := unitBox(3, 0)
	tests := []struct {
		name  string
		delta mgl64.Vec2
	}{
		{"too short", mgl64.Vec2{1, 0}},
		{"moving away", mgl64.Vec2{-4, 0}},
		{"passes above", mgl64.Vec2{4, 3}},
		{"perpendicular", mgl64.Vec2{0, 4}},
		{"zero and apart", mgl64.Vec2{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Sweep(mover, tt.delta, target)
			assert.False(t, h.Hit())
			assert.Equal(t, 1.0, h.TimeOfImpact)
			assert.Equal(t, mgl64.Vec2{}, h.Normal)
		})
	}
}

func TestSweepZeroDeltaOverlapIsImmediateHit(t *testing.T) {
	h := Sweep(unitBox(2.5, 0), mgl64.Vec2{}, unitBox(3, 0))
	assert.Equal(t, 0.0, h.TimeOfImpact)
	assert.Equal(t, mgl64.Vec2{-1, 0}, h.Normal)
}

// Hitting an inflated corner dead on ties the -x and -y faces. The first face in
// enumeration order wins even though the mover arrives diagonally.
func TestSweepCornerTiePrefersFirstFace(t *testing.T) {
	h := Sweep(unitBox(0, 0), mgl64.Vec2{2, 2}, unitBox(2, 2))
	require.True(t, h.Hit())
	assert.InDelta(t, 0.5, h.TimeOfImpact, 1e-12)
	assert.Equal(t, mgl64.Vec2{-1, 0}, h.Normal)
}

func TestContainsPointIncludesEdges(t *testing.T) {
	a := NewAABB(mgl64.Vec2{1, 1}, mgl64.Vec2{0.3, 0.3})

	assert.True(t, a.ContainsPoint(mgl64.Vec2{1, 1}))
	assert.True(t, a.ContainsPoint(mgl64.Vec2{1.25, 0.75}))
	assert.True(t, a.ContainsPoint(a.Max()))
	assert.True(t, a.ContainsPoint(a.Min()))
	assert.False(t, a.ContainsPoint(mgl64.Vec2{1.31, 1}))
	assert.False(t, a.ContainsPoint(mgl64.Vec2{1, 0.69}))
}

func TestPushOutAlongUsesRequestedAxis(t *testing.T) {
	body := unitBox(0, 0.2)
	other := unitBox(0.9, 0)

	require.True(t, PushOutAlong(&body, other, 1))
	assert.InDelta(t, 0, body.Center.X(), 1e-12)
	assert.InDelta(t, 0.2+0.8*Overshoot, body.Center.Y(), 1e-12)

	apart := unitBox(3, 0)
	assert.False(t, PushOutAlong(&body, apart, 0))
}

func TestPushOutShallowAxis(t *testing.T) {
	body := NewAABB(mgl64.Vec2{0.1, 0}, mgl64.Vec2{0.5, 0.5})
	require.True(t, PushOut(&body, Tile(1, 0)))
	assert.InDelta(t, 0.1-0.1*Overshoot, body.Center.X(), 1e-12)
	assert.Equal(t, 0.0, body.Center.Y())

	touching := NewAABB(mgl64.Vec2{0, 0}, mgl64.Vec2{0.5, 0.5})
	assert.False(t, PushOut(&touching, Tile(1, 0)))
	assert.Equal(t, mgl64.Vec2{0, 0}, touching.Center)
}

func TestDepenetrateConverges(t *testing.T) {
	walls := []AABB{Tile(1, 0)}
	body := NewAABB(mgl64.Vec2{0.1, 0}, mgl64.Vec2{0.5, 0.5})
	require.InDelta(t, 0.1, body.Penetration(walls[0]).X(), 1e-9)

	assert.True(t, Depenetrate(&body, walls, DepenetrationIterations))
	assert.False(t, Penetrating(body, walls))
	assert.Equal(t, mgl64.Vec2{}, body.Penetration(walls[0]))
}

func TestDepenetrateWedgedKeepsResidualOverlap(t *testing.T) {
	// Too wide for the corridor between the two walls.
	walls := []AABB{Tile(0, 0), Tile(2, 0)}
	body := NewAABB(mgl64.Vec2{1, 0}, mgl64.Vec2{0.6, 0.6})
	assert.False(t, Depenetrate(&body, walls, DepenetrationIterations))
	assert.True(t, Penetrating(body, walls))
}

func TestMoveAndCollideZeroDeltaIsIdempotent(t *testing.T) {
	walls := room(3, 3)
	for _, c := range []mgl64.Vec2{{2, 2}, {1.05, 1}, {0.9, 2}} {
		body := NewAABB(c, mgl64.Vec2{0.38, 0.38})
		res := MoveAndCollide(&body, mgl64.Vec2{}, walls)
		assert.Equal(t, c, body.Center)
		assert.False(t, res.Hit)
		assert.Equal(t, mgl64.Vec2{}, res.Moved)
	}
}

func TestMoveAndCollideFreeMove(t *testing.T) {
	walls := room(5, 5)
	body := NewAABB(mgl64.Vec2{2, 2}, mgl64.Vec2{0.38, 0.38})
	res := MoveAndCollide(&body, mgl64.Vec2{1, 0.5}, walls)
	assert.False(t, res.Hit)
	assert.InDelta(t, 3, body.Center.X(), 1e-12)
	assert.InDelta(t, 2.5, body.Center.Y(), 1e-12)
	assert.Equal(t, mgl64.Vec2{}, res.Normal)
}

func TestMoveAndCollideStopsAtWall(t *testing.T) {
	walls := room(5, 5)
	body := NewAABB(mgl64.Vec2{4, 3}, mgl64.Vec2{0.38, 0.38})
	res := MoveAndCollide(&body, mgl64.Vec2{3, 0}, walls)
	require.True(t, res.Hit)
	assert.Equal(t, mgl64.Vec2{-1, 0}, res.Normal)
	// Right wall face is at 5.5; the body stops one skin width short of touching it.
	assert.InDelta(t, 5.5-0.38-SkinWidth, body.Center.X(), 1e-9)
	assert.InDelta(t, 3, body.Center.Y(), 1e-12)
}

func TestMoveAndCollideSlidesAlongWall(t *testing.T) {
	var walls []AABB
	for y := -5; y <= 5; y++ {
		walls = append(walls, Tile(2, y))
	}
	// Start flush against the column.
	body := NewAABB(mgl64.Vec2{1, 0}, mgl64.Vec2{0.5, 0.5})
	res := MoveAndCollide(&body, mgl64.Vec2{0.5, 0.5}, walls)

	require.True(t, res.Hit)
	assert.Equal(t, mgl64.Vec2{-1, 0}, res.Normal)
	assert.InDelta(t, 0, res.Moved.X(), 1e-3, "no motion through the wall normal")
	assert.InDelta(t, 0.5, res.Moved.Y(), 1e-12, "tangential motion preserved")
	assert.False(t, Penetrating(body, walls))
}

func TestMoveAndCollideKeepsMotionAwayFromSurface(t *testing.T) {
	var walls []AABB
	for y := -5; y <= 5; y++ {
		walls = append(walls, Tile(2, y))
	}
	body := NewAABB(mgl64.Vec2{1, 0}, mgl64.Vec2{0.5, 0.5})
	res := MoveAndCollide(&body, mgl64.Vec2{-0.5, 0.5}, walls)

	require.True(t, res.Hit)
	assert.Equal(t, mgl64.Vec2{-1, 0}, res.Normal)
	assert.InDelta(t, -0.5-SkinWidth, res.Moved.X(), 1e-9, "motion off the surface is kept")
	assert.InDelta(t, 0.5, res.Moved.Y(), 1e-9)
	assert.False(t, Penetrating(body, walls))
}

func TestMoveAndCollideNeverPenetrates(t *testing.T) {
	walls := room(4, 4)
	deltas := []mgl64.Vec2{
		{3, 0.3}, {-0.7, 2.9}, {-3.3, -0.4}, {0.2, -3.1}, {2.2, 2.7},
		{-2.6, 1.9}, {0.01, 0}, {-4, -4.5}, {5, 1.3}, {0, 6},
	}
	body := NewAABB(mgl64.Vec2{2.5, 2.5}, mgl64.Vec2{0.38, 0.38})
	for i, d := range deltas {
		MoveAndCollide(&body, d, walls)
		for _, w := range walls {
			pen := body.Penetration(w)
			assert.False(t, pen.X() > 1e-9 && pen.Y() > 1e-9, "step %d overlaps wall %v by %v", i, w.Center, pen)
		}
	}
}
