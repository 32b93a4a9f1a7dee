package game

import (
	"errors"
	"fmt"

	"sokoban/internal/collision"
	"sokoban/internal/gameconfig"
	"sokoban/internal/level"
	"sokoban/internal/logger"
	"sokoban/internal/physics"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"
)

// ErrLevelIndex is returned when a level outside the configured list is requested.
var ErrLevelIndex = errors.New("level index out of range")

// facingDeadZone is the input magnitude per axis below which facing is left unchanged.
const facingDeadZone = 0.1

// Session is one play-through of the configured level list.
type Session struct {
	cfg gameconfig.Config
	log *logger.Logger

	index     int
	grid      *level.Grid
	startGrid *level.Grid
	world     *physics.World
	start     *physics.World

	facing     level.Cell
	winTimer   float64
	allCleared bool
	verbose    bool
}

// New returns a session with no level loaded. Call LoadLevel(0) to start.
func New(cfg gameconfig.Config, log *logger.Logger) *Session {
	return &Session{cfg: cfg, log: log, index: -1, facing: level.Cell{Y: -1}}
}

// Config returns the session's current configuration.
func (s *Session) Config() gameconfig.Config { return s.cfg }

// World returns the simulation state of the current level, nil before the first load.
func (s *Session) World() *physics.World { return s.world }

// Grid returns the discrete state of the current level.
func (s *Session) Grid() *level.Grid { return s.grid }

// Index returns the zero-based index of the current level.
func (s *Session) Index() int { return s.index }

// LevelCount returns how many levels are configured.
func (s *Session) LevelCount() int { return len(s.cfg.Levels) }

// AllCleared reports whether the last level has been solved.
func (s *Session) AllCleared() bool { return s.allCleared }

// Won reports whether every goal of the current level is covered.
func (s *Session) Won() bool { return s.world != nil && s.world.Won() }

// Mode returns the active movement mode.
func (s *Session) Mode() gameconfig.MovementMode { return s.cfg.Mode }

// SetMode switches movement mode and restarts the level so grid and world agree.
func (s *Session) SetMode(m gameconfig.MovementMode) error {
	s.cfg.Mode = m
	s.log.WithFields(logrus.Fields{"mode": m}).Info("movement mode changed")
	if s.world == nil {
		return nil
	}
	return s.Restart()
}

// LoadLevel reads level i from disk and makes it current. On failure the previous level
// stays loaded.
func (s *Session) LoadLevel(i int) error {
	if i < 0 || i >= len(s.cfg.Levels) {
		return fmt.Errorf("%w: %d of %d", ErrLevelIndex, i+1, len(s.cfg.Levels))
	}
	path := s.cfg.Levels[i]
	g, err := level.Load(path)
	if err != nil {
		s.log.WithFields(logrus.Fields{"level_no": i + 1, "path": path}).Warnf("load failed: %v", err)
		return err
	}
	w := s.buildWorld(g)
	snap, err := w.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot level %d: %w", i+1, err)
	}

	s.index = i
	s.grid = g
	s.startGrid = g.Clone()
	s.world = w
	s.start = snap
	s.winTimer = 0
	s.allCleared = false
	s.facing = level.Cell{Y: -1}

	s.log.WithFields(logrus.Fields{
		"level_no":    i + 1,
		"path":        path,
		"walls":       len(w.Walls),
		"boxes":       len(w.Boxes),
		"goals":       len(w.Goals),
		"fingerprint": fmt.Sprintf("%016x", g.Fingerprint),
	}).Info("level loaded")
	return nil
}

// Restart reloads the current level from disk. If the file can no longer be read the level
// is reset from the copy taken at the last good load and the read error is returned.
func (s *Session) Restart() error {
	if s.world == nil {
		return s.LoadLevel(0)
	}
	prev := s.startGrid.Fingerprint
	err := s.LoadLevel(s.index)
	if err == nil {
		if s.grid.Fingerprint != prev {
			s.log.WithFields(logrus.Fields{"level_no": s.index + 1}).Info("level file changed on disk")
		}
		return nil
	}

	w, serr := s.start.Snapshot()
	if serr != nil {
		return errors.Join(err, serr)
	}
	s.world = w
	s.grid = s.startGrid.Clone()
	s.winTimer = 0
	s.log.WithFields(logrus.Fields{"level_no": s.index + 1}).Warn("restored level from memory")
	return err
}

// RestartCampaign goes back to the first level.
func (s *Session) RestartCampaign() error {
	return s.LoadLevel(0)
}

// Next skips to the following level.
func (s *Session) Next() error {
	return s.LoadLevel(s.index + 1)
}

// Intent combines held direction keys into a unit input vector, +x right and +y up.
// Opposite keys cancel.
func Intent(right, left, down, up bool) mgl64.Vec2 {
	var in mgl64.Vec2
	if right {
		in[0]++
	}
	if left {
		in[0]--
	}
	if up {
		in[1]++
	}
	if down {
		in[1]--
	}
	if in.Len() == 0 {
		return in
	}
	return in.Normalize()
}

// Update advances the session by dt seconds. In continuous mode input is moved through the
// resolver at the configured speed; step and grid modes move only on Press.
func (s *Session) Update(input mgl64.Vec2, dt float64) {
	if s.world == nil {
		return
	}
	if s.cfg.Mode == gameconfig.ModeContinuous && input.Len() > 0 {
		s.face(input)
		s.world.Step(input.Normalize().Mul(s.cfg.Speed * dt))
	}
	s.progress(dt)
}

// Press moves one cell in direction dir for the step and grid modes.
func (s *Session) Press(dir level.Cell) {
	if s.world == nil || dir == (level.Cell{}) {
		return
	}
	switch s.cfg.Mode {
	case gameconfig.ModeStep:
		s.facing = dir
		s.world.Step(mgl64.Vec2{float64(dir.X), float64(dir.Y)})
	case gameconfig.ModeGrid:
		s.facing = dir
		if s.grid.TryMove(dir) {
			s.syncFromGrid()
		}
	}
}

// Facing returns the last direction the player moved in, snapped to the eight compass
// directions.
func (s *Session) Facing() level.Cell { return s.facing }

// FacingAngle returns the facing as a rotation in degrees about the render up axis, with
// 0 facing +x.
func (s *Session) FacingAngle() float32 {
	return math32.Atan2(float32(s.facing.Y), float32(s.facing.X)) * 180 / math32.Pi
}

func (s *Session) face(in mgl64.Vec2) {
	var d level.Cell
	switch {
	case in.X() > facingDeadZone:
		d.X = 1
	case in.X() < -facingDeadZone:
		d.X = -1
	}
	switch {
	case in.Y() > facingDeadZone:
		d.Y = 1
	case in.Y() < -facingDeadZone:
		d.Y = -1
	}
	if d != (level.Cell{}) {
		s.facing = d
	}
}

func (s *Session) progress(dt float64) {
	if s.allCleared || !s.world.Won() {
		s.winTimer = 0
		return
	}
	if s.index >= len(s.cfg.Levels)-1 {
		s.allCleared = true
		s.log.Log("all levels cleared")
		return
	}
	s.winTimer += dt
	if s.winTimer < s.cfg.WinDelay {
		return
	}
	s.log.WithFields(logrus.Fields{"level_no": s.index + 1}).Info("level solved")
	if err := s.Next(); err != nil {
		s.winTimer = 0
	}
}

func (s *Session) syncFromGrid() {
	s.world.Player.Box.Center = cellCenter(s.grid.Player)
	for i := range s.world.Boxes {
		s.world.Boxes[i].Box.Center = cellCenter(s.grid.Boxes[i])
	}
}

func (s *Session) buildWorld(g *level.Grid) *physics.World {
	tiles := g.WallTiles()
	walls := make([]collision.AABB, 0, len(tiles))
	for _, c := range tiles {
		walls = append(walls, collision.Tile(c.X, c.Y))
	}
	boxes := make([]mgl64.Vec2, 0, len(g.Boxes))
	for _, c := range g.Boxes {
		boxes = append(boxes, cellCenter(c))
	}
	goals := make([]mgl64.Vec2, 0, len(g.Goals))
	for _, c := range g.Goals {
		goals = append(goals, cellCenter(c))
	}
	return physics.NewWorld(walls, cellCenter(g.Player), boxes, goals, s.options())
}

func (s *Session) options() physics.Options {
	opts := physics.DefaultOptions()
	if s.cfg.PlayerHalf > 0 {
		opts.PlayerHalf = s.cfg.PlayerHalf
	}
	if s.cfg.BoxHalf > 0 {
		opts.BoxHalf = s.cfg.BoxHalf
	}
	if s.cfg.ProbeDistance > 0 {
		opts.ProbeDistance = s.cfg.ProbeDistance
	}
	if s.cfg.GoalTolerance > 0 {
		opts.GoalTolerance = s.cfg.GoalTolerance
	}
	opts.Debugf = s.log.Debugf
	return opts
}

func cellCenter(c level.Cell) mgl64.Vec2 {
	return mgl64.Vec2{float64(c.X), float64(c.Y)}
}
