package main

import (
	"sokoban/internal/game"
	"sokoban/internal/gameconfig"
	"sokoban/internal/level"
	"sokoban/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

func down(keys ...int32) bool {
	for _, k := range keys {
		if rl.IsKeyDown(k) {
			return true
		}
	}
	return false
}

func pressed(keys ...int32) bool {
	for _, k := range keys {
		if rl.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// heldIntent reads WASD and the arrow keys as a continuous input vector.
func heldIntent(sess *game.Session, consoleOpen bool) mgl64.Vec2 {
	if consoleOpen || sess.Mode() != gameconfig.ModeContinuous {
		return mgl64.Vec2{}
	}
	return game.Intent(
		down(rl.KeyD, rl.KeyRight),
		down(rl.KeyA, rl.KeyLeft),
		down(rl.KeyS, rl.KeyDown),
		down(rl.KeyW, rl.KeyUp),
	)
}

// handleKeys runs the one-shot keys: single steps, restart and replay.
func handleKeys(sess *game.Session, log *logger.Logger) {
	if pressed(rl.KeyR) {
		if err := sess.Restart(); err != nil {
			log.Log(err.Error())
		}
	}
	if sess.AllCleared() && pressed(rl.KeyEnter, rl.KeyKpEnter) {
		if err := sess.RestartCampaign(); err != nil {
			log.Log(err.Error())
		}
	}
	if sess.Mode() == gameconfig.ModeContinuous {
		return
	}
	var d level.Cell
	switch {
	case pressed(rl.KeyD, rl.KeyRight):
		d.X = 1
	case pressed(rl.KeyA, rl.KeyLeft):
		d.X = -1
	case pressed(rl.KeyW, rl.KeyUp):
		d.Y = 1
	case pressed(rl.KeyS, rl.KeyDown):
		d.Y = -1
	}
	sess.Press(d)
}
