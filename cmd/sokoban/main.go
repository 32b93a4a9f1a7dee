package main

import (
	"flag"
	"os"

	"sokoban/internal/commands"
	"sokoban/internal/debug"
	"sokoban/internal/env"
	"sokoban/internal/game"
	"sokoban/internal/gameconfig"
	"sokoban/internal/graphics"
	"sokoban/internal/logger"
	"sokoban/internal/scene"
	"sokoban/internal/terminal"

	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", gameconfig.ConfigPath, "game config file")
	start := flag.Int("level", 1, "level to start on, starting at 1")
	mode := flag.String("mode", "", "movement mode override: continuous, step or grid")
	verbose := flag.Bool("v", false, "log collision traces")
	flag.Parse()

	log := logger.New()
	log.SetVerbose(*verbose)

	if err := env.Load(".env"); err != nil {
		log.Log(err.Error())
	}
	cfg, err := gameconfig.LoadFrom(*configPath)
	if err != nil {
		log.WithFields(logrus.Fields{"path": *configPath}).Warnf("using default config: %v", err)
	}
	if cfg, err = gameconfig.ApplyEnv(cfg, os.LookupEnv); err != nil {
		log.Warnf("environment overrides: %v", err)
	}
	if *mode != "" {
		m, err := gameconfig.ParseMode(*mode)
		if err != nil {
			log.WithFields(logrus.Fields{"mode": *mode}).Warnf("ignoring -mode: %v", err)
		} else {
			cfg.Mode = m
		}
	}

	sess := game.New(cfg, log)
	if err := sess.LoadLevel(*start - 1); err != nil {
		log.WithFields(logrus.Fields{"level_no": *start}).Warnf("falling back to level 1: %v", err)
		if err := sess.LoadLevel(0); err != nil {
			log.WithFields(logrus.Fields{"levels": cfg.Levels}).Errorf("no playable level: %v", err)
			os.Exit(1)
		}
	}

	reg := commands.NewRegistry()
	sess.RegisterCommands(reg)
	term := terminal.New(log, reg)
	scn := scene.New()
	dbg := debug.New()

	update := func(dt float32) bool {
		term.Update()
		if !term.IsOpen() {
			handleKeys(sess, log)
		}
		sess.Update(heldIntent(sess, term.IsOpen()), float64(dt))
		scn.Update(sess, dt)

		c := sess.Config()
		dbg.ShowFPS = c.ShowFPS
		dbg.ShowMemAlloc = c.ShowMem
		dbg.ShowColliders = c.ShowColliders
		return false
	}
	draw := func() {
		scn.Draw(sess, func() { dbg.DrawColliders(sess.World()) })
		term.Draw()
		dbg.Draw()
	}

	win := graphics.DefaultWindow("Sokoban")
	win.OnClose = scn.Close
	graphics.Run(win, update, draw)
}
