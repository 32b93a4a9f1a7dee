package game

import (
	"fmt"

	"sokoban/internal/commands"
	"sokoban/internal/gameconfig"
)

// RegisterCommands adds the console commands that drive the session to reg.
func (s *Session) RegisterCommands(reg *commands.Registry) {
	levelFS := commands.NewFlagSet("level")
	n := levelFS.Int("n", 1, "level number, starting at 1")
	reg.Register("level", "load a level", levelFS, func() error {
		return s.LoadLevel(*n - 1)
	})

	reg.Register("restart", "reload the current level", nil, s.Restart)
	reg.Register("next", "skip to the next level", nil, s.Next)

	modeFS := commands.NewFlagSet("mode")
	set := modeFS.String("set", "", "`continuous|step|grid`")
	reg.Register("mode", "show or change the movement mode", modeFS, func() error {
		if *set == "" {
			s.log.Log(fmt.Sprintf("mode: %s", s.cfg.Mode))
			return nil
		}
		m, err := gameconfig.ParseMode(*set)
		if err != nil {
			return err
		}
		return s.SetMode(m)
	})

	viewFS := commands.NewFlagSet("view")
	top := viewFS.Bool("top", false, "top-down camera")
	grid := viewFS.Bool("grid", false, "draw the floor grid")
	reg.Register("view", "set the camera; no flags restores the follow camera", viewFS, func() error {
		s.cfg.TopDown = *top
		s.cfg.GridVisible = *grid
		return nil
	})

	debugFS := commands.NewFlagSet("debug")
	fps := debugFS.Bool("fps", false, "toggle the fps counter")
	mem := debugFS.Bool("mem", false, "toggle the heap usage readout")
	colliders := debugFS.Bool("colliders", false, "toggle collider outlines")
	verbose := debugFS.Bool("v", false, "toggle resolver trace logging")
	reg.Register("debug", "toggle debug overlays", debugFS, func() error {
		if *fps {
			s.cfg.ShowFPS = !s.cfg.ShowFPS
		}
		if *mem {
			s.cfg.ShowMem = !s.cfg.ShowMem
		}
		if *colliders {
			s.cfg.ShowColliders = !s.cfg.ShowColliders
		}
		if *verbose {
			s.verbose = !s.verbose
			s.log.SetVerbose(s.verbose)
		}
		return nil
	})

	saveFS := commands.NewFlagSet("save")
	path := saveFS.String("path", gameconfig.ConfigPath, "config file")
	reg.Register("save", "write the current settings", saveFS, func() error {
		if err := gameconfig.SaveTo(*path, s.cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		s.log.Log("saved " + *path)
		return nil
	})

	reg.Register("help", "list commands", nil, func() error {
		for _, line := range reg.Help() {
			s.log.Log(line)
		}
		return nil
	})
}
