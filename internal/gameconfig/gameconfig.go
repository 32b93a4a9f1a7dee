package gameconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigPath is the path to the game config file, relative to the process working directory.
const ConfigPath = "config/game.yaml"

// MovementMode selects how player input is turned into movement.
type MovementMode string

const (
	// ModeContinuous moves the player every frame by speed*dt with swept collision.
	ModeContinuous MovementMode = "continuous"
	// ModeStep moves one cell per key press, still through swept collision.
	ModeStep MovementMode = "step"
	// ModeGrid is classic cell-by-cell Sokoban without continuous collision.
	ModeGrid MovementMode = "grid"
)

// ParseMode returns the mode named s.
func ParseMode(s string) (MovementMode, error) {
	switch m := MovementMode(s); m {
	case ModeContinuous, ModeStep, ModeGrid:
		return m, nil
	default:
		return "", fmt.Errorf("unknown movement mode %q", s)
	}
}

// Config holds gameplay tuning and debug preferences. Persisted across runs.
type Config struct {
	Levels []string     `yaml:"levels"`
	Mode   MovementMode `yaml:"mode"`
	// Speed is in cells per second for continuous movement.
	Speed float64 `yaml:"speed"`

	PlayerHalf    float64 `yaml:"player_half"`
	BoxHalf       float64 `yaml:"box_half"`
	ProbeDistance float64 `yaml:"probe_distance"`
	GoalTolerance float64 `yaml:"goal_tolerance"`
	// WinDelay is how long, in seconds, a solved level stays on screen before the next loads.
	WinDelay float64 `yaml:"win_delay"`

	ShowFPS       bool `yaml:"show_fps"`
	ShowMem       bool `yaml:"show_mem"`
	ShowColliders bool `yaml:"show_colliders"`
	TopDown       bool `yaml:"top_down"`
	GridVisible   bool `yaml:"grid_visible"`
}

// Default returns the stock configuration: three bundled levels, continuous movement.
func Default() Config {
	return Config{
		Levels: []string{
			"assets/levels/level01.txt",
			"assets/levels/level02.txt",
			"assets/levels/level03.txt",
		},
		Mode:          ModeContinuous,
		Speed:         5,
		PlayerHalf:    0.38,
		BoxHalf:       0.40,
		ProbeDistance: 0.6,
		GoalTolerance: 0.3,
		WinDelay:      1,
		GridVisible:   false,
	}
}

// Validate reports the first setting that cannot be played with.
func (c Config) Validate() error {
	if len(c.Levels) == 0 {
		return errors.New("no levels configured")
	}
	if _, err := ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", c.Speed)
	}
	if c.PlayerHalf <= 0 || c.BoxHalf <= 0 {
		return fmt.Errorf("collider half extents must be positive, got player %v box %v", c.PlayerHalf, c.BoxHalf)
	}
	return nil
}

// LoadFrom reads the config at path on top of Default, so omitted keys keep their defaults.
// A missing file is not an error. An unreadable or invalid file returns Default() together
// with the error.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read config: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// SaveTo writes c to path, creating the parent directory if needed.
func SaveTo(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Environment variables read by ApplyEnv.
const (
	EnvMode     = "SOKOBAN_MODE"
	EnvSpeed    = "SOKOBAN_SPEED"
	EnvLevels   = "SOKOBAN_LEVELS"
	EnvWinDelay = "SOKOBAN_WIN_DELAY"
)

// ApplyEnv overrides c with the SOKOBAN_* variables found by lookup (usually os.LookupEnv).
// SOKOBAN_LEVELS is a comma-separated list of paths. Invalid values leave the setting
// unchanged and are reported together.
func ApplyEnv(c Config, lookup func(string) (string, bool)) (Config, error) {
	var errs []error
	if v, ok := lookup(EnvMode); ok {
		m, err := ParseMode(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvMode, err))
		} else {
			c.Mode = m
		}
	}
	if v, ok := lookup(EnvLevels); ok {
		var levels []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				levels = append(levels, p)
			}
		}
		if len(levels) == 0 {
			errs = append(errs, fmt.Errorf("%s: no paths", EnvLevels))
		} else {
			c.Levels = levels
		}
	}
	positive := func(key string, dst *float64) {
		v, ok := lookup(key)
		if !ok {
			return
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		case f <= 0:
			errs = append(errs, fmt.Errorf("%s: must be positive, got %v", key, f))
		default:
			*dst = f
		}
	}
	positive(EnvSpeed, &c.Speed)
	positive(EnvWinDelay, &c.WinDelay)
	return c, errors.Join(errs...)
}
