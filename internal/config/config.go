// Package config provides YAML-based configuration loading with
// environment overrides for hexsettle.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexsettle/internal/engine"
	"github.com/vovakirdan/hexsettle/internal/topology"
)

// Config contains every setting the commands read.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Soak    SoakConfig    `yaml:"soak"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig defines the rules options of new games.
type GameConfig struct {
	Players       []string `yaml:"players" env:"HEXSETTLE_PLAYERS"`
	AutoCollect   bool     `yaml:"auto_collect" env:"HEXSETTLE_AUTO_COLLECT"`
	VictoryPoints int      `yaml:"victory_points" env:"HEXSETTLE_VICTORY_POINTS"`
	BoardLayers   int      `yaml:"board_layers"`
	Seed          int64    `yaml:"seed" env:"HEXSETTLE_SEED"` // 0 = from the clock
}

// SoakConfig defines the random-play harness.
type SoakConfig struct {
	Games      int `yaml:"games" env:"HEXSETTLE_SOAK_GAMES"`
	Workers    int `yaml:"workers" env:"HEXSETTLE_SOAK_WORKERS"`
	MaxActions int `yaml:"max_actions"` // per game
	ProbeEvery int `yaml:"probe_every"` // 0 disables probes
}

// StorageConfig defines where reports are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"HEXSETTLE_DB"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level string `yaml:"level" env:"HEXSETTLE_LOG_LEVEL"` // debug, info, warn, error
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid value")

// Validate rejects values no game or run could use.
func (c Config) Validate() error {
	if n := len(c.Game.Players); n != 0 && (n < engine.MinPlayers || n > engine.MaxPlayers) {
		return fmt.Errorf("%w: game.players needs %d to %d names, got %d", ErrInvalid, engine.MinPlayers, engine.MaxPlayers, n)
	}
	if c.Game.VictoryPoints < 0 {
		return fmt.Errorf("%w: game.victory_points must not be negative", ErrInvalid)
	}
	if c.Game.BoardLayers != 0 && c.Game.BoardLayers != topology.StandardLayers {
		return fmt.Errorf("%w: game.board_layers supports only %d", ErrInvalid, topology.StandardLayers)
	}
	if c.Soak.Games < 1 {
		return fmt.Errorf("%w: soak.games must be at least 1", ErrInvalid)
	}
	if c.Soak.Workers < 1 {
		return fmt.Errorf("%w: soak.workers must be at least 1", ErrInvalid)
	}
	if c.Soak.MaxActions < 1 {
		return fmt.Errorf("%w: soak.max_actions must be at least 1", ErrInvalid)
	}
	if c.Soak.ProbeEvery < 0 {
		return fmt.Errorf("%w: soak.probe_every must not be negative", ErrInvalid)
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("%w: storage.db_path is empty", ErrInvalid)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// GameOptions converts the game section into engine options.
func (c Config) GameOptions() engine.Options {
	return engine.Options{
		Players:       append([]string(nil), c.Game.Players...),
		AutoCollect:   c.Game.AutoCollect,
		VictoryPoints: c.Game.VictoryPoints,
		Layers:        c.Game.BoardLayers,
		Seed:          c.Game.Seed,
	}
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
