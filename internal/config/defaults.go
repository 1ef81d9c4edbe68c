package config

import (
	_ "embed"

	"github.com/vovakirdan/hexsettle/internal/engine"
	"github.com/vovakirdan/hexsettle/internal/topology"
)

//go:embed defaults/hexsettle.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration used when the embedded
// YAML cannot be parsed.
func Default() Config {
	return Config{
		Game: GameConfig{
			Players:       engine.DefaultPlayerNames(engine.MaxPlayers),
			AutoCollect:   true,
			VictoryPoints: engine.DefaultVictoryPoints,
			BoardLayers:   topology.StandardLayers,
		},
		Soak: SoakConfig{
			Games:      100,
			Workers:    4,
			MaxActions: 4000,
			ProbeEvery: 10,
		},
		Storage: StorageConfig{
			DBPath: "~/.hexsettle/hexsettle.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
