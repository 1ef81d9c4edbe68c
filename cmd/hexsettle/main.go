// hexsettle drives the rules engine of a four-player settlement-building
// and resource-trading board game from the terminal.
//
// Usage:
//
//	hexsettle board              - Deal a board and print it
//	hexsettle actions            - List the actions a player can request
//	hexsettle play <script>      - Run a scripted game through a table
//	hexsettle soak               - Play many random games and check invariants
//	hexsettle reports            - Show stored game summaries
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.hexsettle/configs, ./configs)
//	--seed <value>      - RNG seed for reproducible boards and decks
//	--db <path>         - Database path (default: ~/.hexsettle/hexsettle.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexsettle/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexsettle",
	Short: "Hexsettle - rules engine for a hex settlement and trading game",
	Long: `Hexsettle deals boards, validates and applies player actions and
keeps score for a four-player settlement-building and trading game.

Available commands:
  board    - Deal a board and print tiles, ports and the thief
  actions  - List the actions a player can request
  play     - Run a scripted game through a hot-seat table
  soak     - Play random games and check the engine's invariants
  reports  - Show stored game summaries

Examples:
  hexsettle board --seed 42
  hexsettle play ./game.yaml
  hexsettle soak --games 500 --workers 8
  hexsettle reports --source soak`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = use config, then time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to reports database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(actionsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(soakCmd)
	rootCmd.AddCommand(reportsCmd)
}

// setup loads the configuration, applies the global flags and builds the
// logger every command shares. It exits on a bad configuration.
func setup() (config.Config, *log.Logger) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if flagSeed != 0 {
		cfg.Game.Seed = flagSeed
	}
	if cfg.Game.Seed == 0 {
		cfg.Game.Seed = time.Now().UnixNano()
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "hexsettle",
		Level:           cfg.Level(),
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	return cfg, logger
}
