package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/hexsettle/internal/actions"
	"github.com/vovakirdan/hexsettle/internal/engine"
	"github.com/vovakirdan/hexsettle/internal/multiplayer"
	"github.com/vovakirdan/hexsettle/internal/storage"
)

var (
	flagKeepGoing bool
	flagNoSave    bool
)

var playCmd = &cobra.Command{
	Use:   "play <script>",
	Short: "Run a scripted game through a hot-seat table",
	Long: `Run the steps of a YAML script against a fresh game. One local
session holds every seat, so each step names the seat that acts.

Script format:
  seed: 42                 # optional, overrides --seed and config
  players: [ana, ben, cy]  # optional, 3 or 4 names
  steps:
    - player: 0
      action: buildSettlement
      args: ["corners=12"]
    - player: 0
      action: buildRoad
      args: ["corners=12,13"]

A rejected step stops the run unless --keep-going is set. Finished games
are stored in the reports database.

Examples:
  hexsettle play ./opening.yaml
  hexsettle play ./game.yaml --keep-going --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagKeepGoing, "keep-going", false, "Continue after a rejected step")
	playCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store the result")
}

// Script is a recorded sequence of action requests.
type Script struct {
	Seed    int64    `yaml:"seed"`
	Players []string `yaml:"players"`
	Steps   []Step   `yaml:"steps"`
}

// Step is one action request of a script.
type Step struct {
	Player int      `yaml:"player"`
	Action string   `yaml:"action"`
	Args   []string `yaml:"args"`
}

func loadScript(path string) (Script, error) {
	var s Script
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

func runPlay(_ *cobra.Command, args []string) {
	cfg, logger := setup()

	script, err := loadScript(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := cfg.GameOptions()
	if script.Seed != 0 {
		opts.Seed = script.Seed
	}
	if len(script.Players) > 0 {
		opts.Players = script.Players
	}

	// Open result storage
	var saver multiplayer.ResultSaver
	var store *storage.Store
	if !flagNoSave {
		store, err = storage.Open(cfg.Storage.DBPath)
		if err != nil {
			logger.Warn("results will not be saved", "error", err)
		} else {
			defer store.Close()
			saver = store
		}
	}

	sessions := multiplayer.NewSessionRegistry()
	session := multiplayer.NewInbox("local", 256)
	if err := sessions.Register(session); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer sessions.Unregister(session.ID())

	table, err := multiplayer.NewTable(multiplayer.TableConfig{
		Options: opts,
		Mode:    multiplayer.ModeHotSeat,
		Logger:  logger,
		Saver:   saver,
	}, sessions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var seats []engine.PlayerID
	table.View(func(g *engine.Game) {
		for _, p := range g.Players() {
			seats = append(seats, p.ID())
		}
	})
	for _, seat := range seats {
		if err := table.Join(session.ID(), seat); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	printEvents(session.Drain())

	failed := 0
	for i, step := range script.Steps {
		stepArgs, err := actions.ParseArgs(step.Args)
		if err == nil {
			err = table.Act(session.ID(), engine.PlayerID(step.Player), step.Action, stepArgs)
		}
		printEvents(session.Drain())
		if err != nil {
			failed++
			fmt.Printf("%s step %d (%s by %d): %v\n", badStyle.Render("rejected"), i+1, step.Action, step.Player, err)
			if !flagKeepGoing {
				break
			}
		}
	}

	if n := session.Dropped(); n > 0 {
		logger.Warn("some table events were not shown", "dropped", n)
	}
	printStandings(table)

	result := table.Result()
	if store != nil && result.Winner < 0 {
		// Tables store themselves on game over; keep unfinished runs too.
		if err := store.SaveTableResult(result); err != nil {
			logger.Warn("could not save table result", "error", err)
		}
	}
	if failed > 0 && !flagKeepGoing {
		os.Exit(1)
	}
}

func printEvents(events []multiplayer.SessionEvent) {
	for _, evt := range events {
		switch e := evt.(type) {
		case multiplayer.TurnStartedEvent:
			phase := "turn"
			if e.Initial {
				phase = "placement turn"
			}
			fmt.Println(titleStyle.Render(fmt.Sprintf("%s %d: player %d", phase, e.Number, e.Player)))
		case multiplayer.ActionAppliedEvent:
			fmt.Printf("  %s player %d %s\n", goodStyle.Render("ok"), e.Player, e.Action)
		case multiplayer.GameOverEvent:
			fmt.Println(goodStyle.Render(fmt.Sprintf("player %d wins with %d points after %d turns", e.Winner, e.Points, e.Turns)))
		}
	}
}

func printStandings(table *multiplayer.Table) {
	fmt.Println()
	fmt.Println(titleStyle.Render("Standings"))
	table.View(func(g *engine.Game) {
		fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %s\n", "Seat", "Name", "Points", "Cards", "Resources")
		fmt.Printf("  %-4s  %-12s  %-6s  %-6s  %s\n", "----", "----", "------", "-----", "---------")
		for _, p := range g.Players() {
			fmt.Printf("  %-4d  %-12s  %-6d  %-6d  %s\n", p.ID(), p.Name(), p.VisibleVictoryPoints(), len(p.Cards()), p.Resources())
		}
		fmt.Println(dimStyle.Render(fmt.Sprintf("  turn %d, %d cards left in the deck", g.TurnNumber(), g.DeckSize())))
	})
}
