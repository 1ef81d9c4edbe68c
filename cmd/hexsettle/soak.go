package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/soak"
	"github.com/vovakirdan/hexsettle/internal/storage"
)

var (
	flagGames      int
	flagWorkers    int
	flagMaxActions int
	flagProbeEvery int
	flagSoakNoSave bool
)

var soakCmd = &cobra.Command{
	Use:   "soak",
	Short: "Play random games and check the engine's invariants",
	Long: `Play many games with random legal moves, probe the engine with
requests it must reject and check the board and score invariants after
every move. Game i uses seed+i, so any failing game can be replayed.

Examples:
  hexsettle soak
  hexsettle soak --games 1000 --workers 8 --seed 7
  hexsettle soak --probe-every 0 --no-save`,
	Args: cobra.NoArgs,
	Run:  runSoak,
}

func init() {
	soakCmd.Flags().IntVar(&flagGames, "games", 0, "Number of games (overrides config)")
	soakCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent games (overrides config)")
	soakCmd.Flags().IntVar(&flagMaxActions, "max-actions", 0, "Action cap per game (overrides config)")
	soakCmd.Flags().IntVar(&flagProbeEvery, "probe-every", -1, "Probe every N actions, 0 disables (overrides config)")
	soakCmd.Flags().BoolVar(&flagSoakNoSave, "no-save", false, "Do not store reports")
}

func runSoak(_ *cobra.Command, _ []string) {
	cfg, logger := setup()

	if flagGames > 0 {
		cfg.Soak.Games = flagGames
	}
	if flagWorkers > 0 {
		cfg.Soak.Workers = flagWorkers
	}
	if flagMaxActions > 0 {
		cfg.Soak.MaxActions = flagMaxActions
	}
	if flagProbeEvery >= 0 {
		cfg.Soak.ProbeEvery = flagProbeEvery
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Only draw the progress line on a terminal.
	var progress func(done, total int)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		progress = func(done, total int) {
			fmt.Printf("\r  %d/%d games", done, total)
			if done == total {
				fmt.Println()
			}
		}
	}

	logger.Info("soak started", "games", cfg.Soak.Games, "workers", cfg.Soak.Workers, "seed", cfg.Game.Seed)
	reports, err := soak.Run(ctx, soak.Config{
		Games:      cfg.Soak.Games,
		Workers:    cfg.Soak.Workers,
		MaxActions: cfg.Soak.MaxActions,
		ProbeEvery: cfg.Soak.ProbeEvery,
		Seed:       cfg.Game.Seed,
		Options:    cfg.GameOptions(),
	}, logger, progress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !flagSoakNoSave {
		saveReports(cfg.Storage.DBPath, reports)
	}

	summary := soak.Summarize(reports)
	printSummary(summary)

	for _, r := range reports {
		for _, v := range r.Violations {
			fmt.Printf("  %s seed %d %s\n", badStyle.Render("violation"), r.Seed, v)
		}
	}
	if summary.Violations > 0 {
		os.Exit(1)
	}
}

func saveReports(dbPath string, reports []soak.Report) {
	store, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open reports database: %v\n", err)
		return
	}
	defer store.Close()

	for _, r := range reports {
		if _, err := store.SaveGame(soakRecord(r)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save report for seed %d: %v\n", r.Seed, err)
			return
		}
	}
}

// soakRecord converts a soak report into a stored game summary.
func soakRecord(r soak.Report) storage.GameRecord {
	rec := storage.GameRecord{
		MatchID:      string(r.MatchID),
		Source:       storage.SourceSoak,
		Seed:         r.Seed,
		Players:      r.Players,
		Turns:        r.Turns,
		Actions:      r.Actions,
		Winner:       r.Winner,
		WinnerPoints: r.WinnerPoints,
		Violations:   len(r.Violations),
		DurationMS:   r.Duration.Milliseconds(),
		Reasons:      make(map[string]int, len(r.Rejected)),
	}
	for reason, n := range r.Rejected {
		rec.Reasons[string(reason)] = n
		rec.Rejected += n
	}
	return rec
}

func printSummary(s soak.Summary) {
	fmt.Println()
	fmt.Println(titleStyle.Render("Soak summary"))
	fmt.Printf("  games:      %d (%d finished)\n", s.Games, s.Finished)
	fmt.Printf("  actions:    %d\n", s.Actions)
	if s.Violations == 0 {
		fmt.Printf("  violations: %s\n", goodStyle.Render("0"))
	} else {
		fmt.Printf("  violations: %s\n", badStyle.Render(fmt.Sprint(s.Violations)))
	}

	if len(s.Rejected) == 0 {
		return
	}
	reasons := make([]check.Reason, 0, len(s.Rejected))
	for r := range s.Rejected {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool {
		if s.Rejected[reasons[i]] != s.Rejected[reasons[j]] {
			return s.Rejected[reasons[i]] > s.Rejected[reasons[j]]
		}
		return reasons[i] < reasons[j]
	})
	fmt.Println()
	fmt.Println("  Rejected probes by reason:")
	for _, r := range reasons {
		fmt.Printf("    %-36s  %d\n", r, s.Rejected[r])
	}
}
