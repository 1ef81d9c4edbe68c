package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexsettle/internal/storage"
)

var (
	flagSource string
	flagLimit  int
	flagMatch  string
	flagClear  bool
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Show stored game summaries",
	Long: `Display recent games, the most frequent rejection reasons and
per-source statistics from the reports database.

Sources are "soak" for random-play runs and "table" for played tables.

Examples:
  hexsettle reports
  hexsettle reports --source soak --limit 5
  hexsettle reports --match 2f1c...
  hexsettle reports --source soak --clear`,
	Args: cobra.NoArgs,
	Run:  runReports,
}

func init() {
	reportsCmd.Flags().StringVar(&flagSource, "source", "", "Only games from this source (soak, table)")
	reportsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recent games to show")
	reportsCmd.Flags().StringVar(&flagMatch, "match", "", "Show one game by match id")
	reportsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the games of --source")
}

func runReports(_ *cobra.Command, _ []string) {
	cfg, _ := setup()

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening reports database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		if flagSource == "" {
			fmt.Fprintln(os.Stderr, "Error: --clear needs --source")
			os.Exit(1)
		}
		if err := store.ClearGames(flagSource); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared %s games.\n", flagSource)
	case flagMatch != "":
		showMatch(store, flagMatch)
	default:
		showRecent(store)
		showReasons(store)
		showStats(store)
	}
}

func showMatch(store *storage.Store, matchID string) {
	rec, err := store.GameByMatchID(matchID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if rec == nil {
		fmt.Printf("No game with match id %q.\n", matchID)
		return
	}

	fmt.Println(titleStyle.Render("Game " + rec.MatchID))
	fmt.Printf("  source:     %s\n", rec.Source)
	fmt.Printf("  seed:       %d\n", rec.Seed)
	fmt.Printf("  players:    %d\n", rec.Players)
	fmt.Printf("  turns:      %d\n", rec.Turns)
	fmt.Printf("  actions:    %d\n", rec.Actions)
	fmt.Printf("  winner:     %s\n", winnerString(*rec))
	fmt.Printf("  violations: %d\n", rec.Violations)
	fmt.Printf("  played:     %s\n", rec.CreatedAt.Format("2006-01-02 15:04"))

	if len(rec.Reasons) == 0 {
		return
	}
	reasons := make([]string, 0, len(rec.Reasons))
	for r := range rec.Reasons {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	fmt.Println()
	fmt.Println("  Rejections:")
	for _, r := range reasons {
		fmt.Printf("    %-36s  %d\n", r, rec.Reasons[r])
	}
}

func showRecent(store *storage.Store) {
	games, err := store.RecentGames(flagSource, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving games: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(titleStyle.Render("Recent games"))
	fmt.Println()
	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Run 'hexsettle soak' or 'hexsettle play <script>' to record some.")
		return
	}

	fmt.Printf("  %-6s  %-20s  %-6s  %-8s  %-10s  %s\n", "Source", "Seed", "Turns", "Actions", "Winner", "Date")
	fmt.Printf("  %-6s  %-20s  %-6s  %-8s  %-10s  %s\n", "------", "----", "-----", "-------", "------", "----")
	for _, g := range games {
		winner := fmt.Sprintf("%-10s", winnerString(g))
		if g.Violations > 0 {
			winner = badStyle.Render(winner)
		}
		fmt.Printf("  %-6s  %-20d  %-6d  %-8d  %s  %s\n",
			g.Source, g.Seed, g.Turns, g.Actions, winner, g.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println()
}

func showReasons(store *storage.Store) {
	totals, err := store.ReasonTotals(flagSource)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving reasons: %v\n", err)
		os.Exit(1)
	}
	if len(totals) == 0 {
		return
	}

	fmt.Println(titleStyle.Render("Rejections by reason"))
	for _, t := range totals {
		fmt.Printf("  %-36s  %d\n", t.Reason, t.Count)
	}
	fmt.Println()
}

func showStats(store *storage.Store) {
	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		return
	}

	sources := make([]string, 0, len(stats))
	for s := range stats {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	fmt.Println(titleStyle.Render("Statistics"))
	for _, s := range sources {
		st := stats[s]
		fmt.Printf("  %-6s  %d games, %d finished, %.1f turns on average, %d violations, last %s\n",
			st.Source, st.Games, st.Finished, st.AvgTurns, st.Violations, st.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func winnerString(rec storage.GameRecord) string {
	if !rec.Finished() {
		return "none"
	}
	return fmt.Sprintf("p%d (%d)", rec.Winner, rec.WinnerPoints)
}
