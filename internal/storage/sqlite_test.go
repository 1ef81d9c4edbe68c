package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/multiplayer"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	rec := GameRecord{
		MatchID:      "m-1",
		Source:       SourceSoak,
		Seed:         42,
		Players:      4,
		Turns:        88,
		Actions:      412,
		Rejected:     7,
		Winner:       2,
		WinnerPoints: 10,
		DurationMS:   35,
		Reasons:      map[string]int{"EDGE_OCCUPIED": 4, "DICE_NOT_ROLLED": 3, "IGNORED": 0},
	}
	id, err := store.SaveGame(rec)
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveGame() returned id %d", id)
	}

	got, err := store.GameByMatchID("m-1")
	if err != nil {
		t.Fatalf("GameByMatchID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("GameByMatchID() returned nil")
	}
	if got.Seed != 42 || got.Turns != 88 || got.Winner != 2 || !got.Finished() {
		t.Errorf("GameByMatchID() = %+v", got)
	}
	if len(got.Reasons) != 2 || got.Reasons["EDGE_OCCUPIED"] != 4 {
		t.Errorf("Reasons = %v, want two non-zero reasons", got.Reasons)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}

	missing, err := store.GameByMatchID("nope")
	if err != nil || missing != nil {
		t.Errorf("GameByMatchID(nope) = %v, %v; want nil, nil", missing, err)
	}

	if _, err := store.SaveGame(rec); err == nil {
		t.Error("SaveGame() should reject a duplicate match id")
	}
}

func TestStoreRecentGames(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 25; i++ {
		source := SourceSoak
		if i%5 == 0 {
			source = SourceTable
		}
		if _, err := store.SaveGame(GameRecord{MatchID: fmt.Sprintf("m-%d", i), Source: source, Seed: int64(i), Players: 4, Winner: -1}); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	all, err := store.RecentGames("", 0)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(all) != 20 {
		t.Errorf("Expected the default limit of 20, got %d", len(all))
	}
	if all[0].MatchID != "m-24" {
		t.Errorf("Expected newest first, got %s", all[0].MatchID)
	}

	tables, err := store.RecentGames(SourceTable, 10)
	if err != nil {
		t.Fatalf("RecentGames(table) failed: %v", err)
	}
	if len(tables) != 5 {
		t.Errorf("Expected 5 table games, got %d", len(tables))
	}
	for _, g := range tables {
		if g.Source != SourceTable || g.Finished() {
			t.Errorf("unexpected record %+v", g)
		}
	}
}

func TestStoreReasonTotalsAndStats(t *testing.T) {
	store := openTestStore(t)

	games := []GameRecord{
		{MatchID: "a", Source: SourceSoak, Players: 4, Turns: 10, Winner: 0, Reasons: map[string]int{"EDGE_OCCUPIED": 2, "EMPTY_DECK": 1}},
		{MatchID: "b", Source: SourceSoak, Players: 4, Turns: 30, Winner: -1, Violations: 1, Reasons: map[string]int{"EDGE_OCCUPIED": 3}},
		{MatchID: "c", Source: SourceTable, Players: 3, Turns: 20, Winner: 1, Reasons: map[string]int{"OTHER_PLAYERS_TURN": 9}},
	}
	for _, g := range games {
		if _, err := store.SaveGame(g); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	totals, err := store.ReasonTotals(SourceSoak)
	if err != nil {
		t.Fatalf("ReasonTotals() failed: %v", err)
	}
	want := []ReasonTotal{{Reason: "EDGE_OCCUPIED", Count: 5}, {Reason: "EMPTY_DECK", Count: 1}}
	if len(totals) != len(want) {
		t.Fatalf("ReasonTotals() = %v, want %v", totals, want)
	}
	for i := range want {
		if totals[i] != want[i] {
			t.Errorf("ReasonTotals()[%d] = %v, want %v", i, totals[i], want[i])
		}
	}

	all, err := store.ReasonTotals("")
	if err != nil {
		t.Fatalf("ReasonTotals(\"\") failed: %v", err)
	}
	if len(all) != 3 || all[0].Reason != "OTHER_PLAYERS_TURN" {
		t.Errorf("ReasonTotals(\"\") = %v", all)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	soak := stats[SourceSoak]
	if soak == nil {
		t.Fatal("no soak stats")
	}
	if soak.Games != 2 || soak.Finished != 1 || soak.Violations != 1 || soak.AvgTurns != 20 {
		t.Errorf("soak stats = %+v", soak)
	}
	if stats[SourceTable] == nil || stats[SourceTable].Games != 1 {
		t.Errorf("table stats = %+v", stats[SourceTable])
	}

	if err := store.ClearGames(SourceSoak); err != nil {
		t.Fatalf("ClearGames() failed: %v", err)
	}
	left, err := store.ReasonTotals("")
	if err != nil {
		t.Fatalf("ReasonTotals() failed: %v", err)
	}
	if len(left) != 1 {
		t.Errorf("Expected only table reasons after clearing soak games, got %v", left)
	}
}

func countRows(t *testing.T, store *Store, query string) int {
	t.Helper()
	var n int
	if err := store.db.QueryRow(query).Scan(&n); err != nil {
		t.Fatalf("QueryRow(%q) failed: %v", query, err)
	}
	return n
}

func TestStoreClearGames(t *testing.T) {
	store := openTestStore(t)

	for _, g := range []GameRecord{
		{MatchID: "a", Source: SourceSoak, Winner: -1, Reasons: map[string]int{"EDGE_OCCUPIED": 2}},
		{MatchID: "b", Source: SourceTable, Winner: -1, Reasons: map[string]int{"EMPTY_DECK": 1}},
	} {
		if _, err := store.SaveGame(g); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}

	// Make the second delete fail: the first one must be rolled back.
	if _, err := store.db.Exec(`CREATE TRIGGER keep_games BEFORE DELETE ON games
		BEGIN SELECT RAISE(ABORT, 'games are locked'); END`); err != nil {
		t.Fatalf("CREATE TRIGGER failed: %v", err)
	}
	if err := store.ClearGames(SourceSoak); err == nil {
		t.Fatal("ClearGames() should fail while games are locked")
	}
	if n := countRows(t, store, "SELECT COUNT(*) FROM game_reasons"); n != 2 {
		t.Errorf("reasons after failed clear = %d, want 2", n)
	}

	if _, err := store.db.Exec("DROP TRIGGER keep_games"); err != nil {
		t.Fatalf("DROP TRIGGER failed: %v", err)
	}
	if err := store.ClearGames(SourceSoak); err != nil {
		t.Fatalf("ClearGames() failed: %v", err)
	}
	if n := countRows(t, store, "SELECT COUNT(*) FROM games WHERE source = 'soak'"); n != 0 {
		t.Errorf("soak games left = %d", n)
	}
	if n := countRows(t, store, "SELECT COUNT(*) FROM game_reasons WHERE game_id NOT IN (SELECT id FROM games)"); n != 0 {
		t.Errorf("orphaned reasons = %d", n)
	}
	if got, err := store.GameByMatchID("b"); err != nil || got == nil || got.Reasons["EMPTY_DECK"] != 1 {
		t.Errorf("table game after clear = %+v, %v", got, err)
	}
}

func TestStoreSaveTableResult(t *testing.T) {
	store := openTestStore(t)

	var saver multiplayer.ResultSaver = store
	err := saver.SaveTableResult(multiplayer.TableResult{
		MatchID:  "table-1",
		Seed:     9,
		Players:  []string{"a", "b", "c"},
		Winner:   1,
		Points:   10,
		Turns:    60,
		Actions:  300,
		Rejected: map[check.Reason]int{check.EdgeOccupied: 2, check.DiceNotRolled: 1},
		Duration: 1500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("SaveTableResult() failed: %v", err)
	}

	got, err := store.GameByMatchID("table-1")
	if err != nil || got == nil {
		t.Fatalf("GameByMatchID() = %v, %v", got, err)
	}
	if got.Source != SourceTable || got.Players != 3 || got.Rejected != 3 || got.DurationMS != 1500 {
		t.Errorf("saved record = %+v", got)
	}
	if got.Reasons[string(check.EdgeOccupied)] != 2 {
		t.Errorf("Reasons = %v", got.Reasons)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
