package multiplayer

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hexsettle/internal/actions"
	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/engine"
	"github.com/vovakirdan/hexsettle/internal/registry"
)

var (
	ErrUnknownSession = errors.New("multiplayer: unknown session")
	ErrSeatTaken      = errors.New("multiplayer: seat already taken")
	ErrAlreadySeated  = errors.New("multiplayer: session already holds a seat")
	ErrNotSeated      = errors.New("multiplayer: session does not hold this seat")
)

// ResultSaver persists finished tables.
// It lets the table record results without depending on the storage package.
type ResultSaver interface {
	SaveTableResult(result TableResult) error
}

// TableResult summarises a table for persistence.
type TableResult struct {
	MatchID  MatchID
	Mode     Mode
	Seed     int64
	Players  []string
	Winner   engine.PlayerID // -1 while nobody has won
	Points   int
	Turns    int
	Actions  int
	Rejected map[check.Reason]int
	Duration time.Duration
}

// TableConfig holds the settings for a new table.
type TableConfig struct {
	Options engine.Options
	Mode    Mode
	Logger  *log.Logger // optional
	Saver   ResultSaver // optional
}

// Table runs one game for a set of seated sessions. Every call takes the
// table lock, so the engine only ever sees one action at a time.
type Table struct {
	id       MatchID
	mode     Mode
	sessions *SessionRegistry
	logger   *log.Logger
	saver    ResultSaver
	started  time.Time

	mu         sync.Mutex
	game       *engine.Game
	dispatcher *actions.Dispatcher
	seats      map[engine.PlayerID]SessionID
	actions    int
	rejected   map[check.Reason]int
	over       bool
}

// NewTable creates a game from cfg.Options and an empty set of seats.
func NewTable(cfg TableConfig, sessions *SessionRegistry) (*Table, error) {
	g, err := engine.New(cfg.Options)
	if err != nil {
		return nil, fmt.Errorf("multiplayer: cannot create game: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	t := &Table{
		id:         NewMatchID(),
		mode:       cfg.Mode,
		sessions:   sessions,
		saver:      cfg.Saver,
		started:    time.Now(),
		game:       g,
		dispatcher: actions.New(g),
		seats:      make(map[engine.PlayerID]SessionID),
		rejected:   make(map[check.Reason]int),
	}
	t.logger = logger.With("match", t.id)
	t.logger.Info("table opened", "mode", t.mode, "players", len(g.Players()), "seed", g.Options().Seed)
	return t, nil
}

// ID returns the match identifier.
func (t *Table) ID() MatchID {
	return t.id
}

// Mode returns how seats map to sessions.
func (t *Table) Mode() Mode {
	return t.mode
}

// Join gives seat to session. Joining a seat the session already holds is a no-op.
func (t *Table) Join(session SessionID, seat engine.PlayerID) error {
	if _, ok := t.sessions.Get(session); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSession, session)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.game.Player(seat); err != nil {
		return err
	}
	if holder, taken := t.seats[seat]; taken {
		if holder == session {
			return nil
		}
		return fmt.Errorf("%w: seat %d", ErrSeatTaken, seat)
	}
	if t.mode == ModeSeated {
		for _, holder := range t.seats {
			if holder == session {
				return fmt.Errorf("%w: %s", ErrAlreadySeated, session)
			}
		}
	}

	t.seats[seat] = session
	t.logger.Info("seat joined", "seat", seat, "session", session)
	t.broadcast(SeatJoinedEvent{MatchID: t.id, Seat: seat, Session: session})
	t.sessions.send(t.turnStarted(), session)
	return nil
}

// Leave frees every seat held by session and returns them.
func (t *Table) Leave(session SessionID) []engine.PlayerID {
	t.mu.Lock()
	defer t.mu.Unlock()

	var freed []engine.PlayerID
	for _, p := range t.game.Players() {
		if t.seats[p.ID()] == session {
			delete(t.seats, p.ID())
			freed = append(freed, p.ID())
		}
	}
	if len(freed) > 0 {
		t.logger.Info("seats left", "seats", freed, "session", session)
		t.broadcast(SeatLeftEvent{MatchID: t.id, Seats: freed, Session: session})
	}
	return freed
}

// Seats returns a copy of the seat assignments.
func (t *Table) Seats() map[engine.PlayerID]SessionID {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[engine.PlayerID]SessionID, len(t.seats))
	for seat, session := range t.seats {
		out[seat] = session
	}
	return out
}

// Available lists the actions seat may take right now.
func (t *Table) Available(session SessionID, seat engine.PlayerID) ([]engine.Action, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.holds(session, seat); err != nil {
		return nil, err
	}
	return t.dispatcher.AvailableActions(seat)
}

// Act executes action for seat on behalf of session. A rejected action is
// reported to session alone; a successful one to the whole table.
func (t *Table) Act(session SessionID, seat engine.PlayerID, action string, args registry.Args) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.holds(session, seat); err != nil {
		return err
	}

	before := t.game.Turn()
	if err := t.dispatcher.ExecuteAction(seat, action, args); err != nil {
		t.reject(session, seat, action, err)
		return err
	}
	t.actions++

	a, _ := engine.ParseAction(action)
	t.logger.Debug("action applied", "seat", seat, "action", a, "turn", t.game.TurnNumber())
	t.broadcast(ActionAppliedEvent{MatchID: t.id, Player: seat, Action: a, Turn: t.game.TurnNumber()})

	if w, won := t.game.Winner(); won {
		t.finish(w)
		return nil
	}
	if t.game.Turn() != before {
		t.broadcast(t.turnStarted())
	}
	return nil
}

// View runs fn with the game under the table lock. fn must not keep
// references past its return or call mutating methods.
func (t *Table) View(fn func(g *engine.Game)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.game)
}

// Result summarises the table so far.
func (t *Table) Result() TableResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result()
}

func (t *Table) holds(session SessionID, seat engine.PlayerID) error {
	if holder, ok := t.seats[seat]; !ok || holder != session {
		return fmt.Errorf("%w: seat %d", ErrNotSeated, seat)
	}
	return nil
}

func (t *Table) reject(session SessionID, seat engine.PlayerID, action string, err error) {
	reason, _ := check.ReasonOf(err)
	if reason != "" {
		t.rejected[reason]++
	}

	if check.IsIntegrity(err) {
		t.logger.Error("integrity failure", "seat", seat, "action", action, "error", err)
	} else {
		t.logger.Debug("action rejected", "seat", seat, "action", action, "error", err)
	}

	t.sessions.send(ActionRejectedEvent{
		MatchID: t.id,
		Player:  seat,
		Action:  action,
		Reason:  reason,
		Message: err.Error(),
	}, session)
}

func (t *Table) finish(w *engine.Player) {
	if t.over {
		return
	}
	t.over = true

	t.logger.Info("game over", "winner", w.Name(), "points", w.VictoryPoints(), "turns", t.game.TurnNumber())
	t.broadcast(GameOverEvent{
		MatchID: t.id,
		Winner:  w.ID(),
		Points:  w.VictoryPoints(),
		Turns:   t.game.TurnNumber(),
	})

	if t.saver != nil {
		if err := t.saver.SaveTableResult(t.result()); err != nil {
			t.logger.Warn("could not save table result", "error", err)
		}
	}
}

func (t *Table) turnStarted() TurnStartedEvent {
	turn := t.game.Turn()
	_, initial := turn.(*engine.InitialTurn)
	return TurnStartedEvent{
		MatchID: t.id,
		Number:  turn.Number(),
		Player:  turn.Player().ID(),
		Initial: initial,
	}
}

// broadcast sends evt once to every seated session.
func (t *Table) broadcast(evt SessionEvent) {
	seen := make(map[SessionID]bool, len(t.seats))
	var ids []SessionID
	for _, p := range t.game.Players() {
		if s, ok := t.seats[p.ID()]; ok && !seen[s] {
			seen[s] = true
			ids = append(ids, s)
		}
	}
	t.sessions.send(evt, ids...)
}

func (t *Table) result() TableResult {
	opts := t.game.Options()
	res := TableResult{
		MatchID:  t.id,
		Mode:     t.mode,
		Seed:     opts.Seed,
		Players:  append([]string(nil), opts.Players...),
		Winner:   -1,
		Turns:    t.game.TurnNumber(),
		Actions:  t.actions,
		Rejected: make(map[check.Reason]int, len(t.rejected)),
		Duration: time.Since(t.started),
	}
	for r, n := range t.rejected {
		res.Rejected[r] = n
	}
	if w, ok := t.game.Winner(); ok {
		res.Winner = w.ID()
		res.Points = w.VictoryPoints()
	}
	return res
}
