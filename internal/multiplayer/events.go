package multiplayer

import (
	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/engine"
)

// SessionEvent is an event a table sends to its sessions.
type SessionEvent interface {
	sessionEvent()
}

// SeatJoinedEvent is sent to everyone at the table when a seat is taken.
type SeatJoinedEvent struct {
	MatchID MatchID
	Seat    engine.PlayerID
	Session SessionID
}

func (SeatJoinedEvent) sessionEvent() {}

// SeatLeftEvent is sent when a session gives up its seats.
type SeatLeftEvent struct {
	MatchID MatchID
	Seats   []engine.PlayerID
	Session SessionID
}

func (SeatLeftEvent) sessionEvent() {}

// TurnStartedEvent is sent whenever the game moves to a new turn.
type TurnStartedEvent struct {
	MatchID MatchID
	Number  int
	Player  engine.PlayerID
	Initial bool
}

func (TurnStartedEvent) sessionEvent() {}

// ActionAppliedEvent is broadcast after a successful action.
type ActionAppliedEvent struct {
	MatchID MatchID
	Player  engine.PlayerID
	Action  engine.Action
	Turn    int
}

func (ActionAppliedEvent) sessionEvent() {}

// ActionRejectedEvent is sent only to the session whose action failed.
type ActionRejectedEvent struct {
	MatchID MatchID
	Player  engine.PlayerID
	Action  string
	Reason  check.Reason
	Message string
}

func (ActionRejectedEvent) sessionEvent() {}

// GameOverEvent is broadcast once a winner is declared.
type GameOverEvent struct {
	MatchID MatchID
	Winner  engine.PlayerID
	Points  int
	Turns   int
}

func (GameOverEvent) sessionEvent() {}
