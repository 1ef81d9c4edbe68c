// Package multiplayer seats several sessions around one game and
// serialises their actions. It is transport-neutral: sessions receive
// events over channels and never see the engine's internals.
package multiplayer

import (
	"github.com/google/uuid"
)

// SessionID uniquely identifies a client session (a terminal, a script, a bot).
type SessionID string

// MatchID uniquely identifies a table for its whole lifetime.
type MatchID string

// NewMatchID returns a fresh random match id.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// Mode defines how seats map to sessions.
type Mode int

const (
	// ModeHotSeat lets one session hold every seat (local play, scripts).
	ModeHotSeat Mode = iota

	// ModeSeated gives every session exactly one seat.
	ModeSeated
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeHotSeat:
		return "Hot seat"
	case ModeSeated:
		return "Seated"
	default:
		return "Unknown"
	}
}

// ParseMode resolves "hotseat" or "seated".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "hotseat", "hot-seat", "local":
		return ModeHotSeat, true
	case "seated":
		return ModeSeated, true
	}
	return 0, false
}
