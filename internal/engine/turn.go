package engine

import (
	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/resource"
)

// Dice is one roll of two six-sided dice.
type Dice struct {
	First, Second int
}

// Sum returns the total of both dice.
func (d Dice) Sum() int {
	return d.First + d.Second
}

// Turn is one player's window of legal actions. The closed set of
// implementations is *InitialTurn and *NormalTurn; Game owns transitions.
//
// Every CanX is a pure query. The matching X re-runs it and mutates only
// when it passes. Nil corner, tile or card arguments ask the zero-argument
// question used to list available actions.
type Turn interface {
	Number() int
	Player() *Player
	Finished() bool

	// Allows is the zero-argument gate for a.
	Allows(p *Player, a Action) check.Result

	CanRollDice(p *Player) check.Result
	RollDice(p *Player) (Dice, error)
	CanBuildRoad(p *Player, a, c *Corner) check.Result
	BuildRoad(p *Player, a, c *Corner) (Road, error)
	CanBuildSettlement(p *Player, c *Corner) check.Result
	BuildSettlement(p *Player, c *Corner) error
	CanBuildCity(p *Player, c *Corner) check.Result
	BuildCity(p *Player, c *Corner) error
	CanBuyDevelopmentCard(p *Player) check.Result
	BuyDevelopmentCard(p *Player) (*Card, error)
	CanPlayDevelopmentCard(p *Player, card *Card, args PlayArgs) check.Result
	PlayDevelopmentCard(p *Player, card *Card, args PlayArgs) error
	CanCollect(p *Player, b resource.Bundle) check.Result
	Collect(p *Player, b resource.Bundle) error
	CanDiscard(p *Player, b resource.Bundle) check.Result
	Discard(p *Player, b resource.Bundle) error
	CanExchange(p, other *Player, given, taken resource.Bundle) check.Result
	Exchange(p, other *Player, given, taken resource.Bundle) error
	CanTrade(p *Player, taken, given resource.Kind) check.Result
	Trade(p *Player, taken, given resource.Kind) error
	CanMoveThief(p *Player, t *Tile, target *Player) check.Result
	MoveThief(p *Player, t *Tile, target *Player) (resource.Bundle, error)
	CanPass(p *Player) check.Result
	Pass(p *Player) error

	isTurn()
}

// turnBase carries the state shared by both phases and rejects every
// action a phase does not override.
type turnBase struct {
	game     *Game
	number   int
	player   *Player
	finished bool
}

func (t *turnBase) Number() int     { return t.number }
func (t *turnBase) Player() *Player { return t.player }
func (t *turnBase) Finished() bool  { return t.finished }
func (t *turnBase) isTurn()         {}

// own checks that p may act in this turn.
func (t *turnBase) own(p *Player) check.Check {
	return func() check.Result {
		return check.New().
			Require(func() bool { return !t.finished }, check.TurnFinished).
			Require(func() bool { return p == t.player }, check.OtherPlayersTurn).
			Run()
	}
}

// open checks that the turn still accepts actions from any player.
func (t *turnBase) open() check.Check {
	return func() check.Result {
		if t.finished {
			return check.Fail(check.TurnFinished)
		}
		return check.Pass
	}
}

func (t *turnBase) notAllowed(p *Player) check.Result {
	return check.New().
		Then(t.own(p)).
		Require(func() bool { return false }, check.NotAllowedInThisTurn).
		Run()
}

func (t *turnBase) finish() {
	t.finished = true
	t.game.advance()
}

func (t *turnBase) Allows(p *Player, _ Action) check.Result { return t.notAllowed(p) }

func (t *turnBase) CanRollDice(p *Player) check.Result { return t.notAllowed(p) }

func (t *turnBase) RollDice(p *Player) (Dice, error) {
	return Dice{}, t.CanRollDice(p).Err()
}

func (t *turnBase) CanBuildRoad(p *Player, _, _ *Corner) check.Result { return t.notAllowed(p) }

func (t *turnBase) BuildRoad(p *Player, a, c *Corner) (Road, error) {
	return Road{}, t.CanBuildRoad(p, a, c).Err()
}

func (t *turnBase) CanBuildSettlement(p *Player, _ *Corner) check.Result { return t.notAllowed(p) }

func (t *turnBase) BuildSettlement(p *Player, c *Corner) error {
	return t.CanBuildSettlement(p, c).Err()
}

func (t *turnBase) CanBuildCity(p *Player, _ *Corner) check.Result { return t.notAllowed(p) }

func (t *turnBase) BuildCity(p *Player, c *Corner) error {
	return t.CanBuildCity(p, c).Err()
}

func (t *turnBase) CanBuyDevelopmentCard(p *Player) check.Result { return t.notAllowed(p) }

func (t *turnBase) BuyDevelopmentCard(p *Player) (*Card, error) {
	return nil, t.CanBuyDevelopmentCard(p).Err()
}

func (t *turnBase) CanPlayDevelopmentCard(p *Player, _ *Card, _ PlayArgs) check.Result {
	return t.notAllowed(p)
}

func (t *turnBase) PlayDevelopmentCard(p *Player, card *Card, args PlayArgs) error {
	return t.CanPlayDevelopmentCard(p, card, args).Err()
}

func (t *turnBase) CanCollect(p *Player, _ resource.Bundle) check.Result { return t.notAllowed(p) }

func (t *turnBase) Collect(p *Player, b resource.Bundle) error {
	return t.CanCollect(p, b).Err()
}

func (t *turnBase) CanDiscard(p *Player, _ resource.Bundle) check.Result { return t.notAllowed(p) }

func (t *turnBase) Discard(p *Player, b resource.Bundle) error {
	return t.CanDiscard(p, b).Err()
}

func (t *turnBase) CanExchange(p, _ *Player, _, _ resource.Bundle) check.Result {
	return t.notAllowed(p)
}

func (t *turnBase) Exchange(p, other *Player, given, taken resource.Bundle) error {
	return t.CanExchange(p, other, given, taken).Err()
}

func (t *turnBase) CanTrade(p *Player, _, _ resource.Kind) check.Result { return t.notAllowed(p) }

func (t *turnBase) Trade(p *Player, taken, given resource.Kind) error {
	return t.CanTrade(p, taken, given).Err()
}

func (t *turnBase) CanMoveThief(p *Player, _ *Tile, _ *Player) check.Result { return t.notAllowed(p) }

func (t *turnBase) MoveThief(p *Player, tile *Tile, target *Player) (resource.Bundle, error) {
	return resource.Bundle{}, t.CanMoveThief(p, tile, target).Err()
}

func (t *turnBase) CanPass(p *Player) check.Result { return t.notAllowed(p) }

func (t *turnBase) Pass(p *Player) error {
	return t.CanPass(p).Err()
}
