package engine

import (
	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/resource"
)

// ThiefRoll is the dice sum that triggers discards and moves the thief.
const ThiefRoll = 7

// DiscardThreshold is the hand size above which a thief roll forces a discard.
const DiscardThreshold = 7

// NormalTurn is a regular turn: roll, resolve the thief, then build,
// trade and play cards in any order, then pass.
type NormalTurn struct {
	turnBase
	dice       *Dice
	collected  []resource.Bundle
	discards   []int
	thiefMoved bool
	cardPlayed bool
}

func newNormalTurn(g *Game, number int, p *Player) *NormalTurn {
	return &NormalTurn{
		turnBase:  turnBase{game: g, number: number, player: p},
		collected: make([]resource.Bundle, len(g.players)),
		discards:  make([]int, len(g.players)),
	}
}

// Dice returns the roll of this turn, if made.
func (t *NormalTurn) Dice() (Dice, bool) {
	if t.dice == nil {
		return Dice{}, false
	}
	return *t.dice, true
}

// Collected returns what p has collected this turn.
func (t *NormalTurn) Collected(p PlayerID) resource.Bundle {
	return t.collected[p]
}

// Collectible returns what p may still collect for this turn's roll.
func (t *NormalTurn) Collectible(p PlayerID) resource.Bundle {
	if t.dice == nil {
		return resource.Bundle{}
	}
	return t.game.board.CollectibleFor(p, t.dice.Sum()).Without(t.collected[p])
}

// PendingDiscard returns how many units p still has to discard.
func (t *NormalTurn) PendingDiscard(p PlayerID) int {
	return t.discards[p]
}

// ThiefMoved reports whether the thief was moved this turn.
func (t *NormalTurn) ThiefMoved() bool { return t.thiefMoved }

// CardPlayed reports whether a development card was played this turn.
func (t *NormalTurn) CardPlayed() bool { return t.cardPlayed }

func (t *NormalTurn) rolled() check.Check {
	return func() check.Result {
		if t.dice == nil {
			return check.Fail(check.DiceNotRolled)
		}
		return check.Pass
	}
}

func (t *NormalTurn) discardsCleared() bool {
	for _, n := range t.discards {
		if n > 0 {
			return false
		}
	}
	return true
}

// afterThief is the gate in front of building, trading, cards and pass.
func (t *NormalTurn) afterThief() check.Check {
	return func() check.Result {
		return check.New().
			Then(t.rolled()).
			Require(t.discardsCleared, check.ResourcesNotDiscarded).
			Require(func() bool { return t.dice.Sum() != ThiefRoll || t.thiefMoved }, check.ThiefNotMoved).
			Run()
	}
}

func (t *NormalTurn) Allows(p *Player, a Action) check.Result {
	switch a {
	case RollDice:
		return t.CanRollDice(p)
	case BuildRoad:
		return t.CanBuildRoad(p, nil, nil)
	case BuildSettlement:
		return t.CanBuildSettlement(p, nil)
	case BuildCity:
		return t.CanBuildCity(p, nil)
	case BuyDevelopmentCard:
		return t.CanBuyDevelopmentCard(p)
	case PlayDevelopmentCard:
		return t.CanPlayDevelopmentCard(p, nil, nil)
	case Collect:
		return t.CanCollect(p, resource.Bundle{})
	case Discard:
		return check.New().
			Then(t.open()).
			Then(t.rolled()).
			Require(func() bool { return t.discards[p.id] > 0 }, check.ResourcesNotDiscardable).
			Run()
	case Exchange:
		return check.New().
			Then(t.own(p)).
			Then(t.afterThief()).
			Require(func() bool { return !p.resources.IsEmpty() }, check.NotEnoughResources).
			Run()
	case Trade:
		return check.New().
			Then(t.own(p)).
			Then(t.afterThief()).
			Then(p.canTradeAny).
			Run()
	case MoveThief:
		return t.CanMoveThief(p, nil, nil)
	case Pass:
		return t.CanPass(p)
	}
	return t.notAllowed(p)
}

func (t *NormalTurn) CanRollDice(p *Player) check.Result {
	return check.New().
		Then(t.own(p)).
		Require(func() bool { return t.dice == nil }, check.DiceAlreadyRolled).
		Run()
}

// RollDice rolls both dice. A thief roll sets discard obligations; any
// other roll pays everyone when the game collects automatically.
func (t *NormalTurn) RollDice(p *Player) (Dice, error) {
	if err := t.CanRollDice(p).Err(); err != nil {
		return Dice{}, err
	}
	d := Dice{First: t.game.rollDie(), Second: t.game.rollDie()}
	t.applyRoll(d)
	return d, nil
}

func (t *NormalTurn) applyRoll(d Dice) {
	t.dice = &d
	if d.Sum() == ThiefRoll {
		for _, pl := range t.game.players {
			if n := pl.resources.Total(); n > DiscardThreshold {
				t.discards[pl.id] = n / 2
			}
		}
	} else if t.game.opts.AutoCollect {
		for _, pl := range t.game.players {
			t.collect(pl, t.Collectible(pl.id))
		}
	}
}

func (t *NormalTurn) CanBuildRoad(p *Player, a, c *Corner) check.Result {
	return check.New().
		Then(t.own(p)).
		Then(t.afterThief()).
		Then(func() check.Result { return p.CanBuildRoad(t.game.board, a, c, false) }).
		Run()
}

func (t *NormalTurn) BuildRoad(p *Player, a, c *Corner) (Road, error) {
	if err := t.CanBuildRoad(p, a, c).Err(); err != nil {
		return Road{}, err
	}
	if a == nil || c == nil {
		return Road{}, check.Integrity(check.InvalidCornerID, "road needs two corners")
	}
	return p.buildRoad(t.game.board, a, c, false)
}

func (t *NormalTurn) CanBuildSettlement(p *Player, c *Corner) check.Result {
	return check.New().
		Then(t.own(p)).
		Then(t.afterThief()).
		Then(func() check.Result { return p.CanBuildSettlement(t.game.board, c, false, true) }).
		Run()
}

func (t *NormalTurn) BuildSettlement(p *Player, c *Corner) error {
	if err := t.CanBuildSettlement(p, c).Err(); err != nil {
		return err
	}
	if c == nil {
		return check.Integrity(check.InvalidCornerID, "no corner given")
	}
	return p.buildSettlement(t.game.board, c, false, true)
}

func (t *NormalTurn) CanBuildCity(p *Player, c *Corner) check.Result {
	return check.New().
		Then(t.own(p)).
		Then(t.afterThief()).
		Then(func() check.Result { return p.CanBuildCity(t.game.board, c) }).
		Run()
}

func (t *NormalTurn) BuildCity(p *Player, c *Corner) error {
	if err := t.CanBuildCity(p, c).Err(); err != nil {
		return err
	}
	if c == nil {
		return check.Integrity(check.InvalidCornerID, "no corner given")
	}
	return p.buildCity(t.game.board, c)
}

func (t *NormalTurn) CanBuyDevelopmentCard(p *Player) check.Result {
	return check.New().
		Then(t.own(p)).
		Then(t.afterThief()).
		Then(func() check.Result { return p.CanBuyDevelopmentCard(t.game) }).
		Run()
}

func (t *NormalTurn) BuyDevelopmentCard(p *Player) (*Card, error) {
	if err := t.CanBuyDevelopmentCard(p).Err(); err != nil {
		return nil, err
	}
	return p.buyDevelopmentCard(t.game)
}

// CanPlayDevelopmentCard checks one card play. With a nil card it asks
// whether any held card could be played this turn.
func (t *NormalTurn) CanPlayDevelopmentCard(p *Player, card *Card, args PlayArgs) check.Result {
	return check.New().
		Then(t.own(p)).
		Then(t.afterThief()).
		Require(func() bool { return !t.cardPlayed }, check.CardAlreadyPlayedThisTurn).
		Then(func() check.Result {
			if card == nil {
				if len(p.PlayableCards(t.game)) == 0 {
					return check.Fail(check.NoPlayableCard)
				}
				return check.Pass
			}
			return card.CanBePlayed(t.game, p, args)
		}).
		Run()
}

func (t *NormalTurn) PlayDevelopmentCard(p *Player, card *Card, args PlayArgs) error {
	if err := t.CanPlayDevelopmentCard(p, card, args).Err(); err != nil {
		return err
	}
	if card == nil {
		return check.Integrity(check.InvalidDevelopmentCardID, "no card given")
	}
	if err := card.play(t.game, p, args); err != nil {
		return err
	}
	t.cardPlayed = true
	return nil
}

// CanCollect checks that b is still owed to p for this roll. An empty
// bundle asks for everything still owed.
func (t *NormalTurn) CanCollect(p *Player, b resource.Bundle) check.Result {
	return check.New().
		Then(t.open()).
		Then(t.rolled()).
		Require(func() bool {
			owed := t.Collectible(p.id)
			if b.IsEmpty() {
				return !owed.IsEmpty()
			}
			return owed.HasAll(b)
		}, check.ResourcesNotAvailable).
		Run()
}

func (t *NormalTurn) Collect(p *Player, b resource.Bundle) error {
	if err := t.CanCollect(p, b).Err(); err != nil {
		return err
	}
	if b.IsEmpty() {
		b = t.Collectible(p.id)
	}
	t.collect(p, b)
	return nil
}

func (t *NormalTurn) collect(p *Player, b resource.Bundle) {
	p.receive(b)
	t.collected[p.id].AddAll(b)
}

func (t *NormalTurn) CanDiscard(p *Player, b resource.Bundle) check.Result {
	return check.New().
		Then(t.open()).
		Then(t.rolled()).
		Require(func() bool { return !b.IsEmpty() }, check.NoResourcesGiven).
		Require(func() bool { return b.Total() <= t.discards[p.id] }, check.ResourcesNotDiscardable).
		Require(func() bool { return p.resources.HasAll(b) }, check.NotEnoughResources).
		Run()
}

func (t *NormalTurn) Discard(p *Player, b resource.Bundle) error {
	if err := t.CanDiscard(p, b).Err(); err != nil {
		return err
	}
	if err := p.giveAway(b); err != nil {
		return err
	}
	t.discards[p.id] -= b.Total()
	return nil
}

func (t *NormalTurn) CanExchange(p, other *Player, given, taken resource.Bundle) check.Result {
	return check.New().
		Then(t.own(p)).
		Then(t.afterThief()).
		Then(func() check.Result { return p.CanExchange(other, given, taken) }).
		Run()
}

func (t *NormalTurn) Exchange(p, other *Player, given, taken resource.Bundle) error {
	if err := t.CanExchange(p, other, given, taken).Err(); err != nil {
		return err
	}
	return p.exchange(other, given, taken)
}

func (t *NormalTurn) CanTrade(p *Player, taken, given resource.Kind) check.Result {
	return check.New().
		Then(t.own(p)).
		Then(t.afterThief()).
		Then(func() check.Result { return p.CanTrade(taken, given) }).
		Run()
}

func (t *NormalTurn) Trade(p *Player, taken, given resource.Kind) error {
	if err := t.CanTrade(p, taken, given).Err(); err != nil {
		return err
	}
	return p.trade(taken, given)
}

// CanMoveThief checks the thief move of a 7 roll. With a nil tile only the
// turn-level checks run.
func (t *NormalTurn) CanMoveThief(p *Player, tile *Tile, target *Player) check.Result {
	return check.New().
		Then(t.own(p)).
		Then(t.rolled()).
		Require(func() bool { return t.dice.Sum() == ThiefRoll }, check.DiceRollIsNot7).
		Require(t.discardsCleared, check.ResourcesNotDiscarded).
		Require(func() bool { return !t.thiefMoved }, check.ThiefAlreadyMoved).
		Then(func() check.Result {
			if tile == nil {
				return check.Pass
			}
			return t.game.board.CanMoveThief(p, tile, target, t.game.players)
		}).
		Run()
}

func (t *NormalTurn) MoveThief(p *Player, tile *Tile, target *Player) (resource.Bundle, error) {
	if err := t.CanMoveThief(p, tile, target).Err(); err != nil {
		return resource.Bundle{}, err
	}
	if tile == nil {
		return resource.Bundle{}, check.Integrity(check.InvalidTileID, "no tile given")
	}
	stolen, err := t.game.board.MoveThief(t.game.rng, p, tile, target, t.game.players)
	if err != nil {
		return resource.Bundle{}, err
	}
	t.thiefMoved = true
	return stolen, nil
}

func (t *NormalTurn) CanPass(p *Player) check.Result {
	return check.New().
		Then(t.own(p)).
		Then(t.afterThief()).
		Run()
}

// Pass re-evaluates achievement tokens for p, declares p the winner when
// the target is reached and hands the game to the next turn.
func (t *NormalTurn) Pass(p *Player) error {
	if err := t.CanPass(p).Err(); err != nil {
		return err
	}
	if err := t.game.awardTokensTo(p); err != nil {
		return err
	}
	if p.VictoryPoints() >= t.game.opts.VictoryPoints {
		t.game.win(p)
	}
	t.finish()
	return nil
}
