package engine

import (
	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/resource"
)

// PlayArgs is the closed set of arguments a development card is played
// with. Each variant matches exactly one CardKind.
type PlayArgs interface {
	CardKind() CardKind
	isPlayArgs()
}

// KnightArgs moves the thief to Tile and optionally steals from StealFrom.
type KnightArgs struct {
	Tile      *Tile
	StealFrom *Player
}

// MonopolyArgs names the resource taken from every other player.
type MonopolyArgs struct {
	Resource resource.Kind
}

// RoadBuildingArgs holds the two free roads, each as a corner pair.
type RoadBuildingArgs struct {
	First, Second [2]*Corner
}

// YearOfPlentyArgs names the two resources taken from the bank.
type YearOfPlentyArgs struct {
	First, Second resource.Kind
}

func (KnightArgs) CardKind() CardKind       { return Knight }
func (MonopolyArgs) CardKind() CardKind     { return Monopoly }
func (RoadBuildingArgs) CardKind() CardKind { return RoadBuilding }
func (YearOfPlentyArgs) CardKind() CardKind { return YearOfPlenty }

func (KnightArgs) isPlayArgs()       {}
func (MonopolyArgs) isPlayArgs()     {}
func (RoadBuildingArgs) isPlayArgs() {}
func (YearOfPlentyArgs) isPlayArgs() {}

// Card is a development card. Once drawn it stays with its holder.
type Card struct {
	id       CardID
	kind     CardKind
	title    string
	holder   *Player
	drawnOn  int
	played   bool
	playedOn int
	args     PlayArgs
}

// ID returns the card id.
func (c *Card) ID() CardID { return c.id }

// Kind returns the card type.
func (c *Card) Kind() CardKind { return c.kind }

// Title returns the printed name, e.g. "Library" for a victory point card.
func (c *Card) Title() string { return c.title }

// Holder returns the owning player, if the card has been drawn.
func (c *Card) Holder() (PlayerID, bool) {
	if c.holder == nil {
		return 0, false
	}
	return c.holder.id, true
}

// DrawnOn returns the number of the turn the card was drawn in.
func (c *Card) DrawnOn() int { return c.drawnOn }

// Played reports whether the card has been played.
func (c *Card) Played() bool { return c.played }

// PlayedOn returns the number of the turn the card was played in.
func (c *Card) PlayedOn() int { return c.playedOn }

// Args returns the arguments the card was played with, or nil.
func (c *Card) Args() PlayArgs { return c.args }

// VictoryPoints is 1 for a held victory point card, else 0.
func (c *Card) VictoryPoints() int {
	if c.kind == VictoryPoint && c.holder != nil {
		return 1
	}
	return 0
}

// Playable runs the checks that do not depend on play arguments.
func (c *Card) Playable(g *Game, p *Player) check.Result {
	return check.New().
		Require(func() bool { return c.holder != nil && c.holder == p }, check.CardNotOwnedByPlayer).
		Require(func() bool { return !c.played }, check.CardAlreadyPlayed).
		Require(func() bool { return g.turnNumber > c.drawnOn }, check.CardDrawnThisTurn).
		Require(func() bool { return c.kind != VictoryPoint }, check.VictoryPointCardIsNotPlayable).
		Run()
}

// CanBePlayed runs the base checks, then the checks for args.
func (c *Card) CanBePlayed(g *Game, p *Player, args PlayArgs) check.Result {
	return check.New().
		Then(func() check.Result { return c.Playable(g, p) }).
		Require(func() bool { return args != nil && args.CardKind() == c.kind }, check.UndefinedDevelopmentCardArguments).
		Then(func() check.Result { return c.canPlayWith(g, p, args) }).
		Run()
}

func (c *Card) canPlayWith(g *Game, p *Player, args PlayArgs) check.Result {
	switch a := args.(type) {
	case KnightArgs:
		return check.New().
			Require(func() bool { return a.Tile != nil }, check.UndefinedDevelopmentCardArguments).
			Then(func() check.Result { return g.board.CanMoveThief(p, a.Tile, a.StealFrom, g.players) }).
			Run()
	case RoadBuildingArgs:
		return check.New().
			Require(func() bool {
				return a.First[0] != nil && a.First[1] != nil && a.Second[0] != nil && a.Second[1] != nil
			}, check.UndefinedDevelopmentCardArguments).
			Then(func() check.Result { return g.board.CanBuildRoad(p.id, a.First[0], a.First[1]) }).
			Then(func() check.Result {
				first := NewEdge(a.First[0].id, a.First[1].id)
				return g.board.canBuildRoad(p.id, a.Second[0], a.Second[1], []Edge{first})
			}).
			Run()
	case MonopolyArgs:
		return check.New().
			Require(a.Resource.Valid, check.UndefinedDevelopmentCardArguments).
			Run()
	case YearOfPlentyArgs:
		return check.New().
			Require(func() bool { return a.First.Valid() && a.Second.Valid() }, check.UndefinedDevelopmentCardArguments).
			Run()
	}
	return check.Fail(check.UndefinedDevelopmentCardArguments)
}

// play applies the card effect. Every check runs before the first write.
func (c *Card) play(g *Game, p *Player, args PlayArgs) error {
	if err := c.CanBePlayed(g, p, args).Err(); err != nil {
		return err
	}

	switch a := args.(type) {
	case KnightArgs:
		if _, err := g.board.MoveThief(g.rng, p, a.Tile, a.StealFrom, g.players); err != nil {
			return err
		}
		p.knights++
	case MonopolyArgs:
		for _, other := range g.players {
			if other == p {
				continue
			}
			n := other.resources.Get(a.Resource)
			if n == 0 {
				continue
			}
			if err := other.give(p, a.Resource, n); err != nil {
				return err
			}
		}
	case RoadBuildingArgs:
		if _, err := p.buildRoad(g.board, a.First[0], a.First[1], true); err != nil {
			return err
		}
		if _, err := p.buildRoad(g.board, a.Second[0], a.Second[1], true); err != nil {
			return check.Integrity(check.PreconditionViolated, "second free road failed after validation: %v", err)
		}
	case YearOfPlentyArgs:
		p.resources.Add(a.First, 1)
		p.resources.Add(a.Second, 1)
	}

	c.played = true
	c.playedOn = g.turnNumber
	c.args = args

	if c.kind == Knight {
		return g.awardToken(LargestArmy, p)
	}
	return nil
}
