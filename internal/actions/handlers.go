package actions

import (
	"fmt"

	"github.com/vovakirdan/hexsettle/internal/engine"
	"github.com/vovakirdan/hexsettle/internal/registry"
)

func init() {
	registry.Register(func() registry.Handler { return rollDice{} })
	registry.Register(func() registry.Handler { return buildRoad{} })
	registry.Register(func() registry.Handler { return buildSettlement{} })
	registry.Register(func() registry.Handler { return buildCity{} })
	registry.Register(func() registry.Handler { return buyCard{} })
	registry.Register(func() registry.Handler { return playCard{} })
	registry.Register(func() registry.Handler { return collect{} })
	registry.Register(func() registry.Handler { return discard{} })
	registry.Register(func() registry.Handler { return exchange{} })
	registry.Register(func() registry.Handler { return trade{} })
	registry.Register(func() registry.Handler { return moveThief{} })
	registry.Register(func() registry.Handler { return pass{} })
}

func corners(g *engine.Game, ids []int, n int) ([]*engine.Corner, error) {
	if len(ids) < n {
		return nil, fmt.Errorf("%w: want %d corners, got %d", ErrMissingArgument, n, len(ids))
	}
	if len(ids) > n {
		return nil, fmt.Errorf("%w: want %d corners, got %d", ErrInvalidArgument, n, len(ids))
	}
	out := make([]*engine.Corner, n)
	for i, id := range ids {
		c, err := g.Board().Corner(engine.CornerID(id))
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func tile(g *engine.Game, id *int) (*engine.Tile, error) {
	if id == nil {
		return nil, nil
	}
	return g.Board().Tile(engine.TileID(*id))
}

func player(g *engine.Game, id *int) (*engine.Player, error) {
	if id == nil {
		return nil, nil
	}
	return g.Player(engine.PlayerID(*id))
}

type rollDice struct{}

func (rollDice) Action() engine.Action { return engine.RollDice }
func (rollDice) Usage() string         { return "" }

func (rollDice) Execute(g *engine.Game, p *engine.Player, _ registry.Args) error {
	_, err := g.Turn().RollDice(p)
	return err
}

type buildRoad struct{}

func (buildRoad) Action() engine.Action { return engine.BuildRoad }
func (buildRoad) Usage() string         { return "corners=<a>,<b>" }

func (buildRoad) Execute(g *engine.Game, p *engine.Player, args registry.Args) error {
	cs, err := corners(g, args.Corners, 2)
	if err != nil {
		return err
	}
	_, err = g.Turn().BuildRoad(p, cs[0], cs[1])
	return err
}

type buildSettlement struct{}

func (buildSettlement) Action() engine.Action { return engine.BuildSettlement }
func (buildSettlement) Usage() string         { return "corners=<c>" }

func (buildSettlement) Execute(g *engine.Game, p *engine.Player, args registry.Args) error {
	cs, err := corners(g, args.Corners, 1)
	if err != nil {
		return err
	}
	return g.Turn().BuildSettlement(p, cs[0])
}

type buildCity struct{}

func (buildCity) Action() engine.Action { return engine.BuildCity }
func (buildCity) Usage() string         { return "corners=<c>" }

func (buildCity) Execute(g *engine.Game, p *engine.Player, args registry.Args) error {
	cs, err := corners(g, args.Corners, 1)
	if err != nil {
		return err
	}
	return g.Turn().BuildCity(p, cs[0])
}

type buyCard struct{}

func (buyCard) Action() engine.Action { return engine.BuyDevelopmentCard }
func (buyCard) Usage() string         { return "" }

func (buyCard) Execute(g *engine.Game, p *engine.Player, _ registry.Args) error {
	_, err := g.Turn().BuyDevelopmentCard(p)
	return err
}

type playCard struct{}

func (playCard) Action() engine.Action { return engine.PlayDevelopmentCard }

func (playCard) Usage() string {
	return "card=<id> [tile=<t> player=<p> | resource=<r> | choices=<r>,<r> | corners=<a>,<b>,<c>,<d>]"
}

func (playCard) Execute(g *engine.Game, p *engine.Player, args registry.Args) error {
	if args.Card == nil {
		return fmt.Errorf("%w: card", ErrMissingArgument)
	}
	card, err := g.Card(engine.CardID(*args.Card))
	if err != nil {
		return err
	}
	playArgs, err := cardArgs(g, card.Kind(), args)
	if err != nil {
		return err
	}
	return g.Turn().PlayDevelopmentCard(p, card, playArgs)
}

// cardArgs builds the payload for a card of kind. Incomplete requests
// yield nil so the engine reports the arguments as undefined.
func cardArgs(g *engine.Game, kind engine.CardKind, args registry.Args) (engine.PlayArgs, error) {
	switch kind {
	case engine.Knight:
		t, err := tile(g, args.Tile)
		if err != nil {
			return nil, err
		}
		victim, err := player(g, args.Player)
		if err != nil {
			return nil, err
		}
		return engine.KnightArgs{Tile: t, StealFrom: victim}, nil
	case engine.Monopoly:
		if args.Resource == nil {
			return nil, nil
		}
		return engine.MonopolyArgs{Resource: *args.Resource}, nil
	case engine.YearOfPlenty:
		if len(args.Choices) != 2 {
			return nil, nil
		}
		return engine.YearOfPlentyArgs{First: args.Choices[0], Second: args.Choices[1]}, nil
	case engine.RoadBuilding:
		if len(args.Corners) != 4 {
			return nil, nil
		}
		cs, err := corners(g, args.Corners, 4)
		if err != nil {
			return nil, err
		}
		return engine.RoadBuildingArgs{
			First:  [2]*engine.Corner{cs[0], cs[1]},
			Second: [2]*engine.Corner{cs[2], cs[3]},
		}, nil
	}
	return nil, nil
}

type collect struct{}

func (collect) Action() engine.Action { return engine.Collect }
func (collect) Usage() string         { return "[resources=<bundle>]" }

func (collect) Execute(g *engine.Game, p *engine.Player, args registry.Args) error {
	return g.Turn().Collect(p, args.Resources)
}

type discard struct{}

func (discard) Action() engine.Action { return engine.Discard }
func (discard) Usage() string         { return "resources=<bundle>" }

func (discard) Execute(g *engine.Game, p *engine.Player, args registry.Args) error {
	return g.Turn().Discard(p, args.Resources)
}

type exchange struct{}

func (exchange) Action() engine.Action { return engine.Exchange }
func (exchange) Usage() string         { return "player=<p> resources=<given> taken=<taken>" }

func (exchange) Execute(g *engine.Game, p *engine.Player, args registry.Args) error {
	if args.Player == nil {
		return fmt.Errorf("%w: player", ErrMissingArgument)
	}
	other, err := player(g, args.Player)
	if err != nil {
		return err
	}
	return g.Turn().Exchange(p, other, args.Resources, args.Taken)
}

type trade struct{}

func (trade) Action() engine.Action { return engine.Trade }
func (trade) Usage() string         { return "resource=<taken> given=<given>" }

func (trade) Execute(g *engine.Game, p *engine.Player, args registry.Args) error {
	if args.Resource == nil {
		return fmt.Errorf("%w: resource", ErrMissingArgument)
	}
	if args.Given == nil {
		return fmt.Errorf("%w: given", ErrMissingArgument)
	}
	return g.Turn().Trade(p, *args.Resource, *args.Given)
}

type moveThief struct{}

func (moveThief) Action() engine.Action { return engine.MoveThief }
func (moveThief) Usage() string         { return "tile=<t> [player=<p>]" }

func (moveThief) Execute(g *engine.Game, p *engine.Player, args registry.Args) error {
	if args.Tile == nil {
		return fmt.Errorf("%w: tile", ErrMissingArgument)
	}
	t, err := tile(g, args.Tile)
	if err != nil {
		return err
	}
	victim, err := player(g, args.Player)
	if err != nil {
		return err
	}
	_, err = g.Turn().MoveThief(p, t, victim)
	return err
}

type pass struct{}

func (pass) Action() engine.Action { return engine.Pass }
func (pass) Usage() string         { return "" }

func (pass) Execute(g *engine.Game, p *engine.Player, _ registry.Args) error {
	return g.Turn().Pass(p)
}
