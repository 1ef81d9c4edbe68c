package engine

import "github.com/vovakirdan/hexsettle/internal/check"

// InitialTurn is a placement turn: one free settlement anywhere the
// distance rule allows, then one free road touching it. Stage 2 pays the
// resources around the new settlement on pass.
type InitialTurn struct {
	turnBase
	stage      int
	settlement *Corner
	roadBuilt  bool
}

func newInitialTurn(g *Game, number int, p *Player, stage int) *InitialTurn {
	return &InitialTurn{
		turnBase: turnBase{game: g, number: number, player: p},
		stage:    stage,
	}
}

// Stage returns 1 for the forward round and 2 for the reverse round.
func (t *InitialTurn) Stage() int { return t.stage }

// Settlement returns the corner settled in this turn, if any.
func (t *InitialTurn) Settlement() (CornerID, bool) {
	if t.settlement == nil {
		return 0, false
	}
	return t.settlement.id, true
}

// RoadBuilt reports whether the road of this turn has been placed.
func (t *InitialTurn) RoadBuilt() bool { return t.roadBuilt }

func (t *InitialTurn) Allows(p *Player, a Action) check.Result {
	switch a {
	case BuildSettlement:
		return t.CanBuildSettlement(p, nil)
	case BuildRoad:
		return t.CanBuildRoad(p, nil, nil)
	case Pass:
		return t.CanPass(p)
	default:
		return t.notAllowed(p)
	}
}

func (t *InitialTurn) CanBuildSettlement(p *Player, c *Corner) check.Result {
	return check.New().
		Then(t.own(p)).
		Require(func() bool { return t.settlement == nil }, check.SettlementAlreadyBuilt).
		Then(func() check.Result { return p.CanBuildSettlement(t.game.board, c, true, false) }).
		Run()
}

func (t *InitialTurn) BuildSettlement(p *Player, c *Corner) error {
	if err := t.CanBuildSettlement(p, c).Err(); err != nil {
		return err
	}
	if c == nil {
		return check.Integrity(check.InvalidCornerID, "no corner given")
	}
	if err := p.buildSettlement(t.game.board, c, true, false); err != nil {
		return err
	}
	t.settlement = c
	return nil
}

func (t *InitialTurn) CanBuildRoad(p *Player, a, c *Corner) check.Result {
	return check.New().
		Then(t.own(p)).
		Require(func() bool { return t.settlement != nil }, check.SettlementNotBuilt).
		Require(func() bool { return !t.roadBuilt }, check.RoadAlreadyBuilt).
		Require(func() bool {
			return a == nil || c == nil || a == t.settlement || c == t.settlement
		}, check.RoadAndSettlementNotAdjacent).
		Then(func() check.Result { return p.CanBuildRoad(t.game.board, a, c, true) }).
		Run()
}

func (t *InitialTurn) BuildRoad(p *Player, a, c *Corner) (Road, error) {
	if err := t.CanBuildRoad(p, a, c).Err(); err != nil {
		return Road{}, err
	}
	if a == nil || c == nil {
		return Road{}, check.Integrity(check.InvalidCornerID, "road needs two corners")
	}
	road, err := p.buildRoad(t.game.board, a, c, true)
	if err != nil {
		return Road{}, err
	}
	t.roadBuilt = true
	return road, nil
}

func (t *InitialTurn) CanPass(p *Player) check.Result {
	return check.New().
		Then(t.own(p)).
		Require(func() bool { return t.settlement != nil }, check.SettlementNotBuilt).
		Require(func() bool { return t.roadBuilt }, check.RoadNotBuilt).
		Run()
}

func (t *InitialTurn) Pass(p *Player) error {
	if err := t.CanPass(p).Err(); err != nil {
		return err
	}
	if t.stage == 2 {
		p.receive(t.game.board.AdjacentResources(t.settlement))
	}
	t.finish()
	return nil
}
