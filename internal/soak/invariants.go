package soak

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/hexsettle/internal/actions"
	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/engine"
	"github.com/vovakirdan/hexsettle/internal/registry"
	"github.com/vovakirdan/hexsettle/internal/resource"
)

// Violation records a broken game invariant.
type Violation struct {
	Action    int    `json:"action"`
	Invariant string `json:"invariant"`
	Detail    string `json:"detail"`
}

func (v Violation) String() string {
	return fmt.Sprintf("#%d %s: %s", v.Action, v.Invariant, v.Detail)
}

// Invariant names.
const (
	InvReadOnly      = "read-only"
	InvRejectedProbe = "rejected-probe"
	InvLegalMove     = "legal-move"
	InvStuck         = "stuck"
	InvDistance      = "distance-rule"
	InvTokens        = "token-holder"
	InvResources     = "resources"
	InvRoads         = "road-owner"
	InvPoints        = "victory-points"
	InvCards         = "card-count"
)

// fingerprint renders every observable piece of game state.
func fingerprint(g *engine.Game) string {
	var b strings.Builder
	board := g.Board()
	fmt.Fprintf(&b, "thief=%d;", board.ThiefTile())
	for _, c := range board.Corners() {
		if con := c.Construction(); con != nil {
			fmt.Fprintf(&b, "c%d=%T/%d;", c.ID(), con, con.Owner())
		}
	}
	for _, r := range board.Roads() {
		fmt.Fprintf(&b, "r%d=%s/%d;", r.ID(), r.Edge(), r.Owner())
	}
	for _, p := range g.Players() {
		fmt.Fprintf(&b, "p%d=%s/k%d/r%d/c%d;", p.ID(), p.Resources(), p.KnightsPlayed(), len(p.Roads()), len(p.Constructions()))
		for _, card := range p.Cards() {
			fmt.Fprintf(&b, "card%d=%v/%t;", card.ID(), card.Kind(), card.Played())
		}
	}
	for _, t := range g.Tokens() {
		holder, ok := t.Holder()
		fmt.Fprintf(&b, "tok%d=%d/%t;", t.ID(), holder, ok)
	}
	fmt.Fprintf(&b, "deck=%d;turn=%d;", g.DeckSize(), g.TurnNumber())

	turn := g.Turn()
	fmt.Fprintf(&b, "%T/p%d/%t;", turn, turn.Player().ID(), turn.Finished())
	switch t := turn.(type) {
	case *engine.InitialTurn:
		fmt.Fprintf(&b, "stage=%v/road=%t;", t.Stage(), t.RoadBuilt())
	case *engine.NormalTurn:
		dice, rolled := t.Dice()
		fmt.Fprintf(&b, "dice=%v/%t/thief=%t/card=%t;", dice, rolled, t.ThiefMoved(), t.CardPlayed())
		for _, p := range g.Players() {
			fmt.Fprintf(&b, "pend%d=%d/%s;", p.ID(), t.PendingDiscard(p.ID()), t.Collectible(p.ID()))
		}
	}
	if w, ok := g.Winner(); ok {
		fmt.Fprintf(&b, "winner=%d;", w.ID())
	}
	return b.String()
}

// checkState verifies the structural invariants that must hold after every
// applied action.
func checkState(g *engine.Game) []Violation {
	var out []Violation
	fail := func(inv, format string, args ...any) {
		out = append(out, Violation{Invariant: inv, Detail: fmt.Sprintf(format, args...)})
	}
	board := g.Board()

	for _, c := range board.Corners() {
		if !c.IsOccupied() {
			continue
		}
		for _, id := range c.AdjacentCorners() {
			other, err := board.Corner(id)
			if err == nil && other.IsOccupied() {
				fail(InvDistance, "corners %d and %d are both built", c.ID(), id)
			}
		}
	}

	holders := make(map[engine.PlayerID]int)
	for _, t := range g.Tokens() {
		if id, ok := t.Holder(); ok {
			holders[id]++
		}
	}
	for _, p := range g.Players() {
		held := 0
		for _, t := range p.Tokens() {
			id, ok := t.Holder()
			if !ok || id != p.ID() {
				fail(InvTokens, "player %d carries %v held by %d", p.ID(), t.Kind(), id)
			}
			held++
		}
		if held != holders[p.ID()] {
			fail(InvTokens, "player %d carries %d tokens, game says %d", p.ID(), held, holders[p.ID()])
		}

		for _, k := range resource.Kinds() {
			if n := p.Resources().Get(k); n < 0 {
				fail(InvResources, "player %d has %d %v", p.ID(), n, k)
			}
		}

		for _, id := range p.Roads() {
			r, ok := board.Road(id)
			if !ok || r.Owner() != p.ID() {
				fail(InvRoads, "player %d lists road %d it does not own", p.ID(), id)
			}
		}

		if p.VictoryPoints() != p.VisibleVictoryPoints()+p.HiddenVictoryPoints() {
			fail(InvPoints, "player %d total %d != %d + %d", p.ID(), p.VictoryPoints(), p.VisibleVictoryPoints(), p.HiddenVictoryPoints())
		}
	}

	for _, r := range board.Roads() {
		p, err := g.Player(r.Owner())
		if err != nil {
			fail(InvRoads, "road %d has unknown owner %d", r.ID(), r.Owner())
			continue
		}
		found := false
		for _, id := range p.Roads() {
			if id == r.ID() {
				found = true
				break
			}
		}
		if !found {
			fail(InvRoads, "road %d missing from player %d", r.ID(), r.Owner())
		}
	}

	held := 0
	for _, p := range g.Players() {
		held += len(p.Cards())
	}
	if total := len(g.Cards()); g.DeckSize()+held != total {
		fail(InvCards, "deck %d + held %d != %d", g.DeckSize(), held, total)
	}
	return out
}

// probeResult is the outcome of one rejected-action probe.
type probeResult struct {
	reason    check.Reason
	rejected  bool
	violation *Violation
}

// probe sends a turn-owned action with random in-range arguments from a
// seat that does not own the turn. The request must be rejected without an
// integrity error and must leave the game untouched.
func probe(g *engine.Game, d *actions.Dispatcher, rng *rand.Rand) probeResult {
	players := g.Players()
	owner := g.Turn().Player().ID()
	var candidates []engine.PlayerID
	for _, p := range players {
		if p.ID() != owner {
			candidates = append(candidates, p.ID())
		}
	}
	if len(candidates) == 0 {
		return probeResult{}
	}
	actor := candidates[rng.Intn(len(candidates))]

	// Discard and collect are open to every seat.
	owned := []engine.Action{
		engine.RollDice, engine.BuildRoad, engine.BuildSettlement, engine.BuildCity,
		engine.BuyDevelopmentCard, engine.PlayDevelopmentCard, engine.Exchange,
		engine.Trade, engine.MoveThief, engine.Pass,
	}
	action := owned[rng.Intn(len(owned))]
	args := randomArgs(g, rng)

	before := fingerprint(g)
	err := d.ExecuteAction(actor, action.String(), args)
	after := fingerprint(g)

	res := probeResult{}
	switch {
	case err == nil:
		res.violation = &Violation{Invariant: InvRejectedProbe, Detail: fmt.Sprintf("p%d %s accepted out of turn", actor, action)}
	case check.IsIntegrity(err):
		res.violation = &Violation{Invariant: InvRejectedProbe, Detail: fmt.Sprintf("p%d %s: %v", actor, action, err)}
	default:
		res.rejected = true
		if reason, ok := check.ReasonOf(err); ok {
			res.reason = reason
		}
	}
	if res.violation == nil && before != after {
		res.violation = &Violation{Invariant: InvReadOnly, Detail: fmt.Sprintf("rejected p%d %s changed state", actor, action)}
	}
	return res
}

func randomArgs(g *engine.Game, rng *rand.Rand) registry.Args {
	board := g.Board()
	corners := len(board.Corners())
	n := 1 + rng.Intn(4)
	ids := make([]int, n)
	for i := range ids {
		ids[i] = rng.Intn(corners)
	}
	kinds := resource.Kinds()
	args := registry.Args{
		Corners:  ids,
		Tile:     intp(rng.Intn(len(board.Tiles()))),
		Player:   intp(rng.Intn(len(g.Players()))),
		Resource: kindp(kinds[rng.Intn(len(kinds))]),
		Given:    kindp(kinds[rng.Intn(len(kinds))]),
		Choices:  []resource.Kind{kinds[rng.Intn(len(kinds))], kinds[rng.Intn(len(kinds))]},
	}
	if cards := len(g.Cards()); cards > 0 {
		args.Card = intp(rng.Intn(cards))
	}
	args.Resources.Add(kinds[rng.Intn(len(kinds))], 1+rng.Intn(2))
	args.Taken.Add(kinds[rng.Intn(len(kinds))], 1)
	return args
}
