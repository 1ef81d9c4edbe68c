package soak

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/hexsettle/internal/actions"
	"github.com/vovakirdan/hexsettle/internal/engine"
	"github.com/vovakirdan/hexsettle/internal/registry"
	"github.com/vovakirdan/hexsettle/internal/resource"
)

// Move is one concrete action request.
type Move struct {
	Player engine.PlayerID
	Action engine.Action
	Args   registry.Args
}

// String renders the move the way the play command accepts it.
func (m Move) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "p%d %s", m.Player, m.Action)
	a := m.Args
	if len(a.Corners) > 0 {
		parts := make([]string, len(a.Corners))
		for i, c := range a.Corners {
			parts[i] = fmt.Sprint(c)
		}
		fmt.Fprintf(&b, " corners=%s", strings.Join(parts, ","))
	}
	if a.Tile != nil {
		fmt.Fprintf(&b, " tile=%d", *a.Tile)
	}
	if a.Player != nil {
		fmt.Fprintf(&b, " player=%d", *a.Player)
	}
	if a.Card != nil {
		fmt.Fprintf(&b, " card=%d", *a.Card)
	}
	if !a.Resources.IsEmpty() {
		fmt.Fprintf(&b, " resources=%s", bundleArg(a.Resources))
	}
	if !a.Taken.IsEmpty() {
		fmt.Fprintf(&b, " taken=%s", bundleArg(a.Taken))
	}
	if a.Resource != nil {
		fmt.Fprintf(&b, " resource=%s", strings.ToLower(a.Resource.String()))
	}
	if a.Given != nil {
		fmt.Fprintf(&b, " given=%s", strings.ToLower(a.Given.String()))
	}
	if len(a.Choices) > 0 {
		parts := make([]string, len(a.Choices))
		for i, k := range a.Choices {
			parts[i] = strings.ToLower(k.String())
		}
		fmt.Fprintf(&b, " choices=%s", strings.Join(parts, ","))
	}
	return b.String()
}

func bundleArg(b resource.Bundle) string {
	var parts []string
	for _, k := range b.Kinds() {
		parts = append(parts, fmt.Sprintf("%s:%d", strings.ToLower(k.String()), b.Get(k)))
	}
	return strings.Join(parts, ",")
}

func intp(n int) *int { return &n }

func kindp(k resource.Kind) *resource.Kind { return &k }

// Legal enumerates concrete legal moves for every player. Only read
// accessors and Can* queries are used, so the game is left untouched.
func Legal(g *engine.Game, d *actions.Dispatcher, rng *rand.Rand) []Move {
	var moves []Move
	for _, p := range g.Players() {
		available, err := d.AvailableActions(p.ID())
		if err != nil {
			continue
		}
		for _, a := range available {
			moves = append(moves, movesFor(g, p, a, rng)...)
		}
	}
	return moves
}

func movesFor(g *engine.Game, p *engine.Player, a engine.Action, rng *rand.Rand) []Move {
	turn := g.Turn()
	board := g.Board()
	move := func(args registry.Args) Move { return Move{Player: p.ID(), Action: a, Args: args} }

	var out []Move
	switch a {
	case engine.RollDice:
		if turn.CanRollDice(p).OK() {
			out = append(out, move(registry.Args{}))
		}

	case engine.BuyDevelopmentCard:
		if turn.CanBuyDevelopmentCard(p).OK() {
			out = append(out, move(registry.Args{}))
		}

	case engine.Pass:
		if turn.CanPass(p).OK() {
			out = append(out, move(registry.Args{}))
		}

	case engine.Collect:
		if turn.CanCollect(p, resource.Bundle{}).OK() {
			out = append(out, move(registry.Args{}))
		}

	case engine.BuildSettlement:
		for _, c := range board.Corners() {
			if turn.CanBuildSettlement(p, c).OK() {
				out = append(out, move(registry.Args{Corners: []int{int(c.ID())}}))
			}
		}

	case engine.BuildCity:
		for _, c := range board.Corners() {
			if turn.CanBuildCity(p, c).OK() {
				out = append(out, move(registry.Args{Corners: []int{int(c.ID())}}))
			}
		}

	case engine.BuildRoad:
		for _, e := range roadCandidates(g, func(from, to *engine.Corner) bool {
			return turn.CanBuildRoad(p, from, to).OK()
		}) {
			out = append(out, move(registry.Args{Corners: []int{int(e[0].ID()), int(e[1].ID())}}))
		}

	case engine.PlayDevelopmentCard:
		for _, card := range p.PlayableCards(g) {
			for _, args := range cardMoves(g, p, card, rng) {
				out = append(out, move(args))
			}
		}

	case engine.Discard:
		if nt, ok := turn.(*engine.NormalTurn); ok {
			if n := nt.PendingDiscard(p.ID()); n > 0 {
				b := randomSubset(rng, p.Resources(), n)
				if turn.CanDiscard(p, b).OK() {
					out = append(out, move(registry.Args{Resources: b}))
				}
			}
		}

	case engine.Exchange:
		for _, other := range g.Players() {
			if other == p {
				continue
			}
			for _, give := range p.Resources().Kinds() {
				for _, take := range other.Resources().Kinds() {
					given, taken := resource.Of(give, 1), resource.Of(take, 1)
					if give != take && turn.CanExchange(p, other, given, taken).OK() {
						out = append(out, move(registry.Args{Player: intp(int(other.ID())), Resources: given, Taken: taken}))
					}
				}
			}
		}

	case engine.Trade:
		for _, given := range resource.Kinds() {
			for _, taken := range resource.Kinds() {
				if turn.CanTrade(p, taken, given).OK() {
					out = append(out, move(registry.Args{Resource: kindp(taken), Given: kindp(given)}))
				}
			}
		}

	case engine.MoveThief:
		forEachThiefMove(g, p, func(t *engine.Tile, victim *engine.Player) bool {
			return turn.CanMoveThief(p, t, victim).OK()
		}, func(args registry.Args) {
			out = append(out, move(args))
		})
	}
	return out
}

// roadCandidates returns every edge, once, that ok accepts in either direction.
func roadCandidates(g *engine.Game, ok func(from, to *engine.Corner) bool) [][2]*engine.Corner {
	board := g.Board()
	var out [][2]*engine.Corner
	for _, c := range board.Corners() {
		for _, id := range c.AdjacentCorners() {
			if id < c.ID() {
				continue
			}
			other, err := board.Corner(id)
			if err != nil {
				continue
			}
			switch {
			case ok(c, other):
				out = append(out, [2]*engine.Corner{c, other})
			case ok(other, c):
				out = append(out, [2]*engine.Corner{other, c})
			}
		}
	}
	return out
}

func forEachThiefMove(g *engine.Game, p *engine.Player, ok func(*engine.Tile, *engine.Player) bool, emit func(registry.Args)) {
	for _, t := range g.Board().Tiles() {
		victims := []*engine.Player{nil}
		for _, id := range g.Board().StealableAround(t, p.ID(), g.Players()) {
			if v, err := g.Player(id); err == nil {
				victims = append(victims, v)
			}
		}
		for _, v := range victims {
			if !ok(t, v) {
				continue
			}
			args := registry.Args{Tile: intp(int(t.ID()))}
			if v != nil {
				args.Player = intp(int(v.ID()))
			}
			emit(args)
		}
	}
}

// maxRoadBuildingMoves bounds the pairs of roads tried for one card.
const maxRoadBuildingMoves = 12

func cardMoves(g *engine.Game, p *engine.Player, card *engine.Card, rng *rand.Rand) []registry.Args {
	turn := g.Turn()
	base := registry.Args{Card: intp(int(card.ID()))}
	with := func(f func(*registry.Args)) registry.Args {
		args := base
		f(&args)
		return args
	}

	canPlay := func(args engine.PlayArgs) bool {
		return turn.CanPlayDevelopmentCard(p, card, args).OK()
	}

	var out []registry.Args
	switch card.Kind() {
	case engine.Knight:
		forEachThiefMove(g, p, func(t *engine.Tile, victim *engine.Player) bool {
			return canPlay(engine.KnightArgs{Tile: t, StealFrom: victim})
		}, func(args registry.Args) {
			args.Card = base.Card
			out = append(out, args)
		})

	case engine.Monopoly:
		for _, k := range resource.Kinds() {
			if canPlay(engine.MonopolyArgs{Resource: k}) {
				out = append(out, with(func(a *registry.Args) { a.Resource = kindp(k) }))
			}
		}

	case engine.YearOfPlenty:
		kinds := resource.Kinds()
		first, second := kinds[rng.Intn(len(kinds))], kinds[rng.Intn(len(kinds))]
		if canPlay(engine.YearOfPlentyArgs{First: first, Second: second}) {
			out = append(out, with(func(a *registry.Args) { a.Choices = []resource.Kind{first, second} }))
		}

	case engine.RoadBuilding:
		firsts := roadCandidates(g, func(from, to *engine.Corner) bool {
			return g.Board().CanBuildRoad(p.ID(), from, to).OK()
		})
		rng.Shuffle(len(firsts), func(i, j int) { firsts[i], firsts[j] = firsts[j], firsts[i] })
		for _, first := range firsts {
			seconds := roadCandidates(g, func(from, to *engine.Corner) bool {
				return canPlay(engine.RoadBuildingArgs{First: first, Second: [2]*engine.Corner{from, to}})
			})
			for _, second := range seconds {
				ids := []int{int(first[0].ID()), int(first[1].ID()), int(second[0].ID()), int(second[1].ID())}
				out = append(out, with(func(a *registry.Args) { a.Corners = ids }))
				if len(out) >= maxRoadBuildingMoves {
					return out
				}
			}
		}
	}
	return out
}

// randomSubset picks n units of b at random.
func randomSubset(rng *rand.Rand, b resource.Bundle, n int) resource.Bundle {
	var out resource.Bundle
	left := b
	for i := 0; i < n && !left.IsEmpty(); i++ {
		k, _ := left.Unit(rng.Intn(left.Total()))
		_ = left.Subtract(k, 1)
		out.Add(k, 1)
	}
	return out
}

// choose picks a move, preferring mandatory discards and keeping pass rare
// enough that players build between turns.
func choose(rng *rand.Rand, moves []Move) Move {
	byAction := make(map[engine.Action][]Move)
	for _, m := range moves {
		byAction[m.Action] = append(byAction[m.Action], m)
	}
	if discards := byAction[engine.Discard]; len(discards) > 0 {
		return discards[rng.Intn(len(discards))]
	}

	var kinds []engine.Action
	for _, a := range engine.Actions() {
		if len(byAction[a]) > 0 && a != engine.Pass {
			kinds = append(kinds, a)
		}
	}
	passes := byAction[engine.Pass]
	if len(passes) > 0 && (len(kinds) == 0 || rng.Intn(4) == 0) {
		return passes[0]
	}
	if len(kinds) == 0 {
		return moves[rng.Intn(len(moves))]
	}
	picked := byAction[kinds[rng.Intn(len(kinds))]]
	return picked[rng.Intn(len(picked))]
}
