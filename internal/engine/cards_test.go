package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/resource"
)

func TestStandardDeck(t *testing.T) {
	g := newTestGame(t, 20)
	assert.Equal(t, 25, g.DeckSize())

	kinds := map[CardKind]int{}
	titles := map[string]bool{}
	for i, c := range g.Cards() {
		assert.Equal(t, CardID(i), c.ID())
		kinds[c.Kind()]++
		if c.Kind() == VictoryPoint {
			titles[c.Title()] = true
		}
	}
	assert.Equal(t, map[CardKind]int{Knight: 14, RoadBuilding: 2, YearOfPlenty: 2, Monopoly: 2, VictoryPoint: 5}, kinds)
	assert.Len(t, titles, 5)

	_, err := g.Card(25)
	assert.ErrorIs(t, err, &check.IntegrityError{Reason: check.InvalidDevelopmentCardID})
}

// stackDeck moves a card of kind to the top of the deck.
func stackDeck(t *testing.T, g *Game, kind CardKind) {
	t.Helper()
	for i, c := range g.deck {
		if c.kind == kind {
			last := len(g.deck) - 1
			g.deck[i], g.deck[last] = g.deck[last], g.deck[i]
			return
		}
	}
	t.Fatalf("no %s left in the deck", kind)
}

// passUntil passes at least one turn and stops when p is to play.
func passUntil(t *testing.T, g *Game, p *Player) {
	t.Helper()
	for {
		turn := g.Turn().(*NormalTurn)
		turn.applyRoll(Dice{First: 1, Second: 1})
		require.NoError(t, turn.Pass(turn.Player()))
		if g.Turn().Player() == p {
			return
		}
	}
}

func TestCardPlayableFromNextTurn(t *testing.T) {
	g := newTestGame(t, 21)
	turn := normalTurn(t, g)
	p0 := g.players[0]
	turn.applyRoll(Dice{First: 1, Second: 1})

	stackDeck(t, g, YearOfPlenty)
	p0.resources = CardCost
	card, err := turn.BuyDevelopmentCard(p0)
	require.NoError(t, err)
	assert.Equal(t, YearOfPlenty, card.Kind())
	assert.Equal(t, 24, g.DeckSize())
	assert.True(t, p0.resources.IsEmpty())

	args := YearOfPlentyArgs{First: resource.Ore, Second: resource.Grain}
	assert.Equal(t, check.CardDrawnThisTurn, card.CanBePlayed(g, p0, args).Reason)
	assert.Equal(t, check.NoPlayableCard, turn.Allows(p0, PlayDevelopmentCard).Reason)

	require.NoError(t, turn.Pass(p0))
	assert.True(t, card.CanBePlayed(g, p0, args).OK(), "playable from the very next turn")

	passUntil(t, g, p0)
	turn = g.Turn().(*NormalTurn)
	require.Equal(t, p0, turn.Player())
	turn.applyRoll(Dice{First: 1, Second: 1})

	assert.True(t, turn.Allows(p0, PlayDevelopmentCard).OK())
	assert.Equal(t, check.UndefinedDevelopmentCardArguments, turn.CanPlayDevelopmentCard(p0, card, MonopolyArgs{Resource: resource.Ore}).Reason)
	require.NoError(t, turn.PlayDevelopmentCard(p0, card, args))
	assert.Equal(t, bundle(resource.Ore, 1, resource.Grain, 1), p0.resources)
	assert.True(t, card.Played())
	assert.Equal(t, g.TurnNumber(), card.PlayedOn())
	assert.Equal(t, args, card.Args())

	assert.Equal(t, check.CardAlreadyPlayedThisTurn, turn.CanPlayDevelopmentCard(p0, card, args).Reason)
}

func TestCardBaseChecks(t *testing.T) {
	g := newTestGame(t, 22)
	normalTurn(t, g)
	p0, p1 := g.players[0], g.players[1]

	var vp, mono *Card
	for _, c := range g.cards {
		switch {
		case c.kind == VictoryPoint && vp == nil:
			vp = c
		case c.kind == Monopoly && mono == nil:
			mono = c
		}
	}
	require.NotNil(t, vp)
	require.NotNil(t, mono)

	assert.Equal(t, check.CardNotOwnedByPlayer, mono.Playable(g, p0).Reason)

	for _, c := range []*Card{vp, mono} {
		c.holder = p0
		c.drawnOn = 1
		p0.cards = append(p0.cards, c)
	}
	assert.Equal(t, check.CardNotOwnedByPlayer, mono.Playable(g, p1).Reason)
	assert.Equal(t, check.VictoryPointCardIsNotPlayable, vp.Playable(g, p0).Reason)
	assert.Equal(t, 1, p0.HiddenVictoryPoints())
	assert.Equal(t, []*Card{mono}, p0.PlayableCards(g))

	assert.Equal(t, check.UndefinedDevelopmentCardArguments, mono.CanBePlayed(g, p0, nil).Reason)
	assert.Equal(t, check.UndefinedDevelopmentCardArguments, mono.CanBePlayed(g, p0, MonopolyArgs{Resource: resource.Kind(9)}).Reason)
}

func TestMonopoly(t *testing.T) {
	g := newTestGame(t, 23)
	turn := normalTurn(t, g)
	turn.applyRoll(Dice{First: 1, Second: 1})
	p0 := g.players[0]
	for _, p := range g.players {
		p.resources = bundle(resource.Wool, 2, resource.Brick, 1)
	}

	var card *Card
	for _, c := range g.cards {
		if c.kind == Monopoly {
			card = c
			break
		}
	}
	card.holder, card.drawnOn = p0, 1
	p0.cards = append(p0.cards, card)

	require.NoError(t, turn.PlayDevelopmentCard(p0, card, MonopolyArgs{Resource: resource.Wool}))
	assert.Equal(t, bundle(resource.Wool, 8, resource.Brick, 1), p0.resources)
	for _, p := range g.players[1:] {
		assert.Equal(t, bundle(resource.Brick, 1), p.resources)
	}
}

func TestRoadBuildingValidatesBothRoads(t *testing.T) {
	g := newTestGame(t, 24)
	turn := normalTurn(t, g)
	turn.applyRoll(Dice{First: 1, Second: 1})
	p0 := g.players[0]
	p0.resources = resource.Bundle{}

	var card *Card
	for _, c := range g.cards {
		if c.kind == RoadBuilding {
			card = c
			break
		}
	}
	card.holder, card.drawnOn = p0, 1
	p0.cards = append(p0.cards, card)

	// Extend from the settlement away from the existing road: a, b, c.
	home := mustCorner(t, g.board, p0.Constructions()[0].Corner())
	var a, b, c *Corner
	for _, id := range home.AdjacentCorners() {
		candidate := mustCorner(t, g.board, id)
		if !g.board.CanBuildRoad(p0.ID(), home, candidate).OK() {
			continue
		}
		for _, next := range candidate.AdjacentCorners() {
			if next == home.ID() {
				continue
			}
			far := mustCorner(t, g.board, next)
			if _, taken := g.board.RoadBetween(candidate.ID(), next); taken || far.IsOccupied() {
				continue
			}
			if g.board.IsConnectedTo(p0.ID(), candidate) || g.board.IsConnectedTo(p0.ID(), far) {
				continue
			}
			a, b, c = home, candidate, far
			break
		}
		if a != nil {
			break
		}
	}
	require.NotNil(t, a)

	// The second road only connects through the first one.
	assert.Equal(t, check.DisconnectedEdge, g.board.CanBuildRoad(p0.ID(), b, c).Reason)
	args := RoadBuildingArgs{First: [2]*Corner{a, b}, Second: [2]*Corner{b, c}}
	require.True(t, turn.CanPlayDevelopmentCard(p0, card, args).OK())

	// Both roads on the same edge is rejected before anything is built.
	dup := RoadBuildingArgs{First: [2]*Corner{a, b}, Second: [2]*Corner{b, a}}
	roads := len(g.board.Roads())
	assert.ErrorIs(t, turn.PlayDevelopmentCard(p0, card, dup), check.ErrorFor(check.EdgeOccupied))
	assert.Len(t, g.board.Roads(), roads)

	require.NoError(t, turn.PlayDevelopmentCard(p0, card, args))
	assert.Len(t, g.board.Roads(), roads+2)
	assert.Len(t, p0.Roads(), 4)
	assert.True(t, p0.resources.IsEmpty(), "free roads")
}

func TestKnightMovesThiefAndCountsArmy(t *testing.T) {
	g := newTestGame(t, 25)
	turn := normalTurn(t, g)
	turn.applyRoll(Dice{First: 1, Second: 1})
	p0 := g.players[0]

	var knights []*Card
	for _, c := range g.cards {
		if c.kind == Knight && len(knights) < 3 {
			c.holder, c.drawnOn = p0, 1
			p0.cards = append(p0.cards, c)
			knights = append(knights, c)
		}
	}

	var tile *Tile
	var target *Player
	for _, candidate := range g.board.Tiles() {
		if candidate.ID() == g.board.ThiefTile() {
			continue
		}
		tile = candidate
		if around := g.board.StealableAround(candidate, p0.ID(), g.players); len(around) > 0 {
			target = g.players[around[0]]
		}
		break
	}

	assert.Equal(t, check.UndefinedDevelopmentCardArguments, turn.CanPlayDevelopmentCard(p0, knights[0], KnightArgs{}).Reason)
	require.NoError(t, turn.PlayDevelopmentCard(p0, knights[0], KnightArgs{Tile: tile, StealFrom: target}))
	assert.Equal(t, tile.ID(), g.board.ThiefTile())
	assert.Equal(t, 1, p0.KnightsPlayed())

	// Two more knights over the next turns award the army token.
	for _, k := range knights[1:] {
		passUntil(t, g, p0)
		turn = g.Turn().(*NormalTurn)
		turn.applyRoll(Dice{First: 1, Second: 1})
		var dest *Tile
		var victim *Player
		for _, candidate := range g.board.Tiles() {
			if candidate.ID() == g.board.ThiefTile() {
				continue
			}
			dest = candidate
			if around := g.board.StealableAround(candidate, p0.ID(), g.players); len(around) > 0 {
				victim = g.players[around[0]]
			}
			break
		}
		require.NoError(t, turn.PlayDevelopmentCard(p0, k, KnightArgs{Tile: dest, StealFrom: victim}))
	}
	assert.Equal(t, 3, p0.KnightsPlayed())
	holder, ok := g.Token(LargestArmy).Holder()
	require.True(t, ok)
	assert.Equal(t, p0.ID(), holder)
}

func TestEmptyDeck(t *testing.T) {
	g := newTestGame(t, 26)
	turn := normalTurn(t, g)
	turn.applyRoll(Dice{First: 1, Second: 1})
	p0 := g.players[0]

	g.deck = nil
	p0.resources = CardCost
	assert.Equal(t, check.EmptyDeck, turn.CanBuyDevelopmentCard(p0).Reason)
	_, err := turn.BuyDevelopmentCard(p0)
	assert.ErrorIs(t, err, check.ErrorFor(check.EmptyDeck))
	assert.Equal(t, CardCost, p0.resources)
}
