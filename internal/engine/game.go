package engine

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/topology"
)

// DefaultVictoryPoints is the score that wins the game.
const DefaultVictoryPoints = 10

// Player count bounds.
const (
	MinPlayers = 3
	MaxPlayers = 4
)

// ErrPlayerCount is returned by New for fewer than 3 or more than 4 players.
var ErrPlayerCount = errors.New("engine: a game needs 3 or 4 players")

// Options configures a new game. Zero values select the standard rules.
type Options struct {
	// Players are display names in seat order. Empty means four default names.
	Players       []string
	AutoCollect   bool
	VictoryPoints int
	Layers        int
	Seed          int64
}

// DefaultPlayerNames returns "Player 1" .. "Player n".
func DefaultPlayerNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Player %d", i+1)
	}
	return names
}

// Game is the authoritative state of one match.
type Game struct {
	opts       Options
	rng        *rand.Rand
	board      *Board
	players    []*Player
	cards      []*Card
	deck       []*Card
	tokens     []*Token
	turn       Turn
	turnNumber int
	winner     *Player
}

// New deals a board and deck from opts.Seed and opens the first
// placement turn for seat 0.
func New(opts Options) (*Game, error) {
	if len(opts.Players) == 0 {
		opts.Players = DefaultPlayerNames(MaxPlayers)
	}
	if len(opts.Players) < MinPlayers || len(opts.Players) > MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", ErrPlayerCount, len(opts.Players))
	}
	if opts.VictoryPoints <= 0 {
		opts.VictoryPoints = DefaultVictoryPoints
	}
	if opts.Layers == 0 {
		opts.Layers = topology.StandardLayers
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	board, err := NewBoard(rng, opts.Layers)
	if err != nil {
		return nil, err
	}

	g := &Game{opts: opts, rng: rng, board: board}
	for i, name := range opts.Players {
		g.players = append(g.players, newPlayer(PlayerID(i), name))
	}

	entries := standardDeck()
	rng.Shuffle(len(entries), func(i, j int) { entries[i], entries[j] = entries[j], entries[i] })
	for i, e := range entries {
		g.cards = append(g.cards, &Card{id: CardID(i), kind: e.kind, title: e.title})
	}
	g.deck = make([]*Card, len(g.cards))
	copy(g.deck, g.cards)

	for i, kind := range []TokenKind{LargestArmy, LongestRoute} {
		g.tokens = append(g.tokens, &Token{id: TokenID(i), kind: kind})
	}

	g.turnNumber = 1
	g.turn = newInitialTurn(g, g.turnNumber, g.players[0], 1)
	return g, nil
}

// Options returns the options the game runs with, defaults applied.
func (g *Game) Options() Options { return g.opts }

// Board returns the board.
func (g *Game) Board() *Board { return g.board }

// Players returns the players in seat order.
func (g *Game) Players() []*Player {
	out := make([]*Player, len(g.players))
	copy(out, g.players)
	return out
}

// Player returns the player seated at id.
func (g *Game) Player(id PlayerID) (*Player, error) {
	if id < 0 || int(id) >= len(g.players) {
		return nil, check.Integrity(check.InvalidPlayerID, "player %d out of range [0,%d)", id, len(g.players))
	}
	return g.players[id], nil
}

// Card returns the development card with the given id.
func (g *Game) Card(id CardID) (*Card, error) {
	if id < 0 || int(id) >= len(g.cards) {
		return nil, check.Integrity(check.InvalidDevelopmentCardID, "card %d out of range [0,%d)", id, len(g.cards))
	}
	return g.cards[id], nil
}

// Cards returns the full card set, drawn or not.
func (g *Game) Cards() []*Card {
	out := make([]*Card, len(g.cards))
	copy(out, g.cards)
	return out
}

// DeckSize returns the number of cards left to draw.
func (g *Game) DeckSize() int { return len(g.deck) }

// Tokens returns both achievement tokens.
func (g *Game) Tokens() []*Token {
	out := make([]*Token, len(g.tokens))
	copy(out, g.tokens)
	return out
}

// Token returns the achievement token of the given kind.
func (g *Game) Token(kind TokenKind) *Token {
	for _, t := range g.tokens {
		if t.kind == kind {
			return t
		}
	}
	return nil
}

// Turn returns the current turn.
func (g *Game) Turn() Turn { return g.turn }

// TurnNumber returns the 1-based number of the current turn.
func (g *Game) TurnNumber() int { return g.turnNumber }

// Winner returns the winning player once the game is over.
func (g *Game) Winner() (*Player, bool) {
	return g.winner, g.winner != nil
}

// CanDrawDevelopmentCard fails with EMPTY_DECK once the deck is exhausted.
func (g *Game) CanDrawDevelopmentCard() check.Result {
	if len(g.deck) == 0 {
		return check.Fail(check.EmptyDeck)
	}
	return check.Pass
}

func (g *Game) drawDevelopmentCard(p *Player) (*Card, error) {
	if err := g.CanDrawDevelopmentCard().Err(); err != nil {
		return nil, err
	}
	card := g.deck[len(g.deck)-1]
	g.deck = g.deck[:len(g.deck)-1]
	card.holder = p
	card.drawnOn = g.turnNumber
	p.cards = append(p.cards, card)
	return card, nil
}

func (g *Game) awardToken(kind TokenKind, p *Player) error {
	t := g.Token(kind)
	if t == nil || !t.CanBeAwardedTo(g.board, p) {
		return nil
	}
	return t.awardTo(p)
}

// awardTokensTo re-evaluates both tokens for p.
func (g *Game) awardTokensTo(p *Player) error {
	for _, t := range g.tokens {
		if err := g.awardToken(t.kind, p); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) win(p *Player) {
	if g.winner == nil {
		g.winner = p
	}
}

func (g *Game) rollDie() int {
	return g.rng.Intn(6) + 1
}

// advance opens the next turn. Once a winner is set the game stays on the
// finished turn.
func (g *Game) advance() {
	if g.winner != nil {
		return
	}
	n := len(g.players)
	var next Turn
	switch t := g.turn.(type) {
	case *InitialTurn:
		seat := int(t.player.id)
		switch {
		case t.stage == 1 && seat < n-1:
			next = newInitialTurn(g, g.turnNumber+1, g.players[seat+1], 1)
		case t.stage == 1:
			next = newInitialTurn(g, g.turnNumber+1, g.players[seat], 2)
		case seat > 0:
			next = newInitialTurn(g, g.turnNumber+1, g.players[seat-1], 2)
		default:
			next = newNormalTurn(g, g.turnNumber+1, g.players[0])
		}
	case *NormalTurn:
		next = newNormalTurn(g, g.turnNumber+1, g.players[(int(t.player.id)+1)%n])
	}
	g.turnNumber++
	g.turn = next
}
