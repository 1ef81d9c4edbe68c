package engine

import (
	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/resource"
)

// Player holds one seat's hand and everything it has built.
type Player struct {
	id            PlayerID
	name          string
	resources     resource.Bundle
	constructions []Construction
	roads         []RoadID
	ports         []Port
	cards         []*Card
	tokens        []*Token
	knights       int
}

func newPlayer(id PlayerID, name string) *Player {
	return &Player{id: id, name: name}
}

// ID returns the seat id.
func (p *Player) ID() PlayerID { return p.id }

// Name returns the display name.
func (p *Player) Name() string { return p.name }

// Resources returns a copy of the player's hand.
func (p *Player) Resources() resource.Bundle { return p.resources }

// Constructions returns the player's settlements and cities.
func (p *Player) Constructions() []Construction {
	out := make([]Construction, len(p.constructions))
	copy(out, p.constructions)
	return out
}

// Roads returns the ids of the player's roads in build order.
func (p *Player) Roads() []RoadID {
	out := make([]RoadID, len(p.roads))
	copy(out, p.roads)
	return out
}

// Ports returns the ports the player controls.
func (p *Player) Ports() []Port {
	out := make([]Port, len(p.ports))
	copy(out, p.ports)
	return out
}

// Cards returns the development cards the player holds, played or not.
func (p *Player) Cards() []*Card {
	out := make([]*Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// Tokens returns the achievement tokens the player holds.
func (p *Player) Tokens() []*Token {
	out := make([]*Token, len(p.tokens))
	copy(out, p.tokens)
	return out
}

// KnightsPlayed returns the number of knight cards played.
func (p *Player) KnightsPlayed() int { return p.knights }

// ExchangeRate returns how many units of k the bank wants for one unit.
func (p *Player) ExchangeRate(k resource.Kind) int {
	rate := BankRate
	for _, port := range p.ports {
		if port.Accepts(k) && port.Rate < rate {
			rate = port.Rate
		}
	}
	return rate
}

// ExchangeRates returns the bank rate for every resource kind.
func (p *Player) ExchangeRates() map[resource.Kind]int {
	rates := make(map[resource.Kind]int, resource.NumKinds)
	for _, k := range resource.Kinds() {
		rates[k] = p.ExchangeRate(k)
	}
	return rates
}

// VisibleVictoryPoints counts buildings and achievement tokens.
func (p *Player) VisibleVictoryPoints() int {
	points := 0
	for _, c := range p.constructions {
		points += c.VictoryPoints()
	}
	return points + len(p.tokens)*TokenVictoryPoints
}

// HiddenVictoryPoints counts victory point cards.
func (p *Player) HiddenVictoryPoints() int {
	points := 0
	for _, c := range p.cards {
		points += c.VictoryPoints()
	}
	return points
}

// VictoryPoints is the total score, visible and hidden.
func (p *Player) VictoryPoints() int {
	return p.VisibleVictoryPoints() + p.HiddenVictoryPoints()
}

func (p *Player) receive(b resource.Bundle) {
	p.resources.AddAll(b)
}

func (p *Player) giveAway(b resource.Bundle) error {
	if err := p.resources.SubtractAll(b); err != nil {
		return check.ErrorFor(check.NotEnoughResources)
	}
	return nil
}

func (p *Player) canAfford(cost resource.Bundle, free bool) check.Check {
	return func() check.Result {
		if free || p.resources.HasAll(cost) {
			return check.Pass
		}
		return check.Fail(check.NotEnoughResources)
	}
}

// CanBuildRoad checks resources, then the board when both corners are given.
func (p *Player) CanBuildRoad(b *Board, a, c *Corner, free bool) check.Result {
	return check.New().
		Then(p.canAfford(RoadCost, free)).
		Then(func() check.Result {
			if a == nil || c == nil {
				return check.Pass
			}
			return b.CanBuildRoad(p.id, a, c)
		}).
		Run()
}

func (p *Player) buildRoad(b *Board, a, c *Corner, free bool) (Road, error) {
	if err := p.CanBuildRoad(b, a, c, free).Err(); err != nil {
		return Road{}, err
	}
	road, err := b.BuildRoad(p.id, a, c)
	if err != nil {
		return Road{}, err
	}
	p.roads = append(p.roads, road.id)
	if !free {
		if err := p.pay(RoadCost); err != nil {
			return Road{}, err
		}
	}
	return road, nil
}

// CanBuildSettlement checks resources, then the board when c is given.
func (p *Player) CanBuildSettlement(b *Board, c *Corner, free, requireConnection bool) check.Result {
	return check.New().
		Then(p.canAfford(SettlementCost, free)).
		Then(func() check.Result {
			if c == nil {
				return check.Pass
			}
			return b.CanBuildSettlement(p.id, c, requireConnection)
		}).
		Run()
}

func (p *Player) buildSettlement(b *Board, c *Corner, free, requireConnection bool) error {
	if err := p.CanBuildSettlement(b, c, free, requireConnection).Err(); err != nil {
		return err
	}
	s, err := b.BuildSettlement(p.id, c, requireConnection)
	if err != nil {
		return err
	}
	p.constructions = append(p.constructions, s)
	if port, ok := c.Port(); ok {
		p.ports = append(p.ports, port)
	}
	if !free {
		return p.pay(SettlementCost)
	}
	return nil
}

// CanBuildCity checks resources, then the board when c is given.
func (p *Player) CanBuildCity(b *Board, c *Corner) check.Result {
	return check.New().
		Then(p.canAfford(CityCost, false)).
		Then(func() check.Result {
			if c == nil {
				return check.Pass
			}
			return b.CanBuildCity(p.id, c)
		}).
		Run()
}

func (p *Player) buildCity(b *Board, c *Corner) error {
	if err := p.CanBuildCity(b, c).Err(); err != nil {
		return err
	}
	idx := -1
	for i, con := range p.constructions {
		if con.Corner() == c.id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return check.Integrity(check.PreconditionViolated, "player %d has no construction record for corner %d", p.id, c.id)
	}
	city, err := b.BuildCity(p.id, c)
	if err != nil {
		return err
	}
	p.constructions[idx] = city
	return p.pay(CityCost)
}

// CanBuyDevelopmentCard checks resources, then the deck.
func (p *Player) CanBuyDevelopmentCard(g *Game) check.Result {
	return check.New().
		Then(p.canAfford(CardCost, false)).
		Then(g.CanDrawDevelopmentCard).
		Run()
}

func (p *Player) buyDevelopmentCard(g *Game) (*Card, error) {
	if err := p.CanBuyDevelopmentCard(g).Err(); err != nil {
		return nil, err
	}
	card, err := g.drawDevelopmentCard(p)
	if err != nil {
		return nil, err
	}
	if err := p.pay(CardCost); err != nil {
		return nil, err
	}
	return card, nil
}

// PlayableCards returns the held cards that pass the base play checks.
func (p *Player) PlayableCards(g *Game) []*Card {
	var out []*Card
	for _, c := range p.cards {
		if c.Playable(g, p).OK() {
			out = append(out, c)
		}
	}
	return out
}

// CanExchange checks a player-to-player swap: p gives given to other and
// receives taken.
func (p *Player) CanExchange(other *Player, given, taken resource.Bundle) check.Result {
	return check.New().
		Require(func() bool { return other != nil && other.id != p.id }, check.ExchangeWithSelf).
		Require(func() bool { return !given.IsEmpty() }, check.NoResourcesGiven).
		Require(func() bool { return !taken.IsEmpty() }, check.NoResourcesTaken).
		Require(func() bool { return p.resources.HasAll(given) }, check.NotEnoughResources).
		Require(func() bool { return other.resources.HasAll(taken) }, check.CounterpartyNotEnoughResources).
		Run()
}

func (p *Player) exchange(other *Player, given, taken resource.Bundle) error {
	if err := p.CanExchange(other, given, taken).Err(); err != nil {
		return err
	}
	if err := p.pay(given); err != nil {
		return err
	}
	if err := other.pay(taken); err != nil {
		return err
	}
	p.receive(taken)
	other.receive(given)
	return nil
}

// CanTrade checks a bank trade of ExchangeRate(given) units of given for
// one unit of taken.
func (p *Player) CanTrade(taken, given resource.Kind) check.Result {
	return check.New().
		Require(func() bool { return taken.Valid() && given.Valid() }, check.InvalidResource).
		Require(func() bool { return taken != given }, check.SameResourceTraded).
		Require(func() bool { return p.resources.Has(given, p.ExchangeRate(given)) }, check.NotEnoughResources).
		Run()
}

// canTradeAny reports whether some bank trade is affordable.
func (p *Player) canTradeAny() check.Result {
	for _, k := range resource.Kinds() {
		if p.resources.Has(k, p.ExchangeRate(k)) {
			return check.Pass
		}
	}
	return check.Fail(check.NotEnoughResources)
}

func (p *Player) trade(taken, given resource.Kind) error {
	if err := p.CanTrade(taken, given).Err(); err != nil {
		return err
	}
	if err := p.resources.Subtract(given, p.ExchangeRate(given)); err != nil {
		return check.ErrorFor(check.NotEnoughResources)
	}
	p.resources.Add(taken, 1)
	return nil
}

// pay removes cost from p's hand. Callers check affordability first, so a
// shortfall means the hand and the checks disagree.
func (p *Player) pay(cost resource.Bundle) error {
	if err := p.resources.SubtractAll(cost); err != nil {
		return check.Integrity(check.PreconditionViolated, "player %d cannot pay %s: %v", p.id, cost, err)
	}
	return nil
}

// give moves n units of k from p to other.
func (p *Player) give(other *Player, k resource.Kind, n int) error {
	if err := p.resources.Subtract(k, n); err != nil {
		return check.Integrity(check.PreconditionViolated, "player %d cannot give %d %s: %v", p.id, n, k, err)
	}
	other.resources.Add(k, n)
	return nil
}

func (p *Player) removeToken(t *Token) error {
	for i, own := range p.tokens {
		if own == t {
			p.tokens = append(p.tokens[:i], p.tokens[i+1:]...)
			return nil
		}
	}
	return check.Integrity(check.AchievementTokenNotOwnedByPlayer, "player %d does not hold %s", p.id, t.kind)
}
