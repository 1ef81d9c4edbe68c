package engine

import (
	"math/rand"

	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/resource"
	"github.com/vovakirdan/hexsettle/internal/topology"
)

// Board owns the tile, corner and road arenas. Graph nodes refer to each
// other by id only; the ids are assigned here while the arenas are built.
type Board struct {
	tiles   []*Tile
	corners []*Corner
	roads   []Road
	thief   Thief
}

// NewBoard generates the topology for layers rings and deals the standard
// terrain, numbers and ports using rng.
func NewBoard(rng *rand.Rand, layers int) (*Board, error) {
	layout, err := topology.Generate(layers)
	if err != nil {
		return nil, err
	}

	b := &Board{
		tiles:   make([]*Tile, len(layout.Tiles)),
		corners: make([]*Corner, len(layout.Corners)),
	}

	for i, lc := range layout.Corners {
		c := &Corner{id: CornerID(i)}
		for _, adj := range lc.Adjacent {
			c.links = append(c.links, Link{To: CornerID(adj), Road: NoRoad})
		}
		for _, t := range lc.Tiles {
			c.tiles = append(c.tiles, TileID(t))
		}
		b.corners[i] = c
	}

	terrain := make([]Terrain, len(standardTerrain))
	copy(terrain, standardTerrain)
	rng.Shuffle(len(terrain), func(i, j int) { terrain[i], terrain[j] = terrain[j], terrain[i] })

	desert := -1
	next := 0
	for i, lt := range layout.Tiles {
		t := &Tile{id: TileID(i)}
		for _, c := range lt.Corners {
			t.corners = append(t.corners, CornerID(c))
		}
		switch kind := terrain[i].(type) {
		case Desert:
			t.terrain = kind
			desert = i
		case Producing:
			kind.Number = standardNumbers[next]
			next++
			t.terrain = kind
		}
		b.tiles[i] = t
	}
	if desert < 0 {
		return nil, check.Integrity(check.NoDesertTile, "generated board has no desert")
	}
	b.thief = Thief{tile: TileID(desert)}

	ports := make([]Port, len(standardPorts))
	copy(ports, standardPorts)
	rng.Shuffle(len(ports), func(i, j int) { ports[i], ports[j] = ports[j], ports[i] })
	for i, slot := range standardPortSlots {
		port := ports[i]
		for _, c := range slot {
			b.corners[c].port = &port
		}
	}

	return b, nil
}

// Tile returns the tile with the given id.
func (b *Board) Tile(id TileID) (*Tile, error) {
	if id < 0 || int(id) >= len(b.tiles) {
		return nil, check.Integrity(check.InvalidTileID, "tile %d out of range [0,%d)", id, len(b.tiles))
	}
	return b.tiles[id], nil
}

// Corner returns the corner with the given id.
func (b *Board) Corner(id CornerID) (*Corner, error) {
	if id < 0 || int(id) >= len(b.corners) {
		return nil, check.Integrity(check.InvalidCornerID, "corner %d out of range [0,%d)", id, len(b.corners))
	}
	return b.corners[id], nil
}

// Tiles returns every tile in id order.
func (b *Board) Tiles() []*Tile {
	out := make([]*Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}

// Corners returns every corner in id order.
func (b *Board) Corners() []*Corner {
	out := make([]*Corner, len(b.corners))
	copy(out, b.corners)
	return out
}

// Roads returns every built road in build order.
func (b *Board) Roads() []Road {
	out := make([]Road, len(b.roads))
	copy(out, b.roads)
	return out
}

// Road returns the road with the given id.
func (b *Board) Road(id RoadID) (Road, bool) {
	if id < 0 || int(id) >= len(b.roads) {
		return Road{}, false
	}
	return b.roads[id], true
}

// RoadBetween returns the road on the edge a-c, if any.
func (b *Board) RoadBetween(a, c CornerID) (Road, bool) {
	if a < 0 || int(a) >= len(b.corners) {
		return Road{}, false
	}
	l := b.corners[a].link(c)
	if l == nil || l.Road == NoRoad {
		return Road{}, false
	}
	return b.roads[l.Road], true
}

// ThiefTile returns the tile the thief stands on.
func (b *Board) ThiefTile() TileID {
	return b.thief.Tile()
}

// IsConnectedTo reports whether p can extend its network from c: c holds
// p's construction or touches one of p's roads. An opponent's building on
// c does not cut the connection.
func (b *Board) IsConnectedTo(p PlayerID, c *Corner) bool {
	return b.connected(p, c, nil)
}

func (b *Board) connected(p PlayerID, c *Corner, pending []Edge) bool {
	if c.construction != nil && c.construction.Owner() == p {
		return true
	}
	for _, l := range c.links {
		if l.Road != NoRoad && b.roads[l.Road].owner == p {
			return true
		}
	}
	for _, e := range pending {
		if e.Touches(c.id) {
			return true
		}
	}
	return false
}

// CanBuildRoad checks the board-side legality of a road between a and c.
func (b *Board) CanBuildRoad(p PlayerID, a, c *Corner) check.Result {
	return b.canBuildRoad(p, a, c, nil)
}

// canBuildRoad treats pending edges as roads of p that are already built.
func (b *Board) canBuildRoad(p PlayerID, a, c *Corner, pending []Edge) check.Result {
	return check.New().
		Require(func() bool { return a.IsAdjacentTo(c.id) }, check.CornersNotAdjacent).
		Require(func() bool {
			if a.link(c.id).Road != NoRoad {
				return false
			}
			edge := NewEdge(a.id, c.id)
			for _, e := range pending {
				if e == edge {
					return false
				}
			}
			return true
		}, check.EdgeOccupied).
		Require(func() bool { return b.connected(p, a, pending) || b.connected(p, c, pending) }, check.DisconnectedEdge).
		Run()
}

// BuildRoad places a road for p between a and c.
func (b *Board) BuildRoad(p PlayerID, a, c *Corner) (Road, error) {
	if err := b.CanBuildRoad(p, a, c).Err(); err != nil {
		return Road{}, err
	}
	road := Road{id: RoadID(len(b.roads)), owner: p, edge: NewEdge(a.id, c.id)}
	b.roads = append(b.roads, road)
	a.link(c.id).Road = road.id
	c.link(a.id).Road = road.id
	return road, nil
}

// CanBuildSettlement checks the distance rule and, when requireConnection
// is set, that c touches one of p's roads.
func (b *Board) CanBuildSettlement(p PlayerID, c *Corner, requireConnection bool) check.Result {
	return check.New().
		Require(func() bool { return !c.IsOccupied() }, check.CornerOccupied).
		Require(func() bool {
			for _, l := range c.links {
				if b.corners[l.To].IsOccupied() {
					return false
				}
			}
			return true
		}, check.CornerAdjacentToOccupiedCorner).
		Require(func() bool { return !requireConnection || b.IsConnectedTo(p, c) }, check.DisconnectedCorner).
		Run()
}

// BuildSettlement places a settlement of p on c.
func (b *Board) BuildSettlement(p PlayerID, c *Corner, requireConnection bool) (Settlement, error) {
	if err := b.CanBuildSettlement(p, c, requireConnection).Err(); err != nil {
		return Settlement{}, err
	}
	s := Settlement{owner: p, corner: c.id}
	c.construction = s
	return s, nil
}

// CanBuildCity checks that c holds a settlement of p.
func (b *Board) CanBuildCity(p PlayerID, c *Corner) check.Result {
	return check.New().
		Require(func() bool { return c.HasSettlementOf(p) }, check.CornerWithoutSettlement).
		Run()
}

// BuildCity upgrades p's settlement on c in place.
func (b *Board) BuildCity(p PlayerID, c *Corner) (City, error) {
	if err := b.CanBuildCity(p, c).Err(); err != nil {
		return City{}, err
	}
	city := City{owner: p, corner: c.id}
	c.construction = city
	return city, nil
}

// hasConstructionOf reports whether p owns a building on a corner of t.
func (b *Board) hasConstructionOf(p PlayerID, t *Tile) bool {
	for _, id := range t.corners {
		if con := b.corners[id].construction; con != nil && con.Owner() == p {
			return true
		}
	}
	return false
}

// StealableAround lists the players other than thief that own a building
// on t and hold at least one resource.
func (b *Board) StealableAround(t *Tile, thief PlayerID, players []*Player) []PlayerID {
	var out []PlayerID
	for _, p := range players {
		if p.id == thief || p.resources.Total() == 0 {
			continue
		}
		if b.hasConstructionOf(p.id, t) {
			out = append(out, p.id)
		}
	}
	return out
}

// CanMoveThief checks moving the thief to t and, when target is set,
// stealing from target. Omitting the target is only allowed when nobody
// around t can be stolen from.
func (b *Board) CanMoveThief(thief *Player, t *Tile, target *Player, players []*Player) check.Result {
	return check.New().
		Require(func() bool { return t.id != b.thief.tile }, check.ThiefSameTile).
		Then(func() check.Result {
			if target == nil {
				if len(b.StealableAround(t, thief.id, players)) > 0 {
					return check.Fail(check.StealTargetRequired)
				}
				return check.Pass
			}
			return check.New().
				Require(func() bool { return target.id != thief.id }, check.CannotStealFromSelf).
				Require(func() bool { return b.hasConstructionOf(target.id, t) }, check.StealTargetNotAdjacent).
				Require(func() bool { return target.resources.Total() > 0 }, check.StealTargetNoResources).
				Run()
		}).
		Run()
}

// MoveThief moves the thief to t and steals one random unit from target.
// It returns what was stolen.
func (b *Board) MoveThief(rng *rand.Rand, thief *Player, t *Tile, target *Player, players []*Player) (resource.Bundle, error) {
	if err := b.CanMoveThief(thief, t, target, players).Err(); err != nil {
		return resource.Bundle{}, err
	}
	b.thief.moveTo(t.id)
	if target == nil {
		return resource.Bundle{}, nil
	}
	return steal(rng, target, thief)
}

// CollectibleFor returns what p's buildings yield for a dice sum. Tiles
// under the thief yield nothing.
func (b *Board) CollectibleFor(p PlayerID, number int) resource.Bundle {
	var out resource.Bundle
	for _, t := range b.tiles {
		if t.id == b.thief.tile {
			continue
		}
		k, ok := t.Produces(number)
		if !ok {
			continue
		}
		for _, id := range t.corners {
			if con := b.corners[id].construction; con != nil && con.Owner() == p {
				out.Add(k, con.Yield())
			}
		}
	}
	return out
}

// AdjacentResources returns one unit of every resource produced by the
// tiles around c.
func (b *Board) AdjacentResources(c *Corner) resource.Bundle {
	var out resource.Bundle
	for _, id := range c.tiles {
		if p, ok := b.tiles[id].terrain.(Producing); ok {
			out.Add(p.Resource, 1)
		}
	}
	return out
}
