package engine

import (
	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/resource"
)

// Building costs.
var (
	RoadCost       = resource.FromMap(map[resource.Kind]int{resource.Brick: 1, resource.Lumber: 1})
	SettlementCost = resource.FromMap(map[resource.Kind]int{resource.Brick: 1, resource.Grain: 1, resource.Lumber: 1, resource.Wool: 1})
	CityCost       = resource.FromMap(map[resource.Kind]int{resource.Grain: 2, resource.Ore: 3})
	CardCost       = resource.FromMap(map[resource.Kind]int{resource.Grain: 1, resource.Ore: 1, resource.Wool: 1})
)

// Construction is the closed set of corner buildings: Settlement or City.
type Construction interface {
	Owner() PlayerID
	Corner() CornerID
	VictoryPoints() int
	// Yield is the number of units collected per producing adjacent tile.
	Yield() int
	isConstruction()
}

// Settlement is worth one point and yields one unit.
type Settlement struct {
	owner  PlayerID
	corner CornerID
}

func (s Settlement) Owner() PlayerID    { return s.owner }
func (s Settlement) Corner() CornerID   { return s.corner }
func (s Settlement) VictoryPoints() int { return 1 }
func (s Settlement) Yield() int         { return 1 }
func (Settlement) isConstruction()      {}

// City replaces a settlement; it is worth two points and yields two units.
type City struct {
	owner  PlayerID
	corner CornerID
}

func (c City) Owner() PlayerID    { return c.owner }
func (c City) Corner() CornerID   { return c.corner }
func (c City) VictoryPoints() int { return 2 }
func (c City) Yield() int         { return 2 }
func (City) isConstruction()      {}

// Road occupies one edge and belongs to one player.
type Road struct {
	id    RoadID
	owner PlayerID
	edge  Edge
}

// ID returns the road id.
func (r Road) ID() RoadID { return r.id }

// Owner returns the owning player.
func (r Road) Owner() PlayerID { return r.owner }

// Edge returns the two endpoints.
func (r Road) Edge() Edge { return r.edge }

// OtherEnd returns the endpoint opposite to c.
func (r Road) OtherEnd(c CornerID) (CornerID, error) {
	switch c {
	case r.edge[0]:
		return r.edge[1], nil
	case r.edge[1]:
		return r.edge[0], nil
	}
	return 0, check.Integrity(check.CornerDoesntBelongToRoad, "corner %d is not an end of road %d (%s)", c, r.id, r.edge)
}
