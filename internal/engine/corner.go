package engine

// Link joins a corner to one neighbour, optionally through a road.
type Link struct {
	To   CornerID
	Road RoadID // NoRoad when the edge is free
}

// Corner is a vertex of the board where up to three tiles meet.
type Corner struct {
	id           CornerID
	links        []Link
	tiles        []TileID
	port         *Port
	construction Construction
}

// ID returns the corner id.
func (c *Corner) ID() CornerID {
	return c.id
}

// Links returns the neighbour links in adjacency order.
func (c *Corner) Links() []Link {
	out := make([]Link, len(c.links))
	copy(out, c.links)
	return out
}

// AdjacentCorners returns the neighbouring corner ids.
func (c *Corner) AdjacentCorners() []CornerID {
	out := make([]CornerID, 0, len(c.links))
	for _, l := range c.links {
		out = append(out, l.To)
	}
	return out
}

// Tiles returns the tiles touching the corner.
func (c *Corner) Tiles() []TileID {
	out := make([]TileID, len(c.tiles))
	copy(out, c.tiles)
	return out
}

// Port returns the corner's port, if it has one.
func (c *Corner) Port() (Port, bool) {
	if c.port == nil {
		return Port{}, false
	}
	return *c.port, true
}

// Construction returns the building on the corner, or nil.
func (c *Corner) Construction() Construction {
	return c.construction
}

// IsOccupied reports whether any building stands on the corner.
func (c *Corner) IsOccupied() bool {
	return c.construction != nil
}

// IsOccupiedByOther reports whether a building of someone other than p stands here.
func (c *Corner) IsOccupiedByOther(p PlayerID) bool {
	return c.construction != nil && c.construction.Owner() != p
}

// HasSettlementOf reports whether p owns a settlement (not a city) here.
func (c *Corner) HasSettlementOf(p PlayerID) bool {
	s, ok := c.construction.(Settlement)
	return ok && s.owner == p
}

// IsAdjacentTo reports whether other is a direct neighbour.
func (c *Corner) IsAdjacentTo(other CornerID) bool {
	return c.link(other) != nil
}

func (c *Corner) link(other CornerID) *Link {
	for i := range c.links {
		if c.links[i].To == other {
			return &c.links[i]
		}
	}
	return nil
}
