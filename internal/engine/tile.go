package engine

import (
	"fmt"

	"github.com/vovakirdan/hexsettle/internal/resource"
)

// Terrain is the closed set of tile contents: Desert or Producing.
type Terrain interface {
	isTerrain()
	String() string
}

// Desert produces nothing. The thief starts here.
type Desert struct{}

func (Desert) isTerrain() {}

func (Desert) String() string { return "Desert" }

// Producing yields Resource whenever the dice sum equals Number.
type Producing struct {
	Resource resource.Kind
	Number   int
}

func (Producing) isTerrain() {}

func (p Producing) String() string {
	return fmt.Sprintf("%s(%d)", p.Resource, p.Number)
}

// Tile is a hex cell of the board.
type Tile struct {
	id      TileID
	terrain Terrain
	corners []CornerID
}

// ID returns the tile id.
func (t *Tile) ID() TileID {
	return t.id
}

// Terrain returns the tile contents.
func (t *Tile) Terrain() Terrain {
	return t.terrain
}

// Corners returns the six corners of the tile.
func (t *Tile) Corners() []CornerID {
	out := make([]CornerID, len(t.corners))
	copy(out, t.corners)
	return out
}

// IsDesert reports whether the tile is the desert.
func (t *Tile) IsDesert() bool {
	_, ok := t.terrain.(Desert)
	return ok
}

// Produces returns the resource yielded for number, if any.
func (t *Tile) Produces(number int) (resource.Kind, bool) {
	switch terrain := t.terrain.(type) {
	case Producing:
		if terrain.Number == number {
			return terrain.Resource, true
		}
	case Desert:
	}
	return 0, false
}
