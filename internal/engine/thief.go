package engine

import (
	"math/rand"

	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/resource"
)

// Thief blocks the production of the tile it stands on.
type Thief struct {
	tile TileID
}

// Tile returns the tile the thief occupies.
func (t *Thief) Tile() TileID {
	return t.tile
}

func (t *Thief) moveTo(tile TileID) {
	t.tile = tile
}

// steal moves one unit from victim to thief, chosen uniformly among all of
// the victim's units. The bundle is empty when the victim holds nothing.
func steal(rng *rand.Rand, victim, thief *Player) (resource.Bundle, error) {
	var stolen resource.Bundle
	total := victim.resources.Total()
	if total == 0 {
		return stolen, nil
	}
	k, ok := victim.resources.Unit(rng.Intn(total))
	if !ok {
		return stolen, check.Integrity(check.PreconditionViolated, "player %d has %d units but none to steal", victim.id, total)
	}
	if err := victim.give(thief, k, 1); err != nil {
		return stolen, err
	}
	stolen.Add(k, 1)
	return stolen, nil
}
