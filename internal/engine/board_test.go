package engine

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hexsettle/internal/check"
	"github.com/vovakirdan/hexsettle/internal/resource"
	"github.com/vovakirdan/hexsettle/internal/topology"
)

func TestNewBoardStandard(t *testing.T) {
	for _, seed := range []int64{0, 1, 42, 1234} {
		b, err := NewBoard(rand.New(rand.NewSource(seed)), topology.StandardLayers)
		require.NoError(t, err)

		assert.Len(t, b.Tiles(), 19)
		assert.Len(t, b.Corners(), 54)

		deserts := 0
		var numbers []int
		counts := map[resource.Kind]int{}
		for _, tile := range b.Tiles() {
			switch terrain := tile.Terrain().(type) {
			case Desert:
				deserts++
				assert.Equal(t, tile.ID(), b.ThiefTile(), "thief starts on the desert")
			case Producing:
				numbers = append(numbers, terrain.Number)
				counts[terrain.Resource]++
			}
		}
		assert.Equal(t, 1, deserts)

		want := StandardNumbers()
		sort.Ints(want)
		sort.Ints(numbers)
		assert.Equal(t, want, numbers)
		assert.Equal(t, map[resource.Kind]int{
			resource.Grain: 4, resource.Wool: 4, resource.Lumber: 4, resource.Brick: 3, resource.Ore: 3,
		}, counts)

		ports := 0
		for _, c := range b.Corners() {
			if _, ok := c.Port(); ok {
				ports++
			}
		}
		assert.Equal(t, 18, ports, "nine ports on two corners each")
	}
}

func TestNewBoardUnsupportedSize(t *testing.T) {
	_, err := NewBoard(rand.New(rand.NewSource(1)), 2)
	assert.ErrorIs(t, err, topology.ErrUnsupportedSize)
}

func TestBoardLookupOutOfRange(t *testing.T) {
	b, err := NewBoard(rand.New(rand.NewSource(1)), topology.StandardLayers)
	require.NoError(t, err)

	_, err = b.Tile(19)
	assert.True(t, check.IsIntegrity(err))
	assert.ErrorIs(t, err, &check.IntegrityError{Reason: check.InvalidTileID})

	_, err = b.Corner(-1)
	assert.True(t, check.IsIntegrity(err))
	assert.ErrorIs(t, err, &check.IntegrityError{Reason: check.InvalidCornerID})
}

func TestDistanceRule(t *testing.T) {
	b, err := NewBoard(rand.New(rand.NewSource(7)), topology.StandardLayers)
	require.NoError(t, err)

	for _, id := range []CornerID{0, 12, 30, 53} {
		c := mustCorner(t, b, id)
		if !b.CanBuildSettlement(0, c, false).OK() {
			continue
		}
		_, err := b.BuildSettlement(0, c, false)
		require.NoError(t, err)

		assert.Equal(t, check.Fail(check.CornerOccupied), b.CanBuildSettlement(1, c, false))
		for _, adj := range c.AdjacentCorners() {
			got := b.CanBuildSettlement(1, mustCorner(t, b, adj), false)
			assert.Equal(t, check.CornerAdjacentToOccupiedCorner, got.Reason, "corner %d next to %d", adj, id)
		}
	}
}

func TestBoardRoadChecks(t *testing.T) {
	b, err := NewBoard(rand.New(rand.NewSource(3)), topology.StandardLayers)
	require.NoError(t, err)

	home := mustCorner(t, b, 0)
	_, err = b.BuildSettlement(0, home, false)
	require.NoError(t, err)
	next := mustCorner(t, b, home.AdjacentCorners()[0])

	far := mustCorner(t, b, 40)
	assert.Equal(t, check.CornersNotAdjacent, b.CanBuildRoad(0, home, far).Reason)
	assert.Equal(t, check.DisconnectedEdge, b.CanBuildRoad(1, home, next).Reason, "opponent building does not connect")

	road, err := b.BuildRoad(0, home, next)
	require.NoError(t, err)
	assert.Equal(t, NewEdge(home.ID(), next.ID()), road.Edge())
	assert.Equal(t, check.EdgeOccupied, b.CanBuildRoad(0, next, home).Reason)

	got, ok := b.RoadBetween(next.ID(), home.ID())
	require.True(t, ok)
	assert.Equal(t, road, got)

	other, err := road.OtherEnd(home.ID())
	require.NoError(t, err)
	assert.Equal(t, next.ID(), other)
	_, err = road.OtherEnd(far.ID())
	assert.ErrorIs(t, err, &check.IntegrityError{Reason: check.CornerDoesntBelongToRoad})

	// The road end without a building extends the network.
	for _, id := range next.AdjacentCorners() {
		if id == home.ID() {
			continue
		}
		assert.True(t, b.CanBuildRoad(0, next, mustCorner(t, b, id)).OK())
	}

	// Settlements away from the start need a road, and must keep their distance.
	assert.Equal(t, check.CornerAdjacentToOccupiedCorner, b.CanBuildSettlement(0, next, true).Reason)
}

func TestBoardRoadThroughOpponentCorner(t *testing.T) {
	b, err := NewBoard(rand.New(rand.NewSource(3)), topology.StandardLayers)
	require.NoError(t, err)

	// p0 builds home -> x -> y, then p1 settles on y.
	home := mustCorner(t, b, 0)
	_, err = b.BuildSettlement(0, home, false)
	require.NoError(t, err)
	x := mustCorner(t, b, home.AdjacentCorners()[0])
	_, err = b.BuildRoad(0, home, x)
	require.NoError(t, err)

	var y *Corner
	for _, id := range x.AdjacentCorners() {
		if id != home.ID() {
			y = mustCorner(t, b, id)
			break
		}
	}
	require.NotNil(t, y)
	_, err = b.BuildRoad(0, x, y)
	require.NoError(t, err)
	_, err = b.BuildSettlement(1, y, false)
	require.NoError(t, err)

	// p0's road into y still connects it, although p1 owns the building.
	assert.True(t, b.IsConnectedTo(0, y))
	var z *Corner
	for _, id := range y.AdjacentCorners() {
		if id != x.ID() {
			z = mustCorner(t, b, id)
			break
		}
	}
	require.NotNil(t, z)
	require.True(t, b.CanBuildRoad(0, y, z).OK())
	_, err = b.BuildRoad(0, y, z)
	require.NoError(t, err)

	// The building still cuts p0's counted route at y.
	assert.Equal(t, 2, b.LongestRoute(0))
}

func TestBoardCityUpgrade(t *testing.T) {
	b, err := NewBoard(rand.New(rand.NewSource(5)), topology.StandardLayers)
	require.NoError(t, err)

	c := mustCorner(t, b, 10)
	assert.Equal(t, check.CornerWithoutSettlement, b.CanBuildCity(0, c).Reason)

	_, err = b.BuildSettlement(0, c, false)
	require.NoError(t, err)
	assert.Equal(t, check.CornerWithoutSettlement, b.CanBuildCity(1, c).Reason)

	city, err := b.BuildCity(0, c)
	require.NoError(t, err)
	assert.Equal(t, 2, city.VictoryPoints())
	assert.IsType(t, City{}, c.Construction())
	assert.Equal(t, check.CornerWithoutSettlement, b.CanBuildCity(0, c).Reason, "a city cannot be upgraded again")
}

func TestCollectibleForCities(t *testing.T) {
	b, err := NewBoard(rand.New(rand.NewSource(9)), topology.StandardLayers)
	require.NoError(t, err)

	var tile *Tile
	for _, candidate := range b.Tiles() {
		if !candidate.IsDesert() {
			tile = candidate
			break
		}
	}
	require.NotNil(t, tile)
	producing := tile.Terrain().(Producing)

	c := mustCorner(t, b, tile.Corners()[0])
	_, err = b.BuildSettlement(0, c, false)
	require.NoError(t, err)

	settled := b.CollectibleFor(0, producing.Number)
	assert.GreaterOrEqual(t, settled.Get(producing.Resource), 1)

	_, err = b.BuildCity(0, c)
	require.NoError(t, err)
	assert.Equal(t, settled.Multiply(2), b.CollectibleFor(0, producing.Number))

	b.thief.moveTo(tile.ID())
	blocked := b.CollectibleFor(0, producing.Number)
	assert.Equal(t, settled.Multiply(2).Get(producing.Resource)-2, blocked.Get(producing.Resource),
		"the tile under the thief yields nothing")
}

func TestThiefRules(t *testing.T) {
	g := newTestGame(t, 11)
	b := g.Board()
	thief, victim, bystander := g.players[0], g.players[1], g.players[2]

	current := mustTile(t, b, b.ThiefTile())
	assert.Equal(t, check.ThiefSameTile, b.CanMoveThief(thief, current, nil, g.players).Reason)

	var tile *Tile
	for _, candidate := range b.Tiles() {
		if candidate.ID() != b.ThiefTile() {
			tile = candidate
			break
		}
	}
	require.NotNil(t, tile)
	_, err := b.BuildSettlement(victim.ID(), mustCorner(t, b, tile.Corners()[0]), false)
	require.NoError(t, err)

	// Nobody holds resources yet, so no target is needed.
	assert.True(t, b.CanMoveThief(thief, tile, nil, g.players).OK())
	assert.Equal(t, check.StealTargetNoResources, b.CanMoveThief(thief, tile, victim, g.players).Reason)

	victim.resources = bundle(resource.Ore, 2, resource.Wool, 1)
	assert.Equal(t, check.StealTargetRequired, b.CanMoveThief(thief, tile, nil, g.players).Reason)
	assert.Equal(t, check.CannotStealFromSelf, b.CanMoveThief(thief, tile, thief, g.players).Reason)
	assert.Equal(t, check.StealTargetNotAdjacent, b.CanMoveThief(thief, tile, bystander, g.players).Reason)
	assert.Equal(t, []PlayerID{victim.ID()}, b.StealableAround(tile, thief.ID(), g.players))

	// Rejected moves leave the board untouched.
	_, err = b.MoveThief(g.rng, thief, tile, nil, g.players)
	assert.ErrorIs(t, err, check.ErrorFor(check.StealTargetRequired))
	assert.Equal(t, current.ID(), b.ThiefTile())

	stolen, err := b.MoveThief(g.rng, thief, tile, victim, g.players)
	require.NoError(t, err)
	assert.Equal(t, 1, stolen.Total())
	assert.Equal(t, 2, victim.resources.Total())
	assert.Equal(t, stolen, thief.resources)
	assert.Equal(t, tile.ID(), b.ThiefTile())
}

func TestAdjacentResources(t *testing.T) {
	b, err := NewBoard(rand.New(rand.NewSource(2)), topology.StandardLayers)
	require.NoError(t, err)

	for _, c := range b.Corners() {
		got := b.AdjacentResources(c)
		producing := 0
		for _, id := range c.Tiles() {
			if !mustTile(t, b, id).IsDesert() {
				producing++
			}
		}
		assert.Equal(t, producing, got.Total(), "corner %d", c.ID())
	}
}
