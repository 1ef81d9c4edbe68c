package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hexsettle/internal/resource"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g, err := New(Options{Seed: seed})
	require.NoError(t, err)
	return g
}

// placeAll plays the whole initial round with the first legal corners and
// returns the seat order it observed.
func placeAll(t *testing.T, g *Game) []PlayerID {
	t.Helper()
	var order []PlayerID
	for {
		turn, ok := g.Turn().(*InitialTurn)
		if !ok {
			return order
		}
		p := turn.Player()
		order = append(order, p.ID())

		settled := firstSettlementCorner(t, g, turn, p)
		require.NoError(t, turn.BuildSettlement(p, settled))

		var roadTo *Corner
		for _, id := range settled.AdjacentCorners() {
			c := mustCorner(t, g.Board(), id)
			if turn.CanBuildRoad(p, settled, c).OK() {
				roadTo = c
				break
			}
		}
		require.NotNil(t, roadTo, "no road from corner %d", settled.ID())
		_, err := turn.BuildRoad(p, settled, roadTo)
		require.NoError(t, err)
		require.NoError(t, turn.Pass(p))
	}
}

func firstSettlementCorner(t *testing.T, g *Game, turn Turn, p *Player) *Corner {
	t.Helper()
	for _, c := range g.Board().Corners() {
		if turn.CanBuildSettlement(p, c).OK() {
			return c
		}
	}
	t.Fatalf("no legal settlement corner for player %d", p.ID())
	return nil
}

func mustCorner(t *testing.T, b *Board, id CornerID) *Corner {
	t.Helper()
	c, err := b.Corner(id)
	require.NoError(t, err)
	return c
}

func mustTile(t *testing.T, b *Board, id TileID) *Tile {
	t.Helper()
	tile, err := b.Tile(id)
	require.NoError(t, err)
	return tile
}

// normalTurn finishes the initial round and returns the first normal turn.
func normalTurn(t *testing.T, g *Game) *NormalTurn {
	t.Helper()
	placeAll(t, g)
	turn, ok := g.Turn().(*NormalTurn)
	require.True(t, ok, "expected a normal turn, got %T", g.Turn())
	return turn
}

// findPath returns a path of n edges starting at start that never revisits
// a corner.
func findPath(b *Board, start CornerID, n int) []CornerID {
	path := []CornerID{start}
	visited := map[CornerID]bool{start: true}
	var dfs func() bool
	dfs = func() bool {
		if len(path) == n+1 {
			return true
		}
		last := b.corners[path[len(path)-1]]
		for _, next := range last.AdjacentCorners() {
			if visited[next] {
				continue
			}
			visited[next] = true
			path = append(path, next)
			if dfs() {
				return true
			}
			path = path[:len(path)-1]
			visited[next] = false
		}
		return false
	}
	if !dfs() {
		return nil
	}
	return path
}

func bundle(pairs ...any) resource.Bundle {
	var b resource.Bundle
	for i := 0; i+1 < len(pairs); i += 2 {
		b.Add(pairs[i].(resource.Kind), pairs[i+1].(int))
	}
	return b
}
