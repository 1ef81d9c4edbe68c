// Package engine implements the rules of a four-player settlement-building
// and resource-trading board game: the board graph, players, development
// cards, achievement tokens and the turn state machine.
//
// This package is UI-agnostic and deterministic: all randomness comes from
// the seeded source owned by Game. Callers must serialise access to a Game.
package engine

import "fmt"

// PlayerID identifies a seat. Seats are numbered from 0 in turn order.
type PlayerID int

// TileID indexes a tile inside its Board.
type TileID int

// CornerID indexes a corner inside its Board.
type CornerID int

// RoadID indexes a road inside its Board. Ids are assigned in build order.
type RoadID int

// CardID indexes a development card inside its Game.
type CardID int

// TokenID indexes an achievement token inside its Game.
type TokenID int

// NoRoad marks a corner link without a road.
const NoRoad RoadID = -1

// Edge is an unordered pair of corners, stored low id first.
type Edge [2]CornerID

// NewEdge normalises a corner pair.
func NewEdge(a, b CornerID) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

// Touches reports whether c is one of the edge's endpoints.
func (e Edge) Touches(c CornerID) bool {
	return e[0] == c || e[1] == c
}

// String renders the edge as "a-b".
func (e Edge) String() string {
	return fmt.Sprintf("%d-%d", e[0], e[1])
}
