// Package topology generates the corner and tile adjacency graph of a
// hexagonal board built from concentric rings.
// This package is deterministic: it only describes shape, never content.
package topology

import (
	"errors"
	"fmt"
)

// StandardLayers is the only supported ring count: 19 tiles, 54 corners, 72 edges.
const StandardLayers = 3

// ErrUnsupportedSize is returned for ring counts other than StandardLayers.
var ErrUnsupportedSize = errors.New("topology: unsupported board size")

// Corner describes one vertex of the grid.
type Corner struct {
	Index    int
	Layer    int
	Adjacent []int // neighbouring corner indices, at most 3
	Tiles    []int // tiles touching this corner, 1 to 3
}

// Tile describes one hex cell.
type Tile struct {
	Index   int
	Layer   int
	Corners []int // always 6 corner indices
}

// Layout is the full adjacency description of a board.
type Layout struct {
	Layers  int
	Corners []Corner
	Tiles   []Tile
}

// Generate builds the layout for the given number of rings.
func Generate(layers int) (*Layout, error) {
	if layers != StandardLayers {
		return nil, fmt.Errorf("%w: %d layers", ErrUnsupportedSize, layers)
	}

	corners := buildCorners(layers)
	tiles := buildTiles(layers, corners)
	for _, t := range tiles {
		for _, c := range t.Corners {
			corners[c].Tiles = append(corners[c].Tiles, t.Index)
		}
	}

	return &Layout{Layers: layers, Corners: corners, Tiles: tiles}, nil
}

// EdgeCount returns the number of distinct corner pairs.
func (l *Layout) EdgeCount() int {
	degree := 0
	for _, c := range l.Corners {
		degree += len(c.Adjacent)
	}
	return degree / 2
}

// cornerRingSize is the corner count of ring n.
func cornerRingSize(n int) int {
	return 6 * (2*n + 1)
}

// tileRingSize is the tile count of ring n.
func tileRingSize(n int) int {
	if n == 0 {
		return 1
	}
	return 6 * n
}

// isExternal reports whether corner i of ring n links outward to ring n+1.
func isExternal(i, n int) bool {
	return ((i+n)%(2*n+1))%2 == 0
}

func buildCorners(layers int) []Corner {
	var corners []Corner
	var previousExternal []int
	offset := 0

	for n := 0; n < layers; n++ {
		size := cornerRingSize(n)
		var external []int
		inward := 0
		for i := 0; i < size; i++ {
			idx := offset + i
			c := Corner{
				Index:    idx,
				Layer:    n,
				Adjacent: []int{offset + mod(i-1, size), offset + mod(i+1, size)},
			}
			if isExternal(i, n) {
				external = append(external, idx)
			} else {
				parent := previousExternal[inward]
				corners[parent].Adjacent = append(corners[parent].Adjacent, idx)
				c.Adjacent = append([]int{parent}, c.Adjacent...)
				inward++
			}
			corners = append(corners, c)
		}
		offset += size
		previousExternal = external
	}
	return corners
}

func buildTiles(layers int, corners []Corner) []Tile {
	byLayer := make([][]int, layers)
	for _, c := range corners {
		byLayer[c.Layer] = append(byLayer[c.Layer], c.Index)
	}

	var tiles []Tile
	for n := 0; n < layers; n++ {
		start := 0
		if n > 0 {
			start = 1 - n
		}
		inner, outer := start, start
		for i := 0; i < tileRingSize(n); i++ {
			t := Tile{Index: len(tiles), Layer: n}
			if n == 0 {
				t.Corners = append(t.Corners, byLayer[0]...)
			} else if i%n == n-1 {
				// Tile on a hex corner of the ring: 2 inner + 4 outer corners.
				t.Corners = append(t.Corners, sliceRound(byLayer[n-1], inner, 2)...)
				t.Corners = append(t.Corners, sliceRound(byLayer[n], outer, 4)...)
				inner++
				outer += 3
			} else {
				t.Corners = append(t.Corners, sliceRound(byLayer[n-1], inner, 3)...)
				t.Corners = append(t.Corners, sliceRound(byLayer[n], outer, 3)...)
				inner += 2
				outer += 2
			}
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// sliceRound returns count elements of ring starting at start, wrapping around.
func sliceRound(ring []int, start, count int) []int {
	out := make([]int, 0, count)
	for k := 0; k < count; k++ {
		out = append(out, ring[mod(start+k, len(ring))])
	}
	return out
}

func mod(n, m int) int {
	return ((n % m) + m) % m
}
