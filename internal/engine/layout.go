package engine

import "github.com/vovakirdan/hexsettle/internal/resource"

// Standard board tables. Terrain and ports are shuffled once per game;
// numbers are dealt in tile order to the non-desert tiles.
var (
	standardTerrain = []Terrain{
		Desert{},
		Producing{Resource: resource.Grain}, Producing{Resource: resource.Grain},
		Producing{Resource: resource.Grain}, Producing{Resource: resource.Grain},
		Producing{Resource: resource.Wool}, Producing{Resource: resource.Wool},
		Producing{Resource: resource.Wool}, Producing{Resource: resource.Wool},
		Producing{Resource: resource.Lumber}, Producing{Resource: resource.Lumber},
		Producing{Resource: resource.Lumber}, Producing{Resource: resource.Lumber},
		Producing{Resource: resource.Brick}, Producing{Resource: resource.Brick},
		Producing{Resource: resource.Brick},
		Producing{Resource: resource.Ore}, Producing{Resource: resource.Ore},
		Producing{Resource: resource.Ore},
	}

	standardNumbers = []int{11, 3, 6, 5, 4, 9, 10, 8, 4, 11, 12, 9, 10, 8, 3, 6, 2, 5}

	// Pairs of adjacent outer-ring corners that can hold a port.
	standardPortSlots = [][2]CornerID{
		{24, 25}, {28, 29}, {31, 32}, {34, 35}, {38, 39},
		{41, 42}, {44, 45}, {48, 49}, {51, 52},
	}

	standardPorts = []Port{
		GenericPort(3), GenericPort(3), GenericPort(3), GenericPort(3),
		ResourcePort(2, resource.Brick),
		ResourcePort(2, resource.Lumber),
		ResourcePort(2, resource.Wool),
		ResourcePort(2, resource.Grain),
		ResourcePort(2, resource.Ore),
	}
)

// StandardNumbers returns the number tokens of the standard board.
func StandardNumbers() []int {
	out := make([]int, len(standardNumbers))
	copy(out, standardNumbers)
	return out
}

// CardKind enumerates development card types.
type CardKind uint8

const (
	Knight CardKind = iota
	RoadBuilding
	YearOfPlenty
	Monopoly
	VictoryPoint
)

func (k CardKind) String() string {
	switch k {
	case Knight:
		return "Knight"
	case RoadBuilding:
		return "RoadBuilding"
	case YearOfPlenty:
		return "YearOfPlenty"
	case Monopoly:
		return "Monopoly"
	case VictoryPoint:
		return "VictoryPoint"
	default:
		return "Unknown"
	}
}

type deckEntry struct {
	kind  CardKind
	title string
}

func standardDeck() []deckEntry {
	var deck []deckEntry
	add := func(kind CardKind, n int) {
		for i := 0; i < n; i++ {
			deck = append(deck, deckEntry{kind: kind, title: kind.String()})
		}
	}
	add(Knight, 14)
	add(RoadBuilding, 2)
	add(YearOfPlenty, 2)
	add(Monopoly, 2)
	for _, title := range []string{"Chapel", "Great Hall", "Library", "Market", "University"} {
		deck = append(deck, deckEntry{kind: VictoryPoint, title: title})
	}
	return deck
}
