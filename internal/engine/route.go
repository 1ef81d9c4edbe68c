package engine

// LongestRoute returns the number of roads in p's longest trail: a walk
// along p's roads that never reuses a road. A corner holding an opponent's
// building may end a trail but not be passed through.
func (b *Board) LongestRoute(p PlayerID) int {
	type step struct {
		to   CornerID
		road RoadID
	}
	adj := make(map[CornerID][]step)
	for _, r := range b.roads {
		if r.owner != p {
			continue
		}
		adj[r.edge[0]] = append(adj[r.edge[0]], step{to: r.edge[1], road: r.id})
		adj[r.edge[1]] = append(adj[r.edge[1]], step{to: r.edge[0], road: r.id})
	}

	best := 0
	used := make(map[RoadID]bool)
	var walk func(at CornerID, length int)
	walk = func(at CornerID, length int) {
		if length > best {
			best = length
		}
		if length > 0 && b.corners[at].IsOccupiedByOther(p) {
			return
		}
		for _, s := range adj[at] {
			if used[s.road] {
				continue
			}
			used[s.road] = true
			walk(s.to, length+1)
			used[s.road] = false
		}
	}
	for start := range adj {
		walk(start, 0)
	}
	return best
}
