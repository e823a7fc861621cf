package maze

// Dijkstra expands the unprocessed visited cell with the smallest known
// distance. The candidate scan is linear over the grid, which keeps the
// per-step state trivial to inspect; maze grids are small enough that
// the quadratic total cost does not matter.
type Dijkstra struct{}

func (Dijkstra) Name() string { return "Dijkstra" }

func (Dijkstra) Step(s *Search) Outcome {
	best := -1
	bestDist := unreached
	for i := range s.visited {
		if s.visited[i] && !s.processed[i] && s.dist[i] < bestDist {
			bestDist = s.dist[i]
			best = i
		}
	}
	if best < 0 {
		return Exhausted
	}

	x, y := best%s.grid.N, best/s.grid.N
	s.processed[best] = true

	if x == s.goal.X && y == s.goal.Y {
		s.buildPath()
		return Found
	}
	s.relax(x, y)
	return Advanced
}
