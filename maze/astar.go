package maze

// AStar expands the unprocessed visited cell with the smallest
// dist + manhattan-to-goal score. With the admissible Manhattan
// heuristic it finds a shortest path while expanding fewer cells than
// Dijkstra.
type AStar struct{}

func (AStar) Name() string { return "A*" }

func (AStar) Step(s *Search) Outcome {
	best := -1
	bestScore := unreached
	for i := range s.visited {
		if s.visited[i] && !s.processed[i] {
			score := s.dist[i] + s.manhattan(i%s.grid.N, i/s.grid.N)
			if score < bestScore {
				bestScore = score
				best = i
			}
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
