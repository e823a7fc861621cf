package maze

// Greedy is greedy best-first search: it expands the unprocessed
// visited cell closest to the goal by Manhattan distance, ignoring the
// distance already traveled. Fast to reach the goal, but the path is
// not necessarily shortest.
type Greedy struct{}

func (Greedy) Name() string { return "Greedy" }

func (Greedy) Step(s *Search) Outcome {
	best := -1
	bestScore := unreached
	for i := range s.visited {
		if s.visited[i] && !s.processed[i] {
			h := s.manhattan(i%s.grid.N, i/s.grid.N)
			if h < bestScore {
				bestScore = h
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
	s.discover(x, y, false)
	return Advanced
}
