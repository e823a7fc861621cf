package maze

// BFS is breadth-first search: the frontier is consumed as a queue, so
// the first route found is also a shortest route in step count.
type BFS struct{}

func (BFS) Name() string { return "BFS" }

func (BFS) Step(s *Search) Outcome {
	if s.head >= len(s.frontier) {
		return Exhausted
	}
	c := s.frontier[s.head]
	s.head++

	if c == s.goal {
		s.buildPath()
		return Found
	}
	s.discover(c.X, c.Y, true)
	return Advanced
}
