package maze

// DFS is depth-first search: the frontier is consumed as a stack, so
// the search burrows along one corridor before backtracking.
type DFS struct{}

func (DFS) Name() string { return "DFS" }

func (DFS) Step(s *Search) Outcome {
	if len(s.frontier) == 0 {
		return Exhausted
	}
	c := s.frontier[len(s.frontier)-1]
	s.frontier = s.frontier[:len(s.frontier)-1]

	if c == s.goal {
		s.buildPath()
		return Found
	}
	s.discover(c.X, c.Y, true)
	return Advanced
}
