package maze

import "fmt"

// unreached marks a cell with no known distance from the start.
const unreached = 1 << 30

// Outcome is the result of a single search step.
type Outcome int

const (
	// Advanced means the step processed a cell without reaching the
	// goal; the search can continue.
	Advanced Outcome = iota
	// Found means the step reached the goal and the path is available.
	Found
	// Exhausted means no reachable cells remain and the goal was never
	// reached.
	Exhausted
)

func (o Outcome) String() string {
	switch o {
	case Advanced:
		return "advanced"
	case Found:
		return "found"
	default:
		return "exhausted"
	}
}

// Algorithm advances a Search one cell per Step call.
type Algorithm interface {
	Name() string
	Step(*Search) Outcome
}

// Search holds the mutable state of one pathfinding run over a grid.
// All algorithms share the same state shape; each uses the subset it
// needs. A Search is single-use: create a fresh one per run.
type Search struct {
	grid        *Grid
	start, goal Cell

	visited   []bool
	processed []bool
	parent    []int
	dist      []int

	// frontier doubles as BFS queue (with head as the read index) and
	// DFS stack. The priority algorithms scan the visited set directly.
	frontier []Cell
	head     int

	path  []Cell
	steps int
}

// NewSearch prepares a search from start to goal on g. Both endpoints
// must be open cells.
func NewSearch(g *Grid, start, goal Cell) *Search {
	max := g.N * g.N
	s := &Search{
		grid:      g,
		start:     start,
		goal:      goal,
		visited:   make([]bool, max),
		processed: make([]bool, max),
		parent:    make([]int, max),
		dist:      make([]int, max),
	}
	for i := range s.parent {
		s.parent[i] = -1
		s.dist[i] = unreached
	}

	si := s.index(start.X, start.Y)
	s.visited[si] = true
	s.dist[si] = 0
	s.frontier = append(s.frontier, start)
	return s
}

// Start returns the search origin.
func (s *Search) Start() Cell { return s.start }

// Goal returns the search target.
func (s *Search) Goal() Cell { return s.goal }

// Path returns the start-to-goal path, or nil while the goal is
// unreached.
func (s *Search) Path() []Cell { return s.path }

// Steps reports how many step calls Solve has made.
func (s *Search) Steps() int { return s.steps }

// VisitedCount reports how many cells the search has discovered.
func (s *Search) VisitedCount() int {
	n := 0
	for _, v := range s.visited {
		if v {
			n++
		}
	}
	return n
}

func (s *Search) index(x, y int) int { return y*s.grid.N + x }

// buildPath walks parent links from the goal back to the start and
// stores the path in start-to-goal order.
func (s *Search) buildPath() {
	s.path = s.path[:0]
	cx, cy := s.goal.X, s.goal.Y
	for !(cx == s.start.X && cy == s.start.Y) {
		s.path = append(s.path, Cell{cx, cy})
		p := s.parent[s.index(cx, cy)]
		if p < 0 {
			break
		}
		cx, cy = p%s.grid.N, p/s.grid.N
	}
	s.path = append(s.path, s.start)

	for i, j := 0, len(s.path)-1; i < j; i, j = i+1, j-1 {
		s.path[i], s.path[j] = s.path[j], s.path[i]
	}
}

// discover marks the open neighbors of (x, y) as visited with (x, y)
// as parent. Shared by the unweighted searches.
func (s *Search) discover(x, y int, enqueue bool) {
	for _, d := range dirs {
		nx, ny := x+d.dx, y+d.dy
		if !s.grid.inBounds(nx, ny) || s.grid.At(nx, ny) == Wall {
			continue
		}
		i := s.index(nx, ny)
		if !s.visited[i] {
			s.visited[i] = true
			s.parent[i] = s.index(x, y)
			if enqueue {
				s.frontier = append(s.frontier, Cell{nx, ny})
			}
		}
	}
}

// relax updates the distance of the open neighbors of (x, y) when the
// path through (x, y) is shorter. Shared by Dijkstra and A*.
func (s *Search) relax(x, y int) {
	base := s.dist[s.index(x, y)]
	for _, d := range dirs {
		nx, ny := x+d.dx, y+d.dy
		if !s.grid.inBounds(nx, ny) || s.grid.At(nx, ny) == Wall {
			continue
		}
		i := s.index(nx, ny)
		if base+1 < s.dist[i] {
			s.dist[i] = base + 1
			s.parent[i] = s.index(x, y)
			s.visited[i] = true
		}
	}
}

func (s *Search) manhattan(x, y int) int {
	return abs(x-s.goal.X) + abs(y-s.goal.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Solve steps a through s until the goal is found or the search is
// exhausted, and reports whether a path exists.
func Solve(a Algorithm, s *Search) bool {
	for {
		s.steps++
		switch a.Step(s) {
		case Found:
			return true
		case Exhausted:
			return false
		}
	}
}

// ByName returns the algorithm registered under name.
func ByName(name string) (Algorithm, error) {
	switch name {
	case "bfs":
		return BFS{}, nil
	case "dfs":
		return DFS{}, nil
	case "dijkstra":
		return Dijkstra{}, nil
	case "astar":
		return AStar{}, nil
	case "greedy":
		return Greedy{}, nil
	}
	return nil, fmt.Errorf("unknown maze algorithm %q", name)
}

// Names lists the registered algorithm names accepted by ByName.
func Names() []string {
	return []string{"bfs", "dfs", "dijkstra", "astar", "greedy"}
}
