// Package maze generates perfect mazes and solves them with a family
// of single-step search algorithms. Each algorithm advances one cell
// per Step call so a caller can render or inspect the search as it
// unfolds; Solve runs a search to completion for headless use.
package maze

import "math/rand/v2"

// Cell values in a Grid.
const (
	Path = 0
	Wall = 1
)

// Cell is a grid coordinate.
type Cell struct {
	X, Y int
}

// Grid is a square maze of N x N cells. Cells hold Path or Wall.
type Grid struct {
	N     int
	cells []uint8
}

// NewGrid returns an n x n grid of solid wall.
func NewGrid(n int) *Grid {
	g := &Grid{N: n, cells: make([]uint8, n*n)}
	for i := range g.cells {
		g.cells[i] = Wall
	}
	return g
}

// At reports the cell value at (x, y).
func (g *Grid) At(x, y int) int { return int(g.cells[y*g.N+x]) }

func (g *Grid) carve(x, y int) { g.cells[y*g.N+x] = Path }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.N && y >= 0 && y < g.N
}

var dirs = [4]struct{ dx, dy int }{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Generate carves a perfect maze into a fresh n x n grid using
// recursive backtracking. n must be odd so corridors and walls
// alternate cleanly; Generate panics otherwise. The same seed always
// produces the same maze.
func Generate(n int, seed uint64) *Grid {
	if n < 3 || n%2 == 0 {
		panic("maze: size must be odd and at least 3")
	}
	g := NewGrid(n)
	rng := rand.New(rand.NewPCG(seed, seed))
	g.backtrack(1, 1, rng)
	return g
}

func (g *Grid) backtrack(x, y int, rng *rand.Rand) {
	g.carve(x, y)

	order := dirs
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	for _, d := range order {
		nx := x + d.dx*2
		ny := y + d.dy*2
		if nx > 0 && nx < g.N-1 && ny > 0 && ny < g.N-1 && g.At(nx, ny) == Wall {
			g.carve(x+d.dx, y+d.dy)
			g.backtrack(nx, ny, rng)
		}
	}
}

// RandomEndpoints picks two distinct open cells to serve as the start
// and goal of a search.
func (g *Grid) RandomEndpoints(rng *rand.Rand) (start, goal Cell) {
	pick := func() Cell {
		for {
			c := Cell{rng.IntN(g.N), rng.IntN(g.N)}
			if g.At(c.X, c.Y) == Path {
				return c
			}
		}
	}
	start = pick()
	for {
		goal = pick()
		if goal != start {
			return start, goal
		}
	}
}
