package maze

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(31, 42)
	b := Generate(31, 42)
	assert.Equal(t, a.cells, b.cells, "same seed must produce the same maze")

	c := Generate(31, 43)
	assert.NotEqual(t, a.cells, c.cells, "different seeds should diverge")
}

func TestGenerate_BordersStayWalled(t *testing.T) {
	g := Generate(15, 7)
	for i := 0; i < g.N; i++ {
		assert.Equal(t, Wall, g.At(i, 0))
		assert.Equal(t, Wall, g.At(i, g.N-1))
		assert.Equal(t, Wall, g.At(0, i))
		assert.Equal(t, Wall, g.At(g.N-1, i))
	}
	assert.Equal(t, Path, g.At(1, 1), "carving starts at (1,1)")
}

func TestGenerate_RejectsEvenSize(t *testing.T) {
	assert.Panics(t, func() { Generate(10, 1) })
	assert.Panics(t, func() { Generate(1, 1) })
}

func TestRandomEndpoints(t *testing.T) {
	g := Generate(21, 3)
	rng := rand.New(rand.NewPCG(3, 3))
	start, goal := g.RandomEndpoints(rng)
	assert.NotEqual(t, start, goal)
	assert.Equal(t, Path, g.At(start.X, start.Y))
	assert.Equal(t, Path, g.At(goal.X, goal.Y))
}
