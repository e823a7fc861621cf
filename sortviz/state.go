// Package sortviz implements sorting algorithms as single-step state
// machines. One Step call performs at most one comparison or swap pass
// so a renderer can animate the array between steps; Run drives a sort
// to completion for headless use.
package sortviz

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// maxValue bounds the random bar heights.
const maxValue = 420

// State is the shared, observable part of a sort in progress. The
// per-algorithm bookkeeping lives in the Algorithm values; State only
// carries what a renderer or stats collector needs.
type State struct {
	Values []int

	Comparisons int
	Swaps       int
	Finished    bool

	// SwappedLast reports whether the most recent step swapped the
	// highlighted pair.
	SwappedLast bool
	// HighlightA and HighlightB are the indexes touched by the most
	// recent step, or -1.
	HighlightA int
	HighlightB int

	// Elapsed is fixed when the sort finishes.
	Elapsed time.Duration
	started time.Time
}

// NewState creates a sort state over n random values. The same seed
// always produces the same input array.
func NewState(n int, seed uint64) *State {
	rng := rand.New(rand.NewPCG(seed, seed))
	s := &State{
		Values:     make([]int, n),
		HighlightA: -1,
		HighlightB: -1,
		started:    time.Now(),
	}
	for i := range s.Values {
		s.Values[i] = 10 + rng.IntN(maxValue)
	}
	return s
}

// finish marks the sort complete and freezes the elapsed time.
func (s *State) finish() bool {
	if !s.Finished {
		s.Finished = true
		s.Elapsed = time.Since(s.started)
	}
	return true
}

func (s *State) compare(a, b int) {
	s.HighlightA, s.HighlightB = a, b
	s.Comparisons++
}

func (s *State) swap(a, b int) {
	s.Values[a], s.Values[b] = s.Values[b], s.Values[a]
	s.Swaps++
}

// trivial handles the degenerate inputs every algorithm finishes
// immediately on.
func (s *State) trivial() bool {
	if s.Finished || len(s.Values) <= 1 {
		return s.finish()
	}
	return false
}

// Sorted reports whether the array is in non-decreasing order.
func (s *State) Sorted() bool {
	for i := 1; i < len(s.Values); i++ {
		if s.Values[i-1] > s.Values[i] {
			return false
		}
	}
	return true
}

// Algorithm is a sort broken into renderable steps. Init binds the
// algorithm to a state; Step advances one unit of work and reports
// whether the sort is finished. Algorithms are single-use: Init again
// with a fresh State to rerun.
type Algorithm interface {
	Name() string
	Init(*State)
	Step(*State) bool
}

// Run drives a through s to completion and returns the number of steps
// taken.
func Run(a Algorithm, s *State) int {
	a.Init(s)
	steps := 0
	for !a.Step(s) {
		steps++
	}
	return steps
}

// ByName returns a fresh algorithm registered under name.
func ByName(name string) (Algorithm, error) {
	switch name {
	case "bubble":
		return &Bubble{}, nil
	case "selection":
		return &Selection{}, nil
	case "merge":
		return &Merge{}, nil
	case "quick":
		return &Quick{}, nil
	case "heap":
		return &Heap{}, nil
	}
	return nil, fmt.Errorf("unknown sort algorithm %q", name)
}

// Names lists the registered algorithm names accepted by ByName.
func Names() []string {
	return []string{"bubble", "selection", "merge", "quick", "heap"}
}
