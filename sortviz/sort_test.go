package sortviz

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allAlgorithms() []Algorithm {
	return []Algorithm{&Bubble{}, &Selection{}, &Merge{}, &Quick{}, &Heap{}}
}

func TestRun_SortsRandomInput(t *testing.T) {
	for _, a := range allAlgorithms() {
		t.Run(a.Name(), func(t *testing.T) {
			s := NewState(120, 7)
			want := append([]int(nil), s.Values...)
			sort.Ints(want)

			steps := Run(a, s)
			require.True(t, s.Finished)
			assert.Equal(t, want, s.Values)
			assert.Positive(t, steps)
			assert.Positive(t, s.Comparisons)
		})
	}
}

func TestRun_AlreadySorted(t *testing.T) {
	for _, a := range allAlgorithms() {
		t.Run(a.Name(), func(t *testing.T) {
			s := NewState(50, 1)
			sort.Ints(s.Values)
			want := append([]int(nil), s.Values...)

			Run(a, s)
			assert.Equal(t, want, s.Values)
			assert.True(t, s.Sorted())
		})
	}
}

func TestStep_TrivialInputsFinishImmediately(t *testing.T) {
	for _, n := range []int{0, 1} {
		for _, a := range allAlgorithms() {
			s := NewState(n, 1)
			a.Init(s)
			require.True(t, a.Step(s), "%s with n=%d", a.Name(), n)
			assert.True(t, s.Finished)
		}
	}
}

func TestStep_OneUnitOfWork(t *testing.T) {
	// A single bubble step touches exactly one adjacent pair.
	s := NewState(10, 3)
	b := &Bubble{}
	b.Init(s)

	require.False(t, b.Step(s))
	assert.Equal(t, 1, s.Comparisons)
	assert.Equal(t, 0, s.HighlightA)
	assert.Equal(t, 1, s.HighlightB)
}

func TestStep_FinishedStateStaysFinished(t *testing.T) {
	s := NewState(8, 2)
	b := &Bubble{}
	Run(b, s)
	elapsed := s.Elapsed

	require.True(t, b.Step(s))
	assert.Equal(t, elapsed, s.Elapsed, "elapsed time is frozen at finish")
}

func TestNewState_Deterministic(t *testing.T) {
	a := NewState(64, 11)
	b := NewState(64, 11)
	assert.Equal(t, a.Values, b.Values)

	c := NewState(64, 12)
	assert.NotEqual(t, a.Values, c.Values)

	for _, v := range a.Values {
		assert.GreaterOrEqual(t, v, 10)
		assert.Less(t, v, 10+maxValue)
	}
}

func TestRun_CountsSwaps(t *testing.T) {
	s := NewState(2, 1)
	s.Values[0], s.Values[1] = 2, 1

	Run(&Bubble{}, s)
	assert.Equal(t, 1, s.Swaps)
	assert.True(t, s.Sorted())
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		a, err := ByName(name)
		require.NoError(t, err)
		assert.NotEmpty(t, a.Name())
	}
	_, err := ByName("bogosort")
	assert.Error(t, err)
}
