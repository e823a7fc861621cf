package sortviz

// Heap is heap sort: a build phase sifts each internal node into place,
// one node per step, then the sort phase swaps the root to the end of
// the shrinking heap, one extraction per step.
type Heap struct {
	size     int
	buildIdx int
	sorting  bool
}

func (h *Heap) Name() string { return "Heap Sort" }

func (h *Heap) Init(s *State) {
	h.size = len(s.Values)
	h.buildIdx = len(s.Values)/2 - 1
	h.sorting = false
}

func (h *Heap) Step(s *State) bool {
	if s.trivial() {
		return true
	}

	if !h.sorting {
		if h.buildIdx < 0 {
			h.sorting = true
		} else {
			s.HighlightA, s.HighlightB = h.buildIdx, -1
			h.siftDown(s, h.buildIdx)
			h.buildIdx--
			return false
		}
	}

	if h.size <= 1 {
		return s.finish()
	}

	s.HighlightA, s.HighlightB = 0, h.size-1
	s.swap(0, h.size-1)
	h.size--
	h.siftDown(s, 0)
	return false
}

func (h *Heap) siftDown(s *State, idx int) {
	for {
		left := 2*idx + 1
		right := left + 1
		largest := idx
		if left < h.size {
			s.Comparisons++
			if s.Values[left] > s.Values[largest] {
				largest = left
			}
		}
		if right < h.size {
			s.Comparisons++
			if s.Values[right] > s.Values[largest] {
				largest = right
			}
		}
		if largest == idx {
			return
		}
		s.swap(idx, largest)
		idx = largest
	}
}
