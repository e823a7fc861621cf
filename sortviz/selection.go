package sortviz

// Selection is selection sort: each step compares one candidate against
// the minimum found so far; when a scan completes, the minimum is
// swapped into position.
type Selection struct {
	i, j   int
	minIdx int
}

func (sel *Selection) Name() string { return "Selection Sort" }

func (sel *Selection) Init(*State) { sel.i, sel.j, sel.minIdx = 0, 1, 0 }

func (sel *Selection) Step(s *State) bool {
	if s.trivial() {
		return true
	}
	if sel.i >= len(s.Values)-1 {
		return s.finish()
	}

	s.compare(sel.i, sel.j)
	if s.Values[sel.j] < s.Values[sel.minIdx] {
		sel.minIdx = sel.j
	}

	sel.j++
	if sel.j >= len(s.Values) {
		if sel.minIdx != sel.i {
			s.swap(sel.i, sel.minIdx)
		}
		sel.i++
		sel.minIdx = sel.i
		sel.j = sel.i + 1
	}
	return false
}
