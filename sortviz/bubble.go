package sortviz

// Bubble is bubble sort: each step compares one adjacent pair, swapping
// when out of order. Pass i leaves the i largest values settled at the
// end.
type Bubble struct {
	pass int
	j    int
}

func (b *Bubble) Name() string { return "Bubble Sort" }

func (b *Bubble) Init(*State) { b.pass, b.j = 0, 0 }

func (b *Bubble) Step(s *State) bool {
	if s.trivial() {
		return true
	}

	limit := len(s.Values) - 1 - b.pass
	if limit <= 0 {
		return s.finish()
	}

	s.compare(b.j, b.j+1)
	s.SwappedLast = false
	if s.Values[b.j] > s.Values[b.j+1] {
		s.swap(b.j, b.j+1)
		s.SwappedLast = true
	}

	b.j++
	if b.j >= limit {
		b.j = 0
		b.pass++
		if b.pass >= len(s.Values)-1 {
			return s.finish()
		}
	}
	return false
}
