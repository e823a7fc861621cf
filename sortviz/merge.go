package sortviz

// Merge is bottom-up merge sort: runs of doubling width are merged into
// an auxiliary buffer one element per step, then copied back one
// element per step so the animation shows both phases.
type Merge struct {
	aux     []int
	width   int
	left    int
	i, j, k int
	copying bool
}

func (m *Merge) Name() string { return "Merge Sort" }

func (m *Merge) Init(s *State) {
	m.aux = make([]int, len(s.Values))
	m.width = 1
	m.left, m.i, m.j, m.k = 0, 0, 0, 0
	m.copying = false
}

func (m *Merge) Step(s *State) bool {
	if s.trivial() {
		return true
	}

	n := len(s.Values)
	if m.left >= n {
		m.width *= 2
		m.left = 0
	}
	if m.width >= n {
		return s.finish()
	}

	mid := min(m.left+m.width, n)
	right := min(m.left+2*m.width, n)

	if !m.copying && m.k == 0 {
		m.i = m.left
		m.j = mid
		m.k = m.left
	}

	if !m.copying {
		switch {
		case m.i < mid && m.j < right:
			s.compare(m.i, m.j)
			if s.Values[m.i] <= s.Values[m.j] {
				m.aux[m.k] = s.Values[m.i]
				m.i++
			} else {
				m.aux[m.k] = s.Values[m.j]
				m.j++
			}
			m.k++
		case m.i < mid:
			m.aux[m.k] = s.Values[m.i]
			m.i++
			m.k++
		case m.j < right:
			m.aux[m.k] = s.Values[m.j]
			m.j++
			m.k++
		}

		if m.i >= mid && m.j >= right {
			m.copying = true
			m.k = m.left
		}
		return false
	}

	// Copy-back phase, one element per step.
	s.HighlightA, s.HighlightB = m.k, -1
	s.Values[m.k] = m.aux[m.k]
	m.k++
	if m.k >= right {
		m.left = right
		m.k = 0
		m.copying = false
	}
	return false
}
