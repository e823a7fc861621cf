package sortviz

// Quick is iterative quicksort with Lomuto partitioning. Pending ranges
// live on an explicit stack; each step either compares one element
// against the pivot or places the pivot and pushes the subranges.
type Quick struct {
	stack [][2]int

	left, right  int
	pivot        int
	i, j         int
	partitioning bool
}

func (q *Quick) Name() string { return "Quick Sort" }

func (q *Quick) Init(s *State) {
	q.stack = q.stack[:0]
	if len(s.Values) > 1 {
		q.stack = append(q.stack, [2]int{0, len(s.Values) - 1})
	}
	q.partitioning = false
}

func (q *Quick) Step(s *State) bool {
	if s.trivial() {
		return true
	}

	if !q.partitioning {
		if len(q.stack) == 0 {
			return s.finish()
		}
		r := q.stack[len(q.stack)-1]
		q.stack = q.stack[:len(q.stack)-1]
		q.left, q.right = r[0], r[1]
		q.pivot = s.Values[q.right]
		q.i = q.left - 1
		q.j = q.left
		q.partitioning = true
	}

	if q.j < q.right {
		s.compare(q.j, q.right)
		if s.Values[q.j] <= q.pivot {
			q.i++
			if q.i != q.j {
				s.swap(q.i, q.j)
			}
		}
		q.j++
		return false
	}

	pivotPos := q.i + 1
	if pivotPos != q.right {
		s.swap(pivotPos, q.right)
	}
	if pivotPos-1 > q.left {
		q.stack = append(q.stack, [2]int{q.left, pivotPos - 1})
	}
	if q.right > pivotPos+1 {
		q.stack = append(q.stack, [2]int{pivotPos + 1, q.right})
	}
	q.partitioning = false
	return false
}
