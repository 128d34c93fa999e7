package dandy

import "container/heap"

// Pair aligns index A of the first sequence with index B of the second sequence.
type Pair struct {
	A, B int
}

type cell struct {
	a, b int
}

// frontier is a max-heap of cells ordered by the area that remains below and to the
// right of them.
type frontier struct {
	cells      []cell
	lenA, lenB int
}

func (f *frontier) area(c cell) int {
	return (f.lenA - c.a - 1) * (f.lenB - c.b - 1)
}

func (f *frontier) Len() int { return len(f.cells) }

func (f *frontier) Less(i, j int) bool {
	ci, cj := f.cells[i], f.cells[j]
	ai, aj := f.area(ci), f.area(cj)
	if ai != aj {
		return ai > aj
	}
	if ci.a+ci.b != cj.a+cj.b {
		return ci.a+ci.b < cj.a+cj.b
	}
	return ci.a < cj.a
}

func (f *frontier) Swap(i, j int) { f.cells[i], f.cells[j] = f.cells[j], f.cells[i] }

func (f *frontier) Push(x interface{}) { f.cells = append(f.cells, x.(cell)) }

func (f *frontier) Pop() interface{} {
	last := f.cells[len(f.cells)-1]
	f.cells = f.cells[:len(f.cells)-1]
	return last
}

// Aligner finds a common subsequence of two sequences. It is not guaranteed to be the
// longest one: from the last aligned position it does a best-first search towards the
// cell which leaves the most room for further alignment, and commits to the first equal
// pair it reaches. This is close to linear when the sequences are similar.
//
// An Aligner is consumed by calling Next until it returns false.
type Aligner struct {
	equal      func(a, b int) bool
	lenA, lenB int

	// anchor: everything before it has been consumed
	a, b int

	frontier frontier
	done     bool
}

// NewAligner returns an Aligner for two sequences of length lenA and lenB. equal(a, b)
// reports whether element a of the first sequence equals element b of the second one.
func NewAligner(equal func(a, b int) bool, lenA, lenB int) *Aligner {
	return &Aligner{
		equal:    equal,
		lenA:     lenA,
		lenB:     lenB,
		frontier: frontier{lenA: lenA, lenB: lenB},
	}
}

// Next returns the next aligned pair. Both components are strictly larger than those of
// the previously returned pair.
func (al *Aligner) Next() (Pair, bool) {
	if al.done {
		return Pair{}, false
	}

	if al.a >= al.lenA || al.b >= al.lenB {
		al.done = true
		return Pair{}, false
	}

	al.frontier.cells = al.frontier.cells[:0]
	heap.Push(&al.frontier, cell{al.a, al.b})

	for al.frontier.Len() > 0 {
		c := heap.Pop(&al.frontier).(cell)
		if al.equal(c.a, c.b) {
			al.a, al.b = c.a+1, c.b+1
			return Pair{c.a, c.b}, true
		}

		// Cells on the anchor row spread to the right; every other cell only spreads
		// downwards. This reaches each cell of the rectangle exactly once.
		if c.a == al.a && c.b+1 < al.lenB {
			heap.Push(&al.frontier, cell{c.a, c.b + 1})
		}
		if c.a+1 < al.lenA {
			heap.Push(&al.frontier, cell{c.a + 1, c.b})
		}
	}

	al.done = true
	return Pair{}, false
}

// Align collects every pair produced by an Aligner.
func Align(equal func(a, b int) bool, lenA, lenB int) []Pair {
	var pairs []Pair
	al := NewAligner(equal, lenA, lenB)
	for {
		pair, ok := al.Next()
		if !ok {
			return pairs
		}
		pairs = append(pairs, pair)
	}
}
