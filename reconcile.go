package dandy

import (
	"sort"
	"strconv"

	"github.com/sanity-io/dandy/internal/digest"
	"github.com/sanity-io/dandy/internal/pointer"
)

/*

An array is reconciled in three steps:

1. Align the existing elements with the target elements. Aligned pairs are left untouched
   and act as anchors. A sentinel pair (len(existing), len(target)) closes the last window.

2. Walk the windows between anchors from left to right. Every target position in front of
   the next anchor is filled, trying in order:
   - an unused existing element with the wanted value, moved into place,
   - a copy of an element that is already in use,
   - the unused element already sitting at the position, when nothing later needs it. Its
     contents are diffed once the array itself has been reconciled,
   - an add.

3. Existing elements left between the filled positions and the anchor are removed, unless
   an unaligned target position in a later window wants the same value. Such elements are
   moved ("parked") right behind the anchor that opens that window, in target order, so
   that they are usually already in place when the window is filled.

Every emitted operation is applied to the working copy immediately, and the anchors still
ahead are shifted so that they keep pointing at the same elements.

*/

type slotState uint8

const (
	slotUnused slotState = iota
	slotAnchor
	slotPlaced
	slotDeferred
)

// slot mirrors one element of the array in the working copy.
type slot struct {
	hash  digest.Hash
	value interface{}
	state slotState

	// target position a parked element is waiting for, or -1
	claim int
}

type reconciler struct {
	w    *working
	path string

	target  []interface{}
	want    []digest.Hash
	wanted  *digest.Index
	aligned []bool

	slots []slot
	pairs []Pair
	cur   int

	// window index -> claims of the elements parked in it, sorted
	parked  map[int][]int
	claimed map[int]bool
}

// reconcile rewrites the array at path (currently existing) towards target.
func (w *working) reconcile(path Path, existing, target []interface{}) error {
	have, err := digest.List(existing)
	if err != nil {
		return err
	}
	want, err := digest.List(target)
	if err != nil {
		return err
	}

	r := &reconciler{
		w:       w,
		path:    path.String(),
		target:  target,
		want:    want,
		wanted:  digest.NewIndex(want),
		aligned: make([]bool, len(target)),
		slots:   make([]slot, len(existing)),
		parked:  map[int][]int{},
		claimed: map[int]bool{},
	}

	for idx, elem := range existing {
		r.slots[idx] = slot{hash: have[idx], value: elem, claim: -1}
	}

	r.pairs = Align(func(a, b int) bool {
		return have[a] == want[b] && Equal(existing[a], target[b])
	}, len(existing), len(target))

	for _, pair := range r.pairs {
		r.aligned[pair.B] = true
		r.slots[pair.A].state = slotAnchor
	}

	r.pairs = append(r.pairs, Pair{len(existing), len(target)})

	return r.run()
}

func (r *reconciler) run() error {
	pos := 0

	for r.cur = 0; r.cur < len(r.pairs); r.cur++ {
		for pos < r.pairs[r.cur].B {
			if err := r.fill(pos); err != nil {
				return err
			}
			pos++
		}

		for pos < r.pairs[r.cur].A {
			if err := r.discard(pos); err != nil {
				return err
			}
		}

		// Step over the anchor.
		pos++
	}

	return nil
}

func (r *reconciler) matches(k, t int) bool {
	return r.slots[k].hash == r.want[t] && Equal(r.slots[k].value, r.target[t])
}

// fill makes position pos hold target[pos].
func (r *reconciler) fill(pos int) error {
	anchor := r.pairs[r.cur].A

	if pos < anchor && r.slots[pos].state == slotUnused && r.matches(pos, pos) {
		r.place(pos, slotPlaced)
		return nil
	}

	for k := pos + 1; k < len(r.slots); k++ {
		if r.slots[k].state == slotUnused && r.matches(k, pos) {
			if err := r.move(k, pos); err != nil {
				return err
			}
			r.place(pos, slotPlaced)
			return nil
		}
	}

	for k := range r.slots {
		if r.slots[k].state != slotUnused && r.matches(k, pos) {
			if err := r.copy(k, pos); err != nil {
				return err
			}
			r.place(pos, slotPlaced)
			return nil
		}
	}

	if pos < anchor && r.slots[pos].state == slotUnused && r.slots[pos].claim == -1 &&
		!r.neededAfter(r.slots[pos].hash, pos) {
		r.place(pos, slotDeferred)
		return nil
	}

	if err := r.add(pos); err != nil {
		return err
	}
	r.place(pos, slotPlaced)
	return nil
}

func (r *reconciler) place(pos int, state slotState) {
	r.release(pos)
	r.slots[pos].state = state
}

// release drops the claim of the slot at pos.
func (r *reconciler) release(pos int) {
	claim := r.slots[pos].claim
	if claim == -1 {
		return
	}

	r.slots[pos].claim = -1
	delete(r.claimed, claim)

	for w, claims := range r.parked {
		for i, c := range claims {
			if c == claim {
				r.parked[w] = append(claims[:i], claims[i+1:]...)
				return
			}
		}
	}
}

// neededAfter reports whether an unaligned, unclaimed target position after t wants h.
func (r *reconciler) neededAfter(h digest.Hash, t int) bool {
	for _, t2 := range r.wanted.Data[h] {
		if t2 > t && !r.aligned[t2] && !r.claimed[t2] {
			return true
		}
	}
	return false
}

// discard gets rid of the unused element at pos, which sits in front of the current anchor.
func (r *reconciler) discard(pos int) error {
	r.release(pos)
	s := r.slots[pos]

	if !r.wanted.Contains(s.hash) {
		return r.remove(pos)
	}

	for _, t2 := range r.wanted.Data[s.hash] {
		if t2 <= r.pairs[r.cur].B || r.aligned[t2] || r.claimed[t2] || !Equal(s.value, r.target[t2]) {
			continue
		}

		window := r.cur + 1 + sort.Search(len(r.pairs)-r.cur-1, func(i int) bool {
			return r.pairs[r.cur+1+i].B > t2
		})

		claims := r.parked[window]
		offset := sort.SearchInts(claims, t2)

		dest := r.pairs[window-1].A + offset
		if dest > len(r.slots)-1 {
			dest = len(r.slots) - 1
		}

		if err := r.move(pos, dest); err != nil {
			return err
		}

		r.slots[dest].claim = t2
		r.claimed[t2] = true
		r.parked[window] = append(claims[:offset], append([]int{t2}, claims[offset:]...)...)
		return nil
	}

	return r.remove(pos)
}

func (r *reconciler) elem(idx int) string {
	return pointer.Append(r.path, strconv.Itoa(idx))
}

// removed shifts the pending anchors after an element at idx was removed.
func (r *reconciler) removed(idx int) {
	r.slots = append(r.slots[:idx], r.slots[idx+1:]...)
	for i := r.cur; i < len(r.pairs); i++ {
		if r.pairs[i].A > idx {
			r.pairs[i].A--
		}
	}
}

// inserted shifts the pending anchors after s was inserted at idx.
func (r *reconciler) inserted(idx int, s slot) {
	r.slots = append(r.slots, slot{})
	copy(r.slots[idx+1:], r.slots[idx:])
	r.slots[idx] = s
	for i := r.cur; i < len(r.pairs); i++ {
		if r.pairs[i].A >= idx {
			r.pairs[i].A++
		}
	}
}

func (r *reconciler) move(from, to int) error {
	if err := r.w.emit(OpMove{From: r.elem(from), Path: r.elem(to)}); err != nil {
		return err
	}
	s := r.slots[from]
	r.removed(from)
	r.inserted(to, s)
	return nil
}

func (r *reconciler) copy(from, to int) error {
	if err := r.w.emit(OpCopy{From: r.elem(from), Path: r.elem(to)}); err != nil {
		return err
	}
	s := r.slots[from]
	s.claim = -1
	r.inserted(to, s)
	return nil
}

func (r *reconciler) add(pos int) error {
	if err := r.w.emit(OpAdd{Path: r.elem(pos), Value: r.target[pos]}); err != nil {
		return err
	}
	r.inserted(pos, slot{hash: r.want[pos], value: r.target[pos], claim: -1})
	return nil
}

func (r *reconciler) remove(pos int) error {
	if err := r.w.emit(OpRemove{Path: r.elem(pos)}); err != nil {
		return err
	}
	r.removed(pos)
	return nil
}
