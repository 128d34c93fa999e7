// Package dandy computes JSON Patch (RFC 6902) documents between two JSON-like values.
//
// The differ walks the target document and keeps a working copy of the original document
// which every emitted operation is applied to straight away. Subtrees that exist elsewhere
// in the working copy are moved or copied instead of being rebuilt, and arrays are
// reconciled element by element so that reordering shows up as moves.
package dandy

import (
	"strconv"

	"github.com/sanity-io/dandy/internal/pointer"
)

type differ struct {
	target  interface{}
	working working
}

// Diff creates a patch which can be applied to the original document to produce the target
// document.
//
// This function uses the default options.
func Diff(original, target interface{}) (Patch, error) {
	return DefaultOptions.Diff(original, target)
}

// DoubleDiff creates two patches: The first can be applied to the left document to produce
// the right document, the second can be applied to the right document to produce the left
// document.
func DoubleDiff(left, right interface{}) (Patch, Patch, error) {
	return DefaultOptions.DoubleDiff(left, right)
}

// Diff creates a patch which can be applied to the original document to produce the target
// document.
func (options *Options) Diff(original, target interface{}) (Patch, error) {
	left, err := options.normalize(original, nil)
	if err != nil {
		return nil, err
	}
	right, err := options.normalize(target, nil)
	if err != nil {
		return nil, err
	}

	return options.diff(left, right)
}

// DoubleDiff creates a forward and a reverse patch.
func (options *Options) DoubleDiff(left, right interface{}) (Patch, Patch, error) {
	leftDoc, err := options.normalize(left, nil)
	if err != nil {
		return nil, nil, err
	}
	rightDoc, err := options.normalize(right, nil)
	if err != nil {
		return nil, nil, err
	}

	forward, err := options.diff(leftDoc, rightDoc)
	if err != nil {
		return nil, nil, err
	}
	reverse, err := options.diff(rightDoc, leftDoc)
	if err != nil {
		return nil, nil, err
	}
	return forward, reverse, nil
}

// diff expects both documents to be normalised. Neither of them is modified.
func (options *Options) diff(original, target interface{}) (Patch, error) {
	d := differ{
		target: target,
		working: working{
			options: options,
			doc:     original,
			patch:   Patch{},
		},
	}

	if err := d.build(); err != nil {
		return nil, err
	}

	return d.working.patch, nil
}

func (d *differ) build() error {
	if result, stopped := Visit(d.target, d.visitTarget); stopped {
		return result.(error)
	}

	return d.removeLeftovers()
}

// visitTarget makes the working copy hold value at path. It returns Descend when the
// children of value still need to be looked at.
func (d *differ) visitTarget(path Path, value interface{}) Action {
	w := &d.working

	current, exists := w.get(path)
	if exists && sameShape(current, value) && Equal(current, value) {
		return Skip
	}

	if done, err := d.relocate(path, value, exists); err != nil {
		return Stop(err)
	} else if done {
		return Skip
	}

	if exists {
		switch {
		case isArray(current) && isArray(value):
			if err := w.reconcile(path, current.([]interface{}), value.([]interface{})); err != nil {
				return Stop(err)
			}
			return Descend
		case isObject(current) && isObject(value):
			return Descend
		}

		if err := w.emit(OpReplace{Path: path.String(), Value: value}); err != nil {
			return Stop(err)
		}
		return Skip
	}

	if err := w.emit(OpAdd{Path: path.String(), Value: value}); err != nil {
		return Stop(err)
	}
	// The children were added along with value and would all compare equal.
	return Skip
}

// relocate tries to produce value at path by moving or copying an equal value that
// already exists in the working copy.
//
// A move is only used when the source path doesn't exist in the target. Everything that
// exists in the target is either still to be visited or already final, so taking it away
// could undo earlier work.
func (d *differ) relocate(path Path, value interface{}, exists bool) (bool, error) {
	w := &d.working

	from, ok := LocateMatch(w.doc, value, path)
	if !ok {
		return false, nil
	}

	fromPtr := from.String()
	keep := pointer.Has(d.target, from)

	// Adding into an array shifts the element that is currently at path.
	displaces := exists && w.parentIsArray(path)

	if !isObject(value) && !isArray(value) {
		switch {
		case !keep && !displaces:
		case keep && !exists && size(value) > len(fromPtr):
		default:
			return false, nil
		}
	}

	var op Op = OpMove{From: fromPtr, Path: path.String()}
	if keep {
		op = OpCopy{From: fromPtr, Path: path.String()}
	}
	if err := w.emit(op); err != nil {
		return false, err
	}

	if displaces {
		next := append(path[:len(path)-1:len(path)-1], nextIndex(path[len(path)-1]))
		if err := w.emit(OpRemove{Path: next.String()}); err != nil {
			return false, err
		}
	}

	return true, nil
}

// removeLeftovers removes everything in the working copy that doesn't exist in the target.
// Paths are collected in reverse visiting order so that later array elements are removed
// before earlier ones.
func (d *differ) removeLeftovers() error {
	var leftovers []string

	Visit(d.working.doc, func(path Path, value interface{}) Action {
		if !pointer.Has(d.target, path) {
			leftovers = append(leftovers, path.String())
			return Skip
		}
		return Descend
	})

	for i := len(leftovers) - 1; i >= 0; i-- {
		if err := d.working.emit(OpRemove{Path: leftovers[i]}); err != nil {
			return err
		}
	}
	return nil
}

func nextIndex(segment string) string {
	idx, _ := strconv.Atoi(segment)
	return strconv.Itoa(idx + 1)
}
