package dandy

import (
	"github.com/sanity-io/dandy/internal/pointer"
)

// working is the differ's scratch copy of the original document. After the n-th emitted
// operation it equals the original document with the first n operations applied.
type working struct {
	options *Options
	doc     interface{}
	patch   Patch
}

// emit applies op to the working copy and appends it to the patch. Both documents were
// normalised (convert func included) before diffing, so op is applied as it is.
func (w *working) emit(op Op) error {
	doc, err := patchTree(w.doc, op)
	if err != nil {
		return &InconsistencyError{Op: op, Err: err}
	}

	w.doc = doc
	w.patch = append(w.patch, op)

	if w.options.reporter != nil {
		w.options.reporter.Report(op, doc)
	}
	return nil
}

func (w *working) get(path Path) (interface{}, bool) {
	return pointer.Get(w.doc, path)
}

// parentIsArray reports whether path points at an array element.
func (w *working) parentIsArray(path Path) bool {
	if len(path) == 0 {
		return false
	}
	parent, ok := w.get(path[:len(path)-1])
	return ok && isArray(parent)
}
