package dandy

import (
	"encoding/json"
	"errors"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/sanity-io/dandy/internal/pointer"
)

var applyOptions = func() *jsonpatch.ApplyOptions {
	opts := jsonpatch.NewApplyOptions()
	opts.SupportNegativeIndices = false
	opts.EnsurePathExistsOnAdd = false
	return opts
}()

// ApplyPatch applies a patch to a document and returns the new document. The document
// passed in is never modified.
//
// This function uses the default options.
func ApplyPatch(doc interface{}, patch Patch) (interface{}, error) {
	return DefaultOptions.ApplyPatch(doc, patch)
}

// ApplyPatch applies a patch to a document and returns the new document. The document
// passed in is never modified.
func (options *Options) ApplyPatch(doc interface{}, patch Patch) (interface{}, error) {
	root, err := options.normalize(doc, nil)
	if err != nil {
		return nil, err
	}

	for idx, op := range patch {
		root, err = options.applyOp(root, op)
		if err != nil {
			return nil, fmt.Errorf("operation %d (%s %q): %w", idx, op.Type(), op.Pointer(), err)
		}
	}

	return root, nil
}

// applyOp applies a single operation to a normalised document.
func (options *Options) applyOp(doc interface{}, op Op) (interface{}, error) {
	if value, ok := payload(op); ok {
		norm, err := options.normalize(value, nil)
		if err != nil {
			return nil, err
		}
		op = withPayload(op, norm)
	}

	path, err := pointer.Parse(op.Pointer())
	if err != nil {
		return nil, err
	}

	from, hasFrom := source(op)
	if hasFrom {
		if _, err := pointer.Parse(from); err != nil {
			return nil, err
		}
	}

	if len(path) == 0 || (hasFrom && from == "") {
		return options.applyRoot(doc, op, from)
	}

	if !isObject(doc) && !isArray(doc) {
		return nil, fmt.Errorf("path %q does not exist in a scalar document", op.Pointer())
	}

	encodedDoc, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	encodedOp, err := Patch{op}.MarshalJSON()
	if err != nil {
		return nil, err
	}

	jp, err := jsonpatch.DecodePatch(encodedOp)
	if err != nil {
		return nil, err
	}

	encodedResult, err := jp.ApplyWithOptions(encodedDoc, applyOptions)
	if err != nil {
		return nil, err
	}

	var result interface{}
	if err := json.Unmarshal(encodedResult, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// applyRoot handles operations whose path or source is the whole document.
func (options *Options) applyRoot(doc interface{}, op Op, from string) (interface{}, error) {
	switch op := op.(type) {
	case OpAdd:
		return op.Value, nil
	case OpReplace:
		return op.Value, nil
	case OpTest:
		if !Equal(doc, op.Value) {
			return nil, errors.New("test failed")
		}
		return doc, nil
	case OpRemove:
		return nil, errors.New("cannot remove the document root")
	case OpMove:
		if op.Path == from {
			return doc, nil
		}
		if from == "" {
			return nil, fmt.Errorf("cannot move the document root into %q", op.Path)
		}
		return resolve(doc, from)
	case OpCopy:
		if from == "" {
			if op.Path == "" {
				return doc, nil
			}
			return options.applyOp(doc, OpAdd{Path: op.Path, Value: doc})
		}
		return resolve(doc, from)
	}
	return nil, fmt.Errorf("unknown op: %T", op)
}

func resolve(doc interface{}, ptr string) (interface{}, error) {
	segments, err := pointer.Parse(ptr)
	if err != nil {
		return nil, err
	}
	value, ok := pointer.Get(doc, segments)
	if !ok {
		return nil, fmt.Errorf("path %q does not exist", ptr)
	}
	return value, nil
}

func withPayload(op Op, value interface{}) Op {
	switch op := op.(type) {
	case OpAdd:
		op.Value = value
		return op
	case OpReplace:
		op.Value = value
		return op
	case OpTest:
		op.Value = value
		return op
	}
	return op
}
