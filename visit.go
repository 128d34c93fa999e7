package dandy

import (
	"strconv"

	"github.com/sanity-io/dandy/internal/digest"
	"github.com/sanity-io/dandy/internal/pointer"
)

// Path is a list of unescaped JSON Pointer segments. The root is the empty path.
type Path []string

// ParsePath parses a JSON Pointer.
func ParsePath(ptr string) (Path, error) {
	segments, err := pointer.Parse(ptr)
	if err != nil {
		return nil, err
	}
	return Path(segments), nil
}

// String returns the path as a JSON Pointer.
func (p Path) String() string {
	return pointer.Compile(p)
}

// Clone returns a copy of the path which doesn't share memory with p.
func (p Path) Clone() Path {
	result := make(Path, len(p))
	copy(result, p)
	return result
}

// HasPrefix reports whether prefix is p itself or one of its ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	return pointer.HasPrefix(p, prefix)
}

// Action is returned by a Visitor to tell Visit how to continue.
type Action struct {
	recurse bool
	found   bool
	result  interface{}
}

var (
	// Descend continues into the children of the current value.
	Descend = Action{recurse: true}

	// Skip continues with the next sibling of the current value.
	Skip = Action{}
)

// Stop halts the traversal. Visit returns result.
func Stop(result interface{}) Action {
	return Action{found: true, result: result}
}

// Visitor is called for every value reached by Visit. The path is only valid for the
// duration of the call; use Path.Clone to keep it.
type Visitor func(path Path, value interface{}) Action

// Visit walks doc in pre-order: first the value itself, then array elements in index order
// and object fields in key order. Fields holding Absent are treated as missing.
//
// The second return value is true if the walk was stopped by a visitor returning Stop.
func Visit(doc interface{}, visitor Visitor) (interface{}, bool) {
	return visit(doc, make(Path, 0, 8), visitor)
}

func visit(value interface{}, path Path, visitor Visitor) (interface{}, bool) {
	action := visitor(path, value)
	if action.found {
		return action.result, true
	}

	if !action.recurse {
		return nil, false
	}

	switch value := value.(type) {
	case []interface{}:
		for idx, child := range value {
			if result, ok := visit(child, append(path, strconv.Itoa(idx)), visitor); ok {
				return result, true
			}
		}
	case map[string]interface{}:
		for _, key := range digest.SortedKeys(value) {
			child := value[key]
			if child == Absent {
				continue
			}
			if result, ok := visit(child, append(path, key), visitor); ok {
				return result, true
			}
		}
	}

	return nil, false
}
