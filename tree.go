package dandy

import (
	"errors"
	"fmt"

	"github.com/sanity-io/dandy/internal/pointer"
)

// patchTree applies op to a normalised document without modifying it. Only the containers
// along the affected paths are copied; everything else is shared with doc. Values carried
// by op are inserted as they are, so they must be normalised already.
func patchTree(doc interface{}, op Op) (interface{}, error) {
	path, err := pointer.Parse(op.Pointer())
	if err != nil {
		return nil, err
	}

	switch op := op.(type) {
	case OpAdd:
		return insertAt(doc, path, op.Value)
	case OpReplace:
		return replaceAt(doc, path, op.Value)
	case OpRemove:
		return removeAt(doc, path)
	case OpTest:
		value, ok := pointer.Get(doc, path)
		if !ok {
			return nil, fmt.Errorf("path %q does not exist", op.Path)
		}
		if !Equal(value, op.Value) {
			return nil, errors.New("test failed")
		}
		return doc, nil
	case OpCopy:
		from, err := pointer.Parse(op.From)
		if err != nil {
			return nil, err
		}
		value, ok := pointer.Get(doc, from)
		if !ok {
			return nil, fmt.Errorf("path %q does not exist", op.From)
		}
		return insertAt(doc, path, value)
	case OpMove:
		if op.From == op.Path {
			return doc, nil
		}
		from, err := pointer.Parse(op.From)
		if err != nil {
			return nil, err
		}
		if pointer.HasPrefix(path, from) {
			return nil, fmt.Errorf("cannot move %q into its own child %q", op.From, op.Path)
		}
		value, ok := pointer.Get(doc, from)
		if !ok {
			return nil, fmt.Errorf("path %q does not exist", op.From)
		}
		doc, err = removeAt(doc, from)
		if err != nil {
			return nil, err
		}
		return insertAt(doc, path, value)
	}
	return nil, fmt.Errorf("unknown op: %T", op)
}

// update rebuilds the containers along path and lets fn produce the new version of the
// container holding the last segment.
func update(node interface{}, path []string, fn func(parent interface{}, key string) (interface{}, error)) (interface{}, error) {
	key := path[0]
	if len(path) == 1 {
		return fn(node, key)
	}

	switch node := node.(type) {
	case map[string]interface{}:
		child, ok := node[key]
		if !ok {
			return nil, fmt.Errorf("key %q does not exist", key)
		}
		child, err := update(child, path[1:], fn)
		if err != nil {
			return nil, err
		}
		return withKey(node, key, child), nil
	case []interface{}:
		idx, ok := pointer.Index(key, len(node))
		if !ok {
			return nil, fmt.Errorf("index %q is out of bounds", key)
		}
		child, err := update(node[idx], path[1:], fn)
		if err != nil {
			return nil, err
		}
		result := make([]interface{}, len(node))
		copy(result, node)
		result[idx] = child
		return result, nil
	}
	return nil, fmt.Errorf("cannot look up %q in %T", key, node)
}

func withKey(obj map[string]interface{}, key string, value interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(obj)+1)
	for k, v := range obj {
		result[k] = v
	}
	result[key] = value
	return result
}

func insertAt(doc interface{}, path []string, value interface{}) (interface{}, error) {
	if len(path) == 0 {
		return value, nil
	}

	return update(doc, path, func(parent interface{}, key string) (interface{}, error) {
		switch parent := parent.(type) {
		case map[string]interface{}:
			return withKey(parent, key, value), nil
		case []interface{}:
			idx := len(parent)
			if key != "-" {
				var ok bool
				if idx, ok = pointer.Index(key, len(parent)+1); !ok {
					return nil, fmt.Errorf("index %q is out of bounds", key)
				}
			}
			result := make([]interface{}, len(parent)+1)
			copy(result, parent[:idx])
			result[idx] = value
			copy(result[idx+1:], parent[idx:])
			return result, nil
		}
		return nil, fmt.Errorf("cannot add %q to %T", key, parent)
	})
}

func replaceAt(doc interface{}, path []string, value interface{}) (interface{}, error) {
	if len(path) == 0 {
		return value, nil
	}

	return update(doc, path, func(parent interface{}, key string) (interface{}, error) {
		switch parent := parent.(type) {
		case map[string]interface{}:
			if _, ok := parent[key]; !ok {
				return nil, fmt.Errorf("key %q does not exist", key)
			}
			return withKey(parent, key, value), nil
		case []interface{}:
			idx, ok := pointer.Index(key, len(parent))
			if !ok {
				return nil, fmt.Errorf("index %q is out of bounds", key)
			}
			result := make([]interface{}, len(parent))
			copy(result, parent)
			result[idx] = value
			return result, nil
		}
		return nil, fmt.Errorf("cannot replace %q in %T", key, parent)
	})
}

func removeAt(doc interface{}, path []string) (interface{}, error) {
	if len(path) == 0 {
		return nil, errors.New("cannot remove the document root")
	}

	return update(doc, path, func(parent interface{}, key string) (interface{}, error) {
		switch parent := parent.(type) {
		case map[string]interface{}:
			if _, ok := parent[key]; !ok {
				return nil, fmt.Errorf("key %q does not exist", key)
			}
			result := make(map[string]interface{}, len(parent))
			for k, v := range parent {
				if k != key {
					result[k] = v
				}
			}
			return result, nil
		case []interface{}:
			idx, ok := pointer.Index(key, len(parent))
			if !ok {
				return nil, fmt.Errorf("index %q is out of bounds", key)
			}
			result := make([]interface{}, 0, len(parent)-1)
			result = append(result, parent[:idx]...)
			return append(result, parent[idx+1:]...), nil
		}
		return nil, fmt.Errorf("cannot remove %q from %T", key, parent)
	})
}
