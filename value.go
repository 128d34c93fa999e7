package dandy

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/sanity-io/dandy/internal/pointer"
)

type absent struct{}

// Absent can be stored as an object value to mark the key as not present. Such entries are
// dropped when a document is normalised.
var Absent = absent{}

// normalize returns a deep copy of value where every number is a float64 and every
// object/array has the type produced by encoding/json.
func (options *Options) normalize(value interface{}, path []string) (interface{}, error) {
	if options.convertFunc != nil {
		value = options.convertFunc(value)
	}

	switch value := value.(type) {
	case nil, bool, string:
		return value, nil
	case float64:
		return finite(value, path)
	case float32:
		return finite(float64(value), path)
	case int:
		return float64(value), nil
	case int8:
		return float64(value), nil
	case int16:
		return float64(value), nil
	case int32:
		return float64(value), nil
	case int64:
		return float64(value), nil
	case uint:
		return float64(value), nil
	case uint8:
		return float64(value), nil
	case uint16:
		return float64(value), nil
	case uint32:
		return float64(value), nil
	case uint64:
		return float64(value), nil
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %q at %q", ErrInvalidInput, value, pointer.Compile(path))
		}
		return finite(f, path)
	case map[string]interface{}:
		obj := make(map[string]interface{}, len(value))
		for key, child := range value {
			if child == Absent {
				continue
			}
			norm, err := options.normalize(child, append(path, key))
			if err != nil {
				return nil, err
			}
			obj[key] = norm
		}
		return obj, nil
	case []interface{}:
		arr := make([]interface{}, len(value))
		for idx, child := range value {
			norm, err := options.normalize(child, append(path, fmt.Sprint(idx)))
			if err != nil {
				return nil, err
			}
			arr[idx] = norm
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T at %q", ErrInvalidInput, value, pointer.Compile(path))
	}
}

// finite rejects NaN and the infinities, which JSON can't represent.
func finite(f float64, path []string) (interface{}, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: number %v at %q", ErrInvalidInput, f, pointer.Compile(path))
	}
	return f, nil
}

// Normalize validates a document and returns a deep copy built only from the types produced by
// encoding/json. Integers and json.Number become float64; Absent object entries are removed.
func Normalize(value interface{}) (interface{}, error) {
	return DefaultOptions.normalize(value, nil)
}

var emptyEqual = cmpopts.EquateEmpty()

// Equal reports whether two normalised documents are structurally equal. Object key order is
// irrelevant; arrays are compared element by element.
func Equal(a, b interface{}) bool {
	return cmp.Equal(a, b, emptyEqual)
}

// sameShape is a cheap pre-check for Equal.
func sameShape(a, b interface{}) bool {
	switch a := a.(type) {
	case map[string]interface{}:
		b, ok := b.(map[string]interface{})
		return ok && len(a) == len(b)
	case []interface{}:
		b, ok := b.([]interface{})
		return ok && len(a) == len(b)
	case nil:
		return b == nil
	case bool:
		_, ok := b.(bool)
		return ok
	case float64:
		_, ok := b.(float64)
		return ok
	case string:
		_, ok := b.(string)
		return ok
	}
	return false
}

func isArray(value interface{}) bool {
	_, ok := value.([]interface{})
	return ok
}

func isObject(value interface{}) bool {
	_, ok := value.(map[string]interface{})
	return ok
}

// size approximates the encoded size of a value. It is used to decide whether a copy
// is worth emitting instead of spelling a scalar out.
func size(value interface{}) int {
	switch value := value.(type) {
	case nil:
		return 4
	case bool:
		return 5
	case float64:
		return len(fmt.Sprint(value))
	case string:
		return len(value) + 2
	case map[string]interface{}:
		n := 2
		for key, child := range value {
			n += len(key) + 4 + size(child)
		}
		return n
	case []interface{}:
		n := 2
		for _, child := range value {
			n += 1 + size(child)
		}
		return n
	}
	return 0
}
