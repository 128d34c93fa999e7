// Package digest computes content hashes of decoded JSON values. Two values that are
// structurally equal (ignoring object key order) always have the same digest.
package digest

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"hash"
	"math"
	"sort"
)

type Hash [sha256.Size]byte

const (
	typeString byte = iota
	typeFloat
	typeMap
	typeSlice
	typeTrue
	typeFalse
	typeNull
)

func hashFor(t byte) Hash {
	h := sha256.New()
	h.Write([]byte{t})
	return sum(h)
}

var (
	HashTrue  = hashFor(typeTrue)
	HashFalse = hashFor(typeFalse)
	HashNull  = hashFor(typeNull)
)

func sum(h hash.Hash) (result Hash) {
	_ = h.Sum(result[:0])
	return
}

func HashString(s string) Hash {
	h := sha256.New()
	h.Write([]byte{typeString})
	h.Write([]byte(s))
	return sum(h)
}

func HashFloat64(f float64) Hash {
	if f == 0 {
		// -0 and 0 compare equal
		f = 0
	}
	var buf [9]byte
	buf[0] = typeFloat
	binary.BigEndian.PutUint64(buf[1:], math.Float64bits(f))
	return sha256.Sum256(buf[:])
}

// Of returns the digest of a normalised value.
func Of(value interface{}) (Hash, error) {
	switch value := value.(type) {
	case nil:
		return HashNull, nil
	case bool:
		if value {
			return HashTrue, nil
		}
		return HashFalse, nil
	case float64:
		return HashFloat64(value), nil
	case string:
		return HashString(value), nil
	case map[string]interface{}:
		h := sha256.New()
		h.Write([]byte{typeMap})
		for _, key := range SortedKeys(value) {
			child, err := Of(value[key])
			if err != nil {
				return Hash{}, err
			}
			keyHash := HashString(key)
			h.Write(keyHash[:])
			h.Write(child[:])
		}
		return sum(h), nil
	case []interface{}:
		h := sha256.New()
		h.Write([]byte{typeSlice})
		for _, elem := range value {
			child, err := Of(elem)
			if err != nil {
				return Hash{}, err
			}
			h.Write(child[:])
		}
		return sum(h), nil
	default:
		return Hash{}, fmt.Errorf("unsupported type: %T", value)
	}
}

// List returns the digest of every element of an array.
func List(elems []interface{}) ([]Hash, error) {
	result := make([]Hash, len(elems))
	for i, elem := range elems {
		h, err := Of(elem)
		if err != nil {
			return nil, err
		}
		result[i] = h
	}
	return result, nil
}

func SortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
