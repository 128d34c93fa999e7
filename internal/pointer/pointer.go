// Package pointer implements JSON Pointers (RFC 6901) over decoded JSON values.
package pointer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// Compile turns a list of unescaped segments into a pointer string. The root is "".
func Compile(segments []string) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteByte('/')
		b.WriteString(jsonpointer.Escape(seg))
	}
	return b.String()
}

// Append returns the pointer for a child of ptr.
func Append(ptr string, segment string) string {
	return ptr + "/" + jsonpointer.Escape(segment)
}

// Parse splits a pointer string into unescaped segments.
func Parse(ptr string) ([]string, error) {
	p, err := jsonpointer.New(ptr)
	if err != nil {
		return nil, fmt.Errorf("pointer %q: %w", ptr, err)
	}
	return p.DecodedTokens(), nil
}

// Index parses an array index segment. Only canonical decimal indices are accepted:
// jsonpointer goes through strconv.Atoi, which also takes "01" and "+1".
func Index(segment string, length int) (int, bool) {
	if segment == "" || segment[0] < '0' || segment[0] > '9' || (len(segment) > 1 && segment[0] == '0') {
		return 0, false
	}
	idx, err := strconv.Atoi(segment)
	if err != nil || idx >= length {
		return 0, false
	}
	return idx, true
}

// Get resolves segments against doc.
func Get(doc interface{}, segments []string) (interface{}, bool) {
	cur := doc
	for _, seg := range segments {
		if arr, ok := cur.([]interface{}); ok {
			if _, ok := Index(seg, len(arr)); !ok {
				return nil, false
			}
		}

		next, _, err := jsonpointer.GetForToken(cur, seg)
		if err != nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Has reports whether segments resolve to a value in doc.
func Has(doc interface{}, segments []string) bool {
	_, ok := Get(doc, segments)
	return ok
}

// HasPrefix reports whether prefix is equal to, or an ancestor of, segments.
func HasPrefix(segments, prefix []string) bool {
	if len(prefix) > len(segments) {
		return false
	}
	for i, seg := range prefix {
		if segments[i] != seg {
			return false
		}
	}
	return true
}
