package dandy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sanity-io/dandy"
)

func TestApplyPatch(t *testing.T) {
	for _, tc := range []struct {
		name     string
		doc      string
		patch    dandy.Patch
		expected string
	}{
		{
			name:     "add to object",
			doc:      `{"a": 1}`,
			patch:    dandy.Patch{dandy.OpAdd{Path: "/b", Value: []interface{}{1, 2}}},
			expected: `{"a": 1, "b": [1, 2]}`,
		},
		{
			name:     "insert and append",
			doc:      `[1, 3]`,
			patch:    dandy.Patch{dandy.OpAdd{Path: "/1", Value: 2}, dandy.OpAdd{Path: "/-", Value: 4}},
			expected: `[1, 2, 3, 4]`,
		},
		{
			name:     "move within array",
			doc:      `["a", "b", "c"]`,
			patch:    dandy.Patch{dandy.OpMove{From: "/0", Path: "/2"}},
			expected: `["b", "c", "a"]`,
		},
		{
			name:     "copy nested",
			doc:      `{"a": {"b": [1]}}`,
			patch:    dandy.Patch{dandy.OpCopy{From: "/a/b", Path: "/c"}},
			expected: `{"a": {"b": [1]}, "c": [1]}`,
		},
		{
			name:     "escaped keys",
			doc:      `{"a/b": {"m~n": 1}}`,
			patch:    dandy.Patch{dandy.OpReplace{Path: "/a~1b/m~0n", Value: 2}},
			expected: `{"a/b": {"m~n": 2}}`,
		},
		{
			name:     "replace scalar root",
			doc:      `1`,
			patch:    dandy.Patch{dandy.OpReplace{Path: "", Value: "x"}},
			expected: `"x"`,
		},
		{
			name:     "copy root",
			doc:      `{"a": 1}`,
			patch:    dandy.Patch{dandy.OpCopy{From: "", Path: "/b"}},
			expected: `{"a": 1, "b": {"a": 1}}`,
		},
		{
			name:     "move into root",
			doc:      `{"a": {"b": 1}}`,
			patch:    dandy.Patch{dandy.OpMove{From: "/a", Path: ""}},
			expected: `{"b": 1}`,
		},
		{
			name:     "test root",
			doc:      `[1]`,
			patch:    dandy.Patch{dandy.OpTest{Path: "", Value: []interface{}{1}}},
			expected: `[1]`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doc := parse(t, tc.doc)
			result, err := dandy.ApplyPatch(doc, tc.patch)
			require.NoError(t, err)
			require.Equal(t, parse(t, tc.expected), result)

			// The input is left alone.
			require.Equal(t, parse(t, tc.doc), doc)
		})
	}
}

func TestApplyPatchErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		doc   string
		patch dandy.Patch
	}{
		{"missing parent", `{}`, dandy.Patch{dandy.OpAdd{Path: "/a/b", Value: 1}}},
		{"out of bounds", `[1]`, dandy.Patch{dandy.OpAdd{Path: "/3", Value: 1}}},
		{"negative index", `[1]`, dandy.Patch{dandy.OpRemove{Path: "/-1"}}},
		{"remove missing", `{}`, dandy.Patch{dandy.OpRemove{Path: "/a"}}},
		{"remove root", `{}`, dandy.Patch{dandy.OpRemove{Path: ""}}},
		{"scalar document", `1`, dandy.Patch{dandy.OpAdd{Path: "/a", Value: 1}}},
		{"failed test", `{"a": 1}`, dandy.Patch{dandy.OpTest{Path: "/a", Value: 2}}},
		{"bad pointer", `{}`, dandy.Patch{dandy.OpAdd{Path: "a", Value: 1}}},
		{"invalid value", `{}`, dandy.Patch{dandy.OpAdd{Path: "/a", Value: struct{}{}}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := dandy.ApplyPatch(parse(t, tc.doc), tc.patch)
			require.Error(t, err)
		})
	}
}
