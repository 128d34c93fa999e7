package dandy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sanity-io/dandy"
)

type reportEntry struct {
	op  dandy.Op
	doc interface{}
}

type recordingReporter struct {
	entries []reportEntry
}

func (r *recordingReporter) Report(op dandy.Op, doc interface{}) {
	r.entries = append(r.entries, reportEntry{op: op, doc: doc})
}

func TestReporter(t *testing.T) {
	type testCase struct {
		name  string
		left  interface{}
		right interface{}
		ops   []dandy.OpType
	}

	for _, tc := range []testCase{
		{
			name:  "float no diff",
			left:  map[string]interface{}{"a": 1.0, "b": 2.0, "c": 3.0, "d": 4.0},
			right: map[string]interface{}{"a": 1.0, "b": 2.0, "c": 3.0, "d": 4.0},
			ops:   nil,
		},
		{
			name:  "float single field diff",
			left:  map[string]interface{}{"a": 1.0, "b": 3.0, "c": 3.0, "d": 4.0},
			right: map[string]interface{}{"a": 1.0, "b": 2.0, "c": 3.0, "d": 4.0},
			ops:   []dandy.OpType{dandy.TypeReplace},
		},
		{
			name:  "map changes values",
			left:  map[string]interface{}{"a": 1.0, "b": 2.0},
			right: map[string]interface{}{"a": 1.0, "b": map[string]interface{}{"c": 3.0, "d": 4.0}},
			ops:   []dandy.OpType{dandy.TypeReplace},
		},
		{
			name:  "map update",
			left:  map[string]interface{}{"a": 1.0},
			right: map[string]interface{}{"a": 1.0, "b": map[string]interface{}{"c": []interface{}{0.0}}},
			ops:   []dandy.OpType{dandy.TypeAdd},
		},
		{
			name:  "slice one element diff",
			left:  map[string]interface{}{"a": 1.0, "b": []interface{}{1.0, 2.0}},
			right: map[string]interface{}{"a": 1.0, "b": []interface{}{2.0, 2.0}},
			ops:   []dandy.OpType{dandy.TypeRemove, dandy.TypeCopy},
		},
		{
			name:  "string single field diff",
			left:  map[string]interface{}{"a": 1.0, "b": "hello", "c": 3.0, "d": 4.0},
			right: map[string]interface{}{"a": 1.0, "b": "world", "c": 3.0, "d": 4.0},
			ops:   []dandy.OpType{dandy.TypeReplace},
		},
		{
			name:  "shuffled array",
			left:  []interface{}{"a", "b", "c", "d"},
			right: []interface{}{"d", "c", "b", "a", "e"},
		},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			reporter := recordingReporter{}
			opts := dandy.DefaultOptions.WithReporter(&reporter)
			patch, err := opts.Diff(tc.left, tc.right)
			require.NoError(t, err)
			require.Len(t, reporter.entries, len(patch))

			if tc.ops != nil || len(patch) == 0 {
				var types []dandy.OpType
				for _, entry := range reporter.entries {
					types = append(types, entry.op.Type())
				}
				require.Equal(t, tc.ops, types)
			}

			// After every operation the working copy must match a plain application of
			// the patch so far.
			for idx, entry := range reporter.entries {
				require.Equal(t, patch[idx], entry.op)
				expected, err := dandy.ApplyPatch(tc.left, patch[:idx+1])
				require.NoError(t, err)
				require.True(t, dandy.Equal(expected, entry.doc), "after operation %d", idx)
			}

			if len(reporter.entries) > 0 {
				require.True(t, dandy.Equal(tc.right, reporter.entries[len(reporter.entries)-1].doc))
			}
		})
	}
}
