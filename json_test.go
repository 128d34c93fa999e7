package dandy_test

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sanity-io/dandy"
)

var allOps = dandy.Patch{
	dandy.OpAdd{Path: "/a", Value: map[string]interface{}{"b": []interface{}{1.0, "x"}}},
	dandy.OpAdd{Path: "/n", Value: nil},
	dandy.OpRemove{Path: "/a~1b/0"},
	dandy.OpReplace{Path: "", Value: "root"},
	dandy.OpCopy{From: "", Path: "/copy"},
	dandy.OpMove{From: "/x", Path: "/y"},
	dandy.OpTest{Path: "/t", Value: false},
}

func TestJSONRoundtrip(t *testing.T) {
	encoded, err := json.Marshal(allOps)
	require.NoError(t, err)

	var decoded dandy.Patch
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Equal(t, allOps, decoded)
}

func TestJSONFormat(t *testing.T) {
	encoded, err := json.Marshal(dandy.Patch{
		dandy.OpAdd{Path: "/n", Value: nil},
		dandy.OpCopy{From: "", Path: "/c"},
		dandy.OpRemove{Path: "/r"},
	})
	require.NoError(t, err)
	require.JSONEq(t, `[
		{"op": "add", "path": "/n", "value": null},
		{"op": "copy", "from": "", "path": "/c"},
		{"op": "remove", "path": "/r"}
	]`, string(encoded))
}

func TestJSONErrors(t *testing.T) {
	for _, input := range []string{
		`[{"op": "add", "path": "/a"}]`,
		`[{"op": "replace", "path": "/a"}]`,
		`[{"op": "move", "path": "/a"}]`,
		`[{"op": "copy", "path": "/a"}]`,
		`[{"op": "frobnicate", "path": "/a"}]`,
		`{"op": "add"}`,
	} {
		var patch dandy.Patch
		require.Error(t, json.Unmarshal([]byte(input), &patch), input)
	}
}

// sliceCodec stores every written value in memory.
type sliceCodec struct {
	values []interface{}
}

func (c *sliceCodec) WriteUint8(v uint8) error       { c.values = append(c.values, v); return nil }
func (c *sliceCodec) WriteString(v string) error     { c.values = append(c.values, v); return nil }
func (c *sliceCodec) WriteValue(v interface{}) error { c.values = append(c.values, v); return nil }

func (c *sliceCodec) next() (interface{}, error) {
	if len(c.values) == 0 {
		return nil, io.EOF
	}
	v := c.values[0]
	c.values = c.values[1:]
	return v, nil
}

func (c *sliceCodec) ReadUint8() (uint8, error) {
	v, err := c.next()
	if err != nil {
		return 0, err
	}
	return v.(uint8), nil
}

func (c *sliceCodec) ReadString() (string, error) {
	v, err := c.next()
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *sliceCodec) ReadValue() (interface{}, error) {
	return c.next()
}

func TestFormatRoundtrip(t *testing.T) {
	codec := &sliceCodec{}
	require.NoError(t, allOps.Encode(codec))

	var decoded dandy.Patch
	require.NoError(t, decoded.Decode(codec))
	require.Equal(t, allOps, decoded)
}

func TestFormatTruncated(t *testing.T) {
	codec := &sliceCodec{}
	require.NoError(t, dandy.WriteTo(codec, dandy.OpMove{From: "/a", Path: "/b"}))
	codec.values = codec.values[:2]

	var decoded dandy.Patch
	require.ErrorIs(t, decoded.Decode(codec), io.ErrUnexpectedEOF)
}
