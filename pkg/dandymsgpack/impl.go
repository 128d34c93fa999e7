package dandymsgpack

import (
	"github.com/sanity-io/dandy"
	"github.com/vmihailenco/msgpack/v4"
)

// MsgpackPatch is an alias for dandy.Patch which implements CustomEncoder/CustomDecoder.
// You should only use this if you need to embed a patch inside a larger msgpack structure.
// Otherwise it's preferred to use the Marshal and Unmarshal functions.
type MsgpackPatch dandy.Patch

var _ msgpack.CustomEncoder = (*MsgpackPatch)(nil)
var _ msgpack.CustomDecoder = (*MsgpackPatch)(nil)

// Marshal encodes a patch using Msgpack.
func Marshal(patch dandy.Patch) ([]byte, error) {
	mppatch := MsgpackPatch(patch)
	return msgpack.Marshal(&mppatch)
}

// Unmarshal decodes a patch using Msgpack.
func Unmarshal(data []byte) (dandy.Patch, error) {
	var mppatch MsgpackPatch
	err := msgpack.Unmarshal(data, &mppatch)
	if err != nil {
		return nil, err
	}
	return dandy.Patch(mppatch), nil
}

type writer struct {
	*msgpack.Encoder
}

func (w writer) WriteUint8(v uint8) error {
	return w.EncodeUint8(v)
}

func (w writer) WriteString(v string) error {
	return w.EncodeString(v)
}

func (w writer) WriteValue(v interface{}) error {
	return w.Encode(v)
}

func (patch *MsgpackPatch) EncodeMsgpack(enc *msgpack.Encoder) error {
	return dandy.Patch(*patch).Encode(writer{enc})
}

type reader struct {
	*msgpack.Decoder
}

func (r reader) ReadUint8() (uint8, error) {
	return r.DecodeUint8()
}

func (r reader) ReadString() (string, error) {
	return r.DecodeString()
}

func (r reader) ReadValue() (interface{}, error) {
	return r.DecodeInterface()
}

func (patch *MsgpackPatch) DecodeMsgpack(dec *msgpack.Decoder) error {
	result := dandy.Patch{}
	if err := result.Decode(reader{dec}); err != nil {
		return err
	}
	*patch = MsgpackPatch(result)
	return nil
}
