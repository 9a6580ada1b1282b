package leaselite

import (
	"bytes"
	"reflect"

	"github.com/stephenfire/go-rtl"
	"github.com/vmihailenco/msgpack/v5"
)

// Codec turns workflow inputs and step outputs into the bytes kept by the
// store. Values handed to a handler are always decoded from those bytes.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type MsgpackCodec struct{}

func (MsgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (MsgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

// RTLCodec encodes with go-rtl. Nil values are stored as empty payloads.
type RTLCodec struct{}

func (RTLCodec) Marshal(v any) ([]byte, error) {
	if v == nil {
		return []byte{}, nil
	}
	// encode the value, not the pointer
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return []byte{}, nil
		}
		v = rv.Elem().Interface()
	}
	buf := new(bytes.Buffer)
	if err := rtl.Encode(v, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (RTLCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return rtl.Decode(bytes.NewReader(data), v)
}
