package leaselite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shipment struct {
	Carrier string
	Weight  uint64
	Tags    []string
}

// go test -timeout 30s -v -count=1 -run ^TestCodecs$ .
func TestCodecs(t *testing.T) {
	for name, codec := range map[string]Codec{
		"msgpack": MsgpackCodec{},
		"rtl":     RTLCodec{},
	} {
		t.Run(name, func(t *testing.T) {
			in := shipment{Carrier: "ups", Weight: 1200, Tags: []string{"fragile"}}
			data, err := codec.Marshal(&in)
			require.NoError(t, err)

			var out shipment
			require.NoError(t, codec.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestRTLCodecNil(t *testing.T) {
	codec := RTLCodec{}
	data, err := codec.Marshal(nil)
	require.NoError(t, err)
	assert.Empty(t, data)

	var ptr *shipment
	data, err = codec.Marshal(ptr)
	require.NoError(t, err)
	assert.Empty(t, data)

	out := shipment{Carrier: "kept"}
	require.NoError(t, codec.Unmarshal(nil, &out))
	assert.Equal(t, "kept", out.Carrier)
}

func TestInputRawIsACopy(t *testing.T) {
	in := Input{data: []byte("abc"), codec: MsgpackCodec{}}
	raw := in.Raw()
	raw[0] = 'X'
	assert.Equal(t, []byte("abc"), in.data)
}
