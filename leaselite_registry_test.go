package leaselite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(*Context, Input) error { return nil }

// go test -timeout 30s -v -count=1 -run ^TestRegistryBuild$ .
func TestRegistryBuild(t *testing.T) {
	r, err := NewRegistry().
		Handler("b", noop).
		Handler("a", noop).
		Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, r.Names())

	_, ok := r.Get("a")
	assert.True(t, ok)
	_, ok = r.Get("c")
	assert.False(t, ok)
}

func TestRegistryRejectsBadHandlers(t *testing.T) {
	_, err := NewRegistry().
		Handler("a", noop).
		Handler("a", noop).
		Handler("", noop).
		Handler("nil", nil).
		Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateHandler)
	assert.ErrorIs(t, err, ErrEmptyHandlerName)
	assert.ErrorIs(t, err, ErrNilHandler)
}

func TestRegisterAfterBuild(t *testing.T) {
	r, err := NewRegistry().Build()
	require.NoError(t, err)
	require.NoError(t, r.Register("late", noop))
	assert.ErrorIs(t, r.Register("late", noop), ErrDuplicateHandler)
	assert.Equal(t, []string{"late"}, r.Names())
}

func TestHandleDecodesInput(t *testing.T) {
	type order struct {
		ID    string `msgpack:"id"`
		Items int    `msgpack:"items"`
	}
	codec := MsgpackCodec{}
	data, err := codec.Marshal(order{ID: "o-1", Items: 3})
	require.NoError(t, err)

	var got order
	fn := Handle(func(ctx *Context, in order) error {
		got = in
		return nil
	})
	require.NoError(t, fn(nil, Input{data: data, codec: codec}))
	assert.Equal(t, order{ID: "o-1", Items: 3}, got)

	err = fn(nil, Input{data: []byte{0xc1}, codec: codec})
	assert.ErrorContains(t, err, "decode input")
}
