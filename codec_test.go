package xmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperCodec struct{ JSONCodec }

func (upperCodec) Name() string { return "upper" }

func TestCodecRegistry(t *testing.T) {
	c, err := NewCodec("json")
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())

	_, err = NewCodec("missing")
	assert.Error(t, err)

	assert.Error(t, RegisterCodec("", func() Codec { return upperCodec{} }))
	assert.Error(t, RegisterCodec("upper", nil))
	require.NoError(t, RegisterCodec("upper", func() Codec { return upperCodec{} }))

	c, err = NewCodec("upper")
	require.NoError(t, err)
	assert.Equal(t, "upper", c.Name())
}
