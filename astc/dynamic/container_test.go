package dynamic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arm-software/astcenc-dynamic/astc"
	"github.com/arm-software/astcenc-dynamic/astc/dynamic"
)

func TestOutputLen(t *testing.T) {
	cases := []struct {
		w, h, block int
		want        int
	}{
		{64, 64, 4, 16*16*16 + 16},
		{1, 1, 4, 16 + 16},
		{5, 5, 4, 2*2*16 + 16},
		{100, 50, 6, 17*9*16 + 16},
		{12, 12, 12, 16 + 16},
		{13, 1, 12, 2*16 + 16},
		{0, 8, 4, 0},
		{8, -1, 4, 0},
		{8, 8, 0, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, dynamic.OutputLen(c.w, c.h, c.block), "OutputLen(%d, %d, %d)", c.w, c.h, c.block)
	}
}

func TestMarshalHeader_Layout(t *testing.T) {
	h := dynamic.MarshalHeader(64, 64, 4)

	assert.Equal(t, []byte{0x13, 0xAB, 0xA1, 0x5C}, h[0:4])
	assert.Equal(t, []byte{4, 4, 1}, h[4:7])
	assert.Equal(t, []byte{64, 0, 0}, h[7:10])
	assert.Equal(t, []byte{64, 0, 0}, h[10:13])
	assert.Equal(t, []byte{1, 0, 0}, h[13:16])

	h = dynamic.MarshalHeader(0x123456, 0xABCDEF, 10)
	assert.Equal(t, []byte{10, 10, 1}, h[4:7])
	assert.Equal(t, []byte{0x56, 0x34, 0x12}, h[7:10])
	assert.Equal(t, []byte{0xEF, 0xCD, 0xAB}, h[10:13])
}

func TestMarshalHeader_DimensionsWrapAt24Bits(t *testing.T) {
	// 2^24 does not fit the 24-bit fields and wraps to 0.
	h := dynamic.MarshalHeader(1<<24, 1<<24+5, 4)
	assert.Equal(t, []byte{0, 0, 0}, h[7:10])
	assert.Equal(t, []byte{5, 0, 0}, h[10:13])

	h = dynamic.MarshalHeader(1<<24-1, 1, 4)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF}, h[7:10])
}

func TestMarshalHeader_ParsedByCodec(t *testing.T) {
	enc := dynamic.MarshalHeader(1024, 768, 8)
	h, err := astc.ParseHeader(enc[:])
	require.NoError(t, err)

	assert.Equal(t, astc.Header{BlockX: 8, BlockY: 8, BlockZ: 1, SizeX: 1024, SizeY: 768, SizeZ: 1}, h)
	_, _, _, total, err := h.BlockCount()
	require.NoError(t, err)
	assert.Equal(t, 128*96, total)
	assert.Equal(t, dynamic.OutputLen(1024, 768, 8), dynamic.HeaderSize+total*astc.BlockBytes)

	enc = dynamic.MarshalHeader(33, 17, 5)
	h, err = astc.ParseHeader(enc[:])
	require.NoError(t, err)
	assert.Equal(t, astc.Header{BlockX: 5, BlockY: 5, BlockZ: 1, SizeX: 33, SizeY: 17, SizeZ: 1}, h)
}

func TestPutHeader_WritesOnlyHeader(t *testing.T) {
	buf := make([]byte, 20)
	for i := range buf {
		buf[i] = 0xEE
	}
	dynamic.PutHeader(buf, 8, 8, 4)
	assert.Equal(t, []byte{0xEE, 0xEE, 0xEE, 0xEE}, buf[16:])
}
