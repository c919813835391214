package main

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arm-software/astcenc-dynamic/astc"
	"github.com/arm-software/astcenc-dynamic/astc/dynamic"
)

func TestHandleLifecycle(t *testing.T) {
	p := dynamic.DefaultParams()
	p.Quality = astc.PreFastest
	p.Threads = 2

	h := createContext(p)
	require.NotZero(t, h)
	defer freeContext(h)

	const w, hgt = 16, 8
	pix := make([]byte, w*hgt*4)
	for i := range pix {
		pix[i] = byte(i)
	}
	out := make([]byte, dynamic.OutputLen(w, hgt, 4))

	status := compress(unsafe.Pointer(&pix[0]), unsafe.Pointer(&out[0]), astc.SwizzleRGBA, w, hgt, h)
	require.Equal(t, 0, status)

	hdr, err := astc.ParseHeader(out)
	require.NoError(t, err)
	assert.EqualValues(t, w, hdr.SizeX)
	assert.EqualValues(t, hgt, hdr.SizeY)
}

func TestCreateContext_InvalidReturnsZero(t *testing.T) {
	p := dynamic.DefaultParams()
	p.BlockSize = 7
	assert.Zero(t, createContext(p))
}

func TestCompress_NullArguments(t *testing.T) {
	p := dynamic.DefaultParams()
	h := createContext(p)
	require.NotZero(t, h)
	defer freeContext(h)

	out := make([]byte, dynamic.OutputLen(4, 4, 4))
	for i := range out {
		out[i] = 0xEE
	}
	pix := make([]byte, 4*4*4)

	assert.Equal(t, int(astc.ErrBadParam), compress(nil, unsafe.Pointer(&out[0]), astc.SwizzleRGBA, 4, 4, h))
	assert.Equal(t, int(astc.ErrBadParam), compress(unsafe.Pointer(&pix[0]), nil, astc.SwizzleRGBA, 4, 4, h))
	assert.Equal(t, int(astc.ErrBadParam), compress(unsafe.Pointer(&pix[0]), unsafe.Pointer(&out[0]), astc.SwizzleRGBA, 0, 4, h))
	assert.Equal(t, int(astc.ErrBadContext), compress(unsafe.Pointer(&pix[0]), unsafe.Pointer(&out[0]), astc.SwizzleRGBA, 4, 4, 0))
	for _, b := range out[:dynamic.HeaderSize] {
		assert.Equal(t, byte(0xEE), b)
	}
}

func TestErrorCString(t *testing.T) {
	assert.NotNil(t, errorCString(astc.Success))
	assert.NotNil(t, errorCString(astc.ErrBadSwizzle))
	assert.Same(t, errorCString(astc.ErrBadSwizzle), errorCString(astc.ErrBadSwizzle))
	assert.Nil(t, errorCString(astc.ErrorCode(1000)))
}
