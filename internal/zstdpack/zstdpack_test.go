package zstdpack_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arm-software/astcenc-dynamic/internal/zstdpack"
)

func newPacker(t *testing.T, level uint8) *zstdpack.Packer {
	t.Helper()
	opts := zstdpack.DefaultOptions()
	opts.Level = level
	p, err := zstdpack.New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, p.Close()) })
	return p
}

func TestPackUnpack(t *testing.T) {
	data := bytes.Repeat([]byte{0x13, 0xAB, 0xA1, 0x5C, 4, 4, 1, 0, 1, 2, 3}, 512)

	for _, level := range []uint8{zstdpack.FastestLevel, zstdpack.DefaultLevel, zstdpack.BetterLevel, zstdpack.BestLevel} {
		p := newPacker(t, level)
		assert.Equal(t, level, p.Level())

		packed := p.Pack(data)
		assert.True(t, zstdpack.IsPacked(packed))
		assert.Less(t, len(packed), len(data))

		out, err := p.Unpack(packed)
		require.NoError(t, err)
		assert.Equal(t, data, out)
	}
}

func TestPack_Empty(t *testing.T) {
	p := newPacker(t, zstdpack.DefaultLevel)

	packed := p.Pack(nil)
	assert.True(t, zstdpack.IsPacked(packed))

	out, err := p.Unpack(packed)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMaybeUnpack(t *testing.T) {
	p := newPacker(t, zstdpack.DefaultLevel)
	plain := []byte{0x13, 0xAB, 0xA1, 0x5C, 4, 4, 1}

	got, err := p.MaybeUnpack(plain)
	require.NoError(t, err)
	assert.Equal(t, plain, got)

	got, err = p.MaybeUnpack(p.Pack(plain))
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestUnpack_Corrupt(t *testing.T) {
	p := newPacker(t, zstdpack.DefaultLevel)
	_, err := p.Unpack([]byte{0x28, 0xB5, 0x2F, 0xFD, 0xFF, 0xFF})
	assert.Error(t, err)
}

func TestNew_InvalidLevel(t *testing.T) {
	for _, level := range []uint8{0, 5} {
		_, err := zstdpack.New(zstdpack.Options{Level: level})
		assert.ErrorIs(t, err, zstdpack.ErrInvalidLevel)
	}
}
