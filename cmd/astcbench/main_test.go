package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arm-software/astcenc-dynamic/astc"
	"github.com/arm-software/astcenc-dynamic/astc/dynamic"
	"github.com/arm-software/astcenc-dynamic/internal/config"
)

func TestParseBlock(t *testing.T) {
	for in, want := range map[string]int{"4": 4, "6x6": 6, " 12 ": 12} {
		got, err := parseBlock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "0", "4x6", "4x4x4", "abc", "300"} {
		_, err := parseBlock(in)
		assert.Error(t, err, in)
	}
}

func TestApplyFlags_OnlyExplicitFlagsOverride(t *testing.T) {
	cfg := &config.Config{Block: 8, Profile: "srgb", Quality: "thorough", Threads: 2}

	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	block := fs.String("block", "4", "")
	threads := fs.Int("threads", 1, "")
	profile := fs.String("profile", "ldr", "")
	quality := fs.String("quality", "medium", "")
	require.NoError(t, fs.Parse([]string{"-threads", "3", "-quality", "fast"}))

	require.NoError(t, applyFlags(cfg, fs, *block, *threads, *profile, *quality))
	assert.Equal(t, 8, cfg.Block)
	assert.Equal(t, "srgb", cfg.Profile)
	assert.Equal(t, "fast", cfg.Quality)
	assert.Equal(t, 3, cfg.Threads)
}

func encodeContainer(t *testing.T, w, h int) []byte {
	t.Helper()
	p := dynamic.DefaultParams()
	p.Quality = astc.PreFastest
	ctx, err := dynamic.NewContext(p)
	require.NoError(t, err)
	defer ctx.Close()

	pix := make([]byte, w*h*4)
	fillPatternRGBA8(pix, w, h)
	out := make([]byte, ctx.OutputLen(w, h))
	require.NoError(t, ctx.Compress(pix, out, astc.SwizzleRGBA, w, h))
	return out
}

func TestWriteContainerAndDescribe(t *testing.T) {
	data := encodeContainer(t, 10, 9)
	dir := t.TempDir()

	plain, err := writeContainer(filepath.Join(dir, "a.astc"), data, false, 0)
	require.NoError(t, err)
	packed, err := writeContainer(filepath.Join(dir, "a.astc"), data, true, 3)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.astc.zst"), packed)

	for _, path := range []string{plain, packed} {
		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		line, err := describe(raw)
		require.NoError(t, err)
		assert.Contains(t, line, "4x4x1 blocks, 10x9x1 texels")
		assert.Contains(t, line, "blocks=9")
	}
}

func TestDescribe_Truncated(t *testing.T) {
	data := encodeContainer(t, 8, 8)
	_, err := describe(data[:len(data)-1])
	assert.Error(t, err)
}
