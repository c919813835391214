package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arm-software/astcenc-dynamic/astc"
	"github.com/arm-software/astcenc-dynamic/astc/dynamic"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
block: 6
profile: srgb
quality: thorough
flags: [perceptual, alpha-weight]
weights: [1, 2, 3, 4]
threads: 4
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, dynamic.Params{
		BlockSize: 6,
		Profile:   astc.ProfileLDRSRGB,
		Quality:   astc.PreThorough,
		Flags:     astc.FlagUsePerceptual | astc.FlagUseAlphaWeight,
		Weights:   [4]float32{1, 2, 3, 4},
		Threads:   4,
	}, p)
}

func TestParse_DefaultsFillMissingFields(t *testing.T) {
	cfg, err := Parse([]byte("quality: 42.5\n"))
	require.NoError(t, err)

	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, 4, p.BlockSize)
	assert.Equal(t, astc.ProfileLDR, p.Profile)
	assert.Equal(t, float32(42.5), p.Quality)
	assert.Equal(t, 1, p.Threads)
	assert.Equal(t, [4]float32{}, p.Weights)

	_, err = dynamic.NewContext(p)
	assert.NoError(t, err)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"threads":  "threads: 0\n",
		"block":    "block: 0\n",
		"weights":  "weights: [1, 2]\n",
		"profile":  "profile: cmyk\n",
		"quality":  "quality: 250\n",
		"flag":     "flags: [sharpen]\n",
		"not yaml": "block: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseQuality_Names(t *testing.T) {
	for name, want := range map[string]float32{
		"fastest":       astc.PreFastest,
		"fast":          astc.PreFast,
		"Medium":        astc.PreMedium,
		"thorough":      astc.PreThorough,
		"very-thorough": astc.PreVeryThorough,
		"exhaustive":    astc.PreExhaustive,
		"0":             0,
		"100":           100,
	} {
		got, err := ParseQuality(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}
