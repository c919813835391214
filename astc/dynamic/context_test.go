package dynamic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arm-software/astcenc-dynamic/astc"
	"github.com/arm-software/astcenc-dynamic/astc/dynamic"
)

func newContext(t *testing.T, p dynamic.Params, opts ...dynamic.Option) *dynamic.Context {
	t.Helper()
	ctx, err := dynamic.NewContext(p, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Close() })
	return ctx
}

func params(block, threads int) dynamic.Params {
	p := dynamic.DefaultParams()
	p.BlockSize = block
	p.Quality = astc.PreFast
	p.Threads = threads
	return p
}

func TestNewContext_Accessors(t *testing.T) {
	p := dynamic.Params{
		BlockSize: 6,
		Profile:   astc.ProfileLDRSRGB,
		Quality:   astc.PreThorough,
		Flags:     astc.FlagUseAlphaWeight,
		Weights:   [4]float32{1, 2, 3, 4},
		Threads:   3,
	}
	ctx := newContext(t, p)

	assert.Equal(t, 6, ctx.BlockSize())
	assert.Equal(t, astc.ProfileLDRSRGB, ctx.Profile())
	assert.Equal(t, astc.PreThorough, ctx.Quality())
	assert.Equal(t, astc.FlagUseAlphaWeight, ctx.Flags())
	assert.Equal(t, [4]float32{1, 2, 3, 4}, ctx.Weights())
	assert.Equal(t, 3, ctx.ThreadCount())
	assert.Equal(t, dynamic.OutputLen(100, 100, 6), ctx.OutputLen(100, 100))
}

func TestNewContext_ZeroWeightsKeepCodecDefaults(t *testing.T) {
	ctx := newContext(t, params(4, 1))
	assert.Equal(t, [4]float32{1, 1, 1, 1}, ctx.Weights())

	p := params(4, 1)
	p.Flags = astc.FlagUsePerceptual
	ctx = newContext(t, p)
	w := ctx.Weights()
	assert.InDelta(t, 0.30*2.25, w[0], 1e-6)
	assert.InDelta(t, 0.59*2.25, w[1], 1e-6)
	assert.InDelta(t, 0.11*2.25, w[2], 1e-6)
}

func TestNewContext_Errors(t *testing.T) {
	cases := []struct {
		name string
		p    func() dynamic.Params
		code astc.ErrorCode
	}{
		{"block size 7", func() dynamic.Params { return params(7, 1) }, astc.ErrBadBlockSize},
		{"block size 0", func() dynamic.Params { return params(0, 1) }, astc.ErrBadBlockSize},
		{"block size 3", func() dynamic.Params { return params(3, 1) }, astc.ErrBadBlockSize},
		{"zero threads", func() dynamic.Params { return params(4, 0) }, astc.ErrBadParam},
		{"quality above range", func() dynamic.Params {
			p := params(4, 1)
			p.Quality = 101
			return p
		}, astc.ErrBadQuality},
		{"unknown profile", func() dynamic.Params {
			p := params(4, 1)
			p.Profile = astc.Profile(9)
			return p
		}, astc.ErrBadProfile},
		{"conflicting flags", func() dynamic.Params {
			p := params(4, 1)
			p.Flags = astc.FlagMapNormal | astc.FlagMapRGBM
			return p
		}, astc.ErrBadFlags},
		{"negative weights", func() dynamic.Params {
			p := params(4, 1)
			p.Weights = [4]float32{-1, -1, -1, -1}
			return p
		}, astc.ErrBadParam},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx, err := dynamic.NewContext(c.p())
			require.Error(t, err)
			assert.Nil(t, ctx)
			assert.Equal(t, dynamic.KindConfig, dynamic.KindOf(err))
			assert.Equal(t, int(c.code), dynamic.Status(err))
		})
	}
}

func TestNewContext_LogsFailure(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	_, err := dynamic.NewContext(params(7, 1), dynamic.WithLogger(zap.New(core).Sugar()))
	require.Error(t, err)

	entries := logs.FilterMessage("codec context creation failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "ASTCENC_ERR_BAD_BLOCK_SIZE", entries[0].ContextMap()["status"])
}

func TestContext_CloseTwice(t *testing.T) {
	ctx, err := dynamic.NewContext(params(4, 2))
	require.NoError(t, err)
	assert.NoError(t, ctx.Close())
	assert.NoError(t, ctx.Close())

	var nilCtx *dynamic.Context
	assert.NoError(t, nilCtx.Close())
}
