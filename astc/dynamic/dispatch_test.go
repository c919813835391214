package dynamic_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arm-software/astcenc-dynamic/astc"
	"github.com/arm-software/astcenc-dynamic/astc/dynamic"
)

func patternRGBA8(width, height, seed int) []byte {
	pix := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := (y*width + x) * 4
			pix[off+0] = uint8(x*3 + y*5 + seed)
			pix[off+1] = uint8(x*11 + y*13 + seed*7)
			pix[off+2] = uint8(x ^ y ^ seed)
			pix[off+3] = 255 - uint8((x*5+y*7)&0xFF)
		}
	}
	return pix
}

func constRGBA8(width, height int, r, g, b, a byte) []byte {
	pix := make([]byte, width*height*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i+0], pix[i+1], pix[i+2], pix[i+3] = r, g, b, a
	}
	return pix
}

func compress(t *testing.T, ctx *dynamic.Context, pix []byte, width, height int) []byte {
	t.Helper()
	out := make([]byte, ctx.OutputLen(width, height))
	require.NoError(t, ctx.Compress(pix, out, astc.SwizzleRGBA, width, height))
	return out
}

func sentinel(n int) []byte {
	return bytes.Repeat([]byte{0xEE}, n)
}

func TestCompress_64x64_Container(t *testing.T) {
	for _, threads := range []int{1, 4} {
		ctx := newContext(t, params(4, threads))

		out := compress(t, ctx, patternRGBA8(64, 64, 0), 64, 64)
		require.Len(t, out, 4112)

		assert.Equal(t, astc.Magic[:], out[0:4])
		assert.Equal(t, []byte{4, 4, 1}, out[4:7])
		h, blocks, err := astc.ParseFile(out)
		require.NoError(t, err)
		assert.Equal(t, astc.Header{BlockX: 4, BlockY: 4, BlockZ: 1, SizeX: 64, SizeY: 64, SizeZ: 1}, h)
		assert.Len(t, blocks, 16*16*astc.BlockBytes)
	}
}

func TestCompress_ConstantImageDecodesExactly(t *testing.T) {
	ctx := newContext(t, params(6, 2))
	src := constRGBA8(20, 14, 10, 20, 30, 40)

	out := compress(t, ctx, src, 20, 14)
	pix, w, h, err := astc.DecodeRGBA8(out)
	require.NoError(t, err)
	assert.Equal(t, 20, w)
	assert.Equal(t, 14, h)
	assert.Equal(t, src, pix)
}

func TestCompress_ThreadCountInvariance(t *testing.T) {
	const w, h = 37, 29
	src := patternRGBA8(w, h, 3)

	profiles := []astc.Profile{astc.ProfileLDR, astc.ProfileLDRSRGB, astc.ProfileHDRRGBLDRAlpha, astc.ProfileHDR}
	for _, profile := range profiles {
		for _, block := range []int{4, 5, 6, 8, 10, 12} {
			p := params(block, 1)
			p.Profile = profile
			p.Quality = astc.PreFastest
			single := compress(t, newContext(t, p), src, w, h)

			for _, threads := range []int{2, 4, 16} {
				p.Threads = threads
				multi := compress(t, newContext(t, p), src, w, h)
				assert.Equal(t, single, multi, "profile %v block %d threads %d", profile, block, threads)
			}
		}
	}
}

func TestCompress_ReuseDoesNotLeakState(t *testing.T) {
	const w, h = 24, 16
	first := patternRGBA8(w, h, 1)
	second := patternRGBA8(w, h, 99)

	for _, threads := range []int{1, 3} {
		ctx := newContext(t, params(4, threads))

		a := compress(t, ctx, first, w, h)
		b := compress(t, ctx, second, w, h)
		again := compress(t, ctx, first, w, h)

		freshB := compress(t, newContext(t, params(4, threads)), second, w, h)
		assert.Equal(t, freshB, b, "threads %d", threads)
		assert.Equal(t, a, again, "threads %d", threads)
		assert.NotEqual(t, a, b)
	}
}

func TestCompress_Swizzle(t *testing.T) {
	const w, h = 8, 8
	ctx := newContext(t, params(4, 1))
	src := constRGBA8(w, h, 1, 2, 3, 4)

	out := make([]byte, ctx.OutputLen(w, h))
	swz := astc.Swizzle{R: astc.SwzB, G: astc.SwzG, B: astc.SwzR, A: astc.Swz1}
	require.NoError(t, ctx.Compress(src, out, swz, w, h))

	pix, _, _, err := astc.DecodeRGBA8(out)
	require.NoError(t, err)
	assert.Equal(t, constRGBA8(w, h, 3, 2, 1, 255), pix)
}

func TestCompress_ArgumentErrorsLeaveOutputUntouched(t *testing.T) {
	const w, h = 8, 8
	ctx := newContext(t, params(4, 2))
	src := patternRGBA8(w, h, 0)
	n := ctx.OutputLen(w, h)

	cases := []struct {
		name   string
		pix    []byte
		out    []byte
		width  int
		height int
		code   astc.ErrorCode
	}{
		{"nil input", nil, sentinel(n), w, h, astc.ErrBadParam},
		{"nil output", src, nil, w, h, astc.ErrBadParam},
		{"zero width", src, sentinel(n), 0, h, astc.ErrBadParam},
		{"short input", src[:len(src)-4], sentinel(n), w, h, astc.ErrBadParam},
		{"short output", src, sentinel(n - 1), w, h, astc.ErrOutOfMem},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			before := append([]byte(nil), c.out...)
			err := ctx.Compress(c.pix, c.out, astc.SwizzleRGBA, c.width, c.height)
			require.Error(t, err)
			assert.Equal(t, dynamic.KindArgument, dynamic.KindOf(err))
			assert.Equal(t, int(c.code), dynamic.Status(err))
			assert.Equal(t, before, c.out)
		})
	}

	// Still usable.
	compress(t, ctx, src, w, h)
}

func TestCompress_EncoderErrorPropagatesAndResets(t *testing.T) {
	const w, h = 16, 16
	src := patternRGBA8(w, h, 0)

	for _, threads := range []int{1, 4} {
		core, logs := observer.New(zap.DebugLevel)
		ctx := newContext(t, params(4, threads), dynamic.WithLogger(zap.New(core).Sugar()))

		out := sentinel(ctx.OutputLen(w, h))
		bad := astc.Swizzle{R: astc.SwzZ, G: astc.SwzG, B: astc.SwzB, A: astc.SwzA}
		err := ctx.Compress(src, out, bad, w, h)
		require.Error(t, err)
		assert.Equal(t, dynamic.KindEncoder, dynamic.KindOf(err))
		assert.Equal(t, int(astc.ErrBadSwizzle), dynamic.Status(err))
		assert.Equal(t, sentinel(dynamic.HeaderSize), out[:dynamic.HeaderSize])
		assert.Len(t, logs.FilterMessage("codec compress failed").All(), threads)

		// The failed call must not poison the next one.
		got := compress(t, ctx, src, w, h)
		want := compress(t, newContext(t, params(4, threads)), src, w, h)
		assert.Equal(t, want, got)
	}
}

func TestCompress_SingleWorkerFailureFailsCall(t *testing.T) {
	const w, h = 32, 32
	src := patternRGBA8(w, h, 0)
	want := compress(t, newContext(t, params(4, 4)), src, w, h)

	for _, failing := range []int{0, 3} {
		core, logs := observer.New(zap.DebugLevel)
		ctx := newContext(t, params(4, 4), dynamic.WithLogger(zap.New(core).Sugar()))
		restore := dynamic.FailWorker(ctx, failing, &astc.Error{Code: astc.ErrOutOfMem, Msg: "astc: worker failed"})

		out := sentinel(ctx.OutputLen(w, h))
		err := ctx.Compress(src, out, astc.SwizzleRGBA, w, h)
		require.Error(t, err)
		assert.Equal(t, dynamic.KindEncoder, dynamic.KindOf(err))
		assert.Equal(t, int(astc.ErrOutOfMem), dynamic.Status(err))
		assert.NotZero(t, dynamic.Status(err))
		assert.Equal(t, sentinel(dynamic.HeaderSize), out[:dynamic.HeaderSize])

		failed := logs.FilterMessage("codec compress failed").All()
		require.Len(t, failed, 1, "worker %d", failing)
		assert.EqualValues(t, failing, failed[0].ContextMap()["thread"])

		restore()
		assert.Equal(t, want, compress(t, ctx, src, w, h), "worker %d", failing)
	}
}

func TestCompress_ClosedContext(t *testing.T) {
	ctx, err := dynamic.NewContext(params(4, 1))
	require.NoError(t, err)
	require.NoError(t, ctx.Close())

	out := make([]byte, dynamic.OutputLen(4, 4, 4))
	err = ctx.Compress(constRGBA8(4, 4, 0, 0, 0, 0), out, astc.SwizzleRGBA, 4, 4)
	require.Error(t, err)
	assert.Equal(t, int(astc.ErrBadContext), dynamic.Status(err))

	var nilCtx *dynamic.Context
	err = nilCtx.Compress(constRGBA8(4, 4, 0, 0, 0, 0), out, astc.SwizzleRGBA, 4, 4)
	assert.Equal(t, int(astc.ErrBadContext), dynamic.Status(err))
}

func TestCompress_SeparateContextsConcurrently(t *testing.T) {
	const w, h = 16, 16
	src := patternRGBA8(w, h, 5)
	want := compress(t, newContext(t, params(4, 1)), src, w, h)

	ctxs := []*dynamic.Context{
		newContext(t, params(4, 1)),
		newContext(t, params(4, 2)),
		newContext(t, params(4, 3)),
	}
	results := make([][]byte, len(ctxs))
	errs := make([]error, len(ctxs))

	var wg sync.WaitGroup
	for i, ctx := range ctxs {
		i, ctx := i, ctx
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := make([]byte, ctx.OutputLen(w, h))
			errs[i] = ctx.Compress(src, out, astc.SwizzleRGBA, w, h)
			results[i] = out
		}()
	}
	wg.Wait()

	for i := range ctxs {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}

func TestCompress_ProgressReachesCompletion(t *testing.T) {
	var mu sync.Mutex
	var last float32
	ctx := newContext(t, params(4, 2), dynamic.WithProgress(func(p float32) {
		mu.Lock()
		defer mu.Unlock()
		if p > last {
			last = p
		}
	}))

	compress(t, ctx, patternRGBA8(32, 32, 0), 32, 32)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, float32(100), last)
}

func TestCompress_LargerOutputBufferKeepsTail(t *testing.T) {
	const w, h = 8, 8
	ctx := newContext(t, params(4, 1))
	n := ctx.OutputLen(w, h)
	out := sentinel(n + 8)

	require.NoError(t, ctx.Compress(patternRGBA8(w, h, 0), out, astc.SwizzleRGBA, w, h))
	assert.Equal(t, sentinel(8), out[n:])
}
