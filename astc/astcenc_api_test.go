package astc_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/arm-software/astcenc-dynamic/astc"
)

func blocksLenBytes(width, height, depth, blockX, blockY, blockZ int) int {
	blocksX := (width + blockX - 1) / blockX
	blocksY := (height + blockY - 1) / blockY
	blocksZ := (depth + blockZ - 1) / blockZ
	return blocksX * blocksY * blocksZ * astc.BlockBytes
}

// wrapBlocks prefixes a block stream with a .astc header so DecodeRGBA8 can read it back.
func wrapBlocks(t *testing.T, blocks []byte, width, height, blockX, blockY int) []byte {
	t.Helper()
	hdr, err := astc.MarshalHeader(astc.Header{
		BlockX: uint8(blockX), BlockY: uint8(blockY), BlockZ: 1,
		SizeX: uint32(width), SizeY: uint32(height), SizeZ: 1,
	})
	if err != nil {
		t.Fatalf("MarshalHeader: %v", err)
	}
	return append(hdr[:], blocks...)
}

func TestContext_Compress_RGBA8_Constant(t *testing.T) {
	cfg, err := astc.ConfigInit(astc.ProfileLDR, 4, 4, 1, 60, 0)
	if err != nil {
		t.Fatalf("ConfigInit: %v", err)
	}
	ctx, err := astc.ContextAlloc(&cfg, 1)
	if err != nil {
		t.Fatalf("ContextAlloc: %v", err)
	}

	const w, h, d = 8, 8, 1
	src := make([]byte, w*h*d*4)
	for i := 0; i < len(src); i += 4 {
		src[i+0] = 10
		src[i+1] = 20
		src[i+2] = 30
		src[i+3] = 40
	}

	blocks := make([]byte, blocksLenBytes(w, h, d, int(cfg.BlockX), int(cfg.BlockY), int(cfg.BlockZ)))
	img := astc.Image{DimX: w, DimY: h, DimZ: d, DataType: astc.TypeU8, DataU8: src}
	if err := ctx.CompressImage(&img, astc.SwizzleRGBA, blocks, 0); err != nil {
		t.Fatalf("CompressImage: %v", err)
	}
	if err := ctx.CompressReset(); err != nil {
		t.Fatalf("CompressReset: %v", err)
	}

	dst, _, _, err := astc.DecodeRGBA8(wrapBlocks(t, blocks, w, h, 4, 4))
	if err != nil {
		t.Fatalf("DecodeRGBA8: %v", err)
	}
	if !bytes.Equal(dst, src) {
		t.Fatalf("round-trip mismatch")
	}

	if _, _, _, _, err := astc.DecodeConstBlockRGBA8(blocks[:astc.BlockBytes]); err != nil {
		t.Fatalf("first block is not a constant block: %v", err)
	}
}

func TestContext_Compress_Swizzle(t *testing.T) {
	cfg, err := astc.ConfigInit(astc.ProfileLDR, 4, 4, 1, 60, 0)
	if err != nil {
		t.Fatalf("ConfigInit: %v", err)
	}
	ctx, err := astc.ContextAlloc(&cfg, 1)
	if err != nil {
		t.Fatalf("ContextAlloc: %v", err)
	}

	const w, h, d = 4, 4, 1
	src := make([]byte, w*h*d*4)
	for i := 0; i < len(src); i += 4 {
		src[i+0] = 1
		src[i+1] = 2
		src[i+2] = 3
		src[i+3] = 4
	}

	blocks := make([]byte, blocksLenBytes(w, h, d, int(cfg.BlockX), int(cfg.BlockY), int(cfg.BlockZ)))
	img := astc.Image{DimX: w, DimY: h, DimZ: d, DataType: astc.TypeU8, DataU8: src}

	swz := astc.Swizzle{R: astc.SwzG, G: astc.SwzR, B: astc.Swz0, A: astc.Swz1}
	if err := ctx.CompressImage(&img, swz, blocks, 0); err != nil {
		t.Fatalf("CompressImage: %v", err)
	}

	dst, _, _, err := astc.DecodeRGBA8(wrapBlocks(t, blocks, w, h, 4, 4))
	if err != nil {
		t.Fatalf("DecodeRGBA8: %v", err)
	}
	for i := 0; i < len(dst); i += 4 {
		if got := dst[i : i+4]; !bytes.Equal(got, []byte{2, 1, 0, 255}) {
			t.Fatalf("texel %d: got %v want [2 1 0 255]", i/4, got)
		}
	}

	// The source buffer is never modified by the swizzle.
	if src[0] != 1 || src[1] != 2 {
		t.Fatalf("source pixels modified: %v", src[:4])
	}
}

func TestContext_Compress_Errors(t *testing.T) {
	cfg, err := astc.ConfigInit(astc.ProfileLDR, 4, 4, 1, 60, 0)
	if err != nil {
		t.Fatalf("ConfigInit: %v", err)
	}
	ctx, err := astc.ContextAlloc(&cfg, 1)
	if err != nil {
		t.Fatalf("ContextAlloc: %v", err)
	}

	src := make([]byte, 4*4*4)
	blocks := make([]byte, astc.BlockBytes)

	cases := []struct {
		name string
		img  astc.Image
		swz  astc.Swizzle
		out  []byte
		want astc.ErrorCode
	}{
		{"z swizzle", astc.Image{DimX: 4, DimY: 4, DimZ: 1, DataU8: src}, astc.Swizzle{R: astc.SwzZ}, blocks, astc.ErrBadSwizzle},
		{"float image", astc.Image{DimX: 4, DimY: 4, DimZ: 1, DataType: astc.TypeF32}, astc.SwizzleRGBA, blocks, astc.ErrNotImplemented},
		{"short pixels", astc.Image{DimX: 4, DimY: 4, DimZ: 1, DataU8: src[:10]}, astc.SwizzleRGBA, blocks, astc.ErrBadParam},
		{"short output", astc.Image{DimX: 4, DimY: 4, DimZ: 1, DataU8: src}, astc.SwizzleRGBA, blocks[:8], astc.ErrOutOfMem},
		{"zero size", astc.Image{DimX: 0, DimY: 4, DimZ: 1}, astc.SwizzleRGBA, blocks, astc.ErrBadParam},
	}
	for _, tc := range cases {
		err := ctx.CompressImage(&tc.img, tc.swz, tc.out, 0)
		if code := astc.ErrorCodeOf(err); code != tc.want {
			t.Fatalf("%s: got %v (%v) want %v", tc.name, code, err, tc.want)
		}
	}

	if err := ctx.CompressImage(nil, astc.SwizzleRGBA, blocks, 0); astc.ErrorCodeOf(err) != astc.ErrBadParam {
		t.Fatalf("nil image: got %v", err)
	}
	if err := ctx.CompressImage(&astc.Image{DimX: 4, DimY: 4, DimZ: 1, DataU8: src}, astc.SwizzleRGBA, blocks, 1); astc.ErrorCodeOf(err) != astc.ErrBadParam {
		t.Fatalf("thread index out of range: got %v", err)
	}
}

func TestContext_MultiThread_ResetRequired(t *testing.T) {
	cfg, err := astc.ConfigInit(astc.ProfileLDR, 6, 6, 1, 60, 0)
	if err != nil {
		t.Fatalf("ConfigInit: %v", err)
	}
	ctx, err := astc.ContextAlloc(&cfg, 4)
	if err != nil {
		t.Fatalf("ContextAlloc: %v", err)
	}

	const w, h, d = 32, 32, 1
	src := make([]byte, w*h*d*4)
	for i := 0; i < len(src); i++ {
		src[i] = byte(i * 17)
	}

	blocks := make([]byte, blocksLenBytes(w, h, d, int(cfg.BlockX), int(cfg.BlockY), int(cfg.BlockZ)))
	img := astc.Image{DimX: w, DimY: h, DimZ: d, DataType: astc.TypeU8, DataU8: src}

	var wg sync.WaitGroup
	wg.Add(4)
	for i := 0; i < 4; i++ {
		threadIndex := i
		go func() {
			defer wg.Done()
			if err := ctx.CompressImage(&img, astc.SwizzleRGBA, blocks, threadIndex); err != nil {
				t.Errorf("CompressImage(thread=%d): %v", threadIndex, err)
			}
		}()
	}
	wg.Wait()

	// Multi-threaded contexts require a reset between images.
	if err := ctx.CompressImage(&img, astc.SwizzleRGBA, blocks, 0); err == nil {
		t.Fatalf("CompressImage without reset: got nil error, want error")
	}
	if err := ctx.CompressReset(); err != nil {
		t.Fatalf("CompressReset: %v", err)
	}
	if err := ctx.CompressImage(&img, astc.SwizzleRGBA, blocks, 0); err != nil {
		t.Fatalf("CompressImage after reset: %v", err)
	}
}

func TestContext_MultiThread_LateWorkerFindsNoWork(t *testing.T) {
	cfg, err := astc.ConfigInit(astc.ProfileLDR, 4, 4, 1, 10, 0)
	if err != nil {
		t.Fatalf("ConfigInit: %v", err)
	}
	ctx, err := astc.ContextAlloc(&cfg, 3)
	if err != nil {
		t.Fatalf("ContextAlloc: %v", err)
	}

	const w, h, d = 8, 8, 1
	src := make([]byte, w*h*d*4)
	for i := 0; i < len(src); i++ {
		src[i] = byte(i * 7)
	}
	blocks := make([]byte, blocksLenBytes(w, h, d, 4, 4, 1))
	img := astc.Image{DimX: w, DimY: h, DimZ: d, DataType: astc.TypeU8, DataU8: src}

	// Worker 0 drains every block before workers 1 and 2 arrive.
	for i := 0; i < 3; i++ {
		if err := ctx.CompressImage(&img, astc.SwizzleRGBA, blocks, i); err != nil {
			t.Fatalf("CompressImage(thread=%d): %v", i, err)
		}
	}

	if err := ctx.CompressImage(&img, astc.SwizzleRGBA, blocks, 0); err == nil {
		t.Fatalf("CompressImage without reset: got nil error, want error")
	}
	if err := ctx.CompressReset(); err != nil {
		t.Fatalf("CompressReset: %v", err)
	}
}

func TestContext_MultiThread_PartialJoinClosedByReset(t *testing.T) {
	cfg, err := astc.ConfigInit(astc.ProfileLDR, 4, 4, 1, 10, 0)
	if err != nil {
		t.Fatalf("ConfigInit: %v", err)
	}
	ctx, err := astc.ContextAlloc(&cfg, 4)
	if err != nil {
		t.Fatalf("ContextAlloc: %v", err)
	}

	const w, h, d = 8, 8, 1
	src := make([]byte, w*h*d*4)
	blocks := make([]byte, blocksLenBytes(w, h, d, 4, 4, 1))
	img := astc.Image{DimX: w, DimY: h, DimZ: d, DataType: astc.TypeU8, DataU8: src}

	if err := ctx.CompressImage(&img, astc.SwizzleRGBA, blocks, 0); err != nil {
		t.Fatalf("CompressImage: %v", err)
	}
	if err := ctx.CompressReset(); err != nil {
		t.Fatalf("CompressReset: %v", err)
	}

	// All four workers can run the next image after the reset.
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(threadIndex int) {
			defer wg.Done()
			if err := ctx.CompressImage(&img, astc.SwizzleRGBA, blocks, threadIndex); err != nil {
				t.Errorf("CompressImage(thread=%d) after reset: %v", threadIndex, err)
			}
		}(i)
	}
	wg.Wait()
}
