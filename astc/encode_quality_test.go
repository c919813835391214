package astc_test

import (
	"testing"

	"github.com/arm-software/astcenc-dynamic/astc"
)

func TestCompressImage_ImprovesOverConstBlocks(t *testing.T) {
	const (
		w      = 8
		h      = 8
		blockX = 4
		blockY = 4
	)

	src := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := (y*w + x) * 4
			src[off+0] = uint8(x * 32)
			src[off+1] = uint8(y * 32)
			src[off+2] = uint8((x + y) * 16)
			src[off+3] = uint8(255 - x*8)
		}
	}

	astcNew := compressFile(t, src, w, h, blockX, astc.PreMedium, 0)
	decNew, w2, h2, err := astc.DecodeRGBA8(astcNew)
	if err != nil {
		t.Fatalf("DecodeRGBA8(new): %v", err)
	}
	if w2 != w || h2 != h {
		t.Fatalf("DecodeRGBA8(new) dimensions: got %dx%d want %dx%d", w2, h2, w, h)
	}

	astcConst, err := encodeRGBA8ConstBlocks(src, w, h, blockX, blockY)
	if err != nil {
		t.Fatalf("encodeRGBA8ConstBlocks: %v", err)
	}
	decConst, w3, h3, err := astc.DecodeRGBA8(astcConst)
	if err != nil {
		t.Fatalf("DecodeRGBA8(const): %v", err)
	}
	if w3 != w || h3 != h {
		t.Fatalf("DecodeRGBA8(const) dimensions: got %dx%d want %dx%d", w3, h3, w, h)
	}

	errNew := sumSquaredDiffU8(src, decNew)
	errConst := sumSquaredDiffU8(src, decConst)
	if errNew >= errConst {
		t.Fatalf("expected real encoder to improve error: got new=%d const=%d", errNew, errConst)
	}
}

func TestCompressImage_QualityPresetsDecode(t *testing.T) {
	const w, h = 12, 10

	src := make([]byte, w*h*4)
	for i := 0; i < w*h; i++ {
		src[i*4+0] = uint8(i * 5)
		src[i*4+1] = uint8(255 - i*3)
		src[i*4+2] = uint8(i * i)
		src[i*4+3] = uint8(128 + i)
	}

	presets := []float32{astc.PreFastest, astc.PreFast, astc.PreMedium, astc.PreThorough}
	for _, block := range []int{4, 5, 6, 8} {
		for _, q := range presets {
			for _, flags := range []astc.Flags{0, astc.FlagUsePerceptual, astc.FlagUseAlphaWeight, astc.FlagMapNormal, astc.FlagMapRGBM} {
				data := compressFile(t, src, w, h, block, q, flags)
				dec, w2, h2, err := astc.DecodeRGBA8(data)
				if err != nil {
					t.Fatalf("block=%d quality=%v flags=%#x: DecodeRGBA8: %v", block, q, flags, err)
				}
				if w2 != w || h2 != h || len(dec) != len(src) {
					t.Fatalf("block=%d quality=%v flags=%#x: decoded %dx%d", block, q, flags, w2, h2)
				}
			}
		}
	}
}

// compressFile encodes pix through a single-threaded context and returns a .astc file.
func compressFile(t *testing.T, pix []byte, width, height, block int, quality float32, flags astc.Flags) []byte {
	t.Helper()
	cfg, err := astc.ConfigInit(astc.ProfileLDR, block, block, 1, quality, flags)
	if err != nil {
		t.Fatalf("ConfigInit: %v", err)
	}
	ctx, err := astc.ContextAlloc(&cfg, 1)
	if err != nil {
		t.Fatalf("ContextAlloc: %v", err)
	}
	defer ctx.Close()

	blocks := make([]byte, blocksLenBytes(width, height, 1, block, block, 1))
	img := astc.Image{DimX: width, DimY: height, DimZ: 1, DataType: astc.TypeU8, DataU8: pix}
	if err := ctx.CompressImage(&img, astc.SwizzleRGBA, blocks, 0); err != nil {
		t.Fatalf("CompressImage: %v", err)
	}
	return wrapBlocks(t, blocks, width, height, block, block)
}

func sumSquaredDiffU8(a, b []byte) uint64 {
	if len(a) != len(b) {
		panic("sumSquaredDiffU8: length mismatch")
	}
	var sum uint64
	for i := 0; i < len(a); i++ {
		d := int(a[i]) - int(b[i])
		sum += uint64(d * d)
	}
	return sum
}

func encodeRGBA8ConstBlocks(pix []byte, width, height, blockX, blockY int) ([]byte, error) {
	h := astc.Header{
		BlockX: uint8(blockX),
		BlockY: uint8(blockY),
		BlockZ: 1,
		SizeX:  uint32(width),
		SizeY:  uint32(height),
		SizeZ:  1,
	}
	headerBytes, err := astc.MarshalHeader(h)
	if err != nil {
		return nil, err
	}
	blocksX, blocksY, _, total, err := h.BlockCount()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, astc.HeaderSize+total*astc.BlockBytes)
	out = append(out, headerBytes[:]...)

	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			r, g, b, a := avgRGBA8(pix, width, height, bx*blockX, by*blockY, blockX, blockY)
			block := astc.EncodeConstBlockRGBA8(r, g, b, a)
			out = append(out, block[:]...)
		}
	}

	return out, nil
}

func avgRGBA8(pix []byte, width, height, x0, y0, blockX, blockY int) (r, g, b, a uint8) {
	var sumR, sumG, sumB, sumA uint32
	count := 0
	for y := 0; y < blockY; y++ {
		yy := y0 + y
		if yy >= height {
			break
		}
		row := yy * width * 4
		for x := 0; x < blockX; x++ {
			xx := x0 + x
			if xx >= width {
				break
			}
			off := row + xx*4
			sumR += uint32(pix[off+0])
			sumG += uint32(pix[off+1])
			sumB += uint32(pix[off+2])
			sumA += uint32(pix[off+3])
			count++
		}
	}
	if count == 0 {
		return 0, 0, 0, 0
	}
	half := uint32(count / 2)
	return uint8((sumR + half) / uint32(count)),
		uint8((sumG + half) / uint32(count)),
		uint8((sumB + half) / uint32(count)),
		uint8((sumA + half) / uint32(count))
}
