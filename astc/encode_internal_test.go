package astc

import (
	"encoding/binary"
	"testing"
)

func TestCompressImage_Uses3DBlockModes(t *testing.T) {
	const w, h, d = 4, 4, 4

	pix := make([]byte, w*h*d*4)
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				off := ((z*h+y)*w + x) * 4
				pix[off+0] = uint8(x * 37)
				pix[off+1] = uint8(y * 53)
				pix[off+2] = uint8(z * 71)
				pix[off+3] = uint8(255 - x*11 - z*7)
			}
		}
	}

	cfg, err := ConfigInit(ProfileLDR, 4, 4, 4, PreMedium, 0)
	if err != nil {
		t.Fatalf("ConfigInit: %v", err)
	}
	ctx, err := ContextAlloc(&cfg, 1)
	if err != nil {
		t.Fatalf("ContextAlloc: %v", err)
	}

	blocks := make([]byte, BlockBytes)
	img := Image{DimX: w, DimY: h, DimZ: d, DataType: TypeU8, DataU8: pix}
	if err := ctx.CompressImage(&img, SwizzleRGBA, blocks, 0); err != nil {
		t.Fatalf("CompressImage: %v", err)
	}

	// A constant block would not exercise the 3D block modes.
	if _, _, _, _, err := DecodeConstBlockRGBA8(blocks); err == nil {
		t.Fatalf("unexpected const block; test input should produce non-const blocks")
	}

	blockMode := int(readBits(11, 0, blocks))
	_, _, zw, _, _, _, ok := decodeBlockMode3D(blockMode)
	if !ok {
		t.Fatalf("expected a valid 3D block mode, got mode=%d", blockMode)
	}
	if zw <= 0 {
		t.Fatalf("unexpected zWeights=%d for 3D block mode=%d", zw, blockMode)
	}
}

func TestISE_RoundTripAllQuantLevels(t *testing.T) {
	for q := quant2; q <= quant256; q++ {
		levels := quantLevel(q)
		btq := btqCounts[q]
		for count := 1; count <= 64; count++ {
			if iseSequenceBitCount(count, q) > 128 {
				break
			}
			in := make([]uint8, count)
			for i := range in {
				in[i] = uint8((i*7 + int(q)*3) % levels)
			}

			var blk [BlockBytes]byte
			encodeISE(q, count, in, blk[:], 0)

			out := make([]uint8, count+8)
			lo := binary.LittleEndian.Uint64(blk[0:8])
			hi := binary.LittleEndian.Uint64(blk[8:16])
			decodeISE128(int(btq.bits), btq.trits, btq.quints, count, lo, hi, 0, out)
			for i := 0; i < count; i++ {
				if out[i] != in[i] {
					t.Fatalf("quant=%d count=%d: element %d decoded %d, want %d", q, count, i, out[i], in[i])
				}
			}
		}
	}
}

func TestColorUnquantTables(t *testing.T) {
	for q := quant6; q <= quant256; q++ {
		table := colorScrambledPquantToUquantTables[int(q)-int(quant6)]
		if len(table) != quantLevel(q) {
			t.Fatalf("quant=%d: table has %d entries, want %d", q, len(table), quantLevel(q))
		}

		seen := map[uint8]bool{}
		for i, u := range table {
			seen[u] = true
			p, uq := colorQuantize(q, u)
			if uq != u || table[p] != u {
				t.Fatalf("quant=%d: value %d at %d quantizes to %d (pquant %d)", q, u, i, uq, p)
			}
		}
		if !seen[0] || !seen[255] {
			t.Fatalf("quant=%d: table does not span 0..255", q)
		}
	}
}

func TestChannelErrorWeights(t *testing.T) {
	cases := []struct {
		in   [4]float32
		want [4]uint64
	}{
		{[4]float32{1, 1, 1, 1}, [4]uint64{256, 256, 256, 256}},
		{[4]float32{0, 0, 0, 0}, [4]uint64{256, 256, 256, 256}},
		{[4]float32{2, 0, 1, 0}, [4]uint64{256, 0, 128, 0}},
		{[4]float32{0.675, 1.3275, 0.2475, 1}, [4]uint64{130, 256, 48, 193}},
	}
	for _, tc := range cases {
		if got := channelErrorWeights(tc.in); got != tc.want {
			t.Fatalf("channelErrorWeights(%v): got %v want %v", tc.in, got, tc.want)
		}
	}
}

func TestRGBMAlphaFloorNeverZero(t *testing.T) {
	for q := quant6; q <= quant256; q++ {
		for a := 0; a < 256; a++ {
			f := rgbmAlphaFloor(q, uint8(a))
			if _, u := colorQuantize(q, f); u == 0 {
				t.Fatalf("quant=%d alpha=%d: floor %d quantizes to zero", q, a, f)
			}
		}
	}
}

func TestEncodeBlockRGBA8_RGBMKeepsMultiplier(t *testing.T) {
	const bx, by = 6, 6
	texels := make([]byte, bx*by*4)
	for i := 0; i < bx*by; i++ {
		texels[i*4+0] = uint8(i * 7)
		texels[i*4+1] = uint8(255 - i*5)
		texels[i*4+2] = uint8(i * 3)
		texels[i*4+3] = 0
	}
	weight := [4]float32{1, 1, 1, 10}

	blk, err := encodeBlockRGBA8LDR(ProfileLDR, bx, by, 1, texels, EncodeFast, weight, FlagMapRGBM, nil)
	if err != nil {
		t.Fatalf("encodeBlockRGBA8LDR: %v", err)
	}
	decoded := make([]byte, bx*by*4)
	decodeBlockToRGBA8(ProfileLDR, getDecodeContext(bx, by, 1), blk[:], decoded)
	for i := 0; i < bx*by; i++ {
		if decoded[i*4+3] == 0 {
			t.Fatalf("texel %d decoded with a zero RGBM multiplier", i)
		}
	}
}

func TestEncodeBlockRGBA8_TuneOverride(t *testing.T) {
	const bx, by = 8, 8
	texels := make([]byte, bx*by*4)
	for i := range texels {
		texels[i] = byte(i * 13)
	}

	tune := encoderTuning{modeLimit: 1, maxPartitionCount: 1}
	blk, err := encodeBlockRGBA8LDR(ProfileLDR, bx, by, 1, texels, EncodeExhaustive, [4]float32{1, 1, 1, 1}, 0, &tune)
	if err != nil {
		t.Fatalf("encodeBlockRGBA8LDR: %v", err)
	}
	scb := physicalToSymbolic(blk[:], bx, by, 1)
	if scb.blockType == symBlockError {
		t.Fatalf("encoder produced an error block")
	}
	if scb.partitionCount > 1 {
		t.Fatalf("partition count %d exceeds the override limit", scb.partitionCount)
	}
}
