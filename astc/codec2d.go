package astc

import "errors"

// DecodeRGBA8 decodes a 2D .astc file into an RGBA8 pixel buffer using the LDR profile.
func DecodeRGBA8(astcData []byte) (pix []byte, width, height int, err error) {
	return DecodeRGBA8WithProfile(astcData, ProfileLDR)
}

// DecodeRGBA8WithProfile decodes a 2D .astc file into an RGBA8 pixel buffer.
//
// Only the LDR profiles (ProfileLDR, ProfileLDRSRGB) and files with SizeZ==1 are supported.
func DecodeRGBA8WithProfile(astcData []byte, profile Profile) (pix []byte, width, height int, err error) {
	if profile != ProfileLDR && profile != ProfileLDRSRGB {
		return nil, 0, 0, errUnsupportedProfileRGBA8
	}
	h, blocks, err := ParseFile(astcData)
	if err != nil {
		return nil, 0, 0, err
	}
	if h.SizeZ != 1 || h.BlockZ != 1 {
		return nil, 0, 0, errors.New("astc: DecodeRGBA8WithProfile only supports 2D images")
	}
	width, height = int(h.SizeX), int(h.SizeY)
	if width <= 0 || height <= 0 {
		return nil, 0, 0, errors.New("astc: invalid image dimensions")
	}

	blocksX, blocksY, _, total, err := h.BlockCount()
	if err != nil {
		return nil, 0, 0, err
	}
	if len(blocks) < total*BlockBytes {
		return nil, 0, 0, ioErrUnexpectedEOF("astc blocks", total*BlockBytes, len(blocks))
	}

	blockX, blockY := int(h.BlockX), int(h.BlockY)
	if blockX*blockY > blockMaxTexels {
		return nil, 0, 0, errors.New("astc: invalid block dimensions")
	}
	ctx := getDecodeContext(blockX, blockY, 1)

	pix = make([]byte, width*height*4)
	var decodedArr [blockMaxTexels * 4]byte
	decoded := decodedArr[:blockX*blockY*4]
	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			i := by*blocksX + bx
			decodeBlockToRGBA8(profile, ctx, blocks[i*BlockBytes:(i+1)*BlockBytes], decoded)

			// Blocks overhanging the right or bottom edge keep only their in-image texels.
			x0, y0 := bx*blockX, by*blockY
			rowBytes := (min(x0+blockX, width) - x0) * 4
			for yy := 0; yy < blockY && y0+yy < height; yy++ {
				dst := ((y0+yy)*width + x0) * 4
				src := yy * blockX * 4
				copy(pix[dst:dst+rowBytes], decoded[src:src+rowBytes])
			}
		}
	}
	return pix, width, height, nil
}
