package dynamic

import (
	"github.com/arm-software/astcenc-dynamic/astc"
)

// HeaderSize is the size of the container header preceding the block stream.
const HeaderSize = astc.HeaderSize

// PutHeader writes the .astc header for a width x height 2D image into dst[:HeaderSize], so a
// successful Compress output can be written straight to a .astc file and read back with
// astc.ParseFile.
//
// Width and height are stored as 24-bit fields and wrap modulo 2^24. dst must hold at least
// HeaderSize bytes.
func PutHeader(dst []byte, width, height, block int) {
	_ = dst[HeaderSize-1]
	copy(dst[0:4], astc.Magic[:])
	dst[4] = byte(block)
	dst[5] = byte(block)
	dst[6] = 1
	putU24(dst[7:10], uint32(width))
	putU24(dst[10:13], uint32(height))
	putU24(dst[13:16], 1)
}

// MarshalHeader returns the header PutHeader would write.
func MarshalHeader(width, height, block int) [HeaderSize]byte {
	var out [HeaderSize]byte
	PutHeader(out[:], width, height, block)
	return out
}

func putU24(dst []byte, v uint32) {
	_ = dst[2]
	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)
}
