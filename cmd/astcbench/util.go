package main

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// parseBlock accepts "N" or "NxN".
func parseBlock(s string) (int, error) {
	var x, y int
	var err error
	s = strings.TrimSpace(s)
	switch strings.Count(s, "x") {
	case 0:
		_, err = fmt.Sscanf(s, "%d", &x)
		y = x
	case 1:
		_, err = fmt.Sscanf(s, "%dx%d", &x, &y)
	default:
		return 0, fmt.Errorf("invalid -block %q (want like 4 or 4x4)", s)
	}
	if err != nil || x <= 0 || x > 255 {
		return 0, fmt.Errorf("invalid -block %q (want like 4 or 4x4)", s)
	}
	if x != y {
		return 0, fmt.Errorf("invalid -block %q: only square blocks are supported", s)
	}
	return x, nil
}

func fillPatternRGBA8(pix []byte, width, height int) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := (y*width + x) * 4
			pix[off+0] = uint8(x*3 + y*5)
			pix[off+1] = uint8(x*11 + y*13)
			pix[off+2] = uint8(x ^ y)
			pix[off+3] = 255 - uint8((x*5+y*7)&0xFF)
		}
	}
}

func fnv1a64(seed uint64, data []byte) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := seed
	if h == 0 {
		h = offset64
	}
	for _, b := range data {
		h ^= uint64(b)
		h *= prime64
	}
	return h
}

func fmtChecksum(v uint64) string {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[7-i] = byte(v >> uint(i*8))
	}
	return hex.EncodeToString(b[:])
}
