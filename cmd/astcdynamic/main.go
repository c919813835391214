// Command astcdynamic is the C ABI of the dispatch layer. Build it as a shared library:
//
//	go build -buildmode=c-shared -o libastcdynamic.so ./cmd/astcdynamic
//
// The generated header declares CreateContext, GetOutputLen, FreeContext, Compress and
// GetErrorString. Context handles are opaque non-zero integers; 0 means "no context".
// FreeContext must be called exactly once per handle, and a handle must not be used by two
// Compress calls at the same time.
package main

/*
#include <stddef.h>
#include <stdint.h>

// Component selectors: 0=R 1=G 2=B 3=A 4=zero 5=one.
typedef struct {
	unsigned int r;
	unsigned int g;
	unsigned int b;
	unsigned int a;
} astcdyn_swizzle;
*/
import "C"

import (
	"unsafe"

	"github.com/arm-software/astcenc-dynamic/astc"
	"github.com/arm-software/astcenc-dynamic/astc/dynamic"
)

//export CreateContext
func CreateContext(block C.int, profile C.int, quality C.float, flags C.uint, wr, wg, wb, wa C.float, threads C.int) C.uintptr_t {
	return C.uintptr_t(createContext(dynamic.Params{
		BlockSize: int(block),
		Profile:   astc.Profile(profile),
		Quality:   float32(quality),
		Flags:     astc.Flags(flags),
		Weights:   [4]float32{float32(wr), float32(wg), float32(wb), float32(wa)},
		Threads:   int(threads),
	}))
}

//export GetOutputLen
func GetOutputLen(w, h, block C.int) C.size_t {
	return C.size_t(dynamic.OutputLen(int(w), int(h), int(block)))
}

//export FreeContext
func FreeContext(ctx C.uintptr_t) {
	freeContext(uintptr(ctx))
}

//export Compress
func Compress(rgba *C.uint8_t, out *C.uint8_t, swz *C.astcdyn_swizzle, w, h C.int, ctx C.uintptr_t) C.int {
	s := astc.SwizzleRGBA
	if swz != nil {
		s = astc.Swizzle{R: swzFromC(swz.r), G: swzFromC(swz.g), B: swzFromC(swz.b), A: swzFromC(swz.a)}
	}
	return C.int(compress(unsafe.Pointer(rgba), unsafe.Pointer(out), s, int(w), int(h), uintptr(ctx)))
}

//export GetErrorString
func GetErrorString(status C.int) *C.char {
	return errorCString(astc.ErrorCode(status))
}

func swzFromC(v C.uint) astc.Swz {
	if v > C.uint(astc.Swz1) {
		// Out of range for compression; the codec rejects it with ErrBadSwizzle.
		return astc.SwzZ
	}
	return astc.Swz(v)
}

func main() {}
