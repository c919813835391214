package main

import (
	"runtime/cgo"
	"unsafe"

	"github.com/arm-software/astcenc-dynamic/astc"
	"github.com/arm-software/astcenc-dynamic/astc/dynamic"
	"github.com/arm-software/astcenc-dynamic/internal/logger"
)

var log = logger.New("astcdynamic")

func createContext(p dynamic.Params) uintptr {
	ctx, err := dynamic.NewContext(p, dynamic.WithLogger(log))
	if err != nil {
		// Already logged by NewContext.
		return 0
	}
	return uintptr(cgo.NewHandle(ctx))
}

func freeContext(h uintptr) {
	handle := cgo.Handle(h)
	if ctx, ok := handle.Value().(*dynamic.Context); ok {
		_ = ctx.Close()
	}
	handle.Delete()
}

func compress(rgba, out unsafe.Pointer, swz astc.Swizzle, width, height int, h uintptr) int {
	if rgba == nil || out == nil {
		log.Errorw("compress rejected", "error", "input or output is null")
		return int(astc.ErrBadParam)
	}
	if h == 0 {
		log.Errorw("compress rejected", "error", "null context")
		return int(astc.ErrBadContext)
	}
	ctx, ok := cgo.Handle(h).Value().(*dynamic.Context)
	if !ok {
		return int(astc.ErrBadContext)
	}

	n := ctx.OutputLen(width, height)
	if n == 0 {
		log.Errorw("compress rejected", "error", "invalid image dimensions", "width", width, "height", height)
		return int(astc.ErrBadParam)
	}

	// Host memory is wrapped in place; Compress never retains it past return.
	pix := unsafe.Slice((*byte)(rgba), width*height*4)
	dst := unsafe.Slice((*byte)(out), n)
	return dynamic.Status(ctx.Compress(pix, dst, swz, width, height))
}
