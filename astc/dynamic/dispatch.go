package dynamic

import (
	"golang.org/x/sync/errgroup"

	"github.com/arm-software/astcenc-dynamic/astc"
)

// workload is one in-flight Compress call shared by all of its workers.
type workload struct {
	ctx    *Context
	img    astc.Image
	swz    astc.Swizzle
	blocks []byte
}

func (w *workload) run(thread int) error {
	err := w.ctx.enc.CompressImage(&w.img, w.swz, w.blocks, thread)
	if err != nil {
		w.ctx.log.Warnw("codec compress failed",
			"thread", thread,
			"status", astc.ErrorString(astc.ErrorCodeOf(err)),
			"error", err,
		)
	}
	return err
}

// Compress encodes a tightly packed RGBA8 image of width x height texels into out. Only the
// first width*height*4 bytes of pix are read.
//
// out must hold at least OutputLen(width, height) bytes. On success out[:HeaderSize] holds
// the container header and the encoded blocks follow it. On failure the header region is
// left untouched and out must not be read as a container.
//
// With more than one thread, exactly ThreadCount workers run the encoder and Compress
// returns once all of them have finished. If any worker fails the first reported error is
// returned. Per-image codec state is reset before returning in every case, so the Context
// is immediately reusable.
func (c *Context) Compress(pix, out []byte, swz astc.Swizzle, width, height int) error {
	const op = "compress"

	argErr := func(code astc.ErrorCode, msg string) error {
		err := &Error{Op: op, Kind: KindArgument, Err: codecError(code, msg)}
		if c != nil {
			c.log.Errorw("compress rejected", "error", err)
		}
		return err
	}

	switch {
	case c == nil || c.enc == nil:
		return argErr(astc.ErrBadContext, "astc: nil context")
	case len(pix) == 0:
		return argErr(astc.ErrBadParam, "astc: input is null")
	case len(out) == 0:
		return argErr(astc.ErrBadParam, "astc: output is null")
	case width <= 0 || height <= 0:
		return argErr(astc.ErrBadParam, "astc: invalid image dimensions")
	}

	pixLen := width * height * 4
	if len(pix) < pixLen {
		return argErr(astc.ErrBadParam, "astc: input shorter than width*height*4")
	}
	n := c.OutputLen(width, height)
	if len(out) < n {
		return argErr(astc.ErrOutOfMem, "astc: output buffer too small")
	}

	w := &workload{
		ctx: c,
		img: astc.Image{
			DimX:     width,
			DimY:     height,
			DimZ:     1,
			DataType: astc.TypeU8,
			DataU8:   pix[:pixLen],
		},
		swz:    swz,
		blocks: out[HeaderSize:n],
	}

	err := c.dispatch(w)
	if rerr := c.enc.CompressReset(); rerr != nil {
		c.log.Errorw("codec compress reset failed", "error", rerr)
		if err == nil {
			err = rerr
		}
	}
	if err != nil {
		return &Error{Op: op, Kind: KindEncoder, Err: err}
	}

	PutHeader(out, width, height, c.params.BlockSize)
	c.log.Debugw("image compressed", "width", width, "height", height, "bytes", n)
	return nil
}

func (c *Context) dispatch(w *workload) error {
	if c.params.Threads == 1 {
		return w.run(0)
	}

	var g errgroup.Group
	for i := 0; i < c.params.Threads; i++ {
		i := i
		g.Go(func() error { return w.run(i) })
	}
	return g.Wait()
}
