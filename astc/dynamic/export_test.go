package dynamic

import "github.com/arm-software/astcenc-dynamic/astc"

// FailWorker makes worker thread of c return err without encoding anything. The other
// workers keep driving the real codec context. The returned func restores it.
func FailWorker(c *Context, thread int, err error) (restore func()) {
	inner := c.enc
	c.enc = &failingEncoder{encoder: inner, thread: thread, err: err}
	return func() { c.enc = inner }
}

type failingEncoder struct {
	encoder
	thread int
	err    error
}

func (f *failingEncoder) CompressImage(img *astc.Image, swizzle astc.Swizzle, out []byte, threadIndex int) error {
	if threadIndex == f.thread {
		return f.err
	}
	return f.encoder.CompressImage(img, swizzle, out, threadIndex)
}
