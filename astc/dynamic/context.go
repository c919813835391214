// Package dynamic is the compression dispatch layer behind the astcdynamic shared library.
//
// A Context owns one configured codec context and is reused across images. Compress runs
// the block encoder inline or across a fixed set of workers and wraps the encoded blocks in
// a 16-byte .astc header.
//
// A Context serves one Compress call at a time. Distinct Contexts are independent.
package dynamic

import (
	"go.uber.org/zap"

	"github.com/arm-software/astcenc-dynamic/astc"
	"github.com/arm-software/astcenc-dynamic/internal/logger"
)

// Params is the creation-time configuration of a Context.
type Params struct {
	// BlockSize is the edge of the square block footprint (4, 5, 6, 8, 10 or 12).
	BlockSize int
	Profile   astc.Profile
	// Quality is the search effort in [astc.PreFastest, astc.PreExhaustive].
	Quality float32
	Flags   astc.Flags
	// Weights are the R, G, B, A error weights. The zero value keeps the codec defaults
	// for the chosen profile and flags.
	Weights [4]float32
	Threads int
}

// DefaultParams returns 4x4 LDR medium-quality single-threaded parameters.
func DefaultParams() Params {
	return Params{
		BlockSize: 4,
		Profile:   astc.ProfileLDR,
		Quality:   astc.PreMedium,
		Threads:   1,
	}
}

type options struct {
	log      *zap.SugaredLogger
	progress func(float32)
}

// Option customises a Context.
type Option func(*options)

// WithLogger routes diagnostics to log instead of discarding them.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithProgress installs a progress callback receiving the completed percentage of each image.
// It may be called from any worker.
func WithProgress(fn func(progress float32)) Option {
	return func(o *options) { o.progress = fn }
}

// encoder is the part of *astc.Context that Compress drives.
type encoder interface {
	CompressImage(img *astc.Image, swizzle astc.Swizzle, out []byte, threadIndex int) error
	CompressReset() error
	Close() error
}

// Context is a reusable encoding session.
type Context struct {
	params Params
	enc    encoder
	log    *zap.SugaredLogger
}

// NewContext validates p and allocates a codec context sized for p.Threads workers.
func NewContext(p Params, opts ...Option) (*Context, error) {
	const op = "create context"

	o := options{log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	fail := func(kind Kind, err error) (*Context, error) {
		o.log.Errorw("codec context creation failed",
			"block", p.BlockSize,
			"profile", p.Profile,
			"quality", p.Quality,
			"threads", p.Threads,
			"status", astc.ErrorString(astc.ErrorCodeOf(err)),
			"error", err,
		)
		return nil, &Error{Op: op, Kind: kind, Err: err}
	}

	if p.Threads < 1 {
		return fail(KindConfig, codecError(astc.ErrBadParam, "astc: invalid thread count"))
	}

	cfg, err := astc.ConfigInit(p.Profile, p.BlockSize, p.BlockSize, 1, p.Quality, p.Flags)
	if err != nil {
		return fail(KindConfig, err)
	}
	if p.Weights != ([4]float32{}) {
		cfg.CWRWeight = p.Weights[0]
		cfg.CWGWeight = p.Weights[1]
		cfg.CWBWeight = p.Weights[2]
		cfg.CWAWeight = p.Weights[3]
	}
	p.Weights = [4]float32{cfg.CWRWeight, cfg.CWGWeight, cfg.CWBWeight, cfg.CWAWeight}
	cfg.ProgressCallback = o.progress

	enc, err := astc.ContextAlloc(&cfg, p.Threads)
	if err != nil {
		kind := KindConfig
		if astc.ErrorCodeOf(err) == astc.ErrOutOfMem {
			kind = KindAlloc
		}
		return fail(kind, err)
	}

	o.log.Debugw("codec context created",
		"block", p.BlockSize,
		"profile", p.Profile,
		"quality", p.Quality,
		"threads", p.Threads,
	)
	return &Context{params: p, enc: enc, log: o.log}, nil
}

// Close releases the codec context. Compress on a closed Context fails with
// astc.ErrBadContext.
func (c *Context) Close() error {
	if c == nil || c.enc == nil {
		return nil
	}
	err := c.enc.Close()
	c.enc = nil
	return err
}

// BlockSize returns the edge of the square block footprint.
func (c *Context) BlockSize() int { return c.params.BlockSize }

// Profile returns the colour profile the Context was created with.
func (c *Context) Profile() astc.Profile { return c.params.Profile }

// Quality returns the search effort the Context was created with.
func (c *Context) Quality() float32 { return c.params.Quality }

// Flags returns the codec flags the Context was created with.
func (c *Context) Flags() astc.Flags { return c.params.Flags }

// ThreadCount returns the number of workers each Compress call runs.
func (c *Context) ThreadCount() int { return c.params.Threads }

// Weights returns the effective R, G, B, A error weights as handed to the codec.
func (c *Context) Weights() [4]float32 { return c.params.Weights }

// OutputLen returns the container size for a width x height image at this Context's block size.
func (c *Context) OutputLen(width, height int) int {
	return OutputLen(width, height, c.params.BlockSize)
}

// OutputLen returns the container size for a width x height image with square blocks of
// edge block: the 16-byte header plus 16 bytes per block. It returns 0 for non-positive
// arguments.
func OutputLen(width, height, block int) int {
	if width <= 0 || height <= 0 || block <= 0 {
		return 0
	}
	blocksX := (width + block - 1) / block
	blocksY := (height + block - 1) / block
	return HeaderSize + blocksX*blocksY*astc.BlockBytes
}
