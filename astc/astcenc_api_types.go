package astc

import (
	"sync"
	"sync/atomic"
)

// Quality presets equivalent to upstream ASTCENC_PRE_*. ConfigInit accepts any value in
// [PreFastest, PreExhaustive] and interpolates between the preset tables.
const (
	PreFastest      float32 = 0
	PreFast         float32 = 10
	PreMedium       float32 = 60
	PreThorough     float32 = 98
	PreVeryThorough float32 = 99
	PreExhaustive   float32 = 100
)

// Flags is a bitset of encoder/decoder options equivalent to upstream ASTCENC_FLG_*.
type Flags uint32

const (
	FlagMapNormal       Flags = 1 << 0 // ASTCENC_FLG_MAP_NORMAL
	FlagUseDecodeUNORM8 Flags = 1 << 1 // ASTCENC_FLG_USE_DECODE_UNORM8
	FlagUseAlphaWeight  Flags = 1 << 2 // ASTCENC_FLG_USE_ALPHA_WEIGHT
	FlagUsePerceptual   Flags = 1 << 3 // ASTCENC_FLG_USE_PERCEPTUAL
	FlagDecompressOnly  Flags = 1 << 4 // ASTCENC_FLG_DECOMPRESS_ONLY
	FlagSelfDecompress  Flags = 1 << 5 // ASTCENC_FLG_SELF_DECOMPRESS_ONLY
	FlagMapRGBM         Flags = 1 << 6 // ASTCENC_FLG_MAP_RGBM
	FlagAll             Flags = (1 << 7) - 1
)

// Swz is a component selector equivalent to upstream astcenc_swz.
type Swz uint8

const (
	SwzR Swz = iota
	SwzG
	SwzB
	SwzA
	Swz0
	Swz1
	SwzZ
)

// Swizzle is a component mapping equivalent to upstream astcenc_swizzle.
type Swizzle struct {
	R Swz
	G Swz
	B Swz
	A Swz
}

var SwizzleRGBA = Swizzle{R: SwzR, G: SwzG, B: SwzB, A: SwzA}

// DataType is a component storage type equivalent to upstream astcenc_type.
// Only TypeU8 images can be compressed; the float types report ErrNotImplemented.
type DataType uint8

const (
	TypeU8 DataType = iota
	TypeF16
	TypeF32
)

// Config is a Go equivalent of upstream astcenc_config.
type Config struct {
	Profile Profile
	Flags   Flags

	BlockX uint32
	BlockY uint32
	BlockZ uint32

	CWRWeight float32
	CWGWeight float32
	CWBWeight float32
	CWAWeight float32

	AScaleRadius uint32
	RGBMMScale   float32

	TunePartitionCountLimit            uint32
	Tune2PartitionIndexLimit           uint32
	Tune3PartitionIndexLimit           uint32
	Tune4PartitionIndexLimit           uint32
	TuneBlockModeLimit                 uint32
	TuneRefinementLimit                uint32
	TuneCandidateLimit                 uint32
	Tune2PartitioningCandidateLimit    uint32
	Tune3PartitioningCandidateLimit    uint32
	Tune4PartitioningCandidateLimit    uint32
	TuneDBLimit                        float32
	TuneMSEOvershoot                   float32
	Tune2PartitionEarlyOutLimitFactor  float32
	Tune3PartitionEarlyOutLimitFactor  float32
	Tune2PlaneEarlyOutLimitCorrelation float32
	TuneSearchMode0Enable              float32

	ProgressCallback func(progress float32)
}

// Image is a tightly-packed RGBA8 image passed to CompressImage.
type Image struct {
	DimX     int
	DimY     int
	DimZ     int
	DataType DataType

	DataU8 []byte
}

type contextState uint32

const (
	ctxIdle contextState = iota
	ctxCompressActive
)

// Context is a reusable pure-Go encoder context modeled after upstream astcenc_context.
//
// It compresses one image at a time. For multi-threaded use, callers run threadCount
// goroutines that each call CompressImage once with a unique thread index, then call
// CompressReset before the next image.
type Context struct {
	cfg         Config
	threadCount int

	blockX int
	blockY int
	blockZ int

	// Search limits and quality tier derived from cfg once at allocation.
	tune    encoderTuning
	quality EncodeQuality

	state    atomic.Uint32
	compress compressState
}

type compressState struct {
	needsReset atomic.Uint32

	// 0 idle, 1 initializing, 2 active
	initState atomic.Uint32
	workers   atomic.Int32

	// Workers that have joined the current image. The image is closed only once all
	// threadCount workers have joined and left, so a late worker finds no work instead of a
	// closed image.
	joined atomic.Int32

	totalBlocks atomic.Uint32
	nextBlock   atomic.Uint32
	doneBlocks  atomic.Uint32

	progressMu            sync.Mutex
	progressMinDiffBits   atomic.Uint32 // float32 bits
	progressLastValueBits atomic.Uint32 // float32 bits

	// Box-filtered alpha for the alpha-scale skip (mirrors upstream input_alpha_averages).
	inputAlphaAverages []float32
}
