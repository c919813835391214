package astc

import (
	"math"
	"math/bits"
	"runtime"
)

// ConfigInit populates a Config using defaults equivalent to upstream astcenc_config_init.
func ConfigInit(profile Profile, blockX, blockY, blockZ int, quality float32, flags Flags) (Config, error) {
	if blockZ == 0 {
		// Upstream accepts Z==0 for 2D and normalizes to 1.
		blockZ = 1
	}

	if quality < 0 || quality > 100 {
		return Config{}, newError(ErrBadQuality, "astc: invalid quality")
	}
	if err := validateBlockSize(blockX, blockY, blockZ); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Profile: profile,
		Flags:   flags,
		BlockX:  uint32(blockX),
		BlockY:  uint32(blockY),
		BlockZ:  uint32(blockZ),

		// Defaults; may be overridden by profile/flags below.
		CWRWeight: 1,
		CWGWeight: 1,
		CWBWeight: 1,
		CWAWeight: 1,
	}

	if err := validateProfile(profile); err != nil {
		return Config{}, err
	}
	if err := validateFlags(profile, flags); err != nil {
		return Config{}, err
	}

	texels := float64(blockX * blockY * blockZ)
	ltexels := math.Log10(texels)

	// Pick the preset table based on texel count.
	presets := presetConfigsLow
	if texels < 25 {
		presets = presetConfigsHigh
	} else if texels < 64 {
		presets = presetConfigsMid
	}

	// Determine which preset nodes to use (or interpolate between).
	end := 0
	for end < len(presets) && presets[end].quality < quality {
		end++
	}
	start := 0
	if end > 0 {
		start = end - 1
	}
	if end >= len(presets) {
		end = len(presets) - 1
		start = end
	}

	if start == end {
		cfg.TunePartitionCountLimit = presets[start].tunePartitionCountLimit
		cfg.Tune2PartitionIndexLimit = presets[start].tune2PartitionIndexLimit
		cfg.Tune3PartitionIndexLimit = presets[start].tune3PartitionIndexLimit
		cfg.Tune4PartitionIndexLimit = presets[start].tune4PartitionIndexLimit
		cfg.TuneBlockModeLimit = presets[start].tuneBlockModeLimit
		cfg.TuneRefinementLimit = presets[start].tuneRefinementLimit
		cfg.TuneCandidateLimit = presets[start].tuneCandidateLimit
		cfg.Tune2PartitioningCandidateLimit = presets[start].tune2PartitioningCandidateLimit
		cfg.Tune3PartitioningCandidateLimit = presets[start].tune3PartitioningCandidateLimit
		cfg.Tune4PartitioningCandidateLimit = presets[start].tune4PartitioningCandidateLimit

		cfg.TuneDBLimit = float32(math.Max(
			float64(presets[start].tuneDBLimitABase)-35*ltexels,
			float64(presets[start].tuneDBLimitBBase)-19*ltexels,
		))

		cfg.TuneMSEOvershoot = presets[start].tuneMSEOvershoot
		cfg.Tune2PartitionEarlyOutLimitFactor = presets[start].tune2PartitionEarlyOutLimitFactor
		cfg.Tune3PartitionEarlyOutLimitFactor = presets[start].tune3PartitionEarlyOutLimitFactor
		cfg.Tune2PlaneEarlyOutLimitCorrelation = presets[start].tune2PlaneEarlyOutLimitCorrelation
		cfg.TuneSearchMode0Enable = presets[start].tuneSearchMode0Enable
	} else {
		a := presets[start]
		b := presets[end]
		wtRange := b.quality - a.quality
		if wtRange <= 0 {
			return Config{}, newError(ErrBadQuality, "astc: invalid quality preset table")
		}

		wtA := (b.quality - quality) / wtRange
		wtB := (quality - a.quality) / wtRange

		lerp := func(av, bv float32) float32 { return av*wtA + bv*wtB }
		lerpi := func(av, bv uint32) uint32 {
			v := float32(av)*wtA + float32(bv)*wtB
			return uint32(int(v + 0.5))
		}

		cfg.TunePartitionCountLimit = lerpi(a.tunePartitionCountLimit, b.tunePartitionCountLimit)
		cfg.Tune2PartitionIndexLimit = lerpi(a.tune2PartitionIndexLimit, b.tune2PartitionIndexLimit)
		cfg.Tune3PartitionIndexLimit = lerpi(a.tune3PartitionIndexLimit, b.tune3PartitionIndexLimit)
		cfg.Tune4PartitionIndexLimit = lerpi(a.tune4PartitionIndexLimit, b.tune4PartitionIndexLimit)
		cfg.TuneBlockModeLimit = lerpi(a.tuneBlockModeLimit, b.tuneBlockModeLimit)
		cfg.TuneRefinementLimit = lerpi(a.tuneRefinementLimit, b.tuneRefinementLimit)
		cfg.TuneCandidateLimit = lerpi(a.tuneCandidateLimit, b.tuneCandidateLimit)
		cfg.Tune2PartitioningCandidateLimit = lerpi(a.tune2PartitioningCandidateLimit, b.tune2PartitioningCandidateLimit)
		cfg.Tune3PartitioningCandidateLimit = lerpi(a.tune3PartitioningCandidateLimit, b.tune3PartitioningCandidateLimit)
		cfg.Tune4PartitioningCandidateLimit = lerpi(a.tune4PartitioningCandidateLimit, b.tune4PartitioningCandidateLimit)

		cfg.TuneDBLimit = float32(math.Max(
			float64(lerp(a.tuneDBLimitABase, b.tuneDBLimitABase))-35*ltexels,
			float64(lerp(a.tuneDBLimitBBase, b.tuneDBLimitBBase))-19*ltexels,
		))

		cfg.TuneMSEOvershoot = lerp(a.tuneMSEOvershoot, b.tuneMSEOvershoot)
		cfg.Tune2PartitionEarlyOutLimitFactor = lerp(a.tune2PartitionEarlyOutLimitFactor, b.tune2PartitionEarlyOutLimitFactor)
		cfg.Tune3PartitionEarlyOutLimitFactor = lerp(a.tune3PartitionEarlyOutLimitFactor, b.tune3PartitionEarlyOutLimitFactor)
		cfg.Tune2PlaneEarlyOutLimitCorrelation = lerp(a.tune2PlaneEarlyOutLimitCorrelation, b.tune2PlaneEarlyOutLimitCorrelation)
		cfg.TuneSearchMode0Enable = lerp(a.tuneSearchMode0Enable, b.tuneSearchMode0Enable)
	}

	// Profile-specific defaults.
	switch profile {
	case ProfileLDR, ProfileLDRSRGB:
		// LDR defaults are fine.
	case ProfileHDRRGBLDRAlpha, ProfileHDR:
		cfg.TuneDBLimit = 999.0
		cfg.TuneSearchMode0Enable = 0
	default:
		return Config{}, newError(ErrBadProfile, "astc: invalid profile")
	}

	// Flag-specific defaults.
	if (flags & FlagMapNormal) != 0 {
		// Normal map encoding uses L+A blocks, so allow one more partitioning than normal.
		if cfg.TunePartitionCountLimit < 4 {
			cfg.TunePartitionCountLimit++
		}

		cfg.CWGWeight = 0
		cfg.CWBWeight = 0
		cfg.Tune2PartitionEarlyOutLimitFactor *= 1.5
		cfg.Tune3PartitionEarlyOutLimitFactor *= 1.5
		cfg.Tune2PlaneEarlyOutLimitCorrelation = 0.99

		// Normals are prone to blocking artifacts on smooth curves so try harder.
		cfg.TuneDBLimit *= 1.03
	} else if (flags & FlagMapRGBM) != 0 {
		cfg.RGBMMScale = 5.0
		cfg.CWAWeight = 2.0 * cfg.RGBMMScale
	} else {
		// Perceptual weights for RGB color data.
		if (flags & FlagUsePerceptual) != 0 {
			cfg.CWRWeight = 0.30 * 2.25
			cfg.CWGWeight = 0.59 * 2.25
			cfg.CWBWeight = 0.11 * 2.25
		}
	}

	return cfg, nil
}

// ContextAlloc creates a reusable encoder context based on a config, mirroring upstream
// astcenc_context_alloc semantics.
func ContextAlloc(cfg *Config, threadCount int) (*Context, error) {
	if cfg == nil {
		return nil, newError(ErrBadParam, "astc: nil config")
	}
	if threadCount <= 0 {
		return nil, newError(ErrBadParam, "astc: invalid thread count")
	}

	// The context keeps its own validated and clamped copy.
	cfgi := *cfg
	if err := validateAndClampConfig(&cfgi); err != nil {
		return nil, err
	}
	if cfgi.Flags&(FlagDecompressOnly|FlagSelfDecompress) != 0 {
		return nil, newError(ErrNotImplemented, "astc: decompress-only contexts are not supported")
	}

	ctx := &Context{
		cfg:         cfgi,
		threadCount: threadCount,
		blockX:      int(cfgi.BlockX),
		blockY:      int(cfgi.BlockY),
		blockZ:      int(cfgi.BlockZ),
		tune:        encoderTuningFromConfig(cfgi),
		quality:     encodeQualityFromConfig(cfgi),
	}
	ctx.state.Store(uint32(ctxIdle))
	return ctx, nil
}

// Close releases the context. The pure-Go context holds no external resources.
func (c *Context) Close() error {
	return nil
}

// CompressImage encodes img into out as a stream of 16-byte blocks, without a file header.
//
// Multi-threaded contexts expect threadCount concurrent calls, one per threadIndex. Blocks
// are handed out dynamically, so the calls share the work and each returns once no blocks
// remain. The first block error stops the calling worker only; the others keep draining.
func (c *Context) CompressImage(img *Image, swizzle Swizzle, out []byte, threadIndex int) error {
	if c == nil {
		return newError(ErrBadContext, "astc: nil context")
	}
	if img == nil {
		return newError(ErrBadParam, "astc: nil image")
	}
	if threadIndex < 0 || threadIndex >= c.threadCount {
		return newError(ErrBadParam, "astc: invalid thread index")
	}
	if err := validateCompressionSwizzle(swizzle); err != nil {
		return err
	}

	// Single-threaded contexts implicitly reset between images (matches upstream).
	if c.threadCount == 1 {
		_ = c.CompressReset()
	}

	if err := validateImageIn(img); err != nil {
		return err
	}

	grid := newBlockGrid(img, c.blockX, c.blockY, c.blockZ)
	if len(out) < grid.total*BlockBytes {
		return newError(ErrOutOfMem, "astc: output buffer too small")
	}

	if err := c.beginCompress(uint32(grid.total), img, swizzle); err != nil {
		return err
	}
	defer c.endCompress()

	texels := make([]byte, c.blockX*c.blockY*c.blockZ*4)
	total := uint32(grid.total)
	for {
		i := int(c.compress.nextBlock.Add(1) - 1)
		if i >= grid.total {
			return nil
		}

		blk, err := c.compressBlock(img, swizzle, grid, i, texels)
		if err != nil {
			return err
		}
		copy(out[i*BlockBytes:(i+1)*BlockBytes], blk[:])

		done := c.compress.doneBlocks.Add(1)
		c.maybeReportProgress(done, total, c.cfg.ProgressCallback)
	}
}

// CompressReset prepares a multi-threaded context for the next image. It must not be called
// while any CompressImage call for the current image is still running.
func (c *Context) CompressReset() error {
	if c == nil {
		return newError(ErrBadContext, "astc: nil context")
	}
	if c.compress.workers.Load() != 0 {
		return newError(ErrBadContext, "astc: compress reset while compress active")
	}
	c.compress.needsReset.Store(0)
	c.compress.initState.Store(0)
	c.compress.joined.Store(0)
	c.compress.inputAlphaAverages = nil
	// An image joined by fewer than threadCount workers stays open until reset.
	c.state.CompareAndSwap(uint32(ctxCompressActive), uint32(ctxIdle))
	return nil
}

// blockGrid maps a linear block index to the texel origin of that block.
type blockGrid struct {
	blocksX, blocksY int
	total            int
	blockX, blockY   int
	blockZ           int
}

func newBlockGrid(img *Image, blockX, blockY, blockZ int) blockGrid {
	g := blockGrid{
		blocksX: (img.DimX + blockX - 1) / blockX,
		blocksY: (img.DimY + blockY - 1) / blockY,
		blockX:  blockX,
		blockY:  blockY,
		blockZ:  blockZ,
	}
	blocksZ := (img.DimZ + blockZ - 1) / blockZ
	g.total = g.blocksX * g.blocksY * blocksZ
	return g
}

func (g blockGrid) origin(i int) (x0, y0, z0 int) {
	plane := g.blocksX * g.blocksY
	bz := i / plane
	rem := i - bz*plane
	by := rem / g.blocksX
	bx := rem - by*g.blocksX
	return bx * g.blockX, by * g.blockY, bz * g.blockZ
}

func (c *Context) compressBlock(img *Image, swizzle Swizzle, grid blockGrid, i int, texels []byte) ([BlockBytes]byte, error) {
	x0, y0, z0 := grid.origin(i)

	if !c.blockHasAlphaCoverage(img, swizzle, x0, y0, z0) {
		if c.cfg.Profile == ProfileLDR || c.cfg.Profile == ProfileLDRSRGB {
			return EncodeConstBlockRGBA8(0, 0, 0, 0), nil
		}
		return EncodeConstBlockF16(0, 0, 0, 0), nil
	}

	extractBlockRGBA8Volume(img.DataU8, img.DimX, img.DimY, img.DimZ, x0, y0, z0, c.blockX, c.blockY, c.blockZ, texels)
	applySwizzleRGBA8InPlace(texels, swizzle)

	weight := [4]float32{c.cfg.CWRWeight, c.cfg.CWGWeight, c.cfg.CWBWeight, c.cfg.CWAWeight}
	if c.cfg.Flags&FlagUseAlphaWeight != 0 {
		maxA := uint8(0)
		for t := 3; t < len(texels); t += 4 {
			if texels[t] > maxA {
				maxA = texels[t]
			}
		}
		scale := float32(maxA) * (1.0 / 255.0)
		weight[0] *= scale
		weight[1] *= scale
		weight[2] *= scale
	}

	return encodeBlockRGBA8LDR(c.cfg.Profile, c.blockX, c.blockY, c.blockZ, texels, c.quality, weight, c.cfg.Flags, &c.tune)
}

// blockHasAlphaCoverage reports whether a 2D block must be fully encoded when alpha-scale
// RDO is enabled. Blocks whose filtered alpha footprint is effectively zero encode as
// transparent black.
func (c *Context) blockHasAlphaCoverage(img *Image, swizzle Swizzle, x0, y0, z0 int) bool {
	if c.cfg.AScaleRadius == 0 || c.blockZ != 1 {
		return true
	}
	switch swizzle.A {
	case Swz1:
		return true
	case Swz0:
		return false
	}
	averages := c.compress.inputAlphaAverages
	if averages == nil {
		return true
	}

	endX := min(x0+c.blockX, img.DimX)
	endY := min(y0+c.blockY, img.DimY)

	ext := max(int(c.cfg.AScaleRadius)-1, 0)
	footprint := float32((c.blockX + 2*ext) * (c.blockY + 2*ext))
	threshold := 0.9 / (255.0 * footprint)

	zBase := z0 * img.DimY * img.DimX
	for y := y0; y < endY; y++ {
		row := averages[zBase+y*img.DimX : zBase+y*img.DimX+endX]
		for x := x0; x < endX; x++ {
			if row[x] > threshold {
				return true
			}
		}
	}
	return false
}

// -----------------------------------------------------------------------------
// Pure-Go helpers (ported from upstream config init/validation logic)
// -----------------------------------------------------------------------------

type presetConfig struct {
	quality float32

	tunePartitionCountLimit            uint32
	tune2PartitionIndexLimit           uint32
	tune3PartitionIndexLimit           uint32
	tune4PartitionIndexLimit           uint32
	tuneBlockModeLimit                 uint32
	tuneRefinementLimit                uint32
	tuneCandidateLimit                 uint32
	tune2PartitioningCandidateLimit    uint32
	tune3PartitioningCandidateLimit    uint32
	tune4PartitioningCandidateLimit    uint32
	tuneDBLimitABase                   float32
	tuneDBLimitBBase                   float32
	tuneMSEOvershoot                   float32
	tune2PartitionEarlyOutLimitFactor  float32
	tune3PartitionEarlyOutLimitFactor  float32
	tune2PlaneEarlyOutLimitCorrelation float32
	tuneSearchMode0Enable              float32
}

var presetConfigsHigh = []presetConfig{
	{0, 2, 10, 6, 4, 43, 2, 2, 2, 2, 2, 85.2, 63.2, 3.5, 1.0, 1.0, 0.85, 0.0},
	{10, 3, 18, 10, 8, 55, 3, 3, 2, 2, 2, 85.2, 63.2, 3.5, 1.0, 1.0, 0.90, 0.0},
	{60, 4, 34, 28, 16, 77, 3, 3, 2, 2, 2, 95.0, 70.0, 2.5, 1.1, 1.05, 0.95, 0.0},
	{98, 4, 82, 60, 30, 94, 4, 4, 3, 2, 2, 105.0, 77.0, 10.0, 1.35, 1.15, 0.97, 0.0},
	{99, 4, 256, 128, 64, 98, 4, 6, 8, 6, 4, 200.0, 200.0, 10.0, 1.6, 1.4, 0.98, 0.0},
	{100, 4, 512, 512, 512, 100, 4, 8, 8, 8, 8, 200.0, 200.0, 10.0, 2.0, 2.0, 0.99, 0.0},
}

var presetConfigsMid = []presetConfig{
	{0, 2, 10, 6, 4, 43, 2, 2, 2, 2, 2, 85.2, 63.2, 3.5, 1.0, 1.0, 0.80, 1.0},
	{10, 3, 18, 12, 10, 55, 3, 3, 2, 2, 2, 85.2, 63.2, 3.5, 1.0, 1.0, 0.85, 1.0},
	{60, 3, 34, 28, 16, 77, 3, 3, 2, 2, 2, 95.0, 70.0, 3.0, 1.1, 1.05, 0.90, 1.0},
	{98, 4, 82, 60, 30, 94, 4, 4, 3, 2, 2, 105.0, 77.0, 10.0, 1.4, 1.2, 0.95, 0.0},
	{99, 4, 256, 128, 64, 98, 4, 6, 8, 6, 3, 200.0, 200.0, 10.0, 1.6, 1.4, 0.98, 0.0},
	{100, 4, 256, 256, 256, 100, 4, 8, 8, 8, 8, 200.0, 200.0, 10.0, 2.0, 2.0, 0.99, 0.0},
}

var presetConfigsLow = []presetConfig{
	{0, 2, 10, 6, 4, 40, 2, 2, 2, 2, 2, 85.0, 63.0, 3.5, 1.0, 1.0, 0.80, 1.0},
	{10, 2, 18, 12, 10, 55, 3, 3, 2, 2, 2, 85.0, 63.0, 3.5, 1.0, 1.0, 0.85, 1.0},
	{60, 3, 34, 28, 16, 77, 3, 3, 2, 2, 2, 95.0, 70.0, 3.5, 1.1, 1.05, 0.90, 1.0},
	{98, 4, 82, 60, 30, 93, 4, 4, 3, 2, 2, 105.0, 77.0, 10.0, 1.3, 1.2, 0.97, 1.0},
	{99, 4, 256, 128, 64, 98, 4, 6, 8, 5, 2, 200.0, 200.0, 10.0, 1.6, 1.4, 0.98, 1.0},
	{100, 4, 256, 256, 256, 100, 4, 8, 8, 8, 8, 200.0, 200.0, 10.0, 2.0, 2.0, 0.99, 1.0},
}

func validateProfile(profile Profile) error {
	switch profile {
	case ProfileLDR, ProfileLDRSRGB, ProfileHDRRGBLDRAlpha, ProfileHDR:
		return nil
	default:
		return newError(ErrBadProfile, "astc: invalid profile")
	}
}

func validateFlags(profile Profile, flags Flags) error {
	if flags&^FlagAll != 0 {
		return newError(ErrBadFlags, "astc: invalid flags")
	}
	mapMask := FlagMapNormal | FlagMapRGBM
	if bits.OnesCount32(uint32(flags&mapMask)) > 1 {
		return newError(ErrBadFlags, "astc: invalid flags")
	}
	if (flags & FlagUseDecodeUNORM8) != 0 {
		if profile == ProfileHDR || profile == ProfileHDRRGBLDRAlpha {
			return newError(ErrBadDecodeMode, "astc: invalid decode mode for HDR profile")
		}
	}
	return nil
}

func validateBlockSize(blockX, blockY, blockZ int) error {
	if blockX <= 0 || blockY <= 0 || blockZ <= 0 {
		return newError(ErrBadBlockSize, "astc: invalid block dimensions")
	}
	if blockX > 255 || blockY > 255 || blockZ > 255 {
		return newError(ErrBadBlockSize, "astc: invalid block dimensions")
	}
	if blockX*blockY*blockZ > blockMaxTexels {
		return newError(ErrBadBlockSize, "astc: invalid block dimensions")
	}
	if blockZ <= 1 {
		if !isLegal2DBlockSize(blockX, blockY) {
			return newError(ErrBadBlockSize, "astc: invalid block dimensions")
		}
		return nil
	}
	if !isLegal3DBlockSize(blockX, blockY, blockZ) {
		return newError(ErrBadBlockSize, "astc: invalid block dimensions")
	}
	return nil
}

func isLegal2DBlockSize(xdim, ydim int) bool {
	switch (xdim << 8) | ydim {
	case 0x0404,
		0x0504,
		0x0505,
		0x0605,
		0x0606,
		0x0805,
		0x0806,
		0x0808,
		0x0A05,
		0x0A06,
		0x0A08,
		0x0A0A,
		0x0C0A,
		0x0C0C:
		return true
	default:
		return false
	}
}

func isLegal3DBlockSize(xdim, ydim, zdim int) bool {
	switch (xdim << 16) | (ydim << 8) | zdim {
	case 0x030303,
		0x040303,
		0x040403,
		0x040404,
		0x050404,
		0x050504,
		0x050505,
		0x060505,
		0x060605,
		0x060606:
		return true
	default:
		return false
	}
}

func validateAndClampConfig(cfg *Config) error {
	if cfg == nil {
		return newError(ErrBadParam, "astc: nil config")
	}
	if err := validateProfile(cfg.Profile); err != nil {
		return err
	}
	if err := validateFlags(cfg.Profile, cfg.Flags); err != nil {
		return err
	}
	if err := validateBlockSize(int(cfg.BlockX), int(cfg.BlockY), int(cfg.BlockZ)); err != nil {
		return err
	}

	cfg.RGBMMScale = max(cfg.RGBMMScale, 1)

	cfg.TunePartitionCountLimit = clampU32(cfg.TunePartitionCountLimit, 1, 4)
	for _, v := range []*uint32{&cfg.Tune2PartitionIndexLimit, &cfg.Tune3PartitionIndexLimit, &cfg.Tune4PartitionIndexLimit} {
		*v = clampU32(*v, 1, 1024)
	}
	cfg.TuneBlockModeLimit = clampU32(cfg.TuneBlockModeLimit, 1, 100)
	cfg.TuneRefinementLimit = max(cfg.TuneRefinementLimit, 1)
	for _, v := range []*uint32{&cfg.TuneCandidateLimit, &cfg.Tune2PartitioningCandidateLimit, &cfg.Tune3PartitioningCandidateLimit, &cfg.Tune4PartitioningCandidateLimit} {
		*v = clampU32(*v, 1, 8)
	}

	cfg.TuneDBLimit = max(cfg.TuneDBLimit, 0)
	cfg.TuneMSEOvershoot = max(cfg.TuneMSEOvershoot, 1)
	cfg.Tune2PartitionEarlyOutLimitFactor = max(cfg.Tune2PartitionEarlyOutLimitFactor, 0)
	cfg.Tune3PartitionEarlyOutLimitFactor = max(cfg.Tune3PartitionEarlyOutLimitFactor, 0)
	cfg.Tune2PlaneEarlyOutLimitCorrelation = max(cfg.Tune2PlaneEarlyOutLimitCorrelation, 0)

	maxWeight := max4(cfg.CWRWeight, cfg.CWGWeight, cfg.CWBWeight, cfg.CWAWeight)
	if !(maxWeight > 0) {
		return newError(ErrBadParam, "astc: invalid component weights")
	}
	// No channel drops below 1/1000 of the strongest one (matches upstream).
	minWeight := maxWeight / 1000.0
	for _, w := range []*float32{&cfg.CWRWeight, &cfg.CWGWeight, &cfg.CWBWeight, &cfg.CWAWeight} {
		*w = max(*w, minWeight)
	}

	return nil
}

func clampU32(v, lo, hi uint32) uint32 {
	return min(max(v, lo), hi)
}

func max4(a, b, c, d float32) float32 {
	return max(a, b, c, d)
}

func validateCompressionSwizzle(swz Swizzle) error {
	// Matches upstream validate_compression_swizzle: SWZ_Z is invalid for compression.
	if swz.R > Swz1 || swz.G > Swz1 || swz.B > Swz1 || swz.A > Swz1 {
		return newError(ErrBadSwizzle, "astc: invalid swizzle")
	}
	return nil
}

func encodeQualityFromConfig(cfg Config) EncodeQuality {
	// Heuristic mapping based on tune_block_mode_limit from upstream presets.
	v := cfg.TuneBlockModeLimit
	switch {
	case v <= 43:
		return EncodeFastest
	case v <= 55:
		return EncodeFast
	case v <= 77:
		return EncodeMedium
	case v <= 94:
		return EncodeThorough
	case v <= 98:
		return EncodeVeryThorough
	default:
		return EncodeExhaustive
	}
}

// -----------------------------------------------------------------------------
// Job scheduling and pixel helpers
// -----------------------------------------------------------------------------

func (c *Context) maybeReportProgress(done, total uint32, cb func(float32)) {
	if cb == nil || total == 0 {
		return
	}

	// The last block always reports 100% (matches upstream).
	if done >= total {
		c.compress.progressMu.Lock()
		last := math.Float32frombits(c.compress.progressLastValueBits.Load())
		if last != 100.0 {
			cb(100.0)
			c.compress.progressLastValueBits.Store(math.Float32bits(100.0))
		}
		c.compress.progressMu.Unlock()
		return
	}

	minDiff := math.Float32frombits(c.compress.progressMinDiffBits.Load())
	last := math.Float32frombits(c.compress.progressLastValueBits.Load())
	value := (float32(done) / float32(total)) * 100.0
	if (value - last) <= minDiff {
		return
	}

	// Recheck under lock, another worker may have reported first.
	c.compress.progressMu.Lock()
	last = math.Float32frombits(c.compress.progressLastValueBits.Load())
	if (value - last) > minDiff {
		cb(value)
		c.compress.progressLastValueBits.Store(math.Float32bits(value))
	}
	c.compress.progressMu.Unlock()
}

// beginCompress joins the calling worker to the current image, opening it first if the
// context is idle. Exactly one worker initializes the shared block counters.
func (c *Context) beginCompress(totalBlocks uint32, img *Image, swizzle Swizzle) error {
	if c.compress.needsReset.Load() != 0 {
		return newError(ErrBadContext, "astc: compress requires reset")
	}

	if !c.state.CompareAndSwap(uint32(ctxIdle), uint32(ctxCompressActive)) &&
		contextState(c.state.Load()) != ctxCompressActive {
		return newError(ErrBadContext, "astc: context busy")
	}

	for {
		st := c.compress.initState.Load()
		if st == 2 {
			break
		}
		if st == 0 && c.compress.initState.CompareAndSwap(0, 1) {
			c.compress.totalBlocks.Store(totalBlocks)
			c.compress.nextBlock.Store(0)
			c.compress.doneBlocks.Store(0)
			c.compress.joined.Store(0)
			c.compress.inputAlphaAverages = nil

			// Report every 1% or 4096 blocks, whichever is larger (matches upstream).
			minDiff := float32(1.0)
			if totalBlocks != 0 {
				minDiff = max(minDiff, (4096.0/float32(totalBlocks))*100.0)
			}
			c.compress.progressMinDiffBits.Store(math.Float32bits(minDiff))
			c.compress.progressLastValueBits.Store(math.Float32bits(0.0))

			if c.cfg.AScaleRadius != 0 && c.blockZ == 1 && swizzle.A != Swz0 && swizzle.A != Swz1 {
				c.compress.inputAlphaAverages = computeInputAlphaAverages(img, swizzle.A, int(c.cfg.AScaleRadius))
			}

			c.compress.initState.Store(2)
			break
		}
		runtime.Gosched()
	}

	c.compress.workers.Add(1)
	c.compress.joined.Add(1)
	return nil
}

func (c *Context) endCompress() {
	if c.compress.workers.Add(-1) != 0 {
		return
	}
	if int(c.compress.joined.Load()) < c.threadCount {
		return
	}

	if c.threadCount > 1 {
		c.compress.needsReset.Store(1)
	}

	c.compress.inputAlphaAverages = nil
	c.compress.initState.Store(0)
	c.state.Store(uint32(ctxIdle))
}

func validateImageIn(img *Image) error {
	if img.DimX <= 0 || img.DimY <= 0 || img.DimZ <= 0 {
		return newError(ErrBadParam, "astc: invalid image dimensions")
	}
	switch img.DataType {
	case TypeU8:
	case TypeF16, TypeF32:
		return newError(ErrNotImplemented, "astc: only RGBA8 images can be compressed")
	default:
		return newError(ErrBadParam, "astc: unknown image data type")
	}
	if len(img.DataU8) != img.DimX*img.DimY*img.DimZ*4 {
		return newError(ErrBadParam, "astc: invalid RGBA8 buffer length")
	}
	return nil
}

func applySwizzleRGBA8InPlace(pix []byte, swz Swizzle) {
	if swz == SwizzleRGBA {
		return
	}
	for i := 0; i < len(pix); i += 4 {
		r, g, b, a := pix[i+0], pix[i+1], pix[i+2], pix[i+3]
		pix[i+0] = swzU8(swz.R, r, g, b, a)
		pix[i+1] = swzU8(swz.G, r, g, b, a)
		pix[i+2] = swzU8(swz.B, r, g, b, a)
		pix[i+3] = swzU8(swz.A, r, g, b, a)
	}
}

func swzU8(s Swz, r, g, b, a byte) byte {
	switch s {
	case SwzR:
		return r
	case SwzG:
		return g
	case SwzB:
		return b
	case SwzA:
		return a
	case Swz1:
		return 255
	default:
		return 0
	}
}

// computeInputAlphaAverages box-filters the swizzled alpha channel with the given radius,
// replicating edge texels. Depth slices are filtered independently.
func computeInputAlphaAverages(img *Image, alphaSwz Swz, radius int) []float32 {
	if img == nil || radius <= 0 {
		return nil
	}
	width, height, depth := img.DimX, img.DimY, img.DimZ
	texelCount := width * height * depth
	if texelCount <= 0 {
		return nil
	}

	alpha := make([]float32, texelCount)
	for i := range alpha {
		off := i * 4
		p := img.DataU8[off : off+4]
		alpha[i] = float32(swzU8(alphaSwz, p[0], p[1], p[2], p[3])) * (1.0 / 255.0)
	}

	tmp := make([]float32, texelCount)
	plane := width * height
	for z := 0; z < depth; z++ {
		base := z * plane
		// Rows into tmp, then columns back into alpha.
		for y := 0; y < height; y++ {
			boxFilter(alpha[base+y*width:], tmp[base+y*width:], width, 1, radius)
		}
		for x := 0; x < width; x++ {
			boxFilter(tmp[base+x:], alpha[base+x:], height, width, radius)
		}
	}

	kdim := 2*radius + 1
	inv := 1.0 / float32(kdim*kdim)
	for i := range alpha {
		alpha[i] *= inv
	}
	return alpha
}

// boxFilter writes running window sums of n samples spaced by stride from src into dst.
func boxFilter(src, dst []float32, n, stride, radius int) {
	clamp := func(i int) int { return min(max(i, 0), n-1) }

	sum := float32(0)
	for d := -radius; d <= radius; d++ {
		sum += src[clamp(d)*stride]
	}
	dst[0] = sum
	for i := 1; i < n; i++ {
		sum += src[clamp(i+radius)*stride] - src[clamp(i-radius-1)*stride]
		dst[i*stride] = sum
	}
}

// extractBlockRGBA8Volume copies one block of texels into dst, replicating edge texels for
// blocks that overhang the image.
func extractBlockRGBA8Volume(pix []byte, width, height, depth, x0, y0, z0, blockX, blockY, blockZ int, dst []byte) {
	for bz := 0; bz < blockZ; bz++ {
		z := min(z0+bz, depth-1)
		for by := 0; by < blockY; by++ {
			y := min(y0+by, height-1)
			row := (z*height + y) * width
			for bx := 0; bx < blockX; bx++ {
				x := min(x0+bx, width-1)
				src := (row + x) * 4
				dstOff := ((bz*blockY+by)*blockX + bx) * 4
				copy(dst[dstOff:dstOff+4], pix[src:src+4])
			}
		}
	}
}
