// Package zstdpack supercompresses encoded containers with zstd for storage and transfer.
//
// ASTC block streams are fixed-rate, so they compress further with a general purpose
// entropy coder. A Packer is safe for concurrent use.
package zstdpack

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Compression levels map onto the zstd encoder presets.
const (
	FastestLevel uint8 = 1
	DefaultLevel uint8 = 2
	BetterLevel  uint8 = 3
	BestLevel    uint8 = 4
)

// Ext is the file suffix used for packed containers.
const Ext = ".zst"

var ErrInvalidLevel = errors.New("zstdpack: invalid compression level")

// frameMagic opens every zstd frame.
var frameMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

type Options struct {
	Level              uint8
	EncoderConcurrency uint8
	DecoderConcurrency uint8
}

func DefaultOptions() Options {
	return Options{Level: DefaultLevel, EncoderConcurrency: 1, DecoderConcurrency: 1}
}

type Packer struct {
	level   uint8
	mu      sync.RWMutex
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// New creates a Packer. Zero concurrency values default to 1.
func New(opts Options) (*Packer, error) {
	if opts.Level < FastestLevel || opts.Level > BestLevel {
		return nil, fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidLevel, opts.Level, FastestLevel, BestLevel)
	}
	if opts.EncoderConcurrency == 0 {
		opts.EncoderConcurrency = 1
	}
	if opts.DecoderConcurrency == 0 {
		opts.DecoderConcurrency = 1
	}

	encoder, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderLevel(zstd.EncoderLevel(opts.Level)),
		zstd.WithEncoderConcurrency(int(opts.EncoderConcurrency)),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(int(opts.DecoderConcurrency)))
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	return &Packer{level: opts.Level, encoder: encoder, decoder: decoder}, nil
}

// Pack returns data as a single zstd frame. Unlike a general purpose store, the result
// is always framed so readers can tell packed and plain containers apart by magic.
func (p *Packer) Pack(data []byte) []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

func (p *Packer) Unpack(data []byte) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out, err := p.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompression failed: %w", err)
	}
	return out, nil
}

// MaybeUnpack unpacks data if it starts with a zstd frame and returns it unchanged otherwise.
func (p *Packer) MaybeUnpack(data []byte) ([]byte, error) {
	if !IsPacked(data) {
		return data, nil
	}
	return p.Unpack(data)
}

func (p *Packer) Level() uint8 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

// Close releases the encoder and decoder. The Packer must not be used afterwards.
func (p *Packer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.encoder.Close(); err != nil {
		return fmt.Errorf("error closing encoder: %w", err)
	}
	p.decoder.Close()
	return nil
}

// IsPacked reports whether data starts with a zstd frame header.
func IsPacked(data []byte) bool {
	return bytes.HasPrefix(data, frameMagic)
}
