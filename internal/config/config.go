// Package config loads encoder presets for the command line tools.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arm-software/astcenc-dynamic/astc"
	"github.com/arm-software/astcenc-dynamic/astc/dynamic"
)

// Config is an encoder preset as stored in YAML.
type Config struct {
	Block   int       `yaml:"block"`   // Square block edge (4, 5, 6, 8, 10, 12)
	Profile string    `yaml:"profile"` // ldr|srgb|hdr|hdr-rgb-ldr-a
	Quality string    `yaml:"quality"` // Preset name or a number in [0, 100]
	Flags   []string  `yaml:"flags"`   // normal|decode-unorm8|alpha-weight|perceptual|rgbm
	Weights []float32 `yaml:"weights"` // Optional R, G, B, A error weights
	Threads int       `yaml:"threads"` // Workers per image (>= 1)
}

// DefaultConfig returns the 4x4 LDR medium preset with one worker.
func DefaultConfig() *Config {
	return &Config{
		Block:   4,
		Profile: "ldr",
		Quality: "medium",
		Threads: 1,
	}
}

// LoadConfig reads a preset from a YAML file. Fields missing from the file keep their
// DefaultConfig values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML preset.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields that can be checked without building a codec context. Block
// size legality is left to the codec.
func (c *Config) Validate() error {
	if c.Block <= 0 || c.Block > 255 {
		return fmt.Errorf("block must be between 1 and 255, got %d", c.Block)
	}
	if c.Threads < 1 {
		return fmt.Errorf("threads must be at least 1, got %d", c.Threads)
	}
	if len(c.Weights) != 0 && len(c.Weights) != 4 {
		return fmt.Errorf("weights must list 4 values (r, g, b, a), got %d", len(c.Weights))
	}
	if _, err := ParseProfile(c.Profile); err != nil {
		return err
	}
	if _, err := ParseQuality(c.Quality); err != nil {
		return err
	}
	if _, err := ParseFlags(c.Flags); err != nil {
		return err
	}
	return nil
}

// Params converts the preset into context parameters.
func (c *Config) Params() (dynamic.Params, error) {
	if err := c.Validate(); err != nil {
		return dynamic.Params{}, err
	}
	profile, _ := ParseProfile(c.Profile)
	quality, _ := ParseQuality(c.Quality)
	flags, _ := ParseFlags(c.Flags)

	p := dynamic.Params{
		BlockSize: c.Block,
		Profile:   profile,
		Quality:   quality,
		Flags:     flags,
		Threads:   c.Threads,
	}
	copy(p.Weights[:], c.Weights)
	return p, nil
}

func ParseProfile(s string) (astc.Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ldr":
		return astc.ProfileLDR, nil
	case "srgb", "ldr-srgb":
		return astc.ProfileLDRSRGB, nil
	case "hdr", "hdr-rgba":
		return astc.ProfileHDR, nil
	case "hdr-rgb-ldr-a", "hdr-rgb-ldr-alpha":
		return astc.ProfileHDRRGBLDRAlpha, nil
	default:
		return 0, fmt.Errorf("invalid profile %q (want ldr|srgb|hdr|hdr-rgb-ldr-a)", s)
	}
}

// ParseQuality accepts a preset name or a number in [0, 100].
func ParseQuality(s string) (float32, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fastest":
		return astc.PreFastest, nil
	case "fast":
		return astc.PreFast, nil
	case "medium":
		return astc.PreMedium, nil
	case "thorough":
		return astc.PreThorough, nil
	case "verythorough", "very-thorough":
		return astc.PreVeryThorough, nil
	case "exhaustive":
		return astc.PreExhaustive, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil || v < 0 || v > 100 {
		return 0, fmt.Errorf("invalid quality %q (want fastest|fast|medium|thorough|verythorough|exhaustive or 0-100)", s)
	}
	return float32(v), nil
}

func ParseFlags(names []string) (astc.Flags, error) {
	var f astc.Flags
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "normal", "map-normal":
			f |= astc.FlagMapNormal
		case "decode-unorm8":
			f |= astc.FlagUseDecodeUNORM8
		case "alpha-weight":
			f |= astc.FlagUseAlphaWeight
		case "perceptual":
			f |= astc.FlagUsePerceptual
		case "rgbm", "map-rgbm":
			f |= astc.FlagMapRGBM
		default:
			return 0, fmt.Errorf("invalid flag %q (want normal|decode-unorm8|alpha-weight|perceptual|rgbm)", n)
		}
	}
	return f, nil
}
