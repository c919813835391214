package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arm-software/astcenc-dynamic/astc"
	"github.com/arm-software/astcenc-dynamic/astc/dynamic"
	"github.com/arm-software/astcenc-dynamic/internal/config"
	"github.com/arm-software/astcenc-dynamic/internal/logger"
	"github.com/arm-software/astcenc-dynamic/internal/zstdpack"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	log := logger.New("astcbench")
	defer log.Sync()

	switch os.Args[1] {
	case "encode":
		encodeCmd(log, os.Args[2:])
	case "info":
		infoCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  astcbench encode -w W -h H [-block N] [-threads T] [-profile ldr|srgb|hdr|hdr-rgb-ldr-a] [-quality fastest|fast|medium|thorough|verythorough|exhaustive|0-100] [-config preset.yaml] [-iters N] [-out file.astc] [-zstd] [-zstd-level 1-4] [-checksum fnv|none]")
	fmt.Fprintln(os.Stderr, "  astcbench info -in <file.astc[.zst]>")
}

func encodeCmd(log *zap.SugaredLogger, args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	var (
		width       int
		height      int
		block       string
		threads     int
		profile     string
		quality     string
		configPath  string
		iters       int
		outPath     string
		pack        bool
		packLevel   uint
		checksumOpt string
		cpuprofile  string
	)
	fs.IntVar(&width, "w", 256, "width")
	fs.IntVar(&height, "h", 256, "height")
	fs.StringVar(&block, "block", "4", "square block size: N or NxN")
	fs.IntVar(&threads, "threads", 1, "workers per image")
	fs.StringVar(&profile, "profile", "ldr", "profile: ldr|srgb|hdr|hdr-rgb-ldr-a")
	fs.StringVar(&quality, "quality", "medium", "quality: fastest|fast|medium|thorough|verythorough|exhaustive or 0-100")
	fs.StringVar(&configPath, "config", "", "optional YAML preset; explicit flags override it")
	fs.IntVar(&iters, "iters", 20, "iterations")
	fs.StringVar(&outPath, "out", "", "optional output .astc path (writes last iteration)")
	fs.BoolVar(&pack, "zstd", false, "zstd-compress the written container and append "+zstdpack.Ext)
	fs.UintVar(&packLevel, "zstd-level", uint(zstdpack.DefaultLevel), "zstd level 1-4")
	fs.StringVar(&checksumOpt, "checksum", "fnv", "checksum: fnv|none (for benchmarking)")
	fs.StringVar(&cpuprofile, "cpuprofile", "", "optional CPU profile output path")
	_ = fs.Parse(args)

	if width <= 0 || height <= 0 {
		fmt.Fprintln(os.Stderr, "invalid dimensions")
		os.Exit(2)
	}
	if iters <= 0 {
		fmt.Fprintln(os.Stderr, "iters must be > 0")
		os.Exit(2)
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	if err := applyFlags(cfg, fs, block, threads, profile, quality); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	params, err := cfg.Params()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, err := dynamic.NewContext(params, dynamic.WithLogger(log))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer ctx.Close()

	pix := make([]byte, width*height*4)
	fillPatternRGBA8(pix, width, height)
	out := make([]byte, ctx.OutputLen(width, height))

	var cpuFile *os.File
	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cpuFile = f
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = cpuFile.Close()
		}()
	}

	start := time.Now()
	var checksum uint64
	doChecksum := strings.ToLower(strings.TrimSpace(checksumOpt)) != "none"
	for i := 0; i < iters; i++ {
		if err := ctx.Compress(pix, out, astc.SwizzleRGBA, width, height); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if doChecksum {
			checksum = fnv1a64(checksum, out)
		}
	}
	dur := time.Since(start)

	if outPath != "" {
		written, err := writeContainer(outPath, out, pack, uint8(packLevel))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		log.Infow("container written", "path", written, "bytes", len(out), "zstd", pack)
	}

	texels := float64(width*height) * float64(iters)
	mpixPerS := texels / dur.Seconds() / 1e6

	checksumStr := fmtChecksum(checksum)
	if !doChecksum {
		checksumStr = "none"
	}

	fmt.Printf("RESULT mode=encode profile=%s block=%dx%d threads=%d size=%dx%d iters=%d seconds=%.6f mpix/s=%.3f bytes=%d checksum=%s\n",
		cfg.Profile,
		ctx.BlockSize(), ctx.BlockSize(),
		ctx.ThreadCount(),
		width, height,
		iters,
		dur.Seconds(),
		mpixPerS,
		len(out),
		checksumStr,
	)
}

// applyFlags copies the flags set on the command line over cfg.
func applyFlags(cfg *config.Config, fs *flag.FlagSet, block string, threads int, profile, quality string) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "block":
			cfg.Block, err = parseBlock(block)
		case "threads":
			cfg.Threads = threads
		case "profile":
			cfg.Profile = profile
		case "quality":
			cfg.Quality = quality
		}
	})
	if err != nil {
		return err
	}
	return cfg.Validate()
}

func writeContainer(path string, data []byte, pack bool, level uint8) (string, error) {
	if !pack {
		return path, os.WriteFile(path, data, 0o644)
	}

	opts := zstdpack.DefaultOptions()
	opts.Level = level
	p, err := zstdpack.New(opts)
	if err != nil {
		return "", err
	}
	defer p.Close()

	if !strings.HasSuffix(path, zstdpack.Ext) {
		path += zstdpack.Ext
	}
	return path, os.WriteFile(path, p.Pack(data), 0o644)
}

func infoCmd(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	var inPath string
	fs.StringVar(&inPath, "in", "", "input .astc or .astc.zst file")
	_ = fs.Parse(args)

	if inPath == "" {
		fmt.Fprintln(os.Stderr, "missing -in")
		os.Exit(2)
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	line, err := describe(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(line)
}

// describe renders the header of a plain or zstd-packed container.
func describe(data []byte) (string, error) {
	packed := zstdpack.IsPacked(data)
	if packed {
		p, err := zstdpack.New(zstdpack.DefaultOptions())
		if err != nil {
			return "", err
		}
		defer p.Close()
		if data, err = p.Unpack(data); err != nil {
			return "", err
		}
	}

	hdr, blocks, err := astc.ParseFile(data)
	if err != nil {
		return "", err
	}
	n := len(blocks) / astc.BlockBytes
	return fmt.Sprintf("INFO %s blocks=%d bytes=%d zstd=%t", hdr, n, astc.HeaderSize+len(blocks), packed), nil
}
