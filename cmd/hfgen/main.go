// Command hfgen writes a procedural 16-bit height field and matching
// diffuse texture for the viewer.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield/internal/hfgen"
	"github.com/Faultbox/heightfield/internal/logger"
)

func main() {
	def := hfgen.DefaultOptions()
	var (
		size       = flag.Int("size", def.Size, "Image size in pixels per side")
		seed       = flag.Int64("seed", def.Seed, "Noise seed")
		scale      = flag.Float64("scale", def.Frequency, "Noise cycles across the image")
		octaves    = flag.Int("octaves", def.Octaves, "Noise octaves")
		water      = flag.Float64("water", def.WaterLevel, "Normalized water level for the diffuse")
		outHeight  = flag.String("out-height", "assets/heightfield.png", "Height field output")
		outDiffuse = flag.String("out-diffuse", "assets/diffuse.png", "Diffuse output")
		progress   = flag.Bool("progress", true, "Show a progress bar")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	if err := logger.Init(level, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts := def
	opts.Size = *size
	opts.Seed = *seed
	opts.Frequency = *scale
	opts.Octaves = *octaves
	opts.WaterLevel = *water

	if err := run(opts, *outHeight, *outDiffuse, *progress); err != nil {
		logger.Error("generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(opts hfgen.Options, heightPath, diffusePath string, showProgress bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	var tick func()
	if showProgress {
		bar := progressbar.Default(int64(opts.Rows()), "generating")
		defer bar.Close()
		tick = func() { _ = bar.Add(1) }
	}

	res, err := hfgen.Generate(opts, tick)
	if err != nil {
		return err
	}

	if err := writePNG(heightPath, res.Height); err != nil {
		return err
	}
	if err := writePNG(diffusePath, res.Diffuse); err != nil {
		return err
	}

	logger.Info("terrain written",
		zap.String("height_field", heightPath),
		zap.String("diffuse", diffusePath),
		zap.Int("size", opts.Size),
		zap.Int64("seed", opts.Seed),
	)
	return nil
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
