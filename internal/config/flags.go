package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagHeightField = flag.String("heightfield", "", "Height field image")
	flagDiffuse     = flag.String("diffuse", "", "Diffuse texture image")
	flagGrid        = flag.Int("grid", 0, "Grid points per side")
	flagSpacing     = flag.Float64("spacing", 0, "Grid spacing in world units")
	flagScale       = flag.Float64("scale", 0, "Height displacement scale")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagSaveConfig  = flag.Bool("save-config", false, "Write the effective config to the user config dir")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagHeightField != "" {
		cfg.Terrain.HeightField = *flagHeightField
	}
	if *flagDiffuse != "" {
		cfg.Terrain.Diffuse = *flagDiffuse
	}
	if *flagGrid > 0 {
		cfg.Terrain.GridSize = *flagGrid
	}
	if *flagSpacing > 0 {
		cfg.Terrain.Spacing = float32(*flagSpacing)
	}
	if *flagScale != 0 {
		cfg.Shader.DisplaceScale = float32(*flagScale)
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
