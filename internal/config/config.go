// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/heightfield/internal/engine/terrain"
)

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Shader     ShaderConfig     `yaml:"shader"`
	Camera     CameraConfig     `yaml:"camera"`
	Lighting   LightingConfig   `yaml:"lighting"`
	Screenshot ScreenshotConfig `yaml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// TerrainConfig holds the assets and lattice of the rendered terrain.
type TerrainConfig struct {
	HeightField string  `yaml:"height_field"` // Single-channel height image
	Diffuse     string  `yaml:"diffuse"`      // RGB colour image
	GridSize    int     `yaml:"grid_size"`    // Points per side
	Spacing     float32 `yaml:"spacing"`      // World units between points
}

// ShaderConfig holds the terrain shader sources and uniform contract.
// Empty source paths select the built-in shaders.
type ShaderConfig struct {
	VertexPath     string  `yaml:"vertex_path"`
	FragmentPath   string  `yaml:"fragment_path"`
	HeightUniform  string  `yaml:"height_uniform"`
	HeightUnit     uint32  `yaml:"height_unit"`
	ScaleUniform   string  `yaml:"scale_uniform"`
	DisplaceScale  float32 `yaml:"displace_scale"`
	DiffuseUniform string  `yaml:"diffuse_uniform"`
	DiffuseUnit    uint32  `yaml:"diffuse_unit"`
	ViewProjection string  `yaml:"view_projection_uniform"`
	Footprint      string  `yaml:"footprint_uniform"`
	SunDirection   string  `yaml:"sun_direction_uniform"`
	Ambient        string  `yaml:"ambient_uniform"`
}

// CameraConfig holds the initial orbit camera.
type CameraConfig struct {
	Distance float32 `yaml:"distance"`
	Pitch    float32 `yaml:"pitch"` // Degrees
	Yaw      float32 `yaml:"yaw"`   // Degrees
	FOV      float32 `yaml:"fov"`   // Degrees
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
}

// LightingConfig holds the directional sun.
type LightingConfig struct {
	SunLongitude float32 `yaml:"sun_longitude"` // Degrees around +Y
	SunLatitude  float32 `yaml:"sun_latitude"`  // Degrees above the horizon
	Ambient      float32 `yaml:"ambient"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Terrain: TerrainConfig{
			HeightField: "assets/heightfield.png",
			Diffuse:     "assets/diffuse.png",
			GridSize:    256,
			Spacing:     0.1,
		},
		Shader: ShaderConfig{
			HeightUniform:  "hf",
			HeightUnit:     0,
			ScaleUniform:   "displaceNormal",
			DisplaceScale:  3,
			DiffuseUniform: "diffuseMap",
			DiffuseUnit:    1,
			ViewProjection: "viewProj",
			Footprint:      "footprint",
			SunDirection:   "sunDir",
			Ambient:        "ambient",
		},
		Camera: CameraConfig{
			Distance: 30,
			Pitch:    35,
			Yaw:      45,
			FOV:      60,
			Near:     0.1,
			Far:      500,
		},
		Lighting: LightingConfig{
			SunLongitude: 45,
			SunLatitude:  50,
			Ambient:      0.35,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "terrain",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every setting that cannot produce a viewer.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive",
			c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.FPSLimit < 0 {
		errs = append(errs, fmt.Errorf("graphics: fps_limit %d is negative", c.Graphics.FPSLimit))
	}
	if c.Terrain.GridSize < 2 || c.Terrain.GridSize > terrain.MaxGridSize {
		errs = append(errs, fmt.Errorf("terrain: grid_size %d outside [2, %d]", c.Terrain.GridSize, terrain.MaxGridSize))
	}
	if !(c.Terrain.Spacing > 0) {
		errs = append(errs, fmt.Errorf("terrain: spacing %g must be positive", c.Terrain.Spacing))
	}
	if c.Shader.HeightUnit == c.Shader.DiffuseUnit && c.Shader.DiffuseUniform != "" {
		errs = append(errs, fmt.Errorf("shader: height and diffuse share texture unit %d", c.Shader.HeightUnit))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: clip planes near=%g far=%g", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera: fov %g out of range", c.Camera.FOV))
	}
	if c.Lighting.Ambient < 0 || c.Lighting.Ambient > 1 {
		errs = append(errs, fmt.Errorf("lighting: ambient %g outside [0, 1]", c.Lighting.Ambient))
	}
	return errors.Join(errs...)
}
