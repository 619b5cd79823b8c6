package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield/internal/config"
	"github.com/Faultbox/heightfield/internal/engine/camera"
	"github.com/Faultbox/heightfield/internal/engine/gpu"
	"github.com/Faultbox/heightfield/internal/engine/heightfield"
	"github.com/Faultbox/heightfield/internal/engine/input"
	"github.com/Faultbox/heightfield/internal/engine/lighting"
	"github.com/Faultbox/heightfield/internal/engine/terrain"
)

// Action is a request the scene cannot satisfy without the window.
type Action int

const (
	ActionNone Action = iota
	ActionScreenshot
	ActionToggleWireframe
)

const (
	scaleStep = 1.25
	sunStep   = 5

	// Minimum camera height above the terrain surface
	groundClearance = 0.5
)

// Scene is the terrain, its camera and the key bindings that edit them.
// It touches the GPU only through gpu.Device.
type Scene struct {
	log     *zap.Logger
	dev     gpu.Device
	program gpu.Program
	mesh    *heightfield.Mesh
	camera  *camera.OrbitCamera
	sun     lighting.Sun
	sunVars lighting.Uniforms

	heightPath  string
	diffusePath string
	gridSize    int
	spacing     float32
}

// UniformsFromConfig maps the shader config onto the mesh uniform contract.
func UniformsFromConfig(c config.ShaderConfig) heightfield.Uniforms {
	return heightfield.Uniforms{
		HeightField:    c.HeightUniform,
		HeightUnit:     c.HeightUnit,
		Displace:       c.ScaleUniform,
		Scale:          c.DisplaceScale,
		Diffuse:        c.DiffuseUniform,
		DiffuseUnit:    c.DiffuseUnit,
		ViewProjection: c.ViewProjection,
		Footprint:      c.Footprint,
	}
}

// LightingUniformsFromConfig maps the shader config onto the sun uniform names.
func LightingUniformsFromConfig(c config.ShaderConfig) lighting.Uniforms {
	return lighting.Uniforms{
		Direction: c.SunDirection,
		Ambient:   c.Ambient,
	}
}

// CameraFromConfig builds an orbit camera from the config, converting
// angles from degrees.
func CameraFromConfig(c config.CameraConfig) *camera.OrbitCamera {
	cam := camera.NewOrbitCamera()
	cam.Distance = c.Distance
	cam.Pitch = mgl32.DegToRad(c.Pitch)
	cam.Yaw = mgl32.DegToRad(c.Yaw)
	cam.FOV = mgl32.DegToRad(c.FOV)
	cam.Near = c.Near
	cam.Far = c.Far
	return cam
}

// NewScene creates a scene drawing with program on dev. Nothing is loaded
// until Load.
func NewScene(dev gpu.Device, program gpu.Program, cfg *config.Config, log *zap.Logger) *Scene {
	return &Scene{
		log:     log,
		dev:     dev,
		program: program,
		mesh: heightfield.New(dev,
			heightfield.WithLogger(log.Named("heightfield")),
			heightfield.WithProgram(program),
			heightfield.WithUniforms(UniformsFromConfig(cfg.Shader)),
		),
		camera: CameraFromConfig(cfg.Camera),
		sun: lighting.Sun{
			Longitude: cfg.Lighting.SunLongitude,
			Latitude:  cfg.Lighting.SunLatitude,
			Ambient:   cfg.Lighting.Ambient,
		},
		sunVars:     LightingUniformsFromConfig(cfg.Shader),
		heightPath:  cfg.Terrain.HeightField,
		diffusePath: cfg.Terrain.Diffuse,
		gridSize:    cfg.Terrain.GridSize,
		spacing:     cfg.Terrain.Spacing,
	}
}

// Load reads both textures and builds the mesh. Texture failures are
// already logged by the mesh and do not stop the scene; a mesh failure is
// returned.
func (s *Scene) Load() error {
	s.loadTextures()
	if err := s.mesh.GenerateMesh(s.gridSize, s.spacing); err != nil {
		return err
	}
	s.camera.Center = mgl32.Vec3(s.Bounds().Center())
	s.sun.Apply(s.dev, s.program, s.sunVars)
	return nil
}

// RotateSun moves the sun by the given degrees and re-applies it.
func (s *Scene) RotateSun(longitude, latitude float32) {
	s.sun.Longitude = float32(math.Mod(float64(s.sun.Longitude+longitude), 360))
	s.sun.Latitude = mgl32.Clamp(s.sun.Latitude+latitude, 0, 90)
	s.sun.Apply(s.dev, s.program, s.sunVars)
}

// Sun returns the current light.
func (s *Scene) Sun() lighting.Sun { return s.sun }

func (s *Scene) loadTextures() {
	if s.heightPath != "" {
		_ = s.mesh.LoadHeightField(s.heightPath)
	}
	if s.diffusePath != "" {
		_ = s.mesh.LoadDiffuseTexture(s.diffusePath)
	}
}

// Reload re-reads both textures from disk into the existing texture objects.
func (s *Scene) Reload() {
	s.log.Info("reloading textures",
		zap.String("height_field", s.heightPath),
		zap.String("diffuse", s.diffusePath),
	)
	s.loadTextures()
}

// SetGrid regenerates the mesh at a new resolution. Sizes outside
// [2, terrain.MaxGridSize] are ignored.
func (s *Scene) SetGrid(size int) {
	if size < 2 || size > terrain.MaxGridSize || size == s.gridSize {
		return
	}
	if err := s.mesh.GenerateMesh(size, s.spacing*float32(s.gridSize-1)/float32(size-1)); err != nil {
		return
	}
	s.gridSize = size
	s.spacing = s.mesh.Spacing()
	s.log.Info("grid resized", zap.Int("grid", size), zap.Float32("spacing", s.spacing))
}

// ScaleDisplacement multiplies the displacement scale by factor.
func (s *Scene) ScaleDisplacement(factor float32) {
	u := s.mesh.Uniforms()
	s.mesh.SetScale(u.Scale * factor)
	s.log.Debug("displacement scale", zap.Float32("scale", u.Scale*factor))
}

// Bounds returns the displaced terrain bounds when a height field is
// loaded, else the flat grid bounds.
func (s *Scene) Bounds() terrain.Bounds {
	if hm := s.mesh.Heightmap(); hm != nil {
		return hm.Bounds
	}
	return s.mesh.Bounds()
}

// Handle applies one input event and returns any window-level action.
func (s *Scene) Handle(ev input.Event) Action {
	switch ev.Type {
	case input.EventMouseDrag:
		s.camera.HandleDrag(ev.DX, ev.DY)
		s.keepAboveGround()
	case input.EventMouseWheel:
		s.camera.HandleZoom(ev.DY)
		s.keepAboveGround()
	case input.EventWindowResize:
		s.camera.SetViewport(ev.Width, ev.Height)
	case input.EventKeyDown:
		return s.handleKey(ev.Key)
	}
	return ActionNone
}

func (s *Scene) handleKey(key sdl.Scancode) Action {
	switch key {
	case sdl.SCANCODE_F12:
		return ActionScreenshot
	case sdl.SCANCODE_F:
		return ActionToggleWireframe
	case sdl.SCANCODE_R:
		s.Reload()
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		s.ScaleDisplacement(scaleStep)
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		s.ScaleDisplacement(1 / scaleStep)
	case sdl.SCANCODE_RIGHTBRACKET:
		s.SetGrid((s.gridSize-1)*2 + 1)
	case sdl.SCANCODE_LEFTBRACKET:
		s.SetGrid((s.gridSize-1)/2 + 1)
	case sdl.SCANCODE_LEFT:
		s.RotateSun(-sunStep, 0)
	case sdl.SCANCODE_RIGHT:
		s.RotateSun(sunStep, 0)
	case sdl.SCANCODE_UP:
		s.RotateSun(0, sunStep)
	case sdl.SCANCODE_DOWN:
		s.RotateSun(0, -sunStep)
	case sdl.SCANCODE_HOME:
		s.camera.FitToBounds(s.Bounds())
	}
	return ActionNone
}

// Move pans the camera by held-key axes, scaled by frame time.
func (s *Scene) Move(forward, right, up float32, dt float64) {
	if forward == 0 && right == 0 && up == 0 {
		return
	}
	step := float32(dt * 60)
	s.camera.HandleMovement(forward*step, right*step, up*step)
	s.keepAboveGround()
}

// keepAboveGround lifts the orbit centre so the eye stays above the
// displaced surface. Does nothing without a height field.
func (s *Scene) keepAboveGround() {
	hm := s.mesh.Heightmap()
	if hm == nil {
		return
	}
	eye := s.camera.Position()
	ground := hm.HeightAt(eye.X(), eye.Z()) + groundClearance
	if eye.Y() < ground {
		s.camera.Center[1] += ground - eye.Y()
	}
}

// Draw uploads the camera matrix and submits the terrain.
func (s *Scene) Draw() error {
	s.mesh.SetViewProjection(s.camera.ViewProjection())
	return s.mesh.SubmitTriangles()
}

// Mesh returns the terrain mesh.
func (s *Scene) Mesh() *heightfield.Mesh { return s.mesh }

// Camera returns the orbit camera.
func (s *Scene) Camera() *camera.OrbitCamera { return s.camera }

// Close releases the mesh.
func (s *Scene) Close() {
	s.mesh.Destroy()
}
