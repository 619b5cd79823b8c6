// Package viewer runs the interactive terrain viewer: one window, one
// shader program and one height-field mesh.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/heightfield/internal/config"
	"github.com/Faultbox/heightfield/internal/engine/debug"
	"github.com/Faultbox/heightfield/internal/engine/gpu"
	"github.com/Faultbox/heightfield/internal/engine/input"
	"github.com/Faultbox/heightfield/internal/engine/renderer"
	"github.com/Faultbox/heightfield/internal/engine/shader"
	"github.com/Faultbox/heightfield/internal/engine/window"
	"github.com/Faultbox/heightfield/internal/logger"
)

const title = "Heightfield"

// Viewer owns the window and everything drawn into it.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window     *window.Window
	renderer   *renderer.Renderer
	input      *input.Input
	program    gpu.Program
	scene      *Scene
	screenshot *debug.ScreenshotCapture

	running  bool
	wantShot bool // Capture after the next draw
}

// New opens the window, compiles the terrain shader and loads the scene.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:        cfg,
		log:        logger.Named("viewer"),
		input:      input.New(),
		screenshot: debug.NewScreenshotCapture(cfg.Screenshot.Dir, cfg.Screenshot.Prefix),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: [4]float32{0.45, 0.6, 0.75, 1},
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.program, err = shader.Load(cfg.Shader.VertexPath, cfg.Shader.FragmentPath)
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to build terrain shader: %w", err)
	}

	v.scene = NewScene(gpu.NewGL(), v.program, cfg, v.log)
	v.scene.Camera().SetViewport(width, height)
	if err := v.scene.Load(); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to load terrain: %w", err)
	}
	_ = v.renderer.CheckError("load")

	v.log.Info("viewer ready", zap.Stringer("mesh", v.scene.Mesh()))
	return v, nil
}

// Run drives the frame loop until the window is closed or Escape is pressed.
func (v *Viewer) Run() error {
	v.running = true

	var frameBudget time.Duration
	if v.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.cfg.Graphics.FPSLimit)
	}

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	v.log.Info("starting render loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		for _, ev := range v.input.Events() {
			if ev.Type == input.EventWindowResize {
				v.renderer.Resize(v.window.DrawableSize())
			}
			v.apply(v.scene.Handle(ev))
		}

		v.scene.Move(
			v.input.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W),
			v.input.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D),
			v.input.Axis(sdl.SCANCODE_Q, sdl.SCANCODE_E),
			dt,
		)

		v.renderer.Begin()
		if err := v.scene.Draw(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if v.pendingScreenshot() {
			v.capture()
		}
		v.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			v.window.SetTitle(fmt.Sprintf("%s - %.0f fps", title, fps))
			v.log.Debug("fps", zap.Float64("fps", fps), zap.Duration("dt", time.Duration(dt*float64(time.Second))))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(now); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

func (v *Viewer) apply(a Action) {
	switch a {
	case ActionScreenshot:
		v.wantShot = true
	case ActionToggleWireframe:
		v.renderer.SetWireframe(!v.renderer.Wireframe())
	}
}

func (v *Viewer) pendingScreenshot() bool {
	req := v.wantShot
	v.wantShot = false
	return req
}

func (v *Viewer) capture() {
	pixels, w, h := v.renderer.ReadPixels()
	path, err := v.screenshot.CaptureFromPixels(pixels, w, h)
	if err != nil {
		v.log.Error("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the scene, the program and the window.
func (v *Viewer) Close() {
	if v.scene != nil {
		v.scene.Close()
		v.scene = nil
	}
	if v.program != 0 {
		shader.Delete(v.program)
		v.program = 0
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
}
