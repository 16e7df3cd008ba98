package showroom

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/config"
	"github.com/Faultbox/showroom/internal/engine/capture"
	"github.com/Faultbox/showroom/internal/engine/input"
	"github.com/Faultbox/showroom/internal/engine/renderer"
	"github.com/Faultbox/showroom/internal/engine/scene"
	"github.com/Faultbox/showroom/internal/engine/window"
	"github.com/Faultbox/showroom/internal/logger"
)

// Title is the window title prefix.
const Title = "Showroom"

// App is the running showroom.
type App struct {
	cfg      *config.Config
	scene    *scene.Scene
	ctrl     *Controller
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	capture  *capture.Capture

	running    bool
	screenshot bool
}

// New loads every asset, opens the window and compiles both device stages.
// Nothing is drawn unless all of them succeed.
func New(cfg *config.Config) (*App, error) {
	assets, err := LoadAssets(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}
	sc, err := NewScene(cfg, assets)
	if err != nil {
		return nil, fmt.Errorf("building scene: %w", err)
	}
	ctrl, err := NewController(sc, assets.Meshes, NewStage(cfg), NewRig(cfg), cfg.Scene.RotationInterval)
	if err != nil {
		return nil, err
	}
	logDiagnostics(assets, sc)

	a := &App{
		cfg:     cfg,
		scene:   sc,
		ctrl:    ctrl,
		input:   input.New(input.DefaultBindings()),
		capture: capture.New(cfg.Capture.Dir, cfg.Capture.Prefix),
	}

	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The drawable size can differ from the requested size on fullscreen or HiDPI.
	width, height := a.window.Size()
	ctrl.SetViewport(width, height)

	a.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	tex := cfg.Assets.Textures
	var paths [scene.NumTextures]string
	paths[scene.TextureGround] = cfg.AssetPath(tex.Ground)
	paths[scene.TextureVehicle] = cfg.AssetPath(tex.Vehicle)
	paths[scene.TextureSky] = cfg.AssetPath(tex.Sky)
	if err := a.renderer.LoadTextures(paths); err != nil {
		a.Close()
		return nil, fmt.Errorf("loading textures: %w", err)
	}

	logger.Info("showroom initialized")
	return a, nil
}

// Run drives the frame loop until the window closes.
func (a *App) Run() error {
	a.running = true
	start := time.Now()

	logger.Info("starting frame loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				width, height := viewportSize(event, a.window.Size)
				a.renderer.Resize(width, height)
				a.ctrl.SetViewport(width, height)
			case input.EventScreenshot:
				a.screenshot = true
			}
		}

		tick, rays, err := a.ctrl.Advance(time.Since(start))
		if err != nil {
			return fmt.Errorf("frame: %w", err)
		}
		if tick.FPSUpdated {
			a.window.SetTitle(fmt.Sprintf("%s - %d FPS", Title, tick.FPS))
			logger.Debug("fps", zap.Int("fps", tick.FPS), zap.Int("vehicle", tick.Vehicle))
		}

		a.renderer.Frame(a.scene, rays)

		if a.screenshot {
			a.screenshot = false
			a.saveScreenshot()
		}

		a.window.SwapBuffers()
	}

	return nil
}

// viewportSize returns the drawable size after a resize. Resize events carry
// window coordinates, which differ from pixels on HiDPI displays; the event
// size is used only when the drawable reports nothing.
func viewportSize(event input.Event, drawable func() (int, int)) (int, int) {
	width, height := drawable()
	if width <= 0 || height <= 0 {
		return event.Width, event.Height
	}
	return width, height
}

func (a *App) saveScreenshot() {
	width, height := a.renderer.Size()
	path, err := a.capture.SavePixels(a.renderer.ReadPixels(), width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	fields := []zap.Field{zap.String("path", path)}
	if slot, ok := a.ctrl.Probe(0.5, 0.5); ok {
		fields = append(fields, zap.Stringer("center", slot))
	}
	logger.Info("screenshot saved", fields...)
}

// Close releases the renderer and window.
func (a *App) Close() {
	logger.Info("closing showroom")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
