// Package engine runs the demo: it owns the window loop and wires input,
// the loaded model and the frame composer together.
package engine

import (
	"GLScene/internal/config"
	"GLScene/internal/gpu"
	"GLScene/internal/input"
	"GLScene/internal/loader"
	"GLScene/internal/logger"
	"GLScene/internal/renderer"

	"github.com/loov/hrtime"
	"go.uber.org/zap"
)

type App struct {
	Config config.Config
	Stats  *FrameStats

	// Camera and Input are set up by Run and kept afterwards for inspection.
	Camera *renderer.Camera
	Input  *input.State
	Frames int
}

func NewApp(cfg config.Config) *App {
	return &App{Config: cfg, Stats: NewFrameStats(cfg.Window.Title)}
}

// Run acquires the scene on dev, renders until the window asks to close and
// releases everything on the way out.
func (a *App) Run(win Window, dev gpu.Device) {
	cfg := a.Config

	// A broken model is logged by the loader; the rest of the scene still renders.
	model, _ := loader.LoadModel(dev, cfg.Assets.Model)

	scene := cfg.SceneConfig()
	if w, h := win.GetFramebufferSize(); w > 0 && h > 0 {
		scene.Width, scene.Height = int32(w), int32(h)
	}
	composer := renderer.NewComposer(dev, model, scene)
	defer composer.Delete()

	a.Camera = cfg.NewCamera()
	a.Input = cfg.InputState()
	controller := input.NewController(a.Input, a.Camera)

	win.SetHandlers(Handlers{
		CursorMoved: controller.CursorMoved,
		Resized: func(width, height int) {
			// minimized windows report 0x0
			if width > 0 && height > 0 {
				composer.Resize(int32(width), int32(height))
			}
		},
	})
	defer win.SetHandlers(Handlers{})

	logger.Log.Info("Render loop starting", zap.Int32("width", scene.Width), zap.Int32("height", scene.Height))

	lastTime := win.Time()
	for !win.ShouldClose() {
		currentTime := win.Time()
		deltaTime := float32(currentTime - lastTime)
		lastTime = currentTime

		start := hrtime.Now()
		controller.ProcessGeneral(win)
		controller.ProcessMovement(win, deltaTime)
		composer.Compose(renderer.FrameInput{
			Camera:     a.Camera,
			Flashlight: a.Input.Flashlight,
			BlinnPhong: a.Input.BlinnPhong,
			Gamma:      cfg.Scene.Gamma,
		})
		if title, ok := a.Stats.Record(hrtime.Since(start), currentTime); ok {
			win.SetTitle(title)
		}

		win.SwapBuffers()
		win.PollEvents()
		a.Frames++
	}

	logger.Log.Info("Render loop finished", zap.Int("frames", a.Frames))
}
