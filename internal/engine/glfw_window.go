package engine

import (
	"fmt"

	"GLScene/internal/config"
	"GLScene/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// GLFWWindow is a GLFW window with a current OpenGL 4.1 core context.
type GLFWWindow struct {
	*glfw.Window
}

var _ Window = (*GLFWWindow)(nil)

// NewGLFWWindow initializes GLFW, opens the window, makes its context current
// and loads the GL entry points. The caller must be locked to the main OS
// thread and must call Destroy when done.
func NewGLFWWindow(cfg config.WindowConfig) (*GLFWWindow, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("could not initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("could not create glfw window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("could not initialize OpenGL: %w", err)
	}
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	logger.Log.Info("Window created",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))
	return &GLFWWindow{Window: window}, nil
}

func (w *GLFWWindow) PollEvents() { glfw.PollEvents() }

func (w *GLFWWindow) Time() float64 { return glfw.GetTime() }

// SetShouldClose adapts the bool-taking input.Window method.
func (w *GLFWWindow) SetShouldClose(value bool) { w.Window.SetShouldClose(value) }

// SetHandlers replaces the cursor and framebuffer-size callbacks.
func (w *GLFWWindow) SetHandlers(h Handlers) {
	w.Window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if h.CursorMoved != nil {
			h.CursorMoved(xpos, ypos)
		}
	})
	w.Window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if h.Resized != nil {
			h.Resized(width, height)
		}
	})
}

// Destroy closes the window and terminates GLFW.
func (w *GLFWWindow) Destroy() {
	w.Window.Destroy()
	glfw.Terminate()
}
