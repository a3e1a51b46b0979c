// Package input turns polled key state and cursor events into camera motion
// and the scene toggles the renderer reads every frame.
package input

import (
	"GLScene/internal/logger"
	"GLScene/internal/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Field of view limits in degrees and the change per frame while Z or X is held.
const (
	DefaultFov float32 = 60.0
	MinFov     float32 = 10.0
	MaxFov     float32 = 60.0
	FovStep    float32 = 0.3
)

// Keys is the polled keyboard. *glfw.Window satisfies it.
type Keys interface {
	GetKey(key glfw.Key) glfw.Action
}

// Window is Keys plus the ability to request shutdown.
type Window interface {
	Keys
	SetShouldClose(value bool)
}

// State is everything the input handlers carry between frames.
type State struct {
	Fov        float32
	MinFov     float32
	MaxFov     float32
	Flashlight bool
	BlinnPhong bool

	// FirstLook is set until the first cursor event has been seen.
	FirstLook    bool
	LastX, LastY float32

	flashLatch bool
	blinnLatch bool
}

// NewState starts with the default field of view and the cursor assumed at
// the center of a width x height window.
func NewState(width, height int) *State {
	return &State{
		Fov:       DefaultFov,
		MinFov:    MinFov,
		MaxFov:    MaxFov,
		FirstLook: true,
		LastX:     float32(width) / 2,
		LastY:     float32(height) / 2,
	}
}

// Zoom moves the field of view by delta and clamps it to [MinFov, MaxFov].
func (s *State) Zoom(delta float32) {
	s.Fov += delta
	if s.Fov < s.MinFov {
		s.Fov = s.MinFov
	}
	if s.Fov > s.MaxFov {
		s.Fov = s.MaxFov
	}
}

// toggle flips *value once per press. The latch holds until the key is
// released so a held key does not flip every frame.
func toggle(action glfw.Action, value, latch *bool) bool {
	switch {
	case action == glfw.Press && !*latch:
		*value = !*value
		*latch = true
		return true
	case action == glfw.Release:
		*latch = false
	}
	return false
}

// Controller applies input to a camera.
type Controller struct {
	State  *State
	Camera *renderer.Camera
}

func NewController(state *State, camera *renderer.Camera) *Controller {
	camera.SetFov(state.Fov)
	return &Controller{State: state, Camera: camera}
}

// ProcessGeneral handles the non-movement keys: Escape closes the window,
// Z and X zoom, F toggles the flashlight and B the Blinn-Phong specular.
func (c *Controller) ProcessGeneral(win Window) {
	s := c.State
	if win.GetKey(glfw.KeyEscape) == glfw.Press {
		win.SetShouldClose(true)
	}

	if win.GetKey(glfw.KeyZ) == glfw.Press {
		s.Zoom(-FovStep)
	}
	if win.GetKey(glfw.KeyX) == glfw.Press {
		s.Zoom(FovStep)
	}
	c.Camera.SetFov(s.Fov)

	if toggle(win.GetKey(glfw.KeyF), &s.Flashlight, &s.flashLatch) {
		logger.Log.Debug("Flashlight toggled", zap.Bool("on", s.Flashlight))
	}
	if toggle(win.GetKey(glfw.KeyB), &s.BlinnPhong, &s.blinnLatch) {
		logger.Log.Debug("Specular model toggled", zap.Bool("blinnPhong", s.BlinnPhong))
	}
}

// ProcessMovement moves the camera with WASD. Left Shift adds boost travel
// only while moving forward.
func (c *Controller) ProcessMovement(keys Keys, deltaTime float32) {
	if keys.GetKey(glfw.KeyW) == glfw.Press {
		c.Camera.ProcessKeyboard(renderer.Forward, deltaTime)
		if keys.GetKey(glfw.KeyLeftShift) == glfw.Press {
			c.Camera.ProcessKeyboard(renderer.Boost, deltaTime)
		}
	}
	if keys.GetKey(glfw.KeyS) == glfw.Press {
		c.Camera.ProcessKeyboard(renderer.Backward, deltaTime)
	}
	if keys.GetKey(glfw.KeyA) == glfw.Press {
		c.Camera.ProcessKeyboard(renderer.Left, deltaTime)
	}
	if keys.GetKey(glfw.KeyD) == glfw.Press {
		c.Camera.ProcessKeyboard(renderer.Right, deltaTime)
	}
}

// CursorMoved is the mouse-look handler. The first event only records the
// cursor so the view does not jump to wherever the pointer entered.
func (c *Controller) CursorMoved(xpos, ypos float64) {
	s := c.State
	x, y := float32(xpos), float32(ypos)
	if s.FirstLook {
		s.LastX, s.LastY = x, y
		s.FirstLook = false
		return
	}

	xoffset := x - s.LastX
	yoffset := s.LastY - y // Reversed since y-coordinates go from bottom to top
	s.LastX, s.LastY = x, y

	c.Camera.ProcessMouseMovement(xoffset, yoffset, true)
}
