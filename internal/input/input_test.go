package input

import (
	"testing"

	"GLScene/internal/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow reports every key in pressed as Press and the rest as Release.
type fakeWindow struct {
	pressed     map[glfw.Key]bool
	shouldClose bool
}

func newFakeWindow(keys ...glfw.Key) *fakeWindow {
	w := &fakeWindow{pressed: make(map[glfw.Key]bool)}
	w.press(keys...)
	return w
}

func (w *fakeWindow) press(keys ...glfw.Key) {
	for _, k := range keys {
		w.pressed[k] = true
	}
}

func (w *fakeWindow) release(keys ...glfw.Key) {
	for _, k := range keys {
		delete(w.pressed, k)
	}
}

func (w *fakeWindow) GetKey(key glfw.Key) glfw.Action {
	if w.pressed[key] {
		return glfw.Press
	}
	return glfw.Release
}

func (w *fakeWindow) SetShouldClose(value bool) { w.shouldClose = value }

func newController() *Controller {
	return NewController(NewState(800, 600), renderer.NewCamera(mgl32.Vec3{0, 0, 3}))
}

func TestNewState(t *testing.T) {
	s := NewState(800, 600)
	assert.Equal(t, DefaultFov, s.Fov)
	assert.True(t, s.FirstLook)
	assert.Equal(t, float32(400), s.LastX)
	assert.Equal(t, float32(300), s.LastY)
	assert.False(t, s.Flashlight)
	assert.False(t, s.BlinnPhong)
}

func TestFovStaysClamped(t *testing.T) {
	c := newController()
	win := newFakeWindow(glfw.KeyZ)

	for i := 0; i < 1000; i++ {
		c.ProcessGeneral(win)
		require.GreaterOrEqual(t, c.State.Fov, MinFov)
	}
	assert.Equal(t, MinFov, c.State.Fov)
	assert.Equal(t, MinFov, c.Camera.Fov)

	win.release(glfw.KeyZ)
	win.press(glfw.KeyX)
	for i := 0; i < 1000; i++ {
		c.ProcessGeneral(win)
		require.LessOrEqual(t, c.State.Fov, MaxFov)
	}
	assert.Equal(t, MaxFov, c.State.Fov)
}

func TestZoomSteps(t *testing.T) {
	c := newController()
	win := newFakeWindow(glfw.KeyZ)
	c.ProcessGeneral(win)
	c.ProcessGeneral(win)
	assert.InDelta(t, DefaultFov-2*FovStep, c.State.Fov, 1e-4)
}

func TestTogglesFlipOncePerPress(t *testing.T) {
	c := newController()
	win := newFakeWindow(glfw.KeyF, glfw.KeyB)

	for i := 0; i < 5; i++ {
		c.ProcessGeneral(win)
	}
	assert.True(t, c.State.Flashlight, "held key toggles once")
	assert.True(t, c.State.BlinnPhong)

	win.release(glfw.KeyF)
	c.ProcessGeneral(win)
	assert.True(t, c.State.Flashlight)

	win.press(glfw.KeyF)
	c.ProcessGeneral(win)
	assert.False(t, c.State.Flashlight, "second press toggles back")
	assert.True(t, c.State.BlinnPhong, "B still held")
}

func TestEscapeRequestsClose(t *testing.T) {
	c := newController()
	win := newFakeWindow()
	c.ProcessGeneral(win)
	assert.False(t, win.shouldClose)

	win.press(glfw.KeyEscape)
	c.ProcessGeneral(win)
	assert.True(t, win.shouldClose)
}

func TestBoostOnlyWithForward(t *testing.T) {
	plain := newController()
	plain.ProcessMovement(newFakeWindow(glfw.KeyW), 1)

	boosted := newController()
	boosted.ProcessMovement(newFakeWindow(glfw.KeyW, glfw.KeyLeftShift), 1)

	start := mgl32.Vec3{0, 0, 3}
	plainDist := plain.Camera.Position.Sub(start).Len()
	boostDist := boosted.Camera.Position.Sub(start).Len()
	assert.InDelta(t, renderer.DefaultSpeed, plainDist, 1e-4)
	assert.InDelta(t, renderer.DefaultSpeed*(1+renderer.DefaultBoostFactor), boostDist, 1e-4)

	back := newController()
	back.ProcessMovement(newFakeWindow(glfw.KeyS, glfw.KeyLeftShift), 1)
	assert.InDelta(t, renderer.DefaultSpeed, back.Camera.Position.Sub(start).Len(), 1e-4)
}

func TestCursorFirstLookDoesNotRotate(t *testing.T) {
	c := newController()
	front := c.Camera.Front

	c.CursorMoved(10, 500)
	assert.False(t, c.State.FirstLook)
	assert.Equal(t, front, c.Camera.Front)
	assert.Equal(t, float32(10), c.State.LastX)

	c.CursorMoved(110, 500)
	assert.InDelta(t, renderer.DefaultYaw+10, c.Camera.Yaw, 1e-4)
	assert.InDelta(t, 0, c.Camera.Pitch, 1e-4)

	c.CursorMoved(110, -5000)
	assert.InDelta(t, 89, c.Camera.Pitch, 1e-4, "pitch is constrained")
}

func TestSimulatedInputIsDeterministic(t *testing.T) {
	run := func() *renderer.Camera {
		c := newController()
		win := newFakeWindow()
		for frame := 0; frame < 240; frame++ {
			win.pressed = map[glfw.Key]bool{}
			switch {
			case frame < 60:
				win.press(glfw.KeyW)
			case frame < 120:
				win.press(glfw.KeyW, glfw.KeyLeftShift, glfw.KeyZ)
			case frame < 180:
				win.press(glfw.KeyA, glfw.KeyF)
			default:
				win.press(glfw.KeyD, glfw.KeyS, glfw.KeyX)
			}
			c.ProcessGeneral(win)
			c.ProcessMovement(win, 1.0/60)
			c.CursorMoved(float64(400+frame*3), float64(300-frame))
		}
		return c.Camera
	}

	a, b := run(), run()
	assert.Equal(t, a.Position, b.Position)
	assert.Equal(t, a.Front, b.Front)
	assert.Equal(t, a.Fov, b.Fov)
	assert.Equal(t, a.GetViewMatrix(), b.GetViewMatrix())
}
