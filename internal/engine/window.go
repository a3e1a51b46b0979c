package engine

import (
	"GLScene/internal/input"
)

// Handlers receive the callback-driven events. Everything else is polled.
type Handlers struct {
	CursorMoved func(xpos, ypos float64)
	Resized     func(width, height int)
}

// Window is what the render loop needs from the platform window.
type Window interface {
	input.Window
	ShouldClose() bool
	SwapBuffers()
	PollEvents()
	GetFramebufferSize() (width, height int)
	SetTitle(title string)
	// Time is seconds since the window system started.
	Time() float64
	SetHandlers(h Handlers)
}
