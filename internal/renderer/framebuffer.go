package renderer

import (
	"GLScene/internal/gpu"
	"GLScene/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

type FramebufferKind int

const (
	FramebufferNormal FramebufferKind = iota
	FramebufferMultisample
)

func (k FramebufferKind) String() string {
	if k == FramebufferMultisample {
		return "multisample"
	}
	return "normal"
}

// Framebuffer owns an off-screen render target: a color texture and a
// combined depth24/stencil8 renderbuffer.
type Framebuffer struct {
	FBO          uint32
	ColorTexture uint32
	RBO          uint32
	Width        int32
	Height       int32
	Kind         FramebufferKind
	Samples      int32
	Complete     bool

	dev gpu.Device
}

// NewFramebuffer builds the target and checks completeness. An incomplete
// framebuffer is logged and returned as is.
func NewFramebuffer(dev gpu.Device, width, height int32, kind FramebufferKind, samples int32) *Framebuffer {
	if samples < 1 {
		samples = 1
	}
	f := &Framebuffer{dev: dev, Width: width, Height: height, Kind: kind, Samples: samples}
	f.FBO = dev.GenFramebuffer()
	f.attach()
	return f
}

func (f *Framebuffer) textureTarget() uint32 {
	if f.Kind == FramebufferMultisample {
		return gl.TEXTURE_2D_MULTISAMPLE
	}
	return gl.TEXTURE_2D
}

func (f *Framebuffer) attach() {
	dev := f.dev
	dev.BindFramebuffer(gl.FRAMEBUFFER, f.FBO)

	target := f.textureTarget()
	f.ColorTexture = dev.GenTexture()
	dev.BindTexture(target, f.ColorTexture)
	if f.Kind == FramebufferMultisample {
		dev.TexImage2DMultisample(target, f.Samples, gl.RGB, f.Width, f.Height)
	} else {
		dev.TexImage2D(target, 0, gl.RGB, f.Width, f.Height, gl.RGB, gl.UNSIGNED_BYTE, nil)
		dev.TexParameteri(target, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		dev.TexParameteri(target, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	}
	dev.BindTexture(target, 0)
	dev.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, target, f.ColorTexture)

	f.RBO = dev.GenRenderbuffer()
	dev.BindRenderbuffer(f.RBO)
	if f.Kind == FramebufferMultisample {
		dev.RenderbufferStorageMultisample(f.Samples, gl.DEPTH24_STENCIL8, f.Width, f.Height)
	} else {
		dev.RenderbufferStorage(gl.DEPTH24_STENCIL8, f.Width, f.Height)
	}
	dev.BindRenderbuffer(0)
	dev.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, f.RBO)

	status := dev.CheckFramebufferStatus(gl.FRAMEBUFFER)
	f.Complete = status == gl.FRAMEBUFFER_COMPLETE
	if !f.Complete {
		logger.Log.Error("Framebuffer is not complete",
			zap.Stringer("kind", f.Kind),
			zap.Uint32("status", status),
			zap.Int32("width", f.Width),
			zap.Int32("height", f.Height))
	}
	dev.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (f *Framebuffer) release() {
	if f.ColorTexture != 0 {
		f.dev.BindTexture(f.textureTarget(), 0)
		f.dev.DeleteTexture(f.ColorTexture)
		f.ColorTexture = 0
	}
	if f.RBO != 0 {
		f.dev.BindRenderbuffer(0)
		f.dev.DeleteRenderbuffer(f.RBO)
		f.RBO = 0
	}
}

// Bind makes this framebuffer the render target.
func (f *Framebuffer) Bind() {
	f.dev.BindFramebuffer(gl.FRAMEBUFFER, f.FBO)
}

// ResolveInto copies the color attachment into dst, resolving samples when
// this framebuffer is multisampled.
func (f *Framebuffer) ResolveInto(dst *Framebuffer) {
	f.dev.BindFramebuffer(gl.READ_FRAMEBUFFER, f.FBO)
	f.dev.BindFramebuffer(gl.DRAW_FRAMEBUFFER, dst.FBO)
	f.dev.BlitFramebuffer(f.Width, f.Height, dst.Width, dst.Height, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	f.dev.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Resize replaces the attachments with ones of the new size, keeping the
// framebuffer object itself.
func (f *Framebuffer) Resize(width, height int32) {
	if f.FBO == 0 || (width == f.Width && height == f.Height) || width <= 0 || height <= 0 {
		return
	}
	f.release()
	f.Width, f.Height = width, height
	f.attach()
}

func (f *Framebuffer) Delete() {
	if f.FBO == 0 {
		return
	}
	f.dev.BindFramebuffer(gl.FRAMEBUFFER, 0)
	f.dev.DeleteFramebuffer(f.FBO)
	f.FBO = 0
	f.release()
}
