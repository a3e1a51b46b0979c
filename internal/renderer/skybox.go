package renderer

import (
	"GLScene/internal/gpu"
	"GLScene/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// DefaultSkyColor is drawn when no cubemap could be loaded.
var DefaultSkyColor = mgl32.Vec3{0.5, 0.7, 1.0}

type Skybox struct {
	Cubemap uint32
	Color   mgl32.Vec3
	Shader  *Shader

	buffer *ArrayBuffer
	dev    gpu.Device
}

// NewSkybox loads the six faces. When any face is missing the skybox falls
// back to a solid color and Cubemap stays 0.
func NewSkybox(dev gpu.Device, shader *Shader, loader *TextureLoader, faces CubemapFaces) *Skybox {
	s := &Skybox{
		Color:  DefaultSkyColor,
		Shader: shader,
		dev:    dev,
	}
	s.buffer = SkyboxPrimitive().Upload(dev)
	s.Cubemap = loader.LoadCubemap(faces)
	if s.Cubemap == 0 {
		logger.Log.Warn("Skybox using solid color",
			zap.Float32("r", s.Color[0]),
			zap.Float32("g", s.Color[1]),
			zap.Float32("b", s.Color[2]))
	}
	return s
}

// Draw renders the skybox behind everything already in the depth buffer.
// Depth writes are off and the test is LEQUAL while it draws.
func (s *Skybox) Draw() {
	s.dev.DepthMask(false)
	s.dev.DepthFunc(gl.LEQUAL)

	s.Shader.Use()
	s.Shader.SetInt("skybox", 0)
	s.Shader.SetBool("useColor", s.Cubemap == 0)
	s.Shader.SetVec3("skyColor", s.Color)

	s.dev.ActiveTexture(gl.TEXTURE0)
	s.dev.BindTexture(gl.TEXTURE_CUBE_MAP, s.Cubemap)
	s.buffer.Bind()
	s.dev.DrawArrays(gl.TRIANGLES, 0, 36)
	s.buffer.Unbind()
	s.dev.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	s.dev.DepthMask(true)
	s.dev.DepthFunc(gl.LESS)
}

// Delete releases the geometry and cubemap. The shader is owned by the caller.
func (s *Skybox) Delete() {
	if s.buffer != nil {
		s.buffer.Delete()
	}
	if s.Cubemap != 0 {
		s.dev.DeleteTexture(s.Cubemap)
		s.Cubemap = 0
	}
}
