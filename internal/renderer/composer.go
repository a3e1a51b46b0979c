package renderer

import (
	"math"
	"strconv"
	"unsafe"

	"GLScene/internal/gpu"
	"GLScene/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Matrices uniform block: projection at 0, view at 64, std140.
const (
	matricesBlock   = "Matrices"
	matricesBinding = 0
	mat4Size        = int(unsafe.Sizeof(mgl32.Mat4{}))
)

// Composer owns every GPU resource of the scene and issues the draw calls of
// one frame in a fixed order.
type Composer struct {
	dev gpu.Device
	cfg SceneConfig

	modelShader  *Shader
	cubeShader   *Shader
	planeShader  *Shader
	skyboxShader *Shader
	grassShader  *Shader
	screenShader *Shader

	matrices *UBO
	model    *Model
	cube     *ArrayBuffer
	plane    *ArrayBuffer
	grass    *ArrayBuffer
	screen   *ArrayBuffer
	skybox   *Skybox

	planeTexture uint32
	grassTexture uint32

	msaa    *Framebuffer
	resolve *Framebuffer

	lights    []Light
	cubeCount int32
	width     int32
	height    int32
	cleanup   Unwind
}

// NewComposer acquires shaders, buffers, textures and framebuffers. It takes
// ownership of model; Delete releases everything in reverse order.
func NewComposer(dev gpu.Device, model *Model, cfg SceneConfig) *Composer {
	c := &Composer{dev: dev, cfg: cfg, model: model, width: cfg.Width, height: cfg.Height}

	modelSources := cfg.shader("model.vs", "model.fs")
	modelSources.Geometry = cfg.GeometryShader
	c.modelShader = c.newShader(modelSources)
	c.cubeShader = c.newShader(cfg.shader("lightcube.vs", "lightcube.fs"))
	c.planeShader = c.newShader(cfg.shader("plane.vs", "plane.fs"))
	c.skyboxShader = c.newShader(cfg.shader("skybox.vs", "skybox.fs"))
	c.grassShader = c.newShader(cfg.shader("grass.vs", "grass.fs"))
	c.screenShader = c.newShader(cfg.shader("screen.vs", "screen.fs"))

	c.matrices = NewUBO(dev, 2*mat4Size, matricesBinding, gl.STATIC_DRAW)
	c.cleanup.Add(c.matrices.Delete)
	for _, s := range []*Shader{c.modelShader, c.cubeShader, c.planeShader, c.skyboxShader, c.grassShader} {
		c.matrices.BindBlock(s.ID(), matricesBlock)
	}

	if c.model != nil {
		c.cleanup.Add(c.model.Delete)
	}

	c.cube = CubePrimitive().Upload(dev)
	c.cleanup.Add(c.cube.Delete)
	c.setupLightCubes()

	c.plane = PlanePrimitive().Upload(dev)
	c.cleanup.Add(c.plane.Delete)
	c.grass = GrassPrimitive().Upload(dev)
	c.cleanup.Add(c.grass.Delete)
	c.screen = ScreenQuadPrimitive().Upload(dev)
	c.cleanup.Add(c.screen.Delete)

	loader := &TextureLoader{Device: dev, FlipVertically: true}
	c.planeTexture = loader.Load(cfg.PlaneTexture, TextureOpaque)
	c.cleanup.Add(func() { c.deleteTexture(&c.planeTexture) })
	c.grassTexture = loader.Load(cfg.GrassTexture, TextureTransparent)
	c.cleanup.Add(func() { c.deleteTexture(&c.grassTexture) })

	loader.FlipVertically = false
	c.skybox = NewSkybox(dev, c.skyboxShader, loader, cfg.Skybox)
	c.cleanup.Add(c.skybox.Delete)

	c.msaa = NewFramebuffer(dev, cfg.Width, cfg.Height, FramebufferMultisample, cfg.Samples)
	c.cleanup.Add(c.msaa.Delete)
	c.resolve = NewFramebuffer(dev, cfg.Width, cfg.Height, FramebufferNormal, 1)
	c.cleanup.Add(c.resolve.Delete)

	logger.Log.Info("Scene composed",
		zap.Int("lightCubes", int(c.cubeCount)),
		zap.Int("grass", len(cfg.GrassPositions)),
		zap.Int32("samples", c.msaa.Samples))
	return c
}

func (c *Composer) newShader(src ShaderSources) *Shader {
	s := NewShader(c.dev, src)
	c.cleanup.Add(s.Delete)
	return s
}

func (c *Composer) deleteTexture(id *uint32) {
	if *id != 0 {
		c.dev.DeleteTexture(*id)
		*id = 0
	}
}

// setupLightCubes stores one model matrix per light as instance attributes
// 2..5 of the cube buffer and records the lights for the model shader.
func (c *Composer) setupLightCubes() {
	scale := c.cfg.LightCubeScale
	if scale == 0 {
		scale = 0.2
	}
	matrices := make([]mgl32.Mat4, 0, len(c.cfg.LightPositions))
	for _, p := range c.cfg.LightPositions {
		m := mgl32.Translate3D(p.X(), p.Y(), p.Z()).Mul4(mgl32.Scale3D(scale, scale, scale))
		matrices = append(matrices, m)
		c.lights = append(c.lights, NewPointLight(p))
	}
	c.cubeCount = int32(len(matrices))
	if c.cubeCount == 0 {
		return
	}

	c.cube.AttachInstanceData(len(matrices)*mat4Size, matrices)
	vec4Size := mat4Size / 4
	for i := 0; i < 4; i++ {
		c.cube.SetupInstanceAttribute(uint32(2+i), 4, gl.FLOAT, int32(mat4Size), i*vec4Size)
	}
}

// Compose renders one frame into the default framebuffer. Swapping and event
// polling are left to the caller.
func (c *Composer) Compose(in FrameInput) {
	cam := in.Camera
	projection := cam.GetProjectionMatrix(float32(c.width) / float32(c.height))
	view := cam.GetViewMatrix()
	c.matrices.Update(0, mat4Size, &projection[0])
	c.matrices.Update(mat4Size, mat4Size, &view[0])

	c.msaa.Bind()
	c.dev.Viewport(0, 0, c.width, c.height)
	c.dev.Enable(gl.DEPTH_TEST)
	c.dev.DepthMask(true)
	cc := c.cfg.ClearColor
	c.dev.ClearColor(cc[0], cc[1], cc[2], cc[3])
	c.dev.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)

	c.drawModel(in)
	c.drawLightCubes(cam)
	c.drawPlane(in)
	c.skybox.Draw()
	c.drawGrass(cam)

	c.msaa.ResolveInto(c.resolve)

	c.dev.BindFramebuffer(gl.FRAMEBUFFER, 0)
	c.dev.Disable(gl.DEPTH_TEST)
	c.dev.ClearColor(1, 1, 1, 1)
	c.dev.Clear(gl.COLOR_BUFFER_BIT)

	c.screenShader.Use()
	c.screenShader.SetInt("screenTexture", 0)
	c.screenShader.SetBool("gamma", in.Gamma)
	c.dev.ActiveTexture(gl.TEXTURE0)
	c.dev.BindTexture(gl.TEXTURE_2D, c.resolve.ColorTexture)
	c.screen.Bind()
	c.dev.DrawArrays(gl.TRIANGLES, 0, ScreenQuadPrimitive().VertexCount())
	c.screen.Unbind()
	c.dev.BindTexture(gl.TEXTURE_2D, 0)
}

func (c *Composer) setLighting(s *Shader, in FrameInput) {
	cam := in.Camera
	s.SetVec3("viewPos", cam.Position)
	s.SetBool("blinn", in.BlinnPhong)

	n := len(c.lights)
	if n > MaxPointLights {
		n = MaxPointLights
	}
	s.SetInt("pointLightCount", int32(n))
	for i := 0; i < n; i++ {
		l := c.lights[i]
		prefix := "pointLights[" + strconv.Itoa(i) + "]."
		s.SetVec3(prefix+"position", l.Position)
		s.SetVec3(prefix+"color", l.Color)
		s.SetFloat(prefix+"constant", l.Constant)
		s.SetFloat(prefix+"linear", l.Linear)
		s.SetFloat(prefix+"quadratic", l.Quadratic)
	}

	s.SetBool("flashlight", in.Flashlight)
	s.SetVec3("spotLight.position", cam.Position)
	s.SetVec3("spotLight.direction", cam.Front)
	s.SetFloat("spotLight.cutOff", cosDeg(12.5))
	s.SetFloat("spotLight.outerCutOff", cosDeg(15.0))
}

func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(deg))))
}

func (c *Composer) drawModel(in FrameInput) {
	if c.model == nil {
		return
	}
	s := c.modelShader
	s.Use()
	c.setLighting(s, in)

	p, scale := c.cfg.ModelPosition, c.cfg.ModelScale
	if scale == 0 {
		scale = 1
	}
	model := mgl32.Translate3D(p.X(), p.Y(), p.Z()).Mul4(mgl32.Scale3D(scale, scale, scale))
	s.SetMat4("model", model)
	s.SetMat3("normalMatrix", model.Mat3().Inv().Transpose())
	s.SetFloat("material.shininess", c.cfg.Shininess)
	c.model.Draw(s, 0)
}

func (c *Composer) drawLightCubes(cam *Camera) {
	if c.cubeCount == 0 {
		return
	}
	s := c.cubeShader
	s.Use()
	s.SetVec3("cameraPos", cam.Position)
	s.SetInt("skybox", 0)
	c.dev.ActiveTexture(gl.TEXTURE0)
	c.dev.BindTexture(gl.TEXTURE_CUBE_MAP, c.skybox.Cubemap)
	c.cube.Bind()
	c.dev.DrawArraysInstanced(gl.TRIANGLES, 0, CubePrimitive().VertexCount(), c.cubeCount)
	c.cube.Unbind()
	c.dev.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
}

func (c *Composer) drawPlane(in FrameInput) {
	s := c.planeShader
	s.Use()
	c.setLighting(s, in)
	s.SetMat4("model", mgl32.Ident4())
	s.SetInt("floorTexture", 0)
	c.dev.ActiveTexture(gl.TEXTURE0)
	c.dev.BindTexture(gl.TEXTURE_2D, c.planeTexture)
	c.plane.Bind()
	c.dev.DrawArrays(gl.TRIANGLES, 0, PlanePrimitive().VertexCount())
	c.plane.Unbind()
	c.dev.BindTexture(gl.TEXTURE_2D, 0)
}

// drawGrass blends the billboards farthest first.
func (c *Composer) drawGrass(cam *Camera) {
	if len(c.cfg.GrassPositions) == 0 {
		return
	}
	c.dev.Enable(gl.BLEND)
	c.dev.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	s := c.grassShader
	s.Use()
	s.SetInt("texture1", 0)
	c.dev.ActiveTexture(gl.TEXTURE0)
	c.dev.BindTexture(gl.TEXTURE_2D, c.grassTexture)
	c.grass.Bind()
	count := GrassPrimitive().VertexCount()
	for _, p := range SortBackToFront(c.cfg.GrassPositions, cam.Position) {
		s.SetMat4("model", mgl32.Translate3D(p.X(), p.Y(), p.Z()))
		c.dev.DrawArrays(gl.TRIANGLES, 0, count)
	}
	c.grass.Unbind()
	c.dev.BindTexture(gl.TEXTURE_2D, 0)

	c.dev.Disable(gl.BLEND)
}

// Resize recreates the off-screen targets for the new framebuffer size.
func (c *Composer) Resize(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	c.msaa.Resize(width, height)
	c.resolve.Resize(width, height)
	c.dev.Viewport(0, 0, width, height)
}

// Delete releases every resource in reverse order of acquisition.
func (c *Composer) Delete() {
	c.cleanup.Unwind()
}
